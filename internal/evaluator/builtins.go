package evaluator

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"
)

// RegisterBuiltins binds every flat built-in name spec.md §4.6 lists
// ("Arithmetic", "Transcendental", ... "File handle constructor") plus
// the println!/format!-adjacent helpers directly into the global scope.
// Namespace-qualified calls (`Path.join(...)`) never consult this table
// by their bare method name; evalMethodCall rewrites them first to the
// capitalized "Namespace_method" keys also registered here (spec.md §4.5
// "Namespace dispatch").
func RegisterBuiltins(env *Environment) {
	for name, fn := range builtinTable {
		env.Bind(name, &Builtin{Name: name, Fn: fn})
	}
}

func callBuiltinFunction(ev *Evaluator, name string, args []Object) Object {
	if fn, ok := builtinTable[name]; ok {
		return fn(ev, args)
	}
	return NewError("NameError", "undefined builtin: %s", name)
}

func arg(args []Object, i int) Object {
	if i < len(args) {
		return args[i]
	}
	return NIL
}

func argFloat(args []Object, i int) float64 {
	f, _ := asFloat(arg(args, i))
	return f
}

func argStr(args []Object, i int) string {
	if s, ok := arg(args, i).(*String); ok {
		return s.Value
	}
	return ""
}

func resultOk(v Object) Object {
	return &EnumVariant{EnumName: "Result", VariantName: "Ok", Payload: []Object{v}}
}

func resultErr(err error) Object {
	return &EnumVariant{EnumName: "Result", VariantName: "Err", Payload: []Object{&String{Value: err.Error()}}}
}

func optionSome(v Object) Object {
	return &EnumVariant{EnumName: "Option", VariantName: "Some", Payload: []Object{v}}
}

var optionNone = &EnumVariant{EnumName: "Option", VariantName: "None"}

var builtinTable map[string]func(ev *Evaluator, args []Object) Object

func init() {
	builtinTable = map[string]func(ev *Evaluator, args []Object) Object{}
	registerArithmeticBuiltins()
	registerCollectionBuiltins()
	registerIntrospectionBuiltins()
	registerConversionBuiltins()
	registerTimeBuiltins()
	registerEnvBuiltins()
	registerPathBuiltins()
	registerJSONBuiltins()
	registerYamlBuiltins()
	registerFsBuiltins()
	registerDataFrameBuiltins()
	registerStringConstructorBuiltins()
	registerFileBuiltins()
	registerHtmlBuiltins()
	registerSqlBuiltins()
	registerGrpcBuiltins()
	registerMiscDomainBuiltins()
	registerNamespaceAliases()
}

// registerNamespaceAliases mirrors every flat "<namespace>_<method>"
// builtin under the capitalized key evalMethodCall's callNamespaceMethod
// produces for `Namespace.method(...)` calls (spec.md §4.5 "Namespace
// dispatch": bare identifier matching a registered stdlib namespace is
// rewritten to the builtin `<Namespace>_<method>`). File/Html/Grpc/Sql
// builtins are already registered under their capitalized form directly.
func registerNamespaceAliases() {
	prefixes := map[string]string{"path_": "Path_", "fs_": "Fs_", "json_": "JSON_", "yaml_": "Yaml_"}
	aliases := map[string]func(ev *Evaluator, args []Object) Object{}
	for name, fn := range builtinTable {
		for lower, upper := range prefixes {
			if strings.HasPrefix(name, lower) {
				aliases[upper+strings.TrimPrefix(name, lower)] = fn
			}
		}
	}
	for name, fn := range aliases {
		builtinTable[name] = fn
	}
}

// --- Arithmetic / Transcendental (spec.md §4.6) ---------------------------

func registerArithmeticBuiltins() {
	builtinTable["abs"] = func(ev *Evaluator, args []Object) Object {
		switch v := arg(args, 0).(type) {
		case *Integer:
			if v.Value < 0 {
				return &Integer{Value: -v.Value}
			}
			return v
		case *Float:
			return &Float{Value: math.Abs(v.Value)}
		}
		return NewError("TypeError", "abs requires a number")
	}
	builtinTable["min"] = func(ev *Evaluator, args []Object) Object {
		if len(args) == 0 {
			return NIL
		}
		best := args[0]
		for _, a := range args[1:] {
			if lessThan(a, best) {
				best = a
			}
		}
		return best
	}
	builtinTable["max"] = func(ev *Evaluator, args []Object) Object {
		if len(args) == 0 {
			return NIL
		}
		best := args[0]
		for _, a := range args[1:] {
			if lessThan(best, a) {
				best = a
			}
		}
		return best
	}
	builtinTable["floor"] = func(ev *Evaluator, args []Object) Object { return &Float{Value: math.Floor(argFloat(args, 0))} }
	builtinTable["ceil"] = func(ev *Evaluator, args []Object) Object { return &Float{Value: math.Ceil(argFloat(args, 0))} }
	builtinTable["round"] = func(ev *Evaluator, args []Object) Object { return &Float{Value: math.Round(argFloat(args, 0))} }
	builtinTable["sqrt"] = func(ev *Evaluator, args []Object) Object { return &Float{Value: math.Sqrt(argFloat(args, 0))} }
	builtinTable["pow"] = func(ev *Evaluator, args []Object) Object {
		return &Float{Value: math.Pow(argFloat(args, 0), argFloat(args, 1))}
	}
	builtinTable["sin"] = func(ev *Evaluator, args []Object) Object { return &Float{Value: math.Sin(argFloat(args, 0))} }
	builtinTable["cos"] = func(ev *Evaluator, args []Object) Object { return &Float{Value: math.Cos(argFloat(args, 0))} }
	builtinTable["tan"] = func(ev *Evaluator, args []Object) Object { return &Float{Value: math.Tan(argFloat(args, 0))} }
	builtinTable["log"] = func(ev *Evaluator, args []Object) Object { return &Float{Value: math.Log(argFloat(args, 0))} }
	builtinTable["log10"] = func(ev *Evaluator, args []Object) Object { return &Float{Value: math.Log10(argFloat(args, 0))} }
	builtinTable["exp"] = func(ev *Evaluator, args []Object) Object { return &Float{Value: math.Exp(argFloat(args, 0))} }
	builtinTable["random"] = func(ev *Evaluator, args []Object) Object { return &Float{Value: rand.Float64()} }
}

// --- Collections (spec.md §4.6) --------------------------------------------

func registerCollectionBuiltins() {
	builtinTable["push"] = func(ev *Evaluator, args []Object) Object {
		a, ok := arg(args, 0).(*Array)
		if !ok {
			return NewError("TypeError", "push requires an Array")
		}
		return arrayMethod(ev, a, "push", args[1:])
	}
	builtinTable["pop"] = func(ev *Evaluator, args []Object) Object {
		a, ok := arg(args, 0).(*Array)
		if !ok {
			return NewError("TypeError", "pop requires an Array")
		}
		return arrayMethod(ev, a, "pop", nil)
	}
	builtinTable["sort"] = func(ev *Evaluator, args []Object) Object {
		a, ok := arg(args, 0).(*Array)
		if !ok {
			return NewError("TypeError", "sort requires an Array")
		}
		return arrayMethod(ev, a, "sort", nil)
	}
	builtinTable["reverse"] = func(ev *Evaluator, args []Object) Object {
		a, ok := arg(args, 0).(*Array)
		if !ok {
			return NewError("TypeError", "reverse requires an Array")
		}
		return arrayMethod(ev, a, "reverse", nil)
	}
	builtinTable["len"] = func(ev *Evaluator, args []Object) Object {
		switch v := arg(args, 0).(type) {
		case *Array:
			return &Integer{Value: int64(len(v.Elements))}
		case *Tuple:
			return &Integer{Value: int64(len(v.Elements))}
		case *String:
			return &Integer{Value: int64(len([]rune(v.Value)))}
		case *Obj:
			return &Integer{Value: int64(len(v.Pairs))}
		case *ObjectMut:
			return &Integer{Value: int64(len(v.Snapshot()))}
		}
		return NewError("TypeError", "len not supported on %s", arg(args, 0).Type())
	}
	builtinTable["range"] = func(ev *Evaluator, args []Object) Object {
		if len(args) == 0 {
			return NewError("RuntimeError", "range requires at least one argument")
		}
		var lo, hi, step int64 = 0, 0, 1
		switch len(args) {
		case 1:
			hi = mustInt(args, 0)
		case 2:
			lo, hi = mustInt(args, 0), mustInt(args, 1)
		default:
			lo, hi, step = mustInt(args, 0), mustInt(args, 1), mustInt(args, 2)
			if step == 0 {
				return NewError("RuntimeError", "range step must be non-zero")
			}
		}
		var out []Object
		if step > 0 {
			for i := lo; i < hi; i += step {
				out = append(out, &Integer{Value: i})
			}
		} else {
			for i := lo; i > hi; i += step {
				out = append(out, &Integer{Value: i})
			}
		}
		return &Array{Elements: out}
	}
}

func mustInt(args []Object, i int) int64 {
	if n, ok := arg(args, i).(*Integer); ok {
		return n.Value
	}
	return 0
}

// --- Introspection -----------------------------------------------------------

func registerIntrospectionBuiltins() {
	builtinTable["type"] = func(ev *Evaluator, args []Object) Object { return &String{Value: string(arg(args, 0).Type())} }
	builtinTable["type_of"] = builtinTable["type"]
	builtinTable["is_nil"] = func(ev *Evaluator, args []Object) Object {
		_, ok := arg(args, 0).(*Nil)
		return NativeBool(ok)
	}
	builtinTable["zip"] = func(ev *Evaluator, args []Object) Object {
		a, ok := arg(args, 0).(*Array)
		if !ok {
			return NewError("TypeError", "zip requires two Arrays")
		}
		return arrayMethod(ev, a, "zip", args[1:])
	}
	builtinTable["enumerate"] = func(ev *Evaluator, args []Object) Object {
		a, ok := arg(args, 0).(*Array)
		if !ok {
			return NewError("TypeError", "enumerate requires an Array")
		}
		return arrayMethod(ev, a, "enumerate", nil)
	}
	builtinTable["assert"] = func(ev *Evaluator, args []Object) Object {
		if len(args) == 0 || !Truthy(args[0]) {
			return &ThrowSignal{Value: &String{Value: "assertion failed"}}
		}
		return NIL
	}
	builtinTable["assert_eq"] = func(ev *Evaluator, args []Object) Object {
		if len(args) < 2 || !Equal(args[0], args[1]) {
			return &ThrowSignal{Value: &String{Value: "assertion failed: left != right"}}
		}
		return NIL
	}
}

// --- Conversions --------------------------------------------------------------

func registerConversionBuiltins() {
	toStr := func(ev *Evaluator, args []Object) Object { return &String{Value: DisplayString(arg(args, 0))} }
	builtinTable["str"] = toStr
	builtinTable["to_string"] = toStr
	builtinTable["int"] = func(ev *Evaluator, args []Object) Object {
		switch v := arg(args, 0).(type) {
		case *Integer:
			return v
		case *Float:
			return &Integer{Value: int64(v.Value)}
		case *Byte:
			return &Integer{Value: int64(v.Value)}
		case *String:
			i, err := strconv.ParseInt(strings.TrimSpace(v.Value), 10, 64)
			if err != nil {
				return NewError("RuntimeError", "cannot parse %q as Integer", v.Value)
			}
			return &Integer{Value: i}
		}
		return NewError("TypeError", "int() not supported on %s", arg(args, 0).Type())
	}
	builtinTable["float"] = func(ev *Evaluator, args []Object) Object {
		if f, ok := asFloat(arg(args, 0)); ok {
			return &Float{Value: f}
		}
		if s, ok := arg(args, 0).(*String); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(s.Value), 64)
			if err != nil {
				return NewError("RuntimeError", "cannot parse %q as Float", s.Value)
			}
			return &Float{Value: f}
		}
		return NewError("TypeError", "float() not supported on %s", arg(args, 0).Type())
	}
	builtinTable["bool"] = func(ev *Evaluator, args []Object) Object { return NativeBool(Truthy(arg(args, 0))) }
	builtinTable["parse_int"] = func(ev *Evaluator, args []Object) Object {
		i, err := strconv.ParseInt(strings.TrimSpace(argStr(args, 0)), 10, 64)
		if err != nil {
			return resultErr(err)
		}
		return resultOk(&Integer{Value: i})
	}
	builtinTable["parse_float"] = func(ev *Evaluator, args []Object) Object {
		f, err := strconv.ParseFloat(strings.TrimSpace(argStr(args, 0)), 64)
		if err != nil {
			return resultErr(err)
		}
		return resultOk(&Float{Value: f})
	}
}

// --- Time ----------------------------------------------------------------------

func registerTimeBuiltins() {
	builtinTable["sleep"] = func(ev *Evaluator, args []Object) Object {
		time.Sleep(time.Duration(mustInt(args, 0)) * time.Millisecond)
		return NIL
	}
	builtinTable["timestamp"] = func(ev *Evaluator, args []Object) Object { return &Integer{Value: time.Now().Unix()} }
	builtinTable["chrono_utc_now"] = func(ev *Evaluator, args []Object) Object {
		return &String{Value: time.Now().UTC().Format(time.RFC3339)}
	}
	builtinTable["human_bytes"] = func(ev *Evaluator, args []Object) Object {
		n, _ := asFloat(arg(args, 0))
		return &String{Value: humanize.Bytes(uint64(n))}
	}
	builtinTable["human_duration"] = func(ev *Evaluator, args []Object) Object {
		seconds, _ := asFloat(arg(args, 0))
		past := time.Now().Add(-time.Duration(seconds * float64(time.Second)))
		return &String{Value: humanize.Time(past)}
	}
}

// --- Environment -----------------------------------------------------------------

func registerEnvBuiltins() {
	builtinTable["env_args"] = func(ev *Evaluator, args []Object) Object {
		elems := make([]Object, len(os.Args))
		for i, a := range os.Args {
			elems[i] = &String{Value: a}
		}
		return &Array{Elements: elems}
	}
	builtinTable["env_var"] = func(ev *Evaluator, args []Object) Object {
		v, ok := os.LookupEnv(argStr(args, 0))
		if !ok {
			return optionNone
		}
		return optionSome(&String{Value: v})
	}
	builtinTable["env_set_var"] = func(ev *Evaluator, args []Object) Object {
		os.Setenv(argStr(args, 0), argStr(args, 1))
		return NIL
	}
	builtinTable["env_remove_var"] = func(ev *Evaluator, args []Object) Object {
		os.Unsetenv(argStr(args, 0))
		return NIL
	}
	builtinTable["env_vars"] = func(ev *Evaluator, args []Object) Object {
		var elems []Object
		for _, kv := range os.Environ() {
			parts := strings.SplitN(kv, "=", 2)
			if len(parts) != 2 {
				continue
			}
			elems = append(elems, &Tuple{Elements: []Object{&String{Value: parts[0]}, &String{Value: parts[1]}}})
		}
		return &Array{Elements: elems}
	}
	builtinTable["env_current_dir"] = func(ev *Evaluator, args []Object) Object {
		wd, err := os.Getwd()
		if err != nil {
			return resultErr(err)
		}
		return resultOk(&String{Value: wd})
	}
	builtinTable["env_temp_dir"] = func(ev *Evaluator, args []Object) Object { return &String{Value: os.TempDir()} }
}

// --- Path ------------------------------------------------------------------------

func pathExtension(path string) string { return strings.TrimPrefix(filepath.Ext(path), ".") }

func registerPathBuiltins() {
	builtinTable["path_join"] = func(ev *Evaluator, args []Object) Object {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = DisplayString(a)
		}
		return &String{Value: filepath.Join(parts...)}
	}
	builtinTable["path_join_many"] = func(ev *Evaluator, args []Object) Object {
		a, ok := arg(args, 0).(*Array)
		if !ok {
			return NewError("TypeError", "path_join_many requires an Array")
		}
		parts := make([]string, len(a.Elements))
		for i, e := range a.Elements {
			parts[i] = DisplayString(e)
		}
		return &String{Value: filepath.Join(parts...)}
	}
	builtinTable["path_parent"] = func(ev *Evaluator, args []Object) Object { return &String{Value: filepath.Dir(argStr(args, 0))} }
	builtinTable["path_file_name"] = func(ev *Evaluator, args []Object) Object { return &String{Value: filepath.Base(argStr(args, 0))} }
	builtinTable["path_file_stem"] = func(ev *Evaluator, args []Object) Object {
		base := filepath.Base(argStr(args, 0))
		return &String{Value: strings.TrimSuffix(base, filepath.Ext(base))}
	}
	builtinTable["path_extension"] = func(ev *Evaluator, args []Object) Object {
		return &String{Value: pathExtension(argStr(args, 0))}
	}
	builtinTable["path_is_absolute"] = func(ev *Evaluator, args []Object) Object { return NativeBool(filepath.IsAbs(argStr(args, 0))) }
	builtinTable["path_is_relative"] = func(ev *Evaluator, args []Object) Object { return NativeBool(!filepath.IsAbs(argStr(args, 0))) }
	builtinTable["path_with_extension"] = func(ev *Evaluator, args []Object) Object {
		path := argStr(args, 0)
		ext := argStr(args, 1)
		trimmed := strings.TrimSuffix(path, filepath.Ext(path))
		return &String{Value: trimmed + "." + strings.TrimPrefix(ext, ".")}
	}
	builtinTable["path_with_file_name"] = func(ev *Evaluator, args []Object) Object {
		return &String{Value: filepath.Join(filepath.Dir(argStr(args, 0)), argStr(args, 1))}
	}
	builtinTable["path_components"] = func(ev *Evaluator, args []Object) Object {
		parts := strings.Split(filepath.Clean(argStr(args, 0)), string(os.PathSeparator))
		elems := make([]Object, 0, len(parts))
		for _, p := range parts {
			if p == "" {
				continue
			}
			elems = append(elems, &String{Value: p})
		}
		return &Array{Elements: elems}
	}
	builtinTable["path_normalize"] = func(ev *Evaluator, args []Object) Object { return &String{Value: filepath.Clean(argStr(args, 0))} }
}

// --- JSON (encoding/json: the Go standard library's JSON codec, not a
// hand-rolled replacement for an ecosystem parser) --------------------------

func registerJSONBuiltins() {
	builtinTable["json_parse"] = func(ev *Evaluator, args []Object) Object {
		var v interface{}
		if err := json.Unmarshal([]byte(argStr(args, 0)), &v); err != nil {
			return resultErr(err)
		}
		return resultOk(fromPlain(v))
	}
	builtinTable["json_stringify"] = func(ev *Evaluator, args []Object) Object {
		data, err := json.Marshal(toPlain(arg(args, 0)))
		if err != nil {
			return NewError("RuntimeError", "json_stringify failed: %s", err.Error())
		}
		return &String{Value: string(data)}
	}
	builtinTable["json_pretty"] = func(ev *Evaluator, args []Object) Object {
		data, err := json.MarshalIndent(toPlain(arg(args, 0)), "", "  ")
		if err != nil {
			return NewError("RuntimeError", "json_pretty failed: %s", err.Error())
		}
		return &String{Value: string(data)}
	}
	builtinTable["json_validate"] = func(ev *Evaluator, args []Object) Object {
		return NativeBool(json.Valid([]byte(argStr(args, 0))))
	}
	builtinTable["json_type"] = func(ev *Evaluator, args []Object) Object {
		var v interface{}
		if err := json.Unmarshal([]byte(argStr(args, 0)), &v); err != nil {
			return &String{Value: "invalid"}
		}
		switch v.(type) {
		case nil:
			return &String{Value: "null"}
		case bool:
			return &String{Value: "bool"}
		case float64:
			return &String{Value: "number"}
		case string:
			return &String{Value: "string"}
		case []interface{}:
			return &String{Value: "array"}
		case map[string]interface{}:
			return &String{Value: "object"}
		}
		return &String{Value: "unknown"}
	}
	builtinTable["json_merge"] = func(ev *Evaluator, args []Object) Object {
		a, aok := arg(args, 0).(*Obj)
		b, bok := arg(args, 1).(*Obj)
		if !aok || !bok {
			return NewError("TypeError", "json_merge requires two Objects")
		}
		out := NewObj()
		for k, v := range a.Pairs {
			out.Pairs[k] = v
		}
		for k, v := range b.Pairs {
			out.Pairs[k] = v
		}
		return out
	}
	builtinTable["json_get"] = func(ev *Evaluator, args []Object) Object {
		cur := arg(args, 0)
		for _, part := range strings.Split(argStr(args, 1), ".") {
			if part == "" {
				continue
			}
			fields := fieldsOf(cur)
			if fields == nil {
				return optionNone
			}
			v, ok := fields[part]
			if !ok {
				return optionNone
			}
			cur = v
		}
		return optionSome(cur)
	}
}

// --- YAML (gopkg.in/yaml.v3, the same codec the teacher pack already
// requires) -----------------------------------------------------------------

func registerYamlBuiltins() {
	builtinTable["yaml_parse"] = func(ev *Evaluator, args []Object) Object {
		var v interface{}
		if err := yaml.Unmarshal([]byte(argStr(args, 0)), &v); err != nil {
			return resultErr(err)
		}
		return resultOk(fromPlain(v))
	}
	builtinTable["yaml_stringify"] = func(ev *Evaluator, args []Object) Object {
		data, err := yaml.Marshal(toPlain(arg(args, 0)))
		if err != nil {
			return NewError("RuntimeError", "yaml_stringify failed: %s", err.Error())
		}
		return &String{Value: string(data)}
	}
	builtinTable["yaml_validate"] = func(ev *Evaluator, args []Object) Object {
		var v interface{}
		return NativeBool(yaml.Unmarshal([]byte(argStr(args, 0)), &v) == nil)
	}
}

// --- Filesystem (Result-style EnumVariants per spec.md §4.6) ----------------

func registerFsBuiltins() {
	builtinTable["fs_read"] = func(ev *Evaluator, args []Object) Object {
		data, err := os.ReadFile(argStr(args, 0))
		if err != nil {
			return resultErr(err)
		}
		return resultOk(&String{Value: string(data)})
	}
	builtinTable["fs_write"] = func(ev *Evaluator, args []Object) Object {
		if err := os.WriteFile(argStr(args, 0), []byte(argStr(args, 1)), 0o644); err != nil {
			return resultErr(err)
		}
		return resultOk(NIL)
	}
	builtinTable["fs_exists"] = func(ev *Evaluator, args []Object) Object {
		_, err := os.Stat(argStr(args, 0))
		return NativeBool(err == nil)
	}
	builtinTable["fs_is_file"] = func(ev *Evaluator, args []Object) Object {
		info, err := os.Stat(argStr(args, 0))
		return NativeBool(err == nil && !info.IsDir())
	}
	builtinTable["fs_create_dir"] = func(ev *Evaluator, args []Object) Object {
		if err := os.MkdirAll(argStr(args, 0), 0o755); err != nil {
			return resultErr(err)
		}
		return resultOk(NIL)
	}
	builtinTable["fs_remove_file"] = func(ev *Evaluator, args []Object) Object {
		if err := os.Remove(argStr(args, 0)); err != nil {
			return resultErr(err)
		}
		return resultOk(NIL)
	}
	builtinTable["fs_remove_dir"] = func(ev *Evaluator, args []Object) Object {
		if err := os.RemoveAll(argStr(args, 0)); err != nil {
			return resultErr(err)
		}
		return resultOk(NIL)
	}
	builtinTable["fs_copy"] = func(ev *Evaluator, args []Object) Object {
		data, err := os.ReadFile(argStr(args, 0))
		if err != nil {
			return resultErr(err)
		}
		if err := os.WriteFile(argStr(args, 1), data, 0o644); err != nil {
			return resultErr(err)
		}
		return resultOk(NIL)
	}
	builtinTable["fs_rename"] = func(ev *Evaluator, args []Object) Object {
		if err := os.Rename(argStr(args, 0), argStr(args, 1)); err != nil {
			return resultErr(err)
		}
		return resultOk(NIL)
	}
	builtinTable["fs_metadata"] = func(ev *Evaluator, args []Object) Object {
		info, err := os.Stat(argStr(args, 0))
		if err != nil {
			return resultErr(err)
		}
		meta := NewObj()
		meta.Pairs["size"] = &Integer{Value: info.Size()}
		meta.Pairs["is_dir"] = NativeBool(info.IsDir())
		meta.Pairs["modified"] = &String{Value: info.ModTime().UTC().Format(time.RFC3339)}
		return resultOk(meta)
	}
	builtinTable["fs_read_dir"] = func(ev *Evaluator, args []Object) Object {
		entries, err := os.ReadDir(argStr(args, 0))
		if err != nil {
			return resultErr(err)
		}
		elems := make([]Object, len(entries))
		for i, e := range entries {
			elems[i] = &String{Value: e.Name()}
		}
		return resultOk(&Array{Elements: elems})
	}
	builtinTable["fs_canonicalize"] = func(ev *Evaluator, args []Object) Object {
		abs, err := filepath.Abs(argStr(args, 0))
		if err != nil {
			return resultErr(err)
		}
		return resultOk(&String{Value: abs})
	}
}

// --- DataFrame constructors --------------------------------------------------

func registerDataFrameBuiltins() {
	builtinTable["dataframe_new"] = func(ev *Evaluator, args []Object) Object {
		o, ok := arg(args, 0).(*Obj)
		if !ok {
			return NewError("TypeError", "dataframe_new requires an Object of column arrays")
		}
		df := NewDataFrame()
		for name, v := range o.Pairs {
			a, ok := v.(*Array)
			if !ok {
				return NewError("TypeError", "dataframe_new column %s is not an Array", name)
			}
			df.ColumnOrder = append(df.ColumnOrder, name)
			df.Columns[name] = a.Elements
		}
		return df
	}
	builtinTable["dataframe_from_csv_string"] = func(ev *Evaluator, args []Object) Object {
		r := csv.NewReader(strings.NewReader(argStr(args, 0)))
		records, err := r.ReadAll()
		if err != nil {
			return resultErr(err)
		}
		if len(records) == 0 {
			return resultOk(NewDataFrame())
		}
		df := NewDataFrame()
		header := records[0]
		df.ColumnOrder = append(df.ColumnOrder, header...)
		for _, h := range header {
			df.Columns[h] = []Object{}
		}
		for _, row := range records[1:] {
			for i, cell := range row {
				if i >= len(header) {
					break
				}
				df.Columns[header[i]] = append(df.Columns[header[i]], cellValue(cell))
			}
		}
		return resultOk(df)
	}
	builtinTable["dataframe_from_json"] = func(ev *Evaluator, args []Object) Object {
		var rows []map[string]interface{}
		if err := json.Unmarshal([]byte(argStr(args, 0)), &rows); err != nil {
			return resultErr(err)
		}
		df := NewDataFrame()
		for _, row := range rows {
			for k, v := range row {
				if _, ok := df.Columns[k]; !ok {
					df.ColumnOrder = append(df.ColumnOrder, k)
				}
				df.Columns[k] = append(df.Columns[k], fromPlain(v))
			}
		}
		return resultOk(df)
	}
}

func cellValue(s string) Object {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &Integer{Value: i}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return &Float{Value: f}
	}
	return &String{Value: s}
}

// --- String constructors -----------------------------------------------------

func registerStringConstructorBuiltins() {
	builtinTable["String_new"] = func(ev *Evaluator, args []Object) Object { return &String{Value: ""} }
	builtinTable["String_from"] = func(ev *Evaluator, args []Object) Object { return &String{Value: DisplayString(arg(args, 0))} }
	builtinTable["String_from_utf8"] = func(ev *Evaluator, args []Object) Object {
		a, ok := arg(args, 0).(*Array)
		if !ok {
			return NewError("TypeError", "String_from_utf8 requires an Array of Byte")
		}
		buf := make([]byte, len(a.Elements))
		for i, e := range a.Elements {
			b, ok := e.(*Byte)
			if !ok {
				return resultErr(errors.New("String_from_utf8: non-Byte element"))
			}
			buf[i] = b.Value
		}
		return resultOk(&String{Value: string(buf)})
	}
}

// --- File handle constructor --------------------------------------------------

func registerFileBuiltins() {
	builtinTable["File_open"] = func(ev *Evaluator, args []Object) Object {
		f, err := os.OpenFile(argStr(args, 0), os.O_RDWR|os.O_CREATE, 0o644)
		if err != nil {
			return resultErr(err)
		}
		handle := NewObjectMut()
		handle.Tag = "File"
		handle.Set("path", &String{Value: argStr(args, 0)})
		fileHandles.Set(handle, f)
		return resultOk(handle)
	}
	builtinTable["File_close"] = func(ev *Evaluator, args []Object) Object {
		h, ok := arg(args, 0).(*ObjectMut)
		if !ok {
			return NewError("TypeError", "File_close requires a File handle")
		}
		if f, ok := fileHandles.Get(h); ok {
			f.Close()
			fileHandles.Delete(h)
		}
		return NIL
	}
}

// --- Html namespace (SPEC_FULL.md §B supplement) ------------------------------

func registerHtmlBuiltins() {
	builtinTable["Html_parse"] = func(ev *Evaluator, args []Object) Object { return &HtmlDocument{Raw: argStr(args, 0)} }
}

// --- Sql namespace (modernc.org/sqlite, pure-Go SQLite driver; SPEC_FULL.md
// §B domain-stack supplement) --------------------------------------------------

func registerSqlBuiltins() {
	builtinTable["Sql_open"] = func(ev *Evaluator, args []Object) Object {
		db, err := sql.Open("sqlite", argStr(args, 0))
		if err != nil {
			return resultErr(err)
		}
		handle := NewObjectMut()
		handle.Tag = "SqlConn"
		dbHandles.Set(handle, db)
		return resultOk(handle)
	}
	builtinTable["Sql_execute"] = func(ev *Evaluator, args []Object) Object {
		h, ok := arg(args, 0).(*ObjectMut)
		if !ok {
			return NewError("TypeError", "Sql_execute requires a connection handle")
		}
		db, ok := dbHandles.Get(h)
		if !ok {
			return NewError("RuntimeError", "connection is closed")
		}
		params := make([]interface{}, 0, len(args)-2)
		for _, a := range args[2:] {
			params = append(params, toPlain(a))
		}
		if _, err := db.Exec(argStr(args, 1), params...); err != nil {
			return resultErr(err)
		}
		return resultOk(NIL)
	}
	builtinTable["Sql_query"] = func(ev *Evaluator, args []Object) Object {
		h, ok := arg(args, 0).(*ObjectMut)
		if !ok {
			return NewError("TypeError", "Sql_query requires a connection handle")
		}
		db, ok := dbHandles.Get(h)
		if !ok {
			return NewError("RuntimeError", "connection is closed")
		}
		rows, err := db.Query(argStr(args, 1))
		if err != nil {
			return resultErr(err)
		}
		defer rows.Close()
		cols, _ := rows.Columns()
		var out []Object
		for rows.Next() {
			vals := make([]interface{}, len(cols))
			ptrs := make([]interface{}, len(cols))
			for i := range vals {
				ptrs[i] = &vals[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return resultErr(err)
			}
			row := NewObj()
			row.Tag = "Row"
			for i, c := range cols {
				row.Pairs[c] = fromPlain(vals[i])
			}
			out = append(out, row)
		}
		return resultOk(&Array{Elements: out})
	}
	builtinTable["Sql_close"] = func(ev *Evaluator, args []Object) Object {
		h, ok := arg(args, 0).(*ObjectMut)
		if !ok {
			return NewError("TypeError", "Sql_close requires a connection handle")
		}
		if db, ok := dbHandles.Get(h); ok {
			db.Close()
			dbHandles.Delete(h)
		}
		return NIL
	}
}

// --- Grpc namespace (google.golang.org/grpc, grounded on the teacher's
// existing direct dependency; SPEC_FULL.md §B domain-stack supplement) -------

func registerGrpcBuiltins() {
	builtinTable["Grpc_dial"] = func(ev *Evaluator, args []Object) Object {
		conn, err := grpc.NewClient(argStr(args, 0), grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return resultErr(err)
		}
		handle := NewObjectMut()
		handle.Tag = "GrpcConn"
		grpcHandles.Set(handle, conn)
		return resultOk(handle)
	}
	builtinTable["Grpc_close"] = func(ev *Evaluator, args []Object) Object {
		h, ok := arg(args, 0).(*ObjectMut)
		if !ok {
			return NewError("TypeError", "Grpc_close requires a connection handle")
		}
		if conn, ok := grpcHandles.Get(h); ok {
			conn.Close()
			grpcHandles.Delete(h)
		}
		return NIL
	}
}

// registerMiscDomainBuiltins wires the remaining SPEC_FULL.md §B
// domain-stack dependency (google/uuid) that doesn't fit an existing
// namespace: a free-standing id generator available to any struct/class
// field initializer.
func registerMiscDomainBuiltins() {
	builtinTable["uuid_v4"] = func(ev *Evaluator, args []Object) Object { return &String{Value: uuid.NewString()} }
}

// toPlain/fromPlain bridge Ruchy runtime values and plain Go values for
// JSON encoding and SQL parameter binding.
func toPlain(o Object) interface{} {
	switch v := o.(type) {
	case *Nil:
		return nil
	case *Bool:
		return v.Value
	case *Integer:
		return v.Value
	case *Float:
		return v.Value
	case *String:
		return v.Value
	case *Array:
		out := make([]interface{}, len(v.Elements))
		for i, e := range v.Elements {
			out[i] = toPlain(e)
		}
		return out
	case *Obj:
		out := make(map[string]interface{}, len(v.Pairs))
		for k, val := range v.Pairs {
			out[k] = toPlain(val)
		}
		return out
	default:
		return DisplayString(o)
	}
}

func fromPlain(v interface{}) Object {
	switch t := v.(type) {
	case nil:
		return NIL
	case bool:
		return NativeBool(t)
	case float64:
		return &Float{Value: t}
	case int64:
		return &Integer{Value: t}
	case int:
		return &Integer{Value: int64(t)}
	case []byte:
		return &String{Value: string(t)}
	case string:
		return &String{Value: t}
	case []interface{}:
		out := make([]Object, len(t))
		for i, e := range t {
			out[i] = fromPlain(e)
		}
		return &Array{Elements: out}
	case map[string]interface{}:
		o := NewObj()
		for k, val := range t {
			o.Pairs[k] = fromPlain(val)
		}
		return o
	default:
		return NIL
	}
}

package evaluator

import (
	"fmt"
	"sync"

	"github.com/funvibe/funxy/internal/ast"
)

// Struct is a named record with value semantics: the field map is shared
// until a `&mut self` method runs, at which point the interpreter builds
// a new Struct with an updated field map and rebinds the owning
// identifier (spec.md §3.4 "Struct", §4.4.1 "Mutating-method identifier
// rebinding").
type Struct struct {
	Name   string
	Fields map[string]Object
}

func (s *Struct) Type() ObjectType { return STRUCT_OBJ }
func (s *Struct) Inspect() string  { return s.Name + inspectFields(s.Fields) }
func (s *Struct) Hash() uint32 {
	h := hashString(s.Name)
	for k, v := range s.Fields {
		h = (h ^ hashString(k) ^ v.Hash()) * 16777619
	}
	return h
}

// WithField returns a new Struct sharing every field of s except name,
// which takes val. Used by `&mut self` method rebinding.
func (s *Struct) WithField(name string, val Object) *Struct {
	fields := make(map[string]Object, len(s.Fields))
	for k, v := range s.Fields {
		fields[k] = v
	}
	fields[name] = val
	return &Struct{Name: s.Name, Fields: fields}
}

// Class is a named instance with reference semantics: the field map is
// guarded by a shared lock and every method on the class mutates it in
// place rather than rebinding the receiver (spec.md §3.4 "Class").
type Class struct {
	Name string
	mu   *sync.RWMutex
	Fields map[string]Object
	// Methods is the class's own method table (spec.md §4.5 "Object
	// `__class`"); Funxy's trait/impl witness-table machinery has no
	// Ruchy-spec analog and is replaced by this flat per-class table
	// resolved by ClassDecl at declaration time (see evaluator.go).
	Methods map[string]*Closure
}

func NewClass(name string, methods map[string]*Closure) *Class {
	return &Class{Name: name, mu: &sync.RWMutex{}, Fields: make(map[string]Object), Methods: methods}
}

func (c *Class) Type() ObjectType { return CLASS_OBJ }
func (c *Class) Inspect() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Name + inspectFields(c.Fields)
}
func (c *Class) Hash() uint32 { return hashString(fmt.Sprintf("%p", c)) }

func (c *Class) Get(field string) (Object, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.Fields[field]
	return v, ok
}

func (c *Class) Set(field string, val Object) {
	c.mu.Lock()
	c.Fields[field] = val
	c.mu.Unlock()
}

// Closure is a user-defined function value: parameters, body, and the
// environment captured at definition time (spec.md §3.4 "Closure").
type Closure struct {
	Name       string // empty for anonymous lambdas
	Parameters []ast.Param
	Body       ast.Expression
	Env        *Environment
	IsAsync    bool
	// Receiver is set for struct/class/trait methods; its Name binds the
	// receiver value inside Body (spec.md §4.4.1 method dispatch).
	Receiver *ast.Param
}

func (c *Closure) Type() ObjectType { return CLOSURE_OBJ }
func (c *Closure) Inspect() string {
	if c.Name != "" {
		return "fun " + c.Name + "(...)"
	}
	return "fun(...)"
}
func (c *Closure) Hash() uint32 { return hashString(fmt.Sprintf("%p", c)) }

// Builtin wraps a native Go function exposed as a Ruchy callable value
// (spec.md §4.6).
type Builtin struct {
	Name string
	Fn   func(ev *Evaluator, args []Object) Object
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin(" + b.Name + ")" }
func (b *Builtin) Hash() uint32     { return hashString("builtin:" + b.Name) }

// EnumVariant is one constructed value of a declared sum type (spec.md
// §3.4 "EnumVariant").
type EnumVariant struct {
	EnumName    string
	VariantName string
	Payload     []Object
}

func (e *EnumVariant) Type() ObjectType { return ENUM_VARIANT_OBJ }
func (e *EnumVariant) Inspect() string {
	if len(e.Payload) == 0 {
		return e.VariantName
	}
	parts := make([]string, len(e.Payload))
	for i, p := range e.Payload {
		parts[i] = inspectNested(p)
	}
	s := e.VariantName + "("
	for i, p := range parts {
		if i > 0 {
			s += ", "
		}
		s += p
	}
	return s + ")"
}
func (e *EnumVariant) Hash() uint32 {
	h := hashString(e.EnumName + "::" + e.VariantName)
	for _, p := range e.Payload {
		h = (h ^ p.Hash()) * 16777619
	}
	return h
}

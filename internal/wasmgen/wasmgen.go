// Package wasmgen implements spec.md §4.9's WebAssembly module emitter:
// it produces a Module structure from the AST, with a dry-run mode that
// skips real code generation, and a Validate check on raw bytecode.
package wasmgen

import (
	"encoding/binary"

	"github.com/funvibe/funxy/internal/ast"
)

// WasmType is a WebAssembly value type.
type WasmType string

const (
	I32 WasmType = "i32"
	I64 WasmType = "i64"
	F32 WasmType = "f32"
	F64 WasmType = "f64"
)

// Signature is an export's type signature (spec.md §4.9).
type Signature struct {
	Params   []WasmType
	Results  []WasmType
	Metadata map[string]string
}

// Export names a function the module exposes, with its signature.
type Export struct {
	Name      string
	Signature Signature
}

// Import names a function the module expects its host to provide.
type Import struct {
	Module string
	Name   string
	Signature Signature
}

// Module is the structure spec.md §4.9 describes: name, version,
// bytecode, metadata, exports, imports, and custom sections.
type Module struct {
	Name           string
	Version        string
	Bytecode       []byte
	Metadata       map[string]string
	Exports        []Export
	Imports        []Import
	CustomSections map[string][]byte
}

// wasmMagic is the four-byte header every valid module begins with.
var wasmMagic = []byte{0x00, 0x61, 0x73, 0x6d}

// moduleHeader builds the minimal 8-byte module header: magic + version.
func moduleHeader() []byte {
	header := make([]byte, 8)
	copy(header, wasmMagic)
	binary.LittleEndian.PutUint32(header[4:], 1)
	return header
}

// DryRun returns a minimal valid module header without performing real
// code generation (spec.md §4.9 "A dry-run mode").
func DryRun(name string) *Module {
	return &Module{
		Name:           name,
		Version:        "0.1.0",
		Bytecode:       moduleHeader(),
		Metadata:       map[string]string{"mode": "dry-run"},
		CustomSections: map[string][]byte{},
	}
}

// Emit walks the program's top-level function declarations and produces
// a Module whose exports mirror each named function's arity; the
// bytecode itself is the minimal valid header (spec.md doesn't ask the
// core to be a full codegen backend, only to shape the Module and
// validate it).
func Emit(name string, prog *ast.Program) *Module {
	m := &Module{
		Name:           name,
		Version:        "0.1.0",
		Bytecode:       moduleHeader(),
		Metadata:       map[string]string{},
		CustomSections: map[string][]byte{},
	}
	for _, stmt := range prog.Statements {
		fn, ok := stmt.(*ast.FunctionExpression)
		if !ok || fn.Name == nil {
			continue
		}
		sig := Signature{Metadata: map[string]string{}}
		for range fn.Parameters {
			sig.Params = append(sig.Params, I32)
		}
		if fn.ReturnType != nil {
			sig.Results = []WasmType{I32}
		}
		m.Exports = append(m.Exports, Export{Name: fn.Name.Value, Signature: sig})
	}
	m.CustomSections["name"] = []byte(name)
	m.CustomSections["producers"] = []byte("ruchy-core")
	return m
}

// Validate implements spec.md §4.9's validation rule: the four-byte
// magic header must be present and the module must be at least eight
// bytes long.
func Validate(bytecode []byte) bool {
	if len(bytecode) < 8 {
		return false
	}
	for i, b := range wasmMagic {
		if bytecode[i] != b {
			return false
		}
	}
	return true
}

// Package evaluator implements the Ruchy runtime value model, the
// scope environment, and the tree-walking interpreter (spec.md §3.4-3.6,
// §4.4-4.6).
package evaluator

import "hash/fnv"

// ObjectType tags a runtime value with its kind (spec.md §3.4).
type ObjectType string

const (
	NIL_OBJ      ObjectType = "NIL"
	BOOL_OBJ     ObjectType = "BOOL"
	INTEGER_OBJ  ObjectType = "INTEGER"
	FLOAT_OBJ    ObjectType = "FLOAT"
	BYTE_OBJ     ObjectType = "BYTE"
	ATOM_OBJ     ObjectType = "ATOM"
	STRING_OBJ   ObjectType = "STRING"
	ARRAY_OBJ    ObjectType = "ARRAY"
	TUPLE_OBJ    ObjectType = "TUPLE"
	RANGE_OBJ    ObjectType = "RANGE"
	OBJECT_OBJ   ObjectType = "OBJECT"    // immutable shared map: modules, enum instances, immutable structs
	OBJECTMUT_OBJ ObjectType = "OBJECT_MUT" // mutex-guarded shared map: class instances, mutable structs, files, mailboxes
	STRUCT_OBJ   ObjectType = "STRUCT"    // value semantics, shared field map
	CLASS_OBJ    ObjectType = "CLASS"     // reference semantics, shared RW-locked field map + method table
	CLOSURE_OBJ  ObjectType = "CLOSURE"
	BUILTIN_OBJ  ObjectType = "BUILTIN"
	ENUM_VARIANT_OBJ ObjectType = "ENUM_VARIANT"
	DATAFRAME_OBJ ObjectType = "DATAFRAME"
	HTML_DOC_OBJ  ObjectType = "HTML_DOCUMENT"
	HTML_ELEM_OBJ ObjectType = "HTML_ELEMENT"
	ERROR_OBJ     ObjectType = "ERROR"

	// Unwinding signals, never user-visible (spec.md §3.6, §7).
	RETURN_SIGNAL_OBJ   ObjectType = "RETURN_SIGNAL"
	BREAK_SIGNAL_OBJ    ObjectType = "BREAK_SIGNAL"
	CONTINUE_SIGNAL_OBJ ObjectType = "CONTINUE_SIGNAL"
	THROW_SIGNAL_OBJ    ObjectType = "THROW_SIGNAL"
)

// Object is implemented by every runtime value.
type Object interface {
	Type() ObjectType
	Inspect() string // canonical display, spec.md §6.3
	Hash() uint32
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// IsSignal reports whether obj is a control-flow unwinding signal rather
// than an ordinary value (spec.md §3.6).
func IsSignal(obj Object) bool {
	switch obj.Type() {
	case RETURN_SIGNAL_OBJ, BREAK_SIGNAL_OBJ, CONTINUE_SIGNAL_OBJ, THROW_SIGNAL_OBJ:
		return true
	default:
		return false
	}
}

func IsError(obj Object) bool {
	if obj == nil {
		return false
	}
	return obj.Type() == ERROR_OBJ || obj.Type() == THROW_SIGNAL_OBJ
}

package evaluator

import (
	"fmt"
	"strings"
	"sync"
)

// Array is a shared immutable vector. push/pop/sort/reverse build a new
// backing slice and return it; the interpreter rebinds the owning
// identifier to the new Array (spec.md §3.4, §4.4.1 "Mutating-method
// identifier rebinding").
type Array struct{ Elements []Object }

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = inspectNested(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (a *Array) Hash() uint32 {
	h := uint32(2166136261)
	for _, e := range a.Elements {
		h = (h ^ e.Hash()) * 16777619
	}
	return h
}

// Tuple is a fixed-arity heterogeneous sequence (spec.md §3.4).
type Tuple struct{ Elements []Object }

func (t *Tuple) Type() ObjectType { return TUPLE_OBJ }
func (t *Tuple) Inspect() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = inspectNested(e)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *Tuple) Hash() uint32 {
	h := uint32(2166136261)
	for _, e := range t.Elements {
		h = (h ^ e.Hash()) * 16777619
	}
	return h
}

// Range is `start..end` or `start..=end` (spec.md §3.4).
type Range struct {
	Start, End int64
	Inclusive  bool
}

func (r *Range) Type() ObjectType { return RANGE_OBJ }
func (r *Range) Inspect() string {
	op := ".."
	if r.Inclusive {
		op = "..="
	}
	return fmt.Sprintf("%d%s%d", r.Start, op, r.End)
}
func (r *Range) Hash() uint32 { return uint32(r.Start)*31 + uint32(r.End) }

// Values materializes the range into a slice of Integer elements, used
// by for-loops and comprehensions (spec.md §4.4.1 "For").
func (r *Range) Values() []Object {
	var out []Object
	if r.Inclusive {
		for i := r.Start; i <= r.End; i++ {
			out = append(out, &Integer{Value: i})
		}
	} else {
		for i := r.Start; i < r.End; i++ {
			out = append(out, &Integer{Value: i})
		}
	}
	return out
}

// Obj is a shared immutable map value, used for modules, enum namespace
// objects, and immutable struct/object literals (spec.md §3.4 "Object").
// Named Obj (not Object) to avoid colliding with the Object interface.
type Obj struct {
	Pairs map[string]Object
	// Tag marks synthesized system objects (e.g. "Module", "Message")
	// consulted by method dispatch (spec.md §4.5).
	Tag string
}

func NewObj() *Obj { return &Obj{Pairs: make(map[string]Object)} }

func (o *Obj) Type() ObjectType { return OBJECT_OBJ }
func (o *Obj) Inspect() string  { return inspectFields(o.Pairs) }
func (o *Obj) Hash() uint32 {
	h := uint32(2166136261)
	for k, v := range o.Pairs {
		h = (h ^ hashString(k) ^ v.Hash()) * 16777619
	}
	return h
}

// ObjectMut is a shared, mutex-guarded map value used for class
// instances, mutable structs, open file handles, and actor mailboxes
// (spec.md §3.4 "ObjectMut"). Every method on it is mutating.
type ObjectMut struct {
	mu    sync.RWMutex
	Pairs map[string]Object
	Tag   string // "Module", "Actor", "File", "Class", ...
	// ActorType names the ActorDeclaration governing Tag == "Actor"
	// values, consulted by send/ask dispatch (spec.md §4.5 "Actor
	// send/ask").
	ActorType string
}

func NewObjectMut() *ObjectMut { return &ObjectMut{Pairs: make(map[string]Object)} }

func (o *ObjectMut) Type() ObjectType { return OBJECTMUT_OBJ }
func (o *ObjectMut) Inspect() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return inspectFields(o.Pairs)
}
func (o *ObjectMut) Hash() uint32 { return hashString(fmt.Sprintf("%p", o)) }

func (o *ObjectMut) Get(key string) (Object, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	v, ok := o.Pairs[key]
	return v, ok
}

func (o *ObjectMut) Set(key string, val Object) {
	o.mu.Lock()
	o.Pairs[key] = val
	o.mu.Unlock()
}

func (o *ObjectMut) Snapshot() map[string]Object {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make(map[string]Object, len(o.Pairs))
	for k, v := range o.Pairs {
		out[k] = v
	}
	return out
}

func inspectFields(pairs map[string]Object) string {
	parts := make([]string, 0, len(pairs))
	for k, v := range pairs {
		parts = append(parts, k+": "+inspectNested(v))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// inspectNested quotes Strings when they appear as elements of a
// container, matching the debug-vs-canonical split of spec.md §6.3: the
// top-level value prints raw, nested strings print quoted.
func inspectNested(o Object) string {
	if s, ok := o.(*String); ok {
		return fmt.Sprintf("%q", s.Value)
	}
	return o.Inspect()
}

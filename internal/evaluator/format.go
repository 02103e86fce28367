package evaluator

import "fmt"

// DisplayString renders a value the way `println!`/string interpolation
// do: a top-level String prints raw, but any String nested inside a
// container still prints quoted via Object.Inspect's own inspectNested
// calls (spec.md §6.3 "Value display").
func DisplayString(o Object) string {
	if o == nil {
		return "nil"
	}
	return o.Inspect()
}

// DebugString renders a value the way `format!` renders its arguments:
// a top-level String also prints quoted, matching the nested
// quoting containers already apply (spec.md §6.3).
func DebugString(o Object) string {
	if o == nil {
		return "nil"
	}
	if s, ok := o.(*String); ok {
		return fmt.Sprintf("%q", s.Value)
	}
	return o.Inspect()
}

package analyzer

import "github.com/funvibe/funxy/internal/config"

// CalleeKind classifies a call target name when its declared type is
// unknown to the transpiler (spec.md §4.3.4 "Function-name heuristics").
type CalleeKind int

const (
	CalleeUnknown CalleeKind = iota
	CalleeNumeric
	CalleeVoid
)

// ClassifyCallee looks name up in the fixed numeric/void tables spec.md
// §4.3.4 and §4.6 list.
func ClassifyCallee(name string) CalleeKind {
	if config.NumericFunctionNames[name] {
		return CalleeNumeric
	}
	if config.VoidFunctionNames[name] {
		return CalleeVoid
	}
	return CalleeUnknown
}

// Package config holds process-wide constants: source file conventions,
// interpreter limits, and built-in name tables. No external config file
// format is read; this mirrors the teacher's plain-constants approach.
package config

// Version is the current ruchy-core version.
var Version = "0.1.0"

const SourceFileExt = ".ruchy"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".ruchy", ".rchy", ".rc"}

// TrimSourceExt removes any recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if the path ends with any recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode indicates if the program is running in test mode.
var IsTestMode = false

// MaxRecursionDepth bounds the thread-local call-depth counter (spec.md
// §3.6). Exceeding it yields RecursionLimitExceeded instead of a native
// stack overflow.
const MaxRecursionDepth = 2048

// ComprehensionLookaheadHorizon is a scan bound for telling a
// comprehension from a plain collection/object literal (spec.md §4.2).
// The parser does not reference it: it checks only whether the token
// after the first element is `for`, and brace groups fall back on
// mark/restore backtracking.
const ComprehensionLookaheadHorizon = 20

// SynthesizedGlobals lists the names that are synthesized as tagged
// objects on first lookup rather than pre-bound in the global scope
// (spec.md §3.5, §4.4.1).
var SynthesizedGlobals = []string{"JSON", "Yaml", "File", "Path", "Fs", "Html", "Grpc", "Sql"}

// MutatingArrayMethods is the fixed set of Array methods that trigger
// identifier rebinding after a method call on a bare-identifier receiver
// (spec.md §4.4.1, §4.5).
var MutatingArrayMethods = map[string]bool{
	"push": true, "pop": true, "sort": true, "reverse": true,
}

// NumericFunctionNames classifies built-in/stdlib call targets whose
// return type is known to be numeric when the callee type is otherwise
// unknown to the transpiler (spec.md §4.3.4).
var NumericFunctionNames = map[string]bool{
	"sin": true, "cos": true, "tan": true, "sqrt": true, "pow": true,
	"abs": true, "floor": true, "ceil": true, "round": true, "log": true,
	"log10": true, "exp": true, "min": true, "max": true, "add": true,
	"multiply": true, "atan2": true,
}

// VoidFunctionNames classifies built-in/stdlib call targets whose result
// is never consumed, used by the same transpiler heuristic (spec.md
// §4.3.4).
var VoidFunctionNames = map[string]bool{
	"println": true, "print": true, "assert": true, "assert_eq": true,
}

package evaluator

import "github.com/funvibe/funxy/internal/ast"

// registerDeclarations performs the forward-reference pass over a
// program's top-level statements described in spec.md §4.4.1
// "Declarations": structs, enums, classes, and actors are recorded by
// name before any expression runs, and every `impl`/method body is
// compiled into a Closure keyed by "TypeName::method" (spec.md §4.5
// "Struct: qualified StructName::method lookup").
func (ev *Evaluator) registerDeclarations(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch d := stmt.(type) {
		case *ast.StructDeclaration:
			ev.Structs[d.Name.Value] = d
		case *ast.EnumDeclaration:
			ev.Enums[d.Name.Value] = d
			ev.registerEnumConstructors(d)
		case *ast.ClassDeclaration:
			ev.Classes[d.Name.Value] = d
		case *ast.ActorDeclaration:
			ev.Actors[d.Name.Value] = d
		}
	}
	for _, stmt := range stmts {
		switch d := stmt.(type) {
		case *ast.ImplDeclaration:
			ev.registerMethods(d.TargetType.String(), d.Methods)
		case *ast.ClassDeclaration:
			ev.registerMethods(d.Name.Value, d.Methods)
		case *ast.TraitDeclaration:
			for _, m := range d.Methods {
				if m.Default == nil {
					continue
				}
				ev.Methods["trait:"+d.Name.Value+"::"+m.Name.Value] = &Closure{
					Name: m.Name.Value, Parameters: m.Parameters, Body: m.Default, Env: ev.GlobalEnv,
				}
			}
		}
	}
}

func (ev *Evaluator) registerMethods(typeName string, methods []*ast.FunctionExpression) {
	for _, m := range methods {
		ev.Methods[typeName+"::"+m.Name.Value] = &Closure{
			Name: m.Name.Value, Parameters: m.Parameters, Body: m.Body,
			Env: ev.GlobalEnv, IsAsync: m.IsAsync, Receiver: m.Receiver,
		}
	}
}

// registerEnumConstructors binds every variant of an enum as a global
// callable (payload-bearing variants) or value (unit variants), so
// `Some(5)`/`None` read as ordinary calls/identifiers (spec.md §4.4.1).
func (ev *Evaluator) registerEnumConstructors(d *ast.EnumDeclaration) {
	for _, v := range d.Variants {
		variant := v
		if len(variant.Fields) == 0 {
			ev.GlobalEnv.Bind(variant.Name.Value, &EnumVariant{EnumName: d.Name.Value, VariantName: variant.Name.Value})
			continue
		}
		ev.GlobalEnv.Bind(variant.Name.Value, &Builtin{Name: variant.Name.Value, Fn: func(_ *Evaluator, args []Object) Object {
			return &EnumVariant{EnumName: d.Name.Value, VariantName: variant.Name.Value, Payload: args}
		}})
	}
}

// classMethodTable compiles a ClassDeclaration's methods into Closures
// bound to the evaluator's global scope, for NewClass's shared table.
func (ev *Evaluator) classMethodTable(d *ast.ClassDeclaration) map[string]*Closure {
	table := make(map[string]*Closure, len(d.Methods))
	for _, m := range d.Methods {
		table[m.Name.Value] = &Closure{
			Name: m.Name.Value, Parameters: m.Parameters, Body: m.Body,
			Env: ev.GlobalEnv, IsAsync: m.IsAsync, Receiver: m.Receiver,
		}
	}
	return table
}

package evaluator

import (
	"strings"
	"time"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/dataflow"
)

// recordStage tracks one DataFrame transform as a dataflow.Stage (spec.md
// §4.8): it runs fn, timing it, and records the input schema and, for a
// DataFrame result, the output schema and row count, so an external
// debugger UI can poll the stage's progress.
func (ev *Evaluator) recordStage(name string, kind dataflow.StageKind, df *DataFrame, fn func() Object) Object {
	if ev.Dataflow == nil {
		return fn()
	}
	stage := ev.Dataflow.AddStage(name, kind)
	stage.SetStatus(dataflow.StatusRunning)
	stage.SetSchemas(schemaOf(df), nil)
	start := time.Now()
	result := fn()
	stage.SetExecutionTime(time.Since(start))
	if IsSignal(result) {
		if errObj, ok := result.(*Error); ok {
			stage.SetStatus(dataflow.Failed(errObj.Message))
			return result
		}
	}
	if out, ok := result.(*DataFrame); ok {
		stage.SetSchemas(schemaOf(df), schemaOf(out))
		stage.SetRowCount(int64(out.NumRows()))
	}
	stage.SetStatus(dataflow.StatusCompleted)
	return result
}

func schemaOf(df *DataFrame) []dataflow.Field {
	fields := make([]dataflow.Field, len(df.ColumnOrder))
	for i, c := range df.ColumnOrder {
		fields[i] = dataflow.Field{Name: c, DataType: "any", Nullable: true}
	}
	return fields
}

// dataFrameMethod implements the DataFrame method table of spec.md §4.5:
// filter/with_column take a closure argument and run it once per row;
// select takes column names; groupby keys by the distinct values of a
// named column.
func (ev *Evaluator) dataFrameMethod(df *DataFrame, method string, rawArgs []ast.Expression, args []Object, env *Environment) Object {
	switch method {
	case "columns":
		elems := make([]Object, len(df.ColumnOrder))
		for i, c := range df.ColumnOrder {
			elems[i] = &String{Value: c}
		}
		return &Array{Elements: elems}
	case "num_rows", "len":
		return &Integer{Value: int64(df.NumRows())}
	case "column":
		if len(args) == 0 {
			return NewError("RuntimeError", "column requires a name")
		}
		name := argString(args, 0, "")
		vals, ok := df.Columns[name]
		if !ok {
			return NewError("RuntimeError", "no such column %s", name)
		}
		return &Array{Elements: append([]Object{}, vals...)}
	case "with_column":
		return ev.recordStage("with_column", dataflow.KindMap, df, func() Object {
			if len(args) < 2 {
				return NewError("RuntimeError", "with_column requires a name and a closure")
			}
			name := argString(args, 0, "")
			rows := df.rowsAsObjects()
			out := make([]Object, len(rows))
			for i, row := range rows {
				out[i] = ev.applyFunction(args[1], []Object{row}, nil)
				if IsSignal(out[i]) {
					return out[i]
				}
			}
			return df.WithColumn(name, out)
		})
	case "filter":
		return ev.recordStage("filter", dataflow.KindFilter, df, func() Object {
			if len(args) == 0 {
				return NewError("RuntimeError", "filter requires a closure")
			}
			rows := df.rowsAsObjects()
			keep := make([]bool, len(rows))
			n := 0
			for i, row := range rows {
				ok := ev.applyFunction(args[0], []Object{row}, nil)
				if IsSignal(ok) {
					return ok
				}
				if Truthy(ok) {
					keep[i] = true
					n++
				}
			}
			out := &DataFrame{Columns: make(map[string][]Object, len(df.ColumnOrder))}
			out.ColumnOrder = append(out.ColumnOrder, df.ColumnOrder...)
			for _, col := range df.ColumnOrder {
				vals := make([]Object, 0, n)
				for i, v := range df.Columns[col] {
					if keep[i] {
						vals = append(vals, v)
					}
				}
				out.Columns[col] = vals
			}
			return out
		})
	case "select":
		return ev.recordStage("select", dataflow.KindSelect, df, func() Object {
			cols := make(map[string]bool, len(args))
			for _, a := range args {
				cols[argString([]Object{a}, 0, "")] = true
			}
			out := &DataFrame{Columns: make(map[string][]Object)}
			for _, c := range df.ColumnOrder {
				if cols[c] {
					out.ColumnOrder = append(out.ColumnOrder, c)
					out.Columns[c] = df.Columns[c]
				}
			}
			return out
		})
	case "groupby", "group_by":
		if len(args) == 0 {
			return NewError("RuntimeError", "groupby requires a column name")
		}
		return ev.recordStage("groupby", dataflow.KindGroupBy, df, func() Object {
			name := argString(args, 0, "")
			groups := make(map[string][]int)
			var order []string
			col := df.Columns[name]
			for i, v := range col {
				k := DebugString(v)
				if _, seen := groups[k]; !seen {
					order = append(order, k)
				}
				groups[k] = append(groups[k], i)
			}
			var elems []Object
			for _, k := range order {
				idxs := groups[k]
				sub := &DataFrame{Columns: make(map[string][]Object, len(df.ColumnOrder))}
				sub.ColumnOrder = append(sub.ColumnOrder, df.ColumnOrder...)
				for _, c := range df.ColumnOrder {
					vals := make([]Object, len(idxs))
					for j, idx := range idxs {
						vals[j] = df.Columns[c][idx]
					}
					sub.Columns[c] = vals
				}
				elems = append(elems, &Tuple{Elements: []Object{&String{Value: k}, sub}})
			}
			return &Array{Elements: elems}
		})
	case "to_string":
		return &String{Value: df.Inspect()}
	}
	return NewError("RuntimeError", "unknown method %s on DataFrame", method)
}

// rowsAsObjects presents each row as an immutable Obj keyed by column
// name, the shape single-argument row closures receive.
func (d *DataFrame) rowsAsObjects() []Object {
	n := d.NumRows()
	rows := make([]Object, n)
	for i := 0; i < n; i++ {
		row := NewObj()
		row.Tag = "Row"
		for _, c := range d.ColumnOrder {
			row.Pairs[c] = d.Columns[c][i]
		}
		rows[i] = row
	}
	return rows
}

// htmlDocMethod implements the HtmlDocument method table of spec.md §4.5.
// Selection is substring-based, matching object_dataframe.go's documented
// naive HTML facade.
func htmlDocMethod(doc *HtmlDocument, method string, args []Object) Object {
	switch method {
	case "select":
		tag := argString(args, 0, "")
		var elems []Object
		needle := "<" + tag
		idx := 0
		for {
			pos := strings.Index(doc.Raw[idx:], needle)
			if pos < 0 {
				break
			}
			start := idx + pos
			end := strings.Index(doc.Raw[start:], ">")
			if end < 0 {
				break
			}
			closeTag := "</" + tag + ">"
			closeIdx := strings.Index(doc.Raw[start:], closeTag)
			var text, outer string
			if closeIdx >= 0 {
				outer = doc.Raw[start : start+closeIdx+len(closeTag)]
				text = doc.Raw[start+end+1 : start+closeIdx]
			} else {
				outer = doc.Raw[start : start+end+1]
			}
			elems = append(elems, &HtmlElement{Tag: tag, Text: text, Attrs: map[string]string{}, OuterHTML: outer})
			idx = start + end + 1
		}
		return &Array{Elements: elems}
	case "text":
		return &String{Value: stripTags(doc.Raw)}
	case "to_string":
		return &String{Value: doc.Raw}
	}
	return NewError("RuntimeError", "unknown method %s on HtmlDocument", method)
}

func htmlElementMethod(el *HtmlElement, method string, args []Object) Object {
	switch method {
	case "text":
		return &String{Value: strings.TrimSpace(el.Text)}
	case "attr", "attribute":
		name := argString(args, 0, "")
		if v, ok := el.Attrs[name]; ok {
			return &String{Value: v}
		}
		return NIL
	case "tag":
		return &String{Value: el.Tag}
	case "to_string":
		return &String{Value: el.OuterHTML}
	}
	return NewError("RuntimeError", "unknown method %s on HtmlElement", method)
}

func stripTags(raw string) string {
	var b strings.Builder
	inTag := false
	for _, r := range raw {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

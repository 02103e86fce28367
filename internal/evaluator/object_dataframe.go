package evaluator

import "strings"

// DataFrame holds ordered named columns of equal length (spec.md §3.4
// "DataFrame"). ColumnOrder preserves declaration order since Go maps do
// not.
type DataFrame struct {
	ColumnOrder []string
	Columns     map[string][]Object
}

func NewDataFrame() *DataFrame {
	return &DataFrame{Columns: make(map[string][]Object)}
}

func (d *DataFrame) Type() ObjectType { return DATAFRAME_OBJ }

func (d *DataFrame) Inspect() string {
	var b strings.Builder
	b.WriteString("DataFrame[")
	for i, name := range d.ColumnOrder {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
	}
	b.WriteString("]")
	return b.String()
}

func (d *DataFrame) Hash() uint32 {
	h := uint32(2166136261)
	for _, name := range d.ColumnOrder {
		h = (h ^ hashString(name)) * 16777619
		for _, v := range d.Columns[name] {
			h = (h ^ v.Hash()) * 16777619
		}
	}
	return h
}

// NumRows returns the length of the first column, or 0 for an empty frame.
func (d *DataFrame) NumRows() int {
	if len(d.ColumnOrder) == 0 {
		return 0
	}
	return len(d.Columns[d.ColumnOrder[0]])
}

func (d *DataFrame) WithColumn(name string, values []Object) *DataFrame {
	out := &DataFrame{Columns: make(map[string][]Object, len(d.Columns)+1)}
	out.ColumnOrder = append(out.ColumnOrder, d.ColumnOrder...)
	for k, v := range d.Columns {
		out.Columns[k] = v
	}
	if _, exists := out.Columns[name]; !exists {
		out.ColumnOrder = append(out.ColumnOrder, name)
	}
	out.Columns[name] = values
	return out
}

// HtmlDocument is an opaque parsed-document handle (spec.md §3.4
// "HtmlDocument"). Parsing is intentionally naive: it is a thin
// substring-search facade sufficient for the `select`/`text` method
// table in spec.md §4.5, not a full HTML5 tree builder.
type HtmlDocument struct {
	Raw string
}

func (h *HtmlDocument) Type() ObjectType { return HTML_DOC_OBJ }
func (h *HtmlDocument) Inspect() string  { return "HtmlDocument(...)" }
func (h *HtmlDocument) Hash() uint32     { return hashString(h.Raw) }

// HtmlElement is an opaque selected-node handle within an HtmlDocument.
type HtmlElement struct {
	Tag     string
	Text    string
	Attrs   map[string]string
	OuterHTML string
}

func (h *HtmlElement) Type() ObjectType { return HTML_ELEM_OBJ }
func (h *HtmlElement) Inspect() string  { return "HtmlElement(<" + h.Tag + ">)" }
func (h *HtmlElement) Hash() uint32     { return hashString(h.OuterHTML) }

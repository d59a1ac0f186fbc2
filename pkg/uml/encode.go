package uml

import (
	"strings"

	"classdraw/pkg/model"
)

const (
	docStart = "@startuml"
	docEnd   = "@enduml"
	divider  = "--"
	indent   = "  "
)

// Encode serializes a diagram to the canonical text notation.
//
// Classes appear in declaration order. Within a class block: non-empty
// notes, then attributes, then operations, with a divider line exactly
// between adjacent non-empty sections. Connection lines follow all class
// blocks in declaration order; connections with an empty target are
// omitted. Encoding is total: it never fails, it only omits what the
// notation cannot carry.
func Encode(d model.Diagram) string {
	var b strings.Builder
	b.WriteString(docStart)
	b.WriteByte('\n')

	for _, c := range d.Classes {
		encodeClass(&b, c)
	}

	for _, c := range d.Classes {
		for _, conn := range c.Connections {
			if conn.Target == "" {
				continue
			}
			b.WriteString(c.Name)
			b.WriteByte(' ')
			b.WriteString(SymbolFor(conn.Relation))
			b.WriteByte(' ')
			b.WriteString(conn.Target)
			b.WriteByte('\n')
		}
	}

	b.WriteString(docEnd)
	b.WriteByte('\n')
	return b.String()
}

func encodeClass(b *strings.Builder, c model.ClassBox) {
	b.WriteString("class ")
	b.WriteString(c.Name)
	b.WriteString(" {\n")

	notes := 0
	for _, n := range c.Notes {
		if n.Empty() {
			continue
		}
		b.WriteString(indent)
		b.WriteString("note [")
		b.WriteString(string(n.Kind))
		b.WriteString("]: ")
		b.WriteString(n.Text)
		b.WriteByte('\n')
		notes++
	}

	if notes > 0 && (len(c.Attributes) > 0 || len(c.Operations) > 0) {
		b.WriteString(indent)
		b.WriteString(divider)
		b.WriteByte('\n')
	}

	for _, a := range c.Attributes {
		b.WriteString(indent)
		b.WriteString(a.Line())
		b.WriteByte('\n')
	}

	if len(c.Attributes) > 0 && len(c.Operations) > 0 {
		b.WriteString(indent)
		b.WriteString(divider)
		b.WriteByte('\n')
	}

	for _, o := range c.Operations {
		b.WriteString(indent)
		b.WriteString(o.Line())
		b.WriteByte('\n')
	}

	b.WriteString("}\n")
}

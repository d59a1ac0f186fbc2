// Package dot exports a diagram to Graphviz DOT and renders it to SVG.
//
// This is the second rendering backend: where the raster renderer draws
// the engine's own layout verbatim, the DOT path hands placement to
// Graphviz and keeps only the content and the relationship markers.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"classdraw/pkg/errors"
	"classdraw/pkg/layout"
	"classdraw/pkg/model"
)

// arrowheads per relationship kind, matching the marker table.
func arrowAttrs(rel model.Relationship) string {
	switch rel {
	case model.RelInheritance:
		return "arrowhead=empty"
	case model.RelAggregation:
		return "arrowhead=odiamond"
	case model.RelComposition:
		return "arrowhead=diamond"
	case model.RelDependency:
		return "arrowhead=open, style=dashed"
	default:
		return "arrowhead=none"
	}
}

// ToDOT converts a diagram to Graphviz DOT. Classes become record-shaped
// nodes with one compartment per non-empty section, in the same order as
// the serialized form. Connections with empty or unresolved targets are
// omitted; the router and validator report those, not this exporter.
func ToDOT(d model.Diagram) string {
	var buf bytes.Buffer
	buf.WriteString("digraph classes {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=record, style=filled, fillcolor=white, penwidth=%d];\n",
		d.Style.BorderThickness)
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	names := make(map[string]bool, len(d.Classes))
	for _, c := range d.Classes {
		names[c.Name] = true
		fmt.Fprintf(&buf, "  %q [label=%q];\n", c.Name, recordLabel(c))
	}

	buf.WriteString("\n")
	for _, c := range d.Classes {
		for _, conn := range c.Connections {
			if conn.Target == "" || !names[conn.Target] {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", c.Name, conn.Target, arrowAttrs(conn.Relation))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// recordLabel builds the record shape: header compartment plus one
// compartment per divider-separated section of the class body.
func recordLabel(c model.ClassBox) string {
	sections := []string{escapeRecord(c.Name)}

	var current []string
	flush := func() {
		if len(current) > 0 {
			sections = append(sections, strings.Join(current, "\\l")+"\\l")
			current = nil
		}
	}
	for _, line := range layout.BodyLines(c) {
		if line == "--" {
			flush()
			continue
		}
		current = append(current, escapeRecord(line))
	}
	flush()

	return "{" + strings.Join(sections, "|") + "}"
}

// escapeRecord escapes the characters that delimit record fields.
var recordEscaper = strings.NewReplacer(
	"{", "\\{", "}", "\\}", "|", "\\|", "<", "\\<", ">", "\\>",
)

func escapeRecord(s string) string {
	return recordEscaper.Replace(s)
}

// RenderSVG renders a DOT document to SVG via Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
	}
	return buf.Bytes(), nil
}

// SVG is the one-call convenience: diagram straight to SVG bytes.
func SVG(ctx context.Context, d model.Diagram) ([]byte, error) {
	return RenderSVG(ctx, ToDOT(d))
}

package layout

import "classdraw/pkg/model"

// Font metric defaults, tuned for a 13px monospace face.
const (
	defaultLineHeight  = 18.0
	defaultCharWidth   = 8.0
	defaultPadX        = 12.0
	defaultPadY        = 8.0
	defaultMinBoxWidth = 120.0
	defaultMinNoteW    = 80.0
)

// Metrics is the font-metrics configuration used to size boxes and notes.
// Sizing is a pure function of content and these values, so identical
// input yields identical rectangles.
type Metrics struct {
	LineHeight  float64 // vertical space per text line
	CharWidth   float64 // average glyph advance
	PadX        float64 // horizontal inset on each side
	PadY        float64 // vertical inset top and bottom
	MinBoxWidth float64 // floor for class box width
	MinNoteW    float64 // floor for note width
}

// DefaultMetrics returns the standard sizing configuration.
func DefaultMetrics() Metrics {
	return Metrics{
		LineHeight:  defaultLineHeight,
		CharWidth:   defaultCharWidth,
		PadX:        defaultPadX,
		PadY:        defaultPadY,
		MinBoxWidth: defaultMinBoxWidth,
		MinNoteW:    defaultMinNoteW,
	}
}

// BodyLines returns the rendered text lines of a class body in block
// order: non-empty notes, divider, attributes, divider, operations.
// A divider appears exactly when both adjacent sections are non-empty,
// mirroring the serialized form, so box heights match the exported text.
func BodyLines(c model.ClassBox) []string {
	var notes []string
	for _, n := range c.Notes {
		if !n.Empty() {
			notes = append(notes, n.Text)
		}
	}

	var lines []string
	lines = append(lines, notes...)
	if len(notes) > 0 && (len(c.Attributes) > 0 || len(c.Operations) > 0) {
		lines = append(lines, "--")
	}
	for _, a := range c.Attributes {
		lines = append(lines, a.Line())
	}
	if len(c.Attributes) > 0 && len(c.Operations) > 0 {
		lines = append(lines, "--")
	}
	for _, o := range c.Operations {
		lines = append(lines, o.Line())
	}
	return lines
}

// BoxSize computes the width and height of a class box from its content.
// Width fits the longest rendered line (header included) with horizontal
// padding, floored at MinBoxWidth. Height is one header line plus one
// line per body entry. An empty class still gets a header-only box.
func (m Metrics) BoxSize(c model.ClassBox) (w, h float64) {
	longest := len(c.Name)
	body := BodyLines(c)
	for _, line := range body {
		if len(line) > longest {
			longest = len(line)
		}
	}

	w = float64(longest)*m.CharWidth + 2*m.PadX
	if w < m.MinBoxWidth {
		w = m.MinBoxWidth
	}
	h = m.LineHeight + float64(len(body))*m.LineHeight + 2*m.PadY
	return w, h
}

// NoteSize computes the rectangle size for a note. Whitespace-only notes
// are sized like any other; only the serializer drops them.
func (m Metrics) NoteSize(n model.Note) (w, h float64) {
	w = float64(len(n.Text))*m.CharWidth + 2*m.PadX
	if w < m.MinNoteW {
		w = m.MinNoteW
	}
	h = m.LineHeight + 2*m.PadY
	return w, h
}

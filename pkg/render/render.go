// Package render rasterizes a placed diagram to PNG: class boxes with
// the configured border styling, tinted note rectangles, and connector
// lines with relationship markers.
package render

import (
	"bytes"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"classdraw/pkg/errors"
	"classdraw/pkg/layout"
	"classdraw/pkg/model"
	"classdraw/pkg/route"
)

const (
	canvasMargin = 24.0
	fontSize     = 12.0
	markerSize   = 12.0
	dashOn       = 6.0
	dashOff      = 4.0
)

// Config controls rasterization. Metrics must match the configuration
// the layout was built with so text lands inside its rectangles.
type Config struct {
	Metrics layout.Metrics
}

// DefaultConfig returns the standard render configuration.
func DefaultConfig() Config {
	return Config{Metrics: layout.DefaultMetrics()}
}

// PNG rasterizes the diagram against its layout and routes and returns
// the encoded image. The canvas is sized to the bounding box of all
// placed rectangles plus a margin. Border thickness and color come from
// the diagram style; an unparseable color fails with ErrCodeInvalidColor.
func PNG(d model.Diagram, lay layout.Result, routes route.Result, cfg Config) ([]byte, error) {
	border, err := ParseColor(d.Style.BorderColor)
	if err != nil {
		return nil, err
	}
	thickness := float64(d.Style.BorderThickness)

	offX, offY, w, h := bounds(lay)
	dc := gg.NewContext(int(math.Ceil(w)), int(math.Ceil(h)))
	dc.SetColor(color.White)
	dc.Clear()

	face, err := monoFace()
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)

	// Connections go first so boxes and notes paint over the line ends.
	for _, r := range routes.Routes {
		drawRoute(dc, r, offX, offY, border, thickness)
	}

	noteByID := make(map[string]model.Note)
	for _, c := range d.Classes {
		for _, n := range c.Notes {
			noteByID[n.ID] = n
		}
	}
	for id, rect := range lay.Notes {
		drawNote(dc, noteByID[id], shift(rect, offX, offY), cfg.Metrics)
	}

	for _, c := range d.Classes {
		rect, ok := lay.Boxes[c.ID]
		if !ok {
			continue
		}
		drawClassBox(dc, c, shift(rect, offX, offY), cfg.Metrics, border, thickness)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func monoFace() (font.Face, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse font")
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// bounds computes the translation and canvas size that fit every placed
// rectangle with a margin on all sides.
func bounds(lay layout.Result) (offX, offY, w, h float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	scan := func(r layout.Rect) {
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.X+r.W)
		maxY = math.Max(maxY, r.Y+r.H)
	}
	for _, r := range lay.Boxes {
		scan(r)
	}
	for _, r := range lay.Notes {
		scan(r)
	}
	if minX > maxX {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}

	offX = canvasMargin - minX
	offY = canvasMargin - minY
	return offX, offY, maxX - minX + 2*canvasMargin, maxY - minY + 2*canvasMargin
}

func shift(r layout.Rect, offX, offY float64) layout.Rect {
	r.X += offX
	r.Y += offY
	return r
}

// =============================================================================
// Boxes and Notes
// =============================================================================

func drawClassBox(dc *gg.Context, c model.ClassBox, r layout.Rect, m layout.Metrics, border color.RGBA, thickness float64) {
	dc.SetColor(color.White)
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Fill()

	dc.SetColor(border)
	dc.SetLineWidth(thickness)
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Stroke()

	// Header: class name centered on the first line, rule below it.
	headerBase := r.Y + m.PadY + m.LineHeight*0.75
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(c.Name, r.X+r.W/2, headerBase, 0.5, 0)

	body := layout.BodyLines(c)
	ruleY := r.Y + m.PadY + m.LineHeight
	if len(body) > 0 {
		drawRule(dc, r, ruleY, border)
	}

	lineY := ruleY
	for _, line := range body {
		if line == "--" {
			drawRule(dc, r, lineY+m.LineHeight/2, border)
		} else {
			dc.SetColor(color.Black)
			dc.DrawString(line, r.X+m.PadX, lineY+m.LineHeight*0.75)
		}
		lineY += m.LineHeight
	}
}

func drawRule(dc *gg.Context, r layout.Rect, y float64, border color.RGBA) {
	dc.SetColor(border)
	dc.SetLineWidth(1)
	dc.DrawLine(r.X, y, r.X+r.W, y)
	dc.Stroke()
}

func drawNote(dc *gg.Context, n model.Note, r layout.Rect, m layout.Metrics) {
	dc.SetColor(NoteFill(n.Kind))
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Fill()

	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Stroke()

	dc.DrawString(n.Text, r.X+m.PadX, r.Y+m.PadY+m.LineHeight*0.75)
}

// =============================================================================
// Connections and Markers
// =============================================================================

func drawRoute(dc *gg.Context, r route.Route, offX, offY float64, border color.RGBA, thickness float64) {
	fx, fy := r.From.X+offX, r.From.Y+offY
	tx, ty := r.To.X+offX, r.To.Y+offY

	dc.SetColor(border)
	dc.SetLineWidth(math.Max(1, thickness-1))
	if r.Dashed {
		dc.SetDash(dashOn, dashOff)
	}
	dc.DrawLine(fx, fy, tx, ty)
	dc.Stroke()
	if r.Dashed {
		dc.SetDash()
	}

	drawMarker(dc, r.Marker, fx, fy, tx, ty, border)
}

// drawMarker places the endpoint decoration at (tx, ty), oriented along
// the segment direction.
func drawMarker(dc *gg.Context, m route.Marker, fx, fy, tx, ty float64, border color.RGBA) {
	if m == route.MarkerNone {
		return
	}

	dx, dy := tx-fx, ty-fy
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length
	// Perpendicular unit vector.
	px, py := -dy, dx

	switch m {
	case route.MarkerHollowTriangle:
		baseX, baseY := tx-markerSize*dx, ty-markerSize*dy
		dc.MoveTo(tx, ty)
		dc.LineTo(baseX+px*markerSize/2, baseY+py*markerSize/2)
		dc.LineTo(baseX-px*markerSize/2, baseY-py*markerSize/2)
		dc.ClosePath()
		fillAndStroke(dc, color.White, border)

	case route.MarkerHollowDiamond, route.MarkerFilledDiamond:
		midX, midY := tx-markerSize/2*dx, ty-markerSize/2*dy
		backX, backY := tx-markerSize*dx, ty-markerSize*dy
		dc.MoveTo(tx, ty)
		dc.LineTo(midX+px*markerSize/3, midY+py*markerSize/3)
		dc.LineTo(backX, backY)
		dc.LineTo(midX-px*markerSize/3, midY-py*markerSize/3)
		dc.ClosePath()
		fill := color.Color(color.White)
		if m == route.MarkerFilledDiamond {
			fill = border
		}
		fillAndStroke(dc, fill, border)

	case route.MarkerOpenArrow:
		baseX, baseY := tx-markerSize*dx, ty-markerSize*dy
		dc.SetColor(border)
		dc.SetLineWidth(1)
		dc.DrawLine(tx, ty, baseX+px*markerSize/2, baseY+py*markerSize/2)
		dc.DrawLine(tx, ty, baseX-px*markerSize/2, baseY-py*markerSize/2)
		dc.Stroke()
	}
}

func fillAndStroke(dc *gg.Context, fill color.Color, stroke color.RGBA) {
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(stroke)
	dc.SetLineWidth(1)
	dc.Stroke()
}

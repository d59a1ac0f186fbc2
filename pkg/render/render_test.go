package render

import (
	"bytes"
	"image/color"
	"testing"

	"classdraw/pkg/errors"
	"classdraw/pkg/layout"
	"classdraw/pkg/model"
	"classdraw/pkg/route"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{name: "PaletteName", in: "black", want: color.RGBA{0, 0, 0, 255}},
		{name: "PaletteCaseInsensitive", in: "Blue", want: color.RGBA{30, 60, 200, 255}},
		{name: "HexLong", in: "#ff8000", want: color.RGBA{255, 128, 0, 255}},
		{name: "HexShort", in: "#f80", want: color.RGBA{255, 136, 0, 255}},
		{name: "Unknown", in: "chartreuse", wantErr: true},
		{name: "MalformedHex", in: "#12345", wantErr: true},
		{name: "NotHexDigits", in: "#zzzzzz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidColor) {
					t.Errorf("error = %v, want INVALID_COLOR", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseColor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNoteFillPerKind(t *testing.T) {
	kinds := []model.NoteKind{
		model.NoteStandard, model.NoteInformation, model.NoteWarning,
		model.NoteSuccess, model.NoteConfirmation, model.NoteDecorative,
	}
	seen := make(map[color.RGBA]model.NoteKind)
	for _, k := range kinds {
		c := NoteFill(k)
		if prev, dup := seen[c]; dup {
			t.Errorf("kinds %s and %s share fill %+v", prev, k, c)
		}
		seen[c] = k
	}
}

func renderInput(t *testing.T) (model.Diagram, layout.Result, route.Result) {
	t.Helper()
	d := model.New()
	d, user := d.AddClass("User")
	d, _, _ = d.AddAttribute(user.ID, "name", "string", model.VisibilityPrivate)
	d, _, _ = d.AddOperation(user.ID, "getName()", model.VisibilityPublic)
	d, _, _ = d.AddNote(user.ID, "central entity", model.NoteInformation)
	d, _ = d.AddClass("Profile")
	d, _, _ = d.AddConnection(user.ID, "Profile", model.RelComposition)

	lay := layout.Build(d, layout.DefaultConfig())
	routes := route.Plan(d, lay)
	return d, lay, routes
}

func TestPNG(t *testing.T) {
	d, lay, routes := renderInput(t)

	data, err := PNG(d, lay, routes, DefaultConfig())
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Errorf("output is not a PNG, first bytes: %q", data[:min(8, len(data))])
	}
}

func TestPNGDeterministic(t *testing.T) {
	d, lay, routes := renderInput(t)

	first, err := PNG(d, lay, routes, DefaultConfig())
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	second, err := PNG(d, lay, routes, DefaultConfig())
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("repeated renders differ")
	}
}

func TestPNGRejectsBadColor(t *testing.T) {
	d, lay, routes := renderInput(t)
	d = d.SetStyle(model.Style{BorderThickness: 2, BorderColor: "no-such-color"})

	_, err := PNG(d, lay, routes, DefaultConfig())
	if !errors.Is(err, errors.ErrCodeInvalidColor) {
		t.Errorf("error = %v, want INVALID_COLOR", err)
	}
}

func TestPNGEmptyDiagram(t *testing.T) {
	d := model.New()
	lay := layout.Build(d, layout.DefaultConfig())

	data, err := PNG(d, lay, route.Result{}, DefaultConfig())
	if err != nil {
		t.Fatalf("PNG on empty diagram: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty diagram should still produce a canvas")
	}
}

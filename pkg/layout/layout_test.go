package layout

import (
	"testing"

	"classdraw/pkg/model"
)

func sampleDiagram(t *testing.T) model.Diagram {
	t.Helper()
	d := model.New()
	d, user := d.AddClass("User")
	d, _, _ = d.AddAttribute(user.ID, "name", "string", model.VisibilityPrivate)
	d, _, _ = d.AddOperation(user.ID, "getName()", model.VisibilityPublic)
	d, _, _ = d.AddNote(user.ID, "central entity", model.NoteInformation)
	d, profile := d.AddClass("Profile")
	d, _, _ = d.AddAttribute(profile.ID, "bio", "string", model.VisibilityPublic)
	d, _ = d.AddClass("Session")
	return d
}

func TestBodyLinesDividers(t *testing.T) {
	tests := []struct {
		name string
		c    model.ClassBox
		want []string
	}{
		{
			name: "AttrsAndOps",
			c: model.ClassBox{
				Attributes: []model.Attribute{{Name: "name", Type: "string", Visibility: model.VisibilityPrivate}},
				Operations: []model.Operation{{Name: "getName()", Visibility: model.VisibilityPublic}},
			},
			want: []string{"-name: string", "--", "+getName()"},
		},
		{
			name: "OnlyAttrs",
			c: model.ClassBox{
				Attributes: []model.Attribute{{Name: "x", Type: "int", Visibility: model.VisibilityPublic}},
			},
			want: []string{"+x: int"},
		},
		{
			name: "NotesThenOps",
			c: model.ClassBox{
				Notes:      []model.Note{{Text: "todo", Kind: model.NoteStandard}},
				Operations: []model.Operation{{Name: "run()", Visibility: model.VisibilityPublic}},
			},
			want: []string{"todo", "--", "+run()"},
		},
		{
			name: "EmptyNoteSkipped",
			c: model.ClassBox{
				Notes: []model.Note{{Text: "  ", Kind: model.NoteStandard}},
				Operations: []model.Operation{
					{Name: "run()", Visibility: model.VisibilityPublic},
				},
			},
			want: []string{"+run()"},
		},
		{
			name: "Empty",
			c:    model.ClassBox{},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BodyLines(tt.c)
			if len(got) != len(tt.want) {
				t.Fatalf("BodyLines() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBoxSizeMinimum(t *testing.T) {
	m := DefaultMetrics()
	w, h := m.BoxSize(model.ClassBox{Name: "A"})
	if w != m.MinBoxWidth {
		t.Errorf("empty class width = %v, want min %v", w, m.MinBoxWidth)
	}
	wantH := m.LineHeight + 2*m.PadY
	if h != wantH {
		t.Errorf("empty class height = %v, want header-only %v", h, wantH)
	}
}

func TestBuildDeterminism(t *testing.T) {
	d := sampleDiagram(t)
	cfg := DefaultConfig()

	first := Build(d, cfg)
	second := Build(d, cfg)

	if len(first.Boxes) != len(second.Boxes) || len(first.Notes) != len(second.Notes) {
		t.Fatal("placement counts differ between runs")
	}
	for id, r := range first.Boxes {
		if second.Boxes[id] != r {
			t.Errorf("box %s: %+v vs %+v", id, r, second.Boxes[id])
		}
	}
	for id, r := range first.Notes {
		if second.Notes[id] != r {
			t.Errorf("note %s: %+v vs %+v", id, r, second.Notes[id])
		}
	}
}

func TestBuildCollisionFree(t *testing.T) {
	d := sampleDiagram(t)
	res := Build(d, DefaultConfig())

	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", res.Warnings)
	}

	var all []Rect
	for _, r := range res.Boxes {
		all = append(all, r)
	}
	for _, r := range res.Notes {
		all = append(all, r)
	}
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if area := all[i].OverlapArea(all[j]); area > 0 {
				t.Errorf("rectangles %d and %d overlap by %v: %+v %+v", i, j, area, all[i], all[j])
			}
		}
	}
}

func TestBuildRowWrap(t *testing.T) {
	d := model.New()
	d, a := d.AddClass("Alpha")
	d, b := d.AddClass("Beta")

	cfg := DefaultConfig()
	cfg.MaxCanvasWidth = cfg.Metrics.MinBoxWidth + 1 // only one box fits per row

	res := Build(d, cfg)
	ra, rb := res.Boxes[a.ID], res.Boxes[b.ID]
	if ra.Y == rb.Y {
		t.Errorf("expected wrap to a new row: %+v %+v", ra, rb)
	}
	if rb.X != 0 {
		t.Errorf("wrapped box should restart at x=0, got %v", rb.X)
	}
}

func TestNoteOverflowWarning(t *testing.T) {
	d := model.New()
	d, c := d.AddClass("Crowded")
	d, first, _ := d.AddNote(c.ID, "first", model.NoteStandard)
	d, second, _ := d.AddNote(c.ID, "second", model.NoteStandard)

	cfg := DefaultConfig()
	cfg.MaxRings = 1
	cfg.RingStep = 0.5 // rings too tight to escape the first note

	res := Build(d, cfg)
	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %+v, want exactly one", res.Warnings)
	}
	if res.Warnings[0].EntityID != second.ID {
		t.Errorf("warning entity = %s, want %s", res.Warnings[0].EntityID, second.ID)
	}
	// Both notes are still placed despite the overflow.
	if _, ok := res.Notes[first.ID]; !ok {
		t.Error("first note missing from result")
	}
	if _, ok := res.Notes[second.ID]; !ok {
		t.Error("overflowing note must still receive a placement")
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 12, Y: 0, W: 10, H: 10}

	if a.Intersects(b, 0) {
		t.Error("disjoint rects should not intersect with zero padding")
	}
	if !a.Intersects(b, 2) {
		t.Error("padding should make near rects intersect")
	}
	if got := a.OverlapArea(Rect{X: 5, Y: 5, W: 10, H: 10}); got != 25 {
		t.Errorf("OverlapArea = %v, want 25", got)
	}
}

package uml

import (
	"strings"
	"testing"

	"classdraw/pkg/errors"
	"classdraw/pkg/model"
)

func TestEncodeUserBlock(t *testing.T) {
	d := model.New()
	d, user := d.AddClass("User")
	d, _, _ = d.AddAttribute(user.ID, "name", "string", model.VisibilityPrivate)
	d, _, _ = d.AddOperation(user.ID, "getName()", model.VisibilityPublic)

	want := "@startuml\n" +
		"class User {\n" +
		"  -name: string\n" +
		"  --\n" +
		"  +getName()\n" +
		"}\n" +
		"@enduml\n"

	if got := Encode(d); got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeConnections(t *testing.T) {
	d := model.New()
	d, user := d.AddClass("User")
	d, _ = d.AddClass("Profile")
	d, _, _ = d.AddConnection(user.ID, "Profile", model.RelComposition)
	d, _, _ = d.AddConnection(user.ID, "", model.RelAssociation) // omitted

	out := Encode(d)
	if !strings.Contains(out, "User *-- Profile\n") {
		t.Errorf("composition line missing:\n%s", out)
	}
	if strings.Count(out, "\nUser ") != 1 {
		t.Errorf("empty-target connection must be omitted:\n%s", out)
	}
}

func TestEncodeDividerPlacement(t *testing.T) {
	tests := []struct {
		name     string
		build    func() model.Diagram
		dividers int
	}{
		{
			name: "NotesAttrsOps",
			build: func() model.Diagram {
				d := model.New()
				d, c := d.AddClass("A")
				d, _, _ = d.AddNote(c.ID, "hint", model.NoteStandard)
				d, _, _ = d.AddAttribute(c.ID, "x", "int", model.VisibilityPublic)
				d, _, _ = d.AddOperation(c.ID, "run()", model.VisibilityPublic)
				return d
			},
			dividers: 2,
		},
		{
			name: "OnlyOps",
			build: func() model.Diagram {
				d := model.New()
				d, c := d.AddClass("A")
				d, _, _ = d.AddOperation(c.ID, "run()", model.VisibilityPublic)
				return d
			},
			dividers: 0,
		},
		{
			name: "EmptyNoteThenOps",
			build: func() model.Diagram {
				d := model.New()
				d, c := d.AddClass("A")
				d, _, _ = d.AddNote(c.ID, "   ", model.NoteStandard)
				d, _, _ = d.AddOperation(c.ID, "run()", model.VisibilityPublic)
				return d
			},
			dividers: 0,
		},
		{
			name: "Empty",
			build: func() model.Diagram {
				d := model.New()
				d, _ = d.AddClass("A")
				return d
			},
			dividers: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Encode(tt.build())
			if got := strings.Count(out, "  --\n"); got != tt.dividers {
				t.Errorf("divider count = %d, want %d:\n%s", got, tt.dividers, out)
			}
		})
	}
}

func TestEncodeNoteLine(t *testing.T) {
	d := model.New()
	d, c := d.AddClass("Svc")
	d, _, _ = d.AddNote(c.ID, "check twice", model.NoteWarning)

	out := Encode(d)
	if !strings.Contains(out, "  note [Warning]: check twice\n") {
		t.Errorf("note line missing or malformed:\n%s", out)
	}
}

func TestSymbolTable(t *testing.T) {
	tests := []struct {
		rel model.Relationship
		sym string
	}{
		{model.RelInheritance, "<|--"},
		{model.RelAssociation, "--"},
		{model.RelAggregation, "o--"},
		{model.RelComposition, "*--"},
		{model.RelDependency, "..>"},
	}

	for _, tt := range tests {
		t.Run(string(tt.rel), func(t *testing.T) {
			if got := SymbolFor(tt.rel); got != tt.sym {
				t.Errorf("SymbolFor() = %q, want %q", got, tt.sym)
			}
			back, ok := RelationFromSymbol(tt.sym)
			if !ok || back != tt.rel {
				t.Errorf("RelationFromSymbol(%q) = %v, %v", tt.sym, back, ok)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	d := model.New()
	d, user := d.AddClass("User")
	d, _, _ = d.AddNote(user.ID, "central entity", model.NoteInformation)
	d, _, _ = d.AddAttribute(user.ID, "name", "string", model.VisibilityPrivate)
	d, _, _ = d.AddAttribute(user.ID, "age", "int", model.VisibilityProtected)
	d, _, _ = d.AddOperation(user.ID, "getName()", model.VisibilityPublic)
	d, profile := d.AddClass("Profile")
	d, _, _ = d.AddOperation(profile.ID, "refresh()", model.VisibilityPrivate)
	d, _, _ = d.AddConnection(user.ID, "Profile", model.RelComposition)
	d, _, _ = d.AddConnection(profile.ID, "User", model.RelDependency)

	text := Encode(d)
	got, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v\n%s", err, text)
	}

	if len(got.Classes) != 2 {
		t.Fatalf("classes = %d, want 2", len(got.Classes))
	}
	gu, gp := got.Classes[0], got.Classes[1]
	if gu.Name != "User" || gp.Name != "Profile" {
		t.Fatalf("class order lost: %s, %s", gu.Name, gp.Name)
	}
	if len(gu.Notes) != 1 || gu.Notes[0].Text != "central entity" || gu.Notes[0].Kind != model.NoteInformation {
		t.Errorf("notes = %+v", gu.Notes)
	}
	if len(gu.Attributes) != 2 || gu.Attributes[0].Line() != "-name: string" || gu.Attributes[1].Line() != "#age: int" {
		t.Errorf("attributes = %+v", gu.Attributes)
	}
	if len(gu.Operations) != 1 || gu.Operations[0].Line() != "+getName()" {
		t.Errorf("operations = %+v", gu.Operations)
	}
	if len(gu.Connections) != 1 || gu.Connections[0].Target != "Profile" || gu.Connections[0].Relation != model.RelComposition {
		t.Errorf("user connections = %+v", gu.Connections)
	}
	if len(gp.Connections) != 1 || gp.Connections[0].Relation != model.RelDependency {
		t.Errorf("profile connections = %+v", gp.Connections)
	}

	// A second encode of the parsed diagram reproduces the text exactly.
	if again := Encode(got); again != text {
		t.Errorf("re-encode differs:\n%s\nvs\n%s", again, text)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"MissingStart", "class A {\n}\n@enduml\n"},
		{"MissingEnd", "@startuml\nclass A {\n}\n"},
		{"UnclosedBlock", "@startuml\nclass A {\n+run()\n@enduml\n"},
		{"NestedBrace", "@startuml\nclass A {\nclass B {\n}\n}\n@enduml\n"},
		{"BadSymbol", "@startuml\nclass A {\n}\nA ==> B\n@enduml\n"},
		{"BadNoteKind", "@startuml\nclass A {\nnote [Fancy]: x\n}\n@enduml\n"},
		{"BadBodyLine", "@startuml\nclass A {\nwhatever\n}\n@enduml\n"},
		{"UnknownSource", "@startuml\nB -- C\n@enduml\n"},
		{"Empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text)
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !errors.Is(err, errors.ErrCodeParse) {
				t.Errorf("error code = %v, want PARSE_ERROR", errors.GetCode(err))
			}
			if len(got.Classes) != 0 {
				t.Errorf("parse failure must not return a partial diagram: %+v", got.Classes)
			}
		})
	}
}

func TestParseToleratesBlankLinesAndIndentation(t *testing.T) {
	text := "\n@startuml\n\n   class User {\n\n      -name: string\n   }\n\nUser -- User\n@enduml\n\n"
	got, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got.Classes) != 1 || got.Classes[0].Attributes[0].Name != "name" {
		t.Errorf("parsed = %+v", got.Classes)
	}
}

func TestRoundTripBraceText(t *testing.T) {
	d := model.New()
	d, user := d.AddClass("User")
	d, _, _ = d.AddNote(user.ID, "uses {braces} in text", model.NoteStandard)
	d, _, _ = d.AddOperation(user.ID, "apply(set{int})", model.VisibilityPublic)

	got, err := Parse(Encode(d))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := got.Classes[0]
	if len(c.Notes) != 1 || c.Notes[0].Text != "uses {braces} in text" {
		t.Errorf("notes = %+v", c.Notes)
	}
	if len(c.Operations) != 1 || c.Operations[0].Name != "apply(set{int})" {
		t.Errorf("operations = %+v", c.Operations)
	}
	if Encode(got) != Encode(d) {
		t.Errorf("re-encode differs:\n%s\nvs\n%s", Encode(got), Encode(d))
	}
}

func TestRoundTripSpacedClassNames(t *testing.T) {
	d := model.New()
	d, user := d.AddClass("User Account")
	d, _ = d.AddClass("Audit Log")
	d, _, _ = d.AddConnection(user.ID, "Audit Log", model.RelAssociation)
	d, _, _ = d.AddConnection(user.ID, "Audit Log", model.RelInheritance)

	got, err := Parse(Encode(d))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Classes[0].Name != "User Account" || got.Classes[1].Name != "Audit Log" {
		t.Errorf("names = %q, %q", got.Classes[0].Name, got.Classes[1].Name)
	}
	conns := got.Classes[0].Connections
	if len(conns) != 2 || conns[0].Target != "Audit Log" || conns[1].Relation != model.RelInheritance {
		t.Errorf("connections = %+v", conns)
	}
	if Encode(got) != Encode(d) {
		t.Errorf("re-encode differs:\n%s\nvs\n%s", Encode(got), Encode(d))
	}
}

package model

import (
	"strings"
	"testing"
)

func hasIssue(issues []Issue, field, substr string) bool {
	for _, is := range issues {
		if is.Field == field && strings.Contains(is.Message, substr) {
			return true
		}
	}
	return false
}

func TestValidateCleanDiagram(t *testing.T) {
	d := New()
	d, user := d.AddClass("User")
	d, _, _ = d.AddAttribute(user.ID, "name", "string", VisibilityPrivate)
	d, _, _ = d.AddOperation(user.ID, "getName()", VisibilityPublic)
	d, _ = d.AddClass("Profile")
	d, _, _ = d.AddConnection(user.ID, "Profile", RelComposition)

	r := Validate(d)
	if !r.Exportable() {
		t.Errorf("clean diagram not exportable: %+v", r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("unexpected warnings: %+v", r.Warnings)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func() Diagram
		field string
		want  string
	}{
		{
			name: "EmptyClassName",
			build: func() Diagram {
				d := New()
				d, _ = d.AddClass("")
				return d
			},
			field: "name",
			want:  "must not be empty",
		},
		{
			name: "DuplicateClassName",
			build: func() Diagram {
				d := New()
				d, _ = d.AddClass("User")
				d, _ = d.AddClass("User")
				return d
			},
			field: "name",
			want:  "duplicate class name",
		},
		{
			name: "ThicknessTooLarge",
			build: func() Diagram {
				return New().SetStyle(Style{BorderThickness: 6, BorderColor: "black"})
			},
			field: "borderThickness",
			want:  "between 1 and 5",
		},
		{
			name: "ThicknessTooSmall",
			build: func() Diagram {
				return New().SetStyle(Style{BorderThickness: 0, BorderColor: "black"})
			},
			field: "borderThickness",
			want:  "between 1 and 5",
		},
		{
			name: "UnknownVisibility",
			build: func() Diagram {
				d := New()
				d, c := d.AddClass("User")
				i := d.FindClass(c.ID)
				d.Classes[i].Attributes = []Attribute{{ID: "a1", Name: "x", Visibility: "package"}}
				return d
			},
			field: "visibility",
			want:  "unknown visibility",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Validate(tt.build())
			if r.Exportable() {
				t.Fatal("expected errors, diagram reported exportable")
			}
			if !hasIssue(r.Errors, tt.field, tt.want) {
				t.Errorf("missing error on %q containing %q: %+v", tt.field, tt.want, r.Errors)
			}
		})
	}
}

func TestValidateWarnings(t *testing.T) {
	d := New()
	d, user := d.AddClass("User")
	d, _, _ = d.AddConnection(user.ID, "Ghost", RelAssociation)
	d, _, _ = d.AddNote(user.ID, "  ", NoteStandard)
	d, _, _ = d.AddAttribute(user.ID, "", "string", VisibilityPublic)
	d, _, _ = d.AddOperation(user.ID, "", VisibilityPublic)

	r := Validate(d)
	if !r.Exportable() {
		t.Fatalf("warnings must not block export: %+v", r.Errors)
	}

	checks := []struct{ field, substr string }{
		{"connection", "Ghost"},
		{"note", "empty text"},
		{"attribute", "empty name"},
		{"operation", "empty name"},
	}
	for _, c := range checks {
		if !hasIssue(r.Warnings, c.field, c.substr) {
			t.Errorf("missing warning on %q containing %q: %+v", c.field, c.substr, r.Warnings)
		}
	}
}

func TestValidateDeterministicOrder(t *testing.T) {
	d := New()
	d, _ = d.AddClass("")
	d, _ = d.AddClass("A")
	d, _ = d.AddClass("A")

	first := Validate(d)
	second := Validate(d)

	if len(first.Errors) != len(second.Errors) {
		t.Fatalf("error counts differ: %d vs %d", len(first.Errors), len(second.Errors))
	}
	for i := range first.Errors {
		if first.Errors[i] != second.Errors[i] {
			t.Errorf("error %d differs: %+v vs %+v", i, first.Errors[i], second.Errors[i])
		}
	}
}

func TestValidateConnectionWarnings(t *testing.T) {
	d := New()
	d, user := d.AddClass("User")
	d, _ = d.AddClass("Profile")
	d, _, _ = d.AddConnection(user.ID, "User", RelAssociation)
	d, _, _ = d.AddConnection(user.ID, "Profile", RelComposition)
	d, _, _ = d.AddConnection(user.ID, "Profile", RelComposition)
	d, _, _ = d.AddConnection(user.ID, "Profile", RelDependency)

	r := Validate(d)
	if !r.Exportable() {
		t.Fatalf("warnings must not block export: %+v", r.Errors)
	}
	if !hasIssue(r.Warnings, "connection", "connects to itself") {
		t.Errorf("missing self-connection warning: %+v", r.Warnings)
	}
	if !hasIssue(r.Warnings, "connection", "duplicate composition connection to Profile") {
		t.Errorf("missing duplicate-connection warning: %+v", r.Warnings)
	}

	// Exactly one duplicate: the dependency to the same target is distinct,
	// and the first composition is not flagged.
	dups := 0
	for _, is := range r.Warnings {
		if strings.Contains(is.Message, "duplicate") {
			dups++
		}
	}
	if dups != 1 {
		t.Errorf("duplicate warnings = %d, want 1: %+v", dups, r.Warnings)
	}
}

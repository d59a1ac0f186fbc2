// Package model defines the in-memory diagram representation: classes,
// members, annotation notes, inter-class connections, and global styling.
//
// The model is pure data plus invariants. All behavior lives in the
// mutation surface (mutate.go), which treats a Diagram as an immutable
// snapshot: every operation returns an updated copy and never aliases
// the input's slices. Validation of a full Diagram lives in validate.go.
package model

import (
	"encoding/json"
	"strings"
)

// =============================================================================
// Diagram - Canonical Serialization Format
// =============================================================================

// Diagram is the root document: an ordered sequence of class boxes plus
// global styling. Declaration order is the canonical render order.
type Diagram struct {
	Classes []ClassBox `json:"classes" bson:"classes"`
	Style   Style      `json:"style" bson:"style"`
}

// Style is the global diagram styling. Border thickness is validated to
// [1,5] by the validator, never silently clamped. BorderColor is either
// a palette name or a #rrggbb hex value; resolution happens at render time.
type Style struct {
	BorderThickness int    `json:"border_thickness" bson:"border_thickness"`
	BorderColor     string `json:"border_color,omitempty" bson:"border_color,omitempty"`
}

// DefaultStyle returns the styling applied to a freshly constructed Diagram.
func DefaultStyle() Style {
	return Style{BorderThickness: 2, BorderColor: "black"}
}

// New constructs an empty Diagram with default styling.
func New() Diagram {
	return Diagram{Style: DefaultStyle()}
}

// =============================================================================
// ClassBox and Children
// =============================================================================

// ClassBox is one class in the diagram. It owns its attribute, operation,
// note, and connection sequences; child ids are unique within the owner.
type ClassBox struct {
	ID          string       `json:"id" bson:"id"`
	Name        string       `json:"name" bson:"name"`
	Attributes  []Attribute  `json:"attributes,omitempty" bson:"attributes,omitempty"`
	Operations  []Operation  `json:"operations,omitempty" bson:"operations,omitempty"`
	Notes       []Note       `json:"notes,omitempty" bson:"notes,omitempty"`
	Connections []Connection `json:"connections,omitempty" bson:"connections,omitempty"`
}

// Attribute is a named, typed class member.
type Attribute struct {
	ID         string     `json:"id" bson:"id"`
	Name       string     `json:"name" bson:"name"`
	Type       string     `json:"type,omitempty" bson:"type,omitempty"`
	Visibility Visibility `json:"visibility" bson:"visibility"`
}

// Line returns the rendered notation line for the attribute, e.g.
// "-name: string". Layout sizing and the serializer both consume this
// so box widths always match the exported text.
func (a Attribute) Line() string {
	if a.Type == "" {
		return a.Visibility.Symbol() + a.Name
	}
	return a.Visibility.Symbol() + a.Name + ": " + a.Type
}

// Operation is a class method. By convention the name includes parentheses.
type Operation struct {
	ID         string     `json:"id" bson:"id"`
	Name       string     `json:"name" bson:"name"`
	Visibility Visibility `json:"visibility" bson:"visibility"`
}

// Line returns the rendered notation line for the operation, e.g. "+getName()".
func (o Operation) Line() string {
	return o.Visibility.Symbol() + o.Name
}

// Note is an annotation attached to a class. Text may be empty; empty
// notes are dropped at serialization time, not at model time.
type Note struct {
	ID   string   `json:"id" bson:"id"`
	Text string   `json:"text" bson:"text"`
	Kind NoteKind `json:"kind" bson:"kind"`
}

// Empty reports whether the note has no visible text. Empty notes are
// still placed by layout but omitted by the serializer.
func (n Note) Empty() bool {
	return strings.TrimSpace(n.Text) == ""
}

// Connection relates the owning class to a target class by name, not id.
// The target may reference a class not yet created; dangling targets are
// a validator warning, never an error.
type Connection struct {
	ID       string       `json:"id" bson:"id"`
	Target   string       `json:"target" bson:"target"`
	Relation Relationship `json:"relation" bson:"relation"`
}

// =============================================================================
// Lookup Helpers
// =============================================================================

// FindClass returns the index of the class with the given id, or -1.
func (d Diagram) FindClass(id string) int {
	for i, c := range d.Classes {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// ClassByName returns the class with the given name, matching case-sensitively
// in declaration order. The second result reports whether a match was found.
func (d Diagram) ClassByName(name string) (ClassBox, bool) {
	for _, c := range d.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return ClassBox{}, false
}

// =============================================================================
// JSON Round-Trip
// =============================================================================

// Marshal serializes the Diagram to indented JSON.
func Marshal(d Diagram) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal deserializes JSON bytes to a Diagram.
func Unmarshal(data []byte) (Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return Diagram{}, err
	}
	return d, nil
}

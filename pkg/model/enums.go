package model

import "classdraw/pkg/errors"

// Visibility is the access level of a class member.
type Visibility string

// Member visibility levels.
const (
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
)

// Symbol returns the UML prefix symbol for the visibility.
// The mapping is total over the declared constants; unknown values
// are rejected by ParseVisibility and the validator, never mapped.
func (v Visibility) Symbol() string {
	switch v {
	case VisibilityPrivate:
		return "-"
	case VisibilityProtected:
		return "#"
	default:
		return "+"
	}
}

// Valid reports whether v is one of the declared visibility levels.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityProtected:
		return true
	}
	return false
}

// ParseVisibility converts a string to a Visibility.
// Returns ErrCodeInvalidVisibility for unrecognized values.
func ParseVisibility(s string) (Visibility, error) {
	v := Visibility(s)
	if !v.Valid() {
		return "", errors.New(errors.ErrCodeInvalidVisibility, "unknown visibility: %q", s)
	}
	return v, nil
}

// VisibilityFromSymbol converts a UML prefix symbol back to a Visibility.
// This is the inverse of [Visibility.Symbol], used by the notation parser.
func VisibilityFromSymbol(sym byte) (Visibility, bool) {
	switch sym {
	case '+':
		return VisibilityPublic, true
	case '-':
		return VisibilityPrivate, true
	case '#':
		return VisibilityProtected, true
	}
	return "", false
}

// Relationship is the kind of a connection between two classes.
type Relationship string

// Connection relationship kinds.
const (
	RelInheritance Relationship = "inheritance"
	RelAssociation Relationship = "association"
	RelAggregation Relationship = "aggregation"
	RelComposition Relationship = "composition"
	RelDependency  Relationship = "dependency"
)

// Relationships lists all relationship kinds in canonical order.
var Relationships = []Relationship{
	RelInheritance,
	RelAssociation,
	RelAggregation,
	RelComposition,
	RelDependency,
}

// Valid reports whether r is one of the declared relationship kinds.
func (r Relationship) Valid() bool {
	switch r {
	case RelInheritance, RelAssociation, RelAggregation, RelComposition, RelDependency:
		return true
	}
	return false
}

// ParseRelationship converts a string to a Relationship.
// Returns ErrCodeInvalidRelationship for unrecognized values.
func ParseRelationship(s string) (Relationship, error) {
	r := Relationship(s)
	if !r.Valid() {
		return "", errors.New(errors.ErrCodeInvalidRelation, "unknown relationship: %q", s)
	}
	return r, nil
}

// NoteKind classifies an annotation note attached to a class.
type NoteKind string

// Note kinds.
const (
	NoteStandard     NoteKind = "Standard"
	NoteInformation  NoteKind = "Information"
	NoteWarning      NoteKind = "Warning"
	NoteSuccess      NoteKind = "Success"
	NoteConfirmation NoteKind = "Confirmation"
	NoteDecorative   NoteKind = "Decorative"
)

// Valid reports whether k is one of the declared note kinds.
func (k NoteKind) Valid() bool {
	switch k {
	case NoteStandard, NoteInformation, NoteWarning, NoteSuccess, NoteConfirmation, NoteDecorative:
		return true
	}
	return false
}

// ParseNoteKind converts a string to a NoteKind.
// Returns ErrCodeInvalidNoteKind for unrecognized values.
func ParseNoteKind(s string) (NoteKind, error) {
	k := NoteKind(s)
	if !k.Valid() {
		return "", errors.New(errors.ErrCodeInvalidNoteKind, "unknown note kind: %q", s)
	}
	return k, nil
}

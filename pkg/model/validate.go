package model

import "strings"

// =============================================================================
// Validation Report
// =============================================================================

// Issue is one validation finding. ClassID is empty for diagram-level
// findings such as styling problems.
type Issue struct {
	ClassID string `json:"class_id,omitempty" bson:"class_id,omitempty"`
	Field   string `json:"field" bson:"field"`
	Message string `json:"message" bson:"message"`
}

// Report collects structural errors and advisory warnings for a Diagram.
// Errors block export; warnings never do.
type Report struct {
	Errors   []Issue `json:"errors" bson:"errors"`
	Warnings []Issue `json:"warnings" bson:"warnings"`
}

// Exportable reports whether the Diagram passed with zero errors.
// Warnings are advisory and do not affect exportability.
func (r Report) Exportable() bool {
	return len(r.Errors) == 0
}

func (r *Report) addError(classID, field, message string) {
	r.Errors = append(r.Errors, Issue{ClassID: classID, Field: field, Message: message})
}

func (r *Report) addWarning(classID, field, message string) {
	r.Warnings = append(r.Warnings, Issue{ClassID: classID, Field: field, Message: message})
}

// =============================================================================
// Validator
// =============================================================================

// Validate checks the structural integrity of a Diagram.
//
// Errors: empty class name, duplicate class name (case-sensitive),
// border thickness outside [1,5], unrecognized visibility.
// Warnings: connection target matching no declared class name, a class
// connecting to itself, duplicate connections (same target and
// relationship), note with empty text, attribute or operation with an
// empty name.
//
// Findings are ordered: diagram-level first, then per class in declaration
// order, so repeated runs on an unchanged Diagram produce identical reports.
func Validate(d Diagram) Report {
	var r Report

	if d.Style.BorderThickness < 1 || d.Style.BorderThickness > 5 {
		r.addError("", "borderThickness",
			"border thickness must be between 1 and 5")
	}

	names := make(map[string]bool, len(d.Classes))
	for _, c := range d.Classes {
		if c.Name != "" {
			names[c.Name] = true
		}
	}

	seen := make(map[string]bool, len(d.Classes))
	for _, c := range d.Classes {
		if c.Name == "" {
			r.addError(c.ID, "name", "class name must not be empty")
		} else if seen[c.Name] {
			r.addError(c.ID, "name", "duplicate class name: "+c.Name)
		}
		seen[c.Name] = true

		for _, a := range c.Attributes {
			if !a.Visibility.Valid() {
				r.addError(c.ID, "visibility",
					"unknown visibility on attribute "+a.Name+": "+string(a.Visibility))
			}
			if a.Name == "" {
				r.addWarning(c.ID, "attribute", "attribute with empty name")
			}
		}

		for _, o := range c.Operations {
			if !o.Visibility.Valid() {
				r.addError(c.ID, "visibility",
					"unknown visibility on operation "+o.Name+": "+string(o.Visibility))
			}
			if o.Name == "" {
				r.addWarning(c.ID, "operation", "operation with empty name")
			}
		}

		for _, n := range c.Notes {
			if strings.TrimSpace(n.Text) == "" {
				r.addWarning(c.ID, "note", "note with empty text will be omitted on export")
			}
		}

		seenConns := make(map[string]bool, len(c.Connections))
		for _, conn := range c.Connections {
			if conn.Target == "" {
				continue
			}
			if !names[conn.Target] {
				r.addWarning(c.ID, "connection",
					"connection target does not match any class: "+conn.Target)
			}
			if conn.Target == c.Name {
				r.addWarning(c.ID, "connection",
					"class connects to itself: "+c.Name)
			}
			key := conn.Target + "\x00" + string(conn.Relation)
			if seenConns[key] {
				r.addWarning(c.ID, "connection",
					"duplicate "+string(conn.Relation)+" connection to "+conn.Target)
			}
			seenConns[key] = true
		}
	}

	return r
}

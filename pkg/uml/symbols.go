// Package uml serializes a diagram to the canonical block-structured
// text notation and parses it back.
//
// The textual form carries no ids, so a parse produces fresh ids; the
// round-trip guarantee is structural equivalence, not id equality.
package uml

import "classdraw/pkg/model"

// connection symbols in the textual notation, symmetric with the
// router's marker table.
const (
	symInheritance = "<|--"
	symAssociation = "--"
	symAggregation = "o--"
	symComposition = "*--"
	symDependency  = "..>"
)

// SymbolFor returns the connection symbol for a relationship kind.
func SymbolFor(rel model.Relationship) string {
	switch rel {
	case model.RelInheritance:
		return symInheritance
	case model.RelAggregation:
		return symAggregation
	case model.RelComposition:
		return symComposition
	case model.RelDependency:
		return symDependency
	default:
		return symAssociation
	}
}

// RelationFromSymbol is the inverse of SymbolFor, used by the parser.
func RelationFromSymbol(sym string) (model.Relationship, bool) {
	switch sym {
	case symInheritance:
		return model.RelInheritance, true
	case symAssociation:
		return model.RelAssociation, true
	case symAggregation:
		return model.RelAggregation, true
	case symComposition:
		return model.RelComposition, true
	case symDependency:
		return model.RelDependency, true
	}
	return "", false
}

package uml

import (
	"strings"

	"classdraw/pkg/errors"
	"classdraw/pkg/model"
)

// Parse recovers a diagram from the canonical text notation.
//
// The document must be delimited by @startuml/@enduml and every class
// block must close its brace. Ids are not part of the textual form, so
// every parsed entity receives a fresh id. A parse failure returns the
// zero Diagram and an error, never a partially populated Diagram.
func Parse(text string) (model.Diagram, error) {
	type numbered struct {
		n    int
		text string
	}
	var lines []numbered
	for i, raw := range strings.Split(text, "\n") {
		t := strings.TrimSpace(raw)
		if t != "" {
			lines = append(lines, numbered{n: i + 1, text: t})
		}
	}

	if len(lines) < 2 || lines[0].text != docStart || lines[len(lines)-1].text != docEnd {
		return model.Diagram{}, errors.New(errors.ErrCodeParse,
			"document must be delimited by %s and %s", docStart, docEnd)
	}

	d := model.New()
	var current *model.ClassBox

	for _, ln := range lines[1 : len(lines)-1] {
		switch {
		case current != nil:
			if ln.text == "}" {
				d.Classes = append(d.Classes, *current)
				current = nil
				continue
			}
			if err := parseBodyLine(current, ln.text, ln.n); err != nil {
				return model.Diagram{}, err
			}

		case strings.HasPrefix(ln.text, "class "):
			if !strings.HasSuffix(ln.text, "{") {
				return model.Diagram{}, errors.New(errors.ErrCodeParse,
					"line %d: class declaration must open a block", ln.n)
			}
			name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(ln.text, "class "), "{"))
			current = &model.ClassBox{ID: model.NewID(), Name: name}

		default:
			conn, src, err := parseConnectionLine(ln.text, ln.n)
			if err != nil {
				return model.Diagram{}, err
			}
			i := classIndexByName(d, src)
			if i < 0 {
				return model.Diagram{}, errors.New(errors.ErrCodeParse,
					"line %d: connection source %q is not a declared class", ln.n, src)
			}
			d.Classes[i].Connections = append(d.Classes[i].Connections, conn)
		}
	}

	if current != nil {
		return model.Diagram{}, errors.New(errors.ErrCodeParse,
			"class %s block is never closed", current.Name)
	}

	return d, nil
}

// parseBodyLine handles one line inside a class block: a divider, a
// note, or a visibility-prefixed member.
func parseBodyLine(c *model.ClassBox, line string, n int) error {
	if line == divider {
		return nil
	}

	if strings.HasPrefix(line, "note ") {
		rest := strings.TrimPrefix(line, "note ")
		if !strings.HasPrefix(rest, "[") {
			return errors.New(errors.ErrCodeParse, "line %d: malformed note, want note [Kind]: text", n)
		}
		end := strings.Index(rest, "]: ")
		if end < 0 {
			return errors.New(errors.ErrCodeParse, "line %d: malformed note, want note [Kind]: text", n)
		}
		kind, err := model.ParseNoteKind(rest[1:end])
		if err != nil {
			return errors.Wrap(errors.ErrCodeParse, err, "line %d", n)
		}
		c.Notes = append(c.Notes, model.Note{ID: model.NewID(), Text: rest[end+3:], Kind: kind})
		return nil
	}

	vis, ok := model.VisibilityFromSymbol(line[0])
	if !ok {
		return errors.New(errors.ErrCodeParse, "line %d: unrecognized class body line %q", n, line)
	}
	body := line[1:]

	// Attributes carry a type after a colon; anything else is an operation.
	if i := strings.Index(body, ":"); i >= 0 {
		c.Attributes = append(c.Attributes, model.Attribute{
			ID:         model.NewID(),
			Name:       strings.TrimSpace(body[:i]),
			Type:       strings.TrimSpace(body[i+1:]),
			Visibility: vis,
		})
		return nil
	}
	c.Operations = append(c.Operations, model.Operation{
		ID:         model.NewID(),
		Name:       strings.TrimSpace(body),
		Visibility: vis,
	})
	return nil
}

// connectionSymbols in match order. The association symbol goes last
// because it terminates the three longer marker symbols.
var connectionSymbols = []string{
	symInheritance, symAggregation, symComposition, symDependency, symAssociation,
}

// parseConnectionLine handles "<Source> <symbol> <Target>". The split
// anchors on the symbol token, so class names may contain spaces.
func parseConnectionLine(line string, n int) (model.Connection, string, error) {
	for _, sym := range connectionSymbols {
		i := strings.Index(line, " "+sym+" ")
		if i < 0 {
			continue
		}
		src := strings.TrimSpace(line[:i])
		target := strings.TrimSpace(line[i+len(sym)+2:])
		if src == "" || target == "" {
			break
		}
		rel, _ := RelationFromSymbol(sym)
		return model.Connection{ID: model.NewID(), Target: target, Relation: rel}, src, nil
	}
	return model.Connection{}, "", errors.New(errors.ErrCodeParse,
		"line %d: unrecognized statement %q", n, line)
}

func classIndexByName(d model.Diagram, name string) int {
	for i, c := range d.Classes {
		if c.Name == name {
			return i
		}
	}
	return -1
}

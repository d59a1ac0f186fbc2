package model

import "classdraw/pkg/errors"

// Mutations operate on a Diagram as an immutable snapshot: each returns
// an updated Diagram whose slices never alias the input's. Operations
// addressed to nonexistent ids fail with a NOT_FOUND-family error and
// leave the caller's Diagram untouched.

// =============================================================================
// Copy Helpers
// =============================================================================

// withClass returns a copy of d with the class at index i replaced.
func (d Diagram) withClass(i int, c ClassBox) Diagram {
	classes := make([]ClassBox, len(d.Classes))
	copy(classes, d.Classes)
	classes[i] = c
	d.Classes = classes
	return d
}

func cloneAttributes(s []Attribute) []Attribute {
	out := make([]Attribute, len(s))
	copy(out, s)
	return out
}

func cloneOperations(s []Operation) []Operation {
	out := make([]Operation, len(s))
	copy(out, s)
	return out
}

func cloneNotes(s []Note) []Note {
	out := make([]Note, len(s))
	copy(out, s)
	return out
}

func cloneConnections(s []Connection) []Connection {
	out := make([]Connection, len(s))
	copy(out, s)
	return out
}

// =============================================================================
// Class Operations
// =============================================================================

// AddClass appends a new class with a fresh id and returns it alongside
// the updated Diagram. The name may be empty; the validator flags that.
func (d Diagram) AddClass(name string) (Diagram, ClassBox) {
	c := ClassBox{ID: NewID(), Name: name}
	classes := make([]ClassBox, len(d.Classes), len(d.Classes)+1)
	copy(classes, d.Classes)
	d.Classes = append(classes, c)
	return d, c
}

// RenameClass sets the display name of the class with the given id.
func (d Diagram) RenameClass(id, name string) (Diagram, error) {
	i := d.FindClass(id)
	if i < 0 {
		return d, errors.New(errors.ErrCodeClassNotFound, "no class with id %s", id)
	}
	c := d.Classes[i]
	c.Name = name
	return d.withClass(i, c), nil
}

// RemoveClass deletes the class with the given id. Connections in other
// classes that target the removed class by name are left in place; they
// become dangling and are flagged by the validator as warnings.
func (d Diagram) RemoveClass(id string) (Diagram, error) {
	i := d.FindClass(id)
	if i < 0 {
		return d, errors.New(errors.ErrCodeClassNotFound, "no class with id %s", id)
	}
	classes := make([]ClassBox, 0, len(d.Classes)-1)
	classes = append(classes, d.Classes[:i]...)
	classes = append(classes, d.Classes[i+1:]...)
	d.Classes = classes
	return d, nil
}

// =============================================================================
// Attribute Operations
// =============================================================================

// AddAttribute appends an attribute to the addressed class.
func (d Diagram) AddAttribute(classID, name, typ string, vis Visibility) (Diagram, Attribute, error) {
	if !vis.Valid() {
		return d, Attribute{}, errors.New(errors.ErrCodeInvalidVisibility, "unknown visibility: %q", vis)
	}
	i := d.FindClass(classID)
	if i < 0 {
		return d, Attribute{}, errors.New(errors.ErrCodeClassNotFound, "no class with id %s", classID)
	}
	a := Attribute{ID: NewID(), Name: name, Type: typ, Visibility: vis}
	c := d.Classes[i]
	c.Attributes = append(cloneAttributes(c.Attributes), a)
	return d.withClass(i, c), a, nil
}

// UpdateAttribute replaces the name, type, and visibility of an attribute.
func (d Diagram) UpdateAttribute(classID, attrID, name, typ string, vis Visibility) (Diagram, error) {
	if !vis.Valid() {
		return d, errors.New(errors.ErrCodeInvalidVisibility, "unknown visibility: %q", vis)
	}
	i := d.FindClass(classID)
	if i < 0 {
		return d, errors.New(errors.ErrCodeClassNotFound, "no class with id %s", classID)
	}
	c := d.Classes[i]
	for j, a := range c.Attributes {
		if a.ID == attrID {
			attrs := cloneAttributes(c.Attributes)
			attrs[j] = Attribute{ID: attrID, Name: name, Type: typ, Visibility: vis}
			c.Attributes = attrs
			return d.withClass(i, c), nil
		}
	}
	return d, errors.New(errors.ErrCodeMemberNotFound, "no attribute with id %s in class %s", attrID, classID)
}

// RemoveAttribute deletes an attribute from the addressed class.
func (d Diagram) RemoveAttribute(classID, attrID string) (Diagram, error) {
	i := d.FindClass(classID)
	if i < 0 {
		return d, errors.New(errors.ErrCodeClassNotFound, "no class with id %s", classID)
	}
	c := d.Classes[i]
	for j, a := range c.Attributes {
		if a.ID == attrID {
			attrs := make([]Attribute, 0, len(c.Attributes)-1)
			attrs = append(attrs, c.Attributes[:j]...)
			attrs = append(attrs, c.Attributes[j+1:]...)
			c.Attributes = attrs
			return d.withClass(i, c), nil
		}
	}
	return d, errors.New(errors.ErrCodeMemberNotFound, "no attribute with id %s in class %s", attrID, classID)
}

// =============================================================================
// Operation Operations
// =============================================================================

// AddOperation appends an operation to the addressed class.
func (d Diagram) AddOperation(classID, name string, vis Visibility) (Diagram, Operation, error) {
	if !vis.Valid() {
		return d, Operation{}, errors.New(errors.ErrCodeInvalidVisibility, "unknown visibility: %q", vis)
	}
	i := d.FindClass(classID)
	if i < 0 {
		return d, Operation{}, errors.New(errors.ErrCodeClassNotFound, "no class with id %s", classID)
	}
	o := Operation{ID: NewID(), Name: name, Visibility: vis}
	c := d.Classes[i]
	c.Operations = append(cloneOperations(c.Operations), o)
	return d.withClass(i, c), o, nil
}

// UpdateOperation replaces the name and visibility of an operation.
func (d Diagram) UpdateOperation(classID, opID, name string, vis Visibility) (Diagram, error) {
	if !vis.Valid() {
		return d, errors.New(errors.ErrCodeInvalidVisibility, "unknown visibility: %q", vis)
	}
	i := d.FindClass(classID)
	if i < 0 {
		return d, errors.New(errors.ErrCodeClassNotFound, "no class with id %s", classID)
	}
	c := d.Classes[i]
	for j, o := range c.Operations {
		if o.ID == opID {
			ops := cloneOperations(c.Operations)
			ops[j] = Operation{ID: opID, Name: name, Visibility: vis}
			c.Operations = ops
			return d.withClass(i, c), nil
		}
	}
	return d, errors.New(errors.ErrCodeMemberNotFound, "no operation with id %s in class %s", opID, classID)
}

// RemoveOperation deletes an operation from the addressed class.
func (d Diagram) RemoveOperation(classID, opID string) (Diagram, error) {
	i := d.FindClass(classID)
	if i < 0 {
		return d, errors.New(errors.ErrCodeClassNotFound, "no class with id %s", classID)
	}
	c := d.Classes[i]
	for j, o := range c.Operations {
		if o.ID == opID {
			ops := make([]Operation, 0, len(c.Operations)-1)
			ops = append(ops, c.Operations[:j]...)
			ops = append(ops, c.Operations[j+1:]...)
			c.Operations = ops
			return d.withClass(i, c), nil
		}
	}
	return d, errors.New(errors.ErrCodeMemberNotFound, "no operation with id %s in class %s", opID, classID)
}

// =============================================================================
// Note Operations
// =============================================================================

// AddNote appends a note to the addressed class. Empty text is allowed;
// the serializer omits such notes, the validator warns about them.
func (d Diagram) AddNote(classID, text string, kind NoteKind) (Diagram, Note, error) {
	if !kind.Valid() {
		return d, Note{}, errors.New(errors.ErrCodeInvalidNoteKind, "unknown note kind: %q", kind)
	}
	i := d.FindClass(classID)
	if i < 0 {
		return d, Note{}, errors.New(errors.ErrCodeClassNotFound, "no class with id %s", classID)
	}
	n := Note{ID: NewID(), Text: text, Kind: kind}
	c := d.Classes[i]
	c.Notes = append(cloneNotes(c.Notes), n)
	return d.withClass(i, c), n, nil
}

// UpdateNote replaces the text and kind of a note.
func (d Diagram) UpdateNote(classID, noteID, text string, kind NoteKind) (Diagram, error) {
	if !kind.Valid() {
		return d, errors.New(errors.ErrCodeInvalidNoteKind, "unknown note kind: %q", kind)
	}
	i := d.FindClass(classID)
	if i < 0 {
		return d, errors.New(errors.ErrCodeClassNotFound, "no class with id %s", classID)
	}
	c := d.Classes[i]
	for j, n := range c.Notes {
		if n.ID == noteID {
			notes := cloneNotes(c.Notes)
			notes[j] = Note{ID: noteID, Text: text, Kind: kind}
			c.Notes = notes
			return d.withClass(i, c), nil
		}
	}
	return d, errors.New(errors.ErrCodeNoteNotFound, "no note with id %s in class %s", noteID, classID)
}

// RemoveNote deletes a note from the addressed class.
func (d Diagram) RemoveNote(classID, noteID string) (Diagram, error) {
	i := d.FindClass(classID)
	if i < 0 {
		return d, errors.New(errors.ErrCodeClassNotFound, "no class with id %s", classID)
	}
	c := d.Classes[i]
	for j, n := range c.Notes {
		if n.ID == noteID {
			notes := make([]Note, 0, len(c.Notes)-1)
			notes = append(notes, c.Notes[:j]...)
			notes = append(notes, c.Notes[j+1:]...)
			c.Notes = notes
			return d.withClass(i, c), nil
		}
	}
	return d, errors.New(errors.ErrCodeNoteNotFound, "no note with id %s in class %s", noteID, classID)
}

// =============================================================================
// Connection Operations
// =============================================================================

// AddConnection appends a connection to the addressed class. The target
// is a class name that need not exist yet; unresolved targets surface as
// validator and router warnings, supporting incremental authoring.
func (d Diagram) AddConnection(classID, target string, rel Relationship) (Diagram, Connection, error) {
	if !rel.Valid() {
		return d, Connection{}, errors.New(errors.ErrCodeInvalidRelation, "unknown relationship: %q", rel)
	}
	i := d.FindClass(classID)
	if i < 0 {
		return d, Connection{}, errors.New(errors.ErrCodeClassNotFound, "no class with id %s", classID)
	}
	conn := Connection{ID: NewID(), Target: target, Relation: rel}
	c := d.Classes[i]
	c.Connections = append(cloneConnections(c.Connections), conn)
	return d.withClass(i, c), conn, nil
}

// UpdateConnection replaces the target and relationship of a connection.
func (d Diagram) UpdateConnection(classID, connID, target string, rel Relationship) (Diagram, error) {
	if !rel.Valid() {
		return d, errors.New(errors.ErrCodeInvalidRelation, "unknown relationship: %q", rel)
	}
	i := d.FindClass(classID)
	if i < 0 {
		return d, errors.New(errors.ErrCodeClassNotFound, "no class with id %s", classID)
	}
	c := d.Classes[i]
	for j, conn := range c.Connections {
		if conn.ID == connID {
			conns := cloneConnections(c.Connections)
			conns[j] = Connection{ID: connID, Target: target, Relation: rel}
			c.Connections = conns
			return d.withClass(i, c), nil
		}
	}
	return d, errors.New(errors.ErrCodeConnectionNotFound, "no connection with id %s in class %s", connID, classID)
}

// RemoveConnection deletes a connection from the addressed class.
func (d Diagram) RemoveConnection(classID, connID string) (Diagram, error) {
	i := d.FindClass(classID)
	if i < 0 {
		return d, errors.New(errors.ErrCodeClassNotFound, "no class with id %s", classID)
	}
	c := d.Classes[i]
	for j, conn := range c.Connections {
		if conn.ID == connID {
			conns := make([]Connection, 0, len(c.Connections)-1)
			conns = append(conns, c.Connections[:j]...)
			conns = append(conns, c.Connections[j+1:]...)
			c.Connections = conns
			return d.withClass(i, c), nil
		}
	}
	return d, errors.New(errors.ErrCodeConnectionNotFound, "no connection with id %s in class %s", connID, classID)
}

// =============================================================================
// Style
// =============================================================================

// SetStyle replaces the diagram's global styling. Out-of-range thickness
// is accepted here and rejected by the validator, so callers get a field
// level report instead of a silent clamp.
func (d Diagram) SetStyle(s Style) Diagram {
	d.Style = s
	return d
}

package pipeline

import (
	"encoding/json"

	"classdraw/pkg/layout"
	"classdraw/pkg/model"
)

// layoutCacheEntry is the id-free cached form of a layout. Entity ids
// are minted fresh on every parse, so the cache stores positions by
// declaration index and remaps them onto whatever ids the current
// Diagram carries.
type layoutCacheEntry struct {
	Boxes    []layout.Rect        `json:"boxes"`              // class declaration order
	Notes    [][]layout.Rect      `json:"notes"`              // per class, note declaration order
	Warnings []layoutCacheWarning `json:"warnings,omitempty"` // note warnings by index
}

type layoutCacheWarning struct {
	Class   int    `json:"class"`
	Note    int    `json:"note"`
	Message string `json:"message"`
}

// encodeLayoutEntry converts a layout into its cacheable form. It
// reports false when the layout does not cover every entity of the
// diagram; such a layout is not cached.
func encodeLayoutEntry(d model.Diagram, lay layout.Result) ([]byte, bool) {
	entry := layoutCacheEntry{
		Boxes: make([]layout.Rect, len(d.Classes)),
		Notes: make([][]layout.Rect, len(d.Classes)),
	}

	warnByNote := make(map[string]string, len(lay.Warnings))
	for _, w := range lay.Warnings {
		warnByNote[w.EntityID] = w.Message
	}

	for i, c := range d.Classes {
		box, ok := lay.Boxes[c.ID]
		if !ok {
			return nil, false
		}
		entry.Boxes[i] = box
		entry.Notes[i] = make([]layout.Rect, len(c.Notes))
		for j, n := range c.Notes {
			r, ok := lay.Notes[n.ID]
			if !ok {
				return nil, false
			}
			entry.Notes[i][j] = r
			if msg, warned := warnByNote[n.ID]; warned {
				entry.Warnings = append(entry.Warnings, layoutCacheWarning{
					Class: i, Note: j, Message: msg,
				})
			}
		}
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, false
	}
	return data, true
}

// decodeLayoutEntry restores a cached layout onto the current diagram's
// ids. It reports false when the entry's shape does not match the
// diagram (class or note counts differ), which the caller treats as a
// cache miss.
func decodeLayoutEntry(d model.Diagram, data []byte) (layout.Result, bool) {
	var entry layoutCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return layout.Result{}, false
	}
	if len(entry.Boxes) != len(d.Classes) || len(entry.Notes) != len(d.Classes) {
		return layout.Result{}, false
	}

	res := layout.Result{
		Boxes: make(map[string]layout.Rect, len(d.Classes)),
		Notes: make(map[string]layout.Rect),
	}
	for i, c := range d.Classes {
		if len(entry.Notes[i]) != len(c.Notes) {
			return layout.Result{}, false
		}
		res.Boxes[c.ID] = entry.Boxes[i]
		for j, n := range c.Notes {
			res.Notes[n.ID] = entry.Notes[i][j]
		}
	}
	for _, w := range entry.Warnings {
		if w.Class < 0 || w.Class >= len(d.Classes) {
			return layout.Result{}, false
		}
		notes := d.Classes[w.Class].Notes
		if w.Note < 0 || w.Note >= len(notes) {
			return layout.Result{}, false
		}
		res.Warnings = append(res.Warnings, layout.Warning{
			EntityID: notes[w.Note].ID,
			Message:  w.Message,
		})
	}
	return res, true
}

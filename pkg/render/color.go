package render

import (
	"image/color"
	"strconv"
	"strings"

	"classdraw/pkg/errors"
	"classdraw/pkg/model"
)

// palette is the fixed set of named border colors. Anything else must
// be given as a #rrggbb or #rgb hex value.
var palette = map[string]color.RGBA{
	"black":  {0, 0, 0, 255},
	"gray":   {128, 128, 128, 255},
	"red":    {200, 30, 30, 255},
	"green":  {30, 140, 60, 255},
	"blue":   {30, 60, 200, 255},
	"purple": {120, 60, 170, 255},
	"orange": {230, 140, 20, 255},
	"brown":  {140, 90, 50, 255},
}

// noteFills maps each note kind to its background tint.
var noteFills = map[model.NoteKind]color.RGBA{
	model.NoteStandard:     {255, 249, 177, 255}, // yellow
	model.NoteInformation:  {173, 216, 230, 255}, // light blue
	model.NoteWarning:      {255, 200, 124, 255}, // orange
	model.NoteSuccess:      {193, 240, 193, 255}, // light green
	model.NoteConfirmation: {206, 245, 245, 255}, // light cyan
	model.NoteDecorative:   {226, 214, 245, 255}, // lavender
}

// ParseColor resolves a border color string: a palette name or a hex
// value in #rrggbb or #rgb form. Unrecognized values fail with
// ErrCodeInvalidColor.
func ParseColor(s string) (color.RGBA, error) {
	if c, ok := palette[strings.ToLower(s)]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "unknown color: %q", s)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "malformed hex color: %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "malformed hex color: %q", s)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}

// NoteFill returns the background tint for a note kind. Unknown kinds
// fall back to the standard yellow; the validator catches them upstream.
func NoteFill(kind model.NoteKind) color.RGBA {
	if c, ok := noteFills[kind]; ok {
		return c
	}
	return noteFills[model.NoteStandard]
}

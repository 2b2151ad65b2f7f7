package imaging

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// namedStyles covers the CSS color keywords the drawing page uses.
var namedStyles = map[string]color.RGBA{
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"transparent": {0, 0, 0, 0},
}

// ParseStyle converts a canvas fillStyle/strokeStyle string into a color.
//
// Accepted forms are "#RGB", "#RRGGBB", "#RRGGBBAA" and a handful of CSS
// keywords. Case is ignored.
func ParseStyle(style string) (color.RGBA, error) {
	s := strings.ToLower(strings.TrimSpace(style))
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if c, ok := namedStyles[s]; ok {
		return c, nil
	}

	alpha := uint8(255)
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha in %q: %w", style, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}

	if s[0] != '#' || (len(s) != 4 && len(s) != 7) {
		return color.RGBA{}, fmt.Errorf("invalid color %q", style)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", style, err)
	}
	r, g, b := c.RGB255()

	// color.RGBA is alpha-premultiplied
	return color.RGBA{
		R: uint8(uint16(r) * uint16(alpha) / 255),
		G: uint8(uint16(g) * uint16(alpha) / 255),
		B: uint8(uint16(b) * uint16(alpha) / 255),
		A: alpha,
	}, nil
}

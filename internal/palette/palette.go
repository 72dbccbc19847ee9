// Package palette provides the named stroke colors used when drawing, and
// HSV-based random palette generation for callers that want variety.
package palette

import (
	"image/color"
	"math/rand"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Default is the stroke color used when a caller has no preference.
const Default = "black"

// Colors is the fixed list of named colors, Default first.
var Colors = []string{
	"black", "red", "yellow", "green", "cyan", "blue", "pink",
	"tomato", "greenyellow", "turquoise", "dodgerblue", "purple", "mediumvioletred",
	"darkorange", "lightgreen", "aquamarine", "royalblue", "mediumpurple", "hotpink",
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Valid reports whether s is one of the named Colors or a hex color string
// such as "#1e90ff".
func Valid(s string) bool {
	for _, c := range Colors {
		if strings.EqualFold(c, s) {
			return true
		}
	}
	if s == "white" || s == "none" {
		return true
	}
	_, err := colorful.Hex(s)
	return err == nil
}

// Hex returns the "#rrggbb" form of c. Alpha is ignored.
func Hex(c color.RGBA) string {
	cc := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	return cc.Hex()
}

func rgba(c colorful.Color) color.RGBA {
	red, green, blue := c.RGB255()
	return color.RGBA{R: red, G: green, B: blue, A: 255}
}

// Random returns n hex colors using HSV generation. Saturation and value are
// kept in the middle of their range so every color reads against white.
func Random(r *rand.Rand, n int) []string {
	// Convert from 0-100 range to 0-360 for hue, 0-1 for saturation and brightness.
	hsb := func(h, s, b float64) string {
		hue := h * 3.6
		sat := clamp(s/100.0, 0, 1)
		bright := clamp(b/100.0, 0, 1)
		return Hex(rgba(colorful.Hsv(hue, sat, bright)))
	}

	out := make([]string, n)
	for i := range out {
		out[i] = hsb(r.Float64()*100, r.Float64()*50+25, r.Float64()*50+25)
	}
	return out
}

// Shimmered applies a brightness jitter to each hex color. Entries that do
// not parse as hex are passed through unchanged.
func Shimmered(p []string, r *rand.Rand) []string {
	out := make([]string, len(p))
	for i, s := range p {
		c, err := colorful.Hex(s)
		if err != nil {
			out[i] = s
			continue
		}
		h, sat, v := c.Hsv()
		v = clamp(v+(r.Float64()-0.5)*0.2, 0, 1)
		out[i] = Hex(rgba(colorful.Hsv(h, sat, v)))
	}
	return out
}

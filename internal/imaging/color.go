package imaging

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Hex formats the color as "#RRGGBB".
func (c RGBColor) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Distance returns the channel-sum distance |ΔR|+|ΔG|+|ΔB| between two colors.
// The result ranges from 0 to 765.
func (c RGBColor) Distance(o RGBColor) int {
	return absDiff(c.R, o.R) + absDiff(c.G, o.G) + absDiff(c.B, o.B)
}

func (c RGBColor) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// NRGBAAt reads the non-premultiplied 8-bit color at (x, y).
//
// Unlike img.At(x, y).RGBA(), the color channels of a transparent pixel are
// reported as stored rather than as zero.
func NRGBAAt(img image.Image, x, y int) color.NRGBA {
	if m, ok := img.(*image.NRGBA); ok {
		return m.NRGBAAt(x, y)
	}
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Coordinates are 0-based with origin at top-left. The Hex format excludes
// alpha; use RGBA.A to get transparency information.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := NRGBAAt(img, x, y)
	rgb := RGBColor{R: c.R, G: c.G, B: c.B}

	return &ColorResult{
		Hex:  rgb.Hex(),
		RGB:  rgb,
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL:  rgbToHSL(rgb),
	}, nil
}

func rgbToHSL(c RGBColor) HSLColor {
	h, s, l := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hsl()
	return HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)}
}

// Palette maps lower-case color names to key colors.
type Palette map[string]RGBColor

// DefaultPalette returns the built-in key colors: white, black, green
// (green screen) and blue (blue screen).
func DefaultPalette() Palette {
	return Palette{
		"white": {R: 255, G: 255, B: 255},
		"black": {R: 0, G: 0, B: 0},
		"green": {R: 0, G: 255, B: 0},
		"blue":  {R: 0, G: 0, B: 255},
	}
}

// With returns a copy of p extended with extra entries. Entries in extra
// override built-in names.
func (p Palette) With(extra map[string]RGBColor) Palette {
	out := make(Palette, len(p)+len(extra))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range extra {
		out[strings.ToLower(k)] = v
	}
	return out
}

// Names returns the palette names in sorted order.
func (p Palette) Names() []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Nearest returns the palette entry closest to c by channel-sum distance.
// Ties resolve to the alphabetically first name. ok is false for an empty palette.
func (p Palette) Nearest(c RGBColor) (name string, distance int, ok bool) {
	distance = -1
	for _, n := range p.Names() {
		d := p[n].Distance(c)
		if distance < 0 || d < distance {
			name, distance, ok = n, d, true
		}
	}
	return name, distance, ok
}

// ParseHexColor parses "#RGB" or "#RRGGBB" (the leading '#' is optional).
func ParseHexColor(s string) (RGBColor, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGBColor{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGBColor{R: r, G: g, B: b}, nil
}

// ParseColor resolves a key color given either a palette name
// (case-insensitive) or a hex value.
func ParseColor(s string, p Palette) (RGBColor, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return RGBColor{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := p[name]; ok {
		return c, nil
	}
	c, err := ParseHexColor(name)
	if err != nil {
		return RGBColor{}, fmt.Errorf("unknown color %q (named colors: %s)", s, strings.Join(p.Names(), ", "))
	}
	return c, nil
}

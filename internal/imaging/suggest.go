package imaging

import (
	"fmt"
	"image"
	"sort"
)

// BorderColorFrequency is one exact color found on the image border.
type BorderColorFrequency struct {
	Hex        string   `json:"hex"`
	RGB        RGBColor `json:"rgb"`
	Percentage float64  `json:"percentage"` // Share of border pixels (0-100)
}

// KeyColorSuggestion describes the most likely flat background color of an image.
type KeyColorSuggestion struct {
	// Color is the most frequent exact color on the border.
	Color BorderColorFrequency `json:"color"`

	// Nearest is the palette entry closest to Color, and NearestDistance its
	// channel-sum distance. A distance of 0 means the background is exactly a
	// named key color.
	Nearest         string `json:"nearest"`
	NearestDistance int    `json:"nearest_distance"`

	// SuggestedTolerance is the smallest tolerance (0-100) at which the
	// nearest palette color matches Color, or -1 when even 100 is not enough.
	SuggestedTolerance int `json:"suggested_tolerance"`

	// BorderPixels is the number of pixels on the border ring.
	BorderPixels int `json:"border_pixels"`

	// Top lists the most frequent border colors, most common first.
	Top []BorderColorFrequency `json:"top"`
}

// SuggestKeyColor inspects the border ring of img (row 0, last row, column 0,
// last column) and reports the dominant exact color there together with the
// nearest palette color.
//
// Only the border is inspected because background removal seeds from it: a
// color that does not reach the border cannot be keyed out.
//
// Parameters:
//   - img: The source image. Must have a non-empty area.
//   - palette: Named colors to compare against. May be nil.
//   - top: Number of entries to return in Top (values < 1 mean 5).
func SuggestKeyColor(img image.Image, palette Palette, top int) (*KeyColorSuggestion, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}
	if top < 1 {
		top = 5
	}

	counts := make(map[RGBColor]int)
	total := 0
	visitBorder(bounds, func(x, y int) {
		c := NRGBAAt(img, x, y)
		counts[RGBColor{R: c.R, G: c.G, B: c.B}]++
		total++
	})

	colors := make([]BorderColorFrequency, 0, len(counts))
	for c, n := range counts {
		colors = append(colors, BorderColorFrequency{
			Hex:        c.Hex(),
			RGB:        c,
			Percentage: float64(n) / float64(total) * 100,
		})
	}
	// Deterministic order: frequency, then hex.
	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})
	if len(colors) > top {
		colors = colors[:top]
	}

	s := &KeyColorSuggestion{
		Color:              colors[0],
		SuggestedTolerance: -1,
		BorderPixels:       total,
		Top:                colors,
	}
	if name, d, ok := palette.Nearest(colors[0].RGB); ok {
		s.Nearest = name
		s.NearestDistance = d
		if tol := (d + 2) / 3; tol <= 100 {
			s.SuggestedTolerance = tol
		}
	}
	return s, nil
}

// visitBorder calls fn once for every pixel on the border ring of b.
func visitBorder(b image.Rectangle, fn func(x, y int)) {
	for x := b.Min.X; x < b.Max.X; x++ {
		fn(x, b.Min.Y)
		if b.Dy() > 1 {
			fn(x, b.Max.Y-1)
		}
	}
	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		fn(b.Min.X, y)
		if b.Dx() > 1 {
			fn(b.Max.X-1, y)
		}
	}
}

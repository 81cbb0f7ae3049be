package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// TrimResult contains an image cropped to its visible content.
type TrimResult struct {
	Image *image.NRGBA `json:"-"`

	// Bounds is the kept rectangle in source coordinates.
	Bounds Region `json:"bounds"`

	// Empty is true when every pixel is fully transparent; Image is then an
	// unchanged copy of the source.
	Empty bool `json:"empty"`
}

// VisibleBounds returns the smallest rectangle containing every pixel with
// alpha > 0. ok is false when the image has no visible pixel.
func VisibleBounds(img *image.NRGBA) (r image.Rectangle, ok bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := b.Min.X; x < b.Max.X; x++ {
			if row[(x-b.Min.X)*4+3] == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// TrimTransparent crops img to its visible content. Used after background
// removal so character assets do not carry empty margins.
func TrimTransparent(img *image.NRGBA) *TrimResult {
	r, ok := VisibleBounds(img)
	if !ok {
		b := img.Bounds()
		return &TrimResult{
			Image:  imaging.Clone(img),
			Bounds: Region{X1: b.Min.X, Y1: b.Min.Y, X2: b.Max.X, Y2: b.Max.Y},
			Empty:  true,
		}
	}
	return &TrimResult{
		Image:  imaging.Crop(img, r),
		Bounds: Region{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y},
	}
}

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Region struct {
	X1 int `json:"x1"` // Left edge X coordinate (inclusive)
	Y1 int `json:"y1"` // Top edge Y coordinate (inclusive)
	X2 int `json:"x2"` // Right edge X coordinate (exclusive)
	Y2 int `json:"y2"` // Bottom edge Y coordinate (exclusive)
}

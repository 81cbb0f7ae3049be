package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"
)

// CheckerCellSize is the side length in pixels of one checkerboard square.
const CheckerCellSize = 8

// PreviewResult contains a composited preview encoded as base64 PNG.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	Background  string `json:"background"`
}

// PreviewBackground selects what transparent areas are shown against.
// A nil Solid means a light/dark gray checkerboard.
type PreviewBackground struct {
	Solid *RGBColor
}

func (b PreviewBackground) String() string {
	if b.Solid == nil {
		return "checker"
	}
	return b.Solid.Hex()
}

// Checkerboard returns a w×h image of alternating light and dark gray squares.
func Checkerboard(w, h, cell int) *image.NRGBA {
	if cell < 1 {
		cell = CheckerCellSize
	}
	light := color.NRGBA{R: 204, G: 204, B: 204, A: 255}
	dark := color.NRGBA{R: 153, G: 153, B: 153, A: 255}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetNRGBA(x, y, light)
			} else {
				img.SetNRGBA(x, y, dark)
			}
		}
	}
	return img
}

// Composite draws img over the chosen background and returns the opaque result.
func Composite(img image.Image, bg PreviewBackground) *image.RGBA {
	fg := imaging.Clone(img)
	w, h := fg.Bounds().Dx(), fg.Bounds().Dy()

	var base image.Image
	if bg.Solid == nil {
		base = Checkerboard(w, h, CheckerCellSize)
	} else {
		c := color.NRGBA{R: bg.Solid.R, G: bg.Solid.G, B: bg.Solid.B, A: 255}
		base = imaging.New(w, h, c)
	}
	return blend.Normal(base, fg)
}

// Preview composites img over bg, optionally shrinking it so neither side
// exceeds maxSize (0 keeps the original size), and encodes the result as PNG.
func Preview(img image.Image, bg PreviewBackground, maxSize int) (*PreviewResult, error) {
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}

	var out image.Image = Composite(img, bg)
	if maxSize > 0 {
		b := out.Bounds()
		if b.Dx() > maxSize || b.Dy() > maxSize {
			out = imaging.Fit(out, maxSize, maxSize, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		Background:  bg.String(),
	}, nil
}

// ParseBackground resolves a preview background: "" or "checker" selects the
// checkerboard, anything else is parsed as a color.
func ParseBackground(s string, palette Palette) (PreviewBackground, error) {
	if s == "" || strings.EqualFold(s, "checker") {
		return PreviewBackground{}, nil
	}
	c, err := ParseColor(s, palette)
	if err != nil {
		return PreviewBackground{}, err
	}
	return PreviewBackground{Solid: &c}, nil
}

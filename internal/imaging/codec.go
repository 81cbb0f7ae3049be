package imaging

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// ToNRGBA copies src into a new non-premultiplied RGBA buffer whose bounds
// start at (0, 0). NRGBA sources are copied byte-for-byte; sources without an
// alpha channel come out fully opaque.
func ToNRGBA(src image.Image) *image.NRGBA {
	return imaging.Clone(src)
}

// EncodePNG writes img to w as PNG. PNG stores straight (non-premultiplied)
// color, so the color of fully transparent NRGBA pixels survives the round trip.
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

package colorkey

import (
	"image"

	"github.com/bits-and-blooms/bitset"

	"github.com/ironsheep/chromakey-mcp/internal/imaging"
)

// MaxTolerance is the largest tolerance callers may pass.
const MaxTolerance = 100

// DefaultTolerance matches the original tool's slider default.
const DefaultTolerance = 30

// Result is the outcome of one segmentation pass.
type Result struct {
	// Image is a fresh buffer with removed pixels at alpha 0. It never
	// aliases the input image.
	Image *image.NRGBA

	// Mask has bit y*Width+x set for every removed pixel.
	Mask *bitset.BitSet

	Target    imaging.RGBColor
	Tolerance int
	Threshold int
	Removed   int
	Total     int
}

// RemovedPercent returns the share of removed pixels (0-100).
func (r *Result) RemovedPercent() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Removed) / float64(r.Total) * 100
}

// Threshold maps a tolerance to the channel-sum distance limit: tolerance*3.
func Threshold(tolerance int) int {
	return tolerance * 3
}

// Distance returns |ΔR|+|ΔG|+|ΔB| between a pixel and the key color.
func Distance(p, target imaging.RGBColor) int {
	return p.Distance(target)
}

// Matches reports whether p is within tolerance of target.
func Matches(p, target imaging.RGBColor, tolerance int) bool {
	return Distance(p, target) <= Threshold(tolerance)
}

// Normalize copies any image into a new *image.NRGBA with its origin at
// (0, 0). Sources without alpha come out fully opaque.
func Normalize(src image.Image) *image.NRGBA {
	return imaging.ToNRGBA(src)
}

// ComputeMask returns the set of border-reachable pixels matching target.
//
// Seeds are the matching pixels on row 0, the last row, column 0 and the last
// column. From there a breadth-first traversal walks 4-connected neighbors; a
// pixel is enqueued at most once and only when it matches. buf is not modified.
func ComputeMask(buf *image.NRGBA, target imaging.RGBColor, tolerance int) *bitset.BitSet {
	b := buf.Bounds()
	w, h := b.Dx(), b.Dy()
	mask := bitset.New(uint(w * h))
	if w <= 0 || h <= 0 {
		return mask
	}

	threshold := Threshold(tolerance)
	pix, stride := buf.Pix, buf.Stride
	tr, tg, tb := int(target.R), int(target.G), int(target.B)

	match := func(x, y int) bool {
		i := y*stride + x*4
		return abs(int(pix[i])-tr)+abs(int(pix[i+1])-tg)+abs(int(pix[i+2])-tb) <= threshold
	}

	queue := make([]int, 0, 2*(w+h))
	push := func(x, y int) {
		idx := y*w + x
		if mask.Test(uint(idx)) || !match(x, y) {
			return
		}
		mask.Set(uint(idx))
		queue = append(queue, idx)
	}

	// Seed from the border ring.
	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 1; y < h-1; y++ {
		push(0, y)
		push(w-1, y)
	}

	// Expand.
	for head := 0; head < len(queue); head++ {
		idx := queue[head]
		x, y := idx%w, idx/w
		if x > 0 {
			push(x-1, y)
		}
		if x < w-1 {
			push(x+1, y)
		}
		if y > 0 {
			push(x, y-1)
		}
		if y < h-1 {
			push(x, y+1)
		}
	}
	return mask
}

// Apply clears the alpha of every border-reachable matching pixel of buf in
// place. Color channels are never changed and alpha is never raised.
// It returns the mask and the number of removed pixels.
func Apply(buf *image.NRGBA, target imaging.RGBColor, tolerance int) (*bitset.BitSet, int) {
	mask := ComputeMask(buf, target, tolerance)
	w := buf.Bounds().Dx()
	for i, ok := mask.NextSet(0); ok; i, ok = mask.NextSet(i + 1) {
		x, y := int(i)%w, int(i)/w
		buf.Pix[y*buf.Stride+x*4+3] = 0
	}
	return mask, int(mask.Count())
}

// Segment makes the border-connected background of src transparent.
//
// src is any image; it is copied into a fresh NRGBA buffer first, so src
// itself is never modified. A target color absent from the border, or a
// tolerance too small to match anything, is not an error: the result simply
// has zero removed pixels.
func Segment(src image.Image, target imaging.RGBColor, tolerance int) *Result {
	buf := Normalize(src)
	mask, removed := Apply(buf, target, tolerance)
	b := buf.Bounds()
	return &Result{
		Image:     buf,
		Mask:      mask,
		Target:    target,
		Tolerance: tolerance,
		Threshold: Threshold(tolerance),
		Removed:   removed,
		Total:     b.Dx() * b.Dy(),
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

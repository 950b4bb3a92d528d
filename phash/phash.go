// Package phash implements a perceptual average hash and an evolve
// Evaluator built on it.
//
// The average hash shrinks an image to an 8x8 grayscale thumbnail and sets
// one bit per cell whose luminance is above the mean. Two images that look
// alike at a coarse scale have hashes with a small Hamming distance.
package phash

import (
	"image"
	"image/color"
	"math/bits"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/evolve"
)

// Side is the thumbnail edge length; Side*Side bits make one hash.
const Side = 8

// MaxDistance is the largest possible Hamming distance between two hashes.
const MaxDistance = Side * Side

// thumbnail reduces img to a Side x Side luminance grid.
func thumbnail(img image.Image) [Side * Side]uint8 {
	small := image.NewRGBA(image.Rect(0, 0, Side, Side))
	xdraw.BiLinear.Scale(small, small.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	var lum [Side * Side]uint8
	for y := range Side {
		for x := range Side {
			lum[y*Side+x] = color.GrayModel.Convert(small.RGBAAt(x, y)).(color.Gray).Y
		}
	}
	return lum
}

// AverageHash returns the 64-bit average hash of img. Bit y*8+x is set
// when thumbnail cell (x, y) is brighter than the mean.
func AverageHash(img image.Image) uint64 {
	if img.Bounds().Empty() {
		return 0
	}
	lum := thumbnail(img)

	var sum int
	for _, v := range lum {
		sum += int(v)
	}
	mean := sum / len(lum)

	var h uint64
	for i, v := range lum {
		if int(v) > mean {
			h |= 1 << uint(i)
		}
	}
	return h
}

// CanvasHash hashes a canvas through its NRGBA form.
func CanvasHash(c *evolve.Canvas) uint64 {
	return AverageHash(c.ToImage())
}

// Hamming returns the number of differing bits.
func Hamming(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Evaluator scores candidates by the Hamming distance between their
// average hash and the target's. Scores range over [0, MaxDistance].
//
// The target hash is computed once and reused for as long as the same
// target canvas is passed in. Use a pointer; the zero value is ready.
type Evaluator struct {
	mu     sync.Mutex
	target *evolve.Canvas
	hash   uint64
}

var _ evolve.Evaluator = (*Evaluator)(nil)

// NewEvaluator returns an empty Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Distance implements evolve.Evaluator.
func (e *Evaluator) Distance(target, candidate *evolve.Canvas) uint64 {
	if target == candidate {
		return 0
	}
	return uint64(Hamming(e.targetHash(target), CanvasHash(candidate)))
}

func (e *Evaluator) targetHash(target *evolve.Canvas) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.target != target {
		e.target = target
		e.hash = CanvasHash(target)
	}
	return e.hash
}

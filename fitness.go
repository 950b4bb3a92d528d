package evolve

import "github.com/gogpu/evolve/internal/blend"

// Evaluator scores how far a candidate canvas is from the target.
//
// Scores are non-negative, lower is better, and an evaluator must be
// symmetric in its arguments.
type Evaluator interface {
	Distance(target, candidate *Canvas) uint64
}

// SquaredError is the default Evaluator: the sum over all pixels of the
// squared R, G and B differences. Alpha is ignored. A score of 0 means the
// color channels match exactly.
type SquaredError struct{}

// Distance implements Evaluator. Canvases of different sizes are compared
// over their common area.
func (SquaredError) Distance(target, candidate *Canvas) uint64 {
	if target.SameSize(candidate) {
		return sumSquared(target.data, candidate.data)
	}
	return RegionDistance(target, candidate, target.Extent())
}

// sumSquared walks two equally sized RGBA buffers.
func sumSquared(a, b []uint8) uint64 {
	var sum uint64
	for i := 0; i+3 < len(a); i += 4 {
		sum += uint64(blend.SquaredDiff(a[i], b[i]) +
			blend.SquaredDiff(a[i+1], b[i+1]) +
			blend.SquaredDiff(a[i+2], b[i+2]))
	}
	return sum
}

// RegionDistance is the squared RGB error restricted to box, clipped to
// both canvases.
func RegionDistance(target, candidate *Canvas, box Rect) uint64 {
	box = box.Clamp(min(target.width, candidate.width), min(target.height, candidate.height))
	var sum uint64
	for y := box.Min.Y; y <= box.Max.Y; y++ {
		ti := (y*target.width + box.Min.X) * 4
		ci := (y*candidate.width + box.Min.X) * 4
		n := box.Dx() * 4
		sum += sumSquared(target.data[ti:ti+n], candidate.data[ci:ci+n])
	}
	return sum
}

// LocalFilter is a cheap pre-check that drops shapes unlikely to help.
//
// For the pixels a shape would cover, it compares the error of the shape's
// own color against the target with the error of the current canvas
// against the target. A shape passes when
//
//	shapeError < currentError + Slack
//
// Passing the filter does not accept a shape; the global score still
// decides.
type LocalFilter struct {
	Slack uint64
}

// Errors returns the shape-side and canvas-side errors over the pixels
// covered by s.
func (f LocalFilter) Errors(target, current *Canvas, s Shape) (shapeErr, currentErr uint64) {
	box := s.BoundingBox().Clamp(min(target.width, current.width), min(target.height, current.height))
	col := s.Color()
	for y := box.Min.Y; y <= box.Max.Y; y++ {
		for x := box.Min.X; x <= box.Max.X; x++ {
			if !s.Hit(Pt(x, y)) {
				continue
			}
			want := target.Pixel(x, y)
			shapeErr += SquaredDistance(col, want)
			currentErr += SquaredDistance(current.Pixel(x, y), want)
		}
	}
	return shapeErr, currentErr
}

// Accept reports whether painting s onto current plausibly lowers the
// error against target.
func (f LocalFilter) Accept(target, current *Canvas, s Shape) bool {
	shapeErr, currentErr := f.Errors(target, current, s)
	bound := currentErr + f.Slack
	if bound < currentErr {
		// Slack overflowed; everything passes.
		return true
	}
	return shapeErr < bound
}

// Filter returns the shapes of batch that pass Accept, in order.
func (f LocalFilter) Filter(target, current *Canvas, batch []Shape) []Shape {
	kept := batch[:0:0]
	for _, s := range batch {
		if f.Accept(target, current, s) {
			kept = append(kept, s)
		}
	}
	return kept
}

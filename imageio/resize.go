package imageio

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/evolve"
)

// Fit downscales c so that neither side exceeds maxDim, keeping the aspect
// ratio. It returns c unchanged when it already fits or maxDim <= 0.
func Fit(c *evolve.Canvas, maxDim int) *evolve.Canvas {
	w, h := c.Width(), c.Height()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return c
	}

	nw, nh := maxDim, maxDim
	if w >= h {
		nh = max(h*maxDim/w, 1)
	} else {
		nw = max(w*maxDim/h, 1)
	}
	return Scale(c, nw, nh)
}

// Scale resamples c to exactly width x height using Catmull-Rom filtering.
func Scale(c *evolve.Canvas, width, height int) *evolve.Canvas {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), c.ToImage(), c.Bounds(), xdraw.Src, nil)
	return evolve.FromImage(dst)
}

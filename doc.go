// Package evolve approximates a target image by stacking random shapes.
//
// # Overview
//
// evolve is a stochastic hill climber. Each iteration draws a small batch
// of random circles, triangles and rectangles, paints them onto a copy of
// the best canvas found so far, and keeps the copy only when its distance
// to the target is strictly lower. There is no population and no
// crossover: one lineage, improved one accepted batch at a time.
//
// # Quick Start
//
//	target := evolve.FromImage(img)
//
//	s, err := evolve.New(target,
//	    evolve.WithIterations(100_000),
//	    evolve.WithMode(evolve.AlphaBlend),
//	    evolve.WithSeed(1),
//	)
//	if err != nil {
//	    return err
//	}
//	best, err := s.Run(ctx)
//
// # Architecture
//
// The package is organized into:
//   - Shapes: Circle, Triangle, Rectangle and the random Generator
//   - Canvas: a flat RGBA buffer, cheap to clone
//   - Rasterizer: paints a shape inside its bounding box, overwrite or alpha blend
//   - Evaluator: SquaredError global fitness and the LocalFilter pre-check
//   - Search: the accept/reject loop
//
// Decoding and encoding images (imageio), snapshots (snapshot), run
// journals (journal), fitness plots (report) and the perceptual-hash
// evaluator (phash) live in sibling packages.
//
// # Coordinate System
//
// Integer pixel coordinates with the origin at the top-left, X to the
// right and Y down.
//
// # Reproducibility
//
// The random source is always an explicit generator. With WithSeed, two
// runs over the same target and configuration produce identical canvases.
package evolve

// Version is the current version of the library.
const Version = "0.1.0"

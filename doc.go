// Package compositor implements the deferred affine-transform pipeline at
// the heart of a node-based image compositor.
//
// # Overview
//
// Images travel through the node graph as a pixel buffer plus an optional
// uncommitted ("pending") transform. Transform-editing nodes compose a new
// matrix onto any incoming one in O(1) without touching pixels; the engine
// resamples ("bakes") only when a pending transform could visibly clip
// content or a downstream node requires spatial coherence.
//
// # Quick Start
//
//	import "github.com/gogpu/compositor"
//
//	// Wrap a pixel buffer and attach a transform.
//	img := compositor.NewImage(buf)
//	img = img.Transformed(params.Matrix())
//
//	// Bake only when required.
//	if compositor.ShouldBake(img, compositor.Transparent) {
//	    img, _ = compositor.Bake(img, compositor.Transparent)
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: Matrix, Point, RGBA, Buffer, Image, Parameters,
//     ShouldBake, Bake, SolvePivotDrag, Stage
//   - coords: typed coordinate-space wrappers and conversions
//   - texture: reference-counted GPU texture pool (gogpu integration)
//   - cache: sharded LRU backing the display-conversion cache
//   - internal/parallel: scanline worker pool for large bakes
//
// Pixel buffers are immutable once wrapped in an Image, so concurrent
// readers never race; composing a transform yields new metadata sharing
// the same buffer.
package compositor

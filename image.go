package compositor

// Image is a pixel buffer with an optional pending affine transform.
//
// An Image is one of two variants:
//   - baked: pixels only, no pending transform
//   - pending: pixels plus an uncommitted transform to be applied by the
//     renderer (or resampled into pixels by Bake)
//
// Consumers distinguish the variants through Pending rather than probing
// an optional field. Images are immutable: Transformed returns a new Image
// sharing the same buffer, and the buffer itself is never written after
// the Image is created.
type Image struct {
	buf     *Buffer
	xform   Matrix
	pending bool
}

// NewImage wraps a buffer as a baked (transform-free) image. Source nodes
// create images this way.
func NewImage(buf *Buffer) *Image {
	return &Image{buf: buf}
}

// NewPendingImage wraps a buffer with a pending transform attached.
func NewPendingImage(buf *Buffer, m Matrix) *Image {
	return &Image{buf: buf, xform: m, pending: true}
}

// Buffer returns the underlying pixel buffer. Callers must not modify it.
func (img *Image) Buffer() *Buffer {
	return img.buf
}

// Width returns the buffer width in pixels.
func (img *Image) Width() int {
	return img.buf.width
}

// Height returns the buffer height in pixels.
func (img *Image) Height() int {
	return img.buf.height
}

// Pending returns the pending transform and true for the pending variant,
// or the zero Matrix and false for a baked image.
func (img *Image) Pending() (Matrix, bool) {
	if !img.pending {
		return Matrix{}, false
	}
	return img.xform, true
}

// Transformed composes m onto any existing pending transform and returns
// a new Image sharing the same buffer. This is the O(1) forwarding step
// performed by transform-editing nodes; pixel data is never touched.
func (img *Image) Transformed(m Matrix) *Image {
	if img.pending {
		m = Compose(m, img.xform)
	}
	return &Image{buf: img.buf, xform: m, pending: true}
}

// Baked returns a new Image sharing the same buffer with any pending
// transform cleared. Used when a transform has been resampled into pixels
// or judged a no-op.
func (img *Image) Baked() *Image {
	if !img.pending {
		return img
	}
	return &Image{buf: img.buf}
}

package compositor

// ShouldBake decides whether an image's pending transform must be
// resampled into pixels now. Resampling is the most costly and lossy step
// in the pipeline, so it is deferred until rotated content could plausibly
// clip against the composite background.
//
// The checks run in order:
//  1. No pending transform, or identity: nothing to bake.
//  2. Pure translation: placement only, pixels unchanged.
//  3. No rotation component: a non-uniform scale cannot clip its own
//     axis-aligned bounding box.
//  4. Rotation present: inspect the outer border of the buffer. If every
//     border pixel matches background within BorderTolerance on all four
//     channels, rotated content cannot visibly clip against that
//     background and the bake is deferred.
//
// The border check looks only at the current buffer; clipping accumulated
// across several sequential unbaked rotations is not tracked.
func ShouldBake(img *Image, background RGBA) bool {
	m, ok := img.Pending()
	if !ok || m.IsIdentity() {
		return false
	}
	if m.IsTranslationOnly() {
		return false
	}
	if !m.HasRotation() {
		return false
	}
	return !borderMatches(img.Buffer(), background)
}

// borderMatches reports whether every pixel of the buffer's outer border
// (top row, bottom row, left and right columns) matches the background
// color within BorderTolerance.
func borderMatches(buf *Buffer, background RGBA) bool {
	w, h := buf.Width(), buf.Height()
	if w == 0 || h == 0 {
		return true
	}

	for x := 0; x < w; x++ {
		if !buf.GetPixel(x, 0).NearEqual(background, BorderTolerance) {
			return false
		}
		if !buf.GetPixel(x, h-1).NearEqual(background, BorderTolerance) {
			return false
		}
	}
	for y := 1; y < h-1; y++ {
		if !buf.GetPixel(0, y).NearEqual(background, BorderTolerance) {
			return false
		}
		if !buf.GetPixel(w-1, y).NearEqual(background, BorderTolerance) {
			return false
		}
	}
	return true
}

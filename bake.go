package compositor

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/compositor/internal/parallel"
)

// MaxBakeSide is the safety ceiling for a baked image's width or height.
// A bounding box exceeding it (or collapsing to zero) leaves the input
// unchanged rather than failing the node.
const MaxBakeSide = 16384

// parallelRowThreshold is the destination height above which scanlines
// are distributed across the worker pool.
const parallelRowThreshold = 256

// boundsSnap absorbs floating-point noise in the transformed corners so
// an exact 90-degree rotation of a 10x10 image stays 10x10 instead of
// growing a row from cos(pi/2) being ~6e-17 rather than zero.
const boundsSnap = 1e-9

// ErrBakeTargetTooLarge is returned when the transformed bounding box is
// empty or exceeds MaxBakeSide on a side. The input image is returned
// unchanged alongside this error; callers surface it as a warning, never
// a failure.
var ErrBakeTargetTooLarge = errors.New("compositor: bake target exceeds size limit")

// Bake resamples an image's pending transform into pixels.
//
// The result is a new Image whose buffer covers the axis-aligned bounding
// box of the transformed source, carrying a pure-translation transform
// that keeps the on-screen position unchanged: the renderer centers an
// image's local origin at half its own width/height before applying any
// transform, so the translation absorbs the dimension change
// (minX+(dstW-srcW)/2, minY+(dstH-srcH)/2).
//
// Destination pixels are inverse-mapped to source coordinates and
// bilinearly sampled with taps clamped to the edge; a sample point that
// falls entirely outside the source rectangle takes outOfBounds instead.
//
// A baked or identity-transform input is returned with the transform
// cleared and the buffer reused.
func Bake(img *Image, outOfBounds RGBA) (*Image, error) {
	m, ok := img.Pending()
	if !ok || m.IsIdentity() {
		return img.Baked(), nil
	}

	src := img.Buffer()
	srcW, srcH := src.Width(), src.Height()

	minX, minY, dstW, dstH := bakeBounds(m, srcW, srcH)
	if dstW <= 0 || dstH <= 0 || dstW > MaxBakeSide || dstH > MaxBakeSide {
		Logger().Warn("bake target out of range, skipping",
			"width", dstW, "height", dstH, "limit", MaxBakeSide)
		return img, fmt.Errorf("%w: %dx%d", ErrBakeTargetTooLarge, dstW, dstH)
	}

	// The degenerate case substitutes identity, which resamples the
	// source unmoved into the new box. Valid during interactive edits.
	inv, _ := m.Invert()

	Logger().Debug("baking pending transform",
		"src", fmt.Sprintf("%dx%d", srcW, srcH),
		"dst", fmt.Sprintf("%dx%d", dstW, dstH),
		"min", fmt.Sprintf("(%d,%d)", minX, minY))

	dst := NewBuffer(dstW, dstH)
	row := func(y int) {
		resampleRow(dst, src, inv, outOfBounds, y, minX, minY)
	}
	if dstH >= parallelRowThreshold {
		parallel.Rows(dstH, row)
	} else {
		for y := 0; y < dstH; y++ {
			row(y)
		}
	}

	trans := Translate(
		float64(minX)+float64(dstW-srcW)/2,
		float64(minY)+float64(dstH-srcH)/2,
	)
	return NewPendingImage(dst, trans), nil
}

// bakeBounds transforms the four source corners and returns the integer
// bounding box as floor(min), ceil(max) extents.
func bakeBounds(m Matrix, srcW, srcH int) (minX, minY, dstW, dstH int) {
	w := float64(srcW)
	h := float64(srcH)
	corners := [4]Point{
		m.TransformPoint(Pt(0, 0)),
		m.TransformPoint(Pt(w, 0)),
		m.TransformPoint(Pt(0, h)),
		m.TransformPoint(Pt(w, h)),
	}

	loX, loY := corners[0].X, corners[0].Y
	hiX, hiY := loX, loY
	for _, c := range corners[1:] {
		loX = math.Min(loX, c.X)
		loY = math.Min(loY, c.Y)
		hiX = math.Max(hiX, c.X)
		hiY = math.Max(hiY, c.Y)
	}

	minX = int(math.Floor(loX + boundsSnap))
	minY = int(math.Floor(loY + boundsSnap))
	dstW = int(math.Ceil(hiX-boundsSnap)) - minX
	dstH = int(math.Ceil(hiY-boundsSnap)) - minY
	return minX, minY, dstW, dstH
}

// resampleRow fills one destination scanline by inverse-mapping each
// pixel's world position through inv and bilinearly sampling the source.
func resampleRow(dst, src *Buffer, inv Matrix, outOfBounds RGBA, y, minX, minY int) {
	w, h := src.Width(), src.Height()
	oob := [4]float32{
		float32(outOfBounds.R),
		float32(outOfBounds.G),
		float32(outOfBounds.B),
		float32(outOfBounds.A),
	}
	out := dst.Data()
	di := y * dst.Width() * 4
	wy := float64(y + minY)

	for x := 0; x < dst.Width(); x++ {
		sx := inv.A*float64(x+minX) + inv.B*wy + inv.C
		sy := inv.D*float64(x+minX) + inv.E*wy + inv.F

		// The in-range test tolerates the same fp noise bakeBounds
		// absorbs: an exact 90-degree rotation inverse-maps edge pixels
		// to coordinates like -6e-17, which must resample the edge, not
		// the out-of-bounds color. The clamped taps below land them on
		// the edge row/column.
		if sx < -boundsSnap || sx >= float64(w)+boundsSnap ||
			sy < -boundsSnap || sy >= float64(h)+boundsSnap {
			out[di+0] = oob[0]
			out[di+1] = oob[1]
			out[di+2] = oob[2]
			out[di+3] = oob[3]
			di += 4
			continue
		}

		x0 := int(math.Floor(sx))
		y0 := int(math.Floor(sy))
		fx := float32(sx - float64(x0))
		fy := float32(sy - float64(y0))

		// Edge taps clamp to the source rectangle.
		x1 := clampInt(x0+1, 0, w-1)
		y1 := clampInt(y0+1, 0, h-1)
		x0 = clampInt(x0, 0, w-1)
		y0 = clampInt(y0, 0, h-1)

		in := src.Data()
		i00 := (y0*w + x0) * 4
		i10 := (y0*w + x1) * 4
		i01 := (y1*w + x0) * 4
		i11 := (y1*w + x1) * 4

		w00 := (1 - fx) * (1 - fy)
		w10 := fx * (1 - fy)
		w01 := (1 - fx) * fy
		w11 := fx * fy

		for c := 0; c < 4; c++ {
			out[di+c] = in[i00+c]*w00 + in[i10+c]*w10 +
				in[i01+c]*w01 + in[i11+c]*w11
		}
		di += 4
	}
}

// clampInt restricts a value to [minVal, maxVal].
func clampInt(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

package compositor

import (
	"math"
	"testing"
)

func TestImageVariants(t *testing.T) {
	buf := NewBuffer(4, 4)

	img := NewImage(buf)
	if _, ok := img.Pending(); ok {
		t.Fatal("NewImage must be the baked variant")
	}

	pending := NewPendingImage(buf, Translate(3, 4))
	m, ok := pending.Pending()
	if !ok {
		t.Fatal("NewPendingImage must be the pending variant")
	}
	if m != Translate(3, 4) {
		t.Errorf("Pending() = %+v, want translation (3,4)", m)
	}

	if pending.Baked().Buffer() != buf {
		t.Error("Baked must share the pixel buffer")
	}
	if _, ok := pending.Baked().Pending(); ok {
		t.Error("Baked must clear the pending transform")
	}
}

func TestTransformedComposesWithoutCopying(t *testing.T) {
	buf := NewBuffer(8, 8)
	img := NewImage(buf)

	first := img.Transformed(Scale(2, 2))
	second := first.Transformed(Rotate(math.Pi / 4))

	if first.Buffer() != buf || second.Buffer() != buf {
		t.Fatal("Transformed must share the original buffer")
	}

	// The original image is untouched.
	if _, ok := img.Pending(); ok {
		t.Error("Transformed must not mutate the receiver")
	}

	m, ok := second.Pending()
	if !ok {
		t.Fatal("second image must be pending")
	}
	want := Compose(Rotate(math.Pi/4), Scale(2, 2))
	if !approxMatrix(m, want, 1e-12) {
		t.Errorf("composed transform = %+v, want %+v", m, want)
	}
}

func TestBakedOnBakedReturnsReceiver(t *testing.T) {
	img := NewImage(NewBuffer(2, 2))
	if img.Baked() != img {
		t.Error("Baked on a baked image must return the same image")
	}
}

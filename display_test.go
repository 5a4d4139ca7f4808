package compositor

import "testing"

func TestDisplayCacheConvert(t *testing.T) {
	d := NewDisplayCache(8)

	buf := NewBuffer(3, 2)
	buf.Fill(RGBA{R: 1, G: 0, B: 0, A: 1})

	img := d.Convert(1, buf)
	if img == nil {
		t.Fatal("Convert returned nil")
	}
	if got := img.NRGBAAt(2, 1); got.R != 255 || got.A != 255 {
		t.Errorf("converted pixel = %+v, want opaque red", got)
	}

	// Same token returns the cached image even if the buffer changed.
	buf.Fill(RGBA{B: 1, A: 1})
	if again := d.Convert(1, buf); again != img {
		t.Error("second Convert with same token returned a new image")
	}

	st := d.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Errorf("Stats = %d hits %d misses, want 1/1", st.Hits, st.Misses)
	}
}

func TestDisplayCacheInvalidate(t *testing.T) {
	d := NewDisplayCache(8)

	buf := NewBuffer(2, 2)
	buf.Fill(RGBA{G: 1, A: 1})
	first := d.Convert(7, buf)

	d.Invalidate(7)
	buf.Fill(RGBA{B: 1, A: 1})
	second := d.Convert(7, buf)
	if second == first {
		t.Fatal("Convert after Invalidate returned the stale image")
	}
	if got := second.NRGBAAt(0, 0); got.B != 255 {
		t.Errorf("reconverted pixel = %+v, want blue", got)
	}
}

func TestDisplayCacheTokensAreIndependent(t *testing.T) {
	d := NewDisplayCache(8)

	red := NewBuffer(1, 1)
	red.Fill(RGBA{R: 1, A: 1})
	blue := NewBuffer(1, 1)
	blue.Fill(RGBA{B: 1, A: 1})

	a := d.Convert(1, red)
	b := d.Convert(2, blue)
	if a.NRGBAAt(0, 0).R != 255 || b.NRGBAAt(0, 0).B != 255 {
		t.Error("tokens returned mixed-up images")
	}
}

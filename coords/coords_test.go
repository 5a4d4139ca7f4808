package coords

import (
	"math"
	"testing"
)

func TestFromCenterLocalRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		local Local
		w, h  int
		want  FromCenter
	}{
		{"center", Local{X: 50, Y: 40}, 100, 80, FromCenter{}},
		{"origin", Local{}, 100, 80, FromCenter{X: -50, Y: -40}},
		{"corner", Local{X: 100, Y: 80}, 100, 80, FromCenter{X: 50, Y: 40}},
		{"odd size", Local{X: 2, Y: 1}, 5, 3, FromCenter{X: -0.5, Y: -0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.local.ToFromCenter(tt.w, tt.h)
			if got != tt.want {
				t.Errorf("ToFromCenter = %+v, want %+v", got, tt.want)
			}
			if back := got.ToLocal(tt.w, tt.h); back != tt.local {
				t.Errorf("round trip = %+v, want %+v", back, tt.local)
			}
		})
	}
}

func TestNormalizedRoundTrip(t *testing.T) {
	f := FromCenter{X: 25, Y: -20}
	n := f.ToNormalized(100, 80)
	if math.Abs(n.X-0.75) > 1e-12 || math.Abs(n.Y-0.25) > 1e-12 {
		t.Errorf("ToNormalized = %+v, want (0.75, 0.25)", n)
	}
	back := n.ToFromCenter(100, 80)
	if math.Abs(back.X-f.X) > 1e-9 || math.Abs(back.Y-f.Y) > 1e-9 {
		t.Errorf("round trip = %+v, want %+v", back, f)
	}
}

func TestScreenWorldRoundTrip(t *testing.T) {
	pan := World{X: 100, Y: -50}
	const zoom = 2.0

	s := Screen{X: 30, Y: 40}
	w := s.ToWorld(zoom, pan)
	if math.Abs(w.X-115) > 1e-12 || math.Abs(w.Y-(-30)) > 1e-12 {
		t.Errorf("ToWorld = %+v, want (115, -30)", w)
	}
	if back := w.ToScreen(zoom, pan); math.Abs(back.X-s.X) > 1e-9 || math.Abs(back.Y-s.Y) > 1e-9 {
		t.Errorf("round trip = %+v, want %+v", back, s)
	}
}

func TestAdd(t *testing.T) {
	if got := (World{X: 1, Y: 2}).Add(World{X: 3, Y: -5}); got != (World{X: 4, Y: -3}) {
		t.Errorf("World.Add = %+v", got)
	}
	if got := (FromCenter{X: 1, Y: 1}).Add(FromCenter{X: -1, Y: 2}); got != (FromCenter{X: 0, Y: 3}) {
		t.Errorf("FromCenter.Add = %+v", got)
	}
}

package compositor

import (
	"math"
	"testing"
)

// backgroundImage returns a w x h image filled with bg.
func backgroundImage(w, h int, bg RGBA) *Image {
	buf := NewBuffer(w, h)
	buf.Fill(bg)
	return NewImage(buf)
}

func TestShouldBake(t *testing.T) {
	bg := RGB(0.2, 0.3, 0.4)

	withBorderPixel := func(c RGBA) *Image {
		buf := NewBuffer(100, 100)
		buf.Fill(bg)
		buf.SetPixel(50, 0, c)
		return NewImage(buf)
	}
	withInteriorPixel := func(c RGBA) *Image {
		buf := NewBuffer(100, 100)
		buf.Fill(bg)
		buf.SetPixel(50, 50, c)
		return NewImage(buf)
	}

	rot45 := Parameters{ScaleX: 1, ScaleY: 1, Angle: math.Pi / 4, PivotX: 50, PivotY: 50}
	scale2 := Parameters{ScaleX: 2, ScaleY: 1, PivotX: 50, PivotY: 50}

	tests := []struct {
		name string
		img  *Image
		want bool
	}{
		{
			name: "no transform",
			img:  backgroundImage(100, 100, bg),
			want: false,
		},
		{
			name: "identity transform",
			img:  backgroundImage(100, 100, bg).Transformed(Identity()),
			want: false,
		},
		{
			name: "pure translation",
			img:  withBorderPixel(White).Transformed(Translate(30, -12)),
			want: false,
		},
		{
			name: "scale without rotation",
			img:  withBorderPixel(White).Transformed(scale2.Matrix()),
			want: false,
		},
		{
			name: "rotation over background-only borders",
			img:  backgroundImage(100, 100, bg).Transformed(rot45.Matrix()),
			want: false,
		},
		{
			name: "rotation with content on the border",
			img:  withBorderPixel(White).Transformed(rot45.Matrix()),
			want: true,
		},
		{
			name: "rotation with content only in the interior",
			img:  withInteriorPixel(White).Transformed(rot45.Matrix()),
			want: false,
		},
		{
			name: "rotation with border pixel inside tolerance",
			img: withBorderPixel(RGBA{
				R: 0.2 + 0.5/255, G: 0.3, B: 0.4, A: 1,
			}).Transformed(rot45.Matrix()),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldBake(tt.img, bg); got != tt.want {
				t.Errorf("ShouldBake() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldBakeChecksAllFourEdges(t *testing.T) {
	bg := Transparent
	rot := Rotate(math.Pi / 4)

	edges := []struct {
		name string
		x, y int
	}{
		{"top", 3, 0},
		{"bottom", 3, 9},
		{"left", 0, 4},
		{"right", 9, 4},
	}
	for _, e := range edges {
		t.Run(e.name, func(t *testing.T) {
			buf := NewBuffer(10, 10)
			buf.SetPixel(e.x, e.y, White)
			if !ShouldBake(NewImage(buf).Transformed(rot), bg) {
				t.Errorf("content at (%d,%d) on the %s edge must force a bake", e.x, e.y, e.name)
			}
		})
	}
}

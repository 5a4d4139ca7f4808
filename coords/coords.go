// Package coords provides typed wrappers for the coordinate spaces used
// by the compositor's transform pipeline.
//
// Five spaces appear in pivot and placement math: screen (view pixels),
// world (composite pixels), local (untransformed image pixels), from-center
// (pixels relative to an image's own center) and normalized ([0,1] across
// the image). Giving each its own type prevents a value in one space from
// being passed where another is expected; every conversion is an explicit
// function call.
package coords

// Screen is a position in view (screen) pixels.
type Screen struct {
	X, Y float64
}

// World is a position or displacement in composite (world) pixels.
type World struct {
	X, Y float64
}

// Local is a position in an image's own untransformed pixel space,
// origin at the top-left corner.
type Local struct {
	X, Y float64
}

// FromCenter is a position in pixels relative to an image's own center.
type FromCenter struct {
	X, Y float64
}

// Normalized is a position across an image where (0,0) is the top-left
// corner and (1,1) the bottom-right.
type Normalized struct {
	X, Y float64
}

// Add returns the vector sum of two world displacements.
func (w World) Add(v World) World {
	return World{X: w.X + v.X, Y: w.Y + v.Y}
}

// Add returns the vector sum of two from-center positions.
func (f FromCenter) Add(v FromCenter) FromCenter {
	return FromCenter{X: f.X + v.X, Y: f.Y + v.Y}
}

// ToWorld converts a screen position to world space for a view with the
// given zoom factor and pan (world position of the view origin).
func (s Screen) ToWorld(zoom float64, pan World) World {
	return World{
		X: s.X/zoom + pan.X,
		Y: s.Y/zoom + pan.Y,
	}
}

// ToScreen converts a world position to screen space for a view with the
// given zoom factor and pan.
func (w World) ToScreen(zoom float64, pan World) Screen {
	return Screen{
		X: (w.X - pan.X) * zoom,
		Y: (w.Y - pan.Y) * zoom,
	}
}

// ToFromCenter converts a local position to from-center coordinates for
// an image of the given dimensions.
func (l Local) ToFromCenter(width, height int) FromCenter {
	return FromCenter{
		X: l.X - float64(width)/2,
		Y: l.Y - float64(height)/2,
	}
}

// ToLocal converts a from-center position back to local pixels for an
// image of the given dimensions.
func (f FromCenter) ToLocal(width, height int) Local {
	return Local{
		X: f.X + float64(width)/2,
		Y: f.Y + float64(height)/2,
	}
}

// ToNormalized converts a from-center position to the [0,1] range for an
// image of the given dimensions.
func (f FromCenter) ToNormalized(width, height int) Normalized {
	return Normalized{
		X: (f.X + float64(width)/2) / float64(width),
		Y: (f.Y + float64(height)/2) / float64(height),
	}
}

// ToFromCenter converts a normalized position to from-center pixels for
// an image of the given dimensions.
func (n Normalized) ToFromCenter(width, height int) FromCenter {
	return FromCenter{
		X: n.X*float64(width) - float64(width)/2,
		Y: n.Y*float64(height) - float64(height)/2,
	}
}

package compositor

// Parameters is the editable decomposition of a transform node's state.
// Pivot coordinates are in source-image pixel units; offsets are in world
// pixels. The combined transform applies, in order: translate(-pivot),
// scale, rotate, translate(+pivot), translate(offset).
type Parameters struct {
	OffsetX float64
	OffsetY float64
	Angle   float64 // radians
	ScaleX  float64
	ScaleY  float64
	PivotX  float64
	PivotY  float64
}

// DefaultParameters returns the neutral parameter set: unit scale, no
// rotation, no offset, pivot at the given image center.
func DefaultParameters(width, height int) Parameters {
	return Parameters{
		ScaleX: 1,
		ScaleY: 1,
		PivotX: float64(width) / 2,
		PivotY: float64(height) / 2,
	}
}

// Matrix builds the combined affine transform for the parameter set.
func (p Parameters) Matrix() Matrix {
	return PivotTransform(p.ScaleX, p.ScaleY, p.Angle,
		p.PivotX, p.PivotY, p.OffsetX, p.OffsetY)
}

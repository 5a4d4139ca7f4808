package compositor

import (
	"sync"

	"github.com/gogpu/compositor/coords"
)

// AxisConstraint restricts a pivot drag to one world axis.
type AxisConstraint int

const (
	// AxisFree applies the drag delta unconstrained.
	AxisFree AxisConstraint = iota

	// AxisX keeps only the horizontal component of the drag delta.
	AxisX

	// AxisY keeps only the vertical component of the drag delta.
	AxisY
)

// PivotDrag holds the four outputs of a pivot drag solve. They form a
// single consistent state: applying the pivot and offset separately, with
// a recompute between them, renders one frame in a visibly wrong position.
type PivotDrag struct {
	// PivotFromCenter is the new pivot relative to the image center.
	PivotFromCenter coords.FromCenter

	// Offset is the new world-space offset compensating the pivot move so
	// the rendered image stays visually stationary.
	Offset coords.World
}

// SolvePivotDrag computes where a dragged pivot lands and the offset that
// keeps the rendered image from jumping.
//
// Moving the pivot alone shifts the rendered image (scale and rotation
// are applied about the pivot), and compensating naively still places the
// pivot at the wrong world position whenever scale is not 1 or the angle
// is nonzero. The drag delta is therefore first mapped into the image's
// local frame through the inverse of rotate∘scale:
//
//	local.x = (cos·wx + sin·wy) / scaleX
//	local.y = (−sin·wx + cos·wy) / scaleY
//
// The new pivot is start + local. With d = −local, the compensating
// offset is oldOffset + d − (rotate∘scale)(d), which cancels the translation
// the pivot move introduces. The invariant is that newPivotWorld equals
// oldPivotWorld + worldDelta exactly, up to floating-point error.
//
// A zero scale makes rotate∘scale degenerate; the inverse substitutes
// identity (see Matrix.Invert) and the drag becomes a plain translation
// for that event, which is the accepted behavior during transient edits.
func SolvePivotDrag(cur Parameters, startPivot coords.FromCenter, worldDelta coords.World) PivotDrag {
	rs := Compose(Rotate(cur.Angle), Scale(cur.ScaleX, cur.ScaleY))
	inv, _ := rs.Invert()

	local := inv.TransformVector(Pt(worldDelta.X, worldDelta.Y))
	newPivot := startPivot.Add(coords.FromCenter{X: local.X, Y: local.Y})

	d := local.Neg()
	rsd := rs.TransformVector(d)
	return PivotDrag{
		PivotFromCenter: newPivot,
		Offset: coords.World{
			X: cur.OffsetX + d.X - rsd.X,
			Y: cur.OffsetY + d.Y - rsd.Y,
		},
	}
}

// constrain zeroes the suppressed component of a drag delta.
func constrain(delta coords.World, axis AxisConstraint) coords.World {
	switch axis {
	case AxisX:
		delta.Y = 0
	case AxisY:
		delta.X = 0
	}
	return delta
}

// DragSession accumulates pivot-drag events for one interactive drag.
//
// Pointer events are coalesced: only the latest world delta since drag
// start is kept, and each Commit solves from the starting state, so event
// rate never multiplies error. Commit applies all four solver outputs to
// a Parameters copy and delivers it through a single callback, after
// which the caller schedules exactly one recompute.
//
// DragSession is safe for concurrent use.
type DragSession struct {
	mu         sync.Mutex
	start      Parameters
	startPivot coords.FromCenter
	width      int
	height     int
	latest     coords.World
	axis       AxisConstraint
	onCommit   func(Parameters)
}

// NewDragSession starts a drag from the node's current parameters.
// width and height are the source image dimensions, used to convert the
// pivot between pixel and from-center conventions. onCommit receives the
// updated parameters; it must trigger at most one recompute per call.
func NewDragSession(cur Parameters, width, height int, onCommit func(Parameters)) *DragSession {
	p := coords.Local{X: cur.PivotX, Y: cur.PivotY}
	return &DragSession{
		start:      cur,
		startPivot: p.ToFromCenter(width, height),
		width:      width,
		height:     height,
		onCommit:   onCommit,
	}
}

// Constrain restricts subsequent deltas to one world axis.
func (s *DragSession) Constrain(axis AxisConstraint) {
	s.mu.Lock()
	s.axis = axis
	s.mu.Unlock()
}

// Update records the latest cumulative world delta since drag start,
// replacing any delta not yet committed.
func (s *DragSession) Update(worldDelta coords.World) {
	s.mu.Lock()
	s.latest = worldDelta
	s.mu.Unlock()
}

// Commit solves for the coalesced delta and publishes pivot and offset as
// one atomic batch. It returns the applied parameters.
func (s *DragSession) Commit() Parameters {
	s.mu.Lock()
	delta := constrain(s.latest, s.axis)
	params := s.start
	startPivot := s.startPivot
	w, h := s.width, s.height
	onCommit := s.onCommit
	s.mu.Unlock()

	drag := SolvePivotDrag(params, startPivot, delta)
	local := drag.PivotFromCenter.ToLocal(w, h)
	params.PivotX = local.X
	params.PivotY = local.Y
	params.OffsetX = drag.Offset.X
	params.OffsetY = drag.Offset.Y

	if onCommit != nil {
		onCommit(params)
	}
	return params
}

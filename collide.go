package stride

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/voxelforge/stride/block"
	"github.com/voxelforge/stride/shape"
)

// Collide resolves a desired displacement of box against the world and
// returns the displacement that is actually possible. The Y component
// is clamped first so the box lands before sliding; then the larger
// horizontal component, then the smaller one, re-offsetting the box
// between axes.
//
// When the entity has a step height, is supported, and was blocked
// horizontally, the resolution is retried from candidate step heights
// collected from the colliders' Y breakpoints; the first retry that
// gets further horizontally wins.
//
// A displacement shorter than Epsilon resolves to zero without
// touching the world. The result is a pure function of the world
// snapshot and the inputs.
func (w *World) Collide(e *Entity, box shape.AABB, desired mgl64.Vec3) mgl64.Vec3 {
	if desired.Len() < shape.Epsilon {
		return mgl64.Vec3{}
	}

	ctx := block.EmptyContext()
	stepHeight := 0.0
	onGround := false
	if e != nil {
		ctx = block.ForEntity(box.Min.Y(), desired.Y() < 0)
		stepHeight = e.StepHeight
		onGround = e.onGround
	}

	shapes := w.colliders(e, box.Stretch(desired), ctx)
	collided := collideWithShapes(desired, box, shapes)

	xBlocked := desired.X() != collided.X()
	yBlocked := desired.Y() != collided.Y()
	zBlocked := desired.Z() != collided.Z()
	supported := onGround || yBlocked && desired.Y() < 0

	if stepHeight > 0 && supported && (xBlocked || zBlocked) {
		stepBox := box
		if yBlocked {
			stepBox = box.OffsetCoords(0, collided.Y(), 0)
		}
		sweep := stepBox.Stretch(mgl64.Vec3{desired.X(), stepHeight, desired.Z()})
		if !yBlocked {
			// Catch the floor the box is resting on as a breakpoint
			// source even though the box only touches it.
			sweep = sweep.Stretch(mgl64.Vec3{0, -shape.Epsilon, 0})
		}
		stepShapes := w.colliders(e, sweep, ctx)

		for _, h := range candidateStepUpHeights(stepBox, stepShapes, stepHeight, collided.Y()) {
			stepped := collideWithShapes(mgl64.Vec3{desired.X(), h, desired.Z()}, stepBox, stepShapes)
			if horizontalDistSqr(stepped) > horizontalDistSqr(collided) {
				return stepped.Add(mgl64.Vec3{0, stepBox.Min.Y() - box.Min.Y(), 0})
			}
		}
	}

	return collided
}

// candidateStepUpHeights collects the Y breakpoints of the colliders
// relative to the box bottom that lie within the step height, sorted
// ascending and deduplicated. The height already produced by the
// unstepped resolution is excluded.
func candidateStepUpHeights(box shape.AABB, shapes []*shape.Shape, stepHeight, alreadyTried float64) []float64 {
	var heights []float64
	for _, s := range shapes {
		for i := 0; i < s.CoordCount(shape.AxisY); i++ {
			h := s.Coord(shape.AxisY, i) - box.Min.Y()
			if h < 0 || h == alreadyTried {
				continue
			}
			if h > stepHeight {
				break
			}
			heights = append(heights, h)
		}
	}
	sort.Float64s(heights)

	uniq := heights[:0]
	for _, h := range heights {
		if len(uniq) == 0 || h != uniq[len(uniq)-1] {
			uniq = append(uniq, h)
		}
	}
	return uniq
}

// collideWithShapes clamps the desired displacement axis by axis: Y
// first, then the horizontal axis with the larger component, offsetting
// the box after each resolved axis.
func collideWithShapes(desired mgl64.Vec3, box shape.AABB, shapes []*shape.Shape) mgl64.Vec3 {
	if len(shapes) == 0 {
		return desired
	}

	var out mgl64.Vec3
	if desired.Y() != 0 {
		out[1] = collideAxis(shape.AxisY, box, shapes, desired.Y())
		if out[1] != 0 {
			box = box.OffsetCoords(0, out[1], 0)
		}
	}

	zMajor := math.Abs(desired.X()) < math.Abs(desired.Z())
	if zMajor && desired.Z() != 0 {
		out[2] = collideAxis(shape.AxisZ, box, shapes, desired.Z())
		if out[2] != 0 {
			box = box.OffsetCoords(0, 0, out[2])
		}
	}
	if desired.X() != 0 {
		out[0] = collideAxis(shape.AxisX, box, shapes, desired.X())
		if !zMajor && out[0] != 0 {
			box = box.OffsetCoords(out[0], 0, 0)
		}
	}
	if !zMajor && desired.Z() != 0 {
		out[2] = collideAxis(shape.AxisZ, box, shapes, desired.Z())
	}
	return out
}

// collideAxis folds one axis displacement through every shape. The
// clamp can only shrink the magnitude, so a displacement that reaches
// zero stays zero.
func collideAxis(axis shape.Axis, box shape.AABB, shapes []*shape.Shape, dist float64) float64 {
	for _, s := range shapes {
		if math.Abs(dist) < shape.Epsilon {
			return 0
		}
		dist = s.MaxDistance(axis, box, dist)
	}
	return dist
}

func horizontalDistSqr(v mgl64.Vec3) float64 {
	return v.X()*v.X() + v.Z()*v.Z()
}

// FindSupportingBlock returns the position of the block that supports
// an entity standing with the given probe box: the colliding block
// whose cell center is nearest to the entity position. Ties break by
// position order so the result is deterministic.
//
// The scan runs through the block-collision iterator, so blocks whose
// shape reaches into the probe from a neighbouring cell (a fence top)
// are found too.
func (w *World) FindSupportingBlock(e *Entity, probe shape.AABB) (block.Pos, bool) {
	ctx := block.ForEntity(probe.Min.Y(), true)

	var (
		best     block.Pos
		bestDist = math.Inf(1)
		found    bool
	)
	it := newBlockCollisions(w, probe, ctx)
	for _, ok := it.Next(); ok; _, ok = it.Next() {
		pos := it.Pos()
		d := pos.DistToCenterSqr(e.Pos())
		if d < bestDist || d == bestDist && pos.Less(best) {
			best = pos
			bestDist = d
			found = true
		}
	}
	return best, found
}

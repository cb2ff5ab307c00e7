package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the tolerance shared by the AABB clamp and the breakpoint
// index scan. Gaps smaller than this count as touching.
const Epsilon = 1e-5

// Axis identifies one of the three world axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "z"
	}
}

// Others returns the two remaining axes in X,Y,Z order.
func (a Axis) Others() (Axis, Axis) {
	switch a {
	case AxisX:
		return AxisY, AxisZ
	case AxisY:
		return AxisX, AxisZ
	default:
		return AxisX, AxisY
	}
}

// AABB represents an axis-aligned bounding box.
// Min ≤ Max per axis is a caller-maintained invariant; every transform
// returns a new value.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABB builds a box from its six bounds.
func NewAABB(minX, minY, minZ, maxX, maxY, maxZ float64) AABB {
	return AABB{
		Min: mgl64.Vec3{minX, minY, minZ},
		Max: mgl64.Vec3{maxX, maxY, maxZ},
	}
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Intersects reports whether two boxes overlap with positive volume.
// Boxes that merely touch on a face, edge or corner do not intersect;
// movement resolution relies on touching boxes being free to slide.
func (a AABB) Intersects(other AABB) bool {
	return a.Min.X() < other.Max.X() && a.Max.X() > other.Min.X() &&
		a.Min.Y() < other.Max.Y() && a.Max.Y() > other.Min.Y() &&
		a.Min.Z() < other.Max.Z() && a.Max.Z() > other.Min.Z()
}

// Offset returns the box translated by delta.
func (a AABB) Offset(delta mgl64.Vec3) AABB {
	return AABB{Min: a.Min.Add(delta), Max: a.Max.Add(delta)}
}

// OffsetCoords returns the box translated by (x, y, z).
func (a AABB) OffsetCoords(x, y, z float64) AABB {
	return a.Offset(mgl64.Vec3{x, y, z})
}

// Stretch returns the swept volume of the box moved by delta: the
// union of the box and a translated copy. Each component grows the box
// only in its sign direction.
func (a AABB) Stretch(delta mgl64.Vec3) AABB {
	out := a
	for i := 0; i < 3; i++ {
		if delta[i] < 0 {
			out.Min[i] += delta[i]
		} else {
			out.Max[i] += delta[i]
		}
	}
	return out
}

// Grow returns the box inflated by amount on every side. A negative
// amount shrinks the box.
func (a AABB) Grow(amount float64) AABB {
	return a.GrowVec(mgl64.Vec3{amount, amount, amount})
}

// GrowVec inflates the box per axis.
func (a AABB) GrowVec(amount mgl64.Vec3) AABB {
	return AABB{Min: a.Min.Sub(amount), Max: a.Max.Add(amount)}
}

// Intersection returns the overlapping region of two boxes. If the
// boxes are disjoint the result has inverted bounds on at least one
// axis; callers check Intersects first.
func (a AABB) Intersection(other AABB) AABB {
	var out AABB
	for i := 0; i < 3; i++ {
		out.Min[i] = math.Max(a.Min[i], other.Min[i])
		out.Max[i] = math.Min(a.Max[i], other.Max[i])
	}
	return out
}

// Union returns the smallest box covering both boxes.
func (a AABB) Union(other AABB) AABB {
	var out AABB
	for i := 0; i < 3; i++ {
		out.Min[i] = math.Min(a.Min[i], other.Min[i])
		out.Max[i] = math.Max(a.Max[i], other.Max[i])
	}
	return out
}

// Size returns the extent of the box on one axis.
func (a AABB) Size(axis Axis) float64 {
	return a.Max[axis] - a.Min[axis]
}

// MaxOffset clamps a desired displacement of the moving box along one
// axis against this box. It returns the largest displacement of the
// same sign that does not cause overlap.
//
// Two tolerance rules apply, both with Epsilon:
//   - if the boxes do not overlap on the other two axes, no constraint
//     is imposed;
//   - only gaps in the direction of travel count (gap ≥ −ε when moving
//     positively, ≤ +ε when moving negatively), so obstacles already
//     passed never clamp.
func (a AABB) MaxOffset(axis Axis, moving AABB, desired float64) float64 {
	u, v := axis.Others()
	if moving.Max[u] <= a.Min[u]+Epsilon || moving.Min[u] >= a.Max[u]-Epsilon {
		return desired
	}
	if moving.Max[v] <= a.Min[v]+Epsilon || moving.Min[v] >= a.Max[v]-Epsilon {
		return desired
	}
	if desired > 0 && moving.Max[axis] <= a.Min[axis]+Epsilon {
		if gap := a.Min[axis] - moving.Max[axis]; gap < desired {
			return gap
		}
	} else if desired < 0 && moving.Min[axis] >= a.Max[axis]-Epsilon {
		if gap := a.Max[axis] - moving.Min[axis]; gap > desired {
			return gap
		}
	}
	return desired
}

package shape

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape is a union-of-boxes collision volume: a voxel Set plus one
// sorted breakpoint sequence per axis, where len(points) == size+1.
// Shapes are immutable once built and may be shared across queries.
//
// Translation is stored as an accumulated offset instead of rewriting
// the breakpoints, so Move(v).Move(-v) reproduces the original
// coordinates exactly.
type Shape struct {
	set  Set
	base [3][]float64
	off  mgl64.Vec3
	cube bool
}

var (
	emptyShape = &Shape{
		set:  NewBitSet(0, 0, 0),
		base: [3][]float64{{0}, {0}, {0}},
	}
	blockShape = &Shape{
		set:  filledSet{1, 1, 1},
		base: [3][]float64{{0, 1}, {0, 1}, {0, 1}},
		cube: true,
	}
)

// Empty returns the canonical empty shape. It never constrains
// movement.
func Empty() *Shape { return emptyShape }

// Block returns the canonical full unit cube, tagged so the collision
// iterator can take its fast path. The tag is structural, never
// pointer identity.
func Block() *Shape { return blockShape }

// Create builds a single-box shape from an AABB. A box that is exactly
// the unit cube yields the canonical Block shape; a box with no volume
// yields Empty.
func Create(box AABB) *Shape {
	for i := 0; i < 3; i++ {
		if box.Max[i]-box.Min[i] < Epsilon {
			return emptyShape
		}
	}
	if isUnitCube(box) {
		return blockShape
	}
	return &Shape{
		set: filledSet{1, 1, 1},
		base: [3][]float64{
			{box.Min.X(), box.Max.X()},
			{box.Min.Y(), box.Max.Y()},
			{box.Min.Z(), box.Max.Z()},
		},
	}
}

// NewBox builds a single-box shape from six block-local bounds.
func NewBox(minX, minY, minZ, maxX, maxY, maxZ float64) *Shape {
	if minX > maxX || minY > maxY || minZ > maxZ {
		panic("shape: inverted box bounds")
	}
	return Create(NewAABB(minX, minY, minZ, maxX, maxY, maxZ))
}

func isUnitCube(box AABB) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(box.Min[i]) > Epsilon || math.Abs(box.Max[i]-1) > Epsilon {
			return false
		}
	}
	return true
}

// Or materializes the union of the given shapes on a merged breakpoint
// grid. Used by the factory for composite block shapes (stairs,
// fences); the result is cached per block kind, not built per query.
func Or(shapes ...*Shape) *Shape {
	live := shapes[:0:0]
	for _, s := range shapes {
		if s != nil && !s.IsEmpty() {
			live = append(live, s)
		}
	}
	switch len(live) {
	case 0:
		return emptyShape
	case 1:
		return live[0]
	}

	var pts [3][]float64
	for axis := Axis(0); axis < 3; axis++ {
		lists := make([][]float64, len(live))
		for i, s := range live {
			lists[i] = s.coords(axis)
		}
		pts[axis] = mergePoints(lists...)
	}

	set := NewBitSet(len(pts[0])-1, len(pts[1])-1, len(pts[2])-1)
	for x := 0; x < set.Size(AxisX); x++ {
		cx := mid(pts[0][x], pts[0][x+1])
		for y := 0; y < set.Size(AxisY); y++ {
			cy := mid(pts[1][y], pts[1][y+1])
			for z := 0; z < set.Size(AxisZ); z++ {
				cz := mid(pts[2][z], pts[2][z+1])
				for _, s := range live {
					if s.containsPoint(cx, cy, cz) {
						set.Fill(x, y, z)
						break
					}
				}
			}
		}
	}
	out := &Shape{set: set, base: pts}
	if isUnitCube(out.Bounds()) && set.Size(AxisX)*set.Size(AxisY)*set.Size(AxisZ) ==
		countFilled(set) {
		return blockShape
	}
	return out
}

func countFilled(set Set) int {
	n := 0
	for x := 0; x < set.Size(AxisX); x++ {
		for y := 0; y < set.Size(AxisY); y++ {
			for z := 0; z < set.Size(AxisZ); z++ {
				if set.Contains(x, y, z) {
					n++
				}
			}
		}
	}
	return n
}

func mid(a, b float64) float64 { return (a + b) / 2 }

// mergePoints merges sorted breakpoint lists, collapsing values closer
// than Epsilon.
func mergePoints(lists ...[]float64) []float64 {
	var all []float64
	for _, l := range lists {
		all = append(all, l...)
	}
	sort.Float64s(all)
	out := all[:0]
	for _, v := range all {
		if len(out) == 0 || v-out[len(out)-1] > Epsilon {
			out = append(out, v)
		}
	}
	return out
}

// IsEmpty reports whether the shape has no filled cell.
func (s *Shape) IsEmpty() bool { return s.set.IsEmpty() }

// IsFullCube reports whether this is the canonical full unit cube.
func (s *Shape) IsFullCube() bool { return s.cube }

// Size returns the voxel grid dimension on one axis.
func (s *Shape) Size(axis Axis) int { return s.set.Size(axis) }

// Coord returns the i-th breakpoint on an axis, offset applied.
func (s *Shape) Coord(axis Axis, i int) float64 {
	return s.base[axis][i] + s.off[axis]
}

// CoordCount returns the number of breakpoints on an axis
// (grid size + 1 for non-empty shapes).
func (s *Shape) CoordCount(axis Axis) int { return len(s.base[axis]) }

// coords materializes the breakpoints of one axis.
func (s *Shape) coords(axis Axis) []float64 {
	out := make([]float64, len(s.base[axis]))
	for i, v := range s.base[axis] {
		out[i] = v + s.off[axis]
	}
	return out
}

// Min returns the lowest filled coordinate on an axis, +Inf if empty.
func (s *Shape) Min(axis Axis) float64 {
	if s.IsEmpty() {
		return math.Inf(1)
	}
	return s.Coord(axis, s.set.Min(axis))
}

// Max returns the highest filled coordinate on an axis, -Inf if empty.
func (s *Shape) Max(axis Axis) float64 {
	if s.IsEmpty() {
		return math.Inf(-1)
	}
	return s.Coord(axis, s.set.Max(axis))
}

// Bounds returns the bounding box of the filled region. The zero AABB
// is returned for empty shapes; callers check IsEmpty first.
func (s *Shape) Bounds() AABB {
	if s.IsEmpty() {
		return AABB{}
	}
	return NewAABB(
		s.Min(AxisX), s.Min(AxisY), s.Min(AxisZ),
		s.Max(AxisX), s.Max(AxisY), s.Max(AxisZ),
	)
}

// Move returns the shape translated by delta. The voxel set is shared;
// only the accumulated offset changes, so this is O(1).
func (s *Shape) Move(delta mgl64.Vec3) *Shape {
	if s.IsEmpty() {
		return s
	}
	return &Shape{set: s.set, base: s.base, off: s.off.Add(delta)}
}

// CoordIndex returns the index of the cell containing v on an axis:
// the largest i with Coord(axis, i) ≤ v, -1 if v lies below the first
// breakpoint, size if at or beyond the last.
func (s *Shape) CoordIndex(axis Axis, v float64) int {
	i := -1
	for i+1 < len(s.base[axis]) && s.Coord(axis, i+1) <= v {
		i++
	}
	return i
}

// containsPoint reports whether a world-space point lies in a filled
// cell.
func (s *Shape) containsPoint(x, y, z float64) bool {
	ix := s.CoordIndex(AxisX, x)
	if ix < 0 || ix >= s.set.Size(AxisX) {
		return false
	}
	iy := s.CoordIndex(AxisY, y)
	if iy < 0 || iy >= s.set.Size(AxisY) {
		return false
	}
	iz := s.CoordIndex(AxisZ, z)
	if iz < 0 || iz >= s.set.Size(AxisZ) {
		return false
	}
	return s.set.Contains(ix, iy, iz)
}

// cellOn maps a (layer, row, col) triple back to grid coordinates,
// where layer runs on axis and row/col on axis.Others().
func (s *Shape) cellOn(axis Axis, layer, row, col int) bool {
	switch axis {
	case AxisX:
		return s.set.Contains(layer, row, col)
	case AxisY:
		return s.set.Contains(row, layer, col)
	default:
		return s.set.Contains(row, col, layer)
	}
}

// MaxDistance is the fine-grained analogue of AABB.MaxOffset: it
// clamps a desired displacement of box along one axis against this
// shape. The search is restricted to the breakpoint window the box
// overlaps on the other two axes, then walks cell layers outward from
// the box's leading face in the direction of travel; the first filled
// cell decides the clamp.
//
// Empty shapes never constrain; a displacement below Epsilon returns 0
// outright.
func (s *Shape) MaxDistance(axis Axis, box AABB, dist float64) float64 {
	if s.IsEmpty() {
		return dist
	}
	if math.Abs(dist) < Epsilon {
		return 0
	}

	u, v := axis.Others()
	minU := max(0, s.CoordIndex(u, box.Min[u]+Epsilon))
	maxU := min(s.set.Size(u), s.CoordIndex(u, box.Max[u]-Epsilon)+1)
	minV := max(0, s.CoordIndex(v, box.Min[v]+Epsilon))
	maxV := min(s.set.Size(v), s.CoordIndex(v, box.Max[v]-Epsilon)+1)

	size := s.set.Size(axis)
	if dist > 0 {
		lead := box.Max[axis]
		for layer := s.CoordIndex(axis, lead-Epsilon) + 1; layer < size; layer++ {
			if layer < 0 {
				continue
			}
			for row := minU; row < maxU; row++ {
				for col := minV; col < maxV; col++ {
					if s.cellOn(axis, layer, row, col) {
						gap := s.Coord(axis, layer) - lead
						if gap >= -Epsilon && gap < dist {
							dist = gap
						}
						return dist
					}
				}
			}
		}
	} else {
		lead := box.Min[axis]
		start := s.CoordIndex(axis, lead+Epsilon) - 1
		if start >= size {
			start = size - 1
		}
		for layer := start; layer >= 0; layer-- {
			for row := minU; row < maxU; row++ {
				for col := minV; col < maxV; col++ {
					if s.cellOn(axis, layer, row, col) {
						gap := s.Coord(axis, layer+1) - lead
						if gap <= Epsilon && gap > dist {
							dist = gap
						}
						return dist
					}
				}
			}
		}
	}
	return dist
}

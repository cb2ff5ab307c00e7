package shape

// Op merges the membership of two shapes at one cell. An op with
// op(false, false) == true would make every unbounded cell "filled";
// passing one is a programmer error.
type Op func(a, b bool) bool

var (
	OpAnd        Op = func(a, b bool) bool { return a && b }
	OpOr         Op = func(a, b bool) bool { return a || b }
	OpXor        Op = func(a, b bool) bool { return a != b }
	OpOnlyFirst  Op = func(a, b bool) bool { return a && !b }
	OpOnlySecond Op = func(a, b bool) bool { return !a && b }
)

// JoinIsNotEmpty answers whether merging a and b under op yields any
// filled cell, without materializing the merged grid. The per-axis
// bounding ranges are intersected first for cheap rejection; otherwise
// the cross-product of merged breakpoint intervals is walked, sampling
// each cell's midpoint against both shapes.
func JoinIsNotEmpty(a, b *Shape, op Op) bool {
	if op(false, false) {
		panic("shape: boolean op fills unbounded space")
	}
	aEmpty, bEmpty := a.IsEmpty(), b.IsEmpty()
	if aEmpty || bEmpty {
		return op(!aEmpty, !bEmpty)
	}

	// When only the intersection can contribute, disjoint bounds are an
	// immediate no; when either side alone contributes, disjoint bounds
	// are an immediate yes.
	if !a.Bounds().Intersects(b.Bounds()) {
		return op(true, false) || op(false, true)
	}

	var pts [3][]float64
	for axis := Axis(0); axis < 3; axis++ {
		pts[axis] = mergePoints(a.coords(axis), b.coords(axis))
	}

	for x := 0; x+1 < len(pts[0]); x++ {
		cx := mid(pts[0][x], pts[0][x+1])
		for y := 0; y+1 < len(pts[1]); y++ {
			cy := mid(pts[1][y], pts[1][y+1])
			for z := 0; z+1 < len(pts[2]); z++ {
				cz := mid(pts[2][z], pts[2][z+1])
				if op(a.containsPoint(cx, cy, cz), b.containsPoint(cx, cy, cz)) {
					return true
				}
			}
		}
	}
	return false
}

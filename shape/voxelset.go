package shape

// Set is a discrete 3D boolean grid: which unit sub-cells of a
// block-local shape are filled. Implementations are read-only after
// construction except for BitSet.Fill.
//
// Invariant: Min(axis) ≤ Max(axis) within [0, Size(axis)];
// IsEmpty ⇔ no filled cell.
type Set interface {
	// Size returns the grid dimension on one axis.
	Size(axis Axis) int
	// Contains reports whether the cell at (x, y, z) is filled.
	// Out-of-range cells are empty.
	Contains(x, y, z int) bool
	// Min returns the inclusive lower bound of the filled region.
	Min(axis Axis) int
	// Max returns the exclusive upper bound of the filled region.
	Max(axis Axis) int
	IsEmpty() bool
}

// BitSet is a dense bit-packed voxel grid.
type BitSet struct {
	sizeX, sizeY, sizeZ int
	bits                []uint64
	min                 [3]int
	max                 [3]int
}

// NewBitSet creates an empty grid of the given dimensions.
func NewBitSet(sizeX, sizeY, sizeZ int) *BitSet {
	if sizeX < 0 || sizeY < 0 || sizeZ < 0 {
		panic("shape: negative voxel set dimension")
	}
	n := sizeX * sizeY * sizeZ
	b := &BitSet{
		sizeX: sizeX,
		sizeY: sizeY,
		sizeZ: sizeZ,
		bits:  make([]uint64, (n+63)/64),
	}
	for i := 0; i < 3; i++ {
		b.min[i] = b.size(Axis(i))
		b.max[i] = 0
	}
	return b
}

func (b *BitSet) size(axis Axis) int {
	switch axis {
	case AxisX:
		return b.sizeX
	case AxisY:
		return b.sizeY
	default:
		return b.sizeZ
	}
}

func (b *BitSet) index(x, y, z int) int {
	return (x*b.sizeY+y)*b.sizeZ + z
}

// Fill marks the cell at (x, y, z) as filled and extends the bounds.
func (b *BitSet) Fill(x, y, z int) {
	if x < 0 || y < 0 || z < 0 || x >= b.sizeX || y >= b.sizeY || z >= b.sizeZ {
		panic("shape: fill out of range")
	}
	i := b.index(x, y, z)
	b.bits[i>>6] |= 1 << (i & 63)

	c := [3]int{x, y, z}
	for axis := 0; axis < 3; axis++ {
		if c[axis] < b.min[axis] {
			b.min[axis] = c[axis]
		}
		if c[axis]+1 > b.max[axis] {
			b.max[axis] = c[axis] + 1
		}
	}
}

func (b *BitSet) Size(axis Axis) int { return b.size(axis) }

func (b *BitSet) Contains(x, y, z int) bool {
	if x < 0 || y < 0 || z < 0 || x >= b.sizeX || y >= b.sizeY || z >= b.sizeZ {
		return false
	}
	i := b.index(x, y, z)
	return b.bits[i>>6]&(1<<(i&63)) != 0
}

func (b *BitSet) Min(axis Axis) int { return b.min[axis] }
func (b *BitSet) Max(axis Axis) int { return b.max[axis] }

func (b *BitSet) IsEmpty() bool {
	return b.max[0] <= b.min[0]
}

// filledSet is the fast path for a single fully-filled box: every cell
// of the grid is set.
type filledSet struct {
	sizeX, sizeY, sizeZ int
}

func (f filledSet) Size(axis Axis) int {
	switch axis {
	case AxisX:
		return f.sizeX
	case AxisY:
		return f.sizeY
	default:
		return f.sizeZ
	}
}

func (f filledSet) Contains(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 &&
		x < f.sizeX && y < f.sizeY && z < f.sizeZ
}

func (f filledSet) Min(Axis) int      { return 0 }
func (f filledSet) Max(axis Axis) int { return f.Size(axis) }
func (f filledSet) IsEmpty() bool     { return f.sizeX == 0 || f.sizeY == 0 || f.sizeZ == 0 }

// croppedSet is a read-only window into a parent set. It holds a
// non-owning reference: the parent must outlive the view.
type croppedSet struct {
	parent Set
	lo     [3]int
	hi     [3]int
}

// Crop returns a view of parent restricted to [lo, hi) per axis.
func Crop(parent Set, loX, loY, loZ, hiX, hiY, hiZ int) Set {
	c := croppedSet{parent: parent, lo: [3]int{loX, loY, loZ}, hi: [3]int{hiX, hiY, hiZ}}
	for i := 0; i < 3; i++ {
		if c.lo[i] > c.hi[i] {
			panic("shape: inverted crop bounds")
		}
	}
	return c
}

func (c croppedSet) Size(axis Axis) int {
	return c.hi[axis] - c.lo[axis]
}

func (c croppedSet) Contains(x, y, z int) bool {
	if x < 0 || y < 0 || z < 0 ||
		x >= c.Size(AxisX) || y >= c.Size(AxisY) || z >= c.Size(AxisZ) {
		return false
	}
	return c.parent.Contains(x+c.lo[0], y+c.lo[1], z+c.lo[2])
}

func (c croppedSet) Min(axis Axis) int {
	m := c.parent.Min(axis) - c.lo[axis]
	if m < 0 {
		m = 0
	}
	if s := c.Size(axis); m > s {
		m = s
	}
	return m
}

func (c croppedSet) Max(axis Axis) int {
	m := c.parent.Max(axis) - c.lo[axis]
	if m < 0 {
		m = 0
	}
	if s := c.Size(axis); m > s {
		m = s
	}
	return m
}

func (c croppedSet) IsEmpty() bool {
	for axis := Axis(0); axis < 3; axis++ {
		if c.Max(axis) <= c.Min(axis) {
			return true
		}
	}
	return false
}

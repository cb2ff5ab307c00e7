package stride

import "github.com/voxelforge/stride/block"

// Cursor3D walks every integer cell of an inclusive 3D range in raster
// order (X fastest, then Y, then Z) without allocating. The boundary
// type of the current cell classifies how many of its coordinates sit
// on the range boundary: 0 interior, 1 face, 2 edge, 3 corner.
type Cursor3D struct {
	x1, y1, z1 int
	x2, y2, z2 int
	width      int
	height     int
	total      int
	index      int
	x, y, z    int
}

// NewCursor3D creates a cursor over [x1, x2] × [y1, y2] × [z1, z2],
// bounds inclusive.
func NewCursor3D(x1, y1, z1, x2, y2, z2 int) *Cursor3D {
	width := x2 - x1 + 1
	height := y2 - y1 + 1
	depth := z2 - z1 + 1
	return &Cursor3D{
		x1: x1, y1: y1, z1: z1,
		x2: x2, y2: y2, z2: z2,
		width:  width,
		height: height,
		total:  width * height * depth,
	}
}

// Advance moves to the next cell and reports whether one exists. The
// cursor starts before the first cell; Advance must be called before
// the first read.
func (c *Cursor3D) Advance() bool {
	if c.index >= c.total {
		return false
	}
	i := c.index
	c.x = c.x1 + i%c.width
	i /= c.width
	c.y = c.y1 + i%c.height
	c.z = c.z1 + i/c.height
	c.index++
	return true
}

func (c *Cursor3D) X() int { return c.x }
func (c *Cursor3D) Y() int { return c.y }
func (c *Cursor3D) Z() int { return c.z }

// Pos returns the current cell as a block position.
func (c *Cursor3D) Pos() block.Pos {
	return block.Pos{X: c.x, Y: c.y, Z: c.z}
}

// BoundaryType counts how many coordinates of the current cell lie on
// the range boundary. Degenerate single-cell axes count as boundary on
// that axis.
func (c *Cursor3D) BoundaryType() int {
	n := 0
	if c.x == c.x1 || c.x == c.x2 {
		n++
	}
	if c.y == c.y1 || c.y == c.y2 {
		n++
	}
	if c.z == c.z1 || c.z == c.z2 {
		n++
	}
	return n
}

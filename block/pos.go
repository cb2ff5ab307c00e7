package block

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pos is an integer block position. A block occupies the unit cell
// [X, X+1) × [Y, Y+1) × [Z, Z+1).
type Pos struct {
	X, Y, Z int
}

// PosAt returns the position of the cell containing a world-space
// point.
func PosAt(point mgl64.Vec3) Pos {
	return Pos{
		X: int(math.Floor(point.X())),
		Y: int(math.Floor(point.Y())),
		Z: int(math.Floor(point.Z())),
	}
}

// Vec3 returns the minimum corner of the cell as a vector.
func (p Pos) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(p.X), float64(p.Y), float64(p.Z)}
}

// Add returns the position offset by (x, y, z).
func (p Pos) Add(x, y, z int) Pos {
	return Pos{X: p.X + x, Y: p.Y + y, Z: p.Z + z}
}

// Center returns the geometric center of the cell.
func (p Pos) Center() mgl64.Vec3 {
	return mgl64.Vec3{float64(p.X) + 0.5, float64(p.Y) + 0.5, float64(p.Z) + 0.5}
}

// DistToCenterSqr returns the squared distance from the cell center to
// a point.
func (p Pos) DistToCenterSqr(point mgl64.Vec3) float64 {
	d := p.Center().Sub(point)
	return d.Dot(d)
}

// Less orders positions by Y, then Z, then X. Used as a deterministic
// tie-break when two candidates are equally distant.
func (p Pos) Less(other Pos) bool {
	if p.Y != other.Y {
		return p.Y < other.Y
	}
	if p.Z != other.Z {
		return p.Z < other.Z
	}
	return p.X < other.X
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

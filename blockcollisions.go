package stride

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/voxelforge/stride/block"
	"github.com/voxelforge/stride/shape"
)

// blockCollisions lazily yields the world-space collision shapes of
// the blocks a box intersects. The scanned cell range is the box
// expanded by one cell on every side, so shapes reaching out of their
// own cell (fences) are still found.
//
// Cells are filtered cheapest-check-first: corner cells of the range
// can never reach the box and are skipped outright; edge cells are
// skipped too; face cells only matter for kinds with a large collision
// shape. Air never allocates. Full cubes are accepted on an AABB test
// alone; everything else runs the precise shape join.
type blockCollisions struct {
	world  *World
	box    shape.AABB
	ctx    block.Context
	cursor *Cursor3D

	// cell of the last shape yielded by Next
	pos block.Pos

	// entity shape for the precise join, built on first use
	boxShape *shape.Shape
}

func newBlockCollisions(w *World, box shape.AABB, ctx block.Context) *blockCollisions {
	return &blockCollisions{
		world: w,
		box:   box,
		ctx:   ctx,
		cursor: NewCursor3D(
			int(math.Floor(box.Min.X()-shape.Epsilon))-1,
			int(math.Floor(box.Min.Y()-shape.Epsilon))-1,
			int(math.Floor(box.Min.Z()-shape.Epsilon))-1,
			int(math.Floor(box.Max.X()+shape.Epsilon))+1,
			int(math.Floor(box.Max.Y()+shape.Epsilon))+1,
			int(math.Floor(box.Max.Z()+shape.Epsilon))+1,
		),
	}
}

// Next pulls the next colliding shape, already moved into world space.
func (it *blockCollisions) Next() (*shape.Shape, bool) {
	for it.cursor.Advance() {
		boundary := it.cursor.BoundaryType()
		if boundary == 3 {
			continue
		}

		pos := it.cursor.Pos()
		state := it.world.BlockState(pos)
		if state.IsAir() {
			continue
		}
		if boundary == 2 {
			continue
		}
		if boundary == 1 && !state.HasLargeCollisionShape() {
			continue
		}

		s := state.CollisionShape(it.ctx)
		if s.IsEmpty() {
			continue
		}

		posVec := pos.Vec3()
		if s.IsFullCube() {
			cell := shape.AABB{Min: posVec, Max: posVec.Add(mgl64.Vec3{1, 1, 1})}
			if !it.box.Intersects(cell) {
				continue
			}
			it.pos = pos
			return s.Move(posVec), true
		}

		moved := s.Move(posVec)
		if !moved.Bounds().Intersects(it.box) {
			continue
		}
		if !shape.JoinIsNotEmpty(moved, it.entityShape(), shape.OpAnd) {
			continue
		}
		it.pos = pos
		return moved, true
	}
	return nil, false
}

// Pos returns the cell of the shape the last Next call yielded.
func (it *blockCollisions) Pos() block.Pos {
	return it.pos
}

func (it *blockCollisions) entityShape() *shape.Shape {
	if it.boxShape == nil {
		it.boxShape = shape.Create(it.box)
	}
	return it.boxShape
}

// colliders gathers every shape a movement sweep can hit: the boxes of
// other solid entities, then the block shapes over the swept region.
func (w *World) colliders(e *Entity, box shape.AABB, ctx block.Context) []*shape.Shape {
	shapes := w.entityCollisions(e, box)
	it := newBlockCollisions(w, box, ctx)
	for s, ok := it.Next(); ok; s, ok = it.Next() {
		shapes = append(shapes, s)
	}
	return shapes
}

// entityCollisions returns the boxes of solid entities other than e
// that intersect box, in insertion order.
func (w *World) entityCollisions(e *Entity, box shape.AABB) []*shape.Shape {
	var out []*shape.Shape
	for _, other := range w.entities {
		if other == e || !other.Solid {
			continue
		}
		if ob := other.BoundingBox(); box.Intersects(ob) {
			out = append(out, shape.Create(ob))
		}
	}
	return out
}

// NoCollision reports whether box is free of both block and entity
// collisions. The block scan stops at the first hit.
func (w *World) NoCollision(e *Entity, box shape.AABB) bool {
	if len(w.entityCollisions(e, box)) > 0 {
		return false
	}
	ctx := block.EmptyContext()
	if e != nil {
		ctx = block.ForEntity(box.Min.Y(), false)
	}
	_, hit := newBlockCollisions(w, box, ctx).Next()
	return !hit
}

package stride

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/voxelforge/stride/block"
	"github.com/voxelforge/stride/shape"
)

// Entity is a movable box in the world. Position is the feet point:
// the bounding box is centered on it horizontally and extends upward.
// All movement state (collision flags, ground state, supporting block)
// is recomputed by Move; it is never carried between ticks except
// where Move reads it as input.
type Entity struct {
	Width  float64
	Height float64

	// StepHeight is how far the entity may step up while supported.
	// Zero disables stepping.
	StepHeight float64

	// Solid entities block each other's movement.
	Solid bool

	world *World
	pos   mgl64.Vec3
	vel   mgl64.Vec3

	horizontalCollision    bool
	verticalCollision      bool
	verticalCollisionBelow bool
	onGround               bool
	onGroundNoBlocks       bool

	supportingBlock    block.Pos
	hasSupportingBlock bool
}

// NewEntity creates an entity with the given box dimensions at the
// origin.
func NewEntity(width, height float64) *Entity {
	return &Entity{Width: width, Height: height}
}

// Pos returns the feet position.
func (e *Entity) Pos() mgl64.Vec3 { return e.pos }

// SetPos teleports the entity. Velocity and flags are untouched.
func (e *Entity) SetPos(pos mgl64.Vec3) { e.pos = pos }

// Velocity returns the per-tick velocity.
func (e *Entity) Velocity() mgl64.Vec3 { return e.vel }

// SetVelocity replaces the per-tick velocity.
func (e *Entity) SetVelocity(vel mgl64.Vec3) { e.vel = vel }

// BoundingBox returns the collision box, always derived from the
// current position.
func (e *Entity) BoundingBox() shape.AABB {
	half := e.Width / 2
	return shape.AABB{
		Min: mgl64.Vec3{e.pos.X() - half, e.pos.Y(), e.pos.Z() - half},
		Max: mgl64.Vec3{e.pos.X() + half, e.pos.Y() + e.Height, e.pos.Z() + half},
	}
}

// HorizontalCollision reports whether the last Move was clamped on X
// or Z.
func (e *Entity) HorizontalCollision() bool { return e.horizontalCollision }

// VerticalCollision reports whether the last Move was clamped on Y.
func (e *Entity) VerticalCollision() bool { return e.verticalCollision }

// VerticalCollisionBelow reports whether the last Move was clamped
// while moving down.
func (e *Entity) VerticalCollisionBelow() bool { return e.verticalCollisionBelow }

// OnGround reports whether the entity is supported from below.
func (e *Entity) OnGround() bool { return e.onGround }

// OnGroundNoBlocks reports the anomalous ground state: supported per
// the collision clamp but with no block found under the box.
func (e *Entity) OnGroundNoBlocks() bool { return e.onGroundNoBlocks }

// SupportingBlock returns the block the entity mainly stands on, if
// any.
func (e *Entity) SupportingBlock() (block.Pos, bool) {
	return e.supportingBlock, e.hasSupportingBlock
}

// Move resolves the desired displacement against the world, commits
// the possible part, updates every collision flag and zeroes the
// velocity components of the clamped axes. It returns the committed
// displacement.
func (e *Entity) Move(desired mgl64.Vec3) mgl64.Vec3 {
	box := e.BoundingBox()
	actual := e.world.Collide(e, box, desired)
	e.pos = e.pos.Add(actual)

	xBlocked := desired.X() != actual.X()
	zBlocked := desired.Z() != actual.Z()
	e.horizontalCollision = xBlocked || zBlocked
	e.verticalCollision = desired.Y() != actual.Y()
	e.verticalCollisionBelow = e.verticalCollision && desired.Y() < 0

	if xBlocked {
		e.vel[0] = 0
	}
	if zBlocked {
		e.vel[2] = 0
	}
	if e.verticalCollision {
		e.vel[1] = 0
	}

	e.onGround = e.verticalCollisionBelow
	e.checkSupportingBlock(actual)

	return actual
}

// checkSupportingBlock refreshes the supporting block after a move.
// When the probe under the fresh box finds nothing, the probe is
// retried at the pre-move horizontal position; a supported state that
// still finds no block is flagged by onGroundNoBlocks.
func (e *Entity) checkSupportingBlock(moved mgl64.Vec3) {
	if !e.onGround {
		e.onGroundNoBlocks = false
		e.hasSupportingBlock = false
		return
	}

	box := e.BoundingBox()
	probe := shape.NewAABB(
		box.Min.X(), box.Min.Y()-2*shape.Epsilon, box.Min.Z(),
		box.Max.X(), box.Min.Y(), box.Max.Z(),
	)
	pos, found := e.world.FindSupportingBlock(e, probe)
	if !found {
		pos, found = e.world.FindSupportingBlock(e, probe.OffsetCoords(-moved.X(), 0, -moved.Z()))
	}
	e.supportingBlock, e.hasSupportingBlock = pos, found
	e.onGroundNoBlocks = !found
}

// Tick advances the entity by one tick: gravity, one Move with the
// accumulated velocity, then drag and ground friction.
func (e *Entity) Tick() {
	t := e.world.Tuning

	e.vel[1] -= t.Gravity
	e.Move(e.vel)

	drag := 1 - t.Drag
	e.vel = e.vel.Mul(drag)
	if e.onGround {
		e.vel[0] *= t.GroundFriction
		e.vel[2] *= t.GroundFriction
	}
}

// IsColliding reports whether the entity's box precisely intersects
// the shape a block state would have at pos.
func (e *Entity) IsColliding(pos block.Pos, state block.State) bool {
	box := e.BoundingBox()
	ctx := block.ForEntity(box.Min.Y(), e.vel.Y() < 0)
	s := state.CollisionShape(ctx).Move(pos.Vec3())
	return shape.JoinIsNotEmpty(s, shape.Create(box), shape.OpAnd)
}

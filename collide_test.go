package stride

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/voxelforge/stride/block"
	"github.com/voxelforge/stride/shape"
)

func TestCollideAgainstWall(t *testing.T) {
	// Full block at x ∈ [2, 3], unit box ending at x = 1.5: the gap is
	// exactly half a block.
	w := NewWorld(DefaultTuning())
	w.SetBlock(block.Pos{X: 2, Y: 0, Z: 0}, block.State{Kind: block.Stone})

	box := shape.NewAABB(0.5, 0, 0, 1.5, 1, 1)

	tests := []struct {
		name     string
		desired  mgl64.Vec3
		expected mgl64.Vec3
	}{
		{"X clamps to the gap", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0.5, 0, 0}},
		{"X within the gap is untouched", mgl64.Vec3{0.3, 0, 0}, mgl64.Vec3{0.3, 0, 0}},
		{"Y is untouched", mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 1, 0}},
		{"Z is untouched", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 1}},
		{"Moving away is untouched", mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{-1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Collide(nil, box, tt.desired); got != tt.expected {
				t.Errorf("Collide(%v) = %v, expected %v", tt.desired, got, tt.expected)
			}
		})
	}
}

func TestCollideZeroMovementSkipsWorld(t *testing.T) {
	w := NewWorld(DefaultTuning())
	w.Fill(-2, -1, -2, 2, -1, 2, block.State{Kind: block.Stone})

	box := shape.NewAABB(0.2, 0, 0.2, 0.8, 1.8, 0.8)
	before := w.BlockQueries()

	got := w.Collide(nil, box, mgl64.Vec3{shape.Epsilon / 2, 0, 0})

	if got != (mgl64.Vec3{}) {
		t.Errorf("Collide = %v, expected zero", got)
	}
	if after := w.BlockQueries(); after != before {
		t.Errorf("world was queried %d times for a zero-length movement", after-before)
	}
}

func TestCollideRepeatedPressure(t *testing.T) {
	// Pushing into a wall twice: the first move consumes the gap, the
	// second resolves to zero. Magnitude never grows.
	w := NewWorld(DefaultTuning())
	w.SetBlock(block.Pos{X: 2, Y: 0, Z: 0}, block.State{Kind: block.Stone})

	box := shape.NewAABB(0.5, 0, 0, 1.5, 1, 1)
	desired := mgl64.Vec3{1, 0, 0}

	first := w.Collide(nil, box, desired)
	if first != (mgl64.Vec3{0.5, 0, 0}) {
		t.Fatalf("first Collide = %v, expected (0.5 0 0)", first)
	}

	second := w.Collide(nil, box.Offset(first), desired)
	if second != (mgl64.Vec3{}) {
		t.Errorf("second Collide = %v, expected zero against the touching wall", second)
	}
}

func TestCollideFallOntoFloor(t *testing.T) {
	w := NewWorld(DefaultTuning())
	w.Fill(-2, -1, -2, 2, -1, 2, block.State{Kind: block.Stone})

	box := shape.NewAABB(0.2, 0.5, 0.2, 0.8, 2.3, 0.8)
	got := w.Collide(nil, box, mgl64.Vec3{0, -3, 0})

	if got != (mgl64.Vec3{0, -0.5, 0}) {
		t.Errorf("Collide = %v, expected (0 -0.5 0)", got)
	}
}

func TestCollideSlidesAlongWall(t *testing.T) {
	// A diagonal push into a wall keeps the free component.
	w := NewWorld(DefaultTuning())
	w.SetBlock(block.Pos{X: 1, Y: 0, Z: 0}, block.State{Kind: block.Stone})
	w.SetBlock(block.Pos{X: 1, Y: 0, Z: 1}, block.State{Kind: block.Stone})
	w.SetBlock(block.Pos{X: 1, Y: 0, Z: 2}, block.State{Kind: block.Stone})

	box := shape.NewAABB(0.2, 0, 0.2, 0.8, 1, 0.8)
	got := w.Collide(nil, box, mgl64.Vec3{0.5, 0, 0.5})

	if got != (mgl64.Vec3{0.2, 0, 0.5}) {
		t.Errorf("Collide = %v, expected (0.2 0 0.5)", got)
	}
}

func TestCollideStepUp(t *testing.T) {
	// A bottom slab ahead of the box: blocked outright without a step
	// height, stepped onto with one.
	w := NewWorld(DefaultTuning())
	w.Fill(-2, -1, -2, 4, -1, 2, block.State{Kind: block.Stone})
	w.SetBlock(block.Pos{X: 1, Y: 0, Z: 0}, block.State{Kind: block.SlabBottom})

	e := NewEntity(0.6, 1.8)
	e.StepHeight = 0.6
	e.SetPos(mgl64.Vec3{0.7, 0, 0.5})
	w.AddEntity(e)
	e.onGround = true

	box := e.BoundingBox()
	desired := mgl64.Vec3{0.3, 0, 0}

	got := w.Collide(e, box, desired)
	if got != (mgl64.Vec3{0.3, 0.5, 0}) {
		t.Errorf("Collide with step height = %v, expected (0.3 0.5 0)", got)
	}

	e.StepHeight = 0
	if got := w.Collide(e, box, desired); got != (mgl64.Vec3{}) {
		t.Errorf("Collide without step height = %v, expected zero", got)
	}
}

func TestCollideStepUpTooHigh(t *testing.T) {
	// A full block ahead is taller than the step height; the retry
	// finds no candidate below the limit and the box stays blocked.
	w := NewWorld(DefaultTuning())
	w.Fill(-2, -1, -2, 4, -1, 2, block.State{Kind: block.Stone})
	w.SetBlock(block.Pos{X: 1, Y: 0, Z: 0}, block.State{Kind: block.Stone})

	e := NewEntity(0.6, 1.8)
	e.StepHeight = 0.6
	e.SetPos(mgl64.Vec3{0.7, 0, 0.5})
	w.AddEntity(e)
	e.onGround = true

	got := w.Collide(e, e.BoundingBox(), mgl64.Vec3{0.3, 0, 0})
	if got != (mgl64.Vec3{}) {
		t.Errorf("Collide = %v, expected zero against a full block", got)
	}
}

func TestFindSupportingBlock(t *testing.T) {
	w := NewWorld(DefaultTuning())
	w.Fill(-2, -1, -2, 2, -1, 2, block.State{Kind: block.Stone})

	e := NewEntity(0.6, 1.8)
	w.AddEntity(e)

	probeFor := func(pos mgl64.Vec3) shape.AABB {
		e.SetPos(pos)
		box := e.BoundingBox()
		return shape.NewAABB(
			box.Min.X(), box.Min.Y()-2*shape.Epsilon, box.Min.Z(),
			box.Max.X(), box.Min.Y(), box.Max.Z(),
		)
	}

	t.Run("Single block underfoot", func(t *testing.T) {
		pos, found := w.FindSupportingBlock(e, probeFor(mgl64.Vec3{0.5, 0, 0.5}))
		if !found {
			t.Fatal("expected a supporting block")
		}
		if pos != (block.Pos{X: 0, Y: -1, Z: 0}) {
			t.Errorf("pos = %v", pos)
		}
	})

	t.Run("Tie breaks deterministically", func(t *testing.T) {
		// Standing exactly on the seam: both cells are equally
		// distant; the lower position order wins.
		pos, found := w.FindSupportingBlock(e, probeFor(mgl64.Vec3{1.0, 0, 0.5}))
		if !found {
			t.Fatal("expected a supporting block")
		}
		if pos != (block.Pos{X: 0, Y: -1, Z: 0}) {
			t.Errorf("pos = %v", pos)
		}
	})

	t.Run("Airborne probe finds nothing", func(t *testing.T) {
		if _, found := w.FindSupportingBlock(e, probeFor(mgl64.Vec3{0.5, 2, 0.5})); found {
			t.Error("expected no supporting block in the air")
		}
	})
}

func TestFindSupportingBlockReachingFromBelow(t *testing.T) {
	// A fence occupies the cell below the probe slab; only its shape
	// reaches up to the feet.
	w := NewWorld(DefaultTuning())
	w.SetBlock(block.Pos{X: 0, Y: 0, Z: 0}, block.State{Kind: block.Fence})

	e := NewEntity(0.6, 1.8)
	e.SetPos(mgl64.Vec3{0.5, 1.5, 0.5})
	w.AddEntity(e)

	box := e.BoundingBox()
	probe := shape.NewAABB(
		box.Min.X(), box.Min.Y()-2*shape.Epsilon, box.Min.Z(),
		box.Max.X(), box.Min.Y(), box.Max.Z(),
	)

	pos, found := w.FindSupportingBlock(e, probe)
	if !found {
		t.Fatal("expected the fence below the probe cell")
	}
	if pos != (block.Pos{X: 0, Y: 0, Z: 0}) {
		t.Errorf("pos = %v, expected the fence cell", pos)
	}
}

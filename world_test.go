package stride

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/voxelforge/stride/block"
)

func TestWorldBlockStore(t *testing.T) {
	w := NewWorld(DefaultTuning())
	pos := block.Pos{X: 1, Y: 2, Z: 3}

	if !w.BlockState(pos).IsAir() {
		t.Error("unset position should read as air")
	}

	w.SetBlock(pos, block.State{Kind: block.Stone})
	if got := w.BlockState(pos); got.Kind != block.Stone {
		t.Errorf("state = %v, expected stone", got.Kind)
	}

	w.SetBlock(pos, block.State{})
	if !w.BlockState(pos).IsAir() {
		t.Error("setting air should clear the cell")
	}
}

func TestWorldBuildLimits(t *testing.T) {
	w := NewWorld(DefaultTuning())

	above := block.Pos{X: 0, Y: MaxBuildY, Z: 0}
	below := block.Pos{X: 0, Y: MinBuildY - 1, Z: 0}

	w.SetBlock(above, block.State{Kind: block.Stone})
	w.SetBlock(below, block.State{Kind: block.Stone})

	if !w.BlockState(above).IsAir() || !w.BlockState(below).IsAir() {
		t.Error("positions outside the build limits always read as air")
	}

	edge := block.Pos{X: 0, Y: MinBuildY, Z: 0}
	w.SetBlock(edge, block.State{Kind: block.Stone})
	if w.BlockState(edge).IsAir() {
		t.Error("the lowest build row is writable")
	}
}

func TestWorldEntities(t *testing.T) {
	w := NewWorld(DefaultTuning())
	e := NewEntity(0.6, 1.8)

	w.AddEntity(e)

	if e.world != w {
		t.Error("AddEntity should attach the entity to the world")
	}
	if e.StepHeight != w.Tuning.StepHeight {
		t.Errorf("StepHeight = %v, expected the tuned default", e.StepHeight)
	}
	if len(w.entities) != 1 {
		t.Fatalf("entity count = %d", len(w.entities))
	}

	custom := NewEntity(0.6, 1.8)
	custom.StepHeight = 1.1
	w.AddEntity(custom)
	if custom.StepHeight != 1.1 {
		t.Error("an explicit step height must not be overwritten")
	}

	w.RemoveEntity(e)
	if len(w.entities) != 1 || w.entities[0] != custom {
		t.Error("RemoveEntity should drop exactly the given entity")
	}
	if e.world != nil {
		t.Error("removed entity should be detached")
	}
}

func TestWorldAdvance(t *testing.T) {
	w := NewWorld(DefaultTuning()) // 20 ticks/s, 50ms interval

	if got := w.Advance(49 * time.Millisecond); got != 0 {
		t.Errorf("Advance(49ms) = %d ticks, expected 0", got)
	}
	if got := w.Advance(1 * time.Millisecond); got != 1 {
		t.Errorf("Advance(+1ms) = %d ticks, expected 1", got)
	}
	if got := w.Advance(100 * time.Millisecond); got != 2 {
		t.Errorf("Advance(100ms) = %d ticks, expected 2", got)
	}
}

func TestWorldAdvanceCap(t *testing.T) {
	w := NewWorld(DefaultTuning())

	if got := w.Advance(10 * time.Second); got != w.Tuning.MaxCatchUpTicks {
		t.Errorf("Advance(10s) = %d ticks, expected the cap %d", got, w.Tuning.MaxCatchUpTicks)
	}
	// The backlog is dropped with the cap, not carried over.
	if got := w.Advance(49 * time.Millisecond); got != 0 {
		t.Errorf("Advance after cap = %d ticks, expected 0", got)
	}
}

func TestWorldStepMovesEntities(t *testing.T) {
	w := NewWorld(DefaultTuning())
	w.Fill(-2, -1, -2, 2, -1, 2, block.State{Kind: block.Stone})

	e := NewEntity(0.6, 1.8)
	e.SetPos(mgl64.Vec3{0.5, 2, 0.5})
	w.AddEntity(e)

	w.Step()

	if e.Pos().Y() >= 2 {
		t.Error("a tick should apply gravity")
	}
}

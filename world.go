package stride

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/voxelforge/stride/block"
)

// Build height limits. Cells outside [MinBuildY, MaxBuildY) always
// read as air.
const (
	MinBuildY = -64
	MaxBuildY = 320
)

// World holds the block store and the entities moving through it.
// Block reads are internally synchronized so queries may run while an
// editor thread places blocks; entity ticking itself is
// single-threaded and deterministic: entities are stored and stepped
// in insertion order.
type World struct {
	Tuning Tuning
	Events Events

	mu     sync.RWMutex
	blocks map[block.Pos]block.State

	entities []*Entity

	// accumulated not-yet-simulated time for Advance
	pending time.Duration

	// block state reads since creation
	queries atomic.Uint64
}

// NewWorld creates an empty world.
func NewWorld(tuning Tuning) *World {
	return &World{
		Tuning: tuning,
		Events: NewEvents(),
		blocks: make(map[block.Pos]block.State),
	}
}

// BlockState returns the state at pos. Unset and out-of-range
// positions are air.
func (w *World) BlockState(pos block.Pos) block.State {
	w.queries.Add(1)
	if pos.Y < MinBuildY || pos.Y >= MaxBuildY {
		return block.State{}
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.blocks[pos]
}

// SetBlock places a state at pos. Setting air clears the cell;
// out-of-range positions are ignored.
func (w *World) SetBlock(pos block.Pos, state block.State) {
	if pos.Y < MinBuildY || pos.Y >= MaxBuildY {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if state.IsAir() {
		delete(w.blocks, pos)
		return
	}
	w.blocks[pos] = state
}

// Fill places the same state in every cell of an inclusive range.
func (w *World) Fill(x1, y1, z1, x2, y2, z2 int, state block.State) {
	cursor := NewCursor3D(x1, y1, z1, x2, y2, z2)
	for cursor.Advance() {
		w.SetBlock(cursor.Pos(), state)
	}
}

// AddEntity adds an entity to the world. An entity without a step
// height inherits the tuned default.
func (w *World) AddEntity(e *Entity) {
	e.world = w
	if e.StepHeight == 0 {
		e.StepHeight = w.Tuning.StepHeight
	}
	w.entities = append(w.entities, e)
}

// RemoveEntity removes an entity and drops its event state.
func (w *World) RemoveEntity(e *Entity) {
	k := -1
	for i, other := range w.entities {
		if other == e {
			k = i
			break
		}
	}
	if k != -1 {
		w.entities = append(w.entities[:k], w.entities[k+1:]...)
	}

	delete(w.Events.groundStates, e)
	delete(w.Events.supports, e)
	e.world = nil
}

// Step runs one tick: every entity in insertion order, then event
// delivery.
func (w *World) Step() {
	for _, e := range w.entities {
		e.Tick()
	}
	w.Events.processGroundEvents(w.entities)
	w.Events.flush()
}

// Advance accumulates elapsed wall time and runs the ticks it covers,
// capped at Tuning.MaxCatchUpTicks per call. When the cap is hit the
// remaining backlog is dropped so a stalled caller does not spiral. It
// returns the number of ticks run.
func (w *World) Advance(elapsed time.Duration) int {
	w.pending += elapsed
	interval := time.Second / time.Duration(w.Tuning.TickRate)

	ticks := int(w.pending / interval)
	if ticks <= 0 {
		return 0
	}
	if ticks > w.Tuning.MaxCatchUpTicks {
		ticks = w.Tuning.MaxCatchUpTicks
		w.pending = 0
	} else {
		w.pending -= time.Duration(ticks) * interval
	}

	for i := 0; i < ticks; i++ {
		w.Step()
	}
	return ticks
}

// BlockQueries returns the number of block state reads since the world
// was created.
func (w *World) BlockQueries() uint64 {
	return w.queries.Load()
}

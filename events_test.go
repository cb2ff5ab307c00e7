package stride

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/voxelforge/stride/block"
)

func TestLandAndTakeoffEvents(t *testing.T) {
	w := NewWorld(DefaultTuning())
	w.Fill(-2, -1, -2, 2, -1, 2, block.State{Kind: block.Stone})

	e := NewEntity(0.6, 1.8)
	e.SetPos(mgl64.Vec3{0.5, 1, 0.5})
	w.AddEntity(e)

	var lands, takeoffs int
	var landedOn block.Pos
	w.Events.Subscribe(EVENT_LAND, func(event Event) {
		land := event.(LandEvent)
		lands++
		if land.HasBlock {
			landedOn = land.Block
		}
	})
	w.Events.Subscribe(EVENT_TAKEOFF, func(event Event) {
		takeoffs++
	})

	for i := 0; i < 30; i++ {
		w.Step()
	}

	if lands != 1 {
		t.Fatalf("lands = %d, expected exactly 1", lands)
	}
	if landedOn != (block.Pos{X: 0, Y: -1, Z: 0}) {
		t.Errorf("landed on %v", landedOn)
	}
	if takeoffs != 0 {
		t.Errorf("takeoffs = %d before the jump", takeoffs)
	}

	e.SetVelocity(mgl64.Vec3{0, 0.5, 0})
	w.Step()

	if takeoffs != 1 {
		t.Errorf("takeoffs = %d after the jump, expected 1", takeoffs)
	}

	for i := 0; i < 30; i++ {
		w.Step()
	}
	if lands != 2 {
		t.Errorf("lands = %d after falling back, expected 2", lands)
	}
}

func TestBlockContactEvents(t *testing.T) {
	w := NewWorld(DefaultTuning())
	w.Fill(-2, -1, -2, 2, -1, 2, block.State{Kind: block.Stone})

	e := NewEntity(0.6, 1.8)
	e.SetPos(mgl64.Vec3{0.5, 0, 0.5})
	w.AddEntity(e)

	var contacts []block.Pos
	w.Events.Subscribe(EVENT_BLOCK_CONTACT, func(event Event) {
		contact := event.(BlockContactEvent)
		if contact.State.Kind != block.Stone {
			t.Errorf("contact state = %v, expected stone", contact.State.Kind)
		}
		contacts = append(contacts, contact.Block)
	})

	// Walk across the cell seam; the supporting block changes once.
	for i := 0; i < 3; i++ {
		e.SetVelocity(mgl64.Vec3{0.3, 0, 0})
		w.Step()
	}

	if len(contacts) != 2 {
		t.Fatalf("contacts = %v, expected 2 entries", contacts)
	}
	if contacts[0] != (block.Pos{X: 0, Y: -1, Z: 0}) {
		t.Errorf("first contact = %v", contacts[0])
	}
	if contacts[1] != (block.Pos{X: 1, Y: -1, Z: 0}) {
		t.Errorf("second contact = %v", contacts[1])
	}
}

func TestRemoveEntityDropsEventState(t *testing.T) {
	w := NewWorld(DefaultTuning())
	w.Fill(-2, -1, -2, 2, -1, 2, block.State{Kind: block.Stone})

	e := NewEntity(0.6, 1.8)
	e.SetPos(mgl64.Vec3{0.5, 0.5, 0.5})
	w.AddEntity(e)

	w.Step()
	w.Step()
	w.RemoveEntity(e)

	if _, tracked := w.Events.groundStates[e]; tracked {
		t.Error("ground state should be dropped with the entity")
	}
	if _, tracked := w.Events.supports[e]; tracked {
		t.Error("support tracking should be dropped with the entity")
	}
}

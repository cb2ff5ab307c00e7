// Command walker drops an actor onto a small terrain and walks it
// across slab steps, a staircase and a fence, logging the movement
// state every tick.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/voxelforge/stride"
	"github.com/voxelforge/stride/block"
)

func main() {
	tuningPath := flag.String("tuning", "", "path to a YAML tuning file")
	ticks := flag.Int("ticks", 60, "number of ticks to simulate")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	tuning := stride.DefaultTuning()
	if *tuningPath != "" {
		var err error
		if tuning, err = stride.LoadTuning(*tuningPath); err != nil {
			logger.Error("load tuning", "err", err)
			os.Exit(1)
		}
	}

	world := stride.NewWorld(tuning)
	buildTerrain(world)

	walker := stride.NewEntity(0.6, 1.8)
	walker.SetPos(mgl64.Vec3{0.5, 1, 0.5})
	world.AddEntity(walker)

	world.Events.Subscribe(stride.EVENT_LAND, func(event stride.Event) {
		land := event.(stride.LandEvent)
		logger.Info("land", "pos", land.Entity.Pos(), "block", land.Block)
	})
	world.Events.Subscribe(stride.EVENT_BLOCK_CONTACT, func(event stride.Event) {
		contact := event.(stride.BlockContactEvent)
		logger.Info("contact", "block", contact.Block, "kind", contact.State.Kind)
	})

	for i := 0; i < *ticks; i++ {
		if walker.OnGround() {
			walker.SetVelocity(mgl64.Vec3{0.2, walker.Velocity().Y(), 0})
		}
		world.Step()

		logger.Info("tick",
			"n", i,
			"pos", walker.Pos(),
			"onGround", walker.OnGround(),
			"blocked", walker.HorizontalCollision(),
		)
		if walker.HorizontalCollision() {
			logger.Info("reached the fence, stopping")
			break
		}
	}
}

// buildTerrain lays a stone floor with a slab step, a two-step
// staircase and a fence at the far end.
func buildTerrain(w *stride.World) {
	w.Fill(-2, -1, -2, 12, -1, 2, block.State{Kind: block.Stone})

	// one half-block step up
	w.Fill(3, 0, -2, 12, 0, 2, block.State{Kind: block.SlabBottom})

	// staircase onto a raised platform; the risers face away from the
	// walker so the low half is climbed first
	w.Fill(6, 0, -2, 6, 0, 2, block.State{Kind: block.StairsEast})
	w.Fill(7, 0, -2, 12, 0, 2, block.State{Kind: block.Stone})
	w.Fill(8, 1, -2, 8, 1, 2, block.State{Kind: block.StairsEast})
	w.Fill(9, 1, -2, 12, 1, 2, block.State{Kind: block.Stone})

	// fence line the walker cannot step over
	w.Fill(11, 2, -2, 11, 2, 2, block.State{Kind: block.Fence})
}

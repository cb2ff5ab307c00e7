package block

import (
	"github.com/voxelforge/stride/shape"
)

// Kind enumerates the block kinds the engine knows. Shape variants
// (slab halves, stair facings) are distinct kinds; behavior lives in a
// per-kind table instead of per-kind dispatch.
type Kind uint8

const (
	Air Kind = iota
	Stone
	Glass
	SlabBottom
	SlabTop
	StairsNorth
	StairsSouth
	StairsWest
	StairsEast
	Fence
	Carpet

	kindCount
)

func (k Kind) String() string {
	switch k {
	case Air:
		return "air"
	case Stone:
		return "stone"
	case Glass:
		return "glass"
	case SlabBottom:
		return "slab_bottom"
	case SlabTop:
		return "slab_top"
	case StairsNorth:
		return "stairs_north"
	case StairsSouth:
		return "stairs_south"
	case StairsWest:
		return "stairs_west"
	case StairsEast:
		return "stairs_east"
	case Fence:
		return "fence"
	case Carpet:
		return "carpet"
	default:
		return "unknown"
	}
}

// State is one block's state in the world. The zero value is air.
type State struct {
	Kind Kind
}

// kindData is the static behavior of one kind. The shapes are built
// once at package init and shared; they are never mutated afterwards.
type kindData struct {
	// movement is the shape entities collide with; placement is the
	// shape placement and support checks use. They differ only for
	// kinds like Fence.
	movement  *shape.Shape
	placement *shape.Shape

	blocksMotion bool

	// large marks kinds whose movement shape reaches outside the unit
	// cell, so the collision iterator must not skip face-adjacent
	// cells for them.
	large bool
}

var kinds [kindCount]kindData

func init() {
	solid := func(s *shape.Shape) kindData {
		return kindData{movement: s, placement: s, blocksMotion: true}
	}

	bottom := shape.NewBox(0, 0, 0, 1, 0.5, 1)
	stair := func(upper *shape.Shape) kindData {
		return solid(shape.Or(bottom, upper))
	}

	kinds[Air] = kindData{movement: shape.Empty(), placement: shape.Empty()}
	kinds[Stone] = solid(shape.Block())
	kinds[Glass] = solid(shape.Block())
	kinds[SlabBottom] = solid(bottom)
	kinds[SlabTop] = solid(shape.NewBox(0, 0.5, 0, 1, 1, 1))
	kinds[StairsNorth] = stair(shape.NewBox(0, 0.5, 0, 1, 1, 0.5))
	kinds[StairsSouth] = stair(shape.NewBox(0, 0.5, 0.5, 1, 1, 1))
	kinds[StairsWest] = stair(shape.NewBox(0, 0.5, 0, 0.5, 1, 1))
	kinds[StairsEast] = stair(shape.NewBox(0.5, 0.5, 0, 1, 1, 1))
	kinds[Fence] = kindData{
		movement:     shape.NewBox(0.375, 0, 0.375, 0.625, 1.5, 0.625),
		placement:    shape.NewBox(0.375, 0, 0.375, 0.625, 1, 0.625),
		blocksMotion: true,
		large:        true,
	}
	kinds[Carpet] = solid(shape.NewBox(0, 0, 0, 1, 0.0625, 1))
}

func (s State) data() kindData {
	if s.Kind >= kindCount {
		return kinds[Air]
	}
	return kinds[s.Kind]
}

// IsAir reports whether the state is air.
func (s State) IsAir() bool { return s.Kind == Air }

// BlocksMotion reports whether entities collide with this state at
// all.
func (s State) BlocksMotion() bool { return s.data().blocksMotion }

// HasLargeCollisionShape reports whether the movement shape may reach
// outside the unit cell.
func (s State) HasLargeCollisionShape() bool { return s.data().large }

// CollisionShape returns the block-local collision shape for a query
// context: the taller movement shape for entity queries, the placement
// shape otherwise.
func (s State) CollisionShape(ctx Context) *shape.Shape {
	d := s.data()
	if ctx.ForEntity() {
		return d.movement
	}
	return d.placement
}

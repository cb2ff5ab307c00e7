package stride

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Tuning is the simulation parameter set. Velocities are in blocks per
// tick; Gravity is the per-tick downward acceleration. Drag is the
// fraction of velocity lost per tick in the air, GroundFriction the
// extra horizontal multiplier applied while supported.
type Tuning struct {
	Gravity        float64 `yaml:"gravity"`
	Drag           float64 `yaml:"drag"`
	GroundFriction float64 `yaml:"ground_friction"`
	StepHeight     float64 `yaml:"step_height"`

	TickRate        int `yaml:"tick_rate"`
	MaxCatchUpTicks int `yaml:"max_catch_up_ticks"`
}

// DefaultTuning returns the stock parameter set: 20 ticks per second,
// step height of slightly over half a block.
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:         0.08,
		Drag:            0.02,
		GroundFriction:  0.6,
		StepHeight:      0.6,
		TickRate:        20,
		MaxCatchUpTicks: 10,
	}
}

// LoadTuning reads a YAML tuning file. Missing keys keep their default
// values.
func LoadTuning(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, errors.Wrap(err, "read tuning file")
	}

	t := DefaultTuning()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, errors.Wrapf(err, "parse tuning file %s", path)
	}
	if err := t.validate(); err != nil {
		return Tuning{}, errors.Wrapf(err, "invalid tuning file %s", path)
	}
	return t, nil
}

func (t Tuning) validate() error {
	if t.TickRate <= 0 {
		return errors.Errorf("tick_rate must be positive, got %d", t.TickRate)
	}
	if t.MaxCatchUpTicks <= 0 {
		return errors.Errorf("max_catch_up_ticks must be positive, got %d", t.MaxCatchUpTicks)
	}
	if t.Gravity < 0 {
		return errors.Errorf("gravity must not be negative, got %v", t.Gravity)
	}
	if t.Drag < 0 || t.Drag >= 1 {
		return errors.Errorf("drag must be in [0, 1), got %v", t.Drag)
	}
	if t.GroundFriction < 0 || t.GroundFriction > 1 {
		return errors.Errorf("ground_friction must be in [0, 1], got %v", t.GroundFriction)
	}
	if t.StepHeight < 0 {
		return errors.Errorf("step_height must not be negative, got %v", t.StepHeight)
	}
	return nil
}

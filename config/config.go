package config

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Tuning holds every gameplay constant. Values load from the embedded
// default.yaml, optionally overridden by an on-disk file.
type Tuning struct {
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`

	ChargeRate float64 `yaml:"charge_rate"`
	ChargeMax  float64 `yaml:"charge_max"`

	ImpulseScale    float64    `yaml:"impulse_scale"`
	LateralOffset   float64    `yaml:"lateral_offset"`
	LateralImpulse  float64    `yaml:"lateral_impulse"`
	ClearanceHeight float64    `yaml:"clearance_height"`
	TorqueA         [3]float64 `yaml:"torque_a"`
	TorqueB         [3]float64 `yaml:"torque_b"`

	Gravity        float64 `yaml:"gravity"`
	LinearDamping  float64 `yaml:"linear_damping"`
	AngularDamping float64 `yaml:"angular_damping"`

	Die   DieTuning   `yaml:"die"`
	Table TableTuning `yaml:"table"`
}

// DieTuning is the per-die body description.
type DieTuning struct {
	HalfExtent  float64 `yaml:"half_extent"`
	Mass        float64 `yaml:"mass"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

// TableTuning is the static table description.
type TableTuning struct {
	HalfX           float64 `yaml:"half_x"`
	HalfZ           float64 `yaml:"half_z"`
	Margin          float64 `yaml:"margin"`
	WallHeight      float64 `yaml:"wall_height"`
	WallThickness   float64 `yaml:"wall_thickness"`
	Friction        float64 `yaml:"friction"`
	Restitution     float64 `yaml:"restitution"`
	WallRestitution float64 `yaml:"wall_restitution"`
}

// Default returns the embedded tuning.
func Default() Tuning {
	var t Tuning
	if err := yaml.Unmarshal(defaultYAML, &t); err != nil {
		// The embedded file ships with the binary; failing to parse it is a
		// build defect, not a runtime condition.
		panic("config: parse embedded default.yaml: " + err.Error())
	}
	return t
}

// LoadFile reads an override file on top of the defaults.
func LoadFile(path string) (Tuning, error) {
	t := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return t, nil
}

// Store hands the current tuning snapshot to systems. Reloads land between
// frames, so a plain mutex is enough.
type Store struct {
	mu sync.Mutex
	t  Tuning
}

func NewStore(t Tuning) *Store {
	return &Store{t: t}
}

// Current returns the tuning snapshot for this frame.
func (s *Store) Current() Tuning {
	if s == nil {
		return Default()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t
}

// Replace swaps in a new tuning.
func (s *Store) Replace(t Tuning) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.t = t
	s.mu.Unlock()
}

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultValues(t *testing.T) {
	tn := Default()

	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"mouse_sensitivity", tn.MouseSensitivity, 0.004},
		{"charge_rate", tn.ChargeRate, 30},
		{"charge_max", tn.ChargeMax, 15},
		{"impulse_scale", tn.ImpulseScale, 0.8},
		{"lateral_offset", tn.LateralOffset, 0.25},
		{"lateral_impulse", tn.LateralImpulse, 0.5},
		{"clearance_height", tn.ClearanceHeight, 0.5},
		{"gravity", tn.Gravity, -9.81},
		{"linear_damping", tn.LinearDamping, 2},
		{"angular_damping", tn.AngularDamping, 3},
		{"die_half_extent", tn.Die.HalfExtent, 0.2},
		{"die_mass", tn.Die.Mass, 0.8},
		{"die_restitution", tn.Die.Restitution, 0.15},
		{"table_half_x", tn.Table.HalfX, 4},
		{"table_half_z", tn.Table.HalfZ, 2},
		{"table_margin", tn.Table.Margin, 0.3},
		{"wall_thickness", tn.Table.WallThickness, 0.2},
		{"wall_restitution", tn.Table.WallRestitution, 0.08},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.got != c.want {
				t.Fatalf("got %v, want %v", c.got, c.want)
			}
		})
	}

	if tn.TorqueA == tn.TorqueB {
		t.Fatalf("torque_a and torque_b must differ, both %v", tn.TorqueA)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	src := "charge_max: 20\ndie:\n  mass: 1.5\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	tn, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if tn.ChargeMax != 20 {
		t.Fatalf("charge_max = %v, want override 20", tn.ChargeMax)
	}
	if tn.Die.Mass != 1.5 {
		t.Fatalf("die.mass = %v, want override 1.5", tn.Die.Mass)
	}
	// Untouched keys keep their defaults.
	if tn.ChargeRate != 30 {
		t.Fatalf("charge_rate = %v, want default 30", tn.ChargeRate)
	}
	if tn.Die.HalfExtent != 0.2 {
		t.Fatalf("die.half_extent = %v, want default 0.2", tn.Die.HalfExtent)
	}
}

func TestLoadFileMissing(t *testing.T) {
	tn, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want fs.ErrNotExist", err)
	}
	// Callers still get usable defaults.
	if tn.ChargeMax != 15 {
		t.Fatalf("fallback charge_max = %v, want 15", tn.ChargeMax)
	}
}

func TestLoadFileBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("charge_max: [oops"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("LoadFile accepted malformed yaml")
	}
}

func TestStoreReplace(t *testing.T) {
	s := NewStore(Default())

	tn := s.Current()
	tn.ChargeMax = 99
	s.Replace(tn)

	if got := s.Current().ChargeMax; got != 99 {
		t.Fatalf("Current after Replace = %v, want 99", got)
	}
}

func TestWatcherSeesRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("charge_max: 15\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("charge_max: 20\n"), 0o644); err != nil {
		t.Fatalf("rewrite file: %v", err)
	}

	select {
	case <-w.Events:
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("no event within 5s of rewrite")
	}
}

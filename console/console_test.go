package console

import (
	"strings"
	"testing"

	"dicetable/config"
)

func TestRunMutatesTuning(t *testing.T) {
	cases := []struct {
		name string
		src  string
		got  func(config.Tuning) float64
		want float64
	}{
		{
			name: "top_level_float",
			src:  "tuning.impulse_scale = 1.2",
			got:  func(tn config.Tuning) float64 { return tn.ImpulseScale },
			want: 1.2,
		},
		{
			name: "top_level_int",
			src:  "tuning.charge_max = 20",
			got:  func(tn config.Tuning) float64 { return tn.ChargeMax },
			want: 20,
		},
		{
			name: "nested_die",
			src:  "tuning.die.restitution = 0.3",
			got:  func(tn config.Tuning) float64 { return tn.Die.Restitution },
			want: 0.3,
		},
		{
			name: "nested_table",
			src:  "tuning.table.wall_restitution = 0.5",
			got:  func(tn config.Tuning) float64 { return tn.Table.WallRestitution },
			want: 0.5,
		},
		{
			name: "expression",
			src:  "tuning.charge_rate = tuning.charge_rate * 2",
			got:  func(tn config.Tuning) float64 { return tn.ChargeRate },
			want: 60,
		},
		{
			name: "math_module",
			src:  `math := import("math"); tuning.gravity = -math.abs(5)`,
			got:  func(tn config.Tuning) float64 { return tn.Gravity },
			want: -5,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			store := config.NewStore(config.Default())
			con := New(store)
			if err := con.Run(c.src); err != nil {
				t.Fatalf("Run(%q): %v", c.src, err)
			}
			if got := c.got(store.Current()); got != c.want {
				t.Fatalf("after %q got %v, want %v", c.src, got, c.want)
			}
		})
	}
}

func TestRunLeavesOtherFieldsAlone(t *testing.T) {
	store := config.NewStore(config.Default())
	before := store.Current()

	if err := New(store).Run("tuning.impulse_scale = 2.0"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	after := store.Current()
	if after.ChargeMax != before.ChargeMax || after.Die.Mass != before.Die.Mass {
		t.Fatalf("unrelated fields changed: %+v -> %+v", before, after)
	}
}

func TestRunBadInputKeepsStore(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"syntax_error", "tuning.impulse_scale = = 2"},
		{"wrong_type", `tuning.impulse_scale = "fast"`},
		{"runtime_error", "tuning.impulse_scale = nope()"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			store := config.NewStore(config.Default())
			before := store.Current()

			if err := New(store).Run(c.src); err == nil {
				t.Fatalf("Run(%q) succeeded, want error", c.src)
			}
			if store.Current() != before {
				t.Fatalf("failed run still mutated the store")
			}
		})
	}
}

func TestPromptEditing(t *testing.T) {
	con := New(config.NewStore(config.Default()))

	con.Toggle()
	if !con.Open() {
		t.Fatalf("console closed after toggle")
	}

	con.Append([]rune("tuning.`x")) // backquote keystrokes never reach the prompt
	if got := con.Line(); got != "> tuning.x" {
		t.Fatalf("line = %q, want %q", got, "> tuning.x")
	}

	con.Backspace()
	if got := con.Line(); got != "> tuning." {
		t.Fatalf("line after backspace = %q", got)
	}

	con.Toggle()
	if con.Open() {
		t.Fatalf("console open after second toggle")
	}
	if got := con.Line(); got != "> " {
		t.Fatalf("toggle should clear the prompt, got %q", got)
	}
}

func TestSubmitReportsResult(t *testing.T) {
	con := New(config.NewStore(config.Default()))
	con.Toggle()

	con.Append([]rune("tuning.charge_max = 20"))
	con.Submit()
	if !strings.HasPrefix(con.Result(), "ok:") {
		t.Fatalf("result = %q, want ok prefix", con.Result())
	}

	con.Append([]rune("tuning.charge_max ="))
	con.Submit()
	if !strings.HasPrefix(con.Result(), "error:") {
		t.Fatalf("result = %q, want error prefix", con.Result())
	}
}

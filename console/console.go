// Package console is a one-line tengo console for poking the live tuning.
// Open it with backquote, type an expression against the `tuning` map, hit
// enter:
//
//	tuning.impulse_scale = 1.2
//	tuning.die.restitution = 0.3
package console

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"dicetable/config"
)

type Console struct {
	store *config.Store

	open   bool
	line   string
	result string
}

func New(store *config.Store) *Console {
	return &Console{store: store}
}

func (c *Console) Open() bool {
	return c != nil && c.open
}

func (c *Console) Toggle() {
	if c == nil {
		return
	}
	c.open = !c.open
	c.line = ""
}

// Line returns the text to display for the prompt.
func (c *Console) Line() string {
	if c == nil {
		return ""
	}
	return "> " + c.line
}

// Result returns the outcome of the last submitted expression.
func (c *Console) Result() string {
	if c == nil {
		return ""
	}
	return c.result
}

// Append adds typed characters to the prompt.
func (c *Console) Append(chars []rune) {
	if c == nil || !c.open {
		return
	}
	for _, r := range chars {
		if r == '`' {
			continue
		}
		c.line += string(r)
	}
}

// Backspace removes the last prompt character.
func (c *Console) Backspace() {
	if c == nil || len(c.line) == 0 {
		return
	}
	c.line = c.line[:len(c.line)-1]
}

// Submit runs the current prompt line and clears it.
func (c *Console) Submit() {
	if c == nil {
		return
	}
	src := strings.TrimSpace(c.line)
	c.line = ""
	if src == "" {
		return
	}
	if err := c.Run(src); err != nil {
		c.result = "error: " + err.Error()
		return
	}
	c.result = "ok: " + src
}

// Run evaluates a tengo expression with the live tuning exposed as a map,
// then writes the (possibly mutated) map back into the store.
func (c *Console) Run(src string) error {
	if c == nil || c.store == nil {
		return fmt.Errorf("console: no tuning store")
	}

	t := c.store.Current()
	script := tengo.NewScript([]byte(src))
	script.SetImports(stdlib.GetModuleMap("math", "fmt"))
	if err := script.Add("tuning", tuningToMap(t)); err != nil {
		return err
	}

	compiled, err := script.Run()
	if err != nil {
		return err
	}

	raw := compiled.Get("tuning").Map()
	updated, err := tuningFromMap(t, raw)
	if err != nil {
		return err
	}
	c.store.Replace(updated)
	return nil
}

func tuningToMap(t config.Tuning) map[string]interface{} {
	return map[string]interface{}{
		"mouse_sensitivity": t.MouseSensitivity,
		"charge_rate":       t.ChargeRate,
		"charge_max":        t.ChargeMax,
		"impulse_scale":     t.ImpulseScale,
		"lateral_offset":    t.LateralOffset,
		"lateral_impulse":   t.LateralImpulse,
		"clearance_height":  t.ClearanceHeight,
		"gravity":           t.Gravity,
		"linear_damping":    t.LinearDamping,
		"angular_damping":   t.AngularDamping,
		"die": map[string]interface{}{
			"half_extent": t.Die.HalfExtent,
			"mass":        t.Die.Mass,
			"friction":    t.Die.Friction,
			"restitution": t.Die.Restitution,
		},
		"table": map[string]interface{}{
			"friction":         t.Table.Friction,
			"restitution":      t.Table.Restitution,
			"wall_restitution": t.Table.WallRestitution,
		},
	}
}

func tuningFromMap(t config.Tuning, m map[string]interface{}) (config.Tuning, error) {
	fields := []struct {
		key string
		dst *float64
	}{
		{"mouse_sensitivity", &t.MouseSensitivity},
		{"charge_rate", &t.ChargeRate},
		{"charge_max", &t.ChargeMax},
		{"impulse_scale", &t.ImpulseScale},
		{"lateral_offset", &t.LateralOffset},
		{"lateral_impulse", &t.LateralImpulse},
		{"clearance_height", &t.ClearanceHeight},
		{"gravity", &t.Gravity},
		{"linear_damping", &t.LinearDamping},
		{"angular_damping", &t.AngularDamping},
	}
	for _, f := range fields {
		if err := readFloat(m, f.key, f.dst); err != nil {
			return t, err
		}
	}

	if die, ok := m["die"].(map[string]interface{}); ok {
		nested := []struct {
			key string
			dst *float64
		}{
			{"half_extent", &t.Die.HalfExtent},
			{"mass", &t.Die.Mass},
			{"friction", &t.Die.Friction},
			{"restitution", &t.Die.Restitution},
		}
		for _, f := range nested {
			if err := readFloat(die, f.key, f.dst); err != nil {
				return t, err
			}
		}
	}

	if table, ok := m["table"].(map[string]interface{}); ok {
		nested := []struct {
			key string
			dst *float64
		}{
			{"friction", &t.Table.Friction},
			{"restitution", &t.Table.Restitution},
			{"wall_restitution", &t.Table.WallRestitution},
		}
		for _, f := range nested {
			if err := readFloat(table, f.key, f.dst); err != nil {
				return t, err
			}
		}
	}

	return t, nil
}

func readFloat(m map[string]interface{}, key string, dst *float64) error {
	v, ok := m[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		*dst = n
	case int64:
		*dst = float64(n)
	case int:
		*dst = float64(n)
	default:
		return fmt.Errorf("console: %s: expected number, got %T", key, v)
	}
	return nil
}

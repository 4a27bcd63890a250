package ecs

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"dicetable/config"
)

func TestPhysicsWorldBuildsFourWalls(t *testing.T) {
	pw := NewPhysicsWorld(config.NewStore(config.Default()))

	if got := len(pw.walls); got != 4 {
		t.Fatalf("built %d wall shapes, want 4", got)
	}
	for i, wall := range pw.walls {
		if wall.Body() != pw.space.StaticBody {
			t.Fatalf("wall %d not attached to the static body", i)
		}
	}
}

func TestPhysicsWorldSpawnAndRemove(t *testing.T) {
	pw := NewPhysicsWorld(config.NewStore(config.Default()))

	body := pw.SpawnDie(Entity(1), mgl64.Vec3{1, 0.5, -0.5}, mgl64.Vec3{}, 0)
	if body == nil || body.Body == nil || body.Shape == nil {
		t.Fatalf("SpawnDie returned incomplete body: %+v", body)
	}
	if got := pw.DiceCount(); got != 1 {
		t.Fatalf("DiceCount after spawn = %d, want 1", got)
	}

	pos := body.Body.Position()
	if pos.X != 1 || pos.Y != -0.5 {
		t.Fatalf("planar position = %+v, want {1 -0.5} (world x/z)", pos)
	}

	pw.RemoveDie(Entity(1))
	if got := pw.DiceCount(); got != 0 {
		t.Fatalf("DiceCount after remove = %d, want 0", got)
	}
	// Removing twice must be harmless.
	pw.RemoveDie(Entity(1))
}

func TestPhysicsWorldImpulseSetsVelocity(t *testing.T) {
	store := config.NewStore(config.Default())
	pw := NewPhysicsWorld(store)
	die := store.Current().Die

	body := pw.SpawnDie(Entity(1), mgl64.Vec3{}, mgl64.Vec3{12, 0, 0}, 0)
	vel := body.Body.Velocity()
	if math.Abs(vel.X-12/die.Mass) > 1e-9 || math.Abs(vel.Y) > 1e-9 {
		t.Fatalf("velocity after impulse = %+v, want {%v 0}", vel, 12/die.Mass)
	}
}

func TestPhysicsWorldTorqueSpinsBody(t *testing.T) {
	pw := NewPhysicsWorld(config.NewStore(config.Default()))

	body := pw.SpawnDie(Entity(1), mgl64.Vec3{}, mgl64.Vec3{}, 0.2)
	if body.Body.AngularVelocity() <= 0 {
		t.Fatalf("positive vertical torque gave angular velocity %v", body.Body.AngularVelocity())
	}
}

func TestPhysicsWorldWallsContainFastDice(t *testing.T) {
	store := config.NewStore(config.Default())
	pw := NewPhysicsWorld(store)
	table := store.Current().Table

	cases := []struct {
		name    string
		impulse mgl64.Vec3
	}{
		{"toward_east_wall", mgl64.Vec3{12, 0, 0}},
		{"toward_north_wall", mgl64.Vec3{0, 0, -12}},
		{"diagonal", mgl64.Vec3{8, 0, 8}},
	}

	const dt = 1.0 / 60
	for i, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := Entity(uint64(i + 1))
			body := pw.SpawnDie(e, mgl64.Vec3{}, c.impulse, 0)
			defer pw.RemoveDie(e)

			// Three simulated seconds is plenty for a 15 m/s die to cross a
			// 4m half-table many times over if the rim leaks.
			slack := store.Current().Die.HalfExtent + table.WallThickness
			for step := 0; step < 180; step++ {
				pw.Step(dt)
				pos := body.Body.Position()
				if math.Abs(pos.X) > table.HalfX+slack || math.Abs(pos.Y) > table.HalfZ+slack {
					t.Fatalf("die escaped the table at step %d: %+v", step, pos)
				}
			}
		})
	}
}

func TestPhysicsWorldDampingSlowsDice(t *testing.T) {
	store := config.NewStore(config.Default())
	pw := NewPhysicsWorld(store)

	body := pw.SpawnDie(Entity(1), mgl64.Vec3{}, mgl64.Vec3{0.4, 0, 0}, 0)
	start := body.Body.Velocity().Length()

	for i := 0; i < 120; i++ {
		pw.Step(1.0 / 60)
	}

	end := body.Body.Velocity().Length()
	if end >= start {
		t.Fatalf("velocity did not decay: %v -> %v", start, end)
	}
	// exp(-2) per second over two seconds leaves under 2% of the launch speed.
	if end > start*0.05 {
		t.Fatalf("damping too weak: %v of %v left after 2s", end, start)
	}
}

package ecs

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"dicetable/config"
	"dicetable/ecs/component"
)

const (
	collisionTypeWall cp.CollisionType = iota + 1
	collisionTypeDie
)

// PhysicsWorld owns the Chipmunk space and the static table rim. The space is
// the horizontal plane: cp X is world X and cp Y is world Z. The vertical axis
// is integrated per die by the physics system on top of this.
type PhysicsWorld struct {
	space  *cp.Space
	tuning *config.Store

	walls []*cp.Shape
	dice  map[Entity]*cp.Body
}

// NewPhysicsWorld creates a space with the four table walls in place.
func NewPhysicsWorld(tuning *config.Store) *PhysicsWorld {
	t := tuning.Current()

	space := cp.NewSpace()
	space.Iterations = 20
	// cp damping is the per-second velocity retention factor; the tuning file
	// stores an exponential decay rate.
	space.SetDamping(math.Exp(-t.LinearDamping))

	pw := &PhysicsWorld{
		space:  space,
		tuning: tuning,
		dice:   make(map[Entity]*cp.Body),
	}
	pw.buildWalls(t.Table)
	return pw
}

func (pw *PhysicsWorld) buildWalls(t config.TableTuning) {
	if pw == nil || pw.space == nil {
		return
	}
	corners := []cp.Vector{
		{X: -t.HalfX, Y: -t.HalfZ},
		{X: t.HalfX, Y: -t.HalfZ},
		{X: t.HalfX, Y: t.HalfZ},
		{X: -t.HalfX, Y: t.HalfZ},
	}
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		shape := cp.NewSegment(pw.space.StaticBody, a, b, t.WallThickness/2)
		shape.SetFriction(t.Friction)
		shape.SetElasticity(t.WallRestitution)
		shape.SetCollisionType(collisionTypeWall)
		pw.space.AddShape(shape)
		pw.walls = append(pw.walls, shape)
	}
}

// SpawnDie creates a dynamic body at the given table-space position and kicks
// it with the impulse. torqueY is an angular impulse around the vertical axis.
func (pw *PhysicsWorld) SpawnDie(e Entity, pos mgl64.Vec3, impulse mgl64.Vec3, torqueY float64) *component.PhysicsBody {
	if pw == nil || pw.space == nil {
		return nil
	}

	die := pw.tuning.Current().Die
	size := die.HalfExtent * 2
	moment := cp.MomentForBox(die.Mass, size, size)

	body := cp.NewBody(die.Mass, moment)
	body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Z()})
	pw.space.AddBody(body)

	shape := cp.NewBox(body, size, size, 0)
	shape.SetFriction(die.Friction)
	shape.SetElasticity(die.Restitution)
	shape.SetCollisionType(collisionTypeDie)
	pw.space.AddShape(shape)

	body.ApplyImpulseAtWorldPoint(cp.Vector{X: impulse.X(), Y: impulse.Z()}, body.Position())
	if moment > 0 {
		body.SetAngularVelocity(body.AngularVelocity() + torqueY/moment)
	}

	pw.dice[e] = body
	return &component.PhysicsBody{Body: body, Shape: shape}
}

// RemoveDie drops an entity's body and shape from the space.
func (pw *PhysicsWorld) RemoveDie(e Entity) {
	if pw == nil || pw.space == nil {
		return
	}
	body, ok := pw.dice[e]
	if !ok {
		return
	}
	body.EachShape(func(s *cp.Shape) {
		pw.space.RemoveShape(s)
	})
	pw.space.RemoveBody(body)
	delete(pw.dice, e)
}

// Step advances the planar simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.Step(dt)
}

// DiceCount reports how many dynamic bodies are live.
func (pw *PhysicsWorld) DiceCount() int {
	if pw == nil {
		return 0
	}
	return len(pw.dice)
}

package component

import "github.com/jakecoffman/cp"

// PhysicsBody links an entity to its planar body in the Chipmunk space.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

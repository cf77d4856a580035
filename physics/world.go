package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
)

// DefaultGravity pulls bodies down at 10 units/s².
var DefaultGravity = mgl32.Vec2{0, -10}

// World owns a Chipmunk space. The game only steps it and reads positions
// back; nothing else leaks out of this package.
type World struct {
	space  *cp.Space
	bodies []*Body
}

func NewWorld(gravity mgl32.Vec2) *World {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{X: float64(gravity.X()), Y: float64(gravity.Y())})
	return &World{space: space}
}

// Body is a dynamic box in the world.
type Body struct {
	body  *cp.Body
	shape *cp.Shape
	spawn mgl32.Vec2
}

// AddBox adds a dynamic box of the given full size and density whose center
// starts at pos.
func (w *World) AddBox(width, height, density float32, pos mgl32.Vec2) *Body {
	if w == nil || w.space == nil {
		return nil
	}
	if density <= 0 {
		density = 1
	}
	mass := float64(density * width * height)
	body := cp.NewBody(mass, cp.MomentForBox(mass, float64(width), float64(height)))
	body.SetPosition(cp.Vector{X: float64(pos.X()), Y: float64(pos.Y())})
	shape := cp.NewBox(body, float64(width), float64(height), 0)
	shape.SetFriction(0.8)

	w.space.AddBody(body)
	w.space.AddShape(shape)

	b := &Body{body: body, shape: shape, spawn: pos}
	w.bodies = append(w.bodies, b)
	return b
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)
}

// Bodies returns the bodies added to the world.
func (w *World) Bodies() []*Body {
	if w == nil {
		return nil
	}
	return append([]*Body(nil), w.bodies...)
}

// Position returns the body's center.
func (b *Body) Position() mgl32.Vec2 {
	if b == nil || b.body == nil {
		return mgl32.Vec2{}
	}
	p := b.body.Position()
	return mgl32.Vec2{float32(p.X), float32(p.Y)}
}

// Reset teleports the body back to pos and stops it.
func (b *Body) Reset(pos mgl32.Vec2) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetTransform(cp.Vector{X: float64(pos.X()), Y: float64(pos.Y())}, b.body.Angle())
	b.body.SetVelocity(0, 0)
	b.body.SetAngularVelocity(0)
}

// ResetBelow moves the body back to its spawn point once it drops under
// floor. It reports whether a reset happened.
func (b *Body) ResetBelow(floor float32) bool {
	if b == nil || b.Position().Y() >= floor {
		return false
	}
	b.Reset(b.spawn)
	return true
}

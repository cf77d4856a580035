package obj

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/sandbox/common"
)

const (
	defaultPlayerSpeed = 4.0
	teleportMin        = 0.0
	teleportMax        = 10.0
)

// Player moves with the held direction actions and teleports to a random
// spot when the action button is pressed.
type Player struct {
	*GameObject

	// Speed is in world units per second.
	Speed float32

	controller *Controller
}

func NewPlayer(base *GameObject, controller *Controller) *Player {
	return &Player{GameObject: base, Speed: defaultPlayerSpeed, controller: controller}
}

func (p *Player) Update(dt float64) {
	if p.controller == nil {
		return
	}

	var dir mgl32.Vec2
	if p.controller.IsHeld(MaskUp) {
		dir[1] += 1
	}
	if p.controller.IsHeld(MaskDown) {
		dir[1] -= 1
	}
	if p.controller.IsHeld(MaskLeft) {
		dir[0] -= 1
	}
	if p.controller.IsHeld(MaskRight) {
		dir[0] += 1
	}
	// diagonals move at the same speed as straight lines
	if dir.Len() > 1 {
		dir = dir.Normalize()
	}

	pos := p.Position()
	step := dir.Mul(p.Speed * float32(dt))
	pos[0] += step.X()
	pos[1] += step.Y()

	if p.controller.WasPressed(MaskAction) {
		pos[0] = common.RandomFloat(teleportMin, teleportMax)
		pos[1] = common.RandomFloat(teleportMin, teleportMax)
	}

	p.SetPosition(pos)
}

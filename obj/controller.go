package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sandbox/event"
)

// Mask is a set of logical actions.
type Mask uint8

const (
	MaskUp Mask = 1 << iota
	MaskDown
	MaskLeft
	MaskRight
	MaskAction
)

var maskNames = map[string]Mask{
	"up":     MaskUp,
	"down":   MaskDown,
	"left":   MaskLeft,
	"right":  MaskRight,
	"action": MaskAction,
}

// ParseMask maps an action name ("up", "action", ...) to its mask.
func ParseMask(name string) (Mask, bool) {
	m, ok := maskNames[name]
	return m, ok
}

func (m Mask) String() string {
	switch m {
	case MaskUp:
		return "up"
	case MaskDown:
		return "down"
	case MaskLeft:
		return "left"
	case MaskRight:
		return "right"
	case MaskAction:
		return "action"
	default:
		return "mask"
	}
}

// Bindings maps physical keys and gamepad buttons to actions. Several inputs
// may share one action.
type Bindings struct {
	Keys    map[ebiten.Key]Mask
	Buttons map[ebiten.StandardGamepadButton]Mask
}

func DefaultBindings() Bindings {
	return Bindings{
		Keys: map[ebiten.Key]Mask{
			ebiten.KeyW:          MaskUp,
			ebiten.KeyArrowUp:    MaskUp,
			ebiten.KeyS:          MaskDown,
			ebiten.KeyArrowDown:  MaskDown,
			ebiten.KeyA:          MaskLeft,
			ebiten.KeyArrowLeft:  MaskLeft,
			ebiten.KeyD:          MaskRight,
			ebiten.KeyArrowRight: MaskRight,
			ebiten.KeyZ:          MaskAction,
		},
		Buttons: map[ebiten.StandardGamepadButton]Mask{
			ebiten.StandardGamepadButtonLeftTop:     MaskUp,
			ebiten.StandardGamepadButtonLeftBottom:  MaskDown,
			ebiten.StandardGamepadButtonLeftLeft:    MaskLeft,
			ebiten.StandardGamepadButtonLeftRight:   MaskRight,
			ebiten.StandardGamepadButtonRightBottom: MaskAction,
		},
	}
}

// Controller tracks which actions are held this frame and which were held
// last frame, so callers can ask for edges.
//
// StartFrame must run exactly once per frame, before events are dispatched.
// Skipping it or calling it twice breaks the edge queries for that frame.
type Controller struct {
	bindings Bindings
	flags    Mask
	oldFlags Mask
}

func NewController(b Bindings) *Controller {
	return &Controller{bindings: b}
}

// SetBindings swaps the binding table. Held state is kept.
func (c *Controller) SetBindings(b Bindings) {
	c.bindings = b
}

// StartFrame snapshots the current flags as last frame's flags.
func (c *Controller) StartFrame() {
	c.oldFlags = c.flags
}

// Reset releases every action without producing edges.
func (c *Controller) Reset() {
	c.flags = 0
	c.oldFlags = 0
}

// OnEvent updates held state from keyboard and gamepad input events. Other
// events are ignored.
func (c *Controller) OnEvent(e event.Event) {
	if c == nil || e == nil || e.Type() != event.TypeInput {
		return
	}
	in, ok := e.(event.InputEvent)
	if !ok {
		return
	}

	var mask Mask
	switch in.Device {
	case event.DeviceKeyboard:
		mask = c.bindings.Keys[ebiten.Key(in.Code)]
	case event.DeviceGamepad:
		mask = c.bindings.Buttons[ebiten.StandardGamepadButton(in.Code)]
	}
	if mask == 0 {
		return
	}

	switch in.State {
	case event.StatePressed:
		c.flags |= mask
	case event.StateReleased:
		c.flags &^= mask
	}
}

func (c *Controller) IsHeld(m Mask) bool {
	return c.flags&m != 0
}

// WasPressed reports a rising edge this frame.
func (c *Controller) WasPressed(m Mask) bool {
	return c.flags&m != 0 && c.oldFlags&m == 0
}

// WasReleased reports a falling edge this frame.
func (c *Controller) WasReleased(m Mask) bool {
	return c.flags&m == 0 && c.oldFlags&m != 0
}

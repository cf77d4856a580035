package obj

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sandbox/event"
)

func key(k ebiten.Key) int { return int(k) }

func TestControllerEdges(t *testing.T) {
	type frame struct {
		events      []event.Event
		held        bool
		wasPressed  bool
		wasReleased bool
	}

	frames := []frame{
		{nil, false, false, false},
		{[]event.Event{event.KeyDown(key(ebiten.KeyZ))}, true, true, false},
		{nil, true, false, false},
		{[]event.Event{event.KeyUp(key(ebiten.KeyZ))}, false, false, true},
		{nil, false, false, false},
	}

	c := NewController(DefaultBindings())
	for i, f := range frames {
		c.StartFrame()
		for _, e := range f.events {
			c.OnEvent(e)
		}
		if got := c.IsHeld(MaskAction); got != f.held {
			t.Fatalf("frame %d: IsHeld=%v want %v", i, got, f.held)
		}
		if got := c.WasPressed(MaskAction); got != f.wasPressed {
			t.Fatalf("frame %d: WasPressed=%v want %v", i, got, f.wasPressed)
		}
		if got := c.WasReleased(MaskAction); got != f.wasReleased {
			t.Fatalf("frame %d: WasReleased=%v want %v", i, got, f.wasReleased)
		}
	}
}

func TestControllerDispatchScenario(t *testing.T) {
	m := event.NewManager()
	c := NewController(DefaultBindings())

	m.Add(event.KeyDown(key(ebiten.KeyW)))
	m.Add(event.KeyDown(key(ebiten.KeyZ)))
	m.Add(event.KeyUp(key(ebiten.KeyW)))

	c.StartFrame()
	m.DispatchAll(event.ReceiverFunc(c.OnEvent))

	if c.IsHeld(MaskUp) {
		t.Fatalf("Up should not be held after W down/up")
	}
	if !c.IsHeld(MaskAction) {
		t.Fatalf("Action should be held")
	}
	if !c.WasPressed(MaskAction) {
		t.Fatalf("Action should be pressed this frame")
	}
	if c.WasPressed(MaskUp) || c.WasReleased(MaskUp) {
		t.Fatalf("Up should show no edge within one frame")
	}
}

func TestControllerBindings(t *testing.T) {
	cases := []struct {
		name string
		evt  event.InputEvent
		mask Mask
		held bool
	}{
		{"arrow_up", event.KeyDown(key(ebiten.KeyArrowUp)), MaskUp, true},
		{"s_down", event.KeyDown(key(ebiten.KeyS)), MaskDown, true},
		{"a_left", event.KeyDown(key(ebiten.KeyA)), MaskLeft, true},
		{"arrow_right", event.KeyDown(key(ebiten.KeyArrowRight)), MaskRight, true},
		{"unbound_key", event.KeyDown(key(ebiten.KeyQ)), MaskUp | MaskDown | MaskLeft | MaskRight | MaskAction, false},
		{"gamepad_action", event.InputEvent{Device: event.DeviceGamepad, State: event.StatePressed, Code: int(ebiten.StandardGamepadButtonRightBottom)}, MaskAction, true},
		{"mouse_ignored", event.InputEvent{Device: event.DeviceMouse, State: event.StatePressed, Code: key(ebiten.KeyW)}, MaskUp, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctrl := NewController(DefaultBindings())
			ctrl.StartFrame()
			ctrl.OnEvent(c.evt)
			if got := ctrl.IsHeld(c.mask); got != c.held {
				t.Fatalf("IsHeld(%v)=%v want %v", c.mask, got, c.held)
			}
		})
	}
}

func TestControllerIgnoresOtherEvents(t *testing.T) {
	c := NewController(DefaultBindings())
	c.OnEvent(event.CharEvent{Char: 'w'})
	c.OnEvent(event.WindowResizeEvent{Width: 1, Height: 1})
	c.OnEvent(nil)
	if c.IsHeld(MaskUp) {
		t.Fatalf("non-input events must not change state")
	}
}

func TestControllerSetBindingsAndReset(t *testing.T) {
	c := NewController(Bindings{Keys: map[ebiten.Key]Mask{ebiten.KeyI: MaskUp}})
	c.OnEvent(event.KeyDown(key(ebiten.KeyW)))
	if c.IsHeld(MaskUp) {
		t.Fatalf("W is not bound")
	}
	c.OnEvent(event.KeyDown(key(ebiten.KeyI)))
	if !c.IsHeld(MaskUp) {
		t.Fatalf("I should hold Up")
	}

	c.SetBindings(DefaultBindings())
	if !c.IsHeld(MaskUp) {
		t.Fatalf("SetBindings should keep held state")
	}

	c.Reset()
	if c.IsHeld(MaskUp) || c.WasReleased(MaskUp) {
		t.Fatalf("Reset should clear state without a release edge")
	}
}

func TestParseMask(t *testing.T) {
	for _, m := range []Mask{MaskUp, MaskDown, MaskLeft, MaskRight, MaskAction} {
		got, ok := ParseMask(m.String())
		if !ok || got != m {
			t.Fatalf("ParseMask(%q) = %v, %v", m.String(), got, ok)
		}
	}
	if _, ok := ParseMask("jump"); ok {
		t.Fatalf("unexpected mask for jump")
	}
}

package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/sandbox/event"
)

// Sink receives produced events. *event.Manager satisfies it.
type Sink interface {
	Add(e event.Event)
}

// Source turns ebiten's polled input state into queued events: one
// InputEvent per key or button edge, one CharEvent per typed character, and a
// WindowResizeEvent whenever the layout size changes.
type Source struct {
	sink Sink

	keys    []ebiten.Key
	mouse   []ebiten.MouseButton
	pads    []ebiten.GamepadID
	buttons []ebiten.StandardGamepadButton
	chars   []rune

	width  int
	height int
}

func NewSource(sink Sink) *Source {
	return &Source{sink: sink}
}

var mouseButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
}

// Poll emits the events for the current tick. width and height are the
// latest layout size.
func (s *Source) Poll(width, height int) {
	if s == nil || s.sink == nil {
		return
	}

	s.pollResize(width, height)

	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		s.sink.Add(event.InputEvent{Device: event.DeviceKeyboard, State: event.StatePressed, Code: int(k)})
	}
	s.keys = inpututil.AppendJustReleasedKeys(s.keys[:0])
	for _, k := range s.keys {
		s.sink.Add(event.InputEvent{Device: event.DeviceKeyboard, State: event.StateReleased, Code: int(k)})
	}

	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			s.sink.Add(event.InputEvent{Device: event.DeviceMouse, State: event.StatePressed, Code: int(b)})
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			s.sink.Add(event.InputEvent{Device: event.DeviceMouse, State: event.StateReleased, Code: int(b)})
		}
	}

	// Only the first standard-layout gamepad drives the game.
	s.pads = ebiten.AppendGamepadIDs(s.pads[:0])
	for _, id := range s.pads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		s.buttons = inpututil.AppendJustPressedStandardGamepadButtons(id, s.buttons[:0])
		for _, b := range s.buttons {
			s.sink.Add(event.InputEvent{Device: event.DeviceGamepad, State: event.StatePressed, Code: int(b)})
		}
		s.buttons = inpututil.AppendJustReleasedStandardGamepadButtons(id, s.buttons[:0])
		for _, b := range s.buttons {
			s.sink.Add(event.InputEvent{Device: event.DeviceGamepad, State: event.StateReleased, Code: int(b)})
		}
		break
	}

	s.chars = ebiten.AppendInputChars(s.chars[:0])
	for _, r := range s.chars {
		s.sink.Add(event.CharEvent{Char: r})
	}
}

func (s *Source) pollResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.sink.Add(event.WindowResizeEvent{Width: width, Height: height})
}

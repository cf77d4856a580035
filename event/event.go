package event

// Type identifies a concrete event variant. Every variant returns the same
// constant from Type for its whole lifetime, so receivers switch on it instead
// of inspecting the dynamic type.
type Type string

const (
	TypeInput        Type = "input"
	TypeWindowResize Type = "window_resize"
	TypeChar         Type = "char"
)

// Event is a queued, immutable message.
type Event interface {
	Type() Type
}

// DeviceType is the input device that produced an InputEvent.
type DeviceType int

const (
	DeviceKeyboard DeviceType = iota
	DeviceMouse
	DeviceGamepad
)

func (d DeviceType) String() string {
	switch d {
	case DeviceKeyboard:
		return "keyboard"
	case DeviceMouse:
		return "mouse"
	case DeviceGamepad:
		return "gamepad"
	default:
		return "unknown"
	}
}

// DeviceState is the edge an InputEvent reports.
type DeviceState int

const (
	StatePressed DeviceState = iota
	StateReleased
)

func (s DeviceState) String() string {
	if s == StatePressed {
		return "pressed"
	}
	return "released"
}

// InputEvent reports a key or button changing state. Code is an ebiten.Key
// for keyboards, an ebiten.MouseButton for mice and an
// ebiten.StandardGamepadButton for gamepads.
type InputEvent struct {
	Device DeviceType
	State  DeviceState
	Code   int
}

func (InputEvent) Type() Type { return TypeInput }

// KeyDown and KeyUp build keyboard InputEvents.
func KeyDown(code int) InputEvent {
	return InputEvent{Device: DeviceKeyboard, State: StatePressed, Code: code}
}

func KeyUp(code int) InputEvent {
	return InputEvent{Device: DeviceKeyboard, State: StateReleased, Code: code}
}

// WindowResizeEvent carries the new client size in pixels.
type WindowResizeEvent struct {
	Width  int
	Height int
}

func (WindowResizeEvent) Type() Type { return TypeWindowResize }

// CharEvent carries one typed character, for text input.
type CharEvent struct {
	Char rune
}

func (CharEvent) Type() Type { return TypeChar }

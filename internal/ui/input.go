package ui

import "image"

// EventKind is the kind of an input event.
type EventKind int

const (
	// EventQuit is the window level quit request.
	EventQuit EventKind = iota
	// EventKeyDown is a key press edge.
	EventKeyDown
	// EventButtonDown is a pointer button press edge.
	EventButtonDown
	// EventButtonUp is a pointer button release edge.
	EventButtonUp
)

// Key is a keyboard key the menu recognises.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
)

// Button is a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Event is a discrete input edge.
type Event struct {
	Kind   EventKind
	Key    Key
	Button Button
}

// Input is everything sampled from the platform for one tick.
type Input struct {
	Pointer image.Point
	Events  []Event
}

// IsExit reports whether the event ends the menu.
func (e Event) IsExit() bool {
	return e.Kind == EventQuit || (e.Kind == EventKeyDown && e.Key == KeyEscape)
}

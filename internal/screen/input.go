package screen

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/erparts/tunesca/internal/ui"
)

var buttons = []struct {
	ebiten ebiten.MouseButton
	ui     ui.Button
}{
	{ebiten.MouseButtonLeft, ui.ButtonLeft},
	{ebiten.MouseButtonRight, ui.ButtonRight},
	{ebiten.MouseButtonMiddle, ui.ButtonMiddle},
}

// SampleInput reads the cursor position and this tick's input edges.
func SampleInput() ui.Input {
	x, y := ebiten.CursorPosition()
	input := ui.Input{Pointer: image.Pt(x, y)}

	if ebiten.IsWindowBeingClosed() {
		input.Events = append(input.Events, ui.Event{Kind: ui.EventQuit})
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		input.Events = append(input.Events, ui.Event{Kind: ui.EventKeyDown, Key: ui.KeyEscape})
	}

	for _, b := range buttons {
		if inpututil.IsMouseButtonJustPressed(b.ebiten) {
			input.Events = append(input.Events, ui.Event{Kind: ui.EventButtonDown, Button: b.ui})
		}
		if inpututil.IsMouseButtonJustReleased(b.ebiten) {
			input.Events = append(input.Events, ui.Event{Kind: ui.EventButtonUp, Button: b.ui})
		}
	}

	return input
}

// Cursor switches the system cursor shape.
type Cursor struct {
	current ui.CursorKind
	set     bool
}

// SetCursor applies kind if it differs from the current shape.
func (c *Cursor) SetCursor(kind ui.CursorKind) {
	if c.set && c.current == kind {
		return
	}

	shape := ebiten.CursorShapeDefault
	if kind == ui.CursorPointer {
		shape = ebiten.CursorShapePointer
	}

	ebiten.SetCursorShape(shape)
	c.current, c.set = kind, true
}

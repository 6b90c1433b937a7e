package screen

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/erparts/tunesca/internal/render"
	"github.com/erparts/tunesca/internal/ui"
)

var errClosed = errors.New("closed")

type scriptedLoop struct {
	results []error
	inputs  []ui.Input
}

func (l *scriptedLoop) Update(input ui.Input) error {
	l.inputs = append(l.inputs, input)
	err := l.results[0]
	l.results = l.results[1:]
	return err
}

func (l *scriptedLoop) Draw(render.Surface) error {
	return nil
}

func TestGameUpdateExit(t *testing.T) {
	loop := &scriptedLoop{results: []error{nil, errClosed}}
	game := NewGame(loop, 1280, 800)
	game.exit = errClosed

	assert.NoError(t, game.update(ui.Input{}))
	assert.ErrorIs(t, game.update(ui.Input{Events: []ui.Event{{Kind: ui.EventQuit}}}), ebiten.Termination)
	assert.NoError(t, game.err)
	assert.Len(t, loop.inputs, 2)
}

func TestGameUpdateFatal(t *testing.T) {
	fatal := errors.New("decoder gone")
	game := NewGame(&scriptedLoop{results: []error{fatal}}, 1280, 800)
	game.exit = errClosed

	assert.ErrorIs(t, game.update(ui.Input{}), ebiten.Termination)
	assert.Same(t, fatal, game.err)
}

func TestGameLayout(t *testing.T) {
	game := NewGame(&scriptedLoop{}, 1280, 800)

	w, h := game.Layout(640, 480)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 800, h)
}

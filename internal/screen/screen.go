// Package screen runs the menu inside an ebiten window. It adapts ebiten
// images to render.Texture and render.Surface, samples the mouse and the
// keyboard into ui.Input and drives a menu.FrameLoop from ebiten's game loop.
package screen

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"

	"github.com/erparts/tunesca/internal/render"
	"github.com/erparts/tunesca/internal/ui"
)

// Texture is an ebiten image.
type Texture struct {
	img *ebiten.Image
}

// Size returns the texture size.
func (t *Texture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// WritePixels replaces the texture content with RGBA pixels.
func (t *Texture) WritePixels(pix []byte) {
	t.img.WritePixels(pix)
}

// Textures allocates ebiten images.
type Textures struct{}

// NewTexture allocates an image of the given size.
func (Textures) NewTexture(width, height int) (render.Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid texture size %dx%d", width, height)
	}

	return &Texture{img: ebiten.NewImage(width, height)}, nil
}

// Surface draws on the screen image of the current frame.
type Surface struct {
	dst *ebiten.Image
}

// Clear fills the screen with clr.
func (s *Surface) Clear(clr color.RGBA) {
	s.dst.Fill(clr)
}

// DrawStretched scales texture over the whole screen.
func (s *Surface) DrawStretched(texture render.Texture) {
	t, ok := texture.(*Texture)
	if !ok {
		return
	}

	tw, th := t.Size()
	sw, sh := s.dst.Bounds().Dx(), s.dst.Bounds().Dy()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(tw), float64(sh)/float64(th))
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(t.img, op)
}

// FillRect blends a filled rectangle.
func (s *Surface) FillRect(r ui.Rect, clr color.RGBA) {
	vector.DrawFilledRect(s.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

// StrokeRect draws a one pixel outline.
func (s *Surface) StrokeRect(r ui.Rect, clr color.RGBA) {
	vector.StrokeRect(s.dst, float32(r.X)+0.5, float32(r.Y)+0.5, float32(r.W), float32(r.H), 1, clr, false)
}

// DrawTexture draws texture at (x, y).
func (s *Surface) DrawTexture(texture render.Texture, x, y int) {
	t, ok := texture.(*Texture)
	if !ok {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	s.dst.DrawImage(t.img, op)
}

// Present is a no-op: ebiten shows the screen image when Draw returns.
func (s *Surface) Present() {}

// Loop is the part of menu.FrameLoop the game drives.
type Loop interface {
	Update(input ui.Input) error
	Draw(s render.Surface) error
}

// Game implements ebiten.Game over a frame loop.
type Game struct {
	loop    Loop
	width   int
	height  int
	surface Surface
	exit    error
	err     error
}

// NewGame returns a game of a fixed logical size.
func NewGame(loop Loop, width, height int) *Game {
	return &Game{
		loop:   loop,
		width:  width,
		height: height,
	}
}

// Run opens the window and blocks until the menu is closed. It returns
// nil on a regular exit.
func (g *Game) Run(title string, tps int, exit error) error {
	g.exit = exit

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetVsyncEnabled(true)
	if tps > 0 {
		ebiten.SetTPS(tps)
	}

	logrus.WithFields(logrus.Fields{
		"function": "Game.Run",
		"title":    title,
		"width":    g.width,
		"height":   g.height,
		"tps":      tps,
	}).Info("Opening menu window")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}

	return g.err
}

// Update samples the input and advances the frame loop.
func (g *Game) Update() error {
	return g.update(SampleInput())
}

// update maps the loop result to ebiten: ErrExit ends the game cleanly
// and any other error ends it with that error kept for Run.
func (g *Game) update(input ui.Input) error {
	err := g.loop.Update(input)
	switch {
	case err == nil:
		return nil
	case g.exit != nil && errors.Is(err, g.exit):
		return ebiten.Termination
	default:
		g.err = err
		return ebiten.Termination
	}
}

// Draw composes the menu on the screen image.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.dst = screen
	if err := g.loop.Draw(&g.surface); err != nil && g.err == nil {
		logrus.WithFields(logrus.Fields{
			"function": "Game.Draw",
			"error":    err.Error(),
		}).Error("Couldn't draw the menu")
		g.err = err
	}
}

// Layout keeps the logical screen at the viewport size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Package rendertest records drawing operations in memory for tests.
package rendertest

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/erparts/tunesca/internal/render"
	"github.com/erparts/tunesca/internal/ui"
)

// Texture is an in-memory render.Texture.
type Texture struct {
	Name   string
	W, H   int
	Pix    []byte
	Writes int
}

func (t *Texture) Size() (int, int) {
	return t.W, t.H
}

func (t *Texture) WritePixels(pix []byte) {
	t.Pix = append(t.Pix[:0], pix...)
	t.Writes++
}

// Factory creates Textures and remembers them.
type Factory struct {
	Created []*Texture
	Fail    bool
}

func (f *Factory) NewTexture(width, height int) (render.Texture, error) {
	if f.Fail {
		return nil, errors.New("out of video memory")
	}

	texture := &Texture{Name: "stream", W: width, H: height}
	f.Created = append(f.Created, texture)

	return texture, nil
}

// Labels renders labels as 8 pixels per character by 10 pixels.
type Labels struct {
	Rendered int
}

func (l *Labels) RenderLabel(text string, clr color.RGBA) (render.Texture, error) {
	l.Rendered++
	return &Texture{Name: fmt.Sprintf("%s/%d,%d,%d", text, clr.R, clr.G, clr.B), W: len(text) * 8, H: 10}, nil
}

// Op is one recorded drawing call.
type Op struct {
	Kind    string
	Rect    ui.Rect
	Color   color.RGBA
	Texture string
	X, Y    int
}

// Surface records every call. Frames holds a copy of the stretched video
// texture's pixels for each presented frame.
type Surface struct {
	Ops    []Op
	Frames [][]byte

	stretched []byte
}

func (s *Surface) Clear(clr color.RGBA) {
	s.Ops = append(s.Ops, Op{Kind: "clear", Color: clr})
	s.stretched = nil
}

func (s *Surface) DrawStretched(texture render.Texture) {
	op := Op{Kind: "stretch"}
	if t, ok := texture.(*Texture); ok {
		op.Texture = t.Name
		s.stretched = append([]byte(nil), t.Pix...)
	}
	s.Ops = append(s.Ops, op)
}

func (s *Surface) FillRect(r ui.Rect, clr color.RGBA) {
	s.Ops = append(s.Ops, Op{Kind: "fill", Rect: r, Color: clr})
}

func (s *Surface) StrokeRect(r ui.Rect, clr color.RGBA) {
	s.Ops = append(s.Ops, Op{Kind: "stroke", Rect: r, Color: clr})
}

func (s *Surface) DrawTexture(texture render.Texture, x, y int) {
	op := Op{Kind: "texture", X: x, Y: y}
	if t, ok := texture.(*Texture); ok {
		op.Texture = t.Name
	}
	s.Ops = append(s.Ops, op)
}

func (s *Surface) Present() {
	s.Ops = append(s.Ops, Op{Kind: "present"})
	s.Frames = append(s.Frames, s.stretched)
}

// Kinds returns the kinds of the recorded operations in order.
func (s *Surface) Kinds() []string {
	kinds := make([]string, len(s.Ops))
	for i, op := range s.Ops {
		kinds[i] = op.Kind
	}

	return kinds
}

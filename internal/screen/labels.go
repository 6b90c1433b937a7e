package screen

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"

	"github.com/erparts/tunesca/internal/render"
)

// Labels rasterises button labels with a bold sans-serif face.
type Labels struct {
	face font.Face
}

// NewLabels loads the Go Bold font at size points.
func NewLabels(size float64) (*Labels, error) {
	tt, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse the label font: %w", err)
	}

	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't create the label font face: %w", err)
	}

	return &Labels{face: face}, nil
}

// RenderLabel draws s in clr on a new image tightly sized to the text.
func (l *Labels) RenderLabel(s string, clr color.RGBA) (render.Texture, error) {
	bounds := text.BoundString(l.face, s)
	if bounds.Empty() {
		return nil, fmt.Errorf("label %q has no visible glyphs", s)
	}

	img := ebiten.NewImage(bounds.Dx(), bounds.Dy())
	text.Draw(img, s, l.face, -bounds.Min.X, -bounds.Min.Y, clr)

	return &Texture{img: img}, nil
}

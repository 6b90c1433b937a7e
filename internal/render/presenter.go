// Package render composes the menu frame: the streamed video texture
// stretched over the viewport with the button panels, borders and labels
// drawn on top. Drawing goes through the Surface and Texture capabilities
// so that the composition order is testable without a display.
package render

import (
	"fmt"

	"github.com/erparts/tunesca/internal/playback"
)

// Texture is a GPU image.
type Texture interface {
	// Size returns the texture size in pixels.
	Size() (width, height int)
	// WritePixels replaces the whole content with RGBA pixels.
	WritePixels(pix []byte)
}

// TextureFactory allocates textures.
type TextureFactory interface {
	NewTexture(width, height int) (Texture, error)
}

// Presenter owns the streaming texture the video is uploaded to.
type Presenter struct {
	texture Texture
	width   int
	height  int
	uploads int
}

// NewPresenter creates the streaming texture for frames of the given size.
func NewPresenter(factory TextureFactory, width, height int) (*Presenter, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid texture size %dx%d", playback.ErrResourceExhausted, width, height)
	}

	texture, err := factory.NewTexture(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", playback.ErrResourceExhausted, err)
	}

	return &Presenter{
		texture: texture,
		width:   width,
		height:  height,
	}, nil
}

// Upload replaces the whole texture with frame.
func (p *Presenter) Upload(frame *playback.Converted) error {
	if frame.Width != p.width || frame.Height != p.height || frame.Stride != p.width*4 {
		return fmt.Errorf("%w: frame %dx%d stride %d doesn't fit texture %dx%d",
			playback.ErrGeometryMismatch, frame.Width, frame.Height, frame.Stride, p.width, p.height)
	}

	p.texture.WritePixels(frame.Pix)
	p.uploads++

	return nil
}

// Texture returns the streaming texture.
func (p *Presenter) Texture() Texture {
	return p.texture
}

// Uploads returns the number of frames uploaded so far.
func (p *Presenter) Uploads() int {
	return p.uploads
}

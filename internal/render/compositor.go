package render

import (
	"image/color"
	"time"

	"github.com/erparts/tunesca/internal/ui"
)

// Surface is the render target of one frame.
type Surface interface {
	// Clear fills the whole target with clr.
	Clear(clr color.RGBA)
	// DrawStretched draws texture scaled to cover the whole viewport.
	DrawStretched(texture Texture)
	// FillRect blends a filled rectangle over the target.
	FillRect(r ui.Rect, clr color.RGBA)
	// StrokeRect draws a one pixel rectangle outline.
	StrokeRect(r ui.Rect, clr color.RGBA)
	// DrawTexture draws texture unscaled with its top-left corner at (x, y).
	DrawTexture(texture Texture, x, y int)
	// Present shows the composed frame.
	Present()
}

// Compositor draws the menu over the video texture.
type Compositor struct {
	regions []ui.Region
	labels  *LabelCache
	theme   Theme
}

// NewCompositor returns a compositor for the static region set.
func NewCompositor(regions []ui.Region, labels *LabelCache, theme Theme) *Compositor {
	return &Compositor{
		regions: regions,
		labels:  labels,
		theme:   theme,
	}
}

// Draw composes one frame in a fixed order: clear, video, panels, hover
// borders, labels, present. Elapsed drives the border glow.
func (c *Compositor) Draw(s Surface, video Texture, snapshot ui.Snapshot, elapsed time.Duration) error {
	s.Clear(c.theme.Background)
	s.DrawStretched(video)

	for _, region := range c.regions {
		s.FillRect(region.Bounds, c.theme.Panel)
	}

	glow := ui.GlowColor(elapsed)
	for _, region := range c.regions {
		if snapshot.IsHovered(region.ID) {
			s.StrokeRect(region.Bounds, glow)
		}
	}

	for _, region := range c.regions {
		clr := c.theme.Muted
		if snapshot.IsHovered(region.ID) {
			clr = c.theme.Accent
		}

		label, err := c.labels.Get(region.Label, clr)
		if err != nil {
			return err
		}

		w, h := label.Size()
		s.DrawTexture(label,
			region.Bounds.X+(region.Bounds.W-w)/2,
			region.Bounds.Y+(region.Bounds.H-h)/2)
	}

	s.Present()
	return nil
}

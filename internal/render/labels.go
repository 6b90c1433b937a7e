package render

import (
	"fmt"
	"image/color"
)

// LabelRenderer rasterises text into a texture sized to the text.
type LabelRenderer interface {
	RenderLabel(text string, clr color.RGBA) (Texture, error)
}

type labelKey struct {
	text string
	clr  color.RGBA
}

// LabelCache keeps one texture per label and colour. A menu label only
// ever takes two colours, so the cache stays tiny.
type LabelCache struct {
	renderer LabelRenderer
	entries  map[labelKey]Texture
}

// NewLabelCache returns an empty cache over renderer.
func NewLabelCache(renderer LabelRenderer) *LabelCache {
	return &LabelCache{
		renderer: renderer,
		entries:  make(map[labelKey]Texture),
	}
}

// Get returns the texture of text in clr, rendering it on first use.
func (c *LabelCache) Get(text string, clr color.RGBA) (Texture, error) {
	key := labelKey{text: text, clr: clr}
	if texture, ok := c.entries[key]; ok {
		return texture, nil
	}

	texture, err := c.renderer.RenderLabel(text, clr)
	if err != nil {
		return nil, fmt.Errorf("couldn't render label %q: %w", text, err)
	}

	c.entries[key] = texture
	return texture, nil
}

// Len returns the number of cached textures.
func (c *LabelCache) Len() int {
	return len(c.entries)
}

package render_test

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erparts/tunesca/internal/playback"
	"github.com/erparts/tunesca/internal/render"
	"github.com/erparts/tunesca/internal/render/rendertest"
	"github.com/erparts/tunesca/internal/ui"
)

var regions = []ui.Region{
	{ID: "new", Label: "NEW GAME", Bounds: ui.Rect{X: 490, Y: 440, W: 300, H: 70}},
	{ID: "system", Label: "SYSTEM", Bounds: ui.Rect{X: 490, Y: 530, W: 300, H: 70}},
}

func TestPresenterUploadsFullFrames(t *testing.T) {
	factory := &rendertest.Factory{}
	presenter, err := render.NewPresenter(factory, 2, 2)
	require.NoError(t, err)
	require.Len(t, factory.Created, 1)

	frame := playback.NewConverted(2, 2)
	for i := range frame.Pix {
		frame.Pix[i] = byte(i)
	}

	require.NoError(t, presenter.Upload(frame))
	assert.Equal(t, frame.Pix, factory.Created[0].Pix)
	assert.Equal(t, 1, presenter.Uploads())
	assert.Same(t, factory.Created[0], presenter.Texture())
}

func TestPresenterRejectsOtherGeometry(t *testing.T) {
	presenter, err := render.NewPresenter(&rendertest.Factory{}, 2, 2)
	require.NoError(t, err)

	err = presenter.Upload(playback.NewConverted(3, 2))
	assert.True(t, errors.Is(err, playback.ErrGeometryMismatch))
	assert.Equal(t, 0, presenter.Uploads())
}

func TestNewPresenterFailures(t *testing.T) {
	_, err := render.NewPresenter(&rendertest.Factory{Fail: true}, 2, 2)
	assert.True(t, errors.Is(err, playback.ErrResourceExhausted))

	_, err = render.NewPresenter(&rendertest.Factory{}, 0, 2)
	assert.True(t, errors.Is(err, playback.ErrResourceExhausted))
}

func TestCompositorDrawOrder(t *testing.T) {
	labels := &rendertest.Labels{}
	compositor := render.NewCompositor(regions, render.NewLabelCache(labels), render.DefaultTheme)
	video := &rendertest.Texture{Name: "stream", W: 2, H: 2}
	surface := &rendertest.Surface{}

	snapshot := ui.Evaluate(image.Pt(500, 450), regions)
	require.NoError(t, compositor.Draw(surface, video, snapshot, 0))

	assert.Equal(t, []string{
		"clear", "stretch",
		"fill", "fill",
		"stroke",
		"texture", "texture",
		"present",
	}, surface.Kinds())

	stroke := surface.Ops[4]
	assert.Equal(t, regions[0].Bounds, stroke.Rect)
	assert.Equal(t, ui.GlowColor(0), stroke.Color)

	for _, fill := range surface.Ops[2:4] {
		assert.Equal(t, render.DefaultTheme.Panel, fill.Color)
	}
}

func TestCompositorCentersLabelsInHoverColour(t *testing.T) {
	compositor := render.NewCompositor(regions, render.NewLabelCache(&rendertest.Labels{}), render.DefaultTheme)
	surface := &rendertest.Surface{}

	snapshot := ui.Evaluate(image.Pt(700, 600), regions)
	require.NoError(t, compositor.Draw(surface, &rendertest.Texture{}, snapshot, time.Second))

	var texts []rendertest.Op
	for _, op := range surface.Ops {
		if op.Kind == "texture" {
			texts = append(texts, op)
		}
	}
	require.Len(t, texts, 2)

	// "NEW GAME" is 64x10 and muted, "SYSTEM" is 48x10 and gold.
	assert.Equal(t, "NEW GAME/170,170,170", texts[0].Texture)
	assert.Equal(t, 490+(300-64)/2, texts[0].X)
	assert.Equal(t, 440+(70-10)/2, texts[0].Y)

	assert.Equal(t, "SYSTEM/212,175,55", texts[1].Texture)
	assert.Equal(t, 490+(300-48)/2, texts[1].X)
	assert.Equal(t, 530+(70-10)/2, texts[1].Y)
}

func TestCompositorNoBorderWithoutHover(t *testing.T) {
	compositor := render.NewCompositor(regions, render.NewLabelCache(&rendertest.Labels{}), render.DefaultTheme)
	surface := &rendertest.Surface{}

	require.NoError(t, compositor.Draw(surface, &rendertest.Texture{}, ui.Evaluate(image.Pt(0, 0), regions), 0))
	assert.NotContains(t, surface.Kinds(), "stroke")
}

func TestLabelCacheRendersEachStateOnce(t *testing.T) {
	labels := &rendertest.Labels{}
	cache := render.NewLabelCache(labels)
	compositor := render.NewCompositor(regions, cache, render.DefaultTheme)
	surface := &rendertest.Surface{}

	pointers := []image.Point{image.Pt(0, 0), image.Pt(500, 450), image.Pt(500, 540), image.Pt(0, 0)}
	for i := 0; i < 50; i++ {
		snapshot := ui.Evaluate(pointers[i%len(pointers)], regions)
		require.NoError(t, compositor.Draw(surface, &rendertest.Texture{}, snapshot, time.Duration(i)*time.Millisecond))
	}

	assert.Equal(t, 4, labels.Rendered)
	assert.Equal(t, 4, cache.Len())
}

func TestDefaultThemePanelIsStraightAlphaDarkGrey(t *testing.T) {
	// Straight-alpha (15, 15, 15, 190) stored premultiplied.
	assert.Equal(t, color.RGBA{R: 11, G: 11, B: 11, A: 190}, render.DefaultTheme.Panel)

	straight := color.NRGBAModel.Convert(render.DefaultTheme.Panel).(color.NRGBA)
	assert.InDelta(t, 15, int(straight.R), 1)
	assert.Equal(t, uint8(190), straight.A)
}

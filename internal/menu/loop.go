package menu

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/erparts/tunesca/internal/playback"
	"github.com/erparts/tunesca/internal/render"
	"github.com/erparts/tunesca/internal/ui"
)

// ErrExit is returned by Update once the user asked to leave the menu.
var ErrExit = errors.New("menu closed")

// CursorSetter changes the pointer shape.
type CursorSetter interface {
	SetCursor(kind ui.CursorKind)
}

// Options configure a FrameLoop.
type Options struct {
	Source    playback.Source
	Converter playback.Converter
	Textures  render.TextureFactory
	Labels    render.LabelRenderer
	// Cursor is optional.
	Cursor  CursorSetter
	Regions []ui.Region
	Actions ui.Actions
	// Theme defaults to render.DefaultTheme.
	Theme *render.Theme
	// DecodeAttempts defaults to playback.DefaultDecodeAttempts.
	DecodeAttempts int
	// Clock returns the time elapsed since the menu started. It defaults to
	// the monotonic clock.
	Clock func() time.Duration
}

// Stats are counters of a running FrameLoop.
type Stats struct {
	Ticks     int
	Presented int
	Uploads   int
	LoopBacks int
	Skipped   int
}

// FrameLoop advances the video and the interaction state once per tick and
// draws the menu.
type FrameLoop struct {
	running    bool
	player     *playback.Loop
	converter  playback.Converter
	presenter  *render.Presenter
	tracker    *ui.Tracker
	compositor *render.Compositor
	cursor     CursorSetter
	clock      func() time.Duration

	snapshot  ui.Snapshot
	ticks     int
	presented int
}

// New builds a frame loop. Every error it returns is a configuration or
// resource error and the menu can't start.
func New(opts Options) (*FrameLoop, error) {
	if opts.Source == nil || opts.Converter == nil || opts.Textures == nil || opts.Labels == nil {
		return nil, fmt.Errorf("menu: source, converter, textures and labels are required")
	}

	tracker, err := ui.NewTracker(opts.Regions, opts.Actions)
	if err != nil {
		return nil, err
	}

	width, height := opts.Source.Geometry()
	presenter, err := render.NewPresenter(opts.Textures, width, height)
	if err != nil {
		return nil, err
	}

	theme := render.DefaultTheme
	if opts.Theme != nil {
		theme = *opts.Theme
	}

	attempts := opts.DecodeAttempts
	if attempts <= 0 {
		attempts = playback.DefaultDecodeAttempts
	}

	clock := opts.Clock
	if clock == nil {
		start := time.Now()
		clock = func() time.Duration { return time.Since(start) }
	}

	return &FrameLoop{
		running:    true,
		player:     playback.NewLoop(opts.Source, attempts),
		converter:  opts.Converter,
		presenter:  presenter,
		tracker:    tracker,
		compositor: render.NewCompositor(opts.Regions, render.NewLabelCache(opts.Labels), theme),
		cursor:     opts.Cursor,
		clock:      clock,
	}, nil
}

// Running reports whether the menu is still open.
func (l *FrameLoop) Running() bool {
	return l.running
}

// Snapshot returns the interaction state of the last tick.
func (l *FrameLoop) Snapshot() ui.Snapshot {
	return l.snapshot
}

// Stats returns the loop counters.
func (l *FrameLoop) Stats() Stats {
	return Stats{
		Ticks:     l.ticks,
		Presented: l.presented,
		Uploads:   l.presenter.Uploads(),
		LoopBacks: l.player.LoopBacks(),
		Skipped:   l.player.Skipped(),
	}
}

// Update processes one tick of input and decodes the next video frame.
// It returns ErrExit when the menu was closed, and any other error is
// fatal.
func (l *FrameLoop) Update(input ui.Input) error {
	if !l.running {
		return ErrExit
	}
	l.ticks++

	l.snapshot = l.tracker.Evaluate(input)
	if l.cursor != nil {
		l.cursor.SetCursor(l.snapshot.Cursor)
	}

	for _, event := range input.Events {
		// Events after an exit are drained without effect.
		if !l.running {
			continue
		}

		if event.IsExit() {
			logrus.WithFields(logrus.Fields{
				"function": "FrameLoop.Update",
				"tick":     l.ticks,
			}).Info("Exit requested")

			l.running = false
			continue
		}

		l.tracker.Handle(event, l.snapshot)
	}

	if !l.running {
		return ErrExit
	}

	return l.advance()
}

// advance moves the video forward by one decoded frame.
func (l *FrameLoop) advance() error {
	frame, err := l.player.Advance()
	if err != nil {
		return err
	}

	if frame == nil {
		return nil
	}

	converted, err := l.converter.Convert(frame)
	if err != nil {
		return err
	}

	return l.presenter.Upload(converted)
}

// Draw composes the menu on s. Nothing is drawn once the menu is closed.
func (l *FrameLoop) Draw(s render.Surface) error {
	if !l.running {
		return nil
	}

	if err := l.compositor.Draw(s, l.presenter.Texture(), l.snapshot, l.clock()); err != nil {
		return err
	}

	l.presented++
	return nil
}

// Tick runs Update followed by Draw.
func (l *FrameLoop) Tick(input ui.Input, s render.Surface) error {
	if err := l.Update(input); err != nil {
		return err
	}

	return l.Draw(s)
}

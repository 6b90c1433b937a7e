package playback

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// DefaultDecodeAttempts is the number of decode steps Advance may take to
// produce one visible frame.
const DefaultDecodeAttempts = 8

// State is the state of the loop controller.
type State int

const (
	// StatePlaying means the next step decodes from the current position.
	StatePlaying State = iota
	// StateSeeking means the source is exhausted and must be rewound.
	StateSeeking
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateSeeking:
		return "seeking"
	default:
		return ""
	}
}

// Loop drives a Source and rewinds it whenever it runs out, producing an
// infinite sequence of frames from a finite clip.
type Loop struct {
	source    Source
	attempts  int
	state     State
	loopBacks int
	skipped   int
	onLoop    func(count int)

	// Set by a rewind, cleared when a frame is produced.
	rewoundWithoutFrame bool
}

// NewLoop returns a loop controller over source. Attempts bounds the number
// of decode steps taken per Advance call; values below 1 mean one.
func NewLoop(source Source, attempts int) *Loop {
	if attempts < 1 {
		attempts = 1
	}

	return &Loop{
		source:   source,
		attempts: attempts,
		state:    StatePlaying,
	}
}

// OnLoop registers a function called after every rewind.
func (l *Loop) OnLoop(fn func(count int)) {
	l.onLoop = fn
}

// State returns the current state.
func (l *Loop) State() State {
	return l.state
}

// LoopBacks returns how many times the source has been rewound.
func (l *Loop) LoopBacks() int {
	return l.loopBacks
}

// Skipped returns how many packets were dropped because they failed to decode.
func (l *Loop) Skipped() int {
	return l.skipped
}

// Advance steps the source until it emits a frame or the attempt budget is
// spent. End of stream is handled inline: the source is rewound and decoding
// continues within the same call, so the last frame never lingers on screen.
// A nil frame with a nil error means no new frame this tick. A source that
// ends again after a rewind without producing a frame, in this call or an
// earlier one, fails with ErrEmptyStream.
func (l *Loop) Advance() (Decoded, error) {
	for attempt := 0; attempt < l.attempts; attempt++ {
		if l.state == StateSeeking {
			if err := l.rewind(); err != nil {
				return nil, err
			}
		}

		frame, err := l.source.DecodeStep()
		switch {
		case err == nil && frame != nil:
			l.rewoundWithoutFrame = false
			return frame, nil

		case err == nil:
			continue

		case errors.Is(err, ErrEndOfStream):
			if l.rewoundWithoutFrame {
				return nil, ErrEmptyStream
			}
			l.state = StateSeeking
			// Seeking doesn't consume an attempt.
			attempt--

		case errors.Is(err, ErrDemuxRead):
			logrus.WithFields(logrus.Fields{
				"function": "Loop.Advance",
				"error":    err.Error(),
			}).Warn("Packet read failed, restarting playback")

			if l.rewoundWithoutFrame {
				return nil, fmt.Errorf("%w: read failed again after a restart: %w", ErrDemux, err)
			}
			l.state = StateSeeking

		case IsTransient(err):
			l.skipped++
			logrus.WithFields(logrus.Fields{
				"function": "Loop.Advance",
				"skipped":  l.skipped,
				"error":    err.Error(),
			}).Warn("Skipping undecodable packet")

		default:
			return nil, err
		}
	}

	return nil, nil
}

// rewind performs the SEEKING state transition.
func (l *Loop) rewind() error {
	if err := l.source.Reset(); err != nil {
		return fmt.Errorf("couldn't rewind the stream: %w", err)
	}

	l.state = StatePlaying
	l.rewoundWithoutFrame = true
	l.loopBacks++

	logrus.WithFields(logrus.Fields{
		"function":   "Loop.rewind",
		"loop_backs": l.loopBacks,
	}).Debug("Video looped back to start")

	if l.onLoop != nil {
		l.onLoop(l.loopBacks)
	}

	return nil
}

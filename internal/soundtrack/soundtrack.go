// Package soundtrack loops the menu music for the speaker. Music is
// decorative and runs on the speaker's own goroutine, independent of the
// video.
package soundtrack

import (
	"encoding/binary"
	"errors"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"

	"github.com/erparts/tunesca/internal/playback"
)

// Decoder yields interleaved little-endian S16 stereo samples, such as
// media.AudioSource.
type Decoder interface {
	ReadSamples() ([]byte, error)
	Reset() error
	SampleRate() int
}

// Track is a beep.Streamer that loops a Decoder forever.
type Track struct {
	decoder Decoder
	pending []byte
	loops   int
	err     error
}

// NewTrack returns a looping streamer over decoder.
func NewTrack(decoder Decoder) *Track {
	return &Track{decoder: decoder}
}

// Format returns the beep format of the track.
func (t *Track) Format() beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(t.decoder.SampleRate()),
		NumChannels: 2,
		Precision:   2,
	}
}

// Loops returns how many times the track restarted.
func (t *Track) Loops() int {
	return t.loops
}

// Stream fills samples, rewinding the decoder whenever it runs out.
func (t *Track) Stream(samples [][2]float64) (n int, ok bool) {
	if t.err != nil {
		return 0, false
	}

	// Set when the decoder ended with nothing decoded since the last rewind.
	emptyPass := false

	for n < len(samples) {
		if len(t.pending) < 4 {
			data, err := t.decoder.ReadSamples()
			switch {
			case errors.Is(err, playback.ErrEndOfStream):
				if emptyPass {
					t.err = playback.ErrEmptyStream
					return n, n > 0
				}
				if err := t.decoder.Reset(); err != nil {
					t.err = err
					return n, n > 0
				}
				t.loops++
				emptyPass = true

			case playback.IsTransient(err):
				continue

			case err != nil:
				t.err = err
				return n, n > 0

			case len(data) > 0:
				t.pending = data
				emptyPass = false
			}

			continue
		}

		left := int16(binary.LittleEndian.Uint16(t.pending[0:]))
		right := int16(binary.LittleEndian.Uint16(t.pending[2:]))
		samples[n][0] = float64(left) / (1 << 15)
		samples[n][1] = float64(right) / (1 << 15)

		t.pending = t.pending[4:]
		n++
	}

	return n, true
}

// Err returns the error that stopped the track, if any.
func (t *Track) Err() error {
	return t.err
}

// Volume wraps the track in a beep volume control. Volume is in powers
// of two, 0 leaves the level unchanged.
func (t *Track) Volume(volume float64) beep.Streamer {
	return &effects.Volume{
		Streamer: t,
		Base:     2,
		Volume:   volume,
	}
}

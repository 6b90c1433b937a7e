package soundtrack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erparts/tunesca/internal/playback"
)

// chunkDecoder returns its chunks in order, then end of stream.
type chunkDecoder struct {
	chunks   [][]byte
	pos      int
	resets   int
	resetErr error
}

func (d *chunkDecoder) ReadSamples() ([]byte, error) {
	if d.pos >= len(d.chunks) {
		return nil, playback.ErrEndOfStream
	}

	chunk := d.chunks[d.pos]
	d.pos++
	if chunk == nil {
		return nil, &playback.DecodeError{Code: -1}
	}

	return chunk, nil
}

func (d *chunkDecoder) Reset() error {
	d.resets++
	d.pos = 0
	return d.resetErr
}

func (d *chunkDecoder) SampleRate() int {
	return 44100
}

func TestTrackLoopsSamples(t *testing.T) {
	decoder := &chunkDecoder{chunks: [][]byte{
		{0x00, 0x40, 0x00, 0xc0}, // 0.5, -0.5
		nil,
		{0xff, 0x7f, 0x00, 0x80}, // max, min
	}}
	track := NewTrack(decoder)

	samples := make([][2]float64, 5)
	n, ok := track.Stream(samples)
	require.True(t, ok)
	require.Equal(t, 5, n)

	assert.Equal(t, [2]float64{0.5, -0.5}, samples[0])
	assert.InDelta(t, 1.0, samples[1][0], 1e-4)
	assert.Equal(t, -1.0, samples[1][1])
	assert.Equal(t, samples[0], samples[2])
	assert.Equal(t, samples[1], samples[3])
	assert.Equal(t, samples[0], samples[4])
	assert.Equal(t, 2, track.Loops())
	assert.NoError(t, track.Err())
}

func TestTrackStopsOnEmptyFile(t *testing.T) {
	track := NewTrack(&chunkDecoder{})

	n, ok := track.Stream(make([][2]float64, 4))
	assert.Equal(t, 0, n)
	assert.False(t, ok)
	assert.True(t, errors.Is(track.Err(), playback.ErrEmptyStream))
}

func TestTrackStopsWhenRewindFails(t *testing.T) {
	decoder := &chunkDecoder{
		chunks:   [][]byte{{1, 0, 1, 0}},
		resetErr: errors.New("seek failed"),
	}
	track := NewTrack(decoder)

	n, ok := track.Stream(make([][2]float64, 3))
	assert.Equal(t, 1, n)
	assert.True(t, ok)
	assert.EqualError(t, track.Err(), "seek failed")

	n, ok = track.Stream(make([][2]float64, 3))
	assert.Equal(t, 0, n)
	assert.False(t, ok)
}

func TestTrackFormat(t *testing.T) {
	format := NewTrack(&chunkDecoder{}).Format()
	assert.Equal(t, 44100, int(format.SampleRate))
	assert.Equal(t, 2, format.NumChannels)
	assert.Equal(t, 2, format.Precision)
}

func TestTrackVolume(t *testing.T) {
	decoder := &chunkDecoder{chunks: [][]byte{{0x00, 0x40, 0x00, 0xc0}}}

	samples := make([][2]float64, 2)
	n, ok := NewTrack(decoder).Volume(-1).Stream(samples)
	require.True(t, ok)
	require.Equal(t, 2, n)

	assert.InDelta(t, 0.25, samples[0][0], 1e-9)
	assert.InDelta(t, -0.25, samples[0][1], 1e-9)
}

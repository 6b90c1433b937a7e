package playback_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erparts/tunesca/internal/playback"
	"github.com/erparts/tunesca/internal/playback/playbacktest"
)

// collect advances the loop ticks times and returns the pixels of every
// frame produced, converted to RGBA.
func collect(t *testing.T, loop *playback.Loop, conv playback.Converter, ticks int) [][]byte {
	t.Helper()

	var frames [][]byte
	for i := 0; i < ticks; i++ {
		frame, err := loop.Advance()
		require.NoError(t, err)
		require.NotNil(t, frame, "tick %d produced no frame", i+1)

		out, err := conv.Convert(frame)
		require.NoError(t, err)
		frames = append(frames, append([]byte(nil), out.Pix...))
	}

	return frames
}

func TestLoopReplaysStreamAfterEndOfStream(t *testing.T) {
	src := playbacktest.NewRGB24(2, 2, playbacktest.Gradient(2, 2, 4)...)
	loop := playback.NewLoop(src, playback.DefaultDecodeAttempts)
	conv, err := playback.NewSoftwareConverter(2, 2)
	require.NoError(t, err)

	frames := collect(t, loop, conv, 8)

	assert.Equal(t, 1, loop.LoopBacks())
	assert.Equal(t, 1, src.Resets)
	assert.Equal(t, playback.StatePlaying, loop.State())
	for i := 0; i < 4; i++ {
		assert.Equal(t, frames[i], frames[i+4], "frame %d differs after loop-back", i+1)
	}
	assert.NotEqual(t, frames[0], frames[1])
}

func TestLoopRewindsWithinTheSameTick(t *testing.T) {
	src := playbacktest.NewRGB24(2, 2, playbacktest.Gradient(2, 2, 2)...)
	loop := playback.NewLoop(src, 1)

	for i := 0; i < 2; i++ {
		frame, err := loop.Advance()
		require.NoError(t, err)
		require.NotNil(t, frame)
	}

	// The third tick hits the end of the file and must still show the first
	// frame rather than leave the last one on screen.
	frame, err := loop.Advance()
	require.NoError(t, err)
	require.NotNil(t, frame)
	assert.Equal(t, int64(0), frame.PTS())
	assert.Equal(t, 1, loop.LoopBacks())
}

func TestLoopRetriesThroughBufferedDecoder(t *testing.T) {
	src := playbacktest.NewRGB24(2, 2, playbacktest.Gradient(2, 2, 4)...)
	src.Delay = 2
	loop := playback.NewLoop(src, playback.DefaultDecodeAttempts)

	var pts []int64
	for i := 0; i < 8; i++ {
		frame, err := loop.Advance()
		require.NoError(t, err)
		require.NotNil(t, frame)
		pts = append(pts, frame.PTS())
	}

	assert.Equal(t, []int64{0, 1, 2, 3, 0, 1, 2, 3}, pts)
	assert.Equal(t, 1, loop.LoopBacks())
}

func TestLoopSingleAttemptReportsNoFrame(t *testing.T) {
	src := playbacktest.NewRGB24(2, 2, playbacktest.Gradient(2, 2, 2)...)
	src.Delay = 1
	loop := playback.NewLoop(src, 1)

	frame, err := loop.Advance()
	require.NoError(t, err)
	assert.Nil(t, frame)
	assert.Equal(t, playback.StatePlaying, loop.State())

	frame, err = loop.Advance()
	require.NoError(t, err)
	require.NotNil(t, frame)
	assert.Equal(t, int64(0), frame.PTS())
}

func TestLoopSkipsForeignAndCorruptPackets(t *testing.T) {
	frames := playbacktest.Gradient(2, 2, 2)
	src := playbacktest.NewSource(2, 2, playback.FormatRGB24, 6, []playbacktest.Packet{
		{Kind: playbacktest.PacketForeign},
		{Kind: playbacktest.PacketVideo, Pix: frames[0]},
		{Kind: playbacktest.PacketCorrupt},
		{Kind: playbacktest.PacketForeign},
		{Kind: playbacktest.PacketVideo, Pix: frames[1]},
	})
	loop := playback.NewLoop(src, playback.DefaultDecodeAttempts)

	var pts []int64
	for i := 0; i < 4; i++ {
		frame, err := loop.Advance()
		require.NoError(t, err)
		require.NotNil(t, frame)
		pts = append(pts, frame.PTS())
	}

	assert.Equal(t, []int64{0, 1, 0, 1}, pts)
	assert.Equal(t, 2, loop.Skipped())
	assert.Equal(t, 1, loop.LoopBacks())
}

func TestLoopRestartsOnReadFailure(t *testing.T) {
	frames := playbacktest.Gradient(2, 2, 2)
	src := playbacktest.NewSource(2, 2, playback.FormatRGB24, 6, []playbacktest.Packet{
		{Kind: playbacktest.PacketVideo, Pix: frames[0]},
		{Kind: playbacktest.PacketReadError},
		{Kind: playbacktest.PacketVideo, Pix: frames[1]},
	})
	loop := playback.NewLoop(src, playback.DefaultDecodeAttempts)

	frame, err := loop.Advance()
	require.NoError(t, err)
	assert.Equal(t, int64(0), frame.PTS())

	frame, err = loop.Advance()
	require.NoError(t, err)
	require.NotNil(t, frame)
	assert.Equal(t, int64(0), frame.PTS())
	assert.Equal(t, 1, loop.LoopBacks())
}

func TestLoopEmptyStreamIsFatal(t *testing.T) {
	src := playbacktest.NewSource(2, 2, playback.FormatRGB24, 6, []playbacktest.Packet{
		{Kind: playbacktest.PacketForeign},
	})
	loop := playback.NewLoop(src, playback.DefaultDecodeAttempts)

	_, err := loop.Advance()
	require.Error(t, err)
	assert.True(t, errors.Is(err, playback.ErrEmptyStream))
	assert.True(t, playback.IsFatal(err))
}

func TestLoopEmptyStreamIsFatalAcrossTicks(t *testing.T) {
	packets := make([]playbacktest.Packet, playback.DefaultDecodeAttempts+2)
	for i := range packets {
		packets[i] = playbacktest.Packet{Kind: playbacktest.PacketForeign}
	}
	src := playbacktest.NewSource(2, 2, playback.FormatRGB24, 6, packets)
	loop := playback.NewLoop(src, playback.DefaultDecodeAttempts)

	var err error
	ticks := 0
	for ; ticks < 10 && err == nil; ticks++ {
		var frame playback.Decoded
		frame, err = loop.Advance()
		assert.Nil(t, frame)
	}

	require.Error(t, err)
	assert.True(t, errors.Is(err, playback.ErrEmptyStream))
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 1, loop.LoopBacks())
	assert.Equal(t, 2*len(packets)+2, src.Steps)
}

func TestLoopFrameClearsEmptyStreamGuard(t *testing.T) {
	frames := playbacktest.Gradient(2, 2, 1)
	packets := []playbacktest.Packet{{Kind: playbacktest.PacketVideo, Pix: frames[0]}}
	for i := 0; i < playback.DefaultDecodeAttempts; i++ {
		packets = append(packets, playbacktest.Packet{Kind: playbacktest.PacketCorrupt})
	}
	src := playbacktest.NewSource(2, 2, playback.FormatRGB24, 6, packets)
	loop := playback.NewLoop(src, playback.DefaultDecodeAttempts)

	shown := 0
	for i := 0; i < 20; i++ {
		frame, err := loop.Advance()
		require.NoError(t, err, "tick %d", i+1)
		if frame != nil {
			shown++
		}
	}

	assert.Greater(t, shown, 1)
	assert.Greater(t, loop.LoopBacks(), 1)
}

func TestLoopReadFailureAfterRestartIsFatal(t *testing.T) {
	src := playbacktest.NewSource(2, 2, playback.FormatRGB24, 6, []playbacktest.Packet{
		{Kind: playbacktest.PacketReadError},
	})
	loop := playback.NewLoop(src, playback.DefaultDecodeAttempts)

	_, err := loop.Advance()
	require.Error(t, err)
	assert.True(t, errors.Is(err, playback.ErrDemuxRead))
	assert.True(t, playback.IsFatal(err))
	assert.Equal(t, 1, loop.LoopBacks())
}

func TestLoopOnLoopCallback(t *testing.T) {
	src := playbacktest.NewRGB24(2, 2, playbacktest.Gradient(2, 2, 1)...)
	loop := playback.NewLoop(src, 0)

	var counts []int
	loop.OnLoop(func(n int) { counts = append(counts, n) })

	for i := 0; i < 3; i++ {
		_, err := loop.Advance()
		require.NoError(t, err)
	}

	assert.Equal(t, []int{1, 2}, counts)
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
		fatal     bool
	}{
		{name: "nil", err: nil},
		{name: "decode", err: &playback.DecodeError{Code: -22}, transient: true},
		{name: "end_of_stream", err: playback.ErrEndOfStream},
		{name: "no_video", err: playback.ErrNoVideoStream, fatal: true},
		{name: "wrapped_geometry", err: errors.Join(errors.New("scale"), playback.ErrGeometryMismatch), fatal: true},
		{name: "resource", err: playback.ErrResourceExhausted, fatal: true},
		{name: "read", err: playback.ErrDemuxRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.transient, playback.IsTransient(tt.err))
			assert.Equal(t, tt.fatal, playback.IsFatal(tt.err))
		})
	}
}

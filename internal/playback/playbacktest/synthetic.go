// Package playbacktest provides a synthetic decode source for tests that
// need a video stream without FFmpeg or a file on disk.
package playbacktest

import (
	"github.com/erparts/tunesca/internal/playback"
)

// PacketKind is the kind of a synthetic packet.
type PacketKind int

const (
	// PacketVideo carries one frame of the selected stream.
	PacketVideo PacketKind = iota
	// PacketForeign belongs to another stream and is skipped.
	PacketForeign
	// PacketCorrupt belongs to the selected stream but fails to decode.
	PacketCorrupt
	// PacketReadError makes the read itself fail.
	PacketReadError
)

// Packet is one demuxed unit of the synthetic container.
type Packet struct {
	Kind PacketKind
	// Pix is the frame carried by a video packet, laid out as the
	// stream's format with the stream's stride.
	Pix []byte
}

// Frame is a decoded synthetic frame.
type Frame struct {
	width  int
	height int
	format playback.PixelFormat
	stride int
	pix    []byte
	pts    int64
}

func (f *Frame) Width() int                   { return f.width }
func (f *Frame) Height() int                  { return f.height }
func (f *Frame) Format() playback.PixelFormat { return f.format }
func (f *Frame) PTS() int64                   { return f.pts }

func (f *Frame) Plane(i int) ([]byte, int) {
	if i != 0 {
		return nil, 0
	}

	return f.pix, f.stride
}

// Source is an in-memory playback.Source. Its decoder can be configured to
// hold frames back like a real codec with reordering delay.
type Source struct {
	width   int
	height  int
	format  playback.PixelFormat
	stride  int
	packets []Packet

	// Delay is the number of frames the decoder buffers before emitting one.
	Delay int

	pos      int
	pts      int64
	queue    []*Frame
	draining bool

	// Steps counts DecodeStep calls.
	Steps int
	// Resets counts Reset calls.
	Resets int
}

// NewSource returns a source of the given geometry over packets.
func NewSource(width, height int, format playback.PixelFormat, stride int, packets []Packet) *Source {
	return &Source{
		width:   width,
		height:  height,
		format:  format,
		stride:  stride,
		packets: packets,
	}
}

// NewRGB24 returns a source with one video packet per frame in pixels.
// Every frame is width*height*3 bytes without row padding.
func NewRGB24(width, height int, frames ...[]byte) *Source {
	packets := make([]Packet, 0, len(frames))
	for _, pix := range frames {
		packets = append(packets, Packet{Kind: PacketVideo, Pix: pix})
	}

	return NewSource(width, height, playback.FormatRGB24, width*3, packets)
}

// Gradient returns count distinct RGB24 frames of the given size.
func Gradient(width, height, count int) [][]byte {
	frames := make([][]byte, count)
	for i := range frames {
		pix := make([]byte, width*height*3)
		for j := range pix {
			pix[j] = byte(i*40 + j*7)
		}
		frames[i] = pix
	}

	return frames
}

// Geometry returns the frame size of the stream.
func (s *Source) Geometry() (int, int) {
	return s.width, s.height
}

// DecodeStep consumes at most one packet.
func (s *Source) DecodeStep() (playback.Decoded, error) {
	s.Steps++

	if s.draining || s.pos >= len(s.packets) {
		s.draining = true
		if len(s.queue) == 0 {
			return nil, playback.ErrEndOfStream
		}

		return s.pop(), nil
	}

	packet := s.packets[s.pos]
	s.pos++

	switch packet.Kind {
	case PacketForeign:
		return nil, nil
	case PacketCorrupt:
		return nil, &playback.DecodeError{Code: -1094995529}
	case PacketReadError:
		return nil, playback.ErrDemuxRead
	}

	s.queue = append(s.queue, &Frame{
		width:  s.width,
		height: s.height,
		format: s.format,
		stride: s.stride,
		pix:    packet.Pix,
		pts:    s.pts,
	})
	s.pts++

	if len(s.queue) <= s.Delay {
		return nil, nil
	}

	return s.pop(), nil
}

// Reset rewinds to the first packet and drops buffered frames.
func (s *Source) Reset() error {
	s.Resets++
	s.pos = 0
	s.pts = 0
	s.queue = s.queue[:0]
	s.draining = false

	return nil
}

func (s *Source) pop() *Frame {
	frame := s.queue[0]
	s.queue = s.queue[1:]

	return frame
}

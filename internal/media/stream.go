package media

// #cgo pkg-config: libavutil libavformat libavcodec
// #include <libavcodec/avcodec.h>
// #include <libavformat/avformat.h>
import "C"

import (
	"errors"
	"fmt"

	"github.com/erparts/tunesca/internal/playback"
)

// StreamType is a type of a media stream.
type StreamType int

const (
	// StreamVideo denotes the stream keeping video frames.
	StreamVideo StreamType = C.AVMEDIA_TYPE_VIDEO
	// StreamAudio denotes the stream keeping audio frames.
	StreamAudio StreamType = C.AVMEDIA_TYPE_AUDIO
)

// String returns the string representation of
// stream type identifier.
func (streamType StreamType) String() string {
	switch streamType {
	case StreamVideo:
		return "video"

	case StreamAudio:
		return "audio"

	default:
		return ""
	}
}

// baseStream decodes the packets of one selected stream of a container.
type baseStream struct {
	media    *Media
	inner    *C.AVStream
	codec    *C.AVCodec
	codecCtx *C.AVCodecContext
	frame    *C.AVFrame

	// held means media.packet was refused by the decoder and must be sent
	// again before reading a new one.
	held bool
	// draining means the demuxer is exhausted and the decoder is being
	// flushed of the frames it still buffers.
	draining bool
}

// Index returns the index of the stream.
func (s *baseStream) Index() int {
	return int(s.inner.index)
}

// CodecName returns the name of the codec that was used for encoding the stream.
func (s *baseStream) CodecName() string {
	if s.codec.name == nil {
		return ""
	}

	return C.GoString(s.codec.name)
}

// TimeBase the numerator and the denominator of the stream time base factor fraction.
func (s *baseStream) TimeBase() (int, int) {
	return int(s.inner.time_base.num),
		int(s.inner.time_base.den)
}

// open opens the stream for decoding.
func (s *baseStream) open() error {
	s.codecCtx = C.avcodec_alloc_context3(s.codec)
	if s.codecCtx == nil {
		return fmt.Errorf("%w: couldn't open a codec context", playback.ErrResourceExhausted)
	}

	if r := C.avcodec_parameters_to_context(s.codecCtx, s.inner.codecpar); r < 0 {
		return fmt.Errorf("%w: %d: couldn't send codec parameters to the context", playback.ErrDecoderInit, r)
	}

	if r := C.avcodec_open2(s.codecCtx, s.codec, nil); r < 0 {
		return fmt.Errorf("%w: %d: couldn't open the codec context", playback.ErrDecoderInit, r)
	}

	s.frame = C.av_frame_alloc()
	if s.frame == nil {
		return fmt.Errorf("%w: couldn't allocate a new frame", playback.ErrResourceExhausted)
	}

	return nil
}

// step reads at most one packet and tries to receive one frame into
// s.frame. It reports whether a frame was received.
func (s *baseStream) step() (bool, error) {
	if s.draining {
		return s.drain()
	}

	if !s.held {
		index, err := s.media.readPacket()
		switch {
		case errors.Is(err, playback.ErrEndOfStream):
			s.draining = true
			// A null packet puts the decoder in draining mode.
			C.avcodec_send_packet(s.codecCtx, nil)
			return s.drain()

		case err != nil:
			return false, err

		case index < 0:
			return false, nil

		case index != s.Index():
			s.media.unrefPacket()
			return false, nil
		}
	}

	r := C.avcodec_send_packet(s.codecCtx, s.media.packet)
	switch {
	case r == errorAgain:
		// The decoder has output pending; hand out a frame and resend later.
		s.held = true

	case r < 0:
		s.held = false
		s.media.unrefPacket()
		return false, &playback.DecodeError{
			Code: int(r),
			Err:  errors.New("couldn't send the packet to the codec context"),
		}

	default:
		s.held = false
		s.media.unrefPacket()
	}

	r = C.avcodec_receive_frame(s.codecCtx, s.frame)
	switch {
	case r == errorAgain:
		return false, nil

	case r < 0:
		return false, &playback.DecodeError{
			Code: int(r),
			Err:  errors.New("couldn't receive the frame from the codec context"),
		}
	}

	return true, nil
}

// drain receives one of the frames left in the decoder after the end of
// the input.
func (s *baseStream) drain() (bool, error) {
	if r := C.avcodec_receive_frame(s.codecCtx, s.frame); r < 0 {
		return false, playback.ErrEndOfStream
	}

	return true, nil
}

// rewind seeks the container back to the start of the stream and
// discards everything buffered in the decoder.
func (s *baseStream) rewind() error {
	if s.held {
		s.media.unrefPacket()
		s.held = false
	}

	r := C.av_seek_frame(s.media.ctx, s.inner.index, 0, C.AVSEEK_FLAG_BACKWARD)
	if r < 0 {
		return fmt.Errorf("%w: %d: couldn't rewind the stream", playback.ErrDemux, r)
	}

	C.avcodec_flush_buffers(s.codecCtx)
	s.draining = false

	return nil
}

// close closes the stream for decoding.
func (s *baseStream) close() {
	if s.frame != nil {
		C.av_frame_free(&s.frame)
		s.frame = nil
	}

	if s.codecCtx != nil {
		C.avcodec_free_context(&s.codecCtx)
		s.codecCtx = nil
	}
}

package media

// #cgo pkg-config: libavformat libavcodec libavutil libswresample
// #include <libavcodec/avcodec.h>
// #include <libavformat/avformat.h>
// #include <libavutil/avutil.h>
// #include <libswresample/swresample.h>
// static AVChannelLayout stereo = AV_CHANNEL_LAYOUT_STEREO;
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/erparts/tunesca/internal/playback"
)

const (
	// StandardChannelCount is used for
	// audio conversion while decoding
	// audio frames.
	StandardChannelCount = 2

	// bytesPerSample is the size of one interleaved S16 stereo sample.
	bytesPerSample = StandardChannelCount * 2
)

// AudioSource decodes the first audio stream of a media file to
// interleaved signed 16-bit stereo samples.
type AudioSource struct {
	baseStream
	swrCtx     *C.SwrContext
	buffer     *C.uint8_t
	bufferSize C.int
	samples    []byte
}

// OpenAudio opens filename and prepares its first audio stream for decoding.
func OpenAudio(filename string) (*AudioSource, error) {
	media, err := openMedia(filename)
	if err != nil {
		return nil, err
	}

	inner, codec, err := media.findStream(StreamAudio)
	if err != nil {
		media.Close()
		return nil, err
	}

	s := &AudioSource{
		baseStream: baseStream{
			media: media,
			inner: inner,
			codec: codec,
		},
	}

	if err := s.open(); err != nil {
		s.Close()
		return nil, err
	}

	C.swr_alloc_set_opts2(&s.swrCtx,
		&C.stereo,
		C.AV_SAMPLE_FMT_S16,
		s.codecCtx.sample_rate,
		&s.codecCtx.ch_layout,
		s.codecCtx.sample_fmt,
		s.codecCtx.sample_rate,
		0,
		nil)

	if s.swrCtx == nil {
		s.Close()
		return nil, fmt.Errorf("%w: couldn't allocate an SWR context", playback.ErrResourceExhausted)
	}

	if r := C.swr_init(s.swrCtx); r < 0 {
		s.Close()
		return nil, fmt.Errorf("%w: %d: couldn't initialize the SWR context", playback.ErrDecoderInit, r)
	}

	logrus.WithFields(logrus.Fields{
		"function":    "OpenAudio",
		"file":        filename,
		"codec":       s.CodecName(),
		"sample_rate": s.SampleRate(),
	}).Info("Audio stream opened")

	return s, nil
}

// SampleRate returns the sample rate of the audio stream.
func (s *AudioSource) SampleRate() int {
	return int(s.codecCtx.sample_rate)
}

// ReadSamples decodes at most one packet and returns its samples as
// interleaved little-endian S16 stereo. The slice is reused by the next call.
// It returns (nil, nil) when the decoder produced nothing yet and
// playback.ErrEndOfStream once the file is exhausted.
func (s *AudioSource) ReadSamples() ([]byte, error) {
	ok, err := s.step()
	if err != nil || !ok {
		return nil, err
	}

	maxBufferSize := C.av_samples_get_buffer_size(
		nil, StandardChannelCount,
		s.frame.nb_samples,
		C.AV_SAMPLE_FMT_S16, 1)

	if maxBufferSize < 0 {
		return nil, &playback.DecodeError{Code: int(maxBufferSize)}
	}

	if maxBufferSize > s.bufferSize {
		C.av_free(unsafe.Pointer(s.buffer))
		s.buffer = nil
	}

	if s.buffer == nil {
		s.buffer = (*C.uint8_t)(unsafe.Pointer(C.av_malloc(C.size_t(maxBufferSize))))
		s.bufferSize = maxBufferSize

		if s.buffer == nil {
			return nil, fmt.Errorf("%w: couldn't allocate an AV buffer", playback.ErrResourceExhausted)
		}
	}

	gotSamples := C.swr_convert(s.swrCtx,
		&s.buffer, s.frame.nb_samples,
		&s.frame.data[0], s.frame.nb_samples)

	if gotSamples < 0 {
		return nil, &playback.DecodeError{Code: int(gotSamples)}
	}

	n := int(gotSamples) * bytesPerSample
	if cap(s.samples) < n {
		s.samples = make([]byte, n)
	}
	s.samples = s.samples[:n]
	copy(s.samples, unsafe.Slice((*byte)(unsafe.Pointer(s.buffer)), n))

	return s.samples, nil
}

// Reset rewinds the audio stream to its start.
func (s *AudioSource) Reset() error {
	return s.rewind()
}

// Close closes the audio stream and its container.
func (s *AudioSource) Close() error {
	s.close()

	if s.buffer != nil {
		C.av_free(unsafe.Pointer(s.buffer))
		s.buffer = nil
	}

	if s.swrCtx != nil {
		C.swr_free(&s.swrCtx)
		s.swrCtx = nil
	}

	if s.media != nil {
		s.media.Close()
		s.media = nil
	}

	return nil
}

package media

// #cgo pkg-config: libavutil libavformat libavcodec
// #include <libavcodec/avcodec.h>
// #include <libavformat/avformat.h>
// #include <libavutil/pixdesc.h>
import "C"

import (
	"github.com/sirupsen/logrus"

	"github.com/erparts/tunesca/internal/playback"
)

// VideoSource decodes the first video stream of a media file one packet at
// a time. It implements playback.Source.
type VideoSource struct {
	baseStream
	current VideoFrame
}

// OpenVideo opens filename and prepares its first video stream for decoding.
func OpenVideo(filename string) (*VideoSource, error) {
	media, err := openMedia(filename)
	if err != nil {
		return nil, err
	}

	inner, codec, err := media.findStream(StreamVideo)
	if err != nil {
		media.Close()
		return nil, err
	}

	s := &VideoSource{
		baseStream: baseStream{
			media: media,
			inner: inner,
			codec: codec,
		},
	}
	s.current.stream = &s.baseStream

	if err := s.open(); err != nil {
		s.Close()
		return nil, err
	}
	s.current.frame = s.frame

	num, den := s.FrameRate()
	logrus.WithFields(logrus.Fields{
		"function":     "OpenVideo",
		"file":         filename,
		"codec":        s.CodecName(),
		"width":        s.Width(),
		"height":       s.Height(),
		"pixel_format": s.PixelFormatName(),
		"frame_rate":   float64(num) / float64(max(den, 1)),
		"duration":     media.Duration().String(),
	}).Info("Video stream opened")

	return s, nil
}

// Width returns the width of the video stream frame.
func (s *VideoSource) Width() int {
	return int(s.codecCtx.width)
}

// Height returns the height of the video stream frame.
func (s *VideoSource) Height() int {
	return int(s.codecCtx.height)
}

// Geometry returns the fixed frame size of the stream.
func (s *VideoSource) Geometry() (int, int) {
	return s.Width(), s.Height()
}

// FrameRate returns the frame rate of the stream as a fraction with a numerator and a denominator.
func (s *VideoSource) FrameRate() (int, int) {
	return int(s.inner.r_frame_rate.num),
		int(s.inner.r_frame_rate.den)
}

// PixelFormatName returns the FFmpeg name of the decoder's output format.
func (s *VideoSource) PixelFormatName() string {
	name := C.av_get_pix_fmt_name(s.codecCtx.pix_fmt)
	if name == nil {
		return ""
	}

	return C.GoString(name)
}

// DecodeStep reads one packet and returns the decoded frame if the decoder
// emitted one. See playback.Source.
func (s *VideoSource) DecodeStep() (playback.Decoded, error) {
	ok, err := s.step()
	if err != nil || !ok {
		return nil, err
	}

	s.current.pts = int64(s.frame.best_effort_timestamp)
	return &s.current, nil
}

// Reset rewinds the stream to its first frame.
func (s *VideoSource) Reset() error {
	logrus.WithFields(logrus.Fields{
		"function": "VideoSource.Reset",
		"offset":   s.current.PresentationOffset().String(),
	}).Debug("Rewinding video stream")

	return s.rewind()
}

// Close releases the decoder and the container.
func (s *VideoSource) Close() error {
	s.close()

	if s.media != nil {
		s.media.Close()
		s.media = nil
	}

	return nil
}

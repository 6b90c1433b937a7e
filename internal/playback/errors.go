package playback

import (
	"errors"
	"fmt"
)

var (
	// ErrNoVideoStream is returned when the container holds no decodable video stream.
	ErrNoVideoStream = errors.New("no video stream found")
	// ErrDemux is returned when the container can't be opened or probed.
	ErrDemux = errors.New("couldn't open the media container")
	// ErrDecoderInit is returned when no decoder is available or it can't be opened.
	ErrDecoderInit = errors.New("couldn't initialize the decoder")
	// ErrDemuxRead is returned when reading a packet fails for a reason
	// other than the end of the file.
	ErrDemuxRead = errors.New("couldn't read a packet")
	// ErrEndOfStream signals that the source is exhausted. It is a control
	// flow signal rather than a failure.
	ErrEndOfStream = errors.New("end of stream")
	// ErrGeometryMismatch is returned when a decoded frame doesn't match the
	// geometry or pixel format the converter was built for.
	ErrGeometryMismatch = errors.New("frame geometry doesn't match the conversion context")
	// ErrResourceExhausted is returned when a buffer or texture can't be allocated.
	ErrResourceExhausted = errors.New("couldn't allocate a resource")
	// ErrEmptyStream is returned when the source reaches its end twice in a
	// row without producing a single frame.
	ErrEmptyStream = errors.New("stream produced no frames")
)

// DecodeError is an isolated failure to decode one packet. The packet is
// skipped and playback continues with the next one.
type DecodeError struct {
	Code int
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%d: couldn't decode the packet", e.Code)
	}

	return fmt.Sprintf("%d: couldn't decode the packet: %v", e.Code, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err only affects a single packet.
func IsTransient(err error) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}

// IsFatal reports whether err is a configuration or resource error that
// makes the presentation contract impossible to satisfy.
func IsFatal(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrNoVideoStream),
		errors.Is(err, ErrDemux),
		errors.Is(err, ErrDecoderInit),
		errors.Is(err, ErrGeometryMismatch),
		errors.Is(err, ErrResourceExhausted),
		errors.Is(err, ErrEmptyStream):
		return true
	}

	return false
}

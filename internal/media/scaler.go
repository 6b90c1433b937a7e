package media

// #cgo pkg-config: libavutil libavcodec libswscale
// #include <libavcodec/avcodec.h>
// #include <libavutil/avutil.h>
// #include <libavutil/imgutils.h>
// #include <libswscale/swscale.h>
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/erparts/tunesca/internal/playback"
)

// Scaler converts decoded frames to RGBA at their native resolution with
// libswscale. The conversion context and both buffers are allocated once.
type Scaler struct {
	swsCtx    *C.struct_SwsContext
	rgbaFrame *C.AVFrame
	bufSize   C.int
	width     C.int
	height    C.int
	format    C.int
	out       *playback.Converted
}

// NewScaler returns a converter for the frames of source.
func NewScaler(source *VideoSource) (*Scaler, error) {
	s := &Scaler{
		width:  source.codecCtx.width,
		height: source.codecCtx.height,
		format: C.int(source.codecCtx.pix_fmt),
	}

	if s.width <= 0 || s.height <= 0 {
		return nil, fmt.Errorf("%w: invalid video size %dx%d", playback.ErrDecoderInit, s.width, s.height)
	}

	s.rgbaFrame = C.av_frame_alloc()
	if s.rgbaFrame == nil {
		return nil, fmt.Errorf("%w: couldn't allocate a new RGBA frame", playback.ErrResourceExhausted)
	}

	s.bufSize = C.av_image_get_buffer_size(C.AV_PIX_FMT_RGBA, s.width, s.height, 1)
	if s.bufSize < 0 {
		s.Close()
		return nil, fmt.Errorf("%w: %d: couldn't get the buffer size", playback.ErrResourceExhausted, s.bufSize)
	}

	buf := (*C.uint8_t)(unsafe.Pointer(C.av_malloc(C.size_t(s.bufSize))))
	if buf == nil {
		s.Close()
		return nil, fmt.Errorf("%w: couldn't allocate an AV buffer", playback.ErrResourceExhausted)
	}

	status := C.av_image_fill_arrays(&s.rgbaFrame.data[0],
		&s.rgbaFrame.linesize[0], buf, C.AV_PIX_FMT_RGBA,
		s.width, s.height, 1)
	if status < 0 {
		C.av_free(unsafe.Pointer(buf))
		s.Close()
		return nil, fmt.Errorf("%w: %d: couldn't fill the image arrays", playback.ErrResourceExhausted, status)
	}

	// Some decoders only learn their output format from the first frame.
	if s.format >= 0 {
		if err := s.initContext(); err != nil {
			s.Close()
			return nil, err
		}
	}

	s.out = playback.NewConverted(int(s.width), int(s.height))
	return s, nil
}

func (s *Scaler) initContext() error {
	s.swsCtx = C.sws_getContext(s.width, s.height, C.enum_AVPixelFormat(s.format),
		s.width, s.height, C.AV_PIX_FMT_RGBA,
		C.SWS_BILINEAR, nil, nil, nil)
	if s.swsCtx == nil {
		return fmt.Errorf("%w: couldn't create an SWS context for %s",
			playback.ErrGeometryMismatch, pixelFormat(s.format))
	}

	return nil
}

// Convert scales frame into the reusable RGBA buffer.
func (s *Scaler) Convert(frame playback.Decoded) (*playback.Converted, error) {
	vf, ok := frame.(*VideoFrame)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not an FFmpeg frame", playback.ErrGeometryMismatch, frame)
	}

	if s.swsCtx == nil {
		s.format = vf.frame.format
		if err := s.initContext(); err != nil {
			return nil, err
		}
	}

	if vf.frame.width != s.width || vf.frame.height != s.height || vf.frame.format != s.format {
		return nil, fmt.Errorf("%w: got %dx%d format %d, want %dx%d format %d",
			playback.ErrGeometryMismatch,
			vf.frame.width, vf.frame.height, vf.frame.format,
			s.width, s.height, s.format)
	}

	C.sws_scale(s.swsCtx, &vf.frame.data[0],
		&vf.frame.linesize[0], 0, s.height,
		&s.rgbaFrame.data[0],
		&s.rgbaFrame.linesize[0])

	copy(s.out.Pix, unsafe.Slice((*byte)(unsafe.Pointer(s.rgbaFrame.data[0])), int(s.bufSize)))
	s.out.PTS = vf.PTS()

	return s.out, nil
}

// Close frees the conversion context and the RGBA buffer.
func (s *Scaler) Close() error {
	if s.rgbaFrame != nil {
		C.av_free(unsafe.Pointer(s.rgbaFrame.data[0]))
		C.av_frame_free(&s.rgbaFrame)
		s.rgbaFrame = nil
	}

	if s.swsCtx != nil {
		C.sws_freeContext(s.swsCtx)
		s.swsCtx = nil
	}

	return nil
}

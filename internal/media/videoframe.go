package media

// #cgo pkg-config: libavutil libavcodec
// #include <libavcodec/avcodec.h>
// #include <libavutil/pixfmt.h>
import "C"

import (
	"unsafe"

	"github.com/erparts/tunesca/internal/playback"
)

// VideoFrame is the decoder's current output frame in its native pixel
// format. It is overwritten by the next decode step.
type VideoFrame struct {
	baseFrame
	frame *C.AVFrame
}

// Width returns the width of the frame.
func (f *VideoFrame) Width() int {
	return int(f.frame.width)
}

// Height returns the height of the frame.
func (f *VideoFrame) Height() int {
	return int(f.frame.height)
}

// PTS returns the best effort presentation timestamp of the frame.
func (f *VideoFrame) PTS() int64 {
	return f.pts
}

// Format maps the native FFmpeg pixel format to a playback.PixelFormat.
func (f *VideoFrame) Format() playback.PixelFormat {
	return pixelFormat(f.frame.format)
}

// Plane returns plane i of the frame and its line size. Planes of formats
// unknown to playback and bottom-up planes are not exposed.
func (f *VideoFrame) Plane(i int) ([]byte, int) {
	if i < 0 || i >= 3 || f.frame.data[i] == nil {
		return nil, 0
	}

	stride := int(f.frame.linesize[i])
	rows, rowBytes := f.Height(), 0
	switch f.Format() {
	case playback.FormatYUV420P:
		rowBytes = f.Width()
		if i > 0 {
			rows, rowBytes = (f.Height()+1)/2, (f.Width()+1)/2
		}
	case playback.FormatRGB24:
		rowBytes = f.Width() * 3
	case playback.FormatRGBA:
		rowBytes = f.Width() * 4
	case playback.FormatGray8:
		rowBytes = f.Width()
	}

	if rowBytes == 0 || rows == 0 || stride < rowBytes {
		return nil, 0
	}

	size := stride*(rows-1) + rowBytes
	return unsafe.Slice((*byte)(unsafe.Pointer(f.frame.data[i])), size), stride
}

func pixelFormat(format C.int) playback.PixelFormat {
	switch format {
	case C.AV_PIX_FMT_YUV420P, C.AV_PIX_FMT_YUVJ420P:
		return playback.FormatYUV420P
	case C.AV_PIX_FMT_RGB24:
		return playback.FormatRGB24
	case C.AV_PIX_FMT_RGBA:
		return playback.FormatRGBA
	case C.AV_PIX_FMT_GRAY8:
		return playback.FormatGray8
	default:
		return playback.FormatUnknown
	}
}

// Package media binds libavformat, libavcodec, libswscale and libswresample
// to decode the menu's background clip and its music.
package media

// #cgo pkg-config: libavformat libavcodec libavutil
// #include <errno.h>
// #include <stdlib.h>
// #include <libavcodec/avcodec.h>
// #include <libavformat/avformat.h>
import "C"

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/erparts/tunesca/internal/playback"
)

const (
	// errorAgain is AVERROR(EAGAIN).
	errorAgain C.int = -C.EAGAIN
	// errorEOF is AVERROR_EOF, FFERRTAG('E','O','F',' ').
	errorEOF C.int = -0x20464F45
)

// Media is an open media container with a single reusable packet.
type Media struct {
	ctx      *C.AVFormatContext
	packet   *C.AVPacket
	filename string
}

// openMedia opens and probes the specified media file.
func openMedia(filename string) (*Media, error) {
	media := &Media{
		ctx:      C.avformat_alloc_context(),
		filename: filename,
	}

	if media.ctx == nil {
		return nil, fmt.Errorf("%w: couldn't create a new media context", playback.ErrResourceExhausted)
	}

	fname := C.CString(filename)
	defer C.free(unsafe.Pointer(fname))

	// avformat_open_input frees the context on failure.
	if r := C.avformat_open_input(&media.ctx, fname, nil, nil); r < 0 {
		return nil, fmt.Errorf("%w: %d: couldn't open file %s", playback.ErrDemux, r, filename)
	}

	if r := C.avformat_find_stream_info(media.ctx, nil); r < 0 {
		media.Close()
		return nil, fmt.Errorf("%w: %d: couldn't find stream information", playback.ErrDemux, r)
	}

	media.packet = C.av_packet_alloc()
	if media.packet == nil {
		media.Close()
		return nil, fmt.Errorf("%w: couldn't allocate a packet", playback.ErrResourceExhausted)
	}

	logrus.WithFields(logrus.Fields{
		"function": "openMedia",
		"file":     filename,
		"format":   media.FormatName(),
		"streams":  int(media.ctx.nb_streams),
	}).Debug("Media container opened")

	return media, nil
}

// FormatName returns the name of the media format.
func (m *Media) FormatName() string {
	if m.ctx.iformat == nil || m.ctx.iformat.name == nil {
		return ""
	}

	return C.GoString(m.ctx.iformat.name)
}

// Duration returns the overall duration of the media file.
func (m *Media) Duration() time.Duration {
	if m.ctx.duration <= 0 {
		return 0
	}

	return time.Duration(m.ctx.duration) * time.Second / time.Duration(C.AV_TIME_BASE)
}

// findStream returns the first stream of the given type together with its
// decoder.
func (m *Media) findStream(kind StreamType) (*C.AVStream, *C.AVCodec, error) {
	innerStreams := unsafe.Slice(m.ctx.streams, m.ctx.nb_streams)

	for _, innerStream := range innerStreams {
		if StreamType(innerStream.codecpar.codec_type) != kind {
			continue
		}

		codec := C.avcodec_find_decoder(innerStream.codecpar.codec_id)
		if codec == nil {
			return nil, nil, fmt.Errorf("%w: no decoder for the %s stream #%d",
				playback.ErrDecoderInit, kind, int(innerStream.index))
		}

		return innerStream, codec, nil
	}

	if kind == StreamVideo {
		return nil, nil, fmt.Errorf("%w in %s", playback.ErrNoVideoStream, m.filename)
	}

	return nil, nil, fmt.Errorf("%w: no %s stream in %s", playback.ErrDemux, kind, m.filename)
}

// readPacket reads the next packet of any stream into m.packet and returns
// its stream index. A negative index with a nil error means the demuxer
// asked to try again.
func (m *Media) readPacket() (int, error) {
	r := C.av_read_frame(m.ctx, m.packet)
	switch {
	case r == errorAgain:
		return -1, nil
	case r == errorEOF:
		return -1, playback.ErrEndOfStream
	case r < 0:
		return -1, fmt.Errorf("%w: %d", playback.ErrDemuxRead, r)
	}

	return int(m.packet.stream_index), nil
}

// unrefPacket releases the payload of the current packet.
func (m *Media) unrefPacket() {
	C.av_packet_unref(m.packet)
}

// Close closes the media container.
func (m *Media) Close() {
	if m.packet != nil {
		C.av_packet_free(&m.packet)
		m.packet = nil
	}

	if m.ctx != nil {
		C.avformat_close_input(&m.ctx)
		m.ctx = nil
	}
}

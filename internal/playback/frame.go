// Package playback holds the decode pipeline contracts shared by the FFmpeg
// binding and the synthetic test streams, the loop controller that turns a
// finite clip into an endless frame sequence, and a pure Go pixel converter.
package playback

// PixelFormat is the layout of a decoded frame.
type PixelFormat int

const (
	// FormatUnknown is any layout the software converter can't read.
	FormatUnknown PixelFormat = iota
	// FormatYUV420P is planar Y, Cb, Cr with both chroma planes subsampled 2x2.
	FormatYUV420P
	// FormatRGB24 is packed 8-bit R, G, B.
	FormatRGB24
	// FormatRGBA is packed 8-bit R, G, B, A.
	FormatRGBA
	// FormatGray8 is a single 8-bit luma plane.
	FormatGray8
)

// String returns the string representation of the pixel format.
func (f PixelFormat) String() string {
	switch f {
	case FormatYUV420P:
		return "yuv420p"
	case FormatRGB24:
		return "rgb24"
	case FormatRGBA:
		return "rgba"
	case FormatGray8:
		return "gray"
	default:
		return "unknown"
	}
}

// Decoded is a frame in the decoder's native layout. It is owned by the
// source and only valid until the next DecodeStep or Reset.
type Decoded interface {
	// Width returns the width of the frame in pixels.
	Width() int
	// Height returns the height of the frame in pixels.
	Height() int
	// Format returns the native pixel layout.
	Format() PixelFormat
	// Plane returns the bytes of plane i and its line stride.
	// A nil slice means the plane doesn't exist.
	Plane(i int) ([]byte, int)
	// PTS returns the presentation timestamp in stream time base units.
	PTS() int64
}

// Source is a pull based decoder over a single selected video stream.
type Source interface {
	// DecodeStep reads at most one packet. It returns a frame when the
	// decoder emitted one, (nil, nil) when the caller should try again,
	// ErrEndOfStream when the input is exhausted, a *DecodeError for a bad
	// packet and an error wrapping ErrDemuxRead when the read itself failed.
	DecodeStep() (Decoded, error)
	// Reset rewinds the demuxer to the earliest position and discards any
	// frames buffered inside the decoder.
	Reset() error
	// Geometry returns the fixed frame size of the stream.
	Geometry() (width, height int)
}

// Converted is an RGBA frame at the stream's native resolution.
// Converters reuse the same value and pixel buffer for every frame.
type Converted struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
	PTS    int64
}

// Converter turns decoded frames into RGBA frames.
type Converter interface {
	Convert(frame Decoded) (*Converted, error)
}

// NewConverted allocates an RGBA frame buffer of the given size.
func NewConverted(width, height int) *Converted {
	return &Converted{
		Width:  width,
		Height: height,
		Stride: width * 4,
		Pix:    make([]byte, width*height*4),
	}
}

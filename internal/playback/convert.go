package playback

import (
	"fmt"
	"image/color"
)

// SoftwareConverter converts frames to RGBA in pure Go. It supports the
// formats listed in PixelFormat and writes into a single buffer allocated
// when the converter is created.
type SoftwareConverter struct {
	width  int
	height int
	out    *Converted
}

// NewSoftwareConverter returns a converter for frames of the given size.
func NewSoftwareConverter(width, height int) (*SoftwareConverter, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid frame size %dx%d", ErrResourceExhausted, width, height)
	}

	return &SoftwareConverter{
		width:  width,
		height: height,
		out:    NewConverted(width, height),
	}, nil
}

// Convert writes frame into the converter's RGBA buffer and returns it.
func (c *SoftwareConverter) Convert(frame Decoded) (*Converted, error) {
	if frame.Width() != c.width || frame.Height() != c.height {
		return nil, fmt.Errorf("%w: got %dx%d, want %dx%d", ErrGeometryMismatch,
			frame.Width(), frame.Height(), c.width, c.height)
	}

	var err error
	switch frame.Format() {
	case FormatRGBA:
		err = c.packed(frame, 4)
	case FormatRGB24:
		err = c.packed(frame, 3)
	case FormatGray8:
		err = c.packed(frame, 1)
	case FormatYUV420P:
		err = c.yuv420p(frame)
	default:
		return nil, fmt.Errorf("%w: unsupported pixel format %s", ErrGeometryMismatch, frame.Format())
	}

	if err != nil {
		return nil, err
	}

	c.out.PTS = frame.PTS()
	return c.out, nil
}

// packed converts interleaved formats with bpp bytes per pixel.
func (c *SoftwareConverter) packed(frame Decoded, bpp int) error {
	src, stride := frame.Plane(0)
	if err := checkPlane(src, stride, c.width*bpp, c.height); err != nil {
		return err
	}

	dst := c.out.Pix
	for y := 0; y < c.height; y++ {
		row := src[y*stride : y*stride+c.width*bpp]
		out := dst[y*c.out.Stride : y*c.out.Stride+c.width*4]

		switch bpp {
		case 4:
			copy(out, row)
		case 3:
			for x := 0; x < c.width; x++ {
				out[x*4+0] = row[x*3+0]
				out[x*4+1] = row[x*3+1]
				out[x*4+2] = row[x*3+2]
				out[x*4+3] = 0xff
			}
		case 1:
			for x := 0; x < c.width; x++ {
				out[x*4+0] = row[x]
				out[x*4+1] = row[x]
				out[x*4+2] = row[x]
				out[x*4+3] = 0xff
			}
		}
	}

	return nil
}

func (c *SoftwareConverter) yuv420p(frame Decoded) error {
	yPlane, yStride := frame.Plane(0)
	cbPlane, cbStride := frame.Plane(1)
	crPlane, crStride := frame.Plane(2)

	chromaW, chromaH := (c.width+1)/2, (c.height+1)/2
	if err := checkPlane(yPlane, yStride, c.width, c.height); err != nil {
		return err
	}
	if err := checkPlane(cbPlane, cbStride, chromaW, chromaH); err != nil {
		return err
	}
	if err := checkPlane(crPlane, crStride, chromaW, chromaH); err != nil {
		return err
	}

	dst := c.out.Pix
	for y := 0; y < c.height; y++ {
		out := dst[y*c.out.Stride:]
		for x := 0; x < c.width; x++ {
			r, g, b := color.YCbCrToRGB(
				yPlane[y*yStride+x],
				cbPlane[(y/2)*cbStride+x/2],
				crPlane[(y/2)*crStride+x/2])

			out[x*4+0] = r
			out[x*4+1] = g
			out[x*4+2] = b
			out[x*4+3] = 0xff
		}
	}

	return nil
}

// checkPlane verifies a plane holds rows lines of at least rowBytes bytes.
func checkPlane(plane []byte, stride, rowBytes, rows int) error {
	if plane == nil || stride < rowBytes || len(plane) < stride*(rows-1)+rowBytes {
		return fmt.Errorf("%w: plane of %d bytes with stride %d can't hold %d rows of %d bytes",
			ErrGeometryMismatch, len(plane), stride, rows, rowBytes)
	}

	return nil
}

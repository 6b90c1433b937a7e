package media

import (
	"time"
)

// baseFrame contains the information
// common for all frames of any type.
type baseFrame struct {
	stream *baseStream
	pts    int64
}

// PresentationOffset returns the duration offset
// since the start of the media at which the frame
// should be played.
func (frame *baseFrame) PresentationOffset() time.Duration {
	tbNum, tbDen := frame.stream.TimeBase()
	if tbDen == 0 {
		return 0
	}

	return time.Second * time.Duration(tbNum) * time.Duration(frame.pts) / time.Duration(tbDen)
}

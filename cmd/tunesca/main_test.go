package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erparts/tunesca/internal/playback"
)

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "no_video",
			err:  fmt.Errorf("couldn't open the background video: %w", playback.ErrNoVideoStream),
			want: "Menu can't run with this media or configuration",
		},
		{
			name: "empty_stream",
			err:  playback.ErrEmptyStream,
			want: "Menu can't run with this media or configuration",
		},
		{
			name: "runtime",
			err:  errors.New("window lost"),
			want: "Menu failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failureMessage(tt.err))
		})
	}
}

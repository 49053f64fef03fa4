package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_ValidateWindow(t *testing.T) {
	// 18:00-22:00
	event := &Event{DoorOpenMin: 1080, EndMin: 1320}

	tests := []struct {
		name    string
		start   int
		end     int
		wantErr error
	}{
		{name: "inside window", start: 1140, end: 1185, wantErr: nil},
		{name: "exactly fills window", start: 1080, end: 1320, wantErr: nil},
		{name: "inverted range", start: 1185, end: 1140, wantErr: ErrInvalidRange},
		{name: "zero-length range", start: 1140, end: 1140, wantErr: ErrInvalidRange},
		{name: "starts before doors", start: 1020, end: 1140, wantErr: ErrOutsideWindow},
		{name: "ends after close", start: 1260, end: 1380, wantErr: ErrOutsideWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := event.ValidateWindow(tt.start, tt.end)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRangesOverlap(t *testing.T) {
	assert.True(t, RangesOverlap(1140, 1185, 1170, 1200))
	assert.True(t, RangesOverlap(1170, 1200, 1140, 1185))
	assert.True(t, RangesOverlap(1140, 1200, 1150, 1160))
	assert.False(t, RangesOverlap(1140, 1185, 1185, 1230))
	assert.False(t, RangesOverlap(1185, 1230, 1140, 1185))
}

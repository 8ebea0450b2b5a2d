package viewport

import (
	"testing"
)

func TestNewSizeClamps(t *testing.T) {
	tests := []struct {
		w, h  int
		wantW int
		wantH int
	}{
		{80, 24, 80, 24},
		{0, 0, 1, 1},
		{-5, 10, 1, 10},
	}

	for _, tt := range tests {
		s := NewSize(tt.w, tt.h)
		if s.Width != tt.wantW || s.Height != tt.wantH {
			t.Errorf("NewSize(%d, %d) = %v, want %dx%d", tt.w, tt.h, s, tt.wantW, tt.wantH)
		}
	}
}

func TestSizeNormalize(t *testing.T) {
	s := Size{Width: 0, Height: 3}.Normalize()
	if s.Width != 1 || s.Height != 3 {
		t.Errorf("expected 1x3, got %v", s)
	}
}

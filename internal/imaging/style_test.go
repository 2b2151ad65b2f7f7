package imaging

import (
	"image/color"
	"testing"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		style   string
		want    color.RGBA
		wantErr bool
	}{
		{"#000000", color.RGBA{0, 0, 0, 255}, false},
		{"#ffffff", color.RGBA{255, 255, 255, 255}, false},
		{"#FF8040", color.RGBA{255, 128, 64, 255}, false},
		{"#f00", color.RGBA{255, 0, 0, 255}, false},
		{"  White ", color.RGBA{255, 255, 255, 255}, false},
		{"black", color.RGBA{0, 0, 0, 255}, false},
		{"transparent", color.RGBA{}, false},
		{"#ffffff00", color.RGBA{0, 0, 0, 0}, false},
		{"#ff000080", color.RGBA{128, 0, 0, 128}, false},
		{"", color.RGBA{}, true},
		{"#12345", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
		{"#ffffffzz", color.RGBA{}, true},
		{"chartreuse", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			got, err := ParseStyle(tt.style)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStyle failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

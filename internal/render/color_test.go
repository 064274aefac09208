package render

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      []int
		want    color.RGBA
		wantErr bool
	}{
		{[]int{255, 0, 10}, color.RGBA{255, 0, 10, 255}, false},
		{[]int{1, 2, 3, 4}, color.RGBA{1, 2, 3, 4}, false},
		{[]int{1, 2}, color.RGBA{}, true},
		{[]int{1, 2, 300}, color.RGBA{}, true},
		{[]int{-1, 2, 3}, color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

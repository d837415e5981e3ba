package render

import (
	"image/color"
	"testing"
)

func TestPixelColor(t *testing.T) {
	tests := []struct {
		name string
		in   color.NRGBA
		want color.Color
	}{
		{"transparent", color.NRGBA{R: 255, G: 255, B: 255}, nil},
		{"opaque", color.NRGBA{R: 10, G: 20, B: 30, A: 255}, color.RGBA{R: 10, G: 20, B: 30, A: 255}},
		{"half covered", color.NRGBA{R: 255, G: 100, B: 0, A: 127}, color.RGBA{R: 127, G: 49, B: 0, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pixelColor(Pack(tt.in))
			if got != tt.want {
				t.Errorf("pixelColor(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

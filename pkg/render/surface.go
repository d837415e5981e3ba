// Package render implements the software rendering pipeline: culling,
// flat lighting, clipping, supersampled rasterization and resolve.
package render

import (
	"image"
	"image/color"
)

// Surface is a row-major grid of packed pixels. Each uint32 holds R, G, B
// and A from the least to the most significant byte.
type Surface struct {
	Width  int
	Height int
	Pixels []uint32
}

// NewSurface allocates a fully transparent black surface.
func NewSurface(width, height int) *Surface {
	return &Surface{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
}

// Clear resets every pixel to transparent black.
func (s *Surface) Clear() {
	clear(s.Pixels)
}

// Fill sets every pixel to c.
func (s *Surface) Fill(c uint32) {
	n := len(s.Pixels)
	if n == 0 {
		return
	}
	s.Pixels[0] = c
	for i := 1; i < n; i *= 2 {
		copy(s.Pixels[i:], s.Pixels[:i])
	}
}

// At returns the packed pixel at (x, y), or 0 when out of bounds.
func (s *Surface) At(x, y int) uint32 {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return 0
	}
	return s.Pixels[y*s.Width+x]
}

// Set writes a packed pixel at (x, y). Out-of-bounds writes are ignored.
func (s *Surface) Set(x, y int, c uint32) {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return
	}
	s.Pixels[y*s.Width+x] = c
}

// NRGBA returns the pixel at (x, y) as a non-premultiplied color.
func (s *Surface) NRGBA(x, y int) color.NRGBA {
	return Unpack(s.At(x, y))
}

// Pack converts a color to the Surface pixel layout.
func Pack(c color.NRGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.B)<<16 | uint32(c.G)<<8 | uint32(c.R)
}

// Unpack is the inverse of Pack.
func Unpack(p uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(p),
		G: uint8(p >> 8),
		B: uint8(p >> 16),
		A: uint8(p >> 24),
	}
}

// ToImage copies the surface into an image.NRGBA. Channels are stored
// unassociated, so encoding the result is lossless for every pixel.
func (s *Surface) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.Width, s.Height))
	for y := 0; y < s.Height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < s.Width; x++ {
			p := s.Pixels[y*s.Width+x]
			o := x * 4
			row[o] = uint8(p)
			row[o+1] = uint8(p >> 8)
			row[o+2] = uint8(p >> 16)
			row[o+3] = uint8(p >> 24)
		}
	}
	return img
}

// SurfaceFromImage converts any image into a Surface.
func SurfaceFromImage(img image.Image) *Surface {
	b := img.Bounds()
	s := NewSurface(b.Dx(), b.Dy())
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < s.Height; y++ {
			row := nrgba.Pix[(y+b.Min.Y-nrgba.Rect.Min.Y)*nrgba.Stride+(b.Min.X-nrgba.Rect.Min.X)*4:]
			for x := 0; x < s.Width; x++ {
				o := x * 4
				s.Pixels[y*s.Width+x] = uint32(row[o+3])<<24 | uint32(row[o+2])<<16 | uint32(row[o+1])<<8 | uint32(row[o])
			}
		}
		return s
	}
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			s.Pixels[y*s.Width+x] = Pack(c)
		}
	}
	return s
}

package render

// Resolve box-filters a canvas of 2·W × 2·H subpixels down to dst (W × H).
//
// Alpha is the truncated mean of the four subpixel alphas. Color is the
// mean over opaque subpixels only, so uncovered background never darkens
// edges. Pixels with no opaque subpixel keep their current value.
func Resolve(canvas, dst *Surface) {
	cw := canvas.Width
	for y := 0; y < dst.Height; y++ {
		top := (2 * y) * cw
		bottom := top + cw
		for x := 0; x < dst.Width; x++ {
			sx := 2 * x
			samples := [4]uint32{
				canvas.Pixels[top+sx],
				canvas.Pixels[top+sx+1],
				canvas.Pixels[bottom+sx],
				canvas.Pixels[bottom+sx+1],
			}

			var a, r, g, b, n uint32
			for _, p := range samples {
				pa := p >> 24
				a += pa
				if pa == 0 {
					continue
				}
				r += p & 0xFF
				g += p >> 8 & 0xFF
				b += p >> 16 & 0xFF
				n++
			}
			if n == 0 {
				continue
			}
			dst.Pixels[y*dst.Width+x] = (a/4)<<24 | (b/n)<<16 | (g/n)<<8 | r/n
		}
	}
}

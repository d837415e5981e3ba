package render

import (
	"fmt"
	"time"
)

// Stats records how many triangles survive each pipeline stage.
type Stats struct {
	Input    int // triangles passed to Render
	Culled   int // triangles left after backface culling
	Clipped  int // triangles left after clipping and retriangulation
	Covered  int // subpixel writes during rasterization
	Duration time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf("%d in, %d after culling, %d after clipping, %d fragments in %v",
		s.Input, s.Culled, s.Clipped, s.Covered, s.Duration.Round(time.Microsecond))
}

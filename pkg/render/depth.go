package render

import (
	"math"
	"math/rand/v2"
)

// DepthBuffer holds one depth per canvas pixel. Smaller is nearer.
type DepthBuffer []float32

// NewDepthBuffer returns a buffer of n entries set to the largest float32.
func NewDepthBuffer(n int) DepthBuffer {
	d := make(DepthBuffer, n)
	d.Clear()
	return d
}

// Clear resets every entry to the largest float32.
func (d DepthBuffer) Clear() {
	n := len(d)
	if n == 0 {
		return
	}
	d[0] = math.MaxFloat32
	for i := 1; i < n; i *= 2 {
		copy(d[i:], d[:i])
	}
}

// SortByDepth reorders tris farthest first by average z, moving each
// triangle's lighting with it. Equal depths end up in no particular order.
// rng picks pivots; nil uses the global source.
func SortByDepth(tris TriangleBuffer, lights LightingBuffer, rng *rand.Rand) {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	depthSort(tris, lights, 0, len(tris)-1, intN)
}

// depthSort is a randomized three-way quicksort over tris[lo..hi], descending.
// It recurses into the smaller side and loops on the larger one.
func depthSort(tris TriangleBuffer, lights LightingBuffer, lo, hi int, intN func(int) int) {
	for lo < hi {
		pivot := tris[lo+intN(hi-lo+1)].AverageZ()

		// [lo,lt) farther, [lt,i) equal, (gt,hi] nearer.
		lt, i, gt := lo, lo, hi
		for i <= gt {
			z := tris[i].AverageZ()
			switch {
			case z > pivot:
				tris[lt], tris[i] = tris[i], tris[lt]
				lights[lt], lights[i] = lights[i], lights[lt]
				lt++
				i++
			case z < pivot:
				tris[gt], tris[i] = tris[i], tris[gt]
				lights[gt], lights[i] = lights[i], lights[gt]
				gt--
			default:
				i++
			}
		}

		if lt-lo < hi-gt {
			depthSort(tris, lights, lo, lt-1, intN)
			lo = gt + 1
		} else {
			depthSort(tris, lights, gt+1, hi, intN)
			hi = lt - 1
		}
	}
}

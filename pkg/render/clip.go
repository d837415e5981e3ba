package render

import "fmt"

// maxClipVertices bounds a triangle clipped by the six view-volume planes:
// each plane adds at most one vertex to a convex polygon, so 3+6.
const maxClipVertices = 9

// ClipPlane is one face of the canonical view volume in NDC, written as
// an axis-aligned half-space: component Axis is >= Bound when Lower is set
// and <= Bound otherwise.
type ClipPlane struct {
	Axis  int // 0=x, 1=y, 2=z
	Bound float32
	Lower bool
}

// ClipPlane indices for clarity.
const (
	ClipLeft = iota
	ClipRight
	ClipBottom
	ClipTop
	ClipNear
	ClipFar
)

// ClipPlanes are the six faces of x,y ∈ [-1,1], z ∈ [0,1] in clipping order.
var ClipPlanes = [6]ClipPlane{
	ClipLeft:   {Axis: 0, Bound: -1, Lower: true},
	ClipRight:  {Axis: 0, Bound: 1},
	ClipBottom: {Axis: 1, Bound: -1, Lower: true},
	ClipTop:    {Axis: 1, Bound: 1},
	ClipNear:   {Axis: 2, Bound: 0, Lower: true},
	ClipFar:    {Axis: 2, Bound: 1},
}

// Inside reports whether v lies in the half-space (boundary included).
func (p ClipPlane) Inside(v Vertex) bool {
	c := v.Vec4().Component(p.Axis)
	if p.Lower {
		return c >= p.Bound
	}
	return c <= p.Bound
}

// intersect returns the point where edge a→b crosses the plane. The
// clipped coordinate is exactly Bound.
func (p ClipPlane) intersect(a, b Vertex) Vertex {
	va, vb := a.Vec4(), b.Vec4()
	ca, cb := va.Component(p.Axis), vb.Component(p.Axis)
	v := vertexFromVec4(va.Lerp(vb, (p.Bound-ca)/(cb-ca)))
	switch p.Axis {
	case 0:
		v.X = p.Bound
	case 1:
		v.Y = p.Bound
	default:
		v.Z = p.Bound
	}
	v.W = 1
	return v
}

// polygon is a fixed-capacity convex polygon used while clipping.
type polygon struct {
	v [maxClipVertices]Vertex
	n int
}

func (p *polygon) push(v Vertex) {
	if p.n == maxClipVertices {
		panic(fmt.Sprintf("render: clipped polygon exceeds %d vertices", maxClipVertices))
	}
	p.v[p.n] = v
	p.n++
}

// clipAgainst runs one Sutherland-Hodgman pass of in against plane into out.
func clipAgainst(in *polygon, plane ClipPlane, out *polygon) {
	out.n = 0
	if in.n == 0 {
		return
	}
	prev := in.v[in.n-1]
	prevIn := plane.Inside(prev)
	for i := 0; i < in.n; i++ {
		cur := in.v[i]
		curIn := plane.Inside(cur)
		if curIn != prevIn {
			out.push(plane.intersect(prev, cur))
		}
		if curIn {
			out.push(cur)
		}
		prev, prevIn = cur, curIn
	}
}

// ClipPolygon clips a convex NDC polygon against a single plane and returns
// the surviving vertices.
func ClipPolygon(vertices []Vertex, plane ClipPlane) []Vertex {
	var in, out polygon
	for _, v := range vertices {
		in.push(v)
	}
	clipAgainst(&in, plane, &out)
	return append([]Vertex(nil), out.v[:out.n]...)
}

// clipToVolume clips a against every plane, using b as scratch. It returns
// whichever buffer holds the result, or nil once fewer than 3 vertices
// remain.
func clipToVolume(a, b *polygon) *polygon {
	in, out := a, b
	for _, plane := range ClipPlanes {
		clipAgainst(in, plane, out)
		if out.n < 3 {
			return nil
		}
		in, out = out, in
	}
	return in
}

func divide(v Vertex) Vertex {
	return vertexFromVec4(v.Vec4().PerspectiveDivide())
}

func insideCube(v Vertex) bool {
	return v.X >= -1 && v.X <= 1 &&
		v.Y >= -1 && v.Y <= 1 &&
		v.Z >= 0 && v.Z <= 1
}

// Clip performs the perspective divide and clips every clip-space triangle
// to the canonical view volume. Triangles with any vertex at w <= 0 are
// dropped whole rather than clipped against the w=0 plane. Polygons left by
// clipping are fan-triangulated around their first vertex and each piece
// inherits the lighting of the triangle it came from.
func Clip(tris TriangleBuffer, lights LightingBuffer) (TriangleBuffer, LightingBuffer) {
	outTris := make(TriangleBuffer, 0, len(tris))
	outLights := make(LightingBuffer, 0, len(tris))

	var a, b polygon
	for i, t := range tris {
		if t.V[0].W <= 0 || t.V[1].W <= 0 || t.V[2].W <= 0 {
			continue
		}

		d := Triangle{V: [3]Vertex{divide(t.V[0]), divide(t.V[1]), divide(t.V[2])}}
		if insideCube(d.V[0]) && insideCube(d.V[1]) && insideCube(d.V[2]) {
			outTris = append(outTris, d)
			outLights = append(outLights, lights[i])
			continue
		}

		a.n = 0
		a.push(d.V[0])
		a.push(d.V[1])
		a.push(d.V[2])
		poly := clipToVolume(&a, &b)
		if poly == nil {
			continue
		}
		for k := 1; k+1 < poly.n; k++ {
			outTris = append(outTris, Triangle{V: [3]Vertex{poly.v[0], poly.v[k], poly.v[k+1]}})
			outLights = append(outLights, lights[i])
		}
	}
	return outTris, outLights
}

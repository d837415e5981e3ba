package render

import "github.com/taigrr/softrender/pkg/math3d"

// CameraInModelSpace maps a world-space camera position back through the
// object transform built by math3d.ObjectMatrix: it removes the
// translation, applies the transposed rotation and divides by the scale.
func CameraInModelSpace(camera, position, rotation, scale math3d.Vec3) math3d.Vec3 {
	rot := math3d.Compose(
		math3d.RotateX(rotation.X),
		math3d.RotateY(rotation.Y),
		math3d.RotateZ(rotation.Z),
	)
	c := rot.Transpose().MulPoint(camera.Sub(position))
	return math3d.V3(c.X/scale.X, c.Y/scale.Y, c.Z/scale.Z)
}

// FacesCamera reports whether t, in model space, turns its front face
// towards a camera at cam (also in model space).
func FacesCamera(t Triangle, cam math3d.Vec3) bool {
	return t.Normal().Dot(cam.Sub(t.Centroid())) > math3d.Epsilon
}

// Cull returns the triangles of tris that face cam. Order is preserved and
// tris is not modified.
func Cull(tris TriangleBuffer, cam math3d.Vec3) TriangleBuffer {
	out := make(TriangleBuffer, 0, len(tris))
	for _, t := range tris {
		if FacesCamera(t, cam) {
			out = append(out, t)
		}
	}
	return out
}

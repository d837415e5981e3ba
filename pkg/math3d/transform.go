package math3d

import "github.com/chewxy/math32"

// Radians converts degrees to radians using the same π approximation as
// the configuration files were authored against.
func Radians(deg float32) float32 {
	return deg * 3.14159265 / 180
}

// ObjectMatrix builds the model transform: scale, then rotate about X, Y and
// Z (radians), then translate.
func ObjectMatrix(position, rotation, scale Vec3) Mat4 {
	return Compose(
		Scale(scale),
		RotateX(rotation.X),
		RotateY(rotation.Y),
		RotateZ(rotation.Z),
		Translate(position),
	)
}

// ViewMatrix builds the camera basis looking from eye towards lookAt, with
// +z pointing into the screen. A degenerate basis (lookAt == eye, or up
// parallel to the view direction) is not guarded against.
func ViewMatrix(eye, lookAt, up Vec3) Mat4 {
	z := lookAt.Sub(eye).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)

	return Mat4{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		-x.Dot(eye), -y.Dot(eye), -z.Dot(eye), 1,
	}
}

// ProjectionMatrix builds a perspective projection mapping camera depth
// near..far to 0..w. fov is the vertical field of view in radians and
// aspect is width/height.
func ProjectionMatrix(fov, aspect, near, far float32) Mat4 {
	yscale := 1 / math32.Tan(fov/2)
	depth := far / (far - near)

	m := Identity()
	m[0] = yscale / aspect
	m[5] = yscale
	m[10] = depth
	m[11] = 1
	m[14] = -near * far / (far - near)
	m[15] = 0
	return m
}

// ViewportMatrix maps NDC x,y in [-1,1] onto a 2·width × 2·height canvas
// with y pointing down. z passes through.
func ViewportMatrix(width, height int) Mat4 {
	w, h := float32(width), float32(height)
	return Mat4{
		w, 0, 0, 0,
		0, -h, 0, 0,
		0, 0, 1, 0,
		w, h, 0, 1,
	}
}

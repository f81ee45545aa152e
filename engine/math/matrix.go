package math

import (
	"fmt"
	"strings"
)

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 *
 * @return A new identity matrix
 */
func NewMat4Identity() Mat4 {
	out_matrix := Mat4{}
	out_matrix.Data[0] = 1.0
	out_matrix.Data[5] = 1.0
	out_matrix.Data[10] = 1.0
	out_matrix.Data[15] = 1.0
	return out_matrix
}

/**
 * @brief Creates and returns a matrix with every element set to 0.
 */
func NewMat4Zero() Mat4 {
	return Mat4{}
}

/**
 * @brief Creates and returns a translation matrix from the given position.
 *
 * @param position The position to be used to create the matrix.
 * @return A newly created translation matrix.
 */
func NewMat4Translation(position Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[12] = position.X
	out_matrix.Data[13] = position.Y
	out_matrix.Data[14] = position.Z
	return out_matrix
}

/**
 * @brief Returns a uniform scale matrix.
 *
 * @param scale The scale applied on every axis.
 * @return A scale matrix.
 */
func NewMat4Scaling(scale float32) Mat4 {
	return NewMat4Scaling3(Vec3{scale, scale, scale})
}

/**
 * @brief Returns a scale matrix using the provided scale.
 *
 * @param scale The 3-component scale.
 * @return A scale matrix.
 */
func NewMat4Scaling3(scale Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[0] = scale.X
	out_matrix.Data[5] = scale.Y
	out_matrix.Data[10] = scale.Z
	return out_matrix
}

/**
 * @brief Creates a rotation matrix from the provided x angle.
 *
 * @param angle_radians The x angle in radians.
 * @return A rotation matrix.
 */
func NewMat4RotationX(angle_radians float32) Mat4 {
	out_matrix := NewMat4Identity()
	c := kcos(angle_radians)
	s := ksin(angle_radians)

	out_matrix.Data[5] = c
	out_matrix.Data[6] = s
	out_matrix.Data[9] = -s
	out_matrix.Data[10] = c
	return out_matrix
}

/**
 * @brief Creates a rotation matrix from the provided y angle.
 *
 * @param angle_radians The y angle in radians.
 * @return A rotation matrix.
 */
func NewMat4RotationY(angle_radians float32) Mat4 {
	out_matrix := NewMat4Identity()
	c := kcos(angle_radians)
	s := ksin(angle_radians)

	out_matrix.Data[0] = c
	out_matrix.Data[2] = -s
	out_matrix.Data[8] = s
	out_matrix.Data[10] = c
	return out_matrix
}

/**
 * @brief Creates a rotation matrix from the provided z angle.
 *
 * @param angle_radians The z angle in radians.
 * @return A rotation matrix.
 */
func NewMat4RotationZ(angle_radians float32) Mat4 {
	out_matrix := NewMat4Identity()

	c := kcos(angle_radians)
	s := ksin(angle_radians)

	out_matrix.Data[0] = c
	out_matrix.Data[1] = s
	out_matrix.Data[4] = -s
	out_matrix.Data[5] = c
	return out_matrix
}

/**
 * @brief Creates a rotation matrix from an axis-angle vector using
 * Rodrigues' rotation formula. The direction of the vector is the axis
 * and its length is the angle in radians. A zero vector yields identity.
 *
 * @param axis_angle The axis-angle vector.
 * @return A rotation matrix.
 */
func NewMat4RotationVec(axis_angle Vec3) Mat4 {
	angle := axis_angle.Length()
	if angle == 0 {
		return NewMat4Identity()
	}
	axis := axis_angle.DivScalar(angle)

	c := kcos(angle)
	s := ksin(angle)
	t := 1.0 - c
	x, y, z := axis.X, axis.Y, axis.Z

	// I*cos + [axis]x*sin + (axis (x) axis)*(1-cos), transposed for row vectors.
	out_matrix := NewMat4Identity()
	out_matrix.Data[0] = c + t*x*x
	out_matrix.Data[1] = t*x*y + s*z
	out_matrix.Data[2] = t*x*z - s*y

	out_matrix.Data[4] = t*x*y - s*z
	out_matrix.Data[5] = c + t*y*y
	out_matrix.Data[6] = t*y*z + s*x

	out_matrix.Data[8] = t*x*z + s*y
	out_matrix.Data[9] = t*y*z - s*x
	out_matrix.Data[10] = c + t*z*z
	return out_matrix
}

/**
 * @brief Creates and returns a left-handed perspective matrix with a 0..1
 * depth range, laid out for row vectors. Typically used to render 3d scenes.
 *
 * @param fov_radians The vertical field of view in radians.
 * @param aspect_ratio The aspect ratio (width / height).
 * @param near_clip The near clipping plane distance.
 * @param far_clip The far clipping plane distance.
 * @return A new perspective matrix.
 */
func NewMat4Perspective(fov_radians, aspect_ratio, near_clip, far_clip float32) Mat4 {
	h := 1.0 / ktan(fov_radians*0.5)
	f_range := far_clip / (far_clip - near_clip)

	out_matrix := Mat4{}
	out_matrix.Data[0] = h / aspect_ratio
	out_matrix.Data[5] = h
	out_matrix.Data[10] = f_range
	out_matrix.Data[11] = 1.0
	out_matrix.Data[14] = -f_range * near_clip
	return out_matrix
}

/**
 * @brief Returns the result of multiplying mt and other. With row vectors
 * the result applies mt first and other second.
 *
 * @param other The second matrix to be multiplied.
 * @return The result of the matrix multiplication.
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	out_matrix := Mat4{}

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := float32(0)
			for i := 0; i < 4; i++ {
				sum += mt.Data[row*4+i] * other.Data[i*4+col]
			}
			out_matrix.Data[row*4+col] = sum
		}
	}

	return out_matrix
}

/**
 * @brief Returns a transposed copy of the provided matrix (rows->colums)
 */
func (mt Mat4) Transpose() Mat4 {
	out_matrix := Mat4{}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out_matrix.Data[col*4+row] = mt.Data[row*4+col]
		}
	}
	return out_matrix
}

// cofactors splits the matrix into the four 3-element columns a, b, c, d,
// the bottom row x, y, z, w, and the cross products the determinant and
// the inverse are built from.
func (mt Mat4) cofactors() (a, b, c, d, s, t, u, v Vec3, x, y, z, w float32) {
	m := mt.Data
	a = Vec3{m[0], m[4], m[8]}
	b = Vec3{m[1], m[5], m[9]}
	c = Vec3{m[2], m[6], m[10]}
	d = Vec3{m[3], m[7], m[11]}
	x, y, z, w = m[12], m[13], m[14], m[15]

	s = a.Cross(b)
	t = c.Cross(d)
	u = a.MulScalar(y).Sub(b.MulScalar(x))
	v = c.MulScalar(w).Sub(d.MulScalar(z))
	return
}

/**
 * @brief Returns the determinant of the matrix.
 */
func (mt Mat4) Determinant() float32 {
	_, _, _, _, s, t, u, v, _, _, _, _ := mt.cofactors()
	return s.Dot(v) + t.Dot(u)
}

/**
 * @brief Creates and returns an inverse of the provided matrix.
 *
 * The second return value is false when the determinant is zero, NaN or
 * infinite. Nearly singular matrices still produce a (numerically poor) inverse.
 *
 * @return A inverted copy of the provided matrix and whether it exists.
 */
func (mt Mat4) Inverse() (Mat4, bool) {
	a, b, c, d, s, t, u, v, x, y, z, w := mt.cofactors()

	det := s.Dot(v) + t.Dot(u)
	if det == 0 || !IsFinite(det) {
		return Mat4{}, false
	}
	inv_det := 1.0 / det
	s = s.MulScalar(inv_det)
	t = t.MulScalar(inv_det)
	u = u.MulScalar(inv_det)
	v = v.MulScalar(inv_det)

	r0 := b.Cross(v).Add(t.MulScalar(y))
	r1 := v.Cross(a).Sub(t.MulScalar(x))
	r2 := d.Cross(u).Add(s.MulScalar(w))
	r3 := u.Cross(c).Sub(s.MulScalar(z))

	return Mat4{Data: [16]float32{
		r0.X, r0.Y, r0.Z, -b.Dot(t),
		r1.X, r1.Y, r1.Z, a.Dot(t),
		r2.X, r2.Y, r2.Z, -d.Dot(s),
		r3.X, r3.Y, r3.Z, c.Dot(s),
	}}, true
}

/**
 * @brief Composes a rotation into the matrix while keeping its translation.
 * The translation is saved and cleared, the rotation is applied, then the
 * translation is put back, so the object turns around its own location.
 *
 * @param rotation The rotation to apply.
 */
func (mt *Mat4) RotateInPlace(rotation Mat4) {
	translation := mt.Translation()
	mt.SetTranslation(Vec3Origin)
	*mt = mt.Mul(rotation)
	mt.SetTranslation(translation)
}

/**
 * @brief Moves the matrix by the given offset.
 */
func (mt *Mat4) Translate(offset Vec3) {
	mt.Data[12] += offset.X
	mt.Data[13] += offset.Y
	mt.Data[14] += offset.Z
}

/**
 * @brief Overwrites the translation row.
 */
func (mt *Mat4) SetTranslation(position Vec3) {
	mt.Data[12] = position.X
	mt.Data[13] = position.Y
	mt.Data[14] = position.Z
}

// Row returns row i (0..3) as a 4-element vector.
func (mt Mat4) Row(i int) Vec4 {
	return Vec4{mt.Data[i*4], mt.Data[i*4+1], mt.Data[i*4+2], mt.Data[i*4+3]}
}

/**
 * @brief Returns the local X basis direction (row 0), not normalized.
 */
func (mt Mat4) DirectionX() Vec3 {
	return Vec3{mt.Data[0], mt.Data[1], mt.Data[2]}
}

/**
 * @brief Returns the local Y basis direction (row 1), not normalized.
 */
func (mt Mat4) DirectionY() Vec3 {
	return Vec3{mt.Data[4], mt.Data[5], mt.Data[6]}
}

/**
 * @brief Returns the local Z basis direction (row 2), not normalized.
 */
func (mt Mat4) DirectionZ() Vec3 {
	return Vec3{mt.Data[8], mt.Data[9], mt.Data[10]}
}

/**
 * @brief Returns the translation (row 3).
 */
func (mt Mat4) Translation() Vec3 {
	return Vec3{mt.Data[12], mt.Data[13], mt.Data[14]}
}

/**
 * @brief Transform v by m. NOTE: It is assumed by this function that the
 * vector v is a point, not a direction, and is calculated as if a w component
 * with a value of 1.0f is there.
 */
func (mt Mat4) TransformPoint(v Vec3) Vec3 {
	return mt.TransformVec4(v.ToVec4(1.0)).ToVec3()
}

/**
 * @brief Transform the direction v by m, ignoring the translation row.
 */
func (mt Mat4) TransformDirection(v Vec3) Vec3 {
	return mt.TransformVec4(v.ToVec4(0.0)).ToVec3()
}

/**
 * @brief Multiplies the row vector v by the matrix.
 */
func (mt Mat4) TransformVec4(v Vec4) Vec4 {
	m := mt.Data
	return Vec4{
		v.X*m[0] + v.Y*m[4] + v.Z*m[8] + v.W*m[12],
		v.X*m[1] + v.Y*m[5] + v.Z*m[9] + v.W*m[13],
		v.X*m[2] + v.Y*m[6] + v.Z*m[10] + v.W*m[14],
		v.X*m[3] + v.Y*m[7] + v.Z*m[11] + v.W*m[15],
	}
}

/**
 * @brief Compares every element of the matrices against tolerance.
 */
func (mt Mat4) Compare(other Mat4, tolerance float32) bool {
	for i := 0; i < 16; i++ {
		if kabs(mt.Data[i]-other.Data[i]) > tolerance {
			return false
		}
	}
	return true
}

func (mt Mat4) String() string {
	var sb strings.Builder
	for row := 0; row < 4; row++ {
		r := mt.Row(row)
		fmt.Fprintf(&sb, "[%.3f %.3f %.3f %.3f]", r.X, r.Y, r.Z, r.W)
		if row < 3 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

package math

import (
	"fmt"

	"github.com/chewxy/math32"
)

// ------------------------------------------
// Vector 2
// ------------------------------------------

/**
 * @brief Creates and returns a new 2-element vector using the supplied values.
 */
func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

/**
 * @brief Creates and returns a 2-component vector with all components set to 0.0f.
 */
func NewVec2Zero() Vec2 {
	return Vec2{0.0, 0.0}
}

/**
 *  Adds other to v and returns a copy of the result.
 */
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

/**
 * Subtracts other from v and returns a copy of the result.
 */
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

/**
 *  Multiplies v by other componentwise and returns a copy of the result.
 */
func (v Vec2) Mul(other Vec2) Vec2 {
	return Vec2{v.X * other.X, v.Y * other.Y}
}

func (v Vec2) MulScalar(scalar float32) Vec2 {
	return Vec2{v.X * scalar, v.Y * scalar}
}

// DivScalar divides every component by scalar. Dividing by zero yields
// infinities or NaN, it is not reported.
func (v Vec2) DivScalar(scalar float32) Vec2 {
	return Vec2{v.X / scalar, v.Y / scalar}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

/**
 * Returns the squared length of the provided vector.
 */
func (v Vec2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

/**
 * @brief Returns the length of the provided vector.
 */
func (v Vec2) Length() float32 {
	return ksqrt(v.LengthSquared())
}

/**
 * @brief Returns a unit length copy of the vector. A zero vector
 * produces NaN components.
 */
func (v Vec2) Normalize() Vec2 {
	return v.DivScalar(v.Length())
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 */
func (v Vec2) Compare(other Vec2, tolerance float32) bool {
	if kabs(v.X-other.X) > tolerance {
		return false
	}
	if kabs(v.Y-other.Y) > tolerance {
		return false
	}
	return true
}

/**
 * @brief Returns the distance between v and other.
 */
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

// LerpVec2 interpolates componentwise, a*(1-t) + b*t.
func LerpVec2(a, b Vec2, t float32) Vec2 {
	return Vec2{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

// ------------------------------------------
// Vector 3
// ------------------------------------------

/**
 * @brief Creates and returns a new 3-element vector using the supplied values.
 *
 * @param x The x value.
 * @param y The y value.
 * @param z The z value.
 * @return A new 3-element vector.
 */
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

/**
 * @brief Creates and returns a 3-component vector with all components set to 0.0f.
 */
func NewVec3Zero() Vec3 {
	return Vec3{0.0, 0.0, 0.0}
}

/**
 * @brief Creates and returns a 3-component vector with all components set to 1.0f.
 */
func NewVec3One() Vec3 {
	return Vec3{1.0, 1.0, 1.0}
}

/**
 * @brief Returns a new vec4 using vector as the x, y and z components and w for w.
 *
 * @param w The w component.
 * @return A new vec4
 */
func (v Vec3) ToVec4(w float32) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

/**
 * @brief Adds other to v and returns a copy of the result.
 */
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		v.X + other.X,
		v.Y + other.Y,
		v.Z + other.Z}
}

/**
 * @brief Subtracts other from v and returns a copy of the result.
 */
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		v.X - other.X,
		v.Y - other.Y,
		v.Z - other.Z}
}

/**
 * @brief Multiplies v by other componentwise and returns a copy of the result.
 */
func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{
		v.X * other.X,
		v.Y * other.Y,
		v.Z * other.Z}
}

/**
 * @brief Divides v by other componentwise and returns a copy of the result.
 */
func (v Vec3) Div(other Vec3) Vec3 {
	return Vec3{
		v.X / other.X,
		v.Y / other.Y,
		v.Z / other.Z}
}

/**
 * @brief Multiplies all elements of v by scalar and returns a copy of the result.
 *
 * @param scalar The scalar value.
 * @return A copy of the resulting vector.
 */
func (v Vec3) MulScalar(scalar float32) Vec3 {
	return Vec3{
		v.X * scalar,
		v.Y * scalar,
		v.Z * scalar}
}

/**
 * @brief Divides all elements of v by scalar. Division by zero follows
 * IEEE-754 and yields infinities or NaN.
 */
func (v Vec3) DivScalar(scalar float32) Vec3 {
	return Vec3{
		v.X / scalar,
		v.Y / scalar,
		v.Z / scalar}
}

/**
 * @brief Returns the vector pointing the opposite way.
 */
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

/**
 * @brief Returns the squared length of the provided vector.
 */
func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

/**
 * @brief Returns the length of the provided vector.
 */
func (v Vec3) Length() float32 {
	return ksqrt(v.LengthSquared())
}

/**
 * @brief Returns a unit length copy of the vector.
 *
 * The length is not checked: a zero vector yields NaN components.
 * Use NormalizeSafe where a zero vector can show up.
 */
func (v Vec3) Normalize() Vec3 {
	return v.DivScalar(v.Length())
}

/**
 * @brief Returns a unit length copy of the vector and true, or the zero
 * vector and false when the vector has no usable length.
 */
func (v Vec3) NormalizeSafe() (Vec3, bool) {
	length := v.Length()
	if length <= K_FLOAT_EPSILON || !IsFinite(length) {
		return NewVec3Zero(), false
	}
	return v.DivScalar(length), true
}

/**
 * @brief Returns the dot product between the provided vectors. Typically used
 * to calculate the difference in direction.
 *
 * @param other The second vector.
 * @return The dot product.
 */
func (v Vec3) Dot(other Vec3) float32 {
	p := float32(0)
	p += v.X * other.X
	p += v.Y * other.Y
	p += v.Z * other.Z
	return p
}

/**
 * @brief Calculates and returns the cross product of the supplied vectors.
 * The cross product is a new vector which is orthoganal to both provided vectors,
 * following the right-hand rule, with a length equal to the area of the
 * parallelogram they span.
 *
 * @param other The second vector.
 * @return The cross product.
 */
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X}
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 *
 * @param other The second vector.
 * @param tolerance The difference tolerance. Typically K_FLOAT_EPSILON or similar.
 * @return True if within tolerance; otherwise false.
 */
func (v Vec3) Compare(other Vec3, tolerance float32) bool {
	if kabs(v.X-other.X) > tolerance {
		return false
	}

	if kabs(v.Y-other.Y) > tolerance {
		return false
	}

	if kabs(v.Z-other.Z) > tolerance {
		return false
	}

	return true
}

/**
 * @brief Returns the distance between v and other.
 */
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// IsNaN reports whether any component is NaN.
func (v Vec3) IsNaN() bool {
	return math32.IsNaN(v.X) || math32.IsNaN(v.Y) || math32.IsNaN(v.Z)
}

func (v Vec3) String() string {
	return fmt.Sprintf("[%.3f, %.3f, %.3f]", v.X, v.Y, v.Z)
}

// LerpVec3 interpolates componentwise, a*(1-t) + b*t. t may lie outside
// [0, 1], in which case the result extrapolates.
func LerpVec3(a, b Vec3, t float32) Vec3 {
	return Vec3{
		Lerp(a.X, b.X, t),
		Lerp(a.Y, b.Y, t),
		Lerp(a.Z, b.Z, t)}
}

// ------------------------------------------
// Vector 4
// ------------------------------------------

/**
 * @brief Creates and returns a new 4-element vector using the supplied values.
 */
func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

/**
 * @brief Creates and returns a 4-component vector with all components set to 0.0f.
 */
func NewVec4Zero() Vec4 {
	return Vec4{0.0, 0.0, 0.0, 0.0}
}

/**
 * @brief Creates and returns a 4-component vector with all components set to 1.0f.
 */
func NewVec4One() Vec4 {
	return Vec4{1.0, 1.0, 1.0, 1.0}
}

/**
 * @brief Returns a new vec3 containing the x, y and z components of the
 * supplied vec4, essentially dropping the w component.
 */
func (v Vec4) ToVec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
		W: v.W + other.W,
	}
}

func (v Vec4) Sub(other Vec4) Vec4 {
	return Vec4{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
		W: v.W - other.W,
	}
}

func (v Vec4) Mul(other Vec4) Vec4 {
	return Vec4{
		X: v.X * other.X,
		Y: v.Y * other.Y,
		Z: v.Z * other.Z,
		W: v.W * other.W,
	}
}

func (v Vec4) MulScalar(scalar float32) Vec4 {
	return Vec4{v.X * scalar, v.Y * scalar, v.Z * scalar, v.W * scalar}
}

func (v Vec4) DivScalar(scalar float32) Vec4 {
	return Vec4{v.X / scalar, v.Y / scalar, v.Z / scalar, v.W / scalar}
}

func (v Vec4) Dot(other Vec4) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z + v.W*other.W
}

func (v Vec4) LengthSquared() float32 {
	return v.Dot(v)
}

func (v Vec4) Length() float32 {
	return ksqrt(v.LengthSquared())
}

func (v Vec4) Normalize() Vec4 {
	return v.DivScalar(v.Length())
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 */
func (v Vec4) Compare(other Vec4, tolerance float32) bool {
	if kabs(v.X-other.X) > tolerance {
		return false
	}

	if kabs(v.Y-other.Y) > tolerance {
		return false
	}

	if kabs(v.Z-other.Z) > tolerance {
		return false
	}

	if kabs(v.W-other.W) > tolerance {
		return false
	}

	return true
}

// LerpVec4 interpolates componentwise, a*(1-t) + b*t.
func LerpVec4(a, b Vec4, t float32) Vec4 {
	return Vec4{
		Lerp(a.X, b.X, t),
		Lerp(a.Y, b.Y, t),
		Lerp(a.Z, b.Z, t),
		Lerp(a.W, b.W, t)}
}

package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/**
 * @brief a 4x4 matrix, typically used to represent object transformations.
 *
 * The elements are stored row-major. Rows 0-2 hold the local X, Y and Z
 * basis directions and row 3 holds the translation, so a point is
 * transformed by multiplying it as a row vector on the left: p' = p * M.
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

var (
	/** @brief The origin of the world, (0, 0, 0). */
	Vec3Origin = Vec3{0, 0, 0}
	/** @brief World right, (1, 0, 0). */
	Vec3Right = Vec3{1, 0, 0}
	/** @brief World up, (0, 1, 0). */
	Vec3Up = Vec3{0, 1, 0}
	/** @brief World forward, (0, 0, 1). */
	Vec3Forward = Vec3{0, 0, 1}
)

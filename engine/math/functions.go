package math

import (
	"github.com/chewxy/math32"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float32 = 3.14159265358979323846
	/** @brief An approximate representation of PI multiplied by 2. */
	K_PI_2 float32 = 2.0 * K_PI
	/** @brief An approximate representation of PI divided by 2. */
	K_HALF_PI float32 = 0.5 * K_PI
	/** @brief An approximate representation of PI divided by 4. */
	K_QUARTER_PI float32 = 0.25 * K_PI
	/** @brief An approximation of the square root of 2. */
	K_SQRT_TWO float32 = 1.41421356237309504880
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float32 = 180.0 / K_PI
	/** @brief The multiplier to convert seconds to milliseconds. */
	K_SEC_TO_MS_MULTIPLIER float32 = 1000.0
	/** @brief The multiplier to convert milliseconds to seconds. */
	K_MS_TO_SEC_MULTIPLIER float32 = 0.001
	/** @brief A huge number that should be larger than any valid number used. */
	K_INFINITY float32 = 1e30
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 0 */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
)

func ksin(x float32) float32 {
	return math32.Sin(x)
}

func kcos(x float32) float32 {
	return math32.Cos(x)
}

func ktan(x float32) float32 {
	return math32.Tan(x)
}

func ksqrt(x float32) float32 {
	return math32.Sqrt(x)
}

func kabs(x float32) float32 {
	return math32.Abs(x)
}

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

/**
 * @brief Converts provided degrees to radians.
 *
 * @param degrees The degrees to be converted.
 * @return The amount in radians.
 */
func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

/**
 * @brief Converts provided radians to degrees.
 *
 * @param radians The radians to be converted.
 * @return The amount in degrees.
 */
func RadToDeg(radians float32) float32 {
	return radians * K_RAD2DEG_MULTIPLIER
}

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	return kabs(x)
}

package collision

import (
	"github.com/spaghettifunk/anima-core/engine/core"
	"github.com/spaghettifunk/anima-core/engine/math"
)

// DefaultMaxIterations bounds the GJK loop. Well formed convex shapes settle
// in a handful of steps.
const DefaultMaxIterations int = 500

// A closest point this near the origin counts as touching.
const touchTolerance float32 = 1e-5

type Result struct {
	Collided bool
	/** @brief Support points evaluated before the answer was known. */
	Iterations int
	/** @brief False when the iteration cap was hit. Collided is false then. */
	Converged bool
}

/**
 * @brief Runs GJK intersection tests. A Detector holds no per-query state
 * and can be shared by goroutines testing independent pairs.
 */
type Detector struct {
	MaxIterations int
}

func NewDetector(max_iterations int) *Detector {
	if max_iterations <= 0 {
		max_iterations = DefaultMaxIterations
	}
	return &Detector{MaxIterations: max_iterations}
}

var defaultDetector = NewDetector(DefaultMaxIterations)

/**
 * @brief Reports whether the convex shapes a and b overlap, using the
 * default iteration cap.
 */
func CollisionBetween(a, b Collider) bool {
	return defaultDetector.Collides(a, b)
}

func (d *Detector) Collides(a, b Collider) bool {
	return d.Query(a, b).Collided
}

/**
 * @brief Searches the Minkowski difference a - b for the origin.
 *
 * Every step takes the support point along the current direction. If it
 * does not reach past the origin the shapes are apart. Otherwise the point
 * joins the simplex, the simplex shrinks to its feature nearest the origin
 * and the search turns toward the origin from there.
 */
func (d *Detector) Query(a, b Collider) Result {
	direction := math.Vec3Right
	simplex := NewSimplex()

	for i := 1; i <= d.MaxIterations; i++ {
		support := MinkowskiSupport(a, b, direction)
		if direction.Dot(support) < 0 {
			return Result{Collided: false, Iterations: i, Converged: true}
		}

		simplex = simplex.AddPoint(support)
		nearest, closest, ok := simplex.NearestSimplex()
		if !ok {
			break
		}
		if closest.LengthSquared() <= touchTolerance*touchTolerance || nearest.ContainsOrigin() {
			return Result{Collided: true, Iterations: i, Converged: true}
		}

		simplex = nearest
		direction = closest.Neg()
	}

	core.LogWarn("GJK did not converge after %d iterations, last simplex %v", d.MaxIterations, simplex)
	return Result{Collided: false, Iterations: d.MaxIterations, Converged: false}
}

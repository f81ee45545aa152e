package collision

import (
	"github.com/spaghettifunk/anima-core/engine/math"
)

/**
 * @brief Anything with a support function can take part in a collision
 * query. Support returns the point of the shape furthest along direction.
 * The shape is assumed to be convex.
 */
type Collider interface {
	Support(direction math.Vec3) math.Vec3
}

// SupportFunc lets a plain function act as a Collider.
type SupportFunc func(direction math.Vec3) math.Vec3

func (f SupportFunc) Support(direction math.Vec3) math.Vec3 {
	return f(direction)
}

type Sphere struct {
	Center math.Vec3
	Radius float32
}

func NewSphere(center math.Vec3, radius float32) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

/**
 * @brief Returns the point on the sphere surface along direction. A zero
 * direction has no furthest point, the center is returned instead.
 */
func (s *Sphere) Support(direction math.Vec3) math.Vec3 {
	n, ok := direction.NormalizeSafe()
	if !ok {
		return s.Center
	}
	return s.Center.Add(n.MulScalar(s.Radius))
}

/**
 * @brief A convex hull given by its vertices. Interior points are allowed
 * and simply never win the support search.
 */
type Hull struct {
	Points []math.Vec3
}

func NewHull(points ...math.Vec3) *Hull {
	return &Hull{Points: points}
}

// NewBox builds the eight corners of an axis aligned box.
func NewBox(center, half_extents math.Vec3) *Hull {
	points := make([]math.Vec3, 0, 8)
	for _, sx := range []float32{-1, 1} {
		for _, sy := range []float32{-1, 1} {
			for _, sz := range []float32{-1, 1} {
				corner := half_extents.Mul(math.Vec3{X: sx, Y: sy, Z: sz})
				points = append(points, center.Add(corner))
			}
		}
	}
	return &Hull{Points: points}
}

func (h *Hull) Support(direction math.Vec3) math.Vec3 {
	if len(h.Points) == 0 {
		return math.Vec3Origin
	}
	best := h.Points[0]
	best_dot := best.Dot(direction)
	for _, p := range h.Points[1:] {
		if d := p.Dot(direction); d > best_dot {
			best, best_dot = p, d
		}
	}
	return best
}

/**
 * @brief Moves another collider by a fixed offset, e.g. a hull described in
 * local space placed at an entity's location.
 */
type Translated struct {
	Shape  Collider
	Offset math.Vec3
}

func (t Translated) Support(direction math.Vec3) math.Vec3 {
	return t.Shape.Support(direction).Add(t.Offset)
}

/**
 * @brief Support point of the Minkowski difference a - b along direction.
 */
func MinkowskiSupport(a, b Collider, direction math.Vec3) math.Vec3 {
	return a.Support(direction).Sub(b.Support(direction.Neg()))
}

package collision

import (
	"fmt"

	"github.com/spaghettifunk/anima-core/engine/math"
)

// Distance below which a point counts as sitting on the origin.
const containTolerance float32 = 1e-5

/**
 * @brief A point, segment, triangle or tetrahedron used as the working set
 * of the GJK search. Values are immutable: AddPoint and NearestSimplex
 * return new simplices.
 *
 * The set of variants is closed: Null, Point, Line, Triangle and Tetrahedron.
 */
type Simplex interface {
	/** @brief Number of vertices, 0 to 4. */
	Arity() int
	Points() []math.Vec3
	/**
	 * @brief Returns the simplex one arity higher. Calling it on a
	 * Tetrahedron panics.
	 */
	AddPoint(p math.Vec3) Simplex
	/**
	 * @brief Projects the origin onto the simplex. Reports false when the
	 * projection falls outside the open interior, the caller should then
	 * look at the faces instead.
	 */
	NearestPointWithinSimplex() (math.Vec3, bool)
	/**
	 * @brief Returns the sub-simplex (possibly the simplex itself) holding
	 * the point closest to the origin, and that point. Reports false only
	 * for Null.
	 */
	NearestSimplex() (Simplex, math.Vec3, bool)
	ContainsOrigin() bool

	subSimplices() []Simplex
}

func NewSimplex() Simplex {
	return Null{}
}

// nearestSimplex tries the interior first and otherwise keeps the closest
// answer among the faces.
func nearestSimplex(s Simplex) (Simplex, math.Vec3, bool) {
	if p, ok := s.NearestPointWithinSimplex(); ok {
		return s, p, true
	}

	var best Simplex
	var best_point math.Vec3
	found := false
	for _, sub := range s.subSimplices() {
		candidate, p, ok := sub.NearestSimplex()
		if !ok {
			continue
		}
		if !found || p.LengthSquared() < best_point.LengthSquared() {
			best, best_point, found = candidate, p, true
		}
	}
	return best, best_point, found
}

// ------------------------------------------
// Null
// ------------------------------------------

type Null struct{}

func (Null) Arity() int { return 0 }

func (Null) Points() []math.Vec3 { return nil }

func (Null) AddPoint(p math.Vec3) Simplex {
	return Point{A: p}
}

func (Null) NearestPointWithinSimplex() (math.Vec3, bool) {
	return math.Vec3{}, false
}

func (Null) NearestSimplex() (Simplex, math.Vec3, bool) {
	return Null{}, math.Vec3{}, false
}

func (Null) ContainsOrigin() bool { return false }

func (Null) subSimplices() []Simplex { return nil }

func (Null) String() string { return "Null" }

// ------------------------------------------
// Point
// ------------------------------------------

type Point struct {
	A math.Vec3
}

func (Point) Arity() int { return 1 }

func (s Point) Points() []math.Vec3 { return []math.Vec3{s.A} }

func (s Point) AddPoint(p math.Vec3) Simplex {
	return Line{A: s.A, B: p}
}

func (s Point) NearestPointWithinSimplex() (math.Vec3, bool) {
	return s.A, true
}

func (s Point) NearestSimplex() (Simplex, math.Vec3, bool) {
	return s, s.A, true
}

func (s Point) ContainsOrigin() bool {
	return s.A.LengthSquared() <= containTolerance*containTolerance
}

func (Point) subSimplices() []Simplex { return nil }

func (s Point) String() string { return fmt.Sprintf("Point%v", s.Points()) }

// ------------------------------------------
// Line
// ------------------------------------------

type Line struct {
	A, B math.Vec3
}

func (Line) Arity() int { return 2 }

func (s Line) Points() []math.Vec3 { return []math.Vec3{s.A, s.B} }

func (s Line) AddPoint(p math.Vec3) Simplex {
	return Triangle{A: s.A, B: s.B, C: p}
}

// param returns t such that A + (B-A)*t is the projection of the origin.
func (s Line) param() (float32, math.Vec3) {
	d := s.B.Sub(s.A)
	return -s.A.Dot(d) / d.LengthSquared(), d
}

func (s Line) NearestPointWithinSimplex() (math.Vec3, bool) {
	t, d := s.param()
	if 0 < t && t < 1 {
		return s.A.Add(d.MulScalar(t)), true
	}
	return math.Vec3{}, false
}

func (s Line) NearestSimplex() (Simplex, math.Vec3, bool) {
	return nearestSimplex(s)
}

func (s Line) ContainsOrigin() bool {
	t, d := s.param()
	if !math.IsFinite(t) {
		return Point{A: s.A}.ContainsOrigin()
	}
	if t < 0 || t > 1 {
		return false
	}
	return s.A.Add(d.MulScalar(t)).LengthSquared() <= containTolerance*containTolerance
}

func (s Line) subSimplices() []Simplex {
	return []Simplex{Point{A: s.A}, Point{A: s.B}}
}

func (s Line) String() string { return fmt.Sprintf("Line%v", s.Points()) }

// ------------------------------------------
// Triangle
// ------------------------------------------

type Triangle struct {
	A, B, C math.Vec3
}

func (Triangle) Arity() int { return 3 }

func (s Triangle) Points() []math.Vec3 { return []math.Vec3{s.A, s.B, s.C} }

func (s Triangle) AddPoint(p math.Vec3) Simplex {
	return Tetrahedron{A: s.A, B: s.B, C: s.C, D: p}
}

// barycentric projects the origin onto the triangle plane and returns the
// weights of B and C, so the projection is A + (B-A)*v + (C-A)*w.
func (s Triangle) barycentric() (v, w float32, ab, ac math.Vec3) {
	ab = s.B.Sub(s.A)
	ac = s.C.Sub(s.A)
	ao := s.A.Neg()

	d00 := ab.Dot(ab)
	d01 := ab.Dot(ac)
	d11 := ac.Dot(ac)
	d20 := ao.Dot(ab)
	d21 := ao.Dot(ac)

	denom := d00*d11 - d01*d01
	v = (d11*d20 - d01*d21) / denom
	w = (d00*d21 - d01*d20) / denom
	return v, w, ab, ac
}

func (s Triangle) NearestPointWithinSimplex() (math.Vec3, bool) {
	v, w, ab, ac := s.barycentric()
	if 0 < v && v < 1 && 0 < w && w < 1 && v+w < 1 {
		return s.A.Add(ab.MulScalar(v)).Add(ac.MulScalar(w)), true
	}
	return math.Vec3{}, false
}

func (s Triangle) NearestSimplex() (Simplex, math.Vec3, bool) {
	return nearestSimplex(s)
}

func (s Triangle) ContainsOrigin() bool {
	v, w, ab, ac := s.barycentric()
	if !math.IsFinite(v) || !math.IsFinite(w) {
		// Collinear corners, the triangle is one of its edges.
		for _, edge := range s.subEdges() {
			if edge.ContainsOrigin() {
				return true
			}
		}
		return false
	}
	if v < 0 || w < 0 || v+w > 1 {
		return false
	}
	projection := s.A.Add(ab.MulScalar(v)).Add(ac.MulScalar(w))
	return projection.LengthSquared() <= containTolerance*containTolerance
}

func (s Triangle) subEdges() []Line {
	return []Line{{A: s.A, B: s.B}, {A: s.B, B: s.C}, {A: s.C, B: s.A}}
}

func (s Triangle) subSimplices() []Simplex {
	edges := s.subEdges()
	return []Simplex{edges[0], edges[1], edges[2]}
}

func (s Triangle) String() string { return fmt.Sprintf("Triangle%v", s.Points()) }

// ------------------------------------------
// Tetrahedron
// ------------------------------------------

type Tetrahedron struct {
	A, B, C, D math.Vec3
}

func (Tetrahedron) Arity() int { return 4 }

func (s Tetrahedron) Points() []math.Vec3 { return []math.Vec3{s.A, s.B, s.C, s.D} }

func (s Tetrahedron) AddPoint(p math.Vec3) Simplex {
	panic(fmt.Sprintf("collision: cannot add %s to a tetrahedron", p))
}

// The origin is the closest point whenever it is enclosed.
func (s Tetrahedron) NearestPointWithinSimplex() (math.Vec3, bool) {
	if s.ContainsOrigin() {
		return math.Vec3Origin, true
	}
	return math.Vec3{}, false
}

func (s Tetrahedron) NearestSimplex() (Simplex, math.Vec3, bool) {
	return nearestSimplex(s)
}

type face struct {
	tri      Triangle
	opposite math.Vec3
}

func (s Tetrahedron) faces() [4]face {
	return [4]face{
		{Triangle{A: s.A, B: s.B, C: s.C}, s.D},
		{Triangle{A: s.A, B: s.B, C: s.D}, s.C},
		{Triangle{A: s.A, B: s.C, C: s.D}, s.B},
		{Triangle{A: s.B, B: s.C, C: s.D}, s.A},
	}
}

/**
 * @brief For every face the origin must lie on the same side as the
 * opposite vertex, or on the face itself. The vertex order does not matter.
 */
func (s Tetrahedron) ContainsOrigin() bool {
	faces := s.faces()
	for _, f := range faces {
		normal := f.tri.B.Sub(f.tri.A).Cross(f.tri.C.Sub(f.tri.A))
		side_opposite := normal.Dot(f.opposite.Sub(f.tri.A))
		if side_opposite == 0 || !math.IsFinite(side_opposite) {
			return s.flatContainsOrigin()
		}
		side_origin := normal.Dot(f.tri.A.Neg())
		if side_origin != 0 && (side_origin > 0) != (side_opposite > 0) {
			return false
		}
	}
	return true
}

// flatContainsOrigin handles four coplanar points: their hull is covered by
// the four corner triangles.
func (s Tetrahedron) flatContainsOrigin() bool {
	for _, f := range s.faces() {
		if f.tri.ContainsOrigin() {
			return true
		}
	}
	return false
}

func (s Tetrahedron) subSimplices() []Simplex {
	faces := s.faces()
	return []Simplex{faces[0].tri, faces[1].tri, faces[2].tri, faces[3].tri}
}

func (s Tetrahedron) String() string { return fmt.Sprintf("Tetrahedron%v", s.Points()) }

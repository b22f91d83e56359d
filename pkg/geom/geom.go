// Package geom holds the pure 2D helpers the editor uses for hit-testing:
// polygon membership, distance to a wall segment and grid snapping.
package geom

import "math"

// Point is a position in world units.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Eq reports exact coordinate equality. Snapped points are exact multiples of
// the grid unit, so no tolerance is applied.
func (p Point) Eq(q Point) bool { return p.X == q.X && p.Y == q.Y }

// InPolygon is the even-odd ray cast. Each edge counts as half-open in y, so a
// point on the boundary gets the same answer on every call.
func InPolygon(p Point, vertices []Point) bool {
	inside := false
	n := len(vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := vertices[i], vertices[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// SegmentDistance returns the distance from p to the nearest point of the
// bounded segment ab. A zero-length segment degrades to the distance to a.
func SegmentDistance(p, a, b Point) float64 {
	cx, cy := b.X-a.X, b.Y-a.Y
	lenSq := cx*cx + cy*cy

	t := -1.0
	if lenSq != 0 {
		t = ((p.X-a.X)*cx + (p.Y-a.Y)*cy) / lenSq
	}

	var nearest Point
	switch {
	case t < 0:
		nearest = a
	case t > 1:
		nearest = b
	default:
		nearest = Point{a.X + t*cx, a.Y + t*cy}
	}
	return p.Dist(nearest)
}

// Snap rounds each coordinate to the nearest multiple of unit.
func Snap(p Point, unit float64) Point {
	if unit <= 0 {
		return p
	}
	return Point{
		X: math.Round(p.X/unit) * unit,
		Y: math.Round(p.Y/unit) * unit,
	}
}

// Centroid is the vertex average, used to place room labels.
func Centroid(vertices []Point) Point {
	if len(vertices) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, v := range vertices {
		sx += v.X
		sy += v.Y
	}
	n := float64(len(vertices))
	return Point{sx / n, sy / n}
}

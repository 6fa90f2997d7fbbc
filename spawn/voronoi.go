// Package spawn computes hazard-aware placement points. Given the cells
// occupied by living snakes it finds the point of the board furthest from
// any of them, using the vertices of the seeds' Voronoi diagram as
// candidates.
//
// The Voronoi vertices are obtained as the circumcenters of the seeds'
// Delaunay triangulation. Each circumcircle is empty of seeds, so the
// circumradius of a triangle is exactly the distance from its circumcenter
// to the nearest seed; maximizing the squared circumradius over in-bounds
// circumcenters yields the safest point.
package spawn

import "github.com/fogleman/delaunay"

// Point is a planar point. Seeds and results use the same type.
type Point struct {
	X float64
	Y float64
}

// vertex is a Voronoi vertex candidate with its squared clearance.
type vertex struct {
	p  Point
	r2 float64 // squared distance to the nearest seed
}

// voronoiVertices returns the finite Voronoi vertices of the seed set.
// Degenerate inputs (fewer than three distinct seeds, collinear seeds)
// yield no vertices rather than an error.
func voronoiVertices(seeds []Point) []vertex {
	if len(seeds) < 3 {
		return nil
	}
	pts := make([]delaunay.Point, len(seeds))
	for i, s := range seeds {
		pts[i] = delaunay.Point{X: s.X, Y: s.Y}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil
	}

	out := make([]vertex, 0, len(tri.Triangles)/3)
	for t := 0; t < len(tri.Triangles); t += 3 {
		a := tri.Points[tri.Triangles[t]]
		b := tri.Points[tri.Triangles[t+1]]
		c := tri.Points[tri.Triangles[t+2]]
		center, ok := circumcenter(a, b, c)
		if !ok {
			continue
		}
		dx, dy := center.X-a.X, center.Y-a.Y
		out = append(out, vertex{p: center, r2: dx*dx + dy*dy})
	}
	return out
}

// circumcenter returns the center of the circle through a, b and c.
// Collinear triangles have no circumcenter.
func circumcenter(a, b, c delaunay.Point) (Point, bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if d == 0 {
		return Point{}, false
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	return Point{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}, true
}

// FurthestPoint returns the Voronoi vertex of the seed set that lies inside
// [0,xlim) x [0,ylim) and maximizes the squared distance to its nearest
// seed. ok is false when the seed set is degenerate or no vertex falls in
// bounds; callers treat that as "no placement this tick".
func FurthestPoint(seeds []Point, xlim, ylim float64) (best Point, ok bool) {
	bestR2 := -1.0
	for _, v := range voronoiVertices(seeds) {
		if v.p.X < 0 || v.p.X >= xlim || v.p.Y < 0 || v.p.Y >= ylim {
			continue
		}
		if v.r2 > bestR2 {
			best, bestR2, ok = v.p, v.r2, true
		}
	}
	return best, ok
}

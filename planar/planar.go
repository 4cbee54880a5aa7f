// Package planar canonicalizes and triangulates sets of closed 2D contours
// under boolean winding rules.
//
// The package is the planar collaborator of the spherical kernel in the parent
// package: contours live on one octahedron face plane (z ≈ 0), carry a
// per-vertex edge flag, and are resolved into either boundary line loops or a
// set of triangles covering the selected region. The winding arithmetic itself is
// delegated to the Vatti clipper from github.com/ctessum/go.clipper; the
// triangulation of the resulting outer/hole hierarchy is done by ear clipping.
//
// References:
//   - Vatti: "A Generic Solution to Polygon Clipping" (1992)
//   - Eberly: "Triangulation by Ear Clipping" (2008)
package planar

import "github.com/go-gl/mathgl/mgl64"

// Winding selects which regions of the planar arrangement are kept.
type Winding int

const (
	// WindingPositive keeps regions with a winding count >= 1 (union-like).
	WindingPositive Winding = iota
	// WindingAbsGeqTwo keeps regions covered twice or more (intersection-like).
	WindingAbsGeqTwo
)

// EdgeVertex is a contour vertex together with the nature of the segment
// leaving it. Edge is true when that segment is a real polygon outline
// contributed by the caller, false when it was synthesized by an algorithm
// (plane cut, pole fill, self-intersection).
type EdgeVertex struct {
	Pos  mgl64.Vec3
	Edge bool
}

// Contour is a closed polygon boundary: the successor of the last vertex is
// the first vertex. A meaningful contour has at least 3 vertices.
type Contour []EdgeVertex

// Reversed returns the contour walked in the opposite direction. Edge flags
// travel with their originating vertex.
func (c Contour) Reversed() Contour {
	res := make(Contour, 0, len(c))
	for i := len(c) - 1; i >= 0; i-- {
		res = append(res, c[i])
	}
	return res
}

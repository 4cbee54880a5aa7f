package octpoly

import (
	"github.com/astromesh/octpoly/planar"
	"github.com/go-gl/mathgl/mgl64"
)

// poleEps is the z tolerance on the cross product of a split contour's
// endpoints, deciding whether a pole must be inserted to close it.
const poleEps = 1e-8

// splitContourByPlane partitions a closed contour by the coordinate plane
// perpendicular to the given axis, appending the pieces falling in the
// non-negative half-space to result[0] and the others to result[1].
//
// The contour is walked as a cyclic sequence: the run of leading vertices
// that precedes the first crossing is held back and concatenated with the
// trailing run, so a contour is never split spuriously at index 0. At every
// crossing the great-circle intersection with the plane is inserted on both
// sides with a cleared edge flag; when the intersection is degenerate the
// original endpoints are kept on their respective sides and the flags of the
// broken segment are cleared instead.
func splitContourByPlane(axis int, in planar.Contour, result *[2][]planar.Contour) {
	var current, unfinished planar.Contour
	var plane mgl64.Vec3
	plane[axis] = 1

	prevQ := side(in[0].Pos, axis)
	curQ := prevQ
	prev := in[0]
	var cur planar.EdgeVertex

	// Leading run: accumulate until the first crossing.
	i := 0
	for ; i < len(in); i++ {
		cur = in[i]
		curQ = side(cur.Pos, axis)
		if curQ != prevQ {
			if p, ok := greatCircleIntersection(prev.Pos, cur.Pos, plane); ok {
				unfinished = append(unfinished, planar.EdgeVertex{Pos: p})
				current = append(current, planar.EdgeVertex{Pos: p})
			} else {
				unfinished[len(unfinished)-1].Edge = false
			}
			prevQ = curQ
			break
		}
		unfinished = append(unfinished, cur)
		prev = cur
	}

	// Remaining vertices, re-entering at the crossing vertex.
	for ; i < len(in); i++ {
		cur = in[i]
		curQ = side(cur.Pos, axis)
		if curQ == prevQ {
			current = append(current, cur)
		} else {
			if p, ok := greatCircleIntersection(prev.Pos, cur.Pos, plane); ok {
				current = append(current, planar.EdgeVertex{Pos: p})
				result[prevQ] = append(result[prevQ], current)
				current = planar.Contour{{Pos: p}, cur}
			} else {
				current[len(current)-1].Edge = false
				result[prevQ] = append(result[prevQ], current)
				current = planar.Contour{{Pos: cur.Pos}}
			}
			prevQ = curQ
		}
		prev = cur
	}

	// Closing segment from the last vertex back to the first.
	prevQ = curQ
	curQ = side(in[0].Pos, axis)
	if curQ != prevQ {
		if p, ok := greatCircleIntersection(prev.Pos, in[0].Pos, plane); ok {
			current = append(current, planar.EdgeVertex{Pos: p})
			result[prevQ] = append(result[prevQ], current)
			current = planar.Contour{{Pos: p}}
		} else {
			current[len(current)-1].Edge = false
			result[prevQ] = append(result[prevQ], current)
			current = nil
		}
	}

	// The tail joins the held-back leading run, closing the cycle.
	current = append(current, unfinished...)
	result[curQ] = append(result[curQ], current)
}

// appendSubContour decomposes a spherical contour into the eight face-local
// planar contour lists and appends them to sides.
//
// The cuts are applied in the fixed order y=0, x=0, z=0. After the first two
// cuts a piece whose endpoints were synthesized may span a whole quadrant
// from one meridian cut to the other; the cross product of its endpoints
// tells which pole closes it. Only then is the z cut applied, and the eight
// groups are projected onto their face planes.
func (p *Polygon) appendSubContour(in planar.Contour) {
	if len(in) == 0 {
		return
	}

	var split1 [2][]planar.Contour
	splitContourByPlane(1, in, &split1)

	var split2 [4][]planar.Contour
	for _, c := range split1[0] {
		splitContourByPlane(0, c, (*[2][]planar.Contour)(split2[0:2]))
	}
	for _, c := range split1[1] {
		splitContourByPlane(0, c, (*[2][]planar.Contour)(split2[2:4]))
	}

	var result [8][]planar.Contour
	for q := 0; q < 4; q++ {
		for idx := range split2[q] {
			c := split2[q][idx]
			// An uncut piece still ends on a real edge vertex; only pieces
			// terminated by a synthesized cut may need a pole to close.
			if c[len(c)-1].Edge {
				continue
			}
			v := c[0].Pos.Cross(c[len(c)-1].Pos)
			if v[2] > poleEps {
				split2[q][idx] = append(c, planar.EdgeVertex{Pos: mgl64.Vec3{0, 0, -1}})
			} else if v[2] < -poleEps {
				split2[q][idx] = append(c, planar.EdgeVertex{Pos: mgl64.Vec3{0, 0, 1}})
			}
			// Otherwise the piece ends on the meridian it started from and
			// already closes over the cut.
		}
		for _, c := range split2[q] {
			splitContourByPlane(2, c, (*[2][]planar.Contour)(result[2*q:2*q+2]))
		}
	}

	for i := range result {
		for _, c := range result[i] {
			for j := range c {
				c[j].Pos = projectOnSide(c[j].Pos, i)
			}
		}
		p.sides[i] = append(p.sides[i], result[i]...)
	}
}

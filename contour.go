package octpoly

import (
	"math"
	"strconv"
	"strings"

	"github.com/astromesh/octpoly/planar"
	"github.com/go-gl/mathgl/mgl64"
)

// newSubContour builds a contour from a sequence of unit vectors. A closed
// contour is a polygon boundary, so every segment is a real outline edge. An
// open path keeps its interior segments as edges but flags its two endpoints
// as non-edges: the implicit closing segment is not part of the outline.
func newSubContour(points []mgl64.Vec3, closed bool) planar.Contour {
	c := make(planar.Contour, 0, len(points))
	for _, p := range points {
		c = append(c, planar.EdgeVertex{Pos: p, Edge: true})
	}
	if !closed && len(c) > 0 {
		c[0].Edge = false
		c[len(c)-1].Edge = false
	}
	return c
}

// contourJSON renders one sub-contour as an array of [ra, dec, edgeFlag]
// triples, angles in degrees with 12 significant digits.
func contourJSON(c planar.Contour) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range c {
		if i > 0 {
			b.WriteByte(',')
		}
		ra := math.Atan2(v.Pos[1], v.Pos[0]) * 180 / math.Pi
		dec := math.Asin(math.Max(-1, math.Min(1, v.Pos[2]))) * 180 / math.Pi
		b.WriteByte('[')
		b.WriteString(strconv.FormatFloat(ra, 'g', 12, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(dec, 'g', 12, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatBool(v.Edge))
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}

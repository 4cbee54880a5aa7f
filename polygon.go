// Package octpoly is a boolean geometry kernel for arbitrary regions on the
// unit sphere: survey footprints, sky masks, fields of view. A region is
// decomposed onto the eight triangular faces of an inscribed octahedron and
// all polygon arithmetic happens as planar 2D work on those faces, which
// keeps the hard part of the problem flat while great circles stay straight
// lines under the central projection.
//
// Contours are sequences of unit vectors wound counterclockwise as seen from
// the center of the sphere. Regions support in-place union, intersection and
// subtraction, point and region containment, area via Girard's theorem, and
// a binary serialization of the face decomposition.
package octpoly

import (
	"math"
	"strings"

	"github.com/astromesh/octpoly/planar"
	"github.com/go-gl/mathgl/mgl64"
)

// areaEqualEps is the steradian tolerance under which two region areas are
// considered equal by the containment test.
const areaEqualEps = 1e-11

// Polygon is a region of the unit sphere held as eight face-local contour
// lists plus derived caches: the fill triangles covering the region, the
// outline segments of its true boundary, and a bounding spherical cap. The
// contour lists are the source of truth; the caches are rebuilt after every
// mutation and must never feed back into one.
//
// A Polygon is not safe for concurrent mutation. Distinct instances share no
// state and can be used from different goroutines freely.
type Polygon struct {
	sides   [8][]planar.Contour
	fill    []mgl64.Vec3
	outline []mgl64.Vec3
	capN    mgl64.Vec3
	capD    float64
}

// NewPolygon builds a region from one or more closed spherical contours of
// unit vectors. Contours wound counterclockwise as seen from the center of
// the sphere enclose their interior; overlapping and self-intersecting
// contours are resolved with the positive winding rule.
func NewPolygon(contours ...[]mgl64.Vec3) *Polygon {
	p := &Polygon{}
	for _, c := range contours {
		p.appendSubContour(newSubContour(c, true))
	}
	p.tesselate(planar.WindingPositive)
	p.updateVertexArray()
	return p
}

// NewPolygonFromPath builds a region from a vertex path. When closed is
// false the first and last vertices are path endpoints rather than polygon
// corners, and the implicit closing segment is excluded from the outline.
func NewPolygonFromPath(points []mgl64.Vec3, closed bool) *Polygon {
	p := &Polygon{}
	p.appendSubContour(newSubContour(points, closed))
	p.tesselate(planar.WindingPositive)
	p.updateVertexArray()
	return p
}

// AllSky returns the region covering the whole sphere, built from the eight
// projected octant face triangles. Unlike polygons built from user contours
// its outline runs along the octahedron edges, so it has no single contour
// an interior sample could be derived from; PointInside still works through
// the fill cache.
func AllSky() *Polygon {
	p := &Polygon{}
	for i := range p.sides {
		s := sideDirections[i]
		tri := planar.Contour{
			{Pos: mgl64.Vec3{s[0], 0, 0}, Edge: true},
			{Pos: mgl64.Vec3{0, s[1], 0}, Edge: true},
			{Pos: mgl64.Vec3{}, Edge: true},
		}
		// Wind positively for this face's parity: clockwise in the face
		// plane on even faces, counterclockwise on odd ones. The signed
		// area of the corner triangle above is s[0]*s[1]/2.
		ccw := s[0]*s[1] > 0
		if ccw == (i%2 == 0) {
			tri[0], tri[1] = tri[1], tri[0]
		}
		p.sides[i] = []planar.Contour{tri}
	}
	p.tesselate(planar.WindingPositive)
	p.updateVertexArray()
	return p
}

// Copy returns a deep copy sharing no state with p.
func (p *Polygon) Copy() *Polygon {
	c := &Polygon{capN: p.capN, capD: p.capD}
	for i := range p.sides {
		if p.sides[i] == nil {
			continue
		}
		c.sides[i] = make([]planar.Contour, len(p.sides[i]))
		for j, sc := range p.sides[i] {
			c.sides[i][j] = append(planar.Contour(nil), sc...)
		}
	}
	c.fill = append([]mgl64.Vec3(nil), p.fill...)
	c.outline = append([]mgl64.Vec3(nil), p.outline...)
	return c
}

// append merges the other polygon's face contours into p without resolving
// overlaps; a tesselate pass decides what the combined winding means.
func (p *Polygon) append(o *Polygon) {
	for i := range p.sides {
		p.sides[i] = append(p.sides[i], o.sides[i]...)
	}
}

// appendReversed merges the other polygon's contours with their winding
// flipped, turning its interior into negative winding for subtraction.
func (p *Polygon) appendReversed(o *Polygon) {
	for i := range p.sides {
		for _, c := range o.sides[i] {
			p.sides[i] = append(p.sides[i], c.Reversed())
		}
	}
}

// tesselate canonicalizes every face's contour set under the winding rule,
// replacing it with the boundary line loops of the kept region. A face whose
// resolution fails is left empty rather than aborting the operation.
func (p *Polygon) tesselate(rule planar.Winding) {
	for i := range p.sides {
		if len(p.sides[i]) == 0 {
			continue
		}
		loops, err := planar.Loops(p.sides[i], i%2 == 0, rule)
		if err != nil {
			p.sides[i] = nil
			continue
		}
		p.sides[i] = loops
	}
}

// updateVertexArray rebuilds the fill and outline caches from the face
// contours and refits the bounding cap. Every mutation ends here, so a
// polygon handed to a caller always has consistent caches.
func (p *Polygon) updateVertexArray() {
	p.fill = p.fill[:0]
	p.outline = p.outline[:0]
	for i := range p.sides {
		if len(p.sides[i]) == 0 {
			continue
		}
		n := sideDirections[i]
		even := i%2 == 0

		if tris, err := planar.Triangles(p.sides[i], even); err == nil {
			for j := 0; j+2 < len(tris); j += 3 {
				// The triangulation stage can hand back the odd flipped
				// triangle; drop anything violating the face parity.
				var positive bool
				if even {
					positive = isTriangleConvexPositive2D(tris[j+2], tris[j+1], tris[j])
				} else {
					positive = isTriangleConvexPositive2D(tris[j], tris[j+1], tris[j+2])
				}
				if !positive {
					continue
				}
				p.fill = append(p.fill,
					unprojectSide(tris[j], n),
					unprojectSide(tris[j+1], n),
					unprojectSide(tris[j+2], n))
			}
		}

		// Outline segments: a segment survives when at least one of its
		// endpoints is a real edge vertex, including the closing segment.
		for _, c := range p.sides[i] {
			for j := range c {
				a := c[j]
				b := c[(j+1)%len(c)]
				if a.Edge || b.Edge {
					p.outline = append(p.outline, unprojectSide(a.Pos, n), unprojectSide(b.Pos, n))
				}
			}
		}
	}
	p.computeBoundingCap()
}

// Union grows p to cover other as well.
func (p *Polygon) Union(other *Polygon) {
	intersects := capsIntersect(p.capN, p.capD, other.capN, other.capD)
	p.append(other)
	if intersects {
		p.tesselate(planar.WindingPositive)
	}
	p.updateVertexArray()
}

// Intersect shrinks p to the region covered by both p and other.
func (p *Polygon) Intersect(other *Polygon) {
	if !capsIntersect(p.capN, p.capD, other.capN, other.capD) {
		for i := range p.sides {
			p.sides[i] = nil
		}
		p.updateVertexArray()
		return
	}
	p.append(other)
	p.tesselate(planar.WindingAbsGeqTwo)
	p.updateVertexArray()
}

// Subtract removes the region covered by other from p.
func (p *Polygon) Subtract(other *Polygon) {
	if !capsIntersect(p.capN, p.capD, other.capN, other.capD) {
		return
	}
	p.appendReversed(other)
	p.tesselate(planar.WindingPositive)
	p.updateVertexArray()
}

// IsEmpty reports whether the region covers nothing.
func (p *Polygon) IsEmpty() bool {
	for i := range p.sides {
		if len(p.sides[i]) > 0 {
			return false
		}
	}
	return true
}

// Area returns the region's area in steradians, summing the spherical excess
// of every fill triangle per Girard's theorem.
func (p *Polygon) Area() float64 {
	area := 0.0
	for i := 0; i+2 < len(p.fill); i += 3 {
		e1 := p.fill[i].Cross(p.fill[i+1])
		e2 := p.fill[i+1].Cross(p.fill[i+2])
		e3 := p.fill[i+2].Cross(p.fill[i])
		area += 2*math.Pi - angleBetween(e1, e2) - angleBetween(e2, e3) - angleBetween(e3, e1)
	}
	return area
}

// PointInside returns a unit vector located inside the region, derived from
// the first fill triangle. ok is false for an empty region.
func (p *Polygon) PointInside() (mgl64.Vec3, bool) {
	if len(p.fill) < 3 {
		return mgl64.Vec3{}, false
	}
	return p.fill[0].Add(p.fill[1]).Add(p.fill[2]).Normalize(), true
}

// ContainsPoint reports whether the unit vector v lies inside the region.
func (p *Polygon) ContainsPoint(v mgl64.Vec3) bool {
	if len(p.sides[sideNumber(v)]) == 0 {
		return false
	}
	for i := 0; i+2 < len(p.fill); i += 3 {
		if sideHalfSpaceContains(p.fill[i+1], p.fill[i], v) &&
			sideHalfSpaceContains(p.fill[i+2], p.fill[i+1], v) &&
			sideHalfSpaceContains(p.fill[i], p.fill[i+2], v) {
			return true
		}
	}
	return false
}

// Contains reports whether the region fully covers other: their union must
// not be any larger than p itself.
func (p *Polygon) Contains(other *Polygon) bool {
	if !capContains(p.capN, p.capD, other.capN, other.capD) {
		return false
	}
	union := p.Copy()
	union.Union(other)
	return union.Area()-p.Area() < areaEqualEps
}

// Intersects reports whether the two regions share any area.
func (p *Polygon) Intersects(other *Polygon) bool {
	if !capsIntersect(p.capN, p.capD, other.capN, other.capD) {
		return false
	}
	inter := p.Copy()
	inter.Intersect(other)
	return !inter.IsEmpty()
}

// Fill returns the cached fill triangles: unit vectors in groups of three,
// each spherical triangle wound consistently for an outside viewer. The
// slice is owned by the polygon and valid until the next mutation.
func (p *Polygon) Fill() []mgl64.Vec3 {
	return p.fill
}

// Outline returns the cached outline segments: unit vectors in groups of
// two, covering only the true polygon boundary, never the synthetic face
// cuts. The slice is owned by the polygon and valid until the next mutation.
func (p *Polygon) Outline() []mgl64.Vec3 {
	return p.outline
}

// BoundingCap returns the cap {v : n.v >= d} enclosing the whole region.
func (p *Polygon) BoundingCap() (n mgl64.Vec3, d float64) {
	return p.capN, p.capD
}

// ToJSON renders the face decomposition as a JSON array of eight face
// arrays, each sub-contour an array of [ra_deg, dec_deg, edgeFlag] triples.
// Intended for debugging.
func (p *Polygon) ToJSON() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := range p.sides {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('[')
		for j, c := range p.sides[i] {
			if j > 0 {
				b.WriteByte(',')
			}
			sky := make(planar.Contour, len(c))
			for k, v := range c {
				sky[k] = planar.EdgeVertex{Pos: unprojectSide(v.Pos, sideDirections[i]), Edge: v.Edge}
			}
			b.WriteString(contourJSON(sky))
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}

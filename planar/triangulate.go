package planar

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// areaEps is the signed-area cutoff below which a corner is treated as
// collinear during ear clipping. Face coordinates are O(1), so this is far
// below any real triangle produced by the 1e-8 clipper grid.
const areaEps = 1e-14

func cross2(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// earClip triangulates a polygon given as one counterclockwise outer ring and
// zero or more clockwise hole rings. Each hole is joined to the outer ring by
// a bridge edge (walked twice, once in each direction), which reduces the
// polygon to a single simple ring that a plain ear-clipping sweep can handle.
func earClip(outer []mgl64.Vec2, holes [][]mgl64.Vec2) [][3]mgl64.Vec2 {
	if len(outer) < 3 {
		return nil
	}
	ring := outer
	if len(holes) > 0 {
		hs := make([][]mgl64.Vec2, 0, len(holes))
		for _, h := range holes {
			if len(h) >= 3 {
				hs = append(hs, h)
			}
		}
		// Bridge right-to-left so a later bridge cannot cut through an
		// already-connected hole.
		sort.Slice(hs, func(i, j int) bool {
			return hs[i][rightmostIndex(hs[i])].X() > hs[j][rightmostIndex(hs[j])].X()
		})
		for _, h := range hs {
			ring = spliceHole(ring, h)
		}
	}
	return clipEars(ring)
}

func rightmostIndex(ring []mgl64.Vec2) int {
	best := 0
	for i := range ring {
		if ring[i].X() > ring[best].X() {
			best = i
		}
	}
	return best
}

// spliceHole connects a hole ring into the outer ring through a mutually
// visible vertex pair, following Eberly's ray-casting construction: shoot a
// ray toward +x from the hole's rightmost vertex, take the closest edge hit,
// then fall back to the most ray-aligned reflex vertex inside the candidate
// triangle if one occludes the bridge.
func spliceHole(ring, hole []mgl64.Vec2) []mgl64.Vec2 {
	mi := rightmostIndex(hole)
	m := hole[mi]

	bridge := -1
	bestX := math.Inf(1)
	var hit mgl64.Vec2
	for i := range ring {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		if (a.Y() > m.Y()) == (b.Y() > m.Y()) {
			continue
		}
		xi := a.X() + (m.Y()-a.Y())*(b.X()-a.X())/(b.Y()-a.Y())
		if xi >= m.X() && xi < bestX {
			bestX = xi
			hit = mgl64.Vec2{xi, m.Y()}
			// Candidate endpoint: the one on the far side of the ray.
			if a.X() > b.X() {
				bridge = i
			} else {
				bridge = (i + 1) % len(ring)
			}
		}
	}
	if bridge < 0 {
		// Hole not enclosed by the ring; connect to the nearest vertex so the
		// sweep still terminates on malformed input.
		bridge = nearestIndex(ring, m)
	} else {
		// The triangle (m, hit, candidate) must be empty of reflex vertices;
		// otherwise the bridge would cross the boundary. Redirect to the
		// reflex vertex most aligned with the ray.
		p := ring[bridge]
		bestTan := math.Inf(1)
		for i := range ring {
			v := ring[i]
			if v.X() < m.X() || v == p || !inTriangle(v, m, hit, p) {
				continue
			}
			if !isReflex(ring, i) {
				continue
			}
			tan := math.Abs(v.Y()-m.Y()) / math.Max(v.X()-m.X(), 1e-300)
			if tan < bestTan || (tan == bestTan && v.X() < ring[bridge].X()) {
				bestTan = tan
				bridge = i
			}
		}
	}

	out := make([]mgl64.Vec2, 0, len(ring)+len(hole)+2)
	out = append(out, ring[:bridge+1]...)
	out = append(out, hole[mi:]...)
	out = append(out, hole[:mi+1]...)
	out = append(out, ring[bridge:]...)
	return out
}

func nearestIndex(ring []mgl64.Vec2, p mgl64.Vec2) int {
	best := 0
	bestD := math.Inf(1)
	for i := range ring {
		d := ring[i].Sub(p).Len()
		if d < bestD {
			bestD = d
			best = i
		}
	}
	return best
}

func isReflex(ring []mgl64.Vec2, i int) bool {
	prev := ring[(i+len(ring)-1)%len(ring)]
	next := ring[(i+1)%len(ring)]
	return cross2(ring[i].Sub(prev), next.Sub(ring[i])) < 0
}

// inTriangle reports whether p lies inside or on the triangle (a,b,c),
// independent of the triangle's orientation.
func inTriangle(p, a, b, c mgl64.Vec2) bool {
	d1 := cross2(b.Sub(a), p.Sub(a))
	d2 := cross2(c.Sub(b), p.Sub(b))
	d3 := cross2(a.Sub(c), p.Sub(c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// clipEars triangulates a single counterclockwise simple ring.
func clipEars(ring []mgl64.Vec2) [][3]mgl64.Vec2 {
	if len(ring) < 3 {
		return nil
	}
	idx := make([]int, len(ring))
	for i := range idx {
		idx[i] = i
	}
	tris := make([][3]mgl64.Vec2, 0, len(ring)-2)
	for len(idx) > 3 {
		clipped := false
		for k := range idx {
			a, b, c := corner(ring, idx, k)
			if cross2(b.Sub(a), c.Sub(b)) <= areaEps {
				continue
			}
			if ringVertexInside(ring, idx, k, a, b, c) {
				continue
			}
			tris = append(tris, [3]mgl64.Vec2{a, b, c})
			idx = append(idx[:k], idx[k+1:]...)
			clipped = true
			break
		}
		if clipped {
			continue
		}
		// No clean ear: the leftovers are collinear runs or slivers from
		// bridge duplicates. Clip the widest corner so the sweep terminates;
		// emit it only when it has real area.
		best, bestCross := 0, math.Inf(-1)
		for k := range idx {
			a, b, c := corner(ring, idx, k)
			if cr := cross2(b.Sub(a), c.Sub(b)); cr > bestCross {
				bestCross = cr
				best = k
			}
		}
		if bestCross > areaEps {
			a, b, c := corner(ring, idx, best)
			tris = append(tris, [3]mgl64.Vec2{a, b, c})
		}
		idx = append(idx[:best], idx[best+1:]...)
	}
	a, b, c := corner(ring, idx, 1)
	if cross2(b.Sub(a), c.Sub(b)) > areaEps {
		tris = append(tris, [3]mgl64.Vec2{a, b, c})
	}
	return tris
}

func corner(ring []mgl64.Vec2, idx []int, k int) (a, b, c mgl64.Vec2) {
	n := len(idx)
	a = ring[idx[(k+n-1)%n]]
	b = ring[idx[k]]
	c = ring[idx[(k+1)%n]]
	return
}

// ringVertexInside reports whether any remaining ring vertex other than the
// ear's corners lies inside the candidate ear. Coordinate-equal duplicates
// (the two ends of a hole bridge) do not block an ear.
func ringVertexInside(ring []mgl64.Vec2, idx []int, k int, a, b, c mgl64.Vec2) bool {
	n := len(idx)
	skip0, skip1, skip2 := idx[(k+n-1)%n], idx[k], idx[(k+1)%n]
	for _, j := range idx {
		if j == skip0 || j == skip1 || j == skip2 {
			continue
		}
		p := ring[j]
		if p == a || p == b || p == c {
			continue
		}
		if inTriangle(p, a, b, c) {
			return true
		}
	}
	return false
}

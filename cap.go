package octpoly

import "github.com/go-gl/mathgl/mgl64"

// A bounding spherical cap {v : n.v >= d} encloses a polygon's outline and
// powers the cheap disjointness and containment early-outs of the boolean
// operations. The empty polygon carries the sentinel cap d = 2, which no unit
// vector can satisfy; both predicates below special-case d > 1 so the
// sentinel never reports an intersection and is contained in everything.

// capsIntersect reports whether the caps (n1,d1) and (n2,d2) can share a
// point. n1 and n2 are unit vectors.
func capsIntersect(n1 mgl64.Vec3, d1 float64, n2 mgl64.Vec3, d2 float64) bool {
	if d1 > 1 || d2 > 1 {
		return false
	}
	a := d1*d2 - n1.Dot(n2)
	return d1+d2 <= 0 || a <= 0 || (a <= 1 && a*a <= (1-d1*d1)*(1-d2*d2))
}

// capContains reports whether the cap (n1,d1) fully contains the cap (n2,d2):
// the angular distance between the centers plus the second cap's half-angle
// must not exceed the first cap's half-angle. In dot-product space that is
// n1.n2 - d1*d2 >= sqrt((1-d1^2)(1-d2^2)); the square is symmetric in d1 and
// d2, so the d1 <= d2 guard (the containing cap must be the wider one) does
// real work here.
func capContains(n1 mgl64.Vec3, d1 float64, n2 mgl64.Vec3, d2 float64) bool {
	if d2 > 1 {
		return true
	}
	if d1 > 1 || d1 > d2 {
		return false
	}
	a := n1.Dot(n2) - d1*d2
	return a >= 1 || (a >= 0 && a*a >= (1-d1*d1)*(1-d2*d2))
}

// computeBoundingCap refits the cap to the current outline cache: the cap
// axis is the normalized vertex sum, the aperture the worst dot product,
// widened by one part in 1e7 to absorb the round trip through projection.
func (p *Polygon) computeBoundingCap() {
	if len(p.outline) == 0 {
		p.capN = mgl64.Vec3{1, 0, 0}
		p.capD = 2
		return
	}
	var sum mgl64.Vec3
	for _, v := range p.outline {
		sum = sum.Add(v)
	}
	if sum.Len() < 1e-9 {
		// Outline vertices cancel out (region symmetric around the origin);
		// any axis works, the aperture widens to the whole sphere below.
		sum = mgl64.Vec3{1, 0, 0}
	}
	p.capN = sum.Normalize()
	p.capD = 1
	for _, v := range p.outline {
		if d := p.capN.Dot(v); d < p.capD {
			p.capD = d
		}
	}
	if p.capD > 0 {
		p.capD *= 0.9999999
	} else {
		p.capD *= 1.0000001
	}
}

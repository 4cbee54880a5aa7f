package octpoly

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// sideDirections lists the outward normals of the eight octahedron faces.
// The index encodes the sign pattern of a direction: bit 0 set for z < 0,
// bit 1 for x < 0, bit 2 for y < 0. This table is part of the serialization
// format and must never be reordered.
var sideDirections = [8]mgl64.Vec3{
	{1, 1, 1}, {1, 1, -1}, {-1, 1, 1}, {-1, 1, -1},
	{1, -1, 1}, {1, -1, -1}, {-1, -1, 1}, {-1, -1, -1},
}

// sideNumber returns the octant index of a direction.
func sideNumber(v mgl64.Vec3) int {
	i := 0
	if v[2] < 0 {
		i |= 1
	}
	if v[0] < 0 {
		i |= 2
	}
	if v[1] < 0 {
		i |= 4
	}
	return i
}

// side classifies a point against the coordinate plane perpendicular to the
// given axis: 0 for the non-negative half-space, 1 for the negative one.
func side(v mgl64.Vec3, axis int) int {
	if v[axis] >= 0 {
		return 0
	}
	return 1
}

// angleBetween returns the unsigned angle between two vectors in radians.
// The atan2 form stays accurate for nearly parallel and nearly antipodal
// arguments where acos of the dot product loses precision.
func angleBetween(a, b mgl64.Vec3) float64 {
	return math.Atan2(a.Cross(b).Len(), a.Dot(b))
}

// greatCircleIntersection returns the intersection of the great circle
// through p1 and p2 with the great circle whose plane normal is n, choosing
// the solution on the p1/p2 side of the sphere. ok is false when the inputs
// do not define a plane (p1 and p2 coincident or antipodal, or their great
// circle equal to n's).
func greatCircleIntersection(p1, p2, n mgl64.Vec3) (mgl64.Vec3, bool) {
	u := p1.Cross(p2).Cross(n)
	if u.Len() < 1e-9 {
		return mgl64.Vec3{}, false
	}
	u = u.Normalize()
	if u.Dot(p1.Add(p2)) < 0 {
		u = u.Mul(-1)
	}
	return u, true
}

// sideHalfSpaceContains reports whether p lies in the half-space bounded by
// the plane through the origin, v1 and v2, on the side of v1 x v2. The small
// negative tolerance accepts points sitting exactly on shared triangle edges.
func sideHalfSpaceContains(v1, v2, p mgl64.Vec3) bool {
	return v1.Cross(v2).Dot(p) >= -1e-17
}

// isTriangleConvexPositive2D reports whether the planar triangle (a,b,c) is
// wound counterclockwise in the xy plane (z components are ignored).
func isTriangleConvexPositive2D(a, b, c mgl64.Vec3) bool {
	return (b[0]-a[0])*(c[1]-a[1])-(b[1]-a[1])*(c[0]-a[0]) >= 0 &&
		(c[0]-b[0])*(a[1]-b[1])-(c[1]-b[1])*(a[0]-b[0]) >= 0 &&
		(a[0]-c[0])*(b[1]-c[1])-(a[1]-c[1])*(b[0]-c[0]) >= 0
}

// projectOnSide maps a point of octant i onto the face plane with a central
// projection of 90 degree aperture, dropping the z component afterwards.
func projectOnSide(v mgl64.Vec3, i int) mgl64.Vec3 {
	v = v.Mul(1 / sideDirections[i].Dot(v))
	v[2] = 0
	return v
}

// unprojectSide lifts a face-plane point back onto the unit sphere. The face
// plane satisfies n.v = 1, which recovers z, and normalizing lands the point
// on the sphere again.
func unprojectSide(v mgl64.Vec3, n mgl64.Vec3) mgl64.Vec3 {
	v[2] = (1 - n[0]*v[0] - n[1]*v[1]) / n[2]
	return v.Normalize()
}

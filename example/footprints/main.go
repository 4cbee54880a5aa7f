package main

import (
	"fmt"
	"math"

	"github.com/astromesh/octpoly"
	"github.com/go-gl/mathgl/mgl64"
)

// circle builds a closed contour of n vertices at the given angular radius
// around center, wound counterclockwise as seen from the center of the
// sphere.
func circle(center mgl64.Vec3, radiusDeg float64, n int) []mgl64.Vec3 {
	center = center.Normalize()
	// Build an orthonormal tangent basis (u, v) with u x v = center.
	ref := mgl64.Vec3{0, 0, 1}
	if math.Abs(center[2]) > 0.9 {
		ref = mgl64.Vec3{1, 0, 0}
	}
	u := center.Cross(ref).Normalize()
	v := center.Cross(u)
	r := radiusDeg * math.Pi / 180
	pts := make([]mgl64.Vec3, 0, n)
	for i := 0; i < n; i++ {
		t := -2 * math.Pi * float64(i) / float64(n)
		dir := u.Mul(math.Cos(t)).Add(v.Mul(math.Sin(t)))
		pts = append(pts, center.Mul(math.Cos(r)).Add(dir.Mul(math.Sin(r))))
	}
	return pts
}

func main() {
	// Two overlapping instrument fields of view near the celestial equator.
	fovA := octpoly.NewPolygon(circle(mgl64.Vec3{1, 0, 0.1}, 15, 64))
	fovB := octpoly.NewPolygon(circle(mgl64.Vec3{0.9, 0.3, 0.1}, 10, 64))

	sq := func(sterad float64) float64 { return sterad * math.Pow(180/math.Pi, 2) }

	fmt.Printf("field A: %.2f deg²\n", sq(fovA.Area()))
	fmt.Printf("field B: %.2f deg²\n", sq(fovB.Area()))

	overlap := fovA.Copy()
	overlap.Intersect(fovB)
	fmt.Printf("overlap: %.2f deg² (intersects: %v)\n", sq(overlap.Area()), fovA.Intersects(fovB))

	combined := fovA.Copy()
	combined.Union(fovB)
	fmt.Printf("combined: %.2f deg²\n", sq(combined.Area()))

	exclusive := fovA.Copy()
	exclusive.Subtract(fovB)
	fmt.Printf("A only: %.2f deg²\n", sq(exclusive.Area()))

	if sample, ok := overlap.PointInside(); ok {
		fmt.Printf("overlap sample point: %v (in A: %v, in B: %v)\n",
			sample, fovA.ContainsPoint(sample), fovB.ContainsPoint(sample))
	}

	blob, err := combined.MarshalBinary()
	if err != nil {
		panic(err)
	}
	fmt.Printf("serialized footprint: %d bytes\n", len(blob))
}

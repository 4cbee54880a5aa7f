package octpoly

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vec3ApproxEqual(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a[0]-b[0]) < tolerance &&
		math.Abs(a[1]-b[1]) < tolerance &&
		math.Abs(a[2]-b[2]) < tolerance
}

func TestSideNumber(t *testing.T) {
	// The index table is a wire-format contract: every octant direction must
	// map back to its own index.
	for i, dir := range sideDirections {
		if got := sideNumber(dir); got != i {
			t.Errorf("sideNumber(%v) = %d, want %d", dir, got, i)
		}
		p := dir.Normalize()
		if got := sideNumber(p); got != i {
			t.Errorf("sideNumber(%v) = %d, want %d", p, got, i)
		}
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	samples := []mgl64.Vec3{
		{0.3, 0.4, 0.866},
		{-0.3, 0.4, 0.866},
		{0.5, -0.5, 0.70710678},
		{-0.1, -0.2, -0.97467943},
		{0.9, 0.1, 0.42426407},
	}
	for _, v := range samples {
		v = v.Normalize()
		i := sideNumber(v)
		proj := projectOnSide(v, i)
		if proj[2] != 0 {
			t.Errorf("projectOnSide(%v): z = %g, want 0", v, proj[2])
		}
		back := unprojectSide(proj, sideDirections[i])
		if !vec3ApproxEqual(back, v, 1e-12) {
			t.Errorf("unprojectSide(projectOnSide(%v)) = %v", v, back)
		}
		if math.Abs(back.Len()-1) > 1e-12 {
			t.Errorf("unprojected point %v is not unit length", back)
		}
	}
}

func TestGreatCircleIntersection(t *testing.T) {
	t.Run("equator against a meridian plane", func(t *testing.T) {
		p, ok := greatCircleIntersection(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0})
		if !ok {
			t.Fatal("expected an intersection")
		}
		if !vec3ApproxEqual(p, mgl64.Vec3{0, 1, 0}, 1e-12) {
			t.Errorf("intersection = %v, want (0,1,0)", p)
		}
	})
	t.Run("picks the solution between the endpoints", func(t *testing.T) {
		a := mgl64.Vec3{0.9, -0.1, 0.42}.Normalize()
		b := mgl64.Vec3{0.9, 0.1, 0.42}.Normalize()
		p, ok := greatCircleIntersection(a, b, mgl64.Vec3{0, 1, 0})
		if !ok {
			t.Fatal("expected an intersection")
		}
		if p[0] < 0 || math.Abs(p[1]) > 1e-12 {
			t.Errorf("intersection = %v, want a point on y=0 near the arc", p)
		}
	})
	t.Run("coincident endpoints fail", func(t *testing.T) {
		a := mgl64.Vec3{0, 0, 1}
		if _, ok := greatCircleIntersection(a, a, mgl64.Vec3{1, 0, 0}); ok {
			t.Error("expected failure for coincident endpoints")
		}
	})
	t.Run("arc inside the cutting plane fails", func(t *testing.T) {
		a := mgl64.Vec3{1, 0, 0}
		b := mgl64.Vec3{0, 0, 1}
		if _, ok := greatCircleIntersection(a, b, mgl64.Vec3{0, 1, 0}); ok {
			t.Error("expected failure when the arc lies in the plane")
		}
	})
}

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		a, b mgl64.Vec3
		want float64
	}{
		{mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, math.Pi / 2},
		{mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 0, 0}, 0},
		{mgl64.Vec3{1, 0, 0}, mgl64.Vec3{-1, 0, 0}, math.Pi},
		{mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 1, 0}, math.Pi / 4},
	}
	for _, tt := range tests {
		if got := angleBetween(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("angleBetween(%v, %v) = %g, want %g", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCapPredicates(t *testing.T) {
	z := mgl64.Vec3{0, 0, 1}
	x := mgl64.Vec3{1, 0, 0}
	cos := func(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }

	t.Run("intersects", func(t *testing.T) {
		tests := []struct {
			name string
			n1   mgl64.Vec3
			d1   float64
			n2   mgl64.Vec3
			d2   float64
			want bool
		}{
			{"identical caps", z, cos(10), z, cos(10), true},
			{"nested caps", z, cos(30), z, cos(10), true},
			{"overlapping offset caps", z, cos(10), mgl64.Vec3{math.Sin(15 * math.Pi / 180), 0, cos(15)}, cos(10), true},
			{"disjoint small caps", x, cos(10), mgl64.Vec3{-1, 0, 0}, cos(10), false},
			{"two hemispheres always meet", z, 0, x, 0, true},
			{"empty sentinel vs real cap", x, 2, z, cos(60), false},
			{"empty sentinel vs full sphere", x, 2, z, -1, false},
		}
		for _, tt := range tests {
			if got := capsIntersect(tt.n1, tt.d1, tt.n2, tt.d2); got != tt.want {
				t.Errorf("%s: capsIntersect = %v, want %v", tt.name, got, tt.want)
			}
			// The predicate is symmetric; both argument orders must agree.
			if got := capsIntersect(tt.n2, tt.d2, tt.n1, tt.d1); got != tt.want {
				t.Errorf("%s (swapped): capsIntersect = %v, want %v", tt.name, got, tt.want)
			}
		}
	})

	t.Run("contains", func(t *testing.T) {
		off20 := mgl64.Vec3{math.Sin(20 * math.Pi / 180), 0, cos(20)}
		tests := []struct {
			name string
			n1   mgl64.Vec3
			d1   float64
			n2   mgl64.Vec3
			d2   float64
			want bool
		}{
			{"cap contains itself", z, cos(20), z, cos(20), true},
			{"wider concentric cap contains narrower", z, cos(30), z, cos(10), true},
			{"narrower does not contain wider", z, cos(10), z, cos(30), false},
			{"offset cap inside when angles fit", z, cos(60), off20, cos(10), true},
			{"offset cap outside when angles do not fit", z, cos(25), off20, cos(10), false},
			{"anything contains the empty sentinel", z, cos(10), x, 2, true},
			{"empty sentinel contains nothing real", x, 2, z, cos(10), false},
		}
		for _, tt := range tests {
			if got := capContains(tt.n1, tt.d1, tt.n2, tt.d2); got != tt.want {
				t.Errorf("%s: capContains = %v, want %v", tt.name, got, tt.want)
			}
		}
	})
}

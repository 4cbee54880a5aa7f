package planar

import (
	"fmt"
	"math"

	clipper "github.com/ctessum/go.clipper"
	"github.com/go-gl/mathgl/mgl64"
)

// clipScale converts face-plane coordinates (|x|+|y| <= 1) to the clipper's
// integer grid. 1e8 keeps the full subject inside the clipper fast-math range
// while resolving coordinates down to the 1e-8 vertex coincidence epsilon.
const clipScale = 1e8

// frameExtent is the half-size of the synthetic winding frame used by
// WindingAbsGeqTwo, comfortably outside any face-plane coordinate.
const frameExtent = 2 * clipScale

type gridPoint struct {
	x, y clipper.CInt
}

// flagTable records which grid points correspond to real outline vertices.
// Clipper preserves input vertices exactly on its integer grid, so an output
// vertex found in the table keeps its flag; synthesized intersection vertices
// miss the table and default to false. Coincident inputs OR their flags, the
// same way a tessellator combine callback would.
type flagTable map[gridPoint]bool

func (t flagTable) add(p gridPoint, edge bool) {
	if edge {
		t[p] = true
	} else if _, ok := t[p]; !ok {
		t[p] = false
	}
}

// toPath converts a contour to clipper grid coordinates, registering every
// vertex in the flag table. Even octahedron faces use a negative tessellation
// normal; mirroring y makes positive winding mean the same thing on every
// face inside the engine.
func toPath(c Contour, flipped bool, flags flagTable) clipper.Path {
	path := make(clipper.Path, 0, len(c))
	for _, v := range c {
		x := clipper.CInt(math.Round(v.Pos[0] * clipScale))
		y := clipper.CInt(math.Round(v.Pos[1] * clipScale))
		if flipped {
			y = -y
		}
		flags.add(gridPoint{x, y}, v.Edge)
		path = append(path, &clipper.IntPoint{X: x, Y: y})
	}
	return path
}

func fromPath(path clipper.Path, flipped bool, flags flagTable) Contour {
	c := make(Contour, 0, len(path))
	for _, p := range path {
		y := p.Y
		if flipped {
			y = -y
		}
		c = append(c, EdgeVertex{
			Pos:  mgl64.Vec3{float64(p.X) / clipScale, float64(y) / clipScale, 0},
			Edge: flags[gridPoint{p.X, p.Y}],
		})
	}
	return c
}

// windingFrame is a clockwise (winding -1) square enclosing the whole face
// plane. Adding it to the subject lowers every winding count by one, so the
// positive-fill solution of the combined subject is exactly the region where
// the original contours wind twice or more.
func windingFrame() clipper.Path {
	return clipper.Path{
		&clipper.IntPoint{X: -frameExtent, Y: -frameExtent},
		&clipper.IntPoint{X: -frameExtent, Y: frameExtent},
		&clipper.IntPoint{X: frameExtent, Y: frameExtent},
		&clipper.IntPoint{X: frameExtent, Y: -frameExtent},
	}
}

func addSubject(cl *clipper.Clipper, contours []Contour, flipped bool, flags flagTable) bool {
	added := false
	for _, c := range contours {
		if len(c) < 3 {
			continue
		}
		if cl.AddPath(toPath(c, flipped, flags), clipper.PtSubject, true) {
			added = true
		}
	}
	return added
}

// Loops resolves the contour set into its canonical boundary line loops under
// the given winding rule. Outer boundaries come back with positive winding,
// holes with negative winding, so the result can be fed straight back in as a
// later subject. flipped selects the mirrored orientation convention used by
// even octahedron faces. A nil result means the kept region is empty.
func Loops(contours []Contour, flipped bool, rule Winding) ([]Contour, error) {
	flags := make(flagTable)
	cl := clipper.NewClipper(0)
	if !addSubject(cl, contours, flipped, flags) {
		return nil, nil
	}
	if rule == WindingAbsGeqTwo {
		cl.AddPath(windingFrame(), clipper.PtSubject, true)
	}
	solution, ok := cl.Execute1(clipper.CtUnion, clipper.PftPositive, clipper.PftPositive)
	if !ok {
		return nil, fmt.Errorf("planar: winding resolution failed (rule %d)", rule)
	}
	var out []Contour
	for _, path := range solution {
		if len(path) < 3 {
			continue
		}
		out = append(out, fromPath(path, flipped, flags))
	}
	return out, nil
}

// Triangles triangulates the positive-winding region of the contour set.
// The result holds vertices in groups of three, each triangle wound
// positively under the face's orientation convention (counterclockwise for
// flipped=false, clockwise for flipped=true).
func Triangles(contours []Contour, flipped bool) ([]mgl64.Vec3, error) {
	flags := make(flagTable)
	cl := clipper.NewClipper(0)
	if !addSubject(cl, contours, flipped, flags) {
		return nil, nil
	}
	tree, ok := cl.Execute2(clipper.CtUnion, clipper.PftPositive, clipper.PftPositive)
	if !ok {
		return nil, fmt.Errorf("planar: triangulation clipping failed")
	}
	var out []mgl64.Vec3
	for _, outer := range tree.Childs() {
		collectTriangles(outer, flipped, &out)
	}
	return out, nil
}

// collectTriangles triangulates one outer boundary with its direct holes and
// recurses into any islands nested inside those holes.
func collectTriangles(node *clipper.PolyNode, flipped bool, out *[]mgl64.Vec3) {
	outer := ringOf(node.Contour())
	var holes [][]mgl64.Vec2
	for _, h := range node.Childs() {
		holes = append(holes, ringOf(h.Contour()))
		for _, island := range h.Childs() {
			collectTriangles(island, flipped, out)
		}
	}
	for _, t := range earClip(outer, holes) {
		for _, v := range t {
			y := v.Y()
			if flipped {
				y = -y
			}
			*out = append(*out, mgl64.Vec3{v.X(), y, 0})
		}
	}
}

func ringOf(path clipper.Path) []mgl64.Vec2 {
	ring := make([]mgl64.Vec2, 0, len(path))
	for _, p := range path {
		ring = append(ring, mgl64.Vec2{float64(p.X) / clipScale, float64(p.Y) / clipScale})
	}
	return ring
}

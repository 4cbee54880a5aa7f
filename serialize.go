package octpoly

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/astromesh/octpoly/planar"
	"github.com/go-gl/mathgl/mgl64"
)

// Wire format: the eight face-contour lists in octant index order, each a
// uint32-length-prefixed sequence of sub-contours, each sub-contour a
// uint32-length-prefixed sequence of {x, y, z float64, edgeFlag bool}
// vertices, all big-endian. Caches and the bounding cap are derivative state
// and are not serialized; they are rebuilt on read.

// maxWireCount bounds the length prefixes accepted on read, rejecting
// corrupt streams before they turn into huge allocations.
const maxWireCount = 1 << 24

type wireVertex struct {
	X, Y, Z float64
	Edge    bool
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *Polygon) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	for i := range p.sides {
		if err := binary.Write(&buf, binary.BigEndian, uint32(len(p.sides[i]))); err != nil {
			return nil, err
		}
		for _, c := range p.sides[i] {
			if err := binary.Write(&buf, binary.BigEndian, uint32(len(c))); err != nil {
				return nil, err
			}
			for _, v := range c {
				w := wireVertex{X: v.Pos[0], Y: v.Pos[1], Z: v.Pos[2], Edge: v.Edge}
				if err := binary.Write(&buf, binary.BigEndian, w); err != nil {
					return nil, err
				}
			}
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, replacing the
// polygon's contents and rebuilding the caches.
func (p *Polygon) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	var sides [8][]planar.Contour
	for i := range sides {
		var nContours uint32
		if err := binary.Read(r, binary.BigEndian, &nContours); err != nil {
			return fmt.Errorf("octpoly: reading face %d: %w", i, err)
		}
		if nContours > maxWireCount {
			return fmt.Errorf("octpoly: face %d: contour count %d out of range", i, nContours)
		}
		for c := uint32(0); c < nContours; c++ {
			var nVertices uint32
			if err := binary.Read(r, binary.BigEndian, &nVertices); err != nil {
				return fmt.Errorf("octpoly: reading face %d contour %d: %w", i, c, err)
			}
			if nVertices > maxWireCount {
				return fmt.Errorf("octpoly: face %d contour %d: vertex count %d out of range", i, c, nVertices)
			}
			contour := make(planar.Contour, 0, nVertices)
			for v := uint32(0); v < nVertices; v++ {
				var w wireVertex
				if err := binary.Read(r, binary.BigEndian, &w); err != nil {
					return fmt.Errorf("octpoly: reading face %d contour %d: %w", i, c, err)
				}
				contour = append(contour, planar.EdgeVertex{
					Pos:  mgl64.Vec3{w.X, w.Y, w.Z},
					Edge: w.Edge,
				})
			}
			sides[i] = append(sides[i], contour)
		}
	}
	if r.Len() != 0 {
		return fmt.Errorf("octpoly: %d trailing bytes after polygon data", r.Len())
	}
	p.sides = sides
	p.updateVertexArray()
	return nil
}

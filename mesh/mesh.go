// Package mesh provides indexed triangle meshes for the softrast renderer.
//
// A Mesh holds parallel position and texture-coordinate arrays plus a flat
// index list, three indices per triangle. Every (position, uv) pair that
// appears in the source is stored once, so a single index addresses both
// arrays.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Validation errors.
var (
	// ErrInvalidIndices is returned when the index list is not a whole
	// number of triangles or references a missing vertex.
	ErrInvalidIndices = errors.New("mesh: invalid indices")

	// ErrMismatchedUVs is returned when positions and uvs differ in length.
	ErrMismatchedUVs = errors.New("mesh: positions and uvs differ in length")
)

// Mesh is an indexed triangle list.
type Mesh struct {
	Positions []mgl64.Vec3
	UVs       []mgl64.Vec2
	Indices   []int
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three vertex indices of triangle i.
func (m *Mesh) Triangle(i int) [3]int {
	return [3]int{m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2]}
}

// Validate checks that the arrays are parallel and every index is in range.
func (m *Mesh) Validate() error {
	if len(m.Positions) != len(m.UVs) {
		return ErrMismatchedUVs
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidIndices, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if idx < 0 || idx >= len(m.Positions) {
			return fmt.Errorf("%w: index %d at %d out of range [0, %d)", ErrInvalidIndices, idx, i, len(m.Positions))
		}
	}
	return nil
}

// Triangle returns the single demo triangle facing +z.
func Triangle() *Mesh {
	return &Mesh{
		Positions: []mgl64.Vec3{
			{-1.1, -1.2, 0},
			{1.0, -1.04, 0},
			{0.0, 1.01, 0},
		},
		UVs: []mgl64.Vec2{
			{0.1, 0.1},
			{0.9, 0.1},
			{0.5, 0.9},
		},
		Indices: []int{0, 1, 2},
	}
}

// Cube returns a unit cube centered on the origin with each face mapped to
// the whole texture. Faces wind counter-clockwise seen from outside.
func Cube() *Mesh {
	// Each face: outward normal axis and the two in-plane axes (u, v) chosen
	// so that u x v points along the normal.
	faces := []struct {
		n, u, v mgl64.Vec3
	}{
		{mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{0, 0, -1}, mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}},
		{mgl64.Vec3{0, -1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}},
	}
	corners := [4]mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	m := &Mesh{}
	for _, f := range faces {
		base := len(m.Positions)
		for _, c := range corners {
			p := f.n.Mul(0.5).
				Add(f.u.Mul(c.X() - 0.5)).
				Add(f.v.Mul(c.Y() - 0.5))
			m.Positions = append(m.Positions, p)
			// Image rows grow downwards.
			m.UVs = append(m.UVs, mgl64.Vec2{c.X(), 1 - c.Y()})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

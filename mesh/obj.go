package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// OBJ parse errors.
var (
	// ErrSyntax is returned for a malformed OBJ statement.
	ErrSyntax = errors.New("mesh: obj syntax error")

	// ErrNoUV is returned when a face vertex has no texture coordinate.
	ErrNoUV = errors.New("mesh: face vertex without texture coordinate")

	// ErrBadIndex is returned when a face references a missing v or vt.
	ErrBadIndex = errors.New("mesh: face index out of range")
)

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("mesh: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	m, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("mesh: %s: %w", filepath.Base(path), err)
	}
	return m, nil
}

// ParseOBJ reads the v, vt and f statements of a Wavefront OBJ stream.
//
// Each distinct (position, uv) pair used by a face becomes one mesh vertex,
// in order of first use. Polygons are split into a triangle fan around their
// first vertex. Normals, groups, materials and smoothing statements are
// ignored.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	var (
		positions []mgl64.Vec3
		texcoords []mgl64.Vec2
		unique    = make(map[[2]int]int)
		m         = &Mesh{}
	)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			positions = append(positions, mgl64.Vec3{v[0], v[1], v[2]})

		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			texcoords = append(texcoords, mgl64.Vec2{v[0], v[1]})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: %w: face needs at least 3 vertices", line, ErrSyntax)
			}
			poly := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				key, err := parseFaceVertex(ref, len(positions), len(texcoords))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				idx, ok := unique[key]
				if !ok {
					idx = len(m.Positions)
					unique[key] = idx
					m.Positions = append(m.Positions, positions[key[0]])
					m.UVs = append(m.UVs, texcoords[key[1]])
				}
				poly = append(poly, idx)
			}
			for j := 0; j+2 < len(poly); j++ {
				m.Indices = append(m.Indices, poly[0], poly[j+1], poly[j+2])
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mesh: read obj: %w", err)
	}
	return m, nil
}

// parseFloats parses at least n leading floats from fields.
func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("%w: want %d values, got %d", ErrSyntax, n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		out[i] = f
	}
	return out, nil
}

// parseFaceVertex parses "p/t", "p/t/n" into zero-based (position, uv)
// indices. Negative references count back from the latest element.
func parseFaceVertex(ref string, nPos, nTex int) ([2]int, error) {
	parts := strings.Split(ref, "/")
	if len(parts) < 2 || parts[1] == "" {
		return [2]int{}, fmt.Errorf("%w: %q", ErrNoUV, ref)
	}
	p, err := resolveIndex(parts[0], nPos)
	if err != nil {
		return [2]int{}, err
	}
	t, err := resolveIndex(parts[1], nTex)
	if err != nil {
		return [2]int{}, err
	}
	return [2]int{p, t}, nil
}

func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", ErrSyntax, s)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += n
	default:
		return 0, fmt.Errorf("%w: zero index", ErrBadIndex)
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: %s of %d", ErrBadIndex, s, n)
	}
	return i, nil
}

// Package formats provides parsers for geometry file formats.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrOBJVertexFormat = errors.New("malformed OBJ vertex record")
	ErrOBJFaceFormat   = errors.New("malformed OBJ face record")
	ErrOBJFaceIndex    = errors.New("OBJ face index out of range")
	ErrOBJNoGeometry   = errors.New("OBJ contains no vertices or faces")
)

// OBJ holds the geometry of a parsed Wavefront OBJ file: a flat vertex
// coordinate buffer (x,y,z per vertex) and the face list with the file's
// native 1-based indices, ready for the soft-body input contract.
type OBJ struct {
	Vertices []float32
	Faces    [][]int
}

// VertexCount returns the number of vertices.
func (o *OBJ) VertexCount() int {
	return len(o.Vertices) / 3
}

// ParseOBJ parses the supported Wavefront OBJ subset: `v` position
// records and `f` face records with 3 or more entries. Texture/normal
// references in `v/vt/vn` entries are accepted and dropped; negative
// (relative) indices resolve against the vertices parsed so far. All
// other record types are ignored.
func ParseOBJ(data []byte) (*OBJ, error) {
	obj := &OBJ{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w at line %d: %q", ErrOBJVertexFormat, lineNo, line)
			}
			for _, fld := range fields[1:4] {
				val, err := strconv.ParseFloat(fld, 32)
				if err != nil {
					return nil, fmt.Errorf("%w at line %d: %v", ErrOBJVertexFormat, lineNo, err)
				}
				obj.Vertices = append(obj.Vertices, float32(val))
			}

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w at line %d: %q", ErrOBJFaceFormat, lineNo, line)
			}
			face := make([]int, 0, len(fields)-1)
			for _, fld := range fields[1:] {
				idx, err := parseFaceIndex(fld, obj.VertexCount())
				if err != nil {
					return nil, fmt.Errorf("%w at line %d: %v", ErrOBJFaceFormat, lineNo, err)
				}
				face = append(face, idx)
			}
			obj.Faces = append(obj.Faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(obj.Vertices) == 0 || len(obj.Faces) == 0 {
		return nil, ErrOBJNoGeometry
	}
	return obj, nil
}

// parseFaceIndex extracts the vertex index from a face entry of the form
// "v", "v/vt", "v//vn" or "v/vt/vn" and resolves relative indices.
func parseFaceIndex(entry string, vertexCount int) (int, error) {
	if i := strings.IndexByte(entry, '/'); i >= 0 {
		entry = entry[:i]
	}
	idx, err := strconv.Atoi(entry)
	if err != nil {
		return 0, err
	}
	if idx < 0 {
		// Relative to the vertices seen so far: -1 is the latest vertex
		idx = vertexCount + idx + 1
	}
	if idx < 1 || idx > vertexCount {
		return 0, fmt.Errorf("%w: %d of %d", ErrOBJFaceIndex, idx, vertexCount)
	}
	return idx, nil
}

// LoadOBJ reads and parses an OBJ file from disk.
func LoadOBJ(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	obj, err := ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return obj, nil
}

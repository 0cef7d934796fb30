package stl

import (
	"bytes"
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

const (
	headerSize     = 80
	countSize      = 4
	minBinarySize  = headerSize + countSize
	triangleRecord = 50 // normal, three vertices, attribute byte count
	asciiKeyword   = "solid"
)

// Detect classifies data as binary or ASCII STL. A buffer whose length matches the binary size
// implied by its triangle count is binary even when its header begins with "solid". Otherwise a
// header beginning with "solid" (any case) is ASCII. Anything else is treated as binary.
func Detect(data []byte) (Format, error) {
	if len(data) < minBinarySize {
		return FormatBinary, ErrTruncatedFile
	}
	count := uint64(binary.LittleEndian.Uint32(data[headerSize:minBinarySize]))
	if uint64(len(data)) == minBinarySize+count*triangleRecord {
		return FormatBinary, nil
	}
	header := data[:headerSize]
	if len(header) >= len(asciiKeyword) && strings.EqualFold(string(header[:len(asciiKeyword)]), asciiKeyword) {
		return FormatASCII, nil
	}
	return FormatBinary, nil
}

// Decode decodes an STL asset. Inputs under 84 bytes fail with ErrTruncatedFile; every other
// decode failure matches ErrMalformedMesh.
func Decode(data []byte) (*Mesh, error) {
	format, err := Detect(data)
	if err != nil {
		return nil, err
	}
	if format == FormatASCII {
		return decodeASCII(data)
	}
	return decodeBinary(data)
}

func decodeBinary(data []byte) (*Mesh, error) {
	count := uint64(binary.LittleEndian.Uint32(data[headerSize:minBinarySize]))
	if available := uint64(len(data)-minBinarySize) / triangleRecord; available < count {
		return nil, errors.Wrapf(ErrMalformedMesh, "header declares %d triangles but only %d records are present", count, available)
	}

	b := newBuilder(FormatBinary, int(count))
	offset := minBinarySize
	for i := uint64(0); i < count; i++ {
		rec := data[offset : offset+triangleRecord]
		normal := readVector(rec[0:12])
		verts := [3]r3.Vector{
			readVector(rec[12:24]),
			readVector(rec[24:36]),
			readVector(rec[36:48]),
		}
		b.addTriangle(normal, verts)
		offset += triangleRecord
	}
	return b.finish(), nil
}

func readVector(b []byte) r3.Vector {
	return r3.Vector{
		X: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[0:4]))),
		Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:8]))),
		Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:12]))),
	}
}

// decodeASCII scans facet and vertex lines. A facet line resets the pending vertices; the third
// vertex after it emits a triangle with the facet's normal. Vertices past the third are ignored
// until the next facet.
func decodeASCII(data []byte) (*Mesh, error) {
	b := newBuilder(FormatASCII, bytes.Count(data, []byte("facet")))
	var normal r3.Vector
	pending := make([]r3.Vector, 0, 3)

	for lineNo, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "facet":
			pending = pending[:0]
			if len(fields) >= 5 && strings.EqualFold(fields[1], "normal") {
				n, err := parseVector(fields[2:5])
				if err != nil {
					return nil, errors.Wrapf(err, "line %d", lineNo+1)
				}
				normal = n
			}
		case "vertex":
			if len(fields) < 4 {
				return nil, errors.Wrapf(ErrMalformedMesh, "line %d: vertex needs 3 coordinates", lineNo+1)
			}
			v, err := parseVector(fields[1:4])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo+1)
			}
			if len(pending) == 3 {
				continue
			}
			pending = append(pending, v)
			if len(pending) == 3 {
				b.addTriangle(normal, [3]r3.Vector{pending[0], pending[1], pending[2]})
			}
		}
	}
	return b.finish(), nil
}

func parseVector(tokens []string) (r3.Vector, error) {
	var c [3]float64
	for i, tok := range tokens {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return r3.Vector{}, errors.Wrapf(ErrMalformedMesh, "non-numeric coordinate %q", tok)
		}
		c[i] = f
	}
	return r3.Vector{X: c[0], Y: c[1], Z: c[2]}, nil
}

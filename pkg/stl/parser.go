package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/meshgraph/pkg/geometry"
)

// ErrMalformed is returned for input that is neither valid ASCII nor binary STL
var ErrMalformed = errors.New("stl: malformed input")

const (
	headerSize   = 80
	triangleSize = 50
)

// Parse reads an STL file and returns a Model
// It automatically detects whether the file is ASCII or binary format
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads an ASCII or binary STL stream. Binary files whose header
// happens to start with "solid" are recognised by their size.
func Decode(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) && !looksBinary(data) {
		return parseASCII(bytes.NewReader(data))
	}
	return parseBinary(bytes.NewReader(data))
}

func looksBinary(data []byte) bool {
	if len(data) < headerSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[headerSize:])
	return uint64(len(data)) == headerSize+4+uint64(count)*triangleSize
}

func parseVector(fields []string) (geometry.Vect3, error) {
	var xyz [3]float64
	for i, f := range fields[:3] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vect3{}, fmt.Errorf("coordinate %q: %w", f, ErrMalformed)
		}
		xyz[i] = v
	}
	return geometry.NewVect3(xyz[0], xyz[1], xyz[2]), nil
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("")

	var currentNormal geometry.Vect3
	var vertices []geometry.Vect3
	line := 0

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) < 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("line %d: facet without normal: %w", line, ErrMalformed)
			}
			n, err := parseVector(fields[2:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			currentNormal = n

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: short vertex: %w", line, ErrMalformed)
			}
			v, err := parseVector(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("line %d: facet with %d vertices: %w", line, len(vertices), ErrMalformed)
			}
			model.AddTriangle(geometry.NewTriangle(currentNormal, vertices[0], vertices[1], vertices[2]))
			vertices = vertices[:0]
			currentNormal = geometry.Zero
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return model, nil
}

type binaryTriangle struct {
	Normal     [3]float32
	V1, V2, V3 [3]float32
	Attribute  uint16
}

func toVect(v [3]float32) geometry.Vect3 {
	return geometry.NewVect3(float64(v[0]), float64(v[1]), float64(v[2]))
}

func fromVect(v geometry.Vect3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

// parseBinary parses a binary STL file
func parseBinary(reader io.Reader) (*Model, error) {
	model := NewModel("")

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", errors.Join(err, ErrMalformed))
	}
	model.Name = strings.TrimSpace(string(bytes.TrimRight(header, "\x00")))

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", errors.Join(err, ErrMalformed))
	}

	for i := uint32(0); i < triangleCount; i++ {
		var t binaryTriangle
		if err := binary.Read(reader, binary.LittleEndian, &t); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, errors.Join(err, ErrMalformed))
		}
		model.AddTriangle(geometry.NewTriangle(toVect(t.Normal), toVect(t.V1), toVect(t.V2), toVect(t.V3)))
	}

	return model, nil
}

// Write encodes m as binary STL
func Write(w io.Writer, m *Model) error {
	header := make([]byte, headerSize)
	copy(header, m.Name)
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(m.Triangles))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}
	for i, t := range m.Triangles {
		bt := binaryTriangle{
			Normal: fromVect(t.Normal),
			V1:     fromVect(t.V1),
			V2:     fromVect(t.V2),
			V3:     fromVect(t.V3),
		}
		if err := binary.Write(bw, binary.LittleEndian, &bt); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// WriteFile writes m as binary STL to filename
func WriteFile(filename string, m *Model) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(file, m); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

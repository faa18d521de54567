// Package ply reads 3D-gaussian-splatting point clouds from PLY files: the
// per-vertex positions, opacities, spherical harmonic coefficients, scales
// and rotations written by splat training pipelines.
package ply

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	formatASCII  = "ascii"
	formatBinary = "binary_little_endian"
)

// Fixed-width scalar property sizes in bytes. List properties are not used
// by splat files and are rejected.
var scalarSizes = map[string]int{
	"char": 1, "int8": 1,
	"uchar": 1, "uint8": 1,
	"short": 2, "int16": 2,
	"ushort": 2, "uint16": 2,
	"int": 4, "int32": 4,
	"uint": 4, "uint32": 4,
	"float": 4, "float32": 4,
	"double": 8, "float64": 8,
}

type property struct {
	Name string
	Type string
}

type element struct {
	Name       string
	Count      int
	Properties []property
}

// Cloud holds the captured per-vertex attribute groups. Attribute groups
// absent from the file are left empty; only positions are mandatory.
type Cloud struct {
	// Vertex positions.
	XYZ []r3.Vec

	// Per-vertex opacity.
	Opacities []float64

	// Direct-current spherical harmonic coefficients (f_dc_0..2).
	DC [][3]float64

	// Higher-order SH coefficients (f_rest_*), numerically ordered.
	HigherOrderSH [][]float64

	// Per-axis log scales (scale_*).
	Scales [][]float64

	// Rotation quaternion components (rot_*).
	Rotations [][]float64
}

// Read parses the PLY file at path.
func Read(path string) (*Cloud, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ply: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses a PLY stream. Both ascii and binary_little_endian layouts
// are supported.
func Decode(r io.Reader) (*Cloud, error) {
	br := bufio.NewReader(r)

	format, elements, err := parseHeader(br)
	if err != nil {
		return nil, err
	}

	var vertex *element
	for i := range elements {
		if elements[i].Name == "vertex" {
			vertex = &elements[i]
			break
		}

		// Skip any fixed-stride element preceding the vertex data.
		if err := skipElement(br, format, elements[i]); err != nil {
			return nil, err
		}
	}
	if vertex == nil {
		return nil, fmt.Errorf("%w: vertex", ErrMissingProperty)
	}

	values, err := readElement(br, format, *vertex)
	if err != nil {
		return nil, err
	}

	return capture(*vertex, values)
}

func parseHeader(br *bufio.Reader) (string, []element, error) {
	magic, err := readHeaderLine(br)
	if err != nil {
		return "", nil, err
	}
	if magic != "ply" {
		return "", nil, ErrBadMagic
	}

	var format string
	var elements []element
	for {
		line, err := readHeaderLine(br)
		if err != nil {
			return "", nil, err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "comment", "obj_info":
			// ignored
		case "format":
			if len(fields) < 2 {
				return "", nil, fmt.Errorf("%w: malformed format line %q", ErrUnsupportedFormat, line)
			}
			format = fields[1]
			if format != formatASCII && format != formatBinary {
				return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
			}
		case "element":
			if len(fields) != 3 {
				return "", nil, fmt.Errorf("%w: malformed element line %q", ErrUnsupportedFormat, line)
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil || count < 0 {
				return "", nil, fmt.Errorf("%w: bad element count in %q", ErrUnsupportedFormat, line)
			}
			elements = append(elements, element{Name: fields[1], Count: count})
		case "property":
			if len(elements) == 0 {
				return "", nil, fmt.Errorf("%w: property before element", ErrUnsupportedFormat)
			}
			if len(fields) >= 2 && fields[1] == "list" {
				return "", nil, fmt.Errorf("%w: list properties", ErrUnsupportedFormat)
			}
			if len(fields) != 3 {
				return "", nil, fmt.Errorf("%w: malformed property line %q", ErrUnsupportedFormat, line)
			}
			if _, known := scalarSizes[fields[1]]; !known {
				return "", nil, fmt.Errorf("%w: property type %s", ErrUnsupportedFormat, fields[1])
			}
			last := &elements[len(elements)-1]
			last.Properties = append(last.Properties, property{Name: fields[2], Type: fields[1]})
		case "end_header":
			if format == "" {
				return "", nil, fmt.Errorf("%w: missing format line", ErrUnsupportedFormat)
			}
			return format, elements, nil
		default:
			return "", nil, fmt.Errorf("%w: header line %q", ErrUnsupportedFormat, line)
		}
	}
}

func readHeaderLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("ply: reading header: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (e element) stride() int {
	total := 0
	for _, prop := range e.Properties {
		total += scalarSizes[prop.Type]
	}
	return total
}

func skipElement(br *bufio.Reader, format string, e element) error {
	if format == formatASCII {
		for i := 0; i < e.Count; i++ {
			if _, err := br.ReadString('\n'); err != nil {
				return ErrTruncated
			}
		}
		return nil
	}

	if _, err := io.CopyN(io.Discard, br, int64(e.Count)*int64(e.stride())); err != nil {
		return ErrTruncated
	}
	return nil
}

// readElement decodes all rows of an element into float64 columns indexed
// like the element's property list.
func readElement(br *bufio.Reader, format string, e element) ([][]float64, error) {
	values := make([][]float64, e.Count)

	if format == formatASCII {
		for i := range values {
			line, err := br.ReadString('\n')
			if err != nil && !(err == io.EOF && i == e.Count-1 && line != "") {
				return nil, ErrTruncated
			}

			fields := strings.Fields(line)
			if len(fields) != len(e.Properties) {
				return nil, fmt.Errorf("%w: expected %d values per vertex; got %d", ErrTruncated, len(e.Properties), len(fields))
			}

			row := make([]float64, len(fields))
			for j, field := range fields {
				val, err := strconv.ParseFloat(field, 64)
				if err != nil {
					return nil, fmt.Errorf("ply: invalid vertex value %q: %w", field, err)
				}
				row[j] = val
			}
			values[i] = row
		}
		return values, nil
	}

	buf := make([]byte, e.stride())
	for i := range values {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, ErrTruncated
		}

		row := make([]float64, len(e.Properties))
		offset := 0
		for j, prop := range e.Properties {
			row[j] = decodeScalar(prop.Type, buf[offset:])
			offset += scalarSizes[prop.Type]
		}
		values[i] = row
	}
	return values, nil
}

func decodeScalar(typ string, data []byte) float64 {
	switch typ {
	case "char", "int8":
		return float64(int8(data[0]))
	case "uchar", "uint8":
		return float64(data[0])
	case "short", "int16":
		return float64(int16(binary.LittleEndian.Uint16(data)))
	case "ushort", "uint16":
		return float64(binary.LittleEndian.Uint16(data))
	case "int", "int32":
		return float64(int32(binary.LittleEndian.Uint32(data)))
	case "uint", "uint32":
		return float64(binary.LittleEndian.Uint32(data))
	case "float", "float32":
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(data)))
	default: // double, float64
		return math.Float64frombits(binary.LittleEndian.Uint64(data))
	}
}

// capture assembles the attribute groups the analysis pipeline cares about
// from the raw vertex columns.
func capture(vertex element, values [][]float64) (*Cloud, error) {
	index := make(map[string]int, len(vertex.Properties))
	for i, prop := range vertex.Properties {
		index[prop.Name] = i
	}

	for _, name := range []string{"x", "y", "z"} {
		if _, exists := index[name]; !exists {
			return nil, fmt.Errorf("%w: %s", ErrMissingProperty, name)
		}
	}

	cloud := &Cloud{XYZ: make([]r3.Vec, len(values))}
	for i, row := range values {
		cloud.XYZ[i] = r3.Vec{X: row[index["x"]], Y: row[index["y"]], Z: row[index["z"]]}
	}

	if col, exists := index["opacity"]; exists {
		cloud.Opacities = column(values, col)
	}

	if dc0, exists := index["f_dc_0"]; exists {
		dc1, ok1 := index["f_dc_1"]
		dc2, ok2 := index["f_dc_2"]
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: f_dc_1/f_dc_2", ErrMissingProperty)
		}
		cloud.DC = make([][3]float64, len(values))
		for i, row := range values {
			cloud.DC[i] = [3]float64{row[dc0], row[dc1], row[dc2]}
		}
	}

	cloud.HigherOrderSH = group(vertex, values, index, "f_rest_")
	cloud.Scales = group(vertex, values, index, "scale_")
	cloud.Rotations = group(vertex, values, index, "rot_")

	return cloud, nil
}

func column(values [][]float64, col int) []float64 {
	out := make([]float64, len(values))
	for i, row := range values {
		out[i] = row[col]
	}
	return out
}

// group collects all properties sharing a prefix, ordered by their numeric
// suffix (f_rest_2 sorts after f_rest_1, not after f_rest_19).
func group(vertex element, values [][]float64, index map[string]int, prefix string) [][]float64 {
	var names []string
	for _, prop := range vertex.Properties {
		if strings.HasPrefix(prop.Name, prefix) {
			names = append(names, prop.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}

	sort.Slice(names, func(i, j int) bool {
		return numericSuffix(names[i]) < numericSuffix(names[j])
	})

	out := make([][]float64, len(values))
	for i, row := range values {
		comps := make([]float64, len(names))
		for j, name := range names {
			comps[j] = row[index[name]]
		}
		out[i] = comps
	}
	return out
}

func numericSuffix(name string) int {
	idx := strings.LastIndex(name, "_")
	if idx < 0 || idx == len(name)-1 {
		return 0
	}
	val, err := strconv.Atoi(name[idx+1:])
	if err != nil {
		return 0
	}
	return val
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package zarr

import (
	"encoding/binary"
	"fmt"
	"math"
)

// dtype describes a numeric element type parsed from a .zarray dtype
// string such as "<f4": byte order, kind, and item size.
type dtype struct {
	order binary.ByteOrder
	kind  byte
	size  int
}

// parseDType accepts little- and big-endian float and signed integer
// types. Single-byte types declared with "|" decode as little-endian.
func parseDType(s string) (dtype, error) {
	if len(s) != 3 {
		return dtype{}, fmt.Errorf("unsupported dtype %q", s)
	}

	var order binary.ByteOrder
	switch s[0] {
	case '<', '|':
		order = binary.LittleEndian
	case '>':
		order = binary.BigEndian
	default:
		return dtype{}, fmt.Errorf("unsupported dtype %q", s)
	}

	kind := s[1]
	size := int(s[2] - '0')
	switch {
	case kind == 'f' && (size == 4 || size == 8):
	case kind == 'i' && (size == 2 || size == 4 || size == 8):
	default:
		return dtype{}, fmt.Errorf("unsupported dtype %q", s)
	}

	return dtype{order: order, kind: kind, size: size}, nil
}

// at decodes element i of a decompressed chunk as float64.
func (d dtype) at(raw []byte, i int) float64 {
	b := raw[i*d.size : (i+1)*d.size]
	switch {
	case d.kind == 'f' && d.size == 4:
		return float64(math.Float32frombits(d.order.Uint32(b)))
	case d.kind == 'f' && d.size == 8:
		return math.Float64frombits(d.order.Uint64(b))
	case d.size == 2:
		return float64(int16(d.order.Uint16(b)))
	case d.size == 4:
		return float64(int32(d.order.Uint32(b)))
	default:
		return float64(int64(d.order.Uint64(b)))
	}
}

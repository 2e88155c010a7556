// Package channel maps the shared frame file that a producer process writes
// and the viewer reads.
//
// Layout (host byte order on both sides):
//
//	offset 0: consumed flag (1 byte, 3 bytes padding)
//	offset 4: dimension     (uint32)
//	offset 8: raster        (dimension*dimension RGB triples, row-major)
//
// The producer owns the raster bytes and the Ready value of the flag. The
// viewer owns the Idle value. Nothing else guards the raster.
package channel

import (
	"encoding/binary"
	"fmt"
)

const (
	// HeaderSize is the aligned size of the header; the raster starts here.
	HeaderSize = 8

	// BytesPerPixel is one R, G, B triple.
	BytesPerPixel = 3

	// MaxDimension bounds the side length accepted from a header.
	MaxDimension = 8192

	flagOffset      = 0
	dimensionOffset = 4
)

var byteOrder = binary.NativeEndian

// Header is the fixed record at the start of the backing file.
type Header struct {
	Consumed  bool
	Dimension uint32
}

// RasterSize is the byte length of the raster region declared by h.
func (h Header) RasterSize() int {
	d := int(h.Dimension)
	return d * d * BytesPerPixel
}

// FileSize is the minimum backing file size for h.
func (h Header) FileSize() int {
	return HeaderSize + h.RasterSize()
}

// Validate reports ErrInvalidDimension for a zero or oversized dimension.
func (h Header) Validate() error {
	if h.Dimension == 0 {
		return fmt.Errorf("%w: dimension is zero", ErrInvalidDimension)
	}
	if h.Dimension > MaxDimension {
		return fmt.Errorf("%w: dimension %d exceeds %d", ErrInvalidDimension, h.Dimension, MaxDimension)
	}
	return nil
}

// MarshalTo writes h into b, which must hold at least HeaderSize bytes.
// Padding bytes are zeroed.
func (h Header) MarshalTo(b []byte) {
	_ = b[HeaderSize-1]
	for i := range b[:HeaderSize] {
		b[i] = 0
	}
	if h.Consumed {
		b[flagOffset] = 1
	}
	byteOrder.PutUint32(b[dimensionOffset:], h.Dimension)
}

// ParseHeader decodes the first HeaderSize bytes of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, have %d", ErrChannelUnavailable, HeaderSize, len(b))
	}
	return Header{
		Consumed:  b[flagOffset] != 0,
		Dimension: byteOrder.Uint32(b[dimensionOffset:]),
	}, nil
}

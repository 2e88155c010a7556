package channel

import (
	"errors"
	"testing"
)

func TestHeaderRoundTrip(t *testing.T) {
	cases := []Header{
		{Consumed: false, Dimension: 1},
		{Consumed: true, Dimension: 64},
		{Consumed: false, Dimension: 255},
		{Consumed: true, Dimension: 256},
		{Consumed: true, Dimension: MaxDimension},
	}
	for _, want := range cases {
		buf := make([]byte, HeaderSize)
		want.MarshalTo(buf)
		got, err := ParseHeader(buf)
		if err != nil {
			t.Fatalf("ParseHeader(%+v): %v", want, err)
		}
		if got != want {
			t.Errorf("round trip: got %+v, want %+v", got, want)
		}
	}
}

func TestHeaderLayout(t *testing.T) {
	buf := []byte{0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA}
	Header{Consumed: true, Dimension: 64}.MarshalTo(buf)

	if buf[0] != 1 {
		t.Errorf("flag byte = %d, want 1", buf[0])
	}
	for i := 1; i < 4; i++ {
		if buf[i] != 0 {
			t.Errorf("padding byte %d = %#x, want 0", i, buf[i])
		}
	}
	if got := byteOrder.Uint32(buf[4:]); got != 64 {
		t.Errorf("dimension at offset 4 = %d, want 64", got)
	}
}

func TestParseHeaderNonZeroFlagIsConsumed(t *testing.T) {
	buf := make([]byte, HeaderSize)
	buf[0] = 0x7F
	byteOrder.PutUint32(buf[4:], 8)
	h, err := ParseHeader(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !h.Consumed {
		t.Error("non-zero flag byte should parse as consumed")
	}
}

func TestParseHeaderShort(t *testing.T) {
	_, err := ParseHeader(make([]byte, HeaderSize-1))
	if !errors.Is(err, ErrChannelUnavailable) {
		t.Fatalf("err = %v, want ErrChannelUnavailable", err)
	}
}

func TestHeaderValidate(t *testing.T) {
	cases := []struct {
		dim     uint32
		wantErr bool
	}{
		{0, true},
		{1, false},
		{64, false},
		{MaxDimension, false},
		{MaxDimension + 1, true},
	}
	for _, tc := range cases {
		err := Header{Dimension: tc.dim}.Validate()
		if tc.wantErr && !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("dimension %d: err = %v, want ErrInvalidDimension", tc.dim, err)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("dimension %d: unexpected err %v", tc.dim, err)
		}
	}
}

func TestHeaderSizes(t *testing.T) {
	h := Header{Dimension: 64}
	if got := h.RasterSize(); got != 64*64*3 {
		t.Errorf("RasterSize = %d", got)
	}
	if got := h.FileSize(); got != HeaderSize+64*64*3 {
		t.Errorf("FileSize = %d", got)
	}
}

package tx

import (
	"bytes"
	"errors"
	"io"
)

var ErrCompactU16Overflow = errors.New("compact-u16 overflow")

// writeCompactU16 writes n using 7 bits per byte, low bits first.
func writeCompactU16(buf *bytes.Buffer, n int) error {
	if n < 0 || n > 0xffff {
		return ErrCompactU16Overflow
	}
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n == 0 {
			buf.WriteByte(b)
			return nil
		}
		buf.WriteByte(b | 0x80)
	}
}

// readCompactU16 is the inverse of writeCompactU16.
func readCompactU16(r io.ByteReader) (int, error) {
	var n int
	for i := 0; i < 3; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		n |= int(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			if n > 0xffff {
				return 0, ErrCompactU16Overflow
			}
			return n, nil
		}
	}
	return 0, ErrCompactU16Overflow
}

package stream

import (
	"fmt"
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// maxDecimalLen fits the widest supported integer (20 digits for
// math.MaxUint64) plus a sign, rounded up.
const maxDecimalLen = 24

// WriteUint64 writes the decimal representation of v.
func WriteUint64(s Sink, v uint64) {
	var buf [maxDecimalLen]byte
	pos := formatUint(&buf, len(buf), v)
	_, _ = s.Write(buf[pos:])
}

// WriteInt64 writes the decimal representation of v, including a leading
// '-' for negative values.
func WriteInt64(s Sink, v int64) {
	var buf [maxDecimalLen]byte
	pos := len(buf)

	negative := v < 0
	if negative {
		// -math.MinInt64 overflows, so peel off the last digit first.
		if v == math.MinInt64 {
			pos--
			buf[pos] = '8'
			v /= 10
		}
		v = -v
	}

	pos = formatUint(&buf, pos, uint64(v))
	if negative {
		pos--
		buf[pos] = '-'
	}
	_, _ = s.Write(buf[pos:])
}

// formatUint writes v back-to-front ending at buf[end] and returns the
// index of the first digit.
func formatUint(buf *[maxDecimalLen]byte, end int, v uint64) int {
	pos := end
	for {
		pos--
		buf[pos] = byte('0' + v%10)
		v /= 10
		if v == 0 {
			return pos
		}
	}
}

// WriteInt and the fixed-width helpers below widen v to 64 bits (signed to
// int64, unsigned to uint64) and encode it with WriteInt64 or WriteUint64.
func WriteInt(s Sink, v int)       { WriteInt64(s, int64(v)) }
func WriteInt32(s Sink, v int32)   { WriteInt64(s, int64(v)) }
func WriteInt16(s Sink, v int16)   { WriteInt64(s, int64(v)) }
func WriteInt8(s Sink, v int8)     { WriteInt64(s, int64(v)) }
func WriteUint(s Sink, v uint)     { WriteUint64(s, uint64(v)) }
func WriteUint32(s Sink, v uint32) { WriteUint64(s, uint64(v)) }
func WriteUint16(s Sink, v uint16) { WriteUint64(s, uint64(v)) }
func WriteUint8(s Sink, v uint8)   { WriteUint64(s, uint64(v)) }

// WriteInteger writes any integer type, widening it to 64 bits first.
// It panics if T has a width the encoder does not know, which can only
// happen through a caller bug.
func WriteInteger[T constraints.Integer](s Sink, v T) {
	var zero T
	switch unsafe.Sizeof(zero) {
	case 1, 2, 4, 8:
	default:
		panic(fmt.Sprintf("stream: unsupported integer width %d", unsafe.Sizeof(zero)))
	}

	// ^0 is negative only for signed types.
	if ^zero < 0 {
		WriteInt64(s, int64(v))
		return
	}
	WriteUint64(s, uint64(v))
}

package stream

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func render(fn func(Sink)) string {
	var s StringSink
	fn(&s)
	return s.String()
}

func TestWriteInt64Boundaries(t *testing.T) {
	cases := []int64{
		0, 1, -1, 9, 10, -10, 99, 100, 12345, -12345,
		math.MaxInt32, math.MinInt32,
		math.MaxInt64, math.MinInt64, math.MinInt64 + 1,
	}
	for _, v := range cases {
		t.Run(strconv.FormatInt(v, 10), func(t *testing.T) {
			got := render(func(s Sink) { WriteInt64(s, v) })
			assert.Equal(t, strconv.FormatInt(v, 10), got)
		})
	}
}

func TestWriteUint64Boundaries(t *testing.T) {
	cases := []uint64{0, 1, 9, 10, 1 << 32, math.MaxUint32, math.MaxUint64}
	for _, v := range cases {
		got := render(func(s Sink) { WriteUint64(s, v) })
		assert.Equal(t, strconv.FormatUint(v, 10), got)
	}
}

func TestNarrowWidths(t *testing.T) {
	tests := []struct {
		name string
		fn   func(Sink)
		want string
	}{
		{"int8 min", func(s Sink) { WriteInt8(s, math.MinInt8) }, "-128"},
		{"int8 max", func(s Sink) { WriteInt8(s, math.MaxInt8) }, "127"},
		{"int16 min", func(s Sink) { WriteInt16(s, math.MinInt16) }, "-32768"},
		{"int16 max", func(s Sink) { WriteInt16(s, math.MaxInt16) }, "32767"},
		{"int32 min", func(s Sink) { WriteInt32(s, math.MinInt32) }, "-2147483648"},
		{"int min", func(s Sink) { WriteInt(s, math.MinInt) }, strconv.Itoa(math.MinInt)},
		{"uint8 max", func(s Sink) { WriteUint8(s, math.MaxUint8) }, "255"},
		{"uint16 max", func(s Sink) { WriteUint16(s, math.MaxUint16) }, "65535"},
		{"uint32 max", func(s Sink) { WriteUint32(s, math.MaxUint32) }, "4294967295"},
		{"uint max", func(s Sink) { WriteUint(s, math.MaxUint) }, strconv.FormatUint(math.MaxUint, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(tt.fn))
		})
	}
}

func TestWriteInteger(t *testing.T) {
	assert.Equal(t, "-128", render(func(s Sink) { WriteInteger(s, int8(math.MinInt8)) }))
	assert.Equal(t, "255", render(func(s Sink) { WriteInteger(s, uint8(255)) }))
	assert.Equal(t, "-9223372036854775808", render(func(s Sink) { WriteInteger(s, int64(math.MinInt64)) }))
	assert.Equal(t, "18446744073709551615", render(func(s Sink) { WriteInteger(s, uint64(math.MaxUint64)) }))
	assert.Equal(t, "42", render(func(s Sink) { WriteInteger(s, uintptr(42)) }))

	type port uint16
	assert.Equal(t, "8080", render(func(s Sink) { WriteInteger(s, port(8080)) }))
}

func TestIntegersAppend(t *testing.T) {
	got := render(func(s Sink) {
		WriteString(s, "a=")
		WriteInt(s, -3)
		_ = s.WriteByte(',')
		WriteUint(s, 7)
	})
	assert.Equal(t, "a=-3,7", got)
}

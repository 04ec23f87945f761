package pagebuf

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/planwriter/internal/stream"
)

func TestEmptyBuffer(t *testing.T) {
	var b Buffer
	assert.Equal(t, int64(0), b.Len())
	assert.Equal(t, 0, b.Pages())
	assert.Equal(t, PageSize, b.PageSize())
	assert.Equal(t, "", b.String())
	assert.Empty(t, b.Bytes())
}

func TestSmallWrite(t *testing.T) {
	b := New()
	stream.WriteString(b, "build ")
	stream.WriteInt(b, 42)
	require.NoError(t, b.WriteByte('\n'))

	assert.Equal(t, "build 42\n", b.String())
	assert.Equal(t, int64(9), b.Len())
	assert.Equal(t, 1, b.Pages())
}

func TestWriteSpansPages(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		pages int
	}{
		{"exactly one page", 8, 1},
		{"one boundary", 9, 2},
		{"two boundaries", 17, 3},
		{"three boundaries", 25, 4},
		{"exactly three pages", 24, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := strings.Repeat("abcdefghijk", 3)[:tt.size]
			b := NewWithPageSize(8)

			n, err := b.Write([]byte(input))
			require.NoError(t, err)
			assert.Equal(t, tt.size, n)
			assert.Equal(t, int64(tt.size), b.Len())
			assert.Equal(t, tt.pages, b.Pages())
			assert.Equal(t, input, b.String())
		})
	}
}

func TestMixedWritesAcrossPages(t *testing.T) {
	b := NewWithPageSize(4)
	var want strings.Builder
	for i := 0; i < 50; i++ {
		stream.WriteString(b, "x=")
		stream.WriteInt(b, i)
		require.NoError(t, b.WriteByte(';'))

		want.WriteString("x=")
		want.WriteString(strconv.Itoa(i))
		want.WriteByte(';')
	}
	assert.Equal(t, want.String(), b.String())
	assert.Equal(t, int64(want.Len()), b.Len())
	assert.Equal(t, []byte(want.String()), b.Bytes())
}

func TestWriteTo(t *testing.T) {
	b := NewWithPageSize(5)
	input := "the quick brown fox jumps over the lazy dog"
	_, _ = b.WriteString(input)

	var out bytes.Buffer
	n, err := b.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(len(input)), n)
	assert.Equal(t, input, out.String())
}

func TestNewWithPageSizePanics(t *testing.T) {
	assert.Panics(t, func() { NewWithPageSize(0) })
	assert.Panics(t, func() { NewWithPageSize(-1) })
}

// Package pagebuf provides an append-only buffer for very large generated
// text, and the write-if-changed protocol that persists it.
//
// Bytes are stored in fixed-size pages. Growing the buffer appends a page
// and never moves data already written, so filling it with hundreds of
// megabytes costs O(n) rather than the repeated copies of a single growing
// slice. Persistence compares the pages against the file on disk chunk by
// chunk and only rewrites the file when something differs, leaving the
// modification time of unchanged files alone.
package pagebuf

import (
	"io"
	"strings"
)

// PageSize is the capacity of every page in a Buffer created with New or
// as a zero value.
const PageSize = 65536

// Buffer is an append-only paged byte store. It implements stream.Sink,
// io.Writer, io.ByteWriter, io.StringWriter and io.WriterTo.
//
// The zero value is an empty buffer using PageSize. A Buffer must be
// filled and persisted by a single goroutine.
type Buffer struct {
	pageSize int
	pages    [][]byte
	// pos is the write offset into the last page.
	pos  int
	size int64
	pool *Pool
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{pageSize: PageSize}
}

// NewWithPageSize returns an empty buffer with a non-default page size.
// It exists so tests can cross page boundaries without megabytes of input.
func NewWithPageSize(n int) *Buffer {
	if n <= 0 {
		panic("pagebuf: page size must be positive")
	}
	return &Buffer{pageSize: n}
}

// PageSize returns the capacity of each page.
func (b *Buffer) PageSize() int {
	if b.pageSize == 0 {
		return PageSize
	}
	return b.pageSize
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int64 {
	return b.size
}

// Pages returns the number of allocated pages.
func (b *Buffer) Pages() int {
	return len(b.pages)
}

// freeInPage returns how many bytes still fit in the last page. An empty
// buffer has no page, so it reports zero and forces an allocation.
func (b *Buffer) freeInPage() int {
	if len(b.pages) == 0 {
		return 0
	}
	return b.PageSize() - b.pos
}

func (b *Buffer) addPage() {
	if b.pool != nil {
		b.pages = append(b.pages, b.pool.get())
	} else {
		b.pages = append(b.pages, make([]byte, b.PageSize()))
	}
	b.pos = 0
}

// Release empties the buffer. Pages drawn from a Pool are handed back to
// it, so the buffer's content must not be used afterwards.
func (b *Buffer) Release() {
	if b.pool != nil {
		for _, page := range b.pages {
			b.pool.put(page)
		}
	}
	b.pages = nil
	b.pos = 0
	b.size = 0
}

// Write appends p, spilling into as many new pages as needed. It always
// returns len(p), nil.
func (b *Buffer) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		if b.freeInPage() == 0 {
			b.addPage()
		}
		n := copy(b.pages[len(b.pages)-1][b.pos:], p)
		b.pos += n
		b.size += int64(n)
		p = p[n:]
	}
	return total, nil
}

// WriteString appends s without converting it to a byte slice first.
func (b *Buffer) WriteString(s string) (int, error) {
	total := len(s)
	for len(s) > 0 {
		if b.freeInPage() == 0 {
			b.addPage()
		}
		n := copy(b.pages[len(b.pages)-1][b.pos:], s)
		b.pos += n
		b.size += int64(n)
		s = s[n:]
	}
	return total, nil
}

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(c byte) error {
	if b.freeInPage() == 0 {
		b.addPage()
	}
	b.pages[len(b.pages)-1][b.pos] = c
	b.pos++
	b.size++
	return nil
}

// used returns the filled part of page i.
func (b *Buffer) used(i int) []byte {
	if i == len(b.pages)-1 {
		return b.pages[i][:b.pos]
	}
	return b.pages[i]
}

// WriteTo streams every page to w in order.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for i := range b.pages {
		chunk := b.used(i)
		n, err := w.Write(chunk)
		written += int64(n)
		if err != nil {
			return written, err
		}
		if n < len(chunk) {
			return written, io.ErrShortWrite
		}
	}
	return written, nil
}

// String concatenates all pages. It copies the whole buffer and is meant
// for small outputs and tests.
func (b *Buffer) String() string {
	var sb strings.Builder
	sb.Grow(int(b.size))
	for i := range b.pages {
		sb.Write(b.used(i))
	}
	return sb.String()
}

// Bytes is String as a byte slice.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, 0, b.size)
	for i := range b.pages {
		out = append(out, b.used(i)...)
	}
	return out
}

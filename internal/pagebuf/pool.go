package pagebuf

import "sync"

// Pool recycles pages between buffers. Generating many targets in a row
// would otherwise allocate a fresh set of 64KiB pages per target.
type Pool struct {
	pageSize int
	pages    sync.Pool
}

// NewPool creates a pool of PageSize pages.
func NewPool() *Pool {
	return NewPoolWithPageSize(PageSize)
}

// NewPoolWithPageSize creates a pool of pages of n bytes.
func NewPoolWithPageSize(n int) *Pool {
	if n <= 0 {
		panic("pagebuf: page size must be positive")
	}
	p := &Pool{pageSize: n}
	p.pages.New = func() interface{} {
		page := make([]byte, n)
		return &page
	}
	return p
}

// NewBuffer returns an empty buffer that draws its pages from the pool.
// Call Release once the buffer has been persisted.
func (p *Pool) NewBuffer() *Buffer {
	return &Buffer{pageSize: p.pageSize, pool: p}
}

func (p *Pool) get() []byte {
	return *(p.pages.Get().(*[]byte))
}

func (p *Pool) put(page []byte) {
	// Recycled pages keep stale bytes; only the used prefix is ever read.
	if cap(page) != p.pageSize {
		return
	}
	page = page[:p.pageSize]
	p.pages.Put(&page)
}

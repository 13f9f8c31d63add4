package imageio

import (
	"sync"
	"sync/atomic"
)

// Handle is the acquired resource behind one load. It stays open while its
// load is current and is released when a newer load replaces it or the
// loader closes.
type Handle struct {
	id       string
	src      Source
	once     sync.Once
	released atomic.Bool
	live     *atomic.Int32
	err      error
}

func acquire(id string, src Source, live *atomic.Int32) *Handle {
	live.Add(1)
	return &Handle{id: id, src: src, live: live}
}

func (h *Handle) ID() string   { return h.id }
func (h *Handle) Name() string { return h.src.Name() }

// Release closes the underlying source. Only the first call has an effect.
func (h *Handle) Release() error {
	h.once.Do(func() {
		h.err = h.src.Close()
		h.released.Store(true)
		h.live.Add(-1)
	})
	return h.err
}

func (h *Handle) Released() bool { return h.released.Load() }

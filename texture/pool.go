// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package texture provides the reference-counted GPU texture pool the
// compositor's node scheduler shares with its render backends.
//
// Textures are GPU-resident counterparts of pixel buffers. Unlike a
// buffer, a texture cannot carry a pending transform, so the pipeline
// downloads texture inputs to a buffer before composing or baking. The
// pool owns that contract: opaque IDs, retain/release reference counting
// and a memory budget.
//
// The pool RECEIVES a GPU device from the host application through
// gpucontext.DeviceProvider; it never creates one. With no provider the
// pool runs in logical mode, keeping the authoritative pixel copy
// host-side, which is also what tests and CPU-only hosts use.
package texture

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	"github.com/gogpu/compositor"
)

// Pool errors.
var (
	// ErrTextureNotFound is returned when an ID is not present in the
	// pool, including IDs whose reference count already reached zero.
	ErrTextureNotFound = errors.New("texture: texture not found in pool")

	// ErrNilBuffer is returned when a nil buffer is passed to CreateFromBuffer.
	ErrNilBuffer = errors.New("texture: buffer is nil")

	// ErrInvalidDimensions is returned for empty buffers.
	ErrInvalidDimensions = errors.New("texture: invalid dimensions")

	// ErrBudgetExceeded is returned when an allocation would exceed the
	// pool's memory budget.
	ErrBudgetExceeded = errors.New("texture: memory budget exceeded")
)

// DefaultBudgetBytes is the default texture memory budget (256 MB).
const DefaultBudgetBytes = 256 << 20

// DefaultUsage is the usage for textures created by the pool.
const DefaultUsage = gputypes.TextureUsageCopySrc |
	gputypes.TextureUsageCopyDst |
	gputypes.TextureUsageTextureBinding

// ID is an opaque handle to a pooled texture. It aliases
// compositor.TextureID so Pool satisfies compositor.TexturePool directly.
type ID = compositor.TextureID

// InvalidID is the zero value, representing no texture.
const InvalidID ID = 0

// entry is one pooled texture with its reference count.
type entry struct {
	refs      int
	width     int
	height    int
	sizeBytes uint64

	// pixels is the authoritative host-side copy while the pool runs in
	// logical mode. Device-backed readback replaces this once texture
	// contents can diverge from the upload (render-to-texture).
	pixels *compositor.Buffer

	// wgpu handles; zero in logical mode.
	textureID core.TextureID
	viewID    core.TextureViewID
}

// Stats describes the pool's memory accounting.
type Stats struct {
	// TextureCount is the number of live textures.
	TextureCount int

	// UsedBytes is the currently allocated texture memory.
	UsedBytes uint64

	// BudgetBytes is the total memory budget.
	BudgetBytes uint64

	// Utilization is the fraction of budget used (0.0 to 1.0).
	Utilization float64
}

// String returns a human-readable summary of the stats.
func (s Stats) String() string {
	return fmt.Sprintf("Textures[%d live, %d/%d MB, %.1f%% used]",
		s.TextureCount, s.UsedBytes>>20, s.BudgetBytes>>20, s.Utilization*100)
}

// Option configures a Pool during creation.
type Option func(*Pool)

// WithDeviceProvider attaches a GPU device from the host application.
// The current pipeline consumes textures through Download, so the
// authoritative pixel copy stays host-side either way; the provider is
// held for the device-backed upload path (see CreateFromBuffer).
func WithDeviceProvider(p gpucontext.DeviceProvider) Option {
	return func(pool *Pool) {
		pool.provider = p
	}
}

// WithBudget sets the texture memory budget in bytes.
// A budget of 0 selects DefaultBudgetBytes.
func WithBudget(bytes uint64) Option {
	return func(pool *Pool) {
		if bytes > 0 {
			pool.budget = bytes
		}
	}
}

// Pool is a reference-counted registry of textures.
//
// Pool is safe for concurrent use.
type Pool struct {
	mu       sync.Mutex
	provider gpucontext.DeviceProvider
	entries  map[ID]*entry
	nextID   ID
	budget   uint64
	used     uint64
}

// NewPool creates a texture pool.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		entries: make(map[ID]*entry),
		budget:  DefaultBudgetBytes,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HasDevice reports whether the pool is backed by a GPU device.
func (p *Pool) HasDevice() bool {
	return p.provider != nil
}

// CreateFromBuffer uploads a pixel buffer as a new texture and returns
// its ID. The new texture starts with a reference count of one; the
// caller owns that reference and must Release it.
func (p *Pool) CreateFromBuffer(buf *compositor.Buffer) (ID, error) {
	if buf == nil {
		return InvalidID, ErrNilBuffer
	}
	w, h := buf.Width(), buf.Height()
	if w <= 0 || h <= 0 {
		return InvalidID, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}

	// RGBA float32, 16 bytes per pixel.
	sizeBytes := uint64(w) * uint64(h) * 16

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.used+sizeBytes > p.budget {
		compositor.Logger().Warn("texture budget exceeded",
			"requested", sizeBytes, "used", p.used, "budget", p.budget)
		return InvalidID, fmt.Errorf("%w: need %d bytes, %d of %d in use",
			ErrBudgetExceeded, sizeBytes, p.used, p.budget)
	}

	// TODO: device-backed upload via the provider queue once pool
	// textures are consumed by the GPU render path; logical mode keeps
	// the pixels host-side.
	e := &entry{
		refs:      1,
		width:     w,
		height:    h,
		sizeBytes: sizeBytes,
		pixels:    buf.Clone(),
	}

	p.nextID++
	id := p.nextID
	p.entries[id] = e
	p.used += sizeBytes

	compositor.Logger().Debug("texture created",
		"id", uint64(id), "size", fmt.Sprintf("%dx%d", w, h))
	return id, nil
}

// Retain increments a texture's reference count.
func (p *Pool) Retain(id ID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrTextureNotFound, id)
	}
	e.refs++
	return nil
}

// Release decrements a texture's reference count, freeing the texture
// and its budget share when the count reaches zero.
func (p *Pool) Release(id ID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrTextureNotFound, id)
	}
	e.refs--
	if e.refs > 0 {
		return nil
	}

	delete(p.entries, id)
	p.used -= e.sizeBytes
	compositor.Logger().Debug("texture freed", "id", uint64(id))
	return nil
}

// Download copies a texture's pixels into a new buffer. The returned
// buffer is owned by the caller.
//
// The texture is retained for the duration of the copy, so a concurrent
// Release cannot free it mid-download.
func (p *Pool) Download(id ID) (*compositor.Buffer, error) {
	p.mu.Lock()
	e, ok := p.entries[id]
	if !ok {
		p.mu.Unlock()
		return nil, fmt.Errorf("%w: id %d", ErrTextureNotFound, id)
	}
	e.refs++
	pixels := e.pixels
	p.mu.Unlock()

	out := pixels.Clone()

	p.mu.Lock()
	e.refs--
	if e.refs <= 0 {
		delete(p.entries, id)
		p.used -= e.sizeBytes
	}
	p.mu.Unlock()
	return out, nil
}

// Size returns a texture's dimensions.
func (p *Pool) Size(id ID) (width, height int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[id]
	if !ok {
		return 0, 0, fmt.Errorf("%w: id %d", ErrTextureNotFound, id)
	}
	return e.width, e.height, nil
}

// Stats returns the pool's current memory accounting.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	var util float64
	if p.budget > 0 {
		util = float64(p.used) / float64(p.budget)
	}
	return Stats{
		TextureCount: len(p.entries),
		UsedBytes:    p.used,
		BudgetBytes:  p.budget,
		Utilization:  util,
	}
}

package compositor

import (
	"image"

	"github.com/gogpu/compositor/cache"
)

// DisplayCache memoizes float-buffer to 8-bit display conversions.
//
// Conversion touches every pixel, so the view layer performs it once per
// buffer revision. Keys are caller-controlled content tokens (typically a
// buffer revision counter or content hash); the cache itself never
// invents identity, so two pipelines or two tests can hold separate
// caches without observing each other.
//
// DisplayCache is safe for concurrent use.
type DisplayCache struct {
	entries *cache.Sharded[uint64, *image.NRGBA]
}

// NewDisplayCache creates a display cache holding up to capacity
// converted images per shard. capacity <= 0 selects the default.
func NewDisplayCache(capacity int) *DisplayCache {
	return &DisplayCache{
		entries: cache.NewSharded[uint64, *image.NRGBA](capacity, cache.Uint64Hasher),
	}
}

// Convert returns the 8-bit image for buf under the given token,
// converting and caching on first sight of the token. The returned image
// is shared; callers must not modify its pixels.
func (d *DisplayCache) Convert(token uint64, buf *Buffer) *image.NRGBA {
	return d.entries.GetOrCreate(token, func() *image.NRGBA {
		return buf.ToImage()
	})
}

// Invalidate drops the entry for a token, e.g. after a buffer is rebaked.
func (d *DisplayCache) Invalidate(token uint64) {
	d.entries.Delete(token)
}

// Stats returns hit/miss statistics for the cache.
func (d *DisplayCache) Stats() cache.Stats {
	return d.entries.Stats()
}

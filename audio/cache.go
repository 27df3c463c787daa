package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gopxl/beep"
	gocache "github.com/patrickmn/go-cache"

	"github.com/lixenwraith/metronome/constant"
)

// ClipCache stores decoded PCM keyed by file identity and output rate
// A modified file gets a new key, so stale audio is never served
// Buffers are read-only once cached; clips share them freely
type ClipCache struct {
	store  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// NewClipCache creates a cache with the default expiry
func NewClipCache() *ClipCache {
	return &ClipCache{
		store: gocache.New(constant.ClipCacheExpiration, constant.ClipCacheCleanup),
	}
}

// Load returns the decoded clip at path, decoding on miss
func (c *ClipCache) Load(path string, format beep.Format) (*beep.Buffer, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrClipNotFound, path)
		}
		return nil, fmt.Errorf("stat clip: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrClipNotFound, path)
	}

	key := cacheKey(path, info, format)
	if v, ok := c.store.Get(key); ok {
		c.hits.Add(1)
		return v.(*beep.Buffer), nil
	}

	c.misses.Add(1)
	buf, err := decodeFile(path, format)
	if err != nil {
		return nil, err
	}
	c.store.SetDefault(key, buf)
	return buf, nil
}

// Len returns the number of cached clips
func (c *ClipCache) Len() int {
	return c.store.ItemCount()
}

// Stats returns cache hit and miss counts
func (c *ClipCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Flush drops every cached clip
func (c *ClipCache) Flush() {
	c.store.Flush()
}

func cacheKey(path string, info os.FileInfo, format beep.Format) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return fmt.Sprintf("%s|%d|%d|%d", path, info.Size(), info.ModTime().UnixNano(), format.SampleRate)
}

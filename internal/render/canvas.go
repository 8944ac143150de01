package render

import (
	"fmt"
	"image"
	"sync"
)

// Canvas is an off-screen drawable the DICOM renderer flushes into. The
// renderer completes asynchronously; readers poll Snapshot until the
// backing buffer reports nonzero dimensions.
type Canvas struct {
	mu       sync.Mutex
	img      *image.RGBA
	disabled bool
}

// NewCanvas returns an empty, enabled canvas. The backing buffer stays nil
// until the renderer flushes.
func NewCanvas() *Canvas {
	return &Canvas{}
}

func (c *Canvas) flush(img *image.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled {
		return
	}
	c.img = img
}

// Snapshot returns the current backing buffer, or nil if the renderer has
// not flushed yet.
func (c *Canvas) Snapshot() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.img
}

// Disable tears down the rendering context. Further flushes are dropped.
// Disabling twice is a cleanup bug worth logging, never worth failing on.
func (c *Canvas) Disable() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled {
		return fmt.Errorf("canvas already disabled")
	}
	c.disabled = true
	c.img = nil
	return nil
}

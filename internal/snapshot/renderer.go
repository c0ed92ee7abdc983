package snapshot

import (
    "errors"
    "sync/atomic"

    "yuvsnap/internal/yuv"
)

var ErrNoFrame = errors.New("no frame rendered yet")

// Renderer keeps the most recently rendered frame and converts it on demand.
// The frame is swapped in whole, so a concurrent Snapshot never sees a
// partially written frame.
type Renderer struct {
    last    atomic.Pointer[yuv.PlanarFrame]
    quality int
}

// NewRenderer returns a renderer encoding snapshots at the given JPEG quality.
func NewRenderer(quality int) *Renderer {
    return &Renderer{quality: quality}
}

// RenderFrame stores a copy of f as the latest frame. The caller may reuse
// f's buffers once it returns.
func (r *Renderer) RenderFrame(f *yuv.PlanarFrame) {
    if f == nil { return }
    r.last.Store(f.Clone())
}

// OnFrame lets the renderer be attached directly to a capturer.
func (r *Renderer) OnFrame(f *yuv.PlanarFrame) { r.RenderFrame(f) }

// Last returns the most recent frame or nil. It must be treated as read-only.
func (r *Renderer) Last() *yuv.PlanarFrame { return r.last.Load() }

// Snapshot converts the last rendered frame into a picture.
func (r *Renderer) Snapshot() (*Picture, error) {
    f := r.last.Load()
    if f == nil {
        return nil, ErrNoFrame
    }
    return Take(f, r.quality)
}

package snapshot

import (
    "context"
    "sync/atomic"

    "yuvsnap/internal/yuv"
)

// PictureFunc receives the result of a requested snapshot.
type PictureFunc func(*Picture, error)

// Sink takes a picture of the next frame it sees after a request. Requests
// are one-shot: listeners are cleared before they are called, and every
// listener pending for a frame receives the same picture.
type Sink struct {
    pending atomic.Pointer[PictureFunc]
    quality int
}

func NewSink(quality int) *Sink {
    return &Sink{quality: quality}
}

// Request arms the sink. Requests made before the next frame are combined.
func (s *Sink) Request(fn PictureFunc) {
    for {
        old := s.pending.Load()
        next := fn
        if old != nil {
            prev := *old
            next = func(p *Picture, err error) { prev(p, err); fn(p, err) }
        }
        if s.pending.CompareAndSwap(old, &next) { return }
    }
}

// Pending reports whether a request is waiting for a frame.
func (s *Sink) Pending() bool { return s.pending.Load() != nil }

// OnFrame converts f if a request is pending. It runs on the capturer's
// goroutine and returns without work otherwise.
func (s *Sink) OnFrame(f *yuv.PlanarFrame) {
    fn := s.pending.Swap(nil)
    if fn == nil { return }
    (*fn)(Take(f, s.quality))
}

// Next waits for the picture of the next frame or for ctx to end. An
// abandoned request still fires on the next frame; its result is discarded.
func (s *Sink) Next(ctx context.Context) (*Picture, error) {
    type result struct {
        p   *Picture
        err error
    }
    ch := make(chan result, 1)
    s.Request(func(p *Picture, err error) { ch <- result{p, err} })
    select {
    case r := <-ch:
        return r.p, r.err
    case <-ctx.Done():
        return nil, ctx.Err()
    }
}

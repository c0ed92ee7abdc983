package stream

import (
    "sync"

    "github.com/pion/webrtc/v3/pkg/media"
)

// SampleWriter is anything that accepts encoded samples, e.g. a websocket
// subscriber or a Pion TrackLocalStaticSample.
type SampleWriter interface {
    WriteSample(media.Sample) error
}

// SampleBroadcaster fans out encoded snapshots to multiple subscribers.
// Each subscriber gets its own small queue so a slow connection doesn't block others.
type SampleBroadcaster struct {
    mu    sync.RWMutex
    sinks map[*sink]struct{}
}

type sink struct {
    ch   chan media.Sample
    quit chan struct{}
    w    SampleWriter
}

// NewSampleBroadcaster creates a broadcaster. Call Close when done.
func NewSampleBroadcaster() *SampleBroadcaster {
    return &SampleBroadcaster{sinks: make(map[*sink]struct{})}
}

// Add registers a subscriber and returns a function that removes it. A write
// error from the subscriber removes it as well.
func (b *SampleBroadcaster) Add(w SampleWriter) (remove func()) {
    s := &sink{ch: make(chan media.Sample, 4), quit: make(chan struct{}), w: w}
    remove = func() {
        b.mu.Lock()
        if _, ok := b.sinks[s]; ok {
            delete(b.sinks, s)
            close(s.quit)
        }
        b.mu.Unlock()
    }
    go func() {
        for {
            select {
            case sm := <-s.ch:
                if err := s.w.WriteSample(sm); err != nil {
                    remove()
                    return
                }
            case <-s.quit:
                return
            }
        }
    }()
    b.mu.Lock()
    if b.sinks == nil { b.sinks = make(map[*sink]struct{}) }
    b.sinks[s] = struct{}{}
    b.mu.Unlock()
    return remove
}

// Len reports the number of registered subscribers.
func (b *SampleBroadcaster) Len() int {
    b.mu.RLock()
    defer b.mu.RUnlock()
    return len(b.sinks)
}

// WriteSample queues sm for every subscriber without blocking. It lets the
// broadcaster stand in wherever a single SampleWriter is expected.
func (b *SampleBroadcaster) WriteSample(sm media.Sample) error {
    b.mu.RLock()
    for s := range b.sinks {
        select {
        case s.ch <- sm:
        default:
            incSnapshotsDropped()
        }
    }
    b.mu.RUnlock()
    return nil
}

// Close stops all subscriber workers and clears the list.
func (b *SampleBroadcaster) Close() {
    b.mu.Lock()
    for s := range b.sinks {
        select { case <-s.quit: default: close(s.quit) }
        delete(b.sinks, s)
    }
    b.mu.Unlock()
}

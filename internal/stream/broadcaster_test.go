package stream

import (
    "errors"
    "testing"
    "time"

    "github.com/pion/webrtc/v3/pkg/media"
)

type chanWriter struct {
    got chan media.Sample
    err error
}

func (w *chanWriter) WriteSample(s media.Sample) error {
    w.got <- s
    return w.err
}

func waitFor(t *testing.T, cond func() bool) {
    t.Helper()
    deadline := time.Now().Add(2 * time.Second)
    for time.Now().Before(deadline) {
        if cond() { return }
        time.Sleep(5 * time.Millisecond)
    }
    t.Fatal("condition not met before deadline")
}

func TestBroadcasterFanout(t *testing.T) {
    b := NewSampleBroadcaster()
    defer b.Close()

    a := &chanWriter{got: make(chan media.Sample, 1)}
    c := &chanWriter{got: make(chan media.Sample, 1)}
    b.Add(a)
    removeC := b.Add(c)
    if b.Len() != 2 {
        t.Fatalf("Len = %d, want 2", b.Len())
    }

    _ = b.WriteSample(media.Sample{Data: []byte("jpeg")})
    for _, w := range []*chanWriter{a, c} {
        select {
        case s := <-w.got:
            if string(s.Data) != "jpeg" {
                t.Errorf("got %q", s.Data)
            }
        case <-time.After(2 * time.Second):
            t.Fatal("sample not delivered")
        }
    }

    removeC()
    removeC()
    if b.Len() != 1 {
        t.Fatalf("Len after remove = %d, want 1", b.Len())
    }
}

func TestBroadcasterDropsFailingWriter(t *testing.T) {
    b := NewSampleBroadcaster()
    defer b.Close()

    w := &chanWriter{got: make(chan media.Sample, 1), err: errors.New("closed")}
    b.Add(w)
    _ = b.WriteSample(media.Sample{Data: []byte{1}})
    waitFor(t, func() bool { return b.Len() == 0 })
}

func TestBroadcasterDropsWhenQueueFull(t *testing.T) {
    ResetCounters()
    b := NewSampleBroadcaster()
    defer b.Close()

    // Unbuffered and never drained: the worker blocks on the first sample.
    w := &chanWriter{got: make(chan media.Sample)}
    b.Add(w)
    for i := 0; i < 32; i++ {
        _ = b.WriteSample(media.Sample{Data: []byte{byte(i)}})
    }
    if GetCounters()["snapshots_dropped"] == 0 {
        t.Fatal("expected dropped snapshots to be counted")
    }
}

package capture

import (
    "context"
    "errors"
    "sync/atomic"
    "testing"
    "time"

    "yuvsnap/internal/yuv"
)

func TestSyntheticFrameLayout(t *testing.T) {
    s := NewSynthetic(SyntheticConfig{Width: 33, Height: 19, Padding: 6, Rotation: 90})
    f := s.Next()
    if f.Width != 32 || f.Height != 18 {
        t.Fatalf("size %dx%d, want 32x18", f.Width, f.Height)
    }
    if f.Y.Stride != 38 || f.U.Stride != 22 || f.V.Stride != 22 {
        t.Fatalf("strides %d/%d/%d", f.Y.Stride, f.U.Stride, f.V.Stride)
    }
    if f.Rotation != 90 {
        t.Fatalf("rotation %d", f.Rotation)
    }
    if f.Timestamp.IsZero() {
        t.Fatal("frame has no capture timestamp")
    }
    if err := yuv.Validate(f); err != nil {
        t.Fatalf("Validate: %v", err)
    }
    if yuv.Contiguous(f) {
        t.Fatal("padded frame reported contiguous")
    }

    tight := NewSynthetic(SyntheticConfig{Width: 16, Height: 8}).Next()
    if !yuv.Contiguous(tight) {
        t.Fatal("unpadded frame not contiguous")
    }
}

func TestSyntheticStartStop(t *testing.T) {
    s := NewSynthetic(SyntheticConfig{Width: 16, Height: 8, FPS: 200})
    var n atomic.Int32
    got := make(chan struct{}, 1)
    sink := FrameSinkFunc(func(f *yuv.PlanarFrame) {
        if n.Add(1) == 3 {
            got <- struct{}{}
        }
    })
    if err := s.Start(context.Background(), sink); err != nil {
        t.Fatalf("Start: %v", err)
    }
    if err := s.Start(context.Background(), sink); !errors.Is(err, ErrAlreadyStarted) {
        t.Fatalf("second Start err = %v", err)
    }
    select {
    case <-got:
    case <-time.After(2 * time.Second):
        t.Fatal("no frames delivered")
    }
    s.Stop()
    s.Stop()
    after := n.Load()
    time.Sleep(30 * time.Millisecond)
    if n.Load() != after {
        t.Fatal("frames delivered after Stop")
    }
}

func TestSyntheticStopsOnContextCancel(t *testing.T) {
    s := NewSynthetic(SyntheticConfig{Width: 8, Height: 8, FPS: 100})
    ctx, cancel := context.WithCancel(context.Background())
    if err := s.Start(ctx, FrameSinkFunc(func(*yuv.PlanarFrame) {})); err != nil {
        t.Fatalf("Start: %v", err)
    }
    cancel()
    stopped := make(chan struct{})
    go func() { s.Stop(); close(stopped) }()
    select {
    case <-stopped:
    case <-time.After(2 * time.Second):
        t.Fatal("Stop hung after context cancel")
    }
}

func TestFanout(t *testing.T) {
    var a, b int
    fo := Fanout{
        FrameSinkFunc(func(*yuv.PlanarFrame) { a++ }),
        FrameSinkFunc(func(*yuv.PlanarFrame) { b++ }),
    }
    fo.OnFrame(&yuv.PlanarFrame{})
    fo.OnFrame(&yuv.PlanarFrame{})
    if a != 2 || b != 2 {
        t.Fatalf("a=%d b=%d", a, b)
    }
}

package capture

import (
    "context"
    "errors"
    "log"
    "sync"
    "time"

    "yuvsnap/internal/stream"
    "yuvsnap/internal/yuv"
)

// SyntheticConfig describes the generated frames. Padding bytes are added to
// every row of every plane, the way hardware capture buffers are aligned.
type SyntheticConfig struct {
    Width, Height int
    FPS           int
    Padding       int
    Rotation      int
}

var ErrAlreadyStarted = errors.New("capturer already started")

// Synthetic generates a moving gradient pattern as I420.
type Synthetic struct {
    cfg SyntheticConfig
    y, u, v []byte
    t0  time.Time

    mu      sync.Mutex
    started bool
    quit    chan struct{}
    done    chan struct{}
}

func NewSynthetic(cfg SyntheticConfig) *Synthetic {
    if cfg.FPS <= 0 { cfg.FPS = 30 }
    if cfg.Width <= 0 { cfg.Width = 1280 }
    if cfg.Height <= 0 { cfg.Height = 720 }
    // Ensure even dimensions for I420 (4:2:0) subsampling
    if cfg.Width%2 != 0 { cfg.Width-- }
    if cfg.Height%2 != 0 { cfg.Height-- }
    if cfg.Width < 2 { cfg.Width = 2 }
    if cfg.Height < 2 { cfg.Height = 2 }
    if cfg.Padding < 0 { cfg.Padding = 0 }
    sy := cfg.Width + cfg.Padding
    sc := cfg.Width/2 + cfg.Padding
    return &Synthetic{
        cfg: cfg,
        y:   make([]byte, sy*cfg.Height),
        u:   make([]byte, sc*cfg.Height/2),
        v:   make([]byte, sc*cfg.Height/2),
        t0:  time.Now(),
    }
}

// Start runs the frame loop in the background. The sink is called on the
// capturer's goroutine and the frame buffers are reused between calls.
func (s *Synthetic) Start(ctx context.Context, sink FrameSink) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.started {
        return ErrAlreadyStarted
    }
    s.started = true
    s.quit = make(chan struct{})
    s.done = make(chan struct{})
    go s.loop(ctx, sink, s.quit, s.done)
    return nil
}

func (s *Synthetic) loop(ctx context.Context, sink FrameSink, quit, done chan struct{}) {
    defer close(done)
    ticker := time.NewTicker(time.Second / time.Duration(s.cfg.FPS))
    defer ticker.Stop()
    first := true
    for {
        select {
        case <-quit:
            return
        case <-ctx.Done():
            return
        case <-ticker.C:
        }
        f := s.Next()
        stream.IncFramesIn()
        if first {
            first = false
            log.Printf("synthetic: first frame %dx%d stride=%d rotation=%d", f.Width, f.Height, f.Y.Stride, f.Rotation)
        }
        sink.OnFrame(f)
    }
}

// Next renders the pattern for the current time into the shared buffers.
func (s *Synthetic) Next() *yuv.PlanarFrame {
    w, h := s.cfg.Width, s.cfg.Height
    sy := w + s.cfg.Padding
    sc := w/2 + s.cfg.Padding
    now := time.Since(s.t0).Seconds()
    shift := int(now * 120)
    for row := 0; row < h; row++ {
        line := s.y[row*sy : row*sy+w]
        for x := range line {
            line[x] = byte((x + row + shift) % 256)
        }
    }
    for row := 0; row < h/2; row++ {
        ul := s.u[row*sc : row*sc+w/2]
        vl := s.v[row*sc : row*sc+w/2]
        for x := range ul {
            ul[x] = byte((x*2 + int(now*80)) % 256)
            vl[x] = byte((row*2 + int(now*100)) % 256)
        }
    }
    f := yuv.NewPlanarFrame(w, h, s.y, s.u, s.v, sy, sc, sc)
    f.Rotation = s.cfg.Rotation
    f.Timestamp = time.Now()
    return f
}

// Stop ends the frame loop and waits for it. Safe to call more than once.
func (s *Synthetic) Stop() {
    s.mu.Lock()
    if !s.started {
        s.mu.Unlock()
        return
    }
    s.started = false
    close(s.quit)
    done := s.done
    s.mu.Unlock()
    <-done
}

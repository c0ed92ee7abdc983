package capture

import (
    "context"

    "yuvsnap/internal/yuv"
)

// FrameSink consumes captured frames. Frames are only valid for the duration
// of the call; sinks that keep a frame must copy it.
type FrameSink interface {
    OnFrame(*yuv.PlanarFrame)
}

// FrameSinkFunc adapts a function to FrameSink.
type FrameSinkFunc func(*yuv.PlanarFrame)

func (fn FrameSinkFunc) OnFrame(f *yuv.PlanarFrame) { fn(f) }

// Capturer produces frames into a sink until stopped or ctx ends.
type Capturer interface {
    Start(ctx context.Context, sink FrameSink) error
    Stop()
}

// Fanout forwards each frame to every sink in order.
type Fanout []FrameSink

func (fo Fanout) OnFrame(f *yuv.PlanarFrame) {
    for _, s := range fo {
        s.OnFrame(f)
    }
}

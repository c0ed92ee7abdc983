package yuv

import (
    "errors"
    "fmt"
    "math"
    "time"
)

// Plane is one component of a planar frame. Data is borrowed from the caller
// for the duration of a conversion and is never retained or modified.
// Width and Height may be left zero; when set they must match the sizes
// implied by the frame dimensions.
type Plane struct {
    Data   []byte
    Stride int // bytes between the start of consecutive rows
    Width  int // logical samples per row
    Height int // logical rows
}

// PlanarFrame is an I420 (YUV 4:2:0) frame with three independently strided planes.
// Rotation is a hint (0, 90, 180, 270) applied by callers after conversion.
// Timestamp is the capture time, zero when the source does not provide one.
type PlanarFrame struct {
    Width, Height int
    Y, U, V       Plane
    Rotation      int
    Timestamp     time.Time
}

// NewPlanarFrame builds a frame from raw plane buffers and strides, deriving the
// logical plane sizes from the luma dimensions.
func NewPlanarFrame(w, h int, y, u, v []byte, strideY, strideU, strideV int) *PlanarFrame {
    cw, ch := w/2, h/2
    return &PlanarFrame{
        Width:  w,
        Height: h,
        Y:      Plane{Data: y, Stride: strideY, Width: w, Height: h},
        U:      Plane{Data: u, Stride: strideU, Width: cw, Height: ch},
        V:      Plane{Data: v, Stride: strideV, Width: cw, Height: ch},
    }
}

// Clone returns a deep copy of f. Strides and padding are kept as they are.
func (f *PlanarFrame) Clone() *PlanarFrame {
    c := *f
    c.Y.Data = append([]byte(nil), f.Y.Data...)
    c.U.Data = append([]byte(nil), f.U.Data...)
    c.V.Data = append([]byte(nil), f.V.Data...)
    return &c
}

var (
    ErrInvalidDimensions = errors.New("invalid frame dimensions")
    ErrInvalidStride     = errors.New("stride smaller than row width")
    ErrBufferTooSmall    = errors.New("plane buffer too small")
)

// LayoutError reports which part of a frame failed validation.
type LayoutError struct {
    Plane string // "frame", "Y", "U" or "V"
    Err   error
    msg   string
}

func (e *LayoutError) Error() string {
    if e.msg == "" { return e.Plane + ": " + e.Err.Error() }
    return e.Plane + ": " + e.Err.Error() + " (" + e.msg + ")"
}

func (e *LayoutError) Unwrap() error { return e.Err }

func layoutErr(plane string, err error, format string, args ...any) *LayoutError {
    return &LayoutError{Plane: plane, Err: err, msg: fmt.Sprintf(format, args...)}
}

// Validate checks that f can be converted without reading outside its planes.
// 4:2:0 subsampling needs positive even dimensions.
//
// A plane needs stride*(rows-1)+width bytes: the last row may end right after
// its samples. A 4x4 luma plane with stride 6 is accepted with 22 bytes even
// though stride*rows would be 24.
func Validate(f *PlanarFrame) error {
    if f == nil {
        return layoutErr("frame", ErrInvalidDimensions, "nil frame")
    }
    w, h := f.Width, f.Height
    if w <= 0 || h <= 0 || w%2 != 0 || h%2 != 0 {
        return layoutErr("frame", ErrInvalidDimensions, "%dx%d", w, h)
    }
    // the packed output is 1.5*w*h bytes and must be addressable
    if w > math.MaxInt/h/2 {
        return layoutErr("frame", ErrInvalidDimensions, "%dx%d too large", w, h)
    }
    cw, ch := w/2, h/2
    planes := []struct {
        name string
        p    Plane
        w, h int
    }{
        {"Y", f.Y, w, h},
        {"U", f.U, cw, ch},
        {"V", f.V, cw, ch},
    }
    for _, pl := range planes {
        if (pl.p.Width != 0 && pl.p.Width != pl.w) || (pl.p.Height != 0 && pl.p.Height != pl.h) {
            return layoutErr(pl.name, ErrInvalidDimensions, "plane %dx%d, want %dx%d", pl.p.Width, pl.p.Height, pl.w, pl.h)
        }
        if pl.p.Stride < pl.w {
            return layoutErr(pl.name, ErrInvalidStride, "stride %d < width %d", pl.p.Stride, pl.w)
        }
        // no buffer can be this large
        if pl.h > 1 && pl.p.Stride > (math.MaxInt-pl.w)/(pl.h-1) {
            return layoutErr(pl.name, ErrBufferTooSmall, "have %d bytes, stride %d overflows", len(pl.p.Data), pl.p.Stride)
        }
        need := pl.p.Stride*(pl.h-1) + pl.w
        if len(pl.p.Data) < need {
            return layoutErr(pl.name, ErrBufferTooSmall, "have %d bytes, need %d", len(pl.p.Data), need)
        }
    }
    return nil
}

// Contiguous reports whether every plane is tightly packed with no row padding.
func Contiguous(f *PlanarFrame) bool {
    half := f.Width / 2
    return f.Y.Stride == f.Width && f.U.Stride == half && f.V.Stride == half
}

package snapshot

import (
    "bytes"
    "errors"
    "fmt"
    "image/jpeg"
    "time"

    "github.com/google/uuid"

    "yuvsnap/internal/stream"
    "yuvsnap/internal/yuv"
)

// Picture is one JPEG snapshot taken from a frame.
type Picture struct {
    ID       string    `json:"id"`
    Width    int       `json:"width"`
    Height   int       `json:"height"`
    Rotation int       `json:"rotation"`
    Taken    time.Time `json:"taken"`
    JPEG     []byte    `json:"-"`
}

// DefaultQuality is used when a quality outside 1..100 is requested.
const DefaultQuality = 90

// Take converts f to NV21, applies its rotation hint and encodes a JPEG.
// Layout errors from the converter are returned unchanged. Taken is the
// frame's capture time, or now when the frame carries none.
func Take(f *yuv.PlanarFrame, quality int) (*Picture, error) {
    img, err := yuv.ToNV21(f)
    if err != nil {
        stream.IncConversionError(errorReason(err))
        return nil, err
    }
    if yuv.Contiguous(f) {
        stream.IncConversion("contiguous")
    } else {
        stream.IncConversion("strided")
    }
    data, w, h, err := Encode(img, f.Rotation, quality)
    if err != nil {
        return nil, err
    }
    stream.IncSnapshots()
    taken := f.Timestamp
    if taken.IsZero() { taken = time.Now() }
    return &Picture{
        ID:       uuid.New().String(),
        Width:    w,
        Height:   h,
        Rotation: f.Rotation,
        Taken:    taken,
        JPEG:     data,
    }, nil
}

// Encode hands the NV21 image to the JPEG encoder after rotating it by
// rotation degrees clockwise. It returns the encoded bytes and the output size.
func Encode(img *yuv.PackedImage, rotation, quality int) ([]byte, int, int, error) {
    if quality < 1 || quality > 100 { quality = DefaultQuality }
    out, err := Rotate(img.YCbCr(), rotation)
    if err != nil {
        return nil, 0, 0, err
    }
    var buf bytes.Buffer
    if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: quality}); err != nil {
        return nil, 0, 0, fmt.Errorf("jpeg encode: %w", err)
    }
    b := out.Bounds()
    return buf.Bytes(), b.Dx(), b.Dy(), nil
}

func errorReason(err error) string {
    switch {
    case errors.Is(err, yuv.ErrInvalidDimensions):
        return "invalid_dimensions"
    case errors.Is(err, yuv.ErrInvalidStride):
        return "invalid_stride"
    case errors.Is(err, yuv.ErrBufferTooSmall):
        return "buffer_too_small"
    }
    return "other"
}

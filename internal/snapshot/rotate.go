package snapshot

import (
    "errors"
    "image"
)

var ErrInvalidRotation = errors.New("rotation must be a multiple of 90 degrees")

// normalizeRotation folds degrees into 0, 90, 180 or 270.
func normalizeRotation(degrees int) (int, error) {
    if degrees%90 != 0 {
        return 0, ErrInvalidRotation
    }
    d := degrees % 360
    if d < 0 { d += 360 }
    return d, nil
}

// Rotate turns img clockwise by degrees. 90 and 270 swap width and height.
// A 0 rotation returns img itself. Only sample positions move; values are
// copied as they are.
func Rotate(img image.Image, degrees int) (image.Image, error) {
    d, err := normalizeRotation(degrees)
    if err != nil {
        return nil, err
    }
    if d == 0 {
        return img, nil
    }
    if yc, ok := img.(*image.YCbCr); ok && yc.SubsampleRatio == image.YCbCrSubsampleRatio420 &&
        yc.Rect.Min == (image.Point{}) && yc.Rect.Dx()%2 == 0 && yc.Rect.Dy()%2 == 0 {
        return rotateYCbCr(yc, d), nil
    }
    return rotateGeneric(img, d), nil
}

// rotateYCbCr rotates each plane separately. Even dimensions keep every 2x2
// block together, so chroma planes rotate at half resolution.
func rotateYCbCr(src *image.YCbCr, d int) *image.YCbCr {
    w, h := src.Rect.Dx(), src.Rect.Dy()
    dw, dh := w, h
    if d != 180 { dw, dh = h, w }
    dst := image.NewYCbCr(image.Rect(0, 0, dw, dh), image.YCbCrSubsampleRatio420)
    rotatePlane(dst.Y, dst.YStride, src.Y, src.YStride, w, h, d)
    rotatePlane(dst.Cb, dst.CStride, src.Cb, src.CStride, w/2, h/2, d)
    rotatePlane(dst.Cr, dst.CStride, src.Cr, src.CStride, w/2, h/2, d)
    return dst
}

func rotatePlane(dst []byte, dstStride int, src []byte, srcStride, w, h, d int) {
    for y := 0; y < h; y++ {
        row := src[y*srcStride : y*srcStride+w]
        for x, b := range row {
            dx, dy := rotatePoint(x, y, w, h, d)
            dst[dy*dstStride+dx] = b
        }
    }
}

// rotatePoint maps (x, y) in a w x h grid to its position after a clockwise turn.
func rotatePoint(x, y, w, h, d int) (int, int) {
    switch d {
    case 90:
        return h - 1 - y, x
    case 180:
        return w - 1 - x, h - 1 - y
    case 270:
        return y, w - 1 - x
    }
    return x, y
}

func rotateGeneric(src image.Image, d int) image.Image {
    b := src.Bounds()
    w, h := b.Dx(), b.Dy()
    dw, dh := w, h
    if d != 180 { dw, dh = h, w }
    dst := image.NewRGBA64(image.Rect(0, 0, dw, dh))
    for y := 0; y < h; y++ {
        for x := 0; x < w; x++ {
            dx, dy := rotatePoint(x, y, w, h, d)
            dst.Set(dx, dy, src.At(b.Min.X+x, b.Min.Y+y))
        }
    }
    return dst
}

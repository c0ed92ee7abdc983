package yuv

import "image"

// PackedImage is an NV21 image: a luma plane with stride == Width followed by
// one interleaved chroma plane ordered V, U per sample pair.
type PackedImage struct {
    Width, Height int
    Data          []byte
}

// NV21Size returns the packed buffer length for a w x h frame.
func NV21Size(w, h int) int { return w*h + 2*(w/2)*(h/2) }

// ToNV21 validates f and converts it into a freshly allocated NV21 image.
// The source planes are only read. On error no image is returned.
func ToNV21(f *PlanarFrame) (*PackedImage, error) {
    if err := Validate(f); err != nil {
        return nil, err
    }
    dst := make([]byte, NV21Size(f.Width, f.Height))
    i420ToNV21(f, dst)
    return &PackedImage{Width: f.Width, Height: f.Height, Data: dst}, nil
}

// YCbCr deinterleaves the chroma plane into an image.YCbCr (4:2:0) so the
// image can be handed to encoders from the image packages. Luma is shared.
func (p *PackedImage) YCbCr() *image.YCbCr {
    w, h := p.Width, p.Height
    ls := w * h
    cw, ch := w/2, h/2
    cb := make([]byte, cw*ch)
    cr := make([]byte, cw*ch)
    vu := p.Data[ls:]
    for i := range cb {
        cr[i] = vu[2*i]
        cb[i] = vu[2*i+1]
    }
    return &image.YCbCr{
        Y:              p.Data[:ls],
        Cb:             cb,
        Cr:             cr,
        YStride:        w,
        CStride:        cw,
        SubsampleRatio: image.YCbCrSubsampleRatio420,
        Rect:           image.Rect(0, 0, w, h),
    }
}

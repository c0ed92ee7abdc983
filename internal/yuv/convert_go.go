//go:build !yuv || !cgo

package yuv

// ConversionImpl reports the active conversion backend.
func ConversionImpl() string { return "go" }

// i420ToNV21 writes the NV21 form of a validated frame into dst
// (len(dst) == NV21Size). Tightly packed frames take the bulk-copy path.
func i420ToNV21(f *PlanarFrame, dst []byte) {
    w, h := f.Width, f.Height
    cw, ch := w/2, h/2
    ls := w * h
    if Contiguous(f) {
        copyPlane(dst[:ls], f.Y.Data)
        tmp := make([]byte, cw*ch)
        copyPlane(tmp, f.V.Data)
        for row := 0; row < ch; row++ {
            for col := 0; col < cw; col++ {
                dst[ls+row*w+col*2] = tmp[row*cw+col]
            }
        }
        copyPlane(tmp, f.U.Data)
        for row := 0; row < ch; row++ {
            for col := 0; col < cw; col++ {
                dst[ls+row*w+col*2+1] = tmp[row*cw+col]
            }
        }
        return
    }

    // Strided: rows carry padding, so walk them one at a time.
    for row := 0; row < h; row++ {
        srcOff := row * f.Y.Stride
        copy(dst[row*w:row*w+w], f.Y.Data[srcOff:srcOff+w])
    }
    i := ls
    u, v := f.U, f.V
    for row := 0; row < ch; row++ {
        for col := 0; col < cw; col++ {
            dst[i] = v.Data[col+row*v.Stride]
            dst[i+1] = u.Data[col+row*u.Stride]
            i += 2
        }
    }
}

// copyPlane copies min(len(src), len(dst)) bytes from the start of src to the
// start of dst and returns the count.
func copyPlane(dst, src []byte) int {
    return copy(dst, src)
}

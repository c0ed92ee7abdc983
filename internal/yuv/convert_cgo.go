//go:build cgo && yuv

package yuv

/*
#cgo CFLAGS: -I/usr/include -I/usr/local/include
#cgo LDFLAGS: -lyuv

#include <stdint.h>
#include <libyuv.h>
*/
import "C"

// ConversionImpl reports the active conversion backend.
func ConversionImpl() string { return "libyuv" }

// i420ToNV21 converts a validated frame using libyuv (SIMD-accelerated).
// libyuv handles padded strides directly, so there is a single path.
func i420ToNV21(f *PlanarFrame, dst []byte) {
    w, h := f.Width, f.Height
    ls := w * h
    C.I420ToNV21(
        (*C.uint8_t)(&f.Y.Data[0]), C.int(f.Y.Stride),
        (*C.uint8_t)(&f.U.Data[0]), C.int(f.U.Stride),
        (*C.uint8_t)(&f.V.Data[0]), C.int(f.V.Stride),
        (*C.uint8_t)(&dst[0]), C.int(w),
        (*C.uint8_t)(&dst[ls]), C.int(w),
        C.int(w), C.int(h),
    )
}

//go:build !yuv || !cgo

package yuv

import (
    "bytes"
    "testing"
)

func TestCopyPlane(t *testing.T) {
    src := []byte{1, 2, 3, 4, 5}
    cases := []struct {
        name string
        dst  int
        want []byte
    }{
        {"dst smaller", 3, []byte{1, 2, 3}},
        {"equal", 5, []byte{1, 2, 3, 4, 5}},
        {"dst larger", 7, []byte{1, 2, 3, 4, 5, 0, 0}},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            dst := make([]byte, tc.dst)
            n := copyPlane(dst, src)
            if want := min(tc.dst, len(src)); n != want {
                t.Fatalf("n = %d, want %d", n, want)
            }
            if !bytes.Equal(dst, tc.want) {
                t.Fatalf("dst = %v, want %v", dst, tc.want)
            }
        })
    }

    // Reusing the same temporary starts from offset 0 every time.
    tmp := make([]byte, 2)
    copyPlane(tmp, []byte{7, 8, 9})
    copyPlane(tmp, []byte{4, 5})
    if !bytes.Equal(tmp, []byte{4, 5}) {
        t.Fatalf("tmp = %v, want [4 5]", tmp)
    }
}

func TestConversionImpl(t *testing.T) {
    if got := ConversionImpl(); got != "go" {
        t.Fatalf("ConversionImpl() = %q", got)
    }
}

func BenchmarkToNV21(b *testing.B) {
    w, h := 1280, 720
    y, u, v := make([]byte, w*h), make([]byte, w*h/4), make([]byte, w*h/4)
    tight := NewPlanarFrame(w, h, y, u, v, w, w/2, w/2)
    strided := NewPlanarFrame(w, h, make([]byte, (w+64)*h), make([]byte, (w/2+32)*h/2), make([]byte, (w/2+32)*h/2), w+64, w/2+32, w/2+32)
    b.Run("contiguous", func(b *testing.B) {
        for i := 0; i < b.N; i++ {
            if _, err := ToNV21(tight); err != nil {
                b.Fatal(err)
            }
        }
    })
    b.Run("strided", func(b *testing.B) {
        for i := 0; i < b.N; i++ {
            if _, err := ToNV21(strided); err != nil {
                b.Fatal(err)
            }
        }
    })
}

// Package subtle provides the buffer aliasing checks the crypto/cipher
// interfaces require of their implementations.
package subtle

import "unsafe"

// AnyOverlap reports whether x and y share memory at any (not
// necessarily corresponding) index. The memory beyond the slice length
// is ignored.
func AnyOverlap(x, y []byte) bool {
	return len(x) > 0 && len(y) > 0 &&
		uintptr(unsafe.Pointer(&x[0])) <= uintptr(unsafe.Pointer(&y[len(y)-1])) &&
		uintptr(unsafe.Pointer(&y[0])) <= uintptr(unsafe.Pointer(&x[len(x)-1]))
}

// InexactOverlap reports whether x and y share memory at any
// non-corresponding index. The memory beyond the slice length is
// ignored. Note that x and y can have different lengths and still not
// have any inexact overlap.
func InexactOverlap(x, y []byte) bool {
	if len(x) == 0 || len(y) == 0 || &x[0] == &y[0] {
		return false
	}
	return AnyOverlap(x, y)
}

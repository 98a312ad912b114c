package aesni

import "math/bits"

// GF(2^8) field helpers and the AES tables they generate. The S-boxes
// and round constants are derived at init from the field arithmetic
// rather than embedded as literal blobs.

// xtime multiplies a field element by x, reducing modulo the AES
// polynomial x^8 + x^4 + x^3 + x + 1.
func xtime(b byte) byte {
	return b<<1 ^ 0x1b&-(b>>7)
}

var (
	// sbox is the SubBytes substitution table; invSbox is its inverse.
	sbox    [256]byte
	invSbox [256]byte

	// rcon holds the round constants consumed by key expansion, one per
	// step, built by repeated doubling: 0x01, 0x02, ..., 0x80, 0x1b, 0x36.
	rcon [10]byte
)

func init() {
	// Exponential and log tables over the generator 3.
	var exp, log [256]byte
	x := byte(1)
	for i := 0; i < 255; i++ {
		exp[i] = x
		log[x] = byte(i)
		x ^= xtime(x)
	}

	// S(v) = affine(v^-1): XOR the four left rotations of the inverse
	// into itself, then add 0x63.
	for i := 0; i < 256; i++ {
		var v byte
		if i != 0 {
			v = exp[(255-int(log[i]))%255]
		}
		s := v ^ bits.RotateLeft8(v, 1) ^ bits.RotateLeft8(v, 2) ^
			bits.RotateLeft8(v, 3) ^ bits.RotateLeft8(v, 4) ^ 0x63
		sbox[i] = s
		invSbox[s] = byte(i)
	}

	r := byte(1)
	for i := range rcon {
		rcon[i] = r
		r = xtime(r)
	}
}

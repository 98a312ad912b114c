package aesni

import (
	"encoding/binary"
	"math/bits"

	"lukechampine.com/uint128"
)

// GF(2^128) multiplication for GHASH, following the carry-less multiply
// algorithm of [CLMUL-WP]: build the 256-bit polynomial product from four
// 64x64 carry-less multiplies, shift it left one bit for GCM's reflected
// element convention, then reduce modulo x^128 + x^7 + x^2 + x + 1.

// GCMMul multiplies the field elements a and b and writes the product to
// c, which may alias either operand. Elements are in big-endian wire
// order. The pipeline is branch- and table-free; its timing does not
// depend on the operands.
func GCMMul(c, a, b *[BlockSize]byte) {
	// The multiplication runs on the byte-reversed representation, which
	// is simply the big-endian load of the wire bytes.
	x := readElement(a)
	y := readElement(b)

	// 256-bit carry-less product: low*low, high*high, and the two cross
	// terms folded together and spliced into the middle.
	lo := clmul(x.Lo, y.Lo)
	hi := clmul(x.Hi, y.Hi)
	ef := clmul(x.Lo, y.Hi).Xor(clmul(x.Hi, y.Lo))
	lo = lo.Xor(ef.Lsh(64))
	hi = hi.Xor(ef.Rsh(64))

	// Shift the whole product left one bit ([CLMUL-WP] eq. 27).
	hi = hi.Lsh(1).Or(lo.Rsh(127))
	lo = lo.Lsh(1)

	// Reduce ([CLMUL-WP] alg. 5): fold the 63, 62 and 57 bit left shifts
	// of the low quadword into the high one, then fold the 1, 2 and 7
	// bit right shifts of that back across, and add the high half.
	v := uint128.New(lo.Lo, lo.Hi^lo.Lo<<63^lo.Lo<<62^lo.Lo<<57)
	v = v.Xor(v.Rsh(1)).Xor(v.Rsh(2)).Xor(v.Rsh(7))
	putElement(c, hi.Xor(v))
}

func readElement(p *[BlockSize]byte) uint128.Uint128 {
	return uint128.New(
		binary.BigEndian.Uint64(p[8:16]),
		binary.BigEndian.Uint64(p[0:8]),
	)
}

func putElement(p *[BlockSize]byte, x uint128.Uint128) {
	binary.BigEndian.PutUint64(p[0:8], x.Hi)
	binary.BigEndian.PutUint64(p[8:16], x.Lo)
}

// clmul is the 64x64 carry-less multiply, the PCLMULQDQ operation: the
// full 128-bit polynomial product of x and y over GF(2).
//
// The low quadword comes from bmul64 directly. The high quadword is the
// bit-reversed low quadword of the product of the bit-reversed operands:
// reversing both operands reverses the 127-bit product, so the top bits
// surface in the low half, one position short of the end.
func clmul(x, y uint64) uint128.Uint128 {
	lo := bmul64(x, y)
	hi := bits.Reverse64(bmul64(bits.Reverse64(x), bits.Reverse64(y))) >> 1
	return uint128.New(lo, hi)
}

// bmul64 returns the low 64 bits of the carry-less product of x and y in
// constant time. The operands are split into four interleaved classes of
// every fourth bit; multiplying one class by another leaves three-bit
// holes that absorb the integer carries, so masking each combined
// product back to its class recovers the XOR-only result.
func bmul64(x, y uint64) uint64 {
	x0 := x & 0x1111111111111111
	x1 := x & 0x2222222222222222
	x2 := x & 0x4444444444444444
	x3 := x & 0x8888888888888888
	y0 := y & 0x1111111111111111
	y1 := y & 0x2222222222222222
	y2 := y & 0x4444444444444444
	y3 := y & 0x8888888888888888
	z0 := x0*y0 ^ x1*y3 ^ x2*y2 ^ x3*y1
	z1 := x0*y1 ^ x1*y0 ^ x2*y3 ^ x3*y2
	z2 := x0*y2 ^ x1*y1 ^ x2*y0 ^ x3*y3
	z3 := x0*y3 ^ x1*y2 ^ x2*y1 ^ x3*y0
	return z0&0x1111111111111111 |
		z1&0x2222222222222222 |
		z2&0x4444444444444444 |
		z3&0x8888888888888888
}

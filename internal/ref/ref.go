// Package ref implements AES and GHASH the way FIPS 197 and the GCM
// definition write them down: big-endian schedule words, a row-major
// state matrix and a bit-serial field multiply, sharing no table
// construction or algorithm shape with the primary package. The tests
// use it as an independent oracle. Keys must be 16, 24 or 32 bytes.
package ref

import "encoding/binary"

// gmul multiplies a and b in GF(2^8) modulo x^8 + x^4 + x^3 + x + 1 by
// shift and add.
func gmul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

var sbox, invSbox [256]byte

func init() {
	for i := 0; i < 256; i++ {
		// Multiplicative inverse by exhaustive search.
		var inv byte
		for j := 1; i != 0 && j < 256; j++ {
			if gmul(byte(i), byte(j)) == 1 {
				inv = byte(j)
				break
			}
		}
		// The affine transformation of FIPS 197 5.1.1, one output bit
		// at a time.
		var s byte
		for bit := 0; bit < 8; bit++ {
			b := inv>>bit ^ inv>>((bit+4)%8) ^ inv>>((bit+5)%8) ^
				inv>>((bit+6)%8) ^ inv>>((bit+7)%8) ^ 0x63>>bit
			s |= (b & 1) << bit
		}
		sbox[i] = s
		invSbox[s] = byte(i)
	}
}

func subWord(w uint32) uint32 {
	return uint32(sbox[w>>24])<<24 | uint32(sbox[w>>16&0xff])<<16 |
		uint32(sbox[w>>8&0xff])<<8 | uint32(sbox[w&0xff])
}

func rotWord(w uint32) uint32 { return w<<8 | w>>24 }

// RoundKeys runs the FIPS 197 5.2 key expansion and returns the Nr+1
// round keys, whitening key first.
func RoundKeys(key []byte) [][16]byte {
	nk := len(key) / 4
	nr := nk + 6
	w := make([]uint32, 4*(nr+1))
	for i := 0; i < nk; i++ {
		w[i] = binary.BigEndian.Uint32(key[4*i:])
	}
	rc := uint32(1) << 24
	for i := nk; i < len(w); i++ {
		t := w[i-1]
		switch {
		case i%nk == 0:
			t = subWord(rotWord(t)) ^ rc
			rc = uint32(gmul(byte(rc>>24), 2)) << 24
		case nk > 6 && i%nk == 4:
			t = subWord(t)
		}
		w[i] = w[i-nk] ^ t
	}
	keys := make([][16]byte, nr+1)
	for i := range keys {
		for j := 0; j < 4; j++ {
			binary.BigEndian.PutUint32(keys[i][4*j:], w[4*i+j])
		}
	}
	return keys
}

// InverseRoundKeys returns the decryption schedule of the equivalent
// inverse cipher, FIPS 197 5.3.5: the round keys reversed, the interior
// ones run through InvMixColumns.
func InverseRoundKeys(key []byte) [][16]byte {
	fwd := RoundKeys(key)
	last := len(fwd) - 1
	inv := make([][16]byte, len(fwd))
	inv[0] = fwd[last]
	for i := 1; i < last; i++ {
		s := loadState(fwd[last-i])
		invMixColumns(&s)
		inv[i] = storeState(s)
	}
	inv[last] = fwd[0]
	return inv
}

// state is the FIPS 197 3.4 matrix: state[r][c] holds input byte r+4c.
type state [4][4]byte

func loadState(b [16]byte) state {
	var s state
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s[r][c] = b[r+4*c]
		}
	}
	return s
}

func storeState(s state) [16]byte {
	var b [16]byte
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			b[r+4*c] = s[r][c]
		}
	}
	return b
}

func addRoundKey(s *state, rk [16]byte) {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s[r][c] ^= rk[r+4*c]
		}
	}
}

func subBytes(s *state) {
	for r := range s {
		for c := range s[r] {
			s[r][c] = sbox[s[r][c]]
		}
	}
}

func invSubBytes(s *state) {
	for r := range s {
		for c := range s[r] {
			s[r][c] = invSbox[s[r][c]]
		}
	}
}

// shiftRows rotates row r left by r positions.
func shiftRows(s *state) {
	for r := 1; r < 4; r++ {
		var t [4]byte
		for c := 0; c < 4; c++ {
			t[c] = s[r][(c+r)%4]
		}
		s[r] = t
	}
}

func invShiftRows(s *state) {
	for r := 1; r < 4; r++ {
		var t [4]byte
		for c := 0; c < 4; c++ {
			t[(c+r)%4] = s[r][c]
		}
		s[r] = t
	}
}

var (
	mixM    = [4][4]byte{{2, 3, 1, 1}, {1, 2, 3, 1}, {1, 1, 2, 3}, {3, 1, 1, 2}}
	invMixM = [4][4]byte{{14, 11, 13, 9}, {9, 14, 11, 13}, {13, 9, 14, 11}, {11, 13, 9, 14}}
)

func mulColumns(s *state, m *[4][4]byte) {
	for c := 0; c < 4; c++ {
		var col [4]byte
		for r := 0; r < 4; r++ {
			col[r] = s[r][c]
		}
		for r := 0; r < 4; r++ {
			var v byte
			for k := 0; k < 4; k++ {
				v ^= gmul(m[r][k], col[k])
			}
			s[r][c] = v
		}
	}
}

func mixColumns(s *state)    { mulColumns(s, &mixM) }
func invMixColumns(s *state) { mulColumns(s, &invMixM) }

// Encrypt computes the FIPS 197 5.1 cipher on one block.
func Encrypt(key []byte, block [16]byte) [16]byte {
	keys := RoundKeys(key)
	nr := len(keys) - 1
	s := loadState(block)
	addRoundKey(&s, keys[0])
	for round := 1; round < nr; round++ {
		subBytes(&s)
		shiftRows(&s)
		mixColumns(&s)
		addRoundKey(&s, keys[round])
	}
	subBytes(&s)
	shiftRows(&s)
	addRoundKey(&s, keys[nr])
	return storeState(s)
}

// Decrypt computes the FIPS 197 5.3 inverse cipher on one block. It
// walks the forward schedule backwards rather than using the equivalent
// inverse cipher, so it checks that construction from the outside.
func Decrypt(key []byte, block [16]byte) [16]byte {
	keys := RoundKeys(key)
	nr := len(keys) - 1
	s := loadState(block)
	addRoundKey(&s, keys[nr])
	for round := nr - 1; round > 0; round-- {
		invShiftRows(&s)
		invSubBytes(&s)
		addRoundKey(&s, keys[round])
		invMixColumns(&s)
	}
	invShiftRows(&s)
	invSubBytes(&s)
	addRoundKey(&s, keys[0])
	return storeState(s)
}

// GHashMul multiplies x and y in GF(2^128) one bit at a time, with the
// bit and byte ordering of the GCM definition.
func GHashMul(x, y [16]byte) [16]byte {
	var z [16]byte
	v := x
	for i := 0; i < 128; i++ {
		if y[i/8]>>(7-i%8)&1 == 1 {
			for j := range z {
				z[j] ^= v[j]
			}
		}
		carry := v[15] & 1
		for j := 15; j > 0; j-- {
			v[j] = v[j]>>1 | v[j-1]<<7
		}
		v[0] >>= 1
		if carry != 0 {
			v[0] ^= 0xe1
		}
	}
	return z
}

package aesni

// The fused AES round instructions modeled as bit-exact operations on the
// 16-byte state. Each keeps the operand roles of its hardware counterpart:
// the state accumulator comes first, the round-key operand second, and the
// key XOR always happens last.

// Mode selects the direction of CryptBlock.
type Mode int

const (
	// Decrypt runs the inverse cipher. The schedule must be a decryption
	// schedule from InverseKey.
	Decrypt Mode = iota
	// Encrypt runs the forward cipher with a schedule from Expand.
	Encrypt
)

// CryptBlock transforms the single block src into dst under the given
// schedule: the whitening XOR with round key 0, rounds-1 full rounds, then
// the final round without the column mix. dst and src may point at the
// same block. The schedule's origin (Expand or InverseKey) must match
// mode; that, like all buffer contracts here, is the caller's to uphold.
func CryptBlock(mode Mode, s *Schedule, dst, src *[BlockSize]byte) {
	b := addRoundKey(*src, s.keys[0])
	if mode == Encrypt {
		for i := 1; i < s.nr; i++ {
			b = aesenc(b, s.keys[i])
		}
		b = aesenclast(b, s.keys[s.nr])
	} else {
		for i := 1; i < s.nr; i++ {
			b = aesdec(b, s.keys[i])
		}
		b = aesdeclast(b, s.keys[s.nr])
	}
	*dst = b
}

// aesenc is one full encryption round: SubBytes, ShiftRows, MixColumns,
// AddRoundKey.
func aesenc(b [16]byte, rk RoundKey) [16]byte {
	b = subBytes(b)
	b = shiftRows(b)
	b = mixColumns(b)
	return addRoundKey(b, rk)
}

// aesenclast is the final encryption round; it skips MixColumns.
func aesenclast(b [16]byte, rk RoundKey) [16]byte {
	b = subBytes(b)
	b = shiftRows(b)
	return addRoundKey(b, rk)
}

// aesdec is one round of the equivalent inverse cipher: InvShiftRows,
// InvSubBytes, InvMixColumns, AddRoundKey. The column mix runs before the
// key XOR, which is why InverseKey passes the interior round keys through
// aesimc.
func aesdec(b [16]byte, rk RoundKey) [16]byte {
	b = invShiftRows(b)
	b = invSubBytes(b)
	b = invMixColumns(b)
	return addRoundKey(b, rk)
}

// aesdeclast is the final decryption round; it skips InvMixColumns.
func aesdeclast(b [16]byte, rk RoundKey) [16]byte {
	b = invShiftRows(b)
	b = invSubBytes(b)
	return addRoundKey(b, rk)
}

// aesimc applies InvMixColumns to a round key.
func aesimc(rk RoundKey) RoundKey {
	return RoundKey(invMixColumns([16]byte(rk)))
}

func addRoundKey(b [16]byte, rk RoundKey) [16]byte {
	for i := range b {
		b[i] ^= rk[i]
	}
	return b
}

func subBytes(b [16]byte) [16]byte {
	for i, v := range b {
		b[i] = sbox[v]
	}
	return b
}

func invSubBytes(b [16]byte) [16]byte {
	for i, v := range b {
		b[i] = invSbox[v]
	}
	return b
}

// The state stores columns in memory order: byte 4c+r is row r of column
// c. ShiftRows rotates row r left by r positions.
func shiftRows(b [16]byte) [16]byte {
	return [16]byte{
		b[0], b[5], b[10], b[15],
		b[4], b[9], b[14], b[3],
		b[8], b[13], b[2], b[7],
		b[12], b[1], b[6], b[11],
	}
}

func invShiftRows(b [16]byte) [16]byte {
	return [16]byte{
		b[0], b[13], b[10], b[7],
		b[4], b[1], b[14], b[11],
		b[8], b[5], b[2], b[15],
		b[12], b[9], b[6], b[3],
	}
}

// mixColumns multiplies each state column by the circulant matrix
// (02 03 01 01).
func mixColumns(b [16]byte) [16]byte {
	for c := 0; c < 16; c += 4 {
		a0, a1, a2, a3 := b[c], b[c+1], b[c+2], b[c+3]
		t := a0 ^ a1 ^ a2 ^ a3
		b[c] = a0 ^ t ^ xtime(a0^a1)
		b[c+1] = a1 ^ t ^ xtime(a1^a2)
		b[c+2] = a2 ^ t ^ xtime(a2^a3)
		b[c+3] = a3 ^ t ^ xtime(a3^a0)
	}
	return b
}

// invMixColumns multiplies each state column by (0e 0b 0d 09). The
// inverse matrix factors through the forward one: first add the doubled
// doublings of the alternating byte pairs, then apply mixColumns.
func invMixColumns(b [16]byte) [16]byte {
	for c := 0; c < 16; c += 4 {
		u := xtime(xtime(b[c] ^ b[c+2]))
		v := xtime(xtime(b[c+1] ^ b[c+3]))
		b[c] ^= u
		b[c+1] ^= v
		b[c+2] ^= u
		b[c+3] ^= v
	}
	return mixColumns(b)
}

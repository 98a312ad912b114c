package aesni

import "encoding/binary"

// Key expansion. The three variants run the [FIPS-197] 5.2 recurrence as
// 128-bit fold steps, the shape the key-generation assist instruction
// serves: each step XORs a transformed tail word into the state one word
// at a time and emits the advanced state as schedule material.

// Expand computes the forward (encryption) key schedule for a 16, 24 or
// 32 byte key. Any other length returns KeySizeError and leaves the
// schedule untouched.
func (s *Schedule) Expand(key []byte) error {
	switch len(key) {
	case 16:
		expandKey128(s, key)
	case 24:
		expandKey192(s, key)
	case 32:
		expandKey256(s, key)
	default:
		return KeySizeError(len(key))
	}
	return nil
}

// InverseKey fills inv with the decryption schedule derived from the
// forward schedule fwd: the round keys in reverse order, the interior
// ones passed through the inverse column mix. This is the equivalent
// inverse cipher schedule of [FIPS-197] 5.3.5. inv must not alias fwd.
func InverseKey(inv, fwd *Schedule) {
	nr := fwd.nr
	inv.keys[0] = fwd.keys[nr]
	for i := 1; i < nr; i++ {
		inv.keys[i] = aesimc(fwd.keys[nr-i])
	}
	inv.keys[nr] = fwd.keys[0]
	inv.nr = nr
}

// subWord substitutes each byte of a schedule word.
func subWord(w uint32) uint32 {
	return uint32(sbox[w&0xff]) |
		uint32(sbox[w>>8&0xff])<<8 |
		uint32(sbox[w>>16&0xff])<<16 |
		uint32(sbox[w>>24])<<24
}

// rotWord cycles the bytes of a schedule word: [a0,a1,a2,a3] becomes
// [a1,a2,a3,a0]. Schedule words are little-endian, so the byte cycle is
// a right rotation.
func rotWord(w uint32) uint32 {
	return w>>8 | w<<24
}

// storeKey writes four schedule words as round key i.
func (s *Schedule) storeKey(i int, t [4]uint32) {
	binary.LittleEndian.PutUint32(s.keys[i][0:4], t[0])
	binary.LittleEndian.PutUint32(s.keys[i][4:8], t[1])
	binary.LittleEndian.PutUint32(s.keys[i][8:12], t[2])
	binary.LittleEndian.PutUint32(s.keys[i][12:16], t[3])
}

// storeWords writes schedule words one at a time starting at word
// position n (four words per round key) and returns the next position.
func (s *Schedule) storeWords(n int, w []uint32) int {
	for _, x := range w {
		binary.LittleEndian.PutUint32(s.keys[n/4][n%4*4:], x)
		n++
	}
	return n
}

// expandKey128: the state is one 128-bit word seeded with the raw key.
// Each of ten steps folds RotWord(SubWord(t3)) ^ rcon through the state
// and emits it as the next round key.
func expandKey128(s *Schedule, key []byte) {
	var t [4]uint32
	for i := range t {
		t[i] = binary.LittleEndian.Uint32(key[4*i:])
	}
	s.storeKey(0, t)
	for i, rc := range rcon {
		x := rotWord(subWord(t[3])) ^ uint32(rc)
		t[0] ^= x
		t[1] ^= t[0]
		t[2] ^= t[1]
		t[3] ^= t[2]
		s.storeKey(i+1, t)
	}
	s.nr = rounds128
}

// expandKey192: the state is a 128-bit word plus a 64-bit tail. Each of
// eight steps advances both parts and emits all six words, so the
// schedule is a flat word stream whose consecutive 16-byte windows are
// the round keys: two steps yield three keys.
func expandKey192(s *Schedule, key []byte) {
	var t [4]uint32
	var u [2]uint32
	for i := range t {
		t[i] = binary.LittleEndian.Uint32(key[4*i:])
	}
	u[0] = binary.LittleEndian.Uint32(key[16:])
	u[1] = binary.LittleEndian.Uint32(key[20:])

	n := s.storeWords(0, t[:])
	n = s.storeWords(n, u[:])
	for i := 0; i < 8; i++ {
		x := rotWord(subWord(u[1])) ^ uint32(rcon[i])
		t[0] ^= x
		t[1] ^= t[0]
		t[2] ^= t[1]
		t[3] ^= t[2]
		u[0] ^= t[3]
		u[1] ^= u[0]
		n = s.storeWords(n, t[:])
		n = s.storeWords(n, u[:])
	}
	s.nr = rounds192
}

// expandKey256: the state is two 128-bit words. Seven paired steps
// alternate the rotate+substitute+rcon transform (even keys) with a
// substitute-only transform, no rotation and no round constant (odd
// keys). The last odd fold generates one more key than necessary; it
// lands in the spare slot past round key 14 and is not part of the
// schedule.
func expandKey256(s *Schedule, key []byte) {
	var t, u [4]uint32
	for i := range t {
		t[i] = binary.LittleEndian.Uint32(key[4*i:])
		u[i] = binary.LittleEndian.Uint32(key[16+4*i:])
	}
	s.storeKey(0, t)
	s.storeKey(1, u)
	for i := 0; i < 7; i++ {
		x := rotWord(subWord(u[3])) ^ uint32(rcon[i])
		t[0] ^= x
		t[1] ^= t[0]
		t[2] ^= t[1]
		t[3] ^= t[2]
		s.storeKey(2*i+2, t)

		y := subWord(t[3])
		u[0] ^= y
		u[1] ^= u[0]
		u[2] ^= u[1]
		u[3] ^= u[2]
		s.storeKey(2*i+3, u)
	}
	s.nr = rounds256
}

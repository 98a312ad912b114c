package aesni

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"testing"
)

func unhex(s string) []byte {
	p, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return p
}

// TestAESEnc tests the fused encryption round.
//
// The vector is the worked AESENC example in
// https://www.ietf.org/archive/id/draft-irtf-cfrg-aegis-aead-02.html
// appendix A.1.
func TestAESEnc(t *testing.T) {
	in := [BlockSize]byte(unhex("000102030405060708090a0b0c0d0e0f"))
	rk := RoundKey(unhex("101112131415161718191a1b1c1d1e1f"))
	want := [BlockSize]byte(unhex("7a7b4e5638782546a8c0477a3b813f43"))
	if got := aesenc(in, rk); got != want {
		t.Fatalf("expected %#x, got %#x", want, got)
	}
}

// TestCryptBlock tests single block encryption and decryption.
//
// See [FIPS-197] appendix C and SP 800-38A F.1.
func TestCryptBlock(t *testing.T) {
	for _, tc := range []struct {
		name string
		key  []byte
		pt   []byte
		ct   []byte
	}{
		{
			name: "C.1",
			key:  unhex("000102030405060708090a0b0c0d0e0f"),
			pt:   unhex("00112233445566778899aabbccddeeff"),
			ct:   unhex("69c4e0d86a7b0430d8cdb78070b4c55a"),
		},
		{
			name: "C.2",
			key:  unhex("000102030405060708090a0b0c0d0e0f1011121314151617"),
			pt:   unhex("00112233445566778899aabbccddeeff"),
			ct:   unhex("dda97ca4864cdfe06eaf70a0ec0d7191"),
		},
		{
			name: "C.3",
			key:  unhex("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"),
			pt:   unhex("00112233445566778899aabbccddeeff"),
			ct:   unhex("8ea2b7ca516745bfeafc49904b496089"),
		},
		{
			name: "ECB-AES128",
			key:  unhex("2b7e151628aed2a6abf7158809cf4f3c"),
			pt:   unhex("6bc1bee22e409f96e93d7e117393172a"),
			ct:   unhex("3ad77bb40d7a3660a89ecaf32466ef97"),
		},
	} {
		var enc, dec Schedule
		if err := enc.Expand(tc.key); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		InverseKey(&dec, &enc)

		var got [BlockSize]byte
		CryptBlock(Encrypt, &enc, &got, (*[BlockSize]byte)(tc.pt))
		if !bytes.Equal(got[:], tc.ct) {
			t.Fatalf("%s: expected %#x, got %#x", tc.name, tc.ct, got)
		}
		CryptBlock(Decrypt, &dec, &got, &got)
		if !bytes.Equal(got[:], tc.pt) {
			t.Fatalf("%s: expected %#x, got %#x", tc.name, tc.pt, got)
		}
	}
}

// TestRoundTrip tests that the inverse schedule undoes encryption for
// each key size.
func TestRoundTrip(t *testing.T) {
	for _, size := range []int{16, 24, 32} {
		key := make([]byte, size)
		var pt [BlockSize]byte
		for i := 0; i < 100; i++ {
			if _, err := rand.Read(key); err != nil {
				t.Fatal(err)
			}
			if _, err := rand.Read(pt[:]); err != nil {
				t.Fatal(err)
			}
			var enc, dec Schedule
			if err := enc.Expand(key); err != nil {
				t.Fatal(err)
			}
			InverseKey(&dec, &enc)
			var ct, got [BlockSize]byte
			CryptBlock(Encrypt, &enc, &ct, &pt)
			if ct == pt {
				t.Fatalf("key size %d: block unchanged by encryption", size)
			}
			CryptBlock(Decrypt, &dec, &got, &ct)
			if got != pt {
				t.Fatalf("key size %d: expected %#x, got %#x", size, pt, got)
			}
		}
	}
}

func BenchmarkCryptBlock128(b *testing.B) { benchmarkCryptBlock(b, 16) }
func BenchmarkCryptBlock192(b *testing.B) { benchmarkCryptBlock(b, 24) }
func BenchmarkCryptBlock256(b *testing.B) { benchmarkCryptBlock(b, 32) }

func benchmarkCryptBlock(b *testing.B, keySize int) {
	var s Schedule
	if err := s.Expand(make([]byte, keySize)); err != nil {
		b.Fatal(err)
	}
	var blk [BlockSize]byte
	b.SetBytes(BlockSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CryptBlock(Encrypt, &s, &blk, &blk)
	}
}

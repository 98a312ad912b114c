// Package aesni implements the AES primitives behind the x86 AES New
// Instructions and their carry-less multiply companion: block
// encryption and decryption, key schedule expansion and inversion, and
// multiplication in GF(2^128) for GHASH.
//
// Every operation computes the same bits on every architecture.
// [HasSupport] reports whether the running CPU carries the extensions
// natively.
//
// [FIPS-197]: https://nvlpubs.nist.gov/nistpubs/FIPS/NIST.FIPS.197-upd1.pdf
// [CLMUL-WP]: https://www.intel.com/content/dam/develop/external/us/en/documents/clmul-wp-rev-2-02-2014-04-20.pdf
package aesni

import (
	"runtime"
	"strconv"

	"golang.org/x/sys/cpu"
)

// A Capability is a bitmask of instruction set extensions.
type Capability uint32

const (
	// AES marks the AES instruction set: AESENC, AESDEC, AESIMC and
	// AESKEYGENASSIST. The value is CPUID.1:ECX bit 25, the bit that
	// advertises it.
	AES Capability = 0x02000000

	// CLMUL marks the carry-less multiply instruction PCLMULQDQ,
	// CPUID.1:ECX bit 1.
	CLMUL Capability = 0x00000002
)

// features is the capability word of the running CPU, probed once at
// package initialization.
var features = detect()

func detect() Capability {
	var caps Capability
	switch runtime.GOARCH {
	case "386", "amd64":
		if cpu.X86.HasAES {
			caps |= AES
		}
		if cpu.X86.HasPCLMULQDQ {
			caps |= CLMUL
		}
	case "arm64":
		// The feature registers are not readable from userland on
		// darwin, and every Apple arm64 core has the crypto extensions.
		if runtime.GOOS == "darwin" {
			return AES | CLMUL
		}
		if cpu.ARM64.HasAES {
			caps |= AES
		}
		if cpu.ARM64.HasPMULL {
			caps |= CLMUL
		}
	}
	return caps
}

// HasSupport reports whether the CPU advertises any of the extensions
// in what.
func HasSupport(what Capability) bool {
	return features&what != 0
}

const (
	// BlockSize is the AES block size in bytes.
	BlockSize = 16

	rounds128 = 10
	rounds192 = 12
	rounds256 = 14

	// maxRoundKeys is the capacity of a Schedule: the fifteen round
	// keys of AES-256 plus the spare slot the 256-bit expansion
	// scratches into.
	maxRoundKeys = 16
)

// KeySizeError reports a key whose length is not 16, 24 or 32 bytes.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "aesni: invalid key size " + strconv.Itoa(int(k))
}

// A RoundKey is one 128-bit round key of an expanded schedule.
type RoundKey [BlockSize]byte

// A Schedule is an expanded AES key: the round key sequence for one
// direction of the cipher. The zero Schedule is empty; fill it with
// [Schedule.Expand] or [InverseKey].
type Schedule struct {
	keys [maxRoundKeys]RoundKey
	nr   int
}

// Rounds returns the number of cipher rounds the schedule keys, or zero
// for an empty Schedule.
func (s *Schedule) Rounds() int {
	return s.nr
}

// RoundKeys returns the round keys in cipher order, whitening key
// first. The slice aliases the Schedule; it goes stale on Wipe.
func (s *Schedule) RoundKeys() []RoundKey {
	if s.nr == 0 {
		return nil
	}
	return s.keys[:s.nr+1]
}

// Wipe zeroes the schedule's key material and marks it empty.
func (s *Schedule) Wipe() {
	for i := range s.keys {
		s.keys[i] = RoundKey{}
	}
	s.nr = 0
	runtime.KeepAlive(s)
}

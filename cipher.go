package aesni

import (
	"crypto/cipher"

	"github.com/project-naive/aesni/internal/subtle"
)

// NewCipher returns a [cipher.Block] computing AES with the given 16,
// 24 or 32 byte key. It pairs a forward schedule with its inverse, so
// both directions of the interface run the fused round primitives.
func NewCipher(key []byte) (cipher.Block, error) {
	c := new(aesCipher)
	if err := c.enc.Expand(key); err != nil {
		return nil, err
	}
	InverseKey(&c.dec, &c.enc)
	return c, nil
}

type aesCipher struct {
	enc Schedule
	dec Schedule
}

func (c *aesCipher) BlockSize() int { return BlockSize }

func (c *aesCipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("aesni: input not full block")
	}
	if len(dst) < BlockSize {
		panic("aesni: output not full block")
	}
	if subtle.InexactOverlap(dst[:BlockSize], src[:BlockSize]) {
		panic("aesni: invalid buffer overlap")
	}
	CryptBlock(Encrypt, &c.enc, (*[BlockSize]byte)(dst), (*[BlockSize]byte)(src))
}

func (c *aesCipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("aesni: input not full block")
	}
	if len(dst) < BlockSize {
		panic("aesni: output not full block")
	}
	if subtle.InexactOverlap(dst[:BlockSize], src[:BlockSize]) {
		panic("aesni: invalid buffer overlap")
	}
	CryptBlock(Decrypt, &c.dec, (*[BlockSize]byte)(dst), (*[BlockSize]byte)(src))
}

// Package magma implements the GOST 28147-89 "Magma" block cipher in simple
// substitution (electronic codebook) mode.
//
// Blocks and keys are big-endian: the first four bytes of a block are its high
// half, and the first four bytes of the key are the first round key.
package magma

import (
	"crypto/cipher"
	"encoding/binary"
	"fmt"
	"math/bits"
)

const (
	// BlockSize is the cipher block size in bytes.
	BlockSize = 8

	rounds = 32
)

// schedule maps each round to a key word: 0..7 three times, then 7..0.
// Decryption walks it backwards.
var schedule = [rounds]uint8{
	0, 1, 2, 3, 4, 5, 6, 7,
	0, 1, 2, 3, 4, 5, 6, 7,
	0, 1, 2, 3, 4, 5, 6, 7,
	7, 6, 5, 4, 3, 2, 1, 0,
}

// Cipher is a Magma instance. The key may be replaced with SetKey between
// operations; it must not change while Process or Crypt is running. The zero
// value uses an all-zero key and SBoxTC26Z.
type Cipher struct {
	key  Key
	sbox *SBox // never shared with callers
}

var _ cipher.Block = (*Cipher)(nil)

// New returns a Cipher using key and the SBoxTC26Z substitution.
func New(key Key) *Cipher {
	return &Cipher{key: key, sbox: &sboxTC26Z}
}

// NewWithSBox returns a Cipher using key and its own copy of sbox.
func NewWithSBox(key Key, sbox SBox) *Cipher {
	return &Cipher{key: key, sbox: &sbox}
}

// NewCipher returns a cipher.Block for a 32-byte key, in the manner of
// crypto/des.NewCipher.
func NewCipher(key []byte) (cipher.Block, error) {
	k, err := KeyFromBytes(key)
	if err != nil {
		return nil, err
	}
	return New(k), nil
}

// SetKey replaces the key material.
func (c *Cipher) SetKey(key Key) { c.key = key }

// Key returns a copy of the key material.
func (c *Cipher) Key() Key { return c.key }

// BlockSize returns the cipher block size, BlockSize.
func (c *Cipher) BlockSize() int { return BlockSize }

// Encrypt encrypts the first block of src into dst. dst and src may overlap
// entirely.
func (c *Cipher) Encrypt(dst, src []byte) {
	c.checkBlock(dst, src)
	c.crypt(dst, src, false)
}

// Decrypt decrypts the first block of src into dst. dst and src may overlap
// entirely.
func (c *Cipher) Decrypt(dst, src []byte) {
	c.checkBlock(dst, src)
	c.crypt(dst, src, true)
}

func (c *Cipher) checkBlock(dst, src []byte) {
	if len(src) < BlockSize {
		panic(fmt.Sprintf("magma: input not full block: %d bytes", len(src)))
	}
	if len(dst) < BlockSize {
		panic(fmt.Sprintf("magma: output not full block: %d bytes", len(dst)))
	}
}

// crypt runs the 32 Feistel rounds. b is the high half of the block, a the low
// half; a goes through the round function and the halves swap every round.
// Writing a before b undoes the swap of the last round.
func (c *Cipher) crypt(dst, src []byte, decrypt bool) {
	b := binary.BigEndian.Uint32(src[0:4])
	a := binary.BigEndian.Uint32(src[4:8])

	for i := 0; i < rounds; i++ {
		j := i
		if decrypt {
			j = rounds - 1 - i
		}
		k := c.key[schedule[j]]
		a, b = c.round(a+k)^b, a
	}

	binary.BigEndian.PutUint32(dst[0:4], a)
	binary.BigEndian.PutUint32(dst[4:8], b)
}

func (c *Cipher) round(x uint32) uint32 {
	sbox := c.sbox
	if sbox == nil {
		sbox = &sboxTC26Z
	}
	return bits.RotateLeft32(sbox.substitute(x), 11)
}

// Package streebog implements the GOST R 34.11-2012 "Streebog" hash function
// with 256- and 512-bit digests.
//
// Messages and digests use the byte order of the standard's own notation: the
// first byte of a slice is the most significant byte of the number it encodes.
// The message is therefore consumed from its tail, 64 bytes at a time, and the
// 256-bit digest is the leading half of the 512-bit state.
package streebog

import (
	"errors"
	"fmt"
)

// Size selects the digest length in bits.
type Size int

const (
	// Size256 selects the 256-bit digest.
	Size256 Size = 256
	// Size512 selects the 512-bit digest.
	Size512 Size = 512
)

// ErrInvalidSize is returned by New for sizes other than Size256 and Size512.
var ErrInvalidSize = errors.New("streebog: invalid digest size")

// Bytes returns the digest length in bytes.
func (s Size) Bytes() int { return int(s) / 8 }

// String returns the algorithm name, such as "Streebog-256".
func (s Size) String() string {
	return fmt.Sprintf("Streebog-%d", int(s))
}

// Hash computes digests of a fixed size. It holds no per-message state, so a
// single Hash may be used from several goroutines.
type Hash struct {
	size Size
	iv   vector
}

// New returns a Hash producing digests of the given size.
func New(size Size) (*Hash, error) {
	switch size {
	case Size256, Size512:
		return &Hash{size: size, iv: initVector(size)}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, int(size))
	}
}

func initVector(size Size) vector {
	var iv vector
	if size == Size256 {
		for i := range iv {
			iv[i] = 0x01
		}
	}
	return iv
}

// Size returns the digest length in bytes.
func (h *Hash) Size() int { return h.size.Bytes() }

// BlockSize returns the block size of the compression function.
func (h *Hash) BlockSize() int { return BlockSize }

// Digest returns the hash of message. The message is not modified.
func (h *Hash) Digest(message []byte) []byte {
	state := h.sum(message)
	out := make([]byte, h.size.Bytes())
	copy(out, state[:])
	return out
}

func (h *Hash) sum(message []byte) vector {
	var n, sigma, m vector
	state := h.iv

	l := len(message)
	for l >= BlockSize {
		copy(m[:], message[l-BlockSize:l])
		state = compress(n, state, m)
		n = add(n, blockBits)
		sigma = add(sigma, m)
		l -= BlockSize
	}

	// Pad the head of the message: zeros, the 0x01 marker, then the l
	// remaining bytes.
	m = vector{}
	m[BlockSize-1-l] = 0x01
	copy(m[BlockSize-l:], message[:l])
	state = compress(n, state, m)
	n = add(n, bitLength(l))
	sigma = add(sigma, m)

	state = compress(vector{}, state, n)
	return compress(vector{}, state, sigma)
}

// compress is the function g_N: it mixes block m into the chaining value h.
func compress(n, h, m vector) vector {
	k := xor(h, n).lps()
	t := encrypt(k, m)
	return xor(xor(t, h), m)
}

// encrypt is the 12-round cipher E keyed by k, with the last round key
// whitening the output.
func encrypt(k, m vector) vector {
	state := xor(k, m)
	for i := 0; i < rounds; i++ {
		state = state.lps()
		k = keySchedule(k, i)
		state = xor(state, k)
	}
	return state
}

func keySchedule(k vector, round int) vector {
	return xor(k, roundConstants[round]).lps()
}

// Sum256 returns the 256-bit digest of data.
func Sum256(data []byte) [32]byte {
	h := Hash{size: Size256, iv: initVector(Size256)}
	state := h.sum(data)
	return [32]byte(state[:32])
}

// Sum512 returns the 512-bit digest of data.
func Sum512(data []byte) [64]byte {
	h := Hash{size: Size512}
	return [64]byte(h.sum(data))
}

package streebog

import (
	"crypto/subtle"
	"encoding/binary"
)

// vector is a 512-bit value, most significant byte first. Every transform
// takes and returns vectors by value so no buffer is shared between steps.
type vector [BlockSize]byte

// blockBits is 512 as a vector, the amount N grows by per full block.
var blockBits = vector{BlockSize - 2: 0x02}

func xor(a, b vector) vector {
	var out vector
	subtle.XORBytes(out[:], a[:], b[:])
	return out
}

// add returns a+b mod 2^512. The carry runs from the last byte toward the first.
func add(a, b vector) vector {
	var out vector
	var carry uint16
	for i := BlockSize - 1; i >= 0; i-- {
		sum := uint16(a[i]) + uint16(b[i]) + carry
		out[i] = byte(sum)
		carry = sum >> 8
	}
	return out
}

// bitLength encodes the bit count of a final block of l bytes (l < BlockSize).
func bitLength(l int) vector {
	var v vector
	binary.BigEndian.PutUint16(v[BlockSize-2:], uint16(l*8))
	return v
}

func (v vector) s() vector {
	var out vector
	for i, b := range v {
		out[i] = pi[b]
	}
	return out
}

func (v vector) p() vector {
	var out vector
	for i := range out {
		out[i] = v[tau[i]]
	}
	return out
}

// l multiplies each 8-byte row of v by the linear matrix over GF(2).
func (v vector) l() vector {
	var out vector
	for i := 0; i < BlockSize; i += 8 {
		row := binary.BigEndian.Uint64(v[i:])
		var acc uint64
		for j := 0; j < 64; j++ {
			if row&(1<<(63-j)) != 0 {
				acc ^= linear[j]
			}
		}
		binary.BigEndian.PutUint64(out[i:], acc)
	}
	return out
}

func (v vector) lps() vector {
	return v.s().p().l()
}

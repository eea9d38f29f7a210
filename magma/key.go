package magma

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// KeySize is the key length in bytes.
const KeySize = 32

// ErrKeySize is returned for key material that is not KeySize bytes long.
var ErrKeySize = errors.New("magma: invalid key size")

// Key is the 256-bit key as eight ordered 32-bit words. Word i is read
// big-endian from bytes 4i..4i+3 of the key.
type Key [8]uint32

// KeyFromBytes splits a 32-byte key into its words.
func KeyFromBytes(b []byte) (Key, error) {
	var k Key
	if len(b) != KeySize {
		return k, fmt.Errorf("%w: %d", ErrKeySize, len(b))
	}
	for i := range k {
		k[i] = binary.BigEndian.Uint32(b[4*i:])
	}
	return k, nil
}

// ReadKey reads KeySize bytes of key material from r.
func ReadKey(r io.Reader) (Key, error) {
	var buf [KeySize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Key{}, fmt.Errorf("magma: read key: %w", err)
	}
	return KeyFromBytes(buf[:])
}

// Bytes returns the key in its 32-byte form.
func (k Key) Bytes() []byte {
	b := make([]byte, KeySize)
	for i, w := range k {
		binary.BigEndian.PutUint32(b[4*i:], w)
	}
	return b
}

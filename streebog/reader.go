package streebog

import (
	"fmt"
	"io"
)

// DigestReader reads r to EOF and returns the digest of everything read.
// The whole input is held in memory: the tail of the message is compressed
// first, so no block can be processed before the end is known.
func (h *Hash) DigestReader(r io.Reader) ([]byte, error) {
	message, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("streebog: read message: %w", err)
	}
	return h.Digest(message), nil
}

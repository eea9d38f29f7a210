package magma

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// DefaultBufferSize is the largest read and write buffer Crypt allocates.
const DefaultBufferSize = 64 * 1024

// minBufferSize is the smallest buffer bufio accepts without resizing.
const minBufferSize = 16

// ErrInvalidMode is returned when Process or Crypt is given a Mode other than
// ModeEncrypt or ModeDecrypt.
var ErrInvalidMode = errors.New("magma: invalid mode")

// Mode selects the direction of Process and Crypt.
type Mode int

const (
	// ModeEncrypt encrypts the input.
	ModeEncrypt Mode = iota + 1
	// ModeDecrypt decrypts the input.
	ModeDecrypt
)

// String returns "encrypt", "decrypt" or Mode(n) for invalid values.
func (m Mode) String() string {
	switch m {
	case ModeEncrypt:
		return "encrypt"
	case ModeDecrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) valid() bool {
	return m == ModeEncrypt || m == ModeDecrypt
}

// Process transforms everything read from in and writes the result to out.
// A final block shorter than BlockSize is zero-padded, so out receives the
// input length rounded up to a multiple of BlockSize.
//
// Both out and in are closed before Process returns, whether it succeeds or
// not. An invalid mode is reported before anything is read or written.
func (c *Cipher) Process(mode Mode, out io.WriteCloser, in io.ReadCloser) (err error) {
	defer func() {
		err = errors.Join(err, closeStream("output", out), closeStream("input", in))
	}()
	_, err = c.Crypt(mode, out, in)
	return err
}

func closeStream(name string, c io.Closer) error {
	if err := c.Close(); err != nil {
		return fmt.Errorf("magma: close %s: %w", name, err)
	}
	return nil
}

// Crypt is Process without closing either side. It returns the number of
// bytes written to dst.
func (c *Cipher) Crypt(mode Mode, dst io.Writer, src io.Reader) (int64, error) {
	if !mode.valid() {
		return 0, fmt.Errorf("%w: %v", ErrInvalidMode, mode)
	}
	decrypt := mode == ModeDecrypt

	size := bufferSize(src)
	r := bufio.NewReaderSize(src, size)
	w := bufio.NewWriterSize(dst, size)

	var (
		written int64
		block   [BlockSize]byte
	)
	for {
		n, err := io.ReadFull(r, block[:])
		if err == io.EOF {
			break
		}
		if err != nil && err != io.ErrUnexpectedEOF {
			return written, fmt.Errorf("magma: read input: %w", err)
		}
		clear(block[n:])

		c.crypt(block[:], block[:], decrypt)
		if _, werr := w.Write(block[:]); werr != nil {
			return written, fmt.Errorf("magma: write output: %w", werr)
		}
		written += BlockSize

		if err == io.ErrUnexpectedEOF {
			break
		}
	}

	if err := w.Flush(); err != nil {
		return written, fmt.Errorf("magma: write output: %w", err)
	}
	return written, nil
}

// bufferSize fits the buffers to sources that report their remaining length,
// such as *bytes.Reader, and uses DefaultBufferSize otherwise.
func bufferSize(src io.Reader) int {
	l, ok := src.(interface{ Len() int })
	if !ok {
		return DefaultBufferSize
	}
	n := (l.Len() + BlockSize - 1) / BlockSize * BlockSize
	return min(max(n, minBufferSize), DefaultBufferSize)
}

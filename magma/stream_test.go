package magma

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"testing"
	"testing/iotest"
)

type readCloser struct {
	io.Reader
	reads    int
	closed   bool
	closeErr error
}

func (r *readCloser) Read(p []byte) (int, error) {
	r.reads++
	return r.Reader.Read(p)
}

func (r *readCloser) Close() error {
	r.closed = true
	return r.closeErr
}

type writeCloser struct {
	bytes.Buffer
	writes   int
	closed   bool
	writeErr error
}

func (w *writeCloser) Write(p []byte) (int, error) {
	w.writes++
	if w.writeErr != nil {
		return 0, w.writeErr
	}
	return w.Buffer.Write(p)
}

func (w *writeCloser) Close() error {
	w.closed = true
	return nil
}

func process(t *testing.T, c *Cipher, mode Mode, data []byte) []byte {
	t.Helper()
	in := &readCloser{Reader: bytes.NewReader(data)}
	out := &writeCloser{}
	if err := c.Process(mode, out, in); err != nil {
		t.Fatalf("Process(%v): %v", mode, err)
	}
	if !in.closed || !out.closed {
		t.Fatalf("Process(%v) left a stream open: in %v, out %v", mode, in.closed, out.closed)
	}
	return out.Bytes()
}

func TestProcessKnownAnswer(t *testing.T) {
	c := New(mustKey(t, standardKey))
	pt, _ := hex.DecodeString("92def06b3c130a59db54c704f8189d204a98fb2e67a8024c8912409b17b57e41")
	want, _ := hex.DecodeString("2b073f0494f372a0de70e715d3556e4811d8d9e9eacfbc1e7c68260996c67efb")
	if got := process(t, c, ModeEncrypt, pt); !bytes.Equal(got, want) {
		t.Fatalf("encrypt = %x, want %x", got, want)
	}
	if got := process(t, c, ModeDecrypt, want); !bytes.Equal(got, pt) {
		t.Fatalf("decrypt = %x, want %x", got, pt)
	}
}

func TestProcessPadsFinalBlock(t *testing.T) {
	c := New(mustKey(t, standardKey))
	msg := []byte("Hello, Magma!")
	ct := process(t, c, ModeEncrypt, msg)
	want, _ := hex.DecodeString("fd63f2429197fc0f579e67dab8d749cd")
	if !bytes.Equal(ct, want) {
		t.Fatalf("encrypt(%q) = %x, want %x", msg, ct, want)
	}

	padded := append(append([]byte{}, msg...), 0, 0, 0)
	if got := process(t, c, ModeDecrypt, ct); !bytes.Equal(got, padded) {
		t.Fatalf("decrypt = %q, want %q", got, padded)
	}
}

func TestProcessRoundTrip(t *testing.T) {
	rng := shake("magma process")
	key, err := ReadKey(rng)
	if err != nil {
		t.Fatal(err)
	}
	c := New(key)
	for n := 0; n <= 3*BlockSize+1; n++ {
		msg := make([]byte, n)
		rng.Read(msg)

		ct := process(t, c, ModeEncrypt, msg)
		if want := (n + BlockSize - 1) / BlockSize * BlockSize; len(ct) != want {
			t.Fatalf("len(encrypt(%d bytes)) = %d, want %d", n, len(ct), want)
		}
		pt := process(t, c, ModeDecrypt, ct)
		padded := make([]byte, len(ct))
		copy(padded, msg)
		if !bytes.Equal(pt, padded) {
			t.Fatalf("round trip of %d bytes = %x, want %x", n, pt, padded)
		}
	}
}

// Identical plaintext blocks give identical ciphertext blocks.
func TestProcessRepeatedBlocks(t *testing.T) {
	c := New(mustKey(t, standardKey))
	ct := process(t, c, ModeEncrypt, bytes.Repeat([]byte("12345678"), 4))
	for i := BlockSize; i < len(ct); i += BlockSize {
		if !bytes.Equal(ct[i:i+BlockSize], ct[:BlockSize]) {
			t.Fatalf("block %d = %x, want %x", i/BlockSize, ct[i:i+BlockSize], ct[:BlockSize])
		}
	}
}

func TestProcessInvalidMode(t *testing.T) {
	for _, mode := range []Mode{0, 3, -1} {
		in := &readCloser{Reader: bytes.NewReader([]byte("plaintext"))}
		out := &writeCloser{}
		err := New(Key{}).Process(mode, out, in)
		if !errors.Is(err, ErrInvalidMode) {
			t.Fatalf("Process(%v) error = %v, want ErrInvalidMode", mode, err)
		}
		if in.reads != 0 || out.writes != 0 {
			t.Fatalf("Process(%v) did I/O: %d reads, %d writes", mode, in.reads, out.writes)
		}
		if !in.closed || !out.closed {
			t.Fatalf("Process(%v) left a stream open", mode)
		}
	}
}

func TestProcessShortReads(t *testing.T) {
	c := New(mustKey(t, standardKey))
	msg := []byte("a message read one byte at a time")
	want := process(t, c, ModeEncrypt, msg)

	in := &readCloser{Reader: iotest.HalfReader(iotest.OneByteReader(bytes.NewReader(msg)))}
	out := &writeCloser{}
	if err := c.Process(ModeEncrypt, out, in); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), want) {
		t.Fatalf("short reads gave %x, want %x", out.Bytes(), want)
	}
}

func TestProcessReadError(t *testing.T) {
	boom := errors.New("boom")
	in := &readCloser{Reader: iotest.ErrReader(boom)}
	out := &writeCloser{}
	err := New(Key{}).Process(ModeEncrypt, out, in)
	if !errors.Is(err, boom) {
		t.Fatalf("Process error = %v, want %v", err, boom)
	}
	if !in.closed || !out.closed {
		t.Fatal("Process left a stream open after a read error")
	}
}

func TestProcessWriteError(t *testing.T) {
	boom := errors.New("disk full")
	in := &readCloser{Reader: bytes.NewReader(make([]byte, 3*BlockSize))}
	out := &writeCloser{writeErr: boom}
	err := New(Key{}).Process(ModeDecrypt, out, in)
	if !errors.Is(err, boom) {
		t.Fatalf("Process error = %v, want %v", err, boom)
	}
	if !in.closed || !out.closed {
		t.Fatal("Process left a stream open after a write error")
	}
}

func TestProcessCloseError(t *testing.T) {
	boom := errors.New("close failed")
	in := &readCloser{Reader: bytes.NewReader([]byte("data")), closeErr: boom}
	out := &writeCloser{}
	err := New(Key{}).Process(ModeEncrypt, out, in)
	if !errors.Is(err, boom) {
		t.Fatalf("Process error = %v, want %v", err, boom)
	}
	if out.Len() != BlockSize {
		t.Fatalf("wrote %d bytes before the close error, want %d", out.Len(), BlockSize)
	}
}

func TestCrypt(t *testing.T) {
	c := New(mustKey(t, standardKey))
	var dst bytes.Buffer
	n, err := c.Crypt(ModeEncrypt, &dst, bytes.NewReader(make([]byte, 17)))
	if err != nil {
		t.Fatal(err)
	}
	if n != 24 || dst.Len() != 24 {
		t.Fatalf("Crypt wrote %d (buffer %d), want 24", n, dst.Len())
	}
	if _, err := c.Crypt(0, &dst, bytes.NewReader(nil)); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("Crypt(0) error = %v, want ErrInvalidMode", err)
	}
}

func TestBufferSize(t *testing.T) {
	tests := []struct {
		src  io.Reader
		want int
	}{
		{bytes.NewReader(nil), minBufferSize},
		{bytes.NewReader(make([]byte, 8)), minBufferSize},
		{bytes.NewReader(make([]byte, 17)), 24},
		{bytes.NewBuffer(make([]byte, 1000)), 1000},
		{bytes.NewReader(make([]byte, 2*DefaultBufferSize)), DefaultBufferSize},
		{iotest.OneByteReader(bytes.NewReader(make([]byte, 8))), DefaultBufferSize},
	}
	for i, tt := range tests {
		if got := bufferSize(tt.src); got != tt.want {
			t.Fatalf("case %d: bufferSize = %d, want %d", i, got, tt.want)
		}
	}
}

func TestModeString(t *testing.T) {
	for mode, want := range map[Mode]string{ModeEncrypt: "encrypt", ModeDecrypt: "decrypt", 0: "Mode(0)"} {
		if got := mode.String(); got != want {
			t.Fatalf("Mode(%d).String() = %q, want %q", int(mode), got, want)
		}
	}
}

func BenchmarkCrypt(b *testing.B) {
	c := New(mustKey(b, standardKey))
	for _, size := range benchSizes {
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(i)
		}
		b.Run(benchName(size), func(b *testing.B) {
			b.SetBytes(int64(size))
			b.ReportAllocs()
			for b.Loop() {
				c.Crypt(ModeEncrypt, io.Discard, bytes.NewReader(data))
			}
		})
	}
}

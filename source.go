package rxgen

import (
	"encoding/binary"
	"io"
	"math/bits"
	"math/rand/v2"

	"github.com/google/gofuzz/bytesource"
	"golang.org/x/crypto/chacha20"
)

// Source supplies uniformly distributed 64-bit values. A Source is not
// safe for concurrent use unless its implementation says otherwise; give
// each concurrent Generate call its own.
type Source interface {
	Uint64() (uint64, error)
}

type randSource struct {
	src rand.Source
}

func (s randSource) Uint64() (uint64, error) { return s.src.Uint64(), nil }

// FromRand adapts a math/rand/v2 source. It never fails.
func FromRand(src rand.Source) Source {
	return randSource{src: src}
}

// NewSeeded returns a deterministic PCG source. Two sources built from the
// same seed produce the same sequence.
func NewSeeded(seed uint64) Source {
	return FromRand(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// FromBytes returns a deterministic source driven by data, for use with
// fuzzers. Once data runs out the values come from a fallback PRNG seeded
// from data, so the source never fails.
func FromBytes(data []byte) Source {
	return FromRand(bytesource.New(data))
}

type readerSource struct {
	r   io.Reader
	buf [8]byte
}

// FromReader returns a source that reads 8 little-endian bytes per value
// from r, e.g. crypto/rand.Reader. A failed or short read is reported as
// an error by Uint64.
func FromReader(r io.Reader) Source {
	return &readerSource{r: r}
}

func (s *readerSource) Uint64() (uint64, error) {
	if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(s.buf[:]), nil
}

const (
	chachaBlockSize = 64
	// chachaBlocks is the number of blocks before the 32-bit counter wraps.
	chachaBlocks = 1 << 32
)

type keyedSource struct {
	c     *chacha20.Cipher
	buf   [chachaBlockSize]byte
	off   int
	block uint64
}

// NewKeyed returns a source that reads the ChaCha20 keystream for key and
// nonce. The sequence depends only on key and nonce. key must be
// chacha20.KeySize bytes and nonce chacha20.NonceSize or NonceSizeX bytes.
func NewKeyed(key, nonce []byte) (Source, error) {
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, err
	}
	return &keyedSource{c: c, off: chachaBlockSize}, nil
}

func (s *keyedSource) Uint64() (uint64, error) {
	if s.off == chachaBlockSize {
		if s.block == chachaBlocks {
			return 0, ErrSourceExhausted
		}
		clear(s.buf[:])
		s.c.XORKeyStream(s.buf[:], s.buf[:])
		s.block++
		s.off = 0
	}
	v := binary.LittleEndian.Uint64(s.buf[s.off:])
	s.off += 8
	return v, nil
}

// uniform returns a value in [0, n) with no modulo bias, using Lemire's
// multiply-and-reject method. n must be positive. n == 1 draws nothing.
func uniform(src Source, n uint64) (uint64, error) {
	if n == 1 {
		return 0, nil
	}
	x, err := src.Uint64()
	if err != nil {
		return 0, sourceError(err)
	}
	hi, lo := bits.Mul64(x, n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			if x, err = src.Uint64(); err != nil {
				return 0, sourceError(err)
			}
			hi, lo = bits.Mul64(x, n)
		}
	}
	return hi, nil
}

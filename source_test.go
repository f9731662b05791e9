package rxgen

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"io"
	mrand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/chacha20"
)

func drain(t *testing.T, src Source, n int) []uint64 {
	t.Helper()
	out := make([]uint64, n)
	for i := range out {
		v, err := src.Uint64()
		require.NoError(t, err)
		out[i] = v
	}
	return out
}

func TestNewSeededDeterministic(t *testing.T) {
	a := drain(t, NewSeeded(99), 100)
	b := drain(t, NewSeeded(99), 100)
	c := drain(t, NewSeeded(100), 100)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestFromRand(t *testing.T) {
	var seed [32]byte
	copy(seed[:], "rxgen chacha8 seed material.....")
	a := drain(t, FromRand(mrand.NewChaCha8(seed)), 10)
	b := drain(t, FromRand(mrand.NewChaCha8(seed)), 10)
	assert.Equal(t, a, b)
}

func TestFromReader(t *testing.T) {
	var data []byte
	for _, v := range []uint64{1, 2, 0xdeadbeef} {
		data = binary.LittleEndian.AppendUint64(data, v)
	}
	data = append(data, 0xAA, 0xBB) // trailing partial value
	src := FromReader(bytes.NewReader(data))
	assert.Equal(t, []uint64{1, 2, 0xdeadbeef}, drain(t, src, 3))

	_, err := src.Uint64()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	// crypto/rand works as a source.
	g := MustNew(`[a-f0-9]{32}`)
	s, err := g.GenerateString(FromReader(rand.Reader))
	require.NoError(t, err)
	assert.Len(t, s, 32)
}

func TestNewKeyed(t *testing.T) {
	key := bytes.Repeat([]byte{7}, chacha20.KeySize)
	nonce := make([]byte, chacha20.NonceSize)

	a, err := NewKeyed(key, nonce)
	require.NoError(t, err)
	b, err := NewKeyed(key, nonce)
	require.NoError(t, err)
	// Crosses several keystream blocks.
	assert.Equal(t, drain(t, a, 40), drain(t, b, 40))

	other := bytes.Repeat([]byte{8}, chacha20.KeySize)
	c, err := NewKeyed(other, nonce)
	require.NoError(t, err)
	d, err := NewKeyed(key, nonce)
	require.NoError(t, err)
	assert.NotEqual(t, drain(t, c, 4), drain(t, d, 4))

	_, err = NewKeyed(key[:5], nonce)
	assert.Error(t, err)
}

func TestKeyedExhausted(t *testing.T) {
	key := make([]byte, chacha20.KeySize)
	src, err := NewKeyed(key, make([]byte, chacha20.NonceSize))
	require.NoError(t, err)
	ks := src.(*keyedSource)
	ks.block = chachaBlocks
	ks.off = chachaBlockSize

	_, err = src.Uint64()
	require.ErrorIs(t, err, ErrSourceExhausted)

	_, err = MustNew("[ab]").GenerateString(src)
	require.ErrorIs(t, err, ErrRandomSource)
	require.ErrorIs(t, err, ErrSourceExhausted)
}

func TestFromBytes(t *testing.T) {
	data := []byte("some fuzzer supplied input bytes")
	a := drain(t, FromBytes(data), 20) // runs past the input into the fallback
	b := drain(t, FromBytes(data), 20)
	assert.Equal(t, a, b)
	drain(t, FromBytes(nil), 5)
}

// seqSource replays fixed values.
type seqSource struct {
	vals []uint64
}

func (s *seqSource) Uint64() (uint64, error) {
	if len(s.vals) == 0 {
		return 0, ErrSourceExhausted
	}
	v := s.vals[0]
	s.vals = s.vals[1:]
	return v, nil
}

func TestUniform(t *testing.T) {
	// The high word of x*n is the result.
	v, err := uniform(&seqSource{vals: []uint64{1<<63 + 1}}, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 5, v)

	v, err = uniform(&seqSource{vals: []uint64{^uint64(0)}}, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 2, v)

	// x = 0 gives lo = 0, which is below the rejection threshold for
	// n = 3, so a second value is drawn.
	v, err = uniform(&seqSource{vals: []uint64{0, 1 << 63}}, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 1, v)

	// n = 1 draws nothing.
	v, err = uniform(&seqSource{}, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 0, v)

	_, err = uniform(&seqSource{}, 2)
	assert.ErrorIs(t, err, ErrRandomSource)
}

func TestUniformRange(t *testing.T) {
	src := NewSeeded(21)
	counts := make([]int, 7)
	for i := 0; i < 7000; i++ {
		v, err := uniform(src, 7)
		require.NoError(t, err)
		require.Less(t, v, uint64(7))
		counts[v]++
	}
	for i, c := range counts {
		assert.InDelta(t, 1000, c, 150, "bucket %d", i)
	}
}

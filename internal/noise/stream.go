// Package noise provides the seeded random stream the instruments draw their
// phases, jitter and noise from.
//
// The generator is a 32-bit Mersenne Twister seeded the same way CPython's
// random.Random seeds it, so a stream built from a given string or integer
// yields the same draws as random.Random(seed) on every platform. The shipped
// assets were first rendered from those draws.
package noise

import (
	"crypto/sha512"
	"encoding/binary"
)

const (
	n         = 624
	m         = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
)

// Stream is a deterministic pseudo-random sequence. It is not safe for
// concurrent use; each render owns its own Stream.
type Stream struct {
	mt  [n]uint32
	idx int
}

// New returns a stream keyed by a string seed.
func New(seed string) *Stream {
	b := []byte(seed)
	sum := sha512.Sum512(b)
	return fromKey(keyWords(append(b, sum[:]...)))
}

// NewInt returns a stream keyed by an integer seed. Negative seeds use their
// magnitude.
func NewInt(seed int64) *Stream {
	u := uint64(seed)
	if seed < 0 {
		u = uint64(-seed)
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], u)
	return fromKey(keyWords(b[:]))
}

// keyWords splits a big-endian integer into 32-bit words, least significant
// word first, dropping leading zero bytes. Zero yields a single zero word.
func keyWords(be []byte) []uint32 {
	for len(be) > 0 && be[0] == 0 {
		be = be[1:]
	}
	if len(be) == 0 {
		return []uint32{0}
	}
	padded := make([]byte, (len(be)+3)/4*4)
	copy(padded[len(padded)-len(be):], be)
	words := make([]uint32, len(padded)/4)
	for i := range words {
		off := len(padded) - 4*(i+1)
		words[i] = binary.BigEndian.Uint32(padded[off:])
	}
	return words
}

func fromKey(key []uint32) *Stream {
	s := &Stream{}
	s.initGenrand(19650218)
	i, j := 1, 0
	k := max(n, len(key))
	for ; k > 0; k-- {
		s.mt[i] = (s.mt[i] ^ ((s.mt[i-1] ^ (s.mt[i-1] >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= n {
			s.mt[0] = s.mt[n-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = n - 1; k > 0; k-- {
		s.mt[i] = (s.mt[i] ^ ((s.mt[i-1] ^ (s.mt[i-1] >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= n {
			s.mt[0] = s.mt[n-1]
			i = 1
		}
	}
	s.mt[0] = upperMask
	s.idx = n
	return s
}

func (s *Stream) initGenrand(seed uint32) {
	s.mt[0] = seed
	for i := 1; i < n; i++ {
		s.mt[i] = 1812433253*(s.mt[i-1]^(s.mt[i-1]>>30)) + uint32(i)
	}
	s.idx = n
}

func (s *Stream) twist() {
	for k := 0; k < n; k++ {
		y := (s.mt[k] & upperMask) | (s.mt[(k+1)%n] & lowerMask)
		v := s.mt[(k+m)%n] ^ (y >> 1)
		if y&1 != 0 {
			v ^= matrixA
		}
		s.mt[k] = v
	}
	s.idx = 0
}

// Uint32 returns the next raw 32-bit output.
func (s *Stream) Uint32() uint32 {
	if s.idx >= n {
		s.twist()
	}
	y := s.mt[s.idx]
	s.idx++
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Random01 returns a float in [0, 1) with 53 bits of resolution.
func (s *Stream) Random01() float64 {
	a := s.Uint32() >> 5
	b := s.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// Uniform returns lo + (hi-lo)·Random01(). The conversion keeps the compiler
// from fusing the multiply-add, which would change the last bit on some
// architectures.
func (s *Stream) Uniform(lo, hi float64) float64 {
	return lo + float64((hi-lo)*s.Random01())
}

package noise

import "strconv"

// Seed keys a Stream. A text seed and an integer seed with the same spelling
// are different seeds.
type Seed struct {
	text  string
	num   int64
	isNum bool
}

// Text returns a string seed.
func Text(s string) Seed {
	return Seed{text: s}
}

// Int returns an integer seed.
func Int(n int64) Seed {
	return Seed{num: n, isNum: true}
}

// IsInt reports whether the seed is an integer seed.
func (s Seed) IsInt() bool {
	return s.isNum
}

// Stream starts a fresh stream for the seed.
func (s Seed) Stream() *Stream {
	if s.isNum {
		return NewInt(s.num)
	}
	return New(s.text)
}

func (s Seed) String() string {
	if s.isNum {
		return strconv.FormatInt(s.num, 10)
	}
	return s.text
}

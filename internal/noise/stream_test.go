package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference draws were taken from CPython's random.Random with the same seeds.
func TestStringSeedMatchesReference(t *testing.T) {
	s := New("hover")
	assert.Equal(t, 0.8085280243821741, s.Random01())
	assert.Equal(t, 0.16160237308723813, s.Random01())
	assert.Equal(t, 0.820624593425286, s.Random01())

	s = New("enable-a")
	assert.Equal(t, 0.6802369713880578, s.Random01())
	assert.Equal(t, 0.2642826093721603, s.Random01())

	assert.Equal(t, 0.9602256525641875, New("").Random01())
	assert.Equal(t, 0.34422217372746233, New("ünïcode").Random01())
}

func TestUint32MatchesReference(t *testing.T) {
	s := New("hover")
	assert.Equal(t, uint32(3472601429), s.Uint32())
	assert.Equal(t, uint32(1962387783), s.Uint32())
}

func TestUniformMatchesReference(t *testing.T) {
	s := New("disable")
	assert.Equal(t, 3.3687414141033134, s.Uniform(-10, 10))
	assert.Equal(t, 0.09628299726424494, s.Uniform(-8, 8))
	assert.Equal(t, -0.7227336769677191, s.Uniform(-6, 6))

	assert.Equal(t, -0.35233447033367526, NewInt(7).Uniform(-1, 1))
}

func TestIntSeedMatchesReference(t *testing.T) {
	assert.Equal(t, 0.6394267984578837, NewInt(42).Random01())
	assert.Equal(t, 0.6229016948897019, NewInt(5).Random01())
	assert.Equal(t, 0.6229016948897019, NewInt(-5).Random01())
	assert.Equal(t, 0.21978710637116716, NewInt(1<<40+3).Random01())
}

func TestSameSeedSameSequence(t *testing.T) {
	a, b := New("tilt-card-hover"), New("tilt-card-hover")
	for i := 0; i < 5000; i++ {
		require.Equal(t, a.Uniform(-1, 1), b.Uniform(-1, 1), "draw %d", i)
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	assert.NotEqual(t, New("open").Random01(), New("close").Random01())
}

func TestRandom01Range(t *testing.T) {
	s := NewInt(0)
	for i := 0; i < 10000; i++ {
		v := s.Random01()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestKeyWords(t *testing.T) {
	assert.Equal(t, []uint32{0}, keyWords(nil))
	assert.Equal(t, []uint32{0}, keyWords([]byte{0, 0}))
	assert.Equal(t, []uint32{0x02030405, 0x01}, keyWords([]byte{0, 1, 2, 3, 4, 5}))
}

package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/wav"
)

// DecodeFile reads back a WAV file written by a test.
func DecodeFile(t testing.TB, path string) *wav.Clip {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	clip, err := wav.Decode(f)
	require.NoError(t, err, path)
	return clip
}

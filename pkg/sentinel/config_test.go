package sentinel_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanguivore-easyco/carmine/pkg/sentinel"
)

func TestLoadAddrMapFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sentinels.yaml")
	content := `mymaster:
  - 127.0.0.1:26379
  - 127.0.0.1:26379
  - 10.0.0.2:26380
cache:
  - "[::1]:26379"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	m, err := sentinel.LoadAddrMapFile(path)
	require.NoError(t, err)

	// Duplicates collapse on load.
	require.Len(t, m["mymaster"], 2)
	assert.Equal(t, sentinel.NewAddr("127.0.0.1", 26379), m["mymaster"][0])
	assert.Equal(t, sentinel.NewAddr("10.0.0.2", 26380), m["mymaster"][1])
	require.Len(t, m["cache"], 1)
	assert.Equal(t, sentinel.NewAddr("::1", 26379), m["cache"][0])
}

func TestLoadAddrMapFile_BadEntry(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sentinels.yaml")
	require.NoError(t, os.WriteFile(path, []byte("m:\n  - nonsense\n"), 0o600))

	_, err := sentinel.LoadAddrMapFile(path)
	require.ErrorIs(t, err, sentinel.ErrInvalidAddr)
}

func TestLoadAddrMapFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := sentinel.LoadAddrMapFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

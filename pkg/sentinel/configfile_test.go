package sentinel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanguivore-easyco/carmine/pkg/sentinel"
)

func TestWriteConfigFile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := sentinel.WriteConfigFile(&buf, 26379, sentinel.MonitoredMaster{
		Name:   "mymaster",
		Addr:   sentinel.NewAddr("127.0.0.1", 6379),
		Quorum: 2,
	})
	require.NoError(t, err)

	want := "port 26379\n" +
		"sentinel monitor mymaster 127.0.0.1 6379 2\n" +
		"sentinel down-after-milliseconds mymaster 60000\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteConfigFile_Defaults(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := sentinel.WriteConfigFile(&buf, 26380, sentinel.MonitoredMaster{
		Name: "cache",
		Addr: sentinel.NewAddr("10.0.0.5", 6379),
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "sentinel monitor cache 10.0.0.5 6379 1\n")
	assert.Contains(t, buf.String(), "down-after-milliseconds cache 60000\n")
}

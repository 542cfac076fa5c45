package carmine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	carmine "github.com/sanguivore-easyco/carmine"
	"github.com/sanguivore-easyco/carmine/pkg/sentinel"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := carmine.LoadConfig[carmine.Config]()
	require.NoError(t, err)

	assert.Equal(t, "mymaster", cfg.MasterName)
	assert.Equal(t, []string{"127.0.0.1:26379"}, cfg.SentinelAddrs)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, 2*time.Second, cfg.Sentinel.ResolveTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Sentinel.RetryDelay)
	assert.True(t, cfg.Sentinel.AddMissingSentinels)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("CARMINE_MASTER_NAME", "cache")
	t.Setenv("CARMINE_SENTINEL_ADDRS", "10.0.0.1:26379,10.0.0.2:26379")
	t.Setenv("CARMINE_SENTINEL_RESOLVE_TIMEOUT", "5s")

	cfg, err := carmine.LoadConfig[carmine.Config]()
	require.NoError(t, err)
	assert.Equal(t, "cache", cfg.MasterName)
	assert.Equal(t, []string{"10.0.0.1:26379", "10.0.0.2:26379"}, cfg.SentinelAddrs)
	assert.Equal(t, 5*time.Second, cfg.Sentinel.ResolveTimeout)
}

func TestConfig_AddrMap(t *testing.T) {
	t.Parallel()

	cfg := carmine.Config{
		MasterName:    "mymaster",
		SentinelAddrs: []string{"127.0.0.1:26379", "10.0.0.2:26380"},
	}
	m, err := cfg.AddrMap()
	require.NoError(t, err)
	require.Len(t, m["mymaster"], 2)
	assert.Equal(t, sentinel.NewAddr("10.0.0.2", 26380), m["mymaster"][1])
}

func TestConfig_AddrMapErrors(t *testing.T) {
	t.Parallel()

	_, err := carmine.Config{MasterName: "m"}.AddrMap()
	require.ErrorIs(t, err, carmine.ErrEmptySentinelAddrs)

	_, err = carmine.Config{MasterName: "m", SentinelAddrs: []string{"bad"}}.AddrMap()
	require.ErrorIs(t, err, sentinel.ErrInvalidAddr)
}

package carmine

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/sanguivore-easyco/carmine/pkg/sentinel"
)

// Config drives Connect. All fields are env-taggable; LoadConfig fills
// them from the environment.
type Config struct {
	// MasterName is the logical service name registered with the
	// Sentinel quorum.
	MasterName string `env:"CARMINE_MASTER_NAME" envDefault:"mymaster"`

	// SentinelAddrs is the initial "host:port" sentinel list for
	// MasterName. Gossip extends it at runtime.
	SentinelAddrs []string `env:"CARMINE_SENTINEL_ADDRS" envSeparator:"," envDefault:"127.0.0.1:26379"`

	// Password and DB apply to the data connection, not to sentinels.
	Password string `env:"CARMINE_REDIS_PASSWORD"`
	DB       int    `env:"CARMINE_REDIS_DB" envDefault:"0"`

	// RetryAttempts is how many resolve-then-ping cycles Connect runs
	// before giving up.
	RetryAttempts int `env:"CARMINE_CONNECT_RETRY_ATTEMPTS" envDefault:"3"`

	// RetryInterval is the pause between cycles.
	RetryInterval time.Duration `env:"CARMINE_CONNECT_RETRY_INTERVAL" envDefault:"1s"`

	// ConnectTimeout bounds the whole Connect call.
	ConnectTimeout time.Duration `env:"CARMINE_CONNECT_TIMEOUT" envDefault:"30s"`

	// Sentinel holds the resolver settings.
	Sentinel sentinel.Config
}

// AddrMap builds the initial sentinel address map from the configured
// list.
func (c Config) AddrMap() (sentinel.AddrMap, error) {
	if len(c.SentinelAddrs) == 0 {
		return nil, ErrEmptySentinelAddrs
	}
	list := make(sentinel.AddrList, 0, len(c.SentinelAddrs))
	for _, s := range c.SentinelAddrs {
		a, err := sentinel.ParseHostPort(s)
		if err != nil {
			return nil, fmt.Errorf("sentinel address %q: %w", s, err)
		}
		list = append(list, a)
	}
	return sentinel.AddrMap{c.MasterName: list}, nil
}

// LoadEnv loads .env files into the process environment before config
// parsing. With no paths it loads "./.env" when present; a missing
// default file is not an error.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		// A missing default .env is not an error; explicit paths must
		// exist.
		_ = godotenv.Load()
		return nil
	}
	return godotenv.Load(paths...)
}

// LoadConfig parses environment variables into a config struct by its
// env tags.
func LoadConfig[T any]() (T, error) {
	return env.ParseAs[T]()
}

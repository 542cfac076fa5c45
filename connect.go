package carmine

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanguivore-easyco/carmine/pkg/sentinel"
)

// Connect resolves the current master for the configured service and
// returns a go-redis client connected to it. Each cycle re-resolves
// through the sentinels and pings the result, so a failover between
// cycles lands on the new master.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	addrs, err := cfg.AddrMap()
	if err != nil {
		return nil, err
	}
	return ConnectWithSpec(ctx, cfg, sentinel.NewSpec(addrs, cfg.Sentinel))
}

// ConnectWithSpec is Connect with a caller-owned resolver spec, for
// sharing one spec (and its statistics and promoted sentinel order)
// across connections.
func ConnectWithSpec(ctx context.Context, cfg Config, spec *sentinel.Spec) (*redis.Client, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	attempts := max(cfg.RetryAttempts, 1)

	var lastErr error
	for range attempts {
		addr, err := spec.ResolveMasterAddr(ctx, cfg.MasterName, nil)
		if err != nil {
			lastErr = err
		} else {
			client := redis.NewClient(&redis.Options{
				Addr:     addr.String(),
				Password: cfg.Password,
				DB:       cfg.DB,
			})
			pingErr := client.Ping(ctx).Err()
			if pingErr == nil {
				return client, nil
			}
			lastErr = pingErr
			_ = client.Close()
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrMasterNotReady, ctx.Err(), lastErr)
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, errors.Join(ErrMasterNotReady, lastErr)
}

package sentinel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DialFunc opens a transient connection to a sentinel or candidate
// master. The default is a net.Dialer bound to the dial timeout.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Config holds spec-scope resolver settings. Zero fields fall back to
// the package defaults at resolve time.
type Config struct {
	// ResolveTimeout bounds one ResolveMasterAddr call across all retry
	// rounds.
	ResolveTimeout time.Duration `env:"CARMINE_SENTINEL_RESOLVE_TIMEOUT" envDefault:"2s"`

	// RetryDelay is the sleep between attempt rounds.
	RetryDelay time.Duration `env:"CARMINE_SENTINEL_RETRY_DELAY" envDefault:"250ms"`

	// DialTimeout bounds connecting to and exchanging commands with a
	// single sentinel.
	DialTimeout time.Duration `env:"CARMINE_SENTINEL_DIAL_TIMEOUT" envDefault:"1s"`

	// AddMissingSentinels asks each consulted sentinel for its peers and
	// appends any unknown ones to the list.
	AddMissingSentinels bool `env:"CARMINE_SENTINEL_ADD_MISSING" envDefault:"true"`

	Callbacks Callbacks    `env:"-"`
	Logger    *slog.Logger `env:"-"`
	Dialer    DialFunc     `env:"-"`
}

// ResolveOpts overrides spec-scope settings for a single resolution.
type ResolveOpts struct {
	Timeout     time.Duration
	RetryDelay  time.Duration
	DialTimeout time.Duration

	// AddMissingSentinels overrides the spec setting when non-nil.
	AddMissingSentinels *bool

	// Callbacks is the per-request observer table, consulted after the
	// process-wide and spec-scope tables.
	Callbacks Callbacks

	Dialer DialFunc
}

// Package defaults applied where neither request nor spec options set a
// value.
const (
	defaultResolveTimeout = 2 * time.Second
	defaultRetryDelay     = 250 * time.Millisecond
	defaultDialTimeout    = time.Second
)

// resolveSettings is the merged view (request opts over spec opts over
// defaults) one resolution runs with.
type resolveSettings struct {
	timeout     time.Duration
	retryDelay  time.Duration
	dialTimeout time.Duration
	addMissing  bool
	callbacks   Callbacks
	dialer      DialFunc
}

func (s *Spec) mergeOpts(req *ResolveOpts) resolveSettings {
	set := resolveSettings{
		timeout:     defaultResolveTimeout,
		retryDelay:  defaultRetryDelay,
		dialTimeout: defaultDialTimeout,
		addMissing:  s.cfg.AddMissingSentinels,
		dialer:      s.cfg.Dialer,
	}
	if s.cfg.ResolveTimeout > 0 {
		set.timeout = s.cfg.ResolveTimeout
	}
	if s.cfg.RetryDelay > 0 {
		set.retryDelay = s.cfg.RetryDelay
	}
	if s.cfg.DialTimeout > 0 {
		set.dialTimeout = s.cfg.DialTimeout
	}
	if req == nil {
		return set
	}
	if req.Timeout > 0 {
		set.timeout = req.Timeout
	}
	if req.RetryDelay > 0 {
		set.retryDelay = req.RetryDelay
	}
	if req.DialTimeout > 0 {
		set.dialTimeout = req.DialTimeout
	}
	if req.AddMissingSentinels != nil {
		set.addMissing = *req.AddMissingSentinels
	}
	if req.Dialer != nil {
		set.dialer = req.Dialer
	}
	set.callbacks = req.Callbacks
	return set
}

// LoadAddrMapFile reads an initial sentinel address map from a YAML file
// mapping master names to "host:port" entries:
//
//	mymaster:
//	  - 127.0.0.1:26379
//	  - 10.0.0.2:26379
func LoadAddrMapFile(path string) (AddrMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sentinel addr map: %w", err)
	}
	var parsed map[string][]string
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, errors.Join(ErrInvalidAddr, err)
	}
	out := make(AddrMap, len(parsed))
	for name, entries := range parsed {
		list := make(AddrList, 0, len(entries))
		for _, e := range entries {
			a, err := ParseHostPort(e)
			if err != nil {
				return nil, fmt.Errorf("master %q: %w", name, err)
			}
			list = append(list, a)
		}
		out[name] = list
	}
	return cleanAddrMap(out), nil
}

package sentinel

import "errors"

var (
	// ErrNoSentinelAddrs is returned when resolution is requested for a
	// master name that has no configured sentinel addresses.
	ErrNoSentinelAddrs = errors.New("no sentinel addresses configured for master")

	// ErrResolveTimeout is returned when resolution did not confirm a
	// master within the configured timeout. The returned error is a
	// *TimeoutError carrying the per-sentinel error counts and the
	// attempt log.
	ErrResolveTimeout = errors.New("timed out resolving master address")

	// ErrInvalidAddr is returned when a host or port cannot be parsed
	// into a socket address.
	ErrInvalidAddr = errors.New("invalid sentinel address")
)

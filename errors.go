package carmine

import "errors"

var (
	// ErrEmptySentinelAddrs is returned when the configuration lists no
	// sentinel addresses.
	ErrEmptySentinelAddrs = errors.New("no sentinel addresses configured")

	// ErrMasterNotReady is returned when no resolved master accepted a
	// connection within the configured retry budget.
	ErrMasterNotReady = errors.New("redis master did not become ready within the given time period")

	// ErrHealthcheckFailed is returned when the master fails a liveness
	// ping.
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)

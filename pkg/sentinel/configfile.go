package sentinel

import (
	"fmt"
	"io"
)

// MonitoredMaster describes one master entry for a generated Sentinel
// server config.
type MonitoredMaster struct {
	Name   string
	Addr   Addr
	Quorum int

	// DownAfter is the down-after-milliseconds value; 60000 when zero.
	DownAfter int
}

// WriteConfigFile emits a plain-text Sentinel server configuration for
// the given port and monitored masters. This is a test-fixture surface
// for spinning up local sentinels, not a client runtime behavior.
func WriteConfigFile(w io.Writer, port int, masters ...MonitoredMaster) error {
	if _, err := fmt.Fprintf(w, "port %d\n", port); err != nil {
		return err
	}
	for _, m := range masters {
		quorum := m.Quorum
		if quorum <= 0 {
			quorum = 1
		}
		downAfter := m.DownAfter
		if downAfter <= 0 {
			downAfter = 60000
		}
		if _, err := fmt.Fprintf(w, "sentinel monitor %s %s %d %d\n", m.Name, m.Addr.Host, m.Addr.Port, quorum); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "sentinel down-after-milliseconds %s %d\n", m.Name, downAfter); err != nil {
			return err
		}
	}
	return nil
}

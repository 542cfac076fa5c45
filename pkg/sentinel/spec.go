package sentinel

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Spec owns the per-master sentinel lists, the resolved master cache,
// and both statistics tables for one logical client. It is created once
// with an initial address map and lives for the lifetime of the client;
// there is no teardown.
//
// Each mutable cell is swapped with compare-and-swap, so updates to one
// cell are linearizable but there is no cross-cell atomicity: a resolver
// may read a sentinel list that predates a concurrent resolved-address
// update, which is fine because it re-reads the list every round.
type Spec struct {
	cfg    Config
	logger *slog.Logger

	sentinelAddrs atomic.Pointer[addrCell]
	resolved      atomic.Pointer[map[string]Addr]
	resolveStats  atomic.Pointer[map[string]ResolveStats]
	sentinelStats atomic.Pointer[map[string]SentinelStats]
}

// addrCell holds the sentinel address map behind a once-forced producer:
// repeated readers share one cleaned merge, and concurrent mutators
// contend only on the cell swap, not on the merge work.
type addrCell struct {
	force func() AddrMap
}

func newAddrCell(compute func() AddrMap) *addrCell {
	return &addrCell{force: sync.OnceValue(compute)}
}

// NewSpec creates a resolver spec with an initial master-name → sentinel
// list map. The map is cleaned on the way in: keys are normalized and
// lists deduplicated.
func NewSpec(addrs AddrMap, cfg Config) *Spec {
	s := &Spec{cfg: cfg}
	s.logger = cfg.Logger
	if s.logger == nil {
		s.logger = slog.Default()
	}

	initial := cleanAddrMap(addrs)
	s.sentinelAddrs.Store(newAddrCell(func() AddrMap { return initial }))
	s.resolved.Store(&map[string]Addr{})
	s.resolveStats.Store(&map[string]ResolveStats{})
	s.sentinelStats.Store(&map[string]SentinelStats{})
	return s
}

// SentinelAddrMap returns a snapshot of the full sentinel address map.
func (s *Spec) SentinelAddrMap() AddrMap {
	return s.sentinelAddrs.Load().force().clone()
}

// SentinelAddrs returns a snapshot of the sentinel list for one master.
func (s *Spec) SentinelAddrs(masterName string) AddrList {
	return s.sentinelAddrs.Load().force()[normalizeMasterName(masterName)].clone()
}

// MasterAddr returns the most recently confirmed master address for a
// master name, without any I/O.
func (s *Spec) MasterAddr(masterName string) (Addr, bool) {
	a, ok := (*s.resolved.Load())[normalizeMasterName(masterName)]
	return a, ok
}

// updateSentinelAddrs swaps in a new lazily-merged address map cell. The
// mutation runs over the forced old map and must return a fresh value.
// When the forced maps differ, on-sentinels-change fires with both.
func (s *Spec) updateSentinelAddrs(reqCbs Callbacks, reqID uuid.UUID, masterName string, mutate func(AddrMap) AddrMap) {
	for {
		oldCell := s.sentinelAddrs.Load()
		newCell := newAddrCell(func() AddrMap {
			return cleanAddrMap(mutate(oldCell.force()))
		})
		if !s.sentinelAddrs.CompareAndSwap(oldCell, newCell) {
			continue
		}

		oldMap := oldCell.force()
		newMap := newCell.force()
		if !oldMap.equal(newMap) {
			s.fire(reqCbs, EventSentinelsChange, func() Event {
				return Event{
					ID:           EventSentinelsChange,
					MasterName:   masterName,
					RequestID:    reqID,
					Sentinels:    newMap.clone(),
					OldSentinels: oldMap.clone(),
					Spec:         s,
				}
			})
		}
		return
	}
}

// AddBack appends addresses not already present to a master's sentinel
// list, firing on-sentinels-change if the list changed.
func (s *Spec) AddBack(masterName string, addrs ...Addr) {
	master := normalizeMasterName(masterName)
	s.updateSentinelAddrs(nil, uuid.Nil, master, func(m AddrMap) AddrMap {
		next := m.clone()
		next[master] = AddBack(next[master], addrs...)
		return next
	})
}

// AddFront promotes an address to the head of a master's sentinel list,
// firing on-sentinels-change if the list changed.
func (s *Spec) AddFront(masterName string, addr Addr) {
	master := normalizeMasterName(masterName)
	s.updateSentinelAddrs(nil, uuid.Nil, master, func(m AddrMap) AddrMap {
		next := m.clone()
		next[master] = AddFront(next[master], addr)
		return next
	})
}

// Remove drops an address from a master's sentinel list, firing
// on-sentinels-change if the list changed.
func (s *Spec) Remove(masterName string, addr Addr) {
	master := normalizeMasterName(masterName)
	s.updateSentinelAddrs(nil, uuid.Nil, master, func(m AddrMap) AddrMap {
		next := m.clone()
		next[master] = Remove(next[master], addr)
		return next
	})
}

// ResetMasterAddr replaces the cached resolved address for a master.
// When the value actually changes it fires on-resolve-change with both
// addresses and bumps the change counter.
func (s *Spec) ResetMasterAddr(cbs Callbacks, masterName string, addr Addr) {
	master := normalizeMasterName(masterName)

	var prev Addr
	var had bool
	for {
		old := s.resolved.Load()
		prev, had = (*old)[master]
		if had && prev.Equal(addr) {
			return
		}
		next := make(map[string]Addr, len(*old)+1)
		for k, v := range *old {
			next[k] = v
		}
		next[master] = addr
		if s.resolved.CompareAndSwap(old, &next) {
			break
		}
	}

	s.bumpResolveStats(master, func(r *ResolveStats) { r.Changes++ })
	s.fire(cbs, EventResolveChange, func() Event {
		ev := Event{
			ID:         EventResolveChange,
			MasterName: master,
			Addr:       addr,
			Spec:       s,
		}
		if had {
			ev.OldAddr = prev
		}
		return ev
	})
}

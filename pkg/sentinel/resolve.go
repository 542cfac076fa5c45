package sentinel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// AttemptEntry is one step of a resolution, kept for the timeout error's
// attempt log. Synthetic entries ("retry-after-sleep", "timeout") carry
// a zero Sentinel.
type AttemptEntry struct {
	Attempt  int
	Sentinel Addr
	Kind     string
	Err      error
	Elapsed  time.Duration
}

// TimeoutError reports a resolution that exhausted its timeout. It
// unwraps to ErrResolveTimeout so callers can switch with errors.Is
// while still reaching the structured payload.
type TimeoutError struct {
	MasterName     string
	Timeout        time.Duration
	Attempts       int
	Retries        int
	SentinelErrors map[string]SentinelStats
	Log            []AttemptEntry
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out resolving master %q after %d attempts and %d retries (timeout %s)",
		e.MasterName, e.Attempts, e.Retries, e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return ErrResolveTimeout }

// ResolveMasterAddr discovers and confirms the current master address for
// a master name by consulting the configured sentinels in order. On
// success the reporting sentinel is promoted to the head of the list,
// gossiped peers are appended (when add-missing is on), and the resolved
// address cache is reset. The call blocks through retry rounds until a
// confirmed master, the configured timeout, or ctx cancellation during
// the retry sleep.
func (s *Spec) ResolveMasterAddr(ctx context.Context, masterName string, opts *ResolveOpts) (Addr, error) {
	master := normalizeMasterName(masterName)
	set := s.mergeOpts(opts)
	reqID := uuid.New()
	start := time.Now()

	s.bumpResolveStats(master, func(r *ResolveStats) { r.Requests++ })

	if len(s.SentinelAddrs(master)) == 0 {
		err := fmt.Errorf("%w: %q", ErrNoSentinelAddrs, master)
		s.bumpResolveStats(master, func(r *ResolveStats) { r.Errors++ })
		s.fireResolveError(set.callbacks, master, reqID, err, time.Since(start))
		return Addr{}, err
	}

	var attemptLog []AttemptEntry
	attempts, retries := 0, 0
	tried := make(map[string]struct{})

	for {
		// Re-read every round: concurrent resolutions may have reordered
		// or extended the list.
		list := s.SentinelAddrs(master)

		var candidate, reporter Addr
		var reported AddrList
		found := false

		for _, sa := range list {
			attempts++
			attemptStart := time.Now()
			tried[sa.key()] = struct{}{}
			s.bumpResolveStats(master, func(r *ResolveStats) { r.Attempts++ })
			s.bumpSentinelStats(sa, func(st *SentinelStats) { st.Attempts++ })

			out := set.querySentinel(ctx, master, sa)
			reported = AddBack(reported, out.reported...)
			if out.ok {
				candidate, reporter, found = out.candidate, sa, true
				break
			}

			s.bumpSentinelStats(sa, func(st *SentinelStats) { st.record(out.kind) })
			attemptLog = append(attemptLog, AttemptEntry{
				Attempt:  attempts,
				Sentinel: sa,
				Kind:     string(out.kind),
				Err:      out.err,
				Elapsed:  time.Since(attemptStart),
			})
			s.logger.Debug("sentinel attempt failed",
				slog.String("master", master),
				slog.String("sentinel", sa.String()),
				slog.String("kind", string(out.kind)))
		}

		if found {
			role, err := set.confirmRole(ctx, candidate)
			if err == nil && role == "master" {
				s.updateSentinelAddrs(set.callbacks, reqID, master, func(m AddrMap) AddrMap {
					next := m.clone()
					l := AddFront(next[master], reporter)
					if set.addMissing {
						l = AddBack(l, reported...)
					}
					next[master] = l
					return next
				})
				s.bumpSentinelStats(reporter, func(st *SentinelStats) { st.Successes++ })
				s.bumpResolveStats(master, func(r *ResolveStats) { r.Successes++ })

				elapsed := time.Since(start)
				s.fire(set.callbacks, EventResolveSuccess, func() Event {
					return Event{
						ID:         EventResolveSuccess,
						MasterName: master,
						RequestID:  reqID,
						Addr:       candidate,
						Spec:       s,
						Elapsed:    elapsed,
					}
				})
				s.ResetMasterAddr(set.callbacks, master, candidate)
				s.logger.Debug("resolved master",
					slog.String("master", master),
					slog.String("addr", candidate.String()),
					slog.Duration("elapsed", elapsed))
				return candidate, nil
			}

			misErr := fmt.Errorf("candidate %s misidentified: role %q", candidate, role)
			if err != nil {
				misErr = fmt.Errorf("candidate %s misidentified: %w", candidate, err)
			}
			s.bumpSentinelStats(reporter, func(st *SentinelStats) { st.record(kindMisidentified) })
			attemptLog = append(attemptLog, AttemptEntry{
				Attempt:  attempts,
				Sentinel: reporter,
				Kind:     string(kindMisidentified),
				Err:      misErr,
				Elapsed:  time.Since(start),
			})
			s.logger.Warn("candidate master misidentified",
				slog.String("master", master),
				slog.String("candidate", candidate.String()),
				slog.String("role", role))
		}

		elapsed := time.Since(start)
		if elapsed+set.retryDelay > set.timeout {
			attemptLog = append(attemptLog, AttemptEntry{Attempt: attempts, Kind: "timeout", Elapsed: elapsed})
			terr := &TimeoutError{
				MasterName:     master,
				Timeout:        set.timeout,
				Attempts:       attempts,
				Retries:        retries,
				SentinelErrors: s.snapshotTried(tried),
				Log:            attemptLog,
			}
			s.bumpResolveStats(master, func(r *ResolveStats) { r.Errors++ })
			s.fireResolveError(set.callbacks, master, reqID, terr, elapsed)
			return Addr{}, terr
		}

		select {
		case <-ctx.Done():
			err := fmt.Errorf("resolution interrupted: %w", ctx.Err())
			s.bumpResolveStats(master, func(r *ResolveStats) { r.Errors++ })
			s.fireResolveError(set.callbacks, master, reqID, err, time.Since(start))
			return Addr{}, err
		case <-time.After(set.retryDelay):
		}
		retries++
		attemptLog = append(attemptLog, AttemptEntry{Attempt: attempts, Kind: "retry-after-sleep", Elapsed: time.Since(start)})
	}
}

func (s *Spec) snapshotTried(tried map[string]struct{}) map[string]SentinelStats {
	all := *s.sentinelStats.Load()
	out := make(map[string]SentinelStats, len(tried))
	for key := range tried {
		out[key] = all[key]
	}
	return out
}

func (s *Spec) fireResolveError(cbs Callbacks, master string, reqID uuid.UUID, err error, elapsed time.Duration) {
	s.fire(cbs, EventResolveError, func() Event {
		return Event{
			ID:         EventResolveError,
			MasterName: master,
			RequestID:  reqID,
			Spec:       s,
			Err:        err,
			Elapsed:    elapsed,
		}
	})
}

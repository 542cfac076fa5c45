package sentinel

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/sanguivore-easyco/carmine/internal/reply"
	"github.com/sanguivore-easyco/carmine/pkg/resp"
)

// withConn opens a transient connection to addr, hands the framed writer
// and reply reader to f, and closes the connection on every exit path.
// Transient connections are used for all sentinel traffic: the peer is a
// Sentinel, not a data Redis, so pooled connections never apply.
func (set resolveSettings) withConn(ctx context.Context, addr Addr, f func(w *resp.Writer, r *reply.Reader) error) error {
	dial := set.dialer
	if dial == nil {
		d := &net.Dialer{Timeout: set.dialTimeout}
		dial = d.DialContext
	}

	dialCtx, cancel := context.WithTimeout(ctx, set.dialTimeout)
	defer cancel()
	conn, err := dial(dialCtx, "tcp", addr.String())
	if err != nil {
		return err
	}
	defer conn.Close()

	if set.dialTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(set.dialTimeout))
	}
	return f(resp.NewWriter(conn), reply.NewReader(conn))
}

// attemptOutcome is what one sentinel attempt produced: either a master
// candidate, or an error bucket. Reported peer sentinels ride along
// either way.
type attemptOutcome struct {
	candidate Addr
	ok        bool
	reported  AddrList
	kind      errorKind
	err       error
}

// Simulated sentinel hosts used by tests; they short-circuit into their
// bucket without any network I/O.
const (
	hostUnreachable   = "unreachable"
	hostIgnorant      = "ignorant"
	hostMisidentified = "misidentified"
)

// querySentinel asks one sentinel for the master address, and for its
// peer sentinels when add-missing is on.
func (set resolveSettings) querySentinel(ctx context.Context, masterName string, sa Addr) attemptOutcome {
	switch sa.Host {
	case hostUnreachable:
		return attemptOutcome{kind: kindUnreachable, err: fmt.Errorf("simulated unreachable sentinel %s", sa)}
	case hostIgnorant:
		return attemptOutcome{kind: kindIgnorant, err: fmt.Errorf("simulated ignorant sentinel %s", sa)}
	case hostMisidentified:
		return attemptOutcome{kind: kindMisidentified, err: fmt.Errorf("simulated misidentifying sentinel %s", sa)}
	}

	var out attemptOutcome
	err := set.withConn(ctx, sa, func(w *resp.Writer, r *reply.Reader) error {
		reqs := [][]any{{"SENTINEL", "get-master-addr-by-name", masterName}}
		if set.addMissing {
			reqs = append(reqs, []any{"SENTINEL", "sentinels", masterName})
		}
		if err := w.WriteRequests(reqs...); err != nil {
			return err
		}

		masterReply, err := r.Read()
		if err != nil {
			return err
		}
		switch mr := masterReply.(type) {
		case nil:
			out.kind = kindIgnorant
			out.err = fmt.Errorf("sentinel %s does not know master %q", sa, masterName)
		case []any:
			if len(mr) < 2 {
				out.kind = kindOtherError
				out.err = fmt.Errorf("sentinel %s: short master reply (%d elements)", sa, len(mr))
				break
			}
			host, _ := mr[0].(string)
			cand, perr := ParseAddr(host, mr[1])
			if perr != nil {
				out.kind = kindOtherError
				out.err = fmt.Errorf("sentinel %s: %w", sa, perr)
				break
			}
			out.candidate = cand
			out.ok = true
		default:
			out.kind = kindOtherError
			out.err = fmt.Errorf("sentinel %s: unexpected master reply type %T", sa, masterReply)
		}

		if set.addMissing {
			sentReply, err := r.Read()
			if err != nil {
				// The master reply already decided this attempt; a broken
				// peers reply only loses the gossip.
				return nil
			}
			out.reported = parseSentinelDescriptors(sentReply)
		}
		return nil
	})
	if err != nil {
		var srvErr reply.ServerError
		if errors.As(err, &srvErr) {
			return attemptOutcome{kind: kindOtherError, err: err, reported: out.reported}
		}
		return attemptOutcome{kind: kindUnreachable, err: err, reported: out.reported}
	}
	return out
}

// parseSentinelDescriptors extracts (ip, port) pairs from a SENTINEL
// sentinels reply. Each descriptor is either a map or an alternating
// key/value sequence; descriptors without both ip and port are skipped.
func parseSentinelDescriptors(v any) AddrList {
	descs, ok := v.([]any)
	if !ok {
		return nil
	}
	var out AddrList
	for _, d := range descs {
		fields := descriptorFields(d)
		if fields == nil {
			continue
		}
		ip, okIP := fields["ip"].(string)
		port, okPort := fields["port"]
		if !okIP || !okPort {
			continue
		}
		a, err := ParseAddr(ip, port)
		if err != nil {
			continue
		}
		if name, ok := fields["name"].(string); ok {
			a.Name = name
		}
		out = AddBack(out, a)
	}
	return out
}

func descriptorFields(d any) map[string]any {
	switch d := d.(type) {
	case map[string]any:
		return d
	case []any:
		fields := make(map[string]any, len(d)/2)
		for i := 0; i+1 < len(d); i += 2 {
			k, ok := d[i].(string)
			if !ok {
				continue
			}
			fields[k] = d[i+1]
		}
		return fields
	default:
		return nil
	}
}

// confirmRole asks a candidate master for its ROLE. Any failure to get a
// first element of "master" back, including a connection failure mid
// exchange, reads as misidentification so the round retries.
func (set resolveSettings) confirmRole(ctx context.Context, m Addr) (string, error) {
	var role string
	err := set.withConn(ctx, m, func(w *resp.Writer, r *reply.Reader) error {
		if err := w.WriteRequest("ROLE"); err != nil {
			return err
		}
		rep, err := r.Read()
		if err != nil {
			return err
		}
		arr, ok := rep.([]any)
		if !ok || len(arr) == 0 {
			return fmt.Errorf("unexpected ROLE reply type %T", rep)
		}
		role, _ = arr[0].(string)
		return nil
	})
	return role, err
}

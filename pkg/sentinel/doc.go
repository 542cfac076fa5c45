// Package sentinel resolves and tracks the current Redis master address
// for named services by consulting Sentinel servers.
//
// A Spec is created once per client with an initial master-name →
// sentinel-address map. ResolveMasterAddr walks the sentinels in order
// over transient connections, asking each for the master and (optionally)
// for its peer sentinels, confirms the candidate with ROLE, and retries
// with a fixed delay until the configured timeout. Confirmed resolutions
// promote the reporting sentinel to the head of the list and fold
// gossiped peers into it, so later resolutions try the most recently
// authoritative source first.
//
//	spec := sentinel.NewSpec(sentinel.AddrMap{
//		"mymaster": {sentinel.NewAddr("127.0.0.1", 26379)},
//	}, sentinel.Config{})
//
//	addr, err := spec.ResolveMasterAddr(ctx, "mymaster", nil)
//
// # Observers
//
// Resolutions report through up to three observer tables: the
// process-wide table (SetProcessCallbacks), the spec-scope table
// (Config.Callbacks), and a per-request table (ResolveOpts.Callbacks),
// consulted in that order. Events fire on success, on error, when the
// resolved address changes, and when a sentinel list changes. Handler
// panics are swallowed; an observer bug never breaks resolution.
//
// # Concurrency
//
// All Spec state lives in compare-and-swap cells, so concurrent
// resolutions and mutations are safe without locks. Resolutions for the
// same master are not coalesced; when two race to promote different
// sentinels, the last swap wins, which is the intended semantics.
//
// Sentinel addresses with the literal hosts "unreachable", "ignorant",
// and "misidentified" are simulated: they land in the corresponding
// error bucket without network I/O, which tests use to script resolver
// behavior.
package sentinel

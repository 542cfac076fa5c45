package sentinel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanguivore-easyco/carmine/pkg/sentinel"
)

func TestNewSpec_CleansInitialMap(t *testing.T) {
	t.Parallel()

	a := sentinel.NewAddr("127.0.0.1", 26379)
	spec := sentinel.NewSpec(sentinel.AddrMap{
		":mymaster": {a, a, sentinel.NewAddr("10.0.0.2", 26379)},
	}, sentinel.Config{})

	list := spec.SentinelAddrs("mymaster")
	require.Len(t, list, 2)
	assert.Equal(t, a, list[0])
}

func TestSpec_AddBackFiresSentinelsChange(t *testing.T) {
	t.Parallel()

	var events []sentinel.Event
	spec := sentinel.NewSpec(sentinel.AddrMap{
		"m": {sentinel.NewAddr("a", 1)},
	}, sentinel.Config{
		Callbacks: sentinel.Callbacks{
			sentinel.EventSentinelsChange: func(ev sentinel.Event) { events = append(events, ev) },
		},
	})

	spec.AddBack("m", sentinel.NewAddr("b", 2))
	require.Len(t, events, 1)
	assert.Equal(t, sentinel.EventSentinelsChange, events[0].ID)
	assert.Len(t, events[0].OldSentinels["m"], 1)
	assert.Len(t, events[0].Sentinels["m"], 2)

	// Re-adding an existing address changes nothing and stays silent.
	spec.AddBack("m", sentinel.NewAddr("b", 2))
	assert.Len(t, events, 1)
}

func TestSpec_AddFrontAndRemove(t *testing.T) {
	t.Parallel()

	a, b := sentinel.NewAddr("a", 1), sentinel.NewAddr("b", 2)
	spec := sentinel.NewSpec(sentinel.AddrMap{"m": {a, b}}, sentinel.Config{})

	spec.AddFront("m", b)
	assert.Equal(t, sentinel.AddrList{b, a}, spec.SentinelAddrs("m"))

	spec.Remove("m", a)
	assert.Equal(t, sentinel.AddrList{b}, spec.SentinelAddrs("m"))
}

func TestSpec_ResetMasterAddr(t *testing.T) {
	t.Parallel()

	var changes []sentinel.Event
	cbs := sentinel.Callbacks{
		sentinel.EventResolveChange: func(ev sentinel.Event) { changes = append(changes, ev) },
	}
	spec := sentinel.NewSpec(sentinel.AddrMap{"m": {sentinel.NewAddr("a", 1)}}, sentinel.Config{})

	_, ok := spec.MasterAddr("m")
	require.False(t, ok)

	first := sentinel.NewAddr("10.0.0.5", 6379)
	spec.ResetMasterAddr(cbs, "m", first)
	got, ok := spec.MasterAddr("m")
	require.True(t, ok)
	assert.Equal(t, first, got)
	require.Len(t, changes, 1)
	assert.Equal(t, first, changes[0].Addr)

	// Same address again: no event, no counter bump.
	spec.ResetMasterAddr(cbs, "m", first)
	assert.Len(t, changes, 1)

	second := sentinel.NewAddr("10.0.0.6", 6379)
	spec.ResetMasterAddr(cbs, "m", second)
	require.Len(t, changes, 2)
	assert.Equal(t, first, changes[1].OldAddr)
	assert.Equal(t, second, changes[1].Addr)

	stats, ok := spec.ResolveStatsFor("m")
	require.True(t, ok)
	assert.Equal(t, uint64(2), stats.Changes)
}

func TestSpec_CallbackPanicIsSwallowed(t *testing.T) {
	t.Parallel()

	spec := sentinel.NewSpec(sentinel.AddrMap{"m": {sentinel.NewAddr("a", 1)}}, sentinel.Config{
		Callbacks: sentinel.Callbacks{
			sentinel.EventSentinelsChange: func(sentinel.Event) { panic("observer bug") },
		},
	})

	assert.NotPanics(t, func() {
		spec.AddBack("m", sentinel.NewAddr("b", 2))
	})
	assert.Len(t, spec.SentinelAddrs("m"), 2)
}

func TestSetProcessCallbacks_BindRestore(t *testing.T) {
	fired := 0
	prev := sentinel.SetProcessCallbacks(sentinel.Callbacks{
		sentinel.EventResolveChange: func(sentinel.Event) { fired++ },
	})
	defer sentinel.SetProcessCallbacks(prev)

	spec := sentinel.NewSpec(sentinel.AddrMap{"m": {sentinel.NewAddr("a", 1)}}, sentinel.Config{})
	spec.ResetMasterAddr(nil, "m", sentinel.NewAddr("10.0.0.5", 6379))
	assert.Equal(t, 1, fired)
}

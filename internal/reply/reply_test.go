package reply_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanguivore-easyco/carmine/internal/reply"
)

func read(t *testing.T, in string) (any, error) {
	t.Helper()
	return reply.NewReader(strings.NewReader(in)).Read()
}

func TestRead_SimpleForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want any
	}{
		{"simple string", "+OK\r\n", "OK"},
		{"integer", ":42\r\n", int64(42)},
		{"negative integer", ":-7\r\n", int64(-7)},
		{"double", ",3.5\r\n", 3.5},
		{"bool true", "#t\r\n", true},
		{"bool false", "#f\r\n", false},
		{"null", "_\r\n", nil},
		{"bulk", "$5\r\nhello\r\n", "hello"},
		{"empty bulk", "$0\r\n\r\n", ""},
		{"null bulk", "$-1\r\n", nil},
		{"null array", "*-1\r\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := read(t, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRead_Array(t *testing.T) {
	t.Parallel()

	got, err := read(t, "*3\r\n$8\r\n10.0.0.5\r\n$4\r\n6379\r\n:1\r\n")
	require.NoError(t, err)
	assert.Equal(t, []any{"10.0.0.5", "6379", int64(1)}, got)
}

func TestRead_NestedArray(t *testing.T) {
	t.Parallel()

	got, err := read(t, "*1\r\n*2\r\n$2\r\nip\r\n$9\r\n127.0.0.1\r\n")
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{"ip", "127.0.0.1"}}, got)
}

func TestRead_Map(t *testing.T) {
	t.Parallel()

	got, err := read(t, "%2\r\n$2\r\nip\r\n$9\r\n127.0.0.1\r\n$4\r\nport\r\n$5\r\n26379\r\n")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ip": "127.0.0.1", "port": "26379"}, got)
}

func TestRead_ServerError(t *testing.T) {
	t.Parallel()

	_, err := read(t, "-ERR unknown command\r\n")
	var srvErr reply.ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, "ERR unknown command", srvErr.Error())
}

func TestRead_ProtocolErrors(t *testing.T) {
	t.Parallel()

	_, err := read(t, "?what\r\n")
	require.ErrorIs(t, err, reply.ErrProtocol)

	_, err = read(t, ":abc\r\n")
	require.ErrorIs(t, err, reply.ErrProtocol)
}

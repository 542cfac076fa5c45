package freeze

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/vmihailenco/msgpack/v5"
)

// Options controls how values are frozen.
type Options struct {
	// Compress wraps the encoded payload in a zlib stream. Worth it for
	// large values; pure overhead for small ones.
	Compress bool
}

// Dynamic is a distinguished Options pointer that resolves to the
// process-wide default options at wrap time. When no default has been
// set, it resolves to nil (plain encoding).
var Dynamic = &Options{}

var defaultOptions atomic.Pointer[Options]

// SetDefaultOptions replaces the process-wide options that Dynamic
// resolves to, returning the previous value so callers that bind a
// temporary default can restore it afterwards.
func SetDefaultOptions(opts *Options) (prev *Options) {
	return defaultOptions.Swap(opts)
}

func resolveOptions(opts *Options) *Options {
	if opts == Dynamic {
		return defaultOptions.Load()
	}
	return opts
}

// Payload header flags. The first byte of every frozen payload records
// the transforms applied on top of the msgpack body.
const (
	flagPlain byte = 0
	flagZlib  byte = 1
)

// Freeze serializes a value. The output is deterministic for identical
// values and options. A Dynamic opts pointer is resolved against the
// process default first.
func Freeze(v any, opts *Options) ([]byte, error) {
	opts = resolveOptions(opts)

	var body bytes.Buffer
	enc := msgpack.NewEncoder(&body)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, errors.Join(ErrFreeze, err)
	}

	if opts == nil || !opts.Compress {
		out := make([]byte, 0, body.Len()+1)
		out = append(out, flagPlain)
		return append(out, body.Bytes()...), nil
	}

	var out bytes.Buffer
	out.WriteByte(flagZlib)
	zw := zlib.NewWriter(&out)
	if _, err := zw.Write(body.Bytes()); err != nil {
		return nil, errors.Join(ErrFreeze, err)
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Join(ErrFreeze, err)
	}
	return out.Bytes(), nil
}

// Thaw deserializes a frozen payload into out, which must be a non-nil
// pointer.
func Thaw(payload []byte, out any) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: empty payload", ErrThaw)
	}

	body := payload[1:]
	switch payload[0] {
	case flagPlain:
	case flagZlib:
		zr, err := zlib.NewReader(bytes.NewReader(body))
		if err != nil {
			return errors.Join(ErrThaw, err)
		}
		defer zr.Close()
		raw, err := io.ReadAll(zr)
		if err != nil {
			return errors.Join(ErrThaw, err)
		}
		body = raw
	default:
		return fmt.Errorf("%w: unknown payload flag 0x%02x", ErrThaw, payload[0])
	}

	if err := msgpack.Unmarshal(body, out); err != nil {
		return errors.Join(ErrThaw, err)
	}
	return nil
}

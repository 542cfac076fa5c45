package resp

import "fmt"

// Raw wraps bytes that must reach the wire verbatim, bypassing both the
// serialization fallback and the marker prefixes.
type Raw struct {
	bytes []byte
}

// Bytes returns the wrapped payload.
func (r Raw) Bytes() []byte { return r.bytes }

// ToBytes wraps a byte slice for verbatim transmission. Wrapping an
// already-wrapped value is a no-op; any other type fails with
// ErrUnsupportedArgType.
func ToBytes(v any) (Raw, error) {
	switch v := v.(type) {
	case Raw:
		return v, nil
	case []byte:
		return Raw{bytes: v}, nil
	default:
		return Raw{}, fmt.Errorf("%w: to-bytes expects a byte slice, got %T", ErrUnsupportedArgType, v)
	}
}

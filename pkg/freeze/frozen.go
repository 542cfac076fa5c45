package freeze

// Frozen carries a value together with the options it was frozen under
// and the resulting payload. The payload is computed eagerly by ToFrozen.
type Frozen struct {
	value any
	opts  *Options
	bytes []byte
}

// Value returns the original wrapped value.
func (f Frozen) Value() any { return f.value }

// Opts returns the options the payload was frozen with.
func (f Frozen) Opts() *Options { return f.opts }

// Bytes returns the frozen payload.
func (f Frozen) Bytes() []byte { return f.bytes }

// ToFrozen freezes a value eagerly and wraps it with the options used.
// Wrapping an already-Frozen value with equivalent options is a no-op;
// with different options the original value is frozen again. A Dynamic
// opts pointer is resolved against the process default before comparison.
func ToFrozen(opts *Options, v any) (Frozen, error) {
	opts = resolveOptions(opts)

	if f, ok := v.(Frozen); ok {
		if sameOptions(f.opts, opts) {
			return f, nil
		}
		v = f.value
	}

	b, err := Freeze(v, opts)
	if err != nil {
		return Frozen{}, err
	}
	return Frozen{value: v, opts: opts, bytes: b}, nil
}

func sameOptions(a, b *Options) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

package resp

import (
	"bufio"
	"fmt"
	"math"

	"github.com/sanguivore-easyco/carmine/pkg/freeze"
)

// Marker prefixes embedded inside bulk payloads when blob markers are
// enabled. These exact byte sequences are a compatibility surface; peers
// use them to restore the original argument class on read.
var (
	markerNil = []byte{0x00, 0x5F}
	markerBin = []byte{0x00, 0x3C}
	markerNpy = []byte{0x00, 0x3E, 0x4E, 0x50, 0x59, 0x00}
)

// Name is the qualified-name argument type. It encodes as
// "namespace/name", or just "name" when the namespace is empty.
type Name struct {
	Namespace string
	Name      string
}

func (n Name) String() string {
	if n.Namespace == "" {
		return n.Name
	}
	return n.Namespace + "/" + n.Name
}

type argKind uint8

const (
	argString argKind = iota
	argInt
	argFloat
	argBytes  // unwrapped byte slice, bin-marked when markers are on
	argRaw    // verbatim bytes, never marked
	argFrozen // pre-serialized payload, npy-marked when markers are on
	argNil
	argBlob // codec output for an otherwise-unsupported value, npy-marked
)

// arg is the tagged variant every host value is converted into before
// writing. The conversion does all fallible work (type checks, codec
// calls), so the write path is a single infallible-by-type switch.
type arg struct {
	kind argKind
	str  string
	num  int64
	fnum float64
	data []byte
}

type encodeOpts struct {
	markers    bool
	freezeOpts *freeze.Options
}

func toArg(v any, opts encodeOpts) (arg, error) {
	switch v := v.(type) {
	case nil:
		if !opts.markers {
			return arg{}, fmt.Errorf("%w: nil requires blob markers", ErrUnsupportedArgType)
		}
		return arg{kind: argNil}, nil
	case string:
		if opts.markers && len(v) > 0 && v[0] == 0x00 {
			return arg{}, fmt.Errorf("%w: %q", ErrReservedNull, v)
		}
		return arg{kind: argString, str: v}, nil
	case Name:
		return arg{kind: argString, str: v.String()}, nil
	case Raw:
		return arg{kind: argRaw, data: v.Bytes()}, nil
	case freeze.Frozen:
		return arg{kind: argFrozen, data: v.Bytes()}, nil
	case []byte:
		return arg{kind: argBytes, data: v}, nil
	case int:
		return arg{kind: argInt, num: int64(v)}, nil
	case int8:
		return arg{kind: argInt, num: int64(v)}, nil
	case int16:
		return arg{kind: argInt, num: int64(v)}, nil
	case int32:
		return arg{kind: argInt, num: int64(v)}, nil
	case int64:
		return arg{kind: argInt, num: v}, nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return arg{}, fmt.Errorf("%w: uint %d overflows int64", ErrUnsupportedArgType, v)
		}
		return arg{kind: argInt, num: int64(v)}, nil
	case uint8:
		return arg{kind: argInt, num: int64(v)}, nil
	case uint16:
		return arg{kind: argInt, num: int64(v)}, nil
	case uint32:
		return arg{kind: argInt, num: int64(v)}, nil
	case uint64:
		if v > math.MaxInt64 {
			return arg{}, fmt.Errorf("%w: uint64 %d overflows int64", ErrUnsupportedArgType, v)
		}
		return arg{kind: argInt, num: int64(v)}, nil
	case float32:
		return arg{kind: argFloat, fnum: float64(v)}, nil
	case float64:
		return arg{kind: argFloat, fnum: v}, nil
	default:
		if !opts.markers {
			return arg{}, fmt.Errorf("%w: %T", ErrUnsupportedArgType, v)
		}
		b, err := freeze.Freeze(v, opts.freezeOpts)
		if err != nil {
			return arg{}, err
		}
		return arg{kind: argBlob, data: b}, nil
	}
}

func writeArg(w *bufio.Writer, a arg, markers bool) error {
	switch a.kind {
	case argString:
		return WriteBulkString(w, a.str)
	case argInt:
		return WriteSimpleLong(w, a.num)
	case argFloat:
		return WriteBulkDouble(w, a.fnum)
	case argRaw:
		return WriteBulkBytes(w, a.data)
	case argBytes:
		if markers {
			return WriteBulkBytesMarked(w, markerBin, a.data)
		}
		return WriteBulkBytes(w, a.data)
	case argFrozen, argBlob:
		if markers {
			return WriteBulkBytesMarked(w, markerNpy, a.data)
		}
		return WriteBulkBytes(w, a.data)
	case argNil:
		return WriteBulkBytes(w, markerNil)
	default:
		return fmt.Errorf("%w: unknown arg kind %d", ErrUnsupportedArgType, a.kind)
	}
}

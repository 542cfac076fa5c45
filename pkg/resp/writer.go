package resp

import (
	"bufio"
	"io"

	"github.com/sanguivore-easyco/carmine/pkg/freeze"
)

// Writer frames command argument lists into the RESP array-of-bulks wire
// form. A Writer assumes exclusive ownership of its sink for the duration
// of each call; serializing concurrent callers is the caller's job.
type Writer struct {
	bw         *bufio.Writer
	markers    bool
	freezeOpts *freeze.Options
}

// Option configures a Writer.
type Option func(*Writer)

// WithoutMarkers disables the blob marker prefixes. Byte slices are then
// written verbatim and nil or unencodable arguments become errors instead
// of serialized payloads.
func WithoutMarkers() Option {
	return func(w *Writer) { w.markers = false }
}

// WithFreezeOptions sets the codec options used when an argument has no
// direct encoding rule and falls through to serialization.
func WithFreezeOptions(opts *freeze.Options) Option {
	return func(w *Writer) { w.freezeOpts = opts }
}

// NewWriter returns a Writer on the given sink. Blob markers are enabled
// by default.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}
	rw := &Writer{bw: bw, markers: true}
	for _, opt := range opts {
		opt(rw)
	}
	return rw
}

// WriteRequests writes each non-empty argument list as one RESP command
// and flushes the sink exactly once at the end. Empty lists emit nothing.
// Every argument is converted (including any codec work) before the first
// byte is buffered, so an encoding failure leaves nothing on the wire.
func (w *Writer) WriteRequests(reqs ...[]any) error {
	opts := encodeOpts{markers: w.markers, freezeOpts: w.freezeOpts}

	converted := make([][]arg, 0, len(reqs))
	for _, req := range reqs {
		if len(req) == 0 {
			continue
		}
		args := make([]arg, len(req))
		for i, v := range req {
			a, err := toArg(v, opts)
			if err != nil {
				return err
			}
			args[i] = a
		}
		converted = append(converted, args)
	}

	for _, args := range converted {
		if err := WriteArrayLen(w.bw, len(args)); err != nil {
			return err
		}
		for _, a := range args {
			if err := writeArg(w.bw, a, w.markers); err != nil {
				return err
			}
		}
	}
	return w.bw.Flush()
}

// WriteRequest writes a single command.
func (w *Writer) WriteRequest(args ...any) error {
	return w.WriteRequests(args)
}

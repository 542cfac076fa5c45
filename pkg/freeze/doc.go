// Package freeze serializes arbitrary Go values into compact binary
// payloads and back, for embedding inside Redis bulk strings.
//
// The encoding is msgpack with sorted map keys, so identical values and
// options always produce identical bytes. An optional zlib layer can be
// enabled through Options; the one-byte payload header records whether it
// was applied.
//
// Frozen wraps a value together with the options used and the eagerly
// computed payload, so serialization errors surface when the wrapper is
// built rather than while a request is being written to the wire.
package freeze

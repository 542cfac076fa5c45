// Package resp encodes command arguments into the RESP3 wire format used
// by Redis servers.
//
// The package has three layers:
//
//   - Wire primitives (WriteArrayLen, WriteBulkLen, WriteSimpleLong,
//     WriteBulkDouble, WriteBulkBytes) that append length-prefixed frames
//     to a buffered sink, with precomputed byte tables for small values.
//   - An argument encoder that converts arbitrary Go values into a tagged
//     variant at the call boundary and dispatches on it while writing.
//   - Writer, which frames ordered argument lists into RESP commands and
//     flushes once per call.
//
// # Blob markers
//
// With markers enabled (the default), payloads that are not plain strings
// or numbers carry a short magic prefix inside the bulk string so a peer
// using this library can restore the original class: raw byte slices get
// 0x00 0x3C, serialized values get 0x00 0x3E 'N' 'P' 'Y' 0x00, and nil is
// the fixed payload 0x00 0x5F. Strings starting with the null byte are
// rejected with ErrReservedNull because they would collide with the
// marker space. Wrap bytes with ToBytes to bypass marking entirely.
//
//	w := resp.NewWriter(conn)
//	err := w.WriteRequests([]any{"SET", "k", 1}, []any{"GET", "k"})
//
// Integers and floats never carry markers; their wire form is identical
// whether markers are on or off.
package resp

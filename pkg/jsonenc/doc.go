// Package jsonenc provides deterministic JSON encoding for log payloads and
// error bodies.
//
// Object keys are emitted in sorted order and non-string map keys are coerced to
// their string form, so the same logical value always encodes to the same bytes.
// String input is passed through unchanged, which makes Serialize safe to call on
// values that were already serialized upstream.
package jsonenc

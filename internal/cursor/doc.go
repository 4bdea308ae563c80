// Package cursor implements opaque pagination tokens and keyset condition
// generation.
//
// A Cursor is an ordered list of (field, value) pairs serialized as a minimal
// JSON object and encoded with unpadded URL-safe base64. The wire format is a
// backward-compatibility contract for paginated APIs. Decoding is guarded
// against oversized tokens (4KB pre-decode cap) and excessive field counts
// (16), and every failure is a typed CursorError.
//
// KeysetCondition turns a cursor plus the query's sort fields into the
// OR-expanded lexicographic inequality used to resume an ordered scan without
// gaps or duplicates. PageInfo summarizes page boundaries for responses.
package cursor

// Package crystal provides the 64-bit crystal identifier and its codec.
//
// # Layout
//
// A crystal packs three fields into one uint64, most significant first:
//
//	[42 bits ms_timestamp][12 bits generator_id][10 bits counter]
//
// The timestamp counts milliseconds since a deployment-chosen epoch, the
// generator id names the emitting generator, and the counter orders crystals
// minted within the same millisecond. Because the timestamp occupies the high
// bits, numeric comparison of crystals preserves chronological order across
// generators to millisecond precision.
//
// # Codec
//
// Pack masks each field to its width and never fails; the field accessors
// never fail either, so any uint64 decodes to in-range parts. FromParts is
// the checked variant for callers that want range violations surfaced.
//
// Usage
//
//	c := crystal.Pack(1234, 7, 0)
//	c.Timestamp() // 1234
//	c.Generator() // 7
//	c.Counter()   // 0
//	c.String()    // decimal, safe for JSON and logs
package crystal

// Package generator mints crystal identifiers.
//
// A Generator owns one 12-bit identity and the mutable pair (last emitted
// millisecond, counter). Crystals from a single instance are distinct and
// strictly increasing as 64-bit values; their timestamps never decrease.
// Instances with distinct IDs never collide, with no coordination beyond the
// out-of-band ID assignment itself.
//
// # Monotonicity
//
//   - If the clock regresses, the generator holds the last emitted
//     millisecond and keeps counting within it, publishing a diagnostic
//     signal instead of failing.
//   - If a millisecond's 10-bit counter space is exhausted, Next blocks
//     until the clock reaches the next millisecond. The caller's context
//     abandons the wait.
//   - If the 42-bit timestamp space since the epoch is spent, Next fails
//     with ErrTimestampExhausted and the instance is permanently done.
//
// Usage
//
//	g, err := generator.New(generator.Options{ID: 7, Epoch: epoch})
//	c, err := g.Next(ctx)
//	st := g.State() // persist for restart continuity
package generator

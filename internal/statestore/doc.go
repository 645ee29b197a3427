// Package statestore persists generator state snapshots in Pebble so a
// restarted node resumes its counter instead of re-minting a millisecond it
// already spent. Snapshots are keyed by generator id and stamped with the
// epoch they were taken against; a snapshot from a different epoch is
// refused, because its timestamps are meaningless under the new anchor.
package statestore

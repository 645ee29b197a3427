package statestore

import "encoding/binary"

// Keyspace helpers for Pebble keys.
//
// Layout (byte-wise, lexicographically sortable):
// - gen/{id_be2}/state

var (
	genPrefix   = []byte("gen/")
	stateSuffix = []byte("/state")
)

func appendBE2(dst []byte, v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return append(dst, b[:]...)
}

// KeyState builds the snapshot key for a generator.
func KeyState(id uint16) []byte {
	k := make([]byte, 0, len(genPrefix)+2+len(stateSuffix))
	k = append(k, genPrefix...)
	k = appendBE2(k, id)
	k = append(k, stateSuffix...)
	return k
}

// PrefixAll bounds a scan over every generator's records.
func PrefixAll() (lower, upper []byte) {
	lower = append([]byte(nil), genPrefix...)
	upper = append([]byte(nil), genPrefix...)
	upper[len(upper)-1]++
	return lower, upper
}

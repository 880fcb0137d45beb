// Package builtin contains reusable transformers shared by the cleaning
// stages.
//
// DeDup is the policy-driven de-duplication transformer. It collapses
// duplicate records by a configured key and keeps the first occurrence, so
// the surviving row per key is deterministic for a given input order. It
// runs in-memory on a whole dataset; run it after any field normalization so
// keys compare on consistent values.
package builtin

import (
	"github.com/zeebo/xxh3"
)

// DeDup removes records whose key has already been seen, keeping the first
// occurrence. Key must return the business key of a record; records are
// tracked by the xxh3 hash of that key, keeping the seen-set small even for
// multi-million-row inputs.
type DeDup[T any] struct {
	// Key builds the business key for a record, e.g. state+"\x1f"+city+"\x1f"+race.
	// Use an unlikely separator between fields so distinct tuples cannot
	// collide textually.
	Key func(T) string
}

// Apply returns the input filtered to the first record per key. Input order
// is preserved.
func (d DeDup[T]) Apply(in []T) []T {
	if len(in) == 0 || d.Key == nil {
		return in
	}
	seen := make(map[uint64]struct{}, len(in))
	out := in[:0:0]
	for _, rec := range in {
		h := xxh3.HashString(d.Key(rec))
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, rec)
	}
	return out
}

package builtin

// Require removes any record for which Present reports a missing required
// value. It is the typed counterpart of a "drop rows with null key columns"
// step.
type Require[T any] struct {
	// Present reports whether the record carries all required fields.
	Present func(T) bool
}

// Apply returns a filtered slice containing only records whose required
// fields are present.
func (r Require[T]) Apply(in []T) []T {
	if r.Present == nil {
		return in
	}
	out := in[:0:0]
	for _, rec := range in {
		if r.Present(rec) {
			out = append(out, rec)
		}
	}
	return out
}

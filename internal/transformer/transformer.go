// Package transformer defines the minimal dataset-transformation contract
// used by the cleaning stages. Transformations are pure: they consume a
// slice of typed records and produce a new (or filtered) slice, never
// touching shared state, so stages compose and parallelize freely.
package transformer

// Transformer is a single whole-dataset transformation step.
type Transformer[T any] interface {
	Apply([]T) []T
}

// Chain is an ordered list of transformers applied left to right.
type Chain[T any] []Transformer[T]

// Apply runs every transformer in order, feeding each one the output of the
// previous.
func (c Chain[T]) Apply(in []T) []T {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}

// Func adapts a plain function to the Transformer interface.
type Func[T any] func([]T) []T

func (f Func[T]) Apply(in []T) []T { return f(in) }

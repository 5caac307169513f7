package rangeset

import "fmt"

// Range is an immutable closed interval [from, to]. A Range is never
// edited in place; every mutation of a Set replaces ranges with newly
// constructed ones, so Range values may be freely shared.
type Range[T any] struct {
	from T
	to   T
}

// MakeRange returns the closed range [from, to]. The bounds are taken
// as given; the per-type factories (id16.RangeFrom, ipset.RangeFrom,
// ...) are the place where from <= to is enforced.
func MakeRange[T any](from, to T) Range[T] {
	return Range[T]{from: from, to: to}
}

// From returns the lower bound of r.
func (r Range[T]) From() T { return r.from }

// To returns the upper bound of r.
func (r Range[T]) To() T { return r.to }

func (r Range[T]) String() string {
	return fmt.Sprintf("%v-%v", r.from, r.to)
}

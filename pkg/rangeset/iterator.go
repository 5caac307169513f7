package rangeset

// Iterator walks the stored ranges of a Set in ascending order.
type Iterator[T any] struct {
	set     *Set[T]
	current int
}

func (r *Iterator[T]) Next() bool {
	r.current++
	return r.current < len(r.set.ranges)
}

func (r *Iterator[T]) Range() Range[T] {
	return r.set.ranges[r.current]
}

// Delete splices out the range last returned by Next and leaves the
// cursor positioned before the following range. It bypasses the
// merge/split logic and never re-normalizes; it exists for bulk
// operations that rebuild the set themselves and must not be mixed
// with Add or Remove in the same pass.
func (r *Iterator[T]) Delete() {
	r.set.removeAt(r.current)
	r.current--
}

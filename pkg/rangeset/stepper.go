package rangeset

// Stepper supplies the order and step semantics of the element type.
// Next and Prev must be true inverses for every value strictly inside
// the domain; at the domain edges implementations saturate rather than
// wrap, so adjacency probes against the first and last value stay on
// the correct side of the order.
type Stepper[T any] interface {
	// Compare returns a negative number when a sorts before b,
	// zero when they are equal and a positive number otherwise.
	Compare(a, b T) int
	// Next returns the successor of v.
	Next(v T) T
	// Prev returns the predecessor of v.
	Prev(v T) T
}

package rangeset

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Set is a mutable set of closed ranges over T, kept normalized: the
// ranges are sorted ascending by lower bound, pairwise disjoint and
// never adjacent under the stepper. Overlapping or adjacent ranges are
// merged on Add, partially covered ranges are split on Remove, and
// every mutating operation restores normalized form before returning.
//
// A Set is not safe for concurrent use; callers wrap it with their own
// locking (see vlanset and ipalloc) or work on per-caller clones.
type Set[T any] struct {
	step   Stepper[T]
	ranges []Range[T]
}

// New returns a Set using step, seeded with init. The seed ranges are
// replayed through Add so overlapping or adjacent ones collapse to
// normalized form.
func New[T any](step Stepper[T], init ...Range[T]) *Set[T] {
	s := &Set[T]{step: step}
	for _, r := range init {
		s.Add(r)
	}
	return s
}

// Has reports whether v is covered by one of the stored ranges.
func (s *Set[T]) Has(v T) bool {
	for _, r := range s.ranges {
		if s.step.Compare(r.from, v) <= 0 && s.step.Compare(v, r.to) <= 0 {
			return true
		}
	}
	return false
}

// Contains reports whether a single stored range fully covers r.
// Coverage by the union of several stored ranges does not count: with
// 1-5 and 7-10 stored, Contains(4-8) is false. Callers that want
// union coverage should Remove r from a Clone and check IsEmpty.
func (s *Set[T]) Contains(r Range[T]) bool {
	for _, existing := range s.ranges {
		if s.step.Compare(r.from, existing.from) >= 0 &&
			s.step.Compare(r.to, existing.to) <= 0 {
			return true
		}
	}
	return false
}

// ContainsAll reports whether Contains holds for every range in rr.
func (s *Set[T]) ContainsAll(rr []Range[T]) bool {
	for _, r := range rr {
		if !s.Contains(r) {
			return false
		}
	}
	return true
}

// Add inserts r, merging it with every stored range it overlaps or is
// adjacent to, and reports whether any new value became covered.
// Adjacency, a gap of exactly one step, merges the same as overlap;
// that is what keeps the set normalized.
func (s *Set[T]) Add(r Range[T]) bool {
	pending := r
	for i := 0; i < len(s.ranges); {
		existing := s.ranges[i]
		switch {
		case s.step.Compare(pending.to, s.step.Prev(existing.from)) < 0:
			// Entirely before existing and not adjacent to it.
			s.insertAt(i, pending)
			return true
		case s.step.Compare(pending.from, existing.from) < 0:
			// pending extends before existing; existing is subsumed
			// or merged into pending and dropped either way.
			if s.step.Compare(pending.to, existing.to) < 0 {
				pending.to = existing.to
			}
			s.removeAt(i)
		case s.step.Compare(pending.to, existing.to) <= 0:
			// The remainder of pending already lies inside existing.
			return false
		case s.step.Compare(pending.from, s.step.Next(existing.to)) <= 0:
			// Overlap or adjacency at the tail of existing.
			pending.from = existing.from
			s.removeAt(i)
		default:
			i++
		}
	}
	s.ranges = append(s.ranges, pending)
	return true
}

// AddAll applies Add to every range in rr in order and reports
// whether any individual Add covered new values.
func (s *Set[T]) AddAll(rr []Range[T]) bool {
	changed := false
	for _, r := range rr {
		if s.Add(r) {
			changed = true
		}
	}
	return changed
}

// Remove deletes the intersection of r with every stored range,
// splitting ranges that r only partially covers, and reports whether
// anything was removed.
func (s *Set[T]) Remove(r Range[T]) bool {
	changed := false
	for i := 0; i < len(s.ranges); {
		existing := s.ranges[i]
		if s.step.Compare(r.to, existing.from) < 0 {
			// Stored ranges are ordered; nothing further overlaps.
			break
		}
		if s.step.Compare(r.from, existing.to) > 0 {
			i++
			continue
		}
		s.removeAt(i)
		if s.step.Compare(r.from, existing.from) > 0 {
			s.insertAt(i, Range[T]{from: existing.from, to: s.step.Prev(r.from)})
			i++
		}
		if s.step.Compare(r.to, existing.to) < 0 {
			s.insertAt(i, Range[T]{from: s.step.Next(r.to), to: existing.to})
			i++
		}
		changed = true
	}
	return changed
}

// RemoveAll applies Remove to every range in rr and reports whether
// any individual Remove removed values.
func (s *Set[T]) RemoveAll(rr []Range[T]) bool {
	changed := false
	for _, r := range rr {
		if s.Remove(r) {
			changed = true
		}
	}
	return changed
}

// Retain clips the set to r: stored ranges entirely inside r stay,
// partial overlaps are replaced by their intersection with r and
// ranges entirely outside r are dropped. Reports whether anything was
// dropped or clipped.
func (s *Set[T]) Retain(r Range[T]) bool {
	changed := false
	for i := 0; i < len(s.ranges); {
		existing := s.ranges[i]
		if s.step.Compare(existing.from, r.from) >= 0 &&
			s.step.Compare(existing.to, r.to) <= 0 {
			i++
			continue
		}
		s.removeAt(i)
		changed = true
		if s.step.Compare(existing.to, r.from) < 0 {
			// Entirely left of r.
			continue
		}
		if s.step.Compare(existing.from, r.to) > 0 {
			// Entirely right of r, and so is everything after it.
			s.ranges = s.ranges[:i]
			break
		}
		clipped := existing
		if s.step.Compare(clipped.from, r.from) < 0 {
			clipped.from = r.from
		}
		if s.step.Compare(clipped.to, r.to) > 0 {
			clipped.to = r.to
		}
		s.insertAt(i, clipped)
		i++
	}
	return changed
}

// RetainAll replaces the set content with the union of its
// intersections with every range in rr, each intersection computed
// against the original content, and reports whether the normalized
// sequence changed. Note this is a union of intersections, not the
// retain-common semantics of a generic collection.
func (s *Set[T]) RetainAll(rr []Range[T]) bool {
	var kept []Range[T]
	for _, r := range rr {
		c := s.Clone()
		c.Retain(r)
		kept = append(kept, c.ranges...)
	}
	before := s.ranges
	s.ranges = nil
	for _, r := range kept {
		s.Add(r)
	}
	return !rangesEqual(s.step, before, s.ranges)
}

// Clear drops every stored range.
func (s *Set[T]) Clear() {
	s.ranges = nil
}

// Len returns the number of stored ranges.
func (s *Set[T]) Len() int { return len(s.ranges) }

func (s *Set[T]) IsEmpty() bool { return len(s.ranges) == 0 }

// Ranges returns a copy of the normalized ranges in ascending order.
func (s *Set[T]) Ranges() []Range[T] {
	return append([]Range[T]{}, s.ranges...)
}

// Clone returns an independent Set with the same stepper and content.
// Ranges are immutable, so copying the sequence is sufficient.
func (s *Set[T]) Clone() *Set[T] {
	return &Set[T]{
		step:   s.step,
		ranges: append([]Range[T]{}, s.ranges...),
	}
}

// Equal reports whether s and other hold element-wise equal normalized
// sequences. Normalization is canonical, so this is true set equality.
func (s *Set[T]) Equal(other *Set[T]) bool {
	return rangesEqual(s.step, s.ranges, other.ranges)
}

func rangesEqual[T any](step Stepper[T], a, b []Range[T]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if step.Compare(a[i].from, b[i].from) != 0 ||
			step.Compare(a[i].to, b[i].to) != 0 {
			return false
		}
	}
	return true
}

// Hash returns a digest of the normalized sequence. It is consistent
// with Equal for element types whose values format identically when
// they compare equal.
func (s *Set[T]) Hash() uint64 {
	h := fnv.New64a()
	for _, r := range s.ranges {
		fmt.Fprintf(h, "%v-%v,", r.from, r.to)
	}
	return h.Sum64()
}

// Iterate returns an iterator over the stored ranges in ascending
// order.
func (s *Set[T]) Iterate() *Iterator[T] {
	return &Iterator[T]{set: s, current: -1}
}

func (s *Set[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, r := range s.ranges {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(r.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (s *Set[T]) insertAt(i int, r Range[T]) {
	s.ranges = append(s.ranges, Range[T]{})
	copy(s.ranges[i+1:], s.ranges[i:])
	s.ranges[i] = r
}

func (s *Set[T]) removeAt(i int) {
	s.ranges = append(s.ranges[:i], s.ranges[i+1:]...)
}

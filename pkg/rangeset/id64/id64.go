package id64

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/henderiw/rangeset/pkg/rangeset"
)

const IDBitSize = uint8(64)

// Stepper orders uint64 ids with unit steps, saturating at the edges
// of the id space.
type Stepper struct{}

func (Stepper) Compare(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (Stepper) Next(v uint64) uint64 {
	if v == ^uint64(0) {
		return v
	}
	return v + 1
}

func (Stepper) Prev(v uint64) uint64 {
	if v == 0 {
		return v
	}
	return v - 1
}

// New returns a uint64 range set seeded with init.
func New(init ...rangeset.Range[uint64]) *rangeset.Set[uint64] {
	return rangeset.New[uint64](Stepper{}, init...)
}

// RangeFrom returns the closed range [from, to].
func RangeFrom(from, to uint64) (rangeset.Range[uint64], error) {
	if to < from {
		return rangeset.Range[uint64]{}, fmt.Errorf("invalid range %d-%d, to is smaller than from", from, to)
	}
	return rangeset.MakeRange(from, to), nil
}

// RangeOfID returns the range covering the single id.
func RangeOfID(id uint64) rangeset.Range[uint64] {
	return rangeset.MakeRange(id, id)
}

func ParseRange(s string) (rangeset.Range[uint64], error) {
	var r rangeset.Range[uint64]
	h := strings.IndexByte(s, '-')
	if h == -1 {
		return r, fmt.Errorf("no hyphen in range %q", s)
	}
	from, to := s[:h], s[h+1:]
	fromUint64, err := strconv.ParseUint(from, 10, int(IDBitSize))
	if err != nil {
		return r, fmt.Errorf("invalid from id %q in range %q", from, s)
	}
	toUint64, err := strconv.ParseUint(to, 10, int(IDBitSize))
	if err != nil {
		return r, fmt.Errorf("invalid to id %q in range %q", to, s)
	}
	return RangeFrom(fromUint64, toUint64)
}

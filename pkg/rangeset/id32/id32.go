package id32

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/henderiw/rangeset/pkg/rangeset"
)

const IDBitSize = uint8(32)

// Stepper orders uint32 ids with unit steps, saturating at the edges
// of the id space.
type Stepper struct{}

func (Stepper) Compare(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (Stepper) Next(v uint32) uint32 {
	if v == ^uint32(0) {
		return v
	}
	return v + 1
}

func (Stepper) Prev(v uint32) uint32 {
	if v == 0 {
		return v
	}
	return v - 1
}

// New returns a uint32 range set seeded with init.
func New(init ...rangeset.Range[uint32]) *rangeset.Set[uint32] {
	return rangeset.New[uint32](Stepper{}, init...)
}

// RangeFrom returns the closed range [from, to].
func RangeFrom(from, to uint32) (rangeset.Range[uint32], error) {
	if to < from {
		return rangeset.Range[uint32]{}, fmt.Errorf("invalid range %d-%d, to is smaller than from", from, to)
	}
	return rangeset.MakeRange(from, to), nil
}

// RangeOfID returns the range covering the single id.
func RangeOfID(id uint32) rangeset.Range[uint32] {
	return rangeset.MakeRange(id, id)
}

func ParseRange(s string) (rangeset.Range[uint32], error) {
	var r rangeset.Range[uint32]
	h := strings.IndexByte(s, '-')
	if h == -1 {
		return r, fmt.Errorf("no hyphen in range %q", s)
	}
	from, to := s[:h], s[h+1:]
	fromUint32, err := strconv.ParseUint(from, 10, int(IDBitSize))
	if err != nil {
		return r, fmt.Errorf("invalid from id %q in range %q", from, s)
	}
	toUint32, err := strconv.ParseUint(to, 10, int(IDBitSize))
	if err != nil {
		return r, fmt.Errorf("invalid to id %q in range %q", to, s)
	}
	return RangeFrom(uint32(fromUint32), uint32(toUint32))
}

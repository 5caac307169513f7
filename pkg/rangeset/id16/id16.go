package id16

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/henderiw/rangeset/pkg/rangeset"
)

const IDBitSize = uint8(16)

// Stepper orders uint16 ids with unit steps. Next and Prev saturate at
// the edges of the id space so adjacency probes against 0 and 65535
// cannot wrap around.
type Stepper struct{}

func (Stepper) Compare(a, b uint16) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (Stepper) Next(v uint16) uint16 {
	if v == ^uint16(0) {
		return v
	}
	return v + 1
}

func (Stepper) Prev(v uint16) uint16 {
	if v == 0 {
		return v
	}
	return v - 1
}

// New returns a uint16 range set seeded with init.
func New(init ...rangeset.Range[uint16]) *rangeset.Set[uint16] {
	return rangeset.New[uint16](Stepper{}, init...)
}

// RangeFrom returns the closed range [from, to].
func RangeFrom(from, to uint16) (rangeset.Range[uint16], error) {
	if to < from {
		return rangeset.Range[uint16]{}, fmt.Errorf("invalid range %d-%d, to is smaller than from", from, to)
	}
	return rangeset.MakeRange(from, to), nil
}

// RangeOfID returns the range covering the single id.
func RangeOfID(id uint16) rangeset.Range[uint16] {
	return rangeset.MakeRange(id, id)
}

func ParseRange(s string) (rangeset.Range[uint16], error) {
	var r rangeset.Range[uint16]
	h := strings.IndexByte(s, '-')
	if h == -1 {
		return r, fmt.Errorf("no hyphen in range %q", s)
	}
	from, to := s[:h], s[h+1:]
	fromUint16, err := strconv.ParseUint(from, 10, int(IDBitSize))
	if err != nil {
		return r, fmt.Errorf("invalid from id %q in range %q", from, s)
	}
	toUint16, err := strconv.ParseUint(to, 10, int(IDBitSize))
	if err != nil {
		return r, fmt.Errorf("invalid to id %q in range %q", to, s)
	}
	return RangeFrom(uint16(fromUint16), uint16(toUint16))
}

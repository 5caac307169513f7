package ipset

import (
	"fmt"
	"net/netip"

	"github.com/henderiw/rangeset/pkg/rangeset"
	"go4.org/netipx"
)

// Stepper orders netip.Addr values with unit address steps. Next and
// Prev saturate at the edges of the address family, where netip yields
// the invalid zero Addr.
type Stepper struct{}

func (Stepper) Compare(a, b netip.Addr) int { return a.Compare(b) }

func (Stepper) Next(v netip.Addr) netip.Addr {
	if n := v.Next(); n.IsValid() {
		return n
	}
	return v
}

func (Stepper) Prev(v netip.Addr) netip.Addr {
	if p := v.Prev(); p.IsValid() {
		return p
	}
	return v
}

// New returns an IP range set seeded with init.
func New(init ...rangeset.Range[netip.Addr]) *rangeset.Set[netip.Addr] {
	return rangeset.New[netip.Addr](Stepper{}, init...)
}

// RangeFrom returns the closed range [from, to]. Both bounds must be
// valid addresses of the same family with from <= to.
func RangeFrom(from, to netip.Addr) (rangeset.Range[netip.Addr], error) {
	if !netipx.IPRangeFrom(from, to).IsValid() {
		return rangeset.Range[netip.Addr]{}, fmt.Errorf("invalid range from %s to %s", from, to)
	}
	return rangeset.MakeRange(from, to), nil
}

// RangeOfAddr returns the range covering the single address.
func RangeOfAddr(addr netip.Addr) rangeset.Range[netip.Addr] {
	return rangeset.MakeRange(addr, addr)
}

// ParseRange parses the "10.0.0.10-10.0.0.20" form.
func ParseRange(s string) (rangeset.Range[netip.Addr], error) {
	ipRange, err := netipx.ParseIPRange(s)
	if err != nil {
		return rangeset.Range[netip.Addr]{}, err
	}
	return rangeset.MakeRange(ipRange.From(), ipRange.To()), nil
}

// RangeOfPrefix returns the range covering every address of p.
func RangeOfPrefix(p netip.Prefix) (rangeset.Range[netip.Addr], error) {
	ipRange := netipx.RangeOfPrefix(p)
	if !ipRange.IsValid() {
		return rangeset.Range[netip.Addr]{}, fmt.Errorf("invalid prefix %s", p)
	}
	return rangeset.MakeRange(ipRange.From(), ipRange.To()), nil
}

// IPRanges converts the stored ranges of s to netipx form.
func IPRanges(s *rangeset.Set[netip.Addr]) []netipx.IPRange {
	out := make([]netipx.IPRange, 0, s.Len())
	for _, r := range s.Ranges() {
		out = append(out, netipx.IPRangeFrom(r.From(), r.To()))
	}
	return out
}

// IPSet converts s to a netipx.IPSet.
func IPSet(s *rangeset.Set[netip.Addr]) (*netipx.IPSet, error) {
	var b netipx.IPSetBuilder
	for _, r := range s.Ranges() {
		b.AddRange(netipx.IPRangeFrom(r.From(), r.To()))
	}
	return b.IPSet()
}

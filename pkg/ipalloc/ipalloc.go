package ipalloc

import (
	"fmt"
	"net/netip"
	"sync"

	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/henderiw/rangeset/pkg/ipset"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
)

type IPAlloc interface {
	Get(addr string) (table.Route, error)
	Claim(addr string, d table.Route) error
	Release(addr string) error
	Update(addr string, d table.Route) error

	Count() int
	Has(addr string) bool

	IsFree(addr string) bool
	FindFree() (netip.Addr, error)
	FreeRanges() []netipx.IPRange

	GetAll() table.Routes
	GetByLabel(selector labels.Selector) table.Routes
}

func New(from, to netip.Addr) (IPAlloc, error) {
	r, err := ipset.RangeFrom(from, to)
	if err != nil {
		return nil, err
	}
	return &ipAlloc{
		m:       new(sync.RWMutex),
		ipRange: netipx.IPRangeFrom(from, to),
		free:    ipset.New(r),
		claims:  map[netip.Addr]table.Route{},
	}, nil
}

type ipAlloc struct {
	m       *sync.RWMutex
	ipRange netipx.IPRange
	// free holds the unclaimed part of ipRange as a normalized range
	// set.
	free   *rangeset.Set[netip.Addr]
	claims map[netip.Addr]table.Route
}

func (r *ipAlloc) Get(addr string) (table.Route, error) {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return table.Route{}, err
	}
	r.m.RLock()
	defer r.m.RUnlock()

	route, ok := r.claims[claimIP]
	if !ok {
		return table.Route{}, fmt.Errorf("no match found for: %v", addr)
	}
	return route, nil
}

func (r *ipAlloc) Claim(addr string, d table.Route) error {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	r.m.Lock()
	defer r.m.Unlock()

	if !r.free.Has(claimIP) {
		return fmt.Errorf("claim failed ip %s already claimed", addr)
	}
	r.free.Remove(ipset.RangeOfAddr(claimIP))
	r.claims[claimIP] = d
	return nil
}

func (r *ipAlloc) Release(addr string) error {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	r.m.Lock()
	defer r.m.Unlock()

	if _, ok := r.claims[claimIP]; !ok {
		return fmt.Errorf("release failed ip %s not claimed", addr)
	}
	delete(r.claims, claimIP)
	r.free.Add(ipset.RangeOfAddr(claimIP))
	return nil
}

func (r *ipAlloc) Update(addr string, d table.Route) error {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	r.m.Lock()
	defer r.m.Unlock()

	if _, ok := r.claims[claimIP]; !ok {
		return fmt.Errorf("update failed ip %s not claimed", addr)
	}
	r.claims[claimIP] = d
	return nil
}

func (r *ipAlloc) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.claims)
}

func (r *ipAlloc) Has(addr string) bool {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	r.m.RLock()
	defer r.m.RUnlock()

	_, ok := r.claims[claimIP]
	return ok
}

func (r *ipAlloc) IsFree(addr string) bool {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	r.m.RLock()
	defer r.m.RUnlock()

	return r.free.Has(claimIP)
}

func (r *ipAlloc) FindFree() (netip.Addr, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	if r.free.IsEmpty() {
		return netip.Addr{}, fmt.Errorf("no free entry found")
	}
	return r.free.Ranges()[0].From(), nil
}

func (r *ipAlloc) FreeRanges() []netipx.IPRange {
	r.m.RLock()
	defer r.m.RUnlock()

	return ipset.IPRanges(r.free)
}

func (r *ipAlloc) GetAll() table.Routes {
	r.m.RLock()
	defer r.m.RUnlock()

	var routes table.Routes
	for _, route := range r.claims {
		routes = append(routes, route)
	}
	return routes
}

func (r *ipAlloc) GetByLabel(selector labels.Selector) table.Routes {
	r.m.RLock()
	defer r.m.RUnlock()

	var routes table.Routes
	for _, route := range r.claims {
		if selector.Matches(route.Labels()) {
			routes = append(routes, route)
		}
	}
	return routes
}

func (r *ipAlloc) validateIP(addr string) (netip.Addr, error) {
	claimIP, err := netip.ParseAddr(addr)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("ip address %s is invalid", addr)
	}
	if !r.ipRange.Contains(claimIP) {
		return netip.Addr{}, fmt.Errorf("ip address %s, does not fit in the range from %s to %s", addr, r.ipRange.From().String(), r.ipRange.To().String())
	}
	return claimIP, nil
}

package vlanset

import (
	"fmt"
	"sync"

	"github.com/henderiw/rangeset/pkg/rangeset"
	"github.com/henderiw/rangeset/pkg/rangeset/id16"
	"k8s.io/apimachinery/pkg/labels"
)

type VLANSet interface {
	Claim(id uint16, d labels.Set) error
	ClaimRange(s string, d labels.Set) error
	ClaimFree(d labels.Set) (uint16, error)
	Release(id uint16) error
	ReleaseRange(s string) error

	Count() int
	Has(id uint16) bool

	IsFree(id uint16) bool
	FindFree() (uint16, error)
	FreeRanges() []rangeset.Range[uint16]

	GetAll() map[uint16]labels.Set
	GetByLabel(selector labels.Selector) map[uint16]labels.Set
}

func New() (VLANSet, error) {
	// VLAN 0 is untagged, 1 is the default VLAN and 4095 is reserved,
	// so the claimable space is 2-4094.
	usable, err := id16.RangeFrom(2, 4094)
	if err != nil {
		return nil, err
	}
	return &vlanSet{
		m:       new(sync.RWMutex),
		free:    id16.New(usable),
		claimed: map[uint16]labels.Set{},
	}, nil
}

type vlanSet struct {
	m *sync.RWMutex
	// free holds the unclaimed part of the usable VLAN space as a
	// normalized range set.
	free    *rangeset.Set[uint16]
	claimed map[uint16]labels.Set
}

func (r *vlanSet) validate(id uint16) error {
	switch id {
	case 0:
		return fmt.Errorf("VLAN %d is the untagged VLAN, cannot be claimed", id)
	case 1:
		return fmt.Errorf("VLAN %d is the default VLAN, cannot be claimed", id)
	}
	if id >= 4095 {
		return fmt.Errorf("VLAN %d is reserved, cannot be claimed", id)
	}
	return nil
}

func (r *vlanSet) Claim(id uint16, d labels.Set) error {
	if err := r.validate(id); err != nil {
		return err
	}
	r.m.Lock()
	defer r.m.Unlock()

	if !r.free.Has(id) {
		return fmt.Errorf("id %d is already claimed", id)
	}
	r.free.Remove(id16.RangeOfID(id))
	r.claimed[id] = d
	return nil
}

func (r *vlanSet) ClaimRange(s string, d labels.Set) error {
	vrange, err := id16.ParseRange(s)
	if err != nil {
		return err
	}
	if err := r.validate(vrange.From()); err != nil {
		return err
	}
	if err := r.validate(vrange.To()); err != nil {
		return err
	}
	r.m.Lock()
	defer r.m.Unlock()

	// The claim must fit a single free range, otherwise part of it is
	// already in use.
	if !r.free.Contains(vrange) {
		return fmt.Errorf("range %s is not entirely free", s)
	}
	r.free.Remove(vrange)
	for id := vrange.From(); ; id++ {
		r.claimed[id] = d
		if id == vrange.To() {
			break
		}
	}
	return nil
}

func (r *vlanSet) ClaimFree(d labels.Set) (uint16, error) {
	r.m.Lock()
	defer r.m.Unlock()

	if r.free.IsEmpty() {
		return 0, fmt.Errorf("no free entry found")
	}
	id := r.free.Ranges()[0].From()
	r.free.Remove(id16.RangeOfID(id))
	r.claimed[id] = d
	return id, nil
}

func (r *vlanSet) Release(id uint16) error {
	if err := r.validate(id); err != nil {
		return err
	}
	r.m.Lock()
	defer r.m.Unlock()

	if _, ok := r.claimed[id]; !ok {
		return fmt.Errorf("id %d is not claimed", id)
	}
	delete(r.claimed, id)
	r.free.Add(id16.RangeOfID(id))
	return nil
}

func (r *vlanSet) ReleaseRange(s string) error {
	vrange, err := id16.ParseRange(s)
	if err != nil {
		return err
	}
	if err := r.validate(vrange.From()); err != nil {
		return err
	}
	if err := r.validate(vrange.To()); err != nil {
		return err
	}
	r.m.Lock()
	defer r.m.Unlock()

	for id := vrange.From(); ; id++ {
		if _, ok := r.claimed[id]; ok {
			delete(r.claimed, id)
			r.free.Add(id16.RangeOfID(id))
		}
		if id == vrange.To() {
			break
		}
	}
	return nil
}

func (r *vlanSet) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.claimed)
}

func (r *vlanSet) Has(id uint16) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	_, ok := r.claimed[id]
	return ok
}

func (r *vlanSet) IsFree(id uint16) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.free.Has(id)
}

func (r *vlanSet) FindFree() (uint16, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	if r.free.IsEmpty() {
		return 0, fmt.Errorf("no free entry found")
	}
	return r.free.Ranges()[0].From(), nil
}

func (r *vlanSet) FreeRanges() []rangeset.Range[uint16] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.free.Ranges()
}

func (r *vlanSet) GetAll() map[uint16]labels.Set {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := make(map[uint16]labels.Set, len(r.claimed))
	for id, d := range r.claimed {
		entries[id] = d
	}
	return entries
}

func (r *vlanSet) GetByLabel(selector labels.Selector) map[uint16]labels.Set {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := map[uint16]labels.Set{}
	for id, d := range r.claimed {
		if selector.Matches(d) {
			entries[id] = d
		}
	}
	return entries
}

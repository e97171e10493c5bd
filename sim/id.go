package sim

import (
	"errors"
	"fmt"

	"github.com/kamstrup/intmap"
)

// ErrIdCollision is returned when two different names hash to the same Id.
var ErrIdCollision = errors.New("id collision")

// Id identifies a named object in a simulation
type Id uint32

// NewId hashes name into an Id
func NewId(name string) Id {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for i := 0; i < len(name); i++ {
		h ^= uint32(name[i])
		h *= prime
	}

	return Id(h)
}

// Index maps names to table slots.
type Index struct {
	slots *intmap.Map[Id, int]
	names map[Id]string
}

// NewIndex creates an index sized for capacity entries.
func NewIndex(capacity int) *Index {
	return &Index{
		slots: intmap.New[Id, int](capacity),
		names: make(map[Id]string, capacity),
	}
}

// Put records slot under name. Re-putting a name moves it to the new slot;
// a different name with the same Id is rejected.
func (x *Index) Put(name string, slot int) (Id, error) {
	id := NewId(name)
	if existing, ok := x.names[id]; ok && existing != name {
		return 0, fmt.Errorf("%w: %q and %q", ErrIdCollision, existing, name)
	}

	x.slots.Put(id, slot)
	x.names[id] = name
	return id, nil
}

// Lookup returns the slot stored under name. A name that only shares its Id
// with a registered name is not found.
func (x *Index) Lookup(name string) (int, bool) {
	id := NewId(name)
	if x.names[id] != name {
		return 0, false
	}
	return x.Slot(id)
}

// Slot returns the slot stored under id.
func (x *Index) Slot(id Id) (int, bool) {
	return x.slots.Get(id)
}

// Name returns the name an id was registered with.
func (x *Index) Name(id Id) (string, bool) {
	name, ok := x.names[id]
	return name, ok
}

// Len returns the number of indexed names.
func (x *Index) Len() int {
	return x.slots.Len()
}

package sim

import "iter"

const (
	tableBlockSize = 64
)

// Table is an append-only store of T kept in fixed-size blocks. Slots are
// assigned in append order and never move, so pointers returned by At stay
// valid for the lifetime of the table.
type Table[T any] struct {
	blocks []*[tableBlockSize]T
	length int
}

// NewTable creates a table with room for capacity items before it grows.
func NewTable[T any](capacity int) *Table[T] {
	t := &Table[T]{}
	for range (capacity + tableBlockSize - 1) / tableBlockSize {
		t.blocks = append(t.blocks, new([tableBlockSize]T))
	}
	return t
}

// Append stores item and returns its slot.
func (t *Table[T]) Append(item T) int {
	slot := t.length
	blockIdx := slot / tableBlockSize
	slotIdx := slot % tableBlockSize

	if blockIdx >= len(t.blocks) {
		t.blocks = append(t.blocks, new([tableBlockSize]T))
	}

	t.blocks[blockIdx][slotIdx] = item
	t.length++
	return slot
}

// At returns a pointer to the item in slot, or nil if the slot is unused.
func (t *Table[T]) At(slot int) *T {
	if slot < 0 || slot >= t.length {
		return nil
	}
	return &t.blocks[slot/tableBlockSize][slot%tableBlockSize]
}

// Len returns the number of stored items.
func (t *Table[T]) Len() int {
	return t.length
}

// All returns an iterator over slots and item pointers in slot order.
func (t *Table[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < t.length; i++ {
			if !yield(i, &t.blocks[i/tableBlockSize][i%tableBlockSize]) {
				return
			}
		}
	}
}

package grid

import (
	"iter"
	"time"
)

// Slot is one quantum-aligned grid row. Rows are numbered from 1.
type Slot struct {
	Time time.Time
	Row  int
}

// Slots yields one slot per quantum from d.Start (inclusive) up to d.End
// (exclusive), numbered 1, 2, 3, ... The sequence can be ranged over any
// number of times.
func Slots(d Domain, quantum time.Duration) iter.Seq[Slot] {
	n := SlotCount(d, quantum)
	return func(yield func(Slot) bool) {
		for i := 0; i < n; i++ {
			if !yield(Slot{Time: d.Start.Add(time.Duration(i) * quantum), Row: i + 1}) {
				return
			}
		}
	}
}

// SlotCount returns the number of slots in d, (End - Start) / quantum.
func SlotCount(d Domain, quantum time.Duration) int {
	if quantum <= 0 || !d.End.After(d.Start) {
		return 0
	}
	return int(d.Duration() / quantum)
}

// HeaderRows returns the number of header rows above the first slot: one for
// venue names, plus one for room names when any venue has rooms.
func HeaderRows(hasAnyRooms bool) int {
	if hasAnyRooms {
		return 2
	}
	return 1
}

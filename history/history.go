// Package history keeps the bounded stack of completed service events.
// The most recent event sits on top. Once the ledger reaches capacity
// it rejects new events instead of evicting old ones.
package history

import (
	"hospital-triage/errors"
	"hospital-triage/models"
)

// Ledger is a fixed-capacity LIFO record of served patients.
type Ledger struct {
	records  []models.ServiceRecord
	capacity int
}

// New returns an empty ledger that holds at most capacity events.
func New(capacity int) (*Ledger, error) {
	if capacity < 1 {
		return nil, errors.ErrInvalidCapacity
	}
	return &Ledger{
		records:  make([]models.ServiceRecord, 0, capacity),
		capacity: capacity,
	}, nil
}

// Push records a service event and reports whether it was accepted.
// A full ledger rejects the event and remains unchanged.
func (l *Ledger) Push(r models.ServiceRecord) bool {
	if len(l.records) >= l.capacity {
		return false
	}
	l.records = append(l.records, r)
	return true
}

// Pop removes and returns the most recent event. The second return is
// false when the ledger is empty.
func (l *Ledger) Pop() (models.ServiceRecord, bool) {
	if len(l.records) == 0 {
		return models.ServiceRecord{}, false
	}
	top := l.records[len(l.records)-1]
	l.records = l.records[:len(l.records)-1]
	return top, true
}

// Peek returns the most recent event without removing it.
func (l *Ledger) Peek() (models.ServiceRecord, bool) {
	if len(l.records) == 0 {
		return models.ServiceRecord{}, false
	}
	return l.records[len(l.records)-1], true
}

// Snapshot returns the recorded events newest first. The slice is a
// fresh copy on every call.
func (l *Ledger) Snapshot() []models.ServiceRecord {
	out := make([]models.ServiceRecord, 0, len(l.records))
	for i := len(l.records) - 1; i >= 0; i-- {
		out = append(out, l.records[i])
	}
	return out
}

// Len reports the number of recorded events.
func (l *Ledger) Len() int { return len(l.records) }

// Capacity reports the maximum number of events the ledger accepts.
func (l *Ledger) Capacity() int { return l.capacity }

// IsFull reports whether the ledger rejects further events.
func (l *Ledger) IsFull() bool { return len(l.records) >= l.capacity }

// IsEmpty reports whether no events are recorded.
func (l *Ledger) IsEmpty() bool { return len(l.records) == 0 }

// Package waitlist implements the first-come-first-served waiting line: a
// doubly linked sequence with an optional fixed capacity. Front is the
// earliest arrival, rear the latest. It never shares storage with the
// priority queue; comparison views rebuild it from snapshots.
package waitlist

import (
	"container/list"

	"hospital-triage/errors"
	"hospital-triage/models"
)

// FIFO is an arrival-ordered wait list. The zero value is not usable; use
// New or NewBounded.
type FIFO struct {
	patients *list.List
	capacity int // 0 means unbounded
}

// New returns an unbounded wait list.
func New() *FIFO {
	return &FIFO{patients: list.New()}
}

// NewBounded returns a wait list that rejects arrivals beyond capacity.
func NewBounded(capacity int) (*FIFO, error) {
	if capacity < 1 {
		return nil, errors.ErrInvalidCapacity
	}
	return &FIFO{patients: list.New(), capacity: capacity}, nil
}

// Arrive appends the patient at the rear. It reports false and leaves the
// list unchanged when the list is full.
func (f *FIFO) Arrive(p models.PatientRecord) bool {
	if f.IsFull() {
		return false
	}
	f.patients.PushBack(p)
	return true
}

// ServeNext removes and returns the front patient. The second result is
// false when the list is empty.
func (f *FIFO) ServeNext() (models.PatientRecord, bool) {
	front := f.patients.Front()
	if front == nil {
		return models.PatientRecord{}, false
	}
	f.patients.Remove(front)
	return front.Value.(models.PatientRecord), true
}

// Front returns the earliest arrival without removing it.
func (f *FIFO) Front() (models.PatientRecord, bool) {
	front := f.patients.Front()
	if front == nil {
		return models.PatientRecord{}, false
	}
	return front.Value.(models.PatientRecord), true
}

// Rear returns the latest arrival without removing it.
func (f *FIFO) Rear() (models.PatientRecord, bool) {
	rear := f.patients.Back()
	if rear == nil {
		return models.PatientRecord{}, false
	}
	return rear.Value.(models.PatientRecord), true
}

// Forward returns the waiting patients front to rear. The slice is built
// fresh on every call.
func (f *FIFO) Forward() []models.PatientRecord {
	out := make([]models.PatientRecord, 0, f.patients.Len())
	for e := f.patients.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(models.PatientRecord))
	}
	return out
}

// Backward returns the waiting patients rear to front.
func (f *FIFO) Backward() []models.PatientRecord {
	out := make([]models.PatientRecord, 0, f.patients.Len())
	for e := f.patients.Back(); e != nil; e = e.Prev() {
		out = append(out, e.Value.(models.PatientRecord))
	}
	return out
}

// Len returns the number of waiting patients.
func (f *FIFO) Len() int {
	return f.patients.Len()
}

// Capacity returns the maximum length, 0 when unbounded.
func (f *FIFO) Capacity() int {
	return f.capacity
}

// IsFull reports whether another arrival would be rejected.
func (f *FIFO) IsFull() bool {
	return f.capacity > 0 && f.patients.Len() >= f.capacity
}

// IsEmpty reports whether the list has no waiting patients.
func (f *FIFO) IsEmpty() bool {
	return f.patients.Len() == 0
}

// Package priorityq implements the severity-ordered wait structure used
// for triage admission. Patients with higher severity are served first;
// ties fall back to arrival time, then to admission sequence, so the
// order of equally urgent arrivals is stable.
package priorityq

import (
	"container/heap"
	"sort"

	"hospital-triage/models"
)

// entry is a heap element. The severity and arrival fields are the
// ordering key, copied from the record at admission or refreshed by
// UpdateSeverity; the record itself is shared with the caller.
type entry struct {
	patient  *models.PatientRecord
	severity int
	arrival  int
	seq      uint64
	index    int
}

type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].severity != h[j].severity {
		return h[i].severity > h[j].severity
	}
	if h[i].arrival != h[j].arrival {
		return h[i].arrival < h[j].arrival
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Queue is the priority wait structure. The zero value is not usable;
// construct with New.
type Queue struct {
	entries entryHeap
	seq     uint64
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{entries: make(entryHeap, 0)}
}

// Arrive admits a patient. The queue keeps the pointer, so severity
// changes made through UpdateSeverity are visible to the caller.
func (q *Queue) Arrive(p *models.PatientRecord) {
	q.seq++
	heap.Push(&q.entries, &entry{
		patient:  p,
		severity: p.Severity,
		arrival:  p.Arrival,
		seq:      q.seq,
	})
}

// ServeNext removes and returns the most urgent patient. The second
// return is false when the queue is empty.
func (q *Queue) ServeNext() (*models.PatientRecord, bool) {
	if q.entries.Len() == 0 {
		return nil, false
	}
	e := heap.Pop(&q.entries).(*entry)
	return e.patient, true
}

// Peek returns the most urgent patient without removing it.
func (q *Queue) Peek() (*models.PatientRecord, bool) {
	if q.entries.Len() == 0 {
		return nil, false
	}
	return q.entries[0].patient, true
}

// UpdateSeverity finds the patient by ID, rewrites both the record and
// the ordering key, and restores heap order. It reports whether the ID
// was present.
func (q *Queue) UpdateSeverity(id, severity int) bool {
	for _, e := range q.entries {
		if e.patient.ID == id {
			e.patient.Severity = severity
			e.severity = severity
			heap.Fix(&q.entries, e.index)
			return true
		}
	}
	return false
}

// RemoveByID takes the patient out of the queue regardless of position.
func (q *Queue) RemoveByID(id int) (*models.PatientRecord, bool) {
	for _, e := range q.entries {
		if e.patient.ID == id {
			removed := heap.Remove(&q.entries, e.index).(*entry)
			return removed.patient, true
		}
	}
	return nil, false
}

// InPriorityOrder returns value copies of the waiting patients in serve
// order. The queue itself is not modified; the drain runs on scratch
// copies of the heap entries.
func (q *Queue) InPriorityOrder() []models.PatientRecord {
	scratch := make(entryHeap, len(q.entries))
	for i, e := range q.entries {
		c := *e
		scratch[i] = &c
	}
	out := make([]models.PatientRecord, 0, len(scratch))
	for scratch.Len() > 0 {
		e := heap.Pop(&scratch).(*entry)
		out = append(out, *e.patient)
	}
	return out
}

// InArrivalOrder returns value copies of the waiting patients sorted by
// arrival time, earliest first.
func (q *Queue) InArrivalOrder() []models.PatientRecord {
	entries := make([]*entry, len(q.entries))
	copy(entries, q.entries)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].arrival != entries[j].arrival {
			return entries[i].arrival < entries[j].arrival
		}
		return entries[i].seq < entries[j].seq
	})
	out := make([]models.PatientRecord, len(entries))
	for i, e := range entries {
		out[i] = *e.patient
	}
	return out
}

// Len reports the number of waiting patients.
func (q *Queue) Len() int { return q.entries.Len() }

// IsEmpty reports whether no patients are waiting.
func (q *Queue) IsEmpty() bool { return q.entries.Len() == 0 }

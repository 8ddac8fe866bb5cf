package history_test

import (
	"testing"
	"time"

	"hospital-triage/errors"
	"hospital-triage/history"
	"hospital-triage/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func record(patientID int, resource string) models.ServiceRecord {
	return models.ServiceRecord{
		EventID: uuid.New(),
		Patient: models.PatientRecord{
			ID:       patientID,
			Name:     "Patient",
			Severity: 3,
			Arrival:  patientID,
		},
		Resource: resource,
		ServedAt: time.Date(2026, 8, 22, 9, 0, patientID, 0, time.UTC),
		Recorded: true,
	}
}

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -5} {
		l, err := history.New(capacity)
		assert.Nil(t, l)
		assert.ErrorIs(t, err, errors.ErrInvalidCapacity)
	}
}

func TestPushRejectsWhenFull(t *testing.T) {
	l, err := history.New(2)
	assert.NoError(t, err)

	assert.True(t, l.Push(record(1, "Dr. Adams")))
	assert.True(t, l.Push(record(2, "Dr. Brown")))
	assert.True(t, l.IsFull())

	// The third event is dropped, not an old one.
	assert.False(t, l.Push(record(3, "Dr. Chen")))
	assert.Equal(t, 2, l.Len())

	top, ok := l.Peek()
	assert.True(t, ok)
	assert.Equal(t, 2, top.Patient.ID, "newest accepted event stays on top")
}

func TestPopIsLIFO(t *testing.T) {
	l, err := history.New(3)
	assert.NoError(t, err)

	l.Push(record(1, "Dr. Adams"))
	l.Push(record(2, "Dr. Brown"))
	l.Push(record(3, "Dr. Chen"))

	for _, wantID := range []int{3, 2, 1} {
		got, ok := l.Pop()
		assert.True(t, ok)
		assert.Equal(t, wantID, got.Patient.ID)
	}

	_, ok := l.Pop()
	assert.False(t, ok)
	assert.True(t, l.IsEmpty())
}

func TestPeekDoesNotConsume(t *testing.T) {
	l, err := history.New(2)
	assert.NoError(t, err)

	_, ok := l.Peek()
	assert.False(t, ok)

	l.Push(record(1, "Dr. Adams"))
	top, ok := l.Peek()
	assert.True(t, ok)
	assert.Equal(t, 1, top.Patient.ID)
	assert.Equal(t, 1, l.Len())
}

func TestSnapshotNewestFirst(t *testing.T) {
	l, err := history.New(5)
	assert.NoError(t, err)

	l.Push(record(1, "Dr. Adams"))
	l.Push(record(2, "Dr. Brown"))
	l.Push(record(3, "Dr. Chen"))

	snap := l.Snapshot()
	assert.Len(t, snap, 3)
	assert.Equal(t, 3, snap[0].Patient.ID)
	assert.Equal(t, 2, snap[1].Patient.ID)
	assert.Equal(t, 1, snap[2].Patient.ID)

	// Snapshots are copies; the ledger is untouched.
	snap[0].Patient.ID = 99
	assert.Equal(t, 3, l.Len())
	top, _ := l.Peek()
	assert.Equal(t, 3, top.Patient.ID)
}

func TestPushAfterPopReopensCapacity(t *testing.T) {
	l, err := history.New(1)
	assert.NoError(t, err)

	assert.True(t, l.Push(record(1, "Dr. Adams")))
	assert.False(t, l.Push(record(2, "Dr. Brown")))

	_, ok := l.Pop()
	assert.True(t, ok)
	assert.True(t, l.Push(record(2, "Dr. Brown")))

	top, _ := l.Peek()
	assert.Equal(t, 2, top.Patient.ID)
}

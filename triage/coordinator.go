// Package triage coordinates the emergency waiting room. It keeps the
// severity-ordered wait queue and the patient ID index in step, assigns
// resources round robin, and records completed service in the history
// ledger.
package triage

import (
	"strconv"
	"time"

	"hospital-triage/history"
	"hospital-triage/index"
	"hospital-triage/metrics"
	"hospital-triage/models"
	"hospital-triage/priorityq"
	"hospital-triage/roster"
	"hospital-triage/waitlist"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Coordinator owns the wait structures. Admissions go into both the
// priority queue and the ID index; both hold the same record, so a
// severity change through one side is visible to the other.
type Coordinator struct {
	queue    *priorityq.Queue
	index    *index.Tree
	rotation *roster.Rotation
	ledger   *history.Ledger
	arrivals int
	log      zerolog.Logger
}

// New builds a coordinator over the given rotation and ledger.
func New(rotation *roster.Rotation, ledger *history.Ledger, logger zerolog.Logger) *Coordinator {
	metrics.ResourcesOnShift.Set(float64(rotation.Len()))
	metrics.HistoryLedgerSize.Set(float64(ledger.Len()))
	return &Coordinator{
		queue:    priorityq.New(),
		index:    index.New(),
		rotation: rotation,
		ledger:   ledger,
		log:      logger,
	}
}

// Admit registers a new patient, stamps the arrival order, and places
// the record in both wait structures. It returns a copy of the stored
// record.
func (c *Coordinator) Admit(id int, name string, severity int) models.PatientRecord {
	c.arrivals++
	p := &models.PatientRecord{
		ID:       id,
		Name:     name,
		Severity: severity,
		Arrival:  c.arrivals,
	}
	c.queue.Arrive(p)
	c.index.Insert(p)

	metrics.PatientsAdmittedTotal.Inc()
	metrics.AdmissionsBySeverity.WithLabelValues(strconv.Itoa(severity)).Inc()
	metrics.PatientsWaiting.Set(float64(c.queue.Len()))

	c.log.Info().
		Int("patient_id", id).
		Str("name", name).
		Int("severity", severity).
		Int("arrival", c.arrivals).
		Msg("patient admitted")
	return *p
}

// UpdateSeverity changes a waiting patient's severity. The update is
// attempted in both structures and succeeds if either one finds the ID.
func (c *Coordinator) UpdateSeverity(id, severity int) bool {
	inQueue := c.queue.UpdateSeverity(id, severity)
	inIndex := c.index.UpdateSeverity(id, severity)

	if !inQueue && !inIndex {
		metrics.UpdatesUnmatchedTotal.Inc()
		c.log.Warn().
			Int("patient_id", id).
			Int("severity", severity).
			Msg("severity update matched no waiting patient")
		return false
	}
	if inQueue != inIndex {
		c.log.Warn().
			Int("patient_id", id).
			Bool("in_queue", inQueue).
			Bool("in_index", inIndex).
			Msg("wait structures disagree on patient")
	}

	metrics.SeverityUpdatesTotal.Inc()
	c.log.Info().
		Int("patient_id", id).
		Int("severity", severity).
		Msg("severity updated")
	return true
}

// Serve takes the most urgent patient, assigns the next resource in the
// rotation, and records the service event. The second return is false
// when nobody is waiting. A full history ledger does not block service;
// the returned record carries Recorded=false in that case.
func (c *Coordinator) Serve() (models.ServiceRecord, bool) {
	p, ok := c.queue.ServeNext()
	if !ok {
		return models.ServiceRecord{}, false
	}
	if !c.index.DeleteByID(p.ID) {
		c.log.Warn().
			Int("patient_id", p.ID).
			Msg("served patient was missing from the identifier index")
	}

	resource := c.rotation.Next()
	record := models.ServiceRecord{
		EventID:  uuid.New(),
		Patient:  *p,
		Resource: resource,
		ServedAt: time.Now(),
		Recorded: true,
	}
	if !c.ledger.Push(record) {
		record.Recorded = false
		metrics.HistoryRejectionsTotal.Inc()
		c.log.Warn().
			Int("patient_id", p.ID).
			Str("resource", resource).
			Int("capacity", c.ledger.Capacity()).
			Msg("history ledger full, service event not recorded")
	}

	metrics.PatientsServedTotal.Inc()
	metrics.ServedByResource.WithLabelValues(resource).Inc()
	metrics.PatientsWaiting.Set(float64(c.queue.Len()))
	metrics.HistoryLedgerSize.Set(float64(c.ledger.Len()))

	c.log.Info().
		Int("patient_id", p.ID).
		Str("name", p.Name).
		Int("severity", p.Severity).
		Str("resource", resource).
		Bool("recorded", record.Recorded).
		Msg("patient served")
	return record, true
}

// Remove takes a patient out of the waiting room without serving them.
// Like UpdateSeverity it succeeds if either structure held the ID.
func (c *Coordinator) Remove(id int) bool {
	_, inQueue := c.queue.RemoveByID(id)
	inIndex := c.index.DeleteByID(id)

	if !inQueue && !inIndex {
		c.log.Warn().
			Int("patient_id", id).
			Msg("removal matched no waiting patient")
		return false
	}
	if inQueue != inIndex {
		c.log.Warn().
			Int("patient_id", id).
			Bool("in_queue", inQueue).
			Bool("in_index", inIndex).
			Msg("wait structures disagree on patient")
	}

	metrics.RemovalsTotal.Inc()
	metrics.PatientsWaiting.Set(float64(c.queue.Len()))
	c.log.Info().Int("patient_id", id).Msg("patient removed without service")
	return true
}

// Compare renders the current waiting room both ways, by arrival time
// and by serve priority, without consuming anything. The arrival view
// is a first-come line rebuilt from snapshots; it never shares storage
// with the live queue.
func (c *Coordinator) Compare() models.Comparison {
	line := waitlist.New()
	for _, p := range c.queue.InArrivalOrder() {
		line.Arrive(p)
	}
	return models.Comparison{
		ArrivalOrder:  line.Forward(),
		PriorityOrder: c.queue.InPriorityOrder(),
	}
}

// Waiting returns the patients still in the queue in serve order.
func (c *Coordinator) Waiting() []models.PatientRecord {
	return c.queue.InPriorityOrder()
}

// InOrder walks the identifier index in ascending ID order.
func (c *Coordinator) InOrder() []models.PatientRecord { return c.index.InOrder() }

// PreOrder walks the identifier index root first.
func (c *Coordinator) PreOrder() []models.PatientRecord { return c.index.PreOrder() }

// PostOrder walks the identifier index children first.
func (c *Coordinator) PostOrder() []models.PatientRecord { return c.index.PostOrder() }

// History returns the recorded service events, newest first.
func (c *Coordinator) History() []models.ServiceRecord { return c.ledger.Snapshot() }

// PeekHistory returns the most recent service event without removing it.
func (c *Coordinator) PeekHistory() (models.ServiceRecord, bool) { return c.ledger.Peek() }

// PopHistory removes and returns the most recent service event.
func (c *Coordinator) PopHistory() (models.ServiceRecord, bool) {
	record, ok := c.ledger.Pop()
	if ok {
		metrics.HistoryLedgerSize.Set(float64(c.ledger.Len()))
	}
	return record, ok
}

// Len reports the number of waiting patients.
func (c *Coordinator) Len() int { return c.queue.Len() }

// IsEmpty reports whether the waiting room is empty.
func (c *Coordinator) IsEmpty() bool { return c.queue.IsEmpty() }

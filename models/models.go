package models

import (
	"time"

	"github.com/google/uuid"
)

// Severity bounds for a triage assessment. 1 is the lowest acuity, 5 is
// critical. Values outside this range are rejected at the input boundary;
// the engine itself trusts its callers.
const (
	MinSeverity = 1
	MaxSeverity = 5
)

// PatientRecord is the waiting-room entry shared by every structure in the
// engine. The priority queue and the identifier index reference one logical
// record per admitted patient; snapshots hand out value copies.
type PatientRecord struct {
	ID       int
	Name     string
	Severity int // MinSeverity..MaxSeverity, mutable until served
	Arrival  int // admission sequence number, immutable
}

// ServiceRecord captures one completed service event.
type ServiceRecord struct {
	EventID  uuid.UUID
	Patient  PatientRecord
	Resource string // doctor assigned by the rotation
	ServedAt time.Time
	// Recorded is false when the history ledger was full and rejected the
	// entry; the service itself still happened.
	Recorded bool
}

// Action identifies one scripted engine operation.
type Action string

const (
	ActionAdmit       Action = "admit"
	ActionUpdate      Action = "update"
	ActionServe       Action = "serve"
	ActionRemove      Action = "remove"
	ActionCompare     Action = "compare"
	ActionHistory     Action = "history"
	ActionPopHistory  Action = "pop-history"
	ActionPeekHistory Action = "peek-history"
	ActionInOrder     Action = "inorder"
	ActionPreOrder    Action = "preorder"
	ActionPostOrder   Action = "postorder"
)

// Operation is one parsed line of an operation script. Only the fields
// relevant to the Action are populated.
type Operation struct {
	Action   Action
	Name     string
	Severity int
	// PatientID is the target identifier for admit, update and remove.
	PatientID int
}

// Comparison holds the same waiting population rendered under both service
// disciplines.
type Comparison struct {
	// ArrivalOrder lists patients first-come-first-served.
	ArrivalOrder []PatientRecord
	// PriorityOrder lists patients by severity, earliest arrival first
	// among equals.
	PriorityOrder []PatientRecord
}

// StepResult is the outcome of a single scripted operation.
type StepResult struct {
	Step   int
	Action Action
	// Patient is set for admit.
	Patient *PatientRecord
	// Service is set for serve, pop-history and peek-history.
	Service *ServiceRecord
	// Found reports whether update/remove located the identifier.
	Found bool
	// Empty reports an empty-structure outcome (nothing to serve, compare,
	// pop or peek). Normal result, not an error.
	Empty      bool
	Comparison *Comparison
	// Patients carries traversal listings (inorder/preorder/postorder).
	Patients []PatientRecord
	// Services carries history listings.
	Services []ServiceRecord
}

// Report is the full outcome of one scripted run.
type Report struct {
	Steps    []StepResult
	Admitted int
	Served   int
	// Waiting is the final waiting population in priority order.
	Waiting []PatientRecord
	// History is the final ledger content, newest first.
	History []ServiceRecord
}

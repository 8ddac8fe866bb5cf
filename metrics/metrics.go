// Package metrics provides Prometheus observability metrics for the triage
// coordinator. It includes Critical and Important metrics for business and
// operational visibility.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// CRITICAL METRICS - Business Impact Visibility
// =============================================================================

// PatientsWaiting tracks the number of patients currently admitted and
// not yet served. Sustained growth indicates under-staffing.
var PatientsWaiting = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "triage",
	Name:      "patients_waiting",
	Help:      "Number of patients currently waiting to be served",
})

// PatientsAdmittedTotal tracks total admissions into the waiting room.
var PatientsAdmittedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "triage",
	Name:      "patients_admitted_total",
	Help:      "Total number of patients admitted into triage",
})

// AdmissionsBySeverity tracks admissions broken down by severity level.
var AdmissionsBySeverity = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "triage",
	Name:      "admissions_by_severity_total",
	Help:      "Admissions broken down by severity level",
}, []string{"severity"})

// PatientsServedTotal tracks patients handed to a resource and taken
// out of the waiting room.
var PatientsServedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "triage",
	Name:      "patients_served_total",
	Help:      "Total number of patients served",
})

// ServedByResource tracks served patients broken down by the resource
// that took them.
var ServedByResource = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "triage",
	Name:      "served_by_resource_total",
	Help:      "Served patients broken down by assigned resource",
}, []string{"resource"})

// HistoryRejectionsTotal tracks service events the history ledger
// refused because it was full. Non-zero values mean lost records.
var HistoryRejectionsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "triage",
	Name:      "history_rejections_total",
	Help:      "Service events rejected because the history ledger was full",
})

// HistoryLedgerSize tracks the number of events currently held by the
// history ledger.
var HistoryLedgerSize = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "triage",
	Name:      "history_ledger_size",
	Help:      "Number of service events currently recorded in the ledger",
})

// ResourcesOnShift tracks the size of the resource rotation.
var ResourcesOnShift = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "triage",
	Name:      "resources_on_shift",
	Help:      "Number of resources in the service rotation",
})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// SeverityUpdatesTotal tracks severity changes applied to waiting patients.
var SeverityUpdatesTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "triage",
	Name:      "severity_updates_total",
	Help:      "Total severity updates applied to waiting patients",
})

// UpdatesUnmatchedTotal tracks severity updates whose patient ID was not
// found in either wait structure.
var UpdatesUnmatchedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "triage",
	Name:      "updates_unmatched_total",
	Help:      "Severity updates that did not match any waiting patient",
})

// RemovalsTotal tracks patients explicitly removed without being served.
var RemovalsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "triage",
	Name:      "removals_total",
	Help:      "Patients removed from the waiting room without service",
})

// ParserErrorsTotal tracks parse errors by error type.
var ParserErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "errors_total",
	Help:      "Total parse errors by error type",
}, []string{"error_type"})

// ParserRecordsTotal tracks total records successfully parsed.
var ParserRecordsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "records_total",
	Help:      "Total CSV operation records successfully parsed",
})

// ParserDurationSeconds tracks time to parse input files.
var ParserDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "parser",
	Name:      "duration_seconds",
	Help:      "Time taken to parse CSV input file",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// RunDurationSeconds tracks time to execute an operation script.
var RunDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "triage",
	Name:      "run_duration_seconds",
	Help:      "Time taken to execute a triage operation script",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// OperationsProcessed tracks number of operations per script run.
var OperationsProcessed = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "triage",
	Name:      "operations_processed",
	Help:      "Number of operations processed per script run",
	Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetTriageGauges resets all triage gauges before a new run.
// Call this at the start of a coordinator run.
func ResetTriageGauges() {
	PatientsWaiting.Set(0)
	ResourcesOnShift.Set(0)
	HistoryLedgerSize.Set(0)
}

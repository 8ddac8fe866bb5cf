package formatter_test

import (
	"strings"
	"testing"
	"time"

	"hospital-triage/formatter"
	"hospital-triage/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var (
	alice = models.PatientRecord{ID: 101, Name: "Alice Carter", Severity: 4, Arrival: 1}
	ben   = models.PatientRecord{ID: 102, Name: "Ben Ortiz", Severity: 2, Arrival: 2}

	aliceServed = models.ServiceRecord{
		EventID:  uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		Patient:  alice,
		Resource: "Dr. Adams",
		ServedAt: time.Date(2026, 8, 22, 9, 30, 0, 0, time.UTC),
		Recorded: true,
	}
)

// sampleReport is a small but complete run: two admissions, a compare,
// one serve, then the final state.
func sampleReport() *models.Report {
	return &models.Report{
		Steps: []models.StepResult{
			{Step: 1, Action: models.ActionAdmit, Patient: &alice},
			{Step: 2, Action: models.ActionAdmit, Patient: &ben},
			{Step: 3, Action: models.ActionCompare, Comparison: &models.Comparison{
				ArrivalOrder:  []models.PatientRecord{alice, ben},
				PriorityOrder: []models.PatientRecord{alice, ben},
			}},
			{Step: 4, Action: models.ActionServe, Service: &aliceServed},
		},
		Admitted: 2,
		Served:   1,
		Waiting:  []models.PatientRecord{ben},
		History:  []models.ServiceRecord{aliceServed},
	}
}

func TestFormatText(t *testing.T) {
	tests := map[string]struct {
		report   *models.Report
		contains []string
	}{
		"EmptyReport": {
			report: &models.Report{},
			contains: []string{
				"Summary : admitted=0 ; served=0 ; waiting=0 ; history=0",
				"Waiting : []",
				"History : []",
			},
		},
		"SimpleRun": {
			report: sampleReport(),
			contains: []string{
				"Step 01 : admit",
				"Alice Carter (id=101, severity=4, arrival=1)",
				"Step 03 : compare",
				"arrival=[101 102] priority=[101 102]",
				"Step 04 : serve",
				"Alice Carter (id=101, severity=4) -> Dr. Adams",
				"Summary : admitted=2 ; served=1 ; waiting=1 ; history=1",
				"Waiting : [Ben Ortiz (id=102, severity=2, arrival=2)]",
				"History : [Alice Carter (id=101, severity=4) -> Dr. Adams]",
			},
		},
		"OutcomeVariants": {
			report: &models.Report{
				Steps: []models.StepResult{
					{Step: 1, Action: models.ActionUpdate, Found: false},
					{Step: 2, Action: models.ActionServe, Empty: true},
					{Step: 3, Action: models.ActionInOrder, Patients: []models.PatientRecord{alice, ben}},
				},
			},
			contains: []string{
				"not-found",
				"empty",
				"patients=[101 102]",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			output := formatter.FormatText(tt.report)
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
		})
	}
}

func TestFormatJSON(t *testing.T) {
	tests := map[string]struct {
		report   *models.Report
		contains []string
	}{
		"EmptyReport": {
			report: &models.Report{},
			contains: []string{
				`"admitted": 0`,
				`"served": 0`,
			},
		},
		"SimpleRun": {
			report: sampleReport(),
			contains: []string{
				`"action": "admit"`,
				`"id": 101`,
				`"name": "Alice Carter"`,
				`"severity": 4`,
				`"resource": "Dr. Adams"`,
				`"served_at": "2026-08-22T09:30:00Z"`,
				`"recorded": true`,
				`"admitted": 2`,
				`"arrival_order"`,
				`"priority_order"`,
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			output := formatter.FormatJSON(tt.report)
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
		})
	}
}

func TestFormatCSV(t *testing.T) {
	tests := map[string]struct {
		report   *models.Report
		contains []string
	}{
		"EmptyReport": {
			report:   &models.Report{},
			contains: nil,
		},
		"SimpleRun": {
			report: sampleReport(),
			contains: []string{
				"1,admit,ok,101,Alice Carter,4,,",
				"3,compare,ok,,,,,arrival=[101 102] priority=[101 102]",
				"4,serve,ok,101,Alice Carter,4,Dr. Adams,",
			},
		},
		"NotFoundUpdate": {
			report: &models.Report{
				Steps: []models.StepResult{
					{Step: 1, Action: models.ActionUpdate, Found: false},
				},
			},
			contains: []string{
				"1,update,not-found,,,,,",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			output := formatter.FormatCSV(tt.report)
			lines := strings.Split(output, "\n")

			// Check header
			assert.Equal(t, "Step,Action,Outcome,Patient ID,Name,Severity,Resource,Details", lines[0])

			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
		})
	}
}

package triage

import (
	"hospital-triage/metrics"
	"hospital-triage/models"

	"github.com/prometheus/client_golang/prometheus"
)

// Run executes a parsed operation script against the coordinator and
// collects per-step outcomes plus the final waiting room and history
// state into a report.
func Run(c *Coordinator, ops []models.Operation) *models.Report {
	timer := prometheus.NewTimer(metrics.RunDurationSeconds)
	defer timer.ObserveDuration()
	metrics.OperationsProcessed.Observe(float64(len(ops)))

	report := &models.Report{
		Steps: make([]models.StepResult, 0, len(ops)),
	}

	for i, op := range ops {
		step := models.StepResult{Step: i + 1, Action: op.Action}

		switch op.Action {
		case models.ActionAdmit:
			p := c.Admit(op.PatientID, op.Name, op.Severity)
			step.Patient = &p
			report.Admitted++

		case models.ActionUpdate:
			step.Found = c.UpdateSeverity(op.PatientID, op.Severity)

		case models.ActionServe:
			record, ok := c.Serve()
			if ok {
				step.Service = &record
				report.Served++
			} else {
				step.Empty = true
			}

		case models.ActionRemove:
			step.Found = c.Remove(op.PatientID)

		case models.ActionCompare:
			cmp := c.Compare()
			step.Comparison = &cmp
			if len(cmp.ArrivalOrder) == 0 {
				step.Empty = true
			}

		case models.ActionHistory:
			step.Services = c.History()

		case models.ActionPopHistory:
			record, ok := c.PopHistory()
			if ok {
				step.Service = &record
			} else {
				step.Empty = true
			}

		case models.ActionPeekHistory:
			record, ok := c.PeekHistory()
			if ok {
				step.Service = &record
			} else {
				step.Empty = true
			}

		case models.ActionInOrder:
			step.Patients = c.InOrder()

		case models.ActionPreOrder:
			step.Patients = c.PreOrder()

		case models.ActionPostOrder:
			step.Patients = c.PostOrder()
		}

		report.Steps = append(report.Steps, step)
	}

	report.Waiting = c.Waiting()
	report.History = c.History()
	return report
}

package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hospital-triage/models"
)

// ReportData holds prepared run data used by all formatters
type ReportData struct {
	Steps    []StepData    `json:"steps"`
	Admitted int           `json:"admitted"`
	Served   int           `json:"served"`
	Waiting  []PatientData `json:"waiting"`
	History  []ServiceData `json:"history"`
}

// StepData is one scripted operation and its outcome
type StepData struct {
	Step          int           `json:"step"`
	Action        string        `json:"action"`
	Outcome       string        `json:"outcome"`
	Patient       *PatientData  `json:"patient,omitempty"`
	Service       *ServiceData  `json:"service,omitempty"`
	ArrivalOrder  []PatientData `json:"arrival_order,omitempty"`
	PriorityOrder []PatientData `json:"priority_order,omitempty"`
	Patients      []PatientData `json:"patients,omitempty"`
	Services      []ServiceData `json:"services,omitempty"`
}

// PatientData is the formatter view of a patient record
type PatientData struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Severity int    `json:"severity"`
	Arrival  int    `json:"arrival"`
}

// ServiceData is the formatter view of a service event
type ServiceData struct {
	EventID   string `json:"event_id"`
	PatientID int    `json:"patient_id"`
	Name      string `json:"name"`
	Severity  int    `json:"severity"`
	Resource  string `json:"resource"`
	ServedAt  string `json:"served_at"`
	Recorded  bool   `json:"recorded"`
}

// prepareReportData extracts and organizes run data for formatting
func prepareReportData(report *models.Report) *ReportData {
	data := &ReportData{
		Steps:    make([]StepData, 0, len(report.Steps)),
		Admitted: report.Admitted,
		Served:   report.Served,
		Waiting:  patientViews(report.Waiting),
		History:  serviceViews(report.History),
	}

	for _, step := range report.Steps {
		sd := StepData{
			Step:    step.Step,
			Action:  string(step.Action),
			Outcome: stepOutcome(step),
		}
		if step.Patient != nil {
			p := patientView(*step.Patient)
			sd.Patient = &p
		}
		if step.Service != nil {
			s := serviceView(*step.Service)
			sd.Service = &s
		}
		if step.Comparison != nil {
			sd.ArrivalOrder = patientViews(step.Comparison.ArrivalOrder)
			sd.PriorityOrder = patientViews(step.Comparison.PriorityOrder)
		}
		if step.Patients != nil {
			sd.Patients = patientViews(step.Patients)
		}
		if step.Services != nil {
			sd.Services = serviceViews(step.Services)
		}
		data.Steps = append(data.Steps, sd)
	}

	return data
}

// stepOutcome reduces a step to a one-word result for display.
func stepOutcome(step models.StepResult) string {
	switch {
	case step.Empty:
		return "empty"
	case step.Action == models.ActionUpdate || step.Action == models.ActionRemove:
		if step.Found {
			return "ok"
		}
		return "not-found"
	case step.Action == models.ActionServe && step.Service != nil && !step.Service.Recorded:
		return "unrecorded"
	default:
		return "ok"
	}
}

// FormatText returns the text representation of the run report
func FormatText(report *models.Report) string {
	data := prepareReportData(report)
	var sb strings.Builder

	for _, step := range data.Steps {
		sb.WriteString(formatStepLine(step))
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Summary : admitted=%d ; served=%d ; waiting=%d ; history=%d\n",
		data.Admitted, data.Served, len(data.Waiting), len(data.History)))
	sb.WriteString(fmt.Sprintf("Waiting : [%s]\n", strings.Join(patientParts(data.Waiting), ", ")))
	sb.WriteString(fmt.Sprintf("History : [%s]\n", strings.Join(serviceParts(data.History), ", ")))

	return sb.String()
}

// FormatJSON returns the JSON representation of the run report
func FormatJSON(report *models.Report) string {
	data := prepareReportData(report)
	jsonBytes, _ := json.MarshalIndent(data, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the run report
func FormatCSV(report *models.Report) string {
	data := prepareReportData(report)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	writer.Write([]string{
		"Step", "Action", "Outcome", "Patient ID", "Name", "Severity", "Resource", "Details",
	})

	for _, step := range data.Steps {
		writeStepToCSV(writer, step)
	}

	writer.Flush()
	return sb.String()
}

// writeStepToCSV writes a single step's data to CSV
func writeStepToCSV(writer *csv.Writer, step StepData) {
	row := []string{
		fmt.Sprintf("%d", step.Step),
		step.Action,
		step.Outcome,
	}

	switch {
	case step.Patient != nil:
		row = append(row,
			fmt.Sprintf("%d", step.Patient.ID),
			step.Patient.Name,
			fmt.Sprintf("%d", step.Patient.Severity),
			"", "",
		)
	case step.Service != nil:
		row = append(row,
			fmt.Sprintf("%d", step.Service.PatientID),
			step.Service.Name,
			fmt.Sprintf("%d", step.Service.Severity),
			step.Service.Resource,
			"",
		)
	default:
		row = append(row, "", "", "", "", stepDetails(step))
	}

	writer.Write(row)
}

// formatStepLine formats a single step line for text output
func formatStepLine(step StepData) string {
	prefix := fmt.Sprintf("Step %02d : %-12s ; %-9s", step.Step, step.Action, step.Outcome)

	switch {
	case step.Patient != nil:
		return fmt.Sprintf("%s ; %s", prefix, patientPart(*step.Patient))
	case step.Service != nil:
		return fmt.Sprintf("%s ; %s", prefix, servicePart(*step.Service))
	default:
		details := stepDetails(step)
		if details == "" {
			return prefix
		}
		return fmt.Sprintf("%s ; %s", prefix, details)
	}
}

// stepDetails renders comparison, traversal and history listings.
func stepDetails(step StepData) string {
	switch {
	case step.ArrivalOrder != nil || step.PriorityOrder != nil:
		return fmt.Sprintf("arrival=[%s] priority=[%s]",
			strings.Join(idParts(step.ArrivalOrder), " "),
			strings.Join(idParts(step.PriorityOrder), " "))
	case step.Patients != nil:
		return fmt.Sprintf("patients=[%s]", strings.Join(idParts(step.Patients), " "))
	case step.Services != nil:
		return fmt.Sprintf("events=[%s]", strings.Join(serviceParts(step.Services), ", "))
	default:
		return ""
	}
}

func patientView(p models.PatientRecord) PatientData {
	return PatientData{ID: p.ID, Name: p.Name, Severity: p.Severity, Arrival: p.Arrival}
}

func patientViews(patients []models.PatientRecord) []PatientData {
	if patients == nil {
		return nil
	}
	out := make([]PatientData, len(patients))
	for i, p := range patients {
		out[i] = patientView(p)
	}
	return out
}

func serviceView(s models.ServiceRecord) ServiceData {
	return ServiceData{
		EventID:   s.EventID.String(),
		PatientID: s.Patient.ID,
		Name:      s.Patient.Name,
		Severity:  s.Patient.Severity,
		Resource:  s.Resource,
		ServedAt:  s.ServedAt.Format(time.RFC3339),
		Recorded:  s.Recorded,
	}
}

func serviceViews(services []models.ServiceRecord) []ServiceData {
	if services == nil {
		return nil
	}
	out := make([]ServiceData, len(services))
	for i, s := range services {
		out[i] = serviceView(s)
	}
	return out
}

func patientPart(p PatientData) string {
	return fmt.Sprintf("%s (id=%d, severity=%d, arrival=%d)", p.Name, p.ID, p.Severity, p.Arrival)
}

func patientParts(patients []PatientData) []string {
	parts := make([]string, len(patients))
	for i, p := range patients {
		parts[i] = patientPart(p)
	}
	return parts
}

func servicePart(s ServiceData) string {
	return fmt.Sprintf("%s (id=%d, severity=%d) -> %s", s.Name, s.PatientID, s.Severity, s.Resource)
}

func serviceParts(services []ServiceData) []string {
	parts := make([]string, len(services))
	for i, s := range services {
		parts[i] = servicePart(s)
	}
	return parts
}

func idParts(patients []PatientData) []string {
	parts := make([]string, len(patients))
	for i, p := range patients {
		parts[i] = fmt.Sprintf("%d", p.ID)
	}
	return parts
}

package parser

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"hospital-triage/errors"
	"hospital-triage/metrics"
	"hospital-triage/models"

	"github.com/prometheus/client_golang/prometheus"
)

// Parse reads CSV operation records from the reader and returns the
// operations in script order. Lines starting with '#' are comments.
// The first field of each record names the action; the remaining fields
// depend on it:
//
//	admit, <id>, <name>, <severity>    admit a patient (severity 1-5)
//	update, <id>, <severity>           change a waiting patient's severity
//	remove, <id>                       take a patient out without service
//	serve                              serve the most urgent patient
//	compare                            render arrival vs priority order
//	history | peek-history | pop-history
//	inorder | preorder | postorder
//
// Parsing stops at the first invalid record and reports its line number.
func Parse(r io.Reader) ([]models.Operation, error) {
	timer := prometheus.NewTimer(metrics.ParserDurationSeconds)
	defer timer.ObserveDuration()

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var ops []models.Operation
	lineNum := 0

	for {
		record, err := reader.Read()
		lineNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			metrics.ParserErrorsTotal.WithLabelValues("csv").Inc()
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}

		// Handle headers/comments
		if len(record) > 0 && strings.HasPrefix(record[0], "#") {
			continue
		}

		op, opErr := parseOperation(record)
		if opErr != nil {
			metrics.ParserErrorsTotal.WithLabelValues(errorType(opErr)).Inc()
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    opErr,
			}
		}

		metrics.ParserRecordsTotal.Inc()
		ops = append(ops, op)
	}

	return ops, nil
}

func parseOperation(record []string) (models.Operation, error) {
	if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
		return models.Operation{}, errors.ErrEmptyRecord
	}

	action := models.Action(strings.ToLower(strings.TrimSpace(record[0])))
	op := models.Operation{Action: action}

	switch action {
	case models.ActionAdmit:
		if len(record) != 4 {
			return models.Operation{}, errors.ErrInvalidFieldCount
		}
		id, err := parsePatientID(record[1])
		if err != nil {
			return models.Operation{}, err
		}
		name := strings.TrimSpace(record[2])
		if name == "" {
			return models.Operation{}, errors.ErrEmptyName
		}
		severity, err := parseSeverity(record[3])
		if err != nil {
			return models.Operation{}, err
		}
		op.PatientID = id
		op.Name = name
		op.Severity = severity

	case models.ActionUpdate:
		if len(record) != 3 {
			return models.Operation{}, errors.ErrInvalidFieldCount
		}
		id, err := parsePatientID(record[1])
		if err != nil {
			return models.Operation{}, err
		}
		severity, err := parseSeverity(record[2])
		if err != nil {
			return models.Operation{}, err
		}
		op.PatientID = id
		op.Severity = severity

	case models.ActionRemove:
		if len(record) != 2 {
			return models.Operation{}, errors.ErrInvalidFieldCount
		}
		id, err := parsePatientID(record[1])
		if err != nil {
			return models.Operation{}, err
		}
		op.PatientID = id

	case models.ActionServe, models.ActionCompare, models.ActionHistory,
		models.ActionPopHistory, models.ActionPeekHistory,
		models.ActionInOrder, models.ActionPreOrder, models.ActionPostOrder:
		if len(record) != 1 {
			return models.Operation{}, errors.ErrInvalidFieldCount
		}

	default:
		return models.Operation{}, fmt.Errorf("%w: %q", errors.ErrInvalidAction, record[0])
	}

	return op, nil
}

func parsePatientID(field string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errors.ErrInvalidPatientID, err)
	}
	if id < 1 {
		return 0, fmt.Errorf("%w: %d is not positive", errors.ErrInvalidPatientID, id)
	}
	return id, nil
}

func parseSeverity(field string) (int, error) {
	severity, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errors.ErrInvalidSeverity, err)
	}
	if severity < models.MinSeverity || severity > models.MaxSeverity {
		return 0, fmt.Errorf("%w: %d is outside %d..%d",
			errors.ErrInvalidSeverity, severity, models.MinSeverity, models.MaxSeverity)
	}
	return severity, nil
}

// errorType maps a parse failure to its metric label.
func errorType(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrInvalidFieldCount):
		return "field_count"
	case stderrors.Is(err, errors.ErrInvalidAction):
		return "action"
	case stderrors.Is(err, errors.ErrInvalidPatientID):
		return "patient_id"
	case stderrors.Is(err, errors.ErrInvalidSeverity):
		return "severity"
	case stderrors.Is(err, errors.ErrEmptyName):
		return "name"
	case stderrors.Is(err, errors.ErrEmptyRecord):
		return "empty_record"
	default:
		return "other"
	}
}

// Package importer loads insurance cases and document verifications from CSV files.
package importer

import (
	"context"
	"io"
	"sort"

	apperrors "emiverify/internal/errors"
	"emiverify/internal/logger"
	"emiverify/internal/models"
	"emiverify/internal/services/insurance"
	"emiverify/internal/services/verification"
)

// Report summarises an import. Rows are independent; a bad row never blocks the others.
type Report struct {
	TotalRows int        `json:"total_rows"`
	Imported  int        `json:"imported"`
	Failed    int        `json:"failed"`
	Errors    []RowError `json:"errors"`
}

type Importer struct {
	cases insurance.Service
	docs  verification.Service
}

func New(cases insurance.Service, docs verification.Service) *Importer {
	return &Importer{cases: cases, docs: docs}
}

// InsuranceCases parses r and creates every valid row. Derived columns are ignored.
func (im *Importer) InsuranceCases(ctx context.Context, r io.Reader) (*Report, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	report := &Report{TotalRows: len(rows), Errors: []RowError{}}
	inputs := make([]models.InsuranceCaseInput, 0, len(rows))
	lines := make([]int, 0, len(rows))
	for _, row := range rows {
		in, err := insuranceInput(row)
		if err != nil {
			report.Errors = append(report.Errors, RowError{Row: row.line, Error: err.Error()})
			continue
		}
		inputs = append(inputs, in)
		lines = append(lines, row.line)
	}

	if len(inputs) > 0 {
		result, err := im.cases.BulkCreate(ctx, inputs)
		if err != nil {
			return nil, err
		}
		report.Imported = result.Successful
		report.Errors = append(report.Errors, rowErrors(result.Errors, lines)...)
	}

	return finish(ctx, "insurance cases", report)
}

// DocumentVerifications parses r and creates every valid row. Derived columns are ignored.
func (im *Importer) DocumentVerifications(ctx context.Context, r io.Reader) (*Report, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	report := &Report{TotalRows: len(rows), Errors: []RowError{}}
	inputs := make([]models.DocumentVerificationInput, 0, len(rows))
	lines := make([]int, 0, len(rows))
	for _, row := range rows {
		in, err := verificationInput(row)
		if err != nil {
			report.Errors = append(report.Errors, RowError{Row: row.line, Error: err.Error()})
			continue
		}
		inputs = append(inputs, in)
		lines = append(lines, row.line)
	}

	if len(inputs) > 0 {
		result, err := im.docs.BulkCreate(ctx, inputs)
		if err != nil {
			return nil, err
		}
		report.Imported = result.Successful
		report.Errors = append(report.Errors, rowErrors(result.Errors, lines)...)
	}

	return finish(ctx, "document verifications", report)
}

func rowErrors(errs []models.BulkError, lines []int) []RowError {
	out := make([]RowError, 0, len(errs))
	for _, e := range errs {
		line := 0
		if e.Index >= 0 && e.Index < len(lines) {
			line = lines[e.Index]
		}
		out = append(out, RowError{Row: line, Error: e.Error})
	}
	return out
}

func finish(ctx context.Context, what string, report *Report) (*Report, error) {
	if report.TotalRows == 0 {
		return nil, apperrors.ErrInvalidImportFile.WithMessage("CSV file has no data rows")
	}
	sort.SliceStable(report.Errors, func(i, j int) bool {
		return report.Errors[i].Row < report.Errors[j].Row
	})
	report.Failed = len(report.Errors)

	logger.WithContext(ctx).Info("import finished",
		"records", what,
		"rows", report.TotalRows,
		"imported", report.Imported,
		"failed", report.Failed)
	return report, nil
}

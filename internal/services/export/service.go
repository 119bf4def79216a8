// Package export writes filtered record sets to CSV files for download.
package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	apperrors "emiverify/internal/errors"
	"emiverify/internal/logger"
	"emiverify/internal/models"
	"emiverify/internal/repositories"

	"github.com/google/uuid"
)

// File is a CSV written to the temp dir. Open it once; closing the reader deletes it.
type File struct {
	Name string
	Path string
	Rows int
}

// Open returns a reader that removes the file when closed.
func (f *File) Open() (io.ReadCloser, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	return &removeOnClose{File: fh}, nil
}

// Remove deletes the file without reading it.
func (f *File) Remove() error {
	return os.Remove(f.Path)
}

type removeOnClose struct {
	*os.File
}

func (r *removeOnClose) Close() error {
	err := r.File.Close()
	if rmErr := os.Remove(r.File.Name()); rmErr != nil && !os.IsNotExist(rmErr) {
		slog.Warn("failed to remove export file", "path", r.File.Name(), "error", rmErr)
	}
	return err
}

// ExportInfo describes one downloadable data set.
type ExportInfo struct {
	TotalRecords int64  `json:"total_records"`
	Endpoint     string `json:"endpoint"`
}

// Summary lists what can be exported for a date range.
type Summary struct {
	AvailableExports struct {
		InsuranceCases        ExportInfo `json:"insurance_cases"`
		DocumentVerifications ExportInfo `json:"document_verifications"`
	} `json:"available_exports"`
	SupportedFilters []string            `json:"supported_filters"`
	DateFilter       models.RecordFilter `json:"date_filter"`
}

var supportedFilters = []string{
	"start_date (YYYY-MM-DD)",
	"end_date (YYYY-MM-DD)",
	"agent_name",
	"country",
	"case_status (for insurance cases)",
	"case_type (for insurance cases)",
	"document_type (for document verifications)",
	"payment_status (for document verifications)",
}

type Service interface {
	InsuranceCases(ctx context.Context, filter models.RecordFilter) (*File, error)
	DocumentVerifications(ctx context.Context, filter models.RecordFilter) (*File, error)
	Summary(ctx context.Context, filter models.RecordFilter) (*Summary, error)
}

type service struct {
	caseRepo repositories.InsuranceCaseRepository
	docRepo  repositories.DocumentVerificationRepository
	dir      string
	now      func() time.Time
}

func NewService(caseRepo repositories.InsuranceCaseRepository, docRepo repositories.DocumentVerificationRepository, dir string) Service {
	if dir == "" {
		dir = os.TempDir()
	}
	return &service{
		caseRepo: caseRepo,
		docRepo:  docRepo,
		dir:      dir,
		now:      time.Now,
	}
}

func (s *service) InsuranceCases(ctx context.Context, filter models.RecordFilter) (*File, error) {
	cases, err := s.caseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(cases) == 0 {
		return nil, apperrors.ErrNoDataToExport.WithMessage("No insurance cases found for the specified filters")
	}

	f, err := s.write(ctx, "insurance-cases", func(w io.Writer) error {
		return WriteInsuranceCases(w, cases)
	})
	if err != nil {
		return nil, err
	}
	f.Rows = len(cases)
	return f, nil
}

func (s *service) DocumentVerifications(ctx context.Context, filter models.RecordFilter) (*File, error) {
	records, err := s.docRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.ErrNoDataToExport.WithMessage("No document verifications found for the specified filters")
	}

	f, err := s.write(ctx, "document-verifications", func(w io.Writer) error {
		return WriteVerifications(w, records)
	})
	if err != nil {
		return nil, err
	}
	f.Rows = len(records)
	return f, nil
}

// Summary counts records in the date range only; other filters are ignored.
func (s *service) Summary(ctx context.Context, filter models.RecordFilter) (*Summary, error) {
	dates := models.RecordFilter{StartDate: filter.StartDate, EndDate: filter.EndDate}

	cases, err := s.caseRepo.Count(ctx, dates)
	if err != nil {
		return nil, err
	}
	docs, err := s.docRepo.Count(ctx, dates)
	if err != nil {
		return nil, err
	}

	sum := &Summary{SupportedFilters: supportedFilters, DateFilter: dates}
	sum.AvailableExports.InsuranceCases = ExportInfo{TotalRecords: cases, Endpoint: "/api/export/insurance-cases"}
	sum.AvailableExports.DocumentVerifications = ExportInfo{TotalRecords: docs, Endpoint: "/api/export/document-verifications"}
	return sum, nil
}

func (s *service) write(ctx context.Context, prefix string, fill func(io.Writer) error) (*File, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("%s-%s.csv", prefix, uuid.NewString()))
	fh, err := os.Create(path)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("create export file: %w", err))
	}

	if err := fill(fh); err != nil {
		fh.Close()
		os.Remove(path)
		return nil, apperrors.Internal(fmt.Errorf("write export file: %w", err))
	}
	if err := fh.Close(); err != nil {
		os.Remove(path)
		return nil, apperrors.Internal(fmt.Errorf("close export file: %w", err))
	}

	name := fmt.Sprintf("%s-%s.csv", prefix, s.now().UTC().Format("2006-01-02T15-04-05"))
	logger.WithContext(ctx).Info("export written", "file", name)
	return &File{Name: name, Path: path}, nil
}

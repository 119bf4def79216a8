// Package analytics builds KPI reports over insurance cases and document verifications.
package analytics

import (
	"context"
	"time"

	"emiverify/internal/logger"
	"emiverify/internal/models"
	"emiverify/internal/repositories"
	"emiverify/internal/repositories/cache"
)

type Service interface {
	InsuranceReport(ctx context.Context, filter models.RecordFilter) (*models.InsuranceReport, error)
	VerificationReport(ctx context.Context, filter models.RecordFilter) (*models.VerificationReport, error)
	Dashboard(ctx context.Context, filter models.RecordFilter) (*models.DashboardReport, error)
}

type service struct {
	caseRepo repositories.InsuranceCaseRepository
	docRepo  repositories.DocumentVerificationRepository
	cache    cache.Store
	ttl      time.Duration
	now      func() time.Time
}

func NewService(
	caseRepo repositories.InsuranceCaseRepository,
	docRepo repositories.DocumentVerificationRepository,
	store cache.Store,
	ttl time.Duration,
) Service {
	return &service{
		caseRepo: caseRepo,
		docRepo:  docRepo,
		cache:    store,
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) InsuranceReport(ctx context.Context, filter models.RecordFilter) (*models.InsuranceReport, error) {
	return cached(ctx, s, cache.KeyInsurance, filter, func() (models.InsuranceReport, error) {
		cases, err := s.caseRepo.List(ctx, filter)
		if err != nil {
			return models.InsuranceReport{}, err
		}
		return BuildInsuranceReport(cases, filter, s.now()), nil
	})
}

func (s *service) VerificationReport(ctx context.Context, filter models.RecordFilter) (*models.VerificationReport, error) {
	return cached(ctx, s, cache.KeyDocuments, filter, func() (models.VerificationReport, error) {
		docs, err := s.docRepo.List(ctx, filter)
		if err != nil {
			return models.VerificationReport{}, err
		}
		return BuildVerificationReport(docs, filter, s.now()), nil
	})
}

func (s *service) Dashboard(ctx context.Context, filter models.RecordFilter) (*models.DashboardReport, error) {
	return cached(ctx, s, cache.KeyDashboard, filter, func() (models.DashboardReport, error) {
		cases, err := s.caseRepo.List(ctx, filter)
		if err != nil {
			return models.DashboardReport{}, err
		}
		docs, err := s.docRepo.List(ctx, filter)
		if err != nil {
			return models.DashboardReport{}, err
		}
		return BuildDashboard(cases, docs, filter, s.now()), nil
	})
}

// cached serves a report from the cache under the current generation, building
// and storing it on a miss. Cache failures degrade to a direct build.
func cached[T any](ctx context.Context, s *service, kind cache.KeyType, filter models.RecordFilter, build func() (T, error)) (*T, error) {
	log := logger.WithContext(ctx)

	gen, err := cache.ReportGeneration(ctx, s.cache)
	if err != nil {
		log.Warn("report generation read failed", "error", err)
	}
	key := cache.ReportKey(kind, gen, filter)

	var report T
	found, err := s.cache.Get(ctx, key, &report)
	if err != nil {
		log.Warn("report cache read failed", "key", key, "error", err)
	}
	if found {
		return &report, nil
	}

	report, err = build()
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetWithTTL(ctx, key, report, s.ttl); err != nil {
		log.Warn("report cache write failed", "key", key, "error", err)
	}
	return &report, nil
}

package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type EntityType string

const (
	EntityUser   EntityType = "user"
	EntityReport EntityType = "report"
)

type KeyType string

const (
	KeyID        KeyType = "id"
	KeyInsurance KeyType = "insurance"
	KeyDocuments KeyType = "documents"
	KeyDashboard KeyType = "dashboard"
)

// ReportPattern matches every cached analytics report.
const ReportPattern = string(EntityReport) + ":*"

// ReportGenerationKey holds the current report generation. It lies outside
// ReportPattern so dropping reports keeps it.
const ReportGenerationKey = "report_generation"

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entity, keyType, value)
}

// ReportKey keys a report by generation and a digest of its filter.
func ReportKey(keyType KeyType, generation string, filter interface{}) string {
	raw, err := json.Marshal(filter)
	if err != nil {
		raw = []byte(fmt.Sprintf("%+v", filter))
	}
	sum := sha1.Sum(raw)
	return GenerateKey(EntityReport, keyType, generation+":"+hex.EncodeToString(sum[:8]))
}

// ReportGeneration returns the generation reports are currently keyed under,
// "0" when none has been recorded yet.
func ReportGeneration(ctx context.Context, s Store) (string, error) {
	var gen string
	found, err := s.Get(ctx, ReportGenerationKey, &gen)
	if err != nil || !found || gen == "" {
		return "0", err
	}
	return gen, nil
}

// InvalidateReports starts a new report generation and drops cached reports.
// A report built from data read before the bump can still be stored afterwards,
// but only under the old generation, which no reader asks for again.
func InvalidateReports(ctx context.Context, s Store) error {
	setErr := s.SetWithTTL(ctx, ReportGenerationKey, uuid.NewString(), 0)
	return errors.Join(setErr, s.DeletePattern(ctx, ReportPattern))
}

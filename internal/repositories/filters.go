package repositories

import (
	"strings"

	"emiverify/internal/models"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(s)) + "%"
}

// commonFilter applies the date range and the agent/country substrings shared by both tables.
func commonFilter(f models.RecordFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.StartDate != nil {
			db = db.Where("date_received >= ?", *f.StartDate)
		}
		if f.EndDate != nil {
			db = db.Where("date_received <= ?", *f.EndDate)
		}
		if strings.TrimSpace(f.AgentName) != "" {
			db = db.Where("agent_name ILIKE ?", containsPattern(f.AgentName))
		}
		if strings.TrimSpace(f.Country) != "" {
			db = db.Where("country ILIKE ?", containsPattern(f.Country))
		}
		return db
	}
}

func insuranceFilter(f models.RecordFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(commonFilter(f))
		if f.CaseStatus != "" {
			db = db.Where("case_status = ?", f.CaseStatus)
		}
		if f.CaseType != "" {
			db = db.Where("case_type = ?", f.CaseType)
		}
		return db
	}
}

func verificationFilter(f models.RecordFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(commonFilter(f))
		if strings.TrimSpace(f.DocumentType) != "" {
			db = db.Where("document_type ILIKE ?", containsPattern(f.DocumentType))
		}
		if f.PaymentStatus != "" {
			db = db.Where("payment_status = ?", f.PaymentStatus)
		}
		return db
	}
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InsuranceCase is an insurance investigation tracked from intake to closure.
type InsuranceCase struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	AgentName        string           `gorm:"size:255;index" json:"agent_name"`
	InsuredName      string           `gorm:"size:255" json:"insured_name"`
	Country          string           `gorm:"size:100;index" json:"country"`
	PolicyNumber     string           `gorm:"size:100" json:"policy_number"`
	CaseType         string           `gorm:"size:100;index" json:"case_type"`
	InsuranceCompany string           `gorm:"size:255" json:"insurance_company"`
	Comment          string           `gorm:"type:text" json:"comment"`
	DateReceived     *Date            `gorm:"type:date;index" json:"date_received"`
	DateClosed       *Date            `gorm:"type:date" json:"date_closed"`
	TurnAroundTime   int              `gorm:"not null;default:0" json:"turn_around_time"`
	CaseStatus       TurnaroundStatus `gorm:"size:50;not null;index" json:"case_status"`
	ExpectedDays     int              `gorm:"not null" json:"expected_days"`
	ProcessingFee    decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"processing_fee"`
	AmountPaid       decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"amount_paid"`
	IsFraud          bool             `gorm:"not null;index" json:"is_fraud"`
	FraudType        string           `gorm:"size:100" json:"fraud_type"`
	FraudSource      string           `gorm:"size:100" json:"fraud_source"`
	CreatedAt        time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// Recalculate refreshes the derived turnaround fields from the dates.
func (c *InsuranceCase) Recalculate() {
	if c.ExpectedDays <= 0 {
		c.ExpectedDays = DefaultInsuranceExpectedDays
	}
	t := DeriveTurnaround(c.DateReceived, c.DateClosed, c.ExpectedDays)
	c.TurnAroundTime = t.Days
	c.CaseStatus = t.Status
}

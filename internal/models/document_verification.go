package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatusPaid marks a settled verification. The column itself is free text.
const PaymentStatusPaid = "PAID"

// DocumentVerification is a document check carried out by an agent.
type DocumentVerification struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	AgentName        string           `gorm:"size:255;index" json:"agent_name"`
	ApplicantName    string           `gorm:"size:255" json:"applicant_name"`
	DocumentType     string           `gorm:"size:100;index" json:"document_type"`
	Country          string           `gorm:"size:100;index" json:"country"`
	RegionTown       string           `gorm:"size:255" json:"region_town"`
	ARSNumber        string           `gorm:"column:ars_number;size:100" json:"ars_number"`
	CheckID          string           `gorm:"size:100" json:"check_id"`
	DateReceived     *Date            `gorm:"type:date;index" json:"date_received"`
	DateClosed       *Date            `gorm:"type:date" json:"date_closed"`
	TurnAroundTime   int              `gorm:"not null;default:0" json:"turn_around_time"`
	TurnAroundStatus TurnaroundStatus `gorm:"size:50;not null;index" json:"turn_around_status"`
	ExpectedDays     int              `gorm:"not null" json:"expected_days"`
	ProcessingFee    decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"processing_fee"`
	AmountPaid       decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"amount_paid"`
	Total            decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"total"`
	PaymentStatus    string           `gorm:"size:50;index" json:"payment_status"`
	CreatedAt        time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// Recalculate refreshes the derived turnaround fields from the dates.
func (v *DocumentVerification) Recalculate() {
	if v.ExpectedDays <= 0 {
		v.ExpectedDays = DefaultVerificationExpectedDays
	}
	t := DeriveTurnaround(v.DateReceived, v.DateClosed, v.ExpectedDays)
	v.TurnAroundTime = t.Days
	v.TurnAroundStatus = t.Status
}

// IsOutstanding reports whether a payment status is recorded and is not PAID.
// Records with no status are not counted as owing.
func (v *DocumentVerification) IsOutstanding() bool {
	status := strings.TrimSpace(v.PaymentStatus)
	return status != "" && !strings.EqualFold(status, PaymentStatusPaid)
}

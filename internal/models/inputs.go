package models

import (
	"github.com/shopspring/decimal"
)

// InsuranceCaseInput is the create schema. Derived fields are not part of it.
type InsuranceCaseInput struct {
	AgentName        string           `json:"agent_name" validate:"required,max=255"`
	InsuredName      string           `json:"insured_name" validate:"required,max=255"`
	Country          string           `json:"country" validate:"max=100"`
	PolicyNumber     string           `json:"policy_number" validate:"max=100"`
	CaseType         string           `json:"case_type" validate:"max=100"`
	InsuranceCompany string           `json:"insurance_company" validate:"max=255"`
	Comment          string           `json:"comment" validate:"max=5000"`
	DateReceived     OptionalDate     `json:"date_received"`
	DateClosed       OptionalDate     `json:"date_closed"`
	ExpectedDays     *int             `json:"expected_days" validate:"omitnil,min=1,max=3650"`
	ProcessingFee    *decimal.Decimal `json:"processing_fee"`
	AmountPaid       *decimal.Decimal `json:"amount_paid"`
	IsFraud          bool             `json:"is_fraud"`
	FraudType        string           `json:"fraud_type" validate:"max=100"`
	FraudSource      string           `json:"fraud_source" validate:"max=100"`
}

// ToModel builds a record with defaults applied. Derived fields are left for Recalculate.
func (in InsuranceCaseInput) ToModel() *InsuranceCase {
	c := &InsuranceCase{
		AgentName:        in.AgentName,
		InsuredName:      in.InsuredName,
		Country:          in.Country,
		PolicyNumber:     in.PolicyNumber,
		CaseType:         in.CaseType,
		InsuranceCompany: in.InsuranceCompany,
		Comment:          in.Comment,
		DateReceived:     in.DateReceived.Value,
		DateClosed:       in.DateClosed.Value,
		ExpectedDays:     DefaultInsuranceExpectedDays,
		ProcessingFee:    decimalOrZero(in.ProcessingFee),
		AmountPaid:       decimalOrZero(in.AmountPaid),
		IsFraud:          in.IsFraud,
		FraudType:        in.FraudType,
		FraudSource:      in.FraudSource,
	}
	if in.ExpectedDays != nil {
		c.ExpectedDays = *in.ExpectedDays
	}
	return c
}

// InsuranceCasePatch is the update schema; nil fields are left untouched.
type InsuranceCasePatch struct {
	AgentName        *string          `json:"agent_name" validate:"omitnil,min=1,max=255"`
	InsuredName      *string          `json:"insured_name" validate:"omitnil,min=1,max=255"`
	Country          *string          `json:"country" validate:"omitnil,max=100"`
	PolicyNumber     *string          `json:"policy_number" validate:"omitnil,max=100"`
	CaseType         *string          `json:"case_type" validate:"omitnil,max=100"`
	InsuranceCompany *string          `json:"insurance_company" validate:"omitnil,max=255"`
	Comment          *string          `json:"comment" validate:"omitnil,max=5000"`
	DateReceived     OptionalDate     `json:"date_received"`
	DateClosed       OptionalDate     `json:"date_closed"`
	ExpectedDays     *int             `json:"expected_days" validate:"omitnil,min=1,max=3650"`
	ProcessingFee    *decimal.Decimal `json:"processing_fee"`
	AmountPaid       *decimal.Decimal `json:"amount_paid"`
	IsFraud          *bool            `json:"is_fraud"`
	FraudType        *string          `json:"fraud_type" validate:"omitnil,max=100"`
	FraudSource      *string          `json:"fraud_source" validate:"omitnil,max=100"`
}

// Empty reports whether the patch changes nothing.
func (p InsuranceCasePatch) Empty() bool {
	return p.AgentName == nil && p.InsuredName == nil && p.Country == nil &&
		p.PolicyNumber == nil && p.CaseType == nil && p.InsuranceCompany == nil &&
		p.Comment == nil && !p.DateReceived.Set && !p.DateClosed.Set &&
		p.ExpectedDays == nil && p.ProcessingFee == nil && p.AmountPaid == nil &&
		p.IsFraud == nil && p.FraudType == nil && p.FraudSource == nil
}

// Apply copies the set fields onto c. Callers recalculate afterwards.
func (p InsuranceCasePatch) Apply(c *InsuranceCase) {
	setString(&c.AgentName, p.AgentName)
	setString(&c.InsuredName, p.InsuredName)
	setString(&c.Country, p.Country)
	setString(&c.PolicyNumber, p.PolicyNumber)
	setString(&c.CaseType, p.CaseType)
	setString(&c.InsuranceCompany, p.InsuranceCompany)
	setString(&c.Comment, p.Comment)
	setString(&c.FraudType, p.FraudType)
	setString(&c.FraudSource, p.FraudSource)
	if p.DateReceived.Set {
		c.DateReceived = p.DateReceived.Value
	}
	if p.DateClosed.Set {
		c.DateClosed = p.DateClosed.Value
	}
	if p.ExpectedDays != nil {
		c.ExpectedDays = *p.ExpectedDays
	}
	if p.ProcessingFee != nil {
		c.ProcessingFee = *p.ProcessingFee
	}
	if p.AmountPaid != nil {
		c.AmountPaid = *p.AmountPaid
	}
	if p.IsFraud != nil {
		c.IsFraud = *p.IsFraud
	}
}

// DocumentVerificationInput is the create schema. Derived fields are not part of it.
type DocumentVerificationInput struct {
	AgentName     string           `json:"agent_name" validate:"required,max=255"`
	ApplicantName string           `json:"applicant_name" validate:"required,max=255"`
	DocumentType  string           `json:"document_type" validate:"max=100"`
	Country       string           `json:"country" validate:"max=100"`
	RegionTown    string           `json:"region_town" validate:"max=255"`
	ARSNumber     string           `json:"ars_number" validate:"max=100"`
	CheckID       string           `json:"check_id" validate:"max=100"`
	DateReceived  OptionalDate     `json:"date_received"`
	DateClosed    OptionalDate     `json:"date_closed"`
	ExpectedDays  *int             `json:"expected_days" validate:"omitnil,min=1,max=3650"`
	ProcessingFee *decimal.Decimal `json:"processing_fee"`
	AmountPaid    *decimal.Decimal `json:"amount_paid"`
	Total         *decimal.Decimal `json:"total"`
	PaymentStatus string           `json:"payment_status" validate:"max=50"`
}

// ToModel builds a record with defaults applied. Total falls back to fee plus amount paid.
func (in DocumentVerificationInput) ToModel() *DocumentVerification {
	v := &DocumentVerification{
		AgentName:     in.AgentName,
		ApplicantName: in.ApplicantName,
		DocumentType:  in.DocumentType,
		Country:       in.Country,
		RegionTown:    in.RegionTown,
		ARSNumber:     in.ARSNumber,
		CheckID:       in.CheckID,
		DateReceived:  in.DateReceived.Value,
		DateClosed:    in.DateClosed.Value,
		ExpectedDays:  DefaultVerificationExpectedDays,
		ProcessingFee: decimalOrZero(in.ProcessingFee),
		AmountPaid:    decimalOrZero(in.AmountPaid),
		PaymentStatus: in.PaymentStatus,
	}
	if in.ExpectedDays != nil {
		v.ExpectedDays = *in.ExpectedDays
	}
	if in.Total != nil {
		v.Total = *in.Total
	} else {
		v.Total = v.ProcessingFee.Add(v.AmountPaid)
	}
	return v
}

// DocumentVerificationPatch is the update schema; nil fields are left untouched.
type DocumentVerificationPatch struct {
	AgentName     *string          `json:"agent_name" validate:"omitnil,min=1,max=255"`
	ApplicantName *string          `json:"applicant_name" validate:"omitnil,min=1,max=255"`
	DocumentType  *string          `json:"document_type" validate:"omitnil,max=100"`
	Country       *string          `json:"country" validate:"omitnil,max=100"`
	RegionTown    *string          `json:"region_town" validate:"omitnil,max=255"`
	ARSNumber     *string          `json:"ars_number" validate:"omitnil,max=100"`
	CheckID       *string          `json:"check_id" validate:"omitnil,max=100"`
	DateReceived  OptionalDate     `json:"date_received"`
	DateClosed    OptionalDate     `json:"date_closed"`
	ExpectedDays  *int             `json:"expected_days" validate:"omitnil,min=1,max=3650"`
	ProcessingFee *decimal.Decimal `json:"processing_fee"`
	AmountPaid    *decimal.Decimal `json:"amount_paid"`
	Total         *decimal.Decimal `json:"total"`
	PaymentStatus *string          `json:"payment_status" validate:"omitnil,max=50"`
}

// Empty reports whether the patch changes nothing.
func (p DocumentVerificationPatch) Empty() bool {
	return p.AgentName == nil && p.ApplicantName == nil && p.DocumentType == nil &&
		p.Country == nil && p.RegionTown == nil && p.ARSNumber == nil && p.CheckID == nil &&
		!p.DateReceived.Set && !p.DateClosed.Set && p.ExpectedDays == nil &&
		p.ProcessingFee == nil && p.AmountPaid == nil && p.Total == nil && p.PaymentStatus == nil
}

// Apply copies the set fields onto v. When a fee component changes without an
// explicit total, the total is recomputed.
func (p DocumentVerificationPatch) Apply(v *DocumentVerification) {
	setString(&v.AgentName, p.AgentName)
	setString(&v.ApplicantName, p.ApplicantName)
	setString(&v.DocumentType, p.DocumentType)
	setString(&v.Country, p.Country)
	setString(&v.RegionTown, p.RegionTown)
	setString(&v.ARSNumber, p.ARSNumber)
	setString(&v.CheckID, p.CheckID)
	setString(&v.PaymentStatus, p.PaymentStatus)
	if p.DateReceived.Set {
		v.DateReceived = p.DateReceived.Value
	}
	if p.DateClosed.Set {
		v.DateClosed = p.DateClosed.Value
	}
	if p.ExpectedDays != nil {
		v.ExpectedDays = *p.ExpectedDays
	}
	if p.ProcessingFee != nil {
		v.ProcessingFee = *p.ProcessingFee
	}
	if p.AmountPaid != nil {
		v.AmountPaid = *p.AmountPaid
	}
	switch {
	case p.Total != nil:
		v.Total = *p.Total
	case p.ProcessingFee != nil || p.AmountPaid != nil:
		v.Total = v.ProcessingFee.Add(v.AmountPaid)
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// Auth request schemas. Field names follow the web client.

type SignupInput struct {
	FullName string `json:"fullName" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type VerifyEmailInput struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type EmailInput struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordInput struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

type UpdateProfileInput struct {
	FullName string `json:"fullName" validate:"required,min=2,max=255"`
}

type RefreshInput struct {
	RefreshToken string `json:"refreshToken"`
}

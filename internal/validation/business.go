package validation

import (
	apperrors "emiverify/internal/errors"
	"emiverify/internal/models"
)

// InsuranceCase validates a record about to be written
func (v *Validator) InsuranceCase(c *models.InsuranceCase) {
	v.Required("agent_name", c.AgentName)
	v.Required("insured_name", c.InsuredName)
	v.DateOrder(c.DateReceived, c.DateClosed)
	v.NonNegative("processing_fee", c.ProcessingFee)
	v.NonNegative("amount_paid", c.AmountPaid)
	v.Check(c.ExpectedDays > 0, "expected_days", "must be positive")
}

// DocumentVerification validates a record about to be written
func (v *Validator) DocumentVerification(d *models.DocumentVerification) {
	v.Required("agent_name", d.AgentName)
	v.Required("applicant_name", d.ApplicantName)
	v.DateOrder(d.DateReceived, d.DateClosed)
	v.NonNegative("processing_fee", d.ProcessingFee)
	v.NonNegative("amount_paid", d.AmountPaid)
	v.NonNegative("total", d.Total)
	v.Check(d.ExpectedDays > 0, "expected_days", "must be positive")
}

// ValidateInsuranceCase is the one-shot form used by services.
func ValidateInsuranceCase(c *models.InsuranceCase) error {
	v := New()
	v.InsuranceCase(c)
	return v.errFor()
}

// ValidateDocumentVerification is the one-shot form used by services.
func ValidateDocumentVerification(d *models.DocumentVerification) error {
	v := New()
	v.DocumentVerification(d)
	return v.errFor()
}

// errFor surfaces date ordering as its own sentinel so callers can match it.
func (v *Validator) errFor() error {
	if len(v.Errors) == 1 {
		if _, ok := v.Errors["date_closed"]; ok {
			return v.ErrAs(apperrors.ErrInvalidDateOrder)
		}
	}
	return v.Err()
}

package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"emiverify/internal/models"

	"github.com/shopspring/decimal"
)

type column[T any] struct {
	title string
	value func(*T) string
}

var insuranceColumns = []column[models.InsuranceCase]{
	{"ID", func(c *models.InsuranceCase) string { return uintString(c.ID) }},
	{"AGENT NAME", func(c *models.InsuranceCase) string { return c.AgentName }},
	{"INSURED NAME", func(c *models.InsuranceCase) string { return c.InsuredName }},
	{"COUNTRY", func(c *models.InsuranceCase) string { return c.Country }},
	{"DATE RECEIVED", func(c *models.InsuranceCase) string { return dateString(c.DateReceived) }},
	{"DATE CLOSED", func(c *models.InsuranceCase) string { return dateString(c.DateClosed) }},
	{"TURN AROUND TIME", func(c *models.InsuranceCase) string { return intString(c.TurnAroundTime) }},
	{"CASE STATUS", func(c *models.InsuranceCase) string { return string(c.CaseStatus) }},
	{"POLICY NUMBER", func(c *models.InsuranceCase) string { return c.PolicyNumber }},
	{"CASE TYPE", func(c *models.InsuranceCase) string { return c.CaseType }},
	{"INSURANCE COMPANY", func(c *models.InsuranceCase) string { return c.InsuranceCompany }},
	{"IS FRAUD", func(c *models.InsuranceCase) string { return yesNo(c.IsFraud) }},
	{"FRAUD TYPE", func(c *models.InsuranceCase) string { return c.FraudType }},
	{"COMMENT", func(c *models.InsuranceCase) string { return c.Comment }},
	{"FRAUD SOURCE", func(c *models.InsuranceCase) string { return c.FraudSource }},
	{"PROCESSING FEE", func(c *models.InsuranceCase) string { return money(c.ProcessingFee) }},
	{"AMOUNT PAID", func(c *models.InsuranceCase) string { return money(c.AmountPaid) }},
	{"CREATED AT", func(c *models.InsuranceCase) string { return timestamp(c.CreatedAt) }},
	{"UPDATED AT", func(c *models.InsuranceCase) string { return timestamp(c.UpdatedAt) }},
}

var verificationColumns = []column[models.DocumentVerification]{
	{"ID", func(v *models.DocumentVerification) string { return uintString(v.ID) }},
	{"AGENT NAME", func(v *models.DocumentVerification) string { return v.AgentName }},
	{"ARS NUMBER", func(v *models.DocumentVerification) string { return v.ARSNumber }},
	{"CHECK ID", func(v *models.DocumentVerification) string { return v.CheckID }},
	{"APPLICANT NAME", func(v *models.DocumentVerification) string { return v.ApplicantName }},
	{"DOCUMENT TYPE", func(v *models.DocumentVerification) string { return v.DocumentType }},
	{"COUNTRY", func(v *models.DocumentVerification) string { return v.Country }},
	{"REGION_TOWN", func(v *models.DocumentVerification) string { return v.RegionTown }},
	{"DATE RECEIVED", func(v *models.DocumentVerification) string { return dateString(v.DateReceived) }},
	{"DATE CLOSED", func(v *models.DocumentVerification) string { return dateString(v.DateClosed) }},
	{"TURN AROUND TIME", func(v *models.DocumentVerification) string { return intString(v.TurnAroundTime) }},
	{"TURN AROUND STATUS", func(v *models.DocumentVerification) string { return string(v.TurnAroundStatus) }},
	{"PROCESSING FEE", func(v *models.DocumentVerification) string { return money(v.ProcessingFee) }},
	{"AGENT AMOUNT PAID", func(v *models.DocumentVerification) string { return money(v.AmountPaid) }},
	{"TOTAL", func(v *models.DocumentVerification) string { return money(v.Total) }},
	{"PAYMENT STATUS", func(v *models.DocumentVerification) string { return v.PaymentStatus }},
	{"CREATED AT", func(v *models.DocumentVerification) string { return timestamp(v.CreatedAt) }},
	{"UPDATED AT", func(v *models.DocumentVerification) string { return timestamp(v.UpdatedAt) }},
}

// WriteInsuranceCases writes a header row and one row per case.
func WriteInsuranceCases(w io.Writer, cases []models.InsuranceCase) error {
	return writeRows(w, insuranceColumns, cases)
}

// WriteVerifications writes a header row and one row per verification.
func WriteVerifications(w io.Writer, records []models.DocumentVerification) error {
	return writeRows(w, verificationColumns, records)
}

func writeRows[T any](w io.Writer, cols []column[T], rows []T) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.title
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(cols))
	for i := range rows {
		for j, col := range cols {
			record[j] = col.value(&rows[i])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func dateString(d *models.Date) string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.String()
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

func intString(n int) string {
	return strconv.Itoa(n)
}

func uintString(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}

package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	apperrors "emiverify/internal/errors"
	"emiverify/internal/models"

	"github.com/shopspring/decimal"
)

// RowError is a rejected CSV line. Row counts the header as line 1.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// aliases maps normalised header names onto field keys.
var aliases = map[string]string{
	"agent":             "agent_name",
	"insured":           "insured_name",
	"applicant":         "applicant_name",
	"policy_no":         "policy_number",
	"company":           "insurance_company",
	"fraud":             "is_fraud",
	"received":          "date_received",
	"closed":            "date_closed",
	"agent_amount_paid": "amount_paid",
	"region":            "region_town",
	"town":              "region_town",
	"ars":               "ars_number",
	"ars_no":            "ars_number",
	"fee":               "processing_fee",
}

func normaliseHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	h = strings.NewReplacer(" ", "_", "-", "_", "/", "_").Replace(h)
	if alias, ok := aliases[h]; ok {
		return alias
	}
	return h
}

// row is one CSV line keyed by normalised header.
type row struct {
	line   int
	values map[string]string
}

func (r row) str(key string) string {
	return strings.TrimSpace(r.values[key])
}

func (r row) date(key string) (models.OptionalDate, error) {
	s := r.str(key)
	if s == "" {
		return models.OptionalDate{}, nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return models.OptionalDate{}, fmt.Errorf("%s: %w", key, err)
	}
	return models.SetDate(d), nil
}

func (r row) money(key string) (*decimal.Decimal, error) {
	s := strings.ReplaceAll(r.str(key), ",", "")
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid amount %q", key, s)
	}
	return &d, nil
}

func (r row) integer(key string) (*int, error) {
	s := r.str(key)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid number %q", key, s)
	}
	return &n, nil
}

// ParseBool accepts true/yes/1/fraud (any case) as true; everything else is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "fraud":
		return true
	default:
		return false
	}
}

func readRows(r io.Reader) ([]row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.ErrInvalidImportFile.WithMessage("CSV file is empty")
	}
	if err != nil {
		return nil, apperrors.ErrInvalidImportFile.Wrap(err)
	}

	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = normaliseHeader(h)
	}

	var rows []row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.ErrInvalidImportFile.Wrap(err)
		}
		line, _ := cr.FieldPos(0)
		if blank(record) {
			continue
		}

		values := make(map[string]string, len(keys))
		for i, v := range record {
			if i < len(keys) && keys[i] != "" {
				values[keys[i]] = v
			}
		}
		rows = append(rows, row{line: line, values: values})
	}
	return rows, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func insuranceInput(r row) (models.InsuranceCaseInput, error) {
	in := models.InsuranceCaseInput{
		AgentName:        r.str("agent_name"),
		InsuredName:      r.str("insured_name"),
		Country:          r.str("country"),
		PolicyNumber:     r.str("policy_number"),
		CaseType:         r.str("case_type"),
		InsuranceCompany: r.str("insurance_company"),
		Comment:          r.str("comment"),
		IsFraud:          ParseBool(r.str("is_fraud")),
		FraudType:        r.str("fraud_type"),
		FraudSource:      r.str("fraud_source"),
	}

	var err error
	if in.DateReceived, err = r.date("date_received"); err != nil {
		return in, err
	}
	if in.DateClosed, err = r.date("date_closed"); err != nil {
		return in, err
	}
	if in.ExpectedDays, err = r.integer("expected_days"); err != nil {
		return in, err
	}
	if in.ProcessingFee, err = r.money("processing_fee"); err != nil {
		return in, err
	}
	if in.AmountPaid, err = r.money("amount_paid"); err != nil {
		return in, err
	}
	return in, nil
}

func verificationInput(r row) (models.DocumentVerificationInput, error) {
	in := models.DocumentVerificationInput{
		AgentName:     r.str("agent_name"),
		ApplicantName: r.str("applicant_name"),
		DocumentType:  r.str("document_type"),
		Country:       r.str("country"),
		RegionTown:    r.str("region_town"),
		ARSNumber:     r.str("ars_number"),
		CheckID:       r.str("check_id"),
		PaymentStatus: r.str("payment_status"),
	}

	var err error
	if in.DateReceived, err = r.date("date_received"); err != nil {
		return in, err
	}
	if in.DateClosed, err = r.date("date_closed"); err != nil {
		return in, err
	}
	if in.ExpectedDays, err = r.integer("expected_days"); err != nil {
		return in, err
	}
	if in.ProcessingFee, err = r.money("processing_fee"); err != nil {
		return in, err
	}
	if in.AmountPaid, err = r.money("amount_paid"); err != nil {
		return in, err
	}
	if in.Total, err = r.money("total"); err != nil {
		return in, err
	}
	return in, nil
}

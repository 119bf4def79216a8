package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnspecifiedKey buckets rows whose group-by column is empty.
const UnspecifiedKey = "Unspecified"

// GroupStat is one bucket of a group-by breakdown.
type GroupStat struct {
	Key            string          `json:"key"`
	Count          int64           `json:"count"`
	Percentage     float64         `json:"percentage"`
	ProcessingFees decimal.Decimal `json:"processing_fees"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
}

// Overview holds the counts and averages common to both record types.
type Overview struct {
	Total             int64   `json:"total"`
	Completed         int64   `json:"completed"`
	Pending           int64   `json:"pending"`
	OnTime            int64   `json:"on_time"`
	Exceeded          int64   `json:"exceeded"`
	CompletionRate    float64 `json:"completion_rate"`
	OnTimePercentage  float64 `json:"on_time_percentage"`
	AverageTurnaround float64 `json:"average_turnaround"`
}

// Financials sums currency columns without float rounding.
type Financials struct {
	ProcessingFees decimal.Decimal `json:"processing_fees"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	Total          decimal.Decimal `json:"total"`
	NetRevenue     decimal.Decimal `json:"net_revenue"`
}

// AgentStat is per-agent throughput.
type AgentStat struct {
	AgentName         string          `json:"agent_name"`
	Total             int64           `json:"total"`
	Completed         int64           `json:"completed"`
	Pending           int64           `json:"pending"`
	CompletionRate    float64         `json:"completion_rate"`
	AverageTurnaround float64         `json:"average_turnaround"`
	ProcessingFees    decimal.Decimal `json:"processing_fees"`
}

// FraudAnalysis breaks down the fraud annotation of insurance cases.
type FraudAnalysis struct {
	FraudCases    int64       `json:"fraud_cases"`
	NonFraudCases int64       `json:"non_fraud_cases"`
	FraudRate     float64     `json:"fraud_rate"`
	ByFlag        []GroupStat `json:"by_flag"`
	ByType        []GroupStat `json:"by_type"`
	BySource      []GroupStat `json:"by_source"`
}

// CompanyFraudRate is fraud incidence per insurer.
type CompanyFraudRate struct {
	InsuranceCompany string  `json:"insurance_company"`
	TotalCases       int64   `json:"total_cases"`
	FraudCases       int64   `json:"fraud_cases"`
	FraudRate        float64 `json:"fraud_rate"`
}

// CountryRisk is fraud incidence and speed per country.
type CountryRisk struct {
	Country           string  `json:"country"`
	TotalCases        int64   `json:"total_cases"`
	FraudCases        int64   `json:"fraud_cases"`
	FraudRate         float64 `json:"fraud_rate"`
	AverageTurnaround float64 `json:"average_turnaround"`
}

// InsuranceReport is the analytics payload for insurance cases.
type InsuranceReport struct {
	Overview     Overview           `json:"overview"`
	Financials   Financials         `json:"financials"`
	Fraud        FraudAnalysis      `json:"fraud"`
	ByCountry    []GroupStat        `json:"by_country"`
	ByCaseType   []GroupStat        `json:"by_case_type"`
	ByStatus     []GroupStat        `json:"by_status"`
	ByAgent      []AgentStat        `json:"by_agent"`
	CompanyFraud []CompanyFraudRate `json:"company_fraud_rates"`
	CountryRisk  []CountryRisk      `json:"country_risk"`
	Filter       RecordFilter       `json:"filter"`
	GeneratedAt  time.Time          `json:"generated_at"`
}

// OutstandingPayments are verifications not yet marked PAID.
type OutstandingPayments struct {
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// VerificationReport is the analytics payload for document verifications.
type VerificationReport struct {
	Overview        Overview            `json:"overview"`
	Financials      Financials          `json:"financials"`
	Outstanding     OutstandingPayments `json:"outstanding_payments"`
	ByCountry       []GroupStat         `json:"by_country"`
	ByDocumentType  []GroupStat         `json:"by_document_type"`
	ByStatus        []GroupStat         `json:"by_status"`
	ByPaymentStatus []GroupStat         `json:"by_payment_status"`
	ByAgent         []AgentStat         `json:"by_agent"`
	Filter          RecordFilter        `json:"filter"`
	GeneratedAt     time.Time           `json:"generated_at"`
}

// DashboardReport combines both record types for the landing page.
type DashboardReport struct {
	Summary struct {
		TotalRecords int64 `json:"total_records"`
		Completed    int64 `json:"completed"`
		Pending      int64 `json:"pending"`
	} `json:"summary"`
	Insurance struct {
		Total             int64   `json:"total"`
		Closed            int64   `json:"closed"`
		Pending           int64   `json:"pending"`
		FraudCases        int64   `json:"fraud_cases"`
		FraudRate         float64 `json:"fraud_rate"`
		AverageTurnaround float64 `json:"average_turnaround"`
	} `json:"insurance_cases"`
	Verifications struct {
		Total             int64   `json:"total"`
		Completed         int64   `json:"completed"`
		Pending           int64   `json:"pending"`
		CompletionRate    float64 `json:"completion_rate"`
		AverageTurnaround float64 `json:"average_turnaround"`
	} `json:"document_verifications"`
	Financials  Financials   `json:"financials"`
	Filter      RecordFilter `json:"filter"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// BulkError describes one rejected row of a bulk create.
type BulkError struct {
	Index int         `json:"index"`
	Row   interface{} `json:"row"`
	Error string      `json:"error"`
}

// BulkResult summarises a bulk create. Rows are independent; failures do not roll back successes.
type BulkResult[T any] struct {
	Created        []T         `json:"created"`
	Errors         []BulkError `json:"errors"`
	TotalProcessed int         `json:"total_processed"`
	Successful     int         `json:"successful"`
	Failed         int         `json:"failed"`
}

package analytics

import (
	"sort"
	"strings"
	"time"

	"emiverify/internal/models"

	"github.com/shopspring/decimal"
)

const (
	fraudKey    = "Fraud"
	nonFraudKey = "Non-Fraud"
)

var hundred = decimal.NewFromInt(100)

// percent returns part/whole as a percentage rounded to two places; zero when whole is zero.
func percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromInt(part).Mul(hundred).Div(decimal.NewFromInt(whole)).Round(2).InexactFloat64()
}

// average returns sum/n rounded to two places; zero when n is zero.
func average(sum, n int64) float64 {
	if n == 0 {
		return 0
	}
	return decimal.NewFromInt(sum).Div(decimal.NewFromInt(n)).Round(2).InexactFloat64()
}

func keyOf(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.UnspecifiedKey
	}
	return s
}

// grouper accumulates count and currency sums per key.
type grouper struct {
	buckets map[string]*models.GroupStat
}

func newGrouper() *grouper {
	return &grouper{buckets: make(map[string]*models.GroupStat)}
}

func (g *grouper) add(key string, fee, paid decimal.Decimal) {
	key = keyOf(key)
	b, ok := g.buckets[key]
	if !ok {
		b = &models.GroupStat{Key: key, ProcessingFees: decimal.Zero, AmountPaid: decimal.Zero}
		g.buckets[key] = b
	}
	b.Count++
	b.ProcessingFees = b.ProcessingFees.Add(fee)
	b.AmountPaid = b.AmountPaid.Add(paid)
}

// stats returns the buckets by descending count, then key.
func (g *grouper) stats(total int64) []models.GroupStat {
	out := make([]models.GroupStat, 0, len(g.buckets))
	for _, b := range g.buckets {
		b.Percentage = percent(b.Count, total)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

type agentAcc struct {
	total     int64
	completed int64
	tatSum    int64
	fees      decimal.Decimal
}

type agentGrouper map[string]*agentAcc

func (g agentGrouper) add(name string, closed bool, tat int, fee decimal.Decimal) {
	name = keyOf(name)
	a, ok := g[name]
	if !ok {
		a = &agentAcc{fees: decimal.Zero}
		g[name] = a
	}
	a.total++
	if closed {
		a.completed++
	}
	a.tatSum += int64(tat)
	a.fees = a.fees.Add(fee)
}

func (g agentGrouper) stats() []models.AgentStat {
	out := make([]models.AgentStat, 0, len(g))
	for name, a := range g {
		out = append(out, models.AgentStat{
			AgentName:         name,
			Total:             a.total,
			Completed:         a.completed,
			Pending:           a.total - a.completed,
			CompletionRate:    percent(a.completed, a.total),
			AverageTurnaround: average(a.tatSum, a.total),
			ProcessingFees:    a.fees,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].AgentName < out[j].AgentName
	})
	return out
}

// overviewAcc builds the shared Overview one row at a time.
type overviewAcc struct {
	models.Overview
	tatSum int64
}

func (o *overviewAcc) add(closed bool, status models.TurnaroundStatus, tat int) {
	o.Total++
	if closed {
		o.Completed++
	}
	switch status {
	case models.StatusClosedOnTime:
		o.OnTime++
	case models.StatusClosedExceeded:
		o.Exceeded++
	}
	o.tatSum += int64(tat)
}

func (o *overviewAcc) result() models.Overview {
	ov := o.Overview
	ov.Pending = ov.Total - ov.Completed
	ov.CompletionRate = percent(ov.Completed, ov.Total)
	ov.OnTimePercentage = percent(ov.OnTime, ov.Completed)
	ov.AverageTurnaround = average(o.tatSum, ov.Total)
	return ov
}

type riskAcc struct {
	total  int64
	fraud  int64
	tatSum int64
}

// BuildInsuranceReport aggregates an already filtered set of insurance cases.
func BuildInsuranceReport(cases []models.InsuranceCase, filter models.RecordFilter, now time.Time) models.InsuranceReport {
	var ov overviewAcc
	fees, paid := decimal.Zero, decimal.Zero
	byCountry, byType, byStatus := newGrouper(), newGrouper(), newGrouper()
	byFlag, fraudByType, fraudBySource := newGrouper(), newGrouper(), newGrouper()
	agents := agentGrouper{}
	companies := map[string]*riskAcc{}
	countries := map[string]*riskAcc{}
	var fraudCount int64

	for i := range cases {
		c := &cases[i]
		closed := c.DateClosed != nil
		ov.add(closed, c.CaseStatus, c.TurnAroundTime)
		fees = fees.Add(c.ProcessingFee)
		paid = paid.Add(c.AmountPaid)

		byCountry.add(c.Country, c.ProcessingFee, c.AmountPaid)
		byType.add(c.CaseType, c.ProcessingFee, c.AmountPaid)
		byStatus.add(string(c.CaseStatus), c.ProcessingFee, c.AmountPaid)
		agents.add(c.AgentName, closed, c.TurnAroundTime, c.ProcessingFee)

		if c.IsFraud {
			fraudCount++
			byFlag.add(fraudKey, c.ProcessingFee, c.AmountPaid)
			fraudByType.add(c.FraudType, c.ProcessingFee, c.AmountPaid)
			fraudBySource.add(c.FraudSource, c.ProcessingFee, c.AmountPaid)
		} else {
			byFlag.add(nonFraudKey, c.ProcessingFee, c.AmountPaid)
		}

		addRisk(companies, c.InsuranceCompany, c.IsFraud, c.TurnAroundTime)
		addRisk(countries, c.Country, c.IsFraud, c.TurnAroundTime)
	}

	total := int64(len(cases))
	return models.InsuranceReport{
		Overview: ov.result(),
		Financials: models.Financials{
			ProcessingFees: fees,
			AmountPaid:     paid,
			Total:          fees.Add(paid),
			NetRevenue:     fees.Sub(paid),
		},
		Fraud: models.FraudAnalysis{
			FraudCases:    fraudCount,
			NonFraudCases: total - fraudCount,
			FraudRate:     percent(fraudCount, total),
			ByFlag:        byFlag.stats(total),
			ByType:        fraudByType.stats(fraudCount),
			BySource:      fraudBySource.stats(fraudCount),
		},
		ByCountry:    byCountry.stats(total),
		ByCaseType:   byType.stats(total),
		ByStatus:     byStatus.stats(total),
		ByAgent:      agents.stats(),
		CompanyFraud: companyFraudRates(companies),
		CountryRisk:  countryRisk(countries),
		Filter:       filter,
		GeneratedAt:  now,
	}
}

func addRisk(m map[string]*riskAcc, key string, fraud bool, tat int) {
	key = keyOf(key)
	r, ok := m[key]
	if !ok {
		r = &riskAcc{}
		m[key] = r
	}
	r.total++
	if fraud {
		r.fraud++
	}
	r.tatSum += int64(tat)
}

func companyFraudRates(m map[string]*riskAcc) []models.CompanyFraudRate {
	out := make([]models.CompanyFraudRate, 0, len(m))
	for name, r := range m {
		out = append(out, models.CompanyFraudRate{
			InsuranceCompany: name,
			TotalCases:       r.total,
			FraudCases:       r.fraud,
			FraudRate:        percent(r.fraud, r.total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FraudRate != out[j].FraudRate {
			return out[i].FraudRate > out[j].FraudRate
		}
		if out[i].TotalCases != out[j].TotalCases {
			return out[i].TotalCases > out[j].TotalCases
		}
		return out[i].InsuranceCompany < out[j].InsuranceCompany
	})
	return out
}

func countryRisk(m map[string]*riskAcc) []models.CountryRisk {
	out := make([]models.CountryRisk, 0, len(m))
	for name, r := range m {
		out = append(out, models.CountryRisk{
			Country:           name,
			TotalCases:        r.total,
			FraudCases:        r.fraud,
			FraudRate:         percent(r.fraud, r.total),
			AverageTurnaround: average(r.tatSum, r.total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FraudRate != out[j].FraudRate {
			return out[i].FraudRate > out[j].FraudRate
		}
		if out[i].TotalCases != out[j].TotalCases {
			return out[i].TotalCases > out[j].TotalCases
		}
		return out[i].Country < out[j].Country
	})
	return out
}

// BuildVerificationReport aggregates an already filtered set of document verifications.
func BuildVerificationReport(docs []models.DocumentVerification, filter models.RecordFilter, now time.Time) models.VerificationReport {
	var ov overviewAcc
	fees, paid, totals := decimal.Zero, decimal.Zero, decimal.Zero
	outstanding := models.OutstandingPayments{Amount: decimal.Zero}
	byCountry, byType, byStatus, byPayment := newGrouper(), newGrouper(), newGrouper(), newGrouper()
	agents := agentGrouper{}

	for i := range docs {
		d := &docs[i]
		closed := d.DateClosed != nil
		ov.add(closed, d.TurnAroundStatus, d.TurnAroundTime)
		fees = fees.Add(d.ProcessingFee)
		paid = paid.Add(d.AmountPaid)
		totals = totals.Add(d.Total)

		if d.IsOutstanding() {
			outstanding.Count++
			outstanding.Amount = outstanding.Amount.Add(d.Total)
		}

		byCountry.add(d.Country, d.ProcessingFee, d.AmountPaid)
		byType.add(d.DocumentType, d.ProcessingFee, d.AmountPaid)
		byStatus.add(string(d.TurnAroundStatus), d.ProcessingFee, d.AmountPaid)
		byPayment.add(strings.ToUpper(strings.TrimSpace(d.PaymentStatus)), d.ProcessingFee, d.AmountPaid)
		agents.add(d.AgentName, closed, d.TurnAroundTime, d.ProcessingFee)
	}

	total := int64(len(docs))
	return models.VerificationReport{
		Overview: ov.result(),
		Financials: models.Financials{
			ProcessingFees: fees,
			AmountPaid:     paid,
			Total:          totals,
			NetRevenue:     fees.Sub(paid),
		},
		Outstanding:     outstanding,
		ByCountry:       byCountry.stats(total),
		ByDocumentType:  byType.stats(total),
		ByStatus:        byStatus.stats(total),
		ByPaymentStatus: byPayment.stats(total),
		ByAgent:         agents.stats(),
		Filter:          filter,
		GeneratedAt:     now,
	}
}

// BuildDashboard combines both record sets into the landing page summary.
func BuildDashboard(cases []models.InsuranceCase, docs []models.DocumentVerification, filter models.RecordFilter, now time.Time) models.DashboardReport {
	ins := BuildInsuranceReport(cases, filter, now)
	ver := BuildVerificationReport(docs, filter, now)

	var r models.DashboardReport
	r.Insurance.Total = ins.Overview.Total
	r.Insurance.Closed = ins.Overview.Completed
	r.Insurance.Pending = ins.Overview.Pending
	r.Insurance.FraudCases = ins.Fraud.FraudCases
	r.Insurance.FraudRate = ins.Fraud.FraudRate
	r.Insurance.AverageTurnaround = ins.Overview.AverageTurnaround

	r.Verifications.Total = ver.Overview.Total
	r.Verifications.Completed = ver.Overview.Completed
	r.Verifications.Pending = ver.Overview.Pending
	r.Verifications.CompletionRate = ver.Overview.CompletionRate
	r.Verifications.AverageTurnaround = ver.Overview.AverageTurnaround

	r.Summary.TotalRecords = ins.Overview.Total + ver.Overview.Total
	r.Summary.Completed = ins.Overview.Completed + ver.Overview.Completed
	r.Summary.Pending = ins.Overview.Pending + ver.Overview.Pending

	fees := ins.Financials.ProcessingFees.Add(ver.Financials.ProcessingFees)
	paid := ins.Financials.AmountPaid.Add(ver.Financials.AmountPaid)
	r.Financials = models.Financials{
		ProcessingFees: fees,
		AmountPaid:     paid,
		Total:          fees.Add(paid),
		NetRevenue:     fees.Sub(paid),
	}
	r.Filter = filter
	r.GeneratedAt = now
	return r
}

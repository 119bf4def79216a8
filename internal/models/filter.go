package models

// RecordFilter narrows list, report and export queries. Zero values mean "no filter".
type RecordFilter struct {
	StartDate     *Date  `json:"start_date,omitempty"`
	EndDate       *Date  `json:"end_date,omitempty"`
	AgentName     string `json:"agent_name,omitempty"`
	Country       string `json:"country,omitempty"`
	CaseStatus    string `json:"case_status,omitempty"`
	CaseType      string `json:"case_type,omitempty"`
	DocumentType  string `json:"document_type,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
}

// FilterQuery is the raw query-string form of RecordFilter.
type FilterQuery struct {
	StartDate     string `query:"start_date"`
	EndDate       string `query:"end_date"`
	AgentName     string `query:"agent_name"`
	Country       string `query:"country"`
	CaseStatus    string `query:"case_status"`
	CaseType      string `query:"case_type"`
	DocumentType  string `query:"document_type"`
	PaymentStatus string `query:"payment_status"`
}

// Filter parses the dates and returns the typed filter.
func (q FilterQuery) Filter() (RecordFilter, error) {
	f := RecordFilter{
		AgentName:     q.AgentName,
		Country:       q.Country,
		CaseStatus:    q.CaseStatus,
		CaseType:      q.CaseType,
		DocumentType:  q.DocumentType,
		PaymentStatus: q.PaymentStatus,
	}
	if q.StartDate != "" {
		d, err := ParseDate(q.StartDate)
		if err != nil {
			return f, err
		}
		f.StartDate = &d
	}
	if q.EndDate != "" {
		d, err := ParseDate(q.EndDate)
		if err != nil {
			return f, err
		}
		f.EndDate = &d
	}
	return f, nil
}

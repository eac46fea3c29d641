package models

import "github.com/shopspring/decimal"

// AppState holds the whole state of one user's running app
type AppState struct {
	View             View            `json:"view"`
	DarkMode         bool            `json:"darkMode"`
	Reports          []Report        `json:"reports"`
	Balance          decimal.Decimal `json:"balance"`
	Experience       int             `json:"experience"`
	Notification     *Notification   `json:"notification,omitempty"`
	SelectedReportID *int            `json:"selectedReportId,omitempty"`
	Draft            FormDraft       `json:"draft"`
}

// SelectedReport returns the report opened in the detail overlay, if any
func (s AppState) SelectedReport() (Report, bool) {
	if s.SelectedReportID == nil {
		return Report{}, false
	}
	for _, r := range s.Reports {
		if r.ID == *s.SelectedReportID {
			return r, true
		}
	}
	return Report{}, false
}

// ApprovedReports returns the reports that credited a bonus, newest first
func (s AppState) ApprovedReports() []Report {
	var out []Report
	for _, r := range s.Reports {
		if r.Approved() {
			out = append(out, r)
		}
	}
	return out
}

// RecentReports returns at most n reports, newest first
func (s AppState) RecentReports(n int) []Report {
	if n > len(s.Reports) {
		n = len(s.Reports)
	}
	return s.Reports[:n]
}

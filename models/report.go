package models

import "github.com/shopspring/decimal"

// ReportStatus is the review outcome of a report
type ReportStatus string

// Report statuses. The submission flow only ever produces ReportStatusApproved.
const (
	ReportStatusApproved    ReportStatus = "Aprovado"
	ReportStatusUnderReview ReportStatus = "Em Análise"
)

// ReportDateLayout is the dd/mm/yyyy layout used for DateCreated
const ReportDateLayout = "02/01/2006"

// Report holds the structure for a user-submitted record of an observed violation.
// PointPenalty and Bonus are copies of the violation type taken at commit time.
type Report struct {
	ID            int             `json:"id"`
	Plate         string          `json:"plate"`
	ViolationName string          `json:"violationName"`
	DateCreated   string          `json:"dateCreated"`
	Location      string          `json:"location"`
	Status        ReportStatus    `json:"status"`
	PointPenalty  int             `json:"pointPenalty"`
	Bonus         decimal.Decimal `json:"bonus"`
	Experience    int             `json:"experience"`
	Evidence      []EvidenceItem  `json:"evidence,omitempty"`
}

// Approved reports whether the report has been approved
func (r Report) Approved() bool {
	return r.Status == ReportStatusApproved
}

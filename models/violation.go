package models

import "github.com/shopspring/decimal"

// Severity is the legal gravity band of a traffic infraction
type Severity string

// Severity bands as printed on the violation catalog
const (
	SeverityLeve       Severity = "Leve"
	SeverityMedia      Severity = "Média"
	SeverityGrave      Severity = "Grave"
	SeverityGravissima Severity = "Gravíssima"
)

// Points returns the license penalty points that belong to the band
func (s Severity) Points() int {
	switch s {
	case SeverityLeve:
		return 3
	case SeverityMedia:
		return 4
	case SeverityGrave:
		return 5
	case SeverityGravissima:
		return 7
	}
	return 0
}

// IsValid reports whether s is one of the known bands
func (s Severity) IsValid() bool {
	return s.Points() > 0
}

// ViolationType holds the structure for a catalog entry describing a traffic infraction,
// its point penalty and the bonus credited to the reporter
type ViolationType struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	PointPenalty int             `json:"pointPenalty"`
	Bonus        decimal.Decimal `json:"bonus"`
	Severity     Severity        `json:"severity"`
}

package models

// LocatingPlaceholder is shown while the location lookup is running
const LocatingPlaceholder = "Identificando local..."

// FormDraft holds the structure for the in-progress report creation form
type FormDraft struct {
	Plate           string         `json:"plate"`
	ViolationTypeID int            `json:"violationTypeId"`
	Evidence        []EvidenceItem `json:"evidence"`
	Location        string         `json:"location"`
	Locating        bool           `json:"locating"`
	Submitting      bool           `json:"submitting"`
}

// Complete reports whether the draft has every field the submission flow requires
func (d FormDraft) Complete() bool {
	return d.Plate != "" && d.ViolationTypeID != 0 && len(d.Evidence) > 0
}

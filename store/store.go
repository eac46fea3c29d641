// Package store holds the pure transitions of the app state. Every user action and every timer
// completion is an Event; Apply turns (state, event) into the next state without touching the
// input, so a caller can always fall back to the previous value.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/linesmerrill/fiscal-cidadao/models"
)

// Messages shown in the toast
const (
	IncompleteDraftMessage = "Preencha todos os campos e anexe provas!"
	LocateFailedMessage    = "Não foi possível identificar o local."
	SubmitFailedMessage    = "Não foi possível registrar a denúncia."
)

// Errors returned by transitions. The state is left unchanged whenever one is returned.
var (
	ErrIncompleteDraft      = errors.New("draft is missing plate, violation type or evidence")
	ErrSubmissionInFlight   = errors.New("a submission is already in flight")
	ErrNotSubmitting        = errors.New("no submission in flight")
	ErrAlreadyLocating      = errors.New("location lookup already in progress")
	ErrEvidenceIndex        = errors.New("evidence index out of range")
	ErrReportNotFound       = errors.New("report not found")
	ErrUnknownView          = errors.New("unknown view")
	ErrUnknownViolationType = errors.New("unknown violation type")
	ErrInvalidAward         = errors.New("award must not be negative")
)

var plateCase = cases.Upper(language.BrazilianPortuguese)

// Event is a single transition of the app state
type Event interface {
	apply(s models.AppState) (models.AppState, error)
}

// Apply runs events in order. If any of them fails the original state is returned together
// with the error.
func Apply(s models.AppState, events ...Event) (models.AppState, error) {
	next := s
	for _, ev := range events {
		var err error
		next, err = ev.apply(next)
		if err != nil {
			return s, err
		}
	}
	return next, nil
}

// NeedsLocation reports whether entering the current view should start a location lookup
func NeedsLocation(s models.AppState) bool {
	return s.View == models.ViewNewReport && s.Draft.Location == "" && !s.Draft.Locating
}

// SuccessMessage is the toast shown after a committed report
func SuccessMessage(bonus decimal.Decimal, xp int) string {
	return fmt.Sprintf("Sucesso! +R$ %s | +%d XP", bonus.StringFixed(2), xp)
}

// Navigate replaces the active view
type Navigate struct {
	View models.View
}

func (e Navigate) apply(s models.AppState) (models.AppState, error) {
	if !e.View.IsValid() {
		return s, fmt.Errorf("%w: %d", ErrUnknownView, int(e.View))
	}
	s.View = e.View
	return s, nil
}

// ToggleTheme flips between the light and dark theme
type ToggleTheme struct{}

func (ToggleTheme) apply(s models.AppState) (models.AppState, error) {
	s.DarkMode = !s.DarkMode
	return s, nil
}

// EditDraft updates the plate and/or violation type of the draft. Nil fields are left alone.
type EditDraft struct {
	Plate           *string
	ViolationTypeID *int
}

func (e EditDraft) apply(s models.AppState) (models.AppState, error) {
	if s.Draft.Submitting {
		return s, ErrSubmissionInFlight
	}
	if e.Plate != nil {
		s.Draft.Plate = strings.TrimSpace(*e.Plate)
	}
	if e.ViolationTypeID != nil {
		if *e.ViolationTypeID < 0 {
			return s, fmt.Errorf("%w: %d", ErrUnknownViolationType, *e.ViolationTypeID)
		}
		s.Draft.ViolationTypeID = *e.ViolationTypeID
	}
	return s, nil
}

// AttachEvidence appends items to the draft evidence, keeping what is already there
type AttachEvidence struct {
	Items []models.EvidenceItem
}

func (e AttachEvidence) apply(s models.AppState) (models.AppState, error) {
	if s.Draft.Submitting {
		return s, ErrSubmissionInFlight
	}
	if len(e.Items) == 0 {
		return s, nil
	}
	evidence := make([]models.EvidenceItem, 0, len(s.Draft.Evidence)+len(e.Items))
	evidence = append(evidence, s.Draft.Evidence...)
	evidence = append(evidence, e.Items...)
	s.Draft.Evidence = evidence
	return s, nil
}

// RemoveEvidence drops the evidence item at Index, preserving the order of the rest
type RemoveEvidence struct {
	Index int
}

func (e RemoveEvidence) apply(s models.AppState) (models.AppState, error) {
	if s.Draft.Submitting {
		return s, ErrSubmissionInFlight
	}
	if e.Index < 0 || e.Index >= len(s.Draft.Evidence) {
		return s, fmt.Errorf("%w: %d of %d", ErrEvidenceIndex, e.Index, len(s.Draft.Evidence))
	}
	evidence := make([]models.EvidenceItem, 0, len(s.Draft.Evidence)-1)
	evidence = append(evidence, s.Draft.Evidence[:e.Index]...)
	evidence = append(evidence, s.Draft.Evidence[e.Index+1:]...)
	s.Draft.Evidence = evidence
	return s, nil
}

// LocateStarted marks the draft location as being looked up. Re-entry is refused.
type LocateStarted struct{}

func (LocateStarted) apply(s models.AppState) (models.AppState, error) {
	if s.Draft.Locating {
		return s, ErrAlreadyLocating
	}
	s.Draft.Locating = true
	s.Draft.Location = models.LocatingPlaceholder
	return s, nil
}

// LocateFinished stores the looked up address and clears the busy flag. An empty Address
// means the lookup failed and leaves the location unset.
type LocateFinished struct {
	Address string
}

func (e LocateFinished) apply(s models.AppState) (models.AppState, error) {
	s.Draft.Locating = false
	s.Draft.Location = e.Address
	return s, nil
}

// SubmitRequested validates the draft and, if complete, moves it to pending
type SubmitRequested struct{}

func (SubmitRequested) apply(s models.AppState) (models.AppState, error) {
	if s.Draft.Submitting {
		return s, ErrSubmissionInFlight
	}
	if !s.Draft.Complete() {
		return s, ErrIncompleteDraft
	}
	s.Draft.Submitting = true
	return s, nil
}

// SubmitCommitted turns the pending draft into an approved report, credits the reporter and
// returns to the dashboard
type SubmitCommitted struct {
	ReportID   int
	Violation  models.ViolationType
	Experience int
	At         time.Time
}

func (e SubmitCommitted) apply(s models.AppState) (models.AppState, error) {
	if !s.Draft.Submitting {
		return s, ErrNotSubmitting
	}
	if e.Violation.ID != s.Draft.ViolationTypeID {
		return s, fmt.Errorf("%w: draft has %d, got %d", ErrUnknownViolationType, s.Draft.ViolationTypeID, e.Violation.ID)
	}
	if e.Experience < 0 || e.Violation.Bonus.IsNegative() {
		return s, ErrInvalidAward
	}

	evidence := make([]models.EvidenceItem, len(s.Draft.Evidence))
	copy(evidence, s.Draft.Evidence)
	report := models.Report{
		ID:            e.ReportID,
		Plate:         plateCase.String(s.Draft.Plate),
		ViolationName: e.Violation.Name,
		DateCreated:   e.At.Format(models.ReportDateLayout),
		Location:      s.Draft.Location,
		Status:        models.ReportStatusApproved,
		PointPenalty:  e.Violation.PointPenalty,
		Bonus:         e.Violation.Bonus,
		Experience:    e.Experience,
		Evidence:      evidence,
	}

	reports := make([]models.Report, 0, len(s.Reports)+1)
	reports = append(reports, report)
	reports = append(reports, s.Reports...)
	s.Reports = reports
	s.Balance = s.Balance.Add(e.Violation.Bonus)
	s.Experience += e.Experience
	s.Draft = models.FormDraft{}
	s.View = models.ViewDashboard
	return s, nil
}

// SubmitAborted drops a pending submission without touching anything else
type SubmitAborted struct{}

func (SubmitAborted) apply(s models.AppState) (models.AppState, error) {
	if !s.Draft.Submitting {
		return s, ErrNotSubmitting
	}
	s.Draft.Submitting = false
	return s, nil
}

// NotificationShown replaces whatever toast is visible
type NotificationShown struct {
	Notification models.Notification
}

func (e NotificationShown) apply(s models.AppState) (models.AppState, error) {
	n := e.Notification
	s.Notification = &n
	return s, nil
}

// NotificationExpired clears the toast only if it is still the one identified by Token
type NotificationExpired struct {
	Token uint64
}

func (e NotificationExpired) apply(s models.AppState) (models.AppState, error) {
	if s.Notification != nil && s.Notification.Token == e.Token {
		s.Notification = nil
	}
	return s, nil
}

// ReportSelected opens the detail overlay for a report
type ReportSelected struct {
	ID int
}

func (e ReportSelected) apply(s models.AppState) (models.AppState, error) {
	for _, r := range s.Reports {
		if r.ID == e.ID {
			id := e.ID
			s.SelectedReportID = &id
			return s, nil
		}
	}
	return s, fmt.Errorf("%w: %d", ErrReportNotFound, e.ID)
}

// ReportClosed closes the detail overlay
type ReportClosed struct{}

func (ReportClosed) apply(s models.AppState) (models.AppState, error) {
	s.SelectedReportID = nil
	return s, nil
}

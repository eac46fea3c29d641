package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/fiscal-cidadao/api"
	"github.com/linesmerrill/fiscal-cidadao/config"
	"github.com/linesmerrill/fiscal-cidadao/models"
	"github.com/linesmerrill/fiscal-cidadao/session"
	"github.com/linesmerrill/fiscal-cidadao/store"
	templates "github.com/linesmerrill/fiscal-cidadao/templates/html"
)

// Screen exported for testing purposes
type Screen struct {
	Catalog
	Renderer       *templates.Renderer
	MaxUploadBytes int64
}

func backHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// IndexHandler renders the active screen of the session
func (sc Screen) IndexHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	p, err := sc.page(ctx, s, s.Snapshot())
	if err != nil {
		config.ErrorStatus("failed to build page", http.StatusInternalServerError, w, err)
		return
	}

	var buf bytes.Buffer
	if err := sc.Renderer.Render(&buf, p); err != nil {
		config.ErrorStatus("failed to render page", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ViewHandler switches to the screen named in the url
func (sc Screen) ViewHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	v, err := models.ParseView(mux.Vars(r)["view"])
	if err != nil {
		config.ErrorStatus("unknown view", http.StatusNotFound, w, err)
		return
	}
	if err := s.Navigate(v); err != nil {
		config.ErrorStatus("failed to navigate", statusFor(err), w, err)
		return
	}
	backHome(w, r)
}

// ThemeHandler toggles dark mode
func (sc Screen) ThemeHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	if err := s.ToggleTheme(); err != nil {
		config.ErrorStatus("failed to toggle theme", statusFor(err), w, err)
		return
	}
	backHome(w, r)
}

// applyDraftForm copies the plate, violation and evidence of a submitted form into the draft
func (sc Screen) applyDraftForm(w http.ResponseWriter, r *http.Request, s *session.Session) error {
	if err := parseForm(w, r, sc.MaxUploadBytes); err != nil {
		return err
	}

	var plate *string
	if v, ok := r.PostForm["plate"]; ok && len(v) > 0 {
		plate = &v[0]
	}
	var violation *int
	if v := r.PostForm.Get("violation"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return errors.Join(store.ErrUnknownViolationType, err)
		}
		violation = &id
	}
	if plate != nil || violation != nil {
		if err := s.EditDraft(r.Context(), plate, violation); err != nil {
			return err
		}
	}

	uploads, err := uploadsFrom(r)
	if err != nil {
		return err
	}
	if len(uploads) > 0 {
		if _, err := s.AttachEvidence(r.Context(), uploads); err != nil {
			return err
		}
	}
	return nil
}

// DraftHandler saves the creation form
func (sc Screen) DraftHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	if err := sc.applyDraftForm(w, r, s); err != nil {
		config.ErrorStatus("failed to update draft", statusFor(err), w, err)
		return
	}
	backHome(w, r)
}

// RemoveEvidenceHandler saves the form and drops one evidence item of the draft
func (sc Screen) RemoveEvidenceHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		config.ErrorStatus("invalid evidence index", http.StatusBadRequest, w, err)
		return
	}
	if err := sc.applyDraftForm(w, r, s); err != nil {
		config.ErrorStatus("failed to update draft", statusFor(err), w, err)
		return
	}
	if err := s.RemoveEvidence(r.Context(), index); err != nil {
		config.ErrorStatus("failed to remove evidence", statusFor(err), w, err)
		return
	}
	backHome(w, r)
}

// LocateHandler saves the form and starts a location lookup
func (sc Screen) LocateHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	if err := sc.applyDraftForm(w, r, s); err != nil {
		config.ErrorStatus("failed to update draft", statusFor(err), w, err)
		return
	}
	if _, err := s.Locate(); err != nil {
		config.ErrorStatus("failed to locate", statusFor(err), w, err)
		return
	}
	backHome(w, r)
}

// SubmitHandler saves the form and submits the draft. An incomplete draft is reported through
// the toast, so the screen is shown again either way.
func (sc Screen) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	if err := sc.applyDraftForm(w, r, s); err != nil {
		config.ErrorStatus("failed to update draft", statusFor(err), w, err)
		return
	}

	err := s.Submit()
	switch {
	case err == nil, errors.Is(err, store.ErrIncompleteDraft), errors.Is(err, store.ErrSubmissionInFlight):
		zap.S().Debugw("submission requested", "session", s.ID, "error", err)
		backHome(w, r)
	default:
		config.ErrorStatus("failed to submit report", statusFor(err), w, err)
	}
}

// ReportHandler opens the detail overlay of a report
func (sc Screen) ReportHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["report_id"])
	if err != nil {
		config.ErrorStatus("invalid report id", http.StatusBadRequest, w, err)
		return
	}
	if err := s.SelectReport(id); err != nil {
		config.ErrorStatus("failed to open report", statusFor(err), w, err)
		return
	}
	backHome(w, r)
}

// CloseReportHandler closes the detail overlay
func (sc Screen) CloseReportHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	if err := s.CloseReport(); err != nil {
		config.ErrorStatus("failed to close report", statusFor(err), w, err)
		return
	}
	backHome(w, r)
}

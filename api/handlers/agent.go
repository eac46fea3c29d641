package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/linesmerrill/fiscal-cidadao/api"
	"github.com/linesmerrill/fiscal-cidadao/config"
	"github.com/linesmerrill/fiscal-cidadao/databases"
	"github.com/linesmerrill/fiscal-cidadao/models"
	"github.com/linesmerrill/fiscal-cidadao/store"
)

// Agent exported for testing purposes
type Agent struct {
	Catalog
	MaxUploadBytes int64
}

// ViewRequest is the body of PUT /view
type ViewRequest struct {
	View string `json:"view" validate:"required"`
}

// DraftRequest is the body of PUT /draft. Omitted fields are left unchanged.
type DraftRequest struct {
	Plate           *string `json:"plate" validate:"omitempty,max=16"`
	ViolationTypeID *int    `json:"violationTypeId" validate:"omitempty,gte=0"`
}

// SelectionRequest is the body of PUT /selection
type SelectionRequest struct {
	ReportID *int `json:"reportId" validate:"required"`
}

// LocateResponse reports whether a lookup was started
type LocateResponse struct {
	Started bool `json:"started"`
}

// StateHandler returns the whole app state of the session
func (a Agent) StateHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// ViewHandler switches screens
func (a Agent) ViewHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	var req ViewRequest
	if err := decodeJSON(r, &req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	v, err := models.ParseView(req.View)
	if err != nil {
		config.ErrorStatus("unknown view", http.StatusNotFound, w, err)
		return
	}
	if err := s.Navigate(v); err != nil {
		config.ErrorStatus("failed to navigate", statusFor(err), w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// ThemeHandler toggles dark mode
func (a Agent) ThemeHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	if err := s.ToggleTheme(); err != nil {
		config.ErrorStatus("failed to toggle theme", statusFor(err), w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// DraftHandler edits the plate and/or violation type of the draft
func (a Agent) DraftHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	var req DraftRequest
	if err := decodeJSON(r, &req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := s.EditDraft(r.Context(), req.Plate, req.ViolationTypeID); err != nil {
		config.ErrorStatus("failed to update draft", statusFor(err), w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot().Draft)
}

// AttachEvidenceHandler stores the uploaded files and appends them to the draft
func (a Agent) AttachEvidenceHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	if err := parseForm(w, r, a.MaxUploadBytes); err != nil {
		config.ErrorStatus("failed to parse upload", statusFor(err), w, err)
		return
	}
	uploads, err := uploadsFrom(r)
	if err != nil {
		config.ErrorStatus("failed to read upload", http.StatusBadRequest, w, err)
		return
	}
	items, err := s.AttachEvidence(r.Context(), uploads)
	if err != nil {
		config.ErrorStatus("failed to attach evidence", statusFor(err), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, items)
}

// RemoveEvidenceHandler drops one evidence item of the draft
func (a Agent) RemoveEvidenceHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		config.ErrorStatus("invalid evidence index", http.StatusBadRequest, w, err)
		return
	}
	if err := s.RemoveEvidence(r.Context(), index); err != nil {
		config.ErrorStatus("failed to remove evidence", statusFor(err), w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot().Draft)
}

// LocateHandler starts a location lookup. A lookup already in flight is reported as a conflict.
func (a Agent) LocateHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	started, err := s.Locate()
	if err != nil {
		config.ErrorStatus("failed to locate", statusFor(err), w, err)
		return
	}
	if !started {
		config.ErrorStatus("failed to locate", http.StatusConflict, w, store.ErrAlreadyLocating)
		return
	}
	writeJSON(w, http.StatusAccepted, LocateResponse{Started: true})
}

// LocationHandler returns the resolved draft location as a GeoJSON feature
func (a Agent) LocationHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	fix, ok := s.Location()
	if !ok {
		config.ErrorStatus("location not resolved", http.StatusNotFound, w, databases.ErrNotFound)
		return
	}
	b, err := fix.Feature().MarshalJSON()
	if err != nil {
		config.ErrorStatus("failed to marshal location", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SubmitHandler submits the draft. The report is committed after the submission delay.
func (a Agent) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	if err := s.Submit(); err != nil {
		config.ErrorStatus("failed to submit report", statusFor(err), w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, s.Snapshot())
}

// ReportsHandler returns the history, newest first
func (a Agent) ReportsHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	reports := s.Snapshot().Reports
	if reports == nil {
		reports = []models.Report{}
	}
	writeJSON(w, http.StatusOK, reports)
}

// ReportByIDHandler returns one report of the history
func (a Agent) ReportByIDHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["report_id"])
	if err != nil {
		config.ErrorStatus("invalid report id", http.StatusBadRequest, w, err)
		return
	}
	for _, rep := range s.Snapshot().Reports {
		if rep.ID == id {
			writeJSON(w, http.StatusOK, rep)
			return
		}
	}
	config.ErrorStatus("failed to get report by ID", http.StatusNotFound, w, store.ErrReportNotFound)
}

// SelectHandler opens the detail overlay of a report
func (a Agent) SelectHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	var req SelectionRequest
	if err := decodeJSON(r, &req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := s.SelectReport(*req.ReportID); err != nil {
		config.ErrorStatus("failed to select report", statusFor(err), w, err)
		return
	}
	rep, _ := s.Snapshot().SelectedReport()
	writeJSON(w, http.StatusOK, rep)
}

// DeselectHandler closes the detail overlay
func (a Agent) DeselectHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	if err := s.CloseReport(); err != nil {
		config.ErrorStatus("failed to close report", statusFor(err), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// WalletHandler returns the balance and the statement of credited bonuses
func (a Agent) WalletHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	st := s.Snapshot()
	statement := st.ApprovedReports()
	if statement == nil {
		statement = []models.Report{}
	}
	writeJSON(w, http.StatusOK, models.Wallet{Balance: st.Balance, Statement: statement})
}

// RankingHandler returns the monthly leaderboard
func (a Agent) RankingHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := a.Leaderboard.Find(ctx, databases.AgentName)
	if err != nil {
		config.ErrorStatus("failed to get ranking", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, dbResp)
}

// ProfileHandler returns the reporter profile with the resolved rank
func (a Agent) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	st := s.Snapshot()
	standing, err := a.standing(ctx, st.Experience)
	if err != nil {
		config.ErrorStatus("failed to resolve rank", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, databases.AgentProfile(standing, st.DarkMode))
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/fiscal-cidadao/api"
	"github.com/linesmerrill/fiscal-cidadao/config"
	"github.com/linesmerrill/fiscal-cidadao/databases"
)

// Evidence exported for testing purposes
type Evidence struct {
	DB databases.EvidenceDatabase
}

// owned finds the blob of the url token, hiding blobs of other sessions
func (e Evidence) owned(w http.ResponseWriter, r *http.Request) (*databases.EvidenceBlob, bool) {
	s, ok := currentSession(w, r)
	if !ok {
		return nil, false
	}
	token := mux.Vars(r)["token"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	blob, err := e.DB.FindOne(ctx, token)
	if err == nil && blob.Owner != s.ID {
		err = databases.ErrNotFound
	}
	if err != nil {
		config.ErrorStatus("failed to get evidence", statusFor(err), w, err)
		return nil, false
	}
	return blob, true
}

// EvidenceHandler serves the original uploaded file
func (e Evidence) EvidenceHandler(w http.ResponseWriter, r *http.Request) {
	blob, ok := e.owned(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", blob.Item.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(blob.Data)
}

// ThumbnailHandler serves a JPEG preview of an image evidence
func (e Evidence) ThumbnailHandler(w http.ResponseWriter, r *http.Request) {
	blob, ok := e.owned(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	thumb, err := e.DB.Thumbnail(ctx, blob.Item.Token)
	switch {
	case errors.Is(err, databases.ErrNoThumbnail):
		config.ErrorStatus("evidence has no thumbnail", http.StatusNotFound, w, err)
		return
	case err != nil:
		// undecodable images fall back to the original bytes
		zap.S().Debugw("thumbnail failed, serving original", "token", blob.Item.Token, "error", err)
		e.EvidenceHandler(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(thumb)
}

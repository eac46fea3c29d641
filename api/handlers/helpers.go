package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"github.com/linesmerrill/fiscal-cidadao/api"
	"github.com/linesmerrill/fiscal-cidadao/config"
	"github.com/linesmerrill/fiscal-cidadao/databases"
	"github.com/linesmerrill/fiscal-cidadao/session"
	"github.com/linesmerrill/fiscal-cidadao/store"
)

// evidenceField is the multipart field carrying evidence files
const evidenceField = "evidence"

var validate = validator.New()

// statusFor maps domain errors to http status codes
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, store.ErrIncompleteDraft):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrSubmissionInFlight),
		errors.Is(err, store.ErrAlreadyLocating),
		errors.Is(err, store.ErrNotSubmitting):
		return http.StatusConflict
	case errors.Is(err, store.ErrReportNotFound),
		errors.Is(err, store.ErrUnknownView),
		errors.Is(err, databases.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrEvidenceIndex),
		errors.Is(err, store.ErrUnknownViolationType),
		errors.Is(err, store.ErrInvalidAward):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, session.ErrClosed):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// currentSession returns the session attached by api.SessionMiddleware, writing an error if
// there is none
func currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := api.SessionFromContext(r.Context())
	if !ok {
		config.ErrorStatus("no session attached to request", http.StatusInternalServerError, w, nil)
		return nil, false
	}
	return s, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

// decodeJSON reads and validates a json request body into v
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return validate.Struct(v)
}

// parseForm parses a multipart or urlencoded form body capped at maxBytes
func parseForm(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	err := r.ParseMultipartForm(maxBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// uploadsFrom reads every evidence file of a parsed multipart form
func uploadsFrom(r *http.Request) ([]session.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[evidenceField]
	uploads := make([]session.Upload, 0, len(headers))
	for _, fh := range headers {
		data, err := readPart(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, session.Upload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return uploads, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Package session owns the running app of one browser. A Session serialises every transition
// of its state behind a mutex, owns the timers that act on that state, and releases its
// evidence blobs when it is closed.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/fiscal-cidadao/databases"
	"github.com/linesmerrill/fiscal-cidadao/geolocation"
	"github.com/linesmerrill/fiscal-cidadao/models"
	"github.com/linesmerrill/fiscal-cidadao/store"
	"github.com/linesmerrill/fiscal-cidadao/tasks"
)

// Task keys
const (
	taskGeolocation  = "geolocation"
	taskSubmission   = "submission"
	taskNotification = "notification"
)

// ErrClosed is returned by every operation on a closed session
var ErrClosed = errors.New("session closed")

// Options tunes the simulated delays and the award of a session
type Options struct {
	SubmissionDelay     time.Duration
	NotificationTTL     time.Duration
	ExperiencePerReport int
}

// DefaultOptions mirrors the timings of the mobile mockup
func DefaultOptions() Options {
	return Options{
		SubmissionDelay:     1500 * time.Millisecond,
		NotificationTTL:     3 * time.Second,
		ExperiencePerReport: 15,
	}
}

// Deps are the collaborators shared by every session
type Deps struct {
	Violations databases.ViolationTypeDatabase
	Evidence   databases.EvidenceDatabase
	Locator    geolocation.Locator
	Now        func() time.Time
	ReportID   func() int
}

func (d Deps) withDefaults() Deps {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.ReportID == nil {
		d.ReportID = func() int { return rand.Intn(10000) }
	}
	return d
}

// Upload is a file handed over by the file picker
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Session is the single owner of one user's app state
type Session struct {
	ID string

	opts   Options
	deps   Deps
	runner *tasks.Runner

	mu        sync.Mutex
	state     models.AppState
	fix       *geolocation.Fix
	notifySeq uint64
	lastSeen  time.Time
	closed    bool
	subSeq    uint64
	subs      map[uint64]func(models.AppState)
}

// New creates a session starting from seed
func New(id string, seed models.AppState, opts Options, deps Deps) *Session {
	deps = deps.withDefaults()
	return &Session{
		ID:       id,
		opts:     opts,
		deps:     deps,
		runner:   tasks.NewRunner(context.Background()),
		state:    seed,
		lastSeen: deps.Now(),
		subs:     make(map[uint64]func(models.AppState)),
	}
}

// Snapshot returns the current state. Transitions never modify slices in place, so the
// returned value stays consistent while the session moves on.
func (s *Session) Snapshot() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Touch records activity on the session
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = s.deps.Now()
	s.mu.Unlock()
}

// LastSeen returns the time of the last recorded activity
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Subscribe registers fn to receive every new state. The returned func unregisters it.
func (s *Session) Subscribe(fn func(models.AppState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subSeq++
	id := s.subSeq
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// update runs fn with the lock held and, if the state changed, publishes it once the lock is
// released
func (s *Session) update(fn func() error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	before := s.state
	err := fn()
	changed := !sameState(before, s.state)
	after := s.state
	subs := make([]func(models.AppState), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if changed {
		for _, fn := range subs {
			fn(after)
		}
	}
	return err
}

// applyLocked runs events against the state. Callers hold s.mu.
func (s *Session) applyLocked(events ...store.Event) error {
	next, err := store.Apply(s.state, events...)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// Navigate switches screens. Entering the creation screen starts a location lookup when no
// location is set yet.
func (s *Session) Navigate(v models.View) error {
	return s.update(func() error {
		if err := s.applyLocked(store.Navigate{View: v}); err != nil {
			return err
		}
		if store.NeedsLocation(s.state) {
			s.locateLocked()
		}
		return nil
	})
}

// ToggleTheme flips the dark mode flag
func (s *Session) ToggleTheme() error {
	return s.update(func() error {
		return s.applyLocked(store.ToggleTheme{})
	})
}

// SelectReport opens the detail overlay of a report
func (s *Session) SelectReport(id int) error {
	return s.update(func() error {
		return s.applyLocked(store.ReportSelected{ID: id})
	})
}

// CloseReport closes the detail overlay
func (s *Session) CloseReport() error {
	return s.update(func() error {
		return s.applyLocked(store.ReportClosed{})
	})
}

// EditDraft changes the plate and/or the violation type of the draft. A violation type id
// of zero clears the selection.
func (s *Session) EditDraft(ctx context.Context, plate *string, violationTypeID *int) error {
	if violationTypeID != nil && *violationTypeID != 0 {
		if _, err := s.deps.Violations.FindOne(ctx, *violationTypeID); err != nil {
			if errors.Is(err, databases.ErrNotFound) {
				return fmt.Errorf("%w: %d", store.ErrUnknownViolationType, *violationTypeID)
			}
			return err
		}
	}
	return s.update(func() error {
		return s.applyLocked(store.EditDraft{Plate: plate, ViolationTypeID: violationTypeID})
	})
}

// AttachEvidence stores the uploads and appends them to the draft
func (s *Session) AttachEvidence(ctx context.Context, uploads []Upload) ([]models.EvidenceItem, error) {
	items := make([]models.EvidenceItem, 0, len(uploads))
	for _, u := range uploads {
		item, err := s.deps.Evidence.InsertOne(ctx, s.ID, u.FileName, u.ContentType, u.Data)
		if err != nil {
			s.release(items)
			return nil, fmt.Errorf("failed to store %s: %w", u.FileName, err)
		}
		items = append(items, item)
	}

	err := s.update(func() error {
		return s.applyLocked(store.AttachEvidence{Items: items})
	})
	if err != nil {
		s.release(items)
		return nil, err
	}
	return items, nil
}

// RemoveEvidence drops the draft evidence at index and releases its blob
func (s *Session) RemoveEvidence(ctx context.Context, index int) error {
	var removed models.EvidenceItem
	err := s.update(func() error {
		if index >= 0 && index < len(s.state.Draft.Evidence) {
			removed = s.state.Draft.Evidence[index]
		}
		return s.applyLocked(store.RemoveEvidence{Index: index})
	})
	if err != nil {
		return err
	}
	if err := s.deps.Evidence.DeleteOne(ctx, removed.Token); err != nil && !errors.Is(err, databases.ErrNotFound) {
		zap.S().Warnw("failed to release evidence", "session", s.ID, "token", removed.Token, "error", err)
	}
	return nil
}

// Locate starts the location lookup. It returns false if one is already running.
func (s *Session) Locate() (bool, error) {
	var started bool
	err := s.update(func() error {
		started = s.locateLocked()
		return nil
	})
	return started, err
}

// Location returns the last resolved fix, if any
func (s *Session) Location() (geolocation.Fix, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fix == nil || s.state.Draft.Location != s.fix.Address {
		return geolocation.Fix{}, false
	}
	return *s.fix, true
}

func (s *Session) locateLocked() bool {
	if err := s.applyLocked(store.LocateStarted{}); err != nil {
		return false
	}
	_, err := s.runner.Go(taskGeolocation, func(ctx context.Context, tok tasks.Token) {
		fix, err := s.deps.Locator.Locate(ctx)
		_ = s.update(func() error {
			if !s.runner.Finish(taskGeolocation, tok) {
				return nil
			}
			if err != nil {
				zap.S().Warnw("location lookup failed", "session", s.ID, "error", err)
				s.fix = nil
				s.notifyLocked(store.LocateFailedMessage, models.NotificationError)
				return s.applyLocked(store.LocateFinished{})
			}
			s.fix = &fix
			return s.applyLocked(store.LocateFinished{Address: fix.Address})
		})
	})
	if err != nil {
		_ = s.applyLocked(store.LocateFinished{})
		return false
	}
	return true
}

// Submit validates the draft and, when complete, commits it after the submission delay. An
// incomplete draft surfaces an error toast and returns store.ErrIncompleteDraft.
func (s *Session) Submit() error {
	return s.update(func() error {
		err := s.applyLocked(store.SubmitRequested{})
		switch {
		case errors.Is(err, store.ErrIncompleteDraft):
			submissionsRejected.Inc()
			s.notifyLocked(store.IncompleteDraftMessage, models.NotificationError)
			return err
		case err != nil:
			return err
		}

		_, err = s.runner.After(taskSubmission, s.opts.SubmissionDelay, func(tok tasks.Token) {
			_ = s.update(func() error {
				if !s.runner.Finish(taskSubmission, tok) {
					return nil
				}
				return s.commitLocked()
			})
		})
		if err != nil {
			_ = s.applyLocked(store.SubmitAborted{})
			return err
		}
		return nil
	})
}

func (s *Session) commitLocked() error {
	vt, err := s.deps.Violations.FindOne(context.Background(), s.state.Draft.ViolationTypeID)
	if err != nil {
		zap.S().Errorw("failed to commit report", "session", s.ID, "error", err)
		s.notifyLocked(store.SubmitFailedMessage, models.NotificationError)
		return s.applyLocked(store.SubmitAborted{})
	}

	xp := s.opts.ExperiencePerReport
	err = s.applyLocked(store.SubmitCommitted{
		ReportID:   s.deps.ReportID(),
		Violation:  *vt,
		Experience: xp,
		At:         s.deps.Now(),
	})
	if err != nil {
		zap.S().Errorw("failed to commit report", "session", s.ID, "error", err)
		s.notifyLocked(store.SubmitFailedMessage, models.NotificationError)
		return s.applyLocked(store.SubmitAborted{})
	}

	reportsCommitted.Inc()
	bonusCredited.Add(vt.Bonus.InexactFloat64())
	zap.S().Infow("report committed", "session", s.ID, "report", s.state.Reports[0].ID, "violation", vt.Name)
	s.notifyLocked(store.SuccessMessage(vt.Bonus, xp), models.NotificationSuccess)
	return nil
}

// Notify shows a toast, replacing the visible one, and schedules its dismissal
func (s *Session) Notify(message string, kind models.NotificationKind) error {
	return s.update(func() error {
		s.notifyLocked(message, kind)
		return nil
	})
}

func (s *Session) notifyLocked(message string, kind models.NotificationKind) {
	s.notifySeq++
	token := s.notifySeq
	_ = s.applyLocked(store.NotificationShown{Notification: models.Notification{
		Token:   token,
		Message: message,
		Kind:    kind,
	}})
	_, err := s.runner.After(taskNotification, s.opts.NotificationTTL, func(tok tasks.Token) {
		_ = s.update(func() error {
			if !s.runner.Finish(taskNotification, tok) {
				return nil
			}
			return s.applyLocked(store.NotificationExpired{Token: token})
		})
	})
	if err != nil {
		zap.S().Debugw("notification will not auto-dismiss", "session", s.ID, "error", err)
	}
}

// Closed reports whether Close has been called
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close cancels every pending task and releases the session's evidence. It is safe to call
// more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.subs = nil
	s.mu.Unlock()

	s.runner.Close()
	n, err := s.deps.Evidence.DeleteMany(context.Background(), s.ID)
	if err != nil {
		zap.S().Warnw("failed to release session evidence", "session", s.ID, "error", err)
		return
	}
	zap.S().Debugw("session closed", "session", s.ID, "released", n)
}

func (s *Session) release(items []models.EvidenceItem) {
	for _, it := range items {
		_ = s.deps.Evidence.DeleteOne(context.Background(), it.Token)
	}
}

// sameState is a cheap change check. Transitions always allocate new slices and pointers, so
// comparing headers is enough.
func sameState(a, b models.AppState) bool {
	return a.View == b.View &&
		a.DarkMode == b.DarkMode &&
		a.Experience == b.Experience &&
		a.Balance.Equal(b.Balance) &&
		a.Notification == b.Notification &&
		a.SelectedReportID == b.SelectedReportID &&
		sameSlice(a.Reports, b.Reports) &&
		a.Draft.Plate == b.Draft.Plate &&
		a.Draft.ViolationTypeID == b.Draft.ViolationTypeID &&
		a.Draft.Location == b.Draft.Location &&
		a.Draft.Locating == b.Draft.Locating &&
		a.Draft.Submitting == b.Draft.Submitting &&
		sameSlice(a.Draft.Evidence, b.Draft.Evidence)
}

func sameSlice[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

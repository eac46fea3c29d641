package databases

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/linesmerrill/fiscal-cidadao/models"
)

const thumbnailSize = 320

// ErrNoThumbnail is returned when a thumbnail is requested for a blob that is not an image
var ErrNoThumbnail = errors.New("evidence has no thumbnail")

// EvidenceBlob is an uploaded file held in memory for its owning session
type EvidenceBlob struct {
	Item  models.EvidenceItem
	Owner string
	Data  []byte
	thumb []byte
}

// EvidenceDatabase contains the methods to use with the session-scoped evidence blobs
type EvidenceDatabase interface {
	InsertOne(ctx context.Context, owner, fileName, contentType string, data []byte) (models.EvidenceItem, error)
	FindOne(ctx context.Context, token string) (*EvidenceBlob, error)
	Thumbnail(ctx context.Context, token string) ([]byte, error)
	DeleteOne(ctx context.Context, token string) error
	DeleteMany(ctx context.Context, owner string) (int, error)
	Count() int
}

type evidenceDatabase struct {
	mu    sync.RWMutex
	blobs map[string]*EvidenceBlob
}

// NewEvidenceDatabase initializes an empty in-memory evidence store
func NewEvidenceDatabase() EvidenceDatabase {
	return &evidenceDatabase{blobs: make(map[string]*EvidenceBlob)}
}

// DetectContentType trusts the declared type unless it is missing or generic, in which case
// the type is sniffed from the data
func DetectContentType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return mimetype.Detect(data).String()
}

func (e *evidenceDatabase) InsertOne(ctx context.Context, owner, fileName, contentType string, data []byte) (models.EvidenceItem, error) {
	if err := ctx.Err(); err != nil {
		return models.EvidenceItem{}, err
	}
	contentType = DetectContentType(contentType, data)
	token := uuid.New().String()
	item := models.EvidenceItem{
		Token:       token,
		URL:         "/evidence/" + token,
		Kind:        models.MediaKindFor(contentType),
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
	}
	if item.Kind == models.MediaKindImage {
		item.ThumbnailURL = item.URL + "/thumbnail"
	}

	e.mu.Lock()
	e.blobs[token] = &EvidenceBlob{Item: item, Owner: owner, Data: data}
	e.mu.Unlock()
	return item, nil
}

func (e *evidenceDatabase) FindOne(ctx context.Context, token string) (*EvidenceBlob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	b, ok := e.blobs[token]
	if !ok {
		return nil, fmt.Errorf("evidence %s: %w", token, ErrNotFound)
	}
	return b, nil
}

// Thumbnail returns a JPEG preview of an image blob, generated on first use
func (e *evidenceDatabase) Thumbnail(ctx context.Context, token string) ([]byte, error) {
	b, err := e.FindOne(ctx, token)
	if err != nil {
		return nil, err
	}
	if b.Item.Kind != models.MediaKindImage {
		return nil, ErrNoThumbnail
	}

	e.mu.RLock()
	cached := b.thumb
	e.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	img, err := imaging.Decode(bytes.NewReader(b.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", b.Item.FileName, err)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos), imaging.JPEG); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	e.mu.Lock()
	b.thumb = buf.Bytes()
	e.mu.Unlock()
	return buf.Bytes(), nil
}

func (e *evidenceDatabase) DeleteOne(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.blobs[token]; !ok {
		return fmt.Errorf("evidence %s: %w", token, ErrNotFound)
	}
	delete(e.blobs, token)
	return nil
}

// DeleteMany releases every blob uploaded by owner and returns how many were dropped
func (e *evidenceDatabase) DeleteMany(ctx context.Context, owner string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for token, b := range e.blobs {
		if b.Owner == owner {
			delete(e.blobs, token)
			n++
		}
	}
	return n, nil
}

func (e *evidenceDatabase) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.blobs)
}

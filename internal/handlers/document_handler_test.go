package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognita/internal/models"
)

// fakeStorage is an in-process DocumentStorage stand-in for handler tests.
type fakeStorage struct {
	docs      map[int64]*models.Document
	nextID    int64
	searchRes []models.ScoredDocument
	searchErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{docs: make(map[int64]*models.Document)}
}

func (f *fakeStorage) Connect(ctx context.Context) error { return nil }

func (f *fakeStorage) AddDocument(ctx context.Context, content string, metadata map[string]interface{}) (int64, error) {
	if strings.TrimSpace(content) == "" {
		return 0, models.ErrEmptyContent
	}
	f.nextID++
	f.docs[f.nextID] = &models.Document{ID: f.nextID, Content: content, Metadata: metadata}
	return f.nextID, nil
}

func (f *fakeStorage) GetDocument(ctx context.Context, id int64) (*models.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return doc, nil
}

func (f *fakeStorage) DeleteDocument(ctx context.Context, id int64) error {
	if _, ok := f.docs[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeStorage) SearchSimilar(ctx context.Context, query string, limit int, threshold *float64) ([]models.ScoredDocument, error) {
	return f.searchRes, f.searchErr
}

func (f *fakeStorage) Clear(ctx context.Context) error {
	f.docs = make(map[int64]*models.Document)
	return nil
}

func (f *fakeStorage) Stats(ctx context.Context) (*models.DocumentStats, error) {
	return &models.DocumentStats{TotalDocuments: len(f.docs)}, nil
}

func (f *fakeStorage) Close() error { return nil }

func TestAddHandler(t *testing.T) {
	storage := newFakeStorage()
	handler := NewDocumentHandler(storage, arbor.NewLogger())

	body := `{"content": "hello world", "metadata": {"topic": "greeting"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/documents", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.AddHandler(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["id"])
	assert.Equal(t, "hello world", resp["content"])
}

func TestAddHandler_MissingContent(t *testing.T) {
	handler := NewDocumentHandler(newFakeStorage(), arbor.NewLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/documents", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handler.AddHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddHandler_WrongMethod(t *testing.T) {
	handler := NewDocumentHandler(newFakeStorage(), arbor.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	rec := httptest.NewRecorder()

	handler.AddHandler(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDocumentByIDHandler_Get(t *testing.T) {
	storage := newFakeStorage()
	storage.AddDocument(context.Background(), "stored text", map[string]interface{}{"k": "v"})
	handler := NewDocumentHandler(storage, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/documents/1", nil)
	rec := httptest.NewRecorder()

	handler.DocumentByIDHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var doc models.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, int64(1), doc.ID)
	assert.Equal(t, "stored text", doc.Content)
}

func TestDocumentByIDHandler_GetMissing(t *testing.T) {
	handler := NewDocumentHandler(newFakeStorage(), arbor.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/documents/99", nil)
	rec := httptest.NewRecorder()

	handler.DocumentByIDHandler(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDocumentByIDHandler_InvalidID(t *testing.T) {
	handler := NewDocumentHandler(newFakeStorage(), arbor.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/documents/abc", nil)
	rec := httptest.NewRecorder()

	handler.DocumentByIDHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocumentByIDHandler_Delete(t *testing.T) {
	storage := newFakeStorage()
	storage.AddDocument(context.Background(), "to delete", nil)
	handler := NewDocumentHandler(storage, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/documents/1", nil)
	rec := httptest.NewRecorder()
	handler.DocumentByIDHandler(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Repeat delete reports not found
	rec = httptest.NewRecorder()
	handler.DocumentByIDHandler(rec, httptest.NewRequest(http.MethodDelete, "/api/documents/1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClearHandler(t *testing.T) {
	storage := newFakeStorage()
	storage.AddDocument(context.Background(), "one", nil)
	storage.AddDocument(context.Background(), "two", nil)
	handler := NewDocumentHandler(storage, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/collection", nil)
	rec := httptest.NewRecorder()

	handler.ClearHandler(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, storage.docs)
}

func TestClearHandler_WrongMethod(t *testing.T) {
	handler := NewDocumentHandler(newFakeStorage(), arbor.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/collection", nil)
	rec := httptest.NewRecorder()

	handler.ClearHandler(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStatsHandler(t *testing.T) {
	storage := newFakeStorage()
	storage.AddDocument(context.Background(), "one", nil)
	storage.AddDocument(context.Background(), "two", nil)
	handler := NewDocumentHandler(storage, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/documents/stats", nil)
	rec := httptest.NewRecorder()

	handler.StatsHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stats models.DocumentStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TotalDocuments)
}

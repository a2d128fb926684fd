package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognita/internal/models"
)

// stubEmbedder returns canned vectors per input text.
type stubEmbedder struct {
	vectors   map[string][]float32
	dimension int
	fail      bool
}

func (e *stubEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if e.fail {
		return nil, fmt.Errorf("embed: service unavailable")
	}
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	v := make([]float32, e.dimension)
	v[0] = 1
	return v, nil
}

func (e *stubEmbedder) ModelName() string { return "stub" }
func (e *stubEmbedder) Dimension() int    { return e.dimension }

func newTestStore() (*Store, *stubEmbedder) {
	embedder := &stubEmbedder{
		dimension: 2,
		vectors: map[string][]float32{
			"cat":       {1, 0},
			"dog":       {0, 1},
			"cat query": {0.9, 0.1},
		},
	}
	return New(embedder, arbor.NewLogger()), embedder
}

func TestAddAndGetDocument_RoundTrip(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	metadata := map[string]interface{}{
		"source":   "unit",
		"count":    float64(3),
		"nested":   map[string]interface{}{"flag": true},
		"keywords": []interface{}{"a", "b"},
	}

	id, err := store.AddDocument(ctx, "cat", metadata)
	require.NoError(t, err)
	assert.Positive(t, id)

	doc, err := store.GetDocument(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "cat", doc.Content)
	assert.Equal(t, metadata, doc.Metadata)
	assert.Nil(t, doc.Embedding, "embedding is not surfaced on reads")
}

func TestAddDocument_EmptyContent(t *testing.T) {
	store, _ := newTestStore()

	_, err := store.AddDocument(context.Background(), "", nil)
	assert.ErrorIs(t, err, models.ErrEmptyContent)
}

func TestAddDocument_EmbeddingFailureWritesNothing(t *testing.T) {
	store, embedder := newTestStore()
	ctx := context.Background()

	embedder.fail = true
	_, err := store.AddDocument(ctx, "cat", nil)
	require.Error(t, err)

	embedder.fail = false
	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalDocuments)
}

func TestDeleteDocument_NotFoundSemantics(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	id, err := store.AddDocument(ctx, "cat", nil)
	require.NoError(t, err)

	require.NoError(t, store.DeleteDocument(ctx, id))

	_, err = store.GetDocument(ctx, id)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// Second delete reports NotFound, not success
	assert.ErrorIs(t, store.DeleteDocument(ctx, id), models.ErrNotFound)
}

func TestSearchSimilar_Ranking(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	catID, err := store.AddDocument(ctx, "cat", nil)
	require.NoError(t, err)
	_, err = store.AddDocument(ctx, "dog", nil)
	require.NoError(t, err)

	results, err := store.SearchSimilar(ctx, "cat query", 5, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// [0.9,0.1] is closer to cat [1,0] than to dog [0,1]
	assert.Equal(t, catID, results[0].ID)
	assert.Equal(t, "cat", results[0].Content)

	// Scores are monotonically non-increasing
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity)
	}
}

func TestSearchSimilar_LimitBound(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := store.AddDocument(ctx, fmt.Sprintf("document %d", i), nil)
		require.NoError(t, err)
	}

	results, err := store.SearchSimilar(ctx, "cat query", 3, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), 3)
}

func TestSearchSimilar_EmptyCollection(t *testing.T) {
	store, _ := newTestStore()

	results, err := store.SearchSimilar(context.Background(), "cat query", 5, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchSimilar_ThresholdFiltersAfterRanking(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.AddDocument(ctx, "cat", nil)
	require.NoError(t, err)
	_, err = store.AddDocument(ctx, "dog", nil)
	require.NoError(t, err)

	unfiltered, err := store.SearchSimilar(ctx, "cat query", 5, nil)
	require.NoError(t, err)
	require.Len(t, unfiltered, 2)

	threshold := 0.5
	filtered, err := store.SearchSimilar(ctx, "cat query", 5, &threshold)
	require.NoError(t, err)

	// Every result meets the threshold and the filtered set is a
	// relative-order-preserving subset of the unthresholded top-K.
	require.NotEmpty(t, filtered)
	for _, r := range filtered {
		assert.GreaterOrEqual(t, r.Similarity, threshold)
	}
	for i, r := range filtered {
		assert.Equal(t, unfiltered[i].ID, r.ID)
	}
	assert.Less(t, len(filtered), len(unfiltered))
}

func TestClear(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.AddDocument(ctx, "cat", nil)
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalDocuments)

	results, err := store.SearchSimilar(ctx, "cat query", 5, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStats(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalDocuments)
	assert.Nil(t, stats.LastUpdated)

	_, err = store.AddDocument(ctx, "cat", nil)
	require.NoError(t, err)

	stats, err = store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalDocuments)
	assert.NotNil(t, stats.LastUpdated)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{1, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 0}))
}

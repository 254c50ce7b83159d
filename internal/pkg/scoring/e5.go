package scoring

import (
	"context"

	"github.com/pkg/errors"
)

// Embedder encodes texts into embedding vectors
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// E5Scorer computes semantic similarity with an e5 style embedding model.
// The model expects query/passage prefixed inputs
type E5Scorer struct {
	emb Embedder
}

// NewE5Scorer creates E5Scorer
func NewE5Scorer(emb Embedder) (*E5Scorer, error) {
	if emb == nil {
		return nil, errors.New("No embedder provided")
	}
	return &E5Scorer{emb: emb}, nil
}

// Score returns cosine similarity of the encoded pair
func (s *E5Scorer) Score(ctx context.Context, original, translated string) (float64, error) {
	embs, err := s.emb.Embed(ctx, []string{"query: " + original, "passage: " + translated})
	if err != nil {
		return 0, errors.Wrap(err, "Can't encode with e5")
	}
	if len(embs) != 2 {
		return 0, errors.Errorf("Expected 2 embeddings, got %d", len(embs))
	}
	return CosineSimilarity(embs[0], embs[1]), nil
}

package scoring

import (
	"context"

	"github.com/pkg/errors"
)

// LaBSEScorer computes literal similarity with a bilingual sentence
// embedding model on the raw text pair
type LaBSEScorer struct {
	emb Embedder
}

// NewLaBSEScorer creates LaBSEScorer
func NewLaBSEScorer(emb Embedder) (*LaBSEScorer, error) {
	if emb == nil {
		return nil, errors.New("No embedder provided")
	}
	return &LaBSEScorer{emb: emb}, nil
}

// Score returns cosine similarity of the encoded pair
func (s *LaBSEScorer) Score(ctx context.Context, original, translated string) (float64, error) {
	embs, err := s.emb.Embed(ctx, []string{original, translated})
	if err != nil {
		return 0, errors.Wrap(err, "Can't encode with labse")
	}
	if len(embs) != 2 {
		return 0, errors.Errorf("Expected 2 embeddings, got %d", len(embs))
	}
	return CosineSimilarity(embs[0], embs[1]), nil
}

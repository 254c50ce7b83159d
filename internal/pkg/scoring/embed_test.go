package scoring

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type embedderStub struct {
	texts []string
	embs  [][]float32
	err   error
}

func (e *embedderStub) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	e.texts = texts
	return e.embs, e.err
}

func TestE5Score(t *testing.T) {
	emb := &embedderStub{embs: [][]float32{{1, 2, 3}, {1, 2, 3}}}
	s, err := NewE5Scorer(emb)
	assert.Nil(t, err)
	v, err := s.Score(context.Background(), "labas", "hello")
	assert.Nil(t, err)
	assert.InDelta(t, 1.0, v, 0.0001)
	assert.Equal(t, []string{"query: labas", "passage: hello"}, emb.texts)
}

func TestE5Score_Fails(t *testing.T) {
	emb := &embedderStub{err: errors.New("olia")}
	s, _ := NewE5Scorer(emb)
	_, err := s.Score(context.Background(), "labas", "hello")
	assert.NotNil(t, err)
}

func TestE5Score_WrongEmbeddingCount(t *testing.T) {
	emb := &embedderStub{embs: [][]float32{{1, 2, 3}}}
	s, _ := NewE5Scorer(emb)
	_, err := s.Score(context.Background(), "labas", "hello")
	assert.NotNil(t, err)
}

func TestLaBSEScore(t *testing.T) {
	emb := &embedderStub{embs: [][]float32{{1, 0}, {0, 1}}}
	s, err := NewLaBSEScorer(emb)
	assert.Nil(t, err)
	v, err := s.Score(context.Background(), "labas", "hello")
	assert.Nil(t, err)
	assert.InDelta(t, 0.0, v, 0.0001)
	assert.Equal(t, []string{"labas", "hello"}, emb.texts)
}

func TestNewScorers_Fail(t *testing.T) {
	_, err := NewE5Scorer(nil)
	assert.NotNil(t, err)
	_, err = NewLaBSEScorer(nil)
	assert.NotNil(t, err)
}

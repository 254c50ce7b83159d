package translate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skaura/transeval/internal/pkg/similarity"
)

type pairsStub struct {
	pairs map[string]bool
}

func (p *pairsStub) Contains(in, out similarity.Language) bool {
	return p.pairs[string(in)+"-"+string(out)]
}

func TestNewM2MClient_NoPairs(t *testing.T) {
	_, err := NewM2MClient(nil)
	assert.NotNil(t, err)
}

func TestM2M_UnsupportedPairFailsBeforeCall(t *testing.T) {
	// no http client is wired, the pair check must fail first
	mc := &M2MClient{pairs: &pairsStub{pairs: map[string]bool{"en-ko": true}}}
	req := &similarity.Request{InputText: "labas", InputLanguage: similarity.Korean,
		OutputLanguage: similarity.Hindi, Backend: similarity.BackendM2M}
	_, err := mc.Translate(context.Background(), req)
	assert.NotNil(t, err)
	var pairErr *UnsupportedPairError
	assert.ErrorAs(t, err, &pairErr)
	assert.Equal(t, similarity.Korean, pairErr.From)
	assert.Equal(t, similarity.Hindi, pairErr.To)
}

package translate

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/skaura/transeval/internal/pkg/similarity"
)

// Translator translates the request input text to the output language
type Translator interface {
	Translate(ctx context.Context, req *similarity.Request) (string, error)
}

// UnsupportedPairError indicates the backend can't serve the language pair
type UnsupportedPairError struct {
	From, To similarity.Language
}

func (e *UnsupportedPairError) Error() string {
	return fmt.Sprintf("unsupported language pair: (%s, %s)", e.From, e.To)
}

// Dispatcher selects the translator by the request backend kind
type Dispatcher struct {
	google Translator
	m2m    Translator
	gpt    Translator
}

// NewDispatcher creates the dispatcher over the three backends
func NewDispatcher(google, m2m, gpt Translator) (*Dispatcher, error) {
	if google == nil || m2m == nil || gpt == nil {
		return nil, errors.New("No translator provided")
	}
	return &Dispatcher{google: google, m2m: m2m, gpt: gpt}, nil
}

// Translate invokes the backend declared by the request.
// The first backend failure is propagated unchanged, no retry, no fallback
func (d *Dispatcher) Translate(ctx context.Context, req *similarity.Request) (string, error) {
	switch req.Backend {
	case similarity.BackendGoogle:
		return d.google.Translate(ctx, req)
	case similarity.BackendM2M:
		return d.m2m.Translate(ctx, req)
	case similarity.BackendGPT:
		return d.gpt.Translate(ctx, req)
	}
	return "", errors.Errorf("unsupported translate type '%s'", req.Backend)
}

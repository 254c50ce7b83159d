package translate

import (
	"context"

	gtranslate "cloud.google.com/go/translate"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"google.golang.org/api/option"

	"github.com/skaura/transeval/internal/pkg/cmdapp"
	"github.com/skaura/transeval/internal/pkg/similarity"
)

// GoogleClient translates using the Google Translation API
type GoogleClient struct {
	client *gtranslate.Client
}

// NewGoogleClient creates the client using the configured API key
func NewGoogleClient(ctx context.Context) (*GoogleClient, error) {
	key := cmdapp.Config.GetString("google.key")
	if key == "" {
		return nil, errors.New("No google.key provided")
	}
	client, err := gtranslate.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return nil, errors.Wrap(err, "Can't init Google translate client")
	}
	return &GoogleClient{client: client}, nil
}

// Translate invokes the Google Translation API
func (gc *GoogleClient) Translate(ctx context.Context, req *similarity.Request) (string, error) {
	target, err := language.Parse(string(req.OutputLanguage))
	if err != nil {
		return "", errors.Wrap(err, "Can't parse output language "+string(req.OutputLanguage))
	}
	source, err := language.Parse(string(req.InputLanguage))
	if err != nil {
		return "", errors.Wrap(err, "Can't parse input language "+string(req.InputLanguage))
	}
	translations, err := gc.client.Translate(ctx, []string{req.InputText}, target,
		&gtranslate.Options{Source: source, Format: gtranslate.Text})
	if err != nil {
		return "", errors.Wrap(err, "Google Translator API error")
	}
	if len(translations) == 0 {
		return "", errors.New("Google Translator API returned no translation")
	}
	return translations[0].Text, nil
}

// Close finalizes the client
func (gc *GoogleClient) Close() error {
	return gc.client.Close()
}

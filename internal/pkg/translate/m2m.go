package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/skaura/transeval/internal/pkg/cmdapp"
	"github.com/skaura/transeval/internal/pkg/similarity"
	"github.com/skaura/transeval/internal/pkg/utils"
)

// PairsChecker tells if a language pair is served by the m2m models
type PairsChecker interface {
	Contains(in, out similarity.Language) bool
}

// M2MClient translates using a self hosted m2m100 serving endpoint
type M2MClient struct {
	httpclient *retryablehttp.Client
	url        string
	pairs      PairsChecker
}

type m2mRequest struct {
	Text    string `json:"text"`
	SrcLang string `json:"srcLang"`
	TgtLang string `json:"tgtLang"`
}

type m2mResponse struct {
	TranslatedText string `json:"translatedText"`
}

// NewM2MClient creates the m2m client
func NewM2MClient(pairs PairsChecker) (*M2MClient, error) {
	if pairs == nil {
		return nil, errors.New("No pairs checker provided")
	}
	res := M2MClient{pairs: pairs}
	var err error
	res.url, err = utils.GetURLFromConfig("m2m.url")
	if err != nil {
		return nil, err
	}
	res.httpclient = retryablehttp.NewClient()
	res.httpclient.RetryMax = 3
	res.httpclient.Logger = nil
	return &res, nil
}

// Translate checks the pair and invokes the serving endpoint.
// An unsupported pair fails before any call is made
func (mc *M2MClient) Translate(ctx context.Context, req *similarity.Request) (string, error) {
	if !mc.pairs.Contains(req.InputLanguage, req.OutputLanguage) {
		return "", &UnsupportedPairError{From: req.InputLanguage, To: req.OutputLanguage}
	}
	cmdapp.Log.Infof("Translating %s-%s with m2m at %s", req.InputLanguage, req.OutputLanguage, mc.url)

	msgBytes, err := json.Marshal(m2mRequest{Text: req.InputText,
		SrcLang: string(req.InputLanguage), TgtLang: string(req.OutputLanguage)})
	if err != nil {
		return "", errors.Wrap(err, "Can't marshal request")
	}
	rReq, err := retryablehttp.NewRequest(http.MethodPost, mc.url, bytes.NewReader(msgBytes))
	if err != nil {
		return "", errors.Wrap(err, "Can't prepare request")
	}
	rReq = rReq.WithContext(ctx)
	rReq.Header.Set("Content-Type", "application/json")

	resp, err := mc.httpclient.Do(rReq)
	if err != nil {
		return "", errors.Wrap(err, "Can't call m2m server")
	}
	defer resp.Body.Close()
	err = utils.ValidateResponse(resp)
	if err != nil {
		return "", errors.Wrap(err, "M2M server error")
	}
	var result m2mResponse
	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return "", errors.Wrap(err, "Can't decode response")
	}
	if result.TranslatedText == "" {
		return "", errors.New("M2M server returned no translation")
	}
	return result.TranslatedText, nil
}

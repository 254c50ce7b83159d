package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/skaura/transeval/internal/pkg/similarity"
	"github.com/skaura/transeval/internal/pkg/utils"
)

// BertScoreClient calls the bertscore scoring service
type BertScoreClient struct {
	httpclient *retryablehttp.Client
	url        string
}

type bertScoreRequest struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
}

type bertScoreResponse struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// NewBertScoreClient creates the client from config
func NewBertScoreClient() (*BertScoreClient, error) {
	res := BertScoreClient{}
	var err error
	res.url, err = utils.GetURLFromConfig("scoring.bertscore.url")
	if err != nil {
		return nil, err
	}
	res.httpclient = retryablehttp.NewClient()
	res.httpclient.RetryMax = 3
	res.httpclient.Logger = nil
	return &res, nil
}

// Score returns the precision/recall/f1 triple for the pair
func (sp *BertScoreClient) Score(ctx context.Context, original, translated string) (similarity.BertScore, error) {
	var res similarity.BertScore
	msgBytes, err := json.Marshal(bertScoreRequest{Original: original, Translated: translated})
	if err != nil {
		return res, errors.Wrap(err, "Can't marshal request")
	}
	req, err := retryablehttp.NewRequest(http.MethodPost, sp.url, bytes.NewReader(msgBytes))
	if err != nil {
		return res, errors.Wrap(err, "Can't prepare request")
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")

	resp, err := sp.httpclient.Do(req)
	if err != nil {
		return res, errors.Wrap(err, "Can't call bertscore server")
	}
	defer resp.Body.Close()
	err = utils.ValidateResponse(resp)
	if err != nil {
		return res, errors.Wrap(err, "Bertscore server error")
	}
	var result bertScoreResponse
	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return res, errors.Wrap(err, "Can't decode response")
	}
	res.Precision = result.Precision
	res.Recall = result.Recall
	res.F1 = result.F1
	return res, nil
}

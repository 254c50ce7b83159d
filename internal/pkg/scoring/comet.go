package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/skaura/transeval/internal/pkg/utils"
)

// CometClient calls the reference free comet quality estimation service
type CometClient struct {
	httpclient *retryablehttp.Client
	url        string
}

type cometRequest struct {
	Src string `json:"src"`
	Mt  string `json:"mt"`
}

type cometResponse struct {
	SystemScore float64 `json:"systemScore"`
}

// NewCometClient creates the client from config
func NewCometClient() (*CometClient, error) {
	res := CometClient{}
	var err error
	res.url, err = utils.GetURLFromConfig("scoring.comet.url")
	if err != nil {
		return nil, err
	}
	res.httpclient = retryablehttp.NewClient()
	res.httpclient.RetryMax = 3
	res.httpclient.Logger = nil
	return &res, nil
}

// Score returns the quality estimation score for the pair
func (sp *CometClient) Score(ctx context.Context, original, translated string) (float64, error) {
	msgBytes, err := json.Marshal(cometRequest{Src: original, Mt: translated})
	if err != nil {
		return 0, errors.Wrap(err, "Can't marshal request")
	}
	req, err := retryablehttp.NewRequest(http.MethodPost, sp.url, bytes.NewReader(msgBytes))
	if err != nil {
		return 0, errors.Wrap(err, "Can't prepare request")
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")

	resp, err := sp.httpclient.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, "Can't call comet server")
	}
	defer resp.Body.Close()
	err = utils.ValidateResponse(resp)
	if err != nil {
		return 0, errors.Wrap(err, "Comet server error")
	}
	var result cometResponse
	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return 0, errors.Wrap(err, "Can't decode response")
	}
	return result.SystemScore, nil
}

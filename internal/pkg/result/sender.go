package result

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/skaura/transeval/internal/pkg/cmdapp"
	"github.com/skaura/transeval/internal/pkg/utils"
)

// Sender delivers the terminal record to the downstream consumer.
// Delivery is best effort: one call, short timeout, no retry
type Sender struct {
	httpclient *retryablehttp.Client
	url        string
}

// NewSender creates the delivery client from config
func NewSender() (*Sender, error) {
	res := Sender{}
	var err error
	res.url, err = utils.GetURLFromConfig("resultServer.url")
	if err != nil {
		return nil, err
	}
	res.httpclient = retryablehttp.NewClient()
	res.httpclient.RetryMax = 0
	res.httpclient.HTTPClient.Timeout = 5 * time.Second
	res.httpclient.Logger = nil
	return &res, nil
}

// Send posts the record. Failures are for the caller to log, never to re-raise
func (sp *Sender) Send(record *Record) error {
	cmdapp.Log.Infof("Sending result %s to %s", record.TaskName, sp.url)
	msgBytes, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "Can't marshal record")
	}
	resp, err := sp.httpclient.Post(sp.url, "application/json", bytes.NewReader(msgBytes))
	if err != nil {
		return errors.Wrap(err, "Can't send record")
	}
	defer resp.Body.Close()
	if !(resp.StatusCode >= 200 && resp.StatusCode <= 299) {
		return errors.Errorf("wrong response code from result server. Code: %d", resp.StatusCode)
	}
	return nil
}

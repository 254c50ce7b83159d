package status

import (
	"net/http/httptest"
	"testing"

	"github.com/heptiolabs/healthcheck"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrongPath(t *testing.T) {
	req := httptest.NewRequest("GET", "/invalid", nil)
	resp := httptest.NewRecorder()
	NewRouter(&ServiceData{}).ServeHTTP(resp, req)
	assert.Equal(t, 404, resp.Code)
}

func TestSubscribe_NotWebsocket(t *testing.T) {
	req := httptest.NewRequest("GET", "/subscribe", nil)
	resp := httptest.NewRecorder()
	NewRouter(&ServiceData{}).ServeHTTP(resp, req)
	assert.Equal(t, 400, resp.Code)
}

func TestNoHealth(t *testing.T) {
	req := httptest.NewRequest("GET", "/live", nil)
	resp := httptest.NewRecorder()
	NewRouter(&ServiceData{}).ServeHTTP(resp, req)
	assert.Equal(t, 404, resp.Code)
}

func testCode(t *testing.T, data *ServiceData, path string, code int) {
	req := httptest.NewRequest("GET", path, nil)
	resp := httptest.NewRecorder()
	NewRouter(data).ServeHTTP(resp, req)
	assert.Equal(t, code, resp.Code)
}

func newData(h healthcheck.Handler) *ServiceData {
	data := ServiceData{}
	data.health = h
	return &data
}

func TestLive(t *testing.T) {
	testCode(t, newData(healthcheck.NewHandler()), "/live", 200)
}

func TestLive503(t *testing.T) {
	h := healthcheck.NewHandler()
	h.AddLivenessCheck("test", func() error { return errors.New("test") })
	testCode(t, newData(h), "/live", 503)
}

func TestReady(t *testing.T) {
	testCode(t, newData(healthcheck.NewHandler()), "/ready", 200)
}

package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLJoin(t *testing.T) {
	assert.Equal(t, "http://store.local/bucket", URLJoin("http://store.local", "bucket"))
	assert.Equal(t, "http://store.local/bucket/k1", URLJoin("http://store.local", "bucket", "k1"))
	assert.Equal(t, "http://store.local/bucket/k1", URLJoin("http://store.local/", "/bucket/", "k1"))
	assert.Equal(t, "http://store.local/bucket/k1", URLJoin("http://store.local", "bucket", "/k1"))
	assert.Equal(t, "http://store.local", URLJoin("http://store.local"))
	assert.Equal(t, "http://store.local:9000/bucket", URLJoin("http://store.local:9000/", "bucket"))
	assert.Equal(t, "store.local:9000/bucket", URLJoin("store.local:9000", "bucket"))
}

func TestValidateURL(t *testing.T) {
	ut, err := validateConfigURL("http://store.local/bucket/k1", "sn")
	assert.Equal(t, "http://store.local/bucket/k1", ut)
	assert.Nil(t, err)
}

func TestValidateURL_FailEmpty(t *testing.T) {
	ut, err := validateConfigURL("", "sn")
	assert.Equal(t, "", ut)
	assert.NotNil(t, err)
}

func TestValidateURL_Fail(t *testing.T) {
	ut, err := validateConfigURL(":::://", "sn")
	assert.Equal(t, "", ut)
	assert.NotNil(t, err)
}

func TestValidateResponse(t *testing.T) {
	resp := httptest.NewRecorder()
	resp.WriteString("OK")
	assert.Nil(t, ValidateResponse(resp.Result()))
}

func TestValidateResponse_Fail(t *testing.T) {
	resp := httptest.NewRecorder()
	resp.WriteHeader(http.StatusBadRequest)
	resp.WriteString("err msg")
	err := ValidateResponse(resp.Result())
	assert.NotNil(t, err)
	assert.True(t, strings.Contains(err.Error(), "err msg"))
}

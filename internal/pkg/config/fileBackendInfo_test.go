package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadYaml(t *testing.T) {
	res, err := loadYaml([]byte("- name: GOOGLE\n  description: Google Translate API\n- name: M2M\n  description: m2m100 serving\n  model: m2m100_1.2B\n"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))
	assert.Equal(t, "GOOGLE", res[0].Name)
	assert.Equal(t, "m2m100_1.2B", res[1].Model)
}

func TestLoadYaml_FailsNoName(t *testing.T) {
	_, err := loadYaml([]byte("- description: no name here\n"))
	assert.NotNil(t, err)
}

func TestLoadYaml_FailsWrongFormat(t *testing.T) {
	_, err := loadYaml([]byte("olia {"))
	assert.NotNil(t, err)
}

func TestGetAll(t *testing.T) {
	dir, err := ioutil.TempDir("", "backends")
	assert.Nil(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	err = ioutil.WriteFile(filepath.Join(dir, "backends.yml"),
		[]byte("- name: GPT\n  model: gpt-4.1-nano\n"), 0644)
	assert.Nil(t, err)

	fl, err := NewFileBackendInfoLoader(dir)
	assert.Nil(t, err)
	res, err := fl.GetAll()
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, "GPT", res[0].Name)
}

func TestGetAll_FailsNoFile(t *testing.T) {
	fl, err := NewFileBackendInfoLoader("/no/such/dir")
	assert.Nil(t, err)
	_, err = fl.GetAll()
	assert.NotNil(t, err)
}

func TestNewFileBackendInfoLoader_FailsEmptyPath(t *testing.T) {
	_, err := NewFileBackendInfoLoader("")
	assert.NotNil(t, err)
}

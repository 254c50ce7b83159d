package config

import (
	"io/ioutil"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/skaura/transeval/internal/pkg/cmdapp"
)

// BackendInfo describes one translation backend for the API listing
type BackendInfo struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Model       string `yaml:"model,omitempty" json:"model,omitempty"`
}

// FileBackendInfoLoader loads backend descriptions from a yml file
type FileBackendInfoLoader struct {
	Path string
}

// NewFileBackendInfoLoader creates FileBackendInfoLoader instance
func NewFileBackendInfoLoader(path string) (*FileBackendInfoLoader, error) {
	cmdapp.Log.Infof("Init Backend Info Loader from: %s", path)
	if path == "" {
		return nil, errors.New("No path provided")
	}
	return &FileBackendInfoLoader{Path: path}, nil
}

// GetAll returns backend descriptions from file 'backends.yml'
func (fs *FileBackendInfoLoader) GetAll() ([]BackendInfo, error) {
	file := filepath.Join(fs.Path, "backends.yml")
	fData, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "Can't load: "+file)
	}
	return loadYaml(fData)
}

func loadYaml(data []byte) ([]BackendInfo, error) {
	var res []BackendInfo
	err := yaml.Unmarshal(data, &res)
	if err != nil {
		return nil, errors.Wrap(err, "Can't unmarshal")
	}
	for _, bi := range res {
		if bi.Name == "" {
			return nil, errors.New("No backend name in yaml")
		}
	}
	return res, nil
}

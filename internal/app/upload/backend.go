package upload

import "github.com/skaura/transeval/internal/pkg/config"

// BackendProvider provides available translation backends list
type BackendProvider interface {
	GetAll() ([]config.BackendInfo, error)
}

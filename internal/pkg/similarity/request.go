package similarity

import "github.com/pkg/errors"

// Language is a supported language code
type Language string

// Supported languages
const (
	Korean   Language = "ko"
	English  Language = "en"
	Japanese Language = "ja"
	Hindi    Language = "hi"
)

// ParseLanguage converts a string to Language
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case Korean, English, Japanese, Hindi:
		return Language(s), nil
	}
	return "", errors.Errorf("unknown language '%s'", s)
}

// Backend is a translation provider kind
type Backend string

// Translation backends
const (
	BackendGoogle Backend = "GOOGLE"
	BackendM2M    Backend = "M2M"
	BackendGPT    Backend = "GPT"
)

// ParseBackend converts a string to Backend
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case BackendGoogle, BackendM2M, BackendGPT:
		return Backend(s), nil
	}
	return "", errors.Errorf("unknown translate type '%s'", s)
}

// Request keeps one submitted translation evaluation request.
// OutputText and OutputTextKey are filled in by the worker after translation
// unless a pre-supplied translation came with the submission.
type Request struct {
	InputText      string   `json:"inputText"`
	OutputText     string   `json:"outputText,omitempty"`
	InputLanguage  Language `json:"inputLanguage"`
	OutputLanguage Language `json:"outputLanguage"`
	Backend        Backend  `json:"translateType"`
	InputTextKey   string   `json:"inputTextKey"`
	OutputTextKey  string   `json:"outputTextKey,omitempty"`
	ProjectID      int64    `json:"projectID"`
}

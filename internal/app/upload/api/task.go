package api

import "github.com/skaura/transeval/internal/pkg/similarity"

// TaskResult - post method response in JSON
type TaskResult struct {
	TaskName string `json:"taskName"`
	Status   string `json:"status"`
}

// RetranslateRequest is a body of the retranslate method
type RetranslateRequest struct {
	InputText      string              `json:"inputText"`
	InputLanguage  similarity.Language `json:"inputLanguage"`
	OutputLanguage similarity.Language `json:"outputLanguage"`
	ProjectID      int64               `json:"projectID"`
	Email          string              `json:"email,omitempty"`
}

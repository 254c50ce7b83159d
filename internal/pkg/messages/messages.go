package messages

import "github.com/skaura/transeval/internal/pkg/similarity"

// WorkMessage carries one submitted task through the broker
type WorkMessage struct {
	TaskName string `json:"taskName"`
	Email    string `json:"email,omitempty"`
	similarity.Request
}

// NewWorkMessage creates the work message for a task
func NewWorkMessage(taskName string, req *similarity.Request) *WorkMessage {
	return &WorkMessage{TaskName: taskName, Request: *req}
}

// ProgressMessage is one progress event for a task.
// Percent -1 with a non empty Error marks a terminal failure.
type ProgressMessage struct {
	TaskName string `json:"taskName"`
	Percent  int    `json:"percent"`
	Error    string `json:"error,omitempty"`
}

// NewProgressMessage creates the progress event
func NewProgressMessage(taskName string, percent int) *ProgressMessage {
	return &ProgressMessage{TaskName: taskName, Percent: percent}
}

// NewProgressMsgWithError creates the terminal failure event
func NewProgressMsgWithError(taskName string, errMsg string) *ProgressMessage {
	return &ProgressMessage{TaskName: taskName, Percent: -1, Error: errMsg}
}

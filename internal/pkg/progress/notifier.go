package progress

import (
	"github.com/pkg/errors"

	"github.com/skaura/transeval/internal/pkg/cmdapp"
	"github.com/skaura/transeval/internal/pkg/messages"
)

// Notifier pushes task progress to observers.
// Publishing is best effort: a task never fails because nobody listens
type Notifier interface {
	NotifyProgress(taskName string, percent int)
	NotifyError(taskName string, errMsg string)
}

// EventNotifier publishes progress events to the status exchange
type EventNotifier struct {
	publisher messages.Publisher
}

// NewEventNotifier creates EventNotifier
func NewEventNotifier(publisher messages.Publisher) (*EventNotifier, error) {
	if publisher == nil {
		return nil, errors.New("No event publisher provided")
	}
	return &EventNotifier{publisher: publisher}, nil
}

// NotifyProgress publishes the percent checkpoint
func (en *EventNotifier) NotifyProgress(taskName string, percent int) {
	err := en.publisher.Publish(messages.NewProgressMessage(taskName, percent), messages.StatusEvent)
	cmdapp.LogIf(err)
}

// NotifyError publishes the terminal failure event.
// No event follows for the task after this one
func (en *EventNotifier) NotifyError(taskName string, errMsg string) {
	err := en.publisher.Publish(messages.NewProgressMsgWithError(taskName, errMsg), messages.StatusEvent)
	cmdapp.LogIf(err)
}

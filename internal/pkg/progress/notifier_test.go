package progress

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/skaura/transeval/internal/pkg/messages"
	"github.com/skaura/transeval/internal/pkg/test"
)

func TestNewEventNotifier_Fails(t *testing.T) {
	_, err := NewEventNotifier(nil)
	assert.NotNil(t, err)
}

func TestNotifyProgress(t *testing.T) {
	p := &test.Publisher{}
	en, err := NewEventNotifier(p)
	assert.Nil(t, err)
	en.NotifyProgress("t1", 25)
	assert.Equal(t, 1, len(p.Msgs))
	assert.Equal(t, "t1", p.Msgs[0].TaskName)
	assert.Equal(t, 25, p.Msgs[0].Percent)
	assert.Equal(t, "", p.Msgs[0].Error)
}

func TestNotifyError(t *testing.T) {
	p := &test.Publisher{}
	en, _ := NewEventNotifier(p)
	en.NotifyError("t1", "olia")
	assert.Equal(t, 1, len(p.Msgs))
	assert.Equal(t, -1, p.Msgs[0].Percent)
	assert.Equal(t, "olia", p.Msgs[0].Error)
}

func TestNotify_PublishFailureIgnored(t *testing.T) {
	p := &test.Publisher{Err: errors.New("no broker")}
	en, _ := NewEventNotifier(p)
	en.NotifyProgress("t1", 50)
	en.NotifyError("t1", "olia")
	assert.Equal(t, 0, len(p.Msgs))
}

var _ messages.Publisher = &test.Publisher{}

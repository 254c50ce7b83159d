package inform

import (
	"testing"
	"time"

	aInform "github.com/airenas/async-api/pkg/inform"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func newTestConfig() *viper.Viper {
	v := viper.New()
	v.Set("mail.url", "http://eval.local/results/{{ID}}")
	v.Set("mail.completed.subject", "Evaluation completed")
	v.Set("mail.completed.text", "Task {{ID}} finished at {{DATE}}. See {{URL}}")
	v.Set("mail.failed.subject", "Evaluation failed")
	v.Set("mail.failed.text", "Task {{ID}} failed at {{DATE}}")
	v.Set("smtp.username", "noreply@eval.local")
	return v
}

func newTestData(msgType string) *aInform.Data {
	return &aInform.Data{ID: "t1", Email: "a@a.a", MsgType: msgType,
		MsgTime: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)}
}

func TestNewSimpleEmailMaker_FailsNoURL(t *testing.T) {
	v := newTestConfig()
	v.Set("mail.url", "")
	_, err := NewSimpleEmailMaker(v)
	assert.NotNil(t, err)
}

func TestMake_Completed(t *testing.T) {
	maker, err := NewSimpleEmailMaker(newTestConfig())
	assert.Nil(t, err)
	e, err := maker.Make(newTestData(MsgTypeCompleted))
	assert.Nil(t, err)
	assert.Equal(t, "Evaluation completed", e.Subject)
	assert.Equal(t, []string{"a@a.a"}, e.To)
	assert.Equal(t, "noreply@eval.local", e.From)
	assert.Equal(t, "Task t1 finished at 2024-05-01 10:30:00. See http://eval.local/results/t1", string(e.Text))
}

func TestMake_Failed(t *testing.T) {
	maker, _ := NewSimpleEmailMaker(newTestConfig())
	e, err := maker.Make(newTestData(MsgTypeFailed))
	assert.Nil(t, err)
	assert.Equal(t, "Evaluation failed", e.Subject)
	assert.Equal(t, "Task t1 failed at 2024-05-01 10:30:00", string(e.Text))
}

func TestMake_FailsNoTemplate(t *testing.T) {
	maker, _ := NewSimpleEmailMaker(newTestConfig())
	_, err := maker.Make(newTestData("olia"))
	assert.NotNil(t, err)
}

package worker

import (
	"context"
	"encoding/json"
	"path"
	"time"

	aInform "github.com/airenas/async-api/pkg/inform"
	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"github.com/streadway/amqp"

	"github.com/skaura/transeval/internal/pkg/cmdapp"
	"github.com/skaura/transeval/internal/pkg/inform"
	"github.com/skaura/transeval/internal/pkg/messages"
	"github.com/skaura/transeval/internal/pkg/progress"
	"github.com/skaura/transeval/internal/pkg/result"
	"github.com/skaura/transeval/internal/pkg/similarity"
)

// Translator turns the request into the translated text
type Translator interface {
	Translate(ctx context.Context, req *similarity.Request) (string, error)
}

// Evaluator runs the scoring pipeline
type Evaluator interface {
	Evaluate(ctx context.Context, taskName, original, translated string) (*similarity.Report, error)
}

// RecordBuilder folds the report into the terminal record
type RecordBuilder interface {
	Build(report *similarity.Report, req *similarity.Request, taskName string, failed bool) *result.Record
}

// RecordSender delivers the terminal record downstream
type RecordSender interface {
	Send(record *result.Record) error
}

// FileSaver persists the translated artifact
type FileSaver interface {
	Save(key string, data []byte, contentType string) error
}

// BackOffProvider returns a fresh backoff strategy for one operation
type BackOffProvider interface {
	Get() backoff.BackOff
}

// ServiceData keeps data required for service work
type ServiceData struct {
	Translator   Translator
	Evaluator    Evaluator
	Builder      RecordBuilder
	ResultSender RecordSender
	FileSaver    FileSaver
	Notifier     progress.Notifier
	BackOff      BackOffProvider

	// EmailMaker/EmailSender are optional, both set or both nil
	EmailMaker  inform.Maker
	EmailSender inform.Sender

	WorkCh <-chan amqp.Delivery
}

// StartWorkerService starts the work queue listener.
// Each delivery runs as its own task, concurrent tasks do not affect each other
//
// to wait sync for the service to finish:
// fc, err := StartWorkerService(data)
// handle err
// <-fc // waits for finish
func StartWorkerService(data *ServiceData) (<-chan bool, error) {
	if err := validateData(data); err != nil {
		return nil, err
	}
	cmdapp.Log.Infof("Starting listen for messages")
	fc := make(chan bool)
	go listenQueue(data, fc)
	return fc, nil
}

func validateData(data *ServiceData) error {
	if data.Translator == nil {
		return errors.New("No translator")
	}
	if data.Evaluator == nil {
		return errors.New("No evaluator")
	}
	if data.Builder == nil {
		return errors.New("No record builder")
	}
	if data.ResultSender == nil {
		return errors.New("No result sender")
	}
	if data.FileSaver == nil {
		return errors.New("No file saver")
	}
	if data.Notifier == nil {
		return errors.New("No notifier")
	}
	if data.BackOff == nil {
		return errors.New("No backoff provider")
	}
	if data.WorkCh == nil {
		return errors.New("No work channel")
	}
	return nil
}

func listenQueue(data *ServiceData, fc chan<- bool) {
	for d := range data.WorkCh {
		go processDelivery(data, d)
	}
	cmdapp.Log.Infof("Stopped listening queue")
	fc <- true
}

func processDelivery(data *ServiceData, d amqp.Delivery) {
	var message messages.WorkMessage
	if err := json.Unmarshal(d.Body, &message); err != nil {
		cmdapp.Log.Errorf("Can't unmarshal message %s", string(d.Body))
		cmdapp.LogIf(d.Nack(false, false))
		return
	}
	RunTask(data, &message)
	cmdapp.LogIf(d.Ack(false))
}

// RunTask drives one task to its terminal record.
// Any stage failure is recovered into a degraded record, the task always
// completes and the record delivery is always attempted
func RunTask(data *ServiceData, message *messages.WorkMessage) {
	cmdapp.Log.Infof("Starting task %s", message.TaskName)
	data.Notifier.NotifyProgress(message.TaskName, 0)

	ctx := context.Background()
	req := &message.Request

	translated := req.OutputText
	if translated == "" {
		var err error
		translated, err = translateAndStore(data, message)
		if err != nil {
			cmdapp.Log.Errorf("Translation failed for %s: %s", message.TaskName, err.Error())
			data.Notifier.NotifyError(message.TaskName, err.Error())
			deliver(data, message, similarity.EmptyReport(req.InputText, req.OutputText), true)
			return
		}
	}

	report, err := data.Evaluator.Evaluate(ctx, message.TaskName, req.InputText, translated)
	if err != nil {
		cmdapp.Log.Errorf("Similarity evaluation failed for %s: %s", message.TaskName, err.Error())
		data.Notifier.NotifyError(message.TaskName, "Similarity evaluation error")
		deliver(data, message, similarity.EmptyReport(req.InputText, translated), true)
		return
	}

	deliver(data, message, report, false)
}

func translateAndStore(data *ServiceData, message *messages.WorkMessage) (string, error) {
	ctx := context.Background()
	req := &message.Request
	translated, err := data.Translator.Translate(ctx, req)
	if err != nil {
		return "", err
	}
	key := derivedOutputKey(req.InputTextKey, message.TaskName)
	op := func() error {
		return data.FileSaver.Save(key, []byte(translated), "text/plain; charset=utf-8")
	}
	if err := backoff.Retry(op, data.BackOff.Get()); err != nil {
		return "", errors.Wrap(err, "Can't save translated text")
	}
	req.OutputText = translated
	req.OutputTextKey = key
	return translated, nil
}

func deliver(data *ServiceData, message *messages.WorkMessage, report *similarity.Report, failed bool) {
	record := data.Builder.Build(report, &message.Request, message.TaskName, failed)
	if err := data.ResultSender.Send(record); err != nil {
		cmdapp.Log.Errorf("Can't deliver result for %s: %s", message.TaskName, err.Error())
	}
	informFinished(data, message, failed)
	cmdapp.Log.Infof("Completed task %s (%s)", message.TaskName, record.Status)
}

func informFinished(data *ServiceData, message *messages.WorkMessage, failed bool) {
	if message.Email == "" || data.EmailMaker == nil || data.EmailSender == nil {
		return
	}
	msgType := inform.MsgTypeCompleted
	if failed {
		msgType = inform.MsgTypeFailed
	}
	mailData := aInform.Data{ID: message.TaskName, Email: message.Email,
		MsgTime: time.Now(), MsgType: msgType}
	mail, err := data.EmailMaker.Make(&mailData)
	if err != nil {
		cmdapp.Log.Error(err)
		return
	}
	if err := data.EmailSender.Send(mail); err != nil {
		cmdapp.Log.Error(err)
	}
}

// derivedOutputKey appends ".txt" to the full input file name, so the
// translated artifact never collides with the uploaded input object
func derivedOutputKey(inputKey, taskName string) string {
	base := path.Base(inputKey)
	if base == "" || base == "." || base == "/" {
		base = "output_text"
	}
	return "text_similarity/" + taskName + "/" + base + ".txt"
}

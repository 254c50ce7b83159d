package worker

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skaura/transeval/internal/pkg/cmdapp"
	"github.com/skaura/transeval/internal/pkg/config"
	"github.com/skaura/transeval/internal/pkg/eval"
	"github.com/skaura/transeval/internal/pkg/inform"
	"github.com/skaura/transeval/internal/pkg/messages"
	"github.com/skaura/transeval/internal/pkg/progress"
	"github.com/skaura/transeval/internal/pkg/rabbit"
	"github.com/skaura/transeval/internal/pkg/result"
	"github.com/skaura/transeval/internal/pkg/scoring"
	"github.com/skaura/transeval/internal/pkg/storage"
	"github.com/skaura/transeval/internal/pkg/tf"
	"github.com/skaura/transeval/internal/pkg/translate"
	"github.com/skaura/transeval/internal/pkg/utils"
	"github.com/streadway/amqp"
)

var appName = "TransEval Worker Service"

var rootCmd = &cobra.Command{
	Use:   "evalWorkerService",
	Short: appName,
	Long:  `Worker service listens for submitted tasks and runs the translation quality evaluation`,
	Run:   run,
}

func init() {
	cmdapp.InitApplication(rootCmd)
	cmdapp.Config.SetDefault("pairsConfig.path", "/data/config/")
}

// Execute starts the server
func Execute() {
	cmdapp.Execute(rootCmd)
}

func run(cmd *cobra.Command, args []string) {
	cmdapp.Log.Info("Starting " + appName)
	data := ServiceData{}

	msgChannelProvider, err := rabbit.NewChannelProvider()
	cmdapp.CheckOrPanic(err, "Can't init rabbit provider")
	defer msgChannelProvider.Close()

	ch, err := msgChannelProvider.Channel()
	cmdapp.CheckOrPanic(err, "Can't open channel")

	err = initQueues(msgChannelProvider)
	cmdapp.CheckOrPanic(err, "Can't init queues")

	data.WorkCh, err = rabbit.NewChannel(ch, msgChannelProvider.QueueName(messages.Evaluate))
	cmdapp.CheckOrPanic(err, "Can't listen "+messages.Evaluate+" queue")

	data.Notifier, err = progress.NewEventNotifier(rabbit.NewPublisher(msgChannelProvider))
	cmdapp.CheckOrPanic(err, "Can't init notifier")

	fileSaver, err := storage.NewClient()
	cmdapp.CheckOrPanic(err, "Can't init object storage")
	data.FileSaver = fileSaver

	data.Translator, err = newDispatcher()
	cmdapp.CheckOrPanic(err, "Can't init translators")

	data.Evaluator, err = newPipeline(data.Notifier)
	cmdapp.CheckOrPanic(err, "Can't init evaluation pipeline")

	data.Builder, err = result.NewBuilder(fileSaver)
	cmdapp.CheckOrPanic(err, "Can't init record builder")

	data.ResultSender, err = result.NewSender()
	cmdapp.CheckOrPanic(err, "Can't init result sender")

	data.BackOff = &expBackOffProvider{}

	if cmdapp.Config.GetString("smtp.host") != "" {
		data.EmailMaker, err = inform.NewSimpleEmailMaker(cmdapp.Config)
		cmdapp.CheckOrPanic(err, "Can't init email maker")
		data.EmailSender, err = inform.NewSimpleEmailSender()
		cmdapp.CheckOrPanic(err, "Can't init email sender")
	}

	fc, err := StartWorkerService(&data)
	cmdapp.CheckOrPanic(err, "Can't start worker service")
	sc := utils.NewSignalChannel()
	select {
	case <-fc:
	case s := <-sc.C:
		cmdapp.Log.Infof("Got signal %v", s)
	}
	cmdapp.Log.Infof("Exiting service")
}

func initQueues(prv *rabbit.ChannelProvider) error {
	cmdapp.Log.Info("Initializing queues")
	return prv.RunOnChannelWithRetry(func(ch *amqp.Channel) error {
		_, err := rabbit.DeclareQueue(ch, prv.QueueName(messages.Evaluate))
		if err != nil {
			return err
		}
		return rabbit.DeclareExchange(ch, messages.StatusEvent)
	})
}

func newDispatcher() (*translate.Dispatcher, error) {
	google, err := translate.NewGoogleClient(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "Can't init Google client")
	}
	pairs, err := config.NewFilePairsMap(cmdapp.Config.GetString("pairsConfig.path"))
	if err != nil {
		return nil, errors.Wrap(err, "Can't init pairs map")
	}
	m2m, err := translate.NewM2MClient(pairs)
	if err != nil {
		return nil, errors.Wrap(err, "Can't init m2m client")
	}
	return translate.NewDispatcher(google, m2m, translate.NewGPTClient())
}

func newPipeline(notifier progress.Notifier) (*eval.Pipeline, error) {
	e5Wrapper, err := tf.NewWrapper(cmdapp.Config.GetString("tf.e5.url"),
		cmdapp.Config.GetString("tf.e5.name"), cmdapp.Config.GetInt("tf.e5.version"))
	if err != nil {
		return nil, errors.Wrap(err, "Can't init e5 tf wrapper")
	}
	e5, err := scoring.NewE5Scorer(e5Wrapper)
	if err != nil {
		return nil, err
	}
	labseWrapper, err := tf.NewWrapper(cmdapp.Config.GetString("tf.labse.url"),
		cmdapp.Config.GetString("tf.labse.name"), cmdapp.Config.GetInt("tf.labse.version"))
	if err != nil {
		return nil, errors.Wrap(err, "Can't init labse tf wrapper")
	}
	labse, err := scoring.NewLaBSEScorer(labseWrapper)
	if err != nil {
		return nil, err
	}
	bertScore, err := scoring.NewBertScoreClient()
	if err != nil {
		return nil, err
	}
	comet, err := scoring.NewCometClient()
	if err != nil {
		return nil, err
	}
	return eval.NewPipeline(e5, labse, bertScore, comet, notifier)
}

type expBackOffProvider struct {
}

func (bp *expBackOffProvider) Get() backoff.BackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     backoff.DefaultInitialInterval,
		RandomizationFactor: backoff.DefaultRandomizationFactor,
		Multiplier:          backoff.DefaultMultiplier,
		MaxInterval:         backoff.DefaultMaxInterval,
		MaxElapsedTime:      30 * time.Second,
		Clock:               backoff.SystemClock,
	}
	b.Reset()
	return b
}

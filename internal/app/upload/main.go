package upload

import (
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"

	"github.com/skaura/transeval/internal/pkg/cmdapp"
	"github.com/skaura/transeval/internal/pkg/config"
	"github.com/skaura/transeval/internal/pkg/messages"
	"github.com/skaura/transeval/internal/pkg/metrics"
	"github.com/skaura/transeval/internal/pkg/rabbit"
	"github.com/skaura/transeval/internal/pkg/storage"
)

var rootCmd = &cobra.Command{
	Use:   "uploadService",
	Short: "TransEval Upload Service",
	Long:  `HTTP server to accept translation evaluation tasks`,
	Run:   run,
}

func init() {
	cmdapp.InitApplication(rootCmd)
	rootCmd.PersistentFlags().Int32P("port", "", 8000, "Default service port")
	cmdapp.Config.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	cmdapp.Config.SetDefault("port", 8080)
}

//Execute starts the server
func Execute() {
	cmdapp.Execute(rootCmd)
}

func run(cmd *cobra.Command, args []string) {
	cmdapp.Log.Info("Starting uploadService")
	var data ServiceData
	err := initMetrics(&data)
	cmdapp.CheckOrPanic(err, "Can't init metrics")

	data.health = healthcheck.NewHandler()
	fs, err := storage.NewClient()
	cmdapp.CheckOrPanic(err, "Can't init object storage")
	data.FileSaver = fs
	data.health.AddLivenessCheck("storage", healthcheck.Async(fs.Healthy, 10*time.Second))

	data.BackendProvider, err = config.NewFileBackendInfoLoader(cmdapp.Config.GetString("backendConfig.path"))
	cmdapp.CheckOrPanic(err, "Can't init backend config")

	msgChannelProvider, err := rabbit.NewChannelProvider()
	cmdapp.CheckOrPanic(err, "Can't init rabbit channel")
	defer msgChannelProvider.Close()
	data.health.AddLivenessCheck("rabbit", healthcheck.Async(msgChannelProvider.Healthy, 10*time.Second))

	err = initQueues(msgChannelProvider)
	cmdapp.CheckOrPanic(err, "Can't init queues")

	data.MessageSender = rabbit.NewSender(msgChannelProvider)
	data.Port = cmdapp.Config.GetInt("port")

	err = StartWebServer(&data)
	cmdapp.CheckOrPanic(err, "Can't start web server")
}

func initQueues(prv *rabbit.ChannelProvider) error {
	cmdapp.Log.Info("Initializing queues")
	return prv.RunOnChannelWithRetry(func(ch *amqp.Channel) error {
		_, err := rabbit.DeclareQueue(ch, prv.QueueName(messages.Evaluate))
		return err
	})
}

func initMetrics(data *ServiceData) error {
	namespace := "upload_service"
	data.metrics.uploadResponseDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_request_durations_seconds",
			Help:      "Upload request latency distributions.",
		}, nil)
	err := metrics.Register(data.metrics.uploadResponseDur)
	if err != nil {
		return err
	}
	data.metrics.uploadRequestSize = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace: namespace,
			Name:      "upload_request_size_bytes",
			Help:      "Upload request size in bytes.",
		}, nil)
	err = metrics.Register(data.metrics.uploadRequestSize)
	if err != nil {
		return err
	}
	data.metrics.retransResponseDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "retranslate_request_durations_seconds",
			Help:      "Retranslate request latency distributions.",
		}, nil)
	err = metrics.Register(data.metrics.retransResponseDur)
	if err != nil {
		return err
	}
	data.metrics.backendResponseDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backends_request_durations_seconds",
			Help:      "Backends request latency distributions.",
		}, nil)
	return metrics.Register(data.metrics.backendResponseDur)
}

package status

import (
	"os"

	"github.com/heptiolabs/healthcheck"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"

	"github.com/skaura/transeval/internal/pkg/cmdapp"
	"github.com/skaura/transeval/internal/pkg/messages"
	"github.com/skaura/transeval/internal/pkg/rabbit"
)

var appName = "TransEval Status Provider Service"

var rootCmd = &cobra.Command{
	Use:   "statusProviderService",
	Short: appName,
	Long:  `Websocket server to push task progress events to subscribers`,
	Run:   run,
}

func init() {
	cmdapp.InitApplication(rootCmd)
	rootCmd.PersistentFlags().Int32P("port", "", 8000, "Default service port")
	cmdapp.Config.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	cmdapp.Config.SetDefault("port", 8080)
}

func logPanic() {
	if r := recover(); r != nil {
		cmdapp.Log.Error(r)
		os.Exit(1)
	}
}

//Execute starts the server
func Execute() {
	defer logPanic()
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}

func run(cmd *cobra.Command, args []string) {
	cmdapp.Log.Info("Starting " + appName)

	msgChannelProvider, err := rabbit.NewChannelProvider()
	cmdapp.CheckOrPanic(err, "Can't init rabbit provider")
	defer msgChannelProvider.Close()

	data := &ServiceData{}
	data.Port = cmdapp.Config.GetInt("port")
	data.EventChannelFunc = func() (<-chan amqp.Delivery, error) {
		var res <-chan amqp.Delivery
		err := msgChannelProvider.RunOnChannelWithRetry(func(ch *amqp.Channel) error {
			var err error
			res, err = rabbit.NewEventChannel(ch, messages.StatusEvent)
			return err
		})
		return res, err
	}

	health := healthcheck.NewHandler()
	health.AddReadinessCheck("rabbit", msgChannelProvider.Healthy)
	data.health = health

	err = StartWebServer(data)
	cmdapp.CheckOrPanic(err, "Can't start web server")
}

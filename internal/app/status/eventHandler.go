package status

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/streadway/amqp"

	"github.com/skaura/transeval/internal/pkg/cmdapp"
	"github.com/skaura/transeval/internal/pkg/messages"
)

type eventChannelFunc func() (<-chan amqp.Delivery, error)

func listenQueue(channel <-chan amqp.Delivery, fc chan<- bool) {
	for d := range channel {
		err := processMsg(&d)
		if err != nil {
			cmdapp.Log.Errorf("Can't process message %s\n%s", d.MessageId, string(d.Body))
			cmdapp.Log.Error(err)
		}
	}
	cmdapp.Log.Infof("Stopped listening queue")
	close(fc)
}

func registerQueue(data *ServiceData, quitChan <-chan bool, initialWait time.Duration) {
	wait := initialWait
	for {
		select {
		case <-quitChan:
			cmdapp.Log.Infof("Quit listening queue")
			return
		default:
			fc := make(chan bool)
			cmdapp.Log.Infof("Trying listening queue")
			msgs, err := data.EventChannelFunc()
			if err != nil {
				cmdapp.Log.Error(err)
				wait = wait * 2
				if wait > time.Minute {
					wait = time.Minute
				}
				cmdapp.Log.Infof("Wait before reconnect %d s", wait/time.Second)
				time.Sleep(wait)
				continue
			}
			wait = initialWait
			go listenQueue(msgs, fc)
			<-fc
		}
	}
}

func processMsg(d *amqp.Delivery) error {
	var event messages.ProgressMessage
	if err := json.Unmarshal(d.Body, &event); err != nil {
		return errors.Wrap(err, "Can't unmarshal event "+string(d.Body))
	}
	conns := getConnections(event.TaskName)
	if len(conns) == 0 {
		cmdapp.Log.Debugf("No connections found for %s", event.TaskName)
		return nil
	}
	for _, c := range conns {
		cmdapp.LogIf(sendMsg(c, &event))
	}
	return nil
}

func sendMsg(c WsConn, event *messages.ProgressMessage) error {
	cmdapp.Log.Debugf("Sending event for %s to websocket", event.TaskName)
	err := c.WriteJSON(event)
	if err != nil {
		return errors.Wrap(err, "Cannot write to websocket")
	}
	return nil
}

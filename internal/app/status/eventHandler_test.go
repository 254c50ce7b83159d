package status

import (
	"errors"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"

	"github.com/skaura/transeval/internal/pkg/messages"
)

func newEventConn() *wsConnMock {
	return &wsConnMock{}
}

func Test_ProcessMsg_WrongBody(t *testing.T) {
	d := amqp.Delivery{Body: []byte("olia {")}
	err := processMsg(&d)
	assert.NotNil(t, err)
}

func Test_ProcessMsg_NoConnections(t *testing.T) {
	d := amqp.Delivery{Body: []byte(`{"taskName":"t-no-conn","percent":50}`)}
	err := processMsg(&d)
	assert.Nil(t, err)
}

func Test_ProcessMsg_MsgSent(t *testing.T) {
	conn := newEventConn()
	saveConnection(conn, "t-e1")
	defer deleteConnection(conn)

	d := amqp.Delivery{Body: []byte(`{"taskName":"t-e1","percent":75}`)}
	err := processMsg(&d)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(conn.written))
	event, ok := conn.written[0].(*messages.ProgressMessage)
	assert.True(t, ok)
	assert.Equal(t, "t-e1", event.TaskName)
	assert.Equal(t, 75, event.Percent)
}

func Test_ProcessMsg_ErrorEvent(t *testing.T) {
	conn := newEventConn()
	saveConnection(conn, "t-e2")
	defer deleteConnection(conn)

	d := amqp.Delivery{Body: []byte(`{"taskName":"t-e2","percent":-1,"error":"olia"}`)}
	err := processMsg(&d)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(conn.written))
	event := conn.written[0].(*messages.ProgressMessage)
	assert.Equal(t, -1, event.Percent)
	assert.Equal(t, "olia", event.Error)
}

func Test_ProcessMsg_MultipleConnections(t *testing.T) {
	conn := newEventConn()
	conn1 := newEventConn()
	saveConnection(conn, "t-e3")
	saveConnection(conn1, "t-e3")
	defer deleteConnection(conn)
	defer deleteConnection(conn1)

	d := amqp.Delivery{Body: []byte(`{"taskName":"t-e3","percent":100}`)}
	err := processMsg(&d)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(conn.written))
	assert.Equal(t, 1, len(conn1.written))
}

func Test_ProcessMsg_FailingConnection(t *testing.T) {
	conn := newEventConn()
	conn.writeErr = errors.New("broken pipe")
	conn1 := newEventConn()
	saveConnection(conn, "t-e4")
	saveConnection(conn1, "t-e4")
	defer deleteConnection(conn)
	defer deleteConnection(conn1)

	d := amqp.Delivery{Body: []byte(`{"taskName":"t-e4","percent":25}`)}
	err := processMsg(&d)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(conn1.written))
}

type eventTestdata struct {
	c     chan amqp.Delivery
	data  *ServiceData
	fc    chan bool
	waitc chan bool
	f     func()
	fail  bool
	i     int
}

func initTestDataRegisterQueue(t *testing.T) *eventTestdata {
	res := eventTestdata{}
	res.c = make(chan amqp.Delivery)
	res.data = &ServiceData{}
	res.fc = make(chan bool)
	res.waitc = make(chan bool)
	res.data.EventChannelFunc = func() (<-chan amqp.Delivery, error) {
		res.i++
		if res.fail {
			return nil, errors.New("error")
		}
		return res.c, nil
	}
	res.f = func() {
		registerQueue(res.data, res.fc, time.Millisecond)
		res.waitc <- true
	}
	return &res
}

func Test_RegisteringQueue_FunctionFails(t *testing.T) {
	td := initTestDataRegisterQueue(t)
	td.fail = true

	go td.f()
	time.Sleep(time.Millisecond * 100)
	close(td.fc)
	<-td.waitc
	assert.True(t, td.i > 1)
}

func Test_RegisteringQueue_Restores(t *testing.T) {
	td := initTestDataRegisterQueue(t)
	td.fail = true

	go td.f()
	time.Sleep(time.Millisecond * 100)
	td.fail = false
	td.i = 0
	time.Sleep(time.Millisecond * 100)
	close(td.fc)
	close(td.c)
	<-td.waitc
	assert.Equal(t, td.i, 1)
}

func Test_RegisteringQueue_NoFailure(t *testing.T) {
	td := initTestDataRegisterQueue(t)
	go td.f()
	time.Sleep(time.Millisecond * 100)
	close(td.fc)
	close(td.c)
	<-td.waitc
	assert.Equal(t, td.i, 1)
}

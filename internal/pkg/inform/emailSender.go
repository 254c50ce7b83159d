package inform

import (
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"

	"github.com/skaura/transeval/internal/pkg/cmdapp"
)

// Sender sends emails
type Sender interface {
	Send(email *email.Email) error
}

// SimpleEmailSender sends emails over a smtp connection pool
type SimpleEmailSender struct {
	sendPool *email.Pool
}

// NewSimpleEmailSender creates SimpleEmailSender from config
func NewSimpleEmailSender() (*SimpleEmailSender, error) {
	r := SimpleEmailSender{}
	var err error
	r.sendPool, err = email.NewPool(cmdapp.Config.GetString("smtp.host")+":"+cmdapp.Config.GetString("smtp.port"), 1,
		smtp.PlainAuth("", cmdapp.Config.GetString("smtp.username"), cmdapp.Config.GetString("smtp.password"),
			cmdapp.Config.GetString("smtp.host")))
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Send sends the email
func (s *SimpleEmailSender) Send(email *email.Email) error {
	return s.sendPool.Send(email, 10*time.Second)
}

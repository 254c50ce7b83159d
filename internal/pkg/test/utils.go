package test

import (
	"log"

	"github.com/skaura/transeval/internal/pkg/messages"
)

// Sender collects sent work messages for assertions
type Sender struct {
	Msgs []SentMsg
	Err  error
}

// SentMsg is one captured work message with its queue
type SentMsg struct {
	M *messages.WorkMessage
	Q string
}

func (sender *Sender) Send(m *messages.WorkMessage, q string) error {
	log.Printf("Sending msg %s\n", m.TaskName)
	if sender.Err != nil {
		return sender.Err
	}
	sender.Msgs = append(sender.Msgs, SentMsg{m, q})
	return nil
}

// Publisher collects published progress events for assertions
type Publisher struct {
	Msgs []*messages.ProgressMessage
	Err  error
}

func (p *Publisher) Publish(m *messages.ProgressMessage, topic string) error {
	if p.Err != nil {
		return p.Err
	}
	p.Msgs = append(p.Msgs, m)
	return nil
}

// Percents extracts the percent sequence from captured events
func (p *Publisher) Percents() []int {
	res := make([]int, 0, len(p.Msgs))
	for _, m := range p.Msgs {
		res = append(res, m.Percent)
	}
	return res
}

// Contains checks a string is present in slice
func Contains(s []string, v string) bool {
	for _, a := range s {
		if a == v {
			return true
		}
	}
	return false
}

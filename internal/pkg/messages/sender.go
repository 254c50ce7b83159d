package messages

// Sender sends a work message to the message broker
type Sender interface {
	Send(message *WorkMessage, queue string) error
}

// Publisher publishes a progress event to the message broker
type Publisher interface {
	Publish(message *ProgressMessage, topic string) error
}

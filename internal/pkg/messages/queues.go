package messages

const (
	// Evaluate is the work queue for submitted tasks
	Evaluate string = "Evaluate"
	// StatusEvent is the exchange for progress events
	StatusEvent string = "StatusEvent"
)

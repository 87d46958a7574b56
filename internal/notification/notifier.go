package notification

import (
	"context"
	"log"
)

// Notifier delivers one message. Implementations must not retry.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// LogNotifier writes messages to the process log.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(_ context.Context, msg Message) error {
	log.Printf("[notify] %s to=%s :: %s", msg.Kind, msg.To, msg.Subject)
	return nil
}

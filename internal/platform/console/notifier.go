package console

import (
	"context"
	"log"
)

// Notifier simulates delivery by logging the message. Used when no real
// notification channel is configured.
type Notifier struct{}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Send(_ context.Context, address, message string) error {
	log.Printf("sending SMS to %s", address)
	log.Printf("message: %s", message)
	return nil
}

package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"healthmate/internal/records"
)

// ReminderStore is the slice of the record store the cycle needs.
type ReminderStore interface {
	PendingReminders(ctx context.Context) ([]records.Reminder, error)
	MarkReminderSent(ctx context.Context, reminderID string) error
}

// Notifier delivers a single message to a contact address. An error means
// the delivery failed; there are no stronger guarantees.
type Notifier interface {
	Send(ctx context.Context, address, message string) error
}

// Service scans pending reminders and dispatches them. A reminder is marked
// sent only after a successful delivery, so a failed send stays pending for
// a later cycle. Re-running a cycle never re-notifies a sent reminder.
type Service struct {
	store    ReminderStore
	notifier Notifier
	contact  string
}

// NewService builds a reminder Service. contact is the delivery address for
// reminder messages; resolving per-patient contact details is a pending
// follow-up, the single configured address stands in for it.
func NewService(store ReminderStore, notifier Notifier, contact string) *Service {
	return &Service{store: store, notifier: notifier, contact: contact}
}

// RunCycle performs one scan-and-dispatch pass over pending reminders.
// Send failures are logged and skipped, not retried within the cycle.
func (s *Service) RunCycle(ctx context.Context) error {
	log.Println("running reminder cycle...")

	pending, err := s.store.PendingReminders(ctx)
	if err != nil {
		return fmt.Errorf("fetch pending reminders: %w", err)
	}

	for _, rem := range pending {
		s.process(ctx, rem)
	}
	return nil
}

func (s *Service) process(ctx context.Context, rem records.Reminder) {
	log.Printf("processing reminder %s", rem.ID)

	message := fmt.Sprintf("Reminder for appointment %s", rem.AppointmentID)
	if err := s.notifier.Send(ctx, s.contact, message); err != nil {
		log.Printf("reminder %s delivery failed: %v", rem.ID, err)
		return
	}

	if err := s.store.MarkReminderSent(ctx, rem.ID); err != nil {
		log.Printf("reminder %s sent but not marked: %v", rem.ID, err)
		return
	}
	log.Printf("reminder %s sent and marked", rem.ID)
}

// RunLoop repeats RunCycle on a fixed interval, blocking until ctx is
// cancelled. Not part of the request path.
func (s *Service) RunLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := s.RunCycle(ctx); err != nil {
			log.Printf("reminder cycle failed: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

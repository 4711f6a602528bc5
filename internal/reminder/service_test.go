package reminder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthmate/internal/records"
)

type fakeStore struct {
	reminders []records.Reminder
	listErr   error
	markErr   error
}

func (f *fakeStore) PendingReminders(context.Context) ([]records.Reminder, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var pending []records.Reminder
	for _, r := range f.reminders {
		if !r.Sent {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

func (f *fakeStore) MarkReminderSent(_ context.Context, id string) error {
	if f.markErr != nil {
		return f.markErr
	}
	for i := range f.reminders {
		if f.reminders[i].ID == id {
			f.reminders[i].Sent = true
		}
	}
	return nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, _, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, message)
	return nil
}

func TestRunCycle(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends and marks every pending reminder", func(t *testing.T) {
		store := &fakeStore{reminders: []records.Reminder{
			{ID: "r1", AppointmentID: "a1"},
			{ID: "r2", AppointmentID: "a2"},
			{ID: "r3", AppointmentID: "a3", Sent: true},
		}}
		notifier := &fakeNotifier{}
		svc := NewService(store, notifier, "555-0123")

		require.NoError(t, svc.RunCycle(ctx))

		assert.Len(t, notifier.sent, 2)
		assert.Contains(t, notifier.sent[0], "a1")
		assert.True(t, store.reminders[0].Sent)
		assert.True(t, store.reminders[1].Sent)
	})

	t.Run("Second cycle does not re-notify sent reminders", func(t *testing.T) {
		store := &fakeStore{reminders: []records.Reminder{{ID: "r1", AppointmentID: "a1"}}}
		notifier := &fakeNotifier{}
		svc := NewService(store, notifier, "555-0123")

		require.NoError(t, svc.RunCycle(ctx))
		require.NoError(t, svc.RunCycle(ctx))

		assert.Len(t, notifier.sent, 1)
	})

	t.Run("Failed send leaves reminder pending for a later cycle", func(t *testing.T) {
		store := &fakeStore{reminders: []records.Reminder{{ID: "r1", AppointmentID: "a1"}}}
		notifier := &fakeNotifier{err: errors.New("channel down")}
		svc := NewService(store, notifier, "555-0123")

		require.NoError(t, svc.RunCycle(ctx))
		assert.False(t, store.reminders[0].Sent)

		// Channel recovers; the next cycle picks the reminder up.
		notifier.err = nil
		require.NoError(t, svc.RunCycle(ctx))
		assert.True(t, store.reminders[0].Sent)
		assert.Len(t, notifier.sent, 1)
	})

	t.Run("Store scan failure surfaces as an error", func(t *testing.T) {
		store := &fakeStore{listErr: errors.New("db gone")}
		svc := NewService(store, &fakeNotifier{}, "555-0123")

		assert.Error(t, svc.RunCycle(ctx))
	})

	t.Run("Mark failure does not stop the cycle", func(t *testing.T) {
		store := &fakeStore{
			reminders: []records.Reminder{{ID: "r1"}, {ID: "r2"}},
			markErr:   errors.New("update failed"),
		}
		notifier := &fakeNotifier{}
		svc := NewService(store, notifier, "555-0123")

		require.NoError(t, svc.RunCycle(ctx))
		assert.Len(t, notifier.sent, 2)
	})
}

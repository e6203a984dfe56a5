package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type reminderSenderStub struct {
	messages []string
	err      error
}

func (stub *reminderSenderStub) SendReminder(_ context.Context, text string) error {
	if stub.err != nil {
		return stub.err
	}
	stub.messages = append(stub.messages, text)
	return nil
}

func newTestReminderService(t *testing.T, sender ReminderSender, now string, rawDates ...string) *ReminderService {
	t.Helper()
	service := NewReminderService(NewCycleService(newCycleRepositoryStub(t, rawDates...)), sender, 2, time.UTC, nil)
	current := mustParseDay(t, now).Add(9 * time.Hour)
	service.now = func() time.Time { return current }
	return service
}

func TestReminderSendsTwoDaysBeforeOncePerDay(t *testing.T) {
	t.Parallel()

	sender := &reminderSenderStub{}
	// next period predicted on 2025-02-26
	service := newTestReminderService(t, sender, "2025-02-24", "2025-01-01", "2025-01-29")

	sent, err := service.Check(context.Background())
	if err != nil || !sent {
		t.Fatalf("expected reminder sent, sent=%v err=%v", sent, err)
	}
	sent, err = service.Check(context.Background())
	if err != nil || sent {
		t.Fatalf("expected second check to be deduped, sent=%v err=%v", sent, err)
	}
	if len(sender.messages) != 1 || !strings.Contains(sender.messages[0], "2025-02-26") {
		t.Fatalf("unexpected messages %v", sender.messages)
	}
}

func TestReminderSkipsOtherDays(t *testing.T) {
	t.Parallel()

	for _, today := range []string{"2025-02-23", "2025-02-25", "2025-02-26"} {
		sender := &reminderSenderStub{}
		service := newTestReminderService(t, sender, today, "2025-01-01", "2025-01-29")
		sent, err := service.Check(context.Background())
		if err != nil || sent {
			t.Fatalf("%s: expected no reminder, sent=%v err=%v", today, sent, err)
		}
	}
}

func TestReminderWithoutHistory(t *testing.T) {
	t.Parallel()

	sender := &reminderSenderStub{}
	sent, err := newTestReminderService(t, sender, "2025-02-24").Check(context.Background())
	if err != nil || sent {
		t.Fatalf("expected no reminder without history, sent=%v err=%v", sent, err)
	}
}

func TestReminderRetriesAfterSendFailure(t *testing.T) {
	t.Parallel()

	sender := &reminderSenderStub{err: errors.New("network down")}
	service := newTestReminderService(t, sender, "2025-02-24", "2025-01-01", "2025-01-29")

	if _, err := service.Check(context.Background()); !errors.Is(err, sender.err) {
		t.Fatalf("expected send error, got %v", err)
	}

	sender.err = nil
	sent, err := service.Check(context.Background())
	if err != nil || !sent {
		t.Fatalf("expected retry to send, sent=%v err=%v", sent, err)
	}
}

func TestReminderText(t *testing.T) {
	t.Parallel()

	day := mustParseDay(t, "2025-02-26")
	cases := map[int]string{
		0: "today",
		1: "tomorrow",
		3: "in 3 days",
	}
	for daysUntil, fragment := range cases {
		if got := ReminderText(day, daysUntil); !strings.Contains(got, fragment) {
			t.Fatalf("ReminderText(%d) = %q, want fragment %q", daysUntil, got, fragment)
		}
	}
}

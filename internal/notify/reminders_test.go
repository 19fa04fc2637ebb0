package notify_test

import (
	"testing"

	"fittrack/internal/models"
	"fittrack/internal/notify"
	"fittrack/internal/storage"
)

type stubSnapshot struct {
	view models.ViewState
}

func (s stubSnapshot) State() models.ViewState { return s.view }

func TestProcessRemindersWithoutVapid(t *testing.T) {
	// Unconfigured push must make reminders a silent no-op, never an error.
	t.Setenv("VAPID_PUBLIC_KEY", "")
	t.Setenv("VAPID_PRIVATE_KEY", "")
	t.Setenv("VAPID_SUBJECT", "")

	db, err := storage.Initialize(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := storage.SetPreference(db, "water-reminders", true); err != nil {
		t.Fatal(err)
	}
	if err := storage.SetPreference(db, "workout-reminders", true); err != nil {
		t.Fatal(err)
	}

	snap := stubSnapshot{view: models.ViewState{WaterIntake: 2}}
	if err := notify.ProcessReminders(db, snap); err != nil {
		t.Fatalf("Expected silent no-op, got %v", err)
	}
}

func TestBroadcastSkipsWhenUnconfigured(t *testing.T) {
	t.Setenv("VAPID_PUBLIC_KEY", "")

	db, err := storage.Initialize(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := notify.Broadcast(db, notify.PushPayload{Title: "x"}); err != nil {
		t.Fatalf("Expected nil for unconfigured push, got %v", err)
	}
}

package storage_test

import (
	"database/sql"
	"testing"

	"fittrack/internal/models"
	"fittrack/internal/storage"
)

func setup(t *testing.T) *sql.DB {
	db, err := storage.Initialize(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSessionRoundTrip(t *testing.T) {
	db := setup(t)

	if _, err := storage.LoadSession(db); err != storage.ErrNoSession {
		t.Fatalf("Expected ErrNoSession, got %v", err)
	}

	user := &models.Profile{ID: "u1", Email: "a@b.c", Username: "alice", Weight: 70}
	if err := storage.SaveSession(db, "tok-1", user); err != nil {
		t.Fatal(err)
	}

	sess, err := storage.LoadSession(db)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Token != "tok-1" || sess.User.Username != "alice" || sess.User.Weight != 70 {
		t.Fatalf("Expected stored session back, got %+v", sess)
	}

	// A second login overwrites, never accumulates.
	if err := storage.SaveSession(db, "tok-2", user); err != nil {
		t.Fatal(err)
	}
	sess, _ = storage.LoadSession(db)
	if sess.Token != "tok-2" {
		t.Fatalf("Expected replaced token, got %s", sess.Token)
	}

	if err := storage.ClearSession(db); err != nil {
		t.Fatal(err)
	}
	if _, err := storage.LoadSession(db); err != storage.ErrNoSession {
		t.Fatalf("Expected ErrNoSession after clear, got %v", err)
	}
}

func TestPreferences(t *testing.T) {
	db := setup(t)

	if enabled, err := storage.Preference(db, "water-reminders"); err != nil || enabled {
		t.Fatalf("Expected unset preference to be false, got %v %v", enabled, err)
	}

	if err := storage.SetPreference(db, "water-reminders", true); err != nil {
		t.Fatal(err)
	}
	if err := storage.SetPreference(db, "goal-updates", false); err != nil {
		t.Fatal(err)
	}

	prefs, err := storage.Preferences(db)
	if err != nil {
		t.Fatal(err)
	}
	if !prefs["water-reminders"] || prefs["goal-updates"] {
		t.Fatalf("Expected stored preferences, got %v", prefs)
	}

	// Toggling off overwrites.
	storage.SetPreference(db, "water-reminders", false)
	if enabled, _ := storage.Preference(db, "water-reminders"); enabled {
		t.Fatal("Expected preference toggled off")
	}
}

func TestThemeDefaultsAndNormalization(t *testing.T) {
	db := setup(t)

	if got := storage.Theme(db); got != "light" {
		t.Fatalf("Expected default light theme, got %s", got)
	}

	if err := storage.SetTheme(db, "dark"); err != nil {
		t.Fatal(err)
	}
	if got := storage.Theme(db); got != "dark" {
		t.Fatalf("Expected dark theme, got %s", got)
	}

	if err := storage.SetTheme(db, "solarized"); err != nil {
		t.Fatal(err)
	}
	if got := storage.Theme(db); got != "light" {
		t.Fatalf("Expected unknown theme normalized to light, got %s", got)
	}
}

func TestOfflineCredential(t *testing.T) {
	db := setup(t)

	if err := storage.SaveOfflineCredential(db, "a@b.c", "hash-1"); err != nil {
		t.Fatal(err)
	}
	email, hash, err := storage.OfflineCredential(db)
	if err != nil {
		t.Fatal(err)
	}
	if email != "a@b.c" || hash != "hash-1" {
		t.Fatalf("Expected stored credential, got %s %s", email, hash)
	}

	if err := storage.ClearOfflineCredential(db); err != nil {
		t.Fatal(err)
	}
	if _, _, err := storage.OfflineCredential(db); err == nil {
		t.Fatal("Expected error after clearing credential")
	}
}

func TestPushSubscriptionUpsert(t *testing.T) {
	db := setup(t)

	sub := models.PushSubscription{Endpoint: "https://push.example/ep1", P256dh: "k1", Auth: "a1"}
	if err := storage.SavePushSubscription(db, sub); err != nil {
		t.Fatal(err)
	}

	// Same endpoint with rotated keys replaces, not duplicates.
	sub.P256dh = "k2"
	if err := storage.SavePushSubscription(db, sub); err != nil {
		t.Fatal(err)
	}

	subs, err := storage.PushSubscriptions(db)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 1 || subs[0].P256dh != "k2" {
		t.Fatalf("Expected single upserted subscription, got %+v", subs)
	}

	if err := storage.DeletePushSubscription(db, sub.Endpoint); err != nil {
		t.Fatal(err)
	}
	subs, _ = storage.PushSubscriptions(db)
	if len(subs) != 0 {
		t.Fatalf("Expected empty subscriptions, got %d", len(subs))
	}
}

package storage

import (
	"database/sql"
	"encoding/json"
	"errors"

	"fittrack/internal/models"
)

var ErrNoSession = errors.New("no stored session")

// SaveSession replaces the stored session with the given token/user pair.
// There is only ever one row; a new login overwrites the previous one.
func SaveSession(db *sql.DB, token string, user *models.Profile) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT INTO sessions (id, token, user_json) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, user_json = excluded.user_json`,
		token, string(userJSON),
	)
	return err
}

func LoadSession(db *sql.DB) (*models.Session, error) {
	var token, userJSON string
	err := db.QueryRow("SELECT token, user_json FROM sessions WHERE id = 1").Scan(&token, &userJSON)
	if err == sql.ErrNoRows {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	var user models.Profile
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return nil, err
	}
	return &models.Session{Token: token, User: &user}, nil
}

func ClearSession(db *sql.DB) error {
	_, err := db.Exec("DELETE FROM sessions WHERE id = 1")
	return err
}

// SetPreference stores a flat key -> bool notification preference.
func SetPreference(db *sql.DB, key string, enabled bool) error {
	_, err := db.Exec(
		`INSERT INTO preferences (key, enabled) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET enabled = excluded.enabled`,
		key, enabled,
	)
	return err
}

func Preference(db *sql.DB, key string) (bool, error) {
	var enabled bool
	err := db.QueryRow("SELECT enabled FROM preferences WHERE key = ?", key).Scan(&enabled)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return enabled, nil
}

func Preferences(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query("SELECT key, enabled FROM preferences")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prefs := map[string]bool{}
	for rows.Next() {
		var key string
		var enabled bool
		if err := rows.Scan(&key, &enabled); err != nil {
			return nil, err
		}
		prefs[key] = enabled
	}
	return prefs, rows.Err()
}

// SetTheme persists the theme string; anything other than "dark" is
// normalized to "light".
func SetTheme(db *sql.DB, theme string) error {
	if theme != "dark" {
		theme = "light"
	}
	_, err := db.Exec(
		`INSERT INTO settings (key, value) VALUES ('theme', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		theme,
	)
	return err
}

func Theme(db *sql.DB) string {
	var theme string
	err := db.QueryRow("SELECT value FROM settings WHERE key = 'theme'").Scan(&theme)
	if err != nil || theme == "" {
		return "light"
	}
	return theme
}

// SaveOfflineCredential stores the hash used for offline unlock. A single
// row: the most recent successful login wins.
func SaveOfflineCredential(db *sql.DB, email, passwordHash string) error {
	_, err := db.Exec(
		`INSERT INTO offline_credentials (id, email, password_hash) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET email = excluded.email, password_hash = excluded.password_hash,
		updated_at = CURRENT_TIMESTAMP`,
		email, passwordHash,
	)
	return err
}

func OfflineCredential(db *sql.DB) (email, passwordHash string, err error) {
	err = db.QueryRow("SELECT email, password_hash FROM offline_credentials WHERE id = 1").Scan(&email, &passwordHash)
	if err == sql.ErrNoRows {
		return "", "", ErrNoSession
	}
	return email, passwordHash, err
}

func ClearOfflineCredential(db *sql.DB) error {
	_, err := db.Exec("DELETE FROM offline_credentials WHERE id = 1")
	return err
}

// SavePushSubscription upserts a browser push subscription by endpoint.
func SavePushSubscription(db *sql.DB, sub models.PushSubscription) error {
	_, err := db.Exec(
		`INSERT INTO push_subscriptions (endpoint, p256dh, auth) VALUES (?, ?, ?)
		ON CONFLICT(endpoint) DO UPDATE SET p256dh = excluded.p256dh, auth = excluded.auth`,
		sub.Endpoint, sub.P256dh, sub.Auth,
	)
	return err
}

func DeletePushSubscription(db *sql.DB, endpoint string) error {
	_, err := db.Exec("DELETE FROM push_subscriptions WHERE endpoint = ?", endpoint)
	return err
}

func PushSubscriptions(db *sql.DB) ([]models.PushSubscription, error) {
	rows, err := db.Query("SELECT id, endpoint, p256dh, auth FROM push_subscriptions")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []models.PushSubscription{}
	for rows.Next() {
		var s models.PushSubscription
		if err := rows.Scan(&s.ID, &s.Endpoint, &s.P256dh, &s.Auth); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

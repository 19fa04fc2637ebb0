package notify

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"fittrack/internal/storage"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// PushPayload is the notification body delivered to subscribed browsers.
type PushPayload struct {
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Icon  string                 `json:"icon,omitempty"`
	Badge string                 `json:"badge,omitempty"`
	Tag   string                 `json:"tag,omitempty"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

// VapidOptions returns configured VAPID options from environment
func VapidOptions() *webpush.Options {
	return &webpush.Options{
		Subscriber:      os.Getenv("VAPID_SUBJECT"),
		VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
		TTL:             30,
	}
}

// IsConfigured checks if VAPID keys are configured
func IsConfigured() bool {
	return os.Getenv("VAPID_PUBLIC_KEY") != "" &&
		os.Getenv("VAPID_PRIVATE_KEY") != "" &&
		os.Getenv("VAPID_SUBJECT") != ""
}

// Broadcast sends a push notification to every stored subscription.
// Expired or mismatched subscriptions are pruned as they fail.
func Broadcast(db *sql.DB, payload PushPayload) error {
	if !IsConfigured() {
		log.Println("Web push not configured - skipping notification")
		return nil
	}

	subs, err := storage.PushSubscriptions(db)
	if err != nil {
		return fmt.Errorf("failed to fetch subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return nil
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	options := VapidOptions()
	successCount := 0
	failCount := 0

	for _, sub := range subs {
		subscription := &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys: webpush.Keys{
				P256dh: sub.P256dh,
				Auth:   sub.Auth,
			},
		}

		resp, err := webpush.SendNotification(payloadJSON, subscription, options)
		if err != nil {
			log.Printf("Failed to send push to %s: %v", sub.Endpoint, err)
			failCount++

			// Expired or unknown endpoints will never recover
			if resp != nil && (resp.StatusCode == 410 || resp.StatusCode == 404) {
				_ = storage.DeletePushSubscription(db, sub.Endpoint)
				log.Printf("Removed expired subscription: %s", sub.Endpoint)
			}
			continue
		}

		if resp != nil {
			if resp.StatusCode >= 400 {
				body, _ := io.ReadAll(resp.Body)
				log.Printf("Push service error response: %s", string(body))
			}
			resp.Body.Close()

			// 403 means the VAPID keys don't match what the subscription
			// was created with; drop it so the client re-subscribes
			if resp.StatusCode == 403 {
				_ = storage.DeletePushSubscription(db, sub.Endpoint)
				log.Printf("Deleted mismatched subscription (403 Forbidden): %s", sub.Endpoint)
				failCount++
				continue
			}
		}

		successCount++
	}

	log.Printf("Push notification summary: subscriptions=%d, success=%d, failed=%d", len(subs), successCount, failCount)

	if failCount > 0 && successCount == 0 {
		return fmt.Errorf("failed to send any push notifications (attempted %d)", failCount)
	}
	return nil
}

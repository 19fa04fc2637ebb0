package notify

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"fittrack/internal/models"
	"fittrack/internal/storage"
)

// Snapshot provides the current view of the user's day. Satisfied by
// state.Controller.
type Snapshot interface {
	State() models.ViewState
}

const waterGoalGlasses = 8

// ProcessReminders inspects the current day and sends the reminders the
// user has opted into: a water nudge while intake is below the daily
// goal, and a workout nudge when nothing has been logged today.
func ProcessReminders(db *sql.DB, src Snapshot) error {
	prefs, err := storage.Preferences(db)
	if err != nil {
		return err
	}

	view := src.State()
	today := time.Now().Format("2006-01-02")

	if prefs["water-reminders"] && view.WaterIntake < waterGoalGlasses {
		payload := PushPayload{
			Title: "FitTrack Hydration",
			Body:  fmt.Sprintf("You're at %d of %d glasses today. Time for some water.", view.WaterIntake, waterGoalGlasses),
			Tag:   "fittrack-water-" + today,
		}
		if err := Broadcast(db, payload); err != nil {
			log.Printf("Failed to send water reminder: %v", err)
		}
	}

	if prefs["workout-reminders"] && !workoutLoggedOn(view.Workouts, today) {
		payload := PushPayload{
			Title: "FitTrack Workout",
			Body:  "No workout logged today. Even a short session counts.",
			Tag:   "fittrack-workout-" + today,
		}
		if err := Broadcast(db, payload); err != nil {
			log.Printf("Failed to send workout reminder: %v", err)
		}
	}

	return nil
}

func workoutLoggedOn(workouts []models.WorkoutEntry, date string) bool {
	for _, w := range workouts {
		if w.Date == date {
			return true
		}
	}
	return false
}

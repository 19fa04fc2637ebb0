package models

import "time"

// Profile mirrors the remote user record. Zero values mean the field was
// never filled in, which matters for the calorie-goal derivation.
type Profile struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	Username      string  `json:"username"`
	FirstName     string  `json:"first_name,omitempty"`
	LastName      string  `json:"last_name,omitempty"`
	Age           int     `json:"age,omitempty"`
	Height        float64 `json:"height,omitempty"` // cm
	Weight        float64 `json:"weight,omitempty"` // kg
	Gender        string  `json:"gender,omitempty"` // M, F, O, N
	ActivityLevel string  `json:"activity_level,omitempty"`
	FitnessGoal   string  `json:"fitness_goal,omitempty"`
}

// Session is the authenticated identity plus token pair. Both must be
// present for the client to count as authenticated.
type Session struct {
	Token string   `json:"token"`
	User  *Profile `json:"user"`
}

type WorkoutEntry struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"` // cardio, strength, yoga, sports
	DurationMinutes int       `json:"duration_minutes"`
	CaloriesBurned  int       `json:"calories_burned"`
	Notes           string    `json:"notes,omitempty"`
	Date            string    `json:"date"`
	CreatedAt       time.Time `json:"created_at"`
}

type MealEntry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	MealType string  `json:"meal_type"`
	Time     string  `json:"time,omitempty"`
	Date     string  `json:"date"`
}

// MealTypes fixes the display order of the meals mapping.
var MealTypes = []string{"breakfast", "lunch", "dinner", "snacks"}

type Goal struct {
	ID                 string    `json:"id"`
	GoalType           string    `json:"goal_type"` // daily_steps, weight_loss, weekly_workouts
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	TargetValue        float64   `json:"target_value"`
	CurrentValue       float64   `json:"current_value"`
	Unit               string    `json:"unit"`
	ProgressPercentage int       `json:"progress_percentage"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	TargetDate         string    `json:"target_date,omitempty"`
}

type Friend struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Username   string `json:"username,omitempty"`
	Points     int    `json:"points"`
	LastActive string `json:"last_active,omitempty"`
}

type Challenge struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Participants int    `json:"participants"`
	DaysLeft     int    `json:"days_left"`
	Reward       string `json:"reward,omitempty"`
	Joined       bool   `json:"joined"`
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

type FoodItem struct {
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type Stats struct {
	TotalCalories int `json:"totalCalories"`
	TotalWorkouts int `json:"totalWorkouts"`
	StepsToday    int `json:"stepsToday"`
	WaterGlasses  int `json:"waterGlasses"`
}

// WeeklyProgress is the input contract of the charting collaborator:
// day labels plus two numeric series of equal length.
type WeeklyProgress struct {
	Labels   []string `json:"labels"`
	Calories []int    `json:"calories"`
	Workouts []int    `json:"workouts"`
}

// ViewState is the in-memory aggregate of everything currently rendered.
// Stats and the per-entity lists are independently mutable; derived
// fields must be recomputed explicitly after every mutation.
type ViewState struct {
	Workouts    []WorkoutEntry         `json:"workouts"`
	Meals       map[string][]MealEntry `json:"meals"`
	Goals       []Goal                 `json:"goals"`
	Friends     []Friend               `json:"friends"`
	Challenges  []Challenge            `json:"challenges"`
	WaterIntake int                    `json:"waterIntake"`
	Stats       Stats                  `json:"stats"`
}

// EmptyViewState returns the documented zeroed default every screen load
// starts from.
func EmptyViewState() ViewState {
	return ViewState{
		Workouts:   []WorkoutEntry{},
		Meals:      EmptyMeals(),
		Goals:      []Goal{},
		Friends:    []Friend{},
		Challenges: []Challenge{},
	}
}

func EmptyMeals() map[string][]MealEntry {
	meals := make(map[string][]MealEntry, len(MealTypes))
	for _, t := range MealTypes {
		meals[t] = []MealEntry{}
	}
	return meals
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type AuthResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// ProfileUpdate carries a partial profile PATCH; nil fields are omitted.
type ProfileUpdate struct {
	Age           *int     `json:"age,omitempty"`
	Height        *float64 `json:"height,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	Gender        *string  `json:"gender,omitempty"`
	ActivityLevel *string  `json:"activity_level,omitempty"`
	FitnessGoal   *string  `json:"fitness_goal,omitempty"`
}

type WaterIntake struct {
	Glasses int    `json:"glasses"`
	Date    string `json:"date,omitempty"`
}

type GoalProgress struct {
	CurrentValue float64 `json:"current_value"`
}

// PushSubscription is a browser push endpoint registered with the local app.
type PushSubscription struct {
	ID       int    `json:"id"`
	Endpoint string `json:"endpoint"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`
}

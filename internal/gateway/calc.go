package gateway

import (
	"math"
	"time"

	"fittrack/internal/models"
)

// activityMultipliers maps activity levels to the Harris-Benedict
// activity factors. Unrecognized levels fall back to moderately active.
var activityMultipliers = map[string]float64{
	"sedentary":         1.2,
	"lightly_active":    1.375,
	"moderately_active": 1.55,
	"very_active":       1.725,
	"extra_active":      1.9,
}

const defaultActivityMultiplier = 1.55

// CalculateBMI returns weight / height_m^2 rounded to one decimal. The
// second return is false when either input is missing.
func CalculateBMI(weightKg, heightCm float64) (float64, bool) {
	if weightKg == 0 || heightCm == 0 {
		return 0, false
	}
	heightM := heightCm / 100
	return math.Round(weightKg/(heightM*heightM)*10) / 10, true
}

// CalculateDailyCalorieGoal derives a daily calorie target from the
// profile via the revised Harris-Benedict equation scaled by the activity
// factor. Profiles missing age, height, weight or gender get the 2000
// default.
func CalculateDailyCalorieGoal(p models.Profile) int {
	if p.Age == 0 || p.Height == 0 || p.Weight == 0 || p.Gender == "" {
		return 2000
	}

	var bmr float64
	if p.Gender == "M" {
		bmr = 88.362 + (13.397 * p.Weight) + (4.799 * p.Height) - (5.677 * float64(p.Age))
	} else {
		bmr = 447.593 + (9.247 * p.Weight) + (3.098 * p.Height) - (4.330 * float64(p.Age))
	}

	multiplier, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		multiplier = defaultActivityMultiplier
	}

	return int(math.Round(bmr * multiplier))
}

// FormatDate renders a date the way the remote API expects it.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// Today is FormatDate for the current day.
func Today() string {
	return FormatDate(time.Now())
}

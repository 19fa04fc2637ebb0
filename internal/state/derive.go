package state

import (
	"math"

	"fittrack/internal/models"
)

// GoalProgressPercent is clamp(round(current/target*100), 0, 100), with a
// zero (or negative) target pinning progress to 0.
func GoalProgressPercent(current, target float64) int {
	if target <= 0 {
		return 0
	}
	pct := int(math.Round(current / target * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// ActivityLevelLabel is the display derivation from workout count. It is
// unrelated to the activity factor used for the calorie goal.
func ActivityLevelLabel(workoutCount int) string {
	switch {
	case workoutCount >= 6:
		return "Active"
	case workoutCount >= 3:
		return "Moderately Active"
	default:
		return "Less Active"
	}
}

// ActivityLevel derives the label from the workouts currently in view.
func (c *Controller) ActivityLevel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return ActivityLevelLabel(len(c.view.Workouts))
}

// ConsumedCalories sums calories across every meal type.
func ConsumedCalories(meals map[string][]models.MealEntry) int {
	total := 0
	for _, entries := range meals {
		for _, m := range entries {
			total += m.Calories
		}
	}
	return total
}

// MacroTotals sums carbs, protein and fats (grams) across all meals.
func MacroTotals(meals map[string][]models.MealEntry) (carbs, protein, fats float64) {
	for _, entries := range meals {
		for _, m := range entries {
			carbs += m.Carbs
			protein += m.Protein
			fats += m.Fats
		}
	}
	return carbs, protein, fats
}

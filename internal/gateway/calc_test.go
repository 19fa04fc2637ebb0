package gateway

import (
	"math"
	"testing"

	"fittrack/internal/models"
)

func TestCalculateBMIMissingInputs(t *testing.T) {
	if _, ok := CalculateBMI(0, 170); ok {
		t.Fatal("Expected no BMI for zero weight")
	}
	if _, ok := CalculateBMI(70, 0); ok {
		t.Fatal("Expected no BMI for zero height")
	}
}

func TestCalculateBMI(t *testing.T) {
	bmi, ok := CalculateBMI(70, 175)
	if !ok {
		t.Fatal("Expected a BMI value")
	}
	if bmi != 22.9 {
		t.Fatalf("Expected BMI 22.9, got %v", bmi)
	}
}

func TestCalorieGoalDefault(t *testing.T) {
	if got := CalculateDailyCalorieGoal(models.Profile{}); got != 2000 {
		t.Fatalf("Expected default 2000, got %d", got)
	}
	// Partial profiles still get the default
	if got := CalculateDailyCalorieGoal(models.Profile{Age: 30, Height: 175}); got != 2000 {
		t.Fatalf("Expected default 2000 for partial profile, got %d", got)
	}
}

func TestCalorieGoalHarrisBenedict(t *testing.T) {
	p := models.Profile{Age: 30, Height: 175, Weight: 70, Gender: "M", ActivityLevel: "sedentary"}

	bmr := 88.362 + 13.397*70 + 4.799*175 - 5.677*30
	want := int(math.Round(bmr * 1.2))

	if got := CalculateDailyCalorieGoal(p); got != want {
		t.Fatalf("Expected %d, got %d", want, got)
	}
}

func TestCalorieGoalFemaleCoefficients(t *testing.T) {
	p := models.Profile{Age: 25, Height: 165, Weight: 60, Gender: "F", ActivityLevel: "very_active"}

	bmr := 447.593 + 9.247*60 + 3.098*165 - 4.330*25
	want := int(math.Round(bmr * 1.725))

	if got := CalculateDailyCalorieGoal(p); got != want {
		t.Fatalf("Expected %d, got %d", want, got)
	}
}

func TestCalorieGoalUnknownActivityLevel(t *testing.T) {
	p := models.Profile{Age: 30, Height: 175, Weight: 70, Gender: "M", ActivityLevel: "couch"}

	bmr := 88.362 + 13.397*70 + 4.799*175 - 5.677*30
	want := int(math.Round(bmr * 1.55))

	if got := CalculateDailyCalorieGoal(p); got != want {
		t.Fatalf("Expected fallback multiplier result %d, got %d", want, got)
	}
}

package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fittrack/internal/gateway"
	"fittrack/internal/models"
)

// Write protocol: build the entity with a locally generated identifier
// and timestamp, insert it optimistically, recompute derived aggregates
// synchronously, then hand the remote write to bestEffort. A remote
// failure keeps the local entity; local state is the system of record
// until a later authoritative read replaces it. Success is reported as
// soon as the local mutation lands (optimistic-always).

// AddWorkout logs a workout. Name, duration and calories are required.
func (c *Controller) AddWorkout(w models.WorkoutEntry) (models.WorkoutEntry, error) {
	if w.Name == "" || w.DurationMinutes <= 0 || w.CaloriesBurned <= 0 {
		return models.WorkoutEntry{}, errors.New("name, duration and calories are required")
	}
	if w.Category == "" {
		w.Category = "cardio"
	}
	w.ID = uuid.NewString()
	w.Date = gateway.Today()
	w.CreatedAt = time.Now()

	c.mu.Lock()
	c.view.Workouts = append([]models.WorkoutEntry{w}, c.view.Workouts...)
	c.view.Stats.TotalWorkouts++
	c.view.Stats.TotalCalories += w.CaloriesBurned
	c.mu.Unlock()

	c.bestEffort("add workout", func(ctx context.Context) error {
		_, err := c.gw.AddWorkout(ctx, w)
		return err
	})
	return w, nil
}

// AddMeal logs a food entry under its meal type.
func (c *Controller) AddMeal(m models.MealEntry) (models.MealEntry, error) {
	if m.Name == "" || m.Quantity <= 0 || m.Calories <= 0 {
		return models.MealEntry{}, errors.New("name, quantity and calories are required")
	}
	if !validMealType(m.MealType) {
		return models.MealEntry{}, fmt.Errorf("unknown meal type %q", m.MealType)
	}
	m.ID = uuid.NewString()
	m.Date = gateway.Today()
	if m.Time == "" {
		m.Time = time.Now().Format("15:04")
	}

	c.mu.Lock()
	c.view.Meals[m.MealType] = append(c.view.Meals[m.MealType], m)
	c.mu.Unlock()

	c.bestEffort("add meal", func(ctx context.Context) error {
		_, err := c.gw.AddMeal(ctx, m)
		return err
	})
	return m, nil
}

// SetWaterGlass applies the toggle-by-position rule for glass n (1-8):
// clicking a glass beyond the current intake fills up to it; clicking an
// already-filled glass drains down to the one before it.
func (c *Controller) SetWaterGlass(n int) (int, error) {
	if n < 1 || n > 8 {
		return 0, fmt.Errorf("glass %d out of range", n)
	}

	c.mu.Lock()
	if n <= c.view.WaterIntake {
		c.view.WaterIntake = n - 1
	} else {
		c.view.WaterIntake = n
	}
	intake := c.view.WaterIntake
	c.view.Stats.WaterGlasses = intake
	c.mu.Unlock()

	c.bestEffort("update water", func(ctx context.Context) error {
		return c.gw.UpdateWaterIntake(ctx, intake)
	})
	return intake, nil
}

// AddGoal creates a goal with its progress derived up front.
func (c *Controller) AddGoal(g models.Goal) (models.Goal, error) {
	if g.GoalType == "" || g.Title == "" {
		return models.Goal{}, errors.New("goal type and title are required")
	}
	g.ID = uuid.NewString()
	g.Status = "active"
	g.CreatedAt = time.Now()
	g.ProgressPercentage = GoalProgressPercent(g.CurrentValue, g.TargetValue)

	c.mu.Lock()
	c.view.Goals = append([]models.Goal{g}, c.view.Goals...)
	c.mu.Unlock()

	c.bestEffort("add goal", func(ctx context.Context) error {
		_, err := c.gw.AddGoal(ctx, g)
		return err
	})
	return g, nil
}

// AddFriend accepts a username or an email address.
func (c *Controller) AddFriend(identifier string) (models.Friend, error) {
	if identifier == "" {
		return models.Friend{}, errors.New("identifier is required")
	}

	friend := models.Friend{
		ID:         uuid.NewString(),
		Points:     0,
		LastActive: "Just added",
	}
	if at := strings.IndexByte(identifier, '@'); at >= 0 {
		friend.Name = identifier[:at]
		friend.Email = identifier
	} else {
		friend.Name = identifier
		friend.Username = identifier
	}

	c.mu.Lock()
	c.view.Friends = append(c.view.Friends, friend)
	c.mu.Unlock()

	c.bestEffort("add friend", func(ctx context.Context) error {
		_, err := c.gw.AddFriend(ctx, identifier)
		return err
	})
	return friend, nil
}

// JoinChallenge marks the challenge joined and bumps its participant
// count before the remote hears about it.
func (c *Controller) JoinChallenge(id string) error {
	c.mu.Lock()
	found := false
	for i := range c.view.Challenges {
		if c.view.Challenges[i].ID == id {
			if !c.view.Challenges[i].Joined {
				c.view.Challenges[i].Joined = true
				c.view.Challenges[i].Participants++
			}
			found = true
			break
		}
	}
	c.mu.Unlock()

	if !found {
		return fmt.Errorf("unknown challenge %q", id)
	}

	c.bestEffort("join challenge", func(ctx context.Context) error {
		return c.gw.JoinChallenge(ctx, id)
	})
	return nil
}

// UpdateProfile applies the partial update to the cached profile first,
// then syncs. The calorie goal and BMI derive from the cached values, so
// the recompute is implicit in the next render.
func (c *Controller) UpdateProfile(update models.ProfileUpdate) error {
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return errors.New("not authenticated")
	}
	if update.Age != nil {
		c.user.Age = *update.Age
	}
	if update.Height != nil {
		c.user.Height = *update.Height
	}
	if update.Weight != nil {
		c.user.Weight = *update.Weight
	}
	if update.Gender != nil {
		c.user.Gender = *update.Gender
	}
	if update.ActivityLevel != nil {
		c.user.ActivityLevel = *update.ActivityLevel
	}
	if update.FitnessGoal != nil {
		c.user.FitnessGoal = *update.FitnessGoal
	}
	c.mu.Unlock()

	c.bestEffort("update profile", func(ctx context.Context) error {
		_, err := c.gw.UpdateProfile(ctx, update)
		return err
	})
	return nil
}

func validMealType(t string) bool {
	for _, known := range models.MealTypes {
		if t == known {
			return true
		}
	}
	return false
}

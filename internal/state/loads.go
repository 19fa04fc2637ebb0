package state

import (
	"context"
	"log"
	"sync"

	"fittrack/internal/gateway"
	"fittrack/internal/models"
)

// Every load follows the same protocol: zero the slice first, attempt the
// read, replace only on a successful non-empty result, and swallow the
// failure into a log line plus a returned error nobody is obliged to act
// on. The UI always sees a consistent (possibly empty) state.

func (c *Controller) LoadDashboard(ctx context.Context) error {
	c.mu.Lock()
	c.view.Stats = models.Stats{}
	c.mu.Unlock()

	stats, err := c.gw.GetDashboardStats(ctx)
	if err != nil {
		c.gw.HandleError(err)
		log.Printf("Dashboard stats unavailable, using defaults: %v", err)
		return err
	}
	if stats != nil {
		c.mu.Lock()
		c.view.Stats = *stats
		c.mu.Unlock()
	}
	return nil
}

func (c *Controller) LoadWorkouts(ctx context.Context) error {
	c.mu.Lock()
	c.view.Workouts = []models.WorkoutEntry{}
	c.mu.Unlock()

	workouts, err := c.gw.GetWorkouts(ctx)
	if err != nil {
		c.gw.HandleError(err)
		log.Printf("Workouts unavailable, using empty state: %v", err)
		return err
	}
	if len(workouts) > 0 {
		c.mu.Lock()
		c.view.Workouts = workouts
		c.mu.Unlock()
	}
	return nil
}

func (c *Controller) LoadNutrition(ctx context.Context) error {
	c.mu.Lock()
	c.view.Meals = models.EmptyMeals()
	c.view.WaterIntake = 0
	c.mu.Unlock()

	today := gateway.Today()

	meals, err := c.gw.GetMeals(ctx, today)
	if err != nil {
		c.gw.HandleError(err)
		log.Printf("Meals unavailable, using empty state: %v", err)
		return err
	}
	if len(meals) > 0 {
		c.mu.Lock()
		c.view.Meals = meals
		c.mu.Unlock()
	}

	water, err := c.gw.GetWaterIntake(ctx, today)
	if err != nil {
		c.gw.HandleError(err)
		log.Printf("Water intake unavailable, using zero: %v", err)
		return err
	}
	if water != nil {
		c.mu.Lock()
		c.view.WaterIntake = water.Glasses
		c.view.Stats.WaterGlasses = water.Glasses
		c.mu.Unlock()
	}
	return nil
}

func (c *Controller) LoadGoals(ctx context.Context) error {
	c.mu.Lock()
	c.view.Goals = []models.Goal{}
	c.mu.Unlock()

	goals, err := c.gw.GetGoals(ctx)
	if err != nil {
		c.gw.HandleError(err)
		log.Printf("Goals unavailable, using empty state: %v", err)
		return err
	}
	if len(goals) > 0 {
		c.mu.Lock()
		c.view.Goals = goals
		c.mu.Unlock()
	}
	return nil
}

// LoadCommunity fetches friends and challenges concurrently; each writes
// only its own slice, so the two loads never contend on a field.
func (c *Controller) LoadCommunity(ctx context.Context) error {
	c.mu.Lock()
	c.view.Friends = []models.Friend{}
	c.view.Challenges = []models.Challenge{}
	c.mu.Unlock()

	var wg sync.WaitGroup
	var friendsErr, challengesErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		friends, err := c.gw.GetFriends(ctx)
		if err != nil {
			c.gw.HandleError(err)
			log.Printf("Friends unavailable, using empty state: %v", err)
			friendsErr = err
			return
		}
		if len(friends) > 0 {
			c.mu.Lock()
			c.view.Friends = friends
			c.mu.Unlock()
		}
	}()
	go func() {
		defer wg.Done()
		challenges, err := c.gw.GetChallenges(ctx)
		if err != nil {
			c.gw.HandleError(err)
			log.Printf("Challenges unavailable, using empty state: %v", err)
			challengesErr = err
			return
		}
		if len(challenges) > 0 {
			c.mu.Lock()
			c.view.Challenges = challenges
			c.mu.Unlock()
		}
	}()
	wg.Wait()

	if friendsErr != nil {
		return friendsErr
	}
	return challengesErr
}

// LoadInitial loads the dashboard first, then the remaining screens
// concurrently in the background. Each loader owns its ViewState slice;
// Flush waits for the background portion.
func (c *Controller) LoadInitial(ctx context.Context) {
	c.LoadDashboard(ctx)

	for _, load := range []func(context.Context) error{
		c.LoadWorkouts,
		c.LoadNutrition,
		c.LoadGoals,
		c.LoadCommunity,
	} {
		load := load
		c.syncWG.Add(1)
		go func() {
			defer c.syncWG.Done()
			bg, cancel := context.WithTimeout(context.Background(), c.syncTimeout)
			defer cancel()
			load(bg)
		}()
	}
}

// WeeklyProgress returns the charting collaborator's input. On remote
// failure the chart gets a zeroed week rather than an error.
func (c *Controller) WeeklyProgress(ctx context.Context) models.WeeklyProgress {
	progress, err := c.gw.GetWeeklyProgress(ctx)
	if err != nil || progress == nil || len(progress.Labels) == 0 {
		if err != nil {
			c.gw.HandleError(err)
			log.Printf("Weekly progress unavailable, using zeroed week: %v", err)
		}
		return models.WeeklyProgress{
			Labels:   []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
			Calories: make([]int, 7),
			Workouts: make([]int, 7),
		}
	}
	return *progress
}

// SearchFoods passes a food search through to the remote. Failures
// degrade to an empty result list.
func (c *Controller) SearchFoods(ctx context.Context, query string) []models.FoodItem {
	foods, err := c.gw.SearchFoods(ctx, query)
	if err != nil {
		c.gw.HandleError(err)
		log.Printf("Food search unavailable, returning nothing: %v", err)
		return []models.FoodItem{}
	}
	if foods == nil {
		return []models.FoodItem{}
	}
	return foods
}

// Leaderboard fetches the community leaderboard, empty on failure.
func (c *Controller) Leaderboard(ctx context.Context) []models.LeaderboardEntry {
	entries, err := c.gw.GetLeaderboard(ctx)
	if err != nil {
		c.gw.HandleError(err)
		log.Printf("Leaderboard unavailable, returning nothing: %v", err)
		return []models.LeaderboardEntry{}
	}
	if entries == nil {
		return []models.LeaderboardEntry{}
	}
	return entries
}

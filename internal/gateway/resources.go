package gateway

import (
	"context"
	"net/http"
	"net/url"

	"fittrack/internal/models"
)

// Thin 1:1 mappings to the REST resources. Each returns the parsed
// response or fails with *APIError / *NetworkError; none of them touch
// local state.

func (c *Client) GetWorkouts(ctx context.Context) ([]models.WorkoutEntry, error) {
	var workouts []models.WorkoutEntry
	err := c.do(ctx, http.MethodGet, "/workouts/", nil, &workouts, true)
	return workouts, err
}

func (c *Client) AddWorkout(ctx context.Context, w models.WorkoutEntry) (*models.WorkoutEntry, error) {
	var created models.WorkoutEntry
	if err := c.do(ctx, http.MethodPost, "/workouts/", w, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateWorkout(ctx context.Context, id string, w models.WorkoutEntry) (*models.WorkoutEntry, error) {
	var updated models.WorkoutEntry
	if err := c.do(ctx, http.MethodPatch, "/workouts/"+id+"/", w, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteWorkout(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/workouts/"+id+"/", nil, nil, true)
}

func (c *Client) GetWorkoutStats(ctx context.Context, period string) (*models.Stats, error) {
	if period == "" {
		period = "week"
	}
	var stats models.Stats
	if err := c.do(ctx, http.MethodGet, "/workouts/stats/?period="+url.QueryEscape(period), nil, &stats, true); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetMeals returns the day's meals grouped by meal type.
func (c *Client) GetMeals(ctx context.Context, date string) (map[string][]models.MealEntry, error) {
	path := "/nutrition/meals/"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	var meals map[string][]models.MealEntry
	err := c.do(ctx, http.MethodGet, path, nil, &meals, true)
	return meals, err
}

func (c *Client) AddMeal(ctx context.Context, m models.MealEntry) (*models.MealEntry, error) {
	var created models.MealEntry
	if err := c.do(ctx, http.MethodPost, "/nutrition/meals/", m, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateMeal(ctx context.Context, id string, m models.MealEntry) (*models.MealEntry, error) {
	var updated models.MealEntry
	if err := c.do(ctx, http.MethodPatch, "/nutrition/meals/"+id+"/", m, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteMeal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/nutrition/meals/"+id+"/", nil, nil, true)
}

func (c *Client) SearchFoods(ctx context.Context, query string) ([]models.FoodItem, error) {
	var foods []models.FoodItem
	err := c.do(ctx, http.MethodGet, "/nutrition/foods/search/?q="+url.QueryEscape(query), nil, &foods, true)
	return foods, err
}

func (c *Client) GetNutritionStats(ctx context.Context, date string) (map[string]float64, error) {
	path := "/nutrition/stats/"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	var stats map[string]float64
	err := c.do(ctx, http.MethodGet, path, nil, &stats, true)
	return stats, err
}

func (c *Client) GetWaterIntake(ctx context.Context, date string) (*models.WaterIntake, error) {
	path := "/nutrition/water/"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	var water models.WaterIntake
	if err := c.do(ctx, http.MethodGet, path, nil, &water, true); err != nil {
		return nil, err
	}
	return &water, nil
}

func (c *Client) UpdateWaterIntake(ctx context.Context, glasses int) error {
	return c.do(ctx, http.MethodPost, "/nutrition/water/", models.WaterIntake{Glasses: glasses}, nil, true)
}

func (c *Client) GetGoals(ctx context.Context) ([]models.Goal, error) {
	var goals []models.Goal
	err := c.do(ctx, http.MethodGet, "/goals/", nil, &goals, true)
	return goals, err
}

func (c *Client) AddGoal(ctx context.Context, g models.Goal) (*models.Goal, error) {
	var created models.Goal
	if err := c.do(ctx, http.MethodPost, "/goals/", g, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateGoal(ctx context.Context, id string, g models.Goal) (*models.Goal, error) {
	var updated models.Goal
	if err := c.do(ctx, http.MethodPatch, "/goals/"+id+"/", g, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/goals/"+id+"/", nil, nil, true)
}

func (c *Client) UpdateGoalProgress(ctx context.Context, id string, currentValue float64) error {
	return c.do(ctx, http.MethodPost, "/goals/"+id+"/progress/", models.GoalProgress{CurrentValue: currentValue}, nil, true)
}

func (c *Client) GetChallenges(ctx context.Context) ([]models.Challenge, error) {
	var challenges []models.Challenge
	err := c.do(ctx, http.MethodGet, "/community/challenges/", nil, &challenges, true)
	return challenges, err
}

func (c *Client) JoinChallenge(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/community/challenges/"+id+"/join/", nil, nil, true)
}

func (c *Client) GetFriends(ctx context.Context) ([]models.Friend, error) {
	var friends []models.Friend
	err := c.do(ctx, http.MethodGet, "/community/friends/", nil, &friends, true)
	return friends, err
}

// AddFriend accepts a username or email identifier, matching the remote
// contract.
func (c *Client) AddFriend(ctx context.Context, identifier string) (*models.Friend, error) {
	var friend models.Friend
	body := map[string]string{"identifier": identifier}
	if err := c.do(ctx, http.MethodPost, "/community/friends/", body, &friend, true); err != nil {
		return nil, err
	}
	return &friend, nil
}

func (c *Client) RemoveFriend(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/community/friends/"+id+"/", nil, nil, true)
}

func (c *Client) GetLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := c.do(ctx, http.MethodGet, "/community/leaderboard/", nil, &entries, true)
	return entries, err
}

func (c *Client) GetDashboardStats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats/", nil, &stats, true); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) GetWeeklyProgress(ctx context.Context) (*models.WeeklyProgress, error) {
	var progress models.WeeklyProgress
	if err := c.do(ctx, http.MethodGet, "/dashboard/weekly-progress/", nil, &progress, true); err != nil {
		return nil, err
	}
	return &progress, nil
}

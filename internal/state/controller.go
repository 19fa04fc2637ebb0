package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"fittrack/internal/auth"
	"fittrack/internal/gateway"
	"fittrack/internal/models"
	"fittrack/internal/storage"
)

// Screen names the views of the state machine: login, then the
// authenticated screens.
type Screen string

const (
	ScreenLogin     Screen = "login"
	ScreenDashboard Screen = "dashboard"
	ScreenWorkouts  Screen = "workouts"
	ScreenNutrition Screen = "nutrition"
	ScreenGoals     Screen = "goals"
	ScreenCommunity Screen = "community"
	ScreenProfile   Screen = "profile"
)

// Gateway is the remote surface the controller drives. *gateway.Client
// satisfies it; tests substitute a fake.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Profile, error)

	GetWorkouts(ctx context.Context) ([]models.WorkoutEntry, error)
	AddWorkout(ctx context.Context, w models.WorkoutEntry) (*models.WorkoutEntry, error)
	GetMeals(ctx context.Context, date string) (map[string][]models.MealEntry, error)
	SearchFoods(ctx context.Context, query string) ([]models.FoodItem, error)
	AddMeal(ctx context.Context, m models.MealEntry) (*models.MealEntry, error)
	GetWaterIntake(ctx context.Context, date string) (*models.WaterIntake, error)
	UpdateWaterIntake(ctx context.Context, glasses int) error
	GetGoals(ctx context.Context) ([]models.Goal, error)
	AddGoal(ctx context.Context, g models.Goal) (*models.Goal, error)
	GetFriends(ctx context.Context) ([]models.Friend, error)
	AddFriend(ctx context.Context, identifier string) (*models.Friend, error)
	GetChallenges(ctx context.Context) ([]models.Challenge, error)
	GetLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
	JoinChallenge(ctx context.Context, id string) error
	GetDashboardStats(ctx context.Context) (*models.Stats, error)
	GetWeeklyProgress(ctx context.Context) (*models.WeeklyProgress, error)

	IsAuthenticated() bool
	CurrentUser() *models.Profile
	ClearAuth()
	HandleError(err error) error
	OnUnauthorized(fn func())
}

// Controller owns the in-memory ViewState. User actions mutate local
// state optimistically and reconcile with the remote store through a
// retry-free best-effort sync; read failures degrade to empty defaults.
type Controller struct {
	gw Gateway
	db *sql.DB

	mu     sync.RWMutex
	view   models.ViewState
	screen Screen
	user   *models.Profile

	syncWG      sync.WaitGroup
	syncTimeout time.Duration
}

func NewController(gw Gateway, db *sql.DB) *Controller {
	c := &Controller{
		gw:          gw,
		db:          db,
		view:        models.EmptyViewState(),
		screen:      ScreenLogin,
		syncTimeout: 30 * time.Second,
	}

	// A 401 anywhere forces the whole session back to the login screen.
	gw.OnUnauthorized(func() {
		c.mu.Lock()
		c.user = nil
		c.view = models.EmptyViewState()
		c.screen = ScreenLogin
		c.mu.Unlock()
		log.Println("Session expired, returning to login")
	})

	if gw.IsAuthenticated() {
		c.user = gw.CurrentUser()
		c.screen = ScreenDashboard
	}
	return c
}

// State returns a snapshot of the current ViewState. Slices are copied so
// callers can render without racing the controller.
func (c *Controller) State() models.ViewState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := c.view
	snap.Workouts = append([]models.WorkoutEntry{}, c.view.Workouts...)
	snap.Goals = append([]models.Goal{}, c.view.Goals...)
	snap.Friends = append([]models.Friend{}, c.view.Friends...)
	snap.Challenges = append([]models.Challenge{}, c.view.Challenges...)
	snap.Meals = make(map[string][]models.MealEntry, len(c.view.Meals))
	for mealType, entries := range c.view.Meals {
		snap.Meals[mealType] = append([]models.MealEntry{}, entries...)
	}
	return snap
}

func (c *Controller) CurrentScreen() Screen {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.screen
}

func (c *Controller) CurrentUser() *models.Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// Login authenticates against the remote API. When the remote is
// unreachable (transport failure, not a rejection) it falls back to an
// offline unlock: the password is checked against the hash stored on the
// last successful login and the cached session is reused.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	resp, err := c.gw.Login(ctx, email, password)
	if err != nil {
		if gateway.IsNetworkError(err) {
			if offErr := c.offlineUnlock(email, password); offErr == nil {
				log.Printf("Remote unreachable, unlocked cached session for %s", email)
				return nil
			}
		}
		return err
	}

	c.mu.Lock()
	c.user = &resp.User
	c.screen = ScreenDashboard
	c.mu.Unlock()

	c.saveOfflineCredential(email, password)
	return nil
}

func (c *Controller) Register(ctx context.Context, req models.RegisterRequest) error {
	if req.Password != req.PasswordConfirm {
		return errors.New("passwords do not match")
	}
	resp, err := c.gw.Register(ctx, req)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.user = &resp.User
	c.screen = ScreenDashboard
	c.mu.Unlock()

	c.saveOfflineCredential(req.Email, req.Password)
	return nil
}

// Logout always lands on the login screen with a zeroed ViewState, no
// matter how the remote invalidation went.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.gw.Logout(ctx); err != nil {
		log.Printf("Logout error: %v", err)
	}

	c.mu.Lock()
	c.user = nil
	c.view = models.EmptyViewState()
	c.screen = ScreenLogin
	c.mu.Unlock()
}

// ShowScreen transitions to the named authenticated screen and re-runs
// its load. Load failures degrade silently; the transition itself only
// fails when unauthenticated.
func (c *Controller) ShowScreen(ctx context.Context, screen Screen) error {
	if screen == ScreenLogin {
		c.mu.Lock()
		c.screen = ScreenLogin
		c.mu.Unlock()
		return nil
	}
	if c.CurrentUser() == nil {
		return fmt.Errorf("not authenticated")
	}

	c.mu.Lock()
	c.screen = screen
	c.mu.Unlock()

	switch screen {
	case ScreenDashboard:
		c.LoadDashboard(ctx)
	case ScreenWorkouts:
		c.LoadWorkouts(ctx)
	case ScreenNutrition:
		c.LoadNutrition(ctx)
	case ScreenGoals:
		c.LoadGoals(ctx)
	case ScreenCommunity:
		c.LoadCommunity(ctx)
	case ScreenProfile:
		// Profile renders from the cached user; nothing to load.
	default:
		return fmt.Errorf("unknown screen %q", screen)
	}
	return nil
}

// RefreshProfile pulls the authoritative profile, replacing the cached one.
func (c *Controller) RefreshProfile(ctx context.Context) error {
	profile, err := c.gw.GetProfile(ctx)
	if err != nil {
		c.gw.HandleError(err)
		return err
	}
	c.mu.Lock()
	c.user = profile
	c.mu.Unlock()
	return nil
}

func (c *Controller) offlineUnlock(email, password string) error {
	storedEmail, hash, err := storage.OfflineCredential(c.db)
	if err != nil {
		return err
	}
	if storedEmail != email {
		return errors.New("unknown offline identity")
	}
	if err := auth.CheckPassword(hash, password); err != nil {
		return err
	}

	sess, err := storage.LoadSession(c.db)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.user = sess.User
	c.screen = ScreenDashboard
	c.mu.Unlock()
	return nil
}

func (c *Controller) saveOfflineCredential(email, password string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash offline credential: %v", err)
		return
	}
	if err := storage.SaveOfflineCredential(c.db, email, hash); err != nil {
		log.Printf("Failed to store offline credential: %v", err)
	}
}

// bestEffort runs one remote write attempt in the background: at most one
// attempt, no retry, no rollback. Failures are logged (and classified for
// the 401 recovery path) while the optimistic local state stands.
func (c *Controller) bestEffort(op string, fn func(ctx context.Context) error) {
	c.syncWG.Add(1)
	go func() {
		defer c.syncWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.syncTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			c.gw.HandleError(err)
			log.Printf("Remote sync failed (%s), keeping local state: %v", op, err)
		}
	}()
}

// Flush blocks until every outstanding best-effort sync has finished.
// Used on shutdown and by tests that assert on post-sync state.
func (c *Controller) Flush() {
	c.syncWG.Wait()
}

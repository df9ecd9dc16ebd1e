package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daveklee/calorieclimb.com/models"
	"github.com/daveklee/calorieclimb.com/utils"
)

var (
	ErrSessionNotFound    = errors.New("game session not found")
	ErrFeedInProgress     = errors.New("a food is already being eaten")
	ErrInvalidMaxCalories = fmt.Errorf("max calories must be at least %d", models.MinMaxCalories)
	ErrInvalidSearchMode  = errors.New("unknown search mode")
	ErrStaleSession       = errors.New("game was reset while the food was being looked up")
)

// Publisher receives every state change of a session.
type Publisher interface {
	Broadcast(sessionID string, payload any)
}

type gameSession struct {
	mu         sync.Mutex
	state      models.GameState
	generation uint64
	lastActive time.Time
}

// GameService owns the live game sessions. Each session has one writer at a
// time; food lookups run outside the session lock.
type GameService struct {
	foods       *FoodService
	feedback    *FeedbackService
	pub         Publisher
	maxCalories int

	mu       sync.RWMutex
	sessions map[string]*gameSession
}

// NewGameService accepts a nil publisher.
func NewGameService(foods *FoodService, feedback *FeedbackService, pub Publisher, maxCalories int) *GameService {
	if maxCalories < models.MinMaxCalories {
		maxCalories = models.DefaultMaxCalories
	}
	return &GameService{
		foods:       foods,
		feedback:    feedback,
		pub:         pub,
		maxCalories: maxCalories,
		sessions:    make(map[string]*gameSession),
	}
}

// Create starts a new session.
func (g *GameService) Create() (string, models.GameState) {
	id := uuid.NewString()
	s := &gameSession{
		state:      utils.NewGameState(g.maxCalories, g.foods.Online()),
		lastActive: time.Now(),
	}

	g.mu.Lock()
	g.sessions[id] = s
	g.mu.Unlock()

	log.Printf("[game] session %s created", id)
	return id, s.state
}

func (g *GameService) session(id string) (*gameSession, error) {
	g.mu.RLock()
	s, ok := g.sessions[id]
	g.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// State returns a snapshot of a session.
func (g *GameService) State(id string) (models.GameState, error) {
	s, err := g.session(id)
	if err != nil {
		return models.GameState{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, nil
}

// apply runs fn under the session lock and publishes the result.
func (g *GameService) apply(id string, fn func(s *gameSession) error) (models.GameState, error) {
	s, err := g.session(id)
	if err != nil {
		return models.GameState{}, err
	}
	s.mu.Lock()
	if err := fn(s); err != nil {
		st := s.state
		s.mu.Unlock()
		return st, err
	}
	s.lastActive = time.Now()
	st := s.state
	s.mu.Unlock()

	g.publish(id, st)
	return st, nil
}

func (g *GameService) publish(id string, st models.GameState) {
	if g.pub == nil {
		return
	}
	g.pub.Broadcast(id, map[string]any{
		"kind":  "game.state",
		"state": st,
	})
}

// Feed resolves name and applies it as the next move. Feeding a finished
// game changes nothing. If the session is reset while the lookup is in
// flight, the result is dropped and ErrStaleSession returned.
func (g *GameService) Feed(ctx context.Context, id, name string) (models.GameState, error) {
	var (
		gen      uint64
		snapshot models.GameState
		finished bool
	)
	st, err := g.apply(id, func(s *gameSession) error {
		if s.state.GameOver {
			finished = true
			return nil
		}
		if s.state.IsLoading {
			return ErrFeedInProgress
		}
		s.state = utils.Reduce(s.state, models.SetLoading{Loading: true})
		gen = s.generation
		snapshot = s.state
		return nil
	})
	if err != nil || finished {
		return st, err
	}

	food, err := g.foods.Resolve(ctx, name)
	if err != nil {
		st, _ := g.apply(id, func(s *gameSession) error {
			if s.generation == gen {
				s.state = utils.Reduce(s.state, models.SetLoading{Loading: false})
			}
			return nil
		})
		return st, fmt.Errorf("resolve %q: %w", name, err)
	}

	action := models.FeedFood{Name: name, Food: food}
	if food == nil {
		if c, ok := g.foods.Catalog().Closest(name); ok {
			action.Hint = c.Name
		}
	} else {
		preview := utils.Reduce(snapshot, action)
		action.Feedback = g.feedback.Message(ctx, food, snapshot.CurrentFood, utils.IsValidMove(snapshot, food), preview.Character)
		if preview.GameOver && !food.IsToxic && utils.IsValidMove(snapshot, food) {
			if msg, ok := g.feedback.GameOverMessage(ctx, preview); ok {
				action.Feedback = msg
			}
		}
	}
	online := g.foods.Online()

	return g.apply(id, func(s *gameSession) error {
		if s.generation != gen {
			return ErrStaleSession
		}
		s.state = utils.Reduce(s.state, models.SetOnlineMode{Online: online})
		s.state = utils.Reduce(s.state, action)
		return nil
	})
}

// Reset starts the session over, keeping its longest streak and ceiling.
func (g *GameService) Reset(id string) (models.GameState, error) {
	return g.apply(id, func(s *gameSession) error {
		s.generation++
		s.state = utils.Reduce(s.state, models.ResetGame{})
		s.state = utils.Reduce(s.state, models.SetOnlineMode{Online: g.foods.Online()})
		return nil
	})
}

// SetMaxCalories changes the ceiling of one session.
func (g *GameService) SetMaxCalories(id string, calories int) (models.GameState, error) {
	if calories < models.MinMaxCalories {
		return models.GameState{}, ErrInvalidMaxCalories
	}
	return g.apply(id, func(s *gameSession) error {
		s.state = utils.Reduce(s.state, models.SetMaxCalories{Calories: calories})
		return nil
	})
}

// SetSearchMode switches how widely foods are looked up. The resolver is
// shared, so every session is updated.
func (g *GameService) SetSearchMode(mode string) error {
	m, err := models.ParseSearchMode(mode)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSearchMode, mode)
	}
	g.foods.SetMode(m)
	online := g.foods.Online()

	g.mu.RLock()
	ids := make([]string, 0, len(g.sessions))
	for id := range g.sessions {
		ids = append(ids, id)
	}
	g.mu.RUnlock()

	for _, id := range ids {
		_, _ = g.apply(id, func(s *gameSession) error {
			s.state = utils.Reduce(s.state, models.SetOnlineMode{Online: online})
			return nil
		})
	}
	return nil
}

// SearchMode returns the resolver's current mode.
func (g *GameService) SearchMode() models.SearchMode {
	return g.foods.Mode()
}

func (g *GameService) Suggestions(ctx context.Context, prefix string) ([]*models.Food, error) {
	return g.foods.Suggestions(ctx, prefix)
}

func (g *GameService) Recognize(ctx context.Context, base64Img string) ([]*models.Food, error) {
	return g.foods.Recognize(ctx, base64Img)
}

// Prune drops sessions idle for longer than maxIdle and returns how many
// were removed.
func (g *GameService) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for id, s := range g.sessions {
		s.mu.Lock()
		idle := s.lastActive.Before(cutoff) && !s.state.IsLoading
		s.mu.Unlock()
		if idle {
			delete(g.sessions, id)
			n++
		}
	}
	return n
}

// RunJanitor prunes idle sessions every interval until ctx ends.
func (g *GameService) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := g.Prune(maxIdle); n > 0 {
				log.Printf("[game] pruned %d idle sessions", n)
			}
		}
	}
}

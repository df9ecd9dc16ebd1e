package services

import (
	"context"
	"log"
	"time"

	"github.com/daveklee/calorieclimb.com/models"
	"github.com/daveklee/calorieclimb.com/utils"
)

// DefaultNarrativeTimeout bounds each narrative call.
const DefaultNarrativeTimeout = 4 * time.Second

// FeedbackService writes the message shown after a move. When a narrative
// source is configured it is asked first for foods from the remote database;
// any failure falls back to the fixed templates.
type FeedbackService struct {
	narrative NarrativeSource
	timeout   time.Duration
}

// NewFeedbackService accepts a nil narrative source.
func NewFeedbackService(narrative NarrativeSource, timeout time.Duration) *FeedbackService {
	if timeout <= 0 {
		timeout = DefaultNarrativeTimeout
	}
	return &FeedbackService{narrative: narrative, timeout: timeout}
}

// Message describes eating food after previous. previous may be nil.
func (s *FeedbackService) Message(ctx context.Context, food, previous *models.Food, isValidMove bool, character models.CharacterState) string {
	if food.IsToxic {
		return utils.ToxicFeedback(food)
	}
	if !isValidMove && previous != nil {
		return utils.InvalidMoveFeedback(food, previous)
	}

	if s.narrative != nil && food.IsFromUSDA {
		nr := models.NarrativeRequest{
			CurrentFood:     food.Name,
			CurrentCalories: food.Calories,
			IsHealthy:       food.HealthRating >= 7,
			Mode:            models.NarrativeFeedback,
		}
		if previous != nil {
			nr.PreviousFood = &previous.Name
			nr.PreviousCalories = &previous.Calories
		}
		if msg, ok := s.generate(ctx, nr); ok {
			return msg
		}
	}
	return utils.TemplateFeedback(food, previous, isValidMove, character)
}

// GameOverMessage asks the narrative source to explain how a finished game
// ended. ok is false when no narrative is available.
func (s *FeedbackService) GameOverMessage(ctx context.Context, state models.GameState) (string, bool) {
	if s.narrative == nil || !state.GameOver {
		return "", false
	}
	eaten := make([]string, 0, len(state.FoodHistory))
	for _, f := range state.FoodHistory {
		eaten = append(eaten, f.Name)
	}
	nr := models.NarrativeRequest{
		Mode:          models.NarrativeGameOver,
		Reason:        state.GameOverReason,
		TotalCalories: state.TotalCalories,
		FoodsEaten:    eaten,
	}
	if state.CurrentFood != nil {
		nr.CurrentFood = state.CurrentFood.Name
		nr.CurrentCalories = state.CurrentFood.Calories
		nr.IsHealthy = state.CurrentFood.HealthRating >= 7
	}
	return s.generate(ctx, nr)
}

func (s *FeedbackService) generate(ctx context.Context, nr models.NarrativeRequest) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	msg, err := s.narrative.Generate(ctx, nr)
	if err != nil {
		log.Printf("[narrative] %s for %q: %v", nr.Mode, nr.CurrentFood, err)
		return "", false
	}
	return msg, msg != ""
}

package utils

import (
	"fmt"
	"slices"

	"github.com/daveklee/calorieclimb.com/models"
)

// NewGameState builds the state a fresh session starts in.
func NewGameState(maxCalories int, online bool) models.GameState {
	seed := models.SeedFood()
	welcome := "Welcome to Calorie Climb! The person just had some water (0 calories). Now find something with more calories to keep the game going!"
	if online {
		welcome += " ✨ Enhanced with real food data!"
	}
	return models.GameState{
		CurrentFood:     seed,
		FoodHistory:     []*models.Food{seed},
		Character:       models.NewCharacterState(),
		MaxCalories:     maxCalories,
		FeedbackMessage: welcome,
		IsOnlineMode:    online,
	}
}

// Reduce applies one action and returns the next state. It never mutates the
// state it is given.
func Reduce(state models.GameState, action models.Action) models.GameState {
	switch a := action.(type) {
	case models.FeedFood:
		return feed(state, a)
	case models.ResetGame:
		next := NewGameState(state.MaxCalories, state.IsOnlineMode)
		next.LongestStreak = state.LongestStreak
		return next
	case models.SetMaxCalories:
		state.MaxCalories = a.Calories
	case models.SetLoading:
		state.IsLoading = a.Loading
	case models.SetOnlineMode:
		state.IsOnlineMode = a.Online
	}
	return state
}

// IsValidMove reports whether food climbs above the current food.
func IsValidMove(state models.GameState, food *models.Food) bool {
	return state.CurrentFood == nil || food.Calories > state.CurrentFood.Calories
}

func feed(state models.GameState, a models.FeedFood) models.GameState {
	state.IsLoading = false
	if state.GameOver {
		return state
	}

	food := a.Food
	if food == nil {
		state.FeedbackMessage = missMessage(a.Name, a.Hint)
		return state
	}

	if !IsValidMove(state, food) && !food.IsToxic {
		state.GameOver = true
		state.IsWin = false
		state.GameOverReason = fmt.Sprintf("Game Over! %s (%d calories) does not have more calories than %s (%d calories). You needed to find something with more calories to continue the calorie climb!",
			food.Name, food.Calories, state.CurrentFood.Name, state.CurrentFood.Calories)
		state.FeedbackMessage = firstNonEmpty(a.Feedback, InvalidMoveFeedback(food, state.CurrentFood))
		return state
	}

	total := state.TotalCalories + food.Calories
	character := EvolveCharacter(food, state.Character, total, state.MaxCalories)

	state.TotalCalories = total
	state.Character = character
	state.FoodHistory = append(slices.Clip(state.FoodHistory), food)

	if over, win, reason := CheckGameOver(food, total, state.MaxCalories, character); over {
		state.CurrentFood = food
		state.GameOver = true
		state.IsWin = win
		state.GameOverReason = reason
		state.FeedbackMessage = firstNonEmpty(a.Feedback, reason)
		return state
	}

	previous := state.CurrentFood
	state.PreviousFood = previous
	state.CurrentFood = food
	state.Score++
	state.Streak++
	state.LongestStreak = max(state.LongestStreak, state.Streak)
	state.FeedbackMessage = firstNonEmpty(a.Feedback, TemplateFeedback(food, previous, true, character))
	return state
}

// CheckGameOver evaluates the terminal conditions after food was eaten, in
// priority order.
func CheckGameOver(food *models.Food, totalCalories, maxCalories int, character models.CharacterState) (over, win bool, reason string) {
	if food.IsToxic {
		return true, false, fmt.Sprintf("Game Over! The person ate %s which is toxic and dangerous. Always remember to only eat safe, real food! The person needs medical attention right away.", food.Name)
	}
	if totalCalories >= maxCalories {
		if character.Health >= 6 && character.Happiness >= 6 {
			return true, true, fmt.Sprintf("🎉 CONGRATULATIONS! You've successfully reached %d calories while keeping your person healthy and happy! You've mastered the art of balanced eating! 🎉", totalCalories)
		}
		return true, false, fmt.Sprintf("Game Over! The person has eaten %d calories, which is way too much for one day! Their stomach hurts and they feel very sick. Remember, eating too much can make us feel awful and hurt our health.", totalCalories)
	}
	if character.Health <= 2 && character.Expression == models.ExpressionSick {
		return true, false, "Game Over! The person has eaten too many unhealthy foods and is feeling very sick. Their body can't handle all the junk food! Remember, our bodies work best with nutritious, healthy foods."
	}
	return false, false, ""
}

func missMessage(name, hint string) string {
	if hint != "" {
		return fmt.Sprintf("Sorry, I don't know about %q. Did you mean %q?", name, hint)
	}
	return fmt.Sprintf("Sorry, I don't know about %q. Try something like \"apple\", \"banana\", \"pizza\", or \"chocolate\"!", name)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

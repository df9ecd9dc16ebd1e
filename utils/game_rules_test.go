package utils

import (
	"strings"
	"testing"

	"github.com/daveklee/calorieclimb.com/models"
)

var (
	apple   = &models.Food{Name: "apple", Calories: 95, Emoji: "🍎", HealthRating: 9, Description: "is crunchy and sweet!"}
	lettuce = &models.Food{Name: "lettuce", Calories: 5, Emoji: "🥬", HealthRating: 9, Description: "is mostly water!"}
	pizza   = &models.Food{Name: "pizza slice", Calories: 285, Emoji: "🍕", HealthRating: 4, Description: "is cheesy!"}
	poison  = &models.Food{Name: "poison", Calories: 0, Emoji: "☠️", HealthRating: 1, Description: "is deadly!", IsToxic: true}
)

func feedFood(state models.GameState, f *models.Food) models.GameState {
	return Reduce(state, models.FeedFood{Name: f.Name, Food: f})
}

func TestNewGameStateStartsWithWater(t *testing.T) {
	s := NewGameState(models.DefaultMaxCalories, false)

	if s.CurrentFood.Name != "water" || s.CurrentFood.Calories != 0 {
		t.Fatalf("current food = %+v, want water/0", s.CurrentFood)
	}
	if len(s.FoodHistory) != 1 || s.FoodHistory[0] != s.CurrentFood {
		t.Fatalf("history = %v, want only the seed food", s.FoodHistory)
	}
	if s.PreviousFood != nil {
		t.Fatalf("previous food = %+v, want nil", s.PreviousFood)
	}
	if s.Character != models.NewCharacterState() {
		t.Fatalf("character = %+v", s.Character)
	}
	if strings.Contains(s.FeedbackMessage, "real food data") {
		t.Fatalf("offline welcome mentions online data: %q", s.FeedbackMessage)
	}
	if !strings.Contains(NewGameState(2000, true).FeedbackMessage, "real food data") {
		t.Fatal("online welcome should mention real food data")
	}
}

func TestFeedWaterThenApple(t *testing.T) {
	s := feedFood(NewGameState(2000, false), apple)

	if s.GameOver {
		t.Fatalf("game over: %s", s.GameOverReason)
	}
	if s.Score != 1 || s.Streak != 1 || s.LongestStreak != 1 {
		t.Fatalf("score/streak/longest = %d/%d/%d, want 1/1/1", s.Score, s.Streak, s.LongestStreak)
	}
	if s.Character.Happiness <= 8 {
		t.Fatalf("happiness = %d, want above 8", s.Character.Happiness)
	}
	if s.Character.Expression != models.ExpressionHappy {
		t.Fatalf("expression = %q, want happy", s.Character.Expression)
	}
	if s.CurrentFood != apple || s.PreviousFood.Name != "water" {
		t.Fatalf("current/previous = %v/%v", s.CurrentFood.Name, s.PreviousFood.Name)
	}
	if s.TotalCalories != 95 || len(s.FoodHistory) != 2 {
		t.Fatalf("total=%d history=%d, want 95/2", s.TotalCalories, len(s.FoodHistory))
	}
	want := "Great choice! apple is crunchy and sweet! It has 95 calories compared to water's 0 calories. The person is really enjoying this healthy choice! 😊"
	if s.FeedbackMessage != want {
		t.Fatalf("feedback = %q\nwant %q", s.FeedbackMessage, want)
	}
}

func TestFeedLowerCaloriesLoses(t *testing.T) {
	s := feedFood(NewGameState(2000, false), apple)
	s = feedFood(s, lettuce)

	if !s.GameOver || s.IsWin {
		t.Fatalf("gameOver=%v isWin=%v, want true/false", s.GameOver, s.IsWin)
	}
	if len(s.FoodHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(s.FoodHistory))
	}
	if s.TotalCalories != 95 {
		t.Fatalf("total = %d, want unchanged 95", s.TotalCalories)
	}
	if !strings.Contains(s.GameOverReason, "lettuce (5 calories)") || !strings.Contains(s.GameOverReason, "apple (95 calories)") {
		t.Fatalf("reason should cite both foods: %q", s.GameOverReason)
	}
	if !strings.HasPrefix(s.FeedbackMessage, "Oops!") {
		t.Fatalf("feedback = %q", s.FeedbackMessage)
	}
}

func TestFeedEqualCaloriesLoses(t *testing.T) {
	s := feedFood(NewGameState(2000, false), apple)
	s = feedFood(s, &models.Food{Name: "pear", Calories: 95, HealthRating: 9})
	if !s.GameOver || s.IsWin {
		t.Fatal("equal calories should end the game as a loss")
	}
}

func TestFeedToxicAlwaysLoses(t *testing.T) {
	for _, start := range []models.GameState{
		NewGameState(2000, false),
		feedFood(feedFood(NewGameState(2000, false), apple), pizza),
	} {
		before := len(start.FoodHistory)
		s := feedFood(start, poison)

		if !s.GameOver || s.IsWin {
			t.Fatalf("gameOver=%v isWin=%v", s.GameOver, s.IsWin)
		}
		if s.Character.Health != 1 || s.Character.Happiness != 1 {
			t.Fatalf("character = %+v, want health and happiness 1", s.Character)
		}
		if !strings.Contains(s.GameOverReason, "toxic and dangerous") {
			t.Fatalf("reason = %q", s.GameOverReason)
		}
		if len(s.FoodHistory) != before+1 || s.CurrentFood != poison {
			t.Fatalf("toxic food should be recorded as eaten")
		}
	}
}

func TestReachingCeilingHealthyWins(t *testing.T) {
	s := NewGameState(2000, false)
	s.TotalCalories = 1900
	s.CurrentFood = &models.Food{Name: "rice", Calories: 130, HealthRating: 6}
	s.Character = models.CharacterState{Happiness: 7, Size: 3, Health: 9, Expression: models.ExpressionNeutral}

	s = feedFood(s, &models.Food{Name: "cheese", Calories: 140, HealthRating: 6})

	if s.Character.Health != 7 || s.Character.Happiness != 7 {
		t.Fatalf("character = %+v, want health 7 happiness 7", s.Character)
	}
	if !s.GameOver || !s.IsWin {
		t.Fatalf("gameOver=%v isWin=%v, want a win", s.GameOver, s.IsWin)
	}
	if !strings.Contains(s.GameOverReason, "2040 calories") {
		t.Fatalf("reason = %q", s.GameOverReason)
	}
}

func TestReachingCeilingUnhealthyLoses(t *testing.T) {
	s := NewGameState(2000, false)
	s.TotalCalories = 1900
	s.CurrentFood = &models.Food{Name: "rice", Calories: 130, HealthRating: 6}
	s.Character = models.CharacterState{Happiness: 7, Size: 3, Health: 7, Expression: models.ExpressionNeutral}

	s = feedFood(s, &models.Food{Name: "cheese", Calories: 140, HealthRating: 6})

	if !s.GameOver || s.IsWin {
		t.Fatalf("gameOver=%v isWin=%v, want a loss", s.GameOver, s.IsWin)
	}
	if !strings.Contains(s.GameOverReason, "way too much") {
		t.Fatalf("reason = %q", s.GameOverReason)
	}
}

func TestHealthCollapseLoses(t *testing.T) {
	s := NewGameState(2000, false)
	s.TotalCalories = 1400
	s.CurrentFood = &models.Food{Name: "cake", Calories: 250, HealthRating: 2}
	s.Character = models.CharacterState{Happiness: 5, Size: 3, Health: 3, Expression: models.ExpressionSad}

	s = feedFood(s, &models.Food{Name: "donut", Calories: 269, HealthRating: 2})

	if !s.GameOver || s.IsWin {
		t.Fatalf("gameOver=%v isWin=%v, want a loss", s.GameOver, s.IsWin)
	}
	if !strings.Contains(s.GameOverReason, "too many unhealthy foods") {
		t.Fatalf("reason = %q", s.GameOverReason)
	}
}

func TestFeedUnknownFoodOnlyChangesFeedback(t *testing.T) {
	start := feedFood(NewGameState(2000, false), apple)
	start.IsLoading = true

	s := Reduce(start, models.FeedFood{Name: "glorp"})
	if s.GameOver || s.Score != start.Score || len(s.FoodHistory) != len(start.FoodHistory) {
		t.Fatalf("unknown food changed the game: %+v", s)
	}
	if s.IsLoading {
		t.Fatal("loading flag should be cleared")
	}
	if !strings.Contains(s.FeedbackMessage, `"glorp"`) {
		t.Fatalf("feedback = %q", s.FeedbackMessage)
	}

	s = Reduce(start, models.FeedFood{Name: "aple", Hint: "apple"})
	if !strings.Contains(s.FeedbackMessage, `Did you mean "apple"?`) {
		t.Fatalf("feedback = %q", s.FeedbackMessage)
	}
}

func TestFeedUsesSuppliedFeedback(t *testing.T) {
	s := Reduce(NewGameState(2000, false), models.FeedFood{Name: "apple", Food: apple, Feedback: "Crunch!"})
	if s.FeedbackMessage != "Crunch!" {
		t.Fatalf("feedback = %q", s.FeedbackMessage)
	}
}

func TestFeedAfterGameOverIsIgnored(t *testing.T) {
	over := feedFood(NewGameState(2000, false), poison)
	s := feedFood(over, apple)
	if s.CurrentFood != poison || len(s.FoodHistory) != len(over.FoodHistory) {
		t.Fatal("feeding a finished game should not change it")
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	start := feedFood(NewGameState(2000, false), apple)
	history := append([]*models.Food(nil), start.FoodHistory...)

	_ = feedFood(start, pizza)
	_ = feedFood(start, &models.Food{Name: "milkshake", Calories: 530, HealthRating: 2})

	if len(start.FoodHistory) != len(history) {
		t.Fatalf("input history changed length")
	}
	for i := range history {
		if start.FoodHistory[i] != history[i] {
			t.Fatalf("input history entry %d changed", i)
		}
	}
}

func TestTotalCaloriesTracksValidMoves(t *testing.T) {
	s := NewGameState(5000, false)
	climb := []*models.Food{
		apple,
		{Name: "grapes", Calories: 110, HealthRating: 8},
		{Name: "almonds", Calories: 164, HealthRating: 8},
		{Name: "salmon", Calories: 206, HealthRating: 8},
	}
	for _, f := range climb {
		before, n := s.TotalCalories, len(s.FoodHistory)
		s = feedFood(s, f)
		if s.GameOver {
			t.Fatalf("unexpected game over after %s: %s", f.Name, s.GameOverReason)
		}
		if s.TotalCalories != before+f.Calories || len(s.FoodHistory) != n+1 {
			t.Fatalf("after %s: total=%d history=%d", f.Name, s.TotalCalories, len(s.FoodHistory))
		}
	}
	if s.Score != 4 || s.LongestStreak != 4 {
		t.Fatalf("score=%d longest=%d, want 4/4", s.Score, s.LongestStreak)
	}
}

func TestResetKeepsLongestStreakAndCeiling(t *testing.T) {
	s := Reduce(NewGameState(2000, true), models.SetMaxCalories{Calories: 1500})
	s = feedFood(s, apple)
	s = feedFood(s, pizza)
	s = Reduce(s, models.ResetGame{})

	if s.LongestStreak != 2 || s.MaxCalories != 1500 {
		t.Fatalf("longest=%d max=%d, want 2/1500", s.LongestStreak, s.MaxCalories)
	}
	if s.Score != 0 || s.Streak != 0 || s.TotalCalories != 0 || len(s.FoodHistory) != 1 {
		t.Fatalf("reset left progress behind: %+v", s)
	}
	if !s.IsOnlineMode {
		t.Fatal("reset should keep the online flag")
	}
}

func TestLoadingAndOnlineActions(t *testing.T) {
	s := Reduce(NewGameState(2000, false), models.SetLoading{Loading: true})
	if !s.IsLoading {
		t.Fatal("loading not set")
	}
	s = Reduce(s, models.SetOnlineMode{Online: true})
	if !s.IsOnlineMode {
		t.Fatal("online mode not set")
	}
}

package utils

import "github.com/daveklee/calorieclimb.com/models"

// EvolveCharacter works out how the character reacts to eating food.
// totalCalories already includes the food. Later rules override the
// expression set by earlier ones: happiness band, then fullness, then the
// calorie-ratio sickness check. Toxic food short-circuits everything.
func EvolveCharacter(food *models.Food, prior models.CharacterState, totalCalories, maxCalories int) models.CharacterState {
	if food.IsToxic {
		return models.CharacterState{
			Happiness:  1,
			Size:       prior.Size,
			Health:     1,
			Expression: models.ExpressionSick,
		}
	}

	next := prior

	switch r := food.HealthRating; {
	case r >= 8:
		next.Happiness += 2
		next.Expression = models.ExpressionHappy
	case r >= 6:
		next.Expression = models.ExpressionNeutral
	case r >= 3:
		next.Happiness--
		next.Expression = models.ExpressionNeutral
	default:
		next.Happiness -= 2
		next.Expression = models.ExpressionSad
	}
	next.Happiness = clamp(next.Happiness, 1, 10)

	switch {
	case food.Calories > 300:
		next.Size = min(5, next.Size+1)
		if next.Size >= 4 {
			next.Expression = models.ExpressionStuffed
		}
	case food.Calories > 150:
		next.Size = min(5, next.Size+0.5)
	}
	next.Size = max(1, next.Size)

	ratio := 0.0
	if maxCalories > 0 {
		ratio = float64(totalCalories) / float64(maxCalories)
	}
	switch {
	case ratio > 0.8:
		next.Health -= 2
		next.Expression = models.ExpressionSick
	case ratio > 0.6:
		next.Health--
	case food.HealthRating >= 8:
		next.Health++
	case food.HealthRating <= 3:
		next.Health--
	}
	next.Health = clamp(next.Health, 1, 10)

	return next
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

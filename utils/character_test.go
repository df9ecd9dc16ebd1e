package utils

import (
	"testing"

	"github.com/daveklee/calorieclimb.com/models"
)

func TestEvolveCharacterToxicShortCircuits(t *testing.T) {
	prior := models.CharacterState{Happiness: 9, Size: 3.5, Health: 10, Expression: models.ExpressionHappy}
	got := EvolveCharacter(&models.Food{Name: "poison", HealthRating: 1, IsToxic: true}, prior, 0, 2000)

	want := models.CharacterState{Happiness: 1, Size: 3.5, Health: 1, Expression: models.ExpressionSick}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestEvolveCharacterBands(t *testing.T) {
	start := models.NewCharacterState() // 8 / 2 / 9 / happy

	tests := []struct {
		name  string
		food  models.Food
		total int
		want  models.CharacterState
	}{
		{
			name:  "healthy food lifts mood and health",
			food:  models.Food{Calories: 95, HealthRating: 9},
			total: 95,
			want:  models.CharacterState{Happiness: 10, Size: 2, Health: 10, Expression: models.ExpressionHappy},
		},
		{
			name:  "middling food is neutral",
			food:  models.Food{Calories: 113, HealthRating: 6},
			total: 113,
			want:  models.CharacterState{Happiness: 8, Size: 2, Health: 9, Expression: models.ExpressionNeutral},
		},
		{
			name:  "average food costs a point of happiness",
			food:  models.Food{Calories: 200, HealthRating: 5},
			total: 200,
			want:  models.CharacterState{Happiness: 7, Size: 2.5, Health: 9, Expression: models.ExpressionNeutral},
		},
		{
			name:  "junk food saddens and hurts health",
			food:  models.Food{Calories: 269, HealthRating: 2},
			total: 269,
			want:  models.CharacterState{Happiness: 6, Size: 2.5, Health: 8, Expression: models.ExpressionSad},
		},
		{
			name:  "exactly 150 calories does not grow",
			food:  models.Food{Calories: 150, HealthRating: 7},
			total: 150,
			want:  models.CharacterState{Happiness: 8, Size: 2, Health: 9, Expression: models.ExpressionNeutral},
		},
		{
			name:  "between 60 and 80 percent of the ceiling costs one health",
			food:  models.Food{Calories: 95, HealthRating: 9},
			total: 1300,
			want:  models.CharacterState{Happiness: 10, Size: 2, Health: 8, Expression: models.ExpressionHappy},
		},
		{
			name:  "above 80 percent makes the character sick",
			food:  models.Food{Calories: 95, HealthRating: 9},
			total: 1700,
			want:  models.CharacterState{Happiness: 10, Size: 2, Health: 7, Expression: models.ExpressionSick},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvolveCharacter(&tt.food, start, tt.total, 2000)
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEvolveCharacterStuffedOverridesHappiness(t *testing.T) {
	prior := models.CharacterState{Happiness: 8, Size: 3, Health: 9, Expression: models.ExpressionHappy}
	got := EvolveCharacter(&models.Food{Calories: 354, HealthRating: 9}, prior, 400, 2000)

	if got.Size != 4 {
		t.Fatalf("size = %v, want 4", got.Size)
	}
	if got.Expression != models.ExpressionStuffed {
		t.Fatalf("expression = %q, want stuffed", got.Expression)
	}
}

func TestEvolveCharacterSickBeatsStuffed(t *testing.T) {
	prior := models.CharacterState{Happiness: 8, Size: 4, Health: 9, Expression: models.ExpressionHappy}
	got := EvolveCharacter(&models.Food{Calories: 540, HealthRating: 2}, prior, 1900, 2000)

	if got.Expression != models.ExpressionSick {
		t.Fatalf("expression = %q, want sick", got.Expression)
	}
	if got.Size != 5 {
		t.Fatalf("size = %v, want clamped to 5", got.Size)
	}
}

func TestEvolveCharacterClampsToRange(t *testing.T) {
	low := models.CharacterState{Happiness: 1, Size: 1, Health: 1, Expression: models.ExpressionSad}
	got := EvolveCharacter(&models.Food{Calories: 110, HealthRating: 1}, low, 1900, 2000)
	if got.Happiness != 1 || got.Health != 1 {
		t.Fatalf("got %+v, want happiness and health clamped at 1", got)
	}

	high := models.CharacterState{Happiness: 10, Size: 5, Health: 10, Expression: models.ExpressionHappy}
	got = EvolveCharacter(&models.Food{Calories: 400, HealthRating: 10}, high, 400, 2000)
	if got.Happiness != 10 || got.Health != 10 || got.Size != 5 {
		t.Fatalf("got %+v, want everything clamped at the top", got)
	}
}

package utils

import (
	"fmt"

	"github.com/daveklee/calorieclimb.com/models"
)

var expressionPhrases = map[models.Expression]string{
	models.ExpressionHappy:   "The person is really enjoying this healthy choice! 😊",
	models.ExpressionExcited: "The person is excited about this tasty food! 🤩",
	models.ExpressionNeutral: "The person is satisfied with this choice. 😐",
	models.ExpressionSad:     "The person doesn't feel great about this choice... 😞",
	models.ExpressionStuffed: "The person is getting really full! Maybe lighter foods next time? 😵",
	models.ExpressionSick:    "The person isn't feeling well from all this food... 🤢",
}

// ToxicFeedback is the fixed message for eating something that is not food.
func ToxicFeedback(food *models.Food) string {
	return fmt.Sprintf("Oh no! %s is not safe to eat! The person is feeling very sick and needs help immediately. That's why we should never eat things that aren't food!", food.Name)
}

// InvalidMoveFeedback explains a move that failed to climb.
func InvalidMoveFeedback(food, previous *models.Food) string {
	return fmt.Sprintf("Oops! %s (%d calories) does not have more calories than %s (%d calories). Remember, we need to climb up the calorie ladder!",
		food.Name, food.Calories, previous.Name, previous.Calories)
}

// TemplateFeedback builds the deterministic message for a move. previous may
// be nil.
func TemplateFeedback(food, previous *models.Food, isValidMove bool, character models.CharacterState) string {
	if food.IsToxic {
		return ToxicFeedback(food)
	}
	if !isValidMove && previous != nil {
		return InvalidMoveFeedback(food, previous)
	}

	msg := fmt.Sprintf("Great choice! %s %s ", food.Name, food.Description)
	if previous != nil {
		msg += fmt.Sprintf("It has %d calories compared to %s's %d calories. ", food.Calories, previous.Name, previous.Calories)
	}
	return msg + expressionPhrases[character.Expression]
}

package models

// Expression is the face the character is pulling.
type Expression string

const (
	ExpressionHappy   Expression = "happy"
	ExpressionNeutral Expression = "neutral"
	ExpressionSad     Expression = "sad"
	ExpressionSick    Expression = "sick"
	ExpressionExcited Expression = "excited"
	ExpressionStuffed Expression = "stuffed"
)

// CharacterState is the simulated eater. Happiness and Health live in [1,10],
// Size in [1,5].
type CharacterState struct {
	Happiness  int        `json:"happiness"`
	Size       float64    `json:"size"`
	Health     int        `json:"health"`
	Expression Expression `json:"expression"`
}

// NewCharacterState returns the state every session starts with.
func NewCharacterState() CharacterState {
	return CharacterState{
		Happiness:  8,
		Size:       2,
		Health:     9,
		Expression: ExpressionHappy,
	}
}

package models

// DefaultMaxCalories is the calorie ceiling a new session starts with.
const DefaultMaxCalories = 2000

// MinMaxCalories is the lowest ceiling a player may configure.
const MinMaxCalories = 100

// GameState is the authoritative record of one play session.
type GameState struct {
	CurrentFood     *Food          `json:"current_food"`
	PreviousFood    *Food          `json:"previous_food"`
	Score           int            `json:"score"`
	Streak          int            `json:"streak"`
	LongestStreak   int            `json:"longest_streak"`
	TotalCalories   int            `json:"total_calories"`
	FoodHistory     []*Food        `json:"food_history"`
	Character       CharacterState `json:"character"`
	GameOver        bool           `json:"game_over"`
	GameOverReason  string         `json:"game_over_reason"`
	IsWin           bool           `json:"is_win"`
	MaxCalories     int            `json:"max_calories"`
	FeedbackMessage string         `json:"feedback_message"`
	IsOnlineMode    bool           `json:"is_online_mode"`
	IsLoading       bool           `json:"is_loading"`
}

// SeedFood is the zero-calorie drink every game starts from.
func SeedFood() *Food {
	return &Food{
		Name:         "water",
		Calories:     0,
		Emoji:        "💧",
		HealthRating: 10,
		Description:  "Starting fresh with water!",
	}
}

// Action is one of the discrete inputs the game reducer understands.
type Action interface {
	isAction()
}

// FeedFood carries the outcome of resolving Name. Food is nil when nothing
// matched; Hint optionally names a close catalog food. Feedback, when set,
// replaces the reducer's own message for the move.
type FeedFood struct {
	Name     string
	Food     *Food
	Hint     string
	Feedback string
}

// ResetGame starts a new round.
type ResetGame struct{}

// SetMaxCalories changes the calorie ceiling.
type SetMaxCalories struct {
	Calories int
}

// SetLoading raises or clears the in-flight flag.
type SetLoading struct {
	Loading bool
}

// SetOnlineMode records whether the remote food database is in use.
type SetOnlineMode struct {
	Online bool
}

func (FeedFood) isAction()       {}
func (ResetGame) isAction()      {}
func (SetMaxCalories) isAction() {}
func (SetLoading) isAction()     {}
func (SetOnlineMode) isAction()  {}

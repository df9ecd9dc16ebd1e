package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/daveklee/calorieclimb.com/models"
)

// DefaultEmoji is shown when no keyword matches.
const DefaultEmoji = "🍽️"

type emojiRule struct {
	keywords []string
	emoji    string
}

// Evaluated top to bottom, first match wins, so "pineapple" gets the apple.
var emojiRules = []emojiRule{
	// fruit
	{[]string{"apple"}, "🍎"},
	{[]string{"banana"}, "🍌"},
	{[]string{"orange"}, "🍊"},
	{[]string{"grape"}, "🍇"},
	{[]string{"strawberr"}, "🍓"},
	{[]string{"peach"}, "🍑"},
	{[]string{"pineapple"}, "🍍"},
	{[]string{"watermelon"}, "🍉"},
	{[]string{"cherry"}, "🍒"},
	{[]string{"lemon"}, "🍋"},
	// vegetables
	{[]string{"carrot"}, "🥕"},
	{[]string{"broccoli"}, "🥦"},
	{[]string{"tomato"}, "🍅"},
	{[]string{"corn"}, "🌽"},
	{[]string{"pepper"}, "🌶️"},
	{[]string{"lettuce", "salad"}, "🥬"},
	{[]string{"potato"}, "🥔"},
	{[]string{"onion"}, "🧅"},
	{[]string{"cucumber"}, "🥒"},
	{[]string{"spinach", "kale"}, "🥬"},
	// protein
	{[]string{"chicken"}, "🍗"},
	{[]string{"beef", "steak"}, "🥩"},
	{[]string{"fish", "salmon", "tuna"}, "🐟"},
	{[]string{"egg"}, "🥚"},
	{[]string{"shrimp"}, "🍤"},
	// dairy
	{[]string{"milk"}, "🥛"},
	{[]string{"cheese"}, "🧀"},
	{[]string{"yogurt"}, "🥛"},
	{[]string{"butter"}, "🧈"},
	// grains
	{[]string{"bread"}, "🍞"},
	{[]string{"rice"}, "🍚"},
	{[]string{"pasta"}, "🍝"},
	{[]string{"cereal"}, "🥣"},
	{[]string{"oats", "oatmeal"}, "🥣"},
	// sweets
	{[]string{"cookie"}, "🍪"},
	{[]string{"cake"}, "🍰"},
	{[]string{"ice cream"}, "🍦"},
	{[]string{"chocolate"}, "🍫"},
	{[]string{"candy"}, "🍬"},
	{[]string{"donut"}, "🍩"},
	// fast food
	{[]string{"pizza"}, "🍕"},
	{[]string{"burger"}, "🍔"},
	{[]string{"fries"}, "🍟"},
	// drinks
	{[]string{"water"}, "💧"},
	{[]string{"juice"}, "🧃"},
	{[]string{"soda", "cola"}, "🥤"},
	{[]string{"coffee"}, "☕"},
	{[]string{"tea"}, "🍵"},
	// nuts
	{[]string{"almond", "peanut", "walnut"}, "🥜"},
}

// EmojiFor picks a display glyph from a food description.
func EmojiFor(description string) string {
	desc := strings.ToLower(description)
	for _, r := range emojiRules {
		if containsAny(desc, r.keywords...) {
			return r.emoji
		}
	}
	return DefaultEmoji
}

type ratingRule struct {
	requires string // must also be present when set
	keywords []string
	rating   int
}

var ratingRules = []ratingRule{
	{"raw", []string{"vegetable", "fruit"}, 9},
	{"", []string{"spinach", "kale", "broccoli"}, 10},
	{"", []string{"salmon", "tuna"}, 8},
	{"", []string{"fruit", "vegetable"}, 8},
	{"", []string{"whole grain", "oats"}, 7},
	{"", []string{"chicken breast", "lean"}, 7},
	{"", []string{"bread", "pasta", "rice"}, 5},
	{"", []string{"cheese", "milk"}, 6},
	{"", []string{"fried", "pizza", "burger"}, 3},
	{"", []string{"candy", "cookie", "cake"}, 2},
	{"", []string{"soda", "energy drink"}, 1},
}

// DefaultHealthRating applies when nothing in the description is recognised.
const DefaultHealthRating = 5

// HealthRatingFor scores a description from 1 (junk) to 10 (very healthy).
func HealthRatingFor(description string) int {
	desc := strings.ToLower(description)
	for _, r := range ratingRules {
		if r.requires != "" && !strings.Contains(desc, r.requires) {
			continue
		}
		if containsAny(desc, r.keywords...) {
			return r.rating
		}
	}
	return DefaultHealthRating
}

var (
	parenRe     = regexp.MustCompile(`\(.*?\)`)
	qualifierRe = regexp.MustCompile(`\b(raw|fresh|unprepared|commercial|usda commodity)\b`)
)

// CleanFoodName turns a database description such as
// "Apples, raw, with skin (Includes foods for USDA's Food Distribution Program)"
// into a short display name ("Apples").
func CleanFoodName(description string) string {
	s := strings.ToLower(description)
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	s = parenRe.ReplaceAllString(s, "")
	s = qualifierRe.ReplaceAllString(s, "")

	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// CaloriesFromNutrients reads the energy value of a nutrient list, rounded to
// a whole number. A kcal entry wins over kJ when both are listed.
func CaloriesFromNutrients(nutrients []models.Nutrient) int {
	var found *models.Nutrient
	for i := range nutrients {
		name := strings.ToLower(nutrients[i].Name)
		if !strings.Contains(name, "energy") && !strings.Contains(name, "calorie") {
			continue
		}
		if strings.EqualFold(nutrients[i].Unit, "kcal") {
			found = &nutrients[i]
			break
		}
		if found == nil {
			found = &nutrients[i]
		}
	}
	if found == nil {
		return 0
	}
	return int(math.Round(found.Amount))
}

var keyNutrientNames = []string{
	"Protein",
	"Total lipid (fat)",
	"Carbohydrate, by difference",
	"Fiber, total dietary",
	"Sugars, total including NLEA",
	"Sodium, Na",
}

// KeyNutrients keeps the handful of nutrients worth showing a player.
func KeyNutrients(nutrients []models.Nutrient) []models.Nutrient {
	out := []models.Nutrient{}
	for _, n := range nutrients {
		for _, k := range keyNutrientNames {
			if n.Name == k {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// DetailToFood converts a nutrition-database record into a game food. The
// generic mode produces short friendly names; the other modes keep the raw
// database description.
func DetailToFood(d models.NutritionDetail, mode models.SearchMode) *models.Food {
	calories := CaloriesFromNutrients(d.Nutrients)

	var name, description string
	if mode == models.SearchModeGeneric {
		name = CleanFoodName(d.Description)
		if name == "" {
			name = strings.ToLower(d.Description)
		}
		description = name + " - " + strconv.Itoa(calories) + " calories per 100g"
		if d.DataType == models.DataTypeSurvey {
			description += ". FNDDS Description: " + d.Description
		}
	} else {
		name = strings.ToLower(d.Description)
		description = "From USDA database: " + d.Description
	}

	return &models.Food{
		Name:                   name,
		Calories:               calories,
		Emoji:                  EmojiFor(d.Description),
		HealthRating:           HealthRatingFor(d.Description),
		Description:            description,
		FdcID:                  d.FdcID,
		BrandOwner:             d.BrandOwner,
		Ingredients:            d.Ingredients,
		ServingSize:            d.ServingSize,
		ServingSizeUnit:        d.ServingSizeUnit,
		Nutrients:              KeyNutrients(d.Nutrients),
		IsFromUSDA:             true,
		DataType:               d.DataType,
		AdditionalDescriptions: d.AdditionalDescriptions,
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

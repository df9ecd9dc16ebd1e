package services

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/daveklee/calorieclimb.com/models"
	"github.com/daveklee/calorieclimb.com/utils"
)

// MaxCatalogSuggestions caps FoodCatalog.Suggest.
const MaxCatalogSuggestions = 5

// FoodCatalog is the offline food table. It is read-only once built and safe
// for concurrent use.
type FoodCatalog struct {
	foods []*models.Food
}

func NewFoodCatalog(foods []*models.Food) *FoodCatalog {
	return &FoodCatalog{foods: foods}
}

// NewDefaultFoodCatalog returns the catalog the game ships with.
func NewDefaultFoodCatalog() *FoodCatalog {
	return NewFoodCatalog(DefaultFoods())
}

// Foods returns the catalog entries in table order.
func (c *FoodCatalog) Foods() []*models.Food {
	return c.foods
}

// Lookup finds the food a player most likely meant: an exact name first, then
// the first name starting with the input, then the longest name that contains
// or is contained in the input.
func (c *FoodCatalog) Lookup(name string) *models.Food {
	q := normalizeFoodName(name)
	if q == "" || utils.ContainsRestricted(q) {
		return nil
	}

	for _, f := range c.foods {
		if strings.ToLower(f.Name) == q {
			return f
		}
	}
	for _, f := range c.foods {
		if strings.HasPrefix(strings.ToLower(f.Name), q) {
			return f
		}
	}

	var best *models.Food
	for _, f := range c.foods {
		n := strings.ToLower(f.Name)
		if !strings.Contains(n, q) && !strings.Contains(q, n) {
			continue
		}
		if best == nil || len(f.Name) > len(best.Name) {
			best = f
		}
	}
	return best
}

// Suggest ranks foods whose names contain prefix: exact match, then names
// starting with it, then shorter names.
func (c *FoodCatalog) Suggest(prefix string) []*models.Food {
	q := normalizeFoodName(prefix)
	if len(q) < 2 || utils.ContainsRestricted(q) {
		return nil
	}

	var out []*models.Food
	for _, f := range c.foods {
		if strings.Contains(strings.ToLower(f.Name), q) {
			out = append(out, f)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if ae, be := a == q, b == q; ae != be {
			return ae
		}
		if ap, bp := strings.HasPrefix(a, q), strings.HasPrefix(b, q); ap != bp {
			return ap
		}
		return len(a) < len(b)
	})

	if len(out) > MaxCatalogSuggestions {
		out = out[:MaxCatalogSuggestions]
	}
	return out
}

// Closest returns the catalog food whose name is nearest to name by edit
// distance, for "did you mean" hints. Toxic foods are never suggested.
func (c *FoodCatalog) Closest(name string) (*models.Food, bool) {
	q := normalizeFoodName(name)
	if q == "" || utils.ContainsRestricted(q) {
		return nil, false
	}

	var (
		best     *models.Food
		bestDist int
	)
	for _, f := range c.foods {
		if f.IsToxic {
			continue
		}
		n := strings.ToLower(f.Name)
		dist := levenshtein.ComputeDistance(q, n)
		if dist > levenshteinLimit(len(n)) {
			continue
		}
		if best == nil || dist < bestDist {
			best, bestDist = f, dist
		}
	}
	return best, best != nil
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func normalizeFoodName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DefaultFoods is the built-in food table. Calories are per typical serving.
func DefaultFoods() []*models.Food {
	return []*models.Food{
		{Name: "water", Calories: 0, Emoji: "💧", HealthRating: 10, Description: "Essential for life! Zero calories and super healthy."},

		{Name: "cucumber", Calories: 16, Emoji: "🥒", HealthRating: 9, Description: "Crispy and refreshing! Very low in calories and full of water."},
		{Name: "lettuce", Calories: 5, Emoji: "🥬", HealthRating: 9, Description: "Leafy greens are amazing! Almost no calories but lots of nutrients."},
		{Name: "celery", Calories: 6, Emoji: "🥬", HealthRating: 9, Description: "Crunchy and fun to eat! Burns almost as many calories as it contains."},
		{Name: "spinach", Calories: 23, Emoji: "🥬", HealthRating: 10, Description: "Popeye's favorite! Super nutritious and very low in calories."},

		{Name: "apple", Calories: 95, Emoji: "🍎", HealthRating: 9, Description: "An apple a day keeps the doctor away! Sweet, crunchy, and healthy."},
		{Name: "banana", Calories: 105, Emoji: "🍌", HealthRating: 8, Description: "Great for energy! Potassium-rich and naturally sweet."},
		{Name: "orange", Calories: 87, Emoji: "🍊", HealthRating: 9, Description: "Packed with vitamin C! Juicy and refreshing."},
		{Name: "grapes", Calories: 110, Emoji: "🍇", HealthRating: 8, Description: "Nature's candy! Sweet and full of antioxidants."},
		{Name: "strawberries", Calories: 50, Emoji: "🍓", HealthRating: 9, Description: "Sweet and low in calories! Perfect healthy snack."},

		{Name: "carrot", Calories: 25, Emoji: "🥕", HealthRating: 9, Description: "Great for your eyes! Crunchy and naturally sweet."},
		{Name: "broccoli", Calories: 55, Emoji: "🥦", HealthRating: 10, Description: "Little green trees! Super nutritious and cancer-fighting."},
		{Name: "tomato", Calories: 35, Emoji: "🍅", HealthRating: 8, Description: "Technically a fruit! Full of vitamins and very tasty."},

		{Name: "chicken breast", Calories: 165, Emoji: "🍗", HealthRating: 7, Description: "Lean protein power! Helps build strong muscles."},
		{Name: "salmon", Calories: 206, Emoji: "🐟", HealthRating: 8, Description: "Brain food! Rich in omega-3 fatty acids."},
		{Name: "egg", Calories: 78, Emoji: "🥚", HealthRating: 8, Description: "Perfect protein! Contains all essential amino acids."},
		{Name: "tofu", Calories: 94, Emoji: "🥩", HealthRating: 7, Description: "Plant-based protein! Great for vegetarians."},

		{Name: "milk", Calories: 103, Emoji: "🥛", HealthRating: 7, Description: "Builds strong bones! Rich in calcium and protein."},
		{Name: "yogurt", Calories: 100, Emoji: "🥛", HealthRating: 8, Description: "Good bacteria for your tummy! Creamy and nutritious."},
		{Name: "cheese", Calories: 113, Emoji: "🧀", HealthRating: 6, Description: "Calcium-rich but watch the fat! Delicious in moderation."},

		{Name: "rice", Calories: 130, Emoji: "🍚", HealthRating: 6, Description: "Energy fuel! Carbs to power your day."},
		{Name: "bread", Calories: 79, Emoji: "🍞", HealthRating: 5, Description: "Comfort food! Better when it's whole grain."},
		{Name: "pasta", Calories: 131, Emoji: "🍝", HealthRating: 5, Description: "Italian favorite! Carbs for energy, but watch the portions."},
		{Name: "oatmeal", Calories: 68, Emoji: "🥣", HealthRating: 8, Description: "Breakfast champion! Fiber-rich and keeps you full."},

		{Name: "almonds", Calories: 164, Emoji: "🥜", HealthRating: 8, Description: "Brain food! Healthy fats and protein in a tiny package."},
		{Name: "peanuts", Calories: 161, Emoji: "🥜", HealthRating: 7, Description: "Not actually nuts, but legumes! Protein-packed."},

		{Name: "avocado", Calories: 234, Emoji: "🥑", HealthRating: 8, Description: "Healthy fats galore! Creamy and heart-healthy."},
		{Name: "pizza slice", Calories: 285, Emoji: "🍕", HealthRating: 4, Description: "Tasty but high in calories! Enjoy as a special treat."},
		{Name: "hamburger", Calories: 354, Emoji: "🍔", HealthRating: 3, Description: "Classic comfort food! High in calories and fat."},
		{Name: "french fries", Calories: 365, Emoji: "🍟", HealthRating: 2, Description: "Crispy but not healthy! Lots of oil and calories."},

		{Name: "chocolate bar", Calories: 235, Emoji: "🍫", HealthRating: 3, Description: "Sweet treat! High in sugar and calories."},
		{Name: "ice cream", Calories: 207, Emoji: "🍦", HealthRating: 3, Description: "Cold and creamy! High in sugar and fat."},
		{Name: "donut", Calories: 269, Emoji: "🍩", HealthRating: 2, Description: "Sweet and fried! Very high in sugar and calories."},
		{Name: "cake", Calories: 365, Emoji: "🍰", HealthRating: 2, Description: "Birthday special! Lots of sugar and calories."},
		{Name: "cookies", Calories: 142, Emoji: "🍪", HealthRating: 3, Description: "Sweet treats! High in sugar, eat in moderation."},

		{Name: "milkshake", Calories: 530, Emoji: "🥤", HealthRating: 2, Description: "Liquid calories! Very high in sugar and fat."},
		{Name: "cheeseburger", Calories: 540, Emoji: "🍔", HealthRating: 2, Description: "Super size calories! Very high in fat and calories."},
		{Name: "fried chicken", Calories: 320, Emoji: "🍗", HealthRating: 3, Description: "Crispy but greasy! High in calories from frying."},

		// Not food, or not safe to eat. Alcohol is never listed.
		{Name: "energy drink", Calories: 110, Emoji: "⚡", HealthRating: 1, Description: "Too much caffeine! Can make your heart race."},
		{Name: "raw meat", Calories: 143, Emoji: "🥩", HealthRating: 1, Description: "Dangerous bacteria! Always cook meat before eating.", IsToxic: true},
		{Name: "soap", Calories: 0, Emoji: "🧼", HealthRating: 1, Description: "Not food! Very dangerous to eat!", IsToxic: true},
		{Name: "poison", Calories: 0, Emoji: "☠️", HealthRating: 1, Description: "Extremely dangerous! Never eat anything poisonous!", IsToxic: true},
	}
}

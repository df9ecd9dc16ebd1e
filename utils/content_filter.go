package utils

import (
	"sort"
	"strings"

	"github.com/daveklee/calorieclimb.com/models"
)

// The game is played by children, so anything alcohol-related is blocked no
// matter where it comes from. Matching is a plain lower-case substring test.
var restrictedKeywords = []string{
	"beer", "wine", "liquor", "liqueur", "whiskey", "whisky", "vodka", "rum", "gin", "tequila",
	"brandy", "cognac", "bourbon", "scotch", "champagne", "cocktail", "martini", "margarita",
	"bloody mary", "mojito", "daiquiri", "cosmopolitan", "manhattan", "old fashioned",
	"alcoholic", "alcohol", "ethanol", "proof", "distilled", "fermented", "brewed",
	"sake", "mead", "cider", "ale", "lager", "stout", "porter", "pilsner",
	"absinthe", "amaretto", "baileys", "kahlua", "sambuca", "schnapps",
	"aperitif", "digestif", "cordial", "bitters", "vermouth", "sherry", "port",
	"mixed drink", "hard seltzer", "wine cooler", "sangria", "punch, alcoholic",
	"beverage, alcoholic", "drink, alcoholic",
}

var restrictedBrands = []string{
	"anheuser-busch", "budweiser", "coors", "miller", "heineken", "corona",
	"absolut", "smirnoff", "bacardi", "captain morgan", "jose cuervo",
	"jack daniels", "jim beam", "johnnie walker", "grey goose",
}

// Brand owners that still describe everyday generic food.
var acceptableBrandMarkers = []string{"usda commodity", "school lunch", "generic", "store brand"}

// Descriptions too specialised to make sense as a game food.
var tooSpecificMarkers = []string{
	"upc:", "gtin:", "prepared from recipe", "restaurant", "fast food", "frozen meal",
	"baby food", "dietary supplement", "formula", "medical food", "enteral", "parenteral",
}

// ContainsRestricted reports whether text mentions any restricted keyword.
func ContainsRestricted(text string) bool {
	return containsAny(strings.ToLower(text), restrictedKeywords...)
}

// IsRestrictedHit checks a search hit's description and brand owner.
func IsRestrictedHit(hit models.FoodSearchHit) bool {
	if ContainsRestricted(hit.Description) {
		return true
	}
	return hit.BrandOwner != "" && containsAny(strings.ToLower(hit.BrandOwner), restrictedBrands...)
}

// IsRestrictedFood checks the name and description of a converted food.
func IsRestrictedFood(f *models.Food) bool {
	return f != nil && (ContainsRestricted(f.Name) || ContainsRestricted(f.Description))
}

// FilterRestricted drops every restricted hit, keeping order.
func FilterRestricted(hits []models.FoodSearchHit) []models.FoodSearchHit {
	out := make([]models.FoodSearchHit, 0, len(hits))
	for _, h := range hits {
		if !IsRestrictedHit(h) {
			out = append(out, h)
		}
	}
	return out
}

// FilterGenericFoods keeps the plain whole-food hits of a generic search and
// orders them: hits mentioning the query first, Foundation before Survey,
// then shorter descriptions.
//
// This is content curation, not a correctness rule; the marker lists are
// best-effort.
func FilterGenericFoods(hits []models.FoodSearchHit, query string) []models.FoodSearchHit {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]models.FoodSearchHit, 0, len(hits))
	for _, h := range hits {
		desc := strings.ToLower(h.Description)
		if h.BrandOwner != "" && !containsAny(desc, acceptableBrandMarkers...) {
			continue
		}
		if containsAny(desc, tooSpecificMarkers...) {
			continue
		}
		if h.DataType != models.DataTypeFoundation && h.DataType != models.DataTypeSurvey {
			continue
		}
		out = append(out, h)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Description), strings.ToLower(out[j].Description)
		if am, bm := strings.Contains(a, q), strings.Contains(b, q); am != bm {
			return am
		}
		if af, bf := out[i].DataType == models.DataTypeFoundation, out[j].DataType == models.DataTypeFoundation; af != bf {
			return af
		}
		return len(out[i].Description) < len(out[j].Description)
	})
	return out
}

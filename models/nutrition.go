package models

import "fmt"

// SearchMode controls how wide the remote food search casts its net.
type SearchMode string

const (
	SearchModeCatalog SearchMode = "catalog" // offline catalog only
	SearchModeGeneric SearchMode = "generic" // curated whole foods
	SearchModeBranded SearchMode = "branded"
	SearchModeFull    SearchMode = "full" // everything the database has
)

// ParseSearchMode validates a mode name.
func ParseSearchMode(s string) (SearchMode, error) {
	switch m := SearchMode(s); m {
	case SearchModeCatalog, SearchModeGeneric, SearchModeBranded, SearchModeFull:
		return m, nil
	}
	return "", fmt.Errorf("unknown search mode %q", s)
}

// DataTypes returns the FoodData Central data types searched in this mode.
func (m SearchMode) DataTypes() []string {
	switch m {
	case SearchModeBranded:
		return []string{DataTypeBranded}
	case SearchModeFull:
		return []string{DataTypeFoundation, DataTypeSRLegacy, DataTypeBranded}
	default:
		return []string{DataTypeFoundation, DataTypeSurvey}
	}
}

// FoodData Central data categories.
const (
	DataTypeFoundation = "Foundation"
	DataTypeSurvey     = "Survey (FNDDS)"
	DataTypeSRLegacy   = "SR Legacy"
	DataTypeBranded    = "Branded"
)

// NutritionSearchRequest is the body of a remote food search.
type NutritionSearchRequest struct {
	Query      string   `json:"query"`
	PageSize   int      `json:"pageSize"`
	PageNumber int      `json:"pageNumber"`
	DataType   []string `json:"dataType"`
	SortBy     string   `json:"sortBy"`
	SortOrder  string   `json:"sortOrder"`
}

// FoodSearchHit is one candidate returned by a remote search.
type FoodSearchHit struct {
	FdcID       int64  `json:"fdcId"`
	Description string `json:"description"`
	BrandOwner  string `json:"brandOwner,omitempty"`
	DataType    string `json:"dataType"`
}

// NutritionSearchResult is a page of remote search hits.
type NutritionSearchResult struct {
	Foods     []FoodSearchHit `json:"foods"`
	TotalHits int             `json:"totalHits"`
}

// NutritionDetail is the full remote record for one food.
type NutritionDetail struct {
	FdcID                  int64      `json:"fdcId"`
	Description            string     `json:"description"`
	BrandOwner             string     `json:"brandOwner,omitempty"`
	Ingredients            string     `json:"ingredients,omitempty"`
	ServingSize            float64    `json:"servingSize,omitempty"`
	ServingSizeUnit        string     `json:"servingSizeUnit,omitempty"`
	DataType               string     `json:"dataType,omitempty"`
	AdditionalDescriptions string     `json:"additionalDescriptions,omitempty"`
	Nutrients              []Nutrient `json:"nutrients"`
}

// NarrativeMode selects which kind of message the text generator writes.
type NarrativeMode string

const (
	NarrativeFeedback NarrativeMode = "feedback"
	NarrativeGameOver NarrativeMode = "gameOver"
)

// NarrativeRequest is what the text generator is asked about.
type NarrativeRequest struct {
	CurrentFood      string        `json:"currentFood"`
	CurrentCalories  int           `json:"currentCalories"`
	PreviousFood     *string       `json:"previousFood,omitempty"`
	PreviousCalories *int          `json:"previousCalories,omitempty"`
	IsHealthy        bool          `json:"isHealthy"`
	Mode             NarrativeMode `json:"type"`
	Reason           string        `json:"reason,omitempty"`
	TotalCalories    int           `json:"totalCalories,omitempty"`
	FoodsEaten       []string      `json:"foodsEaten,omitempty"`
}

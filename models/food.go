package models

// Food is a single thing the player can feed the character. Values are shared
// by pointer between the catalog, the history and the current/previous slots,
// so nothing may modify a Food after it is built.
type Food struct {
	Name         string `json:"name"`
	Calories     int    `json:"calories"`
	Emoji        string `json:"emoji"`
	HealthRating int    `json:"health_rating"` // 1-10, 10 = healthiest
	Description  string `json:"description"`
	IsToxic      bool   `json:"is_toxic,omitempty"`

	// Provenance, only set for foods that came from the nutrition database.
	FdcID                  int64      `json:"fdc_id,omitempty"`
	BrandOwner             string     `json:"brand_owner,omitempty"`
	Ingredients            string     `json:"ingredients,omitempty"`
	ServingSize            float64    `json:"serving_size,omitempty"`
	ServingSizeUnit        string     `json:"serving_size_unit,omitempty"`
	Nutrients              []Nutrient `json:"nutrients,omitempty"`
	IsFromUSDA             bool       `json:"is_from_usda,omitempty"`
	DataType               string     `json:"data_type,omitempty"`
	AdditionalDescriptions string     `json:"additional_descriptions,omitempty"`
}

// Nutrient is one line of a nutrient breakdown.
type Nutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/daveklee/calorieclimb.com/models"
)

// DefaultUSDABaseURL is the public FoodData Central API root.
const DefaultUSDABaseURL = "https://api.nal.usda.gov/fdc/v1"

// NutritionSource is the remote food database the resolver talks to.
type NutritionSource interface {
	SearchFoods(ctx context.Context, req models.NutritionSearchRequest) (*models.NutritionSearchResult, error)
	FoodDetails(ctx context.Context, fdcID int64) (*models.NutritionDetail, error)
}

type USDAService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewUSDAService builds a FoodData Central client. An empty baseURL selects
// the public API.
func NewUSDAService(baseURL, apiKey string) *USDAService {
	if baseURL == "" {
		baseURL = DefaultUSDABaseURL
	}
	return &USDAService{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchFoods calls the FoodData Central search endpoint. Results are returned
// as-is; content filtering is the caller's job.
func (s *USDAService) SearchFoods(ctx context.Context, sr models.NutritionSearchRequest) (*models.NutritionSearchResult, error) {
	if sr.PageSize <= 0 {
		sr.PageSize = 25
	}
	if sr.PageNumber <= 0 {
		sr.PageNumber = 1
	}
	if len(sr.DataType) == 0 {
		sr.DataType = models.SearchModeGeneric.DataTypes()
	}
	if sr.SortBy == "" {
		sr.SortBy = "dataType.keyword"
	}
	if sr.SortOrder == "" {
		sr.SortOrder = "asc"
	}

	b, err := json.Marshal(sr)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal usda search payload: %w", err)
	}

	u := fmt.Sprintf("%s/foods/search?api_key=%s", s.baseURL, url.QueryEscape(s.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create usda search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := s.do(req, "search")
	if err != nil {
		return nil, err
	}

	var out models.NutritionSearchResult
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse usda search JSON: %w", err)
	}
	return &out, nil
}

// FoodDetails fetches one food record by FDC id.
func (s *USDAService) FoodDetails(ctx context.Context, fdcID int64) (*models.NutritionDetail, error) {
	u := fmt.Sprintf("%s/food/%d?api_key=%s", s.baseURL, fdcID, url.QueryEscape(s.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create usda detail request: %w", err)
	}

	body, err := s.do(req, "detail")
	if err != nil {
		return nil, err
	}
	return ParseNutritionDetail(body)
}

func (s *USDAService) do(req *http.Request, what string) ([]byte, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call usda %s: %w", what, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read usda %s response: %w", what, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usda %s API error %d: %s", what, resp.StatusCode, string(body))
	}
	return body, nil
}

// ParseNutritionDetail reads a FoodData Central detail document. Foundation
// and SR records nest the nutrient name under "nutrient"; abridged records
// use flat "nutrientName"/"value" fields. Both are accepted.
func ParseNutritionDetail(body []byte) (*models.NutritionDetail, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("failed to parse usda detail JSON: invalid document")
	}
	doc := gjson.ParseBytes(body)
	if !doc.Get("fdcId").Exists() {
		return nil, fmt.Errorf("failed to parse usda detail JSON: missing fdcId")
	}

	d := &models.NutritionDetail{
		FdcID:                  doc.Get("fdcId").Int(),
		Description:            doc.Get("description").String(),
		BrandOwner:             doc.Get("brandOwner").String(),
		Ingredients:            doc.Get("ingredients").String(),
		ServingSize:            doc.Get("servingSize").Float(),
		ServingSizeUnit:        doc.Get("servingSizeUnit").String(),
		DataType:               doc.Get("dataType").String(),
		AdditionalDescriptions: doc.Get("additionalDescriptions").String(),
		Nutrients:              []models.Nutrient{},
	}

	doc.Get("foodNutrients").ForEach(func(_, v gjson.Result) bool {
		n := models.Nutrient{
			Name:   v.Get("nutrient.name").String(),
			Amount: v.Get("amount").Float(),
			Unit:   v.Get("nutrient.unitName").String(),
		}
		if n.Name == "" {
			n.Name = v.Get("nutrientName").String()
			n.Unit = v.Get("unitName").String()
		}
		if !v.Get("amount").Exists() {
			n.Amount = v.Get("value").Float()
		}
		if n.Name != "" {
			d.Nutrients = append(d.Nutrients, n)
		}
		return true
	})
	return d, nil
}

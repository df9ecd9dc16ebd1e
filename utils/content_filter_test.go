package utils

import (
	"testing"

	"github.com/daveklee/calorieclimb.com/models"
)

func TestContainsRestricted(t *testing.T) {
	for _, s := range []string{"wine", "Red WINE", "beer battered fish", "vodka sauce", "Rum cake"} {
		if !ContainsRestricted(s) {
			t.Errorf("ContainsRestricted(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"apple", "banana", "pizza slice", "chocolate bar", "water"} {
		if ContainsRestricted(s) {
			t.Errorf("ContainsRestricted(%q) = true, want false", s)
		}
	}
}

func TestIsRestrictedHitChecksBrand(t *testing.T) {
	hit := models.FoodSearchHit{Description: "Lime flavored sparkling drink", BrandOwner: "Anheuser-Busch, LLC", DataType: models.DataTypeBranded}
	if !IsRestrictedHit(hit) {
		t.Fatal("hit from an alcohol brand owner should be restricted")
	}
	hit.BrandOwner = "Fresh Farms"
	if IsRestrictedHit(hit) {
		t.Fatal("hit from a neutral brand should pass")
	}
}

func TestFilterRestrictedKeepsOrder(t *testing.T) {
	hits := []models.FoodSearchHit{
		{FdcID: 1, Description: "Apples, raw"},
		{FdcID: 2, Description: "Wine, table, red"},
		{FdcID: 3, Description: "Bananas, raw"},
	}
	got := FilterRestricted(hits)
	if len(got) != 2 || got[0].FdcID != 1 || got[1].FdcID != 3 {
		t.Fatalf("got %+v", got)
	}
}

func TestFilterGenericFoods(t *testing.T) {
	hits := []models.FoodSearchHit{
		{FdcID: 1, Description: "Snacks, apple chips", DataType: models.DataTypeSurvey},
		{FdcID: 2, Description: "Apple juice, UPC: 0001", DataType: models.DataTypeSurvey},
		{FdcID: 3, Description: "Apples, fuji, with skin, raw", DataType: models.DataTypeFoundation},
		{FdcID: 4, Description: "Apple pie", DataType: models.DataTypeBranded, BrandOwner: "Bakery Co"},
		{FdcID: 5, Description: "Apple, raw", DataType: models.DataTypeSRLegacy},
		{FdcID: 6, Description: "Pears, raw", DataType: models.DataTypeFoundation},
	}

	got := FilterGenericFoods(hits, "apple")
	ids := make([]int64, 0, len(got))
	for _, h := range got {
		ids = append(ids, h.FdcID)
	}

	want := []int64{3, 1, 6}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/daveklee/calorieclimb.com/models"
)

// FoodStore archives nutrition detail records so a food looked up once is
// served from the database afterwards.
type FoodStore struct {
	db *gorm.DB
}

func NewFoodStore(db *gorm.DB) *FoodStore {
	return &FoodStore{db: db}
}

// Get returns the archived detail for fdcID, or (nil, nil) when absent.
func (s *FoodStore) Get(ctx context.Context, fdcID int64) (*models.NutritionDetail, error) {
	var rec models.FoodRecord
	err := s.db.WithContext(ctx).Where("fdc_id = ?", fdcID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error fetching food %d: %w", fdcID, err)
	}

	var d models.NutritionDetail
	if err := json.Unmarshal([]byte(rec.Payload), &d); err != nil {
		return nil, fmt.Errorf("failed to decode archived food %d: %w", fdcID, err)
	}
	return &d, nil
}

// Put stores or refreshes a detail record.
func (s *FoodStore) Put(ctx context.Context, d *models.NutritionDetail) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode food %d: %w", d.FdcID, err)
	}
	rec := models.FoodRecord{
		FdcID:       d.FdcID,
		Description: d.Description,
		DataType:    d.DataType,
		Payload:     string(payload),
		FetchedAt:   time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "fdc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "data_type", "payload", "fetched_at", "updated_at"}),
	}).Create(&rec).Error
}

// Count reports how many foods are archived.
func (s *FoodStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.FoodRecord{}).Count(&n).Error
	return n, err
}

// ArchivedSource wraps a NutritionSource and answers detail lookups from a
// FoodStore when it can. Archive errors never fail a lookup.
type ArchivedSource struct {
	inner NutritionSource
	store *FoodStore
}

func NewArchivedSource(inner NutritionSource, store *FoodStore) *ArchivedSource {
	return &ArchivedSource{inner: inner, store: store}
}

func (a *ArchivedSource) SearchFoods(ctx context.Context, req models.NutritionSearchRequest) (*models.NutritionSearchResult, error) {
	return a.inner.SearchFoods(ctx, req)
}

func (a *ArchivedSource) FoodDetails(ctx context.Context, fdcID int64) (*models.NutritionDetail, error) {
	if d, err := a.store.Get(ctx, fdcID); err != nil {
		log.Printf("[food] archive read %d: %v", fdcID, err)
	} else if d != nil {
		return d, nil
	}

	d, err := a.inner.FoodDetails(ctx, fdcID)
	if err != nil {
		return nil, err
	}
	if err := a.store.Put(ctx, d); err != nil {
		log.Printf("[food] archive write %d: %v", fdcID, err)
	}
	return d, nil
}

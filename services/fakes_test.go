package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/daveklee/calorieclimb.com/models"
)

var errTransport = errors.New("connection refused")

// fakeRemote is an in-memory NutritionSource that counts calls.
type fakeRemote struct {
	mu          sync.Mutex
	hits        []models.FoodSearchHit
	details     map[int64]*models.NutritionDetail
	searchErr   error
	detailErr   error
	searches    int
	detailCalls int
	lastSearch  models.NutritionSearchRequest
	// block, when set, holds SearchFoods until it is closed or ctx ends
	block chan struct{}
}

func (f *fakeRemote) SearchFoods(ctx context.Context, req models.NutritionSearchRequest) (*models.NutritionSearchResult, error) {
	f.mu.Lock()
	f.searches++
	f.lastSearch = req
	block, err := f.block, f.searchErr
	hits := append([]models.FoodSearchHit(nil), f.hits...)
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return &models.NutritionSearchResult{Foods: hits, TotalHits: len(hits)}, nil
}

func (f *fakeRemote) FoodDetails(ctx context.Context, fdcID int64) (*models.NutritionDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailCalls++
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	d, ok := f.details[fdcID]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *d
	return &cp, nil
}

func (f *fakeRemote) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searches
}

func (f *fakeRemote) setSearchErr(err error) {
	f.mu.Lock()
	f.searchErr = err
	f.mu.Unlock()
}

func detail(id int64, desc, dataType string, kcal float64) *models.NutritionDetail {
	return &models.NutritionDetail{
		FdcID:       id,
		Description: desc,
		DataType:    dataType,
		Nutrients: []models.Nutrient{
			{Name: "Energy", Amount: kcal, Unit: "kcal"},
			{Name: "Protein", Amount: 1.2, Unit: "g"},
		},
	}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestFoodService(remote NutritionSource, clock *fakeClock) *FoodService {
	cfg := DefaultFoodServiceConfig()
	cfg.Now = clock.Now
	return NewFoodService(NewDefaultFoodCatalog(), remote, nil, cfg)
}

type fakeNarrative struct {
	mu    sync.Mutex
	msg   string
	err   error
	calls []models.NarrativeRequest
	// hang makes Generate wait for ctx to end
	hang bool
}

func (f *fakeNarrative) Generate(ctx context.Context, req models.NarrativeRequest) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	msg, err, hang := f.msg, f.err, f.hang
	f.mu.Unlock()

	if hang {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return msg, err
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages map[string][]any
}

func (p *recordingPublisher) Broadcast(sessionID string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.messages == nil {
		p.messages = map[string][]any{}
	}
	p.messages[sessionID] = append(p.messages[sessionID], payload)
}

func (p *recordingPublisher) count(sessionID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages[sessionID])
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	"github.com/daveklee/calorieclimb.com/models"
	"github.com/daveklee/calorieclimb.com/utils"
)

const (
	// MaxSuggestions caps the merged suggestion list.
	MaxSuggestions = 8
	// maxRemoteSuggestions is how many remote candidates are considered.
	maxRemoteSuggestions = 6
	resolveCandidates    = 5
	// breakerThreshold consecutive remote failures open the breaker.
	breakerThreshold = 3

	DefaultRemoteCooldown = 500 * time.Millisecond
	DefaultBreakerRetry   = 5 * time.Minute
	DefaultSuggestionTTL  = 5 * time.Minute
	suggestionCacheSize   = 256
)

var (
	ErrRemoteUnavailable = errors.New("food database is not available")
	ErrFoodNotFound      = errors.New("food not found")
	ErrFoodRestricted    = errors.New("food is not allowed")
)

// ImageLabeler names the things in a photo.
type ImageLabeler interface {
	RecognizeLabels(ctx context.Context, base64Img string) ([]string, error)
}

type FoodServiceConfig struct {
	Mode models.SearchMode
	// Minimum time between two remote calls. Zero disables the cooldown.
	Cooldown time.Duration
	// How long an open breaker stays open. Zero keeps it open for good.
	BreakerRetry time.Duration
	// Lifetime of a cached suggestion list. Measured on the wall clock,
	// not Now.
	SuggestionTTL time.Duration
	Now           func() time.Time
}

// DefaultFoodServiceConfig returns the production settings.
func DefaultFoodServiceConfig() FoodServiceConfig {
	return FoodServiceConfig{
		Mode:          models.SearchModeGeneric,
		Cooldown:      DefaultRemoteCooldown,
		BreakerRetry:  DefaultBreakerRetry,
		SuggestionTTL: DefaultSuggestionTTL,
		Now:           time.Now,
	}
}

// FoodService turns what a player typed into a food. It prefers the remote
// nutrition database and falls back to the offline catalog whenever the
// remote path is unavailable, rate limited, failing or unhelpful.
type FoodService struct {
	catalog *FoodCatalog
	remote  NutritionSource
	labeler ImageLabeler

	cooldown     time.Duration
	breakerRetry time.Duration
	now          func() time.Time

	mu       sync.Mutex
	mode     models.SearchMode
	failures int
	openedAt time.Time
	lastCall time.Time

	cache *expirable.LRU[string, []*models.Food]
}

// NewFoodService wires a resolver. remote and labeler may be nil.
func NewFoodService(catalog *FoodCatalog, remote NutritionSource, labeler ImageLabeler, cfg FoodServiceConfig) *FoodService {
	if cfg.Mode == "" {
		cfg.Mode = models.SearchModeGeneric
	}
	if cfg.SuggestionTTL <= 0 {
		cfg.SuggestionTTL = DefaultSuggestionTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &FoodService{
		catalog:      catalog,
		remote:       remote,
		labeler:      labeler,
		cooldown:     cfg.Cooldown,
		breakerRetry: cfg.BreakerRetry,
		now:          cfg.Now,
		mode:         cfg.Mode,
		cache:        expirable.NewLRU[string, []*models.Food](suggestionCacheSize, nil, cfg.SuggestionTTL),
	}
}

func (s *FoodService) Catalog() *FoodCatalog { return s.catalog }

// Mode returns the current search mode.
func (s *FoodService) Mode() models.SearchMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode switches the search mode and drops cached suggestions.
func (s *FoodService) SetMode(mode models.SearchMode) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
	s.cache.Purge()
	log.Printf("[food] search mode set to %s", mode)
}

// Online reports whether the remote database is currently in use.
func (s *FoodService) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remoteEnabledLocked()
}

// ResolverStatus is a snapshot for health reporting.
type ResolverStatus struct {
	Mode     models.SearchMode `json:"mode"`
	Online   bool              `json:"online"`
	Failures int               `json:"failures"`
}

func (s *FoodService) Status() ResolverStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ResolverStatus{Mode: s.mode, Online: s.remoteEnabledLocked(), Failures: s.failures}
}

func (s *FoodService) remoteEnabledLocked() bool {
	if s.remote == nil || s.mode == models.SearchModeCatalog {
		return false
	}
	if s.failures < breakerThreshold {
		return true
	}
	return s.breakerRetry > 0 && s.now().Sub(s.openedAt) >= s.breakerRetry
}

// acquire reserves a remote call. It returns false when the remote path is
// disabled, the breaker is open or the cooldown has not elapsed.
func (s *FoodService) acquire() (models.SearchMode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.remoteEnabledLocked() {
		return s.mode, false
	}
	now := s.now()
	if !s.lastCall.IsZero() && now.Sub(s.lastCall) < s.cooldown {
		return s.mode, false
	}
	s.lastCall = now
	if s.failures >= breakerThreshold {
		// half-open: one failure reopens the breaker
		s.failures = breakerThreshold - 1
	}
	return s.mode, true
}

func (s *FoodService) recordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures++
	log.Printf("[food] remote failure %d/%d: %v", s.failures, breakerThreshold, err)
	if s.failures == breakerThreshold {
		s.openedAt = s.now()
		log.Printf("[food] breaker open, using offline catalog")
	}
}

func (s *FoodService) recordSuccess() {
	s.mu.Lock()
	s.failures = 0
	s.mu.Unlock()
}

// Resolve finds the food called name. A nil food with a nil error means
// nothing suitable was found. The error is only set when ctx ends.
func (s *FoodService) Resolve(ctx context.Context, name string) (*models.Food, error) {
	if utils.ContainsRestricted(name) {
		return nil, nil
	}
	offline := s.catalog.Lookup(name)

	mode, ok := s.acquire()
	if !ok {
		return offline, nil
	}

	food, err := s.resolveRemote(ctx, name, mode)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.recordFailure(err)
		return offline, nil
	}
	s.recordSuccess()

	if food == nil {
		return offline, nil
	}
	return food, nil
}

func (s *FoodService) resolveRemote(ctx context.Context, name string, mode models.SearchMode) (*models.Food, error) {
	res, err := s.search(ctx, name, resolveCandidates, 1, mode)
	if err != nil {
		return nil, err
	}
	best := BestMatch(name, res.Foods)
	if best == nil || utils.ContainsRestricted(best.Description) {
		return nil, nil
	}

	detail, err := s.remote.FoodDetails(ctx, best.FdcID)
	if err != nil {
		return nil, err
	}
	food := utils.DetailToFood(*detail, mode)
	if utils.IsRestrictedFood(food) || food.Calories <= 0 {
		return nil, nil
	}
	return food, nil
}

// search runs a remote search and applies the content filters for mode.
func (s *FoodService) search(ctx context.Context, query string, pageSize, page int, mode models.SearchMode) (*models.NutritionSearchResult, error) {
	res, err := s.remote.SearchFoods(ctx, models.NutritionSearchRequest{
		Query:      query,
		PageSize:   pageSize,
		PageNumber: page,
		DataType:   mode.DataTypes(),
		SortBy:     "dataType.keyword",
		SortOrder:  "asc",
	})
	if err != nil {
		return nil, err
	}
	foods := utils.FilterRestricted(res.Foods)
	if mode == models.SearchModeGeneric {
		foods = utils.FilterGenericFoods(foods, query)
	}
	return &models.NutritionSearchResult{Foods: foods, TotalHits: res.TotalHits}, nil
}

// BestMatch picks the hit that most plausibly names query: a hit whose first
// comma-separated part equals or starts with the query, then the closest
// partial match (Foundation records and shorter descriptions first), then
// simply the first hit.
func BestMatch(query string, hits []models.FoodSearchHit) *models.FoodSearchHit {
	if len(hits) == 0 {
		return nil
	}
	q := normalizeFoodName(query)

	for i := range hits {
		head := firstSegment(hits[i].Description)
		if head == q || strings.HasPrefix(head, q) {
			return &hits[i]
		}
	}

	var partial []*models.FoodSearchHit
	for i := range hits {
		head := firstSegment(hits[i].Description)
		if strings.Contains(head, q) || strings.Contains(q, head) {
			partial = append(partial, &hits[i])
		}
	}
	if len(partial) > 0 {
		sort.SliceStable(partial, func(i, j int) bool {
			af, bf := partial[i].DataType == models.DataTypeFoundation, partial[j].DataType == models.DataTypeFoundation
			if af != bf {
				return af
			}
			return len(partial[i].Description) < len(partial[j].Description)
		})
		return partial[0]
	}
	return &hits[0]
}

func firstSegment(description string) string {
	head, _, _ := strings.Cut(strings.ToLower(description), ",")
	return strings.TrimSpace(head)
}

// Suggestions lists foods matching prefix, catalog entries first, topped up
// from the remote database when possible.
func (s *FoodService) Suggestions(ctx context.Context, prefix string) ([]*models.Food, error) {
	q := normalizeFoodName(prefix)
	if len(q) < 2 || utils.ContainsRestricted(q) {
		return []*models.Food{}, nil
	}

	key := q + "_" + string(s.Mode())
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	offline := s.catalog.Suggest(q)
	if len(q) < 3 {
		return capFoods(offline, MaxSuggestions), nil
	}
	mode, ok := s.acquire()
	if !ok {
		return capFoods(offline, MaxSuggestions), nil
	}

	res, err := s.search(ctx, q, MaxSuggestions, 1, mode)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.recordFailure(err)
		return capFoods(offline, MaxSuggestions), nil
	}
	s.recordSuccess()

	var candidates []models.FoodSearchHit
	for _, h := range res.Foods[:min(len(res.Foods), maxRemoteSuggestions)] {
		if utils.ContainsRestricted(h.Description) || overlapsAny(firstSegment(h.Description), offline) {
			continue
		}
		candidates = append(candidates, h)
	}

	remote := s.fetchFoods(ctx, candidates, mode)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	final := capFoods(mergeSuggestions(offline, remote), MaxSuggestions)
	s.cache.Add(key, final)
	return final, nil
}

// fetchFoods loads details for hits concurrently, keeping hit order. Failed
// or unusable records are skipped.
func (s *FoodService) fetchFoods(ctx context.Context, hits []models.FoodSearchHit, mode models.SearchMode) []*models.Food {
	out := make([]*models.Food, len(hits))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	for i, h := range hits {
		i, h := i, h
		g.Go(func() error {
			d, err := s.remote.FoodDetails(gctx, h.FdcID)
			if err != nil {
				log.Printf("[food] detail %d: %v", h.FdcID, err)
				return nil
			}
			f := utils.DetailToFood(*d, mode)
			if utils.IsRestrictedFood(f) || f.Calories <= 0 {
				return nil
			}
			out[i] = f
			return nil
		})
	}
	_ = g.Wait()

	foods := out[:0]
	for _, f := range out {
		if f != nil {
			foods = append(foods, f)
		}
	}
	return foods
}

// mergeSuggestions appends remote foods whose names do not overlap a name
// already in the list.
func mergeSuggestions(offline, remote []*models.Food) []*models.Food {
	out := make([]*models.Food, 0, len(offline)+len(remote))
	out = append(out, offline...)
	for _, f := range remote {
		if overlapsAny(strings.ToLower(f.Name), out) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func overlapsAny(name string, foods []*models.Food) bool {
	if name == "" {
		return true
	}
	for _, f := range foods {
		n := strings.ToLower(f.Name)
		if strings.Contains(n, name) || strings.Contains(name, n) {
			return true
		}
	}
	return false
}

func capFoods(foods []*models.Food, n int) []*models.Food {
	if foods == nil {
		return []*models.Food{}
	}
	if len(foods) > n {
		return foods[:n]
	}
	return foods
}

// SearchPage is one page of the food database browser.
type SearchPage struct {
	Foods       []models.FoodSearchHit `json:"foods"`
	TotalHits   int                    `json:"total_hits"`
	CurrentPage int                    `json:"current_page"`
	TotalPages  int                    `json:"total_pages"`
}

// Search browses the remote database directly, bypassing cooldown and
// breaker. Restricted entries are always removed.
func (s *FoodService) Search(ctx context.Context, query string, page, pageSize int, mode models.SearchMode) (*SearchPage, error) {
	if s.remote == nil || mode == models.SearchModeCatalog {
		return nil, ErrRemoteUnavailable
	}
	if utils.ContainsRestricted(query) {
		return &SearchPage{Foods: []models.FoodSearchHit{}, CurrentPage: page}, nil
	}
	res, err := s.search(ctx, query, pageSize, page, mode)
	if err != nil {
		return nil, fmt.Errorf("food search failed: %w", err)
	}
	pages := 0
	if pageSize > 0 {
		pages = (res.TotalHits + pageSize - 1) / pageSize
	}
	return &SearchPage{Foods: res.Foods, TotalHits: res.TotalHits, CurrentPage: page, TotalPages: pages}, nil
}

// Details fetches and converts one remote food.
func (s *FoodService) Details(ctx context.Context, fdcID int64, mode models.SearchMode) (*models.Food, error) {
	if s.remote == nil {
		return nil, ErrRemoteUnavailable
	}
	d, err := s.remote.FoodDetails(ctx, fdcID)
	if err != nil {
		return nil, fmt.Errorf("food details failed: %w", err)
	}
	if d == nil || d.Description == "" {
		return nil, ErrFoodNotFound
	}
	if mode == models.SearchModeCatalog {
		mode = models.SearchModeGeneric
	}
	f := utils.DetailToFood(*d, mode)
	if utils.ContainsRestricted(d.Description) || utils.IsRestrictedFood(f) {
		return nil, ErrFoodRestricted
	}
	return f, nil
}

// Recognize guesses foods from a photo: each label the labeler finds is
// looked up in the catalog; if none match, the first label is resolved.
func (s *FoodService) Recognize(ctx context.Context, base64Img string) ([]*models.Food, error) {
	if s.labeler == nil {
		return nil, errors.New("image recognition is not configured")
	}
	labels, err := s.labeler.RecognizeLabels(ctx, base64Img)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("no labels detected")
	}

	var out []*models.Food
	seen := map[string]bool{}
	for _, l := range labels {
		f := s.catalog.Lookup(l)
		if f == nil || f.IsToxic || seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		out = append(out, f)
	}
	if len(out) > 0 {
		return out, nil
	}

	f, err := s.Resolve(ctx, labels[0])
	if err != nil {
		return nil, err
	}
	if f == nil {
		return []*models.Food{}, nil
	}
	return []*models.Food{f}, nil
}

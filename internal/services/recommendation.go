package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ivo225/fplhelper-sub000/internal/engine"
	"github.com/ivo225/fplhelper-sub000/internal/fpl"
	"github.com/ivo225/fplhelper-sub000/internal/models"
	"github.com/ivo225/fplhelper-sub000/pkg/config"
)

// Response statuses rendered by the route boundary.
const (
	StatusSuccess           = "success"
	StatusNoRecommendations = "no_recommendations"
	StatusSchemaIssue       = "schema_issue"
	StatusError             = "error"
)

// FPLDataSource is the upstream data boundary: candidates, fixtures, roster.
type FPLDataSource interface {
	GetBootstrap(ctx context.Context) (*fpl.Bootstrap, error)
	GetFixtures(ctx context.Context) ([]fpl.Fixture, error)
	GetManagerPicks(ctx context.Context, managerID, gameweek int) (*fpl.ManagerPicks, error)
	CurrentGameweek(ctx context.Context) (int, error)
}

// RecommendationStorage is the persisted recommendation boundary.
type RecommendationStorage interface {
	ListByGameweekKind(gameweek int, kind string) ([]models.Recommendation, error)
	ReplaceForGameweek(gameweek int, kind string, rows []models.Recommendation) error
}

// ResponseCache is the subset of the cache service the read paths use.
type ResponseCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	SetWithRetry(ctx context.Context, key string, value interface{}, expiration time.Duration, maxRetries int) error
	Delete(ctx context.Context, keys ...string) error
}

// TransferResponse is the response shape for the transfers route.
type TransferResponse struct {
	Gameweek            int                 `json:"gameweek"`
	BuyRecommendations  []engine.Suggestion `json:"buy_recommendations"`
	SellRecommendations []engine.Suggestion `json:"sell_recommendations"`
	UpdatedAt           string              `json:"updated_at"`
	IsPersonalized      bool                `json:"is_personalized"`
	Status              string              `json:"status"`
}

// RankedListResponse wraps captain and differential lists.
type RankedListResponse struct {
	Gameweek        int                 `json:"gameweek"`
	Kind            string              `json:"kind"`
	Recommendations []engine.Suggestion `json:"recommendations"`
	UpdatedAt       string              `json:"updated_at"`
	Status          string              `json:"status"`
}

// RecommendationService orchestrates the engine against the upstream API
// and the recommendation store. All scoring is delegated to engine; this
// service only fetches inputs and shapes responses.
type RecommendationService struct {
	fplClient FPLDataSource
	store     RecommendationStorage
	cache     ResponseCache
	config    *config.Config
	logger    *logrus.Logger
}

func NewRecommendationService(fplClient FPLDataSource, store RecommendationStorage, cache ResponseCache, cfg *config.Config, logger *logrus.Logger) *RecommendationService {
	return &RecommendationService{
		fplClient: fplClient,
		store:     store,
		cache:     cache,
		config:    cfg,
		logger:    logger,
	}
}

// GetTransferRecommendations reads the stored buy/sell lists for a gameweek,
// deduplicates them, and personalizes against the manager's roster when a
// manager id is supplied. An unknown manager downgrades to un-personalized
// mode; a schema mismatch downgrades to an empty schema_issue response.
// Upstream fetch failures propagate as errors.
func (s *RecommendationService) GetTransferRecommendations(ctx context.Context, gameweek, managerID int) (*TransferResponse, error) {
	gameweek, err := s.resolveGameweek(ctx, gameweek)
	if err != nil {
		return nil, err
	}

	// Un-personalized responses are identical across users; cache them.
	cacheKey := TransferResponseCacheKey(gameweek, 0)
	if managerID == 0 && s.cache != nil {
		var cached TransferResponse
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	buyRows, err := s.store.ListByGameweekKind(gameweek, engine.KindBuy)
	if err != nil {
		return s.storeErrorResponse(gameweek, err)
	}
	sellRows, err := s.store.ListByGameweekKind(gameweek, engine.KindSell)
	if err != nil {
		return s.storeErrorResponse(gameweek, err)
	}

	buy := engine.DedupeLatest(toSuggestions(buyRows))
	sell := engine.DedupeLatest(toSuggestions(sellRows))

	resp := &TransferResponse{
		Gameweek:            gameweek,
		BuyRecommendations:  []engine.Suggestion{},
		SellRecommendations: []engine.Suggestion{},
		UpdatedAt:           latestCreatedAt(buyRows, sellRows),
		Status:              StatusSuccess,
	}

	if len(buy) == 0 && len(sell) == 0 {
		resp.Status = StatusNoRecommendations
		return resp, nil
	}

	if managerID == 0 {
		resp.BuyRecommendations = engine.RankByConfidence(buy)
		resp.SellRecommendations = engine.RankByConfidence(sell)
		if s.cache != nil {
			s.cache.SetWithRetry(ctx, cacheKey, resp, 5*time.Minute, 3)
		}
		return resp, nil
	}

	roster, bootstrap, err := s.fetchRoster(ctx, managerID, gameweek)
	if err != nil {
		return nil, err
	}
	if roster == nil {
		// Unknown manager id: expected input state, not a failure.
		resp.BuyRecommendations = engine.RankByConfidence(buy)
		resp.SellRecommendations = engine.RankByConfidence(sell)
		return resp, nil
	}

	analysis := engine.AnalyzeRoster(roster)
	elements := make(map[int]fpl.Element, len(bootstrap.Elements))
	for _, e := range bootstrap.Elements {
		elements[e.ID] = e
	}

	personalized := engine.Personalize(buy, sell, analysis, roster, elements)
	resp.BuyRecommendations = engine.RankByCombinedScore(personalized.Buy)
	resp.SellRecommendations = engine.RankByConfidence(personalized.Sell)
	resp.IsPersonalized = true
	return resp, nil
}

// GetRankedList serves the captain and differential read paths, ordered by
// stored rank ascending.
func (s *RecommendationService) GetRankedList(ctx context.Context, kind string, gameweek int) (*RankedListResponse, error) {
	gameweek, err := s.resolveGameweek(ctx, gameweek)
	if err != nil {
		return nil, err
	}

	cacheKey := RankedListCacheKey(kind, gameweek)
	if s.cache != nil {
		var cached RankedListResponse
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	rows, err := s.store.ListByGameweekKind(gameweek, kind)
	if err != nil {
		if errors.Is(err, ErrSchemaMismatch) {
			return &RankedListResponse{
				Gameweek:        gameweek,
				Kind:            kind,
				Recommendations: []engine.Suggestion{},
				UpdatedAt:       time.Now().UTC().Format(time.RFC3339),
				Status:          StatusSchemaIssue,
			}, nil
		}
		return nil, err
	}

	suggestions := engine.RankByRank(engine.DedupeLatest(toSuggestions(rows)))

	resp := &RankedListResponse{
		Gameweek:        gameweek,
		Kind:            kind,
		Recommendations: suggestions,
		UpdatedAt:       latestCreatedAt(rows, nil),
		Status:          StatusSuccess,
	}
	if len(suggestions) == 0 {
		resp.Status = StatusNoRecommendations
		return resp, nil
	}
	if s.cache != nil {
		s.cache.SetWithRetry(ctx, cacheKey, resp, 5*time.Minute, 3)
	}
	return resp, nil
}

// GenerateForGameweek scores the live candidate pool and replaces the
// stored buy, sell, captain and differential lists for the gameweek. This
// is the producer side of the store, run by the refresher and the manual
// refresh endpoint.
func (s *RecommendationService) GenerateForGameweek(ctx context.Context, gameweek int) (int, error) {
	gameweek, err := s.resolveGameweek(ctx, gameweek)
	if err != nil {
		return 0, err
	}

	bootstrap, err := s.fplClient.GetBootstrap(ctx)
	if err != nil {
		return 0, err
	}
	fixtures, err := s.fplClient.GetFixtures(ctx)
	if err != nil {
		return 0, err
	}

	pool := topByTotalPoints(bootstrap.Elements, s.config.BuyCandidatePool)
	now := time.Now().UTC()

	buy := s.scoreBuyCandidates(pool, fixtures, gameweek, now)
	sell := s.scoreSellCandidates(pool, fixtures, gameweek, now)
	captain := buildRankedList(buy, engine.KindCaptain, s.config.CaptainPool)
	differential := s.buildDifferentials(buy, bootstrap, s.config.CaptainPool)

	total := 0
	for kind, suggestions := range map[string][]engine.Suggestion{
		engine.KindBuy:          buy,
		engine.KindSell:         sell,
		engine.KindCaptain:      captain,
		engine.KindDifferential: differential,
	} {
		rows := make([]models.Recommendation, 0, len(suggestions))
		for _, sg := range suggestions {
			rows = append(rows, models.FromSuggestion(gameweek, sg))
		}
		if err := s.store.ReplaceForGameweek(gameweek, kind, rows); err != nil {
			return total, err
		}
		total += len(rows)
	}

	// Fresh rows supersede anything served from the response caches.
	if s.cache != nil {
		if err := s.cache.Delete(ctx, TransferResponseCacheKey(gameweek, 0), RankedListCacheKey(engine.KindCaptain, gameweek), RankedListCacheKey(engine.KindDifferential, gameweek)); err != nil {
			s.logger.Warnf("Failed to invalidate response caches: %v", err)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"component": "recommendation_service",
		"gameweek":  gameweek,
		"rows":      total,
	}).Info("Generated recommendations")

	return total, nil
}

func (s *RecommendationService) scoreBuyCandidates(pool []fpl.Element, fixtures []fpl.Fixture, gameweek int, now time.Time) []engine.Suggestion {
	suggestions := make([]engine.Suggestion, 0, len(pool))
	for _, e := range pool {
		if e.Status != engine.StatusAvailable && e.Status != "" {
			continue
		}
		window := engine.BuildFixtureWindow(e.Team, fixtures, gameweek, s.config.FixtureHorizon)
		fixtureScore := engine.FixtureScore(window)
		position := engine.PositionOf(e.ElementType)
		bonus := engine.PositionBonus(position, window)
		combined := engine.ScoreCandidate(e, fixtureScore, bonus)

		suggestions = append(suggestions, engine.Suggestion{
			PlayerID:             e.ID,
			Name:                 e.WebName,
			Team:                 e.Team,
			Position:             position,
			Kind:                 engine.KindBuy,
			Price:                e.NowCost,
			Form:                 e.Form,
			Reason:               buyReason(e, window),
			Confidence:           confidenceFromScore(combined),
			FixtureScore:         fixtureScore,
			PositionFixtureBonus: bonus,
			CombinedScore:        combined,
			CreatedAt:            now,
		})
	}
	return engine.RankByCombinedScore(suggestions)
}

// scoreSellCandidates flags players whose availability or form argues for
// moving them on. Sell suggestions are not position-scored; they carry only
// the fixture score.
func (s *RecommendationService) scoreSellCandidates(pool []fpl.Element, fixtures []fpl.Fixture, gameweek int, now time.Time) []engine.Suggestion {
	suggestions := make([]engine.Suggestion, 0)
	for _, e := range pool {
		form := engine.ParseFloatOrZero(e.Form)
		flagged := e.Status != "" && e.Status != engine.StatusAvailable
		if !flagged && form >= 3 {
			continue
		}

		window := engine.BuildFixtureWindow(e.Team, fixtures, gameweek, s.config.FixtureHorizon)
		fixtureScore := engine.FixtureScore(window)

		reason := fmt.Sprintf("Poor recent form (%s)", e.Form)
		confidence := 0.5
		if flagged {
			reason = "Flagged as unavailable"
			confidence = 0.8
		}

		suggestions = append(suggestions, engine.Suggestion{
			PlayerID:     e.ID,
			Name:         e.WebName,
			Team:         e.Team,
			Position:     engine.PositionOf(e.ElementType),
			Kind:         engine.KindSell,
			Price:        e.NowCost,
			Form:         e.Form,
			Reason:       reason,
			Confidence:   confidence,
			FixtureScore: fixtureScore,
			CreatedAt:    now,
		})
		if len(suggestions) >= s.config.SellCandidatePool {
			break
		}
	}
	return engine.RankByConfidence(suggestions)
}

// buildRankedList derives a rank-ordered list (captain picks) from the
// scored buy list: rank ascending, predicted points from the blend.
func buildRankedList(buy []engine.Suggestion, kind string, limit int) []engine.Suggestion {
	out := make([]engine.Suggestion, 0, limit)
	for i, sg := range buy {
		if i >= limit {
			break
		}
		sg.Kind = kind
		sg.Rank = i + 1
		sg.PredictedPoints = sg.CombinedScore * 1.5
		out = append(out, sg)
	}
	return out
}

// buildDifferentials keeps low-ownership candidates from the scored buy
// list, preserving score order.
func (s *RecommendationService) buildDifferentials(buy []engine.Suggestion, bootstrap *fpl.Bootstrap, limit int) []engine.Suggestion {
	out := make([]engine.Suggestion, 0, limit)
	for _, sg := range buy {
		element := bootstrap.ElementByID(sg.PlayerID)
		if element == nil {
			continue
		}
		if engine.ParseFloatOrZero(element.SelectedByPercent) >= 10 {
			continue
		}
		sg.Kind = engine.KindDifferential
		sg.Rank = len(out) + 1
		sg.PredictedPoints = sg.CombinedScore * 1.5
		out = append(out, sg)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func (s *RecommendationService) resolveGameweek(ctx context.Context, gameweek int) (int, error) {
	if gameweek > 0 {
		return gameweek, nil
	}
	gw, err := s.fplClient.CurrentGameweek(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve current gameweek: %w", err)
	}
	return gw, nil
}

// fetchRoster loads a manager's squad joined to bootstrap player snapshots.
// An unknown manager returns (nil, bootstrap, nil).
func (s *RecommendationService) fetchRoster(ctx context.Context, managerID, gameweek int) (*engine.Roster, *fpl.Bootstrap, error) {
	bootstrap, err := s.fplClient.GetBootstrap(ctx)
	if err != nil {
		return nil, nil, err
	}

	picks, err := s.fplClient.GetManagerPicks(ctx, managerID, gameweek)
	if err != nil {
		if errors.Is(err, fpl.ErrRosterNotFound) {
			s.logger.WithField("manager_id", managerID).Debug("Roster not found, serving un-personalized")
			return nil, bootstrap, nil
		}
		return nil, nil, err
	}

	roster := &engine.Roster{
		Gameweek:   gameweek,
		TotalValue: picks.EntryHistory.Value,
	}
	for _, pick := range picks.Picks {
		element := bootstrap.ElementByID(pick.Element)
		if element == nil {
			continue
		}
		roster.Slots = append(roster.Slots, engine.RosterSlot{
			Player:        *element,
			IsCaptain:     pick.IsCaptain,
			IsViceCaptain: pick.IsViceCaptain,
		})
	}
	return roster, bootstrap, nil
}

func (s *RecommendationService) storeErrorResponse(gameweek int, err error) (*TransferResponse, error) {
	if errors.Is(err, ErrSchemaMismatch) {
		s.logger.Warn("Recommendation store schema mismatch, returning schema_issue")
		return &TransferResponse{
			Gameweek:            gameweek,
			BuyRecommendations:  []engine.Suggestion{},
			SellRecommendations: []engine.Suggestion{},
			UpdatedAt:           time.Now().UTC().Format(time.RFC3339),
			Status:              StatusSchemaIssue,
		}, nil
	}
	return nil, err
}

func toSuggestions(rows []models.Recommendation) []engine.Suggestion {
	out := make([]engine.Suggestion, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToSuggestion())
	}
	return out
}

func latestCreatedAt(a, b []models.Recommendation) string {
	var latest time.Time
	for _, r := range a {
		if r.CreatedAt.After(latest) {
			latest = r.CreatedAt
		}
	}
	for _, r := range b {
		if r.CreatedAt.After(latest) {
			latest = r.CreatedAt
		}
	}
	if latest.IsZero() {
		latest = time.Now().UTC()
	}
	return latest.UTC().Format(time.RFC3339)
}

// topByTotalPoints returns the n highest scoring players of the season,
// matching the upstream's pre-sorted top-N slice.
func topByTotalPoints(elements []fpl.Element, n int) []fpl.Element {
	sorted := make([]fpl.Element, len(elements))
	copy(sorted, elements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalPoints > sorted[j].TotalPoints
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// confidenceFromScore squashes a combined score onto the canonical 0-1
// confidence scale. Combined scores land roughly in [0,6] in practice.
func confidenceFromScore(score float64) float64 {
	c := score / 6
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

func buyReason(e fpl.Element, window []engine.FixtureEntry) string {
	if len(window) == 0 {
		return fmt.Sprintf("Form %s with no resolved fixtures in the horizon", e.Form)
	}
	return fmt.Sprintf("Form %s with %d upcoming fixtures", e.Form, len(window))
}

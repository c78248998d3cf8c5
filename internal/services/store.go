package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ivo225/fplhelper-sub000/internal/models"
	"github.com/ivo225/fplhelper-sub000/pkg/database"
)

// ErrSchemaMismatch marks a recommendations table still on the legacy
// element_id column. Handlers map it to a "schema_issue" status instead of
// failing the request; cmd/migrate owns the rename.
var ErrSchemaMismatch = errors.New("recommendations table schema mismatch, run migrations")

// RecommendationStore reads and writes persisted recommendation rows keyed
// by (gameweek, kind).
type RecommendationStore struct {
	db     *database.DB
	logger *logrus.Logger
}

func NewRecommendationStore(db *database.DB, logger *logrus.Logger) *RecommendationStore {
	return &RecommendationStore{
		db:     db,
		logger: logger,
	}
}

// CheckSchema verifies the canonical player_id column exists. Called once
// at startup so requests never pay for column probing.
func (s *RecommendationStore) CheckSchema() error {
	migrator := s.db.Migrator()
	if !migrator.HasTable(&models.Recommendation{}) {
		return nil // fresh install, AutoMigrate will create it
	}
	if !migrator.HasColumn(&models.Recommendation{}, "player_id") {
		return ErrSchemaMismatch
	}
	return nil
}

// ListByGameweekKind returns all rows for a gameweek and kind, newest first.
func (s *RecommendationStore) ListByGameweekKind(gameweek int, kind string) ([]models.Recommendation, error) {
	if err := s.CheckSchema(); err != nil {
		return nil, err
	}

	var rows []models.Recommendation
	err := s.db.Where("gameweek = ? AND kind = ?", gameweek, kind).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s recommendations for gameweek %d: %w", kind, gameweek, err)
	}
	return rows, nil
}

// ReplaceForGameweek swaps the stored rows for (gameweek, kind) with a new
// batch inside one transaction.
func (s *RecommendationStore) ReplaceForGameweek(gameweek int, kind string, rows []models.Recommendation) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	if err := tx.Where("gameweek = ? AND kind = ?", gameweek, kind).
		Delete(&models.Recommendation{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear %s recommendations: %w", kind, err)
	}

	if len(rows) > 0 {
		if err := tx.Create(&rows).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert %s recommendations: %w", kind, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit recommendations: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"component": "recommendation_store",
		"gameweek":  gameweek,
		"kind":      kind,
		"count":     len(rows),
	}).Info("Replaced stored recommendations")

	return nil
}

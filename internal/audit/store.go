// Package audit persists a log of served predictions to PostgreSQL. It is
// optional: when no database is configured the service simply does not
// record, and an insert failure never fails the prediction itself.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"greenverify/internal/common/logger"
	"greenverify/internal/models"
)

const insertPredictionSQL = `
INSERT INTO predictions (session_id, rating, confidence, inputs, created_at)
VALUES ($1, $2, $3, $4, $5)`

// Store writes prediction records to the predictions table.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "audit"}),
	}
}

// RecordPrediction inserts one served prediction.
func (s *Store) RecordPrediction(ctx context.Context, rec *models.SessionRecord) error {
	inputs, err := json.Marshal(rec.Inputs)
	if err != nil {
		return fmt.Errorf("marshal inputs: %w", err)
	}

	_, err = s.db.ExecContext(ctx, insertPredictionSQL,
		rec.ID, rec.Rating, rec.Confidence, inputs, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}

	s.logger.Debug("prediction recorded", map[string]interface{}{
		"sessionId": rec.ID,
		"rating":    rec.Rating,
	})
	return nil
}

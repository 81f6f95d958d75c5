package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"greenverify/internal/common/logger"
	"greenverify/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord() *models.SessionRecord {
	return &models.SessionRecord{
		ID:         "3f1a9d52-9a65-4c27-8f6e-0d6a7b9f2a11",
		Rating:     3,
		Confidence: 0.62,
		Inputs: map[string]interface{}{
			"Building_Type":     "Commercial",
			"Energy_Efficiency": 55.0,
		},
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_RecordPrediction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := testRecord()
	mock.ExpectExec("INSERT INTO predictions").
		WithArgs(rec.ID, rec.Rating, rec.Confidence, sqlmock.AnyArg(), rec.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	store := NewStore(db, logger.Nop())
	err = store.RecordPrediction(context.Background(), rec)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_RecordPrediction_InsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO predictions").
		WillReturnError(errors.New("connection reset"))

	store := NewStore(db, logger.Nop())
	err = store.RecordPrediction(context.Background(), testRecord())
	assert.Error(t, err)
}

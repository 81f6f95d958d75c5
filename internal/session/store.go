// Package session keeps a short-lived correlation between a served
// prediction and later narrative calls. Records expire after a configured
// TTL; keys are random UUIDs so identical inputs never collide.
package session

import (
	"context"
	"errors"

	"greenverify/internal/models"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// Store is the prediction session store. Records are written once on a
// successful prediction and only ever read afterwards.
type Store interface {
	// Put stores the record under a fresh key and returns that key.
	Put(ctx context.Context, rec *models.SessionRecord) (string, error)
	// Get returns the record for id, or ErrNotFound.
	Get(ctx context.Context, id string) (*models.SessionRecord, error)
	// Close releases backend resources.
	Close() error
}

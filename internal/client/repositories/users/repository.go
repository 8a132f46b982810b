// Package users persists the user collection as one JSON document in the
// key/value store. Every save rewrites the whole collection.
package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/callsecure/internal/client/models"
	"github.com/dmitrijs2005/callsecure/internal/client/repositories/kv"
	"github.com/dmitrijs2005/callsecure/internal/common"
)

// ErrMalformedCollection is returned by Load when the stored value is not a
// JSON array of user records.
var ErrMalformedCollection = errors.New("malformed user collection")

// Repository loads and saves the ordered user collection.
type Repository interface {
	Load(ctx context.Context) ([]models.UserRecord, error)
	Save(ctx context.Context, users []models.UserRecord) error
}

type KVRepository struct {
	kv kv.Repository
}

func NewKVRepository(store kv.Repository) *KVRepository {
	return &KVRepository{kv: store}
}

// Load returns the stored collection in insertion order. A missing key
// yields an empty, non-nil slice.
func (r *KVRepository) Load(ctx context.Context) ([]models.UserRecord, error) {
	raw, err := r.kv.Get(ctx, common.UsersKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []models.UserRecord{}, nil
	}

	var users []models.UserRecord
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCollection, err)
	}
	if users == nil {
		users = []models.UserRecord{}
	}
	return users, nil
}

// Save replaces the stored collection with users.
func (r *KVRepository) Save(ctx context.Context, users []models.UserRecord) error {
	if users == nil {
		users = []models.UserRecord{}
	}
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	return r.kv.Set(ctx, common.UsersKey, raw)
}

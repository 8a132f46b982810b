// Package session persists the remembered-login snapshot: a copy of the
// user record saved when the user opts in to "remember me".
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/callsecure/internal/client/models"
	"github.com/dmitrijs2005/callsecure/internal/client/repositories/kv"
	"github.com/dmitrijs2005/callsecure/internal/common"
)

// ErrMalformedSession is returned by Get when a snapshot is present but is
// not a JSON user record.
var ErrMalformedSession = errors.New("malformed remembered session")

// Repository stores at most one remembered user.
type Repository interface {
	Exists(ctx context.Context) (bool, error)
	Get(ctx context.Context) (*models.UserRecord, error)
	Set(ctx context.Context, user models.UserRecord) error
	Delete(ctx context.Context) error
}

type KVRepository struct {
	kv kv.Repository
}

func NewKVRepository(store kv.Repository) *KVRepository {
	return &KVRepository{kv: store}
}

// Exists reports whether a snapshot is stored, whatever its content.
func (r *KVRepository) Exists(ctx context.Context) (bool, error) {
	raw, err := r.kv.Get(ctx, common.RememberedUserKey)
	if err != nil {
		return false, err
	}
	return raw != nil, nil
}

// Get returns the remembered user, or nil when none is stored.
func (r *KVRepository) Get(ctx context.Context) (*models.UserRecord, error) {
	raw, err := r.kv.Get(ctx, common.RememberedUserKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var user *models.UserRecord
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	if user == nil {
		return nil, ErrMalformedSession
	}
	return user, nil
}

func (r *KVRepository) Set(ctx context.Context, user models.UserRecord) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return r.kv.Set(ctx, common.RememberedUserKey, raw)
}

func (r *KVRepository) Delete(ctx context.Context) error {
	return r.kv.Delete(ctx, common.RememberedUserKey)
}

// Package accounts maps the session records (token, credential list and
// profiles) onto key/value storage.
package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hitenchhabria09/film-folio-pro/internal/client/models"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/repositories/kv"
	"github.com/hitenchhabria09/film-folio-pro/internal/common"
)

// Repository reads and writes account records through a kv.Repository.
// Bind it to a transaction repository to group writes.
type Repository struct {
	kv kv.Repository
}

func New(repo kv.Repository) *Repository {
	return &Repository{kv: repo}
}

// Token returns the stored session token, or "" when none is stored.
func (r *Repository) Token(ctx context.Context) (string, error) {
	v, err := r.kv.Get(ctx, common.TokenKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (r *Repository) SaveToken(ctx context.Context, token string) error {
	return r.kv.Set(ctx, common.TokenKey, []byte(token))
}

func (r *Repository) DeleteToken(ctx context.Context) error {
	return r.kv.Delete(ctx, common.TokenKey)
}

// Credentials returns the stored credential list; absent means empty.
func (r *Repository) Credentials(ctx context.Context) (models.Credentials, error) {
	v, err := r.kv.Get(ctx, common.CredentialsKey)
	if err != nil {
		return nil, err
	}
	return models.DecodeCredentials(v)
}

func (r *Repository) SaveCredentials(ctx context.Context, list models.Credentials) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	return r.kv.Set(ctx, common.CredentialsKey, data)
}

// Profile loads the profile with the given id. It returns
// common.ErrorNotFound when the key is absent and models.ErrInvalidRecord
// when the stored value fails validation.
func (r *Repository) Profile(ctx context.Context, id string) (models.Profile, error) {
	v, err := r.kv.Get(ctx, common.ProfileKey(id))
	if err != nil {
		return models.Profile{}, err
	}
	if v == nil {
		return models.Profile{}, common.ErrorNotFound
	}
	p, err := models.DecodeProfile(v)
	if err != nil {
		return models.Profile{}, err
	}
	if p.ID != id {
		return models.Profile{}, fmt.Errorf("%w: profile id %q stored under %q", models.ErrInvalidRecord, p.ID, id)
	}
	return p, nil
}

func (r *Repository) SaveProfile(ctx context.Context, p models.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return r.kv.Set(ctx, common.ProfileKey(p.ID), data)
}

// IsUnusable reports whether err means the stored record should be treated
// as absent rather than as a storage failure.
func IsUnusable(err error) bool {
	return errors.Is(err, common.ErrorNotFound) || errors.Is(err, models.ErrInvalidRecord)
}

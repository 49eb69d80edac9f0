package services

import (
	"context"
	"testing"

	"github.com/hitenchhabria09/film-folio-pro/internal/client/repositories/kv"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/token"
	"github.com/hitenchhabria09/film-folio-pro/internal/common"
	"github.com/hitenchhabria09/film-folio-pro/internal/logging"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *kv.SQLStore {
	t.Helper()
	s, err := kv.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newCodec() *token.Codec {
	return token.NewCodec(common.DefaultTokenSecret)
}

func newSession(t *testing.T, store kv.Store, opts SessionOptions) SessionService {
	t.Helper()
	return NewSessionService(store, newCodec(), opts, logging.NewNop())
}

// faultyStore wraps a Store and fails the operations whose error is set.
// The errors also apply to the repository handed to WithinTx.
type faultyStore struct {
	kv.Store

	GetErr    error
	SetErr    error
	DeleteErr error
	// SetErrKey limits SetErr to one key when non-empty.
	SetErrKey string

	LastSetKey string
	SetCalls   int
}

func (f *faultyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	return f.Store.Get(ctx, key)
}

func (f *faultyStore) Set(ctx context.Context, key string, value []byte) error {
	if err := f.setErr(key); err != nil {
		return err
	}
	return f.Store.Set(ctx, key, value)
}

func (f *faultyStore) setErr(key string) error {
	f.LastSetKey = key
	f.SetCalls++
	if f.SetErr != nil && (f.SetErrKey == "" || f.SetErrKey == key) {
		return f.SetErr
	}
	return nil
}

func (f *faultyStore) Delete(ctx context.Context, key string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	return f.Store.Delete(ctx, key)
}

func (f *faultyStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repo kv.Repository) error) error {
	return f.Store.WithinTx(ctx, func(ctx context.Context, repo kv.Repository) error {
		return fn(ctx, &faultyRepo{Repository: repo, f: f})
	})
}

type faultyRepo struct {
	kv.Repository
	f *faultyStore
}

func (r *faultyRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if r.f.GetErr != nil {
		return nil, r.f.GetErr
	}
	return r.Repository.Get(ctx, key)
}

func (r *faultyRepo) Set(ctx context.Context, key string, value []byte) error {
	if err := r.f.setErr(key); err != nil {
		return err
	}
	return r.Repository.Set(ctx, key, value)
}

// Package services contains the application services of the film-folio
// client. This file defines the session service: registration, login,
// logout, session restore and the favorites list of the current user.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/models"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/repositories/accounts"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/repositories/kv"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/token"
	"github.com/hitenchhabria09/film-folio-pro/internal/common"
	"github.com/hitenchhabria09/film-folio-pro/internal/logging"
)

// SessionService owns the current user of one client instance.
//
// Contract:
//   - Restore: recover the session from the stored token; never fails.
//   - Register: create an account and log it in; ErrAlreadyExists or ErrFailure.
//   - Login: check credentials and log in; ErrInvalidCredentials.
//   - Logout: forget the token and the current user.
//   - AddFavorite / RemoveFavorite: edit the current user's favorites; no-op when anonymous.
//   - Subscribe: observe changes of the current user.
//
// Two SessionService instances over one store do not coordinate; the last
// favorites write wins.
type SessionService interface {
	Restore(ctx context.Context)
	Register(ctx context.Context, email, password, name string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	AddFavorite(ctx context.Context, movieID string) error
	RemoveFavorite(ctx context.Context, movieID string) error
	IsFavorite(movieID string) bool
	Current() (models.Profile, bool)
	Subscribe(fn func(p models.Profile, ok bool)) (unsubscribe func())
}

// SessionOptions tunes a SessionService.
type SessionOptions struct {
	// TTL is the lifetime of minted tokens, e.g. "7d".
	TTL string
	// DedupeFavorites makes AddFavorite ignore ids already in the list.
	DedupeFavorites bool
	// NewID generates profile ids; UUIDv7 when nil.
	NewID func() (string, error)
}

type sessionService struct {
	store  kv.Store
	codec  *token.Codec
	opts   SessionOptions
	logger logging.Logger

	// writeMu serializes read-modify-write of the current profile.
	writeMu sync.Mutex

	mu      sync.RWMutex
	current *models.Profile
	subs    map[int]func(models.Profile, bool)
	nextSub int
}

// NewSessionService constructs a SessionService over store. The session
// starts anonymous; call Restore to pick up a stored token.
func NewSessionService(store kv.Store, codec *token.Codec, opts SessionOptions, l logging.Logger) SessionService {
	if opts.TTL == "" {
		opts.TTL = common.DefaultSessionTTL
	}
	if opts.NewID == nil {
		opts.NewID = newProfileID
	}
	return &sessionService{
		store:  store,
		codec:  codec,
		opts:   opts,
		logger: l.With("module", "session"),
		subs:   make(map[int]func(models.Profile, bool)),
	}
}

func newProfileID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *sessionService) accounts() *accounts.Repository {
	return accounts.New(s.store)
}

// Restore reads the stored token and, if it verifies and points at a valid
// profile, makes that profile current. Unusable tokens are deleted.
func (s *sessionService) Restore(ctx context.Context) {
	acc := s.accounts()

	tok, err := acc.Token(ctx)
	if err != nil {
		s.logger.Error(ctx, "restore: read token", "error", err)
		s.setCurrent(nil)
		return
	}
	if tok == "" {
		s.setCurrent(nil)
		return
	}

	payload, err := s.codec.Verify(tok)
	if err != nil {
		s.logger.Info(ctx, "restore: discarding stored token", "reason", err)
		s.discardToken(ctx, acc)
		s.setCurrent(nil)
		return
	}

	p, err := acc.Profile(ctx, payload.SubjectID)
	if err != nil {
		if accounts.IsUnusable(err) {
			s.logger.Warn(ctx, "restore: profile unusable", "user_id", payload.SubjectID, "reason", err)
			s.discardToken(ctx, acc)
		} else {
			s.logger.Error(ctx, "restore: read profile", "user_id", payload.SubjectID, "error", err)
		}
		s.setCurrent(nil)
		return
	}

	s.logger.Info(ctx, "session restored", "user_id", p.ID)
	s.setCurrent(&p)
}

func (s *sessionService) discardToken(ctx context.Context, acc *accounts.Repository) {
	if err := acc.DeleteToken(ctx); err != nil {
		s.logger.Error(ctx, "delete token", "error", err)
	}
}

// Register creates the credential record, the profile and a fresh token in
// one store transaction, then makes the new profile current.
func (s *sessionService) Register(ctx context.Context, email, password, name string) error {
	id, err := s.opts.NewID()
	if err != nil {
		s.logger.Error(ctx, "register: generate id", "error", err)
		return common.ErrFailure
	}
	p := models.Profile{ID: id, Email: email, Name: name, Favorites: []string{}}

	tok, err := s.codec.Mint(id, s.opts.TTL)
	if err != nil {
		s.logger.Error(ctx, "register: mint token", "error", err)
		return common.ErrFailure
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, repo kv.Repository) error {
		acc := accounts.New(repo)

		list, err := acc.Credentials(ctx)
		if err != nil {
			return err
		}
		if _, taken := list.FindByEmail(email); taken {
			return common.ErrAlreadyExists
		}

		list = append(list, models.Credential{ID: id, Email: email, Password: password})
		if err := acc.SaveCredentials(ctx, list); err != nil {
			return err
		}
		if err := acc.SaveProfile(ctx, p); err != nil {
			return err
		}
		return acc.SaveToken(ctx, tok)
	})
	if errors.Is(err, common.ErrAlreadyExists) {
		return common.ErrAlreadyExists
	}
	if err != nil {
		s.logger.Error(ctx, "register failed", "error", err)
		return fmt.Errorf("%w: %v", common.ErrFailure, err)
	}

	s.logger.Info(ctx, "registered", "user_id", id)
	s.setCurrent(&p)
	return nil
}

// Login looks up the exact (email, password) pair, mints a new token and
// makes the matching profile current.
func (s *sessionService) Login(ctx context.Context, email, password string) error {
	acc := s.accounts()

	list, err := acc.Credentials(ctx)
	if err != nil {
		s.logger.Error(ctx, "login: read credentials", "error", err)
		return common.ErrInvalidCredentials
	}
	cred, ok := list.Match(email, password)
	if !ok {
		return common.ErrInvalidCredentials
	}

	p, err := acc.Profile(ctx, cred.ID)
	if err != nil {
		s.logger.Error(ctx, "login: read profile", "user_id", cred.ID, "error", err)
		return common.ErrInvalidCredentials
	}

	tok, err := s.codec.Mint(p.ID, s.opts.TTL)
	if err != nil {
		s.logger.Error(ctx, "login: mint token", "error", err)
		return common.ErrInvalidCredentials
	}
	if err := acc.SaveToken(ctx, tok); err != nil {
		s.logger.Error(ctx, "login: save token", "error", err)
		return common.ErrInvalidCredentials
	}

	s.logger.Info(ctx, "logged in", "user_id", p.ID)
	s.setCurrent(&p)
	return nil
}

// Logout deletes the stored token and clears the current user. The user is
// cleared even when the delete fails.
func (s *sessionService) Logout(ctx context.Context) error {
	err := s.accounts().DeleteToken(ctx)
	if err != nil {
		s.logger.Error(ctx, "logout: delete token", "error", err)
	}

	if p, ok := s.Current(); ok {
		s.logger.Info(ctx, "logged out", "user_id", p.ID)
	}
	s.setCurrent(nil)

	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (s *sessionService) AddFavorite(ctx context.Context, movieID string) error {
	return s.updateFavorites(ctx, func(p models.Profile) models.Profile {
		return p.WithFavorite(movieID, s.opts.DedupeFavorites)
	})
}

func (s *sessionService) RemoveFavorite(ctx context.Context, movieID string) error {
	return s.updateFavorites(ctx, func(p models.Profile) models.Profile {
		return p.WithoutFavorite(movieID)
	})
}

// updateFavorites persists edit(current) and only then publishes it.
func (s *sessionService) updateFavorites(ctx context.Context, edit func(models.Profile) models.Profile) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur, ok := s.Current()
	if !ok {
		return nil
	}
	next := edit(cur)

	if err := s.accounts().SaveProfile(ctx, next); err != nil {
		s.logger.Error(ctx, "save favorites", "user_id", next.ID, "error", err)
		return fmt.Errorf("save favorites: %w", err)
	}
	s.setCurrent(&next)
	return nil
}

func (s *sessionService) IsFavorite(movieID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.HasFavorite(movieID)
}

// Current returns a copy of the current profile.
func (s *sessionService) Current() (models.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Profile{}, false
	}
	return s.current.Clone(), true
}

// Subscribe registers fn to be called synchronously after every change of
// the current user.
func (s *sessionService) Subscribe(fn func(p models.Profile, ok bool)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *sessionService) setCurrent(p *models.Profile) {
	s.mu.Lock()
	if p != nil {
		c := p.Clone()
		p = &c
	}
	s.current = p
	subs := make([]func(models.Profile, bool), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		if p == nil {
			fn(models.Profile{}, false)
			continue
		}
		fn(p.Clone(), true)
	}
}

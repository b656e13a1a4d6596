// Package terms fronts the terms resource group with a TTL cache. The
// latest revision and per-user acceptance status change slowly, so reads
// within the window never hit the network.
package terms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/munidigital/portalctl/internal/api"
	"github.com/munidigital/portalctl/internal/cache"
	"github.com/munidigital/portalctl/internal/models"
)

const (
	latestTermsKey = "latestTerms"

	latestTermsTTL = time.Hour
	userStatusTTL  = 5 * time.Minute
)

func userStatusKey(userID int64) string {
	return fmt.Sprintf("userTermsStatus_%d", userID)
}

// API is the slice of the terms client the service needs.
type API interface {
	GetLatest(ctx context.Context) (models.Term, error)
	UserStatus(ctx context.Context, userID int64) (bool, error)
	RecordInteraction(ctx context.Context, userID int64, accepted bool) (bool, error)
}

// Invalidator ends the session when the backend rejects the token.
// Satisfied by *session.Manager.
type Invalidator interface {
	Logout() error
}

// Service is the cached read path for terms lookups.
type Service struct {
	api      API
	cache    *cache.TTL
	sessions Invalidator
}

func New(api API, cache *cache.TTL, sessions Invalidator) *Service {
	return &Service{api: api, cache: cache, sessions: sessions}
}

// Latest returns the terms revision currently in force, cached for an hour.
func (s *Service) Latest(ctx context.Context) (models.Term, error) {
	var term models.Term
	if hit, err := s.cache.Get(latestTermsKey, &term); err == nil && hit {
		return term, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("ignoring unreadable cached terms")
	}

	term, err := s.api.GetLatest(ctx)
	if err != nil {
		return models.Term{}, s.surface(err)
	}

	if err := s.cache.Set(latestTermsKey, term, latestTermsTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache latest terms")
	}

	return term, nil
}

// UserStatus reports whether the user accepted the current terms, cached
// for five minutes.
func (s *Service) UserStatus(ctx context.Context, userID int64) (bool, error) {
	key := userStatusKey(userID)

	var accepted bool
	if hit, err := s.cache.Get(key, &accepted); err == nil && hit {
		return accepted, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("ignoring unreadable cached terms status")
	}

	accepted, err := s.api.UserStatus(ctx, userID)
	if err != nil {
		return false, s.surface(err)
	}

	if err := s.cache.Set(key, accepted, userStatusTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache terms status")
	}

	return accepted, nil
}

// RecordInteraction stores an accept/decline decision and writes the new
// status through to the cache with a fresh TTL, so the next status read
// does not refetch what we just learned.
func (s *Service) RecordInteraction(ctx context.Context, userID int64, accepted bool) error {
	if _, err := s.api.RecordInteraction(ctx, userID, accepted); err != nil {
		return s.surface(err)
	}

	if err := s.cache.Set(userStatusKey(userID), accepted, userStatusTTL); err != nil {
		log.Warn().Err(err).Msg("failed to write terms status through to cache")
	}

	return nil
}

// surface handles the session-invalidation signal: an expired session
// forces a logout before the error propagates. Everything else passes
// through untouched.
func (s *Service) surface(err error) error {
	if errors.Is(err, api.ErrSessionExpired) {
		if logoutErr := s.sessions.Logout(); logoutErr != nil {
			log.Warn().Err(logoutErr).Msg("failed to clear expired session")
		}
	}
	return err
}

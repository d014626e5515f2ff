// Package profile exposes persistent player progress to combat.
package profile

import (
	"context"
	"log"

	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
	"github.com/KirkDiggler/duat-combat/internal/repositories/profiles"
)

// Service reads and updates player profiles
type Service interface {
	// Load returns the stored profile, or an empty one when nothing was
	// recorded yet
	Load(ctx context.Context, id string) (*profiles.Profile, error)

	// Ledger binds the combat profile collaborator to one player
	Ledger(id string) *Ledger

	// Reward credits a won combat
	Reward(ctx context.Context, id string, gold int, cardIDs ...string) error
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository profiles.Repository
}

type service struct {
	repository profiles.Repository
}

// NewService creates a new profile service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Repository == nil {
		panic("repository is required")
	}
	return &service{repository: cfg.Repository}
}

func (s *service) Load(ctx context.Context, id string) (*profiles.Profile, error) {
	p, err := s.repository.Get(ctx, id)
	if err != nil {
		if duaterr.IsNotFound(err) {
			return &profiles.Profile{ID: id}, nil
		}
		return nil, duaterr.Wrapf(err, "failed to load profile %s", id)
	}
	return p, nil
}

func (s *service) Ledger(id string) *Ledger {
	return &Ledger{id: id, repository: s.repository}
}

func (s *service) Reward(ctx context.Context, id string, gold int, cardIDs ...string) error {
	if gold < 0 {
		return duaterr.InvalidArgumentf("reward gold must not be negative, got %d", gold)
	}
	if gold > 0 {
		if _, err := s.repository.AddGold(ctx, id, gold); err != nil {
			return duaterr.Wrap(err, "failed to credit gold")
		}
	}
	if err := s.repository.AddOwnedCards(ctx, id, cardIDs...); err != nil {
		return duaterr.Wrap(err, "failed to credit cards")
	}
	return nil
}

// Ledger writes combat progress through to the profile store as effects
// resolve, so an aborted combat keeps what was already earned or lost.
type Ledger struct {
	id         string
	repository profiles.Repository
}

func (l *Ledger) ID() string {
	return l.id
}

func (l *Ledger) ApplyPermanentSandIncrease(ctx context.Context, amount int) error {
	total, err := l.repository.AddBonusMaxSand(ctx, l.id, amount)
	if err != nil {
		return duaterr.Wrapf(err, "profile %s", l.id)
	}
	log.Printf("[PROFILE] %s max sand bonus now %d", l.id, total)
	return nil
}

// ApplyGoldDelta returns the new balance, never below zero
func (l *Ledger) ApplyGoldDelta(ctx context.Context, amount int) (int, error) {
	gold, err := l.repository.AddGold(ctx, l.id, amount)
	if err != nil {
		return 0, duaterr.Wrapf(err, "profile %s", l.id)
	}
	return gold, nil
}

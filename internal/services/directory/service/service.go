// Package service contains directory workflows
package service

import (
	"context"
	"strings"

	"taskpulse/internal/modkit/repokit"
	perr "taskpulse/internal/platform/errors"
	"taskpulse/internal/services/directory/domain"
	"taskpulse/internal/services/directory/repo"
)

// Service is the public service port
type Service interface{ domain.QueryPort }

// Svc implements the service port
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage]) *Svc {
	if db == nil {
		panic("directory.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("directory.Service requires a non nil binder")
	}
	return &Svc{db: db, binder: binder}
}

// GetPerson returns one person by id
func (s *Svc) GetPerson(ctx context.Context, id string) (domain.Person, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Person{}, perr.InvalidArgf("person id required")
	}
	return s.binder.Bind(s.db).GetPerson(ctx, id)
}

// GetPersonByUser returns the person linked to an auth user
func (s *Svc) GetPersonByUser(ctx context.Context, userID string) (domain.Person, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Person{}, perr.InvalidArgf("user id required")
	}
	return s.binder.Bind(s.db).GetPersonByUser(ctx, userID)
}

// ListOrgPeople lists colleagues in an organization, optionally excluding one id
func (s *Svc) ListOrgPeople(ctx context.Context, orgID, excludeID string, limit int) ([]domain.Person, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.binder.Bind(s.db).ListOrgPeople(ctx, orgID, excludeID, limit)
}

// FindByName resolves a name fragment to a person within an organization
func (s *Svc) FindByName(ctx context.Context, orgID, fragment string) (domain.Person, bool, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return domain.Person{}, false, nil
	}
	return s.binder.Bind(s.db).FindByName(ctx, orgID, fragment)
}

// TeamsFor lists the teams a person belongs to
func (s *Svc) TeamsFor(ctx context.Context, personID string) ([]domain.Team, error) {
	return s.binder.Bind(s.db).TeamsFor(ctx, personID)
}

// Package repo provides the directory repository implementation
package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"taskpulse/internal/modkit/repokit"
	perr "taskpulse/internal/platform/errors"
	"taskpulse/internal/services/directory/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the directory repository
type Storage interface {
	GetPerson(ctx context.Context, id string) (domain.Person, error)
	GetPersonByUser(ctx context.Context, userID string) (domain.Person, error)
	ListOrgPeople(ctx context.Context, orgID, excludeID string, limit int) ([]domain.Person, error)
	FindByName(ctx context.Context, orgID, fragment string) (domain.Person, bool, error)
	TeamsFor(ctx context.Context, personID string) ([]domain.Team, error)
}

const personCols = `id, COALESCE(user_id::text, ''), org_id, name, COALESCE(role, ''), COALESCE(skills, '{}'), created_at`

func scanPerson(row repokit.Row) (domain.Person, error) {
	var p domain.Person
	err := row.Scan(&p.ID, &p.UserID, &p.OrgID, &p.Name, &p.Role, &p.Skills, &p.CreatedAt)
	return p, err
}

// GetPerson implements Storage
func (s *pg) GetPerson(ctx context.Context, id string) (domain.Person, error) {
	p, err := scanPerson(s.q.QueryRow(ctx,
		`SELECT `+personCols+` FROM people WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Person{}, perr.NotFoundf("person %s not found", id)
	}
	if err != nil {
		return domain.Person{}, perr.DBf("get person: %v", err)
	}
	return p, nil
}

// GetPersonByUser implements Storage
func (s *pg) GetPersonByUser(ctx context.Context, userID string) (domain.Person, error) {
	p, err := scanPerson(s.q.QueryRow(ctx,
		`SELECT `+personCols+` FROM people WHERE user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Person{}, perr.NotFoundf("no person for user %s", userID)
	}
	if err != nil {
		return domain.Person{}, perr.DBf("get person by user: %v", err)
	}
	return p, nil
}

// ListOrgPeople implements Storage
func (s *pg) ListOrgPeople(ctx context.Context, orgID, excludeID string, limit int) ([]domain.Person, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+personCols+`
		 FROM people
		 WHERE org_id = $1 AND ($2 = '' OR id <> $2::uuid)
		 ORDER BY name
		 LIMIT $3`, orgID, excludeID, limit)
	if err != nil {
		return nil, perr.DBf("list org people: %v", err)
	}
	defer rows.Close()

	var out []domain.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, perr.DBf("scan person: %v", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// likeEscaper neutralizes LIKE metacharacters so a model-produced mention
// matches literally instead of acting as a wildcard
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

// FindByName matches a name fragment case-insensitively, first match wins
func (s *pg) FindByName(ctx context.Context, orgID, fragment string) (domain.Person, bool, error) {
	p, err := scanPerson(s.q.QueryRow(ctx,
		`SELECT `+personCols+`
		 FROM people
		 WHERE org_id = $1 AND name ILIKE '%' || $2 || '%'
		 ORDER BY name
		 LIMIT 1`, orgID, escapeLike(fragment)))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Person{}, false, nil
	}
	if err != nil {
		return domain.Person{}, false, perr.DBf("find person by name: %v", err)
	}
	return p, true, nil
}

// TeamsFor implements Storage
func (s *pg) TeamsFor(ctx context.Context, personID string) ([]domain.Team, error) {
	rows, err := s.q.Query(ctx,
		`SELECT t.id, t.org_id, t.name
		 FROM teams t
		 JOIN team_members tm ON tm.team_id = t.id
		 WHERE tm.person_id = $1
		 ORDER BY t.name`, personID)
	if err != nil {
		return nil, perr.DBf("teams for person: %v", err)
	}
	defer rows.Close()

	var out []domain.Team
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.ID, &t.OrgID, &t.Name); err != nil {
			return nil, perr.DBf("scan team: %v", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

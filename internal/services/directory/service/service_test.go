package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"taskpulse/internal/modkit/repokit"
	"taskpulse/internal/services/directory/domain"
	"taskpulse/internal/services/directory/repo"
)

type fakeStorage struct {
	people    []domain.Person
	lastLimit int
}

func (f *fakeStorage) GetPerson(_ context.Context, id string) (domain.Person, error) {
	for _, p := range f.people {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Person{}, errors.New("not found")
}

func (f *fakeStorage) GetPersonByUser(_ context.Context, userID string) (domain.Person, error) {
	for _, p := range f.people {
		if p.UserID == userID {
			return p, nil
		}
	}
	return domain.Person{}, errors.New("not found")
}

func (f *fakeStorage) ListOrgPeople(_ context.Context, orgID, excludeID string, limit int) ([]domain.Person, error) {
	f.lastLimit = limit
	var out []domain.Person
	for _, p := range f.people {
		if p.OrgID == orgID && p.ID != excludeID && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStorage) FindByName(_ context.Context, orgID, fragment string) (domain.Person, bool, error) {
	for _, p := range f.people {
		if p.OrgID == orgID && strings.Contains(strings.ToLower(p.Name), strings.ToLower(fragment)) {
			return p, true, nil
		}
	}
	return domain.Person{}, false, nil
}

func (f *fakeStorage) TeamsFor(context.Context, string) ([]domain.Team, error) { return nil, nil }

type fakeBinder struct{ s *fakeStorage }

func (f fakeBinder) Bind(repokit.Queryer) repo.Storage { return f.s }

type fakeDB struct{}

func (fakeDB) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	return nil, errors.New("unused")
}
func (fakeDB) Query(context.Context, string, ...any) (repokit.Rows, error) {
	return nil, errors.New("unused")
}
func (fakeDB) QueryRow(context.Context, string, ...any) repokit.Row { return nil }
func (fakeDB) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error {
	return fn(fakeDB{})
}

func testSvc(people ...domain.Person) (*Svc, *fakeStorage) {
	st := &fakeStorage{people: people}
	return New(fakeDB{}, fakeBinder{s: st}), st
}

func TestGetPersonRequiresID(t *testing.T) {
	svc, _ := testSvc()
	if _, err := svc.GetPerson(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for blank id")
	}
}

func TestListOrgPeopleDefaultsLimit(t *testing.T) {
	svc, st := testSvc(domain.Person{ID: "a", OrgID: "org"})
	if _, err := svc.ListOrgPeople(context.Background(), "org", "", 0); err != nil {
		t.Fatalf("list: %v", err)
	}
	if st.lastLimit != 10 {
		t.Fatalf("zero limit should default to 10, got %d", st.lastLimit)
	}
}

func TestFindByNameBlankFragmentIsNoMatch(t *testing.T) {
	svc, _ := testSvc(domain.Person{ID: "a", OrgID: "org", Name: "Jordan Park"})

	if _, ok, err := svc.FindByName(context.Background(), "org", "   "); err != nil || ok {
		t.Fatalf("blank fragment should be a clean miss, got ok=%v err=%v", ok, err)
	}

	p, ok, err := svc.FindByName(context.Background(), "org", "jordan")
	if err != nil || !ok {
		t.Fatalf("expected a match, got ok=%v err=%v", ok, err)
	}
	if p.ID != "a" {
		t.Fatalf("wrong person matched: %+v", p)
	}
}

package domain

import "context"

// QueryPort is the read surface other services consume
type QueryPort interface {
	GetPerson(ctx context.Context, id string) (Person, error)
	GetPersonByUser(ctx context.Context, userID string) (Person, error)
	ListOrgPeople(ctx context.Context, orgID, excludeID string, limit int) ([]Person, error)
	FindByName(ctx context.Context, orgID, fragment string) (Person, bool, error)
	TeamsFor(ctx context.Context, personID string) ([]Team, error)
}

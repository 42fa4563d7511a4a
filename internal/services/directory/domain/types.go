// Package domain defines the types and interfaces for the directory service
package domain

import "time"

// Person is a directory member row
type Person struct {
	ID        string    `json:"id" example:"5f1c5b8e-7a2b-4f3c-9d1e-2a3b4c5d6e7f"`
	UserID    string    `json:"user_id,omitempty"`
	OrgID     string    `json:"org_id"`
	Name      string    `json:"name" example:"Riley Chen"`
	Role      string    `json:"role,omitempty" example:"Backend Engineer"`
	Skills    []string  `json:"skills,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Team is a named group of people within an organization
type Team struct {
	ID    string `json:"id"`
	OrgID string `json:"org_id"`
	Name  string `json:"name" example:"Platform"`
}

// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keyPersonID ctxKey = "person_id"
	keyUserID   ctxKey = "user_id"
)

// WithRequest annotates context with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithPerson annotates context with the authenticated person id
func WithPerson(ctx context.Context, personID string) context.Context {
	if personID != "" {
		ctx = context.WithValue(ctx, keyPersonID, personID)
	}
	return ctx
}

// WithUser annotates context with the authenticated account id
func WithUser(ctx context.Context, userID string) context.Context {
	if userID != "" {
		ctx = context.WithValue(ctx, keyUserID, userID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// PersonID returns the person id on the context if present
func PersonID(ctx context.Context) string {
	if v, ok := ctx.Value(keyPersonID).(string); ok {
		return v
	}
	return ""
}

// UserID returns the account id on the context if present
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(keyUserID).(string); ok {
		return v
	}
	return ""
}

package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/revisia/progression/internal/auth"
	"github.com/revisia/progression/internal/domain"
)

// userIDFromContext resolves the authenticated user's UUID from the JWT subject.
func userIDFromContext(r *http.Request) (uuid.UUID, error) {
	sub := auth.SubjectFromContext(r.Context())
	if sub == "" {
		return uuid.Nil, domain.ErrUnauthorized("no auth context")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized("invalid subject in token")
	}
	return id, nil
}

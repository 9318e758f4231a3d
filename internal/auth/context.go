package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/taxdesk/backoffice-api/internal/domain"
)

// UserContext holds the authenticated staff identity for a request
type UserContext struct {
	UserID      uuid.UUID
	DisplayName string
	Email       string
	Role        domain.StaffRole
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// HasRole checks if the user has a specific role
func (u *UserContext) HasRole(role domain.StaffRole) bool {
	return u.Role == role
}

// HasAnyRole checks if the user has any of the specified roles
func (u *UserContext) HasAnyRole(roles ...domain.StaffRole) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user can manage staff accounts
func (u *UserContext) IsAdmin() bool {
	return u.HasAnyRole(domain.RoleSuperAdmin, domain.RoleAdmin)
}

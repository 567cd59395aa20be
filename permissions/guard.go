package permissions

import (
	"context"
	"slices"
	"venuebook/shared/constant"
	"venuebook/shared/failure"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	ID       string
	Username string
	Role     string
}

func (p Principal) IsAdmin() bool {
	return p.Role == constant.RoleAdmin
}

// NewContext stores the principal under the context keys read by PrincipalFromContext.
func NewContext(ctx context.Context, p Principal) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, p.ID)
	ctx = context.WithValue(ctx, constant.ContextKeyUsername, p.Username)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, p.Role)

	return ctx
}

// PrincipalFromContext returns the caller placed in ctx by the auth middleware.
// The boolean is false when the request carries no authenticated user.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	username, _ := ctx.Value(constant.ContextKeyUsername).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	p := Principal{ID: id, Username: username, Role: role}

	return p, id != constant.Empty
}

func RequireAuthenticated(p Principal) error {
	if p.ID == constant.Empty {
		return failure.NotAuthenticatedError
	}

	return nil
}

// RequireAdmin ignores ownership entirely.
func RequireAdmin(p Principal) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}

	if !p.IsAdmin() {
		return failure.ForbiddenError
	}

	return nil
}

func RequireOwnerOrAdmin(p Principal, ownerID string) error {
	return RequireAnyOf(p, ownerID)
}

// RequireAnyOf allows admins and any principal whose id matches one of ownerIDs.
func RequireAnyOf(p Principal, ownerIDs ...string) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}

	if p.IsAdmin() {
		return nil
	}

	if slices.Contains(ownerIDs, p.ID) {
		return nil
	}

	return failure.ForbiddenError
}

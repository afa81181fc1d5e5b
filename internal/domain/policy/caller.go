// Package policy decides which rows a caller may read or write.
//
// Every table is owned through a single profile column, or through the
// parent order for order items. A caller is attached to the request context
// by the delivery layer and read back by the persistence layer, which turns
// the decision into SQL so denied rows are never returned or touched.
package policy

import (
	"context"

	"github.com/google/uuid"
)

// Role distinguishes end users from trusted platform code.
type Role string

const (
	// RoleAuthenticated is a signed-in profile. Ownership rules apply.
	RoleAuthenticated Role = "authenticated"
	// RoleService is platform code (aggregators, provisioning, workers, admin tools).
	// It bypasses ownership rules.
	RoleService Role = "service"
)

// Caller identifies who is issuing a data access.
type Caller struct {
	ProfileID uuid.UUID
	Role      Role
}

type callerKey struct{}

// WithCaller returns a context carrying caller.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// WithProfile returns a context carrying an authenticated caller for profileID.
func WithProfile(ctx context.Context, profileID uuid.UUID) context.Context {
	return WithCaller(ctx, Caller{ProfileID: profileID, Role: RoleAuthenticated})
}

// AsService returns a context carrying the service role.
func AsService(ctx context.Context) context.Context {
	return WithCaller(ctx, Caller{Role: RoleService})
}

// CallerFrom returns the caller attached to ctx, if any.
func CallerFrom(ctx context.Context) (Caller, bool) {
	if ctx == nil {
		return Caller{}, false
	}
	caller, ok := ctx.Value(callerKey{}).(Caller)

	return caller, ok
}

// IsService reports whether ctx carries the service role.
func IsService(ctx context.Context) bool {
	caller, ok := CallerFrom(ctx)

	return ok && caller.Role == RoleService
}

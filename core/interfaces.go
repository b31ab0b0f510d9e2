//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=mock/interfaces.go
package core

import (
	"context"
)

// Store is the storage collaborator the engine depends on. Implementations
// return ErrorNotFound (possibly wrapped) when the referenced entity is
// absent; the engine does not interpret error subtypes beyond that.
type Store interface {
	GetUser(ctx context.Context, id string) (User, error)
	GetRole(ctx context.Context, id string) (Role, error)
	GetUserPolicies(ctx context.Context, userID string) ([]Policy, error)
	GetRolePolicies(ctx context.Context, roleID string) ([]Policy, error)
	CreatePolicy(ctx context.Context, policy Policy) (Policy, error)
}

type PolicyService interface {
	Evaluate(ctx context.Context, policies []Policy, action string, resource string, requestContext RequestContext) bool
}

type AccessService interface {
	HasAccess(ctx context.Context, userID string, action string, resource string, requestContext RequestContext) (bool, error)
	CreatePolicy(ctx context.Context, source PolicySource) (Policy, error)
}

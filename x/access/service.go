package access

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vpr1995/rbac-engine/core"
)

var tracer = otel.Tracer("access")

type service struct {
	store  core.Store
	policy core.PolicyService
}

// NewService is for wire.go
func NewService(store core.Store, policy core.PolicyService) core.AccessService {
	return &service{store: store, policy: policy}
}

type policyFetch struct {
	index    int
	policies []core.Policy
	err      error
}

// HasAccess gathers the principal's directly attached policies and the
// policies of every role it holds, then evaluates the request against the
// combined set. The direct fetch and the per-role fetches run
// concurrently; the first failure aborts the whole call.
func (s *service) HasAccess(ctx context.Context, userID string, action string, resource string, requestContext core.RequestContext) (bool, error) {
	ctx, span := tracer.Start(ctx, "Access.Service.HasAccess")
	defer span.End()

	span.SetAttributes(
		attribute.String("userID", userID),
		attribute.String("action", action),
		attribute.String("resource", resource),
	)

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return false, err
	}

	// bucket 0 holds the direct policies, bucket i+1 the policies of
	// user.Roles[i], so the combined order stays deterministic no matter
	// which fetch finishes first
	results := make(chan policyFetch, len(user.Roles)+1)

	go func() {
		policies, err := s.store.GetUserPolicies(ctx, user.ID)
		results <- policyFetch{
			index:    0,
			policies: policies,
			err:      errors.Wrap(err, "failed to fetch user policies"),
		}
	}()

	for i, roleID := range user.Roles {
		go func(index int, roleID string) {
			policies, err := s.store.GetRolePolicies(ctx, roleID)
			results <- policyFetch{
				index:    index,
				policies: policies,
				err:      errors.Wrapf(err, "failed to fetch policies for role %s", roleID),
			}
		}(i+1, roleID)
	}

	buckets := make([][]core.Policy, len(user.Roles)+1)
	for range buckets {
		fetch := <-results
		if fetch.err != nil {
			span.RecordError(fetch.err)
			return false, fetch.err
		}
		buckets[fetch.index] = fetch.policies
	}

	var combined []core.Policy
	for _, bucket := range buckets {
		combined = append(combined, bucket...)
	}

	return s.policy.Evaluate(ctx, combined, action, resource, requestContext), nil
}

// CreatePolicy finalizes the given source (a literal policy or a builder)
// and hands the result to the store. Builder validation errors surface
// before the store is touched.
func (s *service) CreatePolicy(ctx context.Context, source core.PolicySource) (core.Policy, error) {
	ctx, span := tracer.Start(ctx, "Access.Service.CreatePolicy")
	defer span.End()

	policy, err := source.Build()
	if err != nil {
		span.RecordError(err)
		return core.Policy{}, err
	}

	created, err := s.store.CreatePolicy(ctx, policy)
	if err != nil {
		span.RecordError(err)
		return core.Policy{}, errors.Wrap(err, "failed to persist policy")
	}

	return created, nil
}

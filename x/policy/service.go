package policy

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vpr1995/rbac-engine/core"
)

var tracer = otel.Tracer("policy")

type service struct {
	now func() time.Time
}

// NewService is for wire.go
func NewService() core.PolicyService {
	return &service{now: time.Now}
}

// Evaluate scans every statement of every policy in order. A matching
// Allow statement marks the request allowed; a matching Deny statement
// ends evaluation immediately with a denial, no matter what matched
// before or would match after. Statements outside their validity window
// or with an unsatisfied condition are skipped. An empty policy list
// denies.
func (s *service) Evaluate(ctx context.Context, policies []core.Policy, action string, resource string, requestContext core.RequestContext) bool {
	_, span := tracer.Start(ctx, "Policy.Service.Evaluate")
	defer span.End()

	span.SetAttributes(
		attribute.String("action", action),
		attribute.String("resource", resource),
		attribute.Int("policies", len(policies)),
	)

	now := s.now()

	allowed := false
	for _, policy := range policies {
		for _, statement := range policy.Document.Statement {
			if !IsStatementActive(statement, now) {
				continue
			}
			if len(statement.Condition) > 0 && !EvaluateCondition(statement.Condition, requestContext) {
				continue
			}
			if !Matches(statement.Action, action) || !Matches(statement.Resource, resource) {
				continue
			}

			if statement.Effect == core.EffectDeny {
				span.AddEvent(fmt.Sprintf("explicit deny by policy %s", policy.ID))
				return false
			}
			allowed = true
		}
	}

	return allowed
}

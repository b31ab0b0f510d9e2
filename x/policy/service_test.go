package policy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vpr1995/rbac-engine/core"
)

var s service

func TestMain(m *testing.M) {

	s = service{
		now: func() time.Time {
			return time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
		},
	}

	m.Run()
}

func allowPolicy(id string, actions, resources []string) core.Policy {
	return core.Policy{
		ID: id,
		Document: core.PolicyDocument{
			Version: "2012-10-17",
			Statement: []core.Statement{
				{Effect: core.EffectAllow, Action: actions, Resource: resources},
			},
		},
	}
}

func denyPolicy(id string, actions, resources []string) core.Policy {
	return core.Policy{
		ID: id,
		Document: core.PolicyDocument{
			Version: "2012-10-17",
			Statement: []core.Statement{
				{Effect: core.EffectDeny, Action: actions, Resource: resources},
			},
		},
	}
}

// 1. documents are readable and writable in general, but nobody writes the
// secret one
func TestEvaluateAllowWithDenyCarveOut(t *testing.T) {
	ctx := context.Background()

	policies := []core.Policy{
		allowPolicy("base", []string{"read", "write"}, []string{"*"}),
		denyPolicy("guard", []string{"write"}, []string{"document:secret"}),
	}

	assert.True(t, s.Evaluate(ctx, policies, "read", "document", nil))
	assert.True(t, s.Evaluate(ctx, policies, "write", "document", nil))
	assert.False(t, s.Evaluate(ctx, policies, "write", "document:secret", nil))
	assert.True(t, s.Evaluate(ctx, policies, "read", "document:secret", nil))
}

// 2. a matching deny wins no matter where it sits in the input
func TestEvaluateDenyOverrideIsOrderIndependent(t *testing.T) {
	ctx := context.Background()

	allow := allowPolicy("allow", []string{"write"}, []string{"document"})
	deny := denyPolicy("deny", []string{"write"}, []string{"document"})

	assert.False(t, s.Evaluate(ctx, []core.Policy{allow, deny}, "write", "document", nil))
	assert.False(t, s.Evaluate(ctx, []core.Policy{deny, allow}, "write", "document", nil))
}

// 3. no applicable grant is a denial
func TestEvaluateFailsClosed(t *testing.T) {
	ctx := context.Background()

	assert.False(t, s.Evaluate(ctx, nil, "read", "document", nil))
	assert.False(t, s.Evaluate(ctx, []core.Policy{}, "read", "document", nil))

	// a non-matching deny grants nothing either
	deny := denyPolicy("deny", []string{"write"}, []string{"document"})
	assert.False(t, s.Evaluate(ctx, []core.Policy{deny}, "read", "document", nil))
}

// 4. an unsatisfied condition skips the statement, it does not deny
func TestEvaluateConditionGating(t *testing.T) {
	ctx := context.Background()

	conditional := core.Policy{
		ID: "conditional",
		Document: core.PolicyDocument{
			Version: "2012-10-17",
			Statement: []core.Statement{
				{
					Effect:    core.EffectAllow,
					Action:    []string{"read"},
					Resource:  []string{"document"},
					Condition: map[string]any{"department": "engineering"},
				},
			},
		},
	}

	assert.True(t, s.Evaluate(ctx, []core.Policy{conditional}, "read", "document", core.RequestContext{"department": "engineering"}))
	assert.False(t, s.Evaluate(ctx, []core.Policy{conditional}, "read", "document", core.RequestContext{"department": "sales"}))
	assert.False(t, s.Evaluate(ctx, []core.Policy{conditional}, "read", "document", nil))

	// a skipped conditional deny does not override an unconditional allow
	conditionalDeny := core.Policy{
		ID: "conditional-deny",
		Document: core.PolicyDocument{
			Version: "2012-10-17",
			Statement: []core.Statement{
				{
					Effect:    core.EffectDeny,
					Action:    []string{"read"},
					Resource:  []string{"document"},
					Condition: map[string]any{"blocked": true},
				},
			},
		},
	}
	base := allowPolicy("base", []string{"read"}, []string{"document"})

	assert.True(t, s.Evaluate(ctx, []core.Policy{conditionalDeny, base}, "read", "document", nil))
	assert.False(t, s.Evaluate(ctx, []core.Policy{conditionalDeny, base}, "read", "document", core.RequestContext{"blocked": true}))
}

// 5. statements outside their validity window do not contribute
func TestEvaluateTemporalGating(t *testing.T) {
	ctx := context.Background()

	expired := core.Policy{
		ID: "expired",
		Document: core.PolicyDocument{
			Version: "2012-10-17",
			Statement: []core.Statement{
				{
					Effect:   core.EffectAllow,
					Action:   []string{"read"},
					Resource: []string{"document"},
					EndDate:  "2025-04-01T00:00:00Z",
				},
			},
		},
	}
	assert.False(t, s.Evaluate(ctx, []core.Policy{expired}, "read", "document", nil))

	// a deny that has not started yet is skipped, so the allow stands
	pendingDeny := core.Policy{
		ID: "pending-deny",
		Document: core.PolicyDocument{
			Version: "2012-10-17",
			Statement: []core.Statement{
				{
					Effect:    core.EffectDeny,
					Action:    []string{"read"},
					Resource:  []string{"document"},
					StartDate: "2025-06-01T00:00:00Z",
				},
			},
		},
	}
	base := allowPolicy("base", []string{"read"}, []string{"document"})
	assert.True(t, s.Evaluate(ctx, []core.Policy{pendingDeny, base}, "read", "document", nil))

	// a malformed date deactivates only its own statement
	broken := core.Policy{
		ID: "broken",
		Document: core.PolicyDocument{
			Version: "2012-10-17",
			Statement: []core.Statement{
				{
					Effect:    core.EffectAllow,
					Action:    []string{"write"},
					Resource:  []string{"document"},
					StartDate: "not-a-date",
				},
				{
					Effect:   core.EffectAllow,
					Action:   []string{"read"},
					Resource: []string{"document"},
				},
			},
		},
	}
	assert.False(t, s.Evaluate(ctx, []core.Policy{broken}, "write", "document", nil))
	assert.True(t, s.Evaluate(ctx, []core.Policy{broken}, "read", "document", nil))
}

// 6. multi-statement documents evaluate statement by statement
func TestEvaluateMultiStatementDocument(t *testing.T) {
	ctx := context.Background()

	policy := core.Policy{
		ID: "mixed",
		Document: core.PolicyDocument{
			Version: "2012-10-17",
			Statement: []core.Statement{
				{Effect: core.EffectAllow, Action: []string{"*"}, Resource: []string{"report/*"}},
				{Effect: core.EffectDeny, Action: []string{"delete"}, Resource: []string{"report/archive/*"}},
			},
		},
	}

	assert.True(t, s.Evaluate(ctx, []core.Policy{policy}, "delete", "report/draft", nil))
	assert.False(t, s.Evaluate(ctx, []core.Policy{policy}, "delete", "report/archive/2024", nil))
}

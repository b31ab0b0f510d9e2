// Package builder provides fluent construction of policies and statements.
// Builders are mutable single-owner objects and are not safe for concurrent
// use; each logical build should use its own instance. Build returns an
// independently owned value with no remaining link to the builder.
package builder

import (
	"fmt"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/vpr1995/rbac-engine/core"
)

type StatementBuilder struct {
	effect    core.Effect
	actions   []string
	resources []string
	condition map[string]any
	startDate string
	endDate   string
}

func NewStatement() *StatementBuilder {
	return &StatementBuilder{}
}

// Allow sets Effect=Allow and replaces the action list. A later Deny call
// overwrites both.
func (b *StatementBuilder) Allow(actions ...string) *StatementBuilder {
	b.effect = core.EffectAllow
	b.actions = actions
	return b
}

// Deny sets Effect=Deny and replaces the action list. A later Allow call
// overwrites both.
func (b *StatementBuilder) Deny(actions ...string) *StatementBuilder {
	b.effect = core.EffectDeny
	b.actions = actions
	return b
}

// On replaces the resource list.
func (b *StatementBuilder) On(resources ...string) *StatementBuilder {
	b.resources = resources
	return b
}

// When replaces the condition map.
func (b *StatementBuilder) When(condition map[string]any) *StatementBuilder {
	b.condition = condition
	return b
}

// ActiveFrom sets the inclusive start of the validity window. The date is
// held as an opaque string and validated at Build.
func (b *StatementBuilder) ActiveFrom(date string) *StatementBuilder {
	b.startDate = date
	return b
}

// ActiveUntil sets the inclusive end of the validity window, validated at
// Build.
func (b *StatementBuilder) ActiveUntil(date string) *StatementBuilder {
	b.endDate = date
	return b
}

// Build validates the assembled statement and returns it. On failure the
// returned core.ErrorValidation lists every violated rule, not just the
// first.
func (b *StatementBuilder) Build() (core.Statement, error) {
	violations := b.validate()
	if len(violations) > 0 {
		return core.Statement{}, core.NewErrorValidation(violations)
	}

	return core.Statement{
		Effect:    b.effect,
		Action:    slices.Clone(b.actions),
		Resource:  slices.Clone(b.resources),
		Condition: maps.Clone(b.condition),
		StartDate: b.startDate,
		EndDate:   b.endDate,
	}, nil
}

func (b *StatementBuilder) validate() []string {
	var violations []string

	if b.effect == "" {
		violations = append(violations, "effect is not set: call Allow or Deny")
	}

	if len(b.actions) == 0 {
		violations = append(violations, "at least one action is required")
	}
	for i, action := range b.actions {
		if action == "" {
			violations = append(violations, fmt.Sprintf("action %d must not be empty", i))
		}
	}

	if len(b.resources) == 0 {
		violations = append(violations, "at least one resource is required")
	}
	for i, resource := range b.resources {
		if resource == "" {
			violations = append(violations, fmt.Sprintf("resource %d must not be empty", i))
		}
	}

	var start, end time.Time
	var hasStart, hasEnd bool
	if b.startDate != "" {
		parsed, err := time.Parse(time.RFC3339, b.startDate)
		if err != nil {
			violations = append(violations, fmt.Sprintf("invalid StartDate %q: expected RFC 3339", b.startDate))
		} else {
			start, hasStart = parsed, true
		}
	}
	if b.endDate != "" {
		parsed, err := time.Parse(time.RFC3339, b.endDate)
		if err != nil {
			violations = append(violations, fmt.Sprintf("invalid EndDate %q: expected RFC 3339", b.endDate))
		} else {
			end, hasEnd = parsed, true
		}
	}
	if hasStart && hasEnd && !start.Before(end) {
		violations = append(violations, "StartDate must be before EndDate")
	}

	return violations
}

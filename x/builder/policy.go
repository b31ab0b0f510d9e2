package builder

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/vpr1995/rbac-engine/core"
)

// DefaultVersion is the document version label applied when Version is
// never called.
const DefaultVersion = "2012-10-17"

type buildMode int

const (
	modeUnset buildMode = iota
	modeSimple
	modeComplex
)

// PolicyBuilder assembles a policy in one of two mutually exclusive modes.
// Simple mode: Allow/Deny/On/When/ActiveFrom/ActiveUntil shape a single
// implicit statement. Complex mode: one or more explicit Statement calls.
// Mixing the two on one builder is rejected at the offending call (the
// call has no effect) and reported by Build.
type PolicyBuilder struct {
	id         string
	version    string
	mode       buildMode
	simple     *StatementBuilder
	statements []core.StatementSource
	violations []string
}

func NewPolicy(id string) *PolicyBuilder {
	return &PolicyBuilder{
		id:      id,
		version: DefaultVersion,
	}
}

// Version replaces the document version label.
func (b *PolicyBuilder) Version(version string) *PolicyBuilder {
	b.version = version
	return b
}

func (b *PolicyBuilder) Allow(actions ...string) *PolicyBuilder {
	if b.enterSimple("Allow") {
		b.simple.Allow(actions...)
	}
	return b
}

func (b *PolicyBuilder) Deny(actions ...string) *PolicyBuilder {
	if b.enterSimple("Deny") {
		b.simple.Deny(actions...)
	}
	return b
}

func (b *PolicyBuilder) On(resources ...string) *PolicyBuilder {
	if b.enterSimple("On") {
		b.simple.On(resources...)
	}
	return b
}

func (b *PolicyBuilder) When(condition map[string]any) *PolicyBuilder {
	if b.enterSimple("When") {
		b.simple.When(condition)
	}
	return b
}

func (b *PolicyBuilder) ActiveFrom(date string) *PolicyBuilder {
	if b.enterSimple("ActiveFrom") {
		b.simple.ActiveFrom(date)
	}
	return b
}

func (b *PolicyBuilder) ActiveUntil(date string) *PolicyBuilder {
	if b.enterSimple("ActiveUntil") {
		b.simple.ActiveUntil(date)
	}
	return b
}

// Statement appends an explicit statement, given either as a pre-built
// core.Statement or as a *StatementBuilder (finalized during Build).
func (b *PolicyBuilder) Statement(source core.StatementSource) *PolicyBuilder {
	if b.mode == modeSimple {
		b.violations = append(b.violations, "Statement cannot be combined with simple statement methods")
		return b
	}
	b.mode = modeComplex
	b.statements = append(b.statements, source)
	return b
}

func (b *PolicyBuilder) enterSimple(method string) bool {
	if b.mode == modeComplex {
		b.violations = append(b.violations, fmt.Sprintf("%s cannot be combined with explicit Statement calls", method))
		return false
	}
	b.mode = modeSimple
	if b.simple == nil {
		b.simple = NewStatement()
	}
	return true
}

// Build validates the assembled policy and returns it. All violations are
// aggregated into a single core.ErrorValidation, including those of any
// pending statement builders.
func (b *PolicyBuilder) Build() (core.Policy, error) {
	violations := slices.Clone(b.violations)

	if b.id == "" {
		violations = append(violations, "policy id must not be empty")
	}
	if b.version == "" {
		violations = append(violations, "version must not be empty")
	}

	var statements []core.Statement
	switch b.mode {
	case modeSimple:
		statement, err := b.simple.Build()
		if err != nil {
			violations = append(violations, violationsOf(err)...)
		} else {
			statements = append(statements, statement)
		}
	case modeComplex:
		for i, source := range b.statements {
			statement, err := source.Build()
			if err != nil {
				for _, violation := range violationsOf(err) {
					violations = append(violations, fmt.Sprintf("statement %d: %s", i, violation))
				}
				continue
			}
			statements = append(statements, statement)
		}
	default:
		violations = append(violations, "at least one statement is required")
	}

	if len(violations) > 0 {
		return core.Policy{}, core.NewErrorValidation(violations)
	}

	return core.Policy{
		ID: b.id,
		Document: core.PolicyDocument{
			Version:   b.version,
			Statement: statements,
		},
	}, nil
}

func violationsOf(err error) []string {
	var validation core.ErrorValidation
	if errors.As(err, &validation) {
		return validation.Violations
	}
	return []string{err.Error()}
}

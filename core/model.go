package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Effect is the outcome a matching statement contributes to a decision.
// Only EffectAllow and EffectDeny are valid; anything else is rejected at
// the unmarshalling boundary.
type Effect string

const (
	EffectAllow Effect = "Allow"
	EffectDeny  Effect = "Deny"
)

func (e Effect) IsValid() bool {
	return e == EffectAllow || e == EffectDeny
}

func (e *Effect) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	if !Effect(value).IsValid() {
		return fmt.Errorf("invalid effect: %q", value)
	}
	*e = Effect(value)
	return nil
}

// Statement is a single allow/deny rule. Action and Resource hold wildcard
// patterns, Condition holds exact-match attribute requirements, and the
// optional StartDate/EndDate bound the statement's validity window
// (RFC 3339, both bounds inclusive).
type Statement struct {
	Effect    Effect         `json:"Effect"`
	Action    []string       `json:"Action"`
	Resource  []string       `json:"Resource"`
	Condition map[string]any `json:"Condition,omitempty"`
	StartDate string         `json:"StartDate,omitempty"`
	EndDate   string         `json:"EndDate,omitempty"`
}

// Build makes a literal Statement usable wherever a StatementSource is
// expected.
func (s Statement) Build() (Statement, error) {
	return s, nil
}

type PolicyDocument struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// UnmarshalJSON accepts Statement as either a single object or an array,
// normalizing to a sequence.
func (d *PolicyDocument) UnmarshalJSON(data []byte) error {
	var raw struct {
		Version   string          `json:"Version"`
		Statement json.RawMessage `json:"Statement"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.Version = raw.Version
	d.Statement = nil

	statement := bytes.TrimSpace(raw.Statement)
	if len(statement) == 0 || bytes.Equal(statement, []byte("null")) {
		return nil
	}

	if statement[0] == '[' {
		return json.Unmarshal(statement, &d.Statement)
	}

	var single Statement
	if err := json.Unmarshal(statement, &single); err != nil {
		return err
	}
	d.Statement = []Statement{single}
	return nil
}

// Policy is an immutable, externally identified permission document. The
// id is assigned by the caller or the storage collaborator, never here.
type Policy struct {
	ID       string         `json:"id"`
	Document PolicyDocument `json:"document"`
}

// Build makes a literal Policy usable wherever a PolicySource is expected.
func (p Policy) Build() (Policy, error) {
	return p, nil
}

type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Roles    []string `json:"roles,omitempty"`
	Policies []string `json:"policies,omitempty"`
}

type Role struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Policies []string `json:"policies,omitempty"`
}

// RequestContext carries the caller-supplied attributes a statement's
// Condition is checked against. Values are expected to be scalars
// (string, number, bool); anything else never satisfies a condition.
type RequestContext map[string]any

// StatementSource yields a finalized Statement. Satisfied by a literal
// Statement and by builder.StatementBuilder.
type StatementSource interface {
	Build() (Statement, error)
}

// PolicySource yields a finalized Policy. Satisfied by a literal Policy
// and by builder.PolicyBuilder.
type PolicySource interface {
	Build() (Policy, error)
}

package policy

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/vpr1995/rbac-engine/core"
)

// Match tests value against a single wildcard pattern. `*` stands in for
// any run of characters, including none; every other character is literal,
// regexp metacharacters included. Matching is case-sensitive and anchored
// at both ends.
func Match(pattern string, value string) bool {
	if !strings.Contains(pattern, "*") {
		return pattern == value
	}

	split := strings.Split(pattern, "*")
	for i, segment := range split {
		split[i] = regexp.QuoteMeta(segment)
	}

	expr := "^" + strings.Join(split, ".*") + "$"
	match, err := regexp.MatchString(expr, value)
	if err != nil {
		return false
	}
	return match
}

// Matches tests value against a list of patterns, true on the first hit.
func Matches(patterns []string, value string) bool {
	for _, pattern := range patterns {
		if Match(pattern, value) {
			return true
		}
	}
	return false
}

// EvaluateCondition reports whether every condition key is present in the
// request context with an exactly equal scalar value. Extra context keys
// are ignored. An empty condition is vacuously true.
func EvaluateCondition(condition map[string]any, requestContext core.RequestContext) bool {
	for key, expected := range condition {
		actual, ok := requestContext[key]
		if !ok {
			return false
		}
		if !core.ScalarEqual(expected, actual) {
			return false
		}
	}
	return true
}

// IsStatementActive reports whether now falls inside the statement's
// validity window. Both bounds are inclusive. An unparseable bound
// deactivates the statement instead of failing evaluation.
func IsStatementActive(statement core.Statement, now time.Time) bool {
	if statement.StartDate == "" && statement.EndDate == "" {
		return true
	}

	if statement.StartDate != "" {
		start, err := time.Parse(time.RFC3339, statement.StartDate)
		if err != nil {
			slog.Warn(
				"failed to parse statement StartDate",
				slog.String("startDate", statement.StartDate),
				slog.String("error", err.Error()),
				slog.String("module", "policy"),
			)
			return false
		}
		if now.Before(start) {
			return false
		}
	}

	if statement.EndDate != "" {
		end, err := time.Parse(time.RFC3339, statement.EndDate)
		if err != nil {
			slog.Warn(
				"failed to parse statement EndDate",
				slog.String("endDate", statement.EndDate),
				slog.String("error", err.Error()),
				slog.String("module", "policy"),
			)
			return false
		}
		if now.After(end) {
			return false
		}
	}

	return true
}

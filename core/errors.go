package core

import (
	"strings"
)

type ErrorNotFound struct {
}

func (e ErrorNotFound) Error() string {
	return "Not Found"
}

func NewErrorNotFound() ErrorNotFound {
	return ErrorNotFound{}
}

type ErrorAlreadyExists struct {
}

func (e ErrorAlreadyExists) Error() string {
	return "Already Exists"
}

func NewErrorAlreadyExists() ErrorAlreadyExists {
	return ErrorAlreadyExists{}
}

// ErrorValidation carries every rule a build found violated, not just the
// first one.
type ErrorValidation struct {
	Violations []string
}

func (e ErrorValidation) Error() string {
	return "Validation Failed: " + strings.Join(e.Violations, "; ")
}

func NewErrorValidation(violations []string) ErrorValidation {
	return ErrorValidation{Violations: violations}
}

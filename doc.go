// Package rbac is an authorization decision engine. Given the permission
// statements attached to a principal (directly and through its roles) and a
// requested action/resource/context triple, it decides whether access is
// granted.
//
// The evaluation rules are deliberately small: actions and resources match
// through `*` wildcard patterns, conditions match request context attributes
// by exact scalar equality, statements may carry an inclusive validity
// window, and a single matching Deny statement overrides any number of
// matching Allows. Policies come from a storage collaborator behind the
// core.Store interface; this module never persists anything itself.
package rbac

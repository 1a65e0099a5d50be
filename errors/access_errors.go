// api/errors/access_errors.go
package errors

import "errors"

var (
	ErrDeniedByPolicy      = errors.New("denied by policy")
	ErrPrincipalNotFound   = errors.New("principal not found")
	ErrPrincipalInactive   = errors.New("principal is inactive")
	ErrUnknownResourceType = errors.New("unknown resource type")

	ErrGrantNotFound    = errors.New("grant not found")
	ErrGrantExpired     = errors.New("grant expired")
	ErrInvalidGrantData = errors.New("invalid grant data")

	ErrInvalidRequest    = errors.New("invalid request")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInternalServer    = errors.New("internal server error")
	ErrInvalidPagination = errors.New("invalid pagination parameters")
)

// Package domain holds the error taxonomy shared by every write path.
// Handlers translate these into HTTP statuses; services only ever return them
// (or plain errors, which surface as 500).
package domain

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	Field string
	Msg   string
	Value any
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// AuthenticationError means there is no valid session.
type AuthenticationError struct {
	Msg string
}

func (e AuthenticationError) Error() string {
	if e.Msg == "" {
		return "not logged in"
	}
	return e.Msg
}

// AuthorizationError means the session is valid but lacks the role or
// ownership the operation needs.
type AuthorizationError struct {
	Msg string
}

func (e AuthorizationError) Error() string {
	if e.Msg == "" {
		return "forbidden"
	}
	return e.Msg
}

// PolicyError is a well-formed request that a business rule refuses, such as
// self-cancelling a confirmed booking.
type PolicyError struct {
	Msg string
	Err error
}

func (e PolicyError) Error() string {
	if e.Msg == "" {
		return "request not allowed"
	}
	return e.Msg
}

func (e PolicyError) Unwrap() error { return e.Err }

// UpstreamError wraps a failure of an outbound collaborator (notification
// channels). It is logged, never returned to a client.
type UpstreamError struct {
	Channel string
	Err     error
}

func (e UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Channel, e.Err)
}

func (e UpstreamError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsAuthentication(err error) bool {
	var target AuthenticationError
	return errors.As(err, &target)
}

func IsAuthorization(err error) bool {
	var target AuthorizationError
	return errors.As(err, &target)
}

func IsPolicy(err error) bool {
	var target PolicyError
	return errors.As(err, &target)
}

func IsUpstream(err error) bool {
	var target UpstreamError
	return errors.As(err, &target)
}

package discord

import (
	"errors"
	"fmt"
)

var (
	// ErrMemberNotFound is returned when the guild does not contain the
	// requested user.
	ErrMemberNotFound = errors.New("member not found in guild")

	ErrChunkTimeout         = errors.New("timed out waiting for guild members chunk")
	ErrInvalidSession       = errors.New("gateway session was invalidated")
	ErrAuthenticationFailed = errors.New("gateway authentication failed")
	ErrDisallowedIntents    = errors.New("gateway intents are not enabled for this bot")
)

// APIError marks a failure that originated from the discord platform
// rather than from this process. The card fallback classifier treats
// any APIError that is not a member lookup miss as an API failure.
type APIError struct {
	Op  string
	Err error
}

func NewAPIError(op string, err error) *APIError {
	return &APIError{Op: op, Err: err}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord %s: %s", e.Op, e.Err.Error())
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsAPIError reports whether err came from the discord platform.
func IsAPIError(err error) bool {
	var apiErr *APIError

	return errors.As(err, &apiErr)
}

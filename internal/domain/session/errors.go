package session

import "errors"

var (
	ErrNotAuthenticated = errors.New("user not logged in")
	ErrNoStoredSession  = errors.New("no stored session")
)

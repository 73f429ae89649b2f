package auth

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Strategy issues and verifies session tokens. Tokens carry only the
// principal identifier; roles are always looked up fresh from the store when
// a mutation is authorized.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tunes token strategies.
type Options struct {
	TTL time.Duration
}

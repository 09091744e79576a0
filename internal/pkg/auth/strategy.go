package auth

import "time"

// Strategy issues and verifies auth tokens. Tokens carry the user's role so
// route guards can check internal privilege without a store lookup.
type Strategy interface {
	IssueToken(userID int64, role string) (string, error)
	ParseToken(token string) (int64, string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}

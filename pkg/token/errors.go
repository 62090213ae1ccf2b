package token

import "errors"

var (
	ErrNoSecret            = errors.New("token: no secret provided")
	ErrMalformedToken      = errors.New("token: malformed token")
	ErrInvalidSignature    = errors.New("token: invalid signature")
	ErrExpiredToken        = errors.New("token: token is expired")
	ErrUnexpectedAlgorithm = errors.New("token: unexpected signing algorithm")
)

package jwt

import "errors"

var (
	ErrEmptySigningKey  = errors.New("jwt: signing key is empty")
	ErrSigningFailed    = errors.New("jwt: failed to sign token")
	ErrInvalidToken     = errors.New("jwt: invalid token")
	ErrExpiredToken     = errors.New("jwt: token expired")
	ErrInvalidSignature = errors.New("jwt: invalid signature")
	ErrInvalidClaims    = errors.New("jwt: claims cannot be decoded")
)

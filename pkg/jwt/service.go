package jwt

import (
	"errors"
	"time"

	json "github.com/goccy/go-json"
	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Service signs and verifies HMAC-SHA256 tokens.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

// Option configures the Service.
type Option func(*Service)

// WithIssuer sets the iss claim on generated tokens and requires it on parsed ones.
func WithIssuer(issuer string) Option {
	return func(s *Service) {
		s.issuer = issuer
	}
}

// WithTTL sets the lifetime stamped into generated tokens. Default: 24h.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// New creates a token service with the given signing key.
func New(signingKey string, opts ...Option) (*Service, error) {
	if signingKey == "" {
		return nil, ErrEmptySigningKey
	}

	s := &Service{
		signingKey: []byte(signingKey),
		ttl:        24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate signs the given claims. Claims may be any JSON-encodable value that
// produces an object; iat and exp are stamped automatically unless already set,
// as is iss when the service has an issuer.
func (s *Service) Generate(claims any) (string, error) {
	raw, err := json.Marshal(claims)
	if err != nil {
		return "", errors.Join(ErrInvalidClaims, err)
	}

	mapClaims := jwtlib.MapClaims{}
	if err := json.Unmarshal(raw, &mapClaims); err != nil {
		return "", errors.Join(ErrInvalidClaims, err)
	}

	now := time.Now()
	if _, ok := mapClaims["iat"]; !ok {
		mapClaims["iat"] = jwtlib.NewNumericDate(now)
	}
	if _, ok := mapClaims["exp"]; !ok {
		mapClaims["exp"] = jwtlib.NewNumericDate(now.Add(s.ttl))
	}
	if s.issuer != "" {
		mapClaims["iss"] = s.issuer
	}

	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, mapClaims).SignedString(s.signingKey)
	if err != nil {
		return "", errors.Join(ErrSigningFailed, err)
	}
	return token, nil
}

// Parse verifies the token and decodes its claims into out, which may be any
// JSON-decodable shape (struct or map).
func (s *Service) Parse(token string, out any) error {
	parserOpts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
	}
	if s.issuer != "" {
		parserOpts = append(parserOpts, jwtlib.WithIssuer(s.issuer))
	}

	mapClaims := jwtlib.MapClaims{}
	_, err := jwtlib.ParseWithClaims(token, mapClaims, func(*jwtlib.Token) (any, error) {
		return s.signingKey, nil
	}, parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwtlib.ErrTokenExpired):
			return ErrExpiredToken
		case errors.Is(err, jwtlib.ErrTokenSignatureInvalid):
			return ErrInvalidSignature
		default:
			return errors.Join(ErrInvalidToken, err)
		}
	}

	raw, err := json.Marshal(mapClaims)
	if err != nil {
		return errors.Join(ErrInvalidClaims, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Join(ErrInvalidClaims, err)
	}
	return nil
}

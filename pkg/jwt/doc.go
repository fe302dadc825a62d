// Package jwt provides a small HMAC-SHA256 token service used by the auth
// middleware and by services issuing their own tokens.
//
//	svc, err := jwt.New("secret", jwt.WithIssuer("accounts"), jwt.WithTTL(time.Hour))
//	token, err := svc.Generate(map[string]any{"user_id": "42"})
//
//	var claims middlewares.UserClaims
//	if err := svc.Parse(token, &claims); err != nil { ... }
//
// Parse reports expiry and signature problems as the sentinel errors
// ErrExpiredToken and ErrInvalidSignature so callers can map them onto the
// 401 taxonomy members without inspecting library internals.
package jwt

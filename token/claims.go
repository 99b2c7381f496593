package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrDecode marks any failure to read claims out of a bearer token. Callers
// must treat the bearer as unauthenticated; nothing here panics.
var ErrDecode = errors.New("cannot decode token claims")

// Claims is the raw claims mapping carried in a token's middle segment.
type Claims map[string]interface{}

// Email returns the addressable identity of the token holder: the email
// claim, falling back to sub.
func (c Claims) Email() string {
	if v, ok := c["email"].(string); ok && v != "" {
		return v
	}
	if v, ok := c["sub"].(string); ok {
		return v
	}
	return ""
}

// DecodeClaims reads the claims mapping out of a compact three-segment
// token WITHOUT verifying its signature. The token was issued by this
// backend and is only ever presented back to it, so trust is by origin;
// verified authentication goes through Maker.VerifyToken instead.
func DecodeClaims(tokenStr string) (Claims, error) {
	if tokenStr == "" {
		return nil, fmt.Errorf("%w: empty token", ErrDecode)
	}

	segments := strings.Split(tokenStr, ".")
	if len(segments) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrDecode, len(segments))
	}

	raw, err := decodeSegment(segments[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object: %v", ErrDecode, err)
	}

	return claims, nil
}

// decodeSegment handles both padded and unpadded base64url, which issuers
// disagree on in practice.
func decodeSegment(segment string) ([]byte, error) {
	if raw, err := base64.RawURLEncoding.DecodeString(segment); err == nil {
		return raw, nil
	}
	return base64.URLEncoding.DecodeString(segment)
}

package token

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestDecodeClaims_roundTrip(t *testing.T) {
	maker, err := NewJWTMaker(testSecret)
	require.NoError(t, err)

	tokenStr, err := maker.CreateToken("a@b.com", time.Minute)
	require.NoError(t, err)

	claims, err := DecodeClaims(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email())
}

func TestDecodeClaims_paddedSegment(t *testing.T) {
	// {"email":"a@b.com"} with standard padded base64url
	payload := base64.URLEncoding.EncodeToString([]byte(`{"email":"a@b.com"}`))
	tokenStr := "xxx." + payload + ".yyy"

	claims, err := DecodeClaims(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email())
}

func TestDecodeClaims_subFallback(t *testing.T) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"user-42"}`))
	claims, err := DecodeClaims("h." + payload + ".s")
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Email())
}

func TestDecodeClaims_malformed(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"two segments", "abc.def"},
		{"four segments", "a.b.c.d"},
		{"non-base64 middle", "head.!!!not-base64!!!.sig"},
		{"non-JSON payload", "head." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".sig"},
		{"JSON scalar payload", "head." + base64.RawURLEncoding.EncodeToString([]byte(`"just a string"`)) + ".sig"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeClaims(tc.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestJWTMaker_verify(t *testing.T) {
	maker, err := NewJWTMaker(testSecret)
	require.NoError(t, err)

	tokenStr, err := maker.CreateToken("tech@steg.tn", time.Minute)
	require.NoError(t, err)

	payload, err := maker.VerifyToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "tech@steg.tn", payload.Email)
	assert.WithinDuration(t, time.Now().Add(time.Minute), payload.ExpiredAt, 5*time.Second)
}

func TestJWTMaker_expired(t *testing.T) {
	maker, err := NewJWTMaker(testSecret)
	require.NoError(t, err)

	tokenStr, err := maker.CreateToken("tech@steg.tn", time.Millisecond)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = maker.VerifyToken(tokenStr)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestJWTMaker_shortKey(t *testing.T) {
	_, err := NewJWTMaker("too-short")
	require.Error(t, err)
}

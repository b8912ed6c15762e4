package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestIssueValidate_RoundTrip(t *testing.T) {
	t.Parallel()

	p := NewTokenProvider("super-secret", time.Hour)
	want := Principal{ID: 42, Email: "alice@example.com", UserName: "alice"}

	tok, err := p.Issue(want)
	require.NoError(t, err)

	got, err := p.Validate(tok)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()

	const secret = "super-secret"
	p := NewTokenProvider(secret, time.Hour)

	// Sign an already-expired token with the provider's own key
	// derivation: the signature is valid, only the expiry is past.
	key := []byte(base64.StdEncoding.EncodeToString([]byte(secret)))
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":       float64(7),
		"userName": "bob",
		"iss":      "bob@example.com",
		"iat":      now.Add(-2 * time.Hour).Unix(),
		"exp":      now.Add(-time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)

	_, err = p.Validate(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_TamperedSignature(t *testing.T) {
	t.Parallel()

	p := NewTokenProvider("super-secret", time.Hour)
	tok, err := p.Issue(Principal{ID: 1, Email: "a@b.c", UserName: "a"})
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)

	// Flip a single bit anywhere in the signature segment.
	for i := range sig {
		flipped := append([]byte(nil), sig...)
		flipped[i] ^= 0x01
		bad := parts[0] + "." + parts[1] + "." + base64.RawURLEncoding.EncodeToString(flipped)
		if _, err := p.Validate(bad); err == nil {
			t.Fatalf("bit flip at byte %d accepted", i)
		}
	}
}

func TestValidate_TamperedClaims(t *testing.T) {
	t.Parallel()

	p := NewTokenProvider("super-secret", time.Hour)
	tok, err := p.Issue(Principal{ID: 5, Email: "e@f.g", UserName: "eve"})
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	// Swap the claims segment for one asserting a different identity.
	forged := base64.RawURLEncoding.EncodeToString(
		[]byte(`{"id":1,"userName":"admin","iss":"admin@example.com"}`))
	_, err = p.Validate(parts[0] + "." + forged + "." + parts[2])
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenProvider("right-secret", time.Hour)
	verifier := NewTokenProvider("wrong-secret", time.Hour)

	tok, err := issuer.Issue(Principal{ID: 3, Email: "x@y.z", UserName: "x"})
	require.NoError(t, err)

	_, err = verifier.Validate(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Malformed(t *testing.T) {
	t.Parallel()

	p := NewTokenProvider("k", time.Hour)
	for _, tok := range []string{"", "not.a.jwt", "a.b", "...."} {
		if _, err := p.Validate(tok); err == nil {
			t.Fatalf("malformed token %q accepted", tok)
		}
	}
}

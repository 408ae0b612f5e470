package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-16-chars!!"

// signHS256 signs claims with the shared test secret.
func signHS256(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func adminClaims(exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":                "user-123",
		"preferred_username": "jane",
		"iss":                "http://localhost:8080/realms/portfolio",
		"exp":                exp.Unix(),
		"realm_access":       map[string]any{"roles": []any{"ADMIN", "client"}},
	}
}

func newHMACVerifier(t *testing.T, issuer string) *Verifier {
	t.Helper()
	v, err := NewVerifier(VerifierConfig{HMACSecret: testSecret, Issuer: issuer})
	require.NoError(t, err)
	return v
}

// =========================================================================
// CONSTRUCTION
// =========================================================================

func TestNewVerifier(t *testing.T) {
	tests := []struct {
		name    string
		cfg     VerifierConfig
		wantErr bool
	}{
		{"no key", VerifierConfig{}, true},
		{"short secret", VerifierConfig{HMACSecret: "short"}, true},
		{"both keys", VerifierConfig{HMACSecret: testSecret, PublicKeyPEM: "x"}, true},
		{"garbage PEM", VerifierConfig{PublicKeyPEM: "not a key"}, true},
		{"valid secret", VerifierConfig{HMACSecret: testSecret}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVerifier(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// =========================================================================
// VERIFY
// =========================================================================

func TestVerify_HS256(t *testing.T) {
	v := newHMACVerifier(t, "http://localhost:8080/realms/portfolio")

	p, err := v.Verify(signHS256(t, adminClaims(time.Now().Add(time.Hour))))
	require.NoError(t, err)

	assert.Equal(t, "user-123", p.Subject)
	assert.Equal(t, "jane", p.Username)
	assert.Equal(t, []string{"ROLE_ADMIN", "ROLE_client"}, p.Authorities)
	assert.True(t, p.HasAuthority("ROLE_ADMIN"))
	assert.False(t, p.HasAuthority("ROLE_admin"))
}

func TestVerify_Rejects(t *testing.T) {
	v := newHMACVerifier(t, "http://localhost:8080/realms/portfolio")

	noExp := adminClaims(time.Now())
	delete(noExp, "exp")

	wrongIssuer := adminClaims(time.Now().Add(time.Hour))
	wrongIssuer["iss"] = "https://evil.example.com"

	otherKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, adminClaims(time.Now().Add(time.Hour))).
		SignedString([]byte("another-secret-of-16+chars"))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, adminClaims(time.Now().Add(time.Hour))).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", signHS256(t, adminClaims(time.Now().Add(-time.Minute)))},
		{"missing exp", signHS256(t, noExp)},
		{"wrong issuer", signHS256(t, wrongIssuer)},
		{"wrong key", otherKey},
		{"alg none", unsigned},
		{"garbage", "not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestVerify_RS256(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	v, err := NewVerifier(VerifierConfig{PublicKeyPEM: string(pemKey)})
	require.NoError(t, err)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, adminClaims(time.Now().Add(time.Hour))).SignedString(key)
	require.NoError(t, err)

	p, err := v.Verify(signed)
	require.NoError(t, err)
	assert.True(t, p.HasAuthority("ROLE_ADMIN"))

	// An HS256 token must not be accepted by an RS256 verifier.
	_, err = v.Verify(signHS256(t, adminClaims(time.Now().Add(time.Hour))))
	assert.Error(t, err)
}

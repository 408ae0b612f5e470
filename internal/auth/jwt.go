// Package auth verifies bearer tokens issued by the identity provider and
// turns their claims into authorities.
//
// AUTHORIZATION FLOW OVERVIEW:
//  1. The browser obtains an access token from Keycloak (not from us).
//  2. It calls /api/admin/... with "Authorization: Bearer <jwt>".
//  3. Authenticate verifies the signature, expiry and issuer, maps
//     realm_access.roles to "ROLE_<role>" authorities and stores a Principal
//     in the request context.
//  4. RequireAuthority("ROLE_ADMIN") rejects requests whose principal is
//     missing or lacks the authority.
//
// The server never issues tokens. It only needs the verification key:
// either a shared HS256 secret or the realm's RS256 public key in PEM form.
package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// VerifierConfig selects the verification key. Exactly one of HMACSecret and
// PublicKeyPEM must be set. Issuer is checked when non-empty.
type VerifierConfig struct {
	HMACSecret   string
	PublicKeyPEM string
	Issuer       string
}

// Verifier validates bearer tokens.
type Verifier struct {
	key     any
	methods []string
	issuer  string
}

// NewVerifier builds a Verifier from cfg.
func NewVerifier(cfg VerifierConfig) (*Verifier, error) {
	switch {
	case cfg.HMACSecret != "" && cfg.PublicKeyPEM != "":
		return nil, errors.New("auth: set either an HMAC secret or a public key, not both")

	case cfg.PublicKeyPEM != "":
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("auth: parsing RSA public key: %w", err)
		}
		return &Verifier{key: key, methods: []string{"RS256"}, issuer: cfg.Issuer}, nil

	case cfg.HMACSecret != "":
		if len(cfg.HMACSecret) < 16 {
			return nil, errors.New("auth: JWT secret must be at least 16 characters")
		}
		return &Verifier{key: []byte(cfg.HMACSecret), methods: []string{"HS256"}, issuer: cfg.Issuer}, nil

	default:
		return nil, errors.New("auth: no JWT verification key configured")
	}
}

// Principal is the authenticated caller.
type Principal struct {
	Subject     string
	Username    string
	Authorities []string
}

// HasAuthority reports whether p carries authority.
func (p *Principal) HasAuthority(authority string) bool {
	if p == nil {
		return false
	}
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// Verify parses tokenStr and returns its principal.
//
// VALIDATION CHECKS (performed by the jwt library):
//   - signature matches the configured key
//   - algorithm is the one the key is for (prevents algorithm confusion)
//   - exp is present and in the future
//   - iss matches, when an issuer is configured
func (v *Verifier) Verify(tokenStr string) (*Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods(v.methods),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		switch v.key.(type) {
		case *rsa.PublicKey:
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
		default:
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
		}
		return v.key, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("auth: token expired")
		}
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("auth: invalid token claims")
	}

	sub, _ := claims.GetSubject()
	username, _ := claims["preferred_username"].(string)

	return &Principal{
		Subject:     sub,
		Username:    username,
		Authorities: RolesFromClaims(claims),
	}, nil
}

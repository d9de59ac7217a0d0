package auth

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/minima-hotel/backoffice-api/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidScope = errors.New("token missing required scope")
)

const signingKeyMaxAge = 24 * time.Hour

// JWTValidator checks the Azure AD bearer tokens that back-office staff
// present when they sign in through the dashboard. Signing keys come from
// the tenant's JWKS endpoint and are cached for a day.
type JWTValidator struct {
	config *config.AzureAdConfig

	mu          sync.RWMutex
	signingKeys map[string]*rsa.PublicKey
	fetchedAt   time.Time
}

func NewJWTValidator(cfg *config.AzureAdConfig) *JWTValidator {
	return &JWTValidator{
		config:      cfg,
		signingKeys: make(map[string]*rsa.PublicKey),
	}
}

// ValidateToken verifies the token signature, audience, issuer and scopes,
// and returns the staff member's identity and roles.
func (v *JWTValidator) ValidateToken(tokenString string) (*UserContext, error) {
	// An unverified parse only to read the key ID from the header
	token, _, err := new(jwt.Parser).ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	kid, ok := token.Header["kid"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing kid in header", ErrInvalidToken)
	}

	signingKey, err := v.signingKey(kid)
	if err != nil {
		return nil, fmt.Errorf("failed to get signing key: %w", err)
	}

	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsedToken.Valid {
		return nil, ErrInvalidToken
	}

	if err := v.checkAudience(claims); err != nil {
		return nil, err
	}

	iss, _ := claims.GetIssuer()
	if !strings.Contains(iss, v.config.TenantId) {
		return nil, fmt.Errorf("%w: invalid issuer", ErrInvalidToken)
	}

	if v.config.RequiredScopes != "" {
		if !HasRequiredScope(ExtractScopes(claims), v.config.RequiredScopes) {
			return nil, ErrInvalidScope
		}
	}

	return userFromClaims(claims), nil
}

func (v *JWTValidator) checkAudience(claims jwt.MapClaims) error {
	if v.config.ClientId == "" {
		return nil
	}

	aud, _ := claims.GetAudience()
	for _, a := range aud {
		if a == v.config.ClientId || strings.Contains(a, v.config.ClientId) {
			return nil
		}
	}
	return fmt.Errorf("%w: invalid audience", ErrInvalidToken)
}

// userFromClaims maps Azure AD claims onto the staff identity the rest of
// the API works with. Tokens minted for service principals carry no oid,
// so a stable ID is derived from the email as a fallback.
func userFromClaims(claims jwt.MapClaims) *UserContext {
	userCtx := &UserContext{
		DisplayName: firstStringClaim(claims, "name", "unique_name", "preferred_username"),
		Email:       firstStringClaim(claims, "email", "upn", "unique_name"),
		Roles:       ExtractRoles(claims),
	}

	if oid := firstStringClaim(claims, "oid", "sub"); oid != "" {
		if uid, err := uuid.Parse(oid); err == nil {
			userCtx.UserID = uid
		}
	}
	if userCtx.UserID == uuid.Nil && userCtx.Email != "" {
		userCtx.UserID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(userCtx.Email))
	}

	return userCtx
}

func (v *JWTValidator) signingKey(kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, exists := v.signingKeys[kid]
	fresh := time.Since(v.fetchedAt) < signingKeyMaxAge
	v.mu.RUnlock()

	if exists && fresh {
		return key, nil
	}

	// Cache miss or stale keys; Azure rotates them without notice
	if err := v.refreshSigningKeys(); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	key, exists = v.signingKeys[kid]
	if !exists {
		return nil, fmt.Errorf("signing key not found for kid: %s", kid)
	}
	return key, nil
}

func (v *JWTValidator) refreshSigningKeys() error {
	jwksURL := fmt.Sprintf("%s%s/discovery/v2.0/keys", v.config.InstanceUrl, v.config.TenantId)

	resp, err := http.Get(jwksURL)
	if err != nil {
		return fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("JWKS endpoint returned status %d", resp.StatusCode)
	}

	var jwks struct {
		Keys []struct {
			Kid string `json:"kid"`
			N   string `json:"n"`
			E   string `json:"e"`
			Kty string `json:"kty"`
			Use string `json:"use"`
		} `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return fmt.Errorf("failed to decode JWKS: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey)
	for _, k := range jwks.Keys {
		if k.Kty != "RSA" || k.Use != "sig" {
			continue
		}
		key, err := rsaKeyFromJWK(k.N, k.E)
		if err != nil {
			continue
		}
		keys[k.Kid] = key
	}

	v.mu.Lock()
	v.signingKeys = keys
	v.fetchedAt = time.Now()
	v.mu.Unlock()

	return nil
}

func rsaKeyFromJWK(modulus, exponent string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(modulus)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(exponent)
	if err != nil {
		return nil, err
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 + int(b)
	}

	return &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: e}, nil
}

func firstStringClaim(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if val, ok := claims[key]; ok {
			if str, ok := val.(string); ok && str != "" {
				return str
			}
		}
	}
	return ""
}

// ExtractRoles reads app roles from the token. Azure AD emits them under
// "roles"; "role" is kept for tokens minted by the legacy tenant policy.
func ExtractRoles(claims jwt.MapClaims) []Role {
	roles := []Role{}

	for _, key := range []string{"roles", "role"} {
		val, ok := claims[key]
		if !ok {
			continue
		}
		switch v := val.(type) {
		case []interface{}:
			for _, r := range v {
				if str, ok := r.(string); ok {
					roles = append(roles, Role(str))
				}
			}
		case []string:
			for _, str := range v {
				roles = append(roles, Role(str))
			}
		case string:
			roles = append(roles, Role(v))
		}
	}

	return roles
}

// ExtractScopes collects delegated scopes from the scp/scope claims.
func ExtractScopes(claims jwt.MapClaims) []string {
	scopes := []string{}

	if val, ok := claims["scp"]; ok {
		if str, ok := val.(string); ok {
			scopes = strings.Split(str, " ")
		}
	}
	if val, ok := claims["scope"]; ok {
		if str, ok := val.(string); ok {
			scopes = append(scopes, strings.Split(str, " ")...)
		}
	}

	return scopes
}

// HasRequiredScope reports whether the token carries at least one of the
// comma-separated required scopes.
func HasRequiredScope(tokenScopes []string, required string) bool {
	required = strings.TrimSpace(required)
	if required == "" {
		return true
	}

	for _, req := range strings.Split(required, ",") {
		req = strings.TrimSpace(req)
		if req == "" {
			continue
		}
		for _, scope := range tokenScopes {
			if strings.EqualFold(scope, req) {
				return true
			}
		}
	}
	return false
}

package middleware

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jaekwang-park/taskboard/internal/model"
)

// ErrUnknownSubject is returned by a PrincipalResolver when no local user
// matches the token subject.
var ErrUnknownSubject = errors.New("unknown subject")

type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, sub string) (model.Principal, error)
}

type ResolverFunc func(ctx context.Context, sub string) (model.Principal, error)

func (f ResolverFunc) ResolvePrincipal(ctx context.Context, sub string) (model.Principal, error) {
	return f(ctx, sub)
}

type AuthConfig struct {
	DevMode     bool
	Keys        KeySource
	Issuer      string
	AppClientID string
	Resolver    PrincipalResolver
}

// KeySource returns the RSA verification key for a JWT key ID.
type KeySource interface {
	GetKey(kid string) (*rsa.PublicKey, error)
}

type Auth struct {
	cfg AuthConfig
}

func NewAuth(cfg AuthConfig) (*Auth, error) {
	if !cfg.DevMode {
		if cfg.Resolver == nil {
			return nil, errors.New("middleware: Resolver is required when DevMode is false")
		}
		if cfg.Keys == nil {
			return nil, errors.New("middleware: Keys is required when DevMode is false")
		}
	}
	return &Auth{cfg: cfg}, nil
}

// Middleware attaches the caller's principal to the request context or
// rejects the request with 401.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			p   model.Principal
			err error
		)
		if a.cfg.DevMode {
			p, err = devPrincipal(r)
		} else {
			p, err = a.tokenPrincipal(r)
		}

		if err == nil {
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
			return
		}

		var denied unauthorized
		if errors.As(err, &denied) {
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHENTICATED", string(denied))
			return
		}
		slog.ErrorContext(r.Context(), "principal resolution failed", "error", err)
		writeAuthError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "could not resolve user")
	})
}

// unauthorized is a rejection reason safe to return to the client.
type unauthorized string

func (u unauthorized) Error() string { return string(u) }

func devPrincipal(r *http.Request) (model.Principal, error) {
	id := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if id == "" {
		return model.Principal{}, unauthorized("X-User-ID header required in dev mode")
	}
	return model.Principal{ID: id, DisplayName: r.Header.Get("X-User-Name")}, nil
}

type cognitoClaims struct {
	TokenUse string `json:"token_use"`
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

// issuedFor checks the app client: access tokens carry client_id, ID tokens
// carry it as the audience.
func (c cognitoClaims) issuedFor(clientID string) bool {
	if c.TokenUse == "access" {
		return c.ClientID == clientID
	}
	return slices.Contains(c.Audience, clientID)
}

func (a *Auth) tokenPrincipal(r *http.Request) (model.Principal, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return model.Principal{}, unauthorized("authorization header required")
	}
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return model.Principal{}, unauthorized("invalid authorization header format")
	}

	var claims cognitoClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		kid, ok := t.Header["kid"].(string)
		if !ok {
			return nil, errors.New("kid header not found")
		}
		return a.cfg.Keys.GetKey(kid)
	},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(a.cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || !claims.issuedFor(a.cfg.AppClientID) {
		return model.Principal{}, unauthorized("invalid or expired token")
	}
	if claims.Subject == "" {
		return model.Principal{}, unauthorized("sub claim not found")
	}

	p, err := a.cfg.Resolver.ResolvePrincipal(r.Context(), claims.Subject)
	if errors.Is(err, ErrUnknownSubject) {
		return model.Principal{}, unauthorized("user not found")
	}
	if err != nil {
		return model.Principal{}, err
	}
	return p, nil
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func CognitoJWKSURL(region, userPoolID string) string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s/.well-known/jwks.json", region, userPoolID)
}

func CognitoIssuer(region, userPoolID string) string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, userPoolID)
}

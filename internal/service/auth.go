package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jaekwang-park/taskboard/internal/cognito"
	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/repository"
)

// AuthService registers and signs in users against the identity service and
// keeps the local users table in step with it.
type AuthService struct {
	idp   cognito.Client
	users repository.UserRepository
}

func NewAuthService(idp cognito.Client, users repository.UserRepository) *AuthService {
	return &AuthService{idp: idp, users: users}
}

// LoginResult is a signed-in principal and the tokens that prove it.
type LoginResult struct {
	Tokens    cognito.Tokens
	Principal model.Principal
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (cognito.SignUpResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return cognito.SignUpResult{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if password == "" {
		return cognito.SignUpResult{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	return s.idp.SignUp(ctx, cognito.Registration{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: password,
	})
}

func (s *AuthService) ConfirmRegistration(ctx context.Context, email, code string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	return s.idp.ConfirmSignUp(ctx, email, code)
}

func (s *AuthService) ResendCode(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	return s.idp.ResendConfirmationCode(ctx, email)
}

// Login authenticates with the identity service and upserts the local user
// described by the returned ID token.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if email == "" {
		return LoginResult{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if password == "" {
		return LoginResult{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	tokens, err := s.idp.Login(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}

	claims, err := idTokenClaims(tokens.IDToken)
	if err != nil {
		return LoginResult{}, err
	}
	if claims.Email == "" {
		claims.Email = email
	}

	user, err := s.users.GetOrCreate(ctx, claims.Subject, claims.Email, claims.Name)
	if err != nil {
		return LoginResult{}, storeError("get or create user", err)
	}
	return LoginResult{Tokens: tokens, Principal: user.Principal()}, nil
}

func (s *AuthService) Refresh(ctx context.Context, email, refreshToken string) (cognito.Tokens, error) {
	if email == "" {
		return cognito.Tokens{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if refreshToken == "" {
		return cognito.Tokens{}, fmt.Errorf("%w: refresh token is required", ErrInvalidInput)
	}
	return s.idp.Refresh(ctx, email, refreshToken)
}

func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return fmt.Errorf("%w: access token is required", ErrInvalidInput)
	}
	return s.idp.GlobalSignOut(ctx, accessToken)
}

// ResolvePrincipal maps an identity-service subject to the local principal.
func (s *AuthService) ResolvePrincipal(ctx context.Context, sub string) (model.Principal, error) {
	user, err := s.users.GetByCognitoSub(ctx, sub)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Principal{}, ErrUnauthenticated
		}
		return model.Principal{}, storeError("resolve user", err)
	}
	return user.Principal(), nil
}

type identityClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// idTokenClaims reads the claims of an ID token just issued by the identity
// service. The signature is not checked.
func idTokenClaims(idToken string) (identityClaims, error) {
	var claims identityClaims
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, &claims); err != nil {
		return identityClaims{}, fmt.Errorf("failed to parse id token: %w", err)
	}
	if claims.Subject == "" {
		return identityClaims{}, errors.New("id token has no sub claim")
	}
	return claims, nil
}

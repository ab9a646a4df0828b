// Package cognito is the identity-service boundary: account registration,
// password sign-in, token refresh and global sign-out against an Amazon
// Cognito user pool.
package cognito

import "context"

type Client interface {
	SignUp(ctx context.Context, reg Registration) (SignUpResult, error)
	ConfirmSignUp(ctx context.Context, email, code string) error
	ResendConfirmationCode(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (Tokens, error)
	Refresh(ctx context.Context, email, refreshToken string) (Tokens, error)
	GlobalSignOut(ctx context.Context, accessToken string) error
}

// Registration is a new account. Name is stored as the standard "name"
// attribute and may be empty.
type Registration struct {
	Name     string
	Email    string
	Password string
}

type SignUpResult struct {
	UserSub      string
	Confirmed    bool
	CodeDelivery string
}

// Tokens are issued on sign-in. Refresh leaves RefreshToken empty.
type Tokens struct {
	IDToken      string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int32
	TokenType    string
}

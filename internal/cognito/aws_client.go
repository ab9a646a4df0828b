package cognito

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
)

// AWSClient talks to a Cognito user pool app client. The client secret is
// optional; when set every call carries a SECRET_HASH.
type AWSClient struct {
	api          *cip.Client
	clientID     string
	clientSecret string
}

func NewAWSClient(ctx context.Context, region, clientID, clientSecret string) (*AWSClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &AWSClient{
		api:          cip.NewFromConfig(cfg),
		clientID:     clientID,
		clientSecret: clientSecret,
	}, nil
}

func (c *AWSClient) SignUp(ctx context.Context, reg Registration) (SignUpResult, error) {
	attrs := []types.AttributeType{{Name: aws.String("email"), Value: aws.String(reg.Email)}}
	if reg.Name != "" {
		attrs = append(attrs, types.AttributeType{Name: aws.String("name"), Value: aws.String(reg.Name)})
	}

	out, err := c.api.SignUp(ctx, &cip.SignUpInput{
		ClientId:       aws.String(c.clientID),
		SecretHash:     c.secretHash(reg.Email),
		Username:       aws.String(reg.Email),
		Password:       aws.String(reg.Password),
		UserAttributes: attrs,
	})
	if err != nil {
		return SignUpResult{}, mapAWSError(err)
	}

	res := SignUpResult{UserSub: aws.ToString(out.UserSub), Confirmed: out.UserConfirmed}
	if out.CodeDeliveryDetails != nil {
		res.CodeDelivery = string(out.CodeDeliveryDetails.DeliveryMedium)
	}
	return res, nil
}

func (c *AWSClient) ConfirmSignUp(ctx context.Context, email, code string) error {
	_, err := c.api.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(c.clientID),
		SecretHash:       c.secretHash(email),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	})
	return mapAWSError(err)
}

func (c *AWSClient) ResendConfirmationCode(ctx context.Context, email string) error {
	_, err := c.api.ResendConfirmationCode(ctx, &cip.ResendConfirmationCodeInput{
		ClientId:   aws.String(c.clientID),
		SecretHash: c.secretHash(email),
		Username:   aws.String(email),
	})
	return mapAWSError(err)
}

func (c *AWSClient) Login(ctx context.Context, email, password string) (Tokens, error) {
	return c.initiateAuth(ctx, types.AuthFlowTypeUserPasswordAuth, email, map[string]string{
		"USERNAME": email,
		"PASSWORD": password,
	})
}

func (c *AWSClient) Refresh(ctx context.Context, email, refreshToken string) (Tokens, error) {
	return c.initiateAuth(ctx, types.AuthFlowTypeRefreshTokenAuth, email, map[string]string{
		"REFRESH_TOKEN": refreshToken,
	})
}

func (c *AWSClient) GlobalSignOut(ctx context.Context, accessToken string) error {
	_, err := c.api.GlobalSignOut(ctx, &cip.GlobalSignOutInput{AccessToken: aws.String(accessToken)})
	return mapAWSError(err)
}

func (c *AWSClient) initiateAuth(ctx context.Context, flow types.AuthFlowType, email string, params map[string]string) (Tokens, error) {
	if h := c.secretHash(email); h != nil {
		params["SECRET_HASH"] = *h
	}

	out, err := c.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		ClientId:       aws.String(c.clientID),
		AuthFlow:       flow,
		AuthParameters: params,
	})
	if err != nil {
		return Tokens{}, mapAWSError(err)
	}
	r := out.AuthenticationResult
	if r == nil {
		return Tokens{}, errors.New("cognito: authentication challenge not supported")
	}
	return Tokens{
		IDToken:      aws.ToString(r.IdToken),
		AccessToken:  aws.ToString(r.AccessToken),
		RefreshToken: aws.ToString(r.RefreshToken),
		ExpiresIn:    r.ExpiresIn,
		TokenType:    aws.ToString(r.TokenType),
	}, nil
}

func (c *AWSClient) secretHash(username string) *string {
	if c.clientSecret == "" {
		return nil
	}
	h := SecretHash(username, c.clientID, c.clientSecret)
	return &h
}

// SecretHash is Base64(HMAC-SHA256(clientSecret, username+clientID)).
func SecretHash(username, clientID, clientSecret string) string {
	mac := hmac.New(sha256.New, []byte(clientSecret))
	mac.Write([]byte(username + clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// mapAWSError wraps known Cognito API errors around the matching sentinel.
// A nil error stays nil.
func mapAWSError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("cognito: %w", err)
	}
	if e, ok := awsErrors[apiErr.ErrorCode()]; ok {
		return fmt.Errorf("%s: %w", apiErr.ErrorMessage(), e.sentinel)
	}
	return fmt.Errorf("cognito %s: %w", apiErr.ErrorCode(), err)
}

var _ Client = (*AWSClient)(nil)

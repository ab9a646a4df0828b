package cognito

import (
	"errors"
	"net/http"
)

var (
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrUserNotFound          = errors.New("user not found")
	ErrUserNotConfirmed      = errors.New("user not confirmed")
	ErrInvalidPassword       = errors.New("invalid password")
	ErrInvalidCode           = errors.New("invalid code")
	ErrCodeExpired           = errors.New("code expired")
	ErrTooManyRequests       = errors.New("too many requests")
	ErrNotAuthorized         = errors.New("not authorized")
	ErrLimitExceeded         = errors.New("limit exceeded")
	ErrPasswordResetRequired = errors.New("password reset required")
	ErrInvalidParameter      = errors.New("invalid parameter")
)

// ErrorInfo is the HTTP rendering of an identity-service failure.
type ErrorInfo struct {
	Status int
	Code   string
}

// awsErrors maps Cognito API error codes to sentinels and their HTTP form.
var awsErrors = map[string]struct {
	sentinel error
	info     ErrorInfo
}{
	"UsernameExistsException":        {ErrUserAlreadyExists, ErrorInfo{http.StatusConflict, "USER_ALREADY_EXISTS"}},
	"UserNotFoundException":          {ErrUserNotFound, ErrorInfo{http.StatusNotFound, "USER_NOT_FOUND"}},
	"UserNotConfirmedException":      {ErrUserNotConfirmed, ErrorInfo{http.StatusForbidden, "USER_NOT_CONFIRMED"}},
	"InvalidPasswordException":       {ErrInvalidPassword, ErrorInfo{http.StatusBadRequest, "INVALID_PASSWORD"}},
	"CodeMismatchException":          {ErrInvalidCode, ErrorInfo{http.StatusBadRequest, "INVALID_CODE"}},
	"ExpiredCodeException":           {ErrCodeExpired, ErrorInfo{http.StatusBadRequest, "CODE_EXPIRED"}},
	"TooManyRequestsException":       {ErrTooManyRequests, ErrorInfo{http.StatusTooManyRequests, "TOO_MANY_REQUESTS"}},
	"NotAuthorizedException":         {ErrNotAuthorized, ErrorInfo{http.StatusUnauthorized, "NOT_AUTHORIZED"}},
	"LimitExceededException":         {ErrLimitExceeded, ErrorInfo{http.StatusTooManyRequests, "LIMIT_EXCEEDED"}},
	"PasswordResetRequiredException": {ErrPasswordResetRequired, ErrorInfo{http.StatusForbidden, "PASSWORD_RESET_REQUIRED"}},
	"InvalidParameterException":      {ErrInvalidParameter, ErrorInfo{http.StatusBadRequest, "INVALID_PARAMETER"}},
}

// LookupError reports the HTTP status and code for an error that wraps one of
// the package sentinels.
func LookupError(err error) (ErrorInfo, bool) {
	if err == nil {
		return ErrorInfo{}, false
	}
	for _, e := range awsErrors {
		if errors.Is(err, e.sentinel) {
			return e.info, true
		}
	}
	return ErrorInfo{}, false
}

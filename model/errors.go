package model

import (
	"errors"
	"net/http"
)

var (
	ErrMissingToken        = errors.New("MISSING_TOKEN")
	ErrUnresolvableAccount = errors.New("UNRESOLVABLE_ACCOUNT")
	ErrRateLimitReached    = errors.New("RATE_LIMIT_REACHED")
	ErrFetch               = errors.New("FETCH_ERROR")
	ErrWrite               = errors.New("WRITE_ERROR")
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewAPIError builds the response body and the http status for an error returned by the services
func NewAPIError(errReason error) (int, APIError) {
	switch {
	case errors.Is(errReason, ErrUnresolvableAccount):
		return http.StatusNotFound, APIError{
			Code:    ErrUnresolvableAccount.Error(),
			Message: "unable to resolve the github account. check the account name and try again",
		}

	case errors.Is(errReason, ErrRateLimitReached):
		return http.StatusTooManyRequests, APIError{
			Code:    ErrRateLimitReached.Error(),
			Message: "github rate limit reached. consider using a token to increase the limit or wait few minutes and try again",
		}

	case errors.Is(errReason, ErrMissingToken):
		return http.StatusInternalServerError, APIError{
			Code:    ErrMissingToken.Error(),
			Message: "no github token configured. set GITHUB_TOKEN and restart the server",
		}

	case errors.Is(errReason, ErrFetch):
		return http.StatusInternalServerError, APIError{
			Code:    ErrFetch.Error(),
			Message: "internal server error. contact our support with the reason code for assistance",
		}
	}

	return http.StatusInternalServerError, APIError{
		Code:    "GENERIC_ERROR",
		Message: "internal server error. contact our support with the reason code for assistance",
	}
}

package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
	"github.com/olusolaa/resource-warden/internal/errors"
)

// throttleCodes are the transient rate-limit rejections eligible for retry.
// Everything else propagates immediately.
var throttleCodes = []string{
	"Throttled",
	"Throttling",
	"ThrottlingException",
	"TooManyRequestsException",
	"RequestLimitExceeded",
}

// IsThrottle reports whether err is a provider rate-limit rejection.
func IsThrottle(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := apiErrorCode(err); ok {
		for _, c := range throttleCodes {
			if code == c {
				return true
			}
		}
		return false
	}
	// No structured code available, fall back to message matching.
	return strings.Contains(err.Error(), "Throttl")
}

func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "AuthFailure") ||
		strings.Contains(msg, "UnauthorizedOperation") ||
		strings.Contains(msg, "AccessDenied")
}

// Classify maps an AWS SDK error to an application error with the proper
// code. service and operation give the call site for the message.
func Classify(service, operation string, err error, ctx context.Context) error {
	if err == nil {
		return errors.New(errors.CodeInternal, fmt.Sprintf("unexpected nil error in AWS error handler for %s.%s", service, operation))
	}

	if ctx != nil && ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), errors.CodeTimeout,
			fmt.Sprintf("context canceled during AWS %s.%s call", service, operation))
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, errors.CodeTimeout,
			fmt.Sprintf("context canceled during AWS %s.%s call", service, operation))
	}

	if IsThrottle(err) {
		return errors.Wrap(err, errors.CodeThrottled,
			fmt.Sprintf("AWS %s.%s throttled after retries", service, operation))
	}
	if IsAuthError(err) {
		return errors.Wrap(err, errors.CodePlatformAuthError,
			fmt.Sprintf("AWS authentication error calling %s.%s", service, operation))
	}
	if isNotFoundError(err) {
		return errors.Wrap(err, errors.CodeResourceNotFound,
			fmt.Sprintf("AWS %s.%s target not found", service, operation))
	}

	return errors.Wrap(err, errors.CodePlatformAPIError,
		fmt.Sprintf("AWS %s.%s call failed", service, operation))
}

func isNotFoundError(err error) bool {
	if code, ok := apiErrorCode(err); ok {
		return isNotFoundErrorCode(code)
	}
	msg := err.Error()
	return strings.Contains(msg, "NotFound") ||
		strings.Contains(msg, "not found") ||
		strings.Contains(msg, "not exist")
}

func isNotFoundErrorCode(code string) bool {
	notFoundCodes := []string{
		"ResourceNotFoundException",
		"EntityNotFoundException",
		"NotFoundException",
	}
	for _, nfCode := range notFoundCodes {
		if code == nfCode {
			return true
		}
	}
	return false
}

func apiErrorCode(err error) (string, bool) {
	// Type assertion first so lightweight test errors work without smithy.
	if mockErr, ok := err.(interface{ ErrorCode() string }); ok && mockErr != nil {
		return mockErr.ErrorCode(), true
	}
	var apiErr smithy.APIError
	if stderrs.As(err, &apiErr) && apiErr != nil {
		return apiErr.ErrorCode(), true
	}
	return "", false
}

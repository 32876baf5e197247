package errors

type Code string

const (
	CodeUnknown            Code = "UNKNOWN"
	CodeInternal           Code = "INTERNAL_ERROR"
	CodeConfigValidation   Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError    Code = "CONFIG_READ_ERROR"
	CodeConfigParseError   Code = "CONFIG_PARSE_ERROR"
	CodePlatformAPIError   Code = "PLATFORM_API_ERROR"
	CodePlatformAuthError  Code = "PLATFORM_AUTH_ERROR"
	CodeThrottled          Code = "THROTTLED"
	CodeResourceNotFound   Code = "RESOURCE_NOT_FOUND"
	CodeFilterError        Code = "FILTER_ERROR"
	CodeActionError        Code = "ACTION_ERROR"
	CodeTypeAssertionError Code = "TYPE_ASSERTION_ERROR"
	CodeNotImplemented     Code = "NOT_IMPLEMENTED"
	CodeTimeout            Code = "TIMEOUT_ERROR"
)

func (c Code) String() string {
	return string(c)
}

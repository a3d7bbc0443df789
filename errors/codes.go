package errors

// ErrorCode identifies a failure class in API responses.
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_FORBIDDEN         ErrorCode = 1006

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN         ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED         ErrorCode = 2001
	ErrorCode_AUTH_INVALID_CREDENTIALS   ErrorCode = 2002
	ErrorCode_AUTH_USER_NOT_FOUND        ErrorCode = 2003
	ErrorCode_AUTH_USER_ALREADY_EXISTS   ErrorCode = 2004
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN ErrorCode = 2005

	// Interview scheduling
	ErrorCode_INTERVIEW_LINK_INVALID     ErrorCode = 3000
	ErrorCode_INTERVIEW_NOT_FOUND        ErrorCode = 3001
	ErrorCode_INTERVIEW_SESSION_NOT_LIVE ErrorCode = 3002

	// Live voice channel
	ErrorCode_VOICE_NOT_CONFIGURED        ErrorCode = 4000
	ErrorCode_VOICE_CONNECT_FAILED        ErrorCode = 4001
	ErrorCode_VOICE_UNEXPECTED_DISCONNECT ErrorCode = 4002
	ErrorCode_VOICE_SESSION_NOT_FOUND     ErrorCode = 4003

	// Application submission
	ErrorCode_APPLICATION_INVALID_FILE ErrorCode = 5000
	ErrorCode_APPLICATION_REJECTED     ErrorCode = 5001

	// Upstream workflow engine
	ErrorCode_WORKFLOW_UNAVAILABLE ErrorCode = 6000
	ErrorCode_WORKFLOW_BAD_STATUS  ErrorCode = 6001
	ErrorCode_WORKFLOW_EMPTY_BODY  ErrorCode = 6002

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 7000
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 7001

	// Database
	ErrorCode_DB_CONNECTION_FAILED ErrorCode = 8000
	ErrorCode_DB_QUERY_FAILED      ErrorCode = 8001
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                     "OK",
	ErrorCode_INTERNAL:                    "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:            "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                   "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:              "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:           "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:             "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                   "FORBIDDEN",
	ErrorCode_AUTH_INVALID_TOKEN:          "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:          "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_CREDENTIALS:    "AUTH_INVALID_CREDENTIALS",
	ErrorCode_AUTH_USER_NOT_FOUND:         "AUTH_USER_NOT_FOUND",
	ErrorCode_AUTH_USER_ALREADY_EXISTS:    "AUTH_USER_ALREADY_EXISTS",
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN:  "AUTH_INVALID_REFRESH_TOKEN",
	ErrorCode_INTERVIEW_LINK_INVALID:      "INTERVIEW_LINK_INVALID",
	ErrorCode_INTERVIEW_NOT_FOUND:         "INTERVIEW_NOT_FOUND",
	ErrorCode_INTERVIEW_SESSION_NOT_LIVE:  "INTERVIEW_SESSION_NOT_LIVE",
	ErrorCode_VOICE_NOT_CONFIGURED:        "VOICE_NOT_CONFIGURED",
	ErrorCode_VOICE_CONNECT_FAILED:        "VOICE_CONNECT_FAILED",
	ErrorCode_VOICE_UNEXPECTED_DISCONNECT: "VOICE_UNEXPECTED_DISCONNECT",
	ErrorCode_VOICE_SESSION_NOT_FOUND:     "VOICE_SESSION_NOT_FOUND",
	ErrorCode_APPLICATION_INVALID_FILE:    "APPLICATION_INVALID_FILE",
	ErrorCode_APPLICATION_REJECTED:        "APPLICATION_REJECTED",
	ErrorCode_WORKFLOW_UNAVAILABLE:        "WORKFLOW_UNAVAILABLE",
	ErrorCode_WORKFLOW_BAD_STATUS:         "WORKFLOW_BAD_STATUS",
	ErrorCode_WORKFLOW_EMPTY_BODY:         "WORKFLOW_EMPTY_BODY",
	ErrorCode_INTEGRATION_STORAGE_FAILED:  "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:    "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:        "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:             "DB_QUERY_FAILED",
}

// String returns the canonical name for the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

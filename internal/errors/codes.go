package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials     ErrorCode = "AUTH_001"
	AuthMissingToken           ErrorCode = "AUTH_002"
	AuthExpiredToken           ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat     ErrorCode = "AUTH_004"
	AuthInsufficientPermission ErrorCode = "AUTH_005"
	AuthAccountLocked          ErrorCode = "AUTH_006"
	AuthEmailAlreadyRegistered ErrorCode = "AUTH_007"
	AuthInvalidRefreshToken    ErrorCode = "AUTH_008"
	AuthWeakPassword           ErrorCode = "AUTH_009"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidEmail  ErrorCode = "VALIDATION_005"
	ValidationInvalidID     ErrorCode = "VALIDATION_006"
	ValidationInvalidDate   ErrorCode = "VALIDATION_007"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound         ErrorCode = "TRANSACTION_001"
	TransactionInvalidAmount    ErrorCode = "TRANSACTION_002"
	TransactionInvalidType      ErrorCode = "TRANSACTION_003"
	TransactionInvalidScope     ErrorCode = "TRANSACTION_004"
	TransactionValidationFailed ErrorCode = "TRANSACTION_005"
)

// Savings error codes (SAVINGS_*)
const (
	SavingsNotFound         ErrorCode = "SAVINGS_001"
	SavingsInvalidAmount    ErrorCode = "SAVINGS_002"
	SavingsValidationFailed ErrorCode = "SAVINGS_003"
)

// Family error codes (FAMILY_*)
const (
	FamilyNotFound          ErrorCode = "FAMILY_001"
	FamilyInviteNotFound    ErrorCode = "FAMILY_002"
	FamilyAlreadyMember     ErrorCode = "FAMILY_003"
	FamilyNotMember         ErrorCode = "FAMILY_004"
	FamilyInvalidInviteCode ErrorCode = "FAMILY_005"
)

// Admin error codes (ADMIN_*)
const (
	AdminNotConfigured   ErrorCode = "ADMIN_001"
	AdminTableNotAllowed ErrorCode = "ADMIN_002"
	AdminRowNotFound     ErrorCode = "ADMIN_003"
	AdminUnknownColumn   ErrorCode = "ADMIN_004"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
	SystemRouteNotFound      ErrorCode = "SYSTEM_007"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials:     "Invalid email or password",
	AuthMissingToken:           "Authorization token is required",
	AuthExpiredToken:           "Authorization token has expired",
	AuthInvalidTokenFormat:     "Invalid authorization token format",
	AuthInsufficientPermission: "Insufficient permissions to access this resource",
	AuthAccountLocked:          "Account is locked or disabled",
	AuthEmailAlreadyRegistered: "An account with this email already exists",
	AuthInvalidRefreshToken:    "Refresh token is invalid or expired",
	AuthWeakPassword:           "Password does not meet the password policy",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidEmail:  "Invalid email address format",
	ValidationInvalidID:     "Invalid ID format",
	ValidationInvalidDate:   "Invalid date format or range",

	// Transaction errors
	TransactionNotFound:         "Transaction not found",
	TransactionInvalidAmount:    "Invalid transaction amount",
	TransactionInvalidType:      "Invalid transaction type",
	TransactionInvalidScope:     "Invalid scope",
	TransactionValidationFailed: "Transaction validation failed",

	// Savings errors
	SavingsNotFound:         "Savings target not found",
	SavingsInvalidAmount:    "Invalid savings amount",
	SavingsValidationFailed: "Savings target validation failed",

	// Family errors
	FamilyNotFound:          "Family not found",
	FamilyInviteNotFound:    "No family matches this invite code",
	FamilyAlreadyMember:     "You already belong to a family",
	FamilyNotMember:         "You are not a member of any family",
	FamilyInvalidInviteCode: "Invite code must be 6 letters or digits",

	// Admin errors
	AdminNotConfigured:   "Admin list is not configured",
	AdminTableNotAllowed: "Table is not available in the admin panel",
	AdminRowNotFound:     "Row not found",
	AdminUnknownColumn:   "Unknown column",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "System configuration error",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemRouteNotFound:      "Resource not found",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}

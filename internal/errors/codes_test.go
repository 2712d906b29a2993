package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

var codesByPrefix = map[string][]ErrorCode{
	"AUTH_": {
		AuthInvalidCredentials,
		AuthMissingToken,
		AuthExpiredToken,
		AuthInvalidTokenFormat,
		AuthInsufficientPermission,
		AuthAccountLocked,
		AuthEmailAlreadyRegistered,
		AuthInvalidRefreshToken,
		AuthWeakPassword,
	},
	"VALIDATION_": {
		ValidationGeneral,
		ValidationRequiredField,
		ValidationInvalidFormat,
		ValidationOutOfRange,
		ValidationInvalidEmail,
		ValidationInvalidID,
		ValidationInvalidDate,
	},
	"TRANSACTION_": {
		TransactionNotFound,
		TransactionInvalidAmount,
		TransactionInvalidType,
		TransactionInvalidScope,
		TransactionValidationFailed,
	},
	"SAVINGS_": {
		SavingsNotFound,
		SavingsInvalidAmount,
		SavingsValidationFailed,
	},
	"FAMILY_": {
		FamilyNotFound,
		FamilyInviteNotFound,
		FamilyAlreadyMember,
		FamilyNotMember,
		FamilyInvalidInviteCode,
	},
	"ADMIN_": {
		AdminNotConfigured,
		AdminTableNotAllowed,
		AdminRowNotFound,
		AdminUnknownColumn,
	},
	"SYSTEM_": {
		SystemInternalError,
		SystemDatabaseError,
		SystemServiceUnavailable,
		SystemConfigurationError,
		SystemUnexpectedError,
		SystemRateLimitExceeded,
		SystemRouteNotFound,
	},
}

func allCodes() []ErrorCode {
	var codes []ErrorCode
	for _, group := range codesByPrefix {
		codes = append(codes, group...)
	}
	return codes
}

// CodesTestSuite defines the test suite for error codes
type CodesTestSuite struct {
	suite.Suite
}

// TestCodesTestSuite runs the test suite
func TestCodesTestSuite(t *testing.T) {
	suite.Run(t, new(CodesTestSuite))
}

func (s *CodesTestSuite) TestGetErrorMessage_ValidCode() {
	testCases := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		{
			name:     "Auth Invalid Credentials",
			code:     AuthInvalidCredentials,
			expected: "Invalid email or password",
		},
		{
			name:     "Validation General",
			code:     ValidationGeneral,
			expected: "Validation failed",
		},
		{
			name:     "Savings Not Found",
			code:     SavingsNotFound,
			expected: "Savings target not found",
		},
		{
			name:     "Family Already Member",
			code:     FamilyAlreadyMember,
			expected: "You already belong to a family",
		},
		{
			name:     "Admin Not Configured",
			code:     AdminNotConfigured,
			expected: "Admin list is not configured",
		},
		{
			name:     "System Internal Error",
			code:     SystemInternalError,
			expected: "An unexpected error occurred. Please contact support with trace ID",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, GetErrorMessage(tc.code))
		})
	}
}

func (s *CodesTestSuite) TestGetErrorMessage_InvalidCode() {
	s.Equal("An error occurred", GetErrorMessage("INVALID_CODE"))
}

func (s *CodesTestSuite) TestIsValidErrorCode_ValidCodes() {
	for _, code := range allCodes() {
		s.True(IsValidErrorCode(code), "Expected %s to be valid", code)
	}
}

func (s *CodesTestSuite) TestIsValidErrorCode_InvalidCode() {
	for _, code := range []ErrorCode{"INVALID_001", "UNKNOWN_CODE", "", "AUTH_999", "CUSTOMER_001"} {
		s.False(IsValidErrorCode(code), "Expected %s to be invalid", code)
	}
}

func (s *CodesTestSuite) TestErrorCodeConstants_Uniqueness() {
	seen := make(map[ErrorCode]bool)
	for _, code := range allCodes() {
		s.False(seen[code], "Duplicate error code found: %s", code)
		seen[code] = true
	}
	s.Len(seen, len(errorMessages), "every registered code should be covered by this test")
}

func (s *CodesTestSuite) TestErrorCodeConstants_Format() {
	for prefix, codes := range codesByPrefix {
		s.Run(prefix, func() {
			for _, code := range codes {
				s.True(strings.HasPrefix(string(code), prefix), "Error code %s should start with %s", code, prefix)
			}
		})
	}
}

func (s *CodesTestSuite) TestAllErrorCodesHaveMessages() {
	for _, code := range allCodes() {
		message := GetErrorMessage(code)
		s.NotEmpty(message, "Error code %s should have a message", code)
		s.NotEqual("An error occurred", message, "Error code %s should have a specific message", code)
	}
}

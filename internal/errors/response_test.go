package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ResponseTestSuite struct {
	suite.Suite
	traceID string
}

func TestResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

func (s *ResponseTestSuite) SetupTest() {
	s.traceID = "0f1e2d3c-4b5a-6978-8796-a5b4c3d2e1f0"
}

func (s *ResponseTestSuite) TestNewErrorResponse_UsesCatalogueMessage() {
	response := NewErrorResponse(FamilyInviteNotFound, s.traceID)

	s.Equal("FAMILY_002", response.Error.Code)
	s.Equal(GetErrorMessage(FamilyInviteNotFound), response.Error.Message)
	s.Equal(s.traceID, response.Error.TraceID)
	s.Empty(response.Error.Details)
}

func (s *ResponseTestSuite) TestNewErrorResponse_Options() {
	s.Run("details and message", func() {
		response := NewErrorResponse(SavingsNotFound, s.traceID,
			WithMessage("Target tabungan tidak ditemukan"),
			WithDetails("id: 42"),
		)

		s.Equal("SAVINGS_001", response.Error.Code)
		s.Equal("Target tabungan tidak ditemukan", response.Error.Message)
		s.Equal([]string{"id: 42"}, response.Error.Details)
	})

	s.Run("last option wins", func() {
		response := NewErrorResponse(ValidationGeneral, s.traceID,
			WithDetails("amount: required", "type: required"),
			WithDetails("scope: invalid"),
			WithMessage("first"),
			WithMessage("second"),
		)

		s.Equal([]string{"scope: invalid"}, response.Error.Details)
		s.Equal("second", response.Error.Message)
	})
}

func (s *ResponseTestSuite) TestNewValidationErrorFromList() {
	details := []string{"amount: must be greater than 0", "created_at: invalid date"}

	response := NewValidationErrorFromList(details, s.traceID)

	s.Equal("VALIDATION_001", response.Error.Code)
	s.Equal(details, response.Error.Details)
	s.Equal(http.StatusBadRequest, response.GetHTTPStatus())
}

func (s *ResponseTestSuite) TestWrapSystemError_HidesCause() {
	cause := errors.New(`pq: relation "savings_targets" does not exist`)

	response, err := WrapSystemError(cause, s.traceID)

	s.Same(cause, err)
	s.Equal("SYSTEM_001", response.Error.Code)
	s.NotContains(response.Error.Message, "savings_targets")
	s.Empty(response.Error.Details)
	s.Equal(http.StatusInternalServerError, response.GetHTTPStatus())
}

func (s *ResponseTestSuite) TestJSONShape() {
	s.Run("with details", func() {
		body, err := json.Marshal(NewErrorResponse(AdminUnknownColumn, s.traceID, WithDetails("values: unknown column colour")))
		s.Require().NoError(err)

		var decoded map[string]map[string]interface{}
		s.Require().NoError(json.Unmarshal(body, &decoded))

		errorObj := decoded["error"]
		s.Equal("ADMIN_004", errorObj["code"])
		s.Equal(s.traceID, errorObj["trace_id"])
		s.Equal([]interface{}{"values: unknown column colour"}, errorObj["details"])
		s.IsType("", errorObj["message"])
	})

	s.Run("details omitted when empty", func() {
		body, err := json.Marshal(NewErrorResponse(AuthMissingToken, s.traceID))
		s.Require().NoError(err)
		s.NotContains(string(body), "details")
	})
}

func (s *ResponseTestSuite) TestGetHTTPStatus() {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ValidationInvalidDate, http.StatusBadRequest},
		{TransactionInvalidScope, http.StatusBadRequest},
		{SavingsInvalidAmount, http.StatusBadRequest},
		{FamilyInvalidInviteCode, http.StatusBadRequest},
		{AdminTableNotAllowed, http.StatusBadRequest},
		{AuthWeakPassword, http.StatusBadRequest},

		{AuthInvalidCredentials, http.StatusUnauthorized},
		{AuthExpiredToken, http.StatusUnauthorized},
		{AuthInvalidRefreshToken, http.StatusUnauthorized},

		{AuthInsufficientPermission, http.StatusForbidden},
		{AuthAccountLocked, http.StatusForbidden},
		{AdminNotConfigured, http.StatusForbidden},

		{TransactionNotFound, http.StatusNotFound},
		{FamilyNotFound, http.StatusNotFound},
		{FamilyNotMember, http.StatusNotFound},
		{AdminRowNotFound, http.StatusNotFound},
		{SystemRouteNotFound, http.StatusNotFound},

		{AuthEmailAlreadyRegistered, http.StatusConflict},
		{FamilyAlreadyMember, http.StatusConflict},

		{TransactionValidationFailed, http.StatusUnprocessableEntity},
		{SavingsValidationFailed, http.StatusUnprocessableEntity},

		{SystemRateLimitExceeded, http.StatusTooManyRequests},
		{SystemServiceUnavailable, http.StatusServiceUnavailable},

		{SystemDatabaseError, http.StatusInternalServerError},
		{SystemConfigurationError, http.StatusInternalServerError},
		{"UNKNOWN_999", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		s.Run(string(tt.code), func() {
			s.Equal(tt.want, GetHTTPStatus(tt.code))
		})
	}
}

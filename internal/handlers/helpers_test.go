package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newJSONContext builds a context for method/target with body encoded as JSON.
// A string body is sent as-is.
func newJSONContext(e *echo.Echo, method, target string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}

	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	if payload != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(TraceIDContextKey, "test-trace-id")
	return c, rec
}

func authenticate(c echo.Context, userID uuid.UUID) {
	c.Set("user_id", userID)
	c.Set("user_email", "sari@example.com")
}

func setPathParams(c echo.Context, names string, values ...string) {
	c.SetParamNames(strings.Split(names, ",")...)
	c.SetParamValues(values...)
}

func decodeErrorCode(rec *httptest.ResponseRecorder) string {
	var response ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		return ""
	}
	return response.Error.Code
}

func decodeSuccess(rec *httptest.ResponseRecorder, data interface{}) (SuccessResponse, error) {
	var raw struct {
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
		Meta    json.RawMessage `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		return SuccessResponse{}, err
	}
	if data != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			return SuccessResponse{}, err
		}
	}
	return SuccessResponse{Data: data, Message: raw.Message, Meta: raw.Meta}, nil
}

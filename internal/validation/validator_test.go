package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Type       string          `json:"type" validate:"required,transaction_type"`
	Scope      string          `json:"scope" validate:"omitempty,scope"`
	Amount     float64         `json:"amount" validate:"money_amount"`
	Deposit    decimal.Decimal `json:"deposit" validate:"positive_amount"`
	Saved      decimal.Decimal `json:"saved" validate:"nonnegative_amount"`
	InviteCode string          `json:"invite_code" validate:"omitempty,invite_code"`
	Month      string          `json:"month" validate:"omitempty,month"`
}

func validRequest() sampleRequest {
	return sampleRequest{
		Type:    "expense",
		Scope:   "family",
		Amount:  150000.50,
		Deposit: decimal.NewFromInt(10),
		Month:   "2024-02",
	}
}

func failedFields(t *testing.T, err error) []string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

func TestValidator_AcceptsValidRequest(t *testing.T) {
	assert.NoError(t, NewValidator().Struct(validRequest()))
}

func TestValidator_CustomTags(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sampleRequest)
		field  string
	}{
		{"unknown type", func(r *sampleRequest) { r.Type = "transfer" }, "type"},
		{"unknown scope", func(r *sampleRequest) { r.Scope = "team" }, "scope"},
		{"zero amount", func(r *sampleRequest) { r.Amount = 0 }, "amount"},
		{"three decimals", func(r *sampleRequest) { r.Amount = 10.125 }, "amount"},
		{"negative deposit", func(r *sampleRequest) { r.Deposit = decimal.NewFromInt(-1) }, "deposit"},
		{"negative saved", func(r *sampleRequest) { r.Saved = decimal.NewFromInt(-5) }, "saved"},
		{"saved sub-cent", func(r *sampleRequest) { r.Saved = decimal.RequireFromString("0.001") }, "saved"},
		{"short invite code", func(r *sampleRequest) { r.InviteCode = "AB12" }, "invite_code"},
		{"invite code symbols", func(r *sampleRequest) { r.InviteCode = "AB-123" }, "invite_code"},
		{"bad month", func(r *sampleRequest) { r.Month = "2024-13" }, "month"},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			assert.Equal(t, []string{tt.field}, failedFields(t, v.Struct(req)))
		})
	}
}

func TestValidator_InviteCodeIsCaseInsensitive(t *testing.T) {
	req := validRequest()
	req.InviteCode = " ab12cd "
	assert.NoError(t, NewValidator().Struct(req))
}

func TestValidator_TypeIsCaseInsensitive(t *testing.T) {
	req := validRequest()
	req.Type = "INCOME"
	assert.NoError(t, NewValidator().Struct(req))
}

func TestGetValidator_ReturnsSingleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}

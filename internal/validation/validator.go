package validation

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"finance-tracker/internal/finance"
	"finance-tracker/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("scope", validateScope)
	_ = v.RegisterValidation("invite_code", validateInviteCode)
	_ = v.RegisterValidation("money_amount", validateMoneyAmount)
	_ = v.RegisterValidation("positive_amount", validatePositiveAmount)
	_ = v.RegisterValidation("nonnegative_amount", validateNonNegativeAmount)
	_ = v.RegisterValidation("month", validateMonth)

	// decimals validate as their exact string form
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s against its validate tags.
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.IsValidTransactionType(strings.ToLower(fl.Field().String()))
}

func validateScope(fl validator.FieldLevel) bool {
	return models.IsValidScope(strings.ToLower(fl.Field().String()))
}

// validateInviteCode accepts codes in any case and with surrounding spaces;
// callers normalise before lookup.
func validateInviteCode(fl validator.FieldLevel) bool {
	return models.IsValidInviteCode(strings.ToUpper(strings.TrimSpace(fl.Field().String())))
}

// validateMoneyAmount requires a positive amount with at most 2 decimal places.
func validateMoneyAmount(fl validator.FieldLevel) bool {
	amount, ok := fieldDecimal(fl.Field())
	if !ok || !amount.IsPositive() {
		return false
	}
	return amount.Equal(amount.Truncate(2))
}

// validatePositiveAmount validates that an amount is greater than 0
func validatePositiveAmount(fl validator.FieldLevel) bool {
	amount, ok := fieldDecimal(fl.Field())
	return ok && amount.IsPositive()
}

func validateNonNegativeAmount(fl validator.FieldLevel) bool {
	amount, ok := fieldDecimal(fl.Field())
	return ok && !amount.IsNegative() && amount.Equal(amount.Truncate(2))
}

func validateMonth(fl validator.FieldLevel) bool {
	_, err := time.Parse(finance.MonthLayout, fl.Field().String())
	return err == nil
}

func fieldDecimal(field reflect.Value) (decimal.Decimal, bool) {
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(field.Int()), true
	case reflect.Float32, reflect.Float64:
		return decimal.NewFromFloat(field.Float()), true
	case reflect.String:
		d, err := decimal.NewFromString(field.String())
		return d, err == nil
	}
	return decimal.Zero, false
}

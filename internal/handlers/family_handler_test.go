package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/finance"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/services"
	"finance-tracker/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestFamilyHandler(t *testing.T) {
	suite.Run(t, new(FamilyHandlerSuite))
}

type FamilyHandlerSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	familyService *service_mocks.MockFamilyServiceInterface
	handler       *FamilyHandler
	e             *echo.Echo
	userID        uuid.UUID
	familyID      uuid.UUID
}

func (s *FamilyHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.familyService = service_mocks.NewMockFamilyServiceInterface(s.ctrl)
	s.handler = NewFamilyHandler(s.familyService, finance.LanguageEnglish)
	s.e = newTestEcho()
	s.userID = uuid.New()
	s.familyID = uuid.New()
}

func (s *FamilyHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *FamilyHandlerSuite) family(role string) *dto.FamilyResponse {
	return &dto.FamilyResponse{
		ID:         s.familyID,
		Name:       "Keluarga " + gofakeit.LastName(),
		InviteCode: "K7Q2ZB",
		CreatedBy:  s.userID,
		CreatedAt:  time.Now(),
		Role:       role,
		Members: []dto.FamilyMemberResponse{
			{UserID: s.userID, Email: gofakeit.Email(), Role: role, JoinedAt: time.Now()},
		},
	}
}

func (s *FamilyHandlerSuite) TestCreateFamily() {
	s.Run("created", func() {
		s.familyService.EXPECT().CreateFamily(s.userID, "Keluarga Wijaya").Return(s.family(models.FamilyRoleOwner), nil)

		c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/families", map[string]string{"name": "Keluarga Wijaya"})
		authenticate(c, s.userID)

		s.NoError(s.handler.CreateFamily(c))
		s.Equal(http.StatusCreated, rec.Code)

		var family dto.FamilyResponse
		_, err := decodeSuccess(rec, &family)
		s.Require().NoError(err)
		s.Equal(models.FamilyRoleOwner, family.Role)
		s.Len(family.InviteCode, models.InviteCodeLength)
	})

	s.Run("already in a family", func() {
		s.familyService.EXPECT().CreateFamily(s.userID, "Keluarga Kedua").Return(nil, services.ErrAlreadyInFamily)

		c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/families", map[string]string{"name": "Keluarga Kedua"})
		authenticate(c, s.userID)

		s.NoError(s.handler.CreateFamily(c))
		s.Equal(http.StatusConflict, rec.Code)
		s.Equal("FAMILY_003", decodeErrorCode(rec))
	})

	s.Run("name required", func() {
		c, _ := newJSONContext(s.e, http.MethodPost, "/api/v1/families", map[string]string{})
		authenticate(c, s.userID)

		var validationErrors validator.ValidationErrors
		s.True(errors.As(s.handler.CreateFamily(c), &validationErrors))
	})
}

func (s *FamilyHandlerSuite) TestJoinFamily() {
	tests := []struct {
		name       string
		code       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{"joined", " k7q2zb ", nil, http.StatusOK, ""},
		{"unknown code", "ZZZZZZ", repositories.ErrFamilyNotFound, http.StatusNotFound, "FAMILY_002"},
		{"already member", "K7Q2ZB", services.ErrAlreadyInFamily, http.StatusConflict, "FAMILY_003"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			var family *dto.FamilyResponse
			if tt.serviceErr == nil {
				family = s.family(models.FamilyRoleMember)
			}
			s.familyService.EXPECT().JoinFamily(s.userID, tt.code).Return(family, tt.serviceErr)

			c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/families/join", map[string]string{"invite_code": tt.code})
			authenticate(c, s.userID)

			s.NoError(s.handler.JoinFamily(c))
			s.Equal(tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				s.Equal(tt.wantCode, decodeErrorCode(rec))
			}
		})
	}
}

func (s *FamilyHandlerSuite) TestJoinFamily_MalformedCode() {
	c, _ := newJSONContext(s.e, http.MethodPost, "/api/v1/families/join", map[string]string{"invite_code": "AB-12"})
	authenticate(c, s.userID)

	var validationErrors validator.ValidationErrors
	s.True(errors.As(s.handler.JoinFamily(c), &validationErrors))
}

func (s *FamilyHandlerSuite) TestLeaveFamily() {
	s.Run("left", func() {
		s.familyService.EXPECT().LeaveFamily(s.userID).Return(nil)

		c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/families/leave", nil)
		authenticate(c, s.userID)

		s.NoError(s.handler.LeaveFamily(c))
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("not a member", func() {
		s.familyService.EXPECT().LeaveFamily(s.userID).Return(services.ErrNotFamilyMember)

		c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/families/leave", nil)
		authenticate(c, s.userID)

		s.NoError(s.handler.LeaveFamily(c))
		s.Equal(http.StatusNotFound, rec.Code)
		s.Equal("FAMILY_004", decodeErrorCode(rec))
	})
}

func (s *FamilyHandlerSuite) TestGetMyFamily() {
	s.familyService.EXPECT().GetMyFamily(s.userID).Return(s.family(models.FamilyRoleMember), nil)

	c, rec := newJSONContext(s.e, http.MethodGet, "/api/v1/families/me", nil)
	authenticate(c, s.userID)

	s.NoError(s.handler.GetMyFamily(c))
	s.Equal(http.StatusOK, rec.Code)

	var family dto.FamilyResponse
	_, err := decodeSuccess(rec, &family)
	s.Require().NoError(err)
	s.Len(family.Members, 1)
}

func (s *FamilyHandlerSuite) TestListTransactions() {
	familyID := s.familyID
	s.familyService.EXPECT().
		ListTransactions(s.userID, gomock.Any()).
		DoAndReturn(func(_ uuid.UUID, query *dto.TransactionListQuery) ([]models.Transaction, int64, error) {
			s.Equal(2, query.Page)
			s.Equal(10, query.PageSize)
			return []models.Transaction{{
				ID:       uuid.New(),
				UserID:   s.userID,
				FamilyID: &familyID,
				Scope:    models.ScopeFamily,
				Type:     models.TransactionTypeExpense,
				Amount:   decimal.NewFromInt(350000),
				Category: models.CategoryUtilities,
			}}, 11, nil
		})

	c, rec := newJSONContext(s.e, http.MethodGet, "/api/v1/families/transactions?page=2&page_size=10", nil)
	authenticate(c, s.userID)

	s.NoError(s.handler.ListTransactions(c))
	s.Equal(http.StatusOK, rec.Code)

	var body struct {
		Data []dto.TransactionResponse `json:"data"`
		Meta dto.PaginationMeta        `json:"meta"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().Len(body.Data, 1)
	s.Equal(models.ScopeFamily, body.Data[0].Scope)
	s.Equal(2, body.Meta.TotalPages)
}

func (s *FamilyHandlerSuite) TestCreateTransaction_NotMember() {
	s.familyService.EXPECT().CreateTransaction(s.userID, gomock.Any()).Return(nil, services.ErrNotFamilyMember)

	c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/families/transactions", map[string]interface{}{
		"type":   "income",
		"amount": 1500000,
	})
	authenticate(c, s.userID)

	s.NoError(s.handler.CreateTransaction(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("FAMILY_004", decodeErrorCode(rec))
}

func (s *FamilyHandlerSuite) TestUpdateTransaction_MissingRow() {
	id := uuid.New()
	s.familyService.EXPECT().UpdateTransaction(s.userID, id, gomock.Any()).Return(nil, repositories.ErrTransactionNotFound)

	c, rec := newJSONContext(s.e, http.MethodPut, "/", map[string]interface{}{"category": "Dining"})
	authenticate(c, s.userID)
	setPathParams(c, "id", id.String())

	s.NoError(s.handler.UpdateTransaction(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("TRANSACTION_001", decodeErrorCode(rec))
}

func (s *FamilyHandlerSuite) TestDeleteTransaction() {
	id := uuid.New()
	s.familyService.EXPECT().DeleteTransaction(s.userID, id).Return(nil)

	c, rec := newJSONContext(s.e, http.MethodDelete, "/", nil)
	authenticate(c, s.userID)
	setPathParams(c, "id", id.String())

	s.NoError(s.handler.DeleteTransaction(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *FamilyHandlerSuite) TestSavings() {
	familyID := s.familyID
	target := models.SavingsTarget{
		ID:            uuid.New(),
		UserID:        s.userID,
		FamilyID:      &familyID,
		Scope:         models.ScopeFamily,
		Name:          "Sekolah anak",
		TargetAmount:  decimal.NewFromInt(10000000),
		CurrentAmount: decimal.NewFromInt(8000000),
	}

	s.Run("list uses the configured language", func() {
		s.familyService.EXPECT().ListSavings(s.userID).Return([]models.SavingsTarget{target}, nil)

		c, rec := newJSONContext(s.e, http.MethodGet, "/api/v1/families/savings", nil)
		authenticate(c, s.userID)

		s.NoError(s.handler.ListSavings(c))
		s.Equal(http.StatusOK, rec.Code)

		var targets []dto.SavingsResponse
		_, err := decodeSuccess(rec, &targets)
		s.Require().NoError(err)
		s.Require().Len(targets, 1)
		s.Require().NotNil(targets[0].Warning)
		s.Equal("Your savings are about 20% away from the target.", *targets[0].Warning)
	})

	s.Run("create", func() {
		s.familyService.EXPECT().CreateSavings(s.userID, gomock.Any()).Return(&target, nil)

		c, rec := newJSONContext(s.e, http.MethodPost, "/api/v1/families/savings", map[string]interface{}{
			"name":          "Sekolah anak",
			"target_amount": 10000000,
		})
		authenticate(c, s.userID)

		s.NoError(s.handler.CreateSavings(c))
		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("delete missing", func() {
		s.familyService.EXPECT().DeleteSavings(s.userID, target.ID).Return(repositories.ErrSavingsTargetNotFound)

		c, rec := newJSONContext(s.e, http.MethodDelete, "/", nil)
		authenticate(c, s.userID)
		setPathParams(c, "id", target.ID.String())

		s.NoError(s.handler.DeleteSavings(c))
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *FamilyHandlerSuite) TestGetSummary() {
	s.Run("month passed through", func() {
		s.familyService.EXPECT().GetSummary(s.userID, "2025-02").Return(&dto.FamilySummaryResponse{
			Month:            "2025-02",
			Income:           decimal.NewFromInt(12000000),
			Expense:          decimal.NewFromInt(7500000),
			Net:              decimal.NewFromInt(4500000),
			TransactionCount: 31,
			Activity:         []dto.ActivityLogResponse{},
		}, nil)

		c, rec := newJSONContext(s.e, http.MethodGet, "/api/v1/families/summary?month=2025-02", nil)
		authenticate(c, s.userID)

		s.NoError(s.handler.GetSummary(c))
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"transaction_count":31`)
	})

	s.Run("malformed month", func() {
		c, _ := newJSONContext(s.e, http.MethodGet, "/api/v1/families/summary?month=Feb-2025", nil)
		authenticate(c, s.userID)

		var validationErrors validator.ValidationErrors
		s.True(errors.As(s.handler.GetSummary(c), &validationErrors))
	})

	s.Run("month out of range", func() {
		s.familyService.EXPECT().GetSummary(s.userID, "").Return(nil, finance.ErrInvalidMonth)

		c, rec := newJSONContext(s.e, http.MethodGet, "/api/v1/families/summary", nil)
		authenticate(c, s.userID)

		s.NoError(s.handler.GetSummary(c))
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("VALIDATION_007", decodeErrorCode(rec))
	})
}

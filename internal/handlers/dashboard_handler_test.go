package handlers

import (
	"errors"
	"net/http"
	"testing"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/finance"
	"finance-tracker/internal/models"
	"finance-tracker/internal/services"
	"finance-tracker/internal/services/service_mocks"

	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestDashboardHandler(t *testing.T) {
	suite.Run(t, new(DashboardHandlerSuite))
}

type DashboardHandlerSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	dashboardService *service_mocks.MockDashboardServiceInterface
	healthService    *service_mocks.MockFinancialHealthServiceInterface
	handler          *DashboardHandler
	e                *echo.Echo
	userID           uuid.UUID
}

func (s *DashboardHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.dashboardService = service_mocks.NewMockDashboardServiceInterface(s.ctrl)
	s.healthService = service_mocks.NewMockFinancialHealthServiceInterface(s.ctrl)
	s.handler = NewDashboardHandler(s.dashboardService, s.healthService)
	s.e = newTestEcho()
	s.userID = uuid.New()
}

func (s *DashboardHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *DashboardHandlerSuite) TestGetDashboard_PassesQuery() {
	s.dashboardService.EXPECT().
		GetDashboard(s.userID, gomock.Any()).
		DoAndReturn(func(_ uuid.UUID, query *dto.DashboardQuery) (*dto.DashboardResponse, error) {
			s.Equal(models.ScopeFamily, query.Scope)
			s.Equal(30, query.Range)
			s.Equal(models.TransactionTypeIncome, query.Type)
			return &dto.DashboardResponse{
				Scope:        query.Scope,
				TotalBalance: decimal.NewFromInt(2500000),
				Notes:        []dto.TransactionResponse{},
			}, nil
		})

	c, rec := newJSONContext(s.e, http.MethodGet, "/api/v1/dashboard?scope=family&range=30&type=income", nil)
	authenticate(c, s.userID)

	s.NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusOK, rec.Code)

	var dashboard dto.DashboardResponse
	_, err := decodeSuccess(rec, &dashboard)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(2500000).Equal(dashboard.TotalBalance))
}

func (s *DashboardHandlerSuite) TestGetDashboard_InvalidQuery() {
	for _, target := range []string{
		"/api/v1/dashboard?range=14",
		"/api/v1/dashboard?scope=office",
		"/api/v1/dashboard?type=transfer",
	} {
		c, _ := newJSONContext(s.e, http.MethodGet, target, nil)
		authenticate(c, s.userID)

		var validationErrors validator.ValidationErrors
		s.True(errors.As(s.handler.GetDashboard(c), &validationErrors), target)
	}
}

func (s *DashboardHandlerSuite) TestGetDashboard_FamilyScopeWithoutFamily() {
	s.dashboardService.EXPECT().GetDashboard(s.userID, gomock.Any()).Return(nil, services.ErrNotFamilyMember)

	c, rec := newJSONContext(s.e, http.MethodGet, "/api/v1/dashboard?scope=family", nil)
	authenticate(c, s.userID)

	s.NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("FAMILY_004", decodeErrorCode(rec))
}

func (s *DashboardHandlerSuite) TestGetFinancialHealth() {
	s.healthService.EXPECT().GetFinancialHealth(s.userID, "").Return(&dto.FinancialHealthResponse{
		Scope:         models.ScopePersonal,
		Month:         "2025-03",
		MonthlyIncome: decimal.NewFromInt(10000000),
		HealthReport: finance.HealthReport{
			HealthScore: 82,
			Level:       finance.LevelExcellent,
		},
	}, nil)

	c, rec := newJSONContext(s.e, http.MethodGet, "/api/v1/financial-health", nil)
	authenticate(c, s.userID)

	s.NoError(s.handler.GetFinancialHealth(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"health_score":82`)
	s.Contains(rec.Body.String(), `"level":"Excellent"`)
}

func (s *DashboardHandlerSuite) TestGetFinancialHealth_Unauthenticated() {
	c, rec := newJSONContext(s.e, http.MethodGet, "/api/v1/financial-health", nil)

	s.NoError(s.handler.GetFinancialHealth(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}

package handlers_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/contai-app/contai_backend/internal/apperrors"
	"github.com/contai-app/contai_backend/internal/core/domain"
	portssvc "github.com/contai-app/contai_backend/internal/core/ports/services"
	"github.com/contai-app/contai_backend/internal/dto"
	"github.com/contai-app/contai_backend/internal/handlers"
	"github.com/contai-app/contai_backend/internal/platform/config"
	"github.com/contai-app/contai_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LaunchService ---
type MockLaunchService struct {
	mock.Mock
}

func (m *MockLaunchService) CreateLaunch(ctx context.Context, req dto.CreateLaunchRequest) (*domain.Launch, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Launch), args.Error(1)
}

func (m *MockLaunchService) GetLaunchByID(ctx context.Context, launchID int64) (*domain.Launch, error) {
	args := m.Called(ctx, launchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Launch), args.Error(1)
}

func (m *MockLaunchService) ListLaunches(ctx context.Context) ([]domain.Launch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Launch), args.Error(1)
}

func (m *MockLaunchService) ListLaunchesByMonth(ctx context.Context, year int, month int) ([]domain.Launch, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Launch), args.Error(1)
}

func (m *MockLaunchService) UpdateLaunch(ctx context.Context, launchID int64, req dto.UpdateLaunchRequest) (*domain.Launch, error) {
	args := m.Called(ctx, launchID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Launch), args.Error(1)
}

func (m *MockLaunchService) DeleteLaunch(ctx context.Context, launchID int64) error {
	args := m.Called(ctx, launchID)
	return args.Error(0)
}

func (m *MockLaunchService) GetMonthSummary(ctx context.Context, year int, month int) (*domain.MonthSummary, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthSummary), args.Error(1)
}

var _ portssvc.LaunchSvcFacade = (*MockLaunchService)(nil)

// --- Test Suite ---
type LaunchHandlerTestSuite struct {
	suite.Suite
	mockService *MockLaunchService
	router      *gin.Engine
}

func (suite *LaunchHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockLaunchService)
	suite.router = gin.New()

	cfg := &config.Config{Port: "3001", RateLimit: "100-M"}
	posthogClient := utils.InitializePosthogClient("", "", slog.Default())
	err := handlers.RegisterRoutes(suite.router, cfg, suite.mockService, posthogClient)
	suite.Require().NoError(err)
}

func (suite *LaunchHandlerTestSuite) perform(method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LaunchHandlerTestSuite) salario() *domain.Launch {
	return &domain.Launch{
		ID:          1,
		Description: "Salário",
		Amount:      decimal.RequireFromString("1000.00"),
		Type:        domain.Credit,
		Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *LaunchHandlerTestSuite) aluguel() *domain.Launch {
	return &domain.Launch{
		ID:          2,
		Description: "Aluguel",
		Amount:      decimal.RequireFromString("400.00"),
		Type:        domain.Debit,
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

// --- Create ---

func (suite *LaunchHandlerTestSuite) TestCreateLaunch_Success() {
	suite.mockService.On("CreateLaunch", mock.Anything, mock.MatchedBy(func(req dto.CreateLaunchRequest) bool {
		return req.Description == "Salário" &&
			req.Amount.Equal(decimal.RequireFromString("1000.00")) &&
			req.Type == domain.Credit &&
			req.Date == "2024-03-05"
	})).Return(suite.salario(), nil).Once()

	w := suite.perform(http.MethodPost, "/launches", `{"description":"Salário","amount":"1000.00","type":"Crédito","date":"2024-03-05"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.LaunchResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(1), resp.ID)
	suite.Equal("Salário", resp.Description)
	suite.Equal("1000.00", resp.Amount)
	suite.Equal(domain.Credit, resp.Type)
	suite.Equal("2024-03-05", resp.Date)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *LaunchHandlerTestSuite) TestCreateLaunch_NumericAmountIsAccepted() {
	suite.mockService.On("CreateLaunch", mock.Anything, mock.MatchedBy(func(req dto.CreateLaunchRequest) bool {
		return req.Amount.Equal(decimal.RequireFromString("1000"))
	})).Return(suite.salario(), nil).Once()

	w := suite.perform(http.MethodPost, "/launches", `{"description":"Salário","amount":1000,"type":"Crédito","date":"2024-03-05"}`)

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *LaunchHandlerTestSuite) TestCreateLaunch_MissingFieldIs400() {
	w := suite.perform(http.MethodPost, "/launches", `{"description":"Salário","amount":"1000.00","type":"Crédito"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "description, amount, date, type")
	suite.mockService.AssertNotCalled(suite.T(), "CreateLaunch")
}

func (suite *LaunchHandlerTestSuite) TestCreateLaunch_BadTypeIs400() {
	w := suite.perform(http.MethodPost, "/launches", `{"description":"x","amount":"1.00","type":"Transferência","date":"2024-03-05"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateLaunch")
}

// --- Get ---

func (suite *LaunchHandlerTestSuite) TestGetLaunch_NonNumericIDIs400() {
	w := suite.perform(http.MethodGet, "/launches/abc", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "GetLaunchByID")
}

func (suite *LaunchHandlerTestSuite) TestGetLaunch_NotFoundIs404() {
	suite.mockService.On("GetLaunchByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.perform(http.MethodGet, "/launches/99", "")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LaunchHandlerTestSuite) TestGetLaunch_Success() {
	suite.mockService.On("GetLaunchByID", mock.Anything, int64(1)).Return(suite.salario(), nil).Once()

	w := suite.perform(http.MethodGet, "/launches/1", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LaunchResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("1000.00", resp.Amount)
}

// --- Update ---

func (suite *LaunchHandlerTestSuite) TestUpdateLaunch_PartialBodyOnlyCarriesPresentFields() {
	updated := suite.salario()
	updated.Amount = decimal.RequireFromString("1200.00")

	suite.mockService.On("UpdateLaunch", mock.Anything, int64(1), mock.MatchedBy(func(req dto.UpdateLaunchRequest) bool {
		return req.Description == nil &&
			req.Type == nil &&
			req.Date == nil &&
			req.Amount != nil && req.Amount.Equal(decimal.RequireFromString("1200.00"))
	})).Return(updated, nil).Once()

	w := suite.perform(http.MethodPut, "/launches/1", `{"amount":"1200.00"}`)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LaunchResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("1200.00", resp.Amount)
	suite.Equal("Salário", resp.Description)
	suite.Equal("2024-03-05", resp.Date)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *LaunchHandlerTestSuite) TestUpdateLaunch_NotFoundIs404() {
	suite.mockService.On("UpdateLaunch", mock.Anything, int64(99), mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.perform(http.MethodPut, "/launches/99", `{"description":"Aluguel"}`)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LaunchHandlerTestSuite) TestUpdateLaunch_NonNumericIDIs400() {
	w := suite.perform(http.MethodPut, "/launches/abc", `{"description":"Aluguel"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "UpdateLaunch")
}

// --- Delete ---

func (suite *LaunchHandlerTestSuite) TestDeleteLaunch_SuccessIs204() {
	suite.mockService.On("DeleteLaunch", mock.Anything, int64(1)).Return(nil).Once()

	w := suite.perform(http.MethodDelete, "/launches/1", "")

	suite.Equal(http.StatusNoContent, w.Code)
	suite.Empty(w.Body.String())
}

func (suite *LaunchHandlerTestSuite) TestDeleteLaunch_NotFoundIs404() {
	suite.mockService.On("DeleteLaunch", mock.Anything, int64(99)).Return(apperrors.ErrNotFound).Once()

	w := suite.perform(http.MethodDelete, "/launches/99", "")

	suite.Equal(http.StatusNotFound, w.Code)
}

// --- By month ---

func (suite *LaunchHandlerTestSuite) TestListByMonth_MissingMonthIs400() {
	w := suite.perform(http.MethodGet, "/launches/by-month?year=2024", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListLaunchesByMonth")
}

func (suite *LaunchHandlerTestSuite) TestListByMonth_ReturnsLaunchesInDateOrder() {
	suite.mockService.On("ListLaunchesByMonth", mock.Anything, 2024, 3).
		Return([]domain.Launch{*suite.salario(), *suite.aluguel()}, nil).Once()

	w := suite.perform(http.MethodGet, "/launches/by-month?year=2024&month=3", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.LaunchResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	suite.Equal("Salário", resp[0].Description)
	suite.Equal("Aluguel", resp[1].Description)
}

func (suite *LaunchHandlerTestSuite) TestListByMonth_EmptyMonthIsEmptyArray() {
	suite.mockService.On("ListLaunchesByMonth", mock.Anything, 2024, 12).
		Return([]domain.Launch{}, nil).Once()

	w := suite.perform(http.MethodGet, "/launches/by-month?year=2024&month=12", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq("[]", w.Body.String())
}

// --- Summary ---

func (suite *LaunchHandlerTestSuite) TestSummary_MissingParamsIs400() {
	w := suite.perform(http.MethodGet, "/launches/summary?month=3", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "GetMonthSummary")
}

func (suite *LaunchHandlerTestSuite) TestSummary_ReturnsPortugueseKeys() {
	suite.mockService.On("GetMonthSummary", mock.Anything, 2024, 3).Return(&domain.MonthSummary{
		TotalCredits: decimal.RequireFromString("1000.00"),
		TotalDebits:  decimal.RequireFromString("400.00"),
	}, nil).Once()

	w := suite.perform(http.MethodGet, "/launches/summary?year=2024&month=3", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"total_creditos":"1000.00","total_debitos":"400.00"}`, w.Body.String())
}

// --- Statement ---

func (suite *LaunchHandlerTestSuite) TestStatement_ExportsRowsAndTotals() {
	suite.mockService.On("ListLaunchesByMonth", mock.Anything, 2024, 3).
		Return([]domain.Launch{*suite.salario(), *suite.aluguel()}, nil).Once()

	w := suite.perform(http.MethodGet, "/launches/statement.csv?year=2024&month=3", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "text/csv")
	body := w.Body.String()
	suite.Contains(body, "Salário,1000.00,Crédito,2024-03-05")
	suite.Contains(body, "Aluguel,400.00,Débito,2024-03-10")
	suite.Contains(body, "total_creditos,1000.00")
	suite.Contains(body, "total_debitos,400.00")
	suite.Contains(body, "saldo,600.00")
}

// --- Dashboard ---

func (suite *LaunchHandlerTestSuite) TestDashboard_RendersSummaryAndTable() {
	suite.mockService.On("ListLaunchesByMonth", mock.Anything, 2024, 3).
		Return([]domain.Launch{*suite.salario(), *suite.aluguel()}, nil).Once()
	suite.mockService.On("GetMonthSummary", mock.Anything, 2024, 3).Return(&domain.MonthSummary{
		TotalCredits: decimal.RequireFromString("1000.00"),
		TotalDebits:  decimal.RequireFromString("400.00"),
	}, nil).Once()

	w := suite.perform(http.MethodGet, "/?year=2024&month=3", "")

	suite.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	suite.Contains(body, "Resumo do Mês Selecionado")
	suite.Contains(body, "R$ 1000.00")
	suite.Contains(body, "R$ 400.00")
	suite.Contains(body, "R$ 600.00")
	// Newest first in the rendered table.
	suite.Less(strings.Index(body, "Aluguel"), strings.Index(body, "Salário"))
}

func (suite *LaunchHandlerTestSuite) TestHealth() {
	w := suite.perform(http.MethodGet, "/health", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func TestLaunchHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LaunchHandlerTestSuite))
}

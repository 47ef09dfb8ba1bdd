package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/application/adapter/adaptertest"
	"github.com/carbon-tracker/backend/internal/application/usecase/auth"
	"github.com/carbon-tracker/backend/internal/application/usecase/dashboard"
	"github.com/carbon-tracker/backend/internal/application/usecase/emission"
	"github.com/carbon-tracker/backend/internal/application/usecase/factor"
	"github.com/carbon-tracker/backend/internal/application/usecase/report"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/domain/unit"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/validation"
)

type recordingEmailService struct {
	mu     sync.Mutex
	queued []adapter.QueueReportReadyInput
	err    error
}

func (s *recordingEmailService) QueueReportReadyEmail(_ context.Context, in adapter.QueueReportReadyInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.queued = append(s.queued, in)
	return nil
}

type harness struct {
	router  *gin.Engine
	factors *adaptertest.FactorRepository
	inputs  *adaptertest.UserInputRepository
	reports *adaptertest.ReportRepository
	users   *adaptertest.UserRepository
	tokens  *adaptertest.TokenService
	emails  *recordingEmailService
	diesel  *entity.EmissionFactor
	grid    *entity.EmissionFactor
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.Register())

	h := &harness{
		diesel: entity.NewEmissionFactor("Diesel", "fuel", entity.Scope1, 2.68, "liter", "DEFRA"),
		grid:   entity.NewEmissionFactor("Grid electricity", "electricity", entity.Scope2, 0.233, "kWh", "DEFRA"),
		users:  adaptertest.NewUserRepository(),
		tokens: adaptertest.NewTokenService(),
		emails: &recordingEmailService{},
	}
	h.factors = adaptertest.NewFactorRepository(h.diesel, h.grid)
	h.inputs = adaptertest.NewUserInputRepository(h.factors)
	h.reports = adaptertest.NewReportRepository()

	converter := unit.Default()
	passwords := adaptertest.PasswordService{}
	scopes := dashboard.NewSummarizeScopesUseCase(h.inputs)
	monthly := dashboard.NewMonthlySeriesUseCase(h.inputs)

	authCtl := NewAuthController(
		auth.NewRegisterUserUseCase(h.users, passwords, h.tokens),
		auth.NewLoginUserUseCase(h.users, passwords, h.tokens),
		auth.NewRefreshTokenUseCase(h.tokens),
		auth.NewLogoutUserUseCase(h.tokens),
	)
	factorCtl := NewFactorController(
		factor.NewListFactorsUseCase(h.factors),
		factor.NewCreateFactorUseCase(h.factors, converter),
	)
	inputCtl := NewInputController(
		emission.NewCalculateSingleInputUseCase(h.factors, h.inputs, converter),
		emission.NewListInputsUseCase(h.inputs),
	)
	dashCtl := NewDashboardController(dashboard.NewGetDashboardSummaryUseCase(scopes, monthly), scopes, monthly)
	reportCtl := NewReportController(
		report.NewGenerateReportUseCase(scopes, h.reports),
		report.NewListReportsUseCase(h.reports),
		report.NewGetReportUseCase(h.reports),
		h.users,
		h.emails,
	)
	unitCtl := NewUnitController(converter)

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/auth/register", authCtl.Register)
	api.POST("/auth/login", authCtl.Login)
	api.POST("/auth/refresh", authCtl.RefreshToken)
	api.GET("/units/convert", unitCtl.Convert)

	protected := api.Group("", middleware.NewAuthMiddleware(h.tokens).Authenticate())
	protected.POST("/auth/logout", authCtl.Logout)
	protected.GET("/factors", factorCtl.List)
	protected.POST("/factors", factorCtl.Create)
	protected.POST("/inputs", inputCtl.Create)
	protected.GET("/inputs", inputCtl.List)
	protected.GET("/dashboard/summary", dashCtl.Summary)
	protected.GET("/dashboard/scopes", dashCtl.Scopes)
	protected.GET("/dashboard/monthly", dashCtl.Monthly)
	protected.POST("/reports", reportCtl.Create)
	protected.GET("/reports", reportCtl.List)
	protected.GET("/reports/:id", reportCtl.Get)

	h.router = r
	return h
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) register(t *testing.T, email string) dto.AuthResponse {
	t.Helper()
	w := h.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":        email,
		"password":     "correct-horse",
		"company_name": "Acme",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestAuthFlow(t *testing.T) {
	h := newHarness(t)

	session := h.register(t, "Ops@Example.com")
	assert.Equal(t, "ops@example.com", session.User.Email)
	assert.Equal(t, "ops", session.User.Username)

	dup := h.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email": "ops@example.com", "password": "correct-horse",
	})
	assert.Equal(t, http.StatusConflict, dup.Code)
	assert.Equal(t, "AUTH-010001", decode[dto.ErrorResponse](t, dup).Code)

	bad := h.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "ops@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, bad.Code)

	login := h.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "ops@example.com", "password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, login.Code)

	refreshed := h.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]any{
		"refresh_token": session.RefreshToken,
	})
	require.Equal(t, http.StatusOK, refreshed.Code)
	pair := decode[dto.TokenResponse](t, refreshed)
	assert.NotEqual(t, session.RefreshToken, pair.RefreshToken)

	reused := h.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]any{
		"refresh_token": session.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, reused.Code)

	out := h.do(http.MethodPost, "/api/v1/auth/logout", pair.AccessToken, map[string]any{
		"refresh_token": pair.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, out.Code)
}

func TestRegister_BindingErrorNamesField(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{"email": "nope", "password": "correct-horse"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, "email", resp.Field)
	assert.Equal(t, "AUTH-010005", resp.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/api/v1/dashboard/summary", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateInput(t *testing.T) {
	h := newHarness(t)
	token := h.register(t, "ops@example.com").AccessToken

	tests := []struct {
		name   string
		body   map[string]any
		status int
		code   string
		field  string
		kg     float64
	}{
		{
			name:   "gallons against a liter factor",
			body:   map[string]any{"factor_id": h.diesel.ID.String(), "activity_value": 10, "activity_unit": "gallon", "date_period_start": "2024-01-15"},
			status: http.StatusCreated,
			kg:     37.8541 * 2.68,
		},
		{
			name:   "numeric string value",
			body:   map[string]any{"factor_id": h.grid.ID.String(), "activity_value": "2", "activity_unit": "MWh", "date_period_start": "2024-02-01"},
			status: http.StatusCreated,
			kg:     2000 * 0.233,
		},
		{
			name:   "non-numeric value",
			body:   map[string]any{"factor_id": h.diesel.ID.String(), "activity_value": "abc", "activity_unit": "liter", "date_period_start": "2024-01-15"},
			status: http.StatusBadRequest,
			code:   "EMI-010001",
			field:  "activity_value",
		},
		{
			name:   "missing factor id",
			body:   map[string]any{"activity_value": 1, "activity_unit": "liter", "date_period_start": "2024-01-15"},
			status: http.StatusBadRequest,
			code:   "EMI-010001",
			field:  "factor_id",
		},
		{
			name:   "bad date",
			body:   map[string]any{"factor_id": h.diesel.ID.String(), "activity_value": 1, "activity_unit": "liter", "date_period_start": "15/01/2024"},
			status: http.StatusBadRequest,
			code:   "EMI-010001",
			field:  "date_period_start",
		},
		{
			name:   "unknown factor",
			body:   map[string]any{"factor_id": uuid.NewString(), "activity_value": 1, "activity_unit": "liter", "date_period_start": "2024-01-15"},
			status: http.StatusNotFound,
			code:   "EMI-010002",
		},
		{
			name:   "incompatible unit",
			body:   map[string]any{"factor_id": h.diesel.ID.String(), "activity_value": 1, "activity_unit": "kg", "date_period_start": "2024-01-15"},
			status: http.StatusBadRequest,
			code:   "EMI-010003",
		},
		{
			name:   "emissions overflow",
			body:   map[string]any{"factor_id": h.diesel.ID.String(), "activity_value": "1e308", "activity_unit": "liter", "date_period_start": "2024-01-15"},
			status: http.StatusBadRequest,
			code:   "EMI-010003",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := h.do(http.MethodPost, "/api/v1/inputs", token, tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())

			if tt.status == http.StatusCreated {
				resp := decode[dto.InputResponse](t, w)
				assert.InDelta(t, tt.kg, resp.CalculatedEmissionsKg, 1e-6)
				return
			}
			resp := decode[dto.ErrorResponse](t, w)
			assert.Equal(t, tt.code, resp.Code)
			if tt.field != "" {
				assert.Equal(t, tt.field, resp.Field)
			}
		})
	}

	assert.Len(t, h.inputs.All(), 2)
}

func TestCalculationInput_RejectsUnparsedFields(t *testing.T) {
	userID := uuid.New()
	valid := dto.CreateInputRequest{
		FactorID:        uuid.NewString(),
		ActivityValue:   "12.5",
		ActivityUnit:    "liter",
		DatePeriodStart: "2024-01-15",
	}

	in, err := calculationInput(userID, valid)
	require.NoError(t, err)
	assert.Equal(t, userID, in.UserID)
	assert.Equal(t, "12.5", in.ActivityValue)
	assert.Equal(t, 2024, in.DatePeriodStart.Year())

	tests := []struct {
		name   string
		mutate func(*dto.CreateInputRequest)
		field  string
	}{
		{"factor id", func(r *dto.CreateInputRequest) { r.FactorID = "diesel" }, "factor_id"},
		{"period start", func(r *dto.CreateInputRequest) { r.DatePeriodStart = "2024-13-01" }, "date_period_start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			_, err := calculationInput(userID, req)

			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerror.ErrInvalidInput))
			var emiErr *domainerror.EmissionError
			require.True(t, errors.As(err, &emiErr))
			assert.Equal(t, tt.field, emiErr.Field)
		})
	}
}

func TestListInputs_Paginates(t *testing.T) {
	h := newHarness(t)
	token := h.register(t, "ops@example.com").AccessToken
	for _, day := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		w := h.do(http.MethodPost, "/api/v1/inputs", token, map[string]any{
			"factor_id": h.diesel.ID.String(), "activity_value": 1, "activity_unit": "liter", "date_period_start": day,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := h.do(http.MethodGet, "/api/v1/inputs?page=1&per_page=2", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.InputListResponse](t, w)
	assert.Len(t, resp.Inputs, 2)
	assert.Equal(t, int64(3), resp.Pagination.TotalItems)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.Equal(t, "2024-01-03", resp.Inputs[0].DatePeriodStart)
}

func TestDashboard(t *testing.T) {
	h := newHarness(t)
	token := h.register(t, "ops@example.com").AccessToken

	empty := h.do(http.MethodGet, "/api/v1/dashboard/scopes", token, nil)
	require.Equal(t, http.StatusOK, empty.Code)
	assert.JSONEq(t, `{"scope1":0,"scope2":0,"scope3":0,"total":0}`, empty.Body.String())

	for _, in := range []map[string]any{
		{"factor_id": h.diesel.ID.String(), "activity_value": 100, "activity_unit": "liter", "date_period_start": "2024-01-10"},
		{"factor_id": h.grid.ID.String(), "activity_value": 1000, "activity_unit": "kWh", "date_period_start": "2024-03-05"},
	} {
		require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/v1/inputs", token, in).Code)
	}

	scoped := decode[dto.ScopeSummaryResponse](t, h.do(http.MethodGet, "/api/v1/dashboard/scopes?start_date=2024-01-01&end_date=2024-01-31", token, nil))
	assert.InDelta(t, 268, scoped.Scope1, 1e-9)
	assert.Zero(t, scoped.Scope2)
	assert.InDelta(t, 268, scoped.Total, 1e-9)

	inverted := h.do(http.MethodGet, "/api/v1/dashboard/scopes?start_date=2024-02-01&end_date=2024-01-01", token, nil)
	assert.Equal(t, http.StatusBadRequest, inverted.Code)
	assert.Equal(t, "EMI-010004", decode[dto.ErrorResponse](t, inverted).Code)

	oneSided := h.do(http.MethodGet, "/api/v1/dashboard/scopes?start_date=2024-02-01", token, nil)
	assert.Equal(t, http.StatusBadRequest, oneSided.Code)

	monthly := decode[dto.MonthlySeriesResponse](t, h.do(http.MethodGet, "/api/v1/dashboard/monthly", token, nil))
	require.Len(t, monthly.Series, 2)
	assert.Equal(t, "2024-01", monthly.Series[0].Month)
	assert.Equal(t, "2024-03", monthly.Series[1].Month)

	summary := decode[dto.DashboardSummaryResponse](t, h.do(http.MethodGet, "/api/v1/dashboard/summary", token, nil))
	assert.InDelta(t, 268+233, summary.ScopeSummary.Total, 1e-9)
	assert.Len(t, summary.TimeSeries, 2)
}

func TestReports(t *testing.T) {
	h := newHarness(t)
	session := h.register(t, "ops@example.com")
	token := session.AccessToken

	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/v1/inputs", token, map[string]any{
		"factor_id": h.diesel.ID.String(), "activity_value": 10, "activity_unit": "liter", "date_period_start": "2024-01-10",
	}).Code)

	created := h.do(http.MethodPost, "/api/v1/reports", token, map[string]any{
		"report_name": "Q1", "start_date": "2024-01-01", "end_date": "2024-03-31",
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	rep := decode[dto.ReportResponse](t, created)
	assert.InDelta(t, 26.8, rep.TotalScope1Kg, 1e-9)
	assert.Equal(t, rep.TotalScope1Kg+rep.TotalScope2Kg+rep.TotalScope3Kg, rep.TotalAllScopesKg)

	require.Len(t, h.emails.queued, 1)
	assert.Equal(t, "ops@example.com", h.emails.queued[0].UserEmail)
	assert.Equal(t, rep.ID, h.emails.queued[0].ReportID)

	got := h.do(http.MethodGet, "/api/v1/reports/"+rep.ID, token, nil)
	assert.Equal(t, http.StatusOK, got.Code)

	list := decode[dto.ReportListResponse](t, h.do(http.MethodGet, "/api/v1/reports", token, nil))
	assert.Len(t, list.Reports, 1)

	other := h.register(t, "other@example.com").AccessToken
	hidden := h.do(http.MethodGet, "/api/v1/reports/"+rep.ID, other, nil)
	assert.Equal(t, http.StatusNotFound, hidden.Code)
	assert.Equal(t, "EMI-010005", decode[dto.ErrorResponse](t, hidden).Code)

	badID := h.do(http.MethodGet, "/api/v1/reports/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, badID.Code)

	inverted := h.do(http.MethodPost, "/api/v1/reports", token, map[string]any{
		"report_name": "bad", "start_date": "2024-03-01", "end_date": "2024-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, inverted.Code)
	assert.Equal(t, "EMI-010004", decode[dto.ErrorResponse](t, inverted).Code)
}

func TestReports_NotificationFailureDoesNotFailRequest(t *testing.T) {
	h := newHarness(t)
	h.emails.err = errors.New("queue down")
	token := h.register(t, "ops@example.com").AccessToken

	w := h.do(http.MethodPost, "/api/v1/reports", token, map[string]any{
		"report_name": "Empty", "start_date": "2024-01-01", "end_date": "2024-01-31",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Zero(t, decode[dto.ReportResponse](t, w).TotalAllScopesKg)
}

func TestReports_PersistenceFailureIsGeneric(t *testing.T) {
	h := newHarness(t)
	h.reports.Err = errors.New("connection reset")
	token := h.register(t, "ops@example.com").AccessToken

	w := h.do(http.MethodPost, "/api/v1/reports", token, map[string]any{
		"report_name": "Q1", "start_date": "2024-01-01", "end_date": "2024-03-31",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, internalErrorMessage, resp.Error)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestFactors(t *testing.T) {
	h := newHarness(t)
	token := h.register(t, "ops@example.com").AccessToken

	created := h.do(http.MethodPost, "/api/v1/factors", token, map[string]any{
		"name": "Natural gas", "category": "fuel", "scope": 1, "factor_value": 0.18, "unit": "kWh",
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	assert.Equal(t, entity.CO2eUnitKg, decode[dto.FactorResponse](t, created).CO2eUnit)

	badScope := h.do(http.MethodPost, "/api/v1/factors", token, map[string]any{
		"name": "X", "category": "fuel", "scope": 4, "factor_value": 1, "unit": "kWh",
	})
	assert.Equal(t, http.StatusBadRequest, badScope.Code)
	assert.Equal(t, "scope", decode[dto.ErrorResponse](t, badScope).Field)

	badUnit := h.do(http.MethodPost, "/api/v1/factors", token, map[string]any{
		"name": "X", "category": "fuel", "scope": 1, "factor_value": 1, "unit": "widgets",
	})
	assert.Equal(t, http.StatusBadRequest, badUnit.Code)

	list := decode[dto.FactorListResponse](t, h.do(http.MethodGet, "/api/v1/factors", token, nil))
	assert.Len(t, list.Factors, 3)
}

func TestUnitConvert(t *testing.T) {
	h := newHarness(t)

	ok := h.do(http.MethodGet, "/api/v1/units/convert?value=10&from=gallon&to=liter", "", nil)
	require.Equal(t, http.StatusOK, ok.Code)
	assert.InDelta(t, 37.8541, decode[dto.ConvertResponse](t, ok).Converted, 1e-9)

	undefined := h.do(http.MethodGet, "/api/v1/units/convert?value=1&from=widgets&to=kg", "", nil)
	assert.Equal(t, http.StatusBadRequest, undefined.Code)
	assert.Equal(t, "UNT-010001", decode[dto.ErrorResponse](t, undefined).Code)

	incompatible := h.do(http.MethodGet, "/api/v1/units/convert?value=1&from=kg&to=liter", "", nil)
	assert.Equal(t, "UNT-010002", decode[dto.ErrorResponse](t, incompatible).Code)

	missing := h.do(http.MethodGet, "/api/v1/units/convert?from=kg&to=g", "", nil)
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	down := errors.New("down")
	r.GET("/up", NewHealthController(func(context.Context) error { return nil }, nil).Check)
	r.GET("/down", NewHealthController(func(context.Context) error { return down }, func(context.Context) error { return nil }).Check)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/up", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "disabled", decode[HealthResponse](t, w).Redis)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/down", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "disconnected", decode[HealthResponse](t, w).Database)
}

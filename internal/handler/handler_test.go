package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finlytic/ccfm-service/internal/ccfm"
	"github.com/finlytic/ccfm-service/internal/models"
	"github.com/finlytic/ccfm-service/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	registerErr error
	loginToken  string
	loginErr    error
	result      *service.AnalysisResult
	fieldErrs   []ccfm.FieldError
	analyzeErr  error
	points      []models.TrendPoint
	historyErr  error
}

func (f *fakeService) Register(name, username, email, password, branch string) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: 1, Username: username}, nil
}

func (f *fakeService) Login(username, password string) (string, *models.User, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.loginToken, &models.User{ID: 1, Username: username}, nil
}

func (f *fakeService) Analyze(ctx context.Context, raw map[string]any) (*service.AnalysisResult, []ccfm.FieldError, error) {
	return f.result, f.fieldErrs, f.analyzeErr
}

func (f *fakeService) History(ctx context.Context) ([]models.TrendPoint, error) {
	return f.points, f.historyErr
}

func newTestHandler(svc AnalysisService) *Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewHandler(svc, log)
}

func doJSON(t *testing.T, h http.HandlerFunc, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestAnalyze_OK(t *testing.T) {
	h := newTestHandler(&fakeService{
		result: &service.AnalysisResult{
			Metrics:         models.MetricSet{ARPU: 2000, NCF: 5000},
			Alerts:          models.AlertSet{RunwayWarning: true},
			Recommendations: []models.Recommendation{{Category: "Runway", Message: "raise", Priority: "high"}},
			Statuses:        []models.MetricStatus{{Name: "Runway", Value: "0.0 days", Alert: true}},
		},
	})

	rec := doJSON(t, h.Analyze, http.MethodPost, "/analyze", map[string]any{"totalRevenue": 1})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	for _, key := range []string{"metrics", "alerts", "recommendations", "statuses"} {
		assert.Contains(t, resp, key)
	}

	var metrics map[string]float64
	require.NoError(t, json.Unmarshal(resp["metrics"], &metrics))
	assert.Equal(t, 2000.0, metrics["ARPU"])
	assert.Equal(t, 5000.0, metrics["NCF"])
}

func TestAnalyze_ValidationFailure(t *testing.T) {
	h := newTestHandler(&fakeService{
		fieldErrs: []ccfm.FieldError{
			{Field: "cogs", Code: ccfm.CodeMissingField, Message: "Missing required field: cogs"},
			{Field: "totalRevenue", Code: ccfm.CodeInvalidValue, Message: "Invalid value for totalRevenue: must be a positive number"},
		},
	})

	rec := doJSON(t, h.Analyze, http.MethodPost, "/analyze", map[string]any{})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Error   string            `json:"error"`
		Details []ccfm.FieldError `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Error)
	require.Len(t, resp.Details, 2)
	assert.Equal(t, "cogs", resp.Details[0].Field)
}

func TestAnalyze_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unauthenticated", service.ErrUnauthenticated, http.StatusUnauthorized},
		{"user not found", service.ErrUserNotFound, http.StatusNotFound},
		{"persistence failure", service.ErrPersistence, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&fakeService{analyzeErr: tt.err})
			rec := doJSON(t, h.Analyze, http.MethodPost, "/analyze", map[string]any{})
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAnalyze_RejectsMalformedBody(t *testing.T) {
	h := newTestHandler(&fakeService{})
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistory_OK(t *testing.T) {
	now := time.Now().UTC()
	h := newTestHandler(&fakeService{
		points: []models.TrendPoint{
			{CreatedAt: now, Metrics: models.TrendMetrics{NCF: 5000, CCC: 8.25, LTVCACRatio: 4}},
		},
	})

	rec := doJSON(t, h.History, http.MethodGet, "/history", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var points []models.TrendPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	require.Len(t, points, 1)
	assert.Equal(t, 8.25, points[0].Metrics.CCC)
}

func TestHistory_PersistenceFailure(t *testing.T) {
	h := newTestHandler(&fakeService{historyErr: service.ErrPersistence})
	rec := doJSON(t, h.History, http.MethodGet, "/history", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRegister_Created(t *testing.T) {
	h := newTestHandler(&fakeService{})
	rec := doJSON(t, h.Register, http.MethodPost, "/register", registerRequest{
		Name: "Ada", Username: "ada01", Email: "ada@example.com",
		Password: "Str0ng!pass", Branch: "Taxation",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegister_PolicyViolation(t *testing.T) {
	h := newTestHandler(&fakeService{registerErr: assert.AnError})
	rec := doJSON(t, h.Register, http.MethodPost, "/register", registerRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_OK(t *testing.T) {
	h := newTestHandler(&fakeService{loginToken: "tok-123"})
	rec := doJSON(t, h.Login, http.MethodPost, "/login", loginRequest{Username: "ada01", Password: "pw"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tok-123", resp["token"])
	assert.Equal(t, "Login successful", resp["message"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	h := newTestHandler(&fakeService{loginErr: service.ErrInvalidCredentials})
	rec := doJSON(t, h.Login, http.MethodPost, "/login", loginRequest{Username: "ada01", Password: "bad"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

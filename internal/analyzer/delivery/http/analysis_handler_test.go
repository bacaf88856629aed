package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang-stock-analyzer/internal/analyzer/config"
	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/internal/analyzer/repository"
	"golang-stock-analyzer/internal/analyzer/service"
	"golang-stock-analyzer/internal/entity"
	"golang-stock-analyzer/pkg/chart"
	"golang-stock-analyzer/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	messages []dto.AnalysisRequestMessage
	err      error
}

func (q *fakeQueue) Enqueue(_ context.Context, message dto.AnalysisRequestMessage) error {
	if q.err != nil {
		return q.err
	}
	q.messages = append(q.messages, message)
	return nil
}

func setupServer(t *testing.T, queue repository.AnalysisQueue, locale string) *echo.Echo {
	t.Helper()
	cfg := &config.Config{}
	cfg.Analyzer.Seed = 7
	cfg.Analyzer.Locale = locale
	cfg.ApplyDefaults()

	svc := service.NewAnalyzerService(cfg, logger.NewNop(), repository.NewSimulatedAIRepository(), repository.NewMemoryAnalysisStore(time.Hour), nil)
	handler := NewAnalysisHandler(svc, queue, chart.Options{Width: 640, Height: 320}, logger.NewNop())

	e := echo.New()
	e.GET("/healthz", HealthCheck)
	api := e.Group("/api/v1")
	handler.RegisterRoutes(api.Group("/analyses"))
	handler.RegisterHistoryRoutes(api.Group("/history"))
	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func createRun(t *testing.T, e *echo.Echo, body string) entity.AnalysisRun {
	t.Helper()
	rec := doRequest(e, http.MethodPost, "/api/v1/analyses", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var run entity.AnalysisRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	return run
}

func TestHealthCheck(t *testing.T) {
	e := setupServer(t, nil, "")
	rec := doRequest(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateAndGetAnalysis(t *testing.T) {
	e := setupServer(t, nil, "")
	start := time.Now().UTC().AddDate(0, 0, -60).Format("2006-01-02")

	run := createRun(t, e, `{"tickers":"aapl, petr4","start_date":"`+start+`"}`)
	require.Len(t, run.Analyses, 2)
	assert.Equal(t, "AAPL", run.Analyses[0].Ticker)
	assert.Contains(t, run.Analyses[0].Report.CompanyOverview, "Visão geral simulada")

	rec := doRequest(e, http.MethodGet, "/api/v1/analyses/"+run.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got entity.AnalysisRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, []string{"AAPL", "PETR4"}, got.PriceTable.Tickers)
}

func TestCreateAnalysisValidation(t *testing.T) {
	tests := []struct {
		name     string
		locale   string
		body     string
		expected string
	}{
		{"no tickers", "", `{"tickers":" , ","start_date":"2025-01-01"}`, "Por favor, insira pelo menos um ticker de ação."},
		{"missing start", "en", `{"tickers":"AAPL"}`, "Please select a start date."},
		{"bad start", "en", `{"tickers":"AAPL","start_date":"yesterday"}`, "Invalid start date, use the YYYY-MM-DD format."},
		{"bad json", "en", `{"tickers":`, "Invalid request payload."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setupServer(t, nil, tt.locale)
			rec := doRequest(e, http.MethodPost, "/api/v1/analyses", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expected, body.Error)
		})
	}
}

func TestCreateAnalysisFutureStart(t *testing.T) {
	e := setupServer(t, nil, "")
	run := createRun(t, e, `{"tickers":"AAPL","start_date":"2999-01-01"}`)
	assert.Empty(t, run.Analyses)
}

func TestGetAnalysisNotFound(t *testing.T) {
	e := setupServer(t, nil, "")
	rec := doRequest(e, http.MethodGet, "/api/v1/analyses/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/analyses/unknown/charts/price.png", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCharts(t *testing.T) {
	e := setupServer(t, nil, "")
	start := time.Now().UTC().AddDate(0, 0, -90).Format("2006-01-02")
	run := createRun(t, e, `{"tickers":"AAPL,VALE3","start_date":"`+start+`"}`)

	for _, file := range []string{"price.png", "normalized.png", "AAPL.png", "vale3.png"} {
		rec := doRequest(e, http.MethodGet, "/api/v1/analyses/"+run.ID+"/charts/"+file, "")
		require.Equal(t, http.StatusOK, rec.Code, file)
		assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")), file)
	}

	rec := doRequest(e, http.MethodGet, "/api/v1/analyses/"+run.ID+"/charts/MSFT.png", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/analyses/"+run.ID+"/charts/price.svg", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetChartSinglePoint(t *testing.T) {
	e := setupServer(t, nil, "")
	run := createRun(t, e, `{"tickers":"AAPL","start_date":"`+time.Now().UTC().Format("2006-01-02")+`"}`)

	rec := doRequest(e, http.MethodGet, "/api/v1/analyses/"+run.ID+"/charts/AAPL.png", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateAnalysisAsync(t *testing.T) {
	queue := &fakeQueue{}
	e := setupServer(t, queue, "")

	rec := doRequest(e, http.MethodPost, "/api/v1/analyses/async?notify=true", `{"tickers":"AAPL","start_date":"2025-01-01"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp dto.AsyncAnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, queue.messages, 1)
	assert.Equal(t, resp.ID, queue.messages[0].ID)
	assert.True(t, queue.messages[0].NotifyUser)

	rec = doRequest(e, http.MethodPost, "/api/v1/analyses/async", `{"tickers":"","start_date":"2025-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, queue.messages, 1)

	queue.err = errors.New("redis down")
	rec = doRequest(e, http.MethodPost, "/api/v1/analyses/async", `{"tickers":"AAPL","start_date":"2025-01-01"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCreateAnalysisAsyncWithoutRedis(t *testing.T) {
	e := setupServer(t, nil, "")
	rec := doRequest(e, http.MethodPost, "/api/v1/analyses/async", `{"tickers":"AAPL","start_date":"2025-01-01"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetTickerHistoryWithoutDatabase(t *testing.T) {
	e := setupServer(t, nil, "")
	rec := doRequest(e, http.MethodGet, "/api/v1/history/AAPL", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

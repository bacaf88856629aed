package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/internal/analyzer/repository"
	"golang-stock-analyzer/internal/analyzer/rules"
	"golang-stock-analyzer/internal/analyzer/service"
	"golang-stock-analyzer/pkg/chart"
	"golang-stock-analyzer/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AnalysisHandler handles HTTP requests for analysis runs.
type AnalysisHandler struct {
	analyzerService service.AnalyzerService
	queue           repository.AnalysisQueue
	chartOptions    chart.Options
	logger          *logger.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler. queue may be nil when Redis is not configured.
func NewAnalysisHandler(analyzerService service.AnalyzerService, queue repository.AnalysisQueue, chartOptions chart.Options, logger *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analyzerService: analyzerService,
		queue:           queue,
		chartOptions:    chartOptions,
		logger:          logger,
	}
}

// RegisterRoutes registers the analysis routes to the Echo group.
func (h *AnalysisHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateAnalysis)
	g.POST("/async", h.CreateAnalysisAsync)
	g.GET("/:id", h.GetAnalysis)
	g.GET("/:id/charts/:file", h.GetChart)
}

// RegisterHistoryRoutes registers the per-ticker history routes.
func (h *AnalysisHandler) RegisterHistoryRoutes(g *echo.Group) {
	g.GET("/:ticker", h.GetTickerHistory)
}

func (h *AnalysisHandler) validationError(c echo.Context, err error) error {
	msg := rules.Message(h.analyzerService.Locale(), service.MessageKey(err))
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// CreateAnalysis godoc
// @Summary Run an analysis
// @Description Generate synthetic price series, indicators, fundamentals and narratives for up to 10 tickers
// @Tags analyses
// @Accept  json
// @Produce  json
// @Param   request  body    dto.AnalyzeRequest   true    "Tickers and start date"
// @Success 201 {object} entity.AnalysisRun
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analyses [post]
func (h *AnalysisHandler) CreateAnalysis(c echo.Context) error {
	var req dto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return h.validationError(c, err)
	}

	run, err := h.analyzerService.Analyze(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return h.validationError(c, err)
		}
		h.logger.Error("Failed to run analysis", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to run analysis"})
	}

	return c.JSON(http.StatusCreated, run)
}

// CreateAnalysisAsync godoc
// @Summary Queue an analysis
// @Description Publish an analysis request on the Redis stream; poll GET /analyses/{id} for the result
// @Tags analyses
// @Accept  json
// @Produce  json
// @Param   request  body    dto.AnalyzeRequest   true    "Tickers and start date"
// @Success 202 {object} dto.AsyncAnalysisResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /analyses/async [post]
func (h *AnalysisHandler) CreateAnalysisAsync(c echo.Context) error {
	if h.queue == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Asynchronous analysis requires Redis"})
	}

	var req dto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return h.validationError(c, err)
	}
	if err := h.analyzerService.Validate(req); err != nil {
		return h.validationError(c, err)
	}

	id := uuid.NewString()
	notify, _ := strconv.ParseBool(c.QueryParam("notify"))
	err := h.queue.Enqueue(c.Request().Context(), dto.AnalysisRequestMessage{
		ID:         id,
		Tickers:    req.Tickers,
		StartDate:  req.StartDate,
		NotifyUser: notify,
	})
	if err != nil {
		h.logger.Error("Failed to queue analysis", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to queue analysis"})
	}

	return c.JSON(http.StatusAccepted, dto.AsyncAnalysisResponse{ID: id})
}

// GetAnalysis godoc
// @Summary Get an analysis run
// @Description Get a stored analysis run by its ID
// @Tags analyses
// @Produce  json
// @Param   id  path    string true    "Run ID"
// @Success 200 {object} entity.AnalysisRun
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analyses/{id} [get]
func (h *AnalysisHandler) GetAnalysis(c echo.Context) error {
	run, err := h.analyzerService.GetRun(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.runError(c, err)
	}
	return c.JSON(http.StatusOK, run)
}

func (h *AnalysisHandler) runError(c echo.Context, err error) error {
	if errors.Is(err, service.ErrRunNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Analysis run not found"})
	}
	h.logger.Error("Failed to get analysis run", logger.ErrorField(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get analysis run"})
}

// GetChart godoc
// @Summary Get a chart of an analysis run
// @Description price.png and normalized.png compare all tickers; <TICKER>.png shows one ticker with SMA and Bollinger overlays
// @Tags analyses
// @Produce  png
// @Param   id    path    string true    "Run ID"
// @Param   file  path    string true    "price.png, normalized.png or <TICKER>.png"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /analyses/{id}/charts/{file} [get]
func (h *AnalysisHandler) GetChart(c echo.Context) error {
	file := c.Param("file")
	name, ok := strings.CutSuffix(file, ".png")
	if !ok || name == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Chart not found"})
	}

	run, err := h.analyzerService.GetRun(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.runError(c, err)
	}

	var png []byte
	switch name {
	case "price":
		png, err = chart.RenderTableChart("Price", "%.2f", run.PriceTable, h.chartOptions)
	case "normalized":
		png, err = chart.RenderTableChart("Normalized (base 100)", "%.0f", run.NormalizedTable, h.chartOptions)
	default:
		analysis := run.Find(strings.ToUpper(name))
		if analysis == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Ticker not found in analysis run"})
		}
		png, err = chart.RenderStockChart(*analysis, h.chartOptions)
	}
	if err != nil {
		if errors.Is(err, chart.ErrNotEnoughData) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		}
		h.logger.Error("Failed to render chart", logger.ErrorField(err), logger.StringField("chart", file))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to render chart"})
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// GetTickerHistory godoc
// @Summary Get the analysis history of a ticker
// @Description Latest stored analyses of a ticker, newest first
// @Tags history
// @Produce  json
// @Param   ticker  path    string true    "Ticker"
// @Param   limit   query   int    false   "Maximum rows (default 20)"
// @Success 200 {array} entity.AnalysisHistory
// @Failure 503 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /history/{ticker} [get]
func (h *AnalysisHandler) GetTickerHistory(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	histories, err := h.analyzerService.TickerHistory(c.Request().Context(), c.Param("ticker"), limit)
	if err != nil {
		if errors.Is(err, service.ErrHistoryDisabled) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": err.Error()})
		}
		h.logger.Error("Failed to get ticker history", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get ticker history"})
	}
	return c.JSON(http.StatusOK, histories)
}

// HealthCheck reports that the process is serving.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

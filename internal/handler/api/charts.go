package api

import (
	"errors"
	"net/http"

	models "Sternentyp/internal/domain/models"
	"Sternentyp/internal/usecase"
	xhttp "Sternentyp/pkg/http"
	xlogger "Sternentyp/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ChartHandler implements Echo-based HTTP handlers following Clean Architecture.
type ChartHandler struct {
	logger   *xlogger.Logger
	builder  *usecase.ChartBuilder
	scanner  *usecase.TransitScanner
	analyzer *usecase.RelationshipAnalyzer
	stream   *SkyStreamHandler
}

func NewChartHandler(
	logger *xlogger.Logger,
	builder *usecase.ChartBuilder,
	scanner *usecase.TransitScanner,
	analyzer *usecase.RelationshipAnalyzer,
	stream *SkyStreamHandler,
) *ChartHandler {
	return &ChartHandler{
		logger:   logger,
		builder:  builder,
		scanner:  scanner,
		analyzer: analyzer,
		stream:   stream,
	}
}

func (h *ChartHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	g := e.Group("/api")
	g.POST("/chart", h.Chart)
	g.POST("/transits", h.Transits)
	g.POST("/synastry", h.Synastry)
	g.POST("/composite", h.Composite)
	if h.stream != nil {
		g.GET("/sky/stream", h.stream.Stream)
	}
}

func (h *ChartHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ChartHandler) Chart(c echo.Context) error {
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	chart, err := h.builder.Build(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("chart usecase error", xlogger.Error(err))
		return h.domainError(c, err)
	}
	return xhttp.SuccessResponse(c, chart)
}

func (h *ChartHandler) Transits(c echo.Context) error {
	req := &models.TransitRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	result, err := h.scanner.Scan(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("transits usecase error", xlogger.Error(err))
		return h.domainError(c, err)
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *ChartHandler) Synastry(c echo.Context) error {
	req := &models.SynastryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	result, err := h.analyzer.Synastry(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("synastry usecase error", xlogger.Error(err))
		return h.domainError(c, err)
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *ChartHandler) Composite(c echo.Context) error {
	req := &models.CompositeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	result, err := h.analyzer.Composite(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("composite usecase error", xlogger.Error(err))
		return h.domainError(c, err)
	}
	return xhttp.SuccessResponse(c, result)
}

// domainError maps domain error kinds onto HTTP statuses. Input problems
// are 400 with the field named, collaborator outages 503, broken
// computation invariants 500.
func (h *ChartHandler) domainError(c echo.Context, err error) error {
	var inputErr *models.InputError
	if errors.As(err, &inputErr) {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestFieldError(inputErr.Field, inputErr.Reason))
	}

	var collErr *models.CollaboratorError
	if errors.As(err, &collErr) {
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError(collErr.Error()))
	}

	var invErr *models.InvariantError
	if errors.As(err, &invErr) {
		return xhttp.AppErrorResponse(c, xhttp.InternalError(invErr.Error()))
	}

	return xhttp.AppErrorResponse(c, err)
}

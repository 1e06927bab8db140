package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ghostart/goapi/base/ctx"
	hcdomain "github.com/ghostart/goapi/domain/healthcheck"
)

// Status is the health probe body
type Status struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

type healthCheckHandler struct {
	healthCheck hcdomain.HealthCheckUsecase
	now         func() time.Time
}

// New will initialize the healthcheck/ resources endpoint
func New(e *echo.Echo, us hcdomain.HealthCheckUsecase) {
	handler := &healthCheckHandler{
		healthCheck: us,
		now:         time.Now,
	}
	e.GET("/health", handler.check)
}

// check
//
//	@Summary	Health check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	http.Status
//	@Failure	500	{object}	http.Status
//	@Router		/health [get]
func (h *healthCheckHandler) check(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	if err := h.healthCheck.Check(context); err != nil {
		return c.JSON(http.StatusInternalServerError, Status{
			Status:    "error",
			Timestamp: h.now(),
			Error:     err.Error(),
		})
	}
	return c.JSON(http.StatusOK, Status{
		Status:    "ok",
		Timestamp: h.now(),
	})
}

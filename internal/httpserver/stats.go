package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bistro/internal/logging"
	"github.com/Skotchmaster/bistro/internal/service"
)

type StatsHTTP struct {
	Svc *service.StatsService
}

func (h *StatsHTTP) Summary(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "stats.summary")

	sum, err := h.Svc.Summary(ctx)
	if err != nil {
		return fail(l, "summary_failed", err)
	}
	return c.JSON(http.StatusOK, sum)
}

func (h *StatsHTTP) OrderStats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "stats.order_stats")

	rows, err := h.Svc.OrderStats(ctx)
	if err != nil {
		return fail(l, "order_stats_failed", err)
	}
	return c.JSON(http.StatusOK, rows)
}

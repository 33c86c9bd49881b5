package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bistro/internal/logging"
	"github.com/Skotchmaster/bistro/internal/service"
	"github.com/Skotchmaster/bistro/internal/transport"
)

type PaymentHTTP struct {
	Svc *service.PaymentService
}

func (h *PaymentHTTP) CreateIntent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.create_intent")

	var req transport.PaymentIntentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "create_intent_failed", err)
	}

	secret, err := h.Svc.CreateIntent(ctx, req.Price)
	if err != nil {
		return fail(l, "create_intent_failed", err)
	}
	l.Info("create_intent_success", "price", req.Price.String())
	return c.JSON(http.StatusOK, transport.PaymentIntentResponse{ClientSecret: secret})
}

func (h *PaymentHTTP) History(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.history")

	list, err := h.Svc.History(ctx, c.QueryParam("uid"))
	if err != nil {
		return fail(l, "payment_history_failed", err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *PaymentHTTP) RecordPayment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.record")

	var req transport.RecordPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "record_payment_failed", err)
	}

	res, err := h.Svc.Record(ctx, req.ToModel())
	if err != nil {
		return fail(l, "record_payment_failed", err)
	}
	l.Info("record_payment_success", "uid", req.UID, "cleared", res.DeleteResult.DeletedCount)
	return c.JSON(http.StatusOK, res)
}

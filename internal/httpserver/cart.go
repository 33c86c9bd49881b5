package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bistro/internal/logging"
	"github.com/Skotchmaster/bistro/internal/middleware/auth"
	"github.com/Skotchmaster/bistro/internal/service"
	"github.com/Skotchmaster/bistro/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	lines, err := h.Svc.Cart(ctx, c.QueryParam("userId"))
	if err != nil {
		return fail(l, "get_cart_failed", err)
	}
	return c.JSON(http.StatusOK, lines)
}

func (h *CartHTTP) CountCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.count")

	n, err := h.Svc.Count(ctx, c.QueryParam("userUID"))
	if err != nil {
		return fail(l, "count_cart_failed", err)
	}
	return c.JSON(http.StatusOK, transport.CountResponse{Count: n})
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.AddToCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "add_to_cart_failed", err)
	}
	if !auth.IsSelf(c, req.UserID) {
		return fail(l, "add_to_cart_failed", echo.NewHTTPError(http.StatusForbidden, "forbidden access"))
	}

	res, err := h.Svc.Add(ctx, req.UserID, req.MenuID)
	if err != nil {
		return fail(l, "add_to_cart_failed", err)
	}
	l.Info("add_to_cart_success", "user_id", req.UserID, "menu_id", req.MenuID, "upserted", res.UpsertedCount)
	return c.JSON(http.StatusOK, res)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	res, err := h.Svc.Remove(ctx, c.Param("id"), c.QueryParam("uid"))
	if err != nil {
		return fail(l, "remove_from_cart_failed", err)
	}
	l.Info("remove_from_cart_success", "cart_id", c.Param("id"), "deleted", res.DeletedCount)
	return c.JSON(http.StatusOK, res)
}

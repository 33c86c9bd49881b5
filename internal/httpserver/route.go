package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bistro/internal/logging"
	"github.com/Skotchmaster/bistro/internal/middleware/auth"
)

type Deps struct {
	Users    *UserHTTP
	Menu     *MenuHTTP
	Cart     *CartHTTP
	Payments *PaymentHTTP
	Stats    *StatsHTTP
	Tokens   *TokenHTTP
	Guard    *auth.Guard
	// Ready reports whether the store is reachable; nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d Deps) {
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	g := d.Guard
	admin := []echo.MiddlewareFunc{g.RequireAuth, g.RequireAdmin}

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "bistro is serving")
	})
	e.GET("/health/live", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/ready", d.ready)

	e.POST("/jwt", d.Tokens.IssueToken)

	e.GET("/admin/verify/:uid", d.Users.VerifyAdmin, g.RequireAuth, g.RequireSelf(auth.Param("uid")))
	e.GET("/admin/users", d.Users.ListUsers, admin...)
	e.POST("/user", d.Users.RegisterUser)
	e.PATCH("/admin/user/:id", d.Users.PromoteUser, admin...)
	e.DELETE("/user/:id", d.Users.DeleteUser, admin...)

	e.GET("/menu", d.Menu.ListMenu)
	e.GET("/menu/search", d.Menu.SearchMenu)
	e.GET("/menu/:id", d.Menu.GetMenuItem)
	e.POST("/menu", d.Menu.CreateMenuItem, admin...)
	e.PATCH("/menu/:id", d.Menu.PatchMenuItem, admin...)
	e.DELETE("/menu/:id", d.Menu.DeleteMenuItem, admin...)

	e.GET("/carts", d.Cart.GetCart, g.RequireAuth, g.RequireSelf(auth.Query("userId")))
	e.GET("/carts/total", d.Cart.CountCart, g.RequireAuth, g.RequireSelf(auth.Query("userUID")))
	e.POST("/carts", d.Cart.AddToCart, g.RequireAuth)
	e.DELETE("/cart/:id", d.Cart.RemoveFromCart, g.RequireAuth, g.RequireSelf(auth.Query("uid")))

	e.POST("/create-payment-intent", d.Payments.CreateIntent)
	e.GET("/payments", d.Payments.History, g.RequireAuth, g.RequireSelfOrAdmin(auth.Query("uid")))
	e.POST("/payments", d.Payments.RecordPayment)

	e.GET("/admin/stats", d.Stats.Summary, admin...)
	e.GET("/admin/order-stats", d.Stats.OrderStats, admin...)
}

func (d Deps) ready(c echo.Context) error {
	if d.Ready == nil {
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := d.Ready(ctx); err != nil {
		logging.FromContext(ctx).Warn("readiness_failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bistro/internal/logging"
	"github.com/Skotchmaster/bistro/internal/repo"
	"github.com/Skotchmaster/bistro/internal/service"
	"github.com/Skotchmaster/bistro/internal/transport"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	users, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_users_failed", err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHTTP) VerifyAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.verify_admin")

	admin, err := h.Svc.IsAdmin(ctx, c.Param("uid"))
	if err != nil {
		return fail(l, "verify_admin_failed", err)
	}
	return c.JSON(http.StatusOK, transport.AdminResponse{Admin: admin})
}

// RegisterUser is idempotent: a second sign-in with the same uid reports the
// existing user instead of failing.
func (h *UserHTTP) RegisterUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.register")

	var req transport.RegisterUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "register_user_failed", err)
	}

	res, err := h.Svc.Register(ctx, req.ToModel())
	if errors.Is(err, repo.ErrAlreadyExists) {
		l.Info("register_user_exists", "uid", req.UID)
		return c.JSON(http.StatusOK, transport.MessageResponse{Message: "user already exists"})
	}
	if err != nil {
		return fail(l, "register_user_failed", err)
	}

	l.Info("register_user_success", "uid", req.UID)
	return c.JSON(http.StatusOK, res)
}

func (h *UserHTTP) PromoteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.promote")

	res, err := h.Svc.Promote(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "promote_user_failed", err)
	}
	l.Info("promote_user_success", "user_id", c.Param("id"), "modified", res.ModifiedCount)
	return c.JSON(http.StatusOK, res)
}

func (h *UserHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	res, err := h.Svc.Delete(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "delete_user_failed", err)
	}
	l.Info("delete_user_success", "user_id", c.Param("id"), "deleted", res.DeletedCount)
	return c.JSON(http.StatusOK, res)
}

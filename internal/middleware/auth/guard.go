package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bistro/internal/logging"
	"github.com/Skotchmaster/bistro/internal/models"
	"github.com/Skotchmaster/bistro/internal/repo"
	"github.com/Skotchmaster/bistro/internal/tokens"
)

const CtxUID = "uid"

var (
	errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
	errForbidden    = echo.NewHTTPError(http.StatusForbidden, "forbidden access")
)

// RoleLookup resolves the stored role of a user by external uid.
type RoleLookup interface {
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
}

// Source extracts the uid a request claims to act for.
type Source func(c echo.Context) string

func Param(name string) Source {
	return func(c echo.Context) string { return c.Param(name) }
}

func Query(name string) Source {
	return func(c echo.Context) string { return c.QueryParam(name) }
}

type Guard struct {
	Secret []byte
	Users  RoleLookup
}

func NewGuard(secret []byte, users RoleLookup) *Guard {
	return &Guard{Secret: secret, Users: users}
}

// RequireAuth verifies the bearer token and stores the caller's uid on the context.
func (g *Guard) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("middleware", "auth.require_auth")

		raw, ok := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			l.Warn("auth_failed", "status", 401, "reason", "missing bearer token")
			return errUnauthorized
		}
		claims, err := tokens.Parse(raw, g.Secret)
		if err != nil {
			l.Warn("auth_failed", "status", 401, "reason", "invalid token", "error", err)
			return errUnauthorized
		}

		c.Set(CtxUID, claims.UID)
		return next(c)
	}
}

// RequireAdmin must be mounted after RequireAuth.
func (g *Guard) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid := UID(c)
		if uid == "" {
			return errUnauthorized
		}
		admin, err := g.isAdmin(c.Request().Context(), uid)
		if err != nil {
			return err
		}
		if !admin {
			logging.FromContext(c.Request().Context()).Warn("auth_failed", "status", 403, "reason", "not an admin", "uid", uid)
			return errForbidden
		}
		return next(c)
	}
}

// RequireSelf admits the request only when the verified uid equals the one named by src.
func (g *Guard) RequireSelf(src Source) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := UID(c)
			if uid == "" {
				return errUnauthorized
			}
			if src(c) != uid {
				logging.FromContext(c.Request().Context()).Warn("auth_failed", "status", 403, "reason", "uid mismatch", "uid", uid)
				return errForbidden
			}
			return next(c)
		}
	}
}

// RequireSelfOrAdmin is RequireSelf that also lets admins through.
func (g *Guard) RequireSelfOrAdmin(src Source) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := UID(c)
			if uid == "" {
				return errUnauthorized
			}
			if src(c) == uid {
				return next(c)
			}
			admin, err := g.isAdmin(c.Request().Context(), uid)
			if err != nil {
				return err
			}
			if !admin {
				logging.FromContext(c.Request().Context()).Warn("auth_failed", "status", 403, "reason", "uid mismatch", "uid", uid)
				return errForbidden
			}
			return next(c)
		}
	}
}

func (g *Guard) isAdmin(ctx context.Context, uid string) (bool, error) {
	u, err := g.Users.GetUserByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.IsAdmin(), nil
}

// UID returns the verified caller uid, or "" when RequireAuth has not run.
func UID(c echo.Context) string {
	uid, _ := c.Get(CtxUID).(string)
	return uid
}

// IsSelf reports whether uid is the verified caller.
func IsSelf(c echo.Context, uid string) bool {
	caller := UID(c)
	return caller != "" && caller == uid
}

func bearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

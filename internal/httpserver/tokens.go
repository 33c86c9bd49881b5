package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bistro/internal/logging"
	"github.com/Skotchmaster/bistro/internal/tokens"
	"github.com/Skotchmaster/bistro/internal/transport"
)

type TokenHTTP struct {
	Issuer *tokens.Issuer
}

func (h *TokenHTTP) IssueToken(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.issue_token")

	var req transport.IssueTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "issue_token_failed", err)
	}

	token, exp, err := h.Issuer.Issue(req.UID, req.Email)
	if err != nil {
		return fail(l, "issue_token_failed", err)
	}

	l.Info("issue_token_success", "uid", req.UID, "expires_at", exp)
	return c.JSON(http.StatusOK, transport.TokenResponse{Token: token})
}

package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bistro/internal/logging"
	"github.com/Skotchmaster/bistro/internal/service"
	"github.com/Skotchmaster/bistro/internal/transport"
	"github.com/Skotchmaster/bistro/internal/util"
)

type MenuHTTP struct {
	Svc *service.MenuService
}

func (h *MenuHTTP) ListMenu(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.list")

	items, err := h.Svc.List(ctx, c.QueryParam("category"))
	if err != nil {
		return fail(l, "list_menu_failed", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *MenuHTTP) GetMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.get_item")

	item, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "get_menu_item_failed", err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *MenuHTTP) SearchMenu(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)
	page = offset/limit + 1

	total, items, err := h.Svc.Search(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		return fail(l, "search_menu_failed", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": util.NewMeta(page, offset, limit, total),
	})
}

func (h *MenuHTTP) CreateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.create_item")

	var req transport.CreateMenuItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "create_menu_item_failed", err)
	}

	res, err := h.Svc.Create(ctx, req.ToModel())
	if err != nil {
		return fail(l, "create_menu_item_failed", err)
	}
	l.Info("create_menu_item_success")
	return c.JSON(http.StatusCreated, res)
}

func (h *MenuHTTP) PatchMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.patch_item")

	var req transport.PatchMenuItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "patch_menu_item_failed", err)
	}

	res, err := h.Svc.Update(ctx, c.Param("id"), req.ToPatch())
	if err != nil {
		return fail(l, "patch_menu_item_failed", err)
	}
	l.Info("patch_menu_item_success", "menu_id", c.Param("id"), "matched", res.MatchedCount)
	return c.JSON(http.StatusOK, res)
}

func (h *MenuHTTP) DeleteMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.delete_item")

	res, err := h.Svc.Delete(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "delete_menu_item_failed", err)
	}
	l.Info("delete_menu_item_success", "menu_id", c.Param("id"), "deleted", res.DeletedCount)
	return c.JSON(http.StatusOK, res)
}

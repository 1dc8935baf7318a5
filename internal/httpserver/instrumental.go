package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/epicbeats/internal/domain"
	"github.com/Skotchmaster/epicbeats/internal/logging"
	"github.com/Skotchmaster/epicbeats/internal/service"
	"github.com/Skotchmaster/epicbeats/internal/transport"
	"github.com/Skotchmaster/epicbeats/internal/util"
)

type InstrumentalHTTP struct {
	Svc *service.CatalogService
}

func criteriaFromQuery(c echo.Context) domain.FilterCriteria {
	return domain.FilterCriteria{
		Genre:    c.QueryParam("genre"),
		BPMExact: util.ParseIntDefault(c.QueryParam("bpmExact"), 0),
		BPMMin:   util.ParseIntDefault(c.QueryParam("bpmMin"), 0),
		BPMMax:   util.ParseIntDefault(c.QueryParam("bpmMax"), 0),
		PriceMin: util.ParseFloatDefault(c.QueryParam("priceMin"), 0),
		PriceMax: util.ParseFloatDefault(c.QueryParam("priceMax"), 0),
	}
}

func (h *InstrumentalHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "instrumental.list")

	items, err := h.Svc.List(ctx, criteriaFromQuery(c))
	if err != nil {
		return httpError(l, "list_instrumentals_failed", err)
	}
	return success(c, http.StatusOK, items)
}

func (h *InstrumentalHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "instrumental.get")

	id, ok := util.ParseUintID(c.Param("id"))
	if !ok {
		l.Warn("get_instrumental_failed", "status", 400, "reason", "id is not a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	item, err := h.Svc.Get(ctx, id)
	if err != nil {
		return httpError(l, "get_instrumental_failed", err)
	}
	return success(c, http.StatusOK, item)
}

func (h *InstrumentalHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "instrumental.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	res, err := h.Svc.Search(ctx, c.QueryParam("q"), page, size)
	if err != nil {
		return httpError(l, "search_instrumentals_failed", err)
	}
	return success(c, http.StatusOK, res)
}

func (h *InstrumentalHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "instrumental.create")

	var req transport.CreateInstrumentalRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_instrumental_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.Create(ctx, req)
	if err != nil {
		return httpError(l, "create_instrumental_failed", err)
	}

	l.Info("create_instrumental_success", "id", item.ID)
	return success(c, http.StatusCreated, item)
}

func (h *InstrumentalHTTP) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "instrumental.patch")

	id, ok := util.ParseUintID(c.Param("id"))
	if !ok {
		l.Warn("patch_instrumental_failed", "status", 400, "reason", "id is not a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	var req transport.PatchInstrumentalRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_instrumental_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.Patch(ctx, id, req)
	if err != nil {
		return httpError(l, "patch_instrumental_failed", err)
	}

	l.Info("patch_instrumental_success", "id", id)
	return success(c, http.StatusOK, item)
}

func (h *InstrumentalHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "instrumental.delete")

	id, ok := util.ParseUintID(c.Param("id"))
	if !ok {
		l.Warn("delete_instrumental_failed", "status", 400, "reason", "id is not a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return httpError(l, "delete_instrumental_failed", err)
	}

	l.Info("delete_instrumental_success", "id", id)
	return success(c, http.StatusOK, transport.IDResponse{ID: id})
}

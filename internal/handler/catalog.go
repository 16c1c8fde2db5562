package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/playbox/game-rental/internal/repository"
)

// CatalogHandler exposes catalog browsing for everyone and catalog
// management for managers.
type CatalogHandler struct {
	Catalog *repository.CatalogRepo
}

func NewCatalogHandler(catalog *repository.CatalogRepo) *CatalogHandler {
	if catalog == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Catalog: catalog}
}

// Browse handles GET /v1/catalog.  Optional query parameters:
// genre, max_price_cents, and sort=price_asc|price_desc.
func (h *CatalogHandler) Browse(c echo.Context) error {
	var f repository.BrowseFilter
	f.Genre = strings.TrimSpace(c.QueryParam("genre"))
	if raw := c.QueryParam("max_price_cents"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_price_cents"})
		}
		f.MaxPriceCents = uint32(n)
	}
	switch sort := c.QueryParam("sort"); sort {
	case "", "price_asc", "price_desc":
		f.Sort = sort
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sort"})
	}

	games, err := h.Catalog.Browse(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load catalog"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": games})
}

// Get handles GET /v1/catalog/:id.
func (h *CatalogHandler) Get(c echo.Context) error {
	gameID := c.Param("id")
	if gameID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid game id"})
	}
	g, err := h.Catalog.GetByID(c.Request().Context(), gameID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": g})
}

type catalogUpdateReq struct {
	PriceCents  uint32 `json:"price_cents"`
	Description string `json:"description"`
}

// Update handles PUT /v1/catalog/:id.  Manager only; sets price and
// description of an existing game.
func (h *CatalogHandler) Update(c echo.Context) error {
	gameID := c.Param("id")
	if gameID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid game id"})
	}
	var req catalogUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	err := h.Catalog.UpdateGame(c.Request().Context(), gameID, req.PriceCents, req.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true})
}

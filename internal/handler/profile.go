package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/playbox/game-rental/internal/config"
	"github.com/playbox/game-rental/internal/repository"
)

// ProfileHandler exposes the authenticated user's own record.
type ProfileHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewProfileHandler(cfg config.Config, users *repository.UserRepo) *ProfileHandler {
	return &ProfileHandler{Cfg: cfg, Users: users}
}

type profileResp struct {
	Login        string `json:"login"`
	Role         string `json:"role"`
	Phone        string `json:"phone"`
	FavGames     string `json:"fav_games"`
	OverdueGames uint32 `json:"overdue_games"`
}

type profileUpdateReq struct {
	Password string `json:"password"`
	Phone    string `json:"phone"`
	FavGames string `json:"fav_games"`
}

// Get handles GET /v1/me/profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	login, err := getLogin(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u, err := h.Users.GetByLogin(c.Request().Context(), login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, profileResp{
		Login:        u.Login,
		Role:         u.Role,
		Phone:        u.Phone,
		FavGames:     u.FavGames,
		OverdueGames: u.OverdueGames,
	})
}

// Update handles PATCH /v1/me/profile.  Any non-empty field in the
// body is applied; empty fields are left untouched.
func (h *ProfileHandler) Update(c echo.Context) error {
	login, err := getLogin(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req profileUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Password == "" && req.Phone == "" && req.FavGames == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
	}

	ctx := c.Request().Context()
	if req.Password != "" {
		if err := h.Users.UpdatePassword(ctx, login, req.Password, h.Cfg.BcryptCost); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update password failed"})
		}
	}
	if p := strings.TrimSpace(req.Phone); p != "" {
		if err := h.Users.UpdatePhone(ctx, login, p); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update phone failed"})
		}
	}
	if req.FavGames != "" {
		if err := h.Users.UpdateFavGames(ctx, login, req.FavGames); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update fav games failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true})
}

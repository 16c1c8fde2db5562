package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/playbox/game-rental/internal/model"
	"github.com/playbox/game-rental/internal/repository"
)

// UserAdminHandler exposes the manager-only user administration
// surface: changing a user's role and overdue-games counter.
type UserAdminHandler struct {
	Users *repository.UserRepo
}

func NewUserAdminHandler(users *repository.UserRepo) *UserAdminHandler {
	if users == nil {
		panic("nil repository passed to NewUserAdminHandler")
	}
	return &UserAdminHandler{Users: users}
}

type userAdminReq struct {
	Role         string `json:"role"`
	OverdueGames uint32 `json:"overdue_games"`
}

// Update handles PATCH /v1/users/:login.
func (h *UserAdminHandler) Update(c echo.Context) error {
	login := c.Param("login")
	if login == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid login"})
	}
	var req userAdminReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if !model.ValidRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}

	err := h.Users.UpdateRoleAndOverdue(c.Request().Context(), login, role, req.OverdueGames)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true})
}

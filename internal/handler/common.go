package handler // handler defines http handlers

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/playbox/game-rental/internal/model"
)

// getLogin extracts the authenticated login from echo.Context.  The
// JWT middleware stores the token subject under the "login" key.
func getLogin(c echo.Context) (string, error) {
	if s, ok := c.Get("login").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("missing login in context")
}

// getIdentity assembles the authenticated identity (login + role) from
// the claims placed in the context by the JWT middleware.
func getIdentity(c echo.Context) (model.Identity, error) {
	login, err := getLogin(c)
	if err != nil {
		return model.Identity{}, err
	}
	role, _ := c.Get("role").(string)
	return model.Identity{Login: login, Role: role}, nil
}

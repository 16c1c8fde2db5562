package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/playbox/game-rental/internal/queue"
	"github.com/playbox/game-rental/internal/repository"
	"github.com/playbox/game-rental/internal/service"
)

// recentOrderLimit caps the "recent orders" projection.
const recentOrderLimit = 5

// OrderHandler serves order placement and the order history
// projections on behalf of customers.  JWT authentication and role
// validation are assumed to have been performed by middleware; the
// placement itself runs inside the order service's transaction.
type OrderHandler struct {
	Service *service.OrderService
	Orders  *repository.OrderRepo
}

func NewOrderHandler(svc *service.OrderService, orders *repository.OrderRepo) *OrderHandler {
	if svc == nil || orders == nil {
		panic("nil dependency passed to NewOrderHandler")
	}
	return &OrderHandler{Service: svc, Orders: orders}
}

type placeOrderReq struct {
	GameID       string `json:"game_id"`
	UnitsOrdered int    `json:"units_ordered"`
}

// Place handles POST /v1/orders.  It resolves the game's current
// price, allocates identifiers and writes the order header, line item
// and initial tracking record as one unit.  On success it returns 201
// with the identifiers and derived values; the caller decides whether
// to retry a failed placement.
func (h *OrderHandler) Place(c echo.Context) error {
	ident, err := getIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req placeOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.GameID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "game_id is required"})
	}

	placed, err := h.Service.Place(c.Request().Context(), ident, req.GameID, req.UnitsOrdered)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "units_ordered must be positive"})
		case errors.Is(err, service.ErrUnknownGame):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
		case errors.Is(err, service.ErrIDCollision):
			return c.JSON(http.StatusConflict, echo.Map{"error": "could not allocate order id"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to place order"})
		}
	}

	// Fire-and-forget event publish; a broker outage must not fail the
	// already committed order.
	go func(p service.PlacedOrder) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue.PublishOrderPlaced(ctx, queue.OrderPlacedEvent{
			RentalOrderID:   p.RentalOrderID,
			TrackingID:      p.TrackingID,
			Login:           ident.Login,
			GameID:          req.GameID,
			UnitsOrdered:    p.UnitsOrdered,
			TotalPriceCents: p.TotalPriceCents,
			OrderTimestamp:  p.OrderTimestamp.Format(time.RFC3339),
			DueDate:         p.DueDate.Format(time.RFC3339),
		})
	}(*placed)

	return c.JSON(http.StatusCreated, placed)
}

// List handles GET /v1/my-orders.  Optional limit/offset query
// parameters page the history; without them the full history is
// returned newest first.
func (h *OrderHandler) List(c echo.Context) error {
	login, err := getLogin(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	limit, offset := 0, 0
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if raw := c.QueryParam("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			offset = n
		}
	}
	orders, err := h.Orders.ListByUser(c.Request().Context(), login, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load orders"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": orders})
}

// Recent handles GET /v1/my-orders/recent: the newest five orders.
func (h *OrderHandler) Recent(c echo.Context) error {
	login, err := getLogin(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orders, err := h.Orders.ListByUser(c.Request().Context(), login, recentOrderLimit, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load orders"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": orders})
}

// Games handles GET /v1/orders/:id/games: the line items of one order.
// Ownership is enforced; another user's order answers 403.
func (h *OrderHandler) Games(c echo.Context) error {
	login, err := getLogin(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orderID := c.Param("id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	ctx := c.Request().Context()
	order, err := h.Orders.GetByIDForUser(ctx, orderID, login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load order"})
	}
	games, err := h.Orders.GamesInOrder(ctx, order.RentalOrderID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load order games"})
	}
	return c.JSON(http.StatusOK, echo.Map{"order": order, "games": games})
}

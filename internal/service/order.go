package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/playbox/game-rental/internal/model"
	"github.com/playbox/game-rental/internal/repository"
)

// idRetryBudget bounds the check-and-retry loop used when allocating
// order and tracking identifiers.  UUID candidates make collisions
// vanishingly rare; the budget exists so the loop provably terminates.
const idRetryBudget = 5

// OrderService coordinates order placement: price snapshot, identifier
// allocation and the atomic three-row write (header, line item, initial
// tracking record).  Everything runs inside a single transaction; a
// failure at any step rolls the whole placement back.
type OrderService struct {
	DB       *sql.DB
	Catalog  *repository.CatalogRepo
	Orders   *repository.OrderRepo
	Tracking *repository.TrackingRepo
}

func NewOrderService(db *sql.DB, catalog *repository.CatalogRepo, orders *repository.OrderRepo, tracking *repository.TrackingRepo) *OrderService {
	if db == nil || catalog == nil || orders == nil || tracking == nil {
		panic("nil dependency passed to NewOrderService")
	}
	return &OrderService{DB: db, Catalog: catalog, Orders: orders, Tracking: tracking}
}

// PlacedOrder is returned to the caller after a successful placement.
// It echoes the derived values so the front end can display them
// without a follow-up read.
type PlacedOrder struct {
	RentalOrderID   string    `json:"rental_order_id"`
	TrackingID      string    `json:"tracking_id"`
	UnitsOrdered    uint32    `json:"units_ordered"`
	TotalPriceCents uint64    `json:"total_price_cents"`
	OrderTimestamp  time.Time `json:"order_timestamp"`
	DueDate         time.Time `json:"due_date"`
}

// newOrderID returns a fresh rental order identifier candidate.
func newOrderID() string { return "RO-" + uuid.NewString() }

// newTrackingID returns a fresh tracking identifier candidate.
func newTrackingID() string { return "TR-" + uuid.NewString() }

// Place executes the order placement transaction for an authenticated
// identity.  The unit price is snapshotted from the catalog inside the
// same transaction; the total is units × price and the due date is
// exactly seven days after the order timestamp.  On any storage
// failure no row of the three becomes visible.
func (s *OrderService) Place(ctx context.Context, ident model.Identity, gameID string, unitsOrdered int) (*PlacedOrder, error) {
	if unitsOrdered <= 0 {
		return nil, ErrInvalidQuantity
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, ErrWriteFailed
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	price, err := s.Catalog.GetPriceTx(ctx, tx, gameID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnknownGame
		}
		return nil, ErrWriteFailed
	}

	orderID, err := s.allocateOrderID(ctx, tx)
	if err != nil {
		return nil, err
	}
	trackingID, err := s.allocateTrackingID(ctx, tx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Second) // DATETIME has second precision
	order := &model.RentalOrder{
		RentalOrderID:   orderID,
		Login:           ident.Login,
		UnitsTotal:      uint32(unitsOrdered),
		TotalPriceCents: uint64(unitsOrdered) * uint64(price),
		OrderTimestamp:  now,
		DueDate:         now.Add(model.RentalDuration),
	}
	if err := s.Orders.CreateTx(ctx, tx, order); err != nil {
		return nil, ErrWriteFailed
	}
	if err := s.Orders.AddGameTx(ctx, tx, model.OrderGame{
		RentalOrderID: orderID,
		GameID:        gameID,
		UnitsOrdered:  uint32(unitsOrdered),
	}); err != nil {
		return nil, ErrWriteFailed
	}
	if err := s.Tracking.CreateTx(ctx, tx, &model.TrackingInfo{
		TrackingID:      trackingID,
		RentalOrderID:   orderID,
		Status:          model.TrackingPending,
		CurrentLocation: model.DefaultTrackingLocation,
		CourierName:     model.DefaultCourierName,
		LastUpdate:      now,
	}); err != nil {
		return nil, ErrWriteFailed
	}

	if err := tx.Commit(); err != nil {
		return nil, ErrWriteFailed
	}
	committed = true

	return &PlacedOrder{
		RentalOrderID:   orderID,
		TrackingID:      trackingID,
		UnitsOrdered:    order.UnitsTotal,
		TotalPriceCents: order.TotalPriceCents,
		OrderTimestamp:  order.OrderTimestamp,
		DueDate:         order.DueDate,
	}, nil
}

// allocateOrderID produces an identifier that cannot collide with any
// existing order.  Candidates are checked inside the placement
// transaction and regenerated on collision; an exhausted budget
// returns ErrIDCollision without a retry of the whole placement.
func (s *OrderService) allocateOrderID(ctx context.Context, tx *sql.Tx) (string, error) {
	for i := 0; i < idRetryBudget; i++ {
		candidate := newOrderID()
		exists, err := s.Orders.ExistsTx(ctx, tx, candidate)
		if err != nil {
			return "", ErrWriteFailed
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", ErrIDCollision
}

func (s *OrderService) allocateTrackingID(ctx context.Context, tx *sql.Tx) (string, error) {
	for i := 0; i < idRetryBudget; i++ {
		candidate := newTrackingID()
		exists, err := s.Tracking.ExistsTx(ctx, tx, candidate)
		if err != nil {
			return "", ErrWriteFailed
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", ErrIDCollision
}

package repository

import (
	"context"
	"database/sql"

	"github.com/playbox/game-rental/internal/model"
)

// OrderRepo provides persistence for rental order headers and their
// line items.  Order history is append-only: headers are inserted once
// by the order service's placement transaction and never updated.  All
// timestamp fields are stored in UTC.
type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

// ExistsTx reports whether an order ID is already taken, read inside
// the placement transaction so allocation races surface before commit.
func (r *OrderRepo) ExistsTx(ctx context.Context, tx *sql.Tx, rentalOrderID string) (bool, error) {
	var exists bool
	err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM rental_orders WHERE rental_order_id=?)",
		rentalOrderID).Scan(&exists)
	return exists, err
}

// CreateTx inserts the order header within the scope of an existing
// transaction.  The caller must commit or rollback.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *model.RentalOrder) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO rental_orders (rental_order_id, login, units_total, total_price_cents, order_timestamp, due_date) VALUES (?,?,?,?,?,?)",
		o.RentalOrderID, o.Login, o.UnitsTotal, o.TotalPriceCents, o.OrderTimestamp, o.DueDate)
	return err
}

// AddGameTx inserts the line item tying a game to an order, within the
// same transaction as the header insert.
func (r *OrderRepo) AddGameTx(ctx context.Context, tx *sql.Tx, g model.OrderGame) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO order_games (rental_order_id, game_id, units_ordered) VALUES (?,?,?)",
		g.RentalOrderID, g.GameID, g.UnitsOrdered)
	return err
}

// ListByUser returns the order history for a login, newest first.
// limit/offset page the result; limit <= 0 returns everything.
func (r *OrderRepo) ListByUser(ctx context.Context, login string, limit, offset int) ([]model.RentalOrder, error) {
	q := "SELECT rental_order_id, login, units_total, total_price_cents, order_timestamp, due_date FROM rental_orders WHERE login=? ORDER BY order_timestamp DESC"
	args := []interface{}{login}
	if limit > 0 {
		q += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	orders := make([]model.RentalOrder, 0)
	for rows.Next() {
		var o model.RentalOrder
		if err := rows.Scan(&o.RentalOrderID, &o.Login, &o.UnitsTotal, &o.TotalPriceCents, &o.OrderTimestamp, &o.DueDate); err != nil {
			return nil, err
		}
		o.OrderTimestamp = o.OrderTimestamp.UTC()
		o.DueDate = o.DueDate.UTC()
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByIDForUser returns one order header, enforcing ownership.  A
// missing order surfaces as sql.ErrNoRows; an order owned by a
// different login returns ErrForbidden.
func (r *OrderRepo) GetByIDForUser(ctx context.Context, rentalOrderID, login string) (model.RentalOrder, error) {
	var o model.RentalOrder
	err := r.DB.QueryRowContext(ctx,
		"SELECT rental_order_id, login, units_total, total_price_cents, order_timestamp, due_date FROM rental_orders WHERE rental_order_id=? LIMIT 1",
		rentalOrderID).Scan(&o.RentalOrderID, &o.Login, &o.UnitsTotal, &o.TotalPriceCents, &o.OrderTimestamp, &o.DueDate)
	if err != nil {
		return model.RentalOrder{}, err
	}
	if o.Login != login {
		return model.RentalOrder{}, ErrForbidden
	}
	o.OrderTimestamp = o.OrderTimestamp.UTC()
	o.DueDate = o.DueDate.UTC()
	return o, nil
}

// GamesInOrder returns the line items of an order in game-ID order.
func (r *OrderRepo) GamesInOrder(ctx context.Context, rentalOrderID string) ([]model.OrderGame, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT rental_order_id, game_id, units_ordered FROM order_games WHERE rental_order_id=? ORDER BY game_id",
		rentalOrderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	games := make([]model.OrderGame, 0)
	for rows.Next() {
		var g model.OrderGame
		if err := rows.Scan(&g.RentalOrderID, &g.GameID, &g.UnitsOrdered); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

package model

import "time"

// RentalDuration is how long a placed order may be kept before it is
// due back.  The due date is always OrderTimestamp + RentalDuration.
const RentalDuration = 7 * 24 * time.Hour

// RentalOrder is the order header written once when an order is placed
// and never mutated afterwards.  TotalPriceCents is a snapshot of
// units × catalog price at order time, immune to later catalog edits.
//
// Fields:
//  RentalOrderID   – unique order identifier (primary key).
//  Login           – owning user.
//  UnitsTotal      – total units ordered.
//  TotalPriceCents – units × unit price, in cents.
//  OrderTimestamp  – when the order was placed (UTC).
//  DueDate         – OrderTimestamp + RentalDuration.
type RentalOrder struct {
	RentalOrderID   string    `json:"rental_order_id"`   // rental_orders.rental_order_id
	Login           string    `json:"login"`             // rental_orders.login
	UnitsTotal      uint32    `json:"units_total"`       // rental_orders.units_total
	TotalPriceCents uint64    `json:"total_price_cents"` // rental_orders.total_price_cents
	OrderTimestamp  time.Time `json:"order_timestamp"`   // rental_orders.order_timestamp
	DueDate         time.Time `json:"due_date"`          // rental_orders.due_date
}

// OrderGame links an order to a catalog game.  Its lifetime is bound to
// the owning RentalOrder; the (order, game) pair is unique.
type OrderGame struct {
	RentalOrderID string `json:"rental_order_id"` // order_games.rental_order_id
	GameID        string `json:"game_id"`         // order_games.game_id
	UnitsOrdered  uint32 `json:"units_ordered"`   // order_games.units_ordered
}

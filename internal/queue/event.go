// Package queue defines message payloads exchanged over the message broker
// together with the publisher and the background consumer.
package queue

// OrderPlacedEvent is published after an order placement transaction
// commits.  It contains enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary
// database.
type OrderPlacedEvent struct {
	RentalOrderID   string `json:"rental_order_id"`
	TrackingID      string `json:"tracking_id"`
	Login           string `json:"login"`
	GameID          string `json:"game_id"`
	UnitsOrdered    uint32 `json:"units_ordered"`
	TotalPriceCents uint64 `json:"total_price_cents"`
	OrderTimestamp  string `json:"order_timestamp"`
	DueDate         string `json:"due_date"`
}

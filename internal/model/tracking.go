package model

import "time"

// TrackingStatus enumerates the shipment lifecycle of a rental order.
// Transitions move strictly forward one stage at a time:
// PENDING -> IN_TRANSIT -> DELIVERED -> RETURNED.
type TrackingStatus string

const (
	TrackingPending   TrackingStatus = "PENDING"
	TrackingInTransit TrackingStatus = "IN_TRANSIT"
	TrackingDelivered TrackingStatus = "DELIVERED"
	TrackingReturned  TrackingStatus = "RETURNED"
)

// Defaults written into the tracking record created alongside an order.
const (
	DefaultTrackingLocation = "Warehouse"
	DefaultCourierName      = "Unassigned"
)

// successor maps each status to the only status it may advance to.
// RETURNED is terminal and has no entry.
var successor = map[TrackingStatus]TrackingStatus{
	TrackingPending:   TrackingInTransit,
	TrackingInTransit: TrackingDelivered,
	TrackingDelivered: TrackingReturned,
}

// ParseTrackingStatus converts a stored or client-supplied string into
// a TrackingStatus.  The second return value is false for unknown values.
func ParseTrackingStatus(s string) (TrackingStatus, bool) {
	switch st := TrackingStatus(s); st {
	case TrackingPending, TrackingInTransit, TrackingDelivered, TrackingReturned:
		return st, true
	}
	return "", false
}

// Next returns the immediate successor of s.  ok is false when s is
// terminal or unknown.
func (s TrackingStatus) Next() (next TrackingStatus, ok bool) {
	next, ok = successor[s]
	return next, ok
}

// CanTransitionTo reports whether moving from s to next is a legal
// single-stage forward transition.
func (s TrackingStatus) CanTransitionTo(next TrackingStatus) bool {
	n, ok := successor[s]
	return ok && n == next
}

// TrackingInfo mirrors the `tracking_info` table.  One record exists
// per rental order, created atomically with it; afterwards the record
// is mutated only through validated status transitions.
type TrackingInfo struct {
	TrackingID         string         `json:"tracking_id"`         // tracking_info.tracking_id
	RentalOrderID      string         `json:"rental_order_id"`     // tracking_info.rental_order_id
	Status             TrackingStatus `json:"status"`              // tracking_info.status
	CurrentLocation    string         `json:"current_location"`    // tracking_info.current_location
	CourierName        string         `json:"courier_name"`        // tracking_info.courier_name
	AdditionalComments string         `json:"additional_comments"` // tracking_info.additional_comments
	LastUpdate         time.Time      `json:"last_update"`         // tracking_info.last_update
}

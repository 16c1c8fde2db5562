package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/playbox/game-rental/internal/model"
)

// TrackingRepo provides persistence for shipment tracking records.
// A record is inserted inside the order placement transaction and is
// mutated afterwards only by the tracking service, which takes a row
// lock before applying a transition.
type TrackingRepo struct{ DB *sql.DB }

func NewTrackingRepo(db *sql.DB) *TrackingRepo { return &TrackingRepo{DB: db} }

// ExistsTx reports whether a tracking ID is already taken inside the
// caller's transaction.
func (r *TrackingRepo) ExistsTx(ctx context.Context, tx *sql.Tx, trackingID string) (bool, error) {
	var exists bool
	err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM tracking_info WHERE tracking_id=?)",
		trackingID).Scan(&exists)
	return exists, err
}

// CreateTx inserts the initial tracking record within the scope of an
// existing transaction.  The caller must commit or rollback.
func (r *TrackingRepo) CreateTx(ctx context.Context, tx *sql.Tx, t *model.TrackingInfo) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO tracking_info (tracking_id, rental_order_id, status, current_location, courier_name, additional_comments, last_update) VALUES (?,?,?,?,?,?,?)",
		t.TrackingID, t.RentalOrderID, string(t.Status), t.CurrentLocation, t.CourierName, t.AdditionalComments, t.LastUpdate)
	return err
}

// GetStatusForUpdateTx re-reads the current status under a row lock so
// that concurrent updates to the same record are serialized and a stale
// transition cannot slip through.  Missing IDs surface as sql.ErrNoRows.
func (r *TrackingRepo) GetStatusForUpdateTx(ctx context.Context, tx *sql.Tx, trackingID string) (model.TrackingStatus, error) {
	var status string
	err := tx.QueryRowContext(ctx,
		"SELECT status FROM tracking_info WHERE tracking_id=? FOR UPDATE",
		trackingID).Scan(&status)
	if err != nil {
		return "", err
	}
	return model.TrackingStatus(status), nil
}

// ApplyUpdateTx writes the validated transition: new status, courier,
// comments and a fresh last-update timestamp.
func (r *TrackingRepo) ApplyUpdateTx(ctx context.Context, tx *sql.Tx, trackingID string, status model.TrackingStatus, courier, comments string, at time.Time) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE tracking_info SET status=?, courier_name=?, additional_comments=?, last_update=? WHERE tracking_id=?",
		string(status), courier, comments, at, trackingID)
	return err
}

// GetByID fetches a full tracking record.
func (r *TrackingRepo) GetByID(ctx context.Context, trackingID string) (model.TrackingInfo, error) {
	var (
		t      model.TrackingInfo
		status string
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT tracking_id, rental_order_id, status, current_location, courier_name, additional_comments, last_update FROM tracking_info WHERE tracking_id=? LIMIT 1",
		trackingID).Scan(&t.TrackingID, &t.RentalOrderID, &status, &t.CurrentLocation, &t.CourierName, &t.AdditionalComments, &t.LastUpdate)
	if err != nil {
		return model.TrackingInfo{}, err
	}
	t.Status = model.TrackingStatus(status)
	t.LastUpdate = t.LastUpdate.UTC()
	return t, nil
}

// GetByOrderID fetches the tracking record attached to an order.
func (r *TrackingRepo) GetByOrderID(ctx context.Context, rentalOrderID string) (model.TrackingInfo, error) {
	var (
		t      model.TrackingInfo
		status string
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT tracking_id, rental_order_id, status, current_location, courier_name, additional_comments, last_update FROM tracking_info WHERE rental_order_id=? LIMIT 1",
		rentalOrderID).Scan(&t.TrackingID, &t.RentalOrderID, &status, &t.CurrentLocation, &t.CourierName, &t.AdditionalComments, &t.LastUpdate)
	if err != nil {
		return model.TrackingInfo{}, err
	}
	t.Status = model.TrackingStatus(status)
	t.LastUpdate = t.LastUpdate.UTC()
	return t, nil
}

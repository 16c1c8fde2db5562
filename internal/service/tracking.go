package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/playbox/game-rental/internal/model"
	"github.com/playbox/game-rental/internal/repository"
)

// TrackingService applies validated status transitions to tracking
// records.  It is the only mutation path for a record after creation.
type TrackingService struct {
	DB       *sql.DB
	Tracking *repository.TrackingRepo
}

func NewTrackingService(db *sql.DB, tracking *repository.TrackingRepo) *TrackingService {
	if db == nil || tracking == nil {
		panic("nil dependency passed to NewTrackingService")
	}
	return &TrackingService{DB: db, Tracking: tracking}
}

// Update advances a tracking record to newStatus and refreshes the
// courier name, comments and last-update timestamp.  The current
// status is re-read under a row lock inside the same transaction, so
// two concurrent updates to one record serialize and the loser is
// validated against the committed state rather than a stale read.
// Only the immediate successor of the current status is accepted.
func (s *TrackingService) Update(ctx context.Context, trackingID string, newStatus model.TrackingStatus, courierName, comments string) error {
	if _, ok := model.ParseTrackingStatus(string(newStatus)); !ok {
		return ErrInvalidTransition
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return ErrWriteFailed
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	current, err := s.Tracking.GetStatusForUpdateTx(ctx, tx, trackingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTrackingNotFound
		}
		return ErrWriteFailed
	}
	if !current.CanTransitionTo(newStatus) {
		return ErrInvalidTransition
	}

	now := time.Now().UTC().Truncate(time.Second)
	if err := s.Tracking.ApplyUpdateTx(ctx, tx, trackingID, newStatus, courierName, comments, now); err != nil {
		return ErrWriteFailed
	}
	if err := tx.Commit(); err != nil {
		return ErrWriteFailed
	}
	committed = true
	return nil
}

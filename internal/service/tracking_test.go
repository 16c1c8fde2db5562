package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/playbox/game-rental/internal/model"
	"github.com/playbox/game-rental/internal/repository"
)

const (
	statusSelectForUpdate = "SELECT status FROM tracking_info WHERE tracking_id=? FOR UPDATE"
	trackingUpdate        = "UPDATE tracking_info SET status=?, courier_name=?, additional_comments=?, last_update=? WHERE tracking_id=?"
)

func newTrackingService(t *testing.T) (*TrackingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	svc := NewTrackingService(db, repository.NewTrackingRepo(db))
	return svc, mock, func() { db.Close() }
}

func TestTrackingService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("ForwardStep", func(t *testing.T) {
		svc, mock, done := newTrackingService(t)
		defer done()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(statusSelectForUpdate)).
			WithArgs("TR-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("PENDING"))
		mock.ExpectExec(regexp.QuoteMeta(trackingUpdate)).
			WithArgs("IN_TRANSIT", "DHL", "left warehouse", sqlmock.AnyArg(), "TR-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := svc.Update(ctx, "TR-1", model.TrackingInTransit, "DHL", "left warehouse")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StageSkipRejected", func(t *testing.T) {
		svc, mock, done := newTrackingService(t)
		defer done()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(statusSelectForUpdate)).
			WithArgs("TR-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("PENDING"))
		mock.ExpectRollback()

		err := svc.Update(ctx, "TR-1", model.TrackingDelivered, "", "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("BackwardMoveRejected", func(t *testing.T) {
		svc, mock, done := newTrackingService(t)
		defer done()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(statusSelectForUpdate)).
			WithArgs("TR-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("DELIVERED"))
		mock.ExpectRollback()

		err := svc.Update(ctx, "TR-1", model.TrackingInTransit, "", "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("TerminalStateFrozen", func(t *testing.T) {
		svc, mock, done := newTrackingService(t)
		defer done()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(statusSelectForUpdate)).
			WithArgs("TR-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("RETURNED"))
		mock.ExpectRollback()

		err := svc.Update(ctx, "TR-1", model.TrackingPending, "", "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, mock, done := newTrackingService(t)
		defer done()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(statusSelectForUpdate)).
			WithArgs("TR-missing").
			WillReturnRows(sqlmock.NewRows([]string{"status"}))
		mock.ExpectRollback()

		err := svc.Update(ctx, "TR-missing", model.TrackingInTransit, "", "")
		assert.ErrorIs(t, err, ErrTrackingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		svc, mock, done := newTrackingService(t)
		defer done()

		err := svc.Update(ctx, "TR-1", model.TrackingStatus("SHIPPED"), "", "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/playbox/game-rental/internal/model"
	"github.com/playbox/game-rental/internal/repository"
)

const (
	priceSelect       = "SELECT price_cents FROM catalog WHERE game_id=?"
	orderExistsSelect = "SELECT EXISTS(SELECT 1 FROM rental_orders WHERE rental_order_id=?)"
	trackExistsSelect = "SELECT EXISTS(SELECT 1 FROM tracking_info WHERE tracking_id=?)"
	orderInsert       = "INSERT INTO rental_orders (rental_order_id, login, units_total, total_price_cents, order_timestamp, due_date) VALUES (?,?,?,?,?,?)"
	gameInsert        = "INSERT INTO order_games (rental_order_id, game_id, units_ordered) VALUES (?,?,?)"
	trackingInsert    = "INSERT INTO tracking_info (tracking_id, rental_order_id, status, current_location, courier_name, additional_comments, last_update) VALUES (?,?,?,?,?,?,?)"
)

func newOrderService(t *testing.T) (*OrderService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	svc := NewOrderService(db,
		repository.NewCatalogRepo(db),
		repository.NewOrderRepo(db),
		repository.NewTrackingRepo(db))
	return svc, mock, func() { db.Close() }
}

func expectFreeID(mock sqlmock.Sqlmock, query string) {
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
}

func TestOrderService_Place(t *testing.T) {
	ident := model.Identity{Login: "alice", Role: model.RoleCustomer}
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, mock, done := newOrderService(t)
		defer done()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(priceSelect)).
			WithArgs("G-100").
			WillReturnRows(sqlmock.NewRows([]string{"price_cents"}).AddRow(999))
		expectFreeID(mock, orderExistsSelect)
		expectFreeID(mock, trackExistsSelect)
		mock.ExpectExec(regexp.QuoteMeta(orderInsert)).
			WithArgs(sqlmock.AnyArg(), "alice", uint32(3), uint64(2997), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(gameInsert)).
			WithArgs(sqlmock.AnyArg(), "G-100", uint32(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(trackingInsert)).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "PENDING", "Warehouse", "Unassigned", "", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		placed, err := svc.Place(ctx, ident, "G-100", 3)
		assert.NoError(t, err)
		if assert.NotNil(t, placed) {
			assert.True(t, strings.HasPrefix(placed.RentalOrderID, "RO-"))
			assert.True(t, strings.HasPrefix(placed.TrackingID, "TR-"))
			assert.Equal(t, uint32(3), placed.UnitsOrdered)
			assert.Equal(t, uint64(2997), placed.TotalPriceCents)
			assert.Equal(t, placed.OrderTimestamp.Add(model.RentalDuration), placed.DueDate)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InvalidQuantity", func(t *testing.T) {
		svc, mock, done := newOrderService(t)
		defer done()

		_, err := svc.Place(ctx, ident, "G-100", 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		_, err = svc.Place(ctx, ident, "G-100", -2)
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownGame", func(t *testing.T) {
		svc, mock, done := newOrderService(t)
		defer done()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(priceSelect)).
			WithArgs("G-404").
			WillReturnRows(sqlmock.NewRows([]string{"price_cents"}))
		mock.ExpectRollback()

		_, err := svc.Place(ctx, ident, "G-404", 1)
		assert.ErrorIs(t, err, ErrUnknownGame)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("HeaderInsertFailureRollsBack", func(t *testing.T) {
		svc, mock, done := newOrderService(t)
		defer done()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(priceSelect)).
			WithArgs("G-100").
			WillReturnRows(sqlmock.NewRows([]string{"price_cents"}).AddRow(999))
		expectFreeID(mock, orderExistsSelect)
		expectFreeID(mock, trackExistsSelect)
		mock.ExpectExec(regexp.QuoteMeta(orderInsert)).
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		_, err := svc.Place(ctx, ident, "G-100", 1)
		assert.ErrorIs(t, err, ErrWriteFailed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LineItemFailureRollsBack", func(t *testing.T) {
		svc, mock, done := newOrderService(t)
		defer done()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(priceSelect)).
			WithArgs("G-100").
			WillReturnRows(sqlmock.NewRows([]string{"price_cents"}).AddRow(999))
		expectFreeID(mock, orderExistsSelect)
		expectFreeID(mock, trackExistsSelect)
		mock.ExpectExec(regexp.QuoteMeta(orderInsert)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(gameInsert)).
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		_, err := svc.Place(ctx, ident, "G-100", 1)
		assert.ErrorIs(t, err, ErrWriteFailed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("OrderIDBudgetExhausted", func(t *testing.T) {
		svc, mock, done := newOrderService(t)
		defer done()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(priceSelect)).
			WithArgs("G-100").
			WillReturnRows(sqlmock.NewRows([]string{"price_cents"}).AddRow(999))
		// Every candidate collides; the loop must stop at the budget
		// instead of spinning.
		for i := 0; i < idRetryBudget; i++ {
			mock.ExpectQuery(regexp.QuoteMeta(orderExistsSelect)).
				WithArgs(sqlmock.AnyArg()).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		}
		mock.ExpectRollback()

		_, err := svc.Place(ctx, ident, "G-100", 1)
		assert.ErrorIs(t, err, ErrIDCollision)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CollidingCandidateRetried", func(t *testing.T) {
		svc, mock, done := newOrderService(t)
		defer done()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(priceSelect)).
			WithArgs("G-100").
			WillReturnRows(sqlmock.NewRows([]string{"price_cents"}).AddRow(250))
		mock.ExpectQuery(regexp.QuoteMeta(orderExistsSelect)).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		expectFreeID(mock, orderExistsSelect)
		expectFreeID(mock, trackExistsSelect)
		mock.ExpectExec(regexp.QuoteMeta(orderInsert)).
			WithArgs(sqlmock.AnyArg(), "alice", uint32(1), uint64(250), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(gameInsert)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(trackingInsert)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		placed, err := svc.Place(ctx, ident, "G-100", 1)
		assert.NoError(t, err)
		assert.NotNil(t, placed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNewOrderID_UniqueUnderConcurrency(t *testing.T) {
	const goroutines = 50
	const perGoroutine = 20

	ids := make(chan string, goroutines*perGoroutine)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				ids <- newOrderID()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{}, goroutines*perGoroutine)
	for id := range ids {
		assert.True(t, strings.HasPrefix(id, "RO-"))
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, goroutines*perGoroutine)
}

package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

const orderSelect = "SELECT rental_order_id, login, units_total, total_price_cents, order_timestamp, due_date FROM rental_orders"

func orderRow(id, login string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"rental_order_id", "login", "units_total", "total_price_cents", "order_timestamp", "due_date"}).
		AddRow(id, login, 2, 1998, now, now.Add(7*24*time.Hour))
}

func TestOrderRepo_GetByIDForUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewOrderRepo(db)
	ctx := context.Background()

	t.Run("Owner", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(orderSelect + " WHERE rental_order_id=? LIMIT 1")).
			WithArgs("RO-1").
			WillReturnRows(orderRow("RO-1", "alice"))

		o, err := repo.GetByIDForUser(ctx, "RO-1", "alice")
		assert.NoError(t, err)
		assert.Equal(t, "RO-1", o.RentalOrderID)
		assert.Equal(t, uint64(1998), o.TotalPriceCents)
	})

	t.Run("OtherUserForbidden", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(orderSelect + " WHERE rental_order_id=? LIMIT 1")).
			WithArgs("RO-1").
			WillReturnRows(orderRow("RO-1", "alice"))

		_, err := repo.GetByIDForUser(ctx, "RO-1", "mallory")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(orderSelect + " WHERE rental_order_id=? LIMIT 1")).
			WithArgs("RO-gone").
			WillReturnRows(sqlmock.NewRows([]string{"rental_order_id"}))

		_, err := repo.GetByIDForUser(ctx, "RO-gone", "alice")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewOrderRepo(db)
	ctx := context.Background()

	t.Run("FullHistory", func(t *testing.T) {
		rows := orderRow("RO-2", "alice")
		now := time.Now()
		rows.AddRow("RO-1", "alice", 1, 999, now.Add(-time.Hour), now.Add(7*24*time.Hour))

		mock.ExpectQuery(regexp.QuoteMeta(orderSelect+" WHERE login=? ORDER BY order_timestamp DESC")).
			WithArgs("alice").
			WillReturnRows(rows)

		orders, err := repo.ListByUser(ctx, "alice", 0, 0)
		assert.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("Paged", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(orderSelect+" WHERE login=? ORDER BY order_timestamp DESC LIMIT ? OFFSET ?")).
			WithArgs("alice", 5, 0).
			WillReturnRows(orderRow("RO-2", "alice"))

		orders, err := repo.ListByUser(ctx, "alice", 5, 0)
		assert.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("Empty", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(orderSelect+" WHERE login=? ORDER BY order_timestamp DESC")).
			WithArgs("nobody").
			WillReturnRows(sqlmock.NewRows([]string{"rental_order_id", "login", "units_total", "total_price_cents", "order_timestamp", "due_date"}))

		orders, err := repo.ListByUser(ctx, "nobody", 0, 0)
		assert.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Len(t, orders, 0)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

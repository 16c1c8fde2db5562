package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/playbox/game-rental/internal/model"
)

// CatalogRepo provides read and management access to the `catalog`
// table.  The order service only ever reads prices through it; writes
// come from manager-facing catalog management.
type CatalogRepo struct{ DB *sql.DB }

func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{DB: db} }

// GetPriceTx returns the current unit price of a game in cents, read
// inside the caller's transaction so the snapshot used for an order
// total is consistent with the rest of the placement writes.  Missing
// games surface as sql.ErrNoRows; callers must abort rather than
// default the price.
func (r *CatalogRepo) GetPriceTx(ctx context.Context, tx *sql.Tx, gameID string) (uint32, error) {
	var price uint32
	err := tx.QueryRowContext(ctx,
		"SELECT price_cents FROM catalog WHERE game_id=?", gameID).Scan(&price)
	return price, err
}

// GetByID fetches a full catalog row.
func (r *CatalogRepo) GetByID(ctx context.Context, gameID string) (model.CatalogGame, error) {
	var g model.CatalogGame
	err := r.DB.QueryRowContext(ctx,
		"SELECT game_id,game_name,genre,price_cents,description,updated_at FROM catalog WHERE game_id=? LIMIT 1",
		gameID).Scan(&g.GameID, &g.GameName, &g.Genre, &g.PriceCents, &g.Description, &g.UpdatedAt)
	return g, err
}

// BrowseFilter narrows and orders a catalog listing.  Zero values mean
// "no constraint"; Sort accepts "price_asc" or "price_desc".
type BrowseFilter struct {
	Genre         string
	MaxPriceCents uint32
	Sort          string
}

// Browse lists catalog rows matching the filter.  An empty filter
// returns the whole catalog ordered by game ID.
func (r *CatalogRepo) Browse(ctx context.Context, f BrowseFilter) ([]model.CatalogGame, error) {
	q := "SELECT game_id,game_name,genre,price_cents,description,updated_at FROM catalog"
	var (
		conds []string
		args  []interface{}
	)
	if f.Genre != "" {
		conds = append(conds, "genre=?")
		args = append(args, f.Genre)
	}
	if f.MaxPriceCents > 0 {
		conds = append(conds, "price_cents<=?")
		args = append(args, f.MaxPriceCents)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	switch f.Sort {
	case "price_asc":
		q += " ORDER BY price_cents ASC"
	case "price_desc":
		q += " ORDER BY price_cents DESC"
	default:
		q += " ORDER BY game_id"
	}
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	games := make([]model.CatalogGame, 0)
	for rows.Next() {
		var g model.CatalogGame
		if err := rows.Scan(&g.GameID, &g.GameName, &g.Genre, &g.PriceCents, &g.Description, &g.UpdatedAt); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

// UpdateGame sets a new price and description for an existing game.
// It returns sql.ErrNoRows when no catalog row matches the ID.
func (r *CatalogRepo) UpdateGame(ctx context.Context, gameID string, priceCents uint32, description string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE catalog SET price_cents=?, description=? WHERE game_id=?",
		priceCents, description, gameID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if err := r.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM catalog WHERE game_id=?)", gameID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return sql.ErrNoRows
		}
	}
	return nil
}

package model

import "time"

// CatalogGame mirrors the `catalog` table.  Prices are stored in cents
// so that order totals reconcile exactly with the snapshot taken at
// order time.
//
// Fields:
//  GameID      – unique catalog identifier (primary key).
//  GameName    – display name.
//  Genre       – genre label used for browsing filters.
//  PriceCents  – rental unit price in cents.
//  Description – free-form description.
//  UpdatedAt   – timestamp of last catalog edit.
type CatalogGame struct {
	GameID      string    `json:"game_id"`     // catalog.game_id
	GameName    string    `json:"game_name"`   // catalog.game_name
	Genre       string    `json:"genre"`       // catalog.genre
	PriceCents  uint32    `json:"price_cents"` // catalog.price_cents
	Description string    `json:"description"` // catalog.description
	UpdatedAt   time.Time `json:"-"`           // catalog.updated_at
}

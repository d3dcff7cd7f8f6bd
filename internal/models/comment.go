package models

import "time"

// Comment is an append-only note on an asset, independent of the audit trail.
type Comment struct {
	ID        int       `json:"id"`
	AssetID   int       `json:"asset_id"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

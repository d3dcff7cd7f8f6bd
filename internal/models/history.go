package models

import "time"

// HistoryEntry is one immutable audit row: a single tracked field's
// before/after value for one update call. Rows sharing a BatchID were
// written by the same update. There is no update or delete for history;
// rows only disappear when their asset is deleted.
type HistoryEntry struct {
	ID        int       `json:"id"`
	AssetID   int       `json:"asset_id"`
	BatchID   string    `json:"batch_id"`
	FieldName string    `json:"field_name"`
	OldValue  *string   `json:"old_value"`
	NewValue  *string   `json:"new_value"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

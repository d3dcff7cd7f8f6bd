package models

import "time"

// Operational statuses. Every status other than Active implies the unit has
// no operator assigned (the resolver in internal/fleet enforces this).
const (
	StatusActive  = "Active"
	StatusSpare   = "Spare"
	StatusInShop  = "In Shop"
	StatusRetired = "Retired"
)

// TerminalStatus reports whether s forces the assigned operator to be cleared.
func TerminalStatus(s string) bool {
	return s == StatusSpare || s == StatusInShop || s == StatusRetired
}

// ValidStatus reports whether s is one of the four operational statuses.
func ValidStatus(s string) bool {
	return s == StatusActive || TerminalStatus(s)
}

// Asset is one tracked fleet unit. AssignedOperator is nil when no operator
// is assigned; the empty string and the literal "0" are legacy sentinels
// that also mean "none" on the way in.
type Asset struct {
	ID               int        `json:"id"`
	Code             string     `json:"code"`
	Plant            string     `json:"plant"`
	AssignedOperator *string    `json:"assigned_operator"`
	Status           string     `json:"status"`
	ServiceDate      *time.Time `json:"service_date"`
	CabRating        int        `json:"cab_rating"`
	ExteriorRating   int        `json:"exterior_rating"`
	Make             string     `json:"make"`
	Model            string     `json:"model"`
	Year             int        `json:"year"`
	VIN              string     `json:"vin"`
	Notes            string     `json:"notes"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	UpdatedBy        string     `json:"updated_by"`
}

// AssetPatch is a partial update request. Each field distinguishes
// "absent from the body" (keep current) from an explicit JSON null (clear).
type AssetPatch struct {
	Code             Optional[string] `json:"code"`
	Plant            Optional[string] `json:"plant"`
	AssignedOperator Optional[string] `json:"assignedOperator"`
	Status           Optional[string] `json:"status"`
	ServiceDate      Optional[string] `json:"serviceDate"`
	CabRating        Optional[int]    `json:"cabRating"`
	ExteriorRating   Optional[int]    `json:"exteriorRating"`
	Make             Optional[string] `json:"make"`
	Model            Optional[string] `json:"model"`
	Year             Optional[int]    `json:"year"`
	VIN              Optional[string] `json:"vin"`
	Notes            Optional[string] `json:"notes"`
}

// AssetSummary is the list-view row: the asset plus aggregates joined in
// memory by the summary reader.
type AssetSummary struct {
	Asset
	LatestHistoryDate *time.Time `json:"latestHistoryDate"`
	OpenIssuesCount   int        `json:"openIssuesCount"`
	CommentsCount     int        `json:"commentsCount"`
}

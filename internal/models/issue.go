package models

import "time"

// Issue severities.
const (
	SeverityLow    = "Low"
	SeverityMedium = "Medium"
	SeverityHigh   = "High"
)

// ParseSeverity coerces any value outside the known set to Medium.
func ParseSeverity(s string) string {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return s
	default:
		return SeverityMedium
	}
}

// Issue is a defect report against an asset. TimeCompleted == nil defines
// "open"; completion is one-way (repeated completion overwrites the stamp,
// there is no reopen).
type Issue struct {
	ID            int        `json:"id"`
	AssetID       int        `json:"asset_id"`
	Description   string     `json:"description"`
	Severity      string     `json:"severity"`
	TimeCreated   time.Time  `json:"time_created"`
	TimeCompleted *time.Time `json:"time_completed"`
}

// Open reports whether the issue has not been completed.
func (i Issue) Open() bool {
	return i.TimeCompleted == nil
}

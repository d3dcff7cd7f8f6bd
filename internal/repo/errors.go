package repo

import (
	"errors"
	"fmt"
)

var (
	ErrAssetNotFound   = errors.New("asset not found")
	ErrCommentNotFound = errors.New("comment not found or already deleted")
	ErrIssueNotFound   = errors.New("issue not found or already deleted")
)

// PartialAuditError reports that the asset row was persisted but the audit
// batch insert failed. The primary write is not rolled back; operators need
// to see this as its own failure class, not a generic store error, because
// the record is now ahead of its trail. FieldHint is "field:newValue" when
// exactly one row was attempted, empty otherwise.
type PartialAuditError struct {
	FieldHint string
	Err       error
}

func (e *PartialAuditError) Error() string {
	if e.FieldHint != "" {
		return fmt.Sprintf("asset saved but audit write failed (%s): %v", e.FieldHint, e.Err)
	}
	return fmt.Sprintf("asset saved but audit write failed: %v", e.Err)
}

func (e *PartialAuditError) Unwrap() error { return e.Err }

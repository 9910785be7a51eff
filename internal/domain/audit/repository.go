package audit

import "context"

// Repository is the write-only audit log sink
type Repository interface {
	// Save persists an audit record
	Save(ctx context.Context, rec *Record) error
}

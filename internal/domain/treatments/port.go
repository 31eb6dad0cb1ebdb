package treatments

import "context"

// Repository defines persistence for treatment records.
type Repository interface {
	Save(ctx context.Context, t *Treatment) error
	ListByScan(ctx context.Context, scanID string, limit int) ([]*Treatment, error)
	CountActive(ctx context.Context, sinceDays int) (int, error)
}

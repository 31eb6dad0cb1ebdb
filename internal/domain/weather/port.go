package weather

import "context"

// Repository port for the weather log.
type Repository interface {
	Save(ctx context.Context, o *Observation) error
	Latest(ctx context.Context, location string) (*Observation, error)
}

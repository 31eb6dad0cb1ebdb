package scans

import (
	"context"
	"io"
)

// Repository port (interface for persistence)
type Repository interface {
	Save(ctx context.Context, s *Scan) error
	Get(ctx context.Context, id ScanID) (*Scan, error)
	Latest(ctx context.Context, limit int, cropType string) ([]*Scan, error)
	Summary(ctx context.Context) (StatsSummary, error)
}

// ImageStore port (interface for uploaded crop image storage)
type ImageStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

package ai

import (
	"context"

	"github.com/cropguard/cropguard/pkg/models"
)

// Request carries the image and its metadata into an analyzer.
type Request struct {
	Image    []byte
	ImageURL string
	Meta     models.ScanMeta
}

// Analyzer produces a full analysis for a crop image. Implementations may
// call an external model or serve catalog-backed results.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (*models.ScanResult, error)
}

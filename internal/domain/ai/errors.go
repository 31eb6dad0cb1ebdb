package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrBadAnalysis indicates the provider responded with output that does not
// parse into a scan result.
var ErrBadAnalysis = errors.New("ai returned malformed analysis")

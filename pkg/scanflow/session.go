package scanflow

import (
	"context"
	"errors"
	"sync"

	"github.com/cropguard/cropguard/pkg/client"
	"github.com/cropguard/cropguard/pkg/models"
)

// State of the scan workflow.
type State string

const (
	StateIdle       State = "idle"
	StateAcquiring  State = "acquiring"
	StateStaged     State = "staged"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

var (
	// ErrSubmissionInFlight is returned when a second submission is attempted
	// while one is already running. It is raised before any network call.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")

	// ErrStaleResult is returned when a submission completed but the session
	// moved on in the meantime. The response has been discarded.
	ErrStaleResult = errors.New("submission result discarded: session was reset")
)

// Submitter sends a staged image for analysis. *client.Client satisfies it.
type Submitter interface {
	AnalyzeImage(ctx context.Context, filename string, image []byte, meta models.ScanMeta) (*models.ScanResult, error)
}

// Session drives one scan workflow end to end. All methods are safe for
// concurrent use.
//
// After a successful submission the refresh callbacks run, each in its own
// goroutine, exactly once per success. A panic or error in one never affects
// the other.
type Session struct {
	api Submitter

	// Optional. Called after each successful submission.
	RefreshHistory func(ctx context.Context)
	RefreshStats   func(ctx context.Context)

	mu         sync.Mutex
	acq        *Acquisition
	state      State
	seq        uint64
	inFlight   bool
	lastResult *models.ScanResult
	lastErr    error

	refreshWG sync.WaitGroup
}

// NewSession builds an idle session that submits through api.
func NewSession(api Submitter) *Session {
	return &Session{
		api:   api,
		acq:   NewAcquisition(),
		state: StateIdle,
	}
}

// State returns the current workflow state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastResult returns the most recent successful analysis, nil if none.
func (s *Session) LastResult() *models.ScanResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult
}

// LastError returns the most recent submission failure, nil if none.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Staged returns the image queued for submission, nil when nothing is staged.
func (s *Session) Staged() *StagedImage {
	return s.acq.Staged()
}

// SelectFile stages an image from disk. Rejected while a submission runs.
func (s *Session) SelectFile(filename string, data []byte) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrSubmissionInFlight
	}
	s.mu.Unlock()

	if err := s.acq.SelectFile(filename, data); err != nil {
		return err
	}
	s.mu.Lock()
	s.state = StateStaged
	s.mu.Unlock()
	return nil
}

// StartCamera opens a live feed. Rejected while a submission runs.
func (s *Session) StartCamera(ctx context.Context, cam Camera) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrSubmissionInFlight
	}
	s.mu.Unlock()

	if err := s.acq.StartCamera(ctx, cam); err != nil {
		return err
	}
	s.mu.Lock()
	s.state = StateAcquiring
	s.mu.Unlock()
	return nil
}

// CaptureFrame stages one frame from the open feed. The feed is released on
// success and on failure alike.
func (s *Session) CaptureFrame(ctx context.Context) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrSubmissionInFlight
	}
	s.mu.Unlock()

	err := s.acq.CaptureFrame(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if s.acq.Staged() != nil {
			s.state = StateStaged
		} else {
			s.state = StateIdle
		}
		return err
	}
	s.state = StateStaged
	return nil
}

// StopCamera releases the feed without staging anything.
func (s *Session) StopCamera() {
	s.acq.StopCamera()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateAcquiring {
		if s.acq.Staged() != nil {
			s.state = StateStaged
		} else {
			s.state = StateIdle
		}
	}
}

// Submit sends the staged image for analysis and blocks until the result is
// in. Only one submission may run at a time; concurrent attempts fail fast
// with ErrSubmissionInFlight before anything hits the network.
//
// On failure the staged image is retained so the farmer can retry. On success
// it is cleared and the refresh callbacks fire.
func (s *Session) Submit(ctx context.Context, meta models.ScanMeta) (*models.ScanResult, error) {
	if err := meta.Validate(); err != nil {
		return nil, &client.ValidationError{Detail: err.Error()}
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	staged := s.acq.Staged()
	if staged == nil {
		s.mu.Unlock()
		return nil, &client.ValidationError{Field: "file", Detail: "no image is staged for submission"}
	}
	s.inFlight = true
	s.state = StateSubmitting
	s.seq++
	mySeq := s.seq
	s.mu.Unlock()

	result, err := s.api.AnalyzeImage(ctx, staged.Filename, staged.Data, meta)

	s.mu.Lock()
	s.inFlight = false
	if s.seq != mySeq {
		// The session was reset while this request was in the air. Whatever
		// state the reset produced wins; this response is dropped.
		s.mu.Unlock()
		return nil, ErrStaleResult
	}
	if err != nil {
		s.state = StateFailed
		s.lastErr = err
		s.mu.Unlock()
		return nil, err
	}
	s.state = StateSucceeded
	s.lastResult = result
	s.lastErr = nil
	s.acq.Clear()

	if s.RefreshHistory != nil {
		s.refreshWG.Add(1)
		go func(f func(ctx context.Context)) {
			defer s.refreshWG.Done()
			f(context.WithoutCancel(ctx))
		}(s.RefreshHistory)
	}
	if s.RefreshStats != nil {
		s.refreshWG.Add(1)
		go func(f func(ctx context.Context)) {
			defer s.refreshWG.Done()
			f(context.WithoutCancel(ctx))
		}(s.RefreshStats)
	}
	s.mu.Unlock()
	return result, nil
}

// Reset returns the session to idle. The staged image is dropped, any open
// feed is released and an in-flight submission, if one exists, will have its
// response discarded when it lands.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.acq.Close()
	s.acq = NewAcquisition()
	s.state = StateIdle
	s.lastErr = nil
}

// Close releases all resources. The session must not be used afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	s.seq++
	s.acq.Close()
	s.state = StateIdle
	s.mu.Unlock()
	s.refreshWG.Wait()
}

// WaitRefresh blocks until all pending refresh callbacks have finished.
func (s *Session) WaitRefresh() {
	s.refreshWG.Wait()
}

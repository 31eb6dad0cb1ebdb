// Package scanflow drives the scan workflow a field dashboard runs: stage an
// image from disk or camera, submit it for analysis, then refresh history and
// stats. It enforces the rules the UI depends on, one staged image at a time,
// one submission in flight, stale responses discarded, camera released on
// every path.
package scanflow

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/cropguard/cropguard/pkg/client"
)

// Images above this are rejected before staging.
const maxImageBytes = 10 << 20

// StagedImage is the image currently queued for submission.
type StagedImage struct {
	Filename string
	Data     []byte
	Source   string // "file" or "camera"
}

// Acquisition holds at most one staged image and at most one open camera
// feed. Staging from one source always clears the other.
type Acquisition struct {
	mu     sync.Mutex
	staged *StagedImage
	feed   Feed
}

func NewAcquisition() *Acquisition {
	return &Acquisition{}
}

// SelectFile stages an image picked from disk. Any open camera feed is
// released first so switching source never leaks the device.
func (a *Acquisition) SelectFile(filename string, data []byte) error {
	if err := validateImage(filename, data); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closeFeedLocked()
	a.staged = &StagedImage{Filename: filename, Data: data, Source: "file"}
	return nil
}

// StartCamera opens a feed on the given camera, replacing any previous feed.
func (a *Acquisition) StartCamera(ctx context.Context, cam Camera) error {
	feed, err := cam.Open(ctx)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closeFeedLocked()
	a.feed = feed
	return nil
}

// CaptureFrame grabs one frame from the open feed and stages it. The feed is
// closed whether or not the capture succeeds.
func (a *Acquisition) CaptureFrame(ctx context.Context) error {
	a.mu.Lock()
	feed := a.feed
	a.mu.Unlock()
	if feed == nil {
		return &client.ValidationError{Field: "camera", Detail: "no camera feed is open"}
	}

	name, data, err := feed.Capture(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.closeFeedLocked()
	if err != nil {
		return err
	}
	if verr := validateImage(name, data); verr != nil {
		return verr
	}
	a.staged = &StagedImage{Filename: name, Data: data, Source: "camera"}
	return nil
}

// StopCamera releases the feed without staging anything.
func (a *Acquisition) StopCamera() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closeFeedLocked()
}

// Staged returns the queued image, nil when nothing is staged.
func (a *Acquisition) Staged() *StagedImage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.staged
}

// CameraActive reports whether a feed is currently open.
func (a *Acquisition) CameraActive() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.feed != nil
}

// Clear drops the staged image.
func (a *Acquisition) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.staged = nil
}

// Close releases everything. Safe to call more than once.
func (a *Acquisition) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closeFeedLocked()
	a.staged = nil
}

func (a *Acquisition) closeFeedLocked() {
	if a.feed != nil {
		a.feed.Close()
		a.feed = nil
	}
}

func validateImage(filename string, data []byte) error {
	if len(data) == 0 {
		return &client.ValidationError{Field: "file", Detail: "image is empty"}
	}
	if len(data) > maxImageBytes {
		return &client.ValidationError{Field: "file", Detail: "image exceeds the 10MB limit"}
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return &client.ValidationError{
			Field:  "file",
			Detail: fmt.Sprintf("%s is not an image (detected %s)", filename, contentType),
		}
	}
	return nil
}

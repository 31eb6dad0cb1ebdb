package scanflow

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cropguard/cropguard/pkg/client"
)

// Camera produces live image feeds. Open asks the device (or remote endpoint)
// for access; a denied request surfaces as a PermissionError.
type Camera interface {
	Open(ctx context.Context) (Feed, error)
}

// Feed is an open camera stream. Close must be called on every exit path, it
// is what releases the device.
type Feed interface {
	Capture(ctx context.Context) (filename string, data []byte, err error)
	Close() error
}

// SnapshotCamera captures frames from an HTTP snapshot endpoint, the kind IP
// field cameras expose.
type SnapshotCamera struct {
	URL   string
	httpc *http.Client
}

// NewSnapshotCamera builds a camera for the given snapshot URL.
func NewSnapshotCamera(rawURL string) *SnapshotCamera {
	transport := &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &SnapshotCamera{
		URL: rawURL,
		httpc: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
	}
}

// Open verifies the endpoint is reachable and willing before handing out a
// feed, so permission problems surface at open time rather than mid-capture.
func (c *SnapshotCamera) Open(ctx context.Context) (Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.URL, nil)
	if err != nil {
		return nil, &client.NetworkError{Err: err}
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &client.NetworkError{Err: err}
	}
	resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &client.PermissionError{Detail: fmt.Sprintf("camera endpoint refused access (status %d)", resp.StatusCode)}
	}
	return &snapshotFeed{camera: c}, nil
}

type snapshotFeed struct {
	camera *SnapshotCamera
	closed bool
}

func (f *snapshotFeed) Capture(ctx context.Context) (string, []byte, error) {
	if f.closed {
		return "", nil, fmt.Errorf("capture on closed feed")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.camera.URL, nil)
	if err != nil {
		return "", nil, &client.NetworkError{Err: err}
	}
	req.Header.Set("Accept", "image/jpeg, image/png, image/webp, */*")

	resp, err := f.camera.httpc.Do(req)
	if err != nil {
		return "", nil, &client.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", nil, &client.PermissionError{Detail: fmt.Sprintf("camera endpoint refused access (status %d)", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return "", nil, &client.ServerError{StatusCode: resp.StatusCode, Detail: "camera snapshot failed"}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return "", nil, &client.NetworkError{Err: err}
	}
	if len(data) > maxImageBytes {
		return "", nil, &client.ValidationError{Field: "file", Detail: fmt.Sprintf("snapshot exceeds %d bytes", maxImageBytes)}
	}
	name := fmt.Sprintf("capture_%s.jpg", time.Now().Format("20060102_150405"))
	return name, data, nil
}

func (f *snapshotFeed) Close() error {
	f.closed = true
	return nil
}

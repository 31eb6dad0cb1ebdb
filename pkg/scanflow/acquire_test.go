package scanflow

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/cropguard/cropguard/pkg/client"
)

func TestSelectFileValidation(t *testing.T) {
	cases := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{"jpeg accepted", jpegBytes, false},
		{"png accepted", append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...), false},
		{"plain text rejected", []byte("not an image at all, just text"), true},
		{"empty rejected", nil, true},
		{"oversized rejected", bytes.Repeat([]byte{0xFF}, maxImageBytes+1), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAcquisition()
			err := a.SelectFile("upload.bin", tc.data)
			if tc.wantErr {
				var verr *client.ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("err = %v, want *ValidationError", err)
				}
				if a.Staged() != nil {
					t.Error("rejected image was staged anyway")
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectFile: %v", err)
			}
			if a.Staged() == nil {
				t.Fatal("nothing staged after valid select")
			}
		})
	}
}

func TestSelectFileReplacesStaged(t *testing.T) {
	a := NewAcquisition()
	if err := a.SelectFile("first.jpg", jpegBytes); err != nil {
		t.Fatalf("SelectFile: %v", err)
	}
	if err := a.SelectFile("second.jpg", jpegBytes); err != nil {
		t.Fatalf("SelectFile: %v", err)
	}

	staged := a.Staged()
	if staged == nil || staged.Filename != "second.jpg" {
		t.Errorf("staged = %+v, want second.jpg only", staged)
	}
}

func TestClearDropsStaged(t *testing.T) {
	a := NewAcquisition()
	if err := a.SelectFile("tomato.jpg", jpegBytes); err != nil {
		t.Fatalf("SelectFile: %v", err)
	}
	a.Clear()
	if a.Staged() != nil {
		t.Error("image still staged after Clear")
	}
}

func TestCaptureWithoutFeed(t *testing.T) {
	a := NewAcquisition()
	err := a.CaptureFrame(context.Background())
	var verr *client.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("err = %v, want *ValidationError", err)
	}
}

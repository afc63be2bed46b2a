package domain

import (
	"errors"
	"image"
	"testing"
)

func TestAcquisitionAcquired(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	tests := []struct {
		name string
		acq  Acquisition
		want bool
	}{
		{"local success", Acquisition{Image: img, Origin: OriginLocal}, true},
		{
			"remote fallback success",
			Acquisition{Image: img, Origin: OriginRemote, LocalErr: errors.New("no such file")},
			true,
		},
		{
			"both failed",
			Acquisition{
				Origin:    OriginNone,
				LocalErr:  errors.New("no such file"),
				RemoteErr: errors.New("status 404"),
			},
			false,
		},
		{"zero value", Acquisition{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.acq.Acquired(); got != tt.want {
				t.Errorf("Acquired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAcquisitionCause(t *testing.T) {
	localErr := errors.New("no such file")
	remoteErr := errors.New("connection refused")

	acq := Acquisition{LocalErr: localErr, RemoteErr: remoteErr}
	cause := acq.Cause()
	if !errors.Is(cause, localErr) || !errors.Is(cause, remoteErr) {
		t.Errorf("Cause() = %v, want both attempt errors", cause)
	}

	ok := Acquisition{Image: image.NewRGBA(image.Rect(0, 0, 2, 2)), LocalErr: localErr}
	if ok.Cause() != nil {
		t.Errorf("Cause() = %v for successful acquisition, want nil", ok.Cause())
	}
}

func TestFormatPreference(t *testing.T) {
	if !FormatPreference("default").IsDefault() {
		t.Error(`FormatPreference("default") should be the deferral sentinel`)
	}
	if FormatPreference("png").IsDefault() {
		t.Error(`FormatPreference("png") should not be the deferral sentinel`)
	}
}

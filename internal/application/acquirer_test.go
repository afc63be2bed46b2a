package application

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/imagegrid/quadra/internal/domain"
	"github.com/imagegrid/quadra/internal/ports/output"
)

func newTestAcquirer(codec *mockCodec, remote *mockRemote) *Acquirer {
	logger := testLogger()
	checker := NewEligibilityChecker(remote, logger)
	return NewAcquirer(codec, remote, checker, &output.NoOpMetrics{}, logger)
}

func TestAcquirerLocalDecode(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	codec := &mockCodec{files: map[string]image.Image{"photos/grid.png": img}}
	remote := &mockRemote{media: "image/png"}
	acquirer := newTestAcquirer(codec, remote)

	acq := acquirer.Acquire(context.Background(), "photos/grid.png", defaultTestOptions().Extensions)

	if !acq.Acquired() {
		t.Fatalf("Acquire() should succeed, cause: %v", acq.Cause())
	}
	if acq.Origin != domain.OriginLocal {
		t.Errorf("Origin = %v, want %v", acq.Origin, domain.OriginLocal)
	}
	if acq.LocalErr != nil || acq.RemoteErr != nil {
		t.Errorf("errors = (%v, %v), want none", acq.LocalErr, acq.RemoteErr)
	}
	if len(remote.probed)+len(remote.fetched) != 0 {
		t.Error("remote source should not be touched after a local decode")
	}
}

// The local decode is attempted for every specifier, URLs included; only
// after it fails does the remote fallback run.
func TestAcquirerTriesLocalDecodeFirstForURLs(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	codec := &mockCodec{decoded: img}
	remote := &mockRemote{media: "image/png"}
	acquirer := newTestAcquirer(codec, remote)

	spec := "https://img.example.com/grid.png"
	acq := acquirer.Acquire(context.Background(), spec, defaultTestOptions().Extensions)

	if len(codec.fileCalls) != 1 || codec.fileCalls[0] != spec {
		t.Errorf("local decode calls = %v, want exactly [%s]", codec.fileCalls, spec)
	}
	if !acq.Acquired() {
		t.Fatalf("Acquire() should succeed, cause: %v", acq.Cause())
	}
	if acq.Origin != domain.OriginRemote {
		t.Errorf("Origin = %v, want %v", acq.Origin, domain.OriginRemote)
	}
	if acq.LocalErr == nil {
		t.Error("LocalErr should record the failed local attempt")
	}
	if len(remote.fetched) != 1 || remote.fetched[0] != spec {
		t.Errorf("fetched = %v, want exactly [%s]", remote.fetched, spec)
	}
}

func TestAcquirerIneligibleRemote(t *testing.T) {
	codec := &mockCodec{}
	remote := &mockRemote{media: "text/html"}
	acquirer := newTestAcquirer(codec, remote)

	acq := acquirer.Acquire(context.Background(), "https://img.example.com/page", defaultTestOptions().Extensions)

	if acq.Acquired() {
		t.Fatal("Acquire() should fail for an ineligible specifier")
	}
	if !errors.Is(acq.RemoteErr, domain.ErrNotEligible) {
		t.Errorf("RemoteErr = %v, want %v", acq.RemoteErr, domain.ErrNotEligible)
	}
	if len(remote.fetched) != 0 {
		t.Error("ineligible specifiers must not be fetched")
	}
}

func TestAcquirerFetchFailure(t *testing.T) {
	fetchErr := errors.New("connection reset")
	codec := &mockCodec{}
	remote := &mockRemote{media: "image/png", fetchErr: fetchErr}
	acquirer := newTestAcquirer(codec, remote)

	acq := acquirer.Acquire(context.Background(), "https://img.example.com/grid.png", defaultTestOptions().Extensions)

	if acq.Acquired() {
		t.Fatal("Acquire() should fail when the fetch fails")
	}
	if !errors.Is(acq.RemoteErr, fetchErr) {
		t.Errorf("RemoteErr = %v, want %v", acq.RemoteErr, fetchErr)
	}
}

func TestAcquirerRemoteDecodeFailure(t *testing.T) {
	decodeErr := errors.New("not an image")
	codec := &mockCodec{decodeErr: decodeErr}
	remote := &mockRemote{media: "image/png", body: []byte("<html>")}
	acquirer := newTestAcquirer(codec, remote)

	acq := acquirer.Acquire(context.Background(), "https://img.example.com/grid.png", defaultTestOptions().Extensions)

	if acq.Acquired() {
		t.Fatal("Acquire() should fail when the payload does not decode")
	}
	var derr *domain.DecodeError
	if !errors.As(acq.RemoteErr, &derr) {
		t.Fatalf("RemoteErr = %T, want *domain.DecodeError", acq.RemoteErr)
	}
	if !errors.Is(acq.RemoteErr, decodeErr) {
		t.Errorf("RemoteErr should wrap %v, got %v", decodeErr, acq.RemoteErr)
	}
}

func TestAcquirerLocalOnlySpecifier(t *testing.T) {
	codec := &mockCodec{}
	remote := &mockRemote{media: "image/png"}
	acquirer := newTestAcquirer(codec, remote)

	acq := acquirer.Acquire(context.Background(), "photos/absent.png", defaultTestOptions().Extensions)

	if acq.Acquired() {
		t.Fatal("Acquire() should fail for an undecodable local specifier")
	}
	if acq.RemoteErr != nil {
		t.Errorf("RemoteErr = %v, want nil for a non-URL specifier", acq.RemoteErr)
	}
	if acq.Cause() == nil {
		t.Error("Cause() should report the local failure")
	}
	if len(remote.probed)+len(remote.fetched) != 0 {
		t.Error("non-URL specifiers must not reach the remote source")
	}
}

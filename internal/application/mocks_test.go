package application

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/draw"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/imagegrid/quadra/internal/domain"
)

var errMockDecode = errors.New("mock decode failed")

// testLogger returns a logger that only surfaces errors during tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// mockRemote implements output.RemoteSource for testing.
type mockRemote struct {
	media    domain.MediaType
	mediaBy  map[string]domain.MediaType
	probeErr error
	body     []byte
	fetchErr error

	probed  []string
	fetched []string
}

func (m *mockRemote) Probe(_ context.Context, rawURL string) (domain.MediaType, error) {
	m.probed = append(m.probed, rawURL)
	if m.probeErr != nil {
		return "", m.probeErr
	}
	if media, ok := m.mediaBy[rawURL]; ok {
		return media, nil
	}
	return m.media, nil
}

func (m *mockRemote) Fetch(_ context.Context, rawURL string) (io.ReadCloser, error) {
	m.fetched = append(m.fetched, rawURL)
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return io.NopCloser(bytes.NewReader(m.body)), nil
}

// mockCodec implements output.ImageCodec for testing. File and stream
// decodes succeed only for fixtures registered up front; crops are real
// so written quadrants have the expected dimensions, and encoding always
// produces PNG bytes regardless of the requested format.
type mockCodec struct {
	files      map[string]image.Image
	decoded    image.Image
	decodeErr  error
	encodeErr  error
	failOn     int // 1-based Encode call that fails; 0 fails every call
	cantEncode map[string]bool

	fileCalls   []string
	encodeCalls int
}

func (m *mockCodec) DecodeFile(path string) (image.Image, error) {
	m.fileCalls = append(m.fileCalls, path)
	if img, ok := m.files[path]; ok {
		return img, nil
	}
	return nil, errMockDecode
}

func (m *mockCodec) Decode(_ io.Reader) (image.Image, error) {
	if m.decodeErr != nil {
		return nil, m.decodeErr
	}
	if m.decoded == nil {
		return nil, errMockDecode
	}
	return m.decoded, nil
}

func (m *mockCodec) Crop(img image.Image, region image.Rectangle) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	draw.Draw(out, out.Bounds(), img, region.Min, draw.Src)
	return out
}

func (m *mockCodec) Encode(w io.Writer, img image.Image, _ string) error {
	m.encodeCalls++
	if m.encodeErr != nil && (m.failOn == 0 || m.encodeCalls == m.failOn) {
		return m.encodeErr
	}
	return png.Encode(w, img)
}

func (m *mockCodec) CanEncode(formatExt string) bool {
	return !m.cantEncode[formatExt]
}

package scan_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/scango/internal/capture"
	"github.com/vmunix/scango/internal/history"
	"github.com/vmunix/scango/internal/intent"
	"github.com/vmunix/scango/internal/resolve"
	"github.com/vmunix/scango/internal/scan"
	"github.com/vmunix/scango/internal/scan/mocks"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testDest returns a destination inside a fresh temp directory.
func testDest(t *testing.T, prompt bool) resolve.Destination {
	t.Helper()
	return resolve.Destination{
		Directory: t.TempDir(),
		BaseName:  "2026-08-23 scan 01",
		Extension: intent.FormatPDF,
		Prompt:    prompt,
	}
}

// writeArtifact stands in for a real capture and writes a file that clears
// the size floor.
func writeArtifact(req capture.Request) error {
	return os.WriteFile(req.Target, bytes.Repeat([]byte("x"), scan.MinArtifactSize+64), 0o644)
}

func TestRunner_Run_NoPrompt(t *testing.T) {
	ctrl := gomock.NewController(t)
	dest := testDest(t, false)
	target := dest.FullPath()

	var got capture.Request
	mockCap := mocks.NewMockCapturer(ctrl)
	mockCap.EXPECT().
		Capture(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req capture.Request) error {
			got = req
			return writeArtifact(req)
		})

	// No expectations: the namer must stay untouched when the name is final.
	mockNamer := mocks.NewMockNamer(ctrl)

	mockOpener := mocks.NewMockOpener(ctrl)
	mockOpener.EXPECT().Open(target).Return(nil)

	runner := scan.New(mockCap, mockNamer, mockOpener, nil, testLogger())
	res, err := runner.Run(context.Background(), intent.Classify(nil), dest)

	require.NoError(t, err)
	assert.Equal(t, target, res.Path)
	assert.False(t, res.Renamed)
	assert.GreaterOrEqual(t, res.Size, int64(scan.MinArtifactSize))

	assert.Equal(t, dest.Directory, got.Directory)
	assert.Equal(t, target, got.Target)
	assert.Equal(t, intent.FormatPDF, got.Format)
}

func TestRunner_Run_PromptRename(t *testing.T) {
	ctrl := gomock.NewController(t)
	dest := testDest(t, true)
	target := dest.FullPath()
	final := filepath.Join(dest.Directory, "water bill.pdf")

	mockCap := mocks.NewMockCapturer(ctrl)
	mockCap.EXPECT().
		Capture(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req capture.Request) error {
			return writeArtifact(req)
		})

	mockNamer := mocks.NewMockNamer(ctrl)
	mockNamer.EXPECT().
		Name(gomock.Any(), gomock.Any()).
		Return(final, nil)

	// The viewer must receive the settled name, not the placeholder.
	mockOpener := mocks.NewMockOpener(ctrl)
	mockOpener.EXPECT().Open(final).Return(nil)

	runner := scan.New(mockCap, mockNamer, mockOpener, nil, testLogger())
	res, err := runner.Run(context.Background(), intent.Classify(nil), dest)

	require.NoError(t, err)
	assert.Equal(t, final, res.Path)
	assert.True(t, res.Renamed)
	assert.FileExists(t, final)
	assert.NoFileExists(t, target)
}

func TestRunner_Run_PromptKeepsSuggestion(t *testing.T) {
	ctrl := gomock.NewController(t)
	dest := testDest(t, true)
	target := dest.FullPath()

	mockCap := mocks.NewMockCapturer(ctrl)
	mockCap.EXPECT().
		Capture(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req capture.Request) error {
			return writeArtifact(req)
		})

	mockNamer := mocks.NewMockNamer(ctrl)
	mockNamer.EXPECT().
		Name(gomock.Any(), gomock.Any()).
		Return(target, nil)

	mockOpener := mocks.NewMockOpener(ctrl)
	mockOpener.EXPECT().Open(target).Return(nil)

	runner := scan.New(mockCap, mockNamer, mockOpener, nil, testLogger())
	res, err := runner.Run(context.Background(), intent.Classify(nil), dest)

	require.NoError(t, err)
	assert.False(t, res.Renamed, "identical name must not trigger a rename")
	assert.FileExists(t, target)
}

func TestRunner_Run_ConcurrentJoin(t *testing.T) {
	ctrl := gomock.NewController(t)
	dest := testDest(t, true)

	// Each side signals its own start and waits for the other. If the
	// runner sequenced the operations, one side would time out.
	captureStarted := make(chan struct{})
	promptOpen := make(chan struct{})

	mockCap := mocks.NewMockCapturer(ctrl)
	mockCap.EXPECT().
		Capture(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req capture.Request) error {
			close(captureStarted)
			select {
			case <-promptOpen:
			case <-time.After(5 * time.Second):
				return errors.New("prompt never opened while capture ran")
			}
			return writeArtifact(req)
		})

	mockNamer := mocks.NewMockNamer(ctrl)
	mockNamer.EXPECT().
		Name(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d resolve.Destination) (string, error) {
			close(promptOpen)
			select {
			case <-captureStarted:
			case <-time.After(5 * time.Second):
				return "", errors.New("capture never started while prompt was open")
			}
			return d.FullPath(), nil
		})

	mockOpener := mocks.NewMockOpener(ctrl)
	mockOpener.EXPECT().Open(gomock.Any()).Return(nil)

	runner := scan.New(mockCap, mockNamer, mockOpener, nil, testLogger())
	_, err := runner.Run(context.Background(), intent.Classify(nil), dest)

	require.NoError(t, err)
}

func TestRunner_Run_CaptureFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	dest := testDest(t, true)
	final := filepath.Join(dest.Directory, "receipt.pdf")

	mockCap := mocks.NewMockCapturer(ctrl)
	mockCap.EXPECT().
		Capture(gomock.Any(), gomock.Any()).
		Return(errors.New("scanimage: no such device"))

	// The prompt still resolves; its answer is discarded.
	mockNamer := mocks.NewMockNamer(ctrl)
	mockNamer.EXPECT().
		Name(gomock.Any(), gomock.Any()).
		Return(final, nil)

	mockOpener := mocks.NewMockOpener(ctrl)

	runner := scan.New(mockCap, mockNamer, mockOpener, nil, testLogger())
	_, err := runner.Run(context.Background(), intent.Classify(nil), dest)

	require.Error(t, err)
	assert.ErrorContains(t, err, "no such device")
	assert.NoFileExists(t, final)
}

func TestRunner_Run_NamingFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	dest := testDest(t, true)
	target := dest.FullPath()

	mockCap := mocks.NewMockCapturer(ctrl)
	mockCap.EXPECT().
		Capture(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req capture.Request) error {
			return writeArtifact(req)
		})

	mockNamer := mocks.NewMockNamer(ctrl)
	mockNamer.EXPECT().
		Name(gomock.Any(), gomock.Any()).
		Return("", errors.New("dialog closed"))

	mockOpener := mocks.NewMockOpener(ctrl)

	runner := scan.New(mockCap, mockNamer, mockOpener, nil, testLogger())
	_, err := runner.Run(context.Background(), intent.Classify(nil), dest)

	require.Error(t, err)
	assert.ErrorContains(t, err, "naming:")
	// The capture completed, so the artifact stays under its placeholder.
	assert.FileExists(t, target)
}

func TestRunner_Run_RenameFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	dest := testDest(t, true)
	final := filepath.Join(dest.Directory, "missing", "receipt.pdf")

	mockCap := mocks.NewMockCapturer(ctrl)
	mockCap.EXPECT().
		Capture(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req capture.Request) error {
			return writeArtifact(req)
		})

	mockNamer := mocks.NewMockNamer(ctrl)
	mockNamer.EXPECT().
		Name(gomock.Any(), gomock.Any()).
		Return(final, nil)

	mockOpener := mocks.NewMockOpener(ctrl)

	runner := scan.New(mockCap, mockNamer, mockOpener, nil, testLogger())
	_, err := runner.Run(context.Background(), intent.Classify(nil), dest)

	require.Error(t, err)
	assert.ErrorContains(t, err, "rename artifact")
}

func TestRunner_Run_SizeFloor(t *testing.T) {
	ctrl := gomock.NewController(t)
	dest := testDest(t, false)

	mockCap := mocks.NewMockCapturer(ctrl)
	mockCap.EXPECT().
		Capture(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req capture.Request) error {
			return os.WriteFile(req.Target, []byte("P4\n1 1\n"), 0o644)
		})

	mockNamer := mocks.NewMockNamer(ctrl)
	mockOpener := mocks.NewMockOpener(ctrl)

	runner := scan.New(mockCap, mockNamer, mockOpener, nil, testLogger())
	_, err := runner.Run(context.Background(), intent.Classify(nil), dest)

	require.Error(t, err)
	assert.ErrorContains(t, err, "below the")
}

func TestRunner_Run_MissingArtifact(t *testing.T) {
	ctrl := gomock.NewController(t)
	dest := testDest(t, false)

	// Capture reports success but never writes the file.
	mockCap := mocks.NewMockCapturer(ctrl)
	mockCap.EXPECT().
		Capture(gomock.Any(), gomock.Any()).
		Return(nil)

	mockNamer := mocks.NewMockNamer(ctrl)
	mockOpener := mocks.NewMockOpener(ctrl)

	runner := scan.New(mockCap, mockNamer, mockOpener, nil, testLogger())
	_, err := runner.Run(context.Background(), intent.Classify(nil), dest)

	require.Error(t, err)
	assert.ErrorContains(t, err, "produced no file")
}

func TestRunner_Run_ViewerFailureNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	dest := testDest(t, false)

	mockCap := mocks.NewMockCapturer(ctrl)
	mockCap.EXPECT().
		Capture(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req capture.Request) error {
			return writeArtifact(req)
		})

	mockNamer := mocks.NewMockNamer(ctrl)

	mockOpener := mocks.NewMockOpener(ctrl)
	mockOpener.EXPECT().Open(gomock.Any()).Return(errors.New("no DISPLAY"))

	runner := scan.New(mockCap, mockNamer, mockOpener, nil, testLogger())
	res, err := runner.Run(context.Background(), intent.Classify(nil), dest)

	require.NoError(t, err, "viewer trouble must not fail the run")
	assert.FileExists(t, res.Path)
}

func TestRunner_Run_NoOpenAfter(t *testing.T) {
	ctrl := gomock.NewController(t)
	dest := testDest(t, false)

	mockCap := mocks.NewMockCapturer(ctrl)
	mockCap.EXPECT().
		Capture(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req capture.Request) error {
			return writeArtifact(req)
		})

	mockNamer := mocks.NewMockNamer(ctrl)

	// No expectations: "close" suppresses the viewer entirely.
	mockOpener := mocks.NewMockOpener(ctrl)

	runner := scan.New(mockCap, mockNamer, mockOpener, nil, testLogger())
	_, err := runner.Run(context.Background(), intent.Classify([]string{"close"}), dest)

	require.NoError(t, err)
}

func TestRunner_Run_RecordsHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	dest := testDest(t, false)

	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	mockCap := mocks.NewMockCapturer(ctrl)
	mockCap.EXPECT().
		Capture(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req capture.Request) error {
			return writeArtifact(req)
		})

	mockNamer := mocks.NewMockNamer(ctrl)
	mockOpener := mocks.NewMockOpener(ctrl)
	mockOpener.EXPECT().Open(gomock.Any()).Return(nil)

	runner := scan.New(mockCap, mockNamer, mockOpener, store, testLogger())
	res, err := runner.Run(context.Background(), intent.Classify(nil), dest)
	require.NoError(t, err)

	entries, err := store.Recent(5)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, res.Path, e.Path)
	assert.Equal(t, "pdf", e.Format)
	assert.Equal(t, res.Size, e.SizeBytes)
	assert.Equal(t, 1, e.Pages)
	assert.False(t, e.Simulated)
	assert.False(t, e.Renamed)
}

func TestRunner_Run_HistoryFailureNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	dest := testDest(t, false)

	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close()) // recording against a closed store must fail quietly

	mockCap := mocks.NewMockCapturer(ctrl)
	mockCap.EXPECT().
		Capture(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req capture.Request) error {
			return writeArtifact(req)
		})

	mockNamer := mocks.NewMockNamer(ctrl)
	mockOpener := mocks.NewMockOpener(ctrl)
	mockOpener.EXPECT().Open(gomock.Any()).Return(nil)

	runner := scan.New(mockCap, mockNamer, mockOpener, store, testLogger())
	_, err = runner.Run(context.Background(), intent.Classify(nil), dest)

	require.NoError(t, err)
}

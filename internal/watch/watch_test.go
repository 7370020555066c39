package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_CollapsesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>1</p>"), 0o644))

	logger, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, path, 50*time.Millisecond, logger, func() { runs.Add(1) })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("<p>2</p>"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.EqualValues(t, 1, runs.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestFile_MissingDirectory(t *testing.T) {
	logger, _ := test.NewNullLogger()
	err := File(context.Background(), filepath.Join(t.TempDir(), "gone", "page.html"), 0, logger, func() {})
	assert.Error(t, err)
}

func TestFile_RunsDoNotOverlap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>1</p>"), 0o644))

	logger, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var running, overlaps, runs atomic.Int32
	started := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, path, 20*time.Millisecond, logger, func() {
			if running.Add(1) > 1 {
				overlaps.Add(1)
			}
			started <- struct{}{}
			time.Sleep(200 * time.Millisecond)
			runs.Add(1)
			running.Add(-1)
		})
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("<p>2</p>"), 0o644))
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first run did not start")
	}
	// A second burst while the first run is still busy.
	require.NoError(t, os.WriteFile(path, []byte("<p>3</p>"), 0o644))

	assert.Eventually(t, func() bool { return runs.Load() == 2 }, 3*time.Second, 20*time.Millisecond)
	assert.EqualValues(t, 0, overlaps.Load())

	// Cancelling during a run returns only once that run is over.
	require.NoError(t, os.WriteFile(path, []byte("<p>4</p>"), 0o644))
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("third run did not start")
	}
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.EqualValues(t, 3, runs.Load())
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

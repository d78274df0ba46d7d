package watch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loopHarness struct {
	events chan fsnotify.Event
	errs   chan error
	calls  atomic.Int32
	cancel context.CancelFunc
	done   chan error
}

func startLoop(t *testing.T, fail bool) *loopHarness {
	t.Helper()
	h := &loopHarness{
		events: make(chan fsnotify.Event),
		errs:   make(chan error),
		done:   make(chan error, 1),
	}
	w := &Watcher{
		Dirs:     []string{"content"},
		Debounce: 20 * time.Millisecond,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Rebuild: func(ctx context.Context) error {
			h.calls.Add(1)
			if fail {
				return errors.New("boom")
			}
			return nil
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() { h.done <- w.loop(ctx, h.events, h.errs) }()
	t.Cleanup(func() {
		cancel()
		<-h.done
	})
	return h
}

func (h *loopHarness) send(op fsnotify.Op) {
	h.events <- fsnotify.Event{Name: "content/a.md", Op: op}
}

func TestLoop_DebouncesBurst(t *testing.T) {
	h := startLoop(t, false)
	h.send(fsnotify.Write)
	h.send(fsnotify.Create)
	h.send(fsnotify.Write)

	assert.Eventually(t, func() bool { return h.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), h.calls.Load())
}

func TestLoop_IgnoresChmod(t *testing.T) {
	h := startLoop(t, false)
	h.send(fsnotify.Chmod)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), h.calls.Load())
}

func TestLoop_ContinuesAfterRebuildError(t *testing.T) {
	h := startLoop(t, true)
	h.send(fsnotify.Write)
	require.Eventually(t, func() bool { return h.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	h.errs <- errors.New("queue overflow")
	h.send(fsnotify.Remove)
	assert.Eventually(t, func() bool { return h.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestLoop_StopsOnCancel(t *testing.T) {
	h := startLoop(t, false)
	h.cancel()
	select {
	case err := <-h.done:
		assert.NoError(t, err)
		h.done <- err
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestLoop_StopsWhenEventsClose(t *testing.T) {
	h := startLoop(t, false)
	close(h.events)
	select {
	case err := <-h.done:
		assert.NoError(t, err)
		h.done <- err
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestRun_MissingDir(t *testing.T) {
	w := New([]string{t.TempDir() + "/missing"}, func(context.Context) error { return nil }, nil)
	err := w.Run(context.Background())
	assert.Error(t, err)
}

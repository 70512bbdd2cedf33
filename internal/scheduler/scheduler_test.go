package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCleanupScheduler_RunsOnInterval(t *testing.T) {
	var runs atomic.Int32
	s := NewCleanupScheduler(func(ctx context.Context) (int, error) {
		runs.Add(1)
		return 2, nil
	}, 10*time.Millisecond)

	go s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	status := s.GetStatus()
	require.Equal(t, true, status["running"])
	require.Equal(t, 2, status["lastCount"])
}

func TestCleanupScheduler_StopEndsLoop(t *testing.T) {
	var runs atomic.Int32
	s := NewCleanupScheduler(func(ctx context.Context) (int, error) {
		runs.Add(1)
		return 0, nil
	}, 10*time.Millisecond)

	go s.Start(context.Background())

	require.Eventually(t, func() bool { return runs.Load() >= 1 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(50 * time.Millisecond)
	require.LessOrEqual(t, runs.Load(), after+1, "loop must stop ticking after Stop")

	require.Equal(t, false, s.GetStatus()["running"])
}

func TestCleanupScheduler_ContextCancelEndsLoop(t *testing.T) {
	var runs atomic.Int32
	s := NewCleanupScheduler(func(ctx context.Context) (int, error) {
		runs.Add(1)
		return 0, nil
	}, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
}

func TestCleanupScheduler_Reset(t *testing.T) {
	var runs atomic.Int32
	s := NewCleanupScheduler(func(ctx context.Context) (int, error) {
		runs.Add(1)
		return 0, nil
	}, time.Hour)

	go s.Start(context.Background())
	defer s.Stop()

	// With the original interval nothing would run in this test's lifetime.
	s.Reset(10 * time.Millisecond)

	require.Eventually(t, func() bool {
		return runs.Load() >= 1
	}, time.Second, 5*time.Millisecond)

	require.Equal(t, (10 * time.Millisecond).String(), s.GetStatus()["interval"])
}

func TestCleanupScheduler_ErrorDoesNotStopLoop(t *testing.T) {
	var runs atomic.Int32
	s := NewCleanupScheduler(func(ctx context.Context) (int, error) {
		runs.Add(1)
		return 0, context.DeadlineExceeded
	}, 10*time.Millisecond)

	go s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return runs.Load() >= 3
	}, time.Second, 5*time.Millisecond)
}

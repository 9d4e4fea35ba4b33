package workerpools

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RunsSubmittedTasks(t *testing.T) {
	t.Parallel()

	pool := New(Options{Name: "test", Workers: 3, QueueCapacity: 10, Policy: Discard}, zerolog.Nop())

	var done atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		require.NoError(t, pool.Submit(func(ctx context.Context) {
			defer wg.Done()
			done.Add(1)
		}))
	}
	wg.Wait()

	require.NoError(t, pool.Shutdown(context.Background()))
	assert.Equal(t, int32(10), done.Load())
}

func TestPool_DiscardWhenFull(t *testing.T) {
	t.Parallel()

	pool := New(Options{Name: "discard", Workers: 1, QueueCapacity: 1, Policy: Discard}, zerolog.Nop())

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Submit(func(ctx context.Context) {
		close(started)
		<-release
	}))
	<-started

	// fills the queue
	require.NoError(t, pool.Submit(func(ctx context.Context) {}))
	// overflows
	err := pool.Submit(func(ctx context.Context) {})
	assert.ErrorIs(t, err, ErrQueueFull)

	close(release)
	require.NoError(t, pool.Shutdown(context.Background()))
}

func TestPool_CallerRunsWhenFull(t *testing.T) {
	t.Parallel()

	pool := New(Options{Name: "caller-runs", Workers: 1, QueueCapacity: 1, Policy: CallerRuns}, zerolog.Nop())

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Submit(func(ctx context.Context) {
		close(started)
		<-release
	}))
	<-started
	require.NoError(t, pool.Submit(func(ctx context.Context) {}))

	ranInline := false
	require.NoError(t, pool.Submit(func(ctx context.Context) { ranInline = true }))
	assert.True(t, ranInline, "overflow task runs on the submitting goroutine")

	close(release)
	require.NoError(t, pool.Shutdown(context.Background()))
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	t.Parallel()

	pool := New(Options{Name: "closed", Workers: 1, QueueCapacity: 1}, zerolog.Nop())
	require.NoError(t, pool.Shutdown(context.Background()))
	require.NoError(t, pool.Shutdown(context.Background()))

	assert.ErrorIs(t, pool.Submit(func(ctx context.Context) {}), ErrPoolClosed)
}

func TestPool_RecoversPanics(t *testing.T) {
	t.Parallel()

	pool := New(Options{Name: "panics", Workers: 1, QueueCapacity: 2}, zerolog.Nop())

	ran := make(chan struct{})
	require.NoError(t, pool.Submit(func(ctx context.Context) { panic("boom") }))
	require.NoError(t, pool.Submit(func(ctx context.Context) { close(ran) }))

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive the panic")
	}
	require.NoError(t, pool.Shutdown(context.Background()))
}

func TestPool_ShutdownTimeoutCancelsTasks(t *testing.T) {
	t.Parallel()

	pool := New(Options{Name: "slow", Workers: 1, QueueCapacity: 1}, zerolog.Nop())

	cancelled := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Submit(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(cancelled)
	}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := pool.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("task context was not cancelled")
	}
}

func TestPool_ShutdownDeadlineWithCallerRunTask(t *testing.T) {
	t.Parallel()

	pool := New(Options{Name: "caller-runs-slow", Workers: 1, QueueCapacity: 1, Policy: CallerRuns}, zerolog.Nop())

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Submit(func(ctx context.Context) {
		close(started)
		<-release
	}))
	<-started
	require.NoError(t, pool.Submit(func(ctx context.Context) {}))

	inlineStarted := make(chan struct{})
	inlineCancelled := make(chan struct{})
	go func() {
		_ = pool.Submit(func(ctx context.Context) {
			close(inlineStarted)
			<-ctx.Done()
			close(inlineCancelled)
		})
	}()
	<-inlineStarted

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	shutdownErr := make(chan error, 1)
	go func() { shutdownErr <- pool.Shutdown(ctx) }()

	select {
	case err := <-shutdownErr:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown ignored its deadline while a caller-run task was in flight")
	}

	select {
	case <-inlineCancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("caller-run task context was not cancelled")
	}
	close(release)
}

package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/honeycarbs/lemonsqueezy-mcp/pkg/logging"
)

type fakeStoppable struct {
	calls    atomic.Int32
	deadline atomic.Bool
	err      error
}

func (f *fakeStoppable) Shutdown(ctx context.Context) error {
	f.calls.Add(1)
	_, ok := ctx.Deadline()
	f.deadline.Store(ok)
	return f.err
}

func TestGraceful_StopsOnSignal(t *testing.T) {
	// keep SIGUSR1 from terminating the test binary before Graceful subscribes
	guard := make(chan os.Signal, 16)
	signal.Notify(guard, syscall.SIGUSR1)
	defer signal.Stop(guard)

	for _, stopErr := range []error{nil, errors.New("busy")} {
		s := &fakeStoppable{err: stopErr}
		done := make(chan struct{})

		go func() {
			defer close(done)
			Graceful(context.Background(), []os.Signal{syscall.SIGUSR1}, s, time.Second, logging.NewNop())
		}()

		assert.Eventually(t, func() bool {
			_ = syscall.Kill(os.Getpid(), syscall.SIGUSR1)
			select {
			case <-done:
				return true
			case <-time.After(20 * time.Millisecond):
				return false
			}
		}, 2*time.Second, 10*time.Millisecond)

		assert.Equal(t, int32(1), s.calls.Load())
		assert.True(t, s.deadline.Load())
	}
}

func TestGraceful_ReturnsOnContextCancel(t *testing.T) {
	s := &fakeStoppable{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		Graceful(ctx, []os.Signal{syscall.SIGUSR2}, s, time.Second, logging.NewNop())
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Graceful did not return after cancel")
	}
	assert.Equal(t, int32(0), s.calls.Load())
}

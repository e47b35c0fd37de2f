package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestScheduler_RunsImmediatelyThenOnTicks(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32

	s := NewScheduler()
	s.AddJob("counter", 10*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})
	s.Start()
	time.Sleep(55 * time.Millisecond)
	s.Stop()

	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestScheduler_FailedRunKeepsTicking(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32

	s := NewScheduler()
	s.AddJob("flaky", 10*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("boom")
	})
	s.Start()
	time.Sleep(55 * time.Millisecond)
	s.Stop()

	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestScheduler_StopCancelsJobContext(t *testing.T) {
	t.Parallel()
	cancelled := make(chan struct{})

	s := NewScheduler()
	s.AddJob("waiter", time.Hour, func(ctx context.Context) error {
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	})
	s.Start()
	s.Stop()

	select {
	case <-cancelled:
	default:
		t.Fatal("job context was not cancelled on Stop")
	}
}

package commands

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func waitDone(t *testing.T, r *RestartableRunner) {
	t.Helper()
	select {
	case <-r.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for runner to finish")
	}
}

func TestRestartableRunner_CleanExit(t *testing.T) {
	var calls int32
	r := NewRestartableRunner(RunnerConfig{Name: "test"}, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Failed to start: %v", err)
	}
	waitDone(t, r)

	if calls != 1 || r.RestartCount() != 0 || r.LastError() != nil {
		t.Errorf("Unexpected state: calls=%d restarts=%d err=%v", calls, r.RestartCount(), r.LastError())
	}
}

func TestRestartableRunner_MaxRestarts(t *testing.T) {
	var calls int32
	boom := errors.New("boom")
	r := NewRestartableRunner(RunnerConfig{
		Name:           "test",
		MaxRestarts:    3,
		RestartBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
	}, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return boom
	})
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Failed to start: %v", err)
	}
	waitDone(t, r)

	if calls != 3 || r.RestartCount() != 3 {
		t.Errorf("Expected 3 runs and 3 restarts, got calls=%d restarts=%d", calls, r.RestartCount())
	}
	if !errors.Is(r.LastError(), boom) {
		t.Errorf("Expected last error to be boom, got %v", r.LastError())
	}
}

func TestRestartableRunner_RecoversPanic(t *testing.T) {
	var calls int32
	r := NewRestartableRunner(RunnerConfig{Name: "test", RestartBackoff: time.Millisecond}, func(ctx context.Context) error {
		if atomic.AddInt32(&calls, 1) == 1 {
			panic("first run")
		}
		return nil
	})
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Failed to start: %v", err)
	}
	waitDone(t, r)

	if calls != 2 || r.RestartCount() != 1 {
		t.Errorf("Expected one restart after panic, got calls=%d restarts=%d", calls, r.RestartCount())
	}
}

func TestRestartableRunner_Stop(t *testing.T) {
	started := make(chan struct{})
	r := NewRestartableRunner(RunnerConfig{Name: "test"}, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return nil
	})
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Failed to start: %v", err)
	}
	<-started

	if err := r.Start(context.Background()); err == nil {
		t.Error("Expected error when starting a running runner")
	}
	if err := r.Stop(time.Second); err != nil {
		t.Fatalf("Failed to stop: %v", err)
	}
	waitDone(t, r)
}

func TestRestartableRunner_StopBeforeStart(t *testing.T) {
	r := NewRestartableRunner(RunnerConfig{Name: "test"}, func(ctx context.Context) error { return nil })
	if err := r.Stop(time.Second); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

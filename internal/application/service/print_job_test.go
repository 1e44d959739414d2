package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPrintJobSettlesOnce(t *testing.T) {
	job := newPrintJob()
	job.settle(true, nil)
	job.settle(false, errors.New("late"))

	printed, err := job.Wait(context.Background())
	if !printed || err != nil {
		t.Fatalf("expected first outcome to win, got %v %v", printed, err)
	}
}

func TestPrintJobWaitHonoursContext(t *testing.T) {
	job := newPrintJob()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := job.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	select {
	case <-job.Done():
		t.Fatalf("job must keep running after the waiter gives up")
	default:
	}
}

func TestPrintErrorMatchesSentinel(t *testing.T) {
	cause := errors.New("paper jam")
	err := error(&PrintError{Stage: "print", Err: cause})

	if !errors.Is(err, ErrPrintFailed) {
		t.Fatalf("expected ErrPrintFailed to match")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be unwrapped")
	}
	if errors.Is(err, ErrInvalidSurface) {
		t.Fatalf("print failure must not look like an invalid surface")
	}
}

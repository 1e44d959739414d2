package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrInvalidSurface means the print surface is missing or not usable.
	// Nothing is rendered when it is returned.
	ErrInvalidSurface = errors.New("print surface is missing or not connected")
	// ErrPrintFailed matches every *PrintError.
	ErrPrintFailed = errors.New("print failed")
)

// PrintError reports a failure while handing a finished document to the
// print surface.
type PrintError struct {
	Stage string // open, write, close, print
	Err   error
}

func (e *PrintError) Error() string {
	return fmt.Sprintf("print failed during %s: %v", e.Stage, e.Err)
}

func (e *PrintError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrPrintFailed) true for any PrintError.
func (e *PrintError) Is(target error) bool {
	return target == ErrPrintFailed
}

// PrintJob is the pending outcome of one render-and-print cycle. It settles
// exactly once: true when the print command was issued, false when there was
// nothing to print, or with an error.
type PrintJob struct {
	ID uuid.UUID

	once    sync.Once
	done    chan struct{}
	printed bool
	err     error
}

func newPrintJob() *PrintJob {
	return &PrintJob{ID: uuid.New(), done: make(chan struct{})}
}

func settledJob(printed bool, err error) *PrintJob {
	j := newPrintJob()
	j.settle(printed, err)
	return j
}

func (j *PrintJob) settle(printed bool, err error) {
	j.once.Do(func() {
		j.printed = printed
		j.err = err
		close(j.done)
	})
}

// Done is closed once the job has settled.
func (j *PrintJob) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job settles or ctx ends. Giving up on ctx does not
// stop the job; it keeps running until the surface reports back.
func (j *PrintJob) Wait(ctx context.Context) (bool, error) {
	select {
	case <-j.done:
		return j.printed, j.err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

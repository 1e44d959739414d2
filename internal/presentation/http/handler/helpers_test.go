package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/kasir-receipt/internal/application/service"
	"github.com/sangkips/kasir-receipt/pkg/apperror"
)

func TestParseDateBound(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)

	tests := []struct {
		name    string
		in      string
		upper   bool
		want    time.Time
		wantNil bool
		wantErr bool
	}{
		{name: "empty", in: "", wantNil: true},
		{name: "day as lower bound", in: "2026-10-15", want: time.Date(2026, 10, 15, 0, 0, 0, 0, jakarta)},
		{name: "day as upper bound", in: "2026-10-15", upper: true, want: time.Date(2026, 10, 15, 23, 59, 59, 999999999, jakarta)},
		{name: "timestamp", in: "2026-10-15T08:00:00Z", want: time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)},
		{name: "garbage", in: "kemarin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDateBound(tt.in, jakarta, tt.upper)
			if tt.wantErr {
				if apperror.GetAppError(err).Code != http.StatusBadRequest {
					t.Fatalf("err = %v, want bad request", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if tt.wantNil {
				if got != nil {
					t.Errorf("got %v, want nil", got)
				}
				return
			}
			if got == nil || !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrintFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid surface", service.ErrInvalidSurface, http.StatusServiceUnavailable},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"print error", &service.PrintError{Stage: "print", Err: errors.New("paper out")}, http.StatusBadGateway},
		{"app error passes through", apperror.NewBadRequestError("bad"), http.StatusBadRequest},
		{"other", fmt.Errorf("render: %w", errors.New("template")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apperror.GetAppError(printFailure(tt.err)).Code; got != tt.want {
				t.Errorf("code = %d, want %d", got, tt.want)
			}
		})
	}
}

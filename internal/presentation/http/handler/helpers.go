package handler

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/kasir-receipt/internal/application/service"
	"github.com/sangkips/kasir-receipt/pkg/apperror"
	"github.com/sangkips/kasir-receipt/pkg/coerce"
)

// GetCashierName extracts the cashier name from the Gin context
func GetCashierName(c *gin.Context) string {
	return c.GetString("cashier_name")
}

// printFailure maps print engine errors onto HTTP errors.
func printFailure(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidSurface):
		return apperror.ErrPrinterUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return apperror.ErrPrintTimeout
	case errors.Is(err, service.ErrPrintFailed):
		return apperror.NewBadGatewayError(err.Error())
	default:
		return err
	}
}

// parseDateBound parses a YYYY-MM-DD day or an RFC 3339 timestamp. A bare
// day used as an upper bound covers the whole day.
func parseDateBound(s string, loc *time.Location, upper bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if day, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		if upper {
			day = day.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		return &day, nil
	}

	t, ok := coerce.Time(s)
	if !ok {
		return nil, apperror.NewBadRequestError("Invalid date: " + s)
	}
	return &t, nil
}

package repository

import (
	"context"
	"time"

	"github.com/sangkips/kasir-receipt/internal/domain/entity"
)

// OrderRepository reads order history for reports. The receipt engine never
// writes orders.
type OrderRepository interface {
	ListPaid(ctx context.Context, params *OrderFilterParams) ([]entity.Order, error)
	ListUnpaidCartLines(ctx context.Context) ([]entity.UnpaidCartLine, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	StartDate *time.Time
	EndDate   *time.Time
}

package repository

import (
	"context"
	"time"

	"github.com/sangkips/kasir-receipt/internal/domain/entity"
	domainRepo "github.com/sangkips/kasir-receipt/internal/domain/repository"
	"gorm.io/gorm"
)

// OrderRecord is the stored form of a paid order.
type OrderRecord struct {
	ID            string    `gorm:"primaryKey;size:64"`
	CreatedAt     time.Time `gorm:"index"`
	CustomerName  string    `gorm:"size:255"`
	PaymentMethod string    `gorm:"size:64"`
	Paid          float64
	Total         float64
	Details       []OrderDetailRecord `gorm:"foreignKey:OrderID"`
}

func (OrderRecord) TableName() string {
	return "orders"
}

// OrderDetailRecord is one stored line of a paid order.
type OrderDetailRecord struct {
	ID         uint   `gorm:"primaryKey"`
	OrderID    string `gorm:"index;size:64"`
	MenuName   string `gorm:"size:255"`
	Category   string `gorm:"size:255"`
	Quantity   float64
	UnitPrice  float64
	TotalPrice float64
	Note       string `gorm:"type:text"`
}

func (OrderDetailRecord) TableName() string {
	return "order_details"
}

// CartLineRecord is a stored cart line that is still waiting for payment.
type CartLineRecord struct {
	ID           uint   `gorm:"primaryKey"`
	CustomerName string `gorm:"size:255"`
	MenuName     string `gorm:"size:255"`
	Price        float64
	Quantity     float64
	Note         string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"index"`
}

func (CartLineRecord) TableName() string {
	return "cart_lines"
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) ListPaid(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, error) {
	if params == nil {
		params = &domainRepo.OrderFilterParams{}
	}

	var records []OrderRecord
	err := r.db.WithContext(ctx).
		Scopes(CreatedBetween("created_at", params.StartDate, params.EndDate)).
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	orders := make([]entity.Order, 0, len(records))
	for i := range records {
		orders = append(orders, toOrder(&records[i]))
	}
	return orders, nil
}

func (r *orderRepository) ListUnpaidCartLines(ctx context.Context) ([]entity.UnpaidCartLine, error) {
	var records []CartLineRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	lines := make([]entity.UnpaidCartLine, 0, len(records))
	for i := range records {
		lines = append(lines, toCartLine(&records[i]))
	}
	return lines, nil
}

func toOrder(rec *OrderRecord) entity.Order {
	order := entity.Order{
		ID:            entity.ID(rec.ID),
		CreatedAt:     entity.NewTimestamp(rec.CreatedAt),
		CustomerName:  rec.CustomerName,
		PaymentMethod: rec.PaymentMethod,
		Paid:          entity.Number(rec.Paid),
		Total:         entity.Number(rec.Total),
		Details:       make([]entity.OrderDetailLine, 0, len(rec.Details)),
	}
	for _, d := range rec.Details {
		order.Details = append(order.Details, entity.OrderDetailLine{
			MenuName:   d.MenuName,
			Category:   d.Category,
			Quantity:   entity.Number(d.Quantity),
			UnitPrice:  entity.Number(d.UnitPrice),
			TotalPrice: entity.Number(d.TotalPrice),
			Note:       d.Note,
		})
	}
	return order
}

func toCartLine(rec *CartLineRecord) entity.UnpaidCartLine {
	line := entity.UnpaidCartLine{
		Timestamp: entity.NewTimestamp(rec.CreatedAt),
		MenuDetail: entity.CartMenuDetail{
			Price: entity.Number(rec.Price),
		},
		Quantity: entity.Number(rec.Quantity),
		Note:     rec.Note,
	}
	if rec.CustomerName != "" {
		line.Customer = &entity.CartCustomer{Customer: rec.CustomerName}
	}
	if rec.MenuName != "" {
		line.MenuDetail.Menu = &entity.CartMenu{Name: rec.MenuName}
	}
	return line
}

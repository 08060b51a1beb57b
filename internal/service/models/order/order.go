package order

import (
	"database/sql/driver"
	"errors"
	"time"

	"github.com/corray333/ecommerce-api/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

var ErrInvalidStatus = errors.New("invalid order status")

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

func ParseStatus(s string) (Status, error) {
	switch s {
	case StatusPending.String():
		return StatusPending, nil
	case StatusCompleted.String():
		return StatusCompleted, nil
	case StatusCanceled.String():
		return StatusCanceled, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Order represents an order in the system.
type Order struct {
	ID         int64                 `json:"id"`
	UserID     int64                 `json:"userId"`
	Status     Status                `json:"status"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
	OrderItems []orderitem.OrderItem `json:"orderItems"`
}

// TotalPrice is derived from the item price snapshots, never stored.
func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.OrderItems {
		total = total.Add(item.TotalPrice())
	}

	return total
}

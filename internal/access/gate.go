// Package access answers one question: has this customer completed an
// order containing this exact item. It is evaluated fresh on every
// download request; ownership can change between requests as new
// orders complete, so nothing here is cached.
package access

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"picstore/internal/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=OrderLister
type OrderLister interface {
	GetOrdersByEmail(ctx context.Context, email string) ([]models.Order, error)
}

type Gate struct {
	orders OrderLister
}

func NewGate(orders OrderLister) *Gate {
	return &Gate{orders: orders}
}

// HasAccess reports whether the customer owns the item: at least one
// completed order must carry a line item matching both type and id.
// Pending and failed orders grant nothing.
func (g *Gate) HasAccess(ctx context.Context, email, itemType string, itemID uuid.UUID) (bool, error) {
	const op = "access.HasAccess"

	orders, err := g.orders.GetOrdersByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	for _, order := range orders {
		if order.Status != models.OrderStatusCompleted {
			continue
		}

		for _, item := range order.Items {
			if item.Type == itemType && item.ItemID == itemID {
				return true, nil
			}
		}
	}

	return false, nil
}

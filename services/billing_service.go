package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Soukthavilay/qr-order/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderLister lists orders by status; an empty status lists all.
type OrderLister interface {
	ListOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, *ServiceError)
}

// BillingService looks up the open bill of a table for the point of sale.
type BillingService interface {
	FindActiveBill(ctx context.Context, table string) (*models.Bill, *ServiceError)
}

type billingServiceImpl struct {
	orders OrderLister
	logger *zap.Logger
}

func NewBillingService(orders OrderLister, logger *zap.Logger) BillingService {
	return &billingServiceImpl{orders: orders, logger: logger}
}

// FindActiveBill returns the newest order of table that has not been served.
// Table numbers compare case-insensitively.
func (s *billingServiceImpl) FindActiveBill(ctx context.Context, table string) (*models.Bill, *ServiceError) {
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, badRequest("Please enter a table number.")
	}

	orders, svcErr := s.orders.ListOrders(ctx, "")
	if svcErr != nil {
		return nil, svcErr
	}
	for i := len(orders) - 1; i >= 0; i-- {
		o := orders[i]
		if o.IsActive() && strings.EqualFold(strings.TrimSpace(o.TableNumber), table) {
			bill := newBill(o)
			return &bill, nil
		}
	}
	return nil, notFound(fmt.Sprintf("No active bill found for Table %s.", table))
}

func newBill(o models.Order) models.Bill {
	bill := models.Bill{
		OrderID:     o.ID,
		TableNumber: o.TableNumber,
		Status:      o.Status,
		Lines:       make([]models.BillLine, 0, len(o.Items)),
		Total:       o.Total,
	}
	subtotal := decimal.Zero
	for _, it := range o.Items {
		qty := decimal.NewFromInt(int64(it.Quantity))
		subtotal = subtotal.Add(decimal.NewFromFloat(it.ListPrice).Mul(qty))
		bill.Lines = append(bill.Lines, models.BillLine{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: decimal.NewFromFloat(it.UnitPrice).Mul(qty).Round(2).InexactFloat64(),
		})
	}
	bill.Subtotal = subtotal.Round(2).InexactFloat64()
	bill.Discount = subtotal.Sub(decimal.NewFromFloat(o.Total)).Round(2).InexactFloat64()
	return bill
}

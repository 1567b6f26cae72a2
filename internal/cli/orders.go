package cli

import (
	"context"

	"github.com/apotekhub/storefront/internal/models"
)

// Orders lists the buyer's own order history.
func (a *App) Orders(ctx context.Context, _ []string) error {
	if !a.allow(ctx, models.RoleBuyer) {
		return nil
	}

	details, err := a.api.BuyerTransactions(ctx)
	if err != nil {
		a.showError(ctx, err)
		return nil
	}
	if len(details) == 0 {
		a.printf("No orders yet.")
		return nil
	}
	for _, d := range details {
		a.printOrderLine(d)
	}
	return nil
}

func (a *App) printOrderLine(d models.TransactionDetail) {
	name := "?"
	if d.Product != nil {
		name = d.Product.Name
	}
	status := "awaiting approval"
	var orderID int64
	if d.Transaction != nil {
		orderID = d.Transaction.ID
		if d.Transaction.IsPaid {
			status = "paid"
		}
	}
	a.printf("  order #%d: %s × %d — Rp. %d [%s]", orderID, name, d.Quantity, int64(d.Quantity)*d.Price, status)
}

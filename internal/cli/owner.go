package cli

import (
	"context"

	"github.com/apotekhub/storefront/internal/models"
)

// Dashboard shows the owner's sales counters.
func (a *App) Dashboard(ctx context.Context, _ []string) error {
	if !a.allow(ctx, models.RoleOwner) {
		return nil
	}

	stats, err := a.api.Dashboard(ctx)
	if err != nil {
		a.showError(ctx, err)
		return nil
	}

	a.printf("Total sales:   Rp. %d", stats.TotalSales)
	a.printf("Products:      %d", stats.Products)
	a.printf("Categories:    %d", stats.Categories)
	a.printf("Transactions:  %d", stats.Transactions)
	a.printf("Buyers:        %d", stats.Buyers)
	return nil
}

// Sales lists one page of all order lines across buyers.
func (a *App) Sales(ctx context.Context, args []string) error {
	if !a.allow(ctx, models.RoleOwner) {
		return nil
	}

	page, err := a.api.OwnerTransactions(ctx, a.argPage(args))
	if err != nil {
		a.showError(ctx, err)
		return nil
	}
	if len(page.Data) == 0 {
		a.printf("No transactions on this page.")
		return nil
	}
	for _, d := range page.Data {
		a.printOrderLine(d)
	}
	a.printf("Page %d of %d", page.CurrentPage, page.LastPage)
	return nil
}

// Approve marks an order's proof of payment as accepted.
func (a *App) Approve(ctx context.Context, args []string) error {
	if !a.allow(ctx, models.RoleOwner) {
		return nil
	}
	id, ok := a.argID(args, "approve <id>")
	if !ok {
		return nil
	}

	if err := a.api.ApproveTransaction(ctx, id); err != nil {
		a.showError(ctx, err)
		return nil
	}
	a.printf("Transaction %d approved.", id)
	return nil
}

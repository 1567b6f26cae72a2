package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/apotekhub/storefront/internal/models"
)

// Home shows the storefront landing view: categories plus the first page
// of products. Both endpoints are public.
func (a *App) Home(ctx context.Context, _ []string) error {
	categories, err := a.api.GuestCategories(ctx)
	if err != nil {
		a.showError(ctx, err)
		return nil
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	a.printf("Categories: %s", strings.Join(names, ", "))

	return a.Products(ctx, nil)
}

// Products lists one page of the public product catalog.
func (a *App) Products(ctx context.Context, args []string) error {
	page, err := a.api.GuestProducts(ctx, a.argPage(args))
	if err != nil {
		a.showError(ctx, err)
		return nil
	}

	if len(page.Data) == 0 {
		a.printf("No products on this page.")
		return nil
	}
	for _, p := range page.Data {
		a.printProduct(p)
	}
	a.printf("Page %d of %d", page.CurrentPage, page.LastPage)
	return nil
}

// Search queries the public product search endpoint.
func (a *App) Search(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")
	if query == "" {
		a.printf("Usage: search <text>")
		return nil
	}

	products, err := a.api.SearchProducts(ctx, query)
	if err != nil {
		a.showError(ctx, err)
		return nil
	}
	if len(products) == 0 {
		a.printf("Nothing matching %q.", query)
		return nil
	}
	for _, p := range products {
		a.printProduct(p)
	}
	return nil
}

func (a *App) printProduct(p models.Product) {
	a.printf("  #%d %s — Rp. %d (stock %d)", p.ID, p.Name, p.Price, p.Stock)
}

// AddToCart sends an add request for a product. It does not touch any cart
// mirror; on success the user is taken to the cart view, whose mount does
// the authoritative fetch.
func (a *App) AddToCart(ctx context.Context, args []string) error {
	if !a.allow(ctx, models.RoleBuyer) {
		return nil
	}

	productID, ok := a.argID(args, "add <product> [qty]")
	if !ok {
		return nil
	}
	quantity := 1
	if len(args) > 1 {
		if q, err := strconv.Atoi(args[1]); err == nil && q > 0 {
			quantity = q
		}
	}

	if err := a.api.AddToCart(ctx, productID, quantity); err != nil {
		a.showError(ctx, err)
		return nil
	}

	a.printf("Added to your cart.")
	return a.ShowCart(ctx, nil)
}

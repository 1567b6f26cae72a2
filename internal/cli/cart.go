package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/apotekhub/storefront/internal/cart"
	"github.com/apotekhub/storefront/internal/models"
)

// ShowCart mounts a fresh cart view: a new reconciler fetches the
// authoritative line set and renders it. Remounting replaces the previous
// mirror wholesale.
func (a *App) ShowCart(ctx context.Context, _ []string) error {
	if !a.allow(ctx, models.RoleBuyer) {
		return nil
	}

	a.cart = cart.New(a.api, a.log)
	if err := a.cart.Load(ctx); err != nil {
		a.printf("Could not refresh your cart; showing what we have.")
	}
	a.renderCart()
	return nil
}

// ensureCart returns the mounted reconciler, mounting one first if the
// user jumped straight to a mutation command.
func (a *App) ensureCart(ctx context.Context) *cart.Reconciler {
	if a.cart == nil {
		a.cart = cart.New(a.api, a.log)
		_ = a.cart.Load(ctx)
	}
	return a.cart
}

func (a *App) renderCart() {
	lines := a.cart.Lines()
	if len(lines) == 0 {
		a.printf("Your cart is empty.")
		return
	}
	for _, l := range lines {
		name := "?"
		if l.Product != nil {
			name = l.Product.Name
		}
		a.printf("  #%d %s × %d — Rp. %d", l.ProductID, name, l.Quantity, l.Subtotal())
	}
	a.printf("Total: Rp. %d", a.cart.Total())
}

// Increase bumps a line quantity. The mirror updates immediately; the
// backend is reconciled in the background of the user's attention.
func (a *App) Increase(ctx context.Context, args []string) error {
	if !a.allow(ctx, models.RoleBuyer) {
		return nil
	}
	productID, ok := a.argID(args, "inc <product>")
	if !ok {
		return nil
	}

	if !a.ensureCart(ctx).IncreaseQuantity(ctx, productID) {
		a.printf("No such product in your cart.")
		return nil
	}
	a.renderCart()
	return nil
}

func (a *App) Decrease(ctx context.Context, args []string) error {
	if !a.allow(ctx, models.RoleBuyer) {
		return nil
	}
	productID, ok := a.argID(args, "dec <product>")
	if !ok {
		return nil
	}

	r := a.ensureCart(ctx)
	if !r.DecreaseQuantity(ctx, productID) {
		if !r.Has(productID) {
			a.printf("No such product in your cart.")
			return nil
		}
		a.printf("Quantity stays at 1; use 'rm %d' to remove the item.", productID)
	}
	a.renderCart()
	return nil
}

// Remove confirms the removal with the backend before dropping the line
// locally, so a failed removal leaves the cart as it was.
func (a *App) Remove(ctx context.Context, args []string) error {
	if !a.allow(ctx, models.RoleBuyer) {
		return nil
	}
	productID, ok := a.argID(args, "rm <product>")
	if !ok {
		return nil
	}

	if err := a.ensureCart(ctx).Remove(ctx, productID); err != nil {
		a.showError(ctx, err)
		return nil
	}
	a.printf("Item removed.")
	a.renderCart()
	return nil
}

// Checkout gathers the shipping form and the proof-of-payment file, then
// submits the order. Success empties the cart and returns the user home.
func (a *App) Checkout(ctx context.Context, _ []string) error {
	if !a.allow(ctx, models.RoleBuyer) {
		return nil
	}
	r := a.ensureCart(ctx)
	if len(r.Lines()) == 0 {
		a.printf("Your cart is empty.")
		return nil
	}

	form, err := a.promptCheckoutForm()
	if err != nil {
		return err
	}

	a.printf("Placing order...")
	if err := r.Checkout(ctx, form); err != nil {
		a.showError(ctx, err)
		return nil
	}

	a.cart = nil
	a.printf("Order placed successfully. Back to the home screen.")
	return a.Home(ctx, nil)
}

func (a *App) promptCheckoutForm() (cart.CheckoutForm, error) {
	var form cart.CheckoutForm
	var err error

	if form.Address, err = GetSimpleText(a.reader, "Street address", a.out); err != nil {
		return form, err
	}
	if form.PostCode, err = GetSimpleText(a.reader, "Post code", a.out); err != nil {
		return form, err
	}
	if form.PhoneNumber, err = GetSimpleText(a.reader, "Phone number", a.out); err != nil {
		return form, err
	}
	if form.City, err = GetSimpleText(a.reader, "City", a.out); err != nil {
		return form, err
	}
	if form.Notes, err = GetSimpleText(a.reader, "Notes (optional)", a.out); err != nil {
		return form, err
	}

	path, err := GetSimpleText(a.reader, "Proof of payment (file path)", a.out)
	if err != nil {
		return form, err
	}
	if path != "" {
		proof, err := os.ReadFile(path)
		if err != nil {
			a.printf("Could not read %s; submitting without it.", path)
		} else {
			form.Proof = proof
			form.ProofName = filepath.Base(path)
		}
	}
	return form, nil
}

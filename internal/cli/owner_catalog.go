package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/apotekhub/storefront/internal/api"
	"github.com/apotekhub/storefront/internal/models"
)

// Categories lists one page of categories for the owner.
func (a *App) Categories(ctx context.Context, args []string) error {
	if !a.allow(ctx, models.RoleOwner) {
		return nil
	}

	page, err := a.api.Categories(ctx, a.argPage(args))
	if err != nil {
		a.showError(ctx, err)
		return nil
	}
	for _, c := range page.Data {
		a.printf("  #%d %s", c.ID, c.Name)
	}
	a.printf("Page %d of %d", page.CurrentPage, page.LastPage)
	return nil
}

func (a *App) AddCategory(ctx context.Context, _ []string) error {
	if !a.allow(ctx, models.RoleOwner) {
		return nil
	}

	name, err := GetSimpleText(a.reader, "Category name", a.out)
	if err != nil {
		return err
	}
	if err := a.api.CreateCategory(ctx, name); err != nil {
		a.showError(ctx, err)
		return nil
	}
	a.printf("Category created.")
	return nil
}

func (a *App) EditCategory(ctx context.Context, args []string) error {
	if !a.allow(ctx, models.RoleOwner) {
		return nil
	}
	id, ok := a.argID(args, "editcat <id>")
	if !ok {
		return nil
	}

	name, err := GetSimpleText(a.reader, "New name", a.out)
	if err != nil {
		return err
	}
	if err := a.api.UpdateCategory(ctx, id, name); err != nil {
		a.showError(ctx, err)
		return nil
	}
	a.printf("Category updated.")
	return nil
}

func (a *App) DeleteCategory(ctx context.Context, args []string) error {
	if !a.allow(ctx, models.RoleOwner) {
		return nil
	}
	id, ok := a.argID(args, "delcat <id>")
	if !ok {
		return nil
	}

	if err := a.api.DeleteCategory(ctx, id); err != nil {
		a.showError(ctx, err)
		return nil
	}
	a.printf("Category deleted.")
	return nil
}

// Catalog lists one page of the owner's product administration view.
func (a *App) Catalog(ctx context.Context, args []string) error {
	if !a.allow(ctx, models.RoleOwner) {
		return nil
	}

	page, err := a.api.Products(ctx, a.argPage(args))
	if err != nil {
		a.showError(ctx, err)
		return nil
	}
	for _, p := range page.Data {
		a.printProduct(p)
	}
	a.printf("Page %d of %d", page.CurrentPage, page.LastPage)
	return nil
}

func (a *App) AddProduct(ctx context.Context, _ []string) error {
	if !a.allow(ctx, models.RoleOwner) {
		return nil
	}

	in, err := a.promptProductForm()
	if err != nil {
		return err
	}
	if err := a.api.CreateProduct(ctx, in); err != nil {
		a.showError(ctx, err)
		return nil
	}
	a.printf("Product created.")
	return nil
}

func (a *App) EditProduct(ctx context.Context, args []string) error {
	if !a.allow(ctx, models.RoleOwner) {
		return nil
	}
	id, ok := a.argID(args, "editproduct <id>")
	if !ok {
		return nil
	}

	in, err := a.promptProductForm()
	if err != nil {
		return err
	}
	if err := a.api.UpdateProduct(ctx, id, in); err != nil {
		a.showError(ctx, err)
		return nil
	}
	a.printf("Product updated.")
	return nil
}

func (a *App) DeleteProduct(ctx context.Context, args []string) error {
	if !a.allow(ctx, models.RoleOwner) {
		return nil
	}
	id, ok := a.argID(args, "delproduct <id>")
	if !ok {
		return nil
	}

	if err := a.api.DeleteProduct(ctx, id); err != nil {
		a.showError(ctx, err)
		return nil
	}
	a.printf("Product deleted.")
	return nil
}

func (a *App) promptProductForm() (api.ProductInput, error) {
	var in api.ProductInput
	var err error

	if in.Name, err = GetSimpleText(a.reader, "Product name", a.out); err != nil {
		return in, err
	}
	if in.Description, err = GetSimpleText(a.reader, "Description", a.out); err != nil {
		return in, err
	}
	if in.Price, err = GetInt64(a.reader, "Price (Rp.)", a.out); err != nil {
		return in, err
	}
	stock, err := GetInt64(a.reader, "Stock", a.out)
	if err != nil {
		return in, err
	}
	in.Stock = int(stock)
	if in.CategoryID, err = GetInt64(a.reader, "Category id", a.out); err != nil {
		return in, err
	}

	path, err := GetSimpleText(a.reader, "Image (file path, empty to skip)", a.out)
	if err != nil {
		return in, err
	}
	if path != "" {
		img, err := os.ReadFile(path)
		if err != nil {
			a.printf("Could not read %s; submitting without an image.", path)
		} else {
			in.Image = bytes.NewReader(img)
			in.ImageName = filepath.Base(path)
		}
	}
	return in, nil
}

// Package api is the client for the pharmacy backend REST API. The backend
// owns all authoritative state (pricing, stock, carts, orders); this package
// only moves data and maps failures onto a small error taxonomy.
package api

import (
	"context"
	"io"

	"github.com/apotekhub/storefront/internal/models"
)

// RegisterInput is the self-registration payload. The backend enforces the
// password confirmation; the view checks it first for a friendlier error.
type RegisterInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// CheckoutInput finalizes an order. Proof is the proof-of-payment
// attachment, sent as a multipart file part named "proof".
type CheckoutInput struct {
	Address     string
	PostCode    string
	PhoneNumber string
	City        string
	Notes       string
	ProofName   string
	Proof       io.Reader
}

// ProductInput creates or updates a catalog product. Image may be nil when
// updating without replacing the stored image.
type ProductInput struct {
	CategoryID  int64
	Name        string
	Description string
	Price       int64
	Stock       int
	ImageName   string
	Image       io.Reader
}

// Client is the full backend surface the views consume. Implementations
// attach the bearer credential to every authenticated call.
type Client interface {
	// Auth.
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Register(ctx context.Context, in RegisterInput) error
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)

	// Public storefront.
	GuestCategories(ctx context.Context) ([]models.Category, error)
	GuestProducts(ctx context.Context, page int) (*models.Page[models.Product], error)
	SearchProducts(ctx context.Context, query string) ([]models.Product, error)

	// Buyer cart and orders.
	Cart(ctx context.Context) ([]models.CartLine, error)
	AddToCart(ctx context.Context, productID int64, quantity int) error
	UpdateCartQuantity(ctx context.Context, productID int64, delta int) error
	RemoveFromCart(ctx context.Context, productID int64) error
	Checkout(ctx context.Context, in CheckoutInput) error
	BuyerTransactions(ctx context.Context) ([]models.TransactionDetail, error)

	// Owner administration.
	Categories(ctx context.Context, page int) (*models.Page[models.Category], error)
	CreateCategory(ctx context.Context, name string) error
	UpdateCategory(ctx context.Context, id int64, name string) error
	DeleteCategory(ctx context.Context, id int64) error
	Products(ctx context.Context, page int) (*models.Page[models.Product], error)
	CreateProduct(ctx context.Context, in ProductInput) error
	UpdateProduct(ctx context.Context, id int64, in ProductInput) error
	DeleteProduct(ctx context.Context, id int64) error
	OwnerTransactions(ctx context.Context, page int) (*models.Page[models.TransactionDetail], error)
	ApproveTransaction(ctx context.Context, id int64) error
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}

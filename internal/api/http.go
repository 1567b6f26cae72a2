package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apotekhub/storefront/internal/logging"
	"github.com/apotekhub/storefront/internal/models"
)

const defaultTimeout = 15 * time.Second

// TokenSource supplies the current bearer credential. It returns "" when
// the session is anonymous; authenticated endpoints are then called without
// an Authorization header and the backend answers 401.
type TokenSource func() string

// HTTPClient implements Client over the backend's JSON REST API.
type HTTPClient struct {
	baseURL        string
	hc             *http.Client
	token          TokenSource
	onAuthRejected func()
	timeout        time.Duration
	log            logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient swaps the underlying http.Client (tests, custom transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.hc = hc }
}

// WithAuthRejectedHook installs a callback invoked once per 401 response,
// before the error is returned to the caller. The session store uses it to
// clear the rejected credential.
func WithAuthRejectedHook(fn func()) Option {
	return func(c *HTTPClient) { c.onAuthRejected = fn }
}

// WithTimeout bounds each individual request.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(log logging.Logger) Option {
	return func(c *HTTPClient) { c.log = log }
}

func NewHTTPClient(baseURL string, token TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
		token:   token,
		timeout: defaultTimeout,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do executes one request and decodes the JSON response into out (when
// non-nil). Failures are mapped onto the package error taxonomy exactly
// once, here.
func (c *HTTPClient) do(ctx context.Context, method, path string, auth bool, body io.Reader, contentType string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth {
		if t := c.token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		err := c.mapStatus(resp, auth)
		c.log.Debug(ctx, "api call failed", "method", method, "path", path, "status", resp.StatusCode, "error", err)
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mapStatus translates a non-2xx response into the error taxonomy. 401 is
// the single authorization-rejected signal; it fires the auth-rejected hook
// only when the request carried the credential, so a rejected login attempt
// (an unauthenticated call) never tears down an existing session.
func (c *HTTPClient) mapStatus(resp *http.Response, auth bool) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if auth && c.onAuthRejected != nil {
			c.onAuthRejected()
		}
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnprocessableEntity:
		var ve ValidationError
		if err := json.NewDecoder(resp.Body).Decode(&ve); err != nil || len(ve.Errors) == 0 {
			return fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)
		}
		return &ve
	default:
		return fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)
	}
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, auth bool, out any) error {
	return c.do(ctx, http.MethodGet, path, auth, nil, "", out)
}

func (c *HTTPClient) sendJSON(ctx context.Context, method, path string, auth bool, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, auth, body, "application/json", out)
}

// --- auth ---

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	in := map[string]string{"email": email, "password": password}
	var out struct {
		Status       string       `json:"status"`
		Error        string       `json:"error"`
		CurrentToken string       `json:"currentToken"`
		User         *models.User `json:"user"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, "/login", false, in, &out); err != nil {
		return "", nil, err
	}
	// Some login failures come back as 200 with an error field.
	if out.Error != "" {
		return "", nil, fmt.Errorf("%w: %s", ErrUnauthorized, out.Error)
	}
	if out.CurrentToken == "" || out.User == nil {
		return "", nil, fmt.Errorf("%w: login response missing token or user", ErrServer)
	}
	return out.CurrentToken, out.User, nil
}

func (c *HTTPClient) Register(ctx context.Context, in RegisterInput) error {
	return c.sendJSON(ctx, http.MethodPost, "/register", false, in, nil)
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.sendJSON(ctx, http.MethodPost, "/logout", true, nil, nil)
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	if err := c.getJSON(ctx, "/user", true, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, fmt.Errorf("%w: user response missing user", ErrServer)
	}
	return out.User, nil
}

// --- public storefront ---

func (c *HTTPClient) GuestCategories(ctx context.Context) ([]models.Category, error) {
	var out struct {
		Data []models.Category `json:"data"`
	}
	if err := c.getJSON(ctx, "/guest/categories", false, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *HTTPClient) GuestProducts(ctx context.Context, page int) (*models.Page[models.Product], error) {
	var out struct {
		Data models.Page[models.Product] `json:"data"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/guest/product?page=%d", page), false, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *HTTPClient) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	var out struct {
		Data []models.Product `json:"data"`
	}
	path := "/product/search?query=" + url.QueryEscape(query)
	if err := c.getJSON(ctx, path, false, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// --- buyer cart and orders ---

func (c *HTTPClient) Cart(ctx context.Context) ([]models.CartLine, error) {
	var out struct {
		Data []models.CartLine `json:"data"`
	}
	if err := c.getJSON(ctx, "/cart", true, &out); err != nil {
		return nil, err
	}
	lines := out.Data
	for i := range lines {
		// The backend sends the price inside the product snapshot.
		if lines[i].UnitPrice == 0 && lines[i].Product != nil {
			lines[i].UnitPrice = lines[i].Product.Price
		}
	}
	return lines, nil
}

func (c *HTTPClient) AddToCart(ctx context.Context, productID int64, quantity int) error {
	in := map[string]any{"product_id": productID, "quantity": quantity}
	return c.sendJSON(ctx, http.MethodPost, "/cart/add", true, in, nil)
}

func (c *HTTPClient) UpdateCartQuantity(ctx context.Context, productID int64, delta int) error {
	in := map[string]any{"product_id": productID, "quantity": delta}
	return c.sendJSON(ctx, http.MethodPost, "/cart/update", true, in, nil)
}

func (c *HTTPClient) RemoveFromCart(ctx context.Context, productID int64) error {
	in := map[string]any{"product_id": productID}
	return c.sendJSON(ctx, http.MethodPost, "/cart/remove", true, in, nil)
}

func (c *HTTPClient) Checkout(ctx context.Context, in CheckoutInput) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"address", in.Address},
		{"post_code", in.PostCode},
		{"phone_number", in.PhoneNumber},
		{"city", in.City},
		{"notes", in.Notes},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return fmt.Errorf("encode checkout form: %w", err)
		}
	}
	if in.Proof != nil {
		part, err := w.CreateFormFile("proof", in.ProofName)
		if err != nil {
			return fmt.Errorf("encode proof attachment: %w", err)
		}
		if _, err := io.Copy(part, in.Proof); err != nil {
			return fmt.Errorf("read proof attachment: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("encode checkout form: %w", err)
	}

	return c.do(ctx, http.MethodPost, "/cart/checkout", true, &buf, w.FormDataContentType(), nil)
}

func (c *HTTPClient) BuyerTransactions(ctx context.Context) ([]models.TransactionDetail, error) {
	var out struct {
		Data []models.TransactionDetail `json:"data"`
	}
	if err := c.getJSON(ctx, "/buyer/products-transactions", true, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// --- owner administration ---

func (c *HTTPClient) Categories(ctx context.Context, page int) (*models.Page[models.Category], error) {
	var out struct {
		Data models.Page[models.Category] `json:"data"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/categories?page=%d", page), true, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *HTTPClient) CreateCategory(ctx context.Context, name string) error {
	in := map[string]string{"name": name}
	return c.sendJSON(ctx, http.MethodPost, "/categories", true, in, nil)
}

func (c *HTTPClient) UpdateCategory(ctx context.Context, id int64, name string) error {
	in := map[string]string{"name": name}
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), true, in, nil)
}

func (c *HTTPClient) DeleteCategory(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), true, nil, nil)
}

func (c *HTTPClient) Products(ctx context.Context, page int) (*models.Page[models.Product], error) {
	var out struct {
		Data models.Page[models.Product] `json:"data"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/products?page=%d", page), true, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, in ProductInput) error {
	return c.sendProductForm(ctx, http.MethodPost, "/products", in)
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, id int64, in ProductInput) error {
	return c.sendProductForm(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), in)
}

// sendProductForm posts the product fields as a multipart form because
// creation and update may carry an image attachment.
func (c *HTTPClient) sendProductForm(ctx context.Context, method, path string, in ProductInput) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"name", in.Name},
		{"description", in.Description},
		{"price", fmt.Sprintf("%d", in.Price)},
		{"stock", fmt.Sprintf("%d", in.Stock)},
		{"category_id", fmt.Sprintf("%d", in.CategoryID)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return fmt.Errorf("encode product form: %w", err)
		}
	}
	if in.Image != nil {
		part, err := w.CreateFormFile("image", in.ImageName)
		if err != nil {
			return fmt.Errorf("encode product image: %w", err)
		}
		if _, err := io.Copy(part, in.Image); err != nil {
			return fmt.Errorf("read product image: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("encode product form: %w", err)
	}

	return c.do(ctx, method, path, true, &buf, w.FormDataContentType(), nil)
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), true, nil, nil)
}

func (c *HTTPClient) OwnerTransactions(ctx context.Context, page int) (*models.Page[models.TransactionDetail], error) {
	var out struct {
		Data models.Page[models.TransactionDetail] `json:"data"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/owner/products-transactions?page=%d", page), true, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *HTTPClient) ApproveTransaction(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/transaction/%d/approve", id), true, nil, nil)
}

func (c *HTTPClient) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var out struct {
		Data models.DashboardStats `json:"data"`
	}
	if err := c.getJSON(ctx, "/dashboard", true, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

var _ Client = (*HTTPClient)(nil)

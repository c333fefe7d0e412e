// Package api is the typed gateway to the commerce backend. One method per
// backend action; every call attaches the current bearer token, serializes
// bodies as JSON and normalizes non-2xx responses into *APIError carrying
// the server's `detail` message.
//
// The gateway has exactly one cross-cutting behavior: a 401 on an
// authenticated request fires event.SessionExpired, which the session
// manager observes to clear itself. Unauthenticated 401s (a wrong password
// on login) stay local to the caller so a failed login attempt never tears
// down an existing session.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/shashiranjanraj/bodega/app/models"
	"github.com/shashiranjanraj/bodega/pkg/event"
	"github.com/shashiranjanraj/bodega/pkg/httpclient"
	"github.com/shashiranjanraj/bodega/pkg/logger"
	"github.com/shashiranjanraj/bodega/pkg/metrics"
)

// TokenSource supplies the current bearer token; empty means anonymous.
// The session manager implements this.
type TokenSource interface {
	Token() string
}

// anonymous is the TokenSource used when no session manager is wired.
type anonymous struct{}

func (anonymous) Token() string { return "" }

// Gateway issues authenticated requests against <base>/api.
type Gateway struct {
	base    string
	tokens  TokenSource
	timeout time.Duration
}

// New builds a Gateway for the given backend base URL. tokens may be nil for
// a purely anonymous client.
func New(base string, tokens TokenSource, timeout time.Duration) *Gateway {
	if tokens == nil {
		tokens = anonymous{}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Gateway{base: base, tokens: tokens, timeout: timeout}
}

// SetTokenSource wires the session manager in after construction; the
// composition root needs this because session and gateway reference each
// other.
func (g *Gateway) SetTokenSource(tokens TokenSource) {
	if tokens != nil {
		g.tokens = tokens
	}
}

// BaseURL returns the configured backend root.
func (g *Gateway) BaseURL() string { return g.base }

// ─── Core request path ────────────────────────────────────────────────────────

// do performs one authenticated backend call. dest may be nil for calls
// whose body is discarded. op names the operation for metrics.
func (g *Gateway) do(ctx context.Context, op, method, path string, query url.Values, body, dest interface{}) error {
	return g.send(ctx, op, method, path, query, body, dest, g.tokens.Token())
}

// doAnon performs a call without the session bearer. The credential
// endpoints use it: a signed-in user retrying login with a wrong password
// must get a plain 401, not a torn-down session, so the stale token never
// rides along where it could trip the expiry hook.
func (g *Gateway) doAnon(ctx context.Context, op, method, path string, query url.Values, body, dest interface{}) error {
	return g.send(ctx, op, method, path, query, body, dest, "")
}

func (g *Gateway) send(ctx context.Context, op, method, path string, query url.Values, body, dest interface{}, bearer string) error {
	full := g.base + "/api" + path
	if len(query) > 0 {
		full += "?" + query.Encode()
	}

	req := newRequest(method, full).
		WithContext(ctx).
		Timeout(g.timeout).
		Bearer(bearer)
	if body != nil {
		req.Body(body)
	}

	start := time.Now()
	resp, err := req.Send()
	if err != nil {
		metrics.ObserveCall(op, 0, time.Since(start))
		logger.Debug("api: transport failure", "operation", op, "error", err)
		return err
	}
	metrics.ObserveCall(op, resp.StatusCode, time.Since(start))

	if !resp.OK() {
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: extractDetail(resp.Raw)}
		if resp.StatusCode == http.StatusUnauthorized && bearer != "" {
			metrics.SessionExpirations.Inc()
			event.Fire(event.SessionExpired, apiErr)
		}
		logger.Debug("api: error response",
			"operation", op, "status", resp.StatusCode, "detail", apiErr.Detail)
		return apiErr
	}

	if dest == nil {
		return nil
	}
	return resp.JSON(dest)
}

func newRequest(method, url string) *httpclient.Request {
	switch method {
	case http.MethodPost:
		return httpclient.Post(url)
	case http.MethodPut:
		return httpclient.Put(url)
	case http.MethodDelete:
		return httpclient.Delete(url)
	default:
		return httpclient.Get(url)
	}
}

// extractDetail pulls the `detail` field out of an error body, if present.
func extractDetail(raw []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Detail
}

// ─── Auth ─────────────────────────────────────────────────────────────────────

// Login exchanges credentials for a token. The gateway does not persist
// anything; the session manager owns that.
func (g *Gateway) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	payload := map[string]string{"email": email, "password": password}
	var out models.AuthResponse
	if err := g.doAnon(ctx, "auth.login", http.MethodPost, "/auth/login", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterInput is the signup payload.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
}

// Register creates an account and returns the freshly issued session pair.
func (g *Gateway) Register(ctx context.Context, in RegisterInput) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := g.doAnon(ctx, "auth.register", http.MethodPost, "/auth/register", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me verifies a token by fetching the account it belongs to. Used by session
// hydration and by the Google callback before a token is committed.
func (g *Gateway) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := g.do(ctx, "auth.me", http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyToken checks an explicit token (not the session's) against /auth/me.
func (g *Gateway) VerifyToken(ctx context.Context, tok string) (*models.User, error) {
	full := g.base + "/api/auth/me"

	start := time.Now()
	resp, err := httpclient.Get(full).WithContext(ctx).Timeout(g.timeout).Bearer(tok).Send()
	if err != nil {
		metrics.ObserveCall("auth.verify", 0, time.Since(start))
		return nil, err
	}
	metrics.ObserveCall("auth.verify", resp.StatusCode, time.Since(start))

	if !resp.OK() {
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: extractDetail(resp.Raw)}
	}
	var out models.User
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile PUTs partial user fields. The server is authoritative for
// merge semantics; callers replace their user record with the response.
func (g *Gateway) UpdateProfile(ctx context.Context, fields map[string]interface{}) (*models.User, error) {
	var out models.User
	if err := g.do(ctx, "auth.profile", http.MethodPut, "/auth/profile", nil, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GoogleLoginURL is the browser entry point of the OAuth flow.
func (g *Gateway) GoogleLoginURL() string {
	return g.base + "/api/auth/google/login"
}

// ─── Catalog ──────────────────────────────────────────────────────────────────

// ProductFilters narrows GetProducts. Zero values are omitted.
type ProductFilters struct {
	CategoryID string
	StoreID    string
	Search     string
}

// GetProducts lists catalog products, optionally filtered.
func (g *Gateway) GetProducts(ctx context.Context, f ProductFilters) ([]models.Product, error) {
	query := url.Values{}
	if f.CategoryID != "" {
		query.Set("category_id", f.CategoryID)
	}
	if f.StoreID != "" {
		query.Set("store_id", f.StoreID)
	}
	if f.Search != "" {
		query.Set("search", f.Search)
	}

	var out []models.Product
	if err := g.do(ctx, "products.list", http.MethodGet, "/products", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct fetches one product by id.
func (g *Gateway) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var out models.Product
	if err := g.do(ctx, "products.show", http.MethodGet, "/products/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCategories lists all categories.
func (g *Gateway) GetCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := g.do(ctx, "categories.list", http.MethodGet, "/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCategory fetches one category by id.
func (g *Gateway) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var out models.Category
	if err := g.do(ctx, "categories.show", http.MethodGet, "/categories/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStores lists all stores.
func (g *Gateway) GetStores(ctx context.Context) ([]models.Store, error) {
	var out []models.Store
	if err := g.do(ctx, "stores.list", http.MethodGet, "/stores", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetStore fetches one store by id.
func (g *Gateway) GetStore(ctx context.Context, id string) (*models.Store, error) {
	var out models.Store
	if err := g.do(ctx, "stores.show", http.MethodGet, "/stores/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ─── Orders ───────────────────────────────────────────────────────────────────

// CreateOrder places an order.
func (g *Gateway) CreateOrder(ctx context.Context, in models.OrderCreate) (*models.Order, error) {
	var out models.Order
	if err := g.do(ctx, "orders.create", http.MethodPost, "/orders", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUserOrders lists the calling user's orders.
func (g *Gateway) GetUserOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := g.do(ctx, "orders.mine", http.MethodGet, "/orders/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOrder fetches one order by id.
func (g *Gateway) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var out models.Order
	if err := g.do(ctx, "orders.show", http.MethodGet, "/orders/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OrderFilters narrows GetAllOrders (staff view). Zero values are omitted.
type OrderFilters struct {
	Status   string
	DateFrom string
	DateTo   string
}

// GetAllOrders lists every order the caller may see (staff).
func (g *Gateway) GetAllOrders(ctx context.Context, f OrderFilters) ([]models.Order, error) {
	query := url.Values{}
	if f.Status != "" {
		query.Set("status", f.Status)
	}
	if f.DateFrom != "" {
		query.Set("date_from", f.DateFrom)
	}
	if f.DateTo != "" {
		query.Set("date_to", f.DateTo)
	}

	var out []models.Order
	if err := g.do(ctx, "orders.list", http.MethodGet, "/orders", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateOrderStatus moves an order along its lifecycle.
func (g *Gateway) UpdateOrderStatus(ctx context.Context, id, status string) (*models.Order, error) {
	payload := map[string]string{"status": status}
	var out models.Order
	if err := g.do(ctx, "orders.status", http.MethodPut, "/orders/"+id+"/status", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAvailableOrders lists orders a courier can pick up.
func (g *Gateway) GetAvailableOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := g.do(ctx, "orders.available", http.MethodGet, "/orders/available", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AcceptOrder claims an available order for the calling courier.
func (g *Gateway) AcceptOrder(ctx context.Context, id string) (*models.Order, error) {
	var out models.Order
	if err := g.do(ctx, "orders.accept", http.MethodPost, "/orders/"+id+"/accept", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ─── Staff ────────────────────────────────────────────────────────────────────

// CreateProduct adds a catalog product (staff only).
func (g *Gateway) CreateProduct(ctx context.Context, in models.ProductCreate) (*models.Product, error) {
	var out models.Product
	if err := g.do(ctx, "products.create", http.MethodPost, "/products", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct changes product fields (staff only).
func (g *Gateway) UpdateProduct(ctx context.Context, id string, in models.ProductUpdate) (*models.Product, error) {
	var out models.Product
	if err := g.do(ctx, "products.update", http.MethodPut, "/products/"+id, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes a product (staff only).
func (g *Gateway) DeleteProduct(ctx context.Context, id string) error {
	return g.do(ctx, "products.delete", http.MethodDelete, "/products/"+id, nil, nil, nil)
}

// GetAnalytics fetches the staff dashboard summary for a period
// (day, week or month).
func (g *Gateway) GetAnalytics(ctx context.Context, period string) (*models.Analytics, error) {
	query := url.Values{}
	if period != "" {
		query.Set("period", period)
	}

	var out models.Analytics
	if err := g.do(ctx, "analytics", http.MethodGet, "/analytics", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ─── Misc ─────────────────────────────────────────────────────────────────────

// HealthCheck probes backend liveness.
func (g *Gateway) HealthCheck(ctx context.Context) (*models.Health, error) {
	var out models.Health
	if err := g.do(ctx, "health", http.MethodGet, "/health", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

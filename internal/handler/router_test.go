package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"emeraldscents-be/internal/address"
	"emeraldscents-be/internal/admin"
	"emeraldscents-be/internal/cart"
	"emeraldscents-be/internal/category"
	"emeraldscents-be/internal/contact"
	"emeraldscents-be/internal/middleware"
	"emeraldscents-be/internal/order"
	"emeraldscents-be/internal/payment"
	"emeraldscents-be/internal/payment/webhook"
	"emeraldscents-be/internal/product"
	"emeraldscents-be/internal/review"
	"emeraldscents-be/internal/shipping"
	"emeraldscents-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stubs below return zero values; these tests exercise routing and the
// auth guards, not handler bodies.

type stubOrderSvc struct{}

func (stubOrderSvc) Create(context.Context, order.CreateOrderInput) (*order.Order, *payment.Authorization, error) {
	return &order.Order{}, nil, nil
}
func (stubOrderSvc) ListByUser(context.Context) ([]*order.Order, error) { return nil, nil }
func (stubOrderSvc) List(context.Context, *order.OrderFilterInput, *order.OrderSortInput, int, int) ([]*order.Order, error) {
	return nil, nil
}
func (stubOrderSvc) Get(context.Context, string) (*order.Order, error) { return &order.Order{}, nil }
func (stubOrderSvc) UpdateStatus(context.Context, string, order.Status, *string) error {
	return nil
}
func (stubOrderSvc) MarkPaidByReference(context.Context, string) (bool, error) { return false, nil }
func (stubOrderSvc) Track(context.Context, string, string) (*order.Order, error) {
	return &order.Order{}, nil
}

type stubProductSvc struct{}

func (stubProductSvc) List(context.Context, *product.ListFilter, product.ListSort, int, int) (*product.ListResult, error) {
	return &product.ListResult{Products: []*product.Product{}}, nil
}
func (stubProductSvc) Get(context.Context, string) (*product.Product, error) {
	return &product.Product{}, nil
}
func (stubProductSvc) Create(context.Context, product.ProductInput) (*product.Product, error) {
	return &product.Product{}, nil
}
func (stubProductSvc) Update(context.Context, string, product.ProductInput) (*product.Product, error) {
	return &product.Product{}, nil
}
func (stubProductSvc) Delete(context.Context, string) error { return nil }

type stubShippingSvc struct{}

func (stubShippingSvc) List(context.Context) ([]*shipping.ShippingZone, error) { return nil, nil }
func (stubShippingSvc) FeeFor(context.Context, string) int64                   { return 2500 }
func (stubShippingSvc) Create(context.Context, shipping.ZoneInput) (*shipping.ShippingZone, error) {
	return &shipping.ShippingZone{}, nil
}
func (stubShippingSvc) Update(context.Context, string, shipping.ZoneInput) (*shipping.ShippingZone, error) {
	return &shipping.ShippingZone{}, nil
}
func (stubShippingSvc) Delete(context.Context, string) error { return nil }

type stubCartSvc struct{}

func (stubCartSvc) Add(context.Context, cart.AddItemInput) (*cart.CartItem, error) {
	return &cart.CartItem{}, nil
}
func (stubCartSvc) Get(context.Context) ([]*cart.CartItem, error)         { return nil, nil }
func (stubCartSvc) UpdateQuantity(context.Context, cart.UpdateItemInput) error { return nil }
func (stubCartSvc) Remove(context.Context, string) error                  { return nil }
func (stubCartSvc) Clear(context.Context) error                           { return nil }

type stubReviewSvc struct{}

func (stubReviewSvc) Create(context.Context, string, review.ReviewInput) (*review.Review, error) {
	return &review.Review{}, nil
}
func (stubReviewSvc) ListApproved(context.Context, string) ([]*review.Review, error) {
	return nil, nil
}
func (stubReviewSvc) ListPending(context.Context) ([]*review.Review, error) { return nil, nil }
func (stubReviewSvc) Approve(context.Context, string) error                 { return nil }
func (stubReviewSvc) Delete(context.Context, string) error                  { return nil }

type stubUserSvc struct{}

func (stubUserSvc) Signup(context.Context, user.SignupInput) (*user.User, error) {
	return &user.User{}, nil
}
func (stubUserSvc) Login(context.Context, user.LoginInput) (string, *user.User, error) {
	return "token", &user.User{}, nil
}
func (stubUserSvc) Profile(context.Context, string) (*user.User, error) { return &user.User{}, nil }

type stubAddressRepo struct{}

func (stubAddressRepo) Create(context.Context, string, address.AddressInput) (*address.Address, error) {
	return &address.Address{}, nil
}
func (stubAddressRepo) ListByUser(context.Context, string) ([]*address.Address, error) {
	return nil, nil
}
func (stubAddressRepo) GetByID(context.Context, string) (*address.Address, error) {
	return &address.Address{}, nil
}

type stubCategoryRepo struct{}

func (stubCategoryRepo) List(context.Context) ([]*category.Category, error) { return nil, nil }
func (stubCategoryRepo) Create(context.Context, category.CategoryInput) (*category.Category, error) {
	return &category.Category{}, nil
}
func (stubCategoryRepo) Update(context.Context, string, category.CategoryInput) (*category.Category, error) {
	return &category.Category{}, nil
}
func (stubCategoryRepo) Delete(context.Context, string) error { return nil }

type stubPayRepo struct{}

func (stubPayRepo) SaveWebhookEvent(context.Context, string, string, string, string, json.RawMessage) (int64, bool, error) {
	return 1, false, nil
}
func (stubPayRepo) MarkWebhookProcessed(context.Context, int64) error      { return nil }
func (stubPayRepo) MarkWebhookFailed(context.Context, int64, string) error { return nil }

type stubAdminRepo struct{}

func (stubAdminRepo) Stats(context.Context) (*admin.DashboardStats, error) {
	return &admin.DashboardStats{}, nil
}
func (stubAdminRepo) Customers(context.Context) ([]*user.CustomerSummary, error) {
	return []*user.CustomerSummary{}, nil
}

type stubNewsletterSvc struct{}

func (stubNewsletterSvc) Subscribe(context.Context, string) error { return nil }

type stubContactSvc struct{}

func (stubContactSvc) Submit(context.Context, contact.Message) error { return nil }

func testRouter() http.Handler {
	webhookHandler := webhook.NewWebhookHandler(stubOrderSvc{}, payment.NewPaystackGateway("sk_test"), stubPayRepo{})

	r := NewRouter(Handlers{
		Auth:       NewAuthHandler(stubUserSvc{}, false),
		Product:    NewProductHandler(stubProductSvc{}),
		Category:   NewCategoryHandler(stubCategoryRepo{}),
		Shipping:   NewShippingHandler(stubShippingSvc{}),
		Order:      NewOrderHandler(stubOrderSvc{}),
		Cart:       NewCartHandler(stubCartSvc{}),
		Review:     NewReviewHandler(stubReviewSvc{}),
		Address:    NewAddressHandler(stubAddressRepo{}),
		Admin:      NewAdminHandler(stubAdminRepo{}),
		Newsletter: NewNewsletterHandler(stubNewsletterSvc{}),
		Contact:    NewContactHandler(stubContactSvc{}),
		Webhook:    webhookHandler,
	})
	return middleware.AuthMiddleware(r)
}

func TestRouter_PublicRoutes(t *testing.T) {
	srv := testRouter()

	public := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/health"},
		{http.MethodGet, "/api/products"},
		{http.MethodGet, "/api/products/p1"},
		{http.MethodGet, "/api/products/p1/reviews"},
		{http.MethodGet, "/api/categories"},
		{http.MethodGet, "/api/shipping-zones"},
		{http.MethodGet, "/api/shipping-rates?region=Lagos"},
		{http.MethodGet, "/api/orders/track?orderNumber=ES1&email=ada@example.com"},
	}

	for _, tc := range public {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouter_PublicForms(t *testing.T) {
	srv := testRouter()

	forms := []struct {
		path, body string
	}{
		{"/api/newsletter", `{"email":"ada@example.com"}`},
		{"/api/contact", `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello"}`},
	}

	for _, tc := range forms {
		req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "POST %s", tc.path)
	}
}

func TestRouter_AuthGuards(t *testing.T) {
	srv := testRouter()

	protected := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/orders"},
		{http.MethodPost, "/api/orders"},
		{http.MethodGet, "/api/cart"},
		{http.MethodGet, "/api/addresses"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/products/p1/reviews"},
	}

	for _, tc := range protected {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouter_AdminGuards(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	srv := testRouter()

	adminOnly := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/admin/dashboard"},
		{http.MethodGet, "/api/admin/customers"},
		{http.MethodGet, "/api/admin/orders"},
		{http.MethodPut, "/api/admin/orders/o1/status"},
		{http.MethodPost, "/api/admin/products"},
		{http.MethodGet, "/api/admin/shipping-zones"},
		{http.MethodGet, "/api/admin/reviews/pending"},
	}

	t.Run("CustomerForbidden", func(t *testing.T) {
		token, err := user.GenerateJWT("user-1", "USER", "ada@example.com")
		require.NoError(t, err)

		for _, tc := range adminOnly {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", tc.method, tc.path)
		}
	})

	t.Run("AnonymousUnauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("AdminDashboard", func(t *testing.T) {
		token, err := user.GenerateJWT("admin-1", "ADMIN", "boss@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouter_WebhookMounted(t *testing.T) {
	srv := testRouter()

	// Garbage signature: the route must exist and reject with 400, not 404.
	req := httptest.NewRequest(http.MethodPost, "/api/payment-webhook", nil)
	req.Header.Set("x-paystack-signature", "bad")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

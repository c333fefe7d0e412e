package api_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shashiranjanraj/bodega/app/api"
	"github.com/shashiranjanraj/bodega/pkg/event"
	"github.com/shashiranjanraj/bodega/pkg/testkit"
)

const base = "https://backend.test"

// staticToken is a fixed TokenSource for tests.
type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestBearerAttached(t *testing.T) {
	st := testkit.Install(t,
		testkit.Stub{Method: "GET", Path: "/api/products", Body: `[]`},
	)

	gw := api.New(base, staticToken("tok-123"), time.Second)
	if _, err := gw.GetProducts(context.Background(), api.ProductFilters{}); err != nil {
		t.Fatalf("getProducts: %v", err)
	}

	call, _ := st.LastCall()
	if call.Authorization != "Bearer tok-123" {
		t.Errorf("expected bearer header, got %q", call.Authorization)
	}
}

func TestAnonymousRequestHasNoAuthorization(t *testing.T) {
	st := testkit.Install(t,
		testkit.Stub{Method: "GET", Path: "/api/products", Body: `[]`},
	)

	gw := api.New(base, nil, time.Second)
	if _, err := gw.GetProducts(context.Background(), api.ProductFilters{}); err != nil {
		t.Fatalf("getProducts: %v", err)
	}

	call, _ := st.LastCall()
	if call.Authorization != "" {
		t.Errorf("expected no Authorization header, got %q", call.Authorization)
	}
}

func TestProductFiltersBecomeQueryParams(t *testing.T) {
	st := testkit.Install(t,
		testkit.Stub{Method: "GET", Path: "/api/products", Body: `[]`},
	)

	gw := api.New(base, nil, time.Second)
	_, err := gw.GetProducts(context.Background(), api.ProductFilters{
		CategoryID: "cat1", Search: "pizza",
	})
	if err != nil {
		t.Fatalf("getProducts: %v", err)
	}

	call, _ := st.LastCall()
	if call.Query != "category_id=cat1&search=pizza" {
		t.Errorf("unexpected query: %q", call.Query)
	}
}

func TestResponseDecoding(t *testing.T) {
	testkit.Install(t,
		testkit.Stub{Method: "GET", Path: "/api/products/p1",
			Body: `{"id":"p1","name":"Pizza","price":12.99,"in_stock":true}`},
	)

	gw := api.New(base, nil, time.Second)
	p, err := gw.GetProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("getProduct: %v", err)
	}
	if p.Name != "Pizza" || p.Price != 12.99 || !p.InStock {
		t.Errorf("unexpected product: %+v", p)
	}
}

func TestErrorDetailExtraction(t *testing.T) {
	testkit.Install(t,
		testkit.Stub{Method: "POST", Path: "/api/auth/login", Status: 401,
			Body: `{"detail":"Incorrect email or password"}`},
	)

	gw := api.New(base, nil, time.Second)
	_, err := gw.Login(context.Background(), "a@b.com", "wrong")
	if err == nil {
		t.Fatal("expected an error")
	}

	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != 401 || apiErr.Detail != "Incorrect email or password" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
	if !api.IsUnauthorized(err) {
		t.Error("expected IsUnauthorized")
	}
}

func TestErrorWithoutDetailBody(t *testing.T) {
	testkit.Install(t,
		testkit.Stub{Method: "GET", Path: "/api/products", Status: 500, Body: `oops`},
	)

	gw := api.New(base, nil, time.Second)
	_, err := gw.GetProducts(context.Background(), api.ProductFilters{})

	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Detail != "" || apiErr.StatusCode != 500 {
		t.Errorf("unexpected error: %+v", apiErr)
	}
	if apiErr.Error() == "" {
		t.Error("expected a readable message even without detail")
	}
}

func TestUnauthorizedWithBearerFiresSessionExpired(t *testing.T) {
	t.Cleanup(event.Flush)
	testkit.Install(t,
		testkit.Stub{Method: "GET", Path: "/api/orders/me", Status: 401,
			Body: `{"detail":"Token expired"}`},
	)

	fired := 0
	event.Listen(event.SessionExpired, func(interface{}) { fired++ })

	gw := api.New(base, staticToken("stale"), time.Second)
	if _, err := gw.GetUserOrders(context.Background()); err == nil {
		t.Fatal("expected an error")
	}

	if fired != 1 {
		t.Errorf("expected one session-expired event, got %d", fired)
	}
}

func TestUnauthorizedWithoutBearerStaysLocal(t *testing.T) {
	t.Cleanup(event.Flush)
	testkit.Install(t,
		testkit.Stub{Method: "POST", Path: "/api/auth/login", Status: 401,
			Body: `{"detail":"Incorrect email or password"}`},
	)

	fired := 0
	event.Listen(event.SessionExpired, func(interface{}) { fired++ })

	gw := api.New(base, nil, time.Second)
	if _, err := gw.Login(context.Background(), "a@b.com", "wrong"); err == nil {
		t.Fatal("expected an error")
	}

	if fired != 0 {
		t.Errorf("a failed login must not broadcast expiry, got %d events", fired)
	}
}

// A signed-in user retrying login must not send the old bearer along: a 401
// on the credential endpoints would otherwise look like a session expiry.
func TestCredentialEndpointsNeverCarryTheSessionBearer(t *testing.T) {
	t.Cleanup(event.Flush)
	st := testkit.Install(t,
		testkit.Stub{Method: "POST", Path: "/api/auth/login", Status: 401,
			Body: `{"detail":"Incorrect email or password"}`},
		testkit.Stub{Method: "POST", Path: "/api/auth/register", Status: 400,
			Body: `{"detail":"Email already registered"}`},
	)

	fired := 0
	event.Listen(event.SessionExpired, func(interface{}) { fired++ })

	gw := api.New(base, staticToken("live-session-token"), time.Second)
	if _, err := gw.Login(context.Background(), "ana@example.com", "wrong"); err == nil {
		t.Fatal("expected login to fail")
	}
	if _, err := gw.Register(context.Background(), api.RegisterInput{
		Email: "ana@example.com", Password: "secret", FullName: "Ana", Role: "customer",
	}); err == nil {
		t.Fatal("expected register to fail")
	}

	for _, call := range st.Calls() {
		if call.Authorization != "" {
			t.Errorf("%s %s carried %q; credential calls must be anonymous",
				call.Method, call.Path, call.Authorization)
		}
	}
	if fired != 0 {
		t.Errorf("a rejected credential attempt must not broadcast expiry, got %d events", fired)
	}
}

func TestTransportFailurePropagates(t *testing.T) {
	testkit.Install(t,
		testkit.Stub{Method: "GET", Path: "/api/health", Fail: true},
	)

	gw := api.New(base, nil, time.Second)
	if _, err := gw.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected a transport error")
	}
}

func TestVerifyTokenUsesExplicitToken(t *testing.T) {
	st := testkit.Install(t,
		testkit.Stub{Method: "GET", Path: "/api/auth/me",
			Body: `{"id":"u1","email":"a@b.com","full_name":"Ana","role":"customer"}`},
	)

	gw := api.New(base, staticToken("session-token"), time.Second)
	user, err := gw.VerifyToken(context.Background(), "candidate-token")
	if err != nil {
		t.Fatalf("verifyToken: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("unexpected user: %+v", user)
	}

	call, _ := st.LastCall()
	if call.Authorization != "Bearer candidate-token" {
		t.Errorf("expected candidate token on the wire, got %q", call.Authorization)
	}
}

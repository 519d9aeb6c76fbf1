package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/msomdec/campus-market/internal/handler"
)

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestIntegration_RegisterPostBrowseLogout(t *testing.T) {
	account, catalog := newTestServices(t)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, account, catalog, false)

	srv := httptest.NewServer(mux)
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar}

	// 1. Register a seller account.
	resp := postJSON(t, client, srv.URL+"/api/auth/register", map[string]any{
		"name":     "Integration Seller",
		"email":    "integ@campus.edu",
		"password": "password123",
		"college":  "Engineering",
		"role":     "both",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}
	var registered struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	decodeBody(t, resp, &registered)
	if registered.User.Email != "integ@campus.edu" {
		t.Fatalf("register: unexpected user %+v", registered.User)
	}

	// Verify the auth_token cookie was set.
	srvURL, _ := url.Parse(srv.URL)
	var hasAuthToken bool
	for _, c := range jar.Cookies(srvURL) {
		if c.Name == "auth_token" {
			hasAuthToken = true
		}
	}
	if !hasAuthToken {
		t.Fatal("expected auth_token cookie to be set after register")
	}

	// 2. The persisted session now references the new account.
	resp, err = client.Get(srv.URL + "/api/auth/session")
	if err != nil {
		t.Fatalf("GET /api/auth/session: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("session: expected 200, got %d", resp.StatusCode)
	}
	var session struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decodeBody(t, resp, &session)
	if session.User.ID != registered.User.ID {
		t.Fatalf("session user %s does not match registered %s", session.User.ID, registered.User.ID)
	}

	// 3. Post a listing.
	resp = postJSON(t, client, srv.URL+"/api/items", map[string]any{
		"name":        "Graphing Calculator",
		"category":    "tech",
		"mode":        "buy",
		"price":       700,
		"description": "TI-84, new batteries.",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create item: expected 201, got %d", resp.StatusCode)
	}
	var created struct {
		Item struct {
			ID       string `json:"id"`
			SellerID string `json:"sellerId"`
		} `json:"item"`
	}
	decodeBody(t, resp, &created)
	if created.Item.SellerID != registered.User.ID {
		t.Fatalf("item seller %s does not match poster %s", created.Item.SellerID, registered.User.ID)
	}

	// 4. Browse with a filter that matches the listing.
	resp, err = client.Get(srv.URL + "/api/items?q=graphing&category=tech&view=all")
	if err != nil {
		t.Fatalf("GET /api/items: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list items: expected 200, got %d", resp.StatusCode)
	}
	var listing struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		Viewer *struct {
			Email string `json:"email"`
		} `json:"viewer"`
	}
	decodeBody(t, resp, &listing)
	if len(listing.Items) != 1 || listing.Items[0].ID != created.Item.ID {
		t.Fatalf("expected the created item, got %+v", listing.Items)
	}

	// The browse route recognizes the logged-in viewer.
	if listing.Viewer == nil || listing.Viewer.Email != "integ@campus.edu" {
		t.Fatalf("expected viewer integ@campus.edu, got %+v", listing.Viewer)
	}

	// 5. A filter that excludes it returns nothing.
	resp, err = client.Get(srv.URL + "/api/items?view=free")
	if err != nil {
		t.Fatalf("GET /api/items free: %v", err)
	}
	decodeBody(t, resp, &listing)
	if len(listing.Items) != 0 {
		t.Fatalf("free view: expected no items, got %+v", listing.Items)
	}

	// 6. Logout ends the session but keeps the catalog.
	resp = postJSON(t, client, srv.URL+"/api/auth/logout", map[string]any{})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", resp.StatusCode)
	}

	resp, err = client.Get(srv.URL + "/api/auth/session")
	if err != nil {
		t.Fatalf("GET /api/auth/session after logout: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("session after logout: expected 204, got %d", resp.StatusCode)
	}

	resp, err = client.Get(srv.URL + "/api/items")
	if err != nil {
		t.Fatalf("GET /api/items after logout: %v", err)
	}
	decodeBody(t, resp, &listing)
	if len(listing.Items) != 1 {
		t.Fatalf("expected the catalog to survive logout, got %+v", listing.Items)
	}
}

func TestIntegration_BuyerCannotPost(t *testing.T) {
	account, catalog := newTestServices(t)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, account, catalog, false)

	srv := httptest.NewServer(mux)
	defer srv.Close()

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar}

	resp := postJSON(t, client, srv.URL+"/api/auth/register", map[string]any{
		"name":     "Browsing Buyer",
		"email":    "buyer@campus.edu",
		"password": "password123",
		"college":  "Arts",
		"role":     "buyer",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	resp = postJSON(t, client, srv.URL+"/api/items", map[string]any{
		"name":     "Sketchbook",
		"category": "stationery",
		"mode":     "buy",
		"price":    80,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for buyer posting, got %d", resp.StatusCode)
	}
}

func TestIntegration_LoginRejectsBadCredentials(t *testing.T) {
	account, catalog := newTestServices(t)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, account, catalog, false)

	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := srv.Client()

	resp := postJSON(t, client, srv.URL+"/api/auth/register", map[string]any{
		"name":     "Real User",
		"email":    "real@campus.edu",
		"password": "password123",
		"college":  "Sciences",
		"role":     "both",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	resp = postJSON(t, client, srv.URL+"/api/auth/login", map[string]any{
		"email":    "real@campus.edu",
		"password": "wrongpass1",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", resp.StatusCode)
	}
}

func TestIntegration_RegisterValidationErrors(t *testing.T) {
	account, catalog := newTestServices(t)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, account, catalog, false)

	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := srv.Client()

	// Invalid email shape.
	resp := postJSON(t, client, srv.URL+"/api/auth/register", map[string]any{
		"name":     "Bad Email",
		"email":    "not-an-email",
		"password": "password123",
		"college":  "Engineering",
		"role":     "buyer",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for invalid email, got %d", resp.StatusCode)
	}

	// Duplicate email.
	for i := 0; i < 2; i++ {
		resp = postJSON(t, client, srv.URL+"/api/auth/register", map[string]any{
			"name":     "Dup User",
			"email":    "dup@campus.edu",
			"password": "password123",
			"college":  "Engineering",
			"role":     "buyer",
		})
		resp.Body.Close()
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", resp.StatusCode)
	}
}

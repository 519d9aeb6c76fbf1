package handler

import (
	"net/http"

	"github.com/msomdec/campus-market/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, account *service.AccountService, catalog *service.CatalogService, cookieSecure bool) {
	authHandler := NewAuthHandler(account, cookieSecure)
	itemHandler := NewItemHandler(catalog)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.HandleFunc("GET /api/auth/session", authHandler.HandleSession)

	mux.Handle("GET /api/items", OptionalAuth(account, http.HandlerFunc(itemHandler.HandleList)))
	mux.Handle("POST /api/items", RequireAuth(account, http.HandlerFunc(itemHandler.HandleCreate)))
}

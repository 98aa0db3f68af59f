package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/compracerta/internal/auth"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, hasher auth.Hasher) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret, Hasher: hasher}
	listsHandler := &ListsHandler{DB: db}
	itemsHandler := &ItemsHandler{DB: db}
	barcodesHandler := &BarcodesHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/auth/me", authMW(http.HandlerFunc(authHandler.Me)))

	// Lists.
	mux.Handle("GET /api/lists", authMW(http.HandlerFunc(listsHandler.List)))
	mux.Handle("POST /api/lists", authMW(http.HandlerFunc(listsHandler.Create)))
	mux.Handle("GET /api/lists/history", authMW(http.HandlerFunc(listsHandler.History)))
	mux.Handle("GET /api/lists/{id}", authMW(http.HandlerFunc(listsHandler.Get)))
	mux.Handle("PUT /api/lists/{id}", authMW(http.HandlerFunc(listsHandler.Update)))
	mux.Handle("DELETE /api/lists/{id}", authMW(http.HandlerFunc(listsHandler.Delete)))
	mux.Handle("POST /api/lists/{id}/complete", authMW(http.HandlerFunc(listsHandler.Complete)))
	mux.Handle("POST /api/lists/{id}/reactivate", authMW(http.HandlerFunc(listsHandler.Reactivate)))
	mux.Handle("POST /api/lists/{id}/copy", authMW(http.HandlerFunc(listsHandler.Copy)))

	// Items.
	mux.Handle("GET /api/lists/{id}/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/lists/{id}/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("PUT /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("PUT /api/items/{id}/checked", authMW(http.HandlerFunc(itemsHandler.SetChecked)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))

	// Barcode price history.
	mux.Handle("GET /api/barcodes/{code}/prices", authMW(http.HandlerFunc(barcodesHandler.Prices)))

	return mux
}

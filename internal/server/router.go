// Package server wires the HTTP surface: route table, request identity,
// structured request logging and panic recovery.
package server

import (
	"net/http"
	"time"

	"github.com/HFQ252/Shelflife/internal/handlers"
	"github.com/HFQ252/Shelflife/internal/httpx"
	"github.com/HFQ252/Shelflife/internal/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(dbConn *gorm.DB, env string, log *zap.Logger) http.Handler {
	catalog := store.NewCatalogStore(dbConn)
	inventory := store.NewInventoryStore(dbConn)

	ph := handlers.NewProductHandler(catalog, log)
	rh := handlers.NewRecordHandler(inventory, catalog, log)
	sys := handlers.NewSystemHandler(catalog, inventory, env, log)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", sys.Health)
	mux.HandleFunc("GET /api/test", sys.Test)
	mux.HandleFunc("GET /api/stats", sys.Stats)
	mux.HandleFunc("POST /api/initialize-demo", sys.InitializeDemo)

	mux.HandleFunc("GET /api/products", ph.List)
	mux.HandleFunc("POST /api/products", ph.Create)
	mux.HandleFunc("GET /api/products/{sku}", ph.Get)
	mux.HandleFunc("PUT /api/products/{sku}", ph.Update)
	mux.HandleFunc("DELETE /api/products/{sku}", ph.Delete)

	mux.HandleFunc("GET /api/records", rh.List)
	mux.HandleFunc("GET /api/records/expiring", rh.ListExpiring)
	mux.HandleFunc("POST /api/records", rh.Create)
	mux.HandleFunc("DELETE /api/records/{sku}/{production_date}", rh.Delete)

	// JSON fallback so unknown paths never answer with the default HTML 404.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusNotFound, map[string]any{
			"error":     "resource_not_found",
			"path":      r.URL.Path,
			"method":    r.Method,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	return withRequestID(withLogging(log, withRecover(log, mux)))
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/HFQ252/Shelflife/internal/db"
	"github.com/HFQ252/Shelflife/internal/httpx"
	"github.com/HFQ252/Shelflife/internal/store"
	"go.uber.org/zap"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

type SystemHandler struct {
	Catalog   *store.CatalogStore
	Inventory *store.InventoryStore
	Env       string
	Log       *zap.Logger
	Now       func() time.Time
}

func NewSystemHandler(c *store.CatalogStore, i *store.InventoryStore, env string, log *zap.Logger) *SystemHandler {
	return &SystemHandler{Catalog: c, Inventory: i, Env: env, Log: log, Now: time.Now}
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"status":      "healthy",
		"timestamp":   h.Now().UTC().Format(time.RFC3339),
		"version":     Version,
		"environment": h.Env,
	})
}

func (h *SystemHandler) Test(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message":   "API is up",
		"timestamp": h.Now().UTC().Format(time.RFC3339),
		"endpoints": map[string]string{
			"products": "/api/products",
			"records":  "/api/records",
			"expiring": "/api/records/expiring",
		},
	})
}

func (h *SystemHandler) Stats(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.Count()
	if err != nil {
		h.Log.Error("stats: count products", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_get_stats", err.Error())
		return
	}
	records, err := h.Inventory.Count()
	if err != nil {
		h.Log.Error("stats: count records", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_get_stats", err.Error())
		return
	}
	expiring, err := h.Inventory.ListExpiring(h.Now())
	if err != nil {
		h.Log.Error("stats: list expiring", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_get_stats", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"products":  products,
		"records":   records,
		"expiring":  len(expiring),
		"timestamp": h.Now().UTC().Format(time.RFC3339),
	})
}

// InitializeDemo loads the sample catalog, skipping SKUs already present.
func (h *SystemHandler) InitializeDemo(w http.ResponseWriter, r *http.Request) {
	added := 0
	demo := db.DemoProducts()
	for i := range demo {
		if err := h.Catalog.Create(&demo[i]); err != nil {
			if errors.Is(err, store.ErrDuplicateSKU) {
				continue
			}
			h.Log.Error("initialize demo", zap.String("sku", demo[i].SKU), zap.Error(err))
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_initialize_demo", err.Error())
			return
		}
		added++
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"added":    added,
		"products": demo,
	})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/HFQ252/Shelflife/internal/httpx"
	"github.com/HFQ252/Shelflife/internal/models"
	"github.com/HFQ252/Shelflife/internal/store"
	"github.com/HFQ252/Shelflife/internal/validation"
	"go.uber.org/zap"
)

// SKULength is the fixed width of stock keeping unit codes.
const SKULength = 5

type ProductHandler struct {
	Store *store.CatalogStore
	Log   *zap.Logger
}

func NewProductHandler(s *store.CatalogStore, log *zap.Logger) *ProductHandler {
	return &ProductHandler{Store: s, Log: log}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.List()
	if err != nil {
		h.Log.Error("list products", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")
	product, err := h.Store.Get(sku)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			// The lookup client treats a null body as "unknown SKU".
			httpx.JSON(w, http.StatusNotFound, nil)
			return
		}
		h.Log.Error("get product", zap.String("sku", sku), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_get_product", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

type productInput struct {
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	ShelfLifeDays int    `json:"shelf_life"`
	ReminderDays  *int   `json:"reminder_days"`
	Location      string `json:"location"`
}

// validate collects every field problem before anything touches the store.
func (in *productInput) validate(requireSKU bool) validation.Violations {
	v := validation.Violations{}
	if requireSKU {
		validation.Required("sku", in.SKU, v)
		validation.ExactLen("sku", in.SKU, SKULength, v)
	}
	validation.Required("name", in.Name, v)
	validation.Required("location", in.Location, v)
	validation.PositiveInt("shelf_life", in.ShelfLifeDays, v)
	if in.ReminderDays == nil {
		v["reminder_days"] = "required"
	} else {
		validation.NonNegativeInt("reminder_days", *in.ReminderDays, v)
		validation.ReminderWithinShelfLife("reminder_days", *in.ReminderDays, in.ShelfLifeDays, v)
	}
	return v
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	input.SKU = strings.TrimSpace(input.SKU)
	if v := input.validate(true); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	p := models.Product{
		SKU:           input.SKU,
		Name:          input.Name,
		ShelfLifeDays: input.ShelfLifeDays,
		ReminderDays:  *input.ReminderDays,
		Location:      input.Location,
	}
	if err := h.Store.Create(&p); err != nil {
		if errors.Is(err, store.ErrDuplicateSKU) {
			httpx.JSONError(w, http.StatusConflict, "sku_already_exists",
				"sku "+input.SKU+" already exists, use a different code")
			return
		}
		h.Log.Error("create product", zap.String("sku", input.SKU), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_product", err.Error())
		return
	}
	httpx.Created(w, p.ID, "product created")
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")
	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := input.validate(false); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	changes, err := h.Store.Update(sku, store.ProductUpdate{
		Name:          input.Name,
		ShelfLifeDays: input.ShelfLifeDays,
		ReminderDays:  *input.ReminderDays,
		Location:      input.Location,
	})
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "product_not_found", nil)
			return
		}
		h.Log.Error("update product", zap.String("sku", sku), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_product", err.Error())
		return
	}
	httpx.Changed(w, changes, "product updated")
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")
	changes, err := h.Store.Delete(sku)
	if err != nil {
		h.Log.Error("delete product", zap.String("sku", sku), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_product", err.Error())
		return
	}
	httpx.Changed(w, changes, "product deleted")
}

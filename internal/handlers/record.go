package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/HFQ252/Shelflife/internal/httpx"
	"github.com/HFQ252/Shelflife/internal/models"
	"github.com/HFQ252/Shelflife/internal/store"
	"github.com/HFQ252/Shelflife/internal/validation"
	"go.uber.org/zap"
)

type RecordHandler struct {
	Store   *store.InventoryStore
	Catalog *store.CatalogStore
	Log     *zap.Logger
	// Now supplies the reference date for expiry classification; tests pin it.
	Now func() time.Time
}

func NewRecordHandler(s *store.InventoryStore, c *store.CatalogStore, log *zap.Logger) *RecordHandler {
	return &RecordHandler{Store: s, Catalog: c, Log: log, Now: time.Now}
}

func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	var records []models.ProductRecord
	var err error
	if sku := r.URL.Query().Get("sku"); sku != "" {
		records, err = h.Store.ListBySKU(sku)
	} else {
		records, err = h.Store.List()
	}
	if err != nil {
		h.Log.Error("list records", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_records", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, records)
}

func (h *RecordHandler) ListExpiring(w http.ResponseWriter, r *http.Request) {
	expiring, err := h.Store.ListExpiring(h.Now())
	if err != nil {
		h.Log.Error("list expiring records", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_expiring", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, expiring)
}

type recordInput struct {
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	ProductionDate string `json:"production_date"`
	ShelfLifeDays  int    `json:"shelf_life"`
	ReminderDays   *int   `json:"reminder_days"`
	Location       string `json:"location"`
}

// duplicateResponse is the 409 body for a colliding record; it carries the
// existing row so the client can show what is already stored.
type duplicateResponse struct {
	Error     string               `json:"error"`
	Message   string               `json:"message"`
	Duplicate models.ProductRecord `json:"duplicate"`
}

func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input recordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	input.SKU = strings.TrimSpace(input.SKU)

	// Snapshot fields may be supplied by the client (the lookup UI sends
	// them) or filled here from the catalog definition.
	if input.Name == "" || input.ShelfLifeDays == 0 || input.Location == "" || input.ReminderDays == nil {
		if product, err := h.Catalog.Get(input.SKU); err == nil {
			if input.Name == "" {
				input.Name = product.Name
			}
			if input.ShelfLifeDays == 0 {
				input.ShelfLifeDays = product.ShelfLifeDays
			}
			if input.ReminderDays == nil {
				rd := product.ReminderDays
				input.ReminderDays = &rd
			}
			if input.Location == "" {
				input.Location = product.Location
			}
		}
	}

	v := validation.Violations{}
	validation.Required("sku", input.SKU, v)
	validation.ExactLen("sku", input.SKU, SKULength, v)
	validation.ISODate("production_date", input.ProductionDate, v)
	validation.Required("name", input.Name, v)
	validation.Required("location", input.Location, v)
	validation.PositiveInt("shelf_life", input.ShelfLifeDays, v)
	if input.ReminderDays == nil {
		v["reminder_days"] = "required"
	} else {
		validation.NonNegativeInt("reminder_days", *input.ReminderDays, v)
		validation.ReminderWithinShelfLife("reminder_days", *input.ReminderDays, input.ShelfLifeDays, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	rec := models.ProductRecord{
		SKU:            input.SKU,
		Name:           input.Name,
		ProductionDate: input.ProductionDate,
		ShelfLifeDays:  input.ShelfLifeDays,
		ReminderDays:   *input.ReminderDays,
		Location:       input.Location,
	}
	if err := h.Store.Create(&rec); err != nil {
		var dup *store.DuplicateRecordError
		if errors.As(err, &dup) {
			httpx.JSON(w, http.StatusConflict, duplicateResponse{
				Error:     "duplicate_record",
				Message:   "a record for sku " + input.SKU + " with production date " + input.ProductionDate + " already exists",
				Duplicate: dup.Existing,
			})
			return
		}
		h.Log.Error("create record", zap.String("sku", input.SKU),
			zap.String("production_date", input.ProductionDate), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_record", err.Error())
		return
	}
	httpx.Created(w, rec.ID, "record created")
}

func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")
	date := r.PathValue("production_date")

	v := validation.Violations{}
	validation.ISODate("production_date", date, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	changes, err := h.Store.Delete(sku, date)
	if err != nil {
		h.Log.Error("delete record", zap.String("sku", sku), zap.String("production_date", date), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_record", err.Error())
		return
	}
	httpx.Changed(w, changes, "record deleted")
}

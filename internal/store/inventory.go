package store

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/HFQ252/Shelflife/internal/expiry"
	"github.com/HFQ252/Shelflife/internal/models"
	"gorm.io/gorm"
)

// InventoryStore persists production records, keyed uniquely by
// (sku, production_date).
type InventoryStore struct {
	db *gorm.DB
}

func NewInventoryStore(db *gorm.DB) *InventoryStore {
	return &InventoryStore{db: db}
}

func (s *InventoryStore) List() ([]models.ProductRecord, error) {
	var records []models.ProductRecord
	if err := s.db.Order("production_date desc, sku asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *InventoryStore) ListBySKU(sku string) ([]models.ProductRecord, error) {
	var records []models.ProductRecord
	if err := s.db.Where("sku = ?", sku).Order("production_date desc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ExpiringRecord is a production record plus its derived classification,
// as served by the expiring listing.
type ExpiringRecord struct {
	models.ProductRecord
	ExpiryDate    string `json:"expiry_date"`
	RemainingDays int    `json:"remaining_days"`
}

// ListExpiring returns every record whose status at ref is not normal,
// soonest-to-expire first, ties broken by newest production date. The filter
// runs through expiry.Classify, the same function any display uses, so the
// listed set is exactly the set classified as expiring or expired.
func (s *InventoryStore) ListExpiring(ref time.Time) ([]ExpiringRecord, error) {
	records, err := s.List()
	if err != nil {
		return nil, err
	}

	expiring := make([]ExpiringRecord, 0)
	for _, rec := range records {
		prod, err := expiry.ParseDate(rec.ProductionDate)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", rec.ID, err)
		}
		c, err := expiry.Classify(prod, rec.ShelfLifeDays, rec.ReminderDays, ref)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", rec.ID, err)
		}
		if c.Status == expiry.StatusNormal {
			continue
		}
		expiring = append(expiring, ExpiringRecord{
			ProductRecord: rec,
			ExpiryDate:    c.ExpiryDate.Format(expiry.DateLayout),
			RemainingDays: c.RemainingDays,
		})
	}

	sort.SliceStable(expiring, func(i, j int) bool {
		if expiring[i].RemainingDays != expiring[j].RemainingDays {
			return expiring[i].RemainingDays < expiring[j].RemainingDays
		}
		return expiring[i].ProductionDate > expiring[j].ProductionDate
	})
	return expiring, nil
}

// Create inserts a record after checking for an existing (sku,
// production_date) pair inside the same transaction. The pre-check exists to
// return the conflicting row; the unique index remains the authoritative
// guard, so a constraint violation that slips past the check is translated to
// the same DuplicateRecordError.
func (s *InventoryStore) Create(rec *models.ProductRecord) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.ProductRecord
		err := tx.Where("sku = ? AND production_date = ?", rec.SKU, rec.ProductionDate).
			First(&existing).Error
		if err == nil {
			return &DuplicateRecordError{Existing: existing}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(rec).Error; err != nil {
			if isUniqueViolation(err) {
				dup := &DuplicateRecordError{}
				_ = tx.Where("sku = ? AND production_date = ?", rec.SKU, rec.ProductionDate).
					First(&dup.Existing).Error
				return dup
			}
			return err
		}
		return nil
	})
}

// Delete removes exactly the (sku, production_date) row. A miss is not an
// error; the zero affected-count tells the caller nothing was there.
func (s *InventoryStore) Delete(sku, productionDate string) (int64, error) {
	res := s.db.Where("sku = ? AND production_date = ?", sku, productionDate).
		Delete(&models.ProductRecord{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// Count reports the number of stored records, used by the stats endpoint.
func (s *InventoryStore) Count() (int64, error) {
	var n int64
	if err := s.db.Model(&models.ProductRecord{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

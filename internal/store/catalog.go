package store

import (
	"errors"

	"github.com/HFQ252/Shelflife/internal/models"
	"gorm.io/gorm"
)

// CatalogStore persists product definitions, keyed uniquely by SKU.
type CatalogStore struct {
	db *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

func (s *CatalogStore) List() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("sku asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *CatalogStore) Get(sku string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("sku = ?", sku).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *CatalogStore) Create(p *models.Product) error {
	if err := s.db.Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSKU
		}
		return err
	}
	return nil
}

// ProductUpdate carries the mutable catalog fields. SKU is immutable.
type ProductUpdate struct {
	Name          string
	ShelfLifeDays int
	ReminderDays  int
	Location      string
}

// Update rewrites the mutable fields of the definition identified by sku and
// returns the affected-row count. A miss is ErrProductNotFound rather than a
// silent zero so callers can answer 404.
func (s *CatalogStore) Update(sku string, upd ProductUpdate) (int64, error) {
	// Map form so a zero reminder_days is still written.
	res := s.db.Model(&models.Product{}).Where("sku = ?", sku).Updates(map[string]any{
		"name":          upd.Name,
		"shelf_life":    upd.ShelfLifeDays,
		"reminder_days": upd.ReminderDays,
		"location":      upd.Location,
	})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrProductNotFound
	}
	return res.RowsAffected, nil
}

// Delete removes the definition only. Existing production records keep their
// snapshot fields; nothing cascades. Deleting an absent SKU is a no-op with
// zero affected rows.
func (s *CatalogStore) Delete(sku string) (int64, error) {
	res := s.db.Where("sku = ?", sku).Delete(&models.Product{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// Count reports the number of catalog definitions, used by the stats endpoint.
func (s *CatalogStore) Count() (int64, error) {
	var n int64
	if err := s.db.Model(&models.Product{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

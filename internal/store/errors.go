package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HFQ252/Shelflife/internal/models"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a catalog lookup misses.
var ErrProductNotFound = errors.New("product not found")

// ErrDuplicateSKU is returned when a catalog insert collides on SKU.
var ErrDuplicateSKU = errors.New("sku already exists")

// DuplicateRecordError reports an inventory insert that collides on
// (sku, production_date). It carries the conflicting row so callers can show
// the user what is already there.
type DuplicateRecordError struct {
	Existing models.ProductRecord
}

func (e *DuplicateRecordError) Error() string {
	return fmt.Sprintf("record for sku %s with production date %s already exists",
		e.Existing.SKU, e.Existing.ProductionDate)
}

// isUniqueViolation detects a uniqueness constraint failure across drivers.
// gorm surfaces ErrDuplicatedKey for some dialects; sqlite reports
// "UNIQUE constraint failed" and postgres "duplicate key value".
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

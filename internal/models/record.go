package models

import "time"

// ProductRecord is one production batch. All product attributes are a
// denormalized snapshot taken when the record is created: later edits or
// deletion of the catalog Product must not change historical records.
//
// ProductionDate is stored as the ISO calendar date string (YYYY-MM-DD) so the
// value compared in duplicate checks is byte-identical to the value submitted,
// with no driver-dependent timezone shift.
type ProductRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SKU            string    `gorm:"column:sku;size:5;not null;index:idx_records_sku_date,unique,priority:1" json:"sku"`
	Name           string    `gorm:"not null" json:"name"`
	ProductionDate string    `gorm:"size:10;not null;index:idx_records_sku_date,unique,priority:2" json:"production_date"`
	ShelfLifeDays  int       `gorm:"column:shelf_life;not null" json:"shelf_life"`
	ReminderDays   int       `gorm:"not null" json:"reminder_days"`
	Location       string    `gorm:"not null" json:"location"`
	CreatedAt      time.Time `json:"created_at"`
}

func (r *ProductRecord) TableName() string {
	return "product_records"
}

package models

import "time"

// Product is a catalog definition keyed by its 5-character SKU. Shelf life and
// reminder window are expressed in days.
type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SKU           string    `gorm:"column:sku;size:5;uniqueIndex;not null" json:"sku"`
	Name          string    `gorm:"not null" json:"name"`
	ShelfLifeDays int       `gorm:"column:shelf_life;not null" json:"shelf_life"`
	ReminderDays  int       `gorm:"not null" json:"reminder_days"`
	Location      string    `gorm:"not null" json:"location"`
	CreatedAt     time.Time `json:"created_at"`
}

func (p *Product) TableName() string {
	return "products"
}

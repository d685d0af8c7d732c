package db

import (
	"errors"

	"github.com/HFQ252/Shelflife/internal/models"
	"gorm.io/gorm"
)

// DemoProducts is the sample catalog used by the seed path and by the
// initialize-demo endpoint.
func DemoProducts() []models.Product {
	return []models.Product{
		{SKU: "10001", Name: "Whole Milk", ShelfLifeDays: 180, ReminderDays: 7, Location: "Chilled aisle 1"},
		{SKU: "10002", Name: "Yogurt", ShelfLifeDays: 21, ReminderDays: 3, Location: "Chilled aisle 2"},
		{SKU: "20001", Name: "Biscuits", ShelfLifeDays: 365, ReminderDays: 30, Location: "Dry goods aisle 2"},
		{SKU: "30001", Name: "Mineral Water", ShelfLifeDays: 540, ReminderDays: 60, Location: "Beverage aisle 1"},
		{SKU: "40001", Name: "Chocolate", ShelfLifeDays: 365, ReminderDays: 30, Location: "Snacks aisle 3"},
	}
}

// SeedDemo inserts the demo catalog, skipping SKUs that already exist, and
// returns how many were added.
func SeedDemo(conn *gorm.DB) int {
	added := 0
	for _, p := range DemoProducts() {
		var existing models.Product
		err := conn.Where("sku = ?", p.SKU).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if conn.Create(&p).Error == nil {
				added++
			}
		}
	}
	return added
}

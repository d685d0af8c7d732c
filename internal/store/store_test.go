package store

import (
	"errors"
	"testing"
	"time"

	"github.com/HFQ252/Shelflife/internal/expiry"
	"github.com/HFQ252/Shelflife/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func refDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := expiry.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

func TestCatalogCreateAndGet(t *testing.T) {
	s := NewCatalogStore(setupTestDB(t))

	p := models.Product{SKU: "10001", Name: "Milk", ShelfLifeDays: 180, ReminderDays: 7, Location: "Chilled 1"}
	if err := s.Create(&p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("expected assigned id")
	}

	got, err := s.Get("10001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Milk" || got.ShelfLifeDays != 180 {
		t.Fatalf("unexpected product: %+v", got)
	}

	if _, err := s.Get("99999"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCatalogDuplicateSKU(t *testing.T) {
	s := NewCatalogStore(setupTestDB(t))

	if err := s.Create(&models.Product{SKU: "10001", Name: "Milk", ShelfLifeDays: 180, ReminderDays: 7, Location: "A"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := s.Create(&models.Product{SKU: "10001", Name: "Other", ShelfLifeDays: 10, ReminderDays: 1, Location: "B"})
	if !errors.Is(err, ErrDuplicateSKU) {
		t.Fatalf("expected ErrDuplicateSKU, got %v", err)
	}
	n, err := s.Count()
	if err != nil || n != 1 {
		t.Fatalf("expected 1 product after rejected duplicate, got %d (%v)", n, err)
	}
}

func TestCatalogListOrderedBySKU(t *testing.T) {
	s := NewCatalogStore(setupTestDB(t))
	for _, sku := range []string{"30001", "10001", "20001"} {
		if err := s.Create(&models.Product{SKU: sku, Name: "P" + sku, ShelfLifeDays: 10, ReminderDays: 1, Location: "A"}); err != nil {
			t.Fatalf("create %s: %v", sku, err)
		}
	}
	products, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"10001", "20001", "30001"}
	for i, sku := range want {
		if products[i].SKU != sku {
			t.Fatalf("position %d: want %s got %s", i, sku, products[i].SKU)
		}
	}
}

func TestCatalogUpdate(t *testing.T) {
	s := NewCatalogStore(setupTestDB(t))
	if err := s.Create(&models.Product{SKU: "10001", Name: "Milk", ShelfLifeDays: 180, ReminderDays: 7, Location: "A"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	changes, err := s.Update("10001", ProductUpdate{Name: "Whole Milk", ShelfLifeDays: 200, ReminderDays: 0, Location: "B"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if changes != 1 {
		t.Fatalf("expected 1 change got %d", changes)
	}
	got, _ := s.Get("10001")
	if got.Name != "Whole Milk" || got.ShelfLifeDays != 200 || got.ReminderDays != 0 || got.Location != "B" {
		t.Fatalf("update not applied: %+v", got)
	}

	if _, err := s.Update("99999", ProductUpdate{Name: "X", ShelfLifeDays: 1, ReminderDays: 0, Location: "Y"}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCatalogDeleteIdempotent(t *testing.T) {
	s := NewCatalogStore(setupTestDB(t))
	if err := s.Create(&models.Product{SKU: "10001", Name: "Milk", ShelfLifeDays: 180, ReminderDays: 7, Location: "A"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	changes, err := s.Delete("10001")
	if err != nil || changes != 1 {
		t.Fatalf("delete: changes=%d err=%v", changes, err)
	}
	changes, err = s.Delete("10001")
	if err != nil || changes != 0 {
		t.Fatalf("second delete: changes=%d err=%v", changes, err)
	}
}

func TestInventoryDuplicateDetection(t *testing.T) {
	db := setupTestDB(t)
	s := NewInventoryStore(db)

	rec := models.ProductRecord{SKU: "10001", Name: "Milk", ProductionDate: "2024-01-01", ShelfLifeDays: 180, ReminderDays: 7, Location: "A"}
	if err := s.Create(&rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	again := models.ProductRecord{SKU: "10001", Name: "Milk", ProductionDate: "2024-01-01", ShelfLifeDays: 180, ReminderDays: 7, Location: "A"}
	err := s.Create(&again)
	var dup *DuplicateRecordError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateRecordError, got %v", err)
	}
	if dup.Existing.ID != rec.ID {
		t.Fatalf("expected conflicting row %d, got %d", rec.ID, dup.Existing.ID)
	}

	n, _ := s.Count()
	if n != 1 {
		t.Fatalf("store must be unchanged after rejected duplicate, got %d rows", n)
	}

	// Same SKU, different production date is a distinct record.
	other := models.ProductRecord{SKU: "10001", Name: "Milk", ProductionDate: "2024-01-02", ShelfLifeDays: 180, ReminderDays: 7, Location: "A"}
	if err := s.Create(&other); err != nil {
		t.Fatalf("distinct date rejected: %v", err)
	}
}

func TestInventoryDeleteIdempotent(t *testing.T) {
	s := NewInventoryStore(setupTestDB(t))
	rec := models.ProductRecord{SKU: "10001", Name: "Milk", ProductionDate: "2024-01-01", ShelfLifeDays: 180, ReminderDays: 7, Location: "A"}
	if err := s.Create(&rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	changes, err := s.Delete("10001", "2024-01-01")
	if err != nil || changes != 1 {
		t.Fatalf("delete: changes=%d err=%v", changes, err)
	}
	changes, err = s.Delete("10001", "2024-01-01")
	if err != nil || changes != 0 {
		t.Fatalf("delete of absent record must report 0 changes, got %d err=%v", changes, err)
	}
}

func TestInventoryListOrdering(t *testing.T) {
	s := NewInventoryStore(setupTestDB(t))
	seed := []models.ProductRecord{
		{SKU: "20001", Name: "B", ProductionDate: "2024-01-05", ShelfLifeDays: 30, ReminderDays: 3, Location: "A"},
		{SKU: "10001", Name: "A", ProductionDate: "2024-01-05", ShelfLifeDays: 30, ReminderDays: 3, Location: "A"},
		{SKU: "10001", Name: "A", ProductionDate: "2024-02-01", ShelfLifeDays: 30, ReminderDays: 3, Location: "A"},
	}
	for i := range seed {
		if err := s.Create(&seed[i]); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	records, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := make([]string, len(records))
	for i, r := range records {
		got[i] = r.SKU + "/" + r.ProductionDate
	}
	want := []string{"10001/2024-02-01", "10001/2024-01-05", "20001/2024-01-05"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ordering mismatch: got %v want %v", got, want)
		}
	}

	bySKU, err := s.ListBySKU("10001")
	if err != nil || len(bySKU) != 2 {
		t.Fatalf("list by sku: %v (%d rows)", err, len(bySKU))
	}
	if bySKU[0].ProductionDate != "2024-02-01" {
		t.Fatalf("newest first expected, got %s", bySKU[0].ProductionDate)
	}
}

func TestListExpiringMatchesClassifier(t *testing.T) {
	s := NewInventoryStore(setupTestDB(t))
	ref := refDate(t, "2024-06-25")

	seed := []models.ProductRecord{
		// expires 2024-06-29, remaining 4 <= reminder 7 -> expiring
		{SKU: "10001", Name: "Milk", ProductionDate: "2024-01-01", ShelfLifeDays: 180, ReminderDays: 7, Location: "A"},
		// expires 2024-06-20, remaining -5 -> expired
		{SKU: "10002", Name: "Yogurt", ProductionDate: "2024-05-30", ShelfLifeDays: 21, ReminderDays: 3, Location: "A"},
		// expires 2025-06-10, remaining 350 -> normal, excluded
		{SKU: "20001", Name: "Biscuits", ProductionDate: "2024-06-10", ShelfLifeDays: 365, ReminderDays: 30, Location: "A"},
		// expires 2024-06-29 as well, remaining 4, newer production date
		{SKU: "30001", Name: "Juice", ProductionDate: "2024-06-19", ShelfLifeDays: 10, ReminderDays: 5, Location: "A"},
	}
	for i := range seed {
		if err := s.Create(&seed[i]); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	expiring, err := s.ListExpiring(ref)
	if err != nil {
		t.Fatalf("list expiring: %v", err)
	}
	if len(expiring) != 3 {
		t.Fatalf("expected 3 non-normal records, got %d", len(expiring))
	}
	// Soonest first; equal remaining broken by newest production date.
	if expiring[0].SKU != "10002" || expiring[0].RemainingDays != -5 {
		t.Fatalf("expected expired yogurt first, got %+v", expiring[0])
	}
	if expiring[1].SKU != "30001" || expiring[2].SKU != "10001" {
		t.Fatalf("tie-break by newest production date failed: %s then %s", expiring[1].SKU, expiring[2].SKU)
	}
	if expiring[2].ExpiryDate != "2024-06-29" || expiring[2].RemainingDays != 4 {
		t.Fatalf("unexpected classification: %+v", expiring[2])
	}

	// The listing must contain exactly the rows the classifier marks non-normal.
	all, _ := s.List()
	nonNormal := 0
	for _, r := range all {
		prod := refDate(t, r.ProductionDate)
		c, err := expiry.Classify(prod, r.ShelfLifeDays, r.ReminderDays, ref)
		if err != nil {
			t.Fatalf("classify %s: %v", r.SKU, err)
		}
		if c.Status != expiry.StatusNormal {
			nonNormal++
		}
	}
	if nonNormal != len(expiring) {
		t.Fatalf("listing (%d) diverged from classifier (%d)", len(expiring), nonNormal)
	}
}

func TestRecordSnapshotSurvivesCatalogChanges(t *testing.T) {
	db := setupTestDB(t)
	catalog := NewCatalogStore(db)
	inventory := NewInventoryStore(db)

	if err := catalog.Create(&models.Product{SKU: "10001", Name: "Milk", ShelfLifeDays: 180, ReminderDays: 7, Location: "Chilled 1"}); err != nil {
		t.Fatalf("create product: %v", err)
	}
	rec := models.ProductRecord{SKU: "10001", Name: "Milk", ProductionDate: "2024-01-01", ShelfLifeDays: 180, ReminderDays: 7, Location: "Chilled 1"}
	if err := inventory.Create(&rec); err != nil {
		t.Fatalf("create record: %v", err)
	}

	if _, err := catalog.Update("10001", ProductUpdate{Name: "Skim Milk", ShelfLifeDays: 90, ReminderDays: 5, Location: "Chilled 2"}); err != nil {
		t.Fatalf("update product: %v", err)
	}
	if _, err := catalog.Delete("10001"); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	rows, err := inventory.ListBySKU("10001")
	if err != nil || len(rows) != 1 {
		t.Fatalf("list by sku: %v (%d rows)", err, len(rows))
	}
	got := rows[0]
	if got.Name != "Milk" || got.ShelfLifeDays != 180 || got.ReminderDays != 7 || got.Location != "Chilled 1" {
		t.Fatalf("snapshot fields changed: %+v", got)
	}
}

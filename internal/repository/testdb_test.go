package repository

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shotbox/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&models.Item{}, &models.SearchTerm{}, &models.AuditRecord{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func makeItem(hash string) *models.Item {
	return &models.Item{
		ContentHash:  hash,
		CurrentPath:  "/archive/" + hash + ".png",
		OriginalName: hash + ".png",
		CurrentName:  hash + ".png",
		Format:       "PNG",
		CapturedAt:   time.Date(2025, 12, 3, 10, 0, 0, 0, time.UTC),
		IndexedAt:    time.Now(),
		Category:     models.CategoryError,
		Keywords:     models.EncodeStringList([]string{"database"}),
		Tags:         models.EncodeStringList([]string{"important"}),
		Confidence:   0.9,
		IsIndexed:    true,
	}
}

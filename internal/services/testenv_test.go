package services

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shotbox/internal/config"
	"shotbox/internal/models"
	"shotbox/internal/repository"
	"shotbox/internal/search"
)

type testEnv struct {
	db        *gorm.DB
	itemRepo  repository.ItemRepository
	termRepo  repository.SearchTermRepository
	auditRepo repository.AuditRepository
	fulltext  *search.Index
	cfg       *config.Configuration
	logs      LogService
	indexer   IndexerService
	organizer OrganizerService
	search    SearchService
}

func newTestEnv(t *testing.T) *testEnv {
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

	fulltext, err := search.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = fulltext.Close() })

	cfg := &config.Configuration{}
	cfg.Storage.BasePath = t.TempDir()
	cfg.Storage.ThumbnailSize = 150
	cfg.Server.LogConfig.Level = "error"
	cfg.Server.CuratorConfig.Schedule = "@hourly"

	logs := NewLogService(cfg)

	env := &testEnv{
		db:        db,
		itemRepo:  repository.NewItemRepository(db),
		termRepo:  repository.NewSearchTermRepository(db),
		auditRepo: repository.NewAuditRepository(db),
		fulltext:  fulltext,
		cfg:       cfg,
		logs:      logs,
	}
	env.indexer = NewIndexerService(env.itemRepo, env.auditRepo, fulltext, cfg, logs)
	env.organizer = NewOrganizerService(env.itemRepo, env.auditRepo, fulltext, cfg, logs)
	env.search = NewSearchService(env.itemRepo, env.termRepo, fulltext, logs)
	return env
}

func analysisFixture(hash string) models.AnalysisRecord {
	return models.AnalysisRecord{
		ContentHash:   hash,
		SourcePath:    "/inbox/" + hash + ".png",
		OriginalName:  hash + ".png",
		Size:          2048,
		Width:         1920,
		Height:        1080,
		Format:        "PNG",
		CapturedAt:    time.Date(2025, 12, 3, 10, 0, 0, 0, time.UTC),
		ExtractedText: "connection timeout at db",
		Description:   "a stack trace on a terminal",
		ContentType:   "error",
		Category:      models.CategoryError,
		Keywords:      []string{"database", "timeout"},
		Tags:          []string{"important"},
		Confidence:    0.9,
	}
}

// writeSourceFile creates a real file for organizer tests and returns an
// analysis record pointing at it.
func writeSourceFile(t *testing.T, dir, name, content string) (models.AnalysisRecord, string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	rec := analysisFixture(fmt.Sprintf("%x", content)[:8] + "f1e2d3c4")
	rec.SourcePath = path
	rec.OriginalName = name
	return rec, path
}

func pngFixture(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"shotbox/internal/config"
	"shotbox/internal/dto"
	"shotbox/internal/helpers"
	"shotbox/internal/models"
	"shotbox/internal/repository"
	"shotbox/internal/search"
)

const duplicateLimit = 1000
const maxFilenameLength = 200

// OrganizerService decides where an indexed item belongs on disk, performs
// the move, and can reverse moves through the audit log.
type OrganizerService interface {
	Place(itemID uint, simulate bool) (*dto.PlacementResult, error)
	Rollback(since time.Time) (int, error)
}

type organizerServiceImpl struct {
	itemRepo      repository.ItemRepository
	auditRepo     repository.AuditRepository
	fulltext      *search.Index
	configuration *config.Configuration
	logService    LogService
}

func NewOrganizerService(
	itemRepository repository.ItemRepository,
	auditRepository repository.AuditRepository,
	fulltext *search.Index,
	configuration *config.Configuration,
	logService LogService,
) OrganizerService {
	return &organizerServiceImpl{
		itemRepo:      itemRepository,
		auditRepo:     auditRepository,
		fulltext:      fulltext,
		configuration: configuration,
		logService:    logService,
	}
}

// Place computes base/YYYY-MM/Category/Subcategory plus a generated
// filename and moves the item there. In simulate mode the destination is
// computed and returned without touching the filesystem or the audit log.
func (o *organizerServiceImpl) Place(itemID uint, simulate bool) (*dto.PlacementResult, error) {
	item, err := o.itemRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	keywords := item.KeywordList()
	destDir := o.targetFolder(item.Category, keywords, item.CapturedAt)
	name := generateFilename(item, keywords)

	result := &dto.PlacementResult{
		ItemID:     item.ID,
		Simulated:  simulate,
		SourcePath: item.CurrentPath,
	}

	if simulate {
		name, err = resolveCollision(destDir, name, duplicateLimit)
		if err != nil {
			return nil, err
		}
		result.Success = true
		result.Operation = operationFor(item.CurrentPath, destDir)
		result.DestinationPath = filepath.Join(destDir, name)
		result.DestinationName = name
		return result, nil
	}

	if !helpers.FileExists(item.CurrentPath) {
		return o.placementFailed(item, result, destDir, name, "source file not found")
	}

	if err := helpers.EnsureDir(destDir); err != nil {
		return o.placementFailed(item, result, destDir, name, "cannot create destination: "+err.Error())
	}

	name, err = resolveCollision(destDir, name, duplicateLimit)
	if err != nil {
		o.recordPlacement(item, models.OperationMove, item.CurrentPath, filepath.Join(destDir, name),
			models.StatusFailed, err.Error(), nil)
		return nil, err
	}
	destPath := filepath.Join(destDir, name)
	operation := operationFor(item.CurrentPath, destDir)

	if err := helpers.MoveFile(item.CurrentPath, destPath); err != nil {
		return o.placementFailed(item, result, destDir, name, err.Error())
	}

	sourcePath, sourceName := item.CurrentPath, item.CurrentName
	item.CurrentPath = destPath
	item.CurrentName = name
	if err := o.itemRepo.Update(item); err != nil {
		return nil, err
	}
	// The filename is part of the full-text projection, keep it current.
	if err := o.fulltext.IndexItem(item.ID, search.DocumentFor(item)); err != nil {
		o.logService.Log.WithError(err).Warn("could not refresh full-text document after move")
	}

	metadata, _ := json.Marshal(map[string]string{
		"category":    item.Category,
		"subcategory": subcategoryFor(item.Category, keywords),
	})
	o.recordPlacement(item, operation, sourcePath, destPath, models.StatusSuccess, "", metadata)

	o.logService.Log.WithFields(logrus.Fields{
		"item": item.ID,
		"from": sourceName,
		"to":   name,
	}).Info("placed")

	result.Success = true
	result.Operation = operation
	result.DestinationPath = destPath
	result.DestinationName = name
	return result, nil
}

// Rollback reverses successful moves and renames newer than the cutoff,
// newest first. Each record is independent: a missing file or a failed move
// is reported against that record and the batch continues. Records already
// rolled back are skipped, so re-running a window is safe.
func (o *organizerServiceImpl) Rollback(since time.Time) (int, error) {
	records, err := o.auditRepo.FindReversible(since)
	if err != nil {
		return 0, err
	}

	batchID := uuid.NewString()
	count := 0
	for _, record := range records {
		if !helpers.FileExists(record.DestinationPath) {
			o.recordRollback(&record, batchID, models.StatusFailed, "file missing at destination")
			continue
		}
		if err := helpers.EnsureDir(filepath.Dir(record.SourcePath)); err != nil {
			o.recordRollback(&record, batchID, models.StatusFailed, err.Error())
			continue
		}
		if err := helpers.MoveFile(record.DestinationPath, record.SourcePath); err != nil {
			o.recordRollback(&record, batchID, models.StatusFailed, err.Error())
			continue
		}

		if record.ItemID != nil {
			if err := o.restoreItemLocation(*record.ItemID, record.SourcePath, record.SourceName); err != nil {
				o.logService.Log.WithError(err).WithField("item", *record.ItemID).
					Warn("file restored but item row not updated")
			}
		}

		o.recordRollback(&record, batchID, models.StatusSuccess, "")
		if err := o.auditRepo.MarkRolledBack(record.ID); err != nil {
			o.logService.Log.WithError(err).WithField("record", record.ID).
				Warn("could not mark record rolled back")
		}
		count++

		o.logService.Log.WithFields(logrus.Fields{
			"record": record.ID,
			"to":     record.SourceName,
		}).Info("rolled back")
	}
	return count, nil
}

func (o *organizerServiceImpl) restoreItemLocation(itemID uint, path, name string) error {
	item, err := o.itemRepo.FindByID(itemID)
	if err != nil {
		return err
	}
	item.CurrentPath = path
	item.CurrentName = name
	if err := o.itemRepo.Update(item); err != nil {
		return err
	}
	return o.fulltext.IndexItem(item.ID, search.DocumentFor(item))
}

func (o *organizerServiceImpl) placementFailed(item *models.Item, result *dto.PlacementResult, destDir, name, reason string) (*dto.PlacementResult, error) {
	o.recordPlacement(item, models.OperationMove, item.CurrentPath, filepath.Join(destDir, name),
		models.StatusFailed, reason, nil)
	o.logService.Log.WithFields(logrus.Fields{
		"item":  item.ID,
		"error": reason,
	}).Warn("placement failed")
	result.Success = false
	result.Error = reason
	return result, nil
}

func (o *organizerServiceImpl) recordPlacement(item *models.Item, operation, source, destination, status, errorDetail string, metadata json.RawMessage) {
	record := &models.AuditRecord{
		ItemID:          &item.ID,
		Operation:       operation,
		Timestamp:       time.Now(),
		SourcePath:      source,
		DestinationPath: destination,
		SourceName:      filepath.Base(source),
		DestinationName: filepath.Base(destination),
		Status:          status,
		ErrorDetail:     errorDetail,
		Metadata:        metadata,
	}
	if err := o.auditRepo.Create(record); err != nil {
		o.logService.Log.WithError(err).Error("could not write placement audit record")
	}
}

func (o *organizerServiceImpl) recordRollback(original *models.AuditRecord, batchID, status, errorDetail string) {
	metadata, _ := json.Marshal(map[string]interface{}{
		"original_record": original.ID,
		"batch":           batchID,
	})
	record := &models.AuditRecord{
		ItemID:          original.ItemID,
		Operation:       models.OperationRollback,
		Timestamp:       time.Now(),
		SourcePath:      original.DestinationPath,
		DestinationPath: original.SourcePath,
		SourceName:      original.DestinationName,
		DestinationName: original.SourceName,
		Status:          status,
		ErrorDetail:     errorDetail,
		Metadata:        metadata,
	}
	if err := o.auditRepo.Create(record); err != nil {
		o.logService.Log.WithError(err).Error("could not write rollback audit record")
	}
}

func (o *organizerServiceImpl) targetFolder(category string, keywords []string, capturedAt time.Time) string {
	parts := []string{
		o.configuration.Storage.BasePath,
		capturedAt.Format("2006-01"),
		categoryFolder(category),
	}
	if sub := subcategoryFor(category, keywords); sub != "" {
		parts = append(parts, sub)
	}
	return filepath.Join(parts...)
}

func operationFor(sourcePath, destDir string) string {
	if filepath.Dir(sourcePath) == destDir {
		return models.OperationRename
	}
	return models.OperationMove
}

// resolveCollision appends (1), (2), ... until a free name is found,
// bounded by limit.
func resolveCollision(dir, name string, limit int) (string, error) {
	if !helpers.FileExists(filepath.Join(dir, name)) {
		return name, nil
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for counter := 1; counter <= limit; counter++ {
		candidate := fmt.Sprintf("%s(%d)%s", stem, counter, ext)
		if !helpers.FileExists(filepath.Join(dir, candidate)) {
			return candidate, nil
		}
	}
	return "", ErrTooManyDuplicates
}

var categoryFolders = map[string]string{
	models.CategoryError:         "Error",
	models.CategoryCode:          "Code",
	models.CategoryUI:            "UI",
	models.CategoryDocumentation: "Documentation",
	models.CategoryData:          "Data",
	models.CategoryCommunication: "Communication",
	models.CategoryOther:         "Other",
}

func categoryFolder(category string) string {
	if folder, ok := categoryFolders[category]; ok {
		return folder
	}
	return "Other"
}

// subcategoryFor refines the category folder from the item's keywords.
func subcategoryFor(category string, keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}
	lower := make(map[string]bool, len(keywords))
	for _, keyword := range keywords {
		lower[strings.ToLower(keyword)] = true
	}
	anyOf := func(candidates ...string) bool {
		for _, c := range candidates {
			if lower[c] {
				return true
			}
		}
		return false
	}

	switch category {
	case models.CategoryError:
		switch {
		case anyOf("database", "db"):
			return "Database"
		case anyOf("network", "timeout", "connection"):
			return "Network"
		case anyOf("memory", "null", "undefined"):
			return "Runtime"
		case anyOf("404", "500", "503"):
			return "HTTP"
		}
	case models.CategoryCode:
		languages := map[string]string{
			"python": "Python", "javascript": "JavaScript", "typescript": "TypeScript",
			"java": "Java", "rust": "Rust", "go": "Go",
			"config": "Config", "yaml": "Config", "json": "Config",
		}
		for _, keyword := range keywords {
			if folder, ok := languages[strings.ToLower(keyword)]; ok {
				return folder
			}
		}
	case models.CategoryUI:
		screens := map[string]string{
			"dashboard": "Dashboard", "login": "Auth", "signup": "Auth",
			"settings": "Settings", "form": "Forms",
		}
		for _, keyword := range keywords {
			if folder, ok := screens[strings.ToLower(keyword)]; ok {
				return folder
			}
		}
	case models.CategoryData:
		switch {
		case anyOf("chart", "graph"):
			return "Charts"
		case anyOf("report"):
			return "Reports"
		case anyOf("table"):
			return "Tables"
		}
	}
	return ""
}

var filenameCleaner = regexp.MustCompile(`[^a-zA-Z0-9]`)

// generateFilename builds DATE_Category_Keywords_HASH4.ext from the item's
// metadata. The four hash characters keep names of same-day, same-category
// items distinct.
func generateFilename(item *models.Item, keywords []string) string {
	date := item.CapturedAt.Format("2006-01-02")
	category := categoryFolder(item.Category)

	var cleaned []string
	for _, keyword := range keywords {
		if len(cleaned) == 4 {
			break
		}
		word := filenameCleaner.ReplaceAllString(keyword, "")
		if word == "" {
			continue
		}
		cleaned = append(cleaned, strings.ToUpper(word[:1])+strings.ToLower(word[1:]))
	}

	hash := item.ContentHash
	if len(hash) > 4 {
		hash = hash[:4]
	}

	ext := filepath.Ext(item.CurrentName)
	parts := []string{date, category}
	if len(cleaned) > 0 {
		parts = append(parts, strings.Join(cleaned, "_"))
	}
	parts = append(parts, hash)

	name := strings.Join(parts, "_") + ext
	if len(name) > maxFilenameLength {
		name = name[:maxFilenameLength-len(ext)] + ext
	}
	return name
}

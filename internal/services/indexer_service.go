package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"shotbox/internal/config"
	"shotbox/internal/dto"
	"shotbox/internal/helpers"
	"shotbox/internal/models"
	"shotbox/internal/repository"
	"shotbox/internal/search"
)

// IndexerService owns the write path of the store: item rows, search terms
// and the full-text projection always change together.
type IndexerService interface {
	Index(rec models.AnalysisRecord, image []byte) (*models.Item, error)
	Update(id uint, upd dto.ItemUpdate) (*models.Item, error)
	Delete(id uint) error
	Rebuild() (int, error)
}

type indexerServiceImpl struct {
	itemRepo      repository.ItemRepository
	auditRepo     repository.AuditRepository
	fulltext      *search.Index
	configuration *config.Configuration
	logService    LogService
}

func NewIndexerService(
	itemRepository repository.ItemRepository,
	auditRepository repository.AuditRepository,
	fulltext *search.Index,
	configuration *config.Configuration,
	logService LogService,
) IndexerService {
	return &indexerServiceImpl{
		itemRepo:      itemRepository,
		auditRepo:     auditRepository,
		fulltext:      fulltext,
		configuration: configuration,
		logService:    logService,
	}
}

// Index persists a new analysis record. Ingesting the same content hash
// twice is idempotent and resolves to the already-indexed item.
func (s *indexerServiceImpl) Index(rec models.AnalysisRecord, image []byte) (*models.Item, error) {
	if err := validateRecord(&rec); err != nil {
		return nil, err
	}

	existing, err := s.itemRepo.FindByHash(rec.ContentHash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.logService.Log.WithFields(logrus.Fields{
			"item": existing.ID,
			"hash": rec.ContentHash,
		}).Info("duplicate content, resolving to existing item")
		return existing, nil
	}

	item := &models.Item{
		ContentHash:   rec.ContentHash,
		CurrentPath:   rec.SourcePath,
		OriginalName:  rec.OriginalName,
		CurrentName:   rec.OriginalName,
		Size:          rec.Size,
		Width:         rec.Width,
		Height:        rec.Height,
		Format:        rec.Format,
		CapturedAt:    rec.CapturedAt,
		IndexedAt:     time.Now(),
		Category:      rec.Category,
		Keywords:      models.EncodeStringList(rec.Keywords),
		ExtractedText: rec.ExtractedText,
		Description:   rec.Description,
		ContentType:   rec.ContentType,
		Confidence:    rec.Confidence,
		Tags:          models.EncodeStringList(rec.Tags),
		IsIndexed:     true,
		Thumbnail:     s.renderThumbnail(rec.OriginalName, image),
	}

	terms := buildSearchTerms(rec.Keywords, rec.ExtractedText)

	err = s.itemRepo.CreateWithTerms(item, terms, func(created *models.Item) error {
		return s.fulltext.IndexItem(created.ID, search.DocumentFor(created))
	})
	if err != nil {
		return nil, err
	}

	s.recordInsert(item)
	s.logService.Log.WithFields(logrus.Fields{
		"item": item.ID,
		"name": item.CurrentName,
	}).Info("indexed")
	return item, nil
}

// Update applies a correction to an item and regenerates its derived rows.
func (s *indexerServiceImpl) Update(id uint, upd dto.ItemUpdate) (*models.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if upd.Category != nil {
		category := strings.ToUpper(*upd.Category)
		if !models.KnownCategory(category) {
			return nil, &ValidationError{Field: "category", Reason: "unknown category " + category}
		}
		item.Category = category
	}
	if upd.Confidence != nil {
		if *upd.Confidence < 0.0 || *upd.Confidence > 1.0 {
			return nil, &ValidationError{Field: "confidence", Reason: "must be within [0, 1]"}
		}
		item.Confidence = *upd.Confidence
	}
	if upd.Keywords != nil {
		item.Keywords = models.EncodeStringList(upd.Keywords)
	}
	if upd.Tags != nil {
		item.Tags = models.EncodeStringList(upd.Tags)
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}

	terms := buildSearchTerms(item.KeywordList(), item.ExtractedText)
	err = s.itemRepo.UpdateWithTerms(item, terms, func(updated *models.Item) error {
		return s.fulltext.IndexItem(updated.ID, search.DocumentFor(updated))
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes the item, its terms and its full-text document, and leaves
// a delete record in the audit log. The log row keeps a nil item reference
// so history survives.
func (s *indexerServiceImpl) Delete(id uint) error {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	err = s.itemRepo.DeleteWithSync(item, func(deleted *models.Item) error {
		return s.fulltext.Delete(deleted.ID)
	})
	if err != nil {
		return err
	}

	record := &models.AuditRecord{
		Operation:  models.OperationDelete,
		Timestamp:  time.Now(),
		SourcePath: item.CurrentPath,
		SourceName: item.CurrentName,
		Status:     models.StatusSuccess,
	}
	if err := s.auditRepo.Create(record); err != nil {
		s.logService.Log.WithError(err).Warn("could not write delete audit record")
	}
	return nil
}

// Rebuild regenerates every item's search terms and full-text document from
// the item table, and prunes full-text documents whose item is gone. Running
// it twice in a row produces identical derived state.
func (s *indexerServiceImpl) Rebuild() (int, error) {
	items, err := s.itemRepo.FindAll()
	if err != nil {
		return 0, err
	}

	known := make(map[uint]struct{}, len(items))
	count := 0
	for i := range items {
		item := &items[i]
		known[item.ID] = struct{}{}
		terms := buildSearchTerms(item.KeywordList(), item.ExtractedText)
		err := s.itemRepo.UpdateWithTerms(item, terms, func(updated *models.Item) error {
			return s.fulltext.IndexItem(updated.ID, search.DocumentFor(updated))
		})
		if err != nil {
			return count, err
		}
		count++
	}

	staleIDs, err := s.fulltext.AllIDs()
	if err != nil {
		return count, err
	}
	for _, id := range staleIDs {
		if _, ok := known[id]; !ok {
			if err := s.fulltext.Delete(id); err != nil {
				return count, err
			}
		}
	}

	s.logService.Log.WithField("count", count).Info("search index rebuilt")
	return count, nil
}

func (s *indexerServiceImpl) renderThumbnail(name string, image []byte) []byte {
	if len(image) == 0 {
		return nil
	}
	thumbnail, err := helpers.RenderThumbnail(image, s.configuration.Storage.ThumbnailSize)
	if err != nil {
		// Non-fatal: the item is indexed without a thumbnail.
		s.logService.Log.WithFields(logrus.Fields{
			"name":  name,
			"error": err.Error(),
		}).Warn("thumbnail generation failed")
		return nil
	}
	return thumbnail
}

func (s *indexerServiceImpl) recordInsert(item *models.Item) {
	record := &models.AuditRecord{
		ItemID:          &item.ID,
		Operation:       models.OperationInsert,
		Timestamp:       time.Now(),
		DestinationPath: item.CurrentPath,
		DestinationName: item.CurrentName,
		Status:          models.StatusSuccess,
	}
	if err := s.auditRepo.Create(record); err != nil {
		s.logService.Log.WithError(err).Warn("could not write insert audit record")
	}
}

func validateRecord(rec *models.AnalysisRecord) error {
	if rec.ContentHash == "" {
		return &ValidationError{Field: "content_hash", Reason: "required"}
	}
	if rec.SourcePath == "" {
		return &ValidationError{Field: "source_path", Reason: "required"}
	}
	if rec.OriginalName == "" {
		return &ValidationError{Field: "original_name", Reason: "required"}
	}
	if rec.Confidence < 0.0 || rec.Confidence > 1.0 {
		return &ValidationError{Field: "confidence", Reason: "must be within [0, 1]"}
	}
	rec.Category = strings.ToUpper(rec.Category)
	if !models.KnownCategory(rec.Category) {
		return &ValidationError{Field: "category", Reason: "unknown category " + rec.Category}
	}
	return nil
}

// buildSearchTerms turns keywords and the extracted text into weighted
// terms. One row per distinct term; a term that is both a keyword and an
// OCR word keeps the keyword weight.
func buildSearchTerms(keywords []string, extractedText string) []models.SearchTerm {
	weights := make(map[string]float64)
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" {
			weights[keyword] = models.KeywordWeight
		}
	}
	for _, word := range strings.Fields(strings.ToLower(extractedText)) {
		if len(word) <= 2 {
			continue
		}
		if _, ok := weights[word]; !ok {
			weights[word] = models.TextWeight
		}
	}

	terms := make([]models.SearchTerm, 0, len(weights))
	for term, weight := range weights {
		terms = append(terms, models.SearchTerm{Term: term, Weight: weight})
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Term < terms[j].Term })
	return terms
}

package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"shotbox/internal/models"
)

// Index is the full-text projection of the item table: one document per
// item covering filename, extracted text, description, keywords and tags.
// It is written through the same transactional path as the item rows and
// can be reconciled from them at any time.
type Index struct {
	idx bleve.Index
}

type Document struct {
	Filename      string `json:"filename"`
	ExtractedText string `json:"extracted_text"`
	Description   string `json:"description"`
	Keywords      string `json:"keywords"`
	Tags          string `json:"tags"`
}

type Hit struct {
	ItemID uint
	Score  float64
}

// Open opens the index at path, creating it on first use.
func Open(path string) (*Index, error) {
	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		idx, err = bleve.New(path, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	return &Index{idx: idx}, nil
}

// OpenMemory creates a throwaway in-memory index, used by tests.
func OpenMemory() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create memory index: %w", err)
	}
	return &Index{idx: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()

	contentFieldMapping := bleve.NewTextFieldMapping()
	contentFieldMapping.Analyzer = "en"

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("filename", textFieldMapping)
	docMapping.AddFieldMappingsAt("extracted_text", contentFieldMapping)
	docMapping.AddFieldMappingsAt("description", contentFieldMapping)
	docMapping.AddFieldMappingsAt("keywords", textFieldMapping)
	docMapping.AddFieldMappingsAt("tags", textFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}

// DocumentFor projects an item into its full-text document.
func DocumentFor(item *models.Item) *Document {
	return &Document{
		Filename:      item.CurrentName,
		ExtractedText: item.ExtractedText,
		Description:   item.Description,
		Keywords:      strings.Join(item.KeywordList(), " "),
		Tags:          strings.Join(item.TagList(), " "),
	}
}

func (i *Index) IndexItem(itemID uint, doc *Document) error {
	return i.idx.Index(key(itemID), doc)
}

func (i *Index) Delete(itemID uint) error {
	return i.idx.Delete(key(itemID))
}

// Query runs an analyzed match query across all document fields and
// returns scored hits, best first. Only genuine text matches come back.
func (i *Index) Query(text string, limit int) ([]Hit, error) {
	query := bleve.NewMatchQuery(text)
	request := bleve.NewSearchRequestOptions(query, limit, 0, false)

	result, err := i.idx.Search(request)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		id, err := parseKey(hit.ID)
		if err != nil {
			continue
		}
		hits = append(hits, Hit{ItemID: id, Score: hit.Score})
	}
	return hits, nil
}

// AllIDs walks the whole index. Used by rebuild to prune documents whose
// item row is gone.
func (i *Index) AllIDs() ([]uint, error) {
	count, err := i.idx.DocCount()
	if err != nil {
		return nil, err
	}
	request := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), int(count), 0, false)
	result, err := i.idx.Search(request)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(result.Hits))
	for _, hit := range result.Hits {
		id, err := parseKey(hit.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (i *Index) Count() (uint64, error) {
	return i.idx.DocCount()
}

func (i *Index) Close() error {
	return i.idx.Close()
}

func key(itemID uint) string {
	return strconv.FormatUint(uint64(itemID), 10)
}

func parseKey(k string) (uint, error) {
	id, err := strconv.ParseUint(k, 10, 64)
	return uint(id), err
}

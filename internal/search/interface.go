package search

import (
	"fmt"

	"akiba/internal/config"
)

// Document is one client-side searchable record: a learning path, a webinar,
// anything rendered as a fully loaded list. Sections that filter server-side
// never go through a Searcher.
type Document struct {
	ID          string
	Title       string
	Description string
	Tags        []string
}

// Searcher filters an already loaded document set. Implementations keep
// whatever index they need internally; SetDocuments replaces it wholesale.
type Searcher interface {
	SetDocuments(docs []Document) error
	Search(query string, limit int) ([]*Result, error)
}

// DebugStatser provides lightweight stats for engines that keep an index.
type DebugStatser interface {
	DocCount() (int, error)
}

// NewSearcher builds the configured engine. "simple" is the default; an
// unknown name is an error rather than a silent fallback.
func NewSearcher(cfg *config.Config) (Searcher, error) {
	switch cfg.Search.Engine {
	case "", "simple":
		return NewEngine(cfg.Search.MinQueryLen), nil
	case "bleve":
		return NewBleveEngine(cfg.Search.MinQueryLen)
	default:
		return nil, fmt.Errorf("unknown search engine %q", cfg.Search.Engine)
	}
}

package search

import (
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"
)

type bleveEngine struct {
	minQueryLen int
	idx         bleve.Index
}

// NewBleveEngine builds a memory-only bleve index. The index lives as long
// as the process; SetDocuments rebuilds it from the given list.
func NewBleveEngine(minQueryLen int) (Searcher, error) {
	if minQueryLen <= 0 {
		minQueryLen = 2
	}

	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}

	return &bleveEngine{minQueryLen: minQueryLen, idx: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	title := bleve.NewTextFieldMapping()
	title.Analyzer = standard.Name
	title.Store = true
	title.IncludeTermVectors = true

	desc := bleve.NewTextFieldMapping()
	desc.Analyzer = standard.Name
	desc.Store = true

	tags := bleve.NewTextFieldMapping()
	tags.Analyzer = standard.Name
	tags.Store = true

	dm.AddFieldMappingsAt("title", title)
	dm.AddFieldMappingsAt("description", desc)
	dm.AddFieldMappingsAt("tags", tags)

	im.DefaultMapping = dm
	return im
}

// SetDocuments replaces the index contents. Stale entries are removed by
// diffing against the incoming ids in the same batch.
func (b *bleveEngine) SetDocuments(docs []Document) error {
	incoming := make(map[string]bool, len(docs))
	for _, d := range docs {
		incoming[d.ID] = true
	}

	batch := b.idx.NewBatch()

	stale, err := b.allDocIDs()
	if err != nil {
		return err
	}
	for _, id := range stale {
		if !incoming[id] {
			batch.Delete(id)
		}
	}

	for _, d := range docs {
		if err := batch.Index(d.ID, map[string]any{
			"title":       d.Title,
			"description": d.Description,
			"tags":        strings.Join(d.Tags, " "),
		}); err != nil {
			return err
		}
	}

	return b.idx.Batch(batch)
}

func (b *bleveEngine) allDocIDs() ([]string, error) {
	req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), 10000, 0, false)
	res, err := b.idx.Search(req)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(res.Hits))
	for _, h := range res.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

// Search runs an OR of per-term match and prefix queries with field boosts
// mirroring the simple engine's weights.
func (b *bleveEngine) Search(query string, limit int) ([]*Result, error) {
	if len(strings.TrimSpace(query)) < b.minQueryLen {
		return []*Result{}, nil
	}

	tokens := tokenize(query)
	var qs []bleveQuery.Query
	for _, tok := range tokens {
		qt := bleve.NewMatchQuery(tok)
		qt.SetField("title")
		qt.SetBoost(4.0)
		qs = append(qs, qt)
		qtp := bleve.NewPrefixQuery(tok)
		qtp.SetField("title")
		qtp.SetBoost(3.5)
		qs = append(qs, qtp)

		qd := bleve.NewMatchQuery(tok)
		qd.SetField("description")
		qd.SetBoost(2.0)
		qs = append(qs, qd)
		qdp := bleve.NewPrefixQuery(tok)
		qdp.SetField("description")
		qdp.SetBoost(1.8)
		qs = append(qs, qdp)

		qg := bleve.NewMatchQuery(tok)
		qg.SetField("tags")
		qg.SetBoost(1.0)
		qs = append(qs, qg)
		qgp := bleve.NewPrefixQuery(tok)
		qgp.SetField("tags")
		qgp.SetBoost(0.8)
		qs = append(qs, qgp)
	}
	if len(qs) == 0 {
		return []*Result{}, nil
	}

	if limit <= 0 {
		limit = 50
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), limit, 0, false)
	req.Fields = []string{"title", "description", "tags"}
	res, err := b.idx.Search(req)
	if err != nil {
		return nil, err
	}

	out := make([]*Result, 0, len(res.Hits))
	for _, h := range res.Hits {
		doc := Document{ID: h.ID}
		if t, ok := h.Fields["title"].(string); ok {
			doc.Title = t
		}
		if d, ok := h.Fields["description"].(string); ok {
			doc.Description = d
		}
		if g, ok := h.Fields["tags"].(string); ok && g != "" {
			doc.Tags = strings.Fields(g)
		}
		out = append(out, &Result{Doc: doc, Score: h.Score})
	}
	return out, nil
}

// DocCount reports total documents in the index.
func (b *bleveEngine) DocCount() (int, error) {
	n, err := b.idx.DocCount()
	return int(n), err
}

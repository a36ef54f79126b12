// Package discovery owns the library's filter, search, and pagination state.
//
// The Engine is a synchronous state machine: operations mutate local state
// and return directives (a Debounce to schedule, a Fetch to run); the caller
// performs the actual I/O and reports the outcome back through Apply or
// Fail. This keeps the engine free of timers and goroutines and lets the
// event loop that drives it decide how to schedule work.
package discovery

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"akiba/internal/api"
	"akiba/internal/debuglog"
)

const (
	// DefaultPageSize matches the platform's listing default.
	DefaultPageSize = 12
	// DefaultDebounce is the quiet period before a typed query settles.
	DefaultDebounce = 500 * time.Millisecond
)

// Facet names one of the filter dimensions the engine recognizes.
type Facet string

const (
	FacetCategory    Facet = "category"
	FacetDifficulty  Facet = "difficulty"
	FacetContentType Facet = "content_type"
	FacetSort        Facet = "sort"
)

// Facets is the current selection, one value per dimension. The "all"
// sentinels mean unconstrained; Sort always carries a value.
type Facets struct {
	Category    api.Category
	Difficulty  api.Difficulty
	ContentType api.ContentType
	Sort        api.SortOrder
}

func defaultFacets() Facets {
	return Facets{
		Category:    api.CategoryAll,
		Difficulty:  api.DifficultyAll,
		ContentType: api.ContentTypeAll,
		Sort:        api.SortPopular,
	}
}

// Debounce is a pending query-settle token. The caller schedules it and
// calls FireDebounce(Gen) once Delay elapses. Every SetQuery bumps the
// generation, so a timer started for an older keystroke fires inert.
type Debounce struct {
	Gen   int
	Delay time.Duration
}

// Fetch directs the caller to request one catalog page and hand the outcome
// back through Apply or Fail. Seq identifies the request; only the latest
// issued Seq is ever applied, which is what discards stale responses.
type Fetch struct {
	Seq      int
	Filters  api.ContentFilters
	Page     int
	PageSize int
}

// Options configure a new Engine. Zero values fall back to the defaults.
type Options struct {
	PageSize int
	Debounce time.Duration
}

// Engine drives content discovery: debounced free-text search, one value per
// facet, and load-more pagination with the replace-vs-append rule (a page-1
// response replaces the accumulated items, later pages append).
//
// Not safe for concurrent use; drive it from a single event loop.
type Engine struct {
	pageSize int
	debounce time.Duration

	query          string // raw input, echoed back to the text field
	debouncedQuery string // settled value; always some past value of query
	facets         Facets
	page           int
	items          []api.ContentSummary
	total          int

	gen     int // debounce generation; newest keystroke wins
	seq     int // fetch sequence; newest request wins
	loading bool
	err     error

	log zerolog.Logger
}

// New returns an idle engine with default facets and no items. Call Start
// for the mount-time fetch.
func New(opts Options) *Engine {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Engine{
		pageSize: pageSize,
		debounce: debounce,
		facets:   defaultFacets(),
		page:     1,
		log:      debuglog.Component("discovery"),
	}
}

// Start issues the mount-time fetch: page 1, default filters.
func (e *Engine) Start() Fetch {
	e.page = 1
	return e.issue()
}

// SetQuery records raw input immediately and returns a debounce token for
// the caller to schedule. No fetch happens here; the token matures into one
// via FireDebounce. Each call supersedes earlier tokens.
func (e *Engine) SetQuery(text string) Debounce {
	e.query = text
	e.gen++
	return Debounce{Gen: e.gen, Delay: e.debounce}
}

// FireDebounce settles a matured token. A stale generation is a no-op, as is
// a settled query identical to the current one. Otherwise the query settles,
// the page resets to 1, and exactly one replacing fetch is returned.
func (e *Engine) FireDebounce(gen int) (Fetch, bool) {
	if gen != e.gen {
		e.log.Debug().Int("gen", gen).Int("current", e.gen).Msg("stale debounce dropped")
		return Fetch{}, false
	}

	settled := strings.TrimSpace(e.query)
	if settled == e.debouncedQuery {
		return Fetch{}, false
	}

	e.debouncedQuery = settled
	e.page = 1
	return e.issue(), true
}

// SetFacet selects a value for one dimension. The value must belong to the
// facet's enumerated domain. The page resets to 1 and exactly one replacing
// fetch is returned; a facet change never produces a second fetch for the
// page reset.
func (e *Engine) SetFacet(name Facet, value string) (Fetch, error) {
	switch name {
	case FacetCategory:
		v := api.Category(value)
		if !v.Valid() {
			return Fetch{}, fmt.Errorf("invalid category %q", value)
		}
		e.facets.Category = v
	case FacetDifficulty:
		v := api.Difficulty(value)
		if !v.Valid() {
			return Fetch{}, fmt.Errorf("invalid difficulty %q", value)
		}
		e.facets.Difficulty = v
	case FacetContentType:
		v := api.ContentType(value)
		if !v.Valid() {
			return Fetch{}, fmt.Errorf("invalid content type %q", value)
		}
		e.facets.ContentType = v
	case FacetSort:
		v := api.SortOrder(value)
		if !v.Valid() {
			return Fetch{}, fmt.Errorf("invalid sort order %q", value)
		}
		e.facets.Sort = v
	default:
		return Fetch{}, fmt.Errorf("unknown facet %q", name)
	}

	e.page = 1
	return e.issue(), nil
}

// LoadMore requests the next page for appending. Permitted only when idle
// with more results remaining; otherwise nothing changes and ok is false.
func (e *Engine) LoadMore() (Fetch, bool) {
	if e.loading || !e.HasMore() {
		return Fetch{}, false
	}
	e.page++
	return e.issue(), true
}

// ClearFilters resets facets to their sentinels, the query to empty, and the
// page to 1. Calling it twice leaves the same state as calling it once; when
// nothing changed, ok is false and the caller may skip the redundant fetch.
func (e *Engine) ClearFilters() (Fetch, bool) {
	cleared := e.query == "" && e.debouncedQuery == "" && e.facets == defaultFacets()

	e.query = ""
	e.debouncedQuery = ""
	e.facets = defaultFacets()
	e.page = 1
	e.gen++ // pending debounce timers fire inert

	if cleared {
		return Fetch{}, false
	}
	return e.issue(), true
}

// Refresh re-runs the current settled state as a replacing page-1 fetch.
func (e *Engine) Refresh() Fetch {
	e.page = 1
	return e.issue()
}

// issue stamps a fetch directive from current state and enters Loading.
// Issuing while a request is in flight supersedes it: the old response's
// seq no longer matches and Apply/Fail will discard it.
func (e *Engine) issue() Fetch {
	e.seq++
	e.loading = true
	e.err = nil

	f := Fetch{
		Seq: e.seq,
		Filters: api.ContentFilters{
			Category:    e.facets.Category,
			Difficulty:  e.facets.Difficulty,
			ContentType: e.facets.ContentType,
			Search:      e.debouncedQuery,
			SortBy:      e.facets.Sort,
		},
		Page:     e.page,
		PageSize: e.pageSize,
	}

	e.log.Debug().
		Int("seq", f.Seq).
		Int("page", f.Page).
		Str("search", f.Filters.Search).
		Str("category", string(f.Filters.Category)).
		Msg("fetch issued")

	return f
}

// Apply merges a completed fetch. A response whose seq is not the latest
// issued request is stale and discarded, so an old response can never
// overwrite the state produced by a newer one. Page 1 replaces the items;
// later pages append. Total always tracks the server-reported count.
func (e *Engine) Apply(f Fetch, page *api.ContentPage) bool {
	if f.Seq != e.seq {
		e.log.Debug().Int("seq", f.Seq).Int("current", e.seq).Msg("stale response dropped")
		return false
	}

	e.loading = false
	e.err = nil

	if f.Page <= 1 {
		e.items = append([]api.ContentSummary(nil), page.Results...)
	} else {
		e.items = append(e.items, page.Results...)
	}
	e.total = page.Total

	return true
}

// Fail records a failed fetch. Items and total keep their last good values
// and a load-more page increment is rolled back, so repeating the action
// retries the same page. Stale failures are discarded like stale responses.
func (e *Engine) Fail(f Fetch, err error) bool {
	if f.Seq != e.seq {
		e.log.Debug().Int("seq", f.Seq).Int("current", e.seq).Msg("stale failure dropped")
		return false
	}

	e.loading = false
	e.err = err
	if f.Page > 1 && e.page == f.Page {
		e.page = f.Page - 1
	}

	e.log.Warn().Err(err).Int("page", f.Page).Msg("fetch failed")
	return true
}

// Items is the accumulated result list. Callers must not mutate it.
func (e *Engine) Items() []api.ContentSummary { return e.items }

// Total is the server-reported count of all matches, independent of how many
// pages have been loaded so far.
func (e *Engine) Total() int { return e.total }

// Page is the current 1-based page.
func (e *Engine) Page() int { return e.page }

// Query is the raw input as last typed.
func (e *Engine) Query() string { return e.query }

// DebouncedQuery is the settled query driving the current results.
func (e *Engine) DebouncedQuery() string { return e.debouncedQuery }

// Facets is the current facet selection.
func (e *Engine) Facets() Facets { return e.facets }

// Loading reports whether a fetch is in flight.
func (e *Engine) Loading() bool { return e.loading }

// HasMore reports whether the platform holds results beyond the accumulated
// items.
func (e *Engine) HasMore() bool { return len(e.items) < e.total }

// Err is the error from the most recent fetch, nil after a success.
func (e *Engine) Err() error { return e.err }

// PageSize is the configured page size, echoed in every fetch directive.
func (e *Engine) PageSize() int { return e.pageSize }

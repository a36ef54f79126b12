package discovery

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"akiba/internal/api"
)

func newTestEngine() *Engine {
	return New(Options{PageSize: 12, Debounce: 10 * time.Millisecond})
}

// contentPage fabricates one page of results with ids prefix-0..prefix-n.
func contentPage(n, total int, prefix string) *api.ContentPage {
	results := make([]api.ContentSummary, n)
	for i := range results {
		results[i] = api.ContentSummary{
			ID:    fmt.Sprintf("%s-%d", prefix, i),
			Title: fmt.Sprintf("Title %s %d", prefix, i),
		}
	}
	return &api.ContentPage{Results: results, Total: total}
}

func TestNewDefaults(t *testing.T) {
	e := New(Options{})

	assert.Equal(t, DefaultPageSize, e.PageSize())
	assert.Equal(t, 1, e.Page())
	assert.Equal(t, defaultFacets(), e.Facets())
	assert.Empty(t, e.Items())
	assert.False(t, e.Loading())
	assert.False(t, e.HasMore())
}

func TestStartIssuesPageOneFetch(t *testing.T) {
	e := newTestEngine()

	f := e.Start()

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 12, f.PageSize)
	assert.Equal(t, "", f.Filters.Search)
	assert.Equal(t, api.CategoryAll, f.Filters.Category)
	assert.Equal(t, api.SortPopular, f.Filters.SortBy)
	assert.True(t, e.Loading())

	ok := e.Apply(f, contentPage(12, 50, "a"))
	require.True(t, ok)
	assert.Len(t, e.Items(), 12)
	assert.Equal(t, 50, e.Total())
	assert.True(t, e.HasMore())
	assert.False(t, e.Loading())
}

func TestDebounceCoalescing(t *testing.T) {
	e := newTestEngine()
	e.Apply(e.Start(), contentPage(12, 50, "a"))

	// Two keystrokes inside one quiet period: "loan" then "loans".
	tok1 := e.SetQuery("loan")
	tok2 := e.SetQuery("loans")

	assert.Equal(t, "loans", e.Query(), "raw query echoes immediately")
	assert.Equal(t, "", e.DebouncedQuery(), "nothing settles until a timer fires")

	// The older timer fires inert.
	_, ok := e.FireDebounce(tok1.Gen)
	assert.False(t, ok, "superseded token must not fetch")
	assert.Equal(t, "", e.DebouncedQuery())

	// The latest timer settles the final value and fetches exactly once.
	f, ok := e.FireDebounce(tok2.Gen)
	require.True(t, ok)
	assert.Equal(t, "loans", e.DebouncedQuery())
	assert.Equal(t, "loans", f.Filters.Search)
	assert.Equal(t, 1, f.Page, "settled query resets the page")
}

func TestDebounceSettledValueIsAlwaysAPastQuery(t *testing.T) {
	e := newTestEngine()

	typed := []string{"s", "sa", "sav", "savi", "savings"}
	var last Debounce
	for _, q := range typed {
		last = e.SetQuery(q)
	}

	_, ok := e.FireDebounce(last.Gen)
	require.True(t, ok)
	assert.Contains(t, typed, e.DebouncedQuery())
	assert.Equal(t, "savings", e.DebouncedQuery(), "last keystroke wins")
}

func TestDebounceNoOpWhenValueUnchanged(t *testing.T) {
	e := newTestEngine()

	tok := e.SetQuery("loans")
	_, ok := e.FireDebounce(tok.Gen)
	require.True(t, ok)

	// Type away and back to the same settled value.
	e.SetQuery("loans ")
	tok = e.SetQuery("loans")
	_, ok = e.FireDebounce(tok.Gen)
	assert.False(t, ok, "settling an identical query must not refetch")
}

func TestDebounceTrimsWhitespace(t *testing.T) {
	e := newTestEngine()

	tok := e.SetQuery("  budgeting  ")
	f, ok := e.FireDebounce(tok.Gen)
	require.True(t, ok)
	assert.Equal(t, "budgeting", e.DebouncedQuery())
	assert.Equal(t, "budgeting", f.Filters.Search)
}

func TestSetFacetResetsPageAndReplaces(t *testing.T) {
	e := newTestEngine()

	// Accumulate three pages (36 items).
	e.Apply(e.Start(), contentPage(12, 50, "p1"))
	f2, ok := e.LoadMore()
	require.True(t, ok)
	e.Apply(f2, contentPage(12, 50, "p2"))
	f3, ok := e.LoadMore()
	require.True(t, ok)
	e.Apply(f3, contentPage(12, 50, "p3"))

	require.Len(t, e.Items(), 36)
	require.Equal(t, 3, e.Page())

	// Choosing a difficulty while deep in pagination goes back to page 1.
	f, err := e.SetFacet(FacetDifficulty, "BEGINNER")
	require.NoError(t, err)
	assert.Equal(t, 1, e.Page(), "page resets immediately, before the fetch lands")
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, api.DifficultyBeginner, f.Filters.Difficulty)

	// The page-1 response replaces, never appends.
	e.Apply(f, contentPage(9, 9, "beginner"))
	assert.Len(t, e.Items(), 9)
	assert.Equal(t, "beginner-0", e.Items()[0].ID)
	assert.Equal(t, 9, e.Total())
	assert.False(t, e.HasMore())
}

func TestSetFacetValidatesDomain(t *testing.T) {
	tests := []struct {
		name    string
		facet   Facet
		value   string
		wantErr bool
	}{
		{"valid category", FacetCategory, "SAVINGS", false},
		{"category sentinel", FacetCategory, "all", false},
		{"bogus category", FacetCategory, "CRYPTO", true},
		{"valid difficulty", FacetDifficulty, "EXPERT", false},
		{"lowercase difficulty rejected", FacetDifficulty, "expert", true},
		{"valid content type", FacetContentType, "VIDEO", false},
		{"bogus content type", FacetContentType, "PODCAST", true},
		{"valid sort", FacetSort, "recent", false},
		{"bogus sort", FacetSort, "alphabetical", true},
		{"unknown facet", Facet("author"), "anyone", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			e.Apply(e.Start(), contentPage(12, 50, "a"))

			_, err := e.SetFacet(tt.facet, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, defaultFacets(), e.Facets(), "rejected values must not stick")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFacetChangeCoalescesIntoOneFetch(t *testing.T) {
	e := newTestEngine()
	e.Apply(e.Start(), contentPage(12, 50, "a"))

	before := e.seq
	_, err := e.SetFacet(FacetCategory, "LOANS")
	require.NoError(t, err)

	// One facet change = one request, even though it also reset the page.
	assert.Equal(t, before+1, e.seq)
}

func TestLoadMoreAccumulates(t *testing.T) {
	e := newTestEngine()

	e.Apply(e.Start(), contentPage(12, 50, "p1"))
	assert.Len(t, e.Items(), 12)
	assert.Equal(t, 50, e.Total())
	assert.True(t, e.HasMore())

	f, ok := e.LoadMore()
	require.True(t, ok)
	assert.Equal(t, 2, f.Page)
	e.Apply(f, contentPage(12, 50, "p2"))
	assert.Len(t, e.Items(), 24)

	// Accumulation keeps page order.
	assert.Equal(t, "p1-0", e.Items()[0].ID)
	assert.Equal(t, "p2-0", e.Items()[12].ID)

	f, ok = e.LoadMore()
	require.True(t, ok)
	e.Apply(f, contentPage(12, 50, "p3"))
	f, ok = e.LoadMore()
	require.True(t, ok)
	e.Apply(f, contentPage(12, 50, "p4"))
	f, ok = e.LoadMore()
	require.True(t, ok)
	e.Apply(f, contentPage(2, 50, "p5"))

	assert.Len(t, e.Items(), 50)
	assert.False(t, e.HasMore(), "all matches loaded")

	_, ok = e.LoadMore()
	assert.False(t, ok, "no further pages once items cover the total")
}

func TestLoadMoreIgnoredWhileLoading(t *testing.T) {
	e := newTestEngine()
	e.Apply(e.Start(), contentPage(12, 50, "p1"))

	f, ok := e.LoadMore()
	require.True(t, ok)
	require.True(t, e.Loading())

	// A second load-more while the first is in flight is dropped.
	_, ok = e.LoadMore()
	assert.False(t, ok)
	assert.Equal(t, 2, e.Page(), "page must not advance past the in-flight request")

	e.Apply(f, contentPage(12, 50, "p2"))
	assert.Len(t, e.Items(), 24)
}

func TestLoadMoreRequiresResults(t *testing.T) {
	e := newTestEngine()

	_, ok := e.LoadMore()
	assert.False(t, ok, "nothing to extend before the first fetch")

	e.Apply(e.Start(), contentPage(5, 5, "only"))
	_, ok = e.LoadMore()
	assert.False(t, ok, "single full page means no more")
}

func TestStaleResponseGuard(t *testing.T) {
	e := newTestEngine()
	e.Apply(e.Start(), contentPage(12, 50, "initial"))

	// Request A (LOANS) goes out, then request B (SAVINGS) supersedes it.
	reqA, err := e.SetFacet(FacetCategory, "LOANS")
	require.NoError(t, err)
	reqB, err := e.SetFacet(FacetCategory, "SAVINGS")
	require.NoError(t, err)

	// B lands first.
	ok := e.Apply(reqB, contentPage(7, 7, "savings"))
	require.True(t, ok)
	require.Equal(t, "savings-0", e.Items()[0].ID)

	// A straggles in afterwards and must not overwrite B's state.
	ok = e.Apply(reqA, contentPage(12, 40, "loans"))
	assert.False(t, ok)
	assert.Len(t, e.Items(), 7)
	assert.Equal(t, "savings-0", e.Items()[0].ID)
	assert.Equal(t, 7, e.Total())
}

func TestStaleResponseDroppedEvenBeforeNewerArrives(t *testing.T) {
	e := newTestEngine()

	reqA := e.Start()
	reqB, err := e.SetFacet(FacetCategory, "BUDGETING")
	require.NoError(t, err)

	// A resolves while B is still in flight: still stale, still dropped.
	ok := e.Apply(reqA, contentPage(12, 50, "old"))
	assert.False(t, ok)
	assert.Empty(t, e.Items())
	assert.True(t, e.Loading(), "the newer request is still outstanding")

	ok = e.Apply(reqB, contentPage(3, 3, "new"))
	require.True(t, ok)
	assert.Len(t, e.Items(), 3)
}

func TestFailKeepsLastGoodState(t *testing.T) {
	e := newTestEngine()
	e.Apply(e.Start(), contentPage(12, 50, "p1"))

	f, ok := e.LoadMore()
	require.True(t, ok)
	require.Equal(t, 2, e.Page())

	ok = e.Fail(f, errors.New("connection refused"))
	require.True(t, ok)

	assert.Len(t, e.Items(), 12, "items keep their last good value")
	assert.Equal(t, 50, e.Total())
	assert.Error(t, e.Err())
	assert.Equal(t, 1, e.Page(), "failed load-more rolls the page back")
	assert.False(t, e.Loading())

	// The action is retryable: the next load-more asks for page 2 again.
	f, ok = e.LoadMore()
	require.True(t, ok)
	assert.Equal(t, 2, f.Page)
	e.Apply(f, contentPage(12, 50, "p2"))
	assert.Len(t, e.Items(), 24)
	assert.NoError(t, e.Err(), "a success clears the recorded error")
}

func TestFailOnReplaceFetchKeepsPageOne(t *testing.T) {
	e := newTestEngine()
	e.Apply(e.Start(), contentPage(12, 50, "p1"))

	f, err := e.SetFacet(FacetCategory, "INSURANCE")
	require.NoError(t, err)

	ok := e.Fail(f, errors.New("gateway timeout"))
	require.True(t, ok)
	assert.Equal(t, 1, e.Page())
	assert.Len(t, e.Items(), 12, "prior results stay on screen")
	assert.Error(t, e.Err())
}

func TestFailStaleDropped(t *testing.T) {
	e := newTestEngine()

	reqA := e.Start()
	reqB, err := e.SetFacet(FacetSort, "recent")
	require.NoError(t, err)

	ok := e.Fail(reqA, errors.New("too late"))
	assert.False(t, ok)
	assert.NoError(t, e.Err(), "stale failures must not surface")

	e.Apply(reqB, contentPage(1, 1, "b"))
	assert.Len(t, e.Items(), 1)
}

func TestClearFiltersIdempotent(t *testing.T) {
	e := newTestEngine()
	e.Apply(e.Start(), contentPage(12, 50, "p1"))

	_, err := e.SetFacet(FacetCategory, "SAVINGS")
	require.NoError(t, err)
	tok := e.SetQuery("merry-go-round")
	_, ok := e.FireDebounce(tok.Gen)
	require.True(t, ok)

	f, changed := e.ClearFilters()
	require.True(t, changed)
	assert.Equal(t, defaultFacets(), e.Facets())
	assert.Equal(t, "", e.Query())
	assert.Equal(t, "", e.DebouncedQuery())
	assert.Equal(t, 1, e.Page())
	assert.Equal(t, "", f.Filters.Search)
	assert.Equal(t, api.CategoryAll, f.Filters.Category)

	first := snapshotState(e)

	// Second clear: identical state, no redundant fetch.
	_, changed = e.ClearFilters()
	assert.False(t, changed)
	assert.Equal(t, first, snapshotState(e))
}

func TestClearFiltersInvalidatesPendingDebounce(t *testing.T) {
	e := newTestEngine()
	e.Apply(e.Start(), contentPage(12, 50, "p1"))

	tok := e.SetQuery("table banking")
	_, changed := e.ClearFilters()
	require.True(t, changed)

	_, ok := e.FireDebounce(tok.Gen)
	assert.False(t, ok, "a clear supersedes in-flight debounce timers")
	assert.Equal(t, "", e.DebouncedQuery())
}

func TestRefreshReplacesFromPageOne(t *testing.T) {
	e := newTestEngine()
	e.Apply(e.Start(), contentPage(12, 50, "p1"))
	f, _ := e.LoadMore()
	e.Apply(f, contentPage(12, 50, "p2"))
	require.Len(t, e.Items(), 24)

	rf := e.Refresh()
	assert.Equal(t, 1, rf.Page)

	e.Apply(rf, contentPage(12, 48, "fresh"))
	assert.Len(t, e.Items(), 12, "refresh replaces the accumulation")
	assert.Equal(t, 48, e.Total())
}

func TestEmptyResultIsValidNotAnError(t *testing.T) {
	e := newTestEngine()

	f := e.Start()
	ok := e.Apply(f, &api.ContentPage{Results: []api.ContentSummary{}, Total: 0})
	require.True(t, ok)

	assert.Empty(t, e.Items())
	assert.Equal(t, 0, e.Total())
	assert.NoError(t, e.Err())
	assert.False(t, e.HasMore())
}

func TestFetchCarriesCurrentFilters(t *testing.T) {
	e := newTestEngine()
	e.Apply(e.Start(), contentPage(12, 50, "p1"))

	_, err := e.SetFacet(FacetCategory, "GROUP_MANAGEMENT")
	require.NoError(t, err)
	_, err = e.SetFacet(FacetContentType, "COURSE")
	require.NoError(t, err)
	tok := e.SetQuery("constitution")
	f, ok := e.FireDebounce(tok.Gen)
	require.True(t, ok)

	assert.Equal(t, api.CategoryGroupManagement, f.Filters.Category)
	assert.Equal(t, api.ContentTypeCourse, f.Filters.ContentType)
	assert.Equal(t, api.DifficultyAll, f.Filters.Difficulty)
	assert.Equal(t, "constitution", f.Filters.Search)
	assert.Equal(t, api.SortPopular, f.Filters.SortBy)
	assert.Equal(t, 12, f.PageSize)
}

// snapshotState captures the externally observable filter state.
func snapshotState(e *Engine) string {
	return fmt.Sprintf("%q|%q|%+v|%d|%d|%d",
		e.Query(), e.DebouncedQuery(), e.Facets(), e.Page(), len(e.Items()), e.Total())
}

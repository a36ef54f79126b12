package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"akiba/internal/api"
)

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestFacetCycling(t *testing.T) {
	tests := []struct {
		name     string
		key      rune
		inspect  func(*App) string
		expected string
	}{
		{
			name:     "category advances past the sentinel",
			key:      'c',
			inspect:  func(a *App) string { return string(a.engine.Facets().Category) },
			expected: string(api.CategorySavings),
		},
		{
			name:     "difficulty advances past the sentinel",
			key:      'd',
			inspect:  func(a *App) string { return string(a.engine.Facets().Difficulty) },
			expected: string(api.DifficultyBeginner),
		},
		{
			name:     "content type advances past the sentinel",
			key:      't',
			inspect:  func(a *App) string { return string(a.engine.Facets().ContentType) },
			expected: string(api.ContentTypeArticle),
		},
		{
			name:     "sort advances from the default",
			key:      'o',
			inspect:  func(a *App) string { return string(a.engine.Facets().Sort) },
			expected: string(api.SortRecent),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := signedInApp(t)

			model, cmd := app.Update(keyRunes(tt.key))
			updated := model.(*App)

			assert.Equal(t, tt.expected, tt.inspect(updated))
			assert.NotNil(t, cmd, "a facet change issues a fetch")
			assert.Equal(t, 1, updated.engine.Page(), "facet change resets paging")
		})
	}
}

func TestFacetCyclingWrapsAround(t *testing.T) {
	app := signedInApp(t)

	domain := api.SortOrders()
	for range domain {
		app.Update(keyRunes('o'))
	}

	assert.Equal(t, domain[0], app.engine.Facets().Sort)
}

func TestSearchInputDebounces(t *testing.T) {
	app := signedInApp(t)

	// "/" hands focus to the search field.
	model, _ := app.Update(keyRunes('/'))
	updated := model.(*App)
	require.True(t, updated.searchInput.Focused())

	// Typing records the raw query and arms a debounce timer, but does not
	// fetch yet.
	model, cmd := updated.Update(keyRunes('l'))
	updated = model.(*App)

	assert.Equal(t, "l", updated.engine.Query())
	assert.Empty(t, updated.engine.DebouncedQuery())
	assert.NotNil(t, cmd)

	// The timer firing with the newest generation settles the query.
	model, cmd = updated.Update(debounceFiredMsg{engineGen: updated.engineGen, debounceGen: 1})
	updated = model.(*App)

	assert.Equal(t, "l", updated.engine.DebouncedQuery())
	assert.NotNil(t, cmd, "a settled query issues a fetch")
}

func TestStaleDebounceGenerationIgnored(t *testing.T) {
	app := signedInApp(t)

	app.Update(keyRunes('/'))
	app.Update(keyRunes('l'))
	app.Update(keyRunes('o'))

	// Generation 1 belongs to the first keystroke; only generation 2 is live.
	_, cmd := app.Update(debounceFiredMsg{engineGen: app.engineGen, debounceGen: 1})

	assert.Nil(t, cmd)
	assert.Empty(t, app.engine.DebouncedQuery())
}

func TestClearFiltersResetsEverything(t *testing.T) {
	app := signedInApp(t)

	app.Update(keyRunes('c'))
	app.Update(keyRunes('d'))
	require.Equal(t, api.CategorySavings, app.engine.Facets().Category)

	model, cmd := app.Update(keyRunes('x'))
	updated := model.(*App)

	assert.Equal(t, api.CategoryAll, updated.engine.Facets().Category)
	assert.Equal(t, api.DifficultyAll, updated.engine.Facets().Difficulty)
	assert.NotNil(t, cmd)

	// A second clear changes nothing and skips the redundant fetch.
	model, cmd = updated.Update(keyRunes('x'))
	updated = model.(*App)
	assert.Nil(t, cmd)
}

func TestLoadMoreGatedWhileLoading(t *testing.T) {
	app := signedInApp(t)

	// Land the first page so there is something to load more of.
	fetch := app.engine.Refresh()
	app.Update(contentFetchedMsg{engineGen: app.engineGen, fetch: fetch, page: libraryPage(12, 50)})

	model, cmd := app.Update(keyRunes('m'))
	updated := model.(*App)
	require.NotNil(t, cmd)
	assert.Equal(t, 2, updated.engine.Page())
	assert.True(t, updated.engine.Loading())

	// While the page-2 fetch is in flight, load-more is a no-op.
	_, cmd = updated.Update(keyRunes('m'))
	assert.Nil(t, cmd)
	assert.Equal(t, 2, updated.engine.Page())
}

func TestTransactionsLoadMoreGatedAtTotal(t *testing.T) {
	app := signedInApp(t)
	app.view = ViewTransactions

	page := &api.TransactionPage{
		Results: []api.Transaction{{ID: "t1", Type: api.TxDeposit}},
		Total:   1,
	}
	model, _ := app.Update(transactionsLoadedMsg{page: 1, result: page})
	updated := model.(*App)

	_, cmd := updated.Update(keyRunes('m'))
	assert.Nil(t, cmd, "everything is loaded, nothing to fetch")
	assert.False(t, updated.txLoading)
}

func TestChallengeJoinRequiresShift(t *testing.T) {
	app := signedInApp(t)
	app.view = ViewChallenges
	app.challengeList.SetItems([]list.Item{
		challengeItem{challenge: api.Challenge{ID: "ch1", Title: "52 Week Challenge"}},
	})

	// Lowercase j is list navigation, not join.
	app.Update(keyRunes('j'))
	assert.NotEqual(t, MsgJoining, app.status)

	_, cmd := app.Update(keyRunes('J'))
	assert.NotNil(t, cmd)
	assert.Equal(t, MsgJoining, app.status)
}

func TestEscClearsSectionFilterBeforeLeaving(t *testing.T) {
	app := signedInApp(t)
	app.view = ViewPaths
	app.Update(pathsLoadedMsg{paths: []api.LearningPath{
		{ID: "p1", Title: "Savings Fundamentals"},
		{ID: "p2", Title: "Loan Management"},
	}})

	app.filterInput.SetValue("loan")
	app.applySectionFilter()
	require.True(t, app.filterApplied)

	// First esc drops the filter and stays put.
	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated := model.(*App)
	assert.Equal(t, ViewPaths, updated.view)
	assert.False(t, updated.filterApplied)
	assert.Len(t, updated.pathList.Items(), 2)

	// Second esc returns to the library.
	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated = model.(*App)
	assert.Equal(t, ViewLibrary, updated.view)
}

func TestHelpReflectsRemainingResults(t *testing.T) {
	app := signedInApp(t)

	fetch := app.engine.Refresh()
	app.Update(contentFetchedMsg{engineGen: app.engineGen, fetch: fetch, page: libraryPage(12, 50)})

	help := app.keyHandler.GetHelpForCurrentView()
	assert.Contains(t, help, "m: more")

	app.Update(contentFetchedMsg{engineGen: app.engineGen, fetch: app.engine.Refresh(), page: libraryPage(12, 12)})
	help = app.keyHandler.GetHelpForCurrentView()
	assert.NotContains(t, help, "m: more")
}

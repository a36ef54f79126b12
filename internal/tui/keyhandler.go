package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"akiba/internal/api"
	"akiba/internal/config"
	"akiba/internal/discovery"
)

type KeyHandler struct {
	app         *App
	config      *config.Config
	modifierKey string
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	return &KeyHandler{
		app:         app,
		config:      cfg,
		modifierKey: cfg.Keys.Modifier + "+",
	}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if kh.isInTextInputMode() {
		return kh.handleTextInputMode(msg)
	}

	if model, cmd, handled := kh.handleCustomKeys(key); handled {
		return model, cmd
	}

	return kh.delegateToCharm(msg)
}

func (kh *KeyHandler) isInTextInputMode() bool {
	switch kh.app.view {
	case ViewLogin:
		return true
	case ViewLibrary:
		return kh.app.searchInput.Focused()
	case ViewPaths, ViewWebinars:
		return kh.app.filterInput.Focused()
	default:
		return false
	}
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return kh.app, tea.Quit
	case "esc":
		return kh.leaveTextInput()
	case "enter":
		return kh.handleTextInputEnter()
	case "tab", "shift+tab", "down", "up":
		if kh.app.view == ViewLogin {
			kh.toggleLoginFocus()
			return kh.app, nil
		}
		if msg.String() == "down" || msg.String() == "tab" {
			// Hand focus to the list below the input.
			return kh.leaveTextInput()
		}
		return kh.delegateToTextInput(msg)
	default:
		return kh.delegateToTextInput(msg)
	}
}

func (kh *KeyHandler) toggleLoginFocus() {
	if kh.app.loginFocus == 0 {
		kh.app.loginFocus = 1
		kh.app.identInput.Blur()
		kh.app.passInput.Focus()
	} else {
		kh.app.loginFocus = 0
		kh.app.passInput.Blur()
		kh.app.identInput.Focus()
	}
}

func (kh *KeyHandler) leaveTextInput() (tea.Model, tea.Cmd) {
	switch kh.app.view {
	case ViewLogin:
		return kh.app, nil
	case ViewLibrary:
		kh.app.searchInput.Blur()
		return kh.app, nil
	case ViewPaths, ViewWebinars:
		kh.app.filterInput.Blur()
		return kh.app, nil
	default:
		return kh.app, nil
	}
}

func (kh *KeyHandler) handleTextInputEnter() (tea.Model, tea.Cmd) {
	switch kh.app.view {
	case ViewLogin:
		if kh.app.loginFocus == 0 {
			kh.toggleLoginFocus()
			return kh.app, nil
		}
		if kh.app.signingIn {
			return kh.app, nil
		}
		kh.app.signingIn = true
		kh.app.setStatus(MsgSigningIn, StatusInfo)
		return kh.app, kh.app.login(kh.app.identInput.Value(), kh.app.passInput.Value())

	case ViewLibrary:
		// Settling is the debounce timer's job; enter just returns focus to
		// the result list.
		kh.app.searchInput.Blur()
		return kh.app, nil

	case ViewPaths, ViewWebinars:
		kh.app.filterInput.Blur()
		return kh.app, nil

	default:
		return kh.app, nil
	}
}

func (kh *KeyHandler) delegateToTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch kh.app.view {
	case ViewLogin:
		if kh.app.loginFocus == 0 {
			newInput, cmd := kh.app.identInput.Update(msg)
			kh.app.identInput = newInput
			return kh.app, cmd
		}
		newInput, cmd := kh.app.passInput.Update(msg)
		kh.app.passInput = newInput
		return kh.app, cmd

	case ViewLibrary:
		// Every edit records the raw query and re-arms the quiet-period
		// timer; only the timer firing with the newest generation fetches.
		prev := kh.app.searchInput.Value()
		newInput, cmd := kh.app.searchInput.Update(msg)
		kh.app.searchInput = newInput

		if value := kh.app.searchInput.Value(); value != prev && kh.app.engine != nil {
			token := kh.app.engine.SetQuery(value)
			return kh.app, tea.Batch(cmd, kh.app.scheduleDebounce(token))
		}
		return kh.app, cmd

	case ViewPaths, ViewWebinars:
		prev := kh.app.filterInput.Value()
		newInput, cmd := kh.app.filterInput.Update(msg)
		kh.app.filterInput = newInput

		if kh.app.filterInput.Value() != prev {
			kh.app.applySectionFilter()
		}
		return kh.app, cmd

	default:
		return kh.app, nil
	}
}

func (kh *KeyHandler) handleCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	kb := kh.config.Keys.Bindings

	switch key {
	case "ctrl+c", kb.Quit:
		return kh.app, tea.Quit, true
	case "esc":
		model, cmd := kh.navigateBack()
		return model, cmd, true
	case "1":
		model, cmd := kh.switchSection(ViewLibrary)
		return model, cmd, true
	case "2":
		model, cmd := kh.switchSection(ViewPaths)
		return model, cmd, true
	case "3":
		model, cmd := kh.switchSection(ViewWebinars)
		return model, cmd, true
	case "4":
		model, cmd := kh.switchSection(ViewChallenges)
		return model, cmd, true
	case "5":
		model, cmd := kh.switchSection(ViewCertificates)
		return model, cmd, true
	case "6":
		model, cmd := kh.switchSection(ViewTransactions)
		return model, cmd, true
	case kh.modifierKey + "d":
		if kh.app.user != nil {
			return kh.app, kh.app.logout(), true
		}
	}

	switch kh.app.view {
	case ViewLibrary:
		return kh.handleLibraryCustomKeys(key)
	case ViewPaths, ViewWebinars:
		if key == "/" || key == kh.modifierKey+kh.config.Keys.Bindings.Search {
			kh.app.filterInput.Focus()
			return kh.app, nil, true
		}
		if kh.app.view == ViewWebinars {
			return kh.handleWebinarCustomKeys(key)
		}
	case ViewChallenges:
		return kh.handleChallengeCustomKeys(key)
	case ViewCertificates:
		return kh.handleCertificateCustomKeys(key)
	case ViewTransactions:
		return kh.handleTransactionCustomKeys(key)
	case ViewReader:
		return kh.handleReaderCustomKeys(key)
	}

	return kh.app, nil, false
}

func (kh *KeyHandler) handleLibraryCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	app := kh.app
	if app.engine == nil {
		return app, nil, false
	}

	kb := kh.config.Keys.Bindings

	switch key {
	case "/", kh.modifierKey + kb.Search:
		app.searchInput.Focus()
		return app, nil, true

	case kb.Category:
		return kh.cycleFacet(discovery.FacetCategory)
	case kb.Difficulty:
		return kh.cycleFacet(discovery.FacetDifficulty)
	case kb.ContentType:
		return kh.cycleFacet(discovery.FacetContentType)
	case kb.Sort:
		return kh.cycleFacet(discovery.FacetSort)

	case kb.ClearFilters:
		app.searchInput.Reset()
		if fetch, ok := app.engine.ClearFilters(); ok {
			app.setStatus(MsgFiltersCleared, StatusInfo)
			return app, app.runFetch(fetch), true
		}
		return app, nil, true

	case kb.LoadMore:
		if fetch, ok := app.engine.LoadMore(); ok {
			app.setStatus(MsgLoadingMore, StatusInfo)
			return app, app.runFetch(fetch), true
		}
		return app, nil, true

	case kb.Refresh:
		app.setStatus(MsgLoadingLibrary, StatusInfo)
		return app, app.runFetch(app.engine.Refresh()), true
	}

	return app, nil, false
}

// cycleFacet advances one filter dimension to its next enumerated value,
// wrapping at the end of the domain.
func (kh *KeyHandler) cycleFacet(facet discovery.Facet) (tea.Model, tea.Cmd, bool) {
	app := kh.app
	facets := app.engine.Facets()

	var next string
	switch facet {
	case discovery.FacetCategory:
		next = string(nextInRing(api.Categories(), facets.Category))
	case discovery.FacetDifficulty:
		next = string(nextInRing(api.Difficulties(), facets.Difficulty))
	case discovery.FacetContentType:
		next = string(nextInRing(api.ContentTypes(), facets.ContentType))
	case discovery.FacetSort:
		next = string(nextInRing(api.SortOrders(), facets.Sort))
	}

	fetch, err := app.engine.SetFacet(facet, next)
	if err != nil {
		app.err = err
		return app, nil, true
	}

	return app, app.runFetch(fetch), true
}

func nextInRing[T comparable](domain []T, current T) T {
	for i, v := range domain {
		if v == current {
			return domain[(i+1)%len(domain)]
		}
	}
	return domain[0]
}

func (kh *KeyHandler) handleWebinarCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case kh.config.Keys.Bindings.Refresh:
		if i, ok := kh.app.webinarList.SelectedItem().(webinarItem); ok {
			if i.webinar.Registered {
				kh.app.setStatus("Already registered", StatusInfo)
				return kh.app, nil, true
			}
			kh.app.setStatus(MsgRegistering, StatusInfo)
			return kh.app, kh.app.registerWebinar(i.webinar.ID), true
		}
	case "o":
		if i, ok := kh.app.webinarList.SelectedItem().(webinarItem); ok && i.webinar.MeetingURL != "" {
			return kh.app, kh.app.openTarget(i.webinar.MeetingURL), true
		}
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handleChallengeCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	if key == "j" {
		// j is also list-down; only treat it as join with shift.
		return kh.app, nil, false
	}
	if key == "J" {
		if i, ok := kh.app.challengeList.SelectedItem().(challengeItem); ok {
			if i.challenge.Joined {
				kh.app.setStatus("Already joined", StatusInfo)
				return kh.app, nil, true
			}
			kh.app.setStatus(MsgJoining, StatusInfo)
			return kh.app, kh.app.joinChallenge(i.challenge.ID), true
		}
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handleCertificateCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	if key == "o" || key == "enter" {
		if i, ok := kh.app.certificateList.SelectedItem().(certificateItem); ok && i.cert.DownloadURL != "" {
			return kh.app, kh.app.openTarget(i.cert.DownloadURL), true
		}
		return kh.app, nil, true
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handleTransactionCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	if key == kh.config.Keys.Bindings.LoadMore {
		if kh.app.txLoading || len(kh.app.transactions) >= kh.app.txTotal {
			return kh.app, nil, true
		}
		kh.app.txLoading = true
		kh.app.setStatus(MsgLoadingMore, StatusInfo)
		return kh.app, kh.app.loadTransactions(kh.app.txPage + 1), true
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handleReaderCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	if key == "o" {
		if kh.app.currentDetail != nil && kh.app.currentDetail.SourceURL != "" {
			return kh.app, kh.app.openTarget(kh.app.currentDetail.SourceURL), true
		}
		return kh.app, nil, true
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) delegateToCharm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch kh.app.view {
	case ViewLibrary:
		kh.app.contentList, cmd = kh.app.contentList.Update(msg)
		if msg.String() == "enter" {
			if i, ok := kh.app.contentList.SelectedItem().(contentItem); ok {
				return kh.openReader(i.content)
			}
		}
		return kh.app, cmd

	case ViewPaths:
		kh.app.pathList, cmd = kh.app.pathList.Update(msg)
		return kh.app, cmd

	case ViewWebinars:
		kh.app.webinarList, cmd = kh.app.webinarList.Update(msg)
		return kh.app, cmd

	case ViewChallenges:
		kh.app.challengeList, cmd = kh.app.challengeList.Update(msg)
		return kh.app, cmd

	case ViewCertificates:
		kh.app.certificateList, cmd = kh.app.certificateList.Update(msg)
		return kh.app, cmd

	case ViewTransactions:
		kh.app.txList, cmd = kh.app.txList.Update(msg)
		return kh.app, cmd

	case ViewReader:
		kh.app.viewport, cmd = kh.app.viewport.Update(msg)
		return kh.app, cmd

	default:
		return kh.app, nil
	}
}

func (kh *KeyHandler) openReader(content api.ContentSummary) (tea.Model, tea.Cmd) {
	app := kh.app
	c := content
	app.currentContent = &c
	app.currentDetail = nil
	app.loadingContent = true
	app.previousView = app.view
	app.view = ViewReader
	app.setStatus(MsgLoadingContent, StatusInfo)
	return app, app.renderDetail(content)
}

// switchSection changes the active section. Leaving the library discards
// its engine; everything else just loads its list fresh.
func (kh *KeyHandler) switchSection(target View) (tea.Model, tea.Cmd) {
	app := kh.app

	if app.user == nil || app.view == target {
		return app, nil
	}

	if app.view == ViewLibrary || app.view == ViewReader {
		app.discardEngine()
	}

	app.previousView = app.view
	app.err = nil
	app.filterInput.Reset()
	app.filterInput.Blur()
	app.filterApplied = false

	switch target {
	case ViewLibrary:
		return app, app.enterLibrary()
	case ViewPaths:
		app.view = ViewPaths
		return app, app.loadPaths()
	case ViewWebinars:
		app.view = ViewWebinars
		return app, app.loadWebinars()
	case ViewChallenges:
		app.view = ViewChallenges
		return app, app.loadChallenges()
	case ViewCertificates:
		app.view = ViewCertificates
		return app, app.loadCertificates()
	case ViewTransactions:
		app.view = ViewTransactions
		app.txPage = 1
		app.txLoading = true
		return app, app.loadTransactions(1)
	default:
		return app, nil
	}
}

func (kh *KeyHandler) navigateBack() (tea.Model, tea.Cmd) {
	switch kh.app.view {
	case ViewReader:
		kh.app.view = ViewLibrary
		kh.app.currentContent = nil
		kh.app.currentDetail = nil
		kh.app.loadingContent = false
		return kh.app, nil

	case ViewPaths, ViewWebinars:
		if kh.app.filterApplied {
			kh.app.filterInput.Reset()
			kh.app.applySectionFilter()
			return kh.app, nil
		}
		return kh.switchSection(ViewLibrary)

	case ViewChallenges, ViewCertificates, ViewTransactions:
		return kh.switchSection(ViewLibrary)

	case ViewLibrary:
		return kh.app, tea.Quit

	default:
		return kh.app, tea.Quit
	}
}

func (kh *KeyHandler) GetHelpForCurrentView() []string {
	kb := kh.config.Keys.Bindings

	sections := "1-6: sections"

	switch kh.app.view {
	case ViewLogin:
		return []string{"enter: sign in", "tab: next field", "ctrl+c: quit"}

	case ViewLibrary:
		help := []string{
			"/: search",
			fmt.Sprintf("%s/%s/%s/%s: facets", kb.Category, kb.Difficulty, kb.ContentType, kb.Sort),
			kb.ClearFilters + ": clear",
		}
		if kh.app.engine != nil && kh.app.engine.HasMore() && !kh.app.engine.Loading() {
			help = append(help, kb.LoadMore+": more")
		}
		return append(help, sections)

	case ViewPaths:
		return []string{"/: filter", sections}

	case ViewWebinars:
		return []string{"/: filter", kb.Refresh + ": register", "o: open link", sections}

	case ViewChallenges:
		return []string{"J: join", sections}

	case ViewCertificates:
		return []string{"enter: open", sections}

	case ViewTransactions:
		help := []string{sections}
		if len(kh.app.transactions) < kh.app.txTotal && !kh.app.txLoading {
			help = append([]string{kb.LoadMore + ": more"}, help...)
		}
		return help

	case ViewReader:
		return []string{"o: open source", "esc: back"}

	default:
		return []string{}
	}
}
